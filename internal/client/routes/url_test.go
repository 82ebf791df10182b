package routes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func setupTable(t *testing.T) *Table {
	t.Helper()
	tbl := NewTable("", "")
	require.NoError(t, tbl.Register("index", "/", "IndexPage"))
	require.NoError(t, tbl.Register("discussion", "/d/:id", "DiscussionPage"))
	require.NoError(t, tbl.Register("user", "/u/:username", "UserPage"))
	require.NoError(t, tbl.Register("post", "/d/:id/:number", "DiscussionPage"))
	return tbl
}

func TestBuild_SubstitutesParams(t *testing.T) {
	tbl := setupTable(t)

	got, err := tbl.Build("discussion", map[string]string{"id": "5", "sort": "top"})
	require.NoError(t, err)
	require.Equal(t, "/d/5?sort=top", got)
}

func TestBuild_DropsEmptyParams(t *testing.T) {
	tbl := setupTable(t)

	got, err := tbl.Build("discussion", map[string]string{"id": "5", "sort": ""})
	require.NoError(t, err)
	require.Equal(t, "/d/5", got)
}

func TestBuild_MultiplePlaceholders(t *testing.T) {
	tbl := setupTable(t)

	got, err := tbl.Build("post", map[string]string{"id": "5", "number": "12"})
	require.NoError(t, err)
	require.Equal(t, "/d/5/12", got)
}

func TestBuild_EscapesPathParams(t *testing.T) {
	tbl := setupTable(t)

	got, err := tbl.Build("user", map[string]string{"username": "a b/c"})
	require.NoError(t, err)
	require.Equal(t, "/u/a%20b%2Fc", got)
}

func TestBuild_QueryStringIsSorted(t *testing.T) {
	tbl := setupTable(t)

	got, err := tbl.Build("index", map[string]string{"sort": "top", "q": "go"})
	require.NoError(t, err)
	require.Equal(t, "/?q=go&sort=top", got)
}

func TestBuild_UnknownRoute(t *testing.T) {
	tbl := setupTable(t)

	_, err := tbl.Build("nope", nil)
	require.ErrorIs(t, err, ErrRouteNotFound)
}

func TestBuild_MissingParam(t *testing.T) {
	tbl := setupTable(t)

	_, err := tbl.Build("discussion", map[string]string{"sort": "top"})
	require.ErrorIs(t, err, ErrMissingRouteParam)

	// an empty value is as missing as no value at all
	_, err = tbl.Build("discussion", map[string]string{"id": ""})
	require.ErrorIs(t, err, ErrMissingRouteParam)
}

func TestBuild_PrefixWinsOverBasePath(t *testing.T) {
	tbl := NewTable("/app", "/forum")
	require.NoError(t, tbl.Register("discussion", "/d/:id", "DiscussionPage"))

	got, err := tbl.Build("discussion", map[string]string{"id": "7"})
	require.NoError(t, err)
	require.Equal(t, "/app/d/7", got)
}

func TestBuild_BasePathAppliedWhenPrefixEmpty(t *testing.T) {
	tbl := NewTable("", "/forum")
	require.NoError(t, tbl.Register("discussion", "/d/:id", "DiscussionPage"))

	got, err := tbl.Build("discussion", map[string]string{"id": "7"})
	require.NoError(t, err)
	require.Equal(t, "/forum/d/7", got)
}

func TestRegister_DuplicateName(t *testing.T) {
	tbl := NewTable("", "")
	require.NoError(t, tbl.Register("index", "/", "IndexPage"))
	require.ErrorIs(t, tbl.Register("index", "/other", "OtherPage"), ErrDuplicateRoute)
}
