package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAPIErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []APIError
	}{
		{
			name: "valid list",
			body: `{"errors":[{"status":"422","code":"validation_error","detail":"A"}]}`,
			want: []APIError{{Status: "422", Code: "validation_error", Detail: "A"}},
		},
		{
			name: "detail is optional",
			body: `{"errors":[{"status":"403","code":"permission_denied"}]}`,
			want: []APIError{{Status: "403", Code: "permission_denied"}},
		},
		{
			name: "not json",
			body: `<html>`,
			want: nil,
		},
		{
			name: "no errors member",
			body: `{"data":[]}`,
			want: nil,
		},
		{
			name: "entry with unknown field rejects whole list",
			body: `{"errors":[{"status":"422","code":"x","detail":"A","extra":1}]}`,
			want: nil,
		},
		{
			name: "entry with wrong type rejects whole list",
			body: `{"errors":[{"status":422,"code":"x"}]}`,
			want: nil,
		},
		{
			name: "non-object entry rejects whole list",
			body: `{"errors":["nope"]}`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseAPIErrors([]byte(tt.body)))
		})
	}
}

func TestAlertMessage_422WithoutDetailsFallsBack(t *testing.T) {
	require.Equal(t, msgGeneric, alertMessage(422, nil))
	require.Equal(t, msgGeneric, alertMessage(422, []APIError{{Status: "422", Code: "x"}}))
}

func TestRequestError_Error(t *testing.T) {
	e := &RequestError{Status: 404, Method: "GET", URL: "http://x/api"}
	require.Equal(t, "request GET http://x/api: status 404", e.Error())
}

func TestRequestError_DebugDetail(t *testing.T) {
	e := &RequestError{
		Status: 422,
		Method: "POST",
		URL:    "http://x/api/discussions",
		Errors: []APIError{{Status: "422", Code: "validation_error", Detail: "Title required"}},
	}
	d := e.DebugDetail()
	require.Contains(t, d, "POST http://x/api/discussions -> 422")
	require.Contains(t, d, "[validation_error] Title required")
}
