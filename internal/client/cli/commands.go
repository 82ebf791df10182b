package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

func (a *App) cmdForum() error {
	forum := a.application.Forum()
	fmt.Fprintf(a.out, "%s\n", forum.Title)
	if forum.Description != "" {
		fmt.Fprintf(a.out, "%s\n", forum.Description)
	}
	if forum.BasePath != "" {
		fmt.Fprintf(a.out, "mounted at %s\n", forum.BasePath)
	}
	return nil
}

func (a *App) cmdWhoami() error {
	user := a.application.Session().User()
	if user == nil {
		fmt.Fprintln(a.out, "not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s (id %s)\n", user.Username, user.ID)
	return nil
}

func (a *App) cmdRegister(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username:", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email:", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.application.Client().Register(ctx, username, email, string(password))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "registered %s, you can now log in\n", user.Username)
	return nil
}

func (a *App) cmdLogin(ctx context.Context, args []string) error {
	remember := false
	for _, arg := range args {
		if arg == "--remember" {
			remember = true
		}
	}

	identification, err := GetSimpleText(a.reader, "Username or email:", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.application.Login(ctx, identification, string(password), remember); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "logged in as %s\n", a.application.Session().User().Username)
	return nil
}

func (a *App) cmdLogout(ctx context.Context) error {
	if err := a.application.Logout(ctx); err != nil {
		// local state is already cleared; the revocation failure is informational
		fmt.Fprintf(a.out, "warning: token revocation failed: %v\n", err)
	}
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func (a *App) cmdDiscussions(ctx context.Context, args []string) error {
	sort := ""
	if len(args) > 0 {
		sort = args[0]
	}

	discussions, err := a.application.Client().Discussions(ctx, sort)
	if err != nil {
		return err
	}
	if len(discussions) == 0 {
		fmt.Fprintln(a.out, "no discussions yet")
		return nil
	}

	for _, d := range discussions {
		url, err := a.application.URL("discussion", map[string]string{"id": d.ID})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%-8s %-50s %3d comments  %s\n", d.ID, truncate(d.Title, 50), d.CommentCount, url)
	}
	return nil
}

func (a *App) cmdView(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: view <discussion-id>")
	}

	discussion, posts, err := a.application.Client().Discussion(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "# %s\n", discussion.Title)
	for _, p := range posts {
		fmt.Fprintf(a.out, "\n[%d] user %s at %s\n%s\n", p.Number, p.UserID, p.CreatedAt.Format("2006-01-02 15:04"), p.Content)
	}
	return nil
}

func (a *App) cmdStartDiscussion(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title:", a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content:", a.out)
	if err != nil {
		return err
	}

	discussion, err := a.application.Client().CreateDiscussion(ctx, title, content)
	if err != nil {
		return err
	}

	url, err := a.application.URL("discussion", map[string]string{"id": discussion.ID})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created discussion %s (%s)\n", discussion.ID, url)
	return nil
}

func (a *App) cmdPost(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: post <discussion-id>")
	}

	content, err := GetMultiline(a.reader, "Reply:", a.out)
	if err != nil {
		return err
	}

	post, err := a.application.Client().CreatePost(ctx, args[0], content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "posted #%d\n", post.Number)
	return nil
}

// cmdAvatar asks the server for a presigned PUT URL, uploads the file
// directly to object storage, then confirms the key on the user record.
func (a *App) cmdAvatar(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: avatar <file>")
	}
	user := a.application.Session().User()
	if user == nil {
		return fmt.Errorf("log in first")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	upload, err := a.application.Client().AvatarUploadURL(ctx, user.ID)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, upload.URL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentTypeFor(args[0]))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}

	updated, err := a.application.Client().ConfirmAvatar(ctx, user.ID, upload.Key)
	if err != nil {
		return err
	}
	a.application.Session().SetUser(updated)
	fmt.Fprintln(a.out, "avatar updated")
	return nil
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
