package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

func (a *App) printWelcome() {
	forum := a.application.Forum()
	fmt.Fprintf(a.out, "Connected to %q\n", forum.Title)
	if forum.Description != "" {
		fmt.Fprintln(a.out, forum.Description)
	}
	fmt.Fprintln(a.out, `Type "help" for a list of commands.`)
}

func (a *App) loop(ctx context.Context) {
	for {
		line, err := GetSimpleText(a.reader, "", a.out)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			fmt.Fprintf(a.out, "input error: %v\n", err)
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		if cmd == "exit" || cmd == "quit" {
			return
		}

		if err := a.dispatch(ctx, cmd, args); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
	}
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		a.printHelp()
		return nil
	case "forum":
		return a.cmdForum()
	case "whoami":
		return a.cmdWhoami()
	case "register":
		return a.cmdRegister(ctx)
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		return a.cmdLogout(ctx)
	case "discussions":
		return a.cmdDiscussions(ctx, args)
	case "view":
		return a.cmdView(ctx, args)
	case "start":
		return a.cmdStartDiscussion(ctx)
	case "post":
		return a.cmdPost(ctx, args)
	case "avatar":
		return a.cmdAvatar(ctx, args)
	default:
		return fmt.Errorf("unknown command %q (try \"help\")", cmd)
	}
}

func (a *App) printHelp() {
	fmt.Fprint(a.out, `Commands:
  forum                    show forum info
  register                 create an account
  login [--remember]       log in
  logout                   log out and revoke the token
  whoami                   show the current user
  discussions [sort]       list discussions (latest|top)
  view <id>                show a discussion and its posts
  start                    start a new discussion
  post <discussion-id>     reply to a discussion
  avatar <file>            upload an avatar
  exit                     quit
`)
}
