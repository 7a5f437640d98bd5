package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// commands is the surface the REPL dispatches to; App implements it.
type commands interface {
	isLoggedIn() bool
	status() string
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Import(ctx context.Context, pageURL string) error
	report(err error)
}

const (
	helpLoggedOut = "Available commands: register, login, help, exit"
	helpLoggedIn  = "Available commands: list, show <id>, add, edit <id>, delete <id>, import <url>, logout, help, exit"
)

// runREPL reads one command per line and dispatches it. Command errors are
// reported and the loop continues. It returns nil on exit or EOF.
func runREPL(ctx context.Context, a commands, in *prompter, out io.Writer) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(out, "%s> ", a.status())
		line, err := in.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(out, "Bye!")
			return nil
		}

		if err := dispatch(ctx, a, cmd, args, out); err != nil {
			a.report(err)
		}
	}
}

var loggedInOnly = map[string]bool{
	"logout": true, "l": true, "list": true, "add": true,
	"show": true, "edit": true, "delete": true, "import": true,
}

func dispatch(ctx context.Context, a commands, cmd string, args []string, out io.Writer) error {
	if loggedInOnly[cmd] && !a.isLoggedIn() {
		fmt.Fprintln(out, "Please login first")
		return nil
	}

	switch cmd {
	case "help":
		if a.isLoggedIn() {
			fmt.Fprintln(out, helpLoggedIn)
		} else {
			fmt.Fprintln(out, helpLoggedOut)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "l", "list":
		return a.List(ctx)
	case "add":
		return a.Add(ctx)
	case "show":
		return withArg(ctx, out, cmd, "<id>", args, a.Show)
	case "edit":
		return withArg(ctx, out, cmd, "<id>", args, a.Edit)
	case "delete":
		return withArg(ctx, out, cmd, "<id>", args, a.Delete)
	case "import":
		return withArg(ctx, out, cmd, "<url>", args, a.Import)
	default:
		fmt.Fprintln(out, "Unknown command:", cmd)
		return nil
	}
}

func withArg(ctx context.Context, out io.Writer, cmd, name string, args []string, fn func(context.Context, string) error) error {
	if len(args) != 1 {
		fmt.Fprintf(out, "Usage: %s %s\n", cmd, name)
		return nil
	}
	return fn(ctx, args[0])
}
