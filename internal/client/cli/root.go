package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	if a.email == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.email)
}

// Root runs the interactive command loop until the user exits or input ends.
func (a *App) Root(ctx context.Context) {

	fmt.Fprintln(a.out, "Welcome to the task-list CLI (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "tasks %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		var cmdErr error

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: list, add <title>, done <n>, undone <n>, rename <n> <title>, rm <n>, whoami, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: register, login, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "whoami":
			cmdErr = a.whoami(ctx)
		case "list":
			cmdErr = a.list(ctx)
		case "add":
			if len(args) == 0 {
				cmdErr = fmt.Errorf("usage: add <title>")
			} else {
				cmdErr = a.add(ctx, strings.Join(args, " "))
			}
		case "done":
			if len(args) != 1 {
				cmdErr = fmt.Errorf("usage: done <n>")
			} else {
				cmdErr = a.setDone(ctx, args[0], true)
			}
		case "undone":
			if len(args) != 1 {
				cmdErr = fmt.Errorf("usage: undone <n>")
			} else {
				cmdErr = a.setDone(ctx, args[0], false)
			}
		case "rename":
			if len(args) < 2 {
				cmdErr = fmt.Errorf("usage: rename <n> <title>")
			} else {
				cmdErr = a.rename(ctx, args[0], strings.Join(args[1:], " "))
			}
		case "rm":
			if len(args) != 1 {
				cmdErr = fmt.Errorf("usage: rm <n>")
			} else {
				cmdErr = a.remove(ctx, args[0])
			}
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintf(a.out, "Unknown command: %s\n", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintf(a.out, "Error: %v\n", cmdErr)
		}
	}
}
