// Package cli implements the interactive client for the task-list API:
// a small REPL that signs in and manipulates tasks over HTTP.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/tasklist/internal/client/api"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

type App struct {
	reader *bufio.Reader
	out    io.Writer
	api    *api.Client
	email  string

	// lastList caches the most recent listing so commands can refer to
	// tasks by their printed number.
	lastList []api.Task
}

func NewApp(reader *bufio.Reader, out io.Writer, client *api.Client) *App {
	return &App{reader: reader, out: out, api: client}
}

func (a *App) isLoggedIn() bool {
	return a.email != ""
}

// Register prompts for an email and password and creates a new account.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter name (optional)", a.out)
	if err != nil {
		return err
	}

	res, err := a.api.SignUp(ctx, email, password, name)
	if err != nil {
		return err
	}

	a.email = res.User.Email
	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Login prompts for credentials and authenticates against the server.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	res, err := a.api.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	a.email = res.User.Email
	fmt.Fprintln(a.out, "Success!")
	return nil
}

func (a *App) whoami(ctx context.Context) error {
	user, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%s)\n", user.Email, user.ID)
	return nil
}

func (a *App) list(ctx context.Context) error {
	tasks, err := a.api.ListTasks(ctx)
	if err != nil {
		return err
	}
	a.lastList = tasks

	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks yet.")
		return nil
	}
	for i, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(a.out, "%3d. [%s] %s\n", i+1, mark, t.Title)
	}
	return nil
}

func (a *App) add(ctx context.Context, title string) error {
	task, err := a.api.CreateTask(ctx, title)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added: %s\n", task.Title)
	return nil
}

func (a *App) setDone(ctx context.Context, number string, completed bool) error {
	task, err := a.taskByNumber(number)
	if err != nil {
		return err
	}
	if _, err := a.api.SetCompletion(ctx, task.ID, completed); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "OK")
	return nil
}

func (a *App) rename(ctx context.Context, number, title string) error {
	task, err := a.taskByNumber(number)
	if err != nil {
		return err
	}
	if _, err := a.api.Rename(ctx, task.ID, title); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "OK")
	return nil
}

func (a *App) remove(ctx context.Context, number string) error {
	task, err := a.taskByNumber(number)
	if err != nil {
		return err
	}
	if err := a.api.DeleteTask(ctx, task.ID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

func (a *App) taskByNumber(number string) (*api.Task, error) {
	var n int
	if _, err := fmt.Sscanf(number, "%d", &n); err != nil {
		return nil, fmt.Errorf("not a task number: %q", number)
	}
	if n < 1 || n > len(a.lastList) {
		return nil, fmt.Errorf("no task %d in the last listing (run 'list' first)", n)
	}
	return &a.lastList[n-1], nil
}
