package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. *App
// satisfies it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ShowMealTimes(ctx context.Context) error
	SetMealTimes(ctx context.Context) error
	AddRecipe(ctx context.Context) error
	ListRecipes(ctx context.Context) error
	DeleteRecipe(ctx context.Context, args []string) error
	UploadImage(ctx context.Context, args []string) error
	LinkCalendar(ctx context.Context) error
	LinkStatus(ctx context.Context) error
	UnlinkCalendar(ctx context.Context) error
	Schedule(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: mealtimes, setmealtimes, addrecipe, recipes, delrecipe <recipe id>, image <recipe id> <file>, " +
		"link, linkstatus, unlink, schedule, logout, exit"
)

// runREPL reads commands from scanner until EOF or exit. Command errors are
// printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, out io.Writer) {
	for {
		fmt.Fprintf(out, "mealplanner %s> ", statusFn())
		if !scanner.Scan() {
			return
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(out, "Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args, out); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string, out io.Writer) error {
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
	}

	if !a.isLoggedIn() {
		fmt.Fprintln(out, "Please log in first.")
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "mealtimes":
		return a.ShowMealTimes(ctx)
	case "setmealtimes":
		return a.SetMealTimes(ctx)
	case "addrecipe":
		return a.AddRecipe(ctx)
	case "recipes", "list":
		return a.ListRecipes(ctx)
	case "delrecipe":
		return a.DeleteRecipe(ctx, args)
	case "image":
		return a.UploadImage(ctx, args)
	case "link":
		return a.LinkCalendar(ctx)
	case "linkstatus":
		return a.LinkStatus(ctx)
	case "unlink":
		return a.UnlinkCalendar(ctx)
	case "schedule":
		return a.Schedule(ctx)
	default:
		fmt.Fprintf(out, "Unknown command: %s\n", cmd)
		return nil
	}
}
