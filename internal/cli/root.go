package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

func toast(args ...any) {
	printlnFn(args...)
}

// execIface is the minimal command surface the REPL dispatches to. App
// satisfies it; tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Book(ctx context.Context) error
	List(ctx context.Context) error
	Filter(ctx context.Context) error
	Edit(ctx context.Context) error
	Complete(ctx context.Context) error
	Cancel(ctx context.Context) error
	Delete(ctx context.Context) error
	Stats(ctx context.Context) error
}

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.user.Name)
}

func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to RideFlow (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// runREPL reads a line, takes the first token as the command and dispatches
// to methods on a. Handlers report their own errors; the loop only cares
// about I/O. Exits on EOF or "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("rideflow %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: book, (l)ist, filter, edit, complete, cancel, delete, stats, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "book":
			_ = a.Book(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "filter":
			_ = a.Filter(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "complete":
			_ = a.Complete(ctx)

		case "cancel":
			_ = a.Cancel(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
