package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Profile(ctx context.Context) error
	Refresh(ctx context.Context) error
	Status(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line from r and dispatches them to a until
// EOF, "exit" or "quit". Command errors are printed and the loop continues.
//
//	Not logged in: help, signup, login, status, exit
//	Logged in:     help, profile, refresh, status, logout, exit
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		printf(w, "alumni %s> ", statusFn())
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			printf(w, "\n")
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printf(w, "Available commands: profile, refresh, status, logout, exit\n")
			} else {
				printf(w, "Available commands: signup, login, status, exit\n")
			}

		case "signup", "register":
			cmdErr = a.Signup(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "profile", "me":
			cmdErr = a.Profile(ctx)

		case "refresh":
			cmdErr = a.Refresh(ctx)

		case "status":
			cmdErr = a.Status(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "exit", "quit":
			printf(w, "Bye!\n")
			return

		default:
			printf(w, "Unknown command: %s\n", cmd)
		}

		if cmdErr != nil {
			printf(w, "Error: %s\n", describe(cmdErr))
		}
	}
}
