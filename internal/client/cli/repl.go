package cli

import (
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests use a stub.
type execIface interface {
	Nickname(ctx context.Context, args []string) error
	Calc(ctx context.Context, args []string) error
	Quiz(ctx context.Context) error
	Wall(ctx context.Context) error
	Confess(ctx context.Context) error
	Heart(ctx context.Context, args []string) error
	Refresh(ctx context.Context) error
	Practice(ctx context.Context) error
	Share(ctx context.Context) error
}

const helpText = "Available commands: calc, quiz, (w)all, confess, heart <n>, refresh, practice, share, nickname, exit"

// runREPL reads commands until end of input, "exit" or "quit", or until
// ctx is cancelled. Command errors are reported by the handlers
// themselves and never end the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *lineReader) {
	for {
		printlnFn(fmt.Sprintf("lovelab %s > ", statusFn()))
		line, err := in.ReadLine(ctx)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			printlnFn(helpText)

		case "calc":
			_ = a.Calc(ctx, args)

		case "quiz":
			_ = a.Quiz(ctx)

		case "w", "wall":
			_ = a.Wall(ctx)

		case "confess":
			_ = a.Confess(ctx)

		case "heart":
			_ = a.Heart(ctx, args)

		case "refresh":
			_ = a.Refresh(ctx)

		case "practice":
			_ = a.Practice(ctx)

		case "share":
			_ = a.Share(ctx)

		case "nickname":
			_ = a.Nickname(ctx, args)

		case "exit", "quit":
			printlnFn("Bye! 💕")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
