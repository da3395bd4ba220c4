package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/lovelab/internal/client/board"
	"github.com/dmitrijs2005/lovelab/internal/common"
)

func (a *App) reportFetch(res board.FetchResult) {
	switch {
	case res.Err == nil:
		return
	case len(a.board.Snapshot()) > 0:
		if offline, at := a.board.Offline(); offline {
			printlnFn(fmt.Sprintf("Offline 📴 showing the wall saved %s", ago(at, a.now())))
			return
		}
		printlnFn("Couldn't reach the wall, showing what we had")
	default:
		printlnFn("Couldn't reach the wall 📴 try 'refresh' later")
	}
}

// Wall prints the confession wall and remembers the numbering for heart.
func (a *App) Wall(ctx context.Context) error {
	if a.board.Loading() {
		printlnFn("Loading confessions…")
		return nil
	}

	items := a.board.Snapshot()
	a.wallIDs = a.wallIDs[:0]
	if len(items) == 0 {
		printlnFn("No confessions yet. Be the first! (type 'confess')")
		return nil
	}
	if offline, at := a.board.Offline(); offline {
		printlnFn(fmt.Sprintf("(offline, saved %s)", ago(at, a.now())))
	}

	width := termWidth()
	now := a.now()
	for i, c := range items {
		printlnFn(renderCard(i+1, c, width, now))
		a.wallIDs = append(a.wallIDs, c.ID)
	}
	return nil
}

// Confess asks for the text and an optional crush and posts it. The new
// confession appears once the wall refreshes.
func (a *App) Confess(ctx context.Context) error {
	text, err := GetSimpleText(ctx, a.in, "Your confession (anonymous)", a.out)
	if err != nil {
		return err
	}
	crush, err := GetSimpleText(ctx, a.in, "Crush's name (optional)", a.out)
	if err != nil {
		return err
	}

	_, err = a.board.Submit(ctx, text, crush)
	switch {
	case err == nil:
		printlnFn("Posted anonymously 💌")
	case errors.Is(err, common.ErrEmptyConfession):
	case errors.Is(err, common.ErrRateLimited):
		printlnFn("Slow down, Romeo 🐢 try again in a minute")
	default:
		printlnFn("Couldn't post right now, try again 📴")
	}
	return err
}

// Heart adds a heart to confession n as numbered by the last wall.
func (a *App) Heart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: heart <n>")
		return nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(a.wallIDs) {
		printlnFn("No such confession, type 'wall' first")
		return nil
	}

	hearts, err := a.board.Heart(ctx, a.wallIDs[n-1])
	if err != nil {
		printlnFn("Couldn't send the heart, try again 💔")
		return err
	}
	printlnFn(fmt.Sprintf("❤️ %d", hearts))
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	res := a.board.Refresh(ctx)
	if res.Err != nil {
		a.reportFetch(res)
		return res.Err
	}
	printlnFn(fmt.Sprintf("%d confessions", len(a.board.Snapshot())))
	return nil
}
