package cli

import (
	"context"

	"github.com/dmitrijs2005/lovelab/internal/client/share"
)

// Share hands the last calc, quiz or practice result to the share service.
func (a *App) Share(ctx context.Context) error {
	if a.lastShare == "" {
		printlnFn("Nothing to share yet, try 'calc' or 'quiz' first")
		return nil
	}

	out, err := a.sharer.Share(ctx, a.lastShare)
	if err != nil {
		printlnFn("Couldn't share, try copying manually:")
		printlnFn(a.lastShare)
		return err
	}
	switch out.Method {
	case share.MethodCard:
		printlnFn("Share card ready 🔗 " + out.URL)
	case share.MethodClipboard:
		printlnFn("Copied to clipboard! 📋")
	}
	return nil
}
