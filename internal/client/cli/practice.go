package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lovelab/internal/client/camera"
	"github.com/dmitrijs2005/lovelab/internal/client/practice"
	"github.com/dmitrijs2005/lovelab/internal/common"
)

// Practice records until Enter or the one-minute limit, then prints the
// analysis. It can be used once per device.
func (a *App) Practice(ctx context.Context) error {
	err := a.session.Start(ctx)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrPracticeUsed):
		printlnFn("তুমি ইতিমধ্যে তোমার প্রোপোজাল অ্যানালাইসিস ব্যবহার করে ফেলেছো 💘")
		printlnFn(fmt.Sprintf("প্রতিটি ডিভাইসে শুধুমাত্র একবার ব্যবহার করা যায়, %s!", a.nickname))
		return err
	case errors.Is(err, camera.ErrPermissionDenied):
		printlnFn("Camera access denied 📷 allow access and try again")
		return err
	default:
		printlnFn("Camera unavailable:", err)
		return err
	}

	printlnFn(fmt.Sprintf("🎥 Recording, %s! Say it like you mean it. Press Enter to finish (stops at %s)",
		a.nickname, practice.FormatElapsed(practice.MaxDuration)))

	elapsed := practice.MaxDuration
	select {
	case _, ok := <-a.in.Lines():
		if !ok {
			a.session.Close()
			return nil
		}
		// zero when the timer won the race
		if e := a.session.Elapsed(); e > 0 {
			elapsed = e
		}
	case <-a.session.AutoFinished():
		printlnFn("⏰ Time's up!")
	case <-ctx.Done():
		a.session.Close()
		return ctx.Err()
	}

	res, err := a.session.Finish(ctx)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Recorded %s. Analyzing…", practice.FormatElapsed(elapsed)))
	printlnFn(fmt.Sprintf("Confidence: %d%%  %s", res.Confidence, stars(res.Stars)))
	printlnFn("AI Feedback:")
	for _, f := range res.Feedback {
		printlnFn("  • " + f)
	}
	printlnFn(fmt.Sprintf("You've got this, %s 💍", a.nickname))

	a.lastShare = fmt.Sprintf("My LoveLab proposal confidence: %d%% %s", res.Confidence, stars(res.Stars))
	return nil
}
