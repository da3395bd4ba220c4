package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lovelab/internal/common"
	"github.com/dmitrijs2005/lovelab/internal/lovecalc"
)

// Calc scores two names. "calc Alex Sam" skips the prompts.
func (a *App) Calc(ctx context.Context, args []string) error {
	var first, second string
	if len(args) >= 2 {
		first, second = args[0], args[1]
	} else {
		var err error
		if first, err = GetSimpleText(ctx, a.in, "Your name", a.out); err != nil {
			return err
		}
		if second, err = GetSimpleText(ctx, a.in, "Your crush's name", a.out); err != nil {
			return err
		}
	}

	res, err := lovecalc.Calculate(first, second)
	if errors.Is(err, common.ErrEmptyName) {
		printlnFn("Both names please 💞")
		return err
	}
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("%s 💘 %s", res.A, res.B))
	printlnFn(fmt.Sprintf("%d%%  %s", res.Score, res.Verdict.Text))
	printlnFn(res.Verdict.Sub)
	a.lastShare = res.ShareText()
	return nil
}
