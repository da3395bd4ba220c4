package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/lovelab/internal/quiz"
)

// Quiz runs the red flag quiz from the start. "q" abandons it.
func (a *App) Quiz(ctx context.Context) error {
	s := quiz.NewSession()
	for !s.Done() {
		q, _ := s.Question()
		var b strings.Builder
		fmt.Fprintf(&b, "Question %d/%d: %s", s.Current()+1, s.Len(), q.Text)
		for i, o := range q.Options {
			fmt.Fprintf(&b, "\n  %d) %s", i+1, o.Text)
		}

		answer, err := GetSimpleText(ctx, a.in, b.String(), a.out)
		if err != nil {
			return err
		}
		if answer == "q" {
			printlnFn("Quiz abandoned")
			return nil
		}
		n, err := strconv.Atoi(answer)
		if err != nil {
			printlnFn("Pick a number")
			continue
		}
		if err := s.Answer(n - 1); err != nil {
			printlnFn(fmt.Sprintf("Pick 1-%d", len(q.Options)))
		}
	}

	res, err := s.Result()
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("%s  (%d/%d)", res.Title, res.Total, s.Len()*quiz.MaxOptionScore))
	printlnFn(res.Description)
	a.lastShare = res.ShareText()
	return nil
}
