// Package lovecalc computes the LoveLab compatibility score.
//
// The score is a pure function of the two names: the UTF-16 code units of
// a+b are summed and mapped with (sum*7+13) mod 101, so every pair lands in
// [0,100] and the same pair always gets the same score. The order of the
// names is part of the input.
package lovecalc

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/dmitrijs2005/lovelab/internal/common"
)

// Verdict is the label shown for a score range [Min, Max).
type Verdict struct {
	Min  int
	Max  int
	Text string
	Sub  string
}

// Verdicts are matched in declared order; the first range containing the
// score wins.
var Verdicts = []Verdict{
	{Min: 0, Max: 20, Text: "Friendzone alert 🚨", Sub: "Maybe try being funnier?"},
	{Min: 20, Max: 40, Text: "It's complicated 😬", Sub: "There's a spark but also a fire extinguisher nearby."},
	{Min: 40, Max: 60, Text: "Situationship vibes 🫠", Sub: "Neither of you knows what's going on."},
	{Min: 60, Max: 75, Text: "Cute potential 💕", Sub: "Keep this energy going!"},
	{Min: 75, Max: 90, Text: "Marriage loading… 💍", Sub: "Start picking wedding colors."},
	{Min: 90, Max: 101, Text: "Soulmates detected 🔥", Sub: "The universe shipped you two."},
}

// Result is a computed score with its verdict.
type Result struct {
	A       string
	B       string
	Score   int
	Verdict Verdict
}

// ShareText is the line handed to the share service.
func (r Result) ShareText() string {
	return fmt.Sprintf("%s 💘 %s = %d%% — %s", r.A, r.B, r.Score, r.Verdict.Text)
}

// Score returns the compatibility of a and b in [0,100].
func Score(a, b string) int {
	var sum int64
	for _, unit := range utf16.Encode([]rune(a + b)) {
		sum += int64(unit)
	}
	return int((sum*7 + 13) % 101)
}

// VerdictFor returns the verdict whose range contains score. Scores outside
// [0,101) fall back to the first verdict.
func VerdictFor(score int) Verdict {
	for _, v := range Verdicts {
		if score >= v.Min && score < v.Max {
			return v
		}
	}
	return Verdicts[0]
}

// Calculate scores the names exactly as given; surrounding whitespace counts
// toward the score. Trimming only decides blankness, which is rejected with
// common.ErrEmptyName, and how the names are displayed.
func Calculate(a, b string) (Result, error) {
	ta, tb := strings.TrimSpace(a), strings.TrimSpace(b)
	if ta == "" || tb == "" {
		return Result{}, common.ErrEmptyName
	}

	score := Score(a, b)
	return Result{A: ta, B: tb, Score: score, Verdict: VerdictFor(score)}, nil
}
