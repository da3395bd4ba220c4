package cli

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/lovelab/internal/client/models"
)

// wrap breaks text into lines of at most width runes on word boundaries.
// Words longer than width are split.
func wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		var cur strings.Builder
		curLen := 0
		for _, word := range strings.Fields(para) {
			for utf8.RuneCountInString(word) > width {
				if curLen > 0 {
					lines = append(lines, cur.String())
					cur.Reset()
					curLen = 0
				}
				r := []rune(word)
				lines = append(lines, string(r[:width]))
				word = string(r[width:])
			}
			n := utf8.RuneCountInString(word)
			if curLen > 0 && curLen+1+n > width {
				lines = append(lines, cur.String())
				cur.Reset()
				curLen = 0
			}
			if curLen > 0 {
				cur.WriteByte(' ')
				curLen++
			}
			cur.WriteString(word)
			curLen += n
		}
		if curLen > 0 || len(lines) == 0 {
			lines = append(lines, cur.String())
		}
	}
	return lines
}

func stars(n int) string {
	n = min(max(n, 0), 5)
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

// ago renders a coarse relative time.
func ago(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// renderCard formats confession n (1-based) for the wall.
func renderCard(n int, c models.Confession, width int, now time.Time) string {
	var b strings.Builder
	indent := "     "
	for i, line := range wrap(c.Text, width-len(indent)) {
		if i == 0 {
			fmt.Fprintf(&b, "%3d. %s\n", n, line)
			continue
		}
		b.WriteString(indent + line + "\n")
	}
	if c.Crush != "" {
		fmt.Fprintf(&b, "%sto: %s\n", indent, c.Crush)
	}
	fmt.Fprintf(&b, "%s❤️ %d  · %s", indent, c.Hearts, ago(c.CreatedAt, now))
	return b.String()
}
