package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	isTerminal = term.IsTerminal
	getSize    = term.GetSize
)

// lineReader reads input lines on one goroutine so that a command can wait
// for Enter and a timer at the same time.
type lineReader struct {
	lines chan string
	err   error
}

func newLineReader(r io.Reader) *lineReader {
	l := &lineReader{lines: make(chan string)}
	go func() {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			l.lines <- sc.Text()
		}
		l.err = sc.Err()
		close(l.lines)
	}()
	return l
}

// Lines is closed at end of input.
func (l *lineReader) Lines() <-chan string { return l.lines }

// ReadLine returns io.EOF once input is exhausted.
func (l *lineReader) ReadLine(ctx context.Context) (string, error) {
	select {
	case line, ok := <-l.lines:
		if !ok {
			if l.err != nil {
				return "", l.err
			}
			return "", io.EOF
		}
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// GetSimpleText prints a prompt to w and reads one trimmed line.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(ctx context.Context, in *lineReader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := in.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetYesNo asks a [Y/n] question. Empty input means yes; end of input
// means no.
func GetYesNo(ctx context.Context, in *lineReader, prompt string, w io.Writer) bool {
	answer, err := GetSimpleText(ctx, in, prompt+" [Y/n]", w)
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "", "y", "yes":
		return true
	}
	return false
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, context.Canceled)
}

func interactive() bool {
	return isTerminal(int(os.Stdin.Fd()))
}

// termWidth is the width used for wrapping cards, 80 when unknown.
func termWidth() int {
	w, _, err := getSize(int(os.Stdout.Fd()))
	if err != nil || w < 20 {
		return 80
	}
	return min(w, 100)
}
