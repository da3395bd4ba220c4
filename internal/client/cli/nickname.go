package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/lovelab/internal/client/services"
	"github.com/dmitrijs2005/lovelab/internal/common"
)

// ensureNickname loads the stored nickname or asks for one until a valid
// name is given.
func (a *App) ensureNickname(ctx context.Context) error {
	name, ok, err := a.profile.Nickname(ctx)
	if err != nil {
		a.log.Warn(ctx, "failed to read nickname", "error", err)
	}
	if ok {
		a.nickname = name
		return nil
	}
	for {
		if err := a.askNickname(ctx, nil); err == nil {
			return nil
		} else if !errors.Is(err, common.ErrEmptyNickname) {
			return err
		}
	}
}

// Nickname changes the nickname; with arguments they are used as the name.
func (a *App) Nickname(ctx context.Context, args []string) error {
	return a.askNickname(ctx, args)
}

func (a *App) askNickname(ctx context.Context, args []string) error {
	input := strings.Join(args, " ")
	if input == "" {
		var opts []string
		for i, p := range services.NicknamePresets {
			opts = append(opts, fmt.Sprintf("%d) %s", i+1, p))
		}
		var err error
		input, err = GetSimpleText(ctx, a.in, "What should we call you? "+strings.Join(opts, "  ")+" or type your own", a.out)
		if err != nil {
			return err
		}
	}

	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(services.NicknamePresets) {
		input = services.NicknamePresets[n-1]
	}

	if err := a.profile.SetNickname(ctx, input); err != nil {
		if errors.Is(err, common.ErrEmptyNickname) {
			printlnFn("A nickname can't be empty 🙈")
		} else {
			printlnFn("Couldn't save nickname:", err)
		}
		return err
	}
	a.nickname = strings.TrimSpace(input)
	printlnFn(fmt.Sprintf("Nice to meet you, %s 💖", a.nickname))
	return nil
}
