// Package services holds the client-side application services: the device
// profile (nickname and practice flag) and the anonymous device identity.
package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/lovelab/internal/client/repositories/prefs"
	"github.com/dmitrijs2005/lovelab/internal/common"
)

// NicknamePresets are offered by the nickname gate before free text.
var NicknamePresets = []string{"বাবু", "শোনা", "জান", "কলিজা"}

// Profile is the device-scoped state the views depend on. It is passed
// explicitly to every component that needs it.
type Profile interface {
	// Nickname reports the stored nickname and whether one was ever set.
	Nickname(ctx context.Context) (string, bool, error)
	SetNickname(ctx context.Context, name string) error
	ClearNickname(ctx context.Context) error
	PracticeUsed(ctx context.Context) (bool, error)
	MarkPracticeUsed(ctx context.Context) error
}

type profileService struct {
	repo prefs.Repository
}

func NewProfile(repo prefs.Repository) Profile {
	return &profileService{repo: repo}
}

func (p *profileService) Nickname(ctx context.Context) (string, bool, error) {
	v, err := p.repo.Get(ctx, common.PrefNickname)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	return string(v), true, nil
}

// SetNickname stores the trimmed name, replacing any previous one.
func (p *profileService) SetNickname(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return common.ErrEmptyNickname
	}
	return p.repo.Set(ctx, common.PrefNickname, []byte(name))
}

func (p *profileService) ClearNickname(ctx context.Context) error {
	return p.repo.Delete(ctx, common.PrefNickname)
}

func (p *profileService) PracticeUsed(ctx context.Context) (bool, error) {
	v, err := p.repo.Get(ctx, common.PrefPracticeUsed)
	if err != nil {
		return false, err
	}
	return string(v) == "true", nil
}

func (p *profileService) MarkPracticeUsed(ctx context.Context) error {
	return p.repo.Set(ctx, common.PrefPracticeUsed, []byte("true"))
}
