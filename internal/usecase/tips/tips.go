package tips

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"trophyseeker/internal/domain/tip"
	"trophyseeker/internal/domain/user"
	errs "trophyseeker/internal/errors"
)

type TipStore interface {
	LoadTips(ctx context.Context, username string) ([]tip.TrophyTip, error)
	SaveTips(ctx context.Context, username string, tips []tip.TrophyTip) error
}

type Profiles interface {
	Get(ctx context.Context, username string) (user.User, error)
	Lock(username string) func()
}

type TipsUsecase struct {
	store    TipStore
	profiles Profiles
	now      func() time.Time
}

func NewTipsUsecase(store TipStore, profiles Profiles, now func() time.Time) *TipsUsecase {
	return &TipsUsecase{store: store, profiles: profiles, now: now}
}

func (t *TipsUsecase) List(ctx context.Context, username string) ([]tip.TrophyTip, error) {
	tips, err := t.store.LoadTips(ctx, username)
	if err != nil {
		return nil, err
	}
	if tips == nil {
		tips = []tip.TrophyTip{}
	}
	return tips, nil
}

func (t *TipsUsecase) Submit(ctx context.Context, username, text string) (tip.TrophyTip, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return tip.TrophyTip{}, errs.ErrEmptyTip
	}

	unlock := t.profiles.Lock(username)
	defer unlock()

	u, err := t.profiles.Get(ctx, username)
	if err != nil {
		return tip.TrophyTip{}, err
	}
	tips, err := t.store.LoadTips(ctx, username)
	if err != nil {
		return tip.TrophyTip{}, err
	}

	created := tip.TrophyTip{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Username:  u.Username,
		Tip:       text,
		Timestamp: t.now().UnixMilli(),
	}
	if err := t.store.SaveTips(ctx, username, append([]tip.TrophyTip{created}, tips...)); err != nil {
		return tip.TrophyTip{}, err
	}
	return created, nil
}
