package challenges

import (
	"context"
	"time"

	"go.uber.org/zap"

	"trophyseeker/internal/domain/badge"
	"trophyseeker/internal/domain/catalog"
	"trophyseeker/internal/domain/challenge"
	"trophyseeker/internal/domain/user"
	errs "trophyseeker/internal/errors"
	"trophyseeker/internal/random"
)

const (
	weekIDLayout           = "Mon Jan 02 2006"
	defaultChallengesCount = 3
)

type ChallengeStore interface {
	LoadChallenges(ctx context.Context, username, weekID string) ([]challenge.UserChallenge, error)
	SaveChallenges(ctx context.Context, username, weekID string, challenges []challenge.UserChallenge) error
}

type Profiles interface {
	Get(ctx context.Context, username string) (user.User, error)
	Update(ctx context.Context, username string, fn func(u *user.User) error) (user.User, error)
	UpdateWith(ctx context.Context, username string, fn func(u *user.User) error, afterSave func(u user.User) error) (user.User, error)
}

type ChallengeUsecase struct {
	store    ChallengeStore
	profiles Profiles
	rnd      *random.Source
	now      func() time.Time
	perWeek  int
	log      *zap.SugaredLogger
}

func NewChallengeUsecase(store ChallengeStore, profiles Profiles, rnd *random.Source, now func() time.Time, perWeek int, log *zap.SugaredLogger) *ChallengeUsecase {
	if perWeek <= 0 {
		perWeek = defaultChallengesCount
	}
	return &ChallengeUsecase{
		store:    store,
		profiles: profiles,
		rnd:      rnd,
		now:      now,
		perWeek:  perWeek,
		log:      log,
	}
}

// WeekID names the week containing t by the date of its Sunday, e.g. "Sun Jul 21 2024".
func WeekID(t time.Time) string {
	return t.AddDate(0, 0, -int(t.Weekday())).Format(weekIDLayout)
}

// EnsureWeekly makes u.ActiveChallenges the current week's set, generating and
// storing a fresh one when the week has none. The caller saves u.
func (c *ChallengeUsecase) EnsureWeekly(ctx context.Context, u *user.User) error {
	weekID := WeekID(c.now())
	current, err := c.store.LoadChallenges(ctx, u.Username, weekID)
	if err != nil {
		return err
	}
	if len(current) == 0 {
		current = c.pick(weekID)
		if err := c.store.SaveChallenges(ctx, u.Username, weekID, current); err != nil {
			return err
		}
		c.log.Infow("generated weekly challenges", "username", u.Username, "week", weekID, "count", len(current))
	}
	u.ActiveChallenges = current
	return nil
}

func (c *ChallengeUsecase) pick(weekID string) []challenge.UserChallenge {
	n := min(c.perWeek, len(catalog.Challenges))
	out := make([]challenge.UserChallenge, 0, n)
	for _, idx := range c.rnd.Perm(len(catalog.Challenges))[:n] {
		out = append(out, challenge.UserChallenge{
			Challenge: catalog.Challenges[idx],
			WeekID:    weekID,
		})
	}
	return out
}

func (c *ChallengeUsecase) Current(ctx context.Context, username string) ([]challenge.UserChallenge, error) {
	u, err := c.profiles.Update(ctx, username, func(u *user.User) error {
		return c.EnsureWeekly(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	return u.ActiveChallenges, nil
}

func (c *ChallengeUsecase) Complete(ctx context.Context, username, challengeID string) (challenge.UserChallenge, error) {
	var (
		result  challenge.UserChallenge
		changed bool
	)
	_, err := c.profiles.UpdateWith(ctx, username, func(u *user.User) error {
		if err := c.EnsureWeekly(ctx, u); err != nil {
			return err
		}
		idx := indexOf(u.ActiveChallenges, challengeID)
		if idx < 0 {
			return errs.ErrChallengeNotFound
		}
		target := &u.ActiveChallenges[idx]
		if !target.IsCompleted {
			target.IsCompleted = true
			target.CompletedTimestamp = c.now().UnixMilli()
			changed = true
		}
		result = *target
		return nil
	}, func(u user.User) error {
		if !changed {
			return nil
		}
		return c.store.SaveChallenges(ctx, u.Username, result.WeekID, u.ActiveChallenges)
	})
	if err != nil {
		return challenge.UserChallenge{}, err
	}
	return result, nil
}

// Claim marks a completed challenge as claimed and awards its badge.
func (c *ChallengeUsecase) Claim(ctx context.Context, username, challengeID string) (badge.Badge, error) {
	var (
		awarded badge.Badge
		weekID  string
	)
	// the week set is written only once the user record holds the badge
	_, err := c.profiles.UpdateWith(ctx, username, func(u *user.User) error {
		if err := c.EnsureWeekly(ctx, u); err != nil {
			return err
		}
		idx := indexOf(u.ActiveChallenges, challengeID)
		if idx < 0 {
			return errs.ErrChallengeNotFound
		}
		target := &u.ActiveChallenges[idx]
		if !target.IsCompleted {
			return errs.ErrChallengeNotCompleted
		}
		if target.IsClaimed {
			return errs.ErrBadgeAlreadyClaimed
		}
		target.IsClaimed = true
		weekID = target.WeekID
		if !u.HasBadge(target.BadgeID) {
			u.EarnedBadges = append(u.EarnedBadges, target.BadgeID)
		}
		awarded = resolveBadge(target.BadgeID)
		return nil
	}, func(u user.User) error {
		return c.store.SaveChallenges(ctx, u.Username, weekID, u.ActiveChallenges)
	})
	if err != nil {
		return badge.Badge{}, err
	}
	return awarded, nil
}

// EarnedBadges resolves the user's badge ids against the catalog, dropping
// duplicates and unknown ids.
func (c *ChallengeUsecase) EarnedBadges(ctx context.Context, username string) ([]badge.Badge, error) {
	u, err := c.profiles.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(u.EarnedBadges))
	out := make([]badge.Badge, 0, len(u.EarnedBadges))
	for _, id := range u.EarnedBadges {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if b, ok := catalog.BadgeByID(id); ok {
			out = append(out, b)
		}
	}
	return out, nil
}

// Badges lists the whole catalog; an empty username marks nothing as earned.
func (c *ChallengeUsecase) Badges(ctx context.Context, username string) ([]badge.Showcase, error) {
	var u user.User
	if username != "" {
		var err error
		if u, err = c.profiles.Get(ctx, username); err != nil {
			return nil, err
		}
	}
	out := make([]badge.Showcase, 0, len(catalog.Badges))
	for _, b := range catalog.Badges {
		out = append(out, badge.Showcase{Badge: b, Earned: u.HasBadge(b.ID)})
	}
	return out, nil
}

func indexOf(list []challenge.UserChallenge, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func resolveBadge(id string) badge.Badge {
	if b, ok := catalog.BadgeByID(id); ok {
		return b
	}
	return badge.Badge{ID: id, Name: id}
}
