package goals

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"trophyseeker/internal/domain/goal"
	"trophyseeker/internal/domain/user"
	errs "trophyseeker/internal/errors"
)

type GoalStore interface {
	LoadGoals(ctx context.Context, username string) ([]goal.TrophyGoal, error)
	SaveGoals(ctx context.Context, username string, goals []goal.TrophyGoal) error
}

type Profiles interface {
	Get(ctx context.Context, username string) (user.User, error)
	Lock(username string) func()
}

type GoalsUsecase struct {
	store    GoalStore
	profiles Profiles
	now      func() time.Time
}

func NewGoalsUsecase(store GoalStore, profiles Profiles, now func() time.Time) *GoalsUsecase {
	return &GoalsUsecase{store: store, profiles: profiles, now: now}
}

// List returns the user's goals, newest first.
func (g *GoalsUsecase) List(ctx context.Context, username string) ([]goal.TrophyGoal, error) {
	goals, err := g.store.LoadGoals(ctx, username)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		goals = []goal.TrophyGoal{}
	}
	return goals, nil
}

func (g *GoalsUsecase) Add(ctx context.Context, username, text string) (goal.TrophyGoal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return goal.TrophyGoal{}, errs.ErrEmptyGoal
	}

	unlock := g.profiles.Lock(username)
	defer unlock()

	u, err := g.profiles.Get(ctx, username)
	if err != nil {
		return goal.TrophyGoal{}, err
	}
	goals, err := g.store.LoadGoals(ctx, username)
	if err != nil {
		return goal.TrophyGoal{}, err
	}

	created := goal.TrophyGoal{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Username:  u.Username,
		Goal:      text,
		Timestamp: g.now().UnixMilli(),
	}
	if err := g.store.SaveGoals(ctx, username, append([]goal.TrophyGoal{created}, goals...)); err != nil {
		return goal.TrophyGoal{}, err
	}
	return created, nil
}

// Toggle flips the completion flag of one goal.
func (g *GoalsUsecase) Toggle(ctx context.Context, username, goalID string) (goal.TrophyGoal, error) {
	unlock := g.profiles.Lock(username)
	defer unlock()

	goals, err := g.store.LoadGoals(ctx, username)
	if err != nil {
		return goal.TrophyGoal{}, err
	}
	for i := range goals {
		if goals[i].ID != goalID {
			continue
		}
		goals[i].IsCompleted = !goals[i].IsCompleted
		if err := g.store.SaveGoals(ctx, username, goals); err != nil {
			return goal.TrophyGoal{}, err
		}
		return goals[i], nil
	}
	return goal.TrophyGoal{}, errs.ErrGoalNotFound
}
