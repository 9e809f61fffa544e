package stats

import (
	"context"
	"fmt"
	"math"
	"time"

	"trophyseeker/internal/domain/catalog"
	"trophyseeker/internal/domain/game"
	"trophyseeker/internal/domain/goal"
	"trophyseeker/internal/domain/tip"
	"trophyseeker/internal/domain/user"
	errs "trophyseeker/internal/errors"
)

const playHoursPerDay = 2

type Profiles interface {
	Get(ctx context.Context, username string) (user.User, error)
}

type ContributionStore interface {
	LoadGoals(ctx context.Context, username string) ([]goal.TrophyGoal, error)
	LoadTips(ctx context.Context, username string) ([]tip.TrophyTip, error)
}

type StatsUsecase struct {
	profiles Profiles
	store    ContributionStore
	now      func() time.Time
}

func NewStatsUsecase(profiles Profiles, store ContributionStore, now func() time.Time) *StatsUsecase {
	return &StatsUsecase{profiles: profiles, store: store, now: now}
}

type GameComparison struct {
	Game   game.Game             `json:"game"`
	Mine   user.GameTrophyCounts `json:"mine"`
	Theirs user.GameTrophyCounts `json:"theirs"`
}

type Comparison struct {
	Friend user.FriendUser  `json:"friend"`
	Games  []GameComparison `json:"games"`
}

type Prediction struct {
	GameID         string `json:"gameId"`
	HoursRemaining int    `json:"hoursRemaining"`
	TargetDate     string `json:"targetDate"`
	Summary        string `json:"summary"`
}

// Stats returns directory hunters' simulated stats, the caller's own stats
// for an empty or own target, and zero stats for anyone else.
func (s *StatsUsecase) Stats(ctx context.Context, username, targetID string) (user.Stats, error) {
	if d, ok := catalog.DirectoryByID(targetID); ok {
		return d.Stats, nil
	}
	u, err := s.profiles.Get(ctx, username)
	if err != nil {
		return user.Stats{}, err
	}
	if targetID != "" && targetID != u.ID {
		return user.Stats{GameTrophyCounts: map[string]user.GameTrophyCounts{}}, nil
	}
	return s.own(ctx, u)
}

func (s *StatsUsecase) own(ctx context.Context, u user.User) (user.Stats, error) {
	tips, err := s.store.LoadTips(ctx, u.Username)
	if err != nil {
		return user.Stats{}, err
	}
	goals, err := s.store.LoadGoals(ctx, u.Username)
	if err != nil {
		return user.Stats{}, err
	}
	completed := 0
	for _, g := range goals {
		if g.IsCompleted {
			completed++
		}
	}
	counts := u.GameTrophyCounts
	if counts == nil {
		counts = map[string]user.GameTrophyCounts{}
	}
	return user.Stats{
		TipsCount:        len(tips),
		GoalsCompleted:   completed,
		GoalsTotal:       len(goals),
		BadgesEarned:     len(u.EarnedBadges),
		GameTrophyCounts: counts,
	}, nil
}

// Compare lines up the caller's and a friend's tallies for every catalog game.
func (s *StatsUsecase) Compare(ctx context.Context, username, friendID string) (Comparison, error) {
	u, err := s.profiles.Get(ctx, username)
	if err != nil {
		return Comparison{}, err
	}
	var friend user.FriendUser
	found := false
	for _, f := range u.FriendsList {
		if f.ID == friendID {
			friend, found = f, true
			break
		}
	}
	if !found {
		return Comparison{}, errs.ErrFriendNotFound
	}

	mine, err := s.own(ctx, u)
	if err != nil {
		return Comparison{}, err
	}
	theirs, err := s.Stats(ctx, username, friendID)
	if err != nil {
		return Comparison{}, err
	}

	games := make([]GameComparison, 0, len(catalog.Games))
	for _, g := range catalog.Games {
		games = append(games, GameComparison{
			Game:   g,
			Mine:   mine.GameTrophyCounts[g.ID],
			Theirs: theirs.GameTrophyCounts[g.ID],
		})
	}
	return Comparison{Friend: friend, Games: games}, nil
}

// HoursRemaining estimates hunting hours left for a game given the trophies
// already earned in it.
func HoursRemaining(gameID string, totalTrophies int) float64 {
	t := float64(totalTrophies)
	switch gameID {
	case "hfw":
		return math.Max(0, 60-t*1.2)
	case "er":
		return math.Max(0, 100-t*2)
	default:
		return math.Max(5, 40-t*0.8)
	}
}

func (s *StatsUsecase) Predict(ctx context.Context, username, gameID string) (Prediction, error) {
	g, ok := catalog.GameByID(gameID)
	if !ok {
		return Prediction{}, errs.ErrGameNotFound
	}
	u, err := s.profiles.Get(ctx, username)
	if err != nil {
		return Prediction{}, err
	}

	hours := HoursRemaining(gameID, u.GameTrophyCounts[gameID].Total())
	days := int(math.Ceil(hours / playHoursPerDay))
	target := s.now().AddDate(0, 0, days)

	summary := fmt.Sprintf("### Prediction for %s 📈\n\n"+
		"Based on your current progress and typical completion rates, I predict you have approximately **%d hours** of hunting remaining.\n\n"+
		"📅 **Projected Platinum Date:** %s\n\n"+
		"*Tip: Focus on cleaning up those bronze \"collectible\" trophies first to build momentum!*",
		g.Name, int(math.Floor(hours)), target.Format("Jan 2, 2006"))

	return Prediction{
		GameID:         gameID,
		HoursRemaining: int(math.Floor(hours)),
		TargetDate:     target.Format(time.DateOnly),
		Summary:        summary,
	}, nil
}
