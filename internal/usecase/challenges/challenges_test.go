package challenges

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"trophyseeker/internal/domain/user"
	errs "trophyseeker/internal/errors"
	"trophyseeker/internal/random"
	"trophyseeker/internal/repository"
	"trophyseeker/internal/usecase/profile"
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func newTestUsecase(t *testing.T, c *clock) (*ChallengeUsecase, *repository.UserStateStorage) {
	t.Helper()
	log := zap.NewNop().Sugar()
	state := repository.NewUserStateStorage(repository.NewMapKVStorage(), log)
	if err := state.SaveUser(context.Background(), user.User{ID: "user_1", Username: "alice"}); err != nil {
		t.Fatal(err)
	}
	uc := NewChallengeUsecase(state, profile.NewManager(state), random.NewSeeded(42), c.Now, 3, log)
	return uc, state
}

// userWriteFailKV fails writes of user records while failUsers is set.
type userWriteFailKV struct {
	repository.KeyValueStore
	failUsers bool
}

func (f *userWriteFailKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if f.failUsers && strings.HasPrefix(key, repository.UserKey("")) {
		return errors.New("disk full")
	}
	return f.KeyValueStore.Set(ctx, key, value, ttl)
}

func TestWeekID(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 7, 21, 0, 0, 0, 0, time.UTC), "Sun Jul 21 2024"},
		{time.Date(2024, 7, 24, 15, 30, 0, 0, time.UTC), "Sun Jul 21 2024"},
		{time.Date(2024, 7, 27, 23, 59, 0, 0, time.UTC), "Sun Jul 21 2024"},
		{time.Date(2024, 7, 28, 0, 0, 1, 0, time.UTC), "Sun Jul 28 2024"},
		{time.Date(2024, 8, 1, 9, 0, 0, 0, time.UTC), "Sun Jul 28 2024"},
	}
	for _, tc := range cases {
		if got := WeekID(tc.in); got != tc.want {
			t.Errorf("WeekID(%v): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCurrentIsStableWithinWeek(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Date(2024, 7, 22, 10, 0, 0, 0, time.UTC)}
	uc, _ := newTestUsecase(t, c)

	first, err := uc.Current(ctx, "alice")
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("got %d challenges, want 3", len(first))
	}
	seen := map[string]bool{}
	for _, ch := range first {
		if seen[ch.ID] {
			t.Errorf("duplicate challenge %s", ch.ID)
		}
		seen[ch.ID] = true
		if ch.WeekID != "Sun Jul 21 2024" {
			t.Errorf("WeekID: got %q", ch.WeekID)
		}
	}

	c.t = c.t.Add(72 * time.Hour)
	second, err := uc.Current(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("challenges changed within the week: %v vs %v", first, second)
		}
	}

	c.t = time.Date(2024, 7, 29, 10, 0, 0, 0, time.UTC)
	next, err := uc.Current(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(next) != 3 || next[0].WeekID != "Sun Jul 28 2024" {
		t.Errorf("next week: got %+v", next)
	}
}

func TestCompleteAndClaim(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Date(2024, 7, 22, 10, 0, 0, 0, time.UTC)}
	uc, state := newTestUsecase(t, c)

	current, err := uc.Current(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	target := current[0]

	if _, err := uc.Claim(ctx, "alice", target.ID); !errors.Is(err, errs.ErrChallengeNotCompleted) {
		t.Fatalf("Claim before completion: got %v, want ErrChallengeNotCompleted", err)
	}

	done, err := uc.Complete(ctx, "alice", target.ID)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if !done.IsCompleted || done.CompletedTimestamp != c.t.UnixMilli() {
		t.Errorf("Complete: got %+v", done)
	}

	c.t = c.t.Add(time.Hour)
	again, err := uc.Complete(ctx, "alice", target.ID)
	if err != nil {
		t.Fatal(err)
	}
	if again.CompletedTimestamp != done.CompletedTimestamp {
		t.Errorf("second Complete moved the timestamp: %d vs %d", again.CompletedTimestamp, done.CompletedTimestamp)
	}

	awarded, err := uc.Claim(ctx, "alice", target.ID)
	if err != nil {
		t.Fatalf("Claim failed: %v", err)
	}
	if awarded.ID != target.BadgeID {
		t.Errorf("Claim: got badge %q, want %q", awarded.ID, target.BadgeID)
	}

	if _, err := uc.Claim(ctx, "alice", target.ID); !errors.Is(err, errs.ErrBadgeAlreadyClaimed) {
		t.Errorf("second Claim: got %v, want ErrBadgeAlreadyClaimed", err)
	}

	u, err := state.LoadUser(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(u.EarnedBadges) != 1 || u.EarnedBadges[0] != target.BadgeID {
		t.Errorf("EarnedBadges: got %v", u.EarnedBadges)
	}

	stored, err := state.LoadChallenges(ctx, "alice", "Sun Jul 21 2024")
	if err != nil {
		t.Fatal(err)
	}
	if !stored[0].IsClaimed {
		t.Error("claimed state was not persisted")
	}
}

func TestClaimSharedBadgeIsNotDuplicated(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Date(2024, 7, 22, 10, 0, 0, 0, time.UTC)}
	uc, state := newTestUsecase(t, c)

	current, err := uc.Current(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	for _, ch := range current {
		if _, err := uc.Complete(ctx, "alice", ch.ID); err != nil {
			t.Fatal(err)
		}
		if _, err := uc.Claim(ctx, "alice", ch.ID); err != nil {
			t.Fatal(err)
		}
	}

	u, _ := state.LoadUser(ctx, "alice")
	seen := map[string]bool{}
	for _, id := range u.EarnedBadges {
		if seen[id] {
			t.Errorf("badge %s awarded twice", id)
		}
		seen[id] = true
	}

	earned, err := uc.EarnedBadges(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(earned) != len(seen) {
		t.Errorf("EarnedBadges: got %d, want %d", len(earned), len(seen))
	}
}

func TestUnknownChallenge(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUsecase(t, &clock{t: time.Date(2024, 7, 22, 10, 0, 0, 0, time.UTC)})

	if _, err := uc.Complete(ctx, "alice", "challenge-404"); !errors.Is(err, errs.ErrChallengeNotFound) {
		t.Errorf("Complete: got %v, want ErrChallengeNotFound", err)
	}
	if _, err := uc.Claim(ctx, "alice", "challenge-404"); !errors.Is(err, errs.ErrChallengeNotFound) {
		t.Errorf("Claim: got %v, want ErrChallengeNotFound", err)
	}
}

func TestBadgesShowcase(t *testing.T) {
	ctx := context.Background()
	uc, state := newTestUsecase(t, &clock{t: time.Now()})

	anonymous, err := uc.Badges(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range anonymous {
		if b.Earned {
			t.Errorf("anonymous viewer has badge %s", b.ID)
		}
	}

	if err := state.SaveUser(ctx, user.User{ID: "user_1", Username: "alice", EarnedBadges: []string{"first-goal"}}); err != nil {
		t.Fatal(err)
	}
	own, err := uc.Badges(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	earned := 0
	for _, b := range own {
		if b.Earned {
			earned++
			if b.ID != "first-goal" {
				t.Errorf("unexpected earned badge %s", b.ID)
			}
		}
	}
	if earned != 1 {
		t.Errorf("earned badges: got %d, want 1", earned)
	}
}

func TestFailedUserSaveKeepsChallengesRetryable(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Date(2024, 7, 22, 10, 0, 0, 0, time.UTC)}
	log := zap.NewNop().Sugar()
	kv := &userWriteFailKV{KeyValueStore: repository.NewMapKVStorage()}
	state := repository.NewUserStateStorage(kv, log)
	if err := state.SaveUser(ctx, user.User{ID: "user_1", Username: "alice"}); err != nil {
		t.Fatal(err)
	}
	uc := NewChallengeUsecase(state, profile.NewManager(state), random.NewSeeded(42), c.Now, 3, log)

	current, err := uc.Current(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	target := current[0]

	kv.failUsers = true
	if _, err := uc.Complete(ctx, "alice", target.ID); err == nil {
		t.Fatal("Complete with failing user save: got nil error")
	}
	stored, err := state.LoadChallenges(ctx, "alice", target.WeekID)
	if err != nil {
		t.Fatal(err)
	}
	if stored[0].IsCompleted {
		t.Error("failed Complete persisted the completion")
	}

	kv.failUsers = false
	if _, err := uc.Complete(ctx, "alice", target.ID); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	kv.failUsers = true
	if _, err := uc.Claim(ctx, "alice", target.ID); err == nil {
		t.Fatal("Claim with failing user save: got nil error")
	}
	stored, err = state.LoadChallenges(ctx, "alice", target.WeekID)
	if err != nil {
		t.Fatal(err)
	}
	if stored[0].IsClaimed {
		t.Error("failed Claim persisted the claimed flag")
	}

	kv.failUsers = false
	awarded, err := uc.Claim(ctx, "alice", target.ID)
	if err != nil {
		t.Fatalf("retry Claim: %v", err)
	}
	if awarded.ID != target.BadgeID {
		t.Errorf("retry Claim: got badge %q, want %q", awarded.ID, target.BadgeID)
	}
	u, err := state.LoadUser(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if !u.HasBadge(target.BadgeID) {
		t.Errorf("EarnedBadges after retry: got %v, want %s", u.EarnedBadges, target.BadgeID)
	}
}
