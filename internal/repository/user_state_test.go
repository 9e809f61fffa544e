package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"trophyseeker/internal/domain/challenge"
	"trophyseeker/internal/domain/goal"
	"trophyseeker/internal/domain/user"
	errs "trophyseeker/internal/errors"
)

func newTestState() (*UserStateStorage, *MapKVStorage) {
	kv := NewMapKVStorage()
	return NewUserStateStorage(kv, zap.NewNop().Sugar()), kv
}

func TestStorageKeys(t *testing.T) {
	cases := map[string]string{
		UserKey("alice"):                          "trophySeekerUser_alice",
		GoalsKey("alice"):                         "trophySeekerGoals_alice",
		TipsKey("alice"):                          "trophySeekerTips_alice",
		VideosKey("alice"):                        "trophySeekerVideos_alice",
		ChallengesKey("alice", "Sun Jul 21 2024"): "trophySeekerChallenges_alice_Sun Jul 21 2024",
		SessionKey("abc"):                         "trophySeekerSession_abc",
	}
	for got, want := range cases {
		if got != want {
			t.Errorf("key: got %q, want %q", got, want)
		}
	}
}

func TestUserRoundTrip(t *testing.T) {
	ctx := context.Background()
	state, kv := newTestState()

	if _, err := state.LoadUser(ctx, "alice"); !errors.Is(err, errs.ErrUserNotFound) {
		t.Fatalf("LoadUser missing: got %v, want ErrUserNotFound", err)
	}

	u := user.User{ID: "user_1", Username: "alice", EarnedBadges: []string{"first-goal"}}
	if err := state.SaveUser(ctx, u); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}
	if _, err := kv.Get(ctx, "trophySeekerUser_alice"); err != nil {
		t.Fatalf("user not stored under its username key: %v", err)
	}

	loaded, err := state.LoadUser(ctx, "alice")
	if err != nil {
		t.Fatalf("LoadUser failed: %v", err)
	}
	if loaded.ID != "user_1" || !loaded.HasBadge("first-goal") {
		t.Errorf("LoadUser: got %+v", loaded)
	}
}

func TestLoadChallengesRegeneratesOnGarbage(t *testing.T) {
	ctx := context.Background()
	state, kv := newTestState()
	week := "Sun Jul 21 2024"

	if err := kv.Set(ctx, ChallengesKey("alice", week), []byte("{not json"), 0); err != nil {
		t.Fatal(err)
	}
	got, err := state.LoadChallenges(ctx, "alice", week)
	if err != nil {
		t.Fatalf("LoadChallenges on garbage: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("LoadChallenges on garbage: got %d challenges, want 0", len(got))
	}

	set := []challenge.UserChallenge{{Challenge: challenge.Challenge{ID: "challenge-1"}, WeekID: week}}
	if err := state.SaveChallenges(ctx, "alice", week, set); err != nil {
		t.Fatal(err)
	}
	got, err = state.LoadChallenges(ctx, "alice", week)
	if err != nil || len(got) != 1 || got[0].ID != "challenge-1" {
		t.Errorf("LoadChallenges: got %+v, %v", got, err)
	}
}

func TestGoalsDefaultToEmpty(t *testing.T) {
	ctx := context.Background()
	state, _ := newTestState()

	goals, err := state.LoadGoals(ctx, "alice")
	if err != nil || len(goals) != 0 {
		t.Fatalf("LoadGoals empty: got %v, %v", goals, err)
	}
	if err := state.SaveGoals(ctx, "alice", []goal.TrophyGoal{{ID: "g1", Goal: "Platinum Elden Ring"}}); err != nil {
		t.Fatal(err)
	}
	goals, _ = state.LoadGoals(ctx, "alice")
	if len(goals) != 1 || goals[0].Goal != "Platinum Elden Ring" {
		t.Errorf("LoadGoals: got %+v", goals)
	}
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	state, kv := newTestState()
	now := time.Date(2024, 7, 24, 12, 0, 0, 0, time.UTC)
	kv.now = func() time.Time { return now }

	if err := state.StoreSession(ctx, "sid", "alice", time.Hour); err != nil {
		t.Fatal(err)
	}
	username, err := state.GetUsernameBySession(ctx, "sid")
	if err != nil || username != "alice" {
		t.Fatalf("GetUsernameBySession: got %q, %v", username, err)
	}

	now = now.Add(2 * time.Hour)
	if _, err := state.GetUsernameBySession(ctx, "sid"); !errors.Is(err, errs.ErrSessionNotFound) {
		t.Errorf("expired session: got %v, want ErrSessionNotFound", err)
	}

	if err := state.StoreSession(ctx, "sid2", "bob", 0); err != nil {
		t.Fatal(err)
	}
	if err := state.DeleteSession(ctx, "sid2"); err != nil {
		t.Fatal(err)
	}
	if _, err := state.GetUsernameBySession(ctx, "sid2"); !errors.Is(err, errs.ErrSessionNotFound) {
		t.Errorf("deleted session: got %v, want ErrSessionNotFound", err)
	}
}
