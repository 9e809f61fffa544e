package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"trophyseeker/internal/domain/challenge"
	"trophyseeker/internal/domain/goal"
	"trophyseeker/internal/domain/tip"
	"trophyseeker/internal/domain/user"
	"trophyseeker/internal/domain/video"
	errs "trophyseeker/internal/errors"
)

// Storage keys match the ones the browser client wrote to local storage,
// so exported client data can be imported as-is.
const (
	userKeyPrefix       = "trophySeekerUser_"
	goalsKeyPrefix      = "trophySeekerGoals_"
	tipsKeyPrefix       = "trophySeekerTips_"
	videosKeyPrefix     = "trophySeekerVideos_"
	challengesKeyPrefix = "trophySeekerChallenges_"
	sessionKeyPrefix    = "trophySeekerSession_"
)

func UserKey(username string) string { return userKeyPrefix + username }

func GoalsKey(username string) string { return goalsKeyPrefix + username }

func TipsKey(username string) string { return tipsKeyPrefix + username }

func VideosKey(username string) string { return videosKeyPrefix + username }

func ChallengesKey(username, weekID string) string {
	return challengesKeyPrefix + username + "_" + weekID
}

func SessionKey(sessionID string) string { return sessionKeyPrefix + sessionID }

type UserStateStorage struct {
	kv  KeyValueStore
	log *zap.SugaredLogger
}

func NewUserStateStorage(kv KeyValueStore, log *zap.SugaredLogger) *UserStateStorage {
	return &UserStateStorage{kv: kv, log: log}
}

func (s *UserStateStorage) getJSON(ctx context.Context, key string, dst any) error {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *UserStateStorage) setJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, raw, ttl)
}

// LoadUser returns ErrUserNotFound when nothing is stored for the username.
func (s *UserStateStorage) LoadUser(ctx context.Context, username string) (user.User, error) {
	var u user.User
	err := s.getJSON(ctx, UserKey(username), &u)
	if errors.Is(err, errs.ErrKeyNotFound) {
		return user.User{}, errs.ErrUserNotFound
	}
	return u, err
}

func (s *UserStateStorage) SaveUser(ctx context.Context, u user.User) error {
	return s.setJSON(ctx, UserKey(u.Username), u, 0)
}

func (s *UserStateStorage) DeleteUser(ctx context.Context, username string) error {
	return s.kv.Delete(ctx, UserKey(username))
}

// LoadChallenges returns an empty set when the week has nothing stored or the
// stored value cannot be decoded; the caller regenerates in both cases.
func (s *UserStateStorage) LoadChallenges(ctx context.Context, username, weekID string) ([]challenge.UserChallenge, error) {
	var out []challenge.UserChallenge
	err := s.getJSON(ctx, ChallengesKey(username, weekID), &out)
	if err == nil {
		return out, nil
	}
	if errors.Is(err, errs.ErrKeyNotFound) {
		return nil, nil
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		s.log.Warnw("stored challenges are unreadable, regenerating", "username", username, "week", weekID, "error", err)
		return nil, nil
	}
	return nil, err
}

func (s *UserStateStorage) SaveChallenges(ctx context.Context, username, weekID string, challenges []challenge.UserChallenge) error {
	return s.setJSON(ctx, ChallengesKey(username, weekID), challenges, 0)
}

func (s *UserStateStorage) LoadGoals(ctx context.Context, username string) ([]goal.TrophyGoal, error) {
	var out []goal.TrophyGoal
	if err := s.getJSON(ctx, GoalsKey(username), &out); err != nil && !errors.Is(err, errs.ErrKeyNotFound) {
		return nil, err
	}
	return out, nil
}

func (s *UserStateStorage) SaveGoals(ctx context.Context, username string, goals []goal.TrophyGoal) error {
	return s.setJSON(ctx, GoalsKey(username), goals, 0)
}

func (s *UserStateStorage) LoadTips(ctx context.Context, username string) ([]tip.TrophyTip, error) {
	var out []tip.TrophyTip
	if err := s.getJSON(ctx, TipsKey(username), &out); err != nil && !errors.Is(err, errs.ErrKeyNotFound) {
		return nil, err
	}
	return out, nil
}

func (s *UserStateStorage) SaveTips(ctx context.Context, username string, tips []tip.TrophyTip) error {
	return s.setJSON(ctx, TipsKey(username), tips, 0)
}

func (s *UserStateStorage) LoadVideoSubmissions(ctx context.Context, username string) ([]video.Submission, error) {
	var out []video.Submission
	if err := s.getJSON(ctx, VideosKey(username), &out); err != nil && !errors.Is(err, errs.ErrKeyNotFound) {
		return nil, err
	}
	return out, nil
}

func (s *UserStateStorage) SaveVideoSubmissions(ctx context.Context, username string, submissions []video.Submission) error {
	return s.setJSON(ctx, VideosKey(username), submissions, 0)
}

func (s *UserStateStorage) StoreSession(ctx context.Context, sessionID, username string, ttl time.Duration) error {
	return s.kv.Set(ctx, SessionKey(sessionID), []byte(username), ttl)
}

// GetUsernameBySession returns ErrSessionNotFound for unknown or expired ids.
func (s *UserStateStorage) GetUsernameBySession(ctx context.Context, sessionID string) (string, error) {
	raw, err := s.kv.Get(ctx, SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, errs.ErrKeyNotFound) {
			return "", errs.ErrSessionNotFound
		}
		return "", err
	}
	return string(raw), nil
}

func (s *UserStateStorage) DeleteSession(ctx context.Context, sessionID string) error {
	return s.kv.Delete(ctx, SessionKey(sessionID))
}
