package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trophyseeker/internal/domain/catalog"
	"trophyseeker/internal/domain/challenge"
	"trophyseeker/internal/domain/user"
	errs "trophyseeker/internal/errors"
	"trophyseeker/internal/random"
)

type UserStore interface {
	LoadUser(ctx context.Context, username string) (user.User, error)
	SaveUser(ctx context.Context, u user.User) error
}

type SessionStore interface {
	StoreSession(ctx context.Context, sessionID, username string, ttl time.Duration) error
	GetUsernameBySession(ctx context.Context, sessionID string) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type Locker interface {
	Lock(username string) func()
}

type WeeklyChallenges interface {
	EnsureWeekly(ctx context.Context, u *user.User) error
}

type SessionUsecase struct {
	users      UserStore
	sessions   SessionStore
	locker     Locker
	challenges WeeklyChallenges
	rnd        *random.Source
	now        func() time.Time
	ttl        time.Duration
	log        *zap.SugaredLogger
}

func NewSessionUsecase(
	users UserStore,
	sessions SessionStore,
	locker Locker,
	challenges WeeklyChallenges,
	rnd *random.Source,
	now func() time.Time,
	ttl time.Duration,
	log *zap.SugaredLogger,
) *SessionUsecase {
	return &SessionUsecase{
		users:      users,
		sessions:   sessions,
		locker:     locker,
		challenges: challenges,
		rnd:        rnd,
		now:        now,
		ttl:        ttl,
		log:        log,
	}
}

// Login signs in username, creating the user on first sight, and opens a session.
func (s *SessionUsecase) Login(ctx context.Context, username string) (string, user.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", user.User{}, errs.ErrEmptyUsername
	}

	unlock := s.locker.Lock(username)
	defer unlock()

	u, err := s.users.LoadUser(ctx, username)
	switch {
	case errors.Is(err, errs.ErrUserNotFound):
		u = s.newUser(username)
		s.log.Infow("registered new user", "username", username, "id", u.ID)
	case err != nil:
		return "", user.User{}, err
	default:
		s.fillMissing(&u)
	}

	if err := s.challenges.EnsureWeekly(ctx, &u); err != nil {
		return "", user.User{}, err
	}
	if err := s.users.SaveUser(ctx, u); err != nil {
		return "", user.User{}, err
	}

	sessionID := uuid.NewString()
	if err := s.sessions.StoreSession(ctx, sessionID, username, s.ttl); err != nil {
		return "", user.User{}, err
	}
	return sessionID, u, nil
}

// Restore rehydrates the user behind sessionID the way a page reload does.
func (s *SessionUsecase) Restore(ctx context.Context, sessionID string) (user.User, error) {
	username, err := s.sessions.GetUsernameBySession(ctx, sessionID)
	if err != nil {
		return user.User{}, err
	}

	unlock := s.locker.Lock(username)
	defer unlock()

	u, err := s.users.LoadUser(ctx, username)
	if errors.Is(err, errs.ErrUserNotFound) {
		if delErr := s.sessions.DeleteSession(ctx, sessionID); delErr != nil {
			s.log.Warnw("delete orphaned session", "session", sessionID, "error", delErr)
		}
		return user.User{}, errs.ErrSessionNotFound
	}
	if err != nil {
		return user.User{}, err
	}

	s.fillMissing(&u)
	if len(u.FriendRequestsReceived) == 0 {
		s.addSimulatedRequest(&u)
	}
	if err := s.challenges.EnsureWeekly(ctx, &u); err != nil {
		return user.User{}, err
	}
	if err := s.users.SaveUser(ctx, u); err != nil {
		return user.User{}, err
	}
	return u, nil
}

// Logout drops the session; the user's data stays stored under the username.
func (s *SessionUsecase) Logout(ctx context.Context, sessionID string) error {
	if _, err := s.sessions.GetUsernameBySession(ctx, sessionID); err != nil {
		return err
	}
	return s.sessions.DeleteSession(ctx, sessionID)
}

func (s *SessionUsecase) Resolve(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", errs.ErrSessionNotFound
	}
	return s.sessions.GetUsernameBySession(ctx, sessionID)
}

func (s *SessionUsecase) newUser(username string) user.User {
	u := user.User{
		ID:                     "user_" + uuid.NewString(),
		Username:               username,
		FriendRequestsSent:     []user.FriendRequest{},
		FriendRequestsReceived: []user.FriendRequest{},
		FriendsList:            []user.FriendUser{},
		EarnedBadges:           []string{},
		ActiveChallenges:       []challenge.UserChallenge{},
		GameTrophyCounts:       s.randomTrophies(),
	}
	s.addSimulatedRequest(&u)
	return u
}

func (s *SessionUsecase) fillMissing(u *user.User) {
	if u.FriendRequestsSent == nil {
		u.FriendRequestsSent = []user.FriendRequest{}
	}
	if u.FriendRequestsReceived == nil {
		u.FriendRequestsReceived = []user.FriendRequest{}
	}
	if u.FriendsList == nil {
		u.FriendsList = []user.FriendUser{}
	}
	if u.EarnedBadges == nil {
		u.EarnedBadges = []string{}
	}
	if u.ActiveChallenges == nil {
		u.ActiveChallenges = []challenge.UserChallenge{}
	}
	if u.GameTrophyCounts == nil {
		u.GameTrophyCounts = s.randomTrophies()
	}
}

// addSimulatedRequest queues the demo request from the simulated sender,
// unless the two are already friends.
func (s *SessionUsecase) addSimulatedRequest(u *user.User) {
	sender, ok := catalog.DirectoryByUsername(catalog.SimulatedSenderUsername)
	if !ok || u.IsFriend(sender.User.ID) {
		return
	}
	u.FriendRequestsReceived = append(u.FriendRequestsReceived, user.FriendRequest{
		ID:               "req_" + uuid.NewString(),
		SenderID:         sender.User.ID,
		SenderUsername:   sender.User.Username,
		ReceiverID:       u.ID,
		ReceiverUsername: u.Username,
		Status:           user.StatusPending,
		Timestamp:        s.now().Add(-24 * time.Hour).UnixMilli(),
	})
}

func (s *SessionUsecase) randomTrophies() map[string]user.GameTrophyCounts {
	counts := make(map[string]user.GameTrophyCounts)
	for _, g := range catalog.Games {
		// 70% chance the game was played at all
		if s.rnd.Float64() <= 0.3 {
			continue
		}
		var platinum int
		if s.rnd.Float64() > 0.8 && s.rnd.Float64() > 0.5 {
			platinum = 1
		}
		counts[g.ID] = user.GameTrophyCounts{
			Platinum: platinum,
			Gold:     s.rnd.IntN(4),
			Silver:   s.rnd.IntN(8),
			Bronze:   s.rnd.IntN(15) + 3,
		}
	}
	return counts
}
