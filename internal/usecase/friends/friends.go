// Package friends manages the signed-in user's side of the friend graph.
// Requests and acceptances are recorded on the acting user only.
package friends

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trophyseeker/internal/domain/catalog"
	"trophyseeker/internal/domain/user"
	errs "trophyseeker/internal/errors"
	"trophyseeker/internal/random"
)

const psnImportLimit = 3

type Profiles interface {
	Get(ctx context.Context, username string) (user.User, error)
	Update(ctx context.Context, username string, fn func(u *user.User) error) (user.User, error)
}

type FriendsUsecase struct {
	profiles Profiles
	rnd      *random.Source
	now      func() time.Time
	log      *zap.SugaredLogger
}

func NewFriendsUsecase(profiles Profiles, rnd *random.Source, now func() time.Time, log *zap.SugaredLogger) *FriendsUsecase {
	return &FriendsUsecase{profiles: profiles, rnd: rnd, now: now, log: log}
}

type Overview struct {
	Friends         []user.FriendUser    `json:"friends"`
	PendingReceived []user.FriendRequest `json:"pendingReceived"`
	PendingSent     []user.FriendRequest `json:"pendingSent"`
	IsPsnConnected  bool                 `json:"isPsnConnected"`
}

func (f *FriendsUsecase) Overview(ctx context.Context, username string) (Overview, error) {
	u, err := f.profiles.Get(ctx, username)
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		Friends:         nonNil(u.FriendsList),
		PendingReceived: pending(u.FriendRequestsReceived),
		PendingSent:     pending(u.FriendRequestsSent),
		IsPsnConnected:  u.IsPsnConnected,
	}, nil
}

// Search matches directory hunters by username, never returning the caller.
func (f *FriendsUsecase) Search(ctx context.Context, username, query string) ([]user.FriendUser, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []user.FriendUser{}
	if q == "" {
		return out, nil
	}
	u, err := f.profiles.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	for _, d := range catalog.Directory {
		if d.User.ID == u.ID {
			continue
		}
		if strings.Contains(strings.ToLower(d.User.Username), q) {
			out = append(out, d.User)
		}
	}
	return out, nil
}

func (f *FriendsUsecase) SendRequest(ctx context.Context, username, receiverID string) (user.FriendRequest, error) {
	receiver, ok := catalog.DirectoryByID(receiverID)
	if !ok {
		return user.FriendRequest{}, errs.ErrUserNotFound
	}

	var sent user.FriendRequest
	_, err := f.profiles.Update(ctx, username, func(u *user.User) error {
		if u.IsFriend(receiverID) || u.HasPendingSentTo(receiverID) || u.HasPendingReceivedFrom(receiverID) {
			return errs.ErrFriendRequestExists
		}
		sent = user.FriendRequest{
			ID:               "req_" + uuid.NewString(),
			SenderID:         u.ID,
			SenderUsername:   u.Username,
			ReceiverID:       receiver.User.ID,
			ReceiverUsername: receiver.User.Username,
			Status:           user.StatusPending,
			Timestamp:        f.now().UnixMilli(),
		}
		u.FriendRequestsSent = append(u.FriendRequestsSent, sent)
		return nil
	})
	if err != nil {
		return user.FriendRequest{}, err
	}
	return sent, nil
}

// AcceptRequest befriends the sender on the receiver's record only.
func (f *FriendsUsecase) AcceptRequest(ctx context.Context, username, requestID string) (user.FriendUser, error) {
	var friend user.FriendUser
	_, err := f.profiles.Update(ctx, username, func(u *user.User) error {
		idx := indexOfRequest(u.FriendRequestsReceived, requestID)
		if idx < 0 {
			return errs.ErrFriendRequestNotFound
		}
		req := u.FriendRequestsReceived[idx]
		friend = user.FriendUser{ID: req.SenderID, Username: req.SenderUsername}

		u.FriendRequestsReceived = append(u.FriendRequestsReceived[:idx:idx], u.FriendRequestsReceived[idx+1:]...)
		kept := u.FriendRequestsSent[:0:0]
		for _, r := range u.FriendRequestsSent {
			if r.ReceiverID == friend.ID && r.Status == user.StatusPending {
				continue
			}
			kept = append(kept, r)
		}
		u.FriendRequestsSent = kept
		if !u.IsFriend(friend.ID) {
			u.FriendsList = append(u.FriendsList, friend)
		}
		return nil
	})
	if err != nil {
		return user.FriendUser{}, err
	}
	return friend, nil
}

func (f *FriendsUsecase) DeclineRequest(ctx context.Context, username, requestID string) error {
	_, err := f.profiles.Update(ctx, username, func(u *user.User) error {
		idx := indexOfRequest(u.FriendRequestsReceived, requestID)
		if idx < 0 {
			return errs.ErrFriendRequestNotFound
		}
		u.FriendRequestsReceived = append(u.FriendRequestsReceived[:idx:idx], u.FriendRequestsReceived[idx+1:]...)
		return nil
	})
	return err
}

func (f *FriendsUsecase) RemoveFriend(ctx context.Context, username, friendID string) error {
	_, err := f.profiles.Update(ctx, username, func(u *user.User) error {
		for i, fr := range u.FriendsList {
			if fr.ID == friendID {
				u.FriendsList = append(u.FriendsList[:i:i], u.FriendsList[i+1:]...)
				return nil
			}
		}
		return errs.ErrFriendNotFound
	})
	return err
}

// ConnectPsn links the simulated PSN account and imports up to three directory
// hunters the user has no relation with yet. It returns how many were added.
func (f *FriendsUsecase) ConnectPsn(ctx context.Context, username string) (int, error) {
	var added int
	_, err := f.profiles.Update(ctx, username, func(u *user.User) error {
		if u.IsPsnConnected {
			return errs.ErrPsnAlreadyConnected
		}
		related := make(map[string]struct{})
		related[u.ID] = struct{}{}
		for _, fr := range u.FriendsList {
			related[fr.ID] = struct{}{}
		}
		for _, r := range u.FriendRequestsSent {
			related[r.ReceiverID] = struct{}{}
		}
		for _, r := range u.FriendRequestsReceived {
			related[r.SenderID] = struct{}{}
		}

		candidates := make([]user.FriendUser, 0, len(catalog.Directory))
		for _, d := range catalog.Directory {
			if _, skip := related[d.User.ID]; !skip {
				candidates = append(candidates, d.User)
			}
		}
		n := min(psnImportLimit, len(candidates))
		for _, idx := range f.rnd.Perm(len(candidates))[:n] {
			u.FriendsList = append(u.FriendsList, candidates[idx])
		}
		u.IsPsnConnected = true
		added = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	f.log.Infow("psn connected", "username", username, "friendsFound", added)
	return added, nil
}

// DisconnectPsn clears the link flag and keeps imported friends.
func (f *FriendsUsecase) DisconnectPsn(ctx context.Context, username string) error {
	_, err := f.profiles.Update(ctx, username, func(u *user.User) error {
		if !u.IsPsnConnected {
			return errs.ErrPsnNotConnected
		}
		u.IsPsnConnected = false
		return nil
	})
	return err
}

func indexOfRequest(list []user.FriendRequest, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func pending(list []user.FriendRequest) []user.FriendRequest {
	out := []user.FriendRequest{}
	for _, r := range list {
		if r.Status == user.StatusPending {
			out = append(out, r)
		}
	}
	return out
}

func nonNil(list []user.FriendUser) []user.FriendUser {
	if list == nil {
		return []user.FriendUser{}
	}
	return list
}
