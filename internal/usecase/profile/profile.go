// Package profile serialises read-modify-write cycles on a single user record.
package profile

import (
	"context"
	"sync"

	"trophyseeker/internal/domain/user"
)

type UserStore interface {
	LoadUser(ctx context.Context, username string) (user.User, error)
	SaveUser(ctx context.Context, u user.User) error
}

type Manager struct {
	store UserStore

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewManager(store UserStore) *Manager {
	return &Manager{store: store, locks: make(map[string]*sync.Mutex)}
}

// Lock takes the per-username lock and returns its release func.
func (m *Manager) Lock(username string) func() {
	m.mu.Lock()
	l, ok := m.locks[username]
	if !ok {
		l = &sync.Mutex{}
		m.locks[username] = l
	}
	m.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (m *Manager) Get(ctx context.Context, username string) (user.User, error) {
	return m.store.LoadUser(ctx, username)
}

// Update loads the record, applies fn and saves the result. Nothing is saved
// when fn fails.
func (m *Manager) Update(ctx context.Context, username string, fn func(u *user.User) error) (user.User, error) {
	return m.UpdateWith(ctx, username, fn, nil)
}

// UpdateWith is Update followed by afterSave, which runs under the same lock
// only once the user record is stored. Side records that must not get ahead
// of the user record are written there.
func (m *Manager) UpdateWith(ctx context.Context, username string, fn func(u *user.User) error, afterSave func(u user.User) error) (user.User, error) {
	unlock := m.Lock(username)
	defer unlock()

	u, err := m.store.LoadUser(ctx, username)
	if err != nil {
		return user.User{}, err
	}
	if err := fn(&u); err != nil {
		return user.User{}, err
	}
	if err := m.store.SaveUser(ctx, u); err != nil {
		return user.User{}, err
	}
	if afterSave != nil {
		if err := afterSave(u); err != nil {
			return user.User{}, err
		}
	}
	return u, nil
}
