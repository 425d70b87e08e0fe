// Package memory holds map-backed repository implementations. They honor
// the same contracts as the postgres adapters and back the usecase and
// handler tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/codevaulthq/codevault/internal/domain/user"
	"github.com/codevaulthq/codevault/pkg/apperror"
)

type UserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*user.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *UserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) Save(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return apperror.NewConflict("user", "email", u.Email)
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *UserRepo) UpsertGoogle(_ context.Context, u *user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			existing.Name = u.Name
			existing.PhotoURL = u.PhotoURL
			existing.GoogleID = u.GoogleID
			cp := *existing
			return &cp, nil
		}
	}
	created := *u
	created.ID = uuid.New()
	r.users[created.ID] = &created
	cp := created
	return &cp, nil
}

func (r *UserRepo) UpdatePhotoURL(_ context.Context, id uuid.UUID, photoURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return apperror.NewNotFound("user", id.String())
	}
	u.PhotoURL = photoURL
	return nil
}
