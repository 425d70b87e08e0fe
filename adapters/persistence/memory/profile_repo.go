package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/codevaulthq/codevault/internal/domain/profile"
	"github.com/codevaulthq/codevault/pkg/apperror"
)

type ProfileRepo struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]*profile.Profile
}

func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{profiles: make(map[uuid.UUID]*profile.Profile)}
}

func (r *ProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, apperror.NewNotFound("profile", userID.String())
	}
	cp := *p
	return &cp, nil
}

func (r *ProfileRepo) Upsert(_ context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	cp.UpdatedAt = time.Now()
	if existing, ok := r.profiles[p.UserID]; ok {
		cp.Reputation = existing.Reputation
	} else {
		cp.Reputation = 0
	}
	r.profiles[p.UserID] = &cp
	return nil
}

func (r *ProfileRepo) IncrementReputation(_ context.Context, userID uuid.UUID, delta int) error {
	if delta < 0 {
		return apperror.NewInvalidInput("reputation can only increase", nil)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[userID]; ok {
		p.Reputation += delta
	}
	return nil
}
