// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/lewieville/g1-creative-sub000/internal/domain"
)

// Repository defines the interface for persisting visitor behavior profiles.
type Repository interface {
	// GetProfile retrieves the profile for a visitor. It returns (nil, nil)
	// when no usable profile exists; a corrupt stored record counts as
	// absent, not as an error.
	GetProfile(ctx context.Context, visitorID string) (*domain.BehaviorProfile, error)

	// UpsertProfile creates or replaces the profile for a visitor.
	// Last write wins; there is no cross-tab coordination.
	UpsertProfile(ctx context.Context, visitorID string, profile *domain.BehaviorProfile) error

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}

// BehaviorStore adapts a Repository to the behavior engine's Store interface.
type BehaviorStore struct {
	repo Repository
}

// NewBehaviorStore wraps a repository for use by the behavior engine.
func NewBehaviorStore(repo Repository) *BehaviorStore {
	return &BehaviorStore{repo: repo}
}

// Read implements behavior.Store.
func (s *BehaviorStore) Read(ctx context.Context, visitorID string) (domain.BehaviorProfile, bool, error) {
	p, err := s.repo.GetProfile(ctx, visitorID)
	if err != nil {
		return domain.BehaviorProfile{}, false, err
	}
	if p == nil {
		return domain.BehaviorProfile{}, false, nil
	}
	return *p, true, nil
}

// Write implements behavior.Store.
func (s *BehaviorStore) Write(ctx context.Context, visitorID string, profile domain.BehaviorProfile) error {
	return s.repo.UpsertProfile(ctx, visitorID, &profile)
}
