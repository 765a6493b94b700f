package repository

import (
	"context"
	"fmt"

	"github.com/deepikaoppangi/lbg-financial-overview/internal/models"
	"github.com/sirupsen/logrus"
)

// FallbackStore substitutes a default profile when the requested one is
// missing or unreadable
type FallbackStore struct {
	store     ProfileStore
	defaultID string
	log       *logrus.Logger
}

// WithFallback wraps store so that Load never fails for a bad profile id
// while the default profile is readable
func WithFallback(store ProfileStore, defaultID string, log *logrus.Logger) *FallbackStore {
	return &FallbackStore{store: store, defaultID: defaultID, log: log}
}

// Load returns the requested profile, or the default one in its place
func (f *FallbackStore) Load(ctx context.Context, id string) (*models.Profile, error) {
	if id != "" && id != f.defaultID {
		p, err := f.store.Load(ctx, id)
		if err == nil {
			return p, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		f.log.WithFields(logrus.Fields{
			"profile":  id,
			"fallback": f.defaultID,
		}).WithError(err).Warn("Profile unavailable, using default")
	}

	p, err := f.store.Load(ctx, f.defaultID)
	if err != nil {
		return nil, fmt.Errorf("failed to load default profile %s: %w", f.defaultID, err)
	}
	return p, nil
}

// List delegates to the wrapped store
func (f *FallbackStore) List(ctx context.Context) ([]models.ProfileInfo, error) {
	return f.store.List(ctx)
}
