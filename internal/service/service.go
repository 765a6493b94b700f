package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/deepikaoppangi/lbg-financial-overview/internal/config"
	"github.com/deepikaoppangi/lbg-financial-overview/internal/models"
	"github.com/deepikaoppangi/lbg-financial-overview/internal/repository"
	"github.com/sirupsen/logrus"
)

// SnapshotRequest carries the optional inputs of a snapshot or simulation.
// Zero values mean "use the default".
type SnapshotRequest struct {
	Profile  string `json:"profile"`
	Period   string `json:"period"`
	Question string `json:"question"`
}

// Service orchestrates profile loading, snapshot building and narration
type Service struct {
	store repository.ProfileStore
	gen   Generator
	creds config.CredentialResolver
	log   *logrus.Logger
}

// NewService creates a new service instance
func NewService(store repository.ProfileStore, gen Generator, creds config.CredentialResolver, log *logrus.Logger) *Service {
	return &Service{
		store: store,
		gen:   gen,
		creds: creds,
		log:   log,
	}
}

// Profiles lists the selectable profiles
func (s *Service) Profiles(ctx context.Context) ([]models.ProfileInfo, error) {
	profiles, err := s.store.List(ctx)
	if err != nil {
		s.log.WithError(err).Error("Failed to list profiles")
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// Snapshot builds the snapshot and summary for a profile and period
func (s *Service) Snapshot(ctx context.Context, req SnapshotRequest) (*models.Snapshot, models.Summary, error) {
	req = withDefaults(req)
	snap, err := s.snapshotFor(ctx, req)
	if err != nil {
		return nil, models.Summary{}, err
	}

	narrator := s.narrator(req)
	summary := BuildSummary(ctx, snap, req.Question, narrator)

	s.log.WithFields(logrus.Fields{
		"profile":  req.Profile,
		"period":   snap.Period,
		"narrated": narrator != nil && summary.Headline == narrativeHeadline,
	}).Info("Snapshot built")
	return snap, summary, nil
}

// Simulate answers a scenario question against the profile's snapshot.
// A blank question is answered before any profile is loaded.
func (s *Service) Simulate(ctx context.Context, req SnapshotRequest) (models.SimulationResult, error) {
	req = withDefaults(req)
	if strings.TrimSpace(req.Question) == "" {
		return PromptForQuestion(), nil
	}

	snap, err := s.snapshotFor(ctx, req)
	if err != nil {
		return models.SimulationResult{}, err
	}

	result := Simulate(ctx, req.Question, snap, s.narrator(req))
	s.log.WithFields(logrus.Fields{
		"profile": req.Profile,
		"period":  snap.Period,
		"enabled": result.Enabled,
	}).Info("Simulation answered")
	return result, nil
}

func (s *Service) snapshotFor(ctx context.Context, req SnapshotRequest) (*models.Snapshot, error) {
	profile, err := s.store.Load(ctx, req.Profile)
	if err != nil {
		s.log.WithError(err).WithField("profile", req.Profile).Error("Failed to load profile")
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return BuildSnapshot(req.Period, profile.TimeSeries, profile.Expenses)
}

// narrator resolves the credential once for the request
func (s *Service) narrator(req SnapshotRequest) Narrator {
	apiKey := ""
	if s.creds != nil {
		apiKey = s.creds.Resolve()
	}
	return NewNarrator(s.gen, apiKey, s.log.WithField("profile", req.Profile))
}

func withDefaults(req SnapshotRequest) SnapshotRequest {
	req.Profile = strings.TrimSpace(req.Profile)
	req.Period = strings.TrimSpace(req.Period)
	if req.Period == "" {
		req.Period = DefaultPeriod
	}
	return req
}
