package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/deepikaoppangi/lbg-financial-overview/internal/config"
	"github.com/deepikaoppangi/lbg-financial-overview/internal/models"
	"github.com/deepikaoppangi/lbg-financial-overview/internal/repository"
	"github.com/sirupsen/logrus"
)

type memoryStore struct {
	profiles map[string]*models.Profile
	loads    int
}

func (m *memoryStore) Load(_ context.Context, id string) (*models.Profile, error) {
	m.loads++
	if p, ok := m.profiles[id]; ok {
		return p, nil
	}
	return nil, repository.ErrProfileNotFound
}

func (m *memoryStore) List(context.Context) ([]models.ProfileInfo, error) {
	return []models.ProfileInfo{{ID: "james_thompson", Name: "James Thompson"}}, nil
}

// countingKey counts how often the credential is resolved
type countingKey struct {
	key   string
	calls int
}

func (c *countingKey) Resolve() string {
	c.calls++
	return c.key
}

func newTestService(gen Generator, creds config.CredentialResolver) (*Service, *memoryStore) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	store := &memoryStore{profiles: map[string]*models.Profile{
		"james_thompson": {ID: "james_thompson", Expenses: sampleExpenses(), TimeSeries: sampleSeries()},
	}}
	return NewService(repository.WithFallback(store, "james_thompson", log), gen, creds, log), store
}

func TestServiceSnapshotDefaults(t *testing.T) {
	svc, _ := newTestService(nil, config.StaticKey(""))

	snap, summary, err := svc.Snapshot(context.Background(), SnapshotRequest{Profile: "nobody"})
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Period != "6M" || snap.Flow.Grain != models.GrainMonthly {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if summary.Headline != "6M snapshot: estimated savings £1000/month." || len(summary.Bullets) != 3 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestServiceSnapshotUnknownPeriod(t *testing.T) {
	svc, _ := newTestService(nil, nil)
	_, _, err := svc.Snapshot(context.Background(), SnapshotRequest{Period: "2Y"})
	if !errors.Is(err, ErrUnknownPeriod) {
		t.Fatalf("expected ErrUnknownPeriod, got %v", err)
	}
}

func TestServiceSnapshotNarrated(t *testing.T) {
	gen := &fakeGenerator{text: "Steady position."}
	key := &countingKey{key: "sk-live"}
	svc, _ := newTestService(gen, key)

	_, summary, err := svc.Snapshot(context.Background(), SnapshotRequest{Period: "3Y", Question: "retire"})
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if summary.Headline != "Financial Insight Summary" || summary.Bullets[0] != "Steady position." {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if key.calls != 1 || gen.apiKey != "sk-live" {
		t.Fatalf("credential resolved %d times, key %q", key.calls, gen.apiKey)
	}
}

func TestServiceSimulate(t *testing.T) {
	gen := &fakeGenerator{text: "Heading\nline one"}
	key := &countingKey{key: "sk"}
	svc, store := newTestService(gen, key)
	ctx := context.Background()

	blank, err := svc.Simulate(ctx, SnapshotRequest{Question: " "})
	if err != nil || !blank.Enabled || blank.Heading != "" {
		t.Fatalf("blank question: %+v %v", blank, err)
	}
	if store.loads != 0 || key.calls != 0 {
		t.Fatal("blank question should not touch the store or credentials")
	}

	got, err := svc.Simulate(ctx, SnapshotRequest{Question: "retire at 60", Period: "1Y"})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if got.Heading != "Heading" || got.Lines[0] != "line one" || !got.Enabled {
		t.Fatalf("unexpected result: %+v", got)
	}

	if _, err := svc.Simulate(ctx, SnapshotRequest{Question: "x", Period: "9M"}); !errors.Is(err, ErrUnknownPeriod) {
		t.Fatalf("expected ErrUnknownPeriod, got %v", err)
	}
}

func TestServiceSimulateWithoutKey(t *testing.T) {
	gen := &fakeGenerator{text: "unused"}
	svc, _ := newTestService(gen, config.StaticKey(""))
	got, err := svc.Simulate(context.Background(), SnapshotRequest{Question: "retire at 60"})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if got.Enabled || got.Heading != "Simulation (LLM not enabled)" || len(gen.prompts) != 0 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestServiceProfiles(t *testing.T) {
	svc, _ := newTestService(nil, nil)
	list, err := svc.Profiles(context.Background())
	if err != nil || len(list) != 1 || list[0].ID != "james_thompson" {
		t.Fatalf("Profiles = %v %v", list, err)
	}
}
