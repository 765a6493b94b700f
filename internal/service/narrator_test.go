package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/deepikaoppangi/lbg-financial-overview/internal/models"
	"github.com/sirupsen/logrus"
)

type fakeGenerator struct {
	text    string
	err     error
	apiKey  string
	prompts []string
}

func (g *fakeGenerator) Complete(_ context.Context, apiKey, prompt string) (string, error) {
	g.apiKey = apiKey
	g.prompts = append(g.prompts, prompt)
	return g.text, g.err
}

func discardEntry() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func TestNewNarratorRequiresKey(t *testing.T) {
	if NewNarrator(&fakeGenerator{}, "  ", discardEntry()) != nil {
		t.Fatal("expected nil narrator without a key")
	}
}

func TestNarratorWithoutGenerator(t *testing.T) {
	n := NewNarrator(nil, "k", discardEntry())
	if n == nil {
		t.Fatal("a present key must yield a narrator")
	}
	if got := n.Summarize(context.Background(), models.FactSet{}); got != "" {
		t.Fatalf("Summarize = %q, want empty", got)
	}

	got := Simulate(context.Background(), "retire at 60", summarySnapshot(4000, 1000, 3000, 60, housing), n)
	if got.Enabled || got.Heading != "Simulation (LLM call failed)" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestNarratorPrompts(t *testing.T) {
	gen := &fakeGenerator{text: "  narrative \n"}
	n := NewNarrator(gen, "sk-1", discardEntry())
	facts := models.FactSet{Period: "6M", SalaryMonthly: 4000}

	if got := n.Summarize(context.Background(), facts); got != "narrative" {
		t.Fatalf("Summarize = %q", got)
	}
	if gen.apiKey != "sk-1" {
		t.Fatalf("api key = %q", gen.apiKey)
	}
	if !strings.Contains(gen.prompts[0], "FACTS (JSON): {") || !strings.Contains(gen.prompts[0], `"salary_monthly":4000`) {
		t.Fatalf("summary prompt = %q", gen.prompts[0])
	}

	n.Simulate(context.Background(), "retire at 60", facts)
	if !strings.HasSuffix(gen.prompts[1], "\n\nSIMULATION QUESTION: retire at 60") {
		t.Fatalf("simulation prompt = %q", gen.prompts[1])
	}
	if !strings.Contains(gen.prompts[1], "5% unless") {
		t.Fatalf("simulation prompt missing inflation default: %q", gen.prompts[1])
	}
}

func TestNarratorSwallowsErrors(t *testing.T) {
	n := NewNarrator(&fakeGenerator{text: "partial", err: errors.New("timeout")}, "k", discardEntry())
	if got := n.Summarize(context.Background(), models.FactSet{}); got != "" {
		t.Fatalf("Summarize = %q, want empty", got)
	}
}
