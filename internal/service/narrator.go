package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/deepikaoppangi/lbg-financial-overview/internal/models"
	"github.com/sirupsen/logrus"
)

// Generator turns a prompt into free text. The OpenAI client satisfies it.
type Generator interface {
	Complete(ctx context.Context, apiKey, prompt string) (string, error)
}

// Narrator phrases snapshot facts as text. An empty string means no usable
// response; callers then fall back to deterministic output.
type Narrator interface {
	Summarize(ctx context.Context, facts models.FactSet) string
	Simulate(ctx context.Context, question string, facts models.FactSet) string
}

const summaryInstruction = `You are a retail banking insights engine.
Summarize the customer's CURRENT financial position using ONLY the facts below.
Do NOT talk about the future.
Do NOT give advice.
Do NOT assume goals.

Output format:
- 1 short headline
- 3 bullet points (plain language)`

const simulationInstruction = `You are a financial scenario simulation engine.
Respond ONLY to the user's simulation question.
Base calculations strictly on the provided facts.
Use conservative assumptions.
Assume inflation at 5% unless the user specifies another rate.
Do NOT provide personalized financial advice. Provide illustrative options only.

Required output structure:
1) Heading: <short title derived from the question>
2) Scenario summary
3) Required income or corpus (show assumptions)
4) Gap vs current trajectory
5) Illustrative options to close the gap`

// generatorNarrator asks a Generator for text with a resolved API key
type generatorNarrator struct {
	gen    Generator
	apiKey string
	log    *logrus.Entry
}

// NewNarrator binds a generator to the key resolved for the current request.
// It returns nil only when there is no key, which callers treat as "text
// generation not configured". With a key but no generator every call yields
// "", reported as a failed call.
func NewNarrator(gen Generator, apiKey string, log *logrus.Entry) Narrator {
	if strings.TrimSpace(apiKey) == "" {
		return nil
	}
	return &generatorNarrator{gen: gen, apiKey: apiKey, log: log}
}

func (n *generatorNarrator) Summarize(ctx context.Context, facts models.FactSet) string {
	prompt, ok := n.prompt(summaryInstruction, facts)
	if !ok {
		return ""
	}
	return n.complete(ctx, "summary", prompt)
}

func (n *generatorNarrator) Simulate(ctx context.Context, question string, facts models.FactSet) string {
	prompt, ok := n.prompt(simulationInstruction, facts)
	if !ok {
		return ""
	}
	return n.complete(ctx, "simulation", prompt+"\n\nSIMULATION QUESTION: "+question)
}

func (n *generatorNarrator) prompt(instruction string, facts models.FactSet) (string, bool) {
	raw, err := json.Marshal(facts)
	if err != nil {
		n.log.WithError(err).Error("Failed to encode fact set")
		return "", false
	}
	return instruction + "\n\nFACTS (JSON): " + string(raw), true
}

func (n *generatorNarrator) complete(ctx context.Context, task, prompt string) string {
	if n.gen == nil {
		n.log.WithField("task", task).Warn("Key present but no text generator configured")
		return ""
	}
	text, err := n.gen.Complete(ctx, n.apiKey, prompt)
	if err != nil {
		n.log.WithError(err).WithField("task", task).Warn("Text generation failed")
		return ""
	}
	return strings.TrimSpace(text)
}
