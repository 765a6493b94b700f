package service

import (
	"context"
	"strings"

	"github.com/deepikaoppangi/lbg-financial-overview/internal/models"
	"github.com/deepikaoppangi/lbg-financial-overview/internal/utils"
)

// PromptForQuestion is the result for a blank question. It is not an error,
// the question is just unanswerable.
func PromptForQuestion() models.SimulationResult {
	return models.SimulationResult{
		Heading: "",
		Lines:   []string{"Type a scenario question first (e.g. 'retire at 65')."},
		Enabled: true,
	}
}

// Simulate answers a scenario question through the narrator. A nil narrator
// means no credential is configured; a narrator that returns nothing means
// the call failed. Both yield a disabled result with a distinct message.
func Simulate(ctx context.Context, question string, snap *models.Snapshot, narrator Narrator) models.SimulationResult {
	question = strings.TrimSpace(question)
	if question == "" {
		return PromptForQuestion()
	}

	if narrator == nil {
		return models.SimulationResult{
			Heading: "Simulation (LLM not enabled)",
			Lines:   []string{"No key found. Put it in secrets/openai_key.txt (one line) or set OPENAI_API_KEY."},
			Enabled: false,
		}
	}

	text := narrator.Simulate(ctx, question, Facts(snap, false))
	if text == "" {
		return models.SimulationResult{
			Heading: "Simulation (LLM call failed)",
			Lines: []string{
				"Key is present, but the LLM call did not return a response (timeout/network).",
				"Try again, or check your internet connection.",
			},
			Enabled: false,
		}
	}

	return parseSimulation(text)
}

func parseSimulation(text string) models.SimulationResult {
	lines := utils.NonBlankLines(text)
	if len(lines) == 0 {
		return models.SimulationResult{Heading: "Simulation result", Lines: []string{"No details returned."}, Enabled: true}
	}
	body := lines[1:]
	if len(body) == 0 {
		body = []string{"No details returned."}
	}
	return models.SimulationResult{Heading: lines[0], Lines: body, Enabled: true}
}
