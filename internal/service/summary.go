package service

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/deepikaoppangi/lbg-financial-overview/internal/models"
)

const (
	narrativeHeadline = "Financial Insight Summary"
	narrativeNote     = "Generated from provided facts. Not advice."
	summaryNote       = "POC output. Not financial advice."

	defaultRetireAge   = 55
	targetSavingsRate  = 0.35
	liquidityMonths    = 3.0
	safetyBufferMonths = 1.0
)

// ageRe matches a standalone two-digit number; "100" or "7" do not match.
var ageRe = regexp.MustCompile(`\b(\d{2})\b`)

// BuildSummary produces the narrative summary for a snapshot. When a narrator
// is available its text is used as-is; otherwise, or when it returns nothing,
// the deterministic bullets and scenario heuristics are used.
func BuildSummary(ctx context.Context, snap *models.Snapshot, question string, narrator Narrator) models.Summary {
	if narrator != nil {
		if text := narrator.Summarize(ctx, Facts(snap, true)); text != "" {
			return models.Summary{
				Headline: narrativeHeadline,
				Bullets:  []string{text},
				Note:     narrativeNote,
			}
		}
	}
	return deterministicSummary(snap, normalizeQuestion(question))
}

func normalizeQuestion(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

func deterministicSummary(snap *models.Snapshot, q string) models.Summary {
	salary := snap.SalaryMonthly
	spend := snap.MonthlyExpenseTotal
	savings := snap.SavingsEstMonthly

	bullets := []string{
		fmt.Sprintf("Income: £%.0f/month | Expenses: £%.0f/month", salary, spend),
		fmt.Sprintf("Resilience: %.0f%% | Liquidity: %.0f%%", snap.Resilience, snap.Liquidity),
	}
	if len(snap.Expenses) > 0 {
		top := snap.Expenses[0]
		bullets = append(bullets, fmt.Sprintf("Top expense: %s (£%.0f/month)", top.Label, top.Monthly))
	} else {
		bullets = append(bullets, "No expense categories loaded.")
	}

	holiday := strings.Contains(q, "holiday") || strings.Contains(q, "vacation")
	retire := strings.Contains(q, "retire")

	if holiday {
		bullets = append(bullets, holidayBullet(snap.Liquidity, spend))
	}
	if retire {
		bullets = append(bullets, retireBullet(q, salary, savings))
	}
	if q != "" && !holiday && !retire {
		bullets = append(bullets, "Try: 'retire at 55' or 'holiday budget'.")
	}

	return models.Summary{
		Headline: fmt.Sprintf("%s snapshot: estimated savings £%.0f/month.", snap.Period, savings),
		Bullets:  bullets,
		Note:     summaryNote,
	}
}

// HolidayCeiling is the illustrative spend ceiling: the liquidity-scaled
// three-month expense buffer less one month kept back for safety.
func HolidayCeiling(liquidity, monthlyExpense float64) float64 {
	buffer := (liquidity / 100) * liquidityMonths * monthlyExpense
	safety := safetyBufferMonths * monthlyExpense
	return math.Max(buffer-safety, 0)
}

func holidayBullet(liquidity, spend float64) string {
	return fmt.Sprintf("Holiday scenario: spend ceiling ≈ £%.0f (keeps ~1 month safety buffer).", HolidayCeiling(liquidity, spend))
}

// RetireAge returns the first standalone two-digit number in q, or 55
func RetireAge(q string) int {
	m := ageRe.FindStringSubmatch(q)
	if m == nil {
		return defaultRetireAge
	}
	age, err := strconv.Atoi(m[1])
	if err != nil || age == 0 {
		return defaultRetireAge
	}
	return age
}

// RetireGap is how much more must be saved each month to hit the target savings rate
func RetireGap(salary, savings float64) float64 {
	return targetSavingsRate*salary - savings
}

func retireBullet(q string, salary, savings float64) string {
	age := RetireAge(q)
	target := int(targetSavingsRate * 100)
	gap := RetireGap(salary, savings)
	if gap <= 0 {
		return fmt.Sprintf("Retire at %d: savings rate looks strong vs a %d%% target (model).", age, target)
	}
	return fmt.Sprintf("Retire at %d: needs ~£%.0f/month extra savings to reach a %d%% target (model).", age, gap, target)
}
