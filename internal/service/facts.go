package service

import "github.com/deepikaoppangi/lbg-financial-overview/internal/models"

const topExpenseLimit = 5

// Facts extracts the whitelisted figures that may be handed to text generation.
// withGrain adds the flow grain, which only the summary narrative uses.
func Facts(snap *models.Snapshot, withGrain bool) models.FactSet {
	n := len(snap.Expenses)
	if n > topExpenseLimit {
		n = topExpenseLimit
	}
	top := make([]models.TopExpense, 0, n)
	for _, e := range snap.Expenses[:n] {
		top = append(top, models.TopExpense{Label: e.Label, Monthly: e.Monthly})
	}

	facts := models.FactSet{
		Period:          snap.Period,
		SalaryMonthly:   snap.SalaryMonthly,
		ExpensesMonthly: snap.MonthlyExpenseTotal,
		SavingsMonthly:  snap.SavingsEstMonthly,
		ResiliencePct:   snap.Resilience,
		LiquidityPct:    snap.Liquidity,
		TopExpenses:     top,
	}
	if withGrain {
		facts.FlowGrain = snap.Flow.Grain
	}
	return facts
}
