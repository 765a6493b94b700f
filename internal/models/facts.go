package models

// TopExpense is the reduced expense view exposed to text generation
type TopExpense struct {
	Label   string  `json:"label"`
	Monthly float64 `json:"monthly"`
}

// FactSet is the whitelisted subset of a Snapshot that may reach the
// text-generation collaborator. Generated text must only restate these figures.
type FactSet struct {
	Period          string       `json:"period"`
	SalaryMonthly   float64      `json:"salary_monthly"`
	ExpensesMonthly float64      `json:"expenses_monthly"`
	SavingsMonthly  float64      `json:"savings_monthly"`
	ResiliencePct   float64      `json:"resilience_pct"`
	LiquidityPct    float64      `json:"liquidity_pct"`
	TopExpenses     []TopExpense `json:"top_expenses"`
	FlowGrain       string       `json:"flow_grain,omitempty"`
}
