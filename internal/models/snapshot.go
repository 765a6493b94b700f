package models

// Flow grains
const (
	GrainMonthly = "monthly"
	GrainYearly  = "yearly"
)

// ExpenseShare is an expense category with its share of total monthly spend
type ExpenseShare struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Monthly float64 `json:"monthly"`
	Pct     float64 `json:"pct"`
}

// Flow holds income, expense and savings series aligned to the snapshot labels
type Flow struct {
	Grain   string    `json:"grain"`
	Labels  []string  `json:"labels"`
	Income  []float64 `json:"income"`
	Expense []float64 `json:"expense"`
	Savings []float64 `json:"savings"`
}

// Snapshot is the computed financial position for one period.
// It is built per request and never persisted.
type Snapshot struct {
	Period              string             `json:"period"`
	Labels              []string           `json:"labels"`
	Wealth              []float64          `json:"wealth"`
	Metrics             map[string]float64 `json:"metrics"`
	SalaryMonthly       float64            `json:"salary_monthly"`
	Resilience          float64            `json:"resilience"`
	Liquidity           float64            `json:"liquidity"`
	Expenses            []ExpenseShare     `json:"expenses"`
	MonthlyExpenseTotal float64            `json:"monthly_expense_total"`
	SavingsEstMonthly   float64            `json:"savings_est_monthly"`
	Flow                Flow               `json:"flow"`
}
