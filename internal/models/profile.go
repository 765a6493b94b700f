package models

// ExpenseCategory is a monthly spending bucket loaded from a profile
type ExpenseCategory struct {
	Key     string  `json:"key" yaml:"key"`
	Label   string  `json:"label" yaml:"label"`
	Monthly float64 `json:"monthly" yaml:"monthly"`
}

// ExpensesConfig groups the expense categories of a profile
type ExpensesConfig struct {
	Categories []ExpenseCategory `json:"categories" yaml:"categories"`
}

// TimeSeriesBlock holds the wealth trajectory and headline metrics for one period
type TimeSeriesBlock struct {
	Labels  []string           `json:"labels" yaml:"labels"`
	Points  []float64          `json:"points" yaml:"points"`
	Metrics map[string]float64 `json:"metrics" yaml:"metrics"`
}

// Metric keys read from a TimeSeriesBlock
const (
	MetricSalary     = "salary"
	MetricResilience = "resilience"
	MetricLiquidity  = "liq"
)

// Profile is a customer's stored financial data
type Profile struct {
	ID         string                     `json:"-" yaml:"-"`
	Name       string                     `json:"name,omitempty" yaml:"name,omitempty"`
	Expenses   ExpensesConfig             `json:"expenses" yaml:"expenses"`
	TimeSeries map[string]TimeSeriesBlock `json:"time_series" yaml:"time_series"`
}

// ProfileInfo is a profile listing entry
type ProfileInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
