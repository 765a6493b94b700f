package service

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/deepikaoppangi/lbg-financial-overview/internal/models"
	"github.com/deepikaoppangi/lbg-financial-overview/internal/utils"
)

// ErrUnknownPeriod is returned when the requested period has no time-series block
var ErrUnknownPeriod = errors.New("unknown period")

// DefaultPeriod is used when a request names no period
const DefaultPeriod = "6M"

// periodGrain maps each known period to the grain of its flow series.
// Short windows are charted month by month, long windows as annualized values.
var periodGrain = map[string]string{
	"6M": models.GrainMonthly,
	"1Y": models.GrainMonthly,
	"3Y": models.GrainYearly,
	"5Y": models.GrainYearly,
}

// GrainFor returns the flow grain of a period; periods outside the table are yearly
func GrainFor(period string) string {
	if g, ok := periodGrain[period]; ok {
		return g
	}
	return models.GrainYearly
}

// BuildSnapshot computes the financial position for one period from profile data
func BuildSnapshot(period string, ts map[string]models.TimeSeriesBlock, expenses models.ExpensesConfig) (*models.Snapshot, error) {
	block, ok := ts[period]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPeriod, period)
	}

	salary := block.Metrics[models.MetricSalary]
	resilience := block.Metrics[models.MetricResilience]
	liquidity := block.Metrics[models.MetricLiquidity]

	var total float64
	for _, c := range expenses.Categories {
		total += c.Monthly
	}

	// A zero total reports every share as 0.0% instead of dividing by zero.
	denom := math.Max(total, 1)
	shares := make([]models.ExpenseShare, 0, len(expenses.Categories))
	for _, c := range expenses.Categories {
		shares = append(shares, models.ExpenseShare{
			Key:     c.Key,
			Label:   c.Label,
			Monthly: c.Monthly,
			Pct:     utils.RoundTo(c.Monthly/denom*100, 1),
		})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Monthly > shares[j].Monthly
	})

	labels := append([]string{}, block.Labels...)
	metrics := make(map[string]float64, len(block.Metrics))
	for k, v := range block.Metrics {
		metrics[k] = v
	}

	savingsMonthly := math.Max(salary-total, 0)

	return &models.Snapshot{
		Period:              period,
		Labels:              labels,
		Wealth:              append([]float64{}, block.Points...),
		Metrics:             metrics,
		SalaryMonthly:       salary,
		Resilience:          resilience,
		Liquidity:           liquidity,
		Expenses:            shares,
		MonthlyExpenseTotal: total,
		SavingsEstMonthly:   savingsMonthly,
		Flow:                buildFlow(GrainFor(period), labels, salary, total),
	}, nil
}

func buildFlow(grain string, labels []string, salary, expense float64) models.Flow {
	factor := 1.0
	if grain == models.GrainYearly {
		factor = 12
	}
	income := salary * factor
	spend := expense * factor
	savings := math.Max((salary-expense)*factor, 0)

	flow := models.Flow{
		Grain:   grain,
		Labels:  append([]string{}, labels...),
		Income:  make([]float64, len(labels)),
		Expense: make([]float64, len(labels)),
		Savings: make([]float64, len(labels)),
	}
	for i := range labels {
		flow.Income[i] = income
		flow.Expense[i] = spend
		flow.Savings[i] = savings
	}
	return flow
}
