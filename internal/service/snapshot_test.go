package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/deepikaoppangi/lbg-financial-overview/internal/models"
	"github.com/deepikaoppangi/lbg-financial-overview/internal/repository"
)

func sampleSeries() map[string]models.TimeSeriesBlock {
	metrics := map[string]float64{"salary": 4000, "resilience": 62, "liq": 60}
	return map[string]models.TimeSeriesBlock{
		"6M": {Labels: []string{"Jan", "Feb", "Mar"}, Points: []float64{1, 2, 3}, Metrics: metrics},
		"1Y": {Labels: []string{"Q1", "Q2", "Q3", "Q4"}, Points: []float64{1, 2, 3, 4}, Metrics: metrics},
		"3Y": {Labels: []string{"2022", "2023", "2024"}, Points: []float64{1, 2, 3}, Metrics: metrics},
		"5Y": {Labels: []string{"2020", "2021"}, Points: []float64{1, 2}, Metrics: metrics},
	}
}

func sampleExpenses() models.ExpensesConfig {
	return models.ExpensesConfig{Categories: []models.ExpenseCategory{
		{Key: "food", Label: "Food", Monthly: 500},
		{Key: "housing", Label: "Housing", Monthly: 1500},
		{Key: "travel", Label: "Travel", Monthly: 500},
		{Key: "bills", Label: "Bills", Monthly: 500},
	}}
}

func TestBuildSnapshotGrain(t *testing.T) {
	tests := []struct {
		period string
		grain  string
		factor float64
	}{
		{"6M", models.GrainMonthly, 1},
		{"1Y", models.GrainMonthly, 1},
		{"3Y", models.GrainYearly, 12},
		{"5Y", models.GrainYearly, 12},
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			snap, err := BuildSnapshot(tt.period, sampleSeries(), sampleExpenses())
			if err != nil {
				t.Fatalf("BuildSnapshot: %v", err)
			}
			if snap.Flow.Grain != tt.grain {
				t.Fatalf("grain = %s, want %s", snap.Flow.Grain, tt.grain)
			}
			if len(snap.Flow.Income) != len(snap.Labels) {
				t.Fatalf("flow length %d != labels %d", len(snap.Flow.Income), len(snap.Labels))
			}
			for i := range snap.Labels {
				if snap.Flow.Income[i] != 4000*tt.factor {
					t.Fatalf("income[%d] = %v", i, snap.Flow.Income[i])
				}
				if snap.Flow.Expense[i] != 3000*tt.factor || snap.Flow.Savings[i] != 1000*tt.factor {
					t.Fatalf("expense/savings[%d] = %v/%v", i, snap.Flow.Expense[i], snap.Flow.Savings[i])
				}
			}
			if snap.SavingsEstMonthly != 1000 {
				t.Fatalf("savings_est_monthly = %v, want 1000", snap.SavingsEstMonthly)
			}
		})
	}
}

func TestBuildSnapshotScalars(t *testing.T) {
	snap, err := BuildSnapshot("6M", sampleSeries(), sampleExpenses())
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}
	if snap.SalaryMonthly != 4000 || snap.Resilience != 62 || snap.Liquidity != 60 {
		t.Fatalf("unexpected metrics: %+v", snap)
	}
	if snap.MonthlyExpenseTotal != 3000 {
		t.Fatalf("total = %v", snap.MonthlyExpenseTotal)
	}
	if len(snap.Wealth) != 3 || snap.Metrics["liq"] != 60 {
		t.Fatalf("series not copied: %+v", snap)
	}
}

func TestBuildSnapshotSortIsStable(t *testing.T) {
	snap, err := BuildSnapshot("6M", sampleSeries(), sampleExpenses())
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}
	want := []string{"housing", "food", "travel", "bills"}
	for i, e := range snap.Expenses {
		if e.Key != want[i] {
			t.Fatalf("expenses[%d] = %s, want %s", i, e.Key, want[i])
		}
		if i > 0 && snap.Expenses[i-1].Monthly < e.Monthly {
			t.Fatalf("expenses not descending at %d", i)
		}
	}
}

func TestBuildSnapshotPercentages(t *testing.T) {
	expenses := models.ExpensesConfig{Categories: []models.ExpenseCategory{
		{Key: "a", Label: "A", Monthly: 400},
		{Key: "b", Label: "B", Monthly: 600},
	}}
	snap, err := BuildSnapshot("1Y", sampleSeries(), expenses)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}
	if snap.Expenses[0].Pct != 60.0 || snap.Expenses[1].Pct != 40.0 {
		t.Fatalf("pct = %v/%v, want 60/40", snap.Expenses[0].Pct, snap.Expenses[1].Pct)
	}

	thirds := models.ExpensesConfig{Categories: []models.ExpenseCategory{
		{Key: "a", Monthly: 1}, {Key: "b", Monthly: 1}, {Key: "c", Monthly: 1},
	}}
	snap, _ = BuildSnapshot("1Y", sampleSeries(), thirds)
	if snap.Expenses[0].Pct != 33.3 {
		t.Fatalf("pct = %v, want 33.3", snap.Expenses[0].Pct)
	}
}

func TestBuildSnapshotZeroTotal(t *testing.T) {
	expenses := models.ExpensesConfig{Categories: []models.ExpenseCategory{
		{Key: "a", Label: "A"}, {Key: "b", Label: "B"},
	}}
	snap, err := BuildSnapshot("6M", sampleSeries(), expenses)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}
	for _, e := range snap.Expenses {
		if e.Pct != 0 {
			t.Fatalf("pct = %v, want 0", e.Pct)
		}
	}
	if snap.SavingsEstMonthly != 4000 {
		t.Fatalf("savings = %v, want 4000", snap.SavingsEstMonthly)
	}
}

func TestBuildSnapshotClampsSavings(t *testing.T) {
	ts := map[string]models.TimeSeriesBlock{
		"3Y": {Labels: []string{"2024"}, Metrics: map[string]float64{"salary": 1000}},
	}
	expenses := models.ExpensesConfig{Categories: []models.ExpenseCategory{{Key: "rent", Monthly: 1500}}}
	snap, err := BuildSnapshot("3Y", ts, expenses)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}
	if snap.SavingsEstMonthly != 0 || snap.Flow.Savings[0] != 0 {
		t.Fatalf("savings not clamped: %v %v", snap.SavingsEstMonthly, snap.Flow.Savings)
	}
	if snap.Resilience != 0 || snap.Liquidity != 0 {
		t.Fatalf("missing metrics should default to zero: %+v", snap)
	}
}

func TestBuildSnapshotUnknownPeriod(t *testing.T) {
	_, err := BuildSnapshot("10Y", sampleSeries(), sampleExpenses())
	if !errors.Is(err, ErrUnknownPeriod) {
		t.Fatalf("expected ErrUnknownPeriod, got %v", err)
	}
	if err.Error() != "unknown period: 10Y" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestGrainForUnlistedPeriod(t *testing.T) {
	if GrainFor("10Y") != models.GrainYearly {
		t.Fatal("unlisted periods should be yearly")
	}
}

func TestFactsTopFive(t *testing.T) {
	cats := make([]models.ExpenseCategory, 0, 7)
	for i := 0; i < 7; i++ {
		cats = append(cats, models.ExpenseCategory{Key: string(rune('a' + i)), Label: string(rune('A' + i)), Monthly: float64(100 * (i + 1))})
	}
	snap, err := BuildSnapshot("5Y", sampleSeries(), models.ExpensesConfig{Categories: cats})
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}

	facts := Facts(snap, true)
	if len(facts.TopExpenses) != 5 || facts.TopExpenses[0].Label != "G" {
		t.Fatalf("unexpected top expenses: %+v", facts.TopExpenses)
	}
	if facts.FlowGrain != models.GrainYearly || facts.Period != "5Y" {
		t.Fatalf("unexpected facts: %+v", facts)
	}
	if Facts(snap, false).FlowGrain != "" {
		t.Fatal("flow grain should be omitted")
	}
}

func TestBuildSnapshotFromNonFiniteProfile(t *testing.T) {
	dir := t.TempDir()
	doc := `
expenses:
  categories:
    - key: rent
      label: Rent
      monthly: .nan
    - key: food
      label: Food
      monthly: 500
time_series:
  6M:
    labels: [Jan]
    points: [.nan]
    metrics:
      salary: 2000
      resilience: .nan
`
	if err := os.WriteFile(filepath.Join(dir, "broken_numbers.yaml"), []byte(doc), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	p, err := repository.NewFileStore(dir).Load(context.Background(), "broken_numbers")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	snap, err := BuildSnapshot("6M", p.TimeSeries, p.Expenses)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}
	if snap.MonthlyExpenseTotal != 500 || snap.Expenses[0].Pct != 100 || snap.Expenses[1].Pct != 0 {
		t.Fatalf("unexpected expenses: %+v", snap.Expenses)
	}
	if snap.Resilience != 0 || snap.Wealth[0] != 0 {
		t.Fatalf("non-finite values reached the snapshot: %+v", snap)
	}
	if _, err := json.Marshal(snap); err != nil {
		t.Fatalf("snapshot not encodable: %v", err)
	}
}
