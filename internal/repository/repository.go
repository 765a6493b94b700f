package repository

import (
	"context"
	"errors"
	"math"
	"regexp"

	"github.com/deepikaoppangi/lbg-financial-overview/internal/models"
)

var (
	// ErrProfileNotFound is returned when no stored profile has the requested id
	ErrProfileNotFound = errors.New("profile not found")
	// ErrInvalidProfileID is returned for ids that cannot name a stored profile
	ErrInvalidProfileID = errors.New("invalid profile id")
)

var profileIDRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ProfileStore provides read access to stored customer profiles
type ProfileStore interface {
	// Load returns the profile with the given id
	Load(ctx context.Context, id string) (*models.Profile, error)
	// List returns every readable profile sorted by id
	List(ctx context.Context) ([]models.ProfileInfo, error)
}

// ValidProfileID reports whether id is safe to use as a file name or key
func ValidProfileID(id string) bool {
	return profileIDRe.MatchString(id)
}

// normalize fills nil collections so a sparse profile document behaves like an
// empty one. NaN and infinite numbers are zeroed like missing values.
func normalize(p *models.Profile) {
	if p.Expenses.Categories == nil {
		p.Expenses.Categories = []models.ExpenseCategory{}
	}
	for i := range p.Expenses.Categories {
		p.Expenses.Categories[i].Monthly = finite(p.Expenses.Categories[i].Monthly)
	}
	if p.TimeSeries == nil {
		p.TimeSeries = map[string]models.TimeSeriesBlock{}
	}
	for period, block := range p.TimeSeries {
		if block.Labels == nil {
			block.Labels = []string{}
		}
		if block.Points == nil {
			block.Points = []float64{}
		}
		if block.Metrics == nil {
			block.Metrics = map[string]float64{}
		}
		for i, v := range block.Points {
			block.Points[i] = finite(v)
		}
		for k, v := range block.Metrics {
			block.Metrics[k] = finite(v)
		}
		p.TimeSeries[period] = block
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
