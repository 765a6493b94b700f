package utils

import (
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RoundTo rounds the exact binary value of v to the given number of decimal
// places, half to even. 0.35 is stored as 0.34999... and so rounds to 0.3.
// Non-finite input is returned unchanged.
func RoundTo(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := exactDecimal(v).RoundBank(places).Float64()
	return f
}

// exactDecimal converts v without the shortest-representation step that
// decimal.NewFromFloat applies: v = m * 2^e = m * 5^-e * 10^e for e < 0.
func exactDecimal(v float64) decimal.Decimal {
	frac, exp := math.Frexp(v)
	m := big.NewInt(int64(frac * (1 << 53)))
	exp -= 53
	if exp >= 0 {
		return decimal.NewFromBigInt(m.Lsh(m, uint(exp)), 0)
	}
	pow5 := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-exp)), nil)
	return decimal.NewFromBigInt(m.Mul(m, pow5), int32(exp))
}

// DisplayName turns a profile id such as "james_thompson" into "James Thompson"
func DisplayName(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}

// NonBlankLines splits text into trimmed lines, dropping blank ones
func NonBlankLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
