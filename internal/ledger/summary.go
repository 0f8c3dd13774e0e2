// Package ledger contains the pure derivation functions over a movement
// log. Nothing here mutates its input or touches shared state, so every
// function is safe to call repeatedly with the same result.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	// minQualifyingInterest is the floor below which a per-deposit
	// interest payment is dropped as negligible
	minQualifyingInterest = decimal.NewFromInt(1)
)

// Balance sums all movements, signed
func Balance(movements []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m)
	}
	return total
}

// TotalIncome sums all positive movements
func TotalIncome(movements []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if m.IsPositive() {
			total = total.Add(m)
		}
	}
	return total
}

// TotalExpense sums all negative movements and returns the magnitude,
// so the result is always non-negative
func TotalExpense(movements []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if m.IsNegative() {
			total = total.Add(m)
		}
	}
	return total.Abs()
}

// QualifyingInterest computes per-deposit simple interest at the given
// percentage rate and sums only the payments of at least 1. This is not
// interest on the balance: each positive movement earns independently,
// and a payment of exactly 1 still qualifies.
func QualifyingInterest(movements []decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if !m.IsPositive() {
			continue
		}
		interest := m.Mul(rate).Div(hundred)
		if interest.Cmp(minQualifyingInterest) >= 0 {
			total = total.Add(interest)
		}
	}
	return total
}

// SortedAscending returns a copy of the movements ordered by amount,
// smallest first. The input slice is never modified.
func SortedAscending(movements []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(movements))
	copy(out, movements)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Cmp(out[j]) < 0
	})
	return out
}
