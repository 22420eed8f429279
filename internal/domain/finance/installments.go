package finance

import (
	"fmt"
	"math"
	"time"
)

type Installment struct {
	Description string
	Amount      float64
	Date        time.Time
	Current     int
	Total       int
}

// ExpandInstallments splits a credit_split total into count records, each
// dated one calendar month after the previous and labeled (i/count).
// Amounts are allocated in cents, with the division remainder landing on the
// final installment so the parts always sum to the original total.
func ExpandInstallments(
	description string,
	total float64,
	count int,
	base time.Time,
) []Installment {

	if count <= 1 {
		return []Installment{{
			Description: description,
			Amount:      roundCents(total),
			Date:        base,
			Current:     1,
			Total:       1,
		}}
	}

	totalCents := int64(math.Round(total * 100))
	each := totalCents / int64(count)
	last := totalCents - each*int64(count-1)

	out := make([]Installment, 0, count)
	for i := 0; i < count; i++ {
		cents := each
		if i == count-1 {
			cents = last
		}
		out = append(out, Installment{
			Description: fmt.Sprintf("%s (%d/%d)", description, i+1, count),
			Amount:      float64(cents) / 100,
			Date:        base.AddDate(0, i, 0),
			Current:     i + 1,
			Total:       count,
		})
	}

	return out
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
