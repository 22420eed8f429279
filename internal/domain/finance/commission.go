package finance

import (
	"time"

	"github.com/LunaStudioApps/salon-scheduler/internal/domain/schedule"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
)

// Statement is a professional's commission for one calendar month,
// recomputed on read.
type Statement struct {
	ProfessionalID uint    `json:"professional_id"`
	Name           string  `json:"name"`
	ServiceTotal   float64 `json:"service_total"`
	ProductTotal   float64 `json:"product_total"`
	Commission     float64 `json:"commission"`
}

// MonthlyCommission sums the professional's completed appointments in the
// calendar month of ref. Service revenue pays CommissionRate; product lines
// pay ProductCommissionRate when the professional has one.
func MonthlyCommission(
	appointments []models.Appointment,
	pro models.Professional,
	ref time.Time,
) Statement {

	st := Statement{ProfessionalID: pro.ID, Name: pro.Name}

	for _, ap := range appointments {
		if ap.ProfessionalID != pro.ID {
			continue
		}
		if ap.Status != string(schedule.StatusCompleted) {
			continue
		}
		if ap.StartTime.Year() != ref.Year() || ap.StartTime.Month() != ref.Month() {
			continue
		}

		st.ServiceTotal += ap.Price
		for _, p := range ap.Products {
			st.ProductTotal += p.Price
		}
	}

	st.Commission = roundCents(st.ServiceTotal * pro.CommissionRate / 100)
	if pro.ProductCommissionRate != nil {
		st.Commission = roundCents(
			st.Commission + st.ProductTotal*(*pro.ProductCommissionRate)/100,
		)
	}

	return st
}
