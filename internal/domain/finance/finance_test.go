package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LunaStudioApps/salon-scheduler/internal/domain/schedule"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

// ===============================
// Commission
// ===============================

func TestMonthlyCommissionSumsCompletedMonth(t *testing.T) {
	pro := models.Professional{ID: 1, Name: "Ana", CommissionRate: 50}

	appointments := []models.Appointment{
		{ProfessionalID: 1, Status: string(schedule.StatusCompleted), StartTime: date(2026, 8, 3), Price: 60},
		{ProfessionalID: 1, Status: string(schedule.StatusCompleted), StartTime: date(2026, 8, 20), Price: 40},
		// ignored: still scheduled
		{ProfessionalID: 1, Status: string(schedule.StatusScheduled), StartTime: date(2026, 8, 25), Price: 500},
		// ignored: another professional
		{ProfessionalID: 2, Status: string(schedule.StatusCompleted), StartTime: date(2026, 8, 10), Price: 80},
		// ignored: previous month
		{ProfessionalID: 1, Status: string(schedule.StatusCompleted), StartTime: date(2026, 7, 31), Price: 100},
	}

	st := MonthlyCommission(appointments, pro, date(2026, 8, 15))

	assert.Equal(t, 100.0, st.ServiceTotal)
	assert.Equal(t, 50.0, st.Commission)
}

func TestMonthlyCommissionProductsNeedOwnRate(t *testing.T) {
	appointments := []models.Appointment{
		{
			ProfessionalID: 1,
			Status:         string(schedule.StatusCompleted),
			StartTime:      date(2026, 8, 3),
			Price:          100,
			Products: []models.AppointmentProduct{
				{Name: "Pomada", Price: 30},
				{Name: "Shampoo", Price: 20},
			},
		},
	}

	noProductRate := models.Professional{ID: 1, CommissionRate: 50}
	st := MonthlyCommission(appointments, noProductRate, date(2026, 8, 1))

	assert.Equal(t, 50.0, st.ProductTotal)
	assert.Equal(t, 50.0, st.Commission)

	ten := 10.0
	withProductRate := models.Professional{ID: 1, CommissionRate: 50, ProductCommissionRate: &ten}
	st = MonthlyCommission(appointments, withProductRate, date(2026, 8, 1))

	assert.Equal(t, 55.0, st.Commission)
}

func TestMonthlyCommissionEmptyMonthIsZero(t *testing.T) {
	pro := models.Professional{ID: 1, CommissionRate: 50}

	st := MonthlyCommission(nil, pro, date(2026, 8, 1))

	assert.Zero(t, st.ServiceTotal)
	assert.Zero(t, st.Commission)
}

// ===============================
// Installments
// ===============================

func TestExpandInstallmentsEvenSplit(t *testing.T) {
	base := date(2026, 8, 1)

	parts := ExpandInstallments("Cadeira nova", 300, 3, base)

	require.Len(t, parts, 3)
	for i, p := range parts {
		assert.Equal(t, 100.0, p.Amount)
		assert.Equal(t, i+1, p.Current)
		assert.Equal(t, 3, p.Total)
		assert.Equal(t, base.AddDate(0, i, 0), p.Date)
	}
	assert.Equal(t, "Cadeira nova (1/3)", parts[0].Description)
	assert.Equal(t, "Cadeira nova (3/3)", parts[2].Description)
}

func TestExpandInstallmentsRemainderOnLast(t *testing.T) {
	parts := ExpandInstallments("Secador", 100, 3, date(2026, 8, 1))

	require.Len(t, parts, 3)
	assert.Equal(t, 33.33, parts[0].Amount)
	assert.Equal(t, 33.33, parts[1].Amount)
	assert.Equal(t, 33.34, parts[2].Amount)

	var sum float64
	for _, p := range parts {
		sum += p.Amount
	}
	assert.InDelta(t, 100, sum, 0.0001)
}

func TestExpandInstallmentsSingle(t *testing.T) {
	base := date(2026, 8, 1)

	parts := ExpandInstallments("Aluguel", 1500, 1, base)

	require.Len(t, parts, 1)
	assert.Equal(t, "Aluguel", parts[0].Description)
	assert.Equal(t, 1500.0, parts[0].Amount)
	assert.Equal(t, base, parts[0].Date)
}

// ===============================
// Coupon
// ===============================

func TestApplyDiscount(t *testing.T) {
	assert.Equal(t, 26.91, ApplyDiscount(29.90, 10))
	assert.Equal(t, 14.95, ApplyDiscount(29.90, 50))
	assert.Equal(t, 29.90, ApplyDiscount(29.90, 0))
	assert.Equal(t, 0.0, ApplyDiscount(29.90, 100))
	assert.Equal(t, 0.0, ApplyDiscount(29.90, 150))
}
