package finance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/LunaStudioApps/salon-scheduler/internal/audit"
	domain "github.com/LunaStudioApps/salon-scheduler/internal/domain/finance"
	"github.com/LunaStudioApps/salon-scheduler/internal/domain/schedule"
	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
	"github.com/LunaStudioApps/salon-scheduler/internal/timezone"
)

type fakeFinanceRepo struct {
	salon         *models.Salon
	professionals []models.Professional
	appointments  []models.Appointment
	transactions  []models.Transaction
}

func newFakeFinanceRepo() *fakeFinanceRepo {
	return &fakeFinanceRepo{
		salon: &models.Salon{ID: 1, Name: "Studio Luna"},
	}
}

func (f *fakeFinanceRepo) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	if f.salon == nil || f.salon.ID != id {
		return nil, httperr.ErrBusiness("salon_not_found")
	}
	return f.salon, nil
}

func (f *fakeFinanceRepo) CreateTransactions(_ context.Context, txs []models.Transaction) error {
	f.transactions = append(f.transactions, txs...)
	return nil
}

func (f *fakeFinanceRepo) ListProfessionals(_ context.Context, salonID uint) ([]models.Professional, error) {
	return f.professionals, nil
}

func (f *fakeFinanceRepo) ListAppointmentsForMonth(_ context.Context, salonID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.SalonID == salonID && !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, ap)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeFinanceRepo)(nil)

func nopAudit() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil), zap.NewNop())
}

// ===============================
// AddTransaction
// ===============================

func TestAddTransactionSingle(t *testing.T) {
	repo := newFakeFinanceRepo()
	uc := NewAddTransaction(repo, nopAudit())

	txs, err := uc.Execute(context.Background(), AddTransactionInput{
		SalonID:       1,
		Description:   "Aluguel",
		Amount:        1500,
		Type:          models.TransactionExpense,
		Category:      "Fixos",
		PaymentMethod: models.PaymentPix,
		Date:          "2026-08-05",
	})

	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Aluguel", txs[0].Description)
	assert.Equal(t, 1500.0, txs[0].Amount)
	assert.Zero(t, txs[0].InstallmentTotal)
	assert.Len(t, repo.transactions, 1)
}

func TestAddTransactionCreditSplitExpands(t *testing.T) {
	repo := newFakeFinanceRepo()
	uc := NewAddTransaction(repo, nopAudit())

	txs, err := uc.Execute(context.Background(), AddTransactionInput{
		SalonID:       1,
		Description:   "Cadeira nova",
		Amount:        300,
		Type:          models.TransactionExpense,
		PaymentMethod: models.PaymentCreditSplit,
		Date:          "2026-08-05",
		Installments:  3,
	})

	require.NoError(t, err)
	require.Len(t, txs, 3)

	assert.Equal(t, "Cadeira nova (1/3)", txs[0].Description)
	assert.Equal(t, "Cadeira nova (3/3)", txs[2].Description)
	for i, tx := range txs {
		assert.Equal(t, 100.0, tx.Amount)
		assert.Equal(t, i+1, tx.InstallmentCurrent)
		assert.Equal(t, 3, tx.InstallmentTotal)
	}
	assert.Equal(t, txs[0].Date.AddDate(0, 2, 0), txs[2].Date)
}

func TestAddTransactionCreditSplitRemainder(t *testing.T) {
	repo := newFakeFinanceRepo()
	uc := NewAddTransaction(repo, nopAudit())

	txs, err := uc.Execute(context.Background(), AddTransactionInput{
		SalonID:       1,
		Description:   "Secador",
		Amount:        100,
		Type:          models.TransactionExpense,
		PaymentMethod: models.PaymentCreditSplit,
		Date:          "2026-08-05",
		Installments:  3,
	})

	require.NoError(t, err)
	assert.Equal(t, 33.33, txs[0].Amount)
	assert.Equal(t, 33.33, txs[1].Amount)
	assert.Equal(t, 33.34, txs[2].Amount)
}

func TestAddTransactionCreditSplitBounds(t *testing.T) {
	repo := newFakeFinanceRepo()
	uc := NewAddTransaction(repo, nopAudit())

	for _, count := range []int{0, 1, 13} {
		_, err := uc.Execute(context.Background(), AddTransactionInput{
			SalonID:       1,
			Description:   "Secador",
			Amount:        100,
			Type:          models.TransactionExpense,
			PaymentMethod: models.PaymentCreditSplit,
			Date:          "2026-08-05",
			Installments:  count,
		})

		assert.True(t, httperr.IsBusiness(err, "invalid_installments"))
	}
	assert.Empty(t, repo.transactions)
}

func TestAddTransactionValidation(t *testing.T) {
	uc := NewAddTransaction(newFakeFinanceRepo(), nopAudit())

	_, err := uc.Execute(context.Background(), AddTransactionInput{
		SalonID: 1, Description: "x", Amount: -5,
		Type: models.TransactionExpense, Date: "2026-08-05",
	})
	assert.True(t, httperr.IsBusiness(err, "missing_required_fields"))

	_, err = uc.Execute(context.Background(), AddTransactionInput{
		SalonID: 1, Description: "x", Amount: 5,
		Type: "transfer", Date: "2026-08-05",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_type"))

	_, err = uc.Execute(context.Background(), AddTransactionInput{
		SalonID: 1, Description: "x", Amount: 5,
		Type: models.TransactionIncome, Date: "05/08/2026",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

// ===============================
// Commissions
// ===============================

func completedAppointment(proID uint, day time.Time, price float64) models.Appointment {
	return models.Appointment{
		SalonID:        1,
		ProfessionalID: proID,
		Status:         string(schedule.StatusCompleted),
		StartTime:      day,
		Price:          price,
	}
}

func TestListCommissionsPerProfessional(t *testing.T) {
	repo := newFakeFinanceRepo()
	repo.professionals = []models.Professional{
		{ID: 1, SalonID: 1, Name: "Ana", CommissionRate: 50},
		{ID: 2, SalonID: 1, Name: "Bia", CommissionRate: 40},
	}

	ref := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	repo.appointments = []models.Appointment{
		completedAppointment(1, ref, 100),
		completedAppointment(2, ref, 200),
	}

	uc := NewListCommissions(repo)
	statements, err := uc.Execute(context.Background(), 1, ref)

	require.NoError(t, err)
	require.Len(t, statements, 2)
	assert.Equal(t, 50.0, statements[0].Commission)
	assert.Equal(t, 80.0, statements[1].Commission)
}

func TestPayCommissionCreatesExpense(t *testing.T) {
	repo := newFakeFinanceRepo()
	repo.professionals = []models.Professional{
		{ID: 1, SalonID: 1, Name: "Ana", CommissionRate: 50},
	}
	repo.appointments = []models.Appointment{
		completedAppointment(1, timezone.Now(), 100),
	}

	commissions := NewListCommissions(repo)
	uc := NewPayCommission(repo, commissions, nopAudit())

	tx, err := uc.Execute(context.Background(), 1, 1)

	require.NoError(t, err)
	assert.Equal(t, models.TransactionExpense, tx.Type)
	assert.Equal(t, 50.0, tx.Amount)
	assert.Equal(t, "Comissão: Ana", tx.Description)
	assert.Equal(t, "Comissões", tx.Category)
	assert.Len(t, repo.transactions, 1)
}

func TestPayCommissionNothingToPay(t *testing.T) {
	repo := newFakeFinanceRepo()
	repo.professionals = []models.Professional{
		{ID: 1, SalonID: 1, Name: "Ana", CommissionRate: 50},
	}

	commissions := NewListCommissions(repo)
	uc := NewPayCommission(repo, commissions, nopAudit())

	_, err := uc.Execute(context.Background(), 1, 1)

	assert.True(t, httperr.IsBusiness(err, "nothing_to_pay"))
	assert.Empty(t, repo.transactions)
}

func TestPayCommissionUnknownProfessional(t *testing.T) {
	repo := newFakeFinanceRepo()

	commissions := NewListCommissions(repo)
	uc := NewPayCommission(repo, commissions, nopAudit())

	_, err := uc.Execute(context.Background(), 1, 42)

	assert.True(t, httperr.IsBusiness(err, "professional_not_found"))
}
