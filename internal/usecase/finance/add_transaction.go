package finance

import (
	"context"
	"time"

	"github.com/LunaStudioApps/salon-scheduler/internal/audit"
	domain "github.com/LunaStudioApps/salon-scheduler/internal/domain/finance"
	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
	"github.com/LunaStudioApps/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type AddTransactionInput struct {
	SalonID uint

	Description   string
	Amount        float64
	Type          models.TransactionType
	Category      string
	PaymentMethod models.PaymentMethod
	Date          string // YYYY-MM-DD

	// Number of credit_split parts; ignored for other payment methods.
	Installments int
}

// ======================================================
// USE CASE
// ======================================================

type AddTransaction struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAddTransaction(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AddTransaction {
	return &AddTransaction{
		repo:  repo,
		audit: audit,
	}
}

// Execute records a ledger entry. A credit_split entry is expanded eagerly
// into its dated installments, one calendar month apart.
func (uc *AddTransaction) Execute(
	ctx context.Context,
	in AddTransactionInput,
) ([]models.Transaction, error) {

	if in.Description == "" || in.Amount <= 0 || in.Date == "" {
		return nil, httperr.ErrBusiness("missing_required_fields")
	}
	if in.Type != models.TransactionIncome && in.Type != models.TransactionExpense {
		return nil, httperr.ErrBusiness("invalid_type")
	}

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}

	base, err := time.ParseInLocation(
		"2006-01-02",
		in.Date,
		timezone.Location(salon.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	count := 1
	if in.PaymentMethod == models.PaymentCreditSplit {
		count = in.Installments
		if count < 2 || count > 12 {
			return nil, httperr.ErrBusiness("invalid_installments")
		}
	}

	parts := domain.ExpandInstallments(in.Description, in.Amount, count, base)

	txs := make([]models.Transaction, 0, len(parts))
	for _, p := range parts {
		tx := models.Transaction{
			SalonID:       salon.ID,
			Description:   p.Description,
			Amount:        p.Amount,
			Type:          in.Type,
			Date:          p.Date,
			Category:      in.Category,
			PaymentMethod: in.PaymentMethod,
		}
		if count > 1 {
			tx.InstallmentCurrent = p.Current
			tx.InstallmentTotal = p.Total
		} else {
			tx.Description = in.Description
		}
		txs = append(txs, tx)
	}

	if err := uc.repo.CreateTransactions(ctx, txs); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID: salon.ID,
		Action:  "transaction_created",
		Entity:  "transaction",
	})

	return txs, nil
}
