package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/LunaStudioApps/salon-scheduler/internal/audit"
	domain "github.com/LunaStudioApps/salon-scheduler/internal/domain/finance"
	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
	"github.com/LunaStudioApps/salon-scheduler/internal/timezone"
)

type PayCommission struct {
	repo        domain.Repository
	commissions *ListCommissions
	audit       *audit.Dispatcher
}

func NewPayCommission(
	repo domain.Repository,
	commissions *ListCommissions,
	audit *audit.Dispatcher,
) *PayCommission {
	return &PayCommission{
		repo:        repo,
		commissions: commissions,
		audit:       audit,
	}
}

// Execute books the professional's current-month commission as an expense.
func (uc *PayCommission) Execute(
	ctx context.Context,
	salonID uint,
	professionalID uint,
) (*models.Transaction, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(salon.Timezone)

	statements, err := uc.commissions.Execute(ctx, salonID, now)
	if err != nil {
		return nil, err
	}

	var statement *domain.Statement
	for i := range statements {
		if statements[i].ProfessionalID == professionalID {
			statement = &statements[i]
			break
		}
	}
	if statement == nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}
	if statement.Commission <= 0 {
		return nil, httperr.ErrBusiness("nothing_to_pay")
	}

	tx := models.Transaction{
		SalonID:       salonID,
		Description:   fmt.Sprintf("Comissão: %s", statement.Name),
		Amount:        statement.Commission,
		Type:          models.TransactionExpense,
		Date:          time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		Category:      "Comissões",
		PaymentMethod: models.PaymentCash,
	}

	if err := uc.repo.CreateTransactions(ctx, []models.Transaction{tx}); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		Action:   "commission_paid",
		Entity:   "professional",
		EntityID: &professionalID,
	})

	return &tx, nil
}
