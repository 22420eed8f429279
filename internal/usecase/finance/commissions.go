package finance

import (
	"context"
	"time"

	domain "github.com/LunaStudioApps/salon-scheduler/internal/domain/finance"
	"github.com/LunaStudioApps/salon-scheduler/internal/timezone"
)

type ListCommissions struct {
	repo domain.Repository
}

func NewListCommissions(repo domain.Repository) *ListCommissions {
	return &ListCommissions{repo: repo}
}

// Execute computes every professional's statement for the calendar month of
// ref. Nothing is stored; the numbers always reflect the current ledger.
func (uc *ListCommissions) Execute(
	ctx context.Context,
	salonID uint,
	ref time.Time,
) ([]domain.Statement, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(salon.Timezone)
	monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	professionals, err := uc.repo.ListProfessionals(ctx, salonID)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsForMonth(
		ctx,
		salonID,
		monthStart,
		monthEnd,
	)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Statement, 0, len(professionals))
	for _, pro := range professionals {
		out = append(out, domain.MonthlyCommission(appointments, pro, ref))
	}

	return out, nil
}
