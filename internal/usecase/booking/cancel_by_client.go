package booking

import (
	"context"

	"github.com/LunaStudioApps/salon-scheduler/internal/audit"
	domain "github.com/LunaStudioApps/salon-scheduler/internal/domain/schedule"
	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
	"github.com/LunaStudioApps/salon-scheduler/internal/timezone"
)

// CancelByClient is the portal variant: the caller proves ownership with the
// booking phone, and the salon can opt out of self-service cancellation.
type CancelByClient struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelByClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelByClient {
	return &CancelByClient{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelByClient) Execute(
	ctx context.Context,
	appointmentID uint,
	phone string,
) (*models.Appointment, error) {

	if phone == "" {
		return nil, httperr.ErrBusiness("missing_phone")
	}

	appointments, err := uc.repo.ListAppointmentsByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	var ap *models.Appointment
	for i := range appointments {
		if appointments[i].ID == appointmentID {
			ap = &appointments[i]
			break
		}
	}
	if ap == nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	salon, err := uc.repo.GetSalonByID(ctx, ap.SalonID)
	if err != nil {
		return nil, err
	}

	if !salon.AllowClientCancellation {
		return nil, httperr.ErrBusiness("cancellation_not_allowed")
	}

	now := timezone.NowIn(salon.Timezone)
	if !ap.StartTime.After(now) {
		return nil, httperr.ErrBusiness("appointment_in_past")
	}

	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if err := uc.repo.DeleteAutoTransactions(ctx, ap.ID); err != nil {
		return nil, err
	}
	for _, line := range ap.Products {
		if err := uc.repo.IncrementProductStock(ctx, line.ProductID); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		Action:   "appointment_cancelled_by_client",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
