package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LunaStudioApps/salon-scheduler/internal/audit"
	domain "github.com/LunaStudioApps/salon-scheduler/internal/domain/schedule"
	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
	"github.com/LunaStudioApps/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreatePublicBookingInput struct {
	SalonID uint

	ServiceID      uint
	ProfessionalID uint

	ClientName      string
	ClientPhone     string
	ClientBirthDate string

	Date string // YYYY-MM-DD
	Time string // HH:mm

	ProductIDs []uint
}

// ======================================================
// USE CASE
// ======================================================

type CreatePublicBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreatePublicBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreatePublicBooking {
	return &CreatePublicBooking{
		repo:  repo,
		audit: audit,
	}
}

// Execute validates everything before the first write so a rejected booking
// leaves no partial state behind.
func (uc *CreatePublicBooking) Execute(
	ctx context.Context,
	in CreatePublicBookingInput,
) (*models.Appointment, error) {

	if in.ClientName == "" || in.ClientPhone == "" || in.Date == "" || in.Time == "" {
		return nil, httperr.ErrBusiness("missing_required_fields")
	}

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}

	service, err := uc.repo.GetService(ctx, salon.ID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	professional, err := uc.repo.GetProfessional(ctx, salon.ID, in.ProfessionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	loc := timezone.Location(salon.Timezone)
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	if !withinOpeningHours(salon, in.Time) {
		return nil, httperr.ErrBusiness("outside_opening_hours")
	}

	blocked, err := uc.repo.ListBlockedPeriods(ctx, salon.ID, in.Date)
	if err != nil {
		return nil, err
	}
	for _, b := range blocked {
		if b.ProfessionalID == nil || *b.ProfessionalID == professional.ID {
			return nil, httperr.ErrBusiness("date_blocked")
		}
	}

	if err := uc.repo.AssertNoTimeConflict(
		ctx,
		professional.ID,
		start,
		end,
	); err != nil {
		return nil, err
	}

	var products []models.Product
	if len(in.ProductIDs) > 0 {
		products, err = uc.repo.GetSaleProducts(ctx, salon.ID, in.ProductIDs)
		if err != nil {
			return nil, httperr.ErrBusiness("product_not_available")
		}
	}

	// First write wins: an existing phone keeps its original record.
	client, err := uc.repo.SaveClient(ctx, &models.Client{
		Name:      in.ClientName,
		Phone:     in.ClientPhone,
		BirthDate: in.ClientBirthDate,
	})
	if err != nil {
		return nil, err
	}

	lines := make([]models.AppointmentProduct, 0, len(products))
	productTotal := 0.0
	for _, p := range products {
		lines = append(lines, models.AppointmentProduct{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.SalePrice,
		})
		productTotal += p.SalePrice
	}

	ap := &models.Appointment{
		Reference:      uuid.NewString(),
		SalonID:        salon.ID,
		ServiceID:      service.ID,
		ProfessionalID: professional.ID,
		ClientName:     client.Name,
		ClientPhone:    client.Phone,
		StartTime:      start,
		EndTime:        end,
		Status:         string(domain.InitialStatus()),
		Price:          service.Price,
		Products:       lines,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	apID := ap.ID
	if err := uc.repo.CreateTransaction(ctx, &models.Transaction{
		SalonID:       salon.ID,
		Description:   fmt.Sprintf("Agendamento: %s", client.Name),
		Amount:        service.Price + productTotal,
		Type:          models.TransactionIncome,
		Date:          start,
		Category:      "Serviços",
		PaymentMethod: models.PaymentCash,
		AutoGenerated: true,
		AppointmentID: &apID,
	}); err != nil {
		return nil, err
	}

	// Stock never goes below zero.
	for _, p := range products {
		if err := uc.repo.DecrementProductStock(ctx, p.ID); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

func withinOpeningHours(salon *models.Salon, hm string) bool {
	return hm >= salon.OpenTime && hm < salon.CloseTime
}
