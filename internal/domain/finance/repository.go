package finance

import (
	"context"
	"time"

	"github.com/LunaStudioApps/salon-scheduler/internal/models"
)

type Repository interface {
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	CreateTransactions(
		ctx context.Context,
		txs []models.Transaction,
	) error

	ListProfessionals(
		ctx context.Context,
		salonID uint,
	) ([]models.Professional, error)

	ListAppointmentsForMonth(
		ctx context.Context,
		salonID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
