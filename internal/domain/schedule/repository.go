package schedule

import (
	"context"
	"time"

	"github.com/LunaStudioApps/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	GetSalonBySlug(
		ctx context.Context,
		slug string,
	) (*models.Salon, error)

	// -------- Service / Professional --------
	GetService(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.Service, error)

	GetProfessional(
		ctx context.Context,
		salonID uint,
		professionalID uint,
	) (*models.Professional, error)

	// -------- Client --------
	FindClientByPhone(
		ctx context.Context,
		phone string,
	) (*models.Client, error)

	// SaveClient registers the client unless the phone is already taken, in
	// which case the existing record is returned untouched.
	SaveClient(
		ctx context.Context,
		client *models.Client,
	) (*models.Client, error)

	// -------- Availability --------
	ListBlockedPeriods(
		ctx context.Context,
		salonID uint,
		date string,
	) ([]models.BlockedPeriod, error)

	ListScheduledStarts(
		ctx context.Context,
		professionalID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]time.Time, error)

	// -------- Appointment --------
	AssertNoTimeConflict(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) error

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		salonID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	GetAppointmentForProfessional(
		ctx context.Context,
		appointmentID uint,
		professionalID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsByPhone(
		ctx context.Context,
		phone string,
	) ([]models.Appointment, error)

	// -------- Products sold with bookings --------
	GetSaleProducts(
		ctx context.Context,
		salonID uint,
		ids []uint,
	) ([]models.Product, error)

	DecrementProductStock(
		ctx context.Context,
		productID uint,
	) error

	IncrementProductStock(
		ctx context.Context,
		productID uint,
	) error

	// -------- Derived finance records --------
	CreateTransaction(
		ctx context.Context,
		tx *models.Transaction,
	) error

	DeleteAutoTransactions(
		ctx context.Context,
		appointmentID uint,
	) error
}
