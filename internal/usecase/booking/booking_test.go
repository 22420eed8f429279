package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/LunaStudioApps/salon-scheduler/internal/audit"
	domain "github.com/LunaStudioApps/salon-scheduler/internal/domain/schedule"
	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
)

// fakeRepo is an in-memory schedule.Repository good enough for the booking
// flows: one salon, its catalog and whatever gets written during the test.
type fakeRepo struct {
	salon         *models.Salon
	services      map[uint]*models.Service
	professionals map[uint]*models.Professional
	products      map[uint]*models.Product
	clients       map[string]*models.Client
	blocked       []models.BlockedPeriod

	appointments []*models.Appointment
	transactions []*models.Transaction

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		salon: &models.Salon{
			ID:                      1,
			Name:                    "Studio Luna",
			Slug:                    "studio-luna",
			OpenTime:                "09:00",
			CloseTime:               "18:00",
			SlotIntervalMin:         30,
			SubscriptionStatus:      models.SubscriptionActive,
			AllowClientCancellation: true,
		},
		services: map[uint]*models.Service{
			10: {ID: 10, SalonID: 1, Name: "Corte", DurationMin: 30, Price: 60, Active: true},
		},
		professionals: map[uint]*models.Professional{
			20: {ID: 20, SalonID: 1, Name: "Ana", CommissionRate: 50},
		},
		products: map[uint]*models.Product{
			30: {ID: 30, SalonID: 1, Name: "Pomada", Quantity: 2, SalePrice: 25, IsForSale: true},
		},
		clients: map[string]*models.Client{},
		nextID:  100,
	}
}

func (f *fakeRepo) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	if f.salon == nil || f.salon.ID != id {
		return nil, httperr.ErrBusiness("salon_not_found")
	}
	return f.salon, nil
}

func (f *fakeRepo) GetSalonBySlug(_ context.Context, slug string) (*models.Salon, error) {
	if f.salon == nil || f.salon.Slug != slug {
		return nil, httperr.ErrBusiness("salon_not_found")
	}
	return f.salon, nil
}

func (f *fakeRepo) GetService(_ context.Context, salonID, serviceID uint) (*models.Service, error) {
	s, ok := f.services[serviceID]
	if !ok || s.SalonID != salonID {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return s, nil
}

func (f *fakeRepo) GetProfessional(_ context.Context, salonID, professionalID uint) (*models.Professional, error) {
	p, ok := f.professionals[professionalID]
	if !ok || p.SalonID != salonID {
		return nil, httperr.ErrBusiness("professional_not_found")
	}
	return p, nil
}

func (f *fakeRepo) FindClientByPhone(_ context.Context, phone string) (*models.Client, error) {
	c, ok := f.clients[phone]
	if !ok {
		return nil, httperr.ErrBusiness("client_not_found")
	}
	return c, nil
}

func (f *fakeRepo) SaveClient(_ context.Context, client *models.Client) (*models.Client, error) {
	if existing, ok := f.clients[client.Phone]; ok {
		return existing, nil
	}
	f.nextID++
	client.ID = f.nextID
	f.clients[client.Phone] = client
	return client, nil
}

func (f *fakeRepo) ListBlockedPeriods(_ context.Context, salonID uint, date string) ([]models.BlockedPeriod, error) {
	var out []models.BlockedPeriod
	for _, b := range f.blocked {
		if b.SalonID == salonID && b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListScheduledStarts(_ context.Context, professionalID uint, dayStart, dayEnd time.Time) ([]time.Time, error) {
	var out []time.Time
	for _, ap := range f.appointments {
		if ap.ProfessionalID == professionalID &&
			ap.Status == string(domain.StatusScheduled) &&
			!ap.StartTime.Before(dayStart) && ap.StartTime.Before(dayEnd) {
			out = append(out, ap.StartTime)
		}
	}
	return out, nil
}

func (f *fakeRepo) AssertNoTimeConflict(_ context.Context, professionalID uint, start, end time.Time) error {
	for _, ap := range f.appointments {
		if ap.ProfessionalID != professionalID || ap.Status != string(domain.StatusScheduled) {
			continue
		}
		if start.Before(ap.EndTime) && ap.StartTime.Before(end) {
			return httperr.ErrBusiness("time_conflict")
		}
	}
	return nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	f.nextID++
	ap.ID = f.nextID
	f.appointments = append(f.appointments, ap)
	return nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, salonID, appointmentID uint) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == appointmentID && ap.SalonID == salonID {
			return ap, nil
		}
	}
	return nil, httperr.ErrBusiness("appointment_not_found")
}

func (f *fakeRepo) GetAppointmentForProfessional(_ context.Context, appointmentID, professionalID uint) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == appointmentID && ap.ProfessionalID == professionalID {
			return ap, nil
		}
	}
	return nil, httperr.ErrBusiness("appointment_not_found")
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, _ *models.Appointment) error {
	return nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ProfessionalID == professionalID &&
			!ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsByPhone(_ context.Context, phone string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ClientPhone == phone {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetSaleProducts(_ context.Context, salonID uint, ids []uint) ([]models.Product, error) {
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		p, ok := f.products[id]
		if !ok || p.SalonID != salonID || !p.IsForSale || p.Quantity <= 0 {
			return nil, httperr.ErrBusiness("product_not_available")
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeRepo) DecrementProductStock(_ context.Context, productID uint) error {
	if p, ok := f.products[productID]; ok && p.Quantity > 0 {
		p.Quantity--
	}
	return nil
}

func (f *fakeRepo) IncrementProductStock(_ context.Context, productID uint) error {
	if p, ok := f.products[productID]; ok {
		p.Quantity++
	}
	return nil
}

func (f *fakeRepo) CreateTransaction(_ context.Context, tx *models.Transaction) error {
	f.nextID++
	tx.ID = f.nextID
	f.transactions = append(f.transactions, tx)
	return nil
}

func (f *fakeRepo) DeleteAutoTransactions(_ context.Context, appointmentID uint) error {
	kept := f.transactions[:0]
	for _, tx := range f.transactions {
		if tx.AutoGenerated && tx.AppointmentID != nil && *tx.AppointmentID == appointmentID {
			continue
		}
		kept = append(kept, tx)
	}
	f.transactions = kept
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

func nopAudit() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil), zap.NewNop())
}

func validInput() CreatePublicBookingInput {
	return CreatePublicBookingInput{
		SalonID:        1,
		ServiceID:      10,
		ProfessionalID: 20,
		ClientName:     "João",
		ClientPhone:    "11999990000",
		Date:           "2026-09-01",
		Time:           "10:00",
	}
}

// ===============================
// Create
// ===============================

func TestCreateBookingHappyPath(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreatePublicBooking(repo, nopAudit())

	ap, err := uc.Execute(context.Background(), validInput())

	require.NoError(t, err)
	assert.NotEmpty(t, ap.Reference)
	assert.Equal(t, string(domain.StatusScheduled), ap.Status)
	assert.Equal(t, 60.0, ap.Price)
	assert.Equal(t, ap.StartTime.Add(30*time.Minute), ap.EndTime)

	require.Len(t, repo.transactions, 1)
	tx := repo.transactions[0]
	assert.True(t, tx.AutoGenerated)
	assert.Equal(t, models.TransactionIncome, tx.Type)
	assert.Equal(t, 60.0, tx.Amount)
	require.NotNil(t, tx.AppointmentID)
	assert.Equal(t, ap.ID, *tx.AppointmentID)
}

func TestCreateBookingWithProductsSnapshotsAndDecrements(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreatePublicBooking(repo, nopAudit())

	in := validInput()
	in.ProductIDs = []uint{30}

	ap, err := uc.Execute(context.Background(), in)

	require.NoError(t, err)
	require.Len(t, ap.Products, 1)
	assert.Equal(t, "Pomada", ap.Products[0].Name)
	assert.Equal(t, 25.0, ap.Products[0].Price)

	assert.Equal(t, 1, repo.products[30].Quantity)
	assert.Equal(t, 85.0, repo.transactions[0].Amount)
}

func TestCreateBookingFirstClientWriteWins(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreatePublicBooking(repo, nopAudit())

	first := validInput()
	_, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	second := validInput()
	second.ClientName = "Outro Nome"
	second.Time = "11:00"

	ap, err := uc.Execute(context.Background(), second)
	require.NoError(t, err)

	// the phone's original record stays; the new booking carries its name
	assert.Equal(t, "João", repo.clients["11999990000"].Name)
	assert.Equal(t, "João", ap.ClientName)
}

func TestCreateBookingRejectsDoubleBooking(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreatePublicBooking(repo, nopAudit())

	_, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validInput())

	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	assert.Len(t, repo.appointments, 1)
	assert.Len(t, repo.transactions, 1)
}

func TestCreateBookingRejectsOutsideOpeningHours(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreatePublicBooking(repo, nopAudit())

	in := validInput()
	in.Time = "18:00" // close itself is not bookable

	_, err := uc.Execute(context.Background(), in)

	assert.True(t, httperr.IsBusiness(err, "outside_opening_hours"))
}

func TestCreateBookingRejectsBlockedDate(t *testing.T) {
	repo := newFakeRepo()
	repo.blocked = []models.BlockedPeriod{{SalonID: 1, Date: "2026-09-01"}}
	uc := NewCreatePublicBooking(repo, nopAudit())

	_, err := uc.Execute(context.Background(), validInput())

	assert.True(t, httperr.IsBusiness(err, "date_blocked"))
}

func TestCreateBookingIgnoresOtherProfessionalsBlock(t *testing.T) {
	other := uint(99)
	repo := newFakeRepo()
	repo.blocked = []models.BlockedPeriod{
		{SalonID: 1, Date: "2026-09-01", ProfessionalID: &other},
	}
	uc := NewCreatePublicBooking(repo, nopAudit())

	_, err := uc.Execute(context.Background(), validInput())

	assert.NoError(t, err)
}

func TestCreateBookingFailsBeforeAnyWrite(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreatePublicBooking(repo, nopAudit())

	in := validInput()
	in.ProductIDs = []uint{9999} // unknown product

	_, err := uc.Execute(context.Background(), in)

	assert.True(t, httperr.IsBusiness(err, "product_not_available"))
	assert.Empty(t, repo.appointments)
	assert.Empty(t, repo.transactions)
	assert.Empty(t, repo.clients)
}

func TestCreateBookingMissingFields(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreatePublicBooking(repo, nopAudit())

	in := validInput()
	in.ClientPhone = ""

	_, err := uc.Execute(context.Background(), in)

	assert.True(t, httperr.IsBusiness(err, "missing_required_fields"))
}

// ===============================
// Cancel
// ===============================

func TestCancelReversesTransactionAndRestocks(t *testing.T) {
	repo := newFakeRepo()
	create := NewCreatePublicBooking(repo, nopAudit())
	cancel := NewCancelAppointment(repo, nopAudit())

	in := validInput()
	in.ProductIDs = []uint{30}
	ap, err := create.Execute(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, 1, repo.products[30].Quantity)

	cancelled, err := cancel.Execute(context.Background(), 1, ap.ID, nil)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Empty(t, repo.transactions)
	assert.Equal(t, 2, repo.products[30].Quantity)
}

func TestCancelTwiceFails(t *testing.T) {
	repo := newFakeRepo()
	create := NewCreatePublicBooking(repo, nopAudit())
	cancel := NewCancelAppointment(repo, nopAudit())

	ap, err := create.Execute(context.Background(), validInput())
	require.NoError(t, err)

	_, err = cancel.Execute(context.Background(), 1, ap.ID, nil)
	require.NoError(t, err)

	_, err = cancel.Execute(context.Background(), 1, ap.ID, nil)

	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCancelByClientRespectsSalonSetting(t *testing.T) {
	repo := newFakeRepo()
	repo.salon.AllowClientCancellation = false
	create := NewCreatePublicBooking(repo, nopAudit())
	cancel := NewCancelByClient(repo, nopAudit())

	in := validInput()
	in.Date = time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	ap, err := create.Execute(context.Background(), in)
	require.NoError(t, err)

	_, err = cancel.Execute(context.Background(), ap.ID, in.ClientPhone)

	assert.True(t, httperr.IsBusiness(err, "cancellation_not_allowed"))
}

func TestCancelByClientRejectsPastAppointment(t *testing.T) {
	repo := newFakeRepo()
	create := NewCreatePublicBooking(repo, nopAudit())
	cancel := NewCancelByClient(repo, nopAudit())

	in := validInput()
	in.Date = "2020-01-06"
	ap, err := create.Execute(context.Background(), in)
	require.NoError(t, err)

	_, err = cancel.Execute(context.Background(), ap.ID, in.ClientPhone)

	assert.True(t, httperr.IsBusiness(err, "appointment_in_past"))
}

func TestCancelByClientWrongPhone(t *testing.T) {
	repo := newFakeRepo()
	create := NewCreatePublicBooking(repo, nopAudit())
	cancel := NewCancelByClient(repo, nopAudit())

	in := validInput()
	in.Date = time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	ap, err := create.Execute(context.Background(), in)
	require.NoError(t, err)

	_, err = cancel.Execute(context.Background(), ap.ID, "11888880000")

	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

// ===============================
// Complete
// ===============================

func TestCompleteOnlyByOwningProfessional(t *testing.T) {
	repo := newFakeRepo()
	create := NewCreatePublicBooking(repo, nopAudit())
	complete := NewCompleteAppointment(repo, nopAudit())

	ap, err := create.Execute(context.Background(), validInput())
	require.NoError(t, err)

	_, err = complete.Execute(context.Background(), 1, 99, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))

	done, err := complete.Execute(context.Background(), 1, 20, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), done.Status)
	assert.NotNil(t, done.CompletedAt)
}

// ===============================
// Availability
// ===============================

func TestAvailabilityExcludesBookedSlot(t *testing.T) {
	repo := newFakeRepo()
	create := NewCreatePublicBooking(repo, nopAudit())
	availability := NewGetAvailability(repo)

	_, err := create.Execute(context.Background(), validInput())
	require.NoError(t, err)

	slots, err := availability.Execute(context.Background(), domain.AvailabilityInput{
		SalonID:        1,
		ProfessionalID: 20,
		Date:           "2026-09-01",
	})

	require.NoError(t, err)
	assert.NotContains(t, slots, "10:00")
	assert.Contains(t, slots, "10:30")
}

func TestAvailabilityEmptyDateReturnsNoSlots(t *testing.T) {
	repo := newFakeRepo()
	availability := NewGetAvailability(repo)

	slots, err := availability.Execute(context.Background(), domain.AvailabilityInput{
		SalonID:        1,
		ProfessionalID: 20,
	})

	require.NoError(t, err)
	assert.Empty(t, slots)
}
