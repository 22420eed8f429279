package billing

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/LunaStudioApps/salon-scheduler/internal/models"
	"github.com/LunaStudioApps/salon-scheduler/internal/notify"
	"github.com/LunaStudioApps/salon-scheduler/internal/timezone"
)

// Scheduler runs the daily maintenance jobs: flag overdue subscriptions and
// remind tomorrow's clients over WhatsApp.
type Scheduler struct {
	db     *gorm.DB
	sender *notify.WhatsAppSender
	log    *zap.Logger
	cron   *cron.Cron
}

func NewScheduler(db *gorm.DB, sender *notify.WhatsAppSender, log *zap.Logger) *Scheduler {
	return &Scheduler{
		db:     db,
		sender: sender,
		log:    log,
		cron:   cron.New(),
	}
}

func (s *Scheduler) Start() {
	s.cron.AddFunc("0 6 * * *", s.SweepOverdueSubscriptions)
	s.cron.AddFunc("0 9 * * *", s.SendAppointmentReminders)
	s.cron.Start()
	s.log.Info("billing scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// SweepOverdueSubscriptions marks active salons late once their billing
// date has passed. The admin panel flips them back after payment.
func (s *Scheduler) SweepOverdueSubscriptions() {
	now := timezone.Now()

	res := s.db.Model(&models.Salon{}).
		Where(
			"subscription_status = ? AND monthly_fee > 0 AND next_billing_date IS NOT NULL AND next_billing_date < ?",
			models.SubscriptionActive,
			now,
		).
		Update("subscription_status", models.SubscriptionLate)

	if res.Error != nil {
		s.log.Error("subscription sweep failed", zap.Error(res.Error))
		return
	}
	if res.RowsAffected > 0 {
		s.log.Info("subscriptions marked late", zap.Int64("count", res.RowsAffected))
	}
}

// SendAppointmentReminders messages every client scheduled for tomorrow.
func (s *Scheduler) SendAppointmentReminders() {
	if !s.sender.Enabled() {
		return
	}

	now := timezone.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	end := start.AddDate(0, 0, 1)

	var appointments []models.Appointment
	if err := s.db.
		Preload("Salon").
		Preload("Service").
		Where("status = ? AND start_time >= ? AND start_time < ?", "scheduled", start, end).
		Find(&appointments).Error; err != nil {
		s.log.Error("failed to load reminders", zap.Error(err))
		return
	}

	sent := 0
	for _, ap := range appointments {
		body := fmt.Sprintf(
			"Olá %s! Lembrete: %s amanhã às %s em %s.",
			ap.ClientName,
			ap.Service.Name,
			ap.StartTime.In(timezone.Location(ap.Salon.Timezone)).Format("15:04"),
			ap.Salon.Name,
		)
		if err := s.sender.Send(ap.ClientPhone, body); err == nil {
			sent++
		}
	}

	s.log.Info("appointment reminders processed",
		zap.Int("total", len(appointments)),
		zap.Int("sent", sent),
	)
}
