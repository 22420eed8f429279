package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/httpresp"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Overview condenses the owner's home screen into one round trip: today's
// agenda count, the month's money flow and the month's booking totals.
func (h *DashboardHandler) Overview(c *gin.Context) {
	salonID := salonIDFrom(c)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Estabelecimento não encontrado.")
		return
	}

	loc := locationFromSalon(&salon)
	now := nowInSalon(&salon)

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var todayTotal, todayDone int64
	h.db.Model(&models.Appointment{}).
		Where("salon_id = ? AND start_time >= ? AND start_time < ? AND status <> 'cancelled'",
			salonID, dayStart, dayEnd).
		Count(&todayTotal)
	h.db.Model(&models.Appointment{}).
		Where("salon_id = ? AND start_time >= ? AND start_time < ? AND status = 'completed'",
			salonID, dayStart, dayEnd).
		Count(&todayDone)

	var monthBookings, monthCancelled int64
	h.db.Model(&models.Appointment{}).
		Where("salon_id = ? AND start_time >= ? AND start_time < ?",
			salonID, monthStart, monthEnd).
		Count(&monthBookings)
	h.db.Model(&models.Appointment{}).
		Where("salon_id = ? AND start_time >= ? AND start_time < ? AND status = 'cancelled'",
			salonID, monthStart, monthEnd).
		Count(&monthCancelled)

	var income, expense float64
	h.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("salon_id = ? AND type = ? AND date >= ? AND date < ?",
			salonID, models.TransactionIncome, monthStart, monthEnd).
		Scan(&income)
	h.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("salon_id = ? AND type = ? AND date >= ? AND date < ?",
			salonID, models.TransactionExpense, monthStart, monthEnd).
		Scan(&expense)

	var lowStock int64
	h.db.Model(&models.Product{}).
		Where("salon_id = ? AND quantity <= 3", salonID).
		Count(&lowStock)

	httpresp.OK(c, gin.H{
		"today": gin.H{
			"appointments": todayTotal,
			"completed":    todayDone,
		},
		"month": gin.H{
			"bookings":  monthBookings,
			"cancelled": monthCancelled,
			"income":    income,
			"expense":   expense,
			"balance":   income - expense,
		},
		"low_stock_products":  lowStock,
		"subscription_status": salon.SubscriptionStatus,
	})
}
