package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LunaStudioApps/salon-scheduler/internal/cache"
	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/httpresp"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
	"github.com/LunaStudioApps/salon-scheduler/internal/usecase/booking"
)

// PortalHandler is the client-facing "my appointments" area, keyed by phone
// instead of a login.
type PortalHandler struct {
	db     *gorm.DB
	cache  *cache.Cache
	cancel *booking.CancelByClient
}

func NewPortalHandler(
	db *gorm.DB,
	cache *cache.Cache,
	cancel *booking.CancelByClient,
) *PortalHandler {
	return &PortalHandler{
		db:     db,
		cache:  cache,
		cancel: cancel,
	}
}

type PortalAppointmentDTO struct {
	ID        uint   `json:"id"`
	Reference string `json:"reference"`
	SalonName string `json:"salon_name"`
	SalonSlug string `json:"salon_slug"`

	ServiceName      string `json:"service_name"`
	ProfessionalName string `json:"professional_name"`

	StartTime string  `json:"start_time"`
	Status    string  `json:"status"`
	Price     float64 `json:"price"`

	CanCancel bool `json:"can_cancel"`
}

func (h *PortalHandler) ListByPhone(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		httperr.BadRequest(c, "missing_phone", "Informe o telefone.")
		return
	}

	var appointments []models.Appointment
	if err := h.db.
		Preload("Salon").
		Preload("Service").
		Preload("Professional").
		Where("client_phone = ?", phone).
		Order("start_time DESC").
		Find(&appointments).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao listar agendamentos.")
		return
	}

	out := make([]PortalAppointmentDTO, 0, len(appointments))
	for _, ap := range appointments {
		loc := locationFromSalon(&ap.Salon)
		out = append(out, PortalAppointmentDTO{
			ID:               ap.ID,
			Reference:        ap.Reference,
			SalonName:        ap.Salon.Name,
			SalonSlug:        ap.Salon.Slug,
			ServiceName:      ap.Service.Name,
			ProfessionalName: ap.Professional.Name,
			StartTime:        ap.StartTime.In(loc).Format("2006-01-02 15:04"),
			Status:           ap.Status,
			Price:            ap.Price,
			CanCancel: ap.Status == "scheduled" &&
				ap.Salon.AllowClientCancellation &&
				ap.StartTime.After(nowInSalon(&ap.Salon)),
		})
	}

	httpresp.List(c, out)
}

func (h *PortalHandler) Cancel(c *gin.Context) {
	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Agendamento inválido.")
		return
	}

	phone := c.Query("phone")

	ap, err := h.cancel.Execute(c.Request.Context(), uint(appointmentID), phone)
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	var salon models.Salon
	if err := h.db.First(&salon, ap.SalonID).Error; err == nil {
		day := ap.StartTime.In(locationFromSalon(&salon)).Format("2006-01-02")
		h.cache.InvalidateDay(c.Request.Context(), ap.SalonID, day)
	}

	httpresp.OK(c, gin.H{
		"id":     ap.ID,
		"status": ap.Status,
	})
}
