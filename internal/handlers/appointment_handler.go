package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LunaStudioApps/salon-scheduler/internal/cache"
	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/httpresp"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
	"github.com/LunaStudioApps/salon-scheduler/internal/usecase/booking"
)

// AppointmentHandler is the tenant-side agenda: the owner sees every chair,
// the professional only their own.
type AppointmentHandler struct {
	db         *gorm.DB
	cache      *cache.Cache
	create     *booking.CreatePublicBooking
	cancel     *booking.CancelAppointment
	complete   *booking.CompleteAppointment
	listByDate *booking.ListAppointmentsByDate
}

func NewAppointmentHandler(
	db *gorm.DB,
	cache *cache.Cache,
	create *booking.CreatePublicBooking,
	cancel *booking.CancelAppointment,
	complete *booking.CompleteAppointment,
	listByDate *booking.ListAppointmentsByDate,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:         db,
		cache:      cache,
		create:     create,
		cancel:     cancel,
		complete:   complete,
		listByDate: listByDate,
	}
}

// ======================================================
// OWNER
// ======================================================

type AgendaItemDTO struct {
	ID               uint    `json:"id"`
	Reference        string  `json:"reference"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	Status           string  `json:"status"`
	ClientName       string  `json:"client_name"`
	ClientPhone      string  `json:"client_phone"`
	ServiceName      string  `json:"service_name"`
	ProfessionalName string  `json:"professional_name"`
	Price            float64 `json:"price"`
}

// ListByDate shows the whole salon's agenda for one day.
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	salonID := salonIDFrom(c)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Estabelecimento não encontrado.")
		return
	}

	day, err := parseDateInSalon(&salon, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	query := h.db.
		Preload("Service").
		Preload("Professional").
		Where(
			"salon_id = ? AND start_time >= ? AND start_time < ?",
			salonID, day, day.AddDate(0, 0, 1),
		)

	if proID := c.Query("professional_id"); proID != "" {
		query = query.Where("professional_id = ?", proID)
	}

	var appointments []models.Appointment
	if err := query.Order("start_time ASC").Find(&appointments).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao listar agendamentos.")
		return
	}

	loc := locationFromSalon(&salon)
	out := make([]AgendaItemDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, AgendaItemDTO{
			ID:               ap.ID,
			Reference:        ap.Reference,
			StartTime:        ap.StartTime.In(loc).Format("15:04"),
			EndTime:          ap.EndTime.In(loc).Format("15:04"),
			Status:           ap.Status,
			ClientName:       ap.ClientName,
			ClientPhone:      ap.ClientPhone,
			ServiceName:      ap.Service.Name,
			ProfessionalName: ap.Professional.Name,
			Price:            ap.Price,
		})
	}

	httpresp.List(c, out)
}

type PrivateBookingRequest struct {
	ServiceID      uint `json:"service_id" binding:"required"`
	ProfessionalID uint `json:"professional_id" binding:"required"`

	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`

	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`

	ProductIDs []uint `json:"product_ids"`
}

// Create books on behalf of a walk-in or phone client. Same rules as the
// public flow, the salon just comes from the token.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req PrivateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	salonID := salonIDFrom(c)

	ap, err := h.create.Execute(c.Request.Context(), booking.CreatePublicBookingInput{
		SalonID:        salonID,
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		Date:           req.Date,
		Time:           req.Time,
		ProductIDs:     req.ProductIDs,
	})
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	h.cache.InvalidateDay(c.Request.Context(), salonID, req.Date)

	c.JSON(http.StatusCreated, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Agendamento inválido.")
		return
	}

	salonID := salonIDFrom(c)
	userID := userIDFrom(c)

	ap, err := h.cancel.Execute(c.Request.Context(), salonID, uint(id), &userID)
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err == nil {
		day := ap.StartTime.In(locationFromSalon(&salon)).Format("2006-01-02")
		h.cache.InvalidateDay(c.Request.Context(), salonID, day)
	}

	httpresp.OK(c, gin.H{
		"id":     ap.ID,
		"status": ap.Status,
	})
}

// ======================================================
// PROFESSIONAL PANEL
// ======================================================

func (h *AppointmentHandler) ListOwnByDate(c *gin.Context) {
	salonID := salonIDFrom(c)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Estabelecimento não encontrado.")
		return
	}

	day, err := parseDateInSalon(&salon, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	items, err := h.listByDate.Execute(
		c.Request.Context(),
		salonID,
		professionalIDFrom(c),
		day,
	)
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.List(c, items)
}

// Complete marks the professional's own appointment as done.
func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Agendamento inválido.")
		return
	}

	ap, err := h.complete.Execute(
		c.Request.Context(),
		salonIDFrom(c),
		professionalIDFrom(c),
		uint(id),
	)
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"id":           ap.ID,
		"status":       ap.Status,
		"completed_at": ap.CompletedAt,
	})
}
