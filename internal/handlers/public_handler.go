package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LunaStudioApps/salon-scheduler/internal/cache"
	domain "github.com/LunaStudioApps/salon-scheduler/internal/domain/schedule"
	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/httpresp"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
	"github.com/LunaStudioApps/salon-scheduler/internal/usecase/booking"
)

// PublicHandler covers the booking flow a visitor goes through: check the
// free slots, identify themselves by phone and confirm the appointment.
type PublicHandler struct {
	db           *gorm.DB
	cache        *cache.Cache
	availability *booking.GetAvailability
	create       *booking.CreatePublicBooking
}

func NewPublicHandler(
	db *gorm.DB,
	cache *cache.Cache,
	availability *booking.GetAvailability,
	create *booking.CreatePublicBooking,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		cache:        cache,
		availability: availability,
		create:       create,
	}
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) GetAvailability(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	professionalID, err := strconv.ParseUint(c.Query("professional_id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
		return
	}

	date := c.Query("date")

	key := cache.AvailabilityKey(salon.ID, date, uint(professionalID))
	if slots, ok := h.cache.GetSlots(c.Request.Context(), key); ok {
		httpresp.OK(c, gin.H{"slots": slots})
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		SalonID:        salon.ID,
		ProfessionalID: uint(professionalID),
		ServiceID:      uint(queryUint(c, "service_id")),
		Date:           date,
	})
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	h.cache.SetSlots(c.Request.Context(), key, slots)
	httpresp.OK(c, gin.H{"slots": slots})
}

// ======================================================
// BOOKING
// ======================================================

type PublicBookingRequest struct {
	ServiceID      uint `json:"service_id" binding:"required"`
	ProfessionalID uint `json:"professional_id" binding:"required"`

	ClientName      string `json:"client_name" binding:"required"`
	ClientPhone     string `json:"client_phone" binding:"required"`
	ClientBirthDate string `json:"client_birth_date"`

	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Time string `json:"time" binding:"required"` // HH:mm

	ProductIDs []uint `json:"product_ids"`
}

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var req PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), booking.CreatePublicBookingInput{
		SalonID:         salon.ID,
		ServiceID:       req.ServiceID,
		ProfessionalID:  req.ProfessionalID,
		ClientName:      req.ClientName,
		ClientPhone:     req.ClientPhone,
		ClientBirthDate: req.ClientBirthDate,
		Date:            req.Date,
		Time:            req.Time,
		ProductIDs:      req.ProductIDs,
	})
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	h.cache.InvalidateDay(c.Request.Context(), salon.ID, req.Date)

	c.JSON(http.StatusCreated, gin.H{
		"id":         ap.ID,
		"reference":  ap.Reference,
		"start_time": ap.StartTime,
		"end_time":   ap.EndTime,
		"status":     ap.Status,
	})
}

// LookupClient pre-fills the booking form when the phone is already known.
func (h *PublicHandler) LookupClient(c *gin.Context) {
	phone := c.Param("phone")
	if phone == "" {
		httperr.BadRequest(c, "missing_phone", "Informe o telefone.")
		return
	}

	var client models.Client
	if err := h.db.Where("phone = ?", phone).First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	httpresp.OK(c, gin.H{
		"name":       client.Name,
		"phone":      client.Phone,
		"birth_date": client.BirthDate,
	})
}

func queryUint(c *gin.Context, name string) uint64 {
	v, _ := strconv.ParseUint(c.Query(name), 10, 32)
	return v
}

// salonBySlug resolves the :slug route param, writing the 404 itself when
// the salon does not exist or is suspended.
func (h *PublicHandler) salonBySlug(c *gin.Context) (*models.Salon, bool) {
	var salon models.Salon
	if err := h.db.
		Where("slug = ?", strings.ToLower(c.Param("slug"))).
		First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Estabelecimento não encontrado.")
		return nil, false
	}
	if salon.SubscriptionStatus != models.SubscriptionActive {
		httperr.NotFound(c, "salon_not_found", "Estabelecimento não encontrado.")
		return nil, false
	}
	return &salon, true
}
