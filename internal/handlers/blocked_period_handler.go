package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LunaStudioApps/salon-scheduler/internal/cache"
	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/httpresp"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
)

type BlockedPeriodHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewBlockedPeriodHandler(db *gorm.DB, cache *cache.Cache) *BlockedPeriodHandler {
	return &BlockedPeriodHandler{db: db, cache: cache}
}

type BlockedPeriodRequest struct {
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	ProfessionalID *uint  `json:"professional_id"`
	Reason         string `json:"reason"`
}

func (h *BlockedPeriodHandler) List(c *gin.Context) {
	var blocks []models.BlockedPeriod
	if err := h.db.
		Where("salon_id = ?", salonIDFrom(c)).
		Order("date ASC").
		Find(&blocks).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao listar bloqueios.")
		return
	}
	httpresp.List(c, blocks)
}

func (h *BlockedPeriodHandler) Create(c *gin.Context) {
	var req BlockedPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	salonID := salonIDFrom(c)

	if req.ProfessionalID != nil {
		var count int64
		h.db.Model(&models.Professional{}).
			Where("id = ? AND salon_id = ?", *req.ProfessionalID, salonID).
			Count(&count)
		if count == 0 {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return
		}
	}

	block := models.BlockedPeriod{
		SalonID:        salonID,
		Date:           req.Date,
		ProfessionalID: req.ProfessionalID,
		Reason:         req.Reason,
	}

	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao criar bloqueio.")
		return
	}

	h.cache.InvalidateDay(c.Request.Context(), salonID, req.Date)

	c.JSON(http.StatusCreated, block)
}

func (h *BlockedPeriodHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_block_id", "Bloqueio inválido.")
		return
	}

	salonID := salonIDFrom(c)

	var block models.BlockedPeriod
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&block).Error; err != nil {
		httperr.NotFound(c, "block_not_found", "Bloqueio não encontrado.")
		return
	}

	if err := h.db.Delete(&block).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao remover bloqueio.")
		return
	}

	h.cache.InvalidateDay(c.Request.Context(), salonID, block.Date)

	c.Status(http.StatusNoContent)
}

// CreateOwn lets a logged-in professional block their own day off. The
// block is always scoped to them, never to the whole salon.
func (h *BlockedPeriodHandler) CreateOwn(c *gin.Context) {
	var req BlockedPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	salonID := salonIDFrom(c)
	proID := professionalIDFrom(c)

	block := models.BlockedPeriod{
		SalonID:        salonID,
		Date:           req.Date,
		ProfessionalID: &proID,
		Reason:         req.Reason,
	}

	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao criar bloqueio.")
		return
	}

	h.cache.InvalidateDay(c.Request.Context(), salonID, req.Date)

	c.JSON(http.StatusCreated, block)
}
