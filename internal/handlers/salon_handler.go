package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/LunaStudioApps/salon-scheduler/internal/audit"
	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/httpresp"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
	"github.com/LunaStudioApps/salon-scheduler/internal/storage"
	"github.com/LunaStudioApps/salon-scheduler/internal/timezone"
)

type SalonHandler struct {
	db    *gorm.DB
	media *storage.MediaStore
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewSalonHandler(
	db *gorm.DB,
	media *storage.MediaStore,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *SalonHandler {
	return &SalonHandler{db: db, media: media, audit: audit, log: log}
}

func (h *SalonHandler) GetMine(c *gin.Context) {
	var salon models.Salon
	if err := h.db.First(&salon, salonIDFrom(c)).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Estabelecimento não encontrado.")
		return
	}
	httpresp.OK(c, salon)
}

type UpdateSalonRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Address     *string `json:"address"`
	Timezone    *string `json:"timezone"`

	OpenTime        *string `json:"open_time"`
	CloseTime       *string `json:"close_time"`
	SlotIntervalMin *int    `json:"slot_interval_min"`

	AboutUs   *string `json:"about_us"`
	Instagram *string `json:"instagram"`
	Whatsapp  *string `json:"whatsapp"`
	Website   *string `json:"website"`

	AllowClientCancellation *bool `json:"allow_client_cancellation"`
}

// UpdateMine applies only the fields the owner sent; absent fields keep
// their current value.
func (h *SalonHandler) UpdateMine(c *gin.Context) {
	var req UpdateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var salon models.Salon
	if err := h.db.First(&salon, salonIDFrom(c)).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Estabelecimento não encontrado.")
		return
	}

	if req.Name != nil {
		salon.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		salon.Description = *req.Description
	}
	if req.Category != nil {
		salon.Category = *req.Category
	}
	if req.Address != nil {
		salon.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		salon.Timezone = *req.Timezone
	}
	if req.OpenTime != nil {
		salon.OpenTime = *req.OpenTime
	}
	if req.CloseTime != nil {
		salon.CloseTime = *req.CloseTime
	}
	if req.SlotIntervalMin != nil {
		if *req.SlotIntervalMin <= 0 {
			httperr.BadRequest(c, "invalid_interval", "Intervalo de agenda inválido.")
			return
		}
		salon.SlotIntervalMin = *req.SlotIntervalMin
	}
	if req.AboutUs != nil {
		salon.AboutUs = *req.AboutUs
	}
	if req.Instagram != nil {
		salon.Instagram = *req.Instagram
	}
	if req.Whatsapp != nil {
		salon.Whatsapp = *req.Whatsapp
	}
	if req.Website != nil {
		salon.Website = *req.Website
	}
	if req.AllowClientCancellation != nil {
		salon.AllowClientCancellation = *req.AllowClientCancellation
	}

	if salon.OpenTime >= salon.CloseTime {
		httperr.BadRequest(c, "invalid_opening_hours", "Horário de funcionamento inválido.")
		return
	}

	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao atualizar estabelecimento.")
		return
	}

	userID := userIDFrom(c)
	h.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   &userID,
		Action:   "salon_updated",
		Entity:   "salon",
		EntityID: &salon.ID,
	})

	httpresp.OK(c, salon)
}

// UploadCover stores the salon's cover picture. The image is resized and
// re-encoded as webp before hitting the bucket.
func (h *SalonHandler) UploadCover(c *gin.Context) {
	if !h.media.Enabled() {
		httperr.BadRequest(c, "media_disabled", "Upload de imagens não está configurado.")
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Envie o arquivo no campo 'file'.")
		return
	}
	defer file.Close()

	var salon models.Salon
	if err := h.db.First(&salon, salonIDFrom(c)).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Estabelecimento não encontrado.")
		return
	}

	url, err := h.media.Upload(c.Request.Context(), "covers", file)
	if err != nil {
		h.log.Error("cover upload failed", zap.Uint("salon_id", salon.ID), zap.Error(err))
		httperr.Internal(c, "upload_failed", "Erro ao enviar imagem.")
		return
	}

	salon.CoverImage = url
	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao salvar imagem.")
		return
	}

	httpresp.OK(c, gin.H{"cover_image": url})
}
