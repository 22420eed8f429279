package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/LunaStudioApps/salon-scheduler/internal/audit"
	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/httpresp"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
	"github.com/LunaStudioApps/salon-scheduler/internal/storage"
)

type ProfessionalHandler struct {
	db    *gorm.DB
	media *storage.MediaStore
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewProfessionalHandler(
	db *gorm.DB,
	media *storage.MediaStore,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *ProfessionalHandler {
	return &ProfessionalHandler{db: db, media: media, audit: audit, log: log}
}

type ProfessionalRequest struct {
	Name                  string   `json:"name" binding:"required"`
	CommissionRate        float64  `json:"commission_rate" binding:"min=0,max=100"`
	ProductCommissionRate *float64 `json:"product_commission_rate"`

	// Optional on update; required on create.
	Password string `json:"password"`
}

func (h *ProfessionalHandler) List(c *gin.Context) {
	var professionals []models.Professional
	if err := h.db.
		Where("salon_id = ?", salonIDFrom(c)).
		Order("name ASC").
		Find(&professionals).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao listar profissionais.")
		return
	}
	httpresp.List(c, professionals)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	var req ProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if len(req.Password) < 4 {
		httperr.BadRequest(c, "password_too_short", "A senha deve ter pelo menos 4 caracteres.")
		return
	}
	if req.ProductCommissionRate != nil &&
		(*req.ProductCommissionRate < 0 || *req.ProductCommissionRate > 100) {
		httperr.BadRequest(c, "invalid_commission_rate", "Comissão de produtos inválida.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "internal_error", "Erro ao cadastrar profissional.")
		return
	}

	pro := models.Professional{
		SalonID:               salonIDFrom(c),
		Name:                  req.Name,
		CommissionRate:        req.CommissionRate,
		ProductCommissionRate: req.ProductCommissionRate,
		PasswordHash:          string(hashed),
	}

	if err := h.db.Create(&pro).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao cadastrar profissional.")
		return
	}

	userID := userIDFrom(c)
	h.audit.Dispatch(audit.Event{
		SalonID:  pro.SalonID,
		UserID:   &userID,
		Action:   "professional_created",
		Entity:   "professional",
		EntityID: &pro.ID,
	})

	c.JSON(http.StatusCreated, pro)
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
		return
	}

	var req ProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var pro models.Professional
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonIDFrom(c)).
		First(&pro).Error; err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	pro.Name = req.Name
	pro.CommissionRate = req.CommissionRate
	pro.ProductCommissionRate = req.ProductCommissionRate

	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "internal_error", "Erro ao atualizar profissional.")
			return
		}
		pro.PasswordHash = string(hashed)
	}

	if err := h.db.Save(&pro).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao atualizar profissional.")
		return
	}

	httpresp.OK(c, pro)
}

func (h *ProfessionalHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
		return
	}

	var count int64
	h.db.Model(&models.Appointment{}).
		Where("professional_id = ? AND status = ?", id, "scheduled").
		Count(&count)
	if count > 0 {
		httperr.Conflict(c, "professional_has_appointments",
			"O profissional ainda tem agendamentos futuros.")
		return
	}

	result := h.db.
		Where("id = ? AND salon_id = ?", id, salonIDFrom(c)).
		Delete(&models.Professional{})
	if result.Error != nil {
		httperr.Internal(c, "internal_error", "Erro ao remover profissional.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProfessionalHandler) UploadAvatar(c *gin.Context) {
	if !h.media.Enabled() {
		httperr.BadRequest(c, "media_disabled", "Upload de imagens não está configurado.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
		return
	}

	var pro models.Professional
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonIDFrom(c)).
		First(&pro).Error; err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Envie o arquivo no campo 'file'.")
		return
	}
	defer file.Close()

	url, err := h.media.Upload(c.Request.Context(), "avatars", file)
	if err != nil {
		h.log.Error("avatar upload failed", zap.Uint("professional_id", pro.ID), zap.Error(err))
		httperr.Internal(c, "upload_failed", "Erro ao enviar imagem.")
		return
	}

	pro.AvatarURL = url
	if err := h.db.Save(&pro).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao salvar imagem.")
		return
	}

	httpresp.OK(c, gin.H{"avatar_url": url})
}
