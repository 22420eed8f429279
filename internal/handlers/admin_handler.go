package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/httpresp"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
)

// AdminHandler is the platform backoffice: plans, coupons and tenant
// moderation. Admin tokens carry no salon.
type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// ======================================================
// PLANS
// ======================================================

func (h *AdminHandler) ListPlans(c *gin.Context) {
	var plans []models.SaaSPlan
	if err := h.db.Order("price ASC").Find(&plans).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao listar planos.")
		return
	}
	httpresp.List(c, plans)
}

type UpdatePlanRequest struct {
	Name                 *string   `json:"name"`
	Price                *float64  `json:"price"`
	PerProfessionalPrice *float64  `json:"per_professional_price"`
	MaxProfessionals     *int      `json:"max_professionals"`
	IsRecommended        *bool     `json:"is_recommended"`
	Features             *[]string `json:"features"`
}

func (h *AdminHandler) UpdatePlan(c *gin.Context) {
	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var plan models.SaaSPlan
	if err := h.db.First(&plan, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "plan_not_found", "Plano não encontrado.")
		return
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			httperr.BadRequest(c, "invalid_price", "Preço inválido.")
			return
		}
		plan.Price = *req.Price
	}
	if req.PerProfessionalPrice != nil {
		plan.PerProfessionalPrice = *req.PerProfessionalPrice
	}
	if req.MaxProfessionals != nil {
		plan.MaxProfessionals = *req.MaxProfessionals
	}
	if req.IsRecommended != nil {
		plan.IsRecommended = *req.IsRecommended
	}
	if req.Features != nil {
		plan.Features = *req.Features
	}

	if err := h.db.Save(&plan).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao atualizar plano.")
		return
	}

	httpresp.OK(c, plan)
}

// ======================================================
// COUPONS
// ======================================================

func (h *AdminHandler) ListCoupons(c *gin.Context) {
	var coupons []models.Coupon
	if err := h.db.Order("created_at DESC").Find(&coupons).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao listar cupons.")
		return
	}
	httpresp.List(c, coupons)
}

type CouponRequest struct {
	Code            string  `json:"code" binding:"required"`
	DiscountPercent float64 `json:"discount_percent" binding:"required,gt=0,max=100"`
	Active          *bool   `json:"active"`
}

func (h *AdminHandler) CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	coupon := models.Coupon{
		Code:            strings.ToUpper(strings.TrimSpace(req.Code)),
		DiscountPercent: req.DiscountPercent,
		Active:          true,
	}
	if req.Active != nil {
		coupon.Active = *req.Active
	}

	if err := h.db.Create(&coupon).Error; err != nil {
		httperr.Conflict(c, "coupon_already_exists", "Já existe um cupom com este código.")
		return
	}

	c.JSON(http.StatusCreated, coupon)
}

func (h *AdminHandler) ToggleCoupon(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_coupon_id", "Cupom inválido.")
		return
	}

	var coupon models.Coupon
	if err := h.db.First(&coupon, id).Error; err != nil {
		httperr.NotFound(c, "coupon_not_found", "Cupom não encontrado.")
		return
	}

	coupon.Active = !coupon.Active
	if err := h.db.Save(&coupon).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao atualizar cupom.")
		return
	}

	httpresp.OK(c, coupon)
}

// ======================================================
// TENANTS
// ======================================================

func (h *AdminHandler) ListSalons(c *gin.Context) {
	query := h.db.Model(&models.Salon{})

	if status := c.Query("status"); status != "" {
		query = query.Where("subscription_status = ?", status)
	}

	var salons []models.Salon
	if err := query.Order("created_at DESC").Find(&salons).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao listar estabelecimentos.")
		return
	}
	httpresp.List(c, salons)
}

// ToggleSalonStatus flips a tenant between active and late. Late tenants
// drop out of the public directory until they settle up.
func (h *AdminHandler) ToggleSalonStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_salon_id", "Estabelecimento inválido.")
		return
	}

	var salon models.Salon
	if err := h.db.First(&salon, id).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Estabelecimento não encontrado.")
		return
	}

	if salon.SubscriptionStatus == models.SubscriptionActive {
		salon.SubscriptionStatus = models.SubscriptionLate
	} else {
		salon.SubscriptionStatus = models.SubscriptionActive
	}

	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao atualizar estabelecimento.")
		return
	}

	httpresp.OK(c, gin.H{
		"id":                  salon.ID,
		"subscription_status": salon.SubscriptionStatus,
	})
}
