package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/LunaStudioApps/salon-scheduler/internal/domain/finance"
	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/httpresp"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
	"github.com/LunaStudioApps/salon-scheduler/internal/usecase/signup"
)

// CheckoutHandler is the public signup funnel: plan listing, coupon
// validation and the paid checkout itself.
type CheckoutHandler struct {
	db       *gorm.DB
	checkout *signup.Checkout
}

func NewCheckoutHandler(db *gorm.DB, checkout *signup.Checkout) *CheckoutHandler {
	return &CheckoutHandler{db: db, checkout: checkout}
}

func (h *CheckoutHandler) ListPlans(c *gin.Context) {
	var plans []models.SaaSPlan
	if err := h.db.Order("price ASC").Find(&plans).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao listar planos.")
		return
	}
	httpresp.List(c, plans)
}

// ValidateCoupon previews the discount without consuming a use.
func (h *CheckoutHandler) ValidateCoupon(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Query("code")))
	if code == "" {
		httperr.BadRequest(c, "missing_code", "Informe o código do cupom.")
		return
	}

	var coupon models.Coupon
	if err := h.db.
		Where("code = ? AND active = ?", code, true).
		First(&coupon).Error; err != nil {
		httperr.NotFound(c, "coupon_invalid", "Cupom inválido ou expirado.")
		return
	}

	out := gin.H{
		"code":             coupon.Code,
		"discount_percent": coupon.DiscountPercent,
	}
	if planID := c.Query("plan_id"); planID != "" {
		var plan models.SaaSPlan
		if err := h.db.First(&plan, "id = ?", planID).Error; err == nil {
			out["final_price"] = domain.ApplyDiscount(plan.Price, coupon.DiscountPercent)
		}
	}

	httpresp.OK(c, out)
}

type CheckoutRequest struct {
	SalonName  string `json:"salon_name" binding:"required"`
	PlanID     string `json:"plan_id" binding:"required"`
	CouponCode string `json:"coupon_code"`
}

func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	out, err := h.checkout.Execute(c.Request.Context(), signup.CheckoutInput{
		SalonName:  req.SalonName,
		PlanID:     req.PlanID,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	c.JSON(http.StatusCreated, out)
}
