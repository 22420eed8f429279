package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/httpresp"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
)

type ProductHandler struct {
	db *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

type ProductRequest struct {
	Name      string  `json:"name" binding:"required"`
	Quantity  int     `json:"quantity" binding:"min=0"`
	CostPrice float64 `json:"cost_price" binding:"min=0"`
	SalePrice float64 `json:"sale_price" binding:"min=0"`
	IsForSale bool    `json:"is_for_sale"`
}

func (h *ProductHandler) List(c *gin.Context) {
	var products []models.Product
	if err := h.db.
		Where("salon_id = ?", salonIDFrom(c)).
		Order("name ASC").
		Find(&products).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao listar produtos.")
		return
	}
	httpresp.List(c, products)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	product := models.Product{
		SalonID:   salonIDFrom(c),
		Name:      req.Name,
		Quantity:  req.Quantity,
		CostPrice: req.CostPrice,
		SalePrice: req.SalePrice,
		IsForSale: req.IsForSale,
	}

	if err := h.db.Create(&product).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao criar produto.")
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_product_id", "Produto inválido.")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var product models.Product
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonIDFrom(c)).
		First(&product).Error; err != nil {
		httperr.NotFound(c, "product_not_found", "Produto não encontrado.")
		return
	}

	product.Name = req.Name
	product.Quantity = req.Quantity
	product.CostPrice = req.CostPrice
	product.SalePrice = req.SalePrice
	product.IsForSale = req.IsForSale

	if err := h.db.Save(&product).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao atualizar produto.")
		return
	}

	httpresp.OK(c, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_product_id", "Produto inválido.")
		return
	}

	result := h.db.
		Where("id = ? AND salon_id = ?", id, salonIDFrom(c)).
		Delete(&models.Product{})
	if result.Error != nil {
		httperr.Internal(c, "internal_error", "Erro ao remover produto.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "product_not_found", "Produto não encontrado.")
		return
	}

	c.Status(http.StatusNoContent)
}
