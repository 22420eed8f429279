package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/httpresp"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
)

// DirectoryHandler serves the public storefront: the salon listing and the
// per-salon profile page, no authentication involved.
type DirectoryHandler struct {
	db *gorm.DB
}

func NewDirectoryHandler(db *gorm.DB) *DirectoryHandler {
	return &DirectoryHandler{db: db}
}

type DirectorySalonDTO struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Category   string `json:"category"`
	Address    string `json:"address"`
	CoverImage string `json:"cover_image"`
}

// List returns active salons, optionally narrowed by category or a name
// search. Late subscribers stay out of the directory.
func (h *DirectoryHandler) List(c *gin.Context) {
	query := h.db.Model(&models.Salon{}).
		Where("subscription_status = ?", models.SubscriptionActive)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var salons []models.Salon
	if err := query.Order("name ASC").Find(&salons).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao listar estabelecimentos.")
		return
	}

	out := make([]DirectorySalonDTO, 0, len(salons))
	for _, s := range salons {
		out = append(out, DirectorySalonDTO{
			ID:         s.ID,
			Name:       s.Name,
			Slug:       s.Slug,
			Category:   s.Category,
			Address:    s.Address,
			CoverImage: s.CoverImage,
		})
	}

	httpresp.List(c, out)
}

// GetBySlug returns the full public profile: salon data plus its active
// services, professionals and products offered for sale.
func (h *DirectoryHandler) GetBySlug(c *gin.Context) {
	slug := strings.ToLower(c.Param("slug"))

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Estabelecimento não encontrado.")
		return
	}

	if salon.SubscriptionStatus != models.SubscriptionActive {
		httperr.NotFound(c, "salon_not_found", "Estabelecimento não encontrado.")
		return
	}

	var services []models.Service
	h.db.Where("salon_id = ? AND active = ?", salon.ID, true).
		Order("name ASC").
		Find(&services)

	var professionals []models.Professional
	h.db.Where("salon_id = ?", salon.ID).
		Order("name ASC").
		Find(&professionals)

	var products []models.Product
	h.db.Where("salon_id = ? AND is_for_sale = ? AND quantity > 0", salon.ID, true).
		Order("name ASC").
		Find(&products)

	httpresp.OK(c, gin.H{
		"salon":         salon,
		"services":      services,
		"professionals": professionals,
		"products":      products,
	})
}
