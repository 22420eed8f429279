package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/httpresp"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
)

// ClientHandler lists the salon's clientele, derived from its appointment
// history. Client records themselves are shared across tenants.
type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

type SalonClientDTO struct {
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	BirthDate string    `json:"birth_date"`
	Visits    int64     `json:"visits"`
	LastVisit time.Time `json:"last_visit"`
}

func (h *ClientHandler) List(c *gin.Context) {
	salonID := salonIDFrom(c)

	type row struct {
		ClientPhone string
		Visits      int64
		LastVisit   time.Time
	}
	var rows []row
	if err := h.db.Model(&models.Appointment{}).
		Select("client_phone, COUNT(*) AS visits, MAX(start_time) AS last_visit").
		Where("salon_id = ? AND status <> 'cancelled'", salonID).
		Group("client_phone").
		Order("last_visit DESC").
		Scan(&rows).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao listar clientes.")
		return
	}

	phones := make([]string, 0, len(rows))
	for _, r := range rows {
		phones = append(phones, r.ClientPhone)
	}

	clientsByPhone := map[string]models.Client{}
	if len(phones) > 0 {
		var clients []models.Client
		h.db.Where("phone IN ?", phones).Find(&clients)
		for _, cl := range clients {
			clientsByPhone[cl.Phone] = cl
		}
	}

	out := make([]SalonClientDTO, 0, len(rows))
	for _, r := range rows {
		item := SalonClientDTO{
			Phone:     r.ClientPhone,
			Visits:    r.Visits,
			LastVisit: r.LastVisit,
		}
		if cl, ok := clientsByPhone[r.ClientPhone]; ok {
			item.Name = cl.Name
			item.BirthDate = cl.BirthDate
		}
		out = append(out, item)
	}

	httpresp.List(c, out)
}
