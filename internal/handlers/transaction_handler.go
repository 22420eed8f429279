package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/httpresp"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
	"github.com/LunaStudioApps/salon-scheduler/internal/usecase/finance"
)

type TransactionHandler struct {
	db          *gorm.DB
	add         *finance.AddTransaction
	commissions *finance.ListCommissions
	pay         *finance.PayCommission
}

func NewTransactionHandler(
	db *gorm.DB,
	add *finance.AddTransaction,
	commissions *finance.ListCommissions,
	pay *finance.PayCommission,
) *TransactionHandler {
	return &TransactionHandler{
		db:          db,
		add:         add,
		commissions: commissions,
		pay:         pay,
	}
}

// ======================================================
// LEDGER
// ======================================================

// List returns the salon's ledger for a month (defaults to the current one).
func (h *TransactionHandler) List(c *gin.Context) {
	salonID := salonIDFrom(c)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Estabelecimento não encontrado.")
		return
	}

	monthStart, monthEnd, err := monthRange(&salon, c.Query("month"))
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Mês inválido, use YYYY-MM.")
		return
	}

	query := h.db.
		Where("salon_id = ? AND date >= ? AND date < ?", salonID, monthStart, monthEnd)

	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var transactions []models.Transaction
	if err := query.Order("date DESC, id DESC").Find(&transactions).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao listar lançamentos.")
		return
	}

	httpresp.List(c, transactions)
}

type TransactionRequest struct {
	Description   string  `json:"description" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Type          string  `json:"type" binding:"required,oneof=income expense"`
	Category      string  `json:"category"`
	PaymentMethod string  `json:"payment_method"`
	Date          string  `json:"date" binding:"required"`
	Installments  int     `json:"installments"`
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	records, err := h.add.Execute(c.Request.Context(), finance.AddTransactionInput{
		SalonID:       salonIDFrom(c),
		Description:   req.Description,
		Amount:        req.Amount,
		Type:          models.TransactionType(req.Type),
		Category:      req.Category,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		Date:          req.Date,
		Installments:  req.Installments,
	})
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"transactions": records,
		"count":        len(records),
	})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_transaction_id", "Lançamento inválido.")
		return
	}

	var tx models.Transaction
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonIDFrom(c)).
		First(&tx).Error; err != nil {
		httperr.NotFound(c, "transaction_not_found", "Lançamento não encontrado.")
		return
	}

	// ledger entries derived from bookings only go away with the booking
	if tx.AutoGenerated {
		httperr.Conflict(c, "auto_generated_transaction",
			"Cancele o agendamento para remover este lançamento.")
		return
	}

	if err := h.db.Delete(&tx).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao remover lançamento.")
		return
	}

	c.Status(http.StatusNoContent)
}

// Summary aggregates the month's income, expenses and balance in SQL.
func (h *TransactionHandler) Summary(c *gin.Context) {
	salonID := salonIDFrom(c)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Estabelecimento não encontrado.")
		return
	}

	monthStart, monthEnd, err := monthRange(&salon, c.Query("month"))
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Mês inválido, use YYYY-MM.")
		return
	}

	type row struct {
		Type  models.TransactionType
		Total float64
	}
	var rows []row
	if err := h.db.Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("salon_id = ? AND date >= ? AND date < ?", salonID, monthStart, monthEnd).
		Group("type").
		Scan(&rows).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao calcular resumo.")
		return
	}

	var income, expense float64
	for _, r := range rows {
		switch r.Type {
		case models.TransactionIncome:
			income = r.Total
		case models.TransactionExpense:
			expense = r.Total
		}
	}

	httpresp.OK(c, gin.H{
		"month":   monthStart.Format("2006-01"),
		"income":  income,
		"expense": expense,
		"balance": income - expense,
	})
}

// ======================================================
// COMMISSIONS
// ======================================================

func (h *TransactionHandler) ListCommissions(c *gin.Context) {
	salonID := salonIDFrom(c)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Estabelecimento não encontrado.")
		return
	}

	ref := nowInSalon(&salon)
	if month := c.Query("month"); month != "" {
		parsed, err := time.ParseInLocation("2006-01", month, locationFromSalon(&salon))
		if err != nil {
			httperr.BadRequest(c, "invalid_month", "Mês inválido, use YYYY-MM.")
			return
		}
		ref = parsed
	}

	statements, err := h.commissions.Execute(c.Request.Context(), salonID, ref)
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.List(c, statements)
}

// MyCommission is the professional-facing view: only the caller's own
// statement for the current month.
func (h *TransactionHandler) MyCommission(c *gin.Context) {
	salonID := salonIDFrom(c)
	professionalID := professionalIDFrom(c)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Estabelecimento não encontrado.")
		return
	}

	statements, err := h.commissions.Execute(c.Request.Context(), salonID, nowInSalon(&salon))
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	for i := range statements {
		if statements[i].ProfessionalID == professionalID {
			httpresp.OK(c, statements[i])
			return
		}
	}

	httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
}

func (h *TransactionHandler) PayCommission(c *gin.Context) {
	professionalID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
		return
	}

	tx, err := h.pay.Execute(c.Request.Context(), salonIDFrom(c), uint(professionalID))
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	c.JSON(http.StatusCreated, tx)
}

// monthRange resolves "YYYY-MM" (or empty for the current month) into the
// salon-local [start, end) window.
func monthRange(salon *models.Salon, month string) (time.Time, time.Time, error) {
	loc := locationFromSalon(salon)

	ref := time.Now().In(loc)
	if month != "" {
		parsed, err := time.ParseInLocation("2006-01", month, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		ref = parsed
	}

	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0), nil
}
