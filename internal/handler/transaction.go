package handler

import (
	"net/http"
	"time"

	"github.com/whoknows1409/Finance-Tracker-AI/internal/models"
	"github.com/whoknows1409/Finance-Tracker-AI/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxListSize caps the unpaginated transaction listing.
const maxListSize = 1000

// TransactionHandler serves the ledger endpoints.
type TransactionHandler struct {
	DB *gorm.DB
}

func NewTransactionHandler(db *gorm.DB) *TransactionHandler {
	return &TransactionHandler{DB: db}
}

type createTransactionReq struct {
	Type        models.TransactionType `json:"type" binding:"required"`
	Amount      float64                `json:"amount"`
	Category    string                 `json:"category" binding:"max=64"`
	Description string                 `json:"description" binding:"max=255"`
}

// CreateTransaction persists a new record. Identifier and timestamp are
// assigned server-side; unrecognized kinds are rejected at the boundary.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req createTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid transaction payload")
		return
	}
	if !req.Type.Valid() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "type must be income or expense")
		return
	}

	tx := models.Transaction{
		ID:          uuid.NewString(),
		UserID:      models.DefaultUserID,
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        time.Now().UTC(),
	}

	if err := h.DB.Create(&tx).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save transaction")
		return
	}

	c.JSON(http.StatusOK, tx)
}

// ListTransactions returns all records newest first, capped at maxListSize.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	txs := make([]models.Transaction, 0)
	if err := h.DB.
		Where("user_id = ?", models.DefaultUserID).
		Order("date DESC").
		Limit(maxListSize).
		Find(&txs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, txs)
}

// DeleteTransaction removes exactly one record by identifier.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id := c.Param("id")

	res := h.DB.
		Where("id = ? AND user_id = ?", id, models.DefaultUserID).
		Delete(&models.Transaction{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete transaction")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Transaction not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
