package handler

import (
	"net/http"

	"github.com/whoknows1409/Finance-Tracker-AI/internal/models"
	"github.com/whoknows1409/Finance-Tracker-AI/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AnalyticsHandler serves the summary endpoint.
type AnalyticsHandler struct {
	DB *gorm.DB
}

func NewAnalyticsHandler(db *gorm.DB) *AnalyticsHandler {
	return &AnalyticsHandler{DB: db}
}

// Summary aggregates the full transaction set. All monetary values are
// rounded to 2 decimal places.
type Summary struct {
	TotalIncome       float64            `json:"total_income"`
	TotalExpenses     float64            `json:"total_expenses"`
	NetSavings        float64            `json:"net_savings"`
	ExpenseCategories map[string]float64 `json:"expense_categories"`
	SavingsRate       float64            `json:"savings_rate"`
}

// GetSummary recomputes the aggregate from scratch on every call. The scan
// is bounded by the same cap as the listing, so there is no windowing.
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	var txs []models.Transaction
	if err := h.DB.
		Where("user_id = ?", models.DefaultUserID).
		Limit(maxListSize).
		Find(&txs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transactions")
		return
	}

	c.JSON(http.StatusOK, Summarize(txs))
}

var hundred = decimal.NewFromInt(100)

// Summarize sums income and expense amounts, builds the per-category expense
// breakdown and derives the savings rate (net/income*100, 0 when income is 0).
func Summarize(txs []models.Transaction) Summary {
	income := decimal.Zero
	expenses := decimal.Zero
	categories := make(map[string]decimal.Decimal)

	for i := range txs {
		amount := decimal.NewFromFloat(txs[i].Amount)
		switch txs[i].Type {
		case models.TypeIncome:
			income = income.Add(amount)
		case models.TypeExpense:
			expenses = expenses.Add(amount)
			categories[txs[i].Category] = categories[txs[i].Category].Add(amount)
		}
	}

	net := income.Sub(expenses)
	rate := decimal.Zero
	if income.IsPositive() {
		rate = net.Div(income).Mul(hundred)
	}

	expenseCategories := make(map[string]float64, len(categories))
	for cat, sum := range categories {
		expenseCategories[cat] = sum.Round(2).InexactFloat64()
	}

	return Summary{
		TotalIncome:       income.Round(2).InexactFloat64(),
		TotalExpenses:     expenses.Round(2).InexactFloat64(),
		NetSavings:        net.Round(2).InexactFloat64(),
		ExpenseCategories: expenseCategories,
		SavingsRate:       rate.Round(2).InexactFloat64(),
	}
}
