package handler

import (
	"net/http"

	"github.com/whoknows1409/Finance-Tracker-AI/internal/advisor"
	"github.com/whoknows1409/Finance-Tracker-AI/internal/stock"
	"github.com/whoknows1409/Finance-Tracker-AI/internal/util"

	"github.com/gin-gonic/gin"
)

// StockHandler serves quote lookup and AI-backed stock analysis.
type StockHandler struct {
	Quotes  *stock.Client
	Advisor *advisor.Advisor
}

func NewStockHandler(quotes *stock.Client, adv *advisor.Advisor) *StockHandler {
	return &StockHandler{Quotes: quotes, Advisor: adv}
}

// GetStock fetches a fresh quote. Unresolvable symbols and provider
// failures both surface as 404.
func (h *StockHandler) GetStock(c *gin.Context) {
	q, err := h.Quotes.Fetch(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Stock not found")
		return
	}
	c.JSON(http.StatusOK, q)
}

type analyzeStockReq struct {
	Symbol string `json:"symbol" binding:"required"`
}

// AnalyzeStock fetches the quote and asks the advisor for a natural-language
// analysis. A missing credential yields a 200 with the fixed warning; an
// actual provider failure yields 502.
func (h *StockHandler) AnalyzeStock(c *gin.Context) {
	var req analyzeStockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "symbol is required")
		return
	}

	q, err := h.Quotes.Fetch(c.Request.Context(), req.Symbol)
	if err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Stock not found")
		return
	}

	analysis, err := h.Advisor.AnalyzeQuote(c.Request.Context(), q)
	if err != nil {
		util.Error(c, http.StatusBadGateway, util.CodeUpstream, "AI provider unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stock_data":  q,
		"ai_analysis": analysis,
	})
}
