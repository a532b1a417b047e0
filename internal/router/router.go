package router

import (
	"net/http"

	"github.com/whoknows1409/Finance-Tracker-AI/internal/advisor"
	"github.com/whoknows1409/Finance-Tracker-AI/internal/config"
	"github.com/whoknows1409/Finance-Tracker-AI/internal/handler"
	"github.com/whoknows1409/Finance-Tracker-AI/internal/middleware"
	"github.com/whoknows1409/Finance-Tracker-AI/internal/stock"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and wires all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB, quotes *stock.Client, adv *advisor.Advisor) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.CORS())

	// ====== API ======
	api := r.Group("/api")

	api.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Personal Finance Tracker API"})
	})

	txHandler := handler.NewTransactionHandler(db)
	api.POST("/transactions", txHandler.CreateTransaction)
	api.GET("/transactions", txHandler.ListTransactions)
	api.DELETE("/transactions/:id", txHandler.DeleteTransaction)

	exportHandler := handler.NewExportHandler(db)
	api.GET("/transactions/export", exportHandler.Export)

	analyticsHandler := handler.NewAnalyticsHandler(db)
	api.GET("/analytics/summary", analyticsHandler.GetSummary)

	stockHandler := handler.NewStockHandler(quotes, adv)
	api.GET("/stocks/:symbol", stockHandler.GetStock)
	api.POST("/stocks/analyze", stockHandler.AnalyzeStock)

	chatHandler := handler.NewChatHandler(db, adv)
	api.POST("/chat", chatHandler.Chat)
	api.GET("/chat/history/:session_id", chatHandler.GetHistory)

	return r
}
