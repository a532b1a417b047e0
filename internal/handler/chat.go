package handler

import (
	"net/http"
	"time"

	"github.com/whoknows1409/Finance-Tracker-AI/internal/advisor"
	"github.com/whoknows1409/Finance-Tracker-AI/internal/models"
	"github.com/whoknows1409/Finance-Tracker-AI/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxHistorySize caps the per-session history listing.
const maxHistorySize = 100

// ChatHandler serves the AI chat endpoints.
type ChatHandler struct {
	DB      *gorm.DB
	Advisor *advisor.Advisor
}

func NewChatHandler(db *gorm.DB, adv *advisor.Advisor) *ChatHandler {
	return &ChatHandler{DB: db, Advisor: adv}
}

type chatReq struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id"`
}

// Chat sends the user message to the advisor and appends the exchange to the
// session history. Without a configured credential the fixed warning is
// returned and nothing is persisted; a provider failure yields 502.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "message is required")
		return
	}

	if !h.Advisor.Configured() {
		c.JSON(http.StatusOK, gin.H{"response": advisor.ChatUnconfigured})
		return
	}

	text, err := h.Advisor.Chat(c.Request.Context(), req.Message)
	if err != nil {
		util.Error(c, http.StatusBadGateway, util.CodeUpstream, "AI provider unavailable")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	record := models.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Message:   req.Message,
		Response:  text,
		Timestamp: time.Now().UTC(),
	}
	if err := h.DB.Create(&record).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save chat history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response":   text,
		"session_id": sessionID,
	})
}

// GetHistory returns up to maxHistorySize messages of one session, oldest
// first.
func (h *ChatHandler) GetHistory(c *gin.Context) {
	sessionID := c.Param("session_id")

	msgs := make([]models.ChatMessage, 0)
	if err := h.DB.
		Where("session_id = ?", sessionID).
		Order("timestamp ASC").
		Limit(maxHistorySize).
		Find(&msgs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load chat history")
		return
	}

	c.JSON(http.StatusOK, msgs)
}
