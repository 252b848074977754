package handlers

import (
	"net/http"

	"mediflow/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Chat runs one conversation turn. A missing sessionId starts a new
// conversation; the generated id is returned so the client can continue it.
func (hb *HandlerBundle) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}

	sess, err := hb.Sessions.Get(c.Request.Context(), req.SessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
		return
	}

	result := hb.Agent.ProcessTurn(c.Request.Context(), sess, req.Message)

	if err := hb.Sessions.Set(c.Request.Context(), result.Session); err != nil {
		getLogger(c).Warn("failed to persist session",
			zap.String("sessionID", req.SessionID), zap.Error(err))
	}

	c.JSON(http.StatusOK, models.ChatResponse{
		SessionID: req.SessionID,
		Response:  result.Response,
		Intent:    string(result.Intent),
		State:     result.Session.State,
	})
}

// ResetChat discards a conversation session.
func (hb *HandlerBundle) ResetChat(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := hb.Sessions.Clear(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID, "status": "cleared"})
}
