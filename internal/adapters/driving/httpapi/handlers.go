package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/samchat/internal/core/domain"
	"github.com/custodia-labs/samchat/internal/core/ports/driving"
	"github.com/custodia-labs/samchat/internal/logger"
)

// chatRequest is the POST /api/chat body.
type chatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// chatResponse is the POST /api/chat success body.
type chatResponse struct {
	Reply      string `json:"reply"`
	TokensUsed int    `json:"tokensUsed"`
}

// conversationMessage is one entry of the GET /api/conversations body.
type conversationMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// HandleChat routes one user message through the pipeline.
func HandleChat(chat driving.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing data"})
			return
		}
		if req.SessionID == "" || strings.TrimSpace(req.Message) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing data"})
			return
		}

		reply, err := chat.Respond(c.Request.Context(), req.SessionID, req.Message)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Missing data"})
				return
			}
			// Provider and storage failures are a generic server
			// error; the reply is never partially generated.
			logger.Warn("Chat request failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
			return
		}

		c.JSON(http.StatusOK, chatResponse{Reply: reply.Reply, TokensUsed: reply.TokensUsed})
	}
}

// HandleConversation returns the session transcript oldest-first.
func HandleConversation(chat driving.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionId")

		messages, err := chat.History(c.Request.Context(), sessionID)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Missing data"})
				return
			}
			logger.Warn("History request failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
			return
		}

		out := make([]conversationMessage, len(messages))
		for i, msg := range messages {
			out[i] = conversationMessage{Role: string(msg.Role), Content: msg.Content}
		}
		c.JSON(http.StatusOK, out)
	}
}
