package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mobeloper/ai-rag-chatbot/internal/models"
)

type queryRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

// NewStandaloneRouter builds the self-contained variant: an inline HTML chat
// page and a /chat endpoint that keeps history server-side, one sequence per
// session id.
func NewStandaloneRouter(chatter Chatter, sessions *SessionStore) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(standaloneHTML))
	})

	r.POST("/chat", func(c *gin.Context) {
		var req queryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"response": "Please enter a query."})
			return
		}
		query := strings.TrimSpace(req.Query)
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"response": "Please enter a query."})
			return
		}

		sessionID, err := sessions.Resolve(req.SessionID)
		if err != nil {
			log.Error().Err(err).Msg("Failed to create session")
			c.JSON(http.StatusInternalServerError, gin.H{"response": "An error occurred while processing your request."})
			return
		}

		history := sessions.History(sessionID)
		resp, err := chatter.Query(c.Request.Context(), query, history)
		if err != nil {
			log.Error().Err(err).Str("session", sessionID).Msg("Chat request failed")
			c.JSON(http.StatusInternalServerError, gin.H{"response": "An error occurred while processing your request."})
			return
		}

		sessions.Append(sessionID,
			models.ChatTurn{Role: models.RoleUser, Content: query},
			models.ChatTurn{Role: models.RoleAssistant, Content: resp.Answer},
		)
		c.JSON(http.StatusOK, gin.H{"response": resp.Answer, "session_id": sessionID})
	})

	return r
}
