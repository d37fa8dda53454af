// Package server holds the HTTP front ends over the retrieval pipeline: the
// stateless primary service and the session-based standalone variant.
package server

import (
	"context"
	_ "embed"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mobeloper/ai-rag-chatbot/internal/models"
)

//go:embed static/index.html
var indexHTML []byte

// Chatter answers a question given the caller-supplied conversation so far.
type Chatter interface {
	Query(ctx context.Context, question string, history []models.ChatTurn) (*models.ChatResponse, error)
}

type chatRequest struct {
	Message string            `json:"message"`
	History []models.ChatTurn `json:"history"`
}

// NewRouter builds the stateless service: the caller supplies the full
// history on every call and the server keeps no session state.
func NewRouter(chatter Chatter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
	})

	r.POST("/chat", func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		message := strings.TrimSpace(req.Message)
		if message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
			return
		}

		resp, err := chatter.Query(c.Request.Context(), message, req.History)
		if err != nil {
			log.Error().Err(err).Msg("Chat request failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "an error occurred while processing your request"})
			return
		}
		if resp.Sources == nil {
			resp.Sources = []models.SourceRef{}
		}
		c.JSON(http.StatusOK, resp)
	})

	return r
}
