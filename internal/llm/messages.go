package llm

import (
	"github.com/tmc/langchaingo/llms"

	"github.com/mobeloper/ai-rag-chatbot/internal/models"
)

// HistoryMessages converts caller-supplied chat turns into model messages.
// Turns with unknown roles are dropped rather than rejected.
func HistoryMessages(history []models.ChatTurn) []llms.MessageContent {
	msgs := make([]llms.MessageContent, 0, len(history))
	for _, turn := range history {
		switch turn.Role {
		case models.RoleUser:
			msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeHuman, turn.Content))
		case models.RoleAssistant:
			msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeAI, turn.Content))
		}
	}
	return msgs
}
