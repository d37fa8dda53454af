package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/mobeloper/ai-rag-chatbot/internal/models"
)

func TestHistoryMessages(t *testing.T) {
	msgs := HistoryMessages([]models.ChatTurn{
		{Role: models.RoleUser, Content: "How much vacation do I get?"},
		{Role: models.RoleAssistant, Content: "25 working days."},
		{Role: "system", Content: "ignored"},
	})

	require.Len(t, msgs, 2, "unknown roles are dropped")
	assert.Equal(t, llms.ChatMessageTypeHuman, msgs[0].Role)
	assert.Equal(t, llms.ChatMessageTypeAI, msgs[1].Role)
	assert.Equal(t, "How much vacation do I get?", msgs[0].Parts[0].(llms.TextContent).Text)
}

func TestHistoryMessagesEmpty(t *testing.T) {
	assert.Empty(t, HistoryMessages(nil))
}
