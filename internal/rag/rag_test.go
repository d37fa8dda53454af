package rag

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/mobeloper/ai-rag-chatbot/internal/models"
)

type fakeModel struct {
	reply    string
	err      error
	lastMsgs []llms.MessageContent
}

func (f *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	f.lastMsgs = messages
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

type fakeRetriever struct {
	results []models.Retrieved
	err     error
}

func (f *fakeRetriever) Retrieve(_ context.Context, _ string, _ []models.ChatTurn) ([]models.Retrieved, error) {
	return f.results, f.err
}

func retrieved() []models.Retrieved {
	return []models.Retrieved{
		{Chunk: models.Chunk{ID: "p12-c1", Content: "Employees are entitled to 25 working days of vacation per calendar year.", Page: 12, Source: "Nestlé HR Policy (2012)"}, Similarity: 0.92},
		{Chunk: models.Chunk{ID: "p13-c2", Content: "Vacation must be approved by the line manager in advance.", Page: 13, Source: "Nestlé HR Policy (2012)"}, Similarity: 0.87},
	}
}

func TestQueryReturnsAnswerWithSources(t *testing.T) {
	model := &fakeModel{reply: "You are entitled to 25 working days.\n\nSources: page 12"}
	r := New(&fakeRetriever{results: retrieved()}, model, time.Minute)

	resp, err := r.Query(context.Background(), "What is the vacation policy?", nil)
	require.NoError(t, err)
	assert.Equal(t, "You are entitled to 25 working days.\n\nSources: page 12", resp.Answer)

	require.Len(t, resp.Sources, 2)
	assert.Equal(t, 12, resp.Sources[0].Page)
	assert.Equal(t, "Nestlé HR Policy (2012)", resp.Sources[0].Source)
	assert.Contains(t, resp.Sources[0].Preview, "25 working days")
	assert.Equal(t, 13, resp.Sources[1].Page)
}

func TestQueryStuffsContextIntoPrompt(t *testing.T) {
	model := &fakeModel{reply: "answer"}
	r := New(&fakeRetriever{results: retrieved()}, model, time.Minute)

	_, err := r.Query(context.Background(), "What is the vacation policy?", []models.ChatTurn{
		{Role: models.RoleUser, Content: "hi"},
		{Role: models.RoleAssistant, Content: "hello"},
	})
	require.NoError(t, err)

	// system + 2 history turns + question-with-context
	require.Len(t, model.lastMsgs, 4)
	last := model.lastMsgs[len(model.lastMsgs)-1]
	text := last.Parts[0].(llms.TextContent).Text
	assert.Contains(t, text, "What is the vacation policy?")
	assert.Contains(t, text, "[page 12]")
	assert.Contains(t, text, "25 working days of vacation")
}

func TestQueryPreviewTruncated(t *testing.T) {
	long := strings.Repeat("vacation policy text ", 30) // > 220 chars
	model := &fakeModel{reply: "answer"}
	r := New(&fakeRetriever{results: []models.Retrieved{
		{Chunk: models.Chunk{Content: long, Page: 2, Source: "Nestlé HR Policy (2012)"}},
	}}, model, time.Minute)

	resp, err := r.Query(context.Background(), "q", nil)
	require.NoError(t, err)
	require.Len(t, resp.Sources, 1)
	assert.LessOrEqual(t, len([]rune(resp.Sources[0].Preview)), 220)
}

func TestQueryNotGroundableIsStillSuccess(t *testing.T) {
	// No supporting chunk: the model reports that the policy does not
	// address the question. That is a valid answer, not an error.
	model := &fakeModel{reply: "I cannot find this in the policy."}
	r := New(&fakeRetriever{results: nil}, model, time.Minute)

	resp, err := r.Query(context.Background(), "What is the dress code on Mars?", nil)
	require.NoError(t, err)
	assert.Contains(t, resp.Answer, "cannot find")
	assert.Empty(t, resp.Sources)
}

func TestQueryRetrieverFailure(t *testing.T) {
	r := New(&fakeRetriever{err: errors.New("index unavailable")}, &fakeModel{reply: "x"}, time.Minute)

	_, err := r.Query(context.Background(), "q", nil)
	require.Error(t, err)
}

func TestQueryModelFailure(t *testing.T) {
	r := New(&fakeRetriever{results: retrieved()}, &fakeModel{err: errors.New("auth error")}, time.Minute)

	_, err := r.Query(context.Background(), "q", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate answer")
}
