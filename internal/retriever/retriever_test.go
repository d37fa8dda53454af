package retriever

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/mobeloper/ai-rag-chatbot/internal/models"
)

type fakeModel struct {
	reply    string
	err      error
	calls    int
	lastMsgs []llms.MessageContent
}

func (f *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	f.calls++
	f.lastMsgs = messages
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

type fakeEmbedder struct {
	lastQuery string
	err       error
}

func (f *fakeEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	f.lastQuery = text
	if f.err != nil {
		return nil, f.err
	}
	return []float32{1, 0}, nil
}

type fakeIndex struct {
	results []models.Retrieved
	lastK   int
	err     error
}

func (f *fakeIndex) Search(_ context.Context, _ []float32, k int) ([]models.Retrieved, error) {
	f.lastK = k
	return f.results, f.err
}

func history() []models.ChatTurn {
	return []models.ChatTurn{
		{Role: models.RoleUser, Content: "How many sick days do I get?"},
		{Role: models.RoleAssistant, Content: "The policy grants..."},
	}
}

func TestRewritePassThroughWithoutHistory(t *testing.T) {
	model := &fakeModel{reply: "should not be used"}
	r := New(model, &fakeEmbedder{}, &fakeIndex{}, 5)

	query, err := r.Rewrite(context.Background(), "What is the vacation policy?", nil)
	require.NoError(t, err)
	assert.Equal(t, "What is the vacation policy?", query)
	assert.Zero(t, model.calls, "no model call needed without history")
}

func TestRewriteUsesHistory(t *testing.T) {
	model := &fakeModel{reply: "vacation policy entitlement days"}
	r := New(model, &fakeEmbedder{}, &fakeIndex{}, 5)

	query, err := r.Rewrite(context.Background(), "what about vacation?", history())
	require.NoError(t, err)
	assert.Equal(t, "vacation policy entitlement days", query)
	assert.Equal(t, 1, model.calls)
	// system prompt + 2 history turns + question
	assert.Len(t, model.lastMsgs, 4)
}

func TestRewriteEmptyReplyFallsBack(t *testing.T) {
	model := &fakeModel{reply: "  \n"}
	r := New(model, &fakeEmbedder{}, &fakeIndex{}, 5)

	query, err := r.Rewrite(context.Background(), "what about vacation?", history())
	require.NoError(t, err)
	assert.Equal(t, "what about vacation?", query)
}

func TestRetrieveSearchesWithRewrittenQuery(t *testing.T) {
	model := &fakeModel{reply: "vacation policy entitlement days"}
	embedder := &fakeEmbedder{}
	index := &fakeIndex{results: []models.Retrieved{{Chunk: models.Chunk{ID: "p1-c1"}}}}
	r := New(model, embedder, index, 5)

	results, err := r.Retrieve(context.Background(), "what about vacation?", history())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "vacation policy entitlement days", embedder.lastQuery)
	assert.Equal(t, 5, index.lastK)
}

func TestRetrieveRewriteFailureIsFatal(t *testing.T) {
	model := &fakeModel{err: errors.New("rate limited")}
	r := New(model, &fakeEmbedder{}, &fakeIndex{}, 5)

	_, err := r.Retrieve(context.Background(), "what about vacation?", history())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to rewrite query")
}

func TestRetrieveEmbedFailure(t *testing.T) {
	r := New(&fakeModel{reply: "q"}, &fakeEmbedder{err: errors.New("boom")}, &fakeIndex{}, 5)

	_, err := r.Retrieve(context.Background(), "question", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to embed query")
}
