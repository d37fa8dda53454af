package models

// Chat roles accepted on the wire.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Chunk represents one overlapping span of extracted policy text with its
// retrieval metadata. Chunks are immutable once produced by the splitter.
type Chunk struct {
	ID      string
	Content string
	Page    int
	Source  string
}

// ChatTurn is a single prior message supplied by the caller.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Retrieved is a chunk returned by similarity search, most relevant first.
type Retrieved struct {
	Chunk      Chunk
	Similarity float32
}

// SourceRef describes one retrieved chunk used as answer context.
type SourceRef struct {
	Page    int    `json:"page"`
	Source  string `json:"source"`
	Preview string `json:"preview"`
}

// ChatResponse is the grounded answer plus the chunks it was grounded on.
type ChatResponse struct {
	Answer  string      `json:"answer"`
	Sources []SourceRef `json:"sources"`
}
