package domain

// Chunk is one window of extracted document text. Identity is
// (Source, ChunkID); chunks are immutable once created.
type Chunk struct {
	Content   string `json:"content"`
	Source    string `json:"source"`
	ChunkID   int    `json:"chunk_id"`
	FileType  string `json:"file_type"`
	IsDefault bool   `json:"is_default"`
}

// SearchResult pairs an indexed chunk with its cosine similarity to a
// query. Produced at query time only, never persisted.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Message is one element of a chat transcript sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Turn is a recorded conversation entry. Sources carry the attribution
// strings shown alongside an assistant turn.
type Turn struct {
	Role    string
	Content string
	Sources []string
}

// WebResult is a single web search hit.
type WebResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// SearchResponse is the web search capability's reply. Answer is the
// provider's optional direct answer.
type SearchResponse struct {
	Results []WebResult `json:"results"`
	Answer  string      `json:"answer,omitempty"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// DefaultSourceName is the identity stored with chunks seeded from the
// baseline annual report. Orchestration checks for it to attribute
// answers to the default document rather than uploads.
const DefaultSourceName = "Amazon-com-Inc-2023-Annual-Report.pdf"
