package port

// Chunker splits plain text into windows suitable for embedding.
type Chunker interface {
	// Chunk is pure: identical input always yields identical windows.
	Chunk(text string) []string
}
