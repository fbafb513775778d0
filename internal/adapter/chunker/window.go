package chunker

// WindowChunker splits text into fixed-size windows that overlap by a
// configured amount. Windows advance by size-overlap, so the overlap
// must stay below the size or the cursor would never move.
type WindowChunker struct {
	size    int
	overlap int
}

// NewWindowChunker clamps overlap into [0, size); a non-positive size
// is raised to 1.
func NewWindowChunker(size, overlap int) *WindowChunker {
	if size < 1 {
		size = 1
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}
	return &WindowChunker{size: size, overlap: overlap}
}

// Chunk returns the overlapping windows of text in order. The final
// window may be shorter than the configured size; empty text yields
// no chunks.
func (c *WindowChunker) Chunk(text string) []string {
	if len(text) == 0 {
		return nil
	}

	step := c.size - c.overlap
	var chunks []string

	for start := 0; start < len(text); start += step {
		end := start + c.size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
		if end == len(text) {
			break
		}
	}

	return chunks
}

// Size returns the configured window size.
func (c *WindowChunker) Size() int { return c.size }

// Overlap returns the effective overlap after clamping.
func (c *WindowChunker) Overlap() int { return c.overlap }
