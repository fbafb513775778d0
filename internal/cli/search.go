package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"finassist/config"
	"finassist/internal/adapter/index"
)

var (
	searchQuery string
	searchTopK  int
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the index without calling the model",
	Long: `Run a raw similarity search against the vector index and print the
scored chunks. Useful for checking what context a question would pull
in before spending model tokens on it.

Examples:
  finassist search -q "operating margin"
  finassist search -q "AWS segment" -k 5`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "search query (required)")
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "number of results (default from config)")
	searchCmd.MarkFlagRequired("query")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	idx, err := index.Open(config.IndexDBPath(GetRootDir()))
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer idx.Close()

	if idx.Count() == 0 {
		return fmt.Errorf("index is empty. Run 'finassist ingest' first")
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}

	topK := cfg.Retrieve.TopK
	if searchTopK > 0 {
		topK = searchTopK
	}

	vec, err := embedder.EmbedOne(context.Background(), searchQuery)
	if err != nil {
		return fmt.Errorf("failed to embed query: %w", err)
	}

	results := idx.Search(vec, topK)
	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d results for: %s\n\n", len(results), searchQuery)
	for i, r := range results {
		fmt.Printf("--- [%d] %s#%d (score: %.3f) ---\n", i+1, filepath.Base(r.Chunk.Source), r.Chunk.ChunkID, r.Score)
		text := r.Chunk.Content
		if len(text) > 500 {
			text = text[:500] + "..."
		}
		fmt.Println(text)
		fmt.Println()
	}

	return nil
}
