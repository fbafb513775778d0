package cli

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"finassist/internal/adapter/fs"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [paths...]",
	Short: "Index documents for retrieval",
	Long: `Extract, chunk and embed documents into the vector index.
Arguments may be files or directories; directories are searched for
PDF, DOCX and TXT files. Unreadable or corrupt documents are skipped
and the rest of the batch is processed.

Examples:
  finassist ingest report.pdf notes.docx
  finassist ingest ./filings`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	resolver := fs.NewResolver(cfg.Index.Includes, cfg.Index.Excludes)
	files, err := resolver.Resolve(args)
	if err != nil {
		return fmt.Errorf("failed to resolve paths: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no documents found under the given paths")
	}

	svc, idx, err := newRetrievalService(cfg, GetRootDir())
	if err != nil {
		return err
	}
	defer idx.Close()

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Ingesting[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	count, err := svc.Ingest(cmd.Context(), files, func(processed, total int, _ string) {
		bar.Set(processed)
	})
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("\nIngestion complete:\n")
	fmt.Printf("  Files processed: %d\n", len(files))
	fmt.Printf("  Chunks stored:   %d\n", count)
	fmt.Printf("  Index size:      %d chunks\n", svc.Count())
	return nil
}
