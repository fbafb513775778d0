package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"finassist/internal/usecase"
)

var (
	askQuery string
	askMode  string
	askNoRAG bool
	askNoWeb bool
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask a single question",
	Long: `Answer one question using the document index and, when the query
calls for it, a finance-focused web search.

Examples:
  finassist ask -q "What was AWS revenue growth?"
  finassist ask -q "latest analyst ratings" --mode Concise`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askQuery, "query", "q", "", "question to answer (required)")
	askCmd.Flags().StringVar(&askMode, "mode", "", "response mode: Concise or Detailed (default from config)")
	askCmd.Flags().BoolVar(&askNoRAG, "no-rag", false, "answer without the document index")
	askCmd.Flags().BoolVar(&askNoWeb, "no-web", false, "answer without web search")
	askCmd.MarkFlagRequired("query")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	svc, idx, err := newRetrievalService(cfg, GetRootDir())
	if err != nil {
		return err
	}
	defer idx.Close()

	model, err := newModel(cfg)
	if err != nil {
		return err
	}

	mode := askMode
	if mode == "" {
		mode = cfg.Chat.DefaultMode
	}

	orch := usecase.NewOrchestrator(
		svc,
		newSearcher(cfg),
		model,
		usecase.NewConversationMemory(cfg.Chat.MaxHistory),
		budgetsFromConfig(cfg),
	)

	answer, sources, err := orch.Respond(cmd.Context(), askQuery, usecase.Options{
		UseRetrieval: !askNoRAG,
		UseWebSearch: !askNoWeb,
		Mode:         modeFromFlag(mode),
	})
	if err != nil {
		return fmt.Errorf("turn failed: %w", err)
	}

	fmt.Println(answer)
	if len(sources) > 0 {
		fmt.Println("\nSources:")
		for _, s := range sources {
			fmt.Printf("  %s\n", s)
		}
	}
	return nil
}
