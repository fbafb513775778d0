package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"finassist/internal/usecase"
)

var (
	chatMode  string
	chatNoRAG bool
	chatNoWeb bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive session",
	Long: `Start a conversational session against the document index.
Commands inside the session:
  /clear    discard the conversation history
  /sources  show the sources cited by the last answer
  /quit     leave the session`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVar(&chatMode, "mode", "", "response mode: Concise or Detailed (default from config)")
	chatCmd.Flags().BoolVar(&chatNoRAG, "no-rag", false, "chat without the document index")
	chatCmd.Flags().BoolVar(&chatNoWeb, "no-web", false, "chat without web search")
}

func runChat(cmd *cobra.Command, args []string) error {
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

	mode := chatMode
	if mode == "" {
		mode = cfg.Chat.DefaultMode
	}

	memory := usecase.NewConversationMemory(cfg.Chat.MaxHistory)
	orch := usecase.NewOrchestrator(svc, newSearcher(cfg), model, memory, budgetsFromConfig(cfg))
	opts := usecase.Options{
		UseRetrieval: !chatNoRAG,
		UseWebSearch: !chatNoWeb,
		Mode:         modeFromFlag(mode),
	}

	fmt.Printf("finassist chat (session %s). /quit to exit.\n", memory.ID())
	if svc.Count() > 0 {
		fmt.Printf("Index holds %d chunks.\n", svc.Count())
	}

	var lastSources []string
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/quit", "/exit":
			return nil
		case "/clear":
			memory.Clear()
			lastSources = nil
			fmt.Println("History cleared.")
			continue
		case "/sources":
			if len(lastSources) == 0 {
				fmt.Println("No sources for the last answer.")
				continue
			}
			for _, s := range lastSources {
				fmt.Printf("  %s\n", s)
			}
			continue
		}

		answer, sources, err := orch.Respond(cmd.Context(), line, opts)
		if err != nil {
			// The turn failed before anything was recorded; the user
			// can simply retry.
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		lastSources = sources

		fmt.Println(answer)
		if len(sources) > 0 {
			fmt.Println("Sources:")
			for _, s := range sources {
				fmt.Printf("  %s\n", s)
			}
		}
	}
}
