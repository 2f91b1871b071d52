package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"arise/internal/chat"
	"arise/internal/document"
)

var chatCmd = &cobra.Command{
	Use:   "chat <question>",
	Short: "Ask a question grounded in the ingested corpus",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	client, err := newLLMClient(cmd.Context())
	if err != nil {
		return err
	}

	processor := document.NewProcessor(document.DefaultChunkSize, document.DefaultChunkOverlap)
	service := chat.NewService(processor, st, client, cfg.LLM.Model)

	answer, err := service.Ask(cmd.Context(), question)
	if err != nil {
		return err
	}

	fmt.Println(answer.Text)
	if len(answer.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, source := range answer.Sources {
			fmt.Printf("  - %s (%s, similarity %.2f)\n", source.ChunkID, source.Document, source.Similarity)
		}
	}
	return nil
}
