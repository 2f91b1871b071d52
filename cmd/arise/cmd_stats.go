package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vector store statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := st.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("Collection: %s\n", cfg.Store.CollectionName)
	fmt.Printf("Total chunks: %d (%d with embeddings)\n", stats.TotalChunks, stats.WithEmbeddings)
	fmt.Printf("Embedding engine: %s\n", stats.Engine)
	if len(stats.BySource) > 0 {
		fmt.Println("By source:")
		for source, count := range stats.BySource {
			fmt.Printf("  %-40s %d\n", source, count)
		}
	}
	return nil
}
