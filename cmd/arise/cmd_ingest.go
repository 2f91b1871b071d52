package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"arise/internal/chat"
	"arise/internal/document"
)

var ingestWorkers int

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Chunk and embed documents into the vector store",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIngest,
}

func init() {
	ingestCmd.Flags().IntVar(&ingestWorkers, "workers", 4, "concurrent ingestion workers")
}

func runIngest(cmd *cobra.Command, args []string) error {
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

	var totalChunks atomic.Int64

	group, ctx := errgroup.WithContext(cmd.Context())
	group.SetLimit(ingestWorkers)
	for _, path := range args {
		group.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			name := filepath.Base(path)
			stored, err := service.Ingest(ctx, name, string(data))
			if err != nil {
				return err
			}
			totalChunks.Add(int64(stored))
			logger.Info("ingested", zap.String("file", name), zap.Int("chunks", stored))
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	fmt.Printf("Ingested %d files, %d chunks\n", len(args), totalChunks.Load())
	return nil
}
