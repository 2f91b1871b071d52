// Package chat implements the retrieval-augmented chat surface: ingest
// documents into the embedding store, answer questions grounded in the
// retrieved chunks.
package chat

import (
	"context"
	"fmt"
	"strings"

	"arise/internal/document"
	"arise/internal/llm"
	"arise/internal/logging"
	"arise/internal/store"
)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 5

// Answer is a grounded chat response with its supporting sources.
type Answer struct {
	Text    string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// Source identifies a retrieved chunk backing an answer.
type Source struct {
	ChunkID    string  `json:"chunk_id"`
	Document   string  `json:"document"`
	Similarity float64 `json:"similarity"`
	Excerpt    string  `json:"excerpt"`
}

// Service composes the document processor, embedding store and LLM
// gateway into the chat surface.
type Service struct {
	processor *document.Processor
	store     *store.Store
	client    llm.Client
	model     string
	topK      int
}

// NewService creates the chat service.
func NewService(processor *document.Processor, st *store.Store, client llm.Client, model string) *Service {
	return &Service{
		processor: processor,
		store:     st,
		client:    client,
		model:     model,
		topK:      DefaultTopK,
	}
}

// Ingest chunks a document and upserts the chunks into the store.
// Returns the number of chunks stored.
func (s *Service) Ingest(ctx context.Context, name, text string) (int, error) {
	timer := logging.StartTimer(logging.CategoryChat, "Service.Ingest")
	defer timer.StopWithInfo()

	chunks := s.processor.Chunk(text, name, map[string]interface{}{"source": name})
	if len(chunks) == 0 {
		return 0, fmt.Errorf("document %s produced no chunks", name)
	}

	ids := make([]string, len(chunks))
	texts := make([]string, len(chunks))
	metadata := make([]map[string]interface{}, len(chunks))
	for i, chunk := range chunks {
		ids[i] = fmt.Sprintf("%s:%d", name, chunk.Ordinal)
		texts[i] = chunk.Content
		metadata[i] = chunk.Metadata
		metadata[i]["source"] = name
	}

	stored, err := s.store.UpsertBatch(ctx, ids, texts, metadata)
	if err != nil {
		return stored, fmt.Errorf("failed to ingest %s: %w", name, err)
	}

	logging.Chat("Ingested %s: %d chunks", name, stored)
	return stored, nil
}

// Ask retrieves the nearest chunks for the question and prompts the LLM
// with the retrieved context.
func (s *Service) Ask(ctx context.Context, question string) (*Answer, error) {
	timer := logging.StartTimer(logging.CategoryChat, "Service.Ask")
	defer timer.StopWithInfo()

	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("question is empty")
	}

	entries, err := s.store.Query(ctx, question, s.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	var contextParts []string
	var sources []Source
	for _, entry := range entries {
		contextParts = append(contextParts, entry.Content)
		doc := ""
		if entry.Metadata != nil {
			if v, ok := entry.Metadata["source"].(string); ok {
				doc = v
			}
		}
		excerpt := entry.Content
		if len(excerpt) > 200 {
			excerpt = excerpt[:200] + "..."
		}
		sources = append(sources, Source{
			ChunkID:    entry.ChunkID,
			Document:   doc,
			Similarity: entry.Similarity,
			Excerpt:    excerpt,
		})
	}

	prompt := fmt.Sprintf(`Answer the question using only the provided document context. If the context does not contain the answer, say so.

DOCUMENT CONTEXT:
%s

QUESTION: %s

ANSWER:`, strings.Join(contextParts, "\n\n---\n\n"), question)

	text, err := s.client.Generate(ctx, s.model, prompt, llm.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("answer generation failed: %w", err)
	}

	logging.Chat("Answered question (%d sources)", len(sources))
	return &Answer{Text: text, Sources: sources}, nil
}
