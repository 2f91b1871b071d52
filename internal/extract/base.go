// Package extract implements the ARCADIA phase extractors. Each
// extractor runs a fixed sequence of LLM-driven sub-extractions:
// assemble a prompt with truncated chunk context and prior-phase
// references, invoke the gateway, locate the outermost JSON object in
// the response and parse it into typed elements. Transport or parse
// failures yield an empty sub-result and are recorded in the output
// metadata; they never abort the extractor.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"arise/internal/arcadia"
	"arise/internal/document"
	"arise/internal/llm"
	"arise/internal/logging"
)

// Context and prompt budget constants.
const (
	maxContextChunks   = 3
	maxChunkChars      = 400
	maxProposalChars   = 1500
	maxPriorReferences = 3
	extractionTemp     = 0.3
)

// base carries what every extractor needs.
type base struct {
	client llm.Client
	model  string
}

// prepareContext joins the top chunks, truncating each to the chunk
// budget.
func prepareContext(chunks []document.Chunk) string {
	if len(chunks) > maxContextChunks {
		chunks = chunks[:maxContextChunks]
	}
	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		content := chunk.Content
		if len(content) > maxChunkChars {
			content = content[:maxChunkChars] + "..."
		}
		parts = append(parts, content)
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// truncate caps a string at n characters.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// chunkReferences returns the chunk ids used as provenance references.
func chunkReferences(chunks []document.Chunk) []string {
	n := len(chunks)
	if n > maxContextChunks {
		n = maxContextChunks
	}
	refs := make([]string, 0, n)
	for i := 0; i < n; i++ {
		refs = append(refs, fmt.Sprintf("chunk_%d", chunks[i].Ordinal))
	}
	return refs
}

// ExtractJSON finds the outermost balanced {...} in an LLM response,
// tolerating markdown wrappers and prose around the object.
func ExtractJSON(response string) string {
	start := strings.Index(response, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	for i := start; i < len(response); i++ {
		switch response[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return response[start : i+1]
			}
		}
	}

	return ""
}

// generate invokes the LLM and parses the element array under the given
// key. It returns the parsed elements plus a status describing how the
// sub-extraction ended.
func (b *base) generate(ctx context.Context, prompt, key string) ([]map[string]interface{}, arcadia.SubExtractionStatus) {
	opts := llm.DefaultOptions()
	opts.Temperature = extractionTemp

	response, err := b.client.Generate(ctx, b.model, prompt, opts)
	if err != nil {
		if errors.Is(err, llm.ErrRateLimited) {
			logging.ExtractionWarn("Sub-extraction %q rate limited: %v", key, err)
		} else {
			logging.ExtractionWarn("Sub-extraction %q transport failure: %v", key, err)
		}
		return nil, arcadia.SubExtractionTransport
	}

	elements, ok := parseElementArray(response, key)
	if !ok {
		logging.ExtractionWarn("Sub-extraction %q returned malformed JSON", key)
		return nil, arcadia.SubExtractionMalformed
	}
	if len(elements) == 0 {
		return nil, arcadia.SubExtractionEmpty
	}
	return elements, arcadia.SubExtractionOK
}

// generateObject invokes the LLM and parses a single JSON object
// response (used for the system boundary).
func (b *base) generateObject(ctx context.Context, prompt string) (map[string]interface{}, arcadia.SubExtractionStatus) {
	opts := llm.DefaultOptions()
	opts.Temperature = extractionTemp

	response, err := b.client.Generate(ctx, b.model, prompt, opts)
	if err != nil {
		logging.ExtractionWarn("Boundary sub-extraction transport failure: %v", err)
		return nil, arcadia.SubExtractionTransport
	}

	jsonStr := ExtractJSON(response)
	if jsonStr == "" {
		return nil, arcadia.SubExtractionMalformed
	}
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &obj); err != nil {
		logging.ExtractionWarn("Boundary sub-extraction malformed JSON: %v", err)
		return nil, arcadia.SubExtractionMalformed
	}
	return obj, arcadia.SubExtractionOK
}

// parseElementArray extracts the array under key from the outermost
// JSON object of the response. The boolean result is false only for
// malformed JSON; a missing or empty array parses as empty.
func parseElementArray(response, key string) ([]map[string]interface{}, bool) {
	jsonStr := ExtractJSON(response)
	if jsonStr == "" {
		return nil, false
	}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return nil, false
	}

	raw, ok := payload[key].([]interface{})
	if !ok {
		return nil, true
	}

	elements := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]interface{}); ok {
			elements = append(elements, m)
		}
	}
	return elements, true
}

// Confidence scoring per sub-extraction:
// 0.7 × min(1, extracted/5) + 0.3 × min(1, contextChars/1000).
func extractionConfidence(extractedCount, contextChars int) float64 {
	countTerm := float64(extractedCount) / 5
	if countTerm > 1 {
		countTerm = 1
	}
	contextTerm := float64(contextChars) / 1000
	if contextTerm > 1 {
		contextTerm = 1
	}
	return 0.7*countTerm + 0.3*contextTerm
}

// newMetadata builds the shared metadata record for a phase output.
func newMetadata(sourceDocs []string, start time.Time) arcadia.ExtractionMetadata {
	docs := sourceDocs
	if len(docs) == 0 {
		docs = []string{"proposal_text"}
	}
	return arcadia.ExtractionMetadata{
		SourceDocuments:  docs,
		StartTime:        start,
		ConfidenceScores: make(map[string]float64),
		ProcessingStats:  make(map[string]interface{}),
		SubExtractions:   make(map[string]arcadia.SubExtractionStatus),
	}
}

// Field accessors for loosely typed LLM payloads. Missing fields
// produce zero values; schema violations skip the single element, not
// the whole response.

func strField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func strListField(m map[string]interface{}, key string) []string {
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

func objListField(m map[string]interface{}, key string) []map[string]interface{} {
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		if obj, ok := item.(map[string]interface{}); ok {
			out = append(out, obj)
		}
	}
	return out
}

func intField(m map[string]interface{}, key string, fallback int) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return fallback
}

// resolveActorNames maps involved-actor names back to ids,
// case-insensitively.
func resolveActorNames(names []string, actorIDs map[string]string) []string {
	var ids []string
	for _, name := range names {
		if id, ok := actorIDs[strings.ToLower(strings.TrimSpace(name))]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// nameIndex builds a lowercase name → id lookup.
func nameIndex(pairs ...[2]string) map[string]string {
	idx := make(map[string]string, len(pairs))
	for _, p := range pairs {
		idx[strings.ToLower(p[0])] = p[1]
	}
	return idx
}

// summarizeNames formats up to max "name: description" reference lines
// for prior-phase context.
func summarizeNames(max int, items ...[2]string) string {
	if len(items) > max {
		items = items[:max]
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		desc := truncate(item[1], 100)
		if desc == "" {
			parts = append(parts, item[0])
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", item[0], desc))
		}
	}
	return strings.Join(parts, "; ")
}
