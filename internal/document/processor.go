// Package document parses raw proposal text: overlapping chunking with
// boundary-aware splits, keyword-based ARCADIA phase classification,
// and regex-based advisory proposal analysis.
package document

import (
	"strings"

	"arise/internal/arcadia"
	"arise/internal/logging"
)

// Default chunking parameters.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Chunk is a slice of proposal text with provenance and a
// phase-relevance tag.
type Chunk struct {
	ID       string                 `json:"id"`
	Content  string                 `json:"content"`
	Source   string                 `json:"source"`
	Ordinal  int                    `json:"ordinal"`
	Phase    arcadia.Phase          `json:"phase"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Processor chunks and classifies proposal text.
type Processor struct {
	chunkSize    int
	chunkOverlap int
}

// NewProcessor creates a processor with the given window and overlap;
// a non-positive window, or an overlap that is negative or not smaller
// than the window, falls back to the defaults. An overlap of 0 is kept.
func NewProcessor(chunkSize, chunkOverlap int) *Processor {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = DefaultChunkOverlap
		if chunkOverlap >= chunkSize {
			chunkOverlap = chunkSize / 5
		}
	}
	return &Processor{chunkSize: chunkSize, chunkOverlap: chunkOverlap}
}

// splitBoundaries in preference order: paragraph, line, sentence, word.
// Character-level split is the implicit last resort.
var splitBoundaries = []string{"\n\n", "\n", ". ", " "}

// Chunk produces overlapping chunks covering the whole text. Each chunk
// is at most chunkSize characters; consecutive chunks overlap by up to
// chunkOverlap characters. Splits prefer paragraph, then line, sentence
// and word boundaries.
func (p *Processor) Chunk(text, source string, metadata map[string]interface{}) []Chunk {
	timer := logging.StartTimer(logging.CategoryDocument, "Processor.Chunk")
	defer timer.Stop()

	if strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []Chunk
	start := 0
	ordinal := 0
	for start < len(text) {
		end := start + p.chunkSize
		if end >= len(text) {
			end = len(text)
		} else {
			end = p.findSplit(text, start, end)
		}

		content := text[start:end]
		chunkMeta := copyMetadata(metadata)
		chunkMeta["chunk_id"] = ordinal
		phase := p.ClassifyPhase(content)
		chunkMeta["arcadia_phase"] = string(phase)

		chunks = append(chunks, Chunk{
			Content:  content,
			Source:   source,
			Ordinal:  ordinal,
			Phase:    phase,
			Metadata: chunkMeta,
		})
		ordinal++

		if end >= len(text) {
			break
		}
		next := end - p.chunkOverlap
		if next <= start {
			next = start + 1
		}
		start = next
	}

	for i := range chunks {
		chunks[i].Metadata["total_chunks"] = len(chunks)
	}

	logging.Document("Chunked %d chars into %d chunks (size=%d overlap=%d)",
		len(text), len(chunks), p.chunkSize, p.chunkOverlap)
	return chunks
}

// findSplit locates the best boundary at or before the hard window end.
// Boundaries in the second half of the window are preferred; otherwise
// the window is cut at the character level.
func (p *Processor) findSplit(text string, start, hardEnd int) int {
	window := text[start:hardEnd]
	minCut := len(window) / 2
	for _, sep := range splitBoundaries {
		if idx := strings.LastIndex(window, sep); idx >= minCut {
			return start + idx + len(sep)
		}
	}
	return hardEnd
}

// ClassifyPhase scores each ARCADIA phase by counting keyword hits
// (case-insensitive containment) and returns the best-scoring phase.
// Ties break in the order Operational, System, Logical, Physical; the
// default when nothing matches is System.
func (p *Processor) ClassifyPhase(text string) arcadia.Phase {
	lower := strings.ToLower(text)

	best := arcadia.PhaseSystem
	bestScore := 0
	for _, phase := range classificationOrder {
		score := 0
		for _, kw := range phaseKeywords[phase] {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			best = phase
			bestScore = score
		}
	}
	return best
}

// FilterByPhase returns the chunks whose text contains any keyword for
// the phase. When the subset is empty the first three chunks are used
// as a fallback so extractors always receive some context.
func FilterByPhase(chunks []Chunk, phase arcadia.Phase) []Chunk {
	keywords := phaseKeywords[phase]
	var filtered []Chunk
	for _, chunk := range chunks {
		lower := strings.ToLower(chunk.Content)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				filtered = append(filtered, chunk)
				break
			}
		}
	}
	if len(filtered) == 0 {
		logging.DocumentDebug("No %s-relevant chunks, falling back to first 3", phase)
		if len(chunks) > 3 {
			return chunks[:3]
		}
		return chunks
	}
	return filtered
}

func copyMetadata(metadata map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(metadata)+3)
	for k, v := range metadata {
		out[k] = v
	}
	return out
}
