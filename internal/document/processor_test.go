package document

import (
	"strings"
	"testing"

	"arise/internal/arcadia"
)

func TestChunkCoversWholeText(t *testing.T) {
	// Build ~4.5k chars of paragraph-structured text.
	paragraph := "The mission commander coordinates operational activities. " +
		"The system shall monitor all field equipment continuously.\n\n"
	text := strings.Repeat(paragraph, 40)

	p := NewProcessor(1000, 200)
	chunks := p.Chunk(text, "test.txt", nil)

	if len(chunks) < 4 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}

	totalChars := 0
	for i, chunk := range chunks {
		if len(chunk.Content) > 1000 {
			t.Errorf("chunk %d exceeds window: %d chars", i, len(chunk.Content))
		}
		if chunk.Ordinal != i {
			t.Errorf("chunk %d has ordinal %d", i, chunk.Ordinal)
		}
		if chunk.Source != "test.txt" {
			t.Errorf("chunk %d has source %q", i, chunk.Source)
		}
		totalChars += len(chunk.Content)
	}

	// With overlap, concatenated chunks cover at least the input length.
	if totalChars < len(text) {
		t.Errorf("chunks cover %d chars, input has %d", totalChars, len(text))
	}
}

func TestChunkEmptyText(t *testing.T) {
	p := NewProcessor(1000, 200)
	if chunks := p.Chunk("   ", "empty.txt", nil); chunks != nil {
		t.Errorf("expected nil chunks for blank text, got %d", len(chunks))
	}
}

func TestChunkShortText(t *testing.T) {
	p := NewProcessor(1000, 200)
	chunks := p.Chunk("short proposal text", "short.txt", nil)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Content != "short proposal text" {
		t.Errorf("chunk content = %q", chunks[0].Content)
	}
}

func TestClassifyPhase(t *testing.T) {
	p := NewProcessor(0, 0)

	tests := []struct {
		name string
		text string
		want arcadia.Phase
	}{
		{
			"Operational",
			"The stakeholder mission defines the operational use case and capability gap",
			arcadia.PhaseOperational,
		},
		{
			"Physical",
			"Deployment on hardware nodes with hosting configuration and technology reuse",
			arcadia.PhasePhysical,
		},
		{
			"DefaultSystem",
			"completely unrelated prose about cooking pasta",
			arcadia.PhaseSystem,
		},
		{
			"EmptyDefaultsToSystem",
			"",
			arcadia.PhaseSystem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ClassifyPhase(tt.text); got != tt.want {
				t.Errorf("ClassifyPhase() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyPhaseTieBreaking(t *testing.T) {
	p := NewProcessor(0, 0)
	// "scenario" appears in both the operational and logical keyword
	// sets; the earlier phase wins the tie.
	if got := p.ClassifyPhase("scenario"); got != arcadia.PhaseOperational {
		t.Errorf("tie broke to %s, want operational", got)
	}
}

func TestFilterByPhase(t *testing.T) {
	chunks := []Chunk{
		{Content: "the mission stakeholder needs", Ordinal: 0},
		{Content: "hardware deployment configuration", Ordinal: 1},
		{Content: "nothing relevant here at all", Ordinal: 2},
	}

	operational := FilterByPhase(chunks, arcadia.PhaseOperational)
	if len(operational) != 1 || operational[0].Ordinal != 0 {
		t.Errorf("operational filter returned %d chunks", len(operational))
	}

	physical := FilterByPhase(chunks, arcadia.PhasePhysical)
	if len(physical) != 1 || physical[0].Ordinal != 1 {
		t.Errorf("physical filter returned %d chunks", len(physical))
	}
}

func TestFilterByPhaseFallback(t *testing.T) {
	chunks := []Chunk{
		{Content: "aaa", Ordinal: 0},
		{Content: "bbb", Ordinal: 1},
		{Content: "ccc", Ordinal: 2},
		{Content: "ddd", Ordinal: 3},
	}

	// No chunk matches any operational keyword: first three returned.
	got := FilterByPhase(chunks, arcadia.PhaseOperational)
	if len(got) != 3 {
		t.Fatalf("fallback returned %d chunks, want 3", len(got))
	}
	for i, chunk := range got {
		if chunk.Ordinal != i {
			t.Errorf("fallback chunk %d has ordinal %d", i, chunk.Ordinal)
		}
	}
}
