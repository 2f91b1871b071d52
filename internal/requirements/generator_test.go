package requirements

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"arise/internal/arcadia"
	"arise/internal/document"
	"arise/internal/llm"
)

const functionalResponse = `Here are the requirements:
- ID: FR-OPE-001
- The system shall provide continuous monitoring of all deployed field equipment status for operators during mission execution
- Priority: MUST
- Verification: Operational scenario walkthrough with field operators

- The system shall generate automated alert notifications when equipment status deviates from configured operational thresholds
- Priority: SHOULD

- The system shall allow operators to export historical equipment status reports covering configurable time windows for analysis
- Priority: COULD
`

const performanceNFRResponse = `
- ID: NFR-PERF-001
- The system shall process 1000 sensor readings within 100 milliseconds with 99.9% accuracy under peak operational load conditions
- Metric: 100 milliseconds
- Target Value: 100
- Priority: MUST
`

func nfrChunks() []document.Chunk {
	return []document.Chunk{{Content: "The platform requires high performance real-time processing with fast response time and low latency for sensor data."}}
}

func TestParseFunctionalRequirements(t *testing.T) {
	client := llm.NewScriptedClient(functionalResponse)
	g := NewGenerator(client, "test-model")

	reqs := g.parseRequirements(functionalResponse, arcadia.RequirementFunctional,
		arcadia.PhaseOperational, "", "", nil, nil, nil)

	if len(reqs) != 3 {
		t.Fatalf("parsed %d requirements, want 3", len(reqs))
	}

	first := reqs[0]
	if first.ID != "FR-OPE-001" {
		t.Errorf("first id = %s", first.ID)
	}
	if !arcadia.RequirementIDPattern.MatchString(first.ID) {
		t.Errorf("id %s does not match pattern", first.ID)
	}
	if !strings.Contains(first.Description, "shall") {
		t.Error("description must contain shall")
	}
	if first.Priority != arcadia.PriorityMust {
		t.Errorf("explicit MUST hint ignored: %s", first.Priority)
	}
	if first.VerificationMethod != "Operational scenario walkthrough with field operators" {
		t.Errorf("custom verification ignored: %s", first.VerificationMethod)
	}
}

func TestParseRejectsShortClauses(t *testing.T) {
	response := "- The system shall monitor equipment\n- The system shall provide comprehensive real-time monitoring of all deployed operational field equipment status"
	g := NewGenerator(llm.NewScriptedClient(""), "m")

	reqs := g.parseRequirements(response, arcadia.RequirementFunctional,
		arcadia.PhaseSystem, "", "", nil, nil, nil)

	if len(reqs) != 1 {
		t.Fatalf("parsed %d requirements, want 1 (short clause rejected)", len(reqs))
	}
}

func TestNFRPerformanceScenario(t *testing.T) {
	client := llm.NewScriptedClient("").
		Respond("category: performance", performanceNFRResponse)
	g := NewGenerator(client, "test-model")

	reqs := g.generateCategoryNFR(context.Background(), nfrChunks(),
		arcadia.PhaseSystem, arcadia.NFRPerformance, 0.8)

	if len(reqs) != 1 {
		t.Fatalf("generated %d NFRs, want 1", len(reqs))
	}

	req := reqs[0]
	if req.Category != arcadia.NFRPerformance {
		t.Errorf("category = %s", req.Category)
	}
	if req.Metric != "100 milliseconds" && !strings.HasPrefix(req.Metric, "1000 ") {
		t.Errorf("metric = %q, want 100 milliseconds or 1000 ...", req.Metric)
	}
	if req.TargetValue != "100" {
		t.Errorf("target value = %q, want 100", req.TargetValue)
	}
	if req.Priority != arcadia.PriorityMust && req.Priority != arcadia.PriorityShould {
		t.Errorf("priority = %s, want MUST or SHOULD", req.Priority)
	}
	lower := strings.ToLower(req.VerificationMethod)
	if !strings.Contains(lower, "performance") && !strings.Contains(lower, "benchmark") {
		t.Errorf("verification = %q, want performance/benchmark method", req.VerificationMethod)
	}
	if !arcadia.RequirementIDPattern.MatchString(req.ID) {
		t.Errorf("id %s does not match pattern", req.ID)
	}
}

func TestNFRCategorySelectionSecurityOnly(t *testing.T) {
	// Text containing only security vocabulary: security scores
	// highest; performance and reliability are retained as core.
	combined := "the system requires security encryption authentication and access protection for all secure operations"

	selected := selectNFRCategories(combined)

	if len(selected) > 4 {
		t.Fatalf("retained %d categories, want at most 4", len(selected))
	}
	if selected[0].Category != arcadia.NFRSecurity {
		t.Errorf("top category = %s, want security", selected[0].Category)
	}

	retained := map[arcadia.NFRCategory]bool{}
	for _, sc := range selected {
		retained[sc.Category] = true
	}
	if !retained[arcadia.NFRPerformance] {
		t.Error("performance must be retained as core category")
	}
	if !retained[arcadia.NFRReliability] {
		t.Error("reliability must be retained as core category")
	}
}

func TestNFRCategoryCount(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{0.1, 1},
		{0.4, 2},
		{0.6, 2},
		{0.8, 3},
		{1.0, 3},
	}
	// The count formula is max(1, min(3, round(score*4))).
	for _, tt := range tests {
		rounded := int(tt.score*4 + 0.5)
		got := maxInt(1, minInt(3, rounded))
		if got != tt.want {
			t.Errorf("count(%.1f) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestBalancePrioritiesDistribution(t *testing.T) {
	var reqs []arcadia.Requirement
	for i := 0; i < 20; i++ {
		reqs = append(reqs, arcadia.Requirement{
			ID:                 fmt.Sprintf("FR-SYS-%03d", i+1),
			Type:               arcadia.RequirementFunctional,
			Priority:           arcadia.PriorityMust, // heavily skewed input
			PriorityConfidence: float64(i) / 20,
		})
	}

	balanced := BalancePriorities(reqs)

	counts := map[arcadia.Priority]int{}
	for _, req := range balanced {
		counts[req.Priority]++
	}

	// N=20: targets 6 MUST / 10 SHOULD / 4 COULD (within ±1).
	if diff := counts[arcadia.PriorityMust] - 6; diff < -1 || diff > 1 {
		t.Errorf("MUST count = %d, want 6±1", counts[arcadia.PriorityMust])
	}
	if diff := counts[arcadia.PriorityShould] - 10; diff < -1 || diff > 1 {
		t.Errorf("SHOULD count = %d, want 10±1", counts[arcadia.PriorityShould])
	}
	if diff := counts[arcadia.PriorityCould] - 4; diff < -1 || diff > 1 {
		t.Errorf("COULD count = %d, want 4±1", counts[arcadia.PriorityCould])
	}

	// Rebalanced items are flagged.
	flagged := 0
	for _, req := range balanced {
		if req.PriorityRebalanced {
			flagged++
		}
	}
	if flagged == 0 {
		t.Error("expected rebalanced flags on demoted requirements")
	}
}

func TestBalancePrioritiesKeepsHighConfidenceSlots(t *testing.T) {
	reqs := []arcadia.Requirement{
		{ID: "FR-SYS-001", Priority: arcadia.PriorityMust, PriorityConfidence: 0.9},
		{ID: "FR-SYS-002", Priority: arcadia.PriorityMust, PriorityConfidence: 0.2},
		{ID: "FR-SYS-003", Priority: arcadia.PriorityShould, PriorityConfidence: 0.5},
	}

	balanced := BalancePriorities(reqs)

	byID := map[string]arcadia.Requirement{}
	for _, req := range balanced {
		byID[req.ID] = req
	}
	// The single MUST slot goes to the highest-confidence holder.
	if byID["FR-SYS-001"].Priority != arcadia.PriorityMust {
		t.Errorf("high-confidence MUST demoted to %s", byID["FR-SYS-001"].Priority)
	}
}

func TestGenerateManyShallStatements(t *testing.T) {
	// A response with 25 numbered shall statements: the parser keeps
	// all well-formed clauses and balancing holds the MUST share near
	// 30%.
	var sb strings.Builder
	for i := 1; i <= 25; i++ {
		fmt.Fprintf(&sb, "%d. The system shall provide operational monitoring function number %d for deployed field equipment across all mission scenarios\n", i, i)
	}
	client := llm.NewScriptedClient(sb.String())
	g := NewGenerator(client, "m")

	result := g.Generate(context.Background(), nil, arcadia.PhaseSystem, "proposal", []string{"functional"})

	if len(result.Functional) < 20 {
		t.Fatalf("generated %d functional requirements, want >= 20", len(result.Functional))
	}

	must := 0
	for _, req := range result.Functional {
		if req.Priority == arcadia.PriorityMust {
			must++
		}
	}
	share := float64(must) / float64(len(result.Functional))
	if share < 0.25 || share > 0.35 {
		t.Errorf("MUST share = %.2f, want within 25-35%%", share)
	}
}

func TestLinkByWordOverlap(t *testing.T) {
	links := linkByWordOverlap(
		"provide continuous monitoring of equipment",
		[]string{"monitoring of all field equipment", "completely unrelated topic"},
		5, "Supports capability: ")

	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	if !strings.HasPrefix(links[0], "Supports capability: ") {
		t.Errorf("link = %q", links[0])
	}
}
