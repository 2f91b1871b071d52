// Package requirements generates balanced functional, non-functional
// and stakeholder requirements from retrieval context and phase
// outputs, with enforced priority distribution, context-aware NFR
// category selection, specific verification methods and traceability
// links to operational capabilities, scenarios and stakeholder needs.
package requirements

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"arise/internal/arcadia"
	"arise/internal/document"
	"arise/internal/llm"
	"arise/internal/logging"
)

// NFR category keywords for relevance scoring.
var nfrCategoryKeywords = map[arcadia.NFRCategory][]string{
	arcadia.NFRPerformance:     {"performance", "speed", "throughput", "latency", "response time"},
	arcadia.NFRSecurity:        {"security", "access", "authentication", "encryption", "protection"},
	arcadia.NFRUsability:       {"usability", "user interface", "human factors", "ergonomics"},
	arcadia.NFRReliability:     {"reliability", "availability", "fault tolerance", "mtbf", "mttr"},
	arcadia.NFRScalability:     {"scalability", "capacity", "growth", "expansion"},
	arcadia.NFRMaintainability: {"maintainability", "maintenance", "serviceability", "support"},
}

// Domain indicators boosting category relevance (boost capped at 0.3).
var nfrDomainIndicators = map[arcadia.NFRCategory][]string{
	arcadia.NFRPerformance:     {"real-time", "speed", "fast", "efficient", "optimization"},
	arcadia.NFRSecurity:        {"secure", "protection", "authentication", "encryption", "access"},
	arcadia.NFRReliability:     {"reliable", "fault", "failure", "robust", "resilient"},
	arcadia.NFRUsability:       {"user", "interface", "experience", "ergonomic", "intuitive"},
	arcadia.NFRScalability:     {"scale", "growth", "capacity", "expansion", "volume"},
	arcadia.NFRMaintainability: {"maintain", "support", "update", "modify", "evolve"},
}

const (
	nfrRelevanceThreshold = 0.15
	nfrMaxCategories      = 4
	nfrDomainBoostCap     = 0.3
)

// Result groups the generated requirements for one request.
type Result struct {
	Functional    []arcadia.Requirement
	NonFunctional []arcadia.Requirement
	Stakeholder   []arcadia.Requirement
}

// Generator produces requirements via prompted LLM calls.
type Generator struct {
	client   llm.Client
	model    string
	counters map[string]int
}

// NewGenerator creates a requirements generator.
func NewGenerator(client llm.Client, model string) *Generator {
	return &Generator{
		client:   client,
		model:    model,
		counters: make(map[string]int),
	}
}

// Generate produces the requested requirement kinds for a phase and
// applies overall priority balancing across them.
func (g *Generator) Generate(ctx context.Context, chunks []document.Chunk, phase arcadia.Phase, proposalText string, types []string) Result {
	timer := logging.StartTimer(logging.CategoryRequirements, "Generator.Generate")
	defer timer.StopWithInfo()

	result := Result{}
	wants := make(map[string]bool, len(types))
	for _, t := range types {
		wants[t] = true
	}

	if wants["functional"] {
		result.Functional = g.generateFunctional(ctx, chunks, phase, proposalText)
	}
	if wants["non_functional"] {
		result.NonFunctional = g.generateContextAwareNFR(ctx, chunks, phase, proposalText)
	}
	if wants["stakeholder"] {
		result.Stakeholder = g.generateStakeholder(ctx, chunks, phase, proposalText)
	}

	// Balance the MoSCoW distribution across functional and NFRs.
	combined := append(append([]arcadia.Requirement{}, result.Functional...), result.NonFunctional...)
	if len(combined) > 0 {
		balanced := BalancePriorities(combined)
		var functional, nonFunctional []arcadia.Requirement
		for _, req := range balanced {
			if req.Type == arcadia.RequirementNonFunctional {
				nonFunctional = append(nonFunctional, req)
			} else {
				functional = append(functional, req)
			}
		}
		if len(result.Functional) > 0 {
			result.Functional = functional
		}
		if len(result.NonFunctional) > 0 {
			result.NonFunctional = nonFunctional
		}
	}

	logging.Requirements("Generated %d functional, %d non-functional, %d stakeholder requirements for %s phase",
		len(result.Functional), len(result.NonFunctional), len(result.Stakeholder), phase)
	return result
}

// =============================================================================
// FUNCTIONAL GENERATION
// =============================================================================

func (g *Generator) generateFunctional(ctx context.Context, chunks []document.Chunk, phase arcadia.Phase, proposalText string) []arcadia.Requirement {
	combined := contextText(chunks) + " " + proposalText

	capabilities := mineMatches(combined, capabilityPatterns, 5, maxMinedCapabilities)
	scenarios := mineMatches(combined, scenarioPatterns, 8, maxMinedScenarios)
	needs := mineMatches(combined, needPatterns, 5, maxMinedNeeds)

	prompt := g.buildFunctionalPrompt(chunks, phase, capabilities, scenarios, needs)

	response, err := g.client.Generate(ctx, g.model, prompt, llm.DefaultOptions())
	if err != nil {
		logging.Get(logging.CategoryRequirements).Warn("Functional generation failed: %v", err)
		return nil
	}

	return g.parseRequirements(response, arcadia.RequirementFunctional, phase, "", combined, capabilities, scenarios, needs)
}

func (g *Generator) buildFunctionalPrompt(chunks []document.Chunk, phase arcadia.Phase, capabilities, scenarios, needs []string) string {
	return fmt.Sprintf(`Generate functional requirements for ARCADIA %s phase with enhanced context awareness.

CONTEXT ANALYSIS:
- Phase: %s (%s)
- Document Context: %s
- Operational Capabilities: %s
- Operational Scenarios: %s
- Key Stakeholder Needs: %s

ENHANCED GENERATION REQUIREMENTS:

1. PRIORITY DISTRIBUTION TARGET:
   - Generate exactly 30%% MUST, 50%% SHOULD, 20%% COULD requirements
   - Base priority on operational criticality and stakeholder impact
   - MUST: Safety-critical, regulatory compliance, core operational capabilities
   - SHOULD: Important operational features, significant stakeholder needs
   - COULD: Enhancement features, convenience functions

2. REQUIREMENT COMPLETENESS:
   - Minimum 25 words per requirement description
   - Include specific operational context and components
   - Reference operational capabilities and scenarios where applicable
   - Ensure measurable acceptance criteria

3. TRACEABILITY ENHANCEMENT:
   - Link each requirement to specific operational capabilities
   - Reference relevant operational scenarios
   - Trace to stakeholder needs where applicable

4. VERIFICATION SPECIFICITY:
   - Select verification method based on requirement content and phase
   - Avoid generic "Review and testing"

Generate 5-7 well-balanced functional requirements following this structure:
- ID: FR-%s-XXX
- The system shall [detailed requirement with operational context]
- Priority: MUST/SHOULD/COULD (with clear rationale)
- Verification: [specific method appropriate to requirement and phase]`,
		phase, phase, phase.Name(),
		truncateText(contextText(chunks), 1200),
		strings.Join(head(capabilities, 5), ", "),
		strings.Join(head(scenarios, 3), ", "),
		strings.Join(head(needs, 5), ", "),
		phasePrefix(phase))
}

// =============================================================================
// NON-FUNCTIONAL GENERATION
// =============================================================================

// scoredCategory pairs a retained category with its relevance.
type scoredCategory struct {
	Category arcadia.NFRCategory
	Score    float64
}

func (g *Generator) generateContextAwareNFR(ctx context.Context, chunks []document.Chunk, phase arcadia.Phase, proposalText string) []arcadia.Requirement {
	combined := strings.ToLower(contextText(chunks) + " " + proposalText)
	categories := selectNFRCategories(combined)

	logging.Requirements("Selected %d relevant NFR categories", len(categories))

	var all []arcadia.Requirement
	for _, sc := range categories {
		maxReqs := maxInt(1, minInt(3, int(math.Round(sc.Score*4))))
		reqs := g.generateCategoryNFR(ctx, chunks, phase, sc.Category, sc.Score)
		if len(reqs) > maxReqs {
			reqs = reqs[:maxReqs]
		}
		all = append(all, reqs...)
	}
	return all
}

// selectNFRCategories scores each category by keyword-hit density plus
// a capped domain boost, retains categories above the threshold or in
// the core set, and keeps the top 4 by score.
func selectNFRCategories(combinedLower string) []scoredCategory {
	var scored []scoredCategory
	for _, category := range arcadia.NFRCategories {
		keywords := nfrCategoryKeywords[category]
		score := 0.0
		for _, kw := range keywords {
			if strings.Contains(combinedLower, kw) {
				score += 1.0
			}
		}
		if len(keywords) > 0 {
			score /= float64(len(keywords))
		}

		boost := 0.0
		for _, indicator := range nfrDomainIndicators[category] {
			if strings.Contains(combinedLower, indicator) {
				boost += 0.1
			}
		}
		if boost > nfrDomainBoostCap {
			boost = nfrDomainBoostCap
		}
		score += boost
		if score > 1 {
			score = 1
		}

		if score > nfrRelevanceThreshold || arcadia.CoreNFRCategories[category] {
			scored = append(scored, scoredCategory{Category: category, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > nfrMaxCategories {
		scored = scored[:nfrMaxCategories]
	}
	return scored
}

func (g *Generator) generateCategoryNFR(ctx context.Context, chunks []document.Chunk, phase arcadia.Phase, category arcadia.NFRCategory, relevance float64) []arcadia.Requirement {
	prompt := fmt.Sprintf(`Generate non-functional requirements for category: %s (relevance: %.2f)

CONTEXT:
- Phase: %s
- Document Context: %s
- Category Focus: %s

GENERATION GUIDELINES:
1. Generate 1-2 high-quality requirements (avoid overgeneration)
2. Ensure measurable criteria and specific metrics
3. Include operational context and scenarios
4. Use category-appropriate verification methods
5. Base priority on operational criticality

Requirements should be:
- Measurable with specific metrics
- Testable with clear acceptance criteria
- Linked to operational capabilities

Generate requirements in format:
- ID: NFR-%s-XXX
- The system shall [measurable requirement with metrics]
- Metric: [how to measure]
- Target Value: [specific target]
- Priority: MUST/SHOULD/COULD (with rationale)
- Verification: [specific testing method for %s]`,
		category, relevance, phase,
		truncateText(contextText(chunks), 1200),
		category, category.Prefix(), category)

	response, err := g.client.Generate(ctx, g.model, prompt, llm.DefaultOptions())
	if err != nil {
		logging.Get(logging.CategoryRequirements).Warn("NFR generation for %s failed: %v", category, err)
		return nil
	}

	return g.parseRequirements(response, arcadia.RequirementNonFunctional, phase, category, contextText(chunks), nil, nil, nil)
}

// =============================================================================
// STAKEHOLDER GENERATION
// =============================================================================

func (g *Generator) generateStakeholder(ctx context.Context, chunks []document.Chunk, phase arcadia.Phase, proposalText string) []arcadia.Requirement {
	combined := contextText(chunks) + " " + proposalText
	needs := mineMatches(combined, needPatterns, 5, maxMinedNeeds)
	if len(needs) == 0 {
		logging.RequirementsDebug("No stakeholder needs mined; skipping stakeholder requirements")
		return nil
	}

	prompt := fmt.Sprintf(`Generate stakeholder requirements for ARCADIA %s phase.

CONTEXT:
- Document Context: %s
- Identified Stakeholder Needs: %s

TASK: Express the stakeholder needs as verifiable requirements. Each
requirement states what a stakeholder, user or operator needs the
system to provide.

Generate requirements in format:
- ID: STK-%s-XXX
- The system shall [requirement addressing a stakeholder need]
- Priority: MUST/SHOULD/COULD
- Verification: [stakeholder-appropriate method]`,
		phase, truncateText(contextText(chunks), 1200),
		strings.Join(head(needs, 8), ", "), phasePrefix(phase))

	response, err := g.client.Generate(ctx, g.model, prompt, llm.DefaultOptions())
	if err != nil {
		logging.Get(logging.CategoryRequirements).Warn("Stakeholder generation failed: %v", err)
		return nil
	}

	return g.parseRequirements(response, arcadia.RequirementStakeholder, phase, "", combined, nil, nil, needs)
}

// =============================================================================
// PARSING
// =============================================================================

// parseRequirements extracts shall clauses from the response, rejecting
// clauses shorter than the word minimum, and assembles complete typed
// requirements. A requirement block is the shall line plus the
// attribute lines following it (Priority:, Verification:, Metric:) up
// to the next shall statement or blank line; explicit hints are read
// from the whole block.
func (g *Generator) parseRequirements(response string, reqType arcadia.RequirementType, phase arcadia.Phase, category arcadia.NFRCategory, contextStr string, capabilities, scenarios, needs []string) []arcadia.Requirement {
	var requirements []arcadia.Requirement

	lines := strings.Split(response, "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		match := shallPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		text := strings.TrimSpace(match[1])
		if len(strings.Fields(text)) < minRequirementWords {
			continue
		}

		block := line
		for j := i + 1; j < len(lines); j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" || shallPattern.MatchString(next) {
				break
			}
			block += "\n" + next
		}

		req := g.buildRequirement(text, block, reqType, phase, category, contextStr, capabilities, scenarios, needs)
		requirements = append(requirements, req)
	}

	return requirements
}

func (g *Generator) buildRequirement(text, fullLine string, reqType arcadia.RequirementType, phase arcadia.Phase, category arcadia.NFRCategory, contextStr string, capabilities, scenarios, needs []string) arcadia.Requirement {
	id := g.nextID(reqType, phase, category)

	priority, confidence, details := analyzePriority(text, contextStr, needs)
	priority = applyPriorityHint(fullLine, priority)

	verification := selectVerificationMethod(reqType, phase, category, text)
	verification = applyVerificationHint(fullLine, verification)

	description := "The system shall " + text
	if len(description) < 60 {
		description += fmt.Sprintf(" This requirement supports %s phase objectives and operational effectiveness.", phase)
	}

	title := text
	if len(title) > 65 {
		title = title[:62] + "..."
	}

	req := arcadia.Requirement{
		ID:                 id,
		Type:               reqType,
		Title:              title,
		Description:        description,
		Priority:           priority,
		PriorityConfidence: confidence,
		Phase:              phase,
		VerificationMethod: verification,
		Rationale:          priorityRationale(priority, details),
		CapabilityLinks:    linkByWordOverlap(text, capabilities, maxCapabilityLinks, "Supports capability: "),
		ScenarioLinks:      linkByWordOverlap(text, scenarios, maxScenarioLinks, "Addresses scenario: "),
		StakeholderLinks:   linkByWordOverlap(text, needs, maxStakeholderLinks, "Addresses need: "),
	}

	if reqType == arcadia.RequirementNonFunctional {
		req.Category = category
		req.Metric = extractMetric(text)
		req.TargetValue = extractTargetValue(text)
		req.MeasurementMethod = measurementMethod(category)
	}

	return req
}

// nextID generates FR-<PHASE3>-NNN, NFR-<CAT4>-NNN or STK-<PHASE3>-NNN.
func (g *Generator) nextID(reqType arcadia.RequirementType, phase arcadia.Phase, category arcadia.NFRCategory) string {
	switch reqType {
	case arcadia.RequirementNonFunctional:
		scope := "NFR"
		if category != "" {
			scope = category.Prefix()
		}
		g.counters["non_functional"]++
		return arcadia.FormatRequirementID("NFR", scope, g.counters["non_functional"])
	case arcadia.RequirementStakeholder:
		g.counters["stakeholder"]++
		return arcadia.FormatRequirementID("STK", phasePrefix(phase), g.counters["stakeholder"])
	default:
		g.counters["functional"]++
		return arcadia.FormatRequirementID("FR", phasePrefix(phase), g.counters["functional"])
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// phasePrefix is the 3-letter uppercase phase scope used in ids.
func phasePrefix(phase arcadia.Phase) string {
	upper := strings.ToUpper(string(phase))
	if len(upper) > 3 {
		return upper[:3]
	}
	return upper
}

// contextText joins chunk contents.
func contextText(chunks []document.Chunk) string {
	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		parts = append(parts, chunk.Content)
	}
	return strings.Join(parts, " ")
}

// mineMatches collects regex captures longer than minLen, capped.
func mineMatches(text string, patterns []*regexp.Regexp, minLen, limit int) []string {
	var out []string
	for _, pattern := range patterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			candidate := strings.TrimSpace(match[1])
			if len(candidate) > minLen {
				out = append(out, candidate)
			}
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// linkByWordOverlap links a requirement to context items sharing at
// least one word longer than 3 characters.
func linkByWordOverlap(requirementText string, items []string, limit int, label string) []string {
	var links []string
	reqLower := strings.ToLower(requirementText)
	for _, item := range head(items, limit) {
		for _, word := range strings.Fields(strings.ToLower(item)) {
			if len(word) > 3 && strings.Contains(reqLower, word) {
				links = append(links, label+truncateText(item, 60))
				break
			}
		}
	}
	return links
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func truncateText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
