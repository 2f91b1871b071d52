package requirements

import (
	"fmt"
	"sort"
	"strings"

	"arise/internal/arcadia"
	"arise/internal/logging"
)

// Target priority distribution per ARCADIA practice:
// 30% MUST, 50% SHOULD, 20% COULD.
var priorityTargets = map[arcadia.Priority]float64{
	arcadia.PriorityMust:   0.30,
	arcadia.PriorityShould: 0.50,
	arcadia.PriorityCould:  0.20,
}

// Criticality keyword groups biasing the derived priority.
var (
	mustKeywords = []string{
		"safety", "regulatory", "essential", "core", "critical",
		"mandatory", "compliance", "security",
	}
	shouldKeywords = []string{
		"important", "significant", "key", "major", "operational",
	}
	couldKeywords = []string{
		"optional", "enhancement", "convenience", "nice to have",
		"future", "additional",
	}
)

// priorityAnalysis is the detail record behind a derived priority.
type priorityAnalysis struct {
	MustHits       int
	ShouldHits     int
	CouldHits      int
	StakeholderHit bool
}

// analyzePriority derives a MoSCoW priority and a confidence from
// criticality keyword presence in the requirement and its context.
func analyzePriority(requirementText, contextText string, stakeholderNeeds []string) (arcadia.Priority, float64, priorityAnalysis) {
	combined := strings.ToLower(requirementText)
	contextLower := strings.ToLower(contextText)

	details := priorityAnalysis{}
	for _, kw := range mustKeywords {
		if strings.Contains(combined, kw) {
			details.MustHits += 2
		} else if strings.Contains(contextLower, kw) {
			details.MustHits++
		}
	}
	for _, kw := range shouldKeywords {
		if strings.Contains(combined, kw) {
			details.ShouldHits += 2
		} else if strings.Contains(contextLower, kw) {
			details.ShouldHits++
		}
	}
	for _, kw := range couldKeywords {
		if strings.Contains(combined, kw) {
			details.CouldHits += 2
		}
	}

	// Requirements that address a mined stakeholder need lean upward.
	for _, need := range stakeholderNeeds {
		for _, word := range strings.Fields(strings.ToLower(need)) {
			if len(word) > 3 && strings.Contains(combined, word) {
				details.StakeholderHit = true
			}
		}
	}

	mustScore := float64(details.MustHits)
	shouldScore := float64(details.ShouldHits)
	couldScore := float64(details.CouldHits)
	if details.StakeholderHit {
		shouldScore += 1
	}

	total := mustScore + shouldScore + couldScore
	if total == 0 {
		return arcadia.PriorityShould, 0.5, details
	}

	switch {
	case mustScore >= shouldScore && mustScore >= couldScore:
		return arcadia.PriorityMust, confidenceFrom(mustScore, total), details
	case couldScore > shouldScore:
		return arcadia.PriorityCould, confidenceFrom(couldScore, total), details
	default:
		return arcadia.PriorityShould, confidenceFrom(shouldScore, total), details
	}
}

func confidenceFrom(winning, total float64) float64 {
	confidence := 0.5 + 0.5*winning/total
	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

// priorityRationale renders the analysis into a short rationale string.
func priorityRationale(priority arcadia.Priority, details priorityAnalysis) string {
	switch priority {
	case arcadia.PriorityMust:
		return fmt.Sprintf("Critical requirement: %d criticality indicators found; essential for operational capability achievement", details.MustHits)
	case arcadia.PriorityCould:
		return "Enhancement to operational capability; can be deferred without mission impact"
	default:
		if details.StakeholderHit {
			return "Significant contribution to operational effectiveness; addresses identified stakeholder needs"
		}
		return "Significant contribution to operational effectiveness"
	}
}

// applyPriorityHint honours an explicit "Priority: X" hint only if at
// least as strong as the derived priority.
func applyPriorityHint(line string, derived arcadia.Priority) arcadia.Priority {
	match := priorityHintPattern.FindStringSubmatch(line)
	if match == nil {
		return derived
	}
	hinted := arcadia.Priority(match[1])
	if arcadia.PriorityWeight(hinted) >= arcadia.PriorityWeight(derived) {
		return hinted
	}
	return derived
}

// BalancePriorities rebalances the MoSCoW distribution toward
// 30/50/20. Target counts are rounded with the residual assigned to
// SHOULD; requirements are walked in confidence order, keeping their
// current priority while a slot remains and otherwise taking the next
// open slot. Rebalanced items are flagged.
func BalancePriorities(reqs []arcadia.Requirement) []arcadia.Requirement {
	if len(reqs) == 0 {
		return reqs
	}

	total := len(reqs)
	targets := map[arcadia.Priority]int{
		arcadia.PriorityMust:   maxInt(1, int(float64(total)*priorityTargets[arcadia.PriorityMust]+0.5)),
		arcadia.PriorityShould: maxInt(1, int(float64(total)*priorityTargets[arcadia.PriorityShould]+0.5)),
		arcadia.PriorityCould:  maxInt(1, int(float64(total)*priorityTargets[arcadia.PriorityCould]+0.5)),
	}
	remaining := total - targets[arcadia.PriorityMust] - targets[arcadia.PriorityShould] - targets[arcadia.PriorityCould]
	targets[arcadia.PriorityShould] += remaining

	balanced := make([]arcadia.Requirement, len(reqs))
	copy(balanced, reqs)
	sort.SliceStable(balanced, func(i, j int) bool {
		return balanced[i].PriorityConfidence > balanced[j].PriorityConfidence
	})

	counts := map[arcadia.Priority]int{}
	order := []arcadia.Priority{arcadia.PriorityMust, arcadia.PriorityShould, arcadia.PriorityCould}

	for i := range balanced {
		current := balanced[i].Priority
		if !arcadia.ValidPriority(current) || current == arcadia.PriorityWont {
			current = arcadia.PriorityShould
		}

		final := current
		if counts[current] >= targets[current] {
			final = arcadia.PriorityShould
			for _, p := range order {
				if counts[p] < targets[p] {
					final = p
					break
				}
			}
		}

		balanced[i].PriorityRebalanced = final != balanced[i].Priority
		balanced[i].Priority = final
		counts[final]++
	}

	logging.Requirements("Priority rebalancing completed: MUST=%d SHOULD=%d COULD=%d",
		counts[arcadia.PriorityMust], counts[arcadia.PriorityShould], counts[arcadia.PriorityCould])
	return balanced
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
