// Package analysis computes cross-phase traceability, gaps, consistency
// checks, quality metrics, coverage and impact lists from the four
// ARCADIA phase outputs, using keyword-level semantic similarity.
package analysis

import "strings"

// Mode selects the similarity calculation.
type Mode string

const (
	// ModeNameOnly compares element names only.
	ModeNameOnly Mode = "name_only"
	// ModeComprehensive combines name, description and context:
	// 0.4·name + 0.3·description + 0.3·contextual.
	ModeComprehensive Mode = "comprehensive"
	// ModeContextual weights descriptions and relationships:
	// 0.3·name + 0.4·description + 0.3·relationship.
	ModeContextual Mode = "contextual"
	// ModeFunctional compares interface IO for functions and mission
	// alignment for capabilities.
	ModeFunctional Mode = "functional"
)

// Element is the uniform comparison view over ARCADIA elements.
// Adapters in this package build Elements from the typed model; the
// Kind field guards contextual comparison across different types.
type Element struct {
	Kind             string
	Name             string
	Description      string
	MissionStatement string
	Responsibilities []string
	Capabilities     []string
	Actors           []string // involved or allocated actor ids
	Parent           string
	SubElements      []string
	InputInterfaces  []string
	OutputInterfaces []string
}

// Stop words removed before word-level comparison.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true,
}

// Extended stop-word list used by key-term extraction.
var termStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "up": true, "about": true,
	"into": true, "through": true, "during": true, "before": true,
	"after": true, "above": true, "below": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "have": true, "has": true,
	"had": true, "do": true, "does": true, "did": true, "will": true,
	"would": true, "could": true, "should": true, "may": true,
	"might": true, "must": true, "can": true, "this": true, "that": true,
	"these": true, "those": true,
}

// ARCADIA domain vocabulary favoured by key-term extraction.
var domainKeywords = map[string]bool{
	"system": true, "component": true, "function": true, "capability": true,
	"actor": true, "interface": true, "requirement": true,
	"specification": true, "architecture": true, "design": true,
	"model": true, "operational": true, "logical": true, "physical": true,
	"performance": true, "security": true, "data": true, "process": true,
	"workflow": true, "scenario": true, "constraint": true, "validation": true,
}

// ARCADIA-specific synonym clusters. Two words in the same cluster
// score 0.8.
var synonymGroups = [][]string{
	{"monitor", "observe", "watch", "track", "surveillance"},
	{"process", "handle", "manage", "execute", "perform"},
	{"user", "operator", "actor", "stakeholder", "participant"},
	{"system", "platform", "infrastructure", "framework"},
	{"security", "protection", "safety", "defense"},
	{"data", "information", "content", "payload"},
	{"interface", "connection", "link", "communication"},
	{"control", "command", "manage", "govern", "regulate"},
	{"analyze", "evaluate", "assess", "examine", "review"},
	{"network", "communication", "connectivity", "transmission"},
}

// Similarity computes the semantic similarity of two elements under
// the given mode. Results are in [0,1].
func Similarity(a, b Element, mode Mode) float64 {
	switch mode {
	case ModeComprehensive:
		return NameSimilarity(a.Name, b.Name)*0.4 +
			DescriptionSimilarity(a.Description, b.Description)*0.3 +
			contextualSimilarity(a, b)*0.3
	case ModeContextual:
		return NameSimilarity(a.Name, b.Name)*0.3 +
			DescriptionSimilarity(a.Description, b.Description)*0.4 +
			relationshipSimilarity(a, b)*0.3
	case ModeFunctional:
		return functionalSimilarity(a, b)
	default:
		return NameSimilarity(a.Name, b.Name)
	}
}

// NameSimilarity compares two names: exact match, containment,
// stop-word-filtered Jaccard, synonym clusters, then character overlap.
func NameSimilarity(name1, name2 string) float64 {
	if name1 == "" || name2 == "" {
		return 0
	}

	n1 := strings.ToLower(strings.TrimSpace(name1))
	n2 := strings.ToLower(strings.TrimSpace(name2))

	if n1 == n2 {
		return 1.0
	}

	// Substring containment scores in the 0.7-0.9 range.
	if strings.Contains(n1, n2) || strings.Contains(n2, n1) {
		shorter, longer := len(n1), len(n2)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return 0.7 + float64(shorter)/float64(longer)*0.2
	}

	words1 := wordSet(n1, stopWords)
	words2 := wordSet(n2, stopWords)
	if len(words1) == 0 || len(words2) == 0 {
		return 0
	}

	common := intersectionSize(words1, words2)
	if common > 0 {
		jaccard := float64(common) / float64(unionSize(words1, words2))
		score := jaccard * 1.2
		if score > 1 {
			score = 1
		}
		return score
	}

	if score := synonymSimilarity(words1, words2); score > 0 {
		return score
	}

	return characterSimilarity(n1, n2) * 0.6
}

// DescriptionSimilarity compares descriptions via key-term Jaccard,
// falling back to averaged character overlap across the term
// cross-product.
func DescriptionSimilarity(desc1, desc2 string) float64 {
	if desc1 == "" || desc2 == "" {
		return 0
	}

	terms1 := extractKeyTerms(strings.ToLower(desc1))
	terms2 := extractKeyTerms(strings.ToLower(desc2))
	if len(terms1) == 0 || len(terms2) == 0 {
		return 0
	}

	common := intersectionSize(terms1, terms2)
	if common > 0 {
		return float64(common) / float64(unionSize(terms1, terms2))
	}

	return semanticTermSimilarity(terms1, terms2)
}

// contextualSimilarity requires the same runtime kind and averages
// attribute-set Jaccard over the overlapping attributes.
func contextualSimilarity(a, b Element) float64 {
	if a.Kind != b.Kind {
		return 0
	}

	score := 0.0
	attributes := 0

	if len(a.Responsibilities) > 0 || len(b.Responsibilities) > 0 {
		score += setJaccard(a.Responsibilities, b.Responsibilities)
		attributes++
	}
	if len(a.Capabilities) > 0 || len(b.Capabilities) > 0 {
		score += setJaccard(a.Capabilities, b.Capabilities)
		attributes++
	}
	if len(a.Actors) > 0 || len(b.Actors) > 0 {
		score += setJaccard(a.Actors, b.Actors)
		attributes++
	}

	if attributes == 0 {
		return 0
	}
	return score / float64(attributes)
}

// relationshipSimilarity checks parent names and sub-element overlap.
func relationshipSimilarity(a, b Element) float64 {
	if a.Parent != "" && b.Parent != "" {
		if NameSimilarity(a.Parent, b.Parent) > 0.6 {
			return 0.8
		}
	}

	if len(a.SubElements) > 0 && len(b.SubElements) > 0 {
		overlap := intersectionSize(toSet(a.SubElements), toSet(b.SubElements))
		if overlap > 0 {
			max := len(a.SubElements)
			if len(b.SubElements) > max {
				max = len(b.SubElements)
			}
			score := float64(overlap) / float64(max)
			if score > 0.7 {
				score = 0.7
			}
			return score
		}
	}

	return 0
}

// functionalSimilarity compares interface IO for functions and mission
// alignment for capabilities; 0 otherwise.
func functionalSimilarity(a, b Element) float64 {
	if len(a.InputInterfaces) > 0 || len(b.InputInterfaces) > 0 ||
		len(a.OutputInterfaces) > 0 || len(b.OutputInterfaces) > 0 {
		inputSim := interfaceSimilarity(a.InputInterfaces, b.InputInterfaces)
		outputSim := interfaceSimilarity(a.OutputInterfaces, b.OutputInterfaces)
		return (inputSim + outputSim) / 2
	}

	if a.MissionStatement != "" && b.Description != "" {
		return DescriptionSimilarity(a.MissionStatement, b.Description)
	}

	return 0
}

// synonymSimilarity scores word pairs sharing a synonym cluster (0.8)
// or a 3-character prefix/suffix (0.4), averaged over the cross-product.
func synonymSimilarity(words1, words2 map[string]bool) float64 {
	score := 0.0
	comparisons := 0

	for w1 := range words1 {
		for w2 := range words2 {
			comparisons++
			if sameSynonymGroup(w1, w2) {
				score += 0.8
				continue
			}
			if len(w1) > 3 && len(w2) > 3 {
				if w1[:3] == w2[:3] || w1[len(w1)-3:] == w2[len(w2)-3:] {
					score += 0.4
				}
			}
		}
	}

	if comparisons == 0 {
		return 0
	}
	return score / float64(comparisons)
}

func sameSynonymGroup(w1, w2 string) bool {
	for _, group := range synonymGroups {
		has1, has2 := false, false
		for _, word := range group {
			if word == w1 {
				has1 = true
			}
			if word == w2 {
				has2 = true
			}
		}
		if has1 && has2 {
			return true
		}
	}
	return false
}

// characterSimilarity is the Jaccard of character sets weighted by the
// min/max length ratio.
func characterSimilarity(s1, s2 string) float64 {
	if s1 == "" || s2 == "" {
		return 0
	}
	if s1 == s2 {
		return 1.0
	}

	chars1 := make(map[rune]bool)
	for _, r := range s1 {
		chars1[r] = true
	}
	chars2 := make(map[rune]bool)
	for _, r := range s2 {
		chars2[r] = true
	}

	common := 0
	union := len(chars2)
	for r := range chars1 {
		if chars2[r] {
			common++
		} else {
			union++
		}
	}
	if common == 0 {
		return 0
	}

	charSim := float64(common) / float64(union)
	minLen, maxLen := len(s1), len(s2)
	if minLen > maxLen {
		minLen, maxLen = maxLen, minLen
	}
	return charSim * float64(minLen) / float64(maxLen)
}

// extractKeyTerms keeps stop-word-filtered terms of length >= 3,
// preferring domain vocabulary and words of length >= 5; falls back to
// all filtered terms if nothing qualifies.
func extractKeyTerms(text string) map[string]bool {
	words := wordSet(text, termStopWords)

	weighted := make(map[string]bool)
	for term := range words {
		if len(term) < 3 {
			continue
		}
		if domainKeywords[term] || len(term) >= 5 {
			weighted[term] = true
		}
	}
	if len(weighted) > 0 {
		return weighted
	}
	return words
}

// semanticTermSimilarity averages character similarity (weighted 0.7
// above a 0.6 floor) and 4-character prefix/suffix matches (0.5) over
// the term cross-product.
func semanticTermSimilarity(terms1, terms2 map[string]bool) float64 {
	score := 0.0
	comparisons := 0

	for t1 := range terms1 {
		for t2 := range terms2 {
			comparisons++
			charSim := characterSimilarity(t1, t2)
			if charSim > 0.6 {
				score += charSim * 0.7
			}
			if len(t1) > 4 && len(t2) > 4 {
				if t1[:4] == t2[:4] || t1[len(t1)-4:] == t2[len(t2)-4:] {
					score += 0.5
				}
			}
		}
	}

	if comparisons == 0 {
		return 0
	}
	return score / float64(comparisons)
}

// interfaceSimilarity compares two interface spec lists pairwise: 1.0
// for equal types, 0.7 for name-similar types.
func interfaceSimilarity(interfaces1, interfaces2 []string) float64 {
	if len(interfaces1) == 0 || len(interfaces2) == 0 {
		return 0
	}

	score := 0.0
	comparisons := 0
	for _, i1 := range interfaces1 {
		for _, i2 := range interfaces2 {
			comparisons++
			if i1 == i2 {
				score += 1.0
			} else if NameSimilarity(i1, i2) > 0.6 {
				score += 0.7
			}
		}
	}
	return score / float64(comparisons)
}

// Set helpers.

func wordSet(text string, stop map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for _, w := range strings.Fields(text) {
		if !stop[w] {
			out[w] = true
		}
	}
	return out
}

func toSet(items []string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, item := range items {
		out[item] = true
	}
	return out
}

func intersectionSize(a, b map[string]bool) int {
	n := 0
	for k := range a {
		if b[k] {
			n++
		}
	}
	return n
}

func unionSize(a, b map[string]bool) int {
	n := len(a)
	for k := range b {
		if !a[k] {
			n++
		}
	}
	return n
}

func setJaccard(a, b []string) float64 {
	setA, setB := toSet(a), toSet(b)
	union := unionSize(setA, setB)
	if union == 0 {
		return 0
	}
	return float64(intersectionSize(setA, setB)) / float64(union)
}
