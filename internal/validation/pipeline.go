// Package validation runs the requirements validation pipeline:
// syntactic parsing, ARCADIA semantic compliance, coverage analysis,
// quality scoring and traceability validation, producing an issue list
// with per-category scores and deterministic recommendations.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"arise/internal/arcadia"
	"arise/internal/knowledge"
	"arise/internal/logging"
)

// Level grades a validation issue.
type Level string

const (
	LevelCritical Level = "critical"
	LevelMajor    Level = "major"
	LevelMinor    Level = "minor"
	LevelInfo     Level = "info"
)

// Category classifies a validation issue.
type Category string

const (
	CategorySyntactic    Category = "syntactic"
	CategorySemantic     Category = "semantic"
	CategoryCoverage     Category = "coverage"
	CategoryQuality      Category = "quality"
	CategoryTraceability Category = "traceability"
)

// Issue is a single validation finding.
type Issue struct {
	ID            string   `json:"id"`
	Category      Category `json:"category"`
	Level         Level    `json:"level"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	RequirementID string   `json:"requirement_id,omitempty"`
	Suggestion    string   `json:"suggestion,omitempty"`
	AutoFixable   bool     `json:"auto_fixable"`
	Confidence    float64  `json:"confidence"`
}

// CoverageAnalysis stores the coverage step results.
type CoverageAnalysis struct {
	CapabilityCoverage   float64        `json:"capability_coverage"`
	ActorCoverage        float64        `json:"actor_coverage"`
	TypeDistribution     map[string]int `json:"requirement_type_distribution"`
	CoveredCapabilities  []string       `json:"covered_capabilities"`
	UncoveredCapabilities []string      `json:"uncovered_capabilities"`
	CoveredActors        []string       `json:"covered_actors"`
	UncoveredActors      []string       `json:"uncovered_actors"`
}

// Report is the comprehensive validation result.
type Report struct {
	OverallScore      float64            `json:"overall_score"`
	TotalRequirements int                `json:"total_requirements"`
	Issues            []Issue            `json:"issues"`
	ScoresByCategory  map[string]float64 `json:"scores_by_category"`
	Coverage          CoverageAnalysis   `json:"coverage_analysis"`
	QualityMetrics    map[string]float64 `json:"quality_metrics"`
	Recommendations   []string           `json:"recommendations"`
	GapsIdentified    []string           `json:"gaps_identified"`
}

// Grade converts the overall score to a letter grade.
func (r *Report) Grade() string {
	switch {
	case r.OverallScore >= 0.9:
		return "A"
	case r.OverallScore >= 0.8:
		return "B"
	case r.OverallScore >= 0.7:
		return "C"
	case r.OverallScore >= 0.6:
		return "D"
	default:
		return "F"
	}
}

// Validation configuration.
const (
	minDescriptionWords  = 15
	maxDescriptionWords  = 200
	qualityThreshold     = 0.7
	minSpecificVerifyLen = 20
)

var requiredFields = []string{"id", "description", "priority", "verification_method"}

// Validation patterns, compiled once.
var (
	shallStatementPattern   = regexp.MustCompile(`(?i).*shall\s+([^.]+)`)
	measurableCriteriaPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(seconds?|minutes?|hours?|ms|milliseconds?|%|percent|MB|GB|TB)`)
	actorReferencePattern   = regexp.MustCompile(`(?i)(user|operator|system|administrator|manager)`)
	capabilityReferencePattern = regexp.MustCompile(`(?i)(capability|function|feature|service)`)
	idFormatPattern         = regexp.MustCompile(`^[A-Z]{2,3}-\d{3}$`)
)

var genericVerificationMethods = map[string]bool{
	"review and testing": true,
	"testing":            true,
	"validation":         true,
}

var vagueTerms = []string{"appropriate", "suitable", "adequate", "reasonable", "good", "bad"}
var actionVerbs = []string{"shall", "must", "will", "should", "provide", "support", "enable"}

// Pipeline validates generated requirements against the ARCADIA
// knowledge base.
type Pipeline struct {
	enricher *knowledge.Enricher
}

// NewPipeline creates a validation pipeline backed by the enricher.
func NewPipeline(enricher *knowledge.Enricher) *Pipeline {
	if enricher == nil {
		enricher = knowledge.NewEnricher()
	}
	return &Pipeline{enricher: enricher}
}

// Validate runs all five validation steps and aggregates the report.
// Validation issues are never fatal.
func (p *Pipeline) Validate(requirements []arcadia.Requirement, phase arcadia.Phase) *Report {
	timer := logging.StartTimer(logging.CategoryValidation, "Pipeline.Validate")
	defer timer.StopWithInfo()

	logging.Validation("Starting validation pipeline for %s phase (%d requirements)", phase, len(requirements))

	report := &Report{
		TotalRequirements: len(requirements),
		ScoresByCategory:  make(map[string]float64),
		QualityMetrics:    make(map[string]float64),
	}

	if len(requirements) == 0 {
		report.Issues = append(report.Issues, Issue{
			ID:          "VAL-001",
			Category:    CategorySyntactic,
			Level:       LevelCritical,
			Title:       "No Requirements Found",
			Description: "No requirements were found in the provided data",
			Confidence:  1.0,
		})
		return report
	}

	syntactic := p.validateSyntactic(requirements, report)
	semantic := p.validateSemantic(requirements, phase, report)
	coverage := p.analyzeCoverage(requirements, phase, report)
	quality := p.calculateQuality(requirements, report)
	traceability := p.validateTraceability(requirements, phase, report)

	report.OverallScore = (syntactic + semantic + coverage + quality + traceability) / 5
	report.ScoresByCategory = map[string]float64{
		"syntactic":    syntactic,
		"semantic":     semantic,
		"coverage":     coverage,
		"quality":      quality,
		"traceability": traceability,
	}

	p.generateRecommendations(report)

	logging.Validation("Validation completed. Overall score: %.2f (%s)", report.OverallScore, report.Grade())
	return report
}

// =============================================================================
// STEP 1: SYNTACTIC
// =============================================================================

func (p *Pipeline) validateSyntactic(requirements []arcadia.Requirement, report *Report) float64 {
	var issues []Issue
	valid := 0

	for _, req := range requirements {
		missing := missingFields(req)
		if len(missing) > 0 {
			issues = append(issues, Issue{
				ID:            fmt.Sprintf("SYN-%03d", len(issues)+1),
				Category:      CategorySyntactic,
				Level:         LevelMajor,
				Title:         "Missing Required Fields",
				Description:   "Missing required fields: " + strings.Join(missing, ", "),
				RequirementID: req.ID,
				Suggestion:    "Add missing fields: " + strings.Join(missing, ", "),
				AutoFixable:   true,
				Confidence:    1.0,
			})
		}

		if !arcadia.ValidPriority(req.Priority) {
			issues = append(issues, Issue{
				ID:            fmt.Sprintf("SYN-%03d", len(issues)+1),
				Category:      CategorySyntactic,
				Level:         LevelMinor,
				Title:         "Invalid Priority Value",
				Description:   fmt.Sprintf("Priority %q is not valid. Expected: MUST, SHOULD, COULD, WONT", req.Priority),
				RequirementID: req.ID,
				Suggestion:    "Use valid priority values: MUST, SHOULD, COULD, WONT",
				AutoFixable:   true,
				Confidence:    1.0,
			})
		}

		wordCount := len(strings.Fields(req.Description))
		if wordCount < minDescriptionWords {
			issues = append(issues, Issue{
				ID:            fmt.Sprintf("SYN-%03d", len(issues)+1),
				Category:      CategorySyntactic,
				Level:         LevelMajor,
				Title:         "Description Too Short",
				Description:   fmt.Sprintf("Description has only %d words (minimum: %d)", wordCount, minDescriptionWords),
				RequirementID: req.ID,
				Suggestion:    "Expand description with more specific details and context",
				Confidence:    1.0,
			})
		} else if wordCount > maxDescriptionWords {
			issues = append(issues, Issue{
				ID:            fmt.Sprintf("SYN-%03d", len(issues)+1),
				Category:      CategorySyntactic,
				Level:         LevelMinor,
				Title:         "Description Too Long",
				Description:   fmt.Sprintf("Description has %d words (maximum: %d)", wordCount, maxDescriptionWords),
				RequirementID: req.ID,
				Suggestion:    "Consider breaking down into multiple requirements",
				Confidence:    1.0,
			})
		}

		if !shallStatementPattern.MatchString(req.Description) {
			issues = append(issues, Issue{
				ID:            fmt.Sprintf("SYN-%03d", len(issues)+1),
				Category:      CategorySyntactic,
				Level:         LevelMajor,
				Title:         "Invalid Requirement Statement",
				Description:   "Requirement does not follow 'shall' statement pattern",
				RequirementID: req.ID,
				Suggestion:    "Rewrite using 'The system/actor shall...' format",
				Confidence:    1.0,
			})
		} else {
			valid++
		}
	}

	report.Issues = append(report.Issues, issues...)
	score := float64(valid) / float64(len(requirements))
	logging.ValidationDebug("Syntactic validation: score=%.2f issues=%d", score, len(issues))
	return score
}

func missingFields(req arcadia.Requirement) []string {
	var missing []string
	if req.ID == "" {
		missing = append(missing, "id")
	}
	if req.Description == "" {
		missing = append(missing, "description")
	}
	if req.Priority == "" {
		missing = append(missing, "priority")
	}
	if req.VerificationMethod == "" {
		missing = append(missing, "verification_method")
	}
	return missing
}

// =============================================================================
// STEP 2: SEMANTIC
// =============================================================================

func (p *Pipeline) validateSemantic(requirements []arcadia.Requirement, phase arcadia.Phase, report *Report) float64 {
	var issues []Issue
	compliant := 0

	template, hasTemplate := p.enricher.PhaseTemplate(phase)

	for _, req := range requirements {
		description := strings.ToLower(req.Description)

		if hasTemplate {
			aspectMentions := 0
			for _, aspect := range template.KeyAspects {
				if strings.Contains(description, strings.ToLower(aspect)) {
					aspectMentions++
				}
			}
			if aspectMentions == 0 {
				suggestion := "Include phase-specific aspects"
				if len(template.KeyAspects) >= 3 {
					suggestion = "Include references to: " + strings.Join(template.KeyAspects[:3], ", ")
				}
				issues = append(issues, Issue{
					ID:            fmt.Sprintf("SEM-%03d", len(issues)+1),
					Category:      CategorySemantic,
					Level:         LevelMajor,
					Title:         "Missing Phase-Specific Content",
					Description:   fmt.Sprintf("Requirement lacks %s phase-specific aspects", phase),
					RequirementID: req.ID,
					Suggestion:    suggestion,
					Confidence:    0.8,
				})
			}
		}

		if req.Type == arcadia.RequirementNonFunctional && !measurableCriteriaPattern.MatchString(description) {
			issues = append(issues, Issue{
				ID:            fmt.Sprintf("SEM-%03d", len(issues)+1),
				Category:      CategorySemantic,
				Level:         LevelMajor,
				Title:         "Non-Measurable NFR",
				Description:   "Non-functional requirement lacks measurable criteria",
				RequirementID: req.ID,
				Suggestion:    "Add specific metrics, thresholds, or quantifiable criteria",
				Confidence:    0.9,
			})
		}

		if !actorReferencePattern.MatchString(description) {
			issues = append(issues, Issue{
				ID:            fmt.Sprintf("SEM-%03d", len(issues)+1),
				Category:      CategorySemantic,
				Level:         LevelMinor,
				Title:         "Missing Actor Reference",
				Description:   "Requirement does not specify responsible actor",
				RequirementID: req.ID,
				Suggestion:    "Specify which actor (user, system, operator) is responsible",
				Confidence:    0.7,
			})
		}

		if genericVerificationMethods[strings.ToLower(req.VerificationMethod)] {
			issues = append(issues, Issue{
				ID:            fmt.Sprintf("SEM-%03d", len(issues)+1),
				Category:      CategorySemantic,
				Level:         LevelMinor,
				Title:         "Generic Verification Method",
				Description:   "Verification method is too generic",
				RequirementID: req.ID,
				Suggestion:    "Use more specific verification methods appropriate to requirement type",
				Confidence:    0.9,
			})
		} else {
			compliant++
		}
	}

	report.Issues = append(report.Issues, issues...)
	score := float64(compliant) / float64(len(requirements))
	logging.ValidationDebug("Semantic validation: score=%.2f issues=%d", score, len(issues))
	return score
}

// =============================================================================
// STEP 3: COVERAGE
// =============================================================================

func (p *Pipeline) analyzeCoverage(requirements []arcadia.Requirement, phase arcadia.Phase, report *Report) float64 {
	var issues []Issue
	var gaps []string

	// Capability coverage by description-contains-keyword against the
	// enricher's catalogue.
	catalogCapabilities := p.enricher.Capabilities(phase)
	covered := map[string]bool{}
	for _, req := range requirements {
		description := strings.ToLower(req.Description)
		for _, cap := range catalogCapabilities {
			for _, function := range cap.Functions {
				if strings.Contains(description, strings.ToLower(function)) {
					covered[cap.Name] = true
				}
			}
		}
	}
	var coveredCaps, uncoveredCaps []string
	for _, cap := range catalogCapabilities {
		if covered[cap.Name] {
			coveredCaps = append(coveredCaps, cap.Name)
		} else {
			uncoveredCaps = append(uncoveredCaps, cap.Name)
		}
	}
	if len(uncoveredCaps) > 0 {
		for _, name := range uncoveredCaps {
			gaps = append(gaps, "Uncovered capability: "+name)
		}
		preview := uncoveredCaps
		suffix := ""
		if len(preview) > 3 {
			preview = preview[:3]
			suffix = "..."
		}
		issues = append(issues, Issue{
			ID:          fmt.Sprintf("COV-%03d", len(issues)+1),
			Category:    CategoryCoverage,
			Level:       LevelMajor,
			Title:       "Incomplete Capability Coverage",
			Description: "Missing requirements for capabilities: " + strings.Join(preview, ", ") + suffix,
			Suggestion:  "Add requirements to cover missing operational capabilities",
			Confidence:  0.8,
		})
	}

	// Actor coverage by name containment.
	catalogActors := p.enricher.Actors(phase)
	actorCovered := map[string]bool{}
	for _, req := range requirements {
		description := strings.ToLower(req.Description)
		for _, actor := range catalogActors {
			if strings.Contains(description, strings.ToLower(actor.Name)) {
				actorCovered[actor.Name] = true
			}
		}
	}
	var coveredActors, uncoveredActors []string
	for _, actor := range catalogActors {
		if actorCovered[actor.Name] {
			coveredActors = append(coveredActors, actor.Name)
		} else {
			uncoveredActors = append(uncoveredActors, actor.Name)
		}
	}
	if len(uncoveredActors) > 0 {
		for _, name := range uncoveredActors {
			gaps = append(gaps, "Uncovered actor: "+name)
		}
		preview := uncoveredActors
		if len(preview) > 3 {
			preview = preview[:3]
		}
		issues = append(issues, Issue{
			ID:          fmt.Sprintf("COV-%03d", len(issues)+1),
			Category:    CategoryCoverage,
			Level:       LevelMinor,
			Title:       "Incomplete Actor Coverage",
			Description: "Missing actor references: " + strings.Join(preview, ", "),
			Suggestion:  "Consider adding requirements that involve missing actors",
			Confidence:  0.7,
		})
	}

	// Requirement type balance.
	distribution := map[string]int{}
	for _, req := range requirements {
		distribution[string(req.Type)]++
	}
	total := len(requirements)
	functionalRatio := float64(distribution[string(arcadia.RequirementFunctional)]) / float64(total)
	nfrRatio := float64(distribution[string(arcadia.RequirementNonFunctional)]) / float64(total)

	if functionalRatio < 0.3 {
		issues = append(issues, Issue{
			ID:          fmt.Sprintf("COV-%03d", len(issues)+1),
			Category:    CategoryCoverage,
			Level:       LevelMinor,
			Title:       "Low Functional Requirements Ratio",
			Description: fmt.Sprintf("Only %.1f%% functional requirements (recommended: >30%%)", functionalRatio*100),
			Suggestion:  "Consider adding more functional requirements",
			Confidence:  0.9,
		})
	}
	if nfrRatio > 0.6 {
		issues = append(issues, Issue{
			ID:          fmt.Sprintf("COV-%03d", len(issues)+1),
			Category:    CategoryCoverage,
			Level:       LevelMinor,
			Title:       "High NFR Ratio",
			Description: fmt.Sprintf("NFR ratio is %.1f%% (recommended: <60%%)", nfrRatio*100),
			Suggestion:  "Balance with more functional requirements",
			Confidence:  0.9,
		})
	}

	capabilityCoverage := 1.0
	if len(catalogCapabilities) > 0 {
		capabilityCoverage = float64(len(coveredCaps)) / float64(len(catalogCapabilities))
	}
	actorCoverage := 1.0
	if len(catalogActors) > 0 {
		actorCoverage = float64(len(coveredActors)) / float64(len(catalogActors))
	}

	report.Coverage = CoverageAnalysis{
		CapabilityCoverage:    capabilityCoverage,
		ActorCoverage:         actorCoverage,
		TypeDistribution:      distribution,
		CoveredCapabilities:   coveredCaps,
		UncoveredCapabilities: uncoveredCaps,
		CoveredActors:         coveredActors,
		UncoveredActors:       uncoveredActors,
	}
	report.GapsIdentified = gaps
	report.Issues = append(report.Issues, issues...)

	score := (capabilityCoverage + actorCoverage) / 2
	logging.ValidationDebug("Coverage analysis: score=%.2f gaps=%d", score, len(gaps))
	return score
}

// =============================================================================
// STEP 4: QUALITY
// =============================================================================

func (p *Pipeline) calculateQuality(requirements []arcadia.Requirement, report *Report) float64 {
	var issues []Issue
	var scores []float64
	var claritySum, completenessSum, consistencySum float64

	for _, req := range requirements {
		clarity := clarityScore(req.Description)
		completeness := completenessScore(req)
		consistency := consistencyScore(req)
		claritySum += clarity
		completenessSum += completeness
		consistencySum += consistency

		score := (clarity + completeness + consistency) / 3
		scores = append(scores, score)

		if score < qualityThreshold {
			level := LevelMinor
			if score < 0.5 {
				level = LevelMajor
			}
			issues = append(issues, Issue{
				ID:            fmt.Sprintf("QUA-%03d", len(issues)+1),
				Category:      CategoryQuality,
				Level:         level,
				Title:         "Low Quality Score",
				Description:   fmt.Sprintf("Requirement quality score: %.2f (threshold: %.2f)", score, qualityThreshold),
				RequirementID: req.ID,
				Suggestion:    "Improve clarity, completeness, and consistency",
				Confidence:    0.8,
			})
		}
	}

	average := 0.0
	for _, s := range scores {
		average += s
	}
	average /= float64(len(scores))

	high, medium, low := 0, 0, 0
	for _, s := range scores {
		switch {
		case s >= 0.8:
			high++
		case s >= 0.6:
			medium++
		default:
			low++
		}
	}

	report.QualityMetrics = map[string]float64{
		"average_quality":      average,
		"clarity_average":      claritySum / float64(len(requirements)),
		"completeness_average": completenessSum / float64(len(requirements)),
		"consistency_average":  consistencySum / float64(len(requirements)),
		"high_quality_count":   float64(high),
		"medium_quality_count": float64(medium),
		"low_quality_count":    float64(low),
	}
	report.Issues = append(report.Issues, issues...)

	logging.ValidationDebug("Quality scoring: average=%.2f", average)
	return average
}

// clarityScore: +0.3 action verbs, +0.2 no vague terms, +0.2 at most
// three sentences, +0.3 any specificity pattern matches.
func clarityScore(description string) float64 {
	if description == "" {
		return 0
	}
	lower := strings.ToLower(description)
	score := 0.0

	for _, verb := range actionVerbs {
		if strings.Contains(lower, verb) {
			score += 0.3
			break
		}
	}

	vague := false
	for _, term := range vagueTerms {
		if strings.Contains(lower, term) {
			vague = true
			break
		}
	}
	if !vague {
		score += 0.2
	}

	if len(strings.Split(description, ".")) <= 3 {
		score += 0.2
	}

	if measurableCriteriaPattern.MatchString(description) ||
		actorReferencePattern.MatchString(description) ||
		capabilityReferencePattern.MatchString(description) ||
		shallStatementPattern.MatchString(description) {
		score += 0.3
	}

	if score > 1 {
		score = 1
	}
	return score
}

// completenessScore: field-presence ratio ×0.4, length threshold 0.3,
// specific verification 0.3.
func completenessScore(req arcadia.Requirement) float64 {
	score := 0.0

	present := len(requiredFields) - len(missingFields(req))
	score += float64(present) / float64(len(requiredFields)) * 0.4

	if len(strings.Fields(req.Description)) >= minDescriptionWords {
		score += 0.3
	}

	if len(req.VerificationMethod) > minSpecificVerifyLen {
		score += 0.3
	}

	if score > 1 {
		score = 1
	}
	return score
}

// consistencyScore: 0.8 base, −0.2 for non-matching id pattern, −0.3
// for bad priority, −0.1 if the description does not start with "The "
// or "System ".
func consistencyScore(req arcadia.Requirement) float64 {
	score := 0.8

	if !idFormatPattern.MatchString(req.ID) {
		score -= 0.2
	}
	if !arcadia.ValidPriority(req.Priority) {
		score -= 0.3
	}
	if !strings.HasPrefix(req.Description, "The ") && !strings.HasPrefix(req.Description, "System ") {
		score -= 0.1
	}

	if score < 0 {
		score = 0
	}
	return score
}

// =============================================================================
// STEP 5: TRACEABILITY
// =============================================================================

func (p *Pipeline) validateTraceability(requirements []arcadia.Requirement, phase arcadia.Phase, report *Report) float64 {
	var issues []Issue
	total := 0.0

	for _, req := range requirements {
		result := p.enricher.ValidateTraceability(req, phase)
		total += result.Score

		if !result.IsValid {
			for _, issue := range result.Issues {
				issues = append(issues, Issue{
					ID:            fmt.Sprintf("TRA-%03d", len(issues)+1),
					Category:      CategoryTraceability,
					Level:         LevelMajor,
					Title:         "Traceability Issue",
					Description:   issue,
					RequirementID: req.ID,
					Suggestion:    strings.Join(result.Suggestions, "; "),
					Confidence:    0.8,
				})
			}
		}
	}

	report.Issues = append(report.Issues, issues...)
	score := total / float64(len(requirements))
	logging.ValidationDebug("Traceability validation: score=%.2f", score)
	return score
}

// =============================================================================
// RECOMMENDATIONS
// =============================================================================

func (p *Pipeline) generateRecommendations(report *Report) {
	var recommendations []string

	critical, major, autoFixable := 0, 0, 0
	for _, issue := range report.Issues {
		switch issue.Level {
		case LevelCritical:
			critical++
		case LevelMajor:
			major++
		}
		if issue.AutoFixable {
			autoFixable++
		}
	}

	if critical > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Address %d critical issues immediately", critical))
	}
	if major > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Resolve %d major issues to improve quality", major))
	}
	if len(report.GapsIdentified) > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Fill %d coverage gaps identified", len(report.GapsIdentified)))
	}
	if report.QualityMetrics["average_quality"] < 0.7 {
		recommendations = append(recommendations,
			"Improve overall requirement quality (clarity, completeness, consistency)")
	}
	if autoFixable > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("%d issues can be automatically fixed", autoFixable))
	}
	for _, category := range []string{"syntactic", "semantic", "coverage", "quality", "traceability"} {
		if score, ok := report.ScoresByCategory[category]; ok && score < 0.6 {
			recommendations = append(recommendations,
				fmt.Sprintf("Focus on improving %s validation (score: %.2f)", category, score))
		}
	}

	report.Recommendations = recommendations
}

// TemplateCompliance computes the share of requirements whose
// description contains at least two of the keyword anchors ("shall"
// and the phase template's key aspects), as a percentage.
func (p *Pipeline) TemplateCompliance(requirements []arcadia.Requirement, phase arcadia.Phase) float64 {
	template, ok := p.enricher.PhaseTemplate(phase)
	if !ok || len(requirements) == 0 {
		return 0
	}

	anchors := []string{"shall"}
	for _, aspect := range template.KeyAspects {
		anchors = append(anchors, strings.ToLower(aspect))
	}

	compliant := 0
	for _, req := range requirements {
		description := strings.ToLower(req.Description)
		hits := 0
		for _, anchor := range anchors {
			if strings.Contains(description, anchor) {
				hits++
			}
		}
		if hits >= 2 { // e.g. shall plus one phase aspect, or two aspects
			compliant++
		}
	}
	return float64(compliant) / float64(len(requirements)) * 100
}
