package analysis

import (
	"fmt"
	"strings"
	"time"

	"arise/internal/arcadia"
	"arise/internal/logging"
)

// Similarity thresholds for traceability generation.
const (
	defaultThreshold   = 0.5
	actorThreshold     = 0.6
	interfaceThreshold = 0.7
	endToEndThreshold  = 0.6
	coverageThreshold  = 0.6
)

// Gap themes expected among operational capabilities.
var expectedCapabilityThemes = []string{"security", "monitoring", "data_processing", "user_interface"}

// Analyzer computes the cross-phase analysis over the phase outputs.
type Analyzer struct{}

// NewAnalyzer creates a cross-phase analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze consumes the phase outputs and emits traceability links, gap
// items, consistency checks, quality metrics, coverage matrix and
// impact lists. Phase outputs are read-only.
func (a *Analyzer) Analyze(output *arcadia.StructuredOutput) *arcadia.CrossPhaseOutput {
	timer := logging.StartTimer(logging.CategoryAnalysis, "Analyzer.Analyze")
	defer timer.StopWithInfo()

	start := time.Now()
	cross := &arcadia.CrossPhaseOutput{
		CoverageMatrix: make(map[string]arcadia.PhaseCoverage),
		ImpactAnalysis: make(map[string][]string),
	}

	cross.TraceabilityLinks = a.generateTraceabilityLinks(output)
	cross.GapAnalysis = a.performGapAnalysis(output)
	cross.ConsistencyChecks = a.checkConsistency(output)
	cross.QualityMetrics = a.calculateQualityMetrics(output)
	cross.CoverageMatrix = a.generateCoverageMatrix(output)
	cross.ImpactAnalysis = a.performImpactAnalysis(output)

	cross.Metadata = arcadia.ExtractionMetadata{
		SourceDocuments: []string{"cross_phase_analysis"},
		StartTime:       start,
		ConfidenceScores: map[string]float64{
			"traceability_confidence": 0.8,
			"gap_analysis_confidence": 0.7,
		},
		ProcessingStats: map[string]interface{}{
			"links_generated":  len(cross.TraceabilityLinks),
			"gaps_identified":  len(cross.GapAnalysis),
			"checks_performed": len(cross.ConsistencyChecks),
		},
	}

	logging.Analysis("Cross-phase analysis completed: %d links, %d gaps, %d checks",
		len(cross.TraceabilityLinks), len(cross.GapAnalysis), len(cross.ConsistencyChecks))
	return cross
}

// =============================================================================
// TRACEABILITY GENERATION
// =============================================================================

// linker accumulates links with sequential ids.
type linker struct {
	links []arcadia.TraceabilityLink
}

func (l *linker) add(source, target string, sourcePhase, targetPhase arcadia.Phase, relation arcadia.RelationshipType, confidence float64, status arcadia.ValidationStatus) {
	l.links = append(l.links, arcadia.TraceabilityLink{
		ID:               fmt.Sprintf("TRACE-%03d", len(l.links)+1),
		SourceElement:    source,
		TargetElement:    target,
		SourcePhase:      sourcePhase,
		TargetPhase:      targetPhase,
		RelationshipType: relation,
		ConfidenceScore:  confidence,
		ValidationStatus: status,
	})
}

// bestMatch finds the highest-scoring target above the threshold.
func bestMatch(source Element, targets []Element, mode Mode, threshold float64) (int, float64) {
	bestIdx, bestScore := -1, threshold
	for i, target := range targets {
		if score := Similarity(source, target, mode); score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	return bestIdx, bestScore
}

func (a *Analyzer) generateTraceabilityLinks(output *arcadia.StructuredOutput) []arcadia.TraceabilityLink {
	l := &linker{}

	// 1. Operational -> System
	if output.Operational != nil && output.System != nil {
		logging.AnalysisDebug("Generating Operational -> System traceability links")

		sysCaps := systemCapabilityElements(output.System.Capabilities)
		for _, opCap := range output.Operational.Capabilities {
			source := operationalCapabilityElement(opCap)
			if idx, score := bestMatch(source, sysCaps, ModeComprehensive, defaultThreshold); idx >= 0 {
				l.add(opCap.ID, output.System.Capabilities[idx].ID,
					arcadia.PhaseOperational, arcadia.PhaseSystem,
					arcadia.RelationRealizes, score, arcadia.StatusUnverified)
			}
		}

		sysActors := systemActorElements(output.System.Actors)
		for _, opActor := range output.Operational.Actors {
			source := operationalActorElement(opActor)
			if idx, score := bestMatch(source, sysActors, ModeContextual, actorThreshold); idx >= 0 {
				l.add(opActor.ID, output.System.Actors[idx].ID,
					arcadia.PhaseOperational, arcadia.PhaseSystem,
					arcadia.RelationImplements, score, arcadia.StatusUnverified)
			}
		}
	}

	// 2. System -> Logical
	if output.System != nil && output.Logical != nil {
		logging.AnalysisDebug("Generating System -> Logical traceability links")

		logFns := logicalFunctionElements(output.Logical.Functions)
		for _, sysFn := range output.System.Functions {
			source := systemFunctionElement(sysFn)
			if idx, score := bestMatch(source, logFns, ModeFunctional, defaultThreshold); idx >= 0 {
				l.add(sysFn.ID, output.Logical.Functions[idx].ID,
					arcadia.PhaseSystem, arcadia.PhaseLogical,
					arcadia.RelationDecomposesTo, score, arcadia.StatusUnverified)
			}
		}

		logComps := logicalComponentElements(output.Logical.Components)
		for _, sysCap := range output.System.Capabilities {
			source := systemCapabilityElement(sysCap)
			if idx, score := bestMatch(source, logComps, ModeComprehensive, defaultThreshold); idx >= 0 {
				l.add(sysCap.ID, output.Logical.Components[idx].ID,
					arcadia.PhaseSystem, arcadia.PhaseLogical,
					arcadia.RelationAllocatedTo, score, arcadia.StatusUnverified)
			}
		}
	}

	// 3. Logical -> Physical
	if output.Logical != nil && output.Physical != nil {
		logging.AnalysisDebug("Generating Logical -> Physical traceability links")

		physComps := physicalComponentElements(output.Physical.Components)
		for _, logComp := range output.Logical.Components {
			source := logicalComponentElement(logComp)
			if idx, score := bestMatch(source, physComps, ModeComprehensive, defaultThreshold); idx >= 0 {
				l.add(logComp.ID, output.Physical.Components[idx].ID,
					arcadia.PhaseLogical, arcadia.PhasePhysical,
					arcadia.RelationImplementedBy, score, arcadia.StatusUnverified)
			}
		}

		physFns := physicalFunctionElements(output.Physical.Functions)
		for _, logFn := range output.Logical.Functions {
			source := logicalFunctionElement(logFn)
			if idx, score := bestMatch(source, physFns, ModeFunctional, defaultThreshold); idx >= 0 {
				l.add(logFn.ID, output.Physical.Functions[idx].ID,
					arcadia.PhaseLogical, arcadia.PhasePhysical,
					arcadia.RelationRealizedBy, score, arcadia.StatusUnverified)
			}
		}
	}

	// 4. Interface traceability: logical interfaces to physical
	// component interfaces by name similarity.
	if output.Logical != nil && output.Physical != nil {
		for _, logIntf := range output.Logical.Interfaces {
			for _, physComp := range output.Physical.Components {
				for _, physIntf := range physComp.Interfaces {
					if score := NameSimilarity(logIntf.Name, physIntf.Name); score > interfaceThreshold {
						l.add(logIntf.ID, physComp.ID+":"+physIntf.Name,
							arcadia.PhaseLogical, arcadia.PhasePhysical,
							arcadia.RelationImplementedThrough, score, arcadia.StatusUnverified)
					}
				}
			}
		}
	}

	// 5. End-to-end: operational capabilities to physical components by
	// mission-to-description matching; always requires validation.
	if output.Operational != nil && output.Physical != nil {
		logging.AnalysisDebug("Generating end-to-end traceability links")
		caps := output.Operational.Capabilities
		if len(caps) > 3 { // Limit for performance
			caps = caps[:3]
		}
		for _, opCap := range caps {
			for _, physComp := range output.Physical.Components {
				if score := DescriptionSimilarity(opCap.MissionStatement, physComp.Description); score > endToEndThreshold {
					l.add(opCap.ID, physComp.ID,
						arcadia.PhaseOperational, arcadia.PhasePhysical,
						arcadia.RelationEnables, score, arcadia.StatusRequiresValidation)
				}
			}
		}
	}

	logging.Analysis("Generated %d traceability links", len(l.links))
	return l.links
}

// =============================================================================
// GAP ANALYSIS
// =============================================================================

func (a *Analyzer) performGapAnalysis(output *arcadia.StructuredOutput) []arcadia.GapAnalysisItem {
	var gaps []arcadia.GapAnalysisItem

	// Expected operational capability themes.
	if output.Operational != nil {
		var foundNames []string
		for _, cap := range output.Operational.Capabilities {
			foundNames = append(foundNames, strings.ToLower(cap.Name))
		}
		for _, expected := range expectedCapabilityThemes {
			theme := strings.ReplaceAll(expected, "_", " ")
			found := false
			for _, name := range foundNames {
				if strings.Contains(name, expected) || strings.Contains(name, theme) {
					found = true
					break
				}
			}
			if !found {
				gaps = append(gaps, arcadia.GapAnalysisItem{
					ID:          fmt.Sprintf("GAP-%03d", len(gaps)+1),
					GapType:     arcadia.GapMissing,
					Phase:       arcadia.PhaseOperational,
					Description: fmt.Sprintf("Missing %s capability in operational analysis", expected),
					Severity:    arcadia.SeverityMedium,
					Recommendations: []string{
						fmt.Sprintf("Consider adding %s capability requirements", expected),
					},
				})
			}
		}
	}

	// Actor count mismatch between operational and system phases.
	if output.Operational != nil && output.System != nil {
		opCount := len(output.Operational.Actors)
		sysCount := len(output.System.Actors)
		diff := opCount - sysCount
		if diff < 0 {
			diff = -diff
		}
		limit := 3.0
		if half := float64(opCount) * 0.5; half > limit {
			limit = half
		}
		if float64(diff) > limit {
			gaps = append(gaps, arcadia.GapAnalysisItem{
				ID:          fmt.Sprintf("GAP-%03d", len(gaps)+1),
				GapType:     arcadia.GapInconsistent,
				Phase:       arcadia.PhaseSystem,
				Description: fmt.Sprintf("Significant mismatch in actor count: %d operational vs %d system", opCount, sysCount),
				Severity:    arcadia.SeverityMajor,
				Recommendations: []string{
					"Review actor mappings between operational and system phases",
				},
			})
		}
	}

	logging.Analysis("Identified %d gaps", len(gaps))
	return gaps
}

// =============================================================================
// CONSISTENCY CHECKS
// =============================================================================

func (a *Analyzer) checkConsistency(output *arcadia.StructuredOutput) []arcadia.ConsistencyCheck {
	var checks []arcadia.ConsistencyCheck

	coherence := arcadia.ConsistencyCheck{
		ID:             "CONSIST-001",
		CheckType:      "model_coherence",
		PhasesInvolved: []arcadia.Phase{arcadia.PhaseOperational, arcadia.PhaseSystem},
		Status:         arcadia.CheckPassed,
		Description:    "Model coherence across operational and system phases",
	}
	if output.Operational != nil && output.System != nil {
		opCaps := len(output.Operational.Capabilities)
		sysCaps := len(output.System.Capabilities)
		if float64(sysCaps) < float64(opCaps)*0.5 {
			coherence.Status = arcadia.CheckWarning
			coherence.IssuesFound = append(coherence.IssuesFound,
				"System capabilities significantly fewer than operational capabilities")
			coherence.Recommendations = append(coherence.Recommendations,
				"Review system capability coverage")
		}
	}
	checks = append(checks, coherence)

	// Interface compatibility within the system phase. Reserved for
	// future implementation; always passes.
	checks = append(checks, arcadia.ConsistencyCheck{
		ID:             "CONSIST-002",
		CheckType:      "interface_compatibility",
		PhasesInvolved: []arcadia.Phase{arcadia.PhaseSystem},
		Status:         arcadia.CheckPassed,
		Description:    "Interface compatibility within system phase",
	})

	return checks
}

// =============================================================================
// QUALITY METRICS
// =============================================================================

func (a *Analyzer) calculateQualityMetrics(output *arcadia.StructuredOutput) []arcadia.QualityMetric {
	var metrics []arcadia.QualityMetric

	if output.Operational != nil {
		actors := len(output.Operational.Actors)
		capabilities := len(output.Operational.Capabilities)
		scenarios := len(output.Operational.Scenarios)

		score := (float64(actors)*0.3 + float64(capabilities)*0.4 + float64(scenarios)*0.3) / 5
		if score > 1 {
			score = 1
		}
		metrics = append(metrics, arcadia.QualityMetric{
			ID:         "QUALITY-001",
			MetricName: "Operational Analysis Completeness",
			MetricType: "requirement_quality",
			Phase:      arcadia.PhaseOperational,
			Score:      score,
			MaxScore:   1.0,
			Criteria:   []string{"Actor coverage", "Capability completeness", "Scenario coverage"},
			AssessmentDetails: map[string]interface{}{
				"actors_count":       actors,
				"capabilities_count": capabilities,
				"scenarios_count":    scenarios,
			},
		})
	}

	if output.System != nil {
		actors := len(output.System.Actors)
		functions := len(output.System.Functions)
		capabilities := len(output.System.Capabilities)

		score := (float64(actors)*0.2 + float64(functions)*0.5 + float64(capabilities)*0.3) / 8
		if score > 1 {
			score = 1
		}
		metrics = append(metrics, arcadia.QualityMetric{
			ID:         "QUALITY-002",
			MetricName: "System Architecture Quality",
			MetricType: "architecture_quality",
			Phase:      arcadia.PhaseSystem,
			Score:      score,
			MaxScore:   1.0,
			Criteria:   []string{"Actor definition", "Function decomposition", "Capability realization"},
			AssessmentDetails: map[string]interface{}{
				"actors_count":       actors,
				"functions_count":    functions,
				"capabilities_count": capabilities,
			},
		})
	}

	return metrics
}

// =============================================================================
// COVERAGE MATRIX
// =============================================================================

func (a *Analyzer) generateCoverageMatrix(output *arcadia.StructuredOutput) map[string]arcadia.PhaseCoverage {
	matrix := make(map[string]arcadia.PhaseCoverage)

	if output.Operational != nil && output.System != nil {
		matrix["operational_to_system"] = arcadia.PhaseCoverage{
			ActorCoverage: nameCoverage(
				operationalActorNames(output.Operational.Actors),
				systemActorNames(output.System.Actors)),
			CapabilityCoverage: nameCoverage(
				operationalCapabilityNames(output.Operational.Capabilities),
				systemCapabilityNames(output.System.Capabilities)),
		}
	}

	return matrix
}

// nameCoverage is the fraction of source names having at least one
// target with name similarity above the coverage threshold.
func nameCoverage(sources, targets []string) float64 {
	if len(sources) == 0 {
		return 1.0
	}
	covered := 0
	for _, source := range sources {
		for _, target := range targets {
			if NameSimilarity(source, target) > coverageThreshold {
				covered++
				break
			}
		}
	}
	return float64(covered) / float64(len(sources))
}

// =============================================================================
// IMPACT ANALYSIS
// =============================================================================

func (a *Analyzer) performImpactAnalysis(output *arcadia.StructuredOutput) map[string][]string {
	impact := make(map[string][]string)

	if output.Operational != nil {
		var highImpact []string
		for _, cap := range output.Operational.Capabilities {
			if len(cap.InvolvedActors) > 2 {
				highImpact = append(highImpact, cap.ID)
			}
		}
		impact["high_impact_operational_capabilities"] = highImpact
	}

	if output.System != nil {
		var critical []string
		for _, fn := range output.System.Functions {
			if fn.FunctionType == arcadia.FunctionPrimary && len(fn.AllocatedActors) > 1 {
				critical = append(critical, fn.ID)
			}
		}
		impact["critical_system_functions"] = critical
	}

	return impact
}
