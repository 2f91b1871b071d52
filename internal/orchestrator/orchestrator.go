// Package orchestrator drives a full ARISE run end-to-end: chunking,
// traditional and enhanced requirements generation, structured ARCADIA
// extraction, cross-phase analysis, validation and optional
// persistence, under a feature-flag configuration.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"arise/internal/analysis"
	"arise/internal/arcadia"
	"arise/internal/config"
	"arise/internal/document"
	"arise/internal/extract"
	"arise/internal/knowledge"
	"arise/internal/llm"
	"arise/internal/logging"
	"arise/internal/requirements"
	"arise/internal/validation"
)

// TargetAll expands to every analysis phase.
const TargetAll = "all"

// defaultRequirementTypes used when the caller passes nil.
var defaultRequirementTypes = []string{"functional", "non_functional", "stakeholder"}

// Persister stores a finished result under a project name. Persistence
// is a collaborator; the orchestrator only records the opaque ids.
type Persister interface {
	Save(ctx context.Context, projectName string, result *Result) (projectID, sessionID string, err error)
}

// Result is the unified outcome of one orchestrated run.
type Result struct {
	Traditional        arcadia.RequirementsDocument `json:"traditional_requirements"`
	Structured         *arcadia.StructuredOutput    `json:"structured_output,omitempty"`
	ValidationReport   *validation.Report           `json:"validation_report,omitempty"`
	TemplateCompliance float64                      `json:"template_compliance"`
	QualityScore       float64                      `json:"quality_score"`
	ProjectID          string                       `json:"project_id,omitempty"`
	SessionID          string                       `json:"session_id,omitempty"`
	GenerationTime     float64                      `json:"generation_time_seconds"`
	EnrichmentSummary  map[string]interface{}       `json:"enrichment_summary,omitempty"`
}

// Orchestrator wires the pipeline components together.
type Orchestrator struct {
	cfg       config.PipelineConfig
	client    llm.Client
	model     string
	processor *document.Processor
	enricher  *knowledge.Enricher
	analyzer  *analysis.Analyzer
	validator *validation.Pipeline
	persister Persister
}

// New creates an orchestrator with the given configuration and gateway.
// persister may be nil; persistence then records generated ids only.
func New(cfg config.PipelineConfig, client llm.Client, model string, persister Persister) *Orchestrator {
	enricher := knowledge.NewEnricher()
	return &Orchestrator{
		cfg:       cfg,
		client:    client,
		model:     model,
		processor: document.NewProcessor(document.DefaultChunkSize, document.DefaultChunkOverlap),
		enricher:  enricher,
		analyzer:  analysis.NewAnalyzer(),
		validator: validation.NewPipeline(enricher),
		persister: persister,
	}
}

// Run executes the pipeline for one proposal. Configuration problems
// (unknown phase, empty requirement types) are rejected before any LLM
// call; recoverable pipeline failures degrade to empty outputs.
func (o *Orchestrator) Run(ctx context.Context, proposalText, targetPhase string, requirementTypes []string, projectName string) (*Result, error) {
	timer := logging.StartTimer(logging.CategoryOrchestrator, "Orchestrator.Run")
	defer timer.StopWithInfo()

	start := time.Now()

	phases, types, err := workingConfig(targetPhase, requirementTypes)
	if err != nil {
		return nil, err
	}

	logging.Orchestrator("Starting run: phases=%v types=%v project=%q", phases, types, projectName)

	result := &Result{
		Traditional: arcadia.RequirementsDocument{
			Requirements: make(map[arcadia.Phase]arcadia.PhaseRequirements),
			Stakeholders: make(map[string]arcadia.Stakeholder),
			Statistics:   make(map[string]interface{}),
		},
	}

	// An empty proposal yields a well-formed empty result without any
	// LLM call.
	if strings.TrimSpace(proposalText) == "" {
		logging.OrchestratorWarn("Empty proposal; returning empty result")
		result.Traditional.Statistics = computeStatistics(result.Traditional)
		result.Structured = &arcadia.StructuredOutput{Metadata: o.generationMetadata(phases, start)}
		result.GenerationTime = time.Since(start).Seconds()
		result.QualityScore = o.overallQuality(result)
		return result, nil
	}

	// Step 1: chunk the proposal.
	chunks := o.processor.Chunk(proposalText, "proposal_text", map[string]interface{}{"source": "proposal_text"})

	// Step 2: traditional requirements per phase, without enrichment.
	generator := requirements.NewGenerator(o.client, o.model)
	for _, phase := range phases {
		phaseChunks := document.FilterByPhase(chunks, phase)
		generated := generator.Generate(ctx, phaseChunks, phase, proposalText, types)
		result.Traditional.Requirements[phase] = arcadia.PhaseRequirements{
			Functional:    generated.Functional,
			NonFunctional: generated.NonFunctional,
			Stakeholder:   generated.Stakeholder,
		}
	}
	o.collectStakeholders(proposalText, result)

	// Step 3: enhanced generation over enriched context.
	if o.cfg.EnableEnhancedGeneration {
		o.enhanceRequirements(ctx, chunks, phases, types, proposalText, result)
	}

	// Step 4: structured ARCADIA analysis.
	if o.cfg.EnableStructuredAnalysis {
		result.Structured = o.runStructuredAnalysis(ctx, chunks, phases, proposalText, start)
	}

	// Step 5: validation.
	if o.cfg.EnableValidation {
		all := result.Traditional.AllRequirements()
		primary := phases[0]
		result.ValidationReport = o.validator.Validate(all, primary)
		result.TemplateCompliance = o.templateCompliance(result, phases)
	}

	// Step 6: persistence.
	if o.cfg.EnablePersistence && projectName != "" {
		o.persist(ctx, projectName, result)
	}

	// Step 7: statistics, quality score, timings.
	result.Traditional.Statistics = computeStatistics(result.Traditional)
	result.GenerationTime = time.Since(start).Seconds()
	result.QualityScore = o.overallQuality(result)

	logging.Orchestrator("Run completed in %.1fs: %d requirements, quality=%.2f",
		result.GenerationTime, len(result.Traditional.AllRequirements()), result.QualityScore)
	return result, nil
}

// workingConfig derives the effective phases and requirement types.
func workingConfig(targetPhase string, requirementTypes []string) ([]arcadia.Phase, []string, error) {
	var phases []arcadia.Phase
	if targetPhase == "" || targetPhase == TargetAll {
		phases = append(phases, arcadia.AnalysisPhases...)
	} else {
		phase, err := arcadia.ParsePhase(targetPhase)
		if err != nil {
			return nil, nil, err
		}
		if phase.Order() < 0 {
			return nil, nil, fmt.Errorf("phase %q is not an analysis phase", targetPhase)
		}
		phases = append(phases, phase)
	}

	types := requirementTypes
	if types == nil {
		types = defaultRequirementTypes
	}
	if len(types) == 0 {
		return nil, nil, fmt.Errorf("requirement types must not be empty")
	}
	for _, t := range types {
		switch t {
		case "functional", "non_functional", "stakeholder":
		default:
			return nil, nil, fmt.Errorf("unknown requirement type: %q", t)
		}
	}

	return phases, types, nil
}

// collectStakeholders mines stakeholders from the proposal into the
// traditional structure.
func (o *Orchestrator) collectStakeholders(proposalText string, result *Result) {
	proposalAnalysis := o.processor.AnalyzeProposal(proposalText)
	for _, stakeholder := range proposalAnalysis.Stakeholders {
		result.Traditional.Stakeholders[stakeholder.ID] = stakeholder
	}
}

// enhanceRequirements re-runs generation over enriched context and
// merges the per-phase results into the traditional structure.
func (o *Orchestrator) enhanceRequirements(ctx context.Context, chunks []document.Chunk, phases []arcadia.Phase, types []string, proposalText string, result *Result) {
	generator := requirements.NewGenerator(o.client, o.model)
	enrichedCount := 0

	for _, phase := range phases {
		phaseChunks := document.FilterByPhase(chunks, phase)
		workingChunks := phaseChunks
		if o.cfg.EnableEnrichment {
			workingChunks = o.enricher.Enrich(phase, phaseChunks, types)
			enrichedCount += len(workingChunks) - len(phaseChunks)
		}

		generated := generator.Generate(ctx, workingChunks, phase, proposalText, types)

		group := result.Traditional.Requirements[phase]
		if len(generated.Functional) > 0 {
			group.Functional = generated.Functional
		}
		if len(generated.NonFunctional) > 0 {
			group.NonFunctional = generated.NonFunctional
		}
		if len(generated.Stakeholder) > 0 {
			group.Stakeholder = generated.Stakeholder
		}
		result.Traditional.Requirements[phase] = group
	}

	result.EnrichmentSummary = map[string]interface{}{
		"enrichment_enabled": o.cfg.EnableEnrichment,
		"knowledge_chunks":   enrichedCount,
	}
}

// runStructuredAnalysis runs the requested extractors in phase order,
// each receiving its predecessors' outputs, then cross-phase analysis
// when enabled and more than one phase was requested. A failed
// extractor leaves its phase empty; later extractors still run.
func (o *Orchestrator) runStructuredAnalysis(ctx context.Context, chunks []document.Chunk, phases []arcadia.Phase, proposalText string, start time.Time) *arcadia.StructuredOutput {
	requested := make(map[arcadia.Phase]bool, len(phases))
	for _, phase := range phases {
		requested[phase] = true
	}

	output := &arcadia.StructuredOutput{}
	sourceDocs := []string{"proposal_text"}

	if requested[arcadia.PhaseOperational] {
		extractor := extract.NewOperationalExtractor(o.client, o.model)
		output.Operational = extractor.Extract(ctx,
			document.FilterByPhase(chunks, arcadia.PhaseOperational), proposalText, sourceDocs)
	}
	if requested[arcadia.PhaseSystem] {
		extractor := extract.NewSystemExtractor(o.client, o.model)
		output.System = extractor.Extract(ctx,
			document.FilterByPhase(chunks, arcadia.PhaseSystem), proposalText, output.Operational, sourceDocs)
	}
	if requested[arcadia.PhaseLogical] {
		extractor := extract.NewLogicalExtractor(o.client, o.model)
		output.Logical = extractor.Extract(ctx,
			document.FilterByPhase(chunks, arcadia.PhaseLogical), proposalText, output.Operational, output.System, sourceDocs)
	}
	if requested[arcadia.PhasePhysical] {
		extractor := extract.NewPhysicalExtractor(o.client, o.model)
		output.Physical = extractor.Extract(ctx,
			document.FilterByPhase(chunks, arcadia.PhasePhysical), proposalText, output.Operational, output.System, output.Logical, sourceDocs)
	}

	if o.cfg.EnableCrossPhaseAnalysis && len(phases) > 1 {
		output.CrossPhase = o.analyzer.Analyze(output)
	}

	output.Metadata = o.generationMetadata(phases, start)
	return output
}

// generationMetadata builds the structured output metadata record.
func (o *Orchestrator) generationMetadata(phases []arcadia.Phase, start time.Time) map[string]interface{} {
	names := make([]string, len(phases))
	for i, phase := range phases {
		names[i] = string(phase)
	}
	return map[string]interface{}{
		"source_documents":        []string{"proposal_text"},
		"target_phases":           names,
		"start_time":              start.Format(time.RFC3339),
		"processing_time_seconds": time.Since(start).Seconds(),
		"service_version":         "1.0.0",
	}
}

// templateCompliance averages the per-phase template compliance over
// the requested phases.
func (o *Orchestrator) templateCompliance(result *Result, phases []arcadia.Phase) float64 {
	total := 0.0
	counted := 0
	for _, phase := range phases {
		group, ok := result.Traditional.Requirements[phase]
		if !ok {
			continue
		}
		reqs := group.All()
		if len(reqs) == 0 {
			continue
		}
		total += o.validator.TemplateCompliance(reqs, phase)
		counted++
	}
	if counted == 0 {
		return 0
	}
	return total / float64(counted)
}

// persist hands the result to the persistence collaborator and records
// the opaque project and session ids.
func (o *Orchestrator) persist(ctx context.Context, projectName string, result *Result) {
	if o.persister != nil {
		projectID, sessionID, err := o.persister.Save(ctx, projectName, result)
		if err != nil {
			logging.OrchestratorWarn("Persistence failed for %q: %v", projectName, err)
			return
		}
		result.ProjectID = projectID
		result.SessionID = sessionID
		return
	}
	result.ProjectID = uuid.NewString()
	result.SessionID = uuid.NewString()
}

// overallQuality is the mean of the available quality terms: a 0.7
// presence score when any requirements exist, the validation score,
// the compliance score, and the cross-phase quality mean.
func (o *Orchestrator) overallQuality(result *Result) float64 {
	var scores []float64

	if len(result.Traditional.AllRequirements()) > 0 {
		scores = append(scores, 0.7)
	}
	if result.ValidationReport != nil {
		scores = append(scores, result.ValidationReport.OverallScore)
	}
	if result.TemplateCompliance > 0 {
		scores = append(scores, result.TemplateCompliance/100)
	}
	if result.Structured != nil && result.Structured.CrossPhase != nil {
		metrics := result.Structured.CrossPhase.QualityMetrics
		if len(metrics) > 0 {
			sum := 0.0
			for _, metric := range metrics {
				sum += metric.Score
			}
			scores = append(scores, sum/float64(len(metrics)))
		}
	}

	if len(scores) == 0 {
		return 0
	}
	total := 0.0
	for _, score := range scores {
		total += score
	}
	return total / float64(len(scores))
}

// computeStatistics builds the counts by type, phase and priority.
func computeStatistics(doc arcadia.RequirementsDocument) map[string]interface{} {
	byType := map[string]int{}
	byPhase := map[string]int{}
	byPriority := map[string]int{}
	total := 0

	for phase, group := range doc.Requirements {
		for _, req := range group.All() {
			total++
			byType[string(req.Type)]++
			byPhase[string(phase)]++
			byPriority[string(req.Priority)]++
		}
	}

	return map[string]interface{}{
		"total_requirements": total,
		"by_type":            byType,
		"by_phase":           byPhase,
		"by_priority":        byPriority,
		"stakeholder_count":  len(doc.Stakeholders),
	}
}
