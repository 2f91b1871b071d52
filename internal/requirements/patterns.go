package requirements

import "regexp"

// Regex families for requirement generation and parsing. Compiled once
// and shared across calls.
var (
	// shallPattern matches a "shall" clause with up to three
	// continuation sentences.
	shallPattern = regexp.MustCompile(`[Tt]he system shall ([^.]+(?:\.[^.]*){0,3})`)

	// Explicit hints the response may carry.
	priorityHintPattern     = regexp.MustCompile(`Priority:\s*(MUST|SHOULD|COULD)`)
	verificationHintPattern = regexp.MustCompile(`Verification:\s*([^.\n]+)`)

	// Context mining patterns for the functional prompt.
	capabilityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)capability to ([^.]+)`),
		regexp.MustCompile(`(?i)able to ([^.]+)`),
		regexp.MustCompile(`(?i)capacity for ([^.]+)`),
		regexp.MustCompile(`(?i)operational capability ([^.]+)`),
	}
	scenarioPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)scenario ([^.]+)`),
		regexp.MustCompile(`(?i)use case ([^.]+)`),
		regexp.MustCompile(`(?i)operational situation ([^.]+)`),
		regexp.MustCompile(`(?i)when ([^.]+)`),
	}
	needPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)needs? ([^.]+)`),
		regexp.MustCompile(`(?i)requires? ([^.]+)`),
		regexp.MustCompile(`(?i)expects? ([^.]+)`),
		regexp.MustCompile(`(?i)demands? ([^.]+)`),
	}

	// Metric extraction: value + unit over time, percentage, bytes,
	// counts and occurrences.
	metricPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(seconds?|minutes?|hours?|ms|milliseconds?)`),
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(%|percent|percentage)`),
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(MB|GB|TB|KB|bytes?)`),
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(users?|requests?|transactions?|operations?|readings?)`),
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(times?|instances?|occurrences?)`),
	}

	// Target value extraction: bounded, exact and range forms.
	targetPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:less than|<|under|below|maximum|max|within)\s*(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)(?:greater than|>|above|over|minimum|min|at least)\s*(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)(?:exactly|equal to|=)\s*(\d+(?:\.\d+)?)`),
	}
	targetRangePattern = regexp.MustCompile(`(?i)between\s*(\d+(?:\.\d+)?)\s*and\s*(\d+(?:\.\d+)?)`)
)

// Limits for mined context lists.
const (
	maxMinedCapabilities = 10
	maxMinedScenarios    = 8
	maxMinedNeeds        = 12
)

// Traceability link caps per requirement.
const (
	maxCapabilityLinks  = 5
	maxScenarioLinks    = 3
	maxStakeholderLinks = 5
)

// minRequirementWords rejects shall clauses shorter than this.
const minRequirementWords = 8
