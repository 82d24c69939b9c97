package model

// ExplanationLevel tags which layer of the explanation stack a value belongs to.
type ExplanationLevel int

const (
	LevelIndividual   ExplanationLevel = 1 // Agent-level reasoning.
	LevelCoordination ExplanationLevel = 2 // Delegation and conflict resolution.
	LevelCollective   ExplanationLevel = 3 // Team-level emergent behavior.
)

func (l ExplanationLevel) String() string {
	switch l {
	case LevelIndividual:
		return "individual"
	case LevelCoordination:
		return "coordination"
	case LevelCollective:
		return "collective"
	default:
		return "unknown"
	}
}

// AutomationLevel is the degree of human oversight selected for a task,
// ordered from most to least oversight.
type AutomationLevel string

const (
	InTheLoop    AutomationLevel = "in_loop"  // Human approves each decision.
	OnTheLoop    AutomationLevel = "on_loop"  // Human monitors with intervention capability.
	OutOfTheLoop AutomationLevel = "out_loop" // Autonomous with logging.
)

// SafetyStatus is the outcome of a safety assessment.
type SafetyStatus string

const (
	StatusSafe     SafetyStatus = "safe"
	StatusWarning  SafetyStatus = "warning"
	StatusCritical SafetyStatus = "critical"
)

// DecisionType enumerates the kinds of coordination decisions.
type DecisionType string

const (
	DecisionDelegation         DecisionType = "delegation"
	DecisionConflictResolution DecisionType = "conflict_resolution"
	// DecisionInformationSharing is reserved; the analyzer never emits it.
	DecisionInformationSharing DecisionType = "information_sharing"
)

// SafetyMode selects how conservative the framework is about delegating
// away from low-confidence agents.
type SafetyMode string

const (
	SafetyPermissive SafetyMode = "permissive"
	SafetyBalanced   SafetyMode = "balanced"
	SafetyStrict     SafetyMode = "strict"
	SafetyMaximum    SafetyMode = "maximum"
)

// ConfidenceThreshold returns the minimum trace confidence below which a
// delegation is proposed. Unrecognized modes behave as balanced.
func (m SafetyMode) ConfidenceThreshold() float64 {
	switch m {
	case SafetyPermissive:
		return 0.70
	case SafetyStrict:
		return 0.90
	case SafetyMaximum:
		return 0.95
	default:
		return 0.80
	}
}

// Known reports whether m is one of the declared safety modes.
func (m SafetyMode) Known() bool {
	switch m {
	case SafetyPermissive, SafetyBalanced, SafetyStrict, SafetyMaximum:
		return true
	}
	return false
}

// Stakes is the declared impact of a task. Values other than the three
// constants are carried through unchanged.
type Stakes string

const (
	StakesLow    Stakes = "low"
	StakesMedium Stakes = "medium"
	StakesHigh   Stakes = "high"
)

// InterventionThresholds are the limits that decide when a human must step in.
type InterventionThresholds struct {
	ConfidenceMin      float64 `json:"confidence_min"`
	RiskMax            float64 `json:"risk_max"`
	ViolationTolerance int     `json:"violation_tolerance"`
}

// ThresholdsFor returns the intervention thresholds for a safety mode.
func ThresholdsFor(m SafetyMode) InterventionThresholds {
	return InterventionThresholds{
		ConfidenceMin:      m.ConfidenceThreshold(),
		RiskMax:            0.3,
		ViolationTolerance: 0,
	}
}
