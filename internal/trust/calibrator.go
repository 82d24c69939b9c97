// Package trust maps a task's team confidence, stakes, and safety status to
// the level of human oversight the result needs.
package trust

import "github.com/ashita-ai/cohumain/internal/model"

// Calibration bounds.
const (
	// UnknownExpertise weights traces whose agent is not on the roster.
	UnknownExpertise = 0.5
	// SupervisedBelow forces human-in-the-loop below this confidence.
	SupervisedBelow = 0.7
	// MonitoredBelow keeps a human on the loop below this confidence.
	MonitoredBelow = 0.85
)

// Calibration is the outcome of one calibration.
type Calibration struct {
	Confidence float64
	Level      model.AutomationLevel
}

// WeightedConfidence returns the expertise-weighted mean of trace
// confidences. An agent's weight is the expertise of the first roster entry
// with its name. Returns 0 for no traces or a zero total weight.
func WeightedConfidence(traces []model.ReasoningTrace, roster []model.RosterEntry) float64 {
	if len(traces) == 0 {
		return 0
	}
	weights := make(map[string]float64, len(roster))
	for _, r := range roster {
		if _, seen := weights[r.Name]; !seen {
			weights[r.Name] = r.Expertise
		}
	}

	var sum, total float64
	for _, tr := range traces {
		w, ok := weights[tr.Agent]
		if !ok {
			w = UnknownExpertise
		}
		sum += tr.Confidence * w
		total += w
	}
	if total == 0 {
		return 0
	}
	return sum / total
}

// Level selects the automation level.
func Level(confidence float64, stakes model.Stakes, status model.SafetyStatus) model.AutomationLevel {
	switch {
	case confidence < SupervisedBelow || stakes == model.StakesHigh || status == model.StatusCritical:
		return model.InTheLoop
	case confidence < MonitoredBelow || stakes == model.StakesMedium:
		return model.OnTheLoop
	default:
		return model.OutOfTheLoop
	}
}

// Calibrate computes the weighted confidence and the automation level for it.
func Calibrate(traces []model.ReasoningTrace, roster []model.RosterEntry, tc model.TaskContext, status model.SafetyStatus) Calibration {
	conf := WeightedConfidence(traces, roster)
	return Calibration{
		Confidence: conf,
		Level:      Level(conf, tc.Stakes(), status),
	}
}
