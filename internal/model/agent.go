package model

import "fmt"

// ValidateUnitInterval checks that v lies in [0, 1].
func ValidateUnitInterval(field string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s must be within [0, 1], got %v", field, v)
	}
	return nil
}

// ValidateAgentName checks that an agent name is usable as a registry key.
// Names must be 1-255 characters and must not be the reserved system actor.
func ValidateAgentName(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("agent name is required")
	}
	if len(name) > 255 {
		return fmt.Errorf("agent name must be at most 255 characters")
	}
	if name == SystemActor {
		return fmt.Errorf("agent name %q is reserved", SystemActor)
	}
	return nil
}
