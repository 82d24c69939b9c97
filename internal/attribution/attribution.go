// Package attribution decides how credit and responsibility for a task are
// split across the agents of a team.
package attribution

// Allocator maps a roster (in registry order) to a share per agent name.
// Implementations must be deterministic for a given roster.
type Allocator func(names []string) map[string]float64

// Uniform gives every registered agent 1/N regardless of what it did.
// Duplicate names collapse into a single key. An empty roster yields an
// empty map.
func Uniform(names []string) map[string]float64 {
	out := make(map[string]float64, len(names))
	if len(names) == 0 {
		return out
	}
	share := 1.0 / float64(len(names))
	for _, n := range names {
		out[n] = share
	}
	return out
}

// OrDefault returns a, or Uniform when a is nil.
func OrDefault(a Allocator) Allocator {
	if a == nil {
		return Uniform
	}
	return a
}
