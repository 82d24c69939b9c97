package model

// Context keys read by the pipeline. Every other key is ignored.
const (
	ContextComplexity = "complexity"
	ContextStakes     = "stakes"
)

// ComplexityHigh is the only complexity value that affects confidence.
const ComplexityHigh = "high"

// TaskContext carries caller-supplied, domain-specific task attributes.
// Malformed or unknown entries are ignored rather than rejected.
type TaskContext map[string]any

// String returns the value under key if it is a string, else "".
func (c TaskContext) String(key string) string {
	if c == nil {
		return ""
	}
	s, _ := c[key].(string)
	return s
}

// HighComplexity reports whether the task was declared high complexity.
func (c TaskContext) HighComplexity() bool {
	return c.String(ContextComplexity) == ComplexityHigh
}

// Stakes returns the declared stakes, defaulting to medium only when the key
// is absent. A present value that is not a string matches no known level.
func (c TaskContext) Stakes() Stakes {
	v, ok := c[ContextStakes]
	if !ok {
		return StakesMedium
	}
	s, _ := v.(string)
	return Stakes(s)
}
