package domain

// Priority is the urgency of a todo.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// DefaultPriority is assigned when a todo is created without one.
const DefaultPriority = PriorityMedium

// AllowedPriorities lists every accepted priority.
var AllowedPriorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// IsValid reports whether p is one of the allowed priorities. Matching is
// exact: "High" is rejected.
func (p Priority) IsValid() bool {
	for _, allowed := range AllowedPriorities {
		if p == allowed {
			return true
		}
	}
	return false
}

func (p Priority) String() string {
	return string(p)
}
