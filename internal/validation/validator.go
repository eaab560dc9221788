package validation

import (
	"todo-api/internal/domain"
)

// Validator provides common validation utilities
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsPresent checks that an optional string was supplied and is not empty.
// Whitespace counts as content.
func (v *Validator) IsPresent(s *string) bool {
	return s != nil && *s != ""
}

// IsAllowedPriority checks a priority against the allowed set
func (v *Validator) IsAllowedPriority(p domain.Priority) bool {
	return p.IsValid()
}
