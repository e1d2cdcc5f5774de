package errors

import (
	// Go Internal Packages
	"strings"
)

// FieldError is a single violated rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f FieldError) String() string {
	return f.Field + " " + f.Message
}

// ValidationErrors collects every violated rule in the order it was found.
type ValidationErrors struct {
	Fields []FieldError
}

func ValidationErrs() *ValidationErrors {
	return &ValidationErrors{}
}

// Add records a violation for field.
func (v *ValidationErrors) Add(field, message string) {
	v.Fields = append(v.Fields, FieldError{Field: field, Message: message})
}

func (v *ValidationErrors) Len() int {
	return len(v.Fields)
}

// Messages returns one human readable line per violation.
func (v *ValidationErrors) Messages() []string {
	out := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		out[i] = f.String()
	}
	return out
}

func (v *ValidationErrors) Error() string {
	return strings.Join(v.Messages(), "; ")
}

// Err returns nil when nothing was added so callers can return it directly.
func (v *ValidationErrors) Err() error {
	if len(v.Fields) == 0 {
		return nil
	}
	return v
}
