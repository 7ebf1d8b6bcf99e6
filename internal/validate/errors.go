// Package validate collects field-level configuration errors.
package validate

import (
	"strings"
)

// FieldError is one violated constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Errors is the list of every violated constraint of one configuration.
type Errors struct {
	Fields []FieldError `json:"errors"`
}

// Add records a violation.
func (e *Errors) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Has reports whether field has at least one violation.
func (e *Errors) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Err returns e when it holds violations and nil otherwise.
func (e *Errors) Err() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *Errors) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return "invalid config: " + strings.Join(parts, "; ")
}

// TotalBps is the basis point value every share group must sum to.
const TotalBps = 10000

// SumBps adds up a share group.
func SumBps(values []uint16) int {
	total := 0
	for _, v := range values {
		total += int(v)
	}
	return total
}
