// Package form describes editable fields declaratively and drives the
// open/validate/save/close lifecycle of an edit form independently of any
// particular data shape.
package form

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

type Kind string

const (
	KindText     Kind = "text"
	KindNumber   Kind = "number"
	KindTextarea Kind = "textarea"
	KindSelect   Kind = "select"
	KindCurrency Kind = "currency"
)

type Option struct {
	Value string
	Label string
}

type Field struct {
	Key         string
	Label       string
	Kind        Kind
	Description string
	Placeholder string
	Required    bool
	Min         *float64
	Max         *float64
	Options     []Option
	// Validate runs after the built-in checks and has the final word.
	Validate func(value string) error
}

// Bound is a helper for Field.Min and Field.Max literals.
func Bound(v float64) *float64 {
	return &v
}

// Values holds raw form input keyed by Field.Key.
type Values map[string]string

func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Errors maps Field.Key to a message. An empty map means valid.
type Errors map[string]string

// ValidationError carries per-field messages out of Workflow.Submit.
type ValidationError struct {
	Fields Errors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ParseNumber accepts the same inputs ValidateField accepts for number and
// currency fields.
func ParseNumber(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", raw)
	}
	return v, nil
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
