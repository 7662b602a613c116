package form

import (
	"fmt"
	"strings"
)

// ValidateField returns the first failing rule for value, or "" when value is
// acceptable.
func ValidateField(field Field, value string) string {
	blank := strings.TrimSpace(value) == ""
	if field.Required && blank {
		return fmt.Sprintf("%s is required", field.Label)
	}

	if !blank {
		switch field.Kind {
		case KindNumber:
			n, err := ParseNumber(value)
			if err != nil {
				return fmt.Sprintf("%s must be a valid number", field.Label)
			}
			if field.Min != nil && n < *field.Min {
				return fmt.Sprintf("%s must be greater than or equal to %s", field.Label, formatBound(*field.Min))
			}
			if field.Max != nil && n > *field.Max {
				return fmt.Sprintf("%s must be less than or equal to %s", field.Label, formatBound(*field.Max))
			}
		case KindCurrency:
			n, err := ParseNumber(value)
			if err != nil || n < 0 {
				return fmt.Sprintf("%s must be a valid amount", field.Label)
			}
		case KindSelect:
			if len(field.Options) > 0 && !hasOption(field.Options, value) {
				return fmt.Sprintf("%s must be one of %s", field.Label, optionList(field.Options))
			}
		}
	}

	if field.Validate != nil {
		if err := field.Validate(value); err != nil {
			return err.Error()
		}
	}
	return ""
}

// Validate applies ValidateField to every field. Keys absent from values are
// validated as blank.
func Validate(fields []Field, values Values) Errors {
	errs := Errors{}
	for _, field := range fields {
		if msg := ValidateField(field, values[field.Key]); msg != "" {
			errs[field.Key] = msg
		}
	}
	return errs
}

func hasOption(options []Option, value string) bool {
	for _, opt := range options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

func optionList(options []Option) string {
	vals := make([]string, 0, len(options))
	for _, opt := range options {
		vals = append(vals, opt.Value)
	}
	return strings.Join(vals, ", ")
}
