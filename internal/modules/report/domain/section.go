package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownSection = errors.New("unknown report section")

type Section string

const (
	SectionKeyMetrics     Section = "keyMetrics"
	SectionCharts         Section = "charts"
	SectionAnalysis       Section = "analysis"
	SectionDocuments      Section = "documents"
	SectionNextSteps      Section = "nextSteps"
	SectionRecommendation Section = "recommendation"
)

// Sections is the print order.
var Sections = []Section{
	SectionKeyMetrics,
	SectionCharts,
	SectionAnalysis,
	SectionDocuments,
	SectionNextSteps,
	SectionRecommendation,
}

func (s Section) Validate() error {
	for _, known := range Sections {
		if s == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownSection, string(s))
}

func (s Section) Label() string {
	switch s {
	case SectionKeyMetrics:
		return "Key metrics"
	case SectionCharts:
		return "Charts (financing & engagement)"
	case SectionAnalysis:
		return "Analysis (strengths & vigilance)"
	case SectionDocuments:
		return "Deliverables and data"
	case SectionNextSteps:
		return "Next steps"
	case SectionRecommendation:
		return "Conclusion and recommendation"
	default:
		return string(s)
	}
}

// Visibility says which sections a printed report includes. The zero value
// hides everything; use AllVisible for the default.
type Visibility map[Section]bool

func AllVisible() Visibility {
	v := Visibility{}
	for _, s := range Sections {
		v[s] = true
	}
	return v
}

func (v Visibility) Clone() Visibility {
	out := make(Visibility, len(v))
	for k, on := range v {
		out[k] = on
	}
	return out
}

func (v Visibility) SelectedCount() int {
	n := 0
	for _, s := range Sections {
		if v[s] {
			n++
		}
	}
	return n
}

func (v Visibility) AllSelected() bool {
	return v.SelectedCount() == len(Sections)
}

// ToggleAll turns every section off when all are on, otherwise on.
func (v Visibility) ToggleAll() Visibility {
	next := !v.AllSelected()
	out := Visibility{}
	for _, s := range Sections {
		out[s] = next
	}
	return out
}

// Visible lists the enabled sections in print order.
func (v Visibility) Visible() []Section {
	var out []Section
	for _, s := range Sections {
		if v[s] {
			out = append(out, s)
		}
	}
	return out
}
