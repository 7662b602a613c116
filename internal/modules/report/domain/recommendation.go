package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownDecision = errors.New("unknown decision")

type Decision string

const (
	DecisionNone          Decision = ""
	DecisionGo            Decision = "go"
	DecisionNoGo          Decision = "no_go"
	DecisionConditionalGo Decision = "conditional_go"
)

var Decisions = []Decision{DecisionGo, DecisionNoGo, DecisionConditionalGo}

func (d Decision) Validate() error {
	switch d {
	case DecisionNone, DecisionGo, DecisionNoGo, DecisionConditionalGo:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDecision, string(d))
	}
}

func (d Decision) Label() string {
	switch d {
	case DecisionGo:
		return "Go"
	case DecisionNoGo:
		return "No Go"
	case DecisionConditionalGo:
		return "Conditional Go"
	default:
		return "Pending decision"
	}
}

// Recommendation is the steering committee decision printed at the end of a
// report.
type Recommendation struct {
	Decision   Decision
	Conditions string
}

// NewRecommendation keeps conditions only for a conditional go.
func NewRecommendation(decision Decision, conditions string) (Recommendation, error) {
	if err := decision.Validate(); err != nil {
		return Recommendation{}, err
	}
	rec := Recommendation{Decision: decision}
	if decision == DecisionConditionalGo {
		rec.Conditions = strings.TrimSpace(conditions)
	}
	return rec, nil
}
