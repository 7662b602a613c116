package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEngagementOutOfRange = errors.New("employee engagement must be between 0 and 100")
	ErrNegativeFinancing    = errors.New("financing amounts must be non-negative")
	ErrUnknownStatus        = errors.New("unknown document status")
	ErrDuplicateDocumentID  = errors.New("duplicate document id")
	ErrDocumentNotFound     = errors.New("document not found")
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStatus, string(s))
	}
}

func (s Status) Label() string {
	switch s {
	case StatusCompleted:
		return "Completed"
	case StatusInProgress:
		return "In progress"
	case StatusPending:
		return "Pending"
	default:
		return string(s)
	}
}

type Project struct {
	Name       string
	Editor     string
	Date       time.Time
	Recipients string
}

// Metrics holds the settable key metrics only. Step counts are derived from
// the document list, see DeriveKeyMetrics.
type Metrics struct {
	EmployeeEngagement int
	SecuredFinancing   float64
	TotalFinancing     float64
}

type Document struct {
	ID     int
	Title  string
	Status Status
}

type Analysis struct {
	Strengths       []string
	VigilancePoints []string
}

type NextStep struct {
	ID        int
	Task      string
	Deadline  string
	Completed bool
}

// State is the full dashboard record set.
type State struct {
	Project   Project
	Metrics   Metrics
	Documents []Document
	Analysis  Analysis
	NextSteps []NextStep
}

func (s State) Clone() State {
	return State{
		Project:   s.Project,
		Metrics:   s.Metrics,
		Documents: append([]Document(nil), s.Documents...),
		Analysis: Analysis{
			Strengths:       append([]string(nil), s.Analysis.Strengths...),
			VigilancePoints: append([]string(nil), s.Analysis.VigilancePoints...),
		},
		NextSteps: append([]NextStep(nil), s.NextSteps...),
	}
}

type MetricsPatch struct {
	EmployeeEngagement *int
	SecuredFinancing   *float64
	TotalFinancing     *float64
}

func (p MetricsPatch) Validate() error {
	if p.EmployeeEngagement != nil && (*p.EmployeeEngagement < 0 || *p.EmployeeEngagement > 100) {
		return ErrEngagementOutOfRange
	}
	if p.SecuredFinancing != nil && *p.SecuredFinancing < 0 {
		return ErrNegativeFinancing
	}
	if p.TotalFinancing != nil && *p.TotalFinancing < 0 {
		return ErrNegativeFinancing
	}
	return nil
}

func (p MetricsPatch) Apply(m Metrics) Metrics {
	if p.EmployeeEngagement != nil {
		m.EmployeeEngagement = *p.EmployeeEngagement
	}
	if p.SecuredFinancing != nil {
		m.SecuredFinancing = *p.SecuredFinancing
	}
	if p.TotalFinancing != nil {
		m.TotalFinancing = *p.TotalFinancing
	}
	return m
}

func (p MetricsPatch) TouchesEngagement() bool { return p.EmployeeEngagement != nil }

func (p MetricsPatch) TouchesFinancing() bool {
	return p.SecuredFinancing != nil || p.TotalFinancing != nil
}

type ProjectPatch struct {
	Name       *string
	Editor     *string
	Date       *time.Time
	Recipients *string
}

func (p ProjectPatch) Apply(pr Project) Project {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Editor != nil {
		pr.Editor = *p.Editor
	}
	if p.Date != nil {
		pr.Date = *p.Date
	}
	if p.Recipients != nil {
		pr.Recipients = *p.Recipients
	}
	return pr
}

type AnalysisPatch struct {
	Strengths       *[]string
	VigilancePoints *[]string
}

func (p AnalysisPatch) Apply(a Analysis) Analysis {
	if p.Strengths != nil {
		a.Strengths = append([]string(nil), (*p.Strengths)...)
	}
	if p.VigilancePoints != nil {
		a.VigilancePoints = append([]string(nil), (*p.VigilancePoints)...)
	}
	return a
}

// ValidateDocuments checks statuses and id uniqueness.
func ValidateDocuments(docs []Document) error {
	seen := make(map[int]struct{}, len(docs))
	for _, d := range docs {
		if err := d.Status.Validate(); err != nil {
			return fmt.Errorf("document %d: %w", d.ID, err)
		}
		if _, dup := seen[d.ID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateDocumentID, d.ID)
		}
		seen[d.ID] = struct{}{}
	}
	return nil
}

// RenumberNextSteps assigns ids 1..n by position and trims text fields.
func RenumberNextSteps(steps []NextStep) []NextStep {
	out := make([]NextStep, len(steps))
	for i, s := range steps {
		out[i] = NextStep{ID: i + 1, Task: strings.TrimSpace(s.Task), Deadline: strings.TrimSpace(s.Deadline), Completed: s.Completed}
	}
	return out
}
