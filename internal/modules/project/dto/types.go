package dto

import "time"

// Form value keys for the settable metrics.
const (
	KeyEngagement = "employeeEngagement"
	KeySecured    = "securedFinancing"
	KeyTotal      = "totalFinancing"
)

type ProjectOutput struct {
	Name       string
	Editor     string
	Date       time.Time
	Recipients string
}

type MetricsOutput struct {
	EmployeeEngagement int
	SecuredFinancing   float64
	TotalFinancing     float64
	StepsCompleted     int
	TotalSteps         int
	FinancingPercent   float64
	RemainingFinancing float64
}

type DocumentOutput struct {
	ID          int
	Title       string
	Status      string
	StatusLabel string
}

type StatusOption struct {
	Value string
	Label string
}

type NextStepOutput struct {
	ID        int
	Task      string
	Deadline  string
	Completed bool
}

type AnalysisOutput struct {
	Strengths       []string
	VigilancePoints []string
}

type DashboardOutput struct {
	Project   ProjectOutput
	Metrics   MetricsOutput
	Documents []DocumentOutput
	Analysis  AnalysisOutput
	NextSteps []NextStepOutput
	Statuses  []StatusOption
}

type UpdateMetricsInput struct {
	EmployeeEngagement *int
	SecuredFinancing   *float64
	TotalFinancing     *float64
}

type UpdateProjectInput struct {
	Name       *string
	Editor     *string
	Date       *time.Time
	Recipients *string
}

type DocumentInput struct {
	ID     int
	Title  string
	Status string
}

type SetDocumentStatusInput struct {
	ID     int
	Status string
}

type UpdateAnalysisInput struct {
	Strengths       *[]string
	VigilancePoints *[]string
}

type NextStepInput struct {
	Task      string
	Deadline  string
	Completed bool
}

// ImportInput carries the sections of an imported bundle. Nil sections are
// left untouched.
type ImportInput struct {
	Metrics   *UpdateMetricsInput
	Project   *UpdateProjectInput
	Documents *[]DocumentInput
	Analysis  *UpdateAnalysisInput
	NextSteps *[]NextStepInput
}
