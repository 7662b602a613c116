package domain

import (
	"fmt"
	"time"
)

const FormatVersion = "1.0"

// Envelope is the backup file layout. Sections inside Data are optional on
// import; export always writes all of them. Derived step counts are never
// written.
type Envelope struct {
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Data      *Data     `json:"data"`
}

type Data struct {
	KeyMetrics  *KeyMetrics  `json:"keyMetrics,omitempty"`
	ProjectData *ProjectData `json:"projectData,omitempty"`
	Documents   *[]Document  `json:"documents,omitempty"`
	Analysis    *Analysis    `json:"analysis,omitempty"`
	NextSteps   *[]NextStep  `json:"nextSteps,omitempty"`
}

type KeyMetrics struct {
	EmployeeEngagement *float64 `json:"employeeEngagement,omitempty"`
	SecuredFinancing   *float64 `json:"securedFinancing,omitempty"`
	TotalFinancing     *float64 `json:"totalFinancing,omitempty"`
}

type ProjectData struct {
	ProjectName *string    `json:"projectName,omitempty"`
	Editor      *string    `json:"editor,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Recipients  *string    `json:"recipients,omitempty"`
}

type Document struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

type Analysis struct {
	Strengths       *[]string `json:"strengths,omitempty"`
	VigilancePoints *[]string `json:"vigilancePoints,omitempty"`
}

type NextStep struct {
	ID        int    `json:"id"`
	Task      string `json:"task"`
	Deadline  string `json:"deadline"`
	Completed bool   `json:"completed"`
}

// Sections names the data sections present, in apply order.
func (d Data) Sections() []string {
	var out []string
	if d.KeyMetrics != nil {
		out = append(out, "keyMetrics")
	}
	if d.ProjectData != nil {
		out = append(out, "projectData")
	}
	if d.Documents != nil {
		out = append(out, "documents")
	}
	if d.Analysis != nil {
		out = append(out, "analysis")
	}
	if d.NextSteps != nil {
		out = append(out, "nextSteps")
	}
	return out
}

// DefaultFileName is the backup name for a given day.
func DefaultFileName(day time.Time) string {
	return fmt.Sprintf("scop-dashboard-backup-%s.json", day.Format("2006-01-02"))
}
