package domain

import "time"

// Seed returns the initial dashboard content dated at now.
func Seed(now time.Time) State {
	return State{
		Project: Project{
			Name:       "Transmission SCOP 'Innov&Co'",
			Editor:     "Cabinet AuditPlus",
			Date:       now,
			Recipients: "Steering committee, Managing director, Employees",
		},
		Metrics: Metrics{
			EmployeeEngagement: 78,
			SecuredFinancing:   350000,
			TotalFinancing:     500000,
		},
		Documents: []Document{
			{ID: 1, Title: "Initial diagnosis", Status: StatusCompleted},
			{ID: 2, Title: "Company valuation", Status: StatusCompleted},
			{ID: 3, Title: "Provisional financing plan", Status: StatusCompleted},
			{ID: 4, Title: "Organisational analysis", Status: StatusInProgress},
			{ID: 5, Title: "Employee interview feedback", Status: StatusCompleted},
			{ID: 6, Title: "Bank letters of intent", Status: StatusPending},
		},
		Analysis: Analysis{
			Strengths: []string{
				"Strong team cohesion and employee motivation.",
				"Unique know-how recognised in the market.",
				"Stable order book for the next 12 months.",
				"First agreements in principle from banking partners.",
			},
			VigilancePoints: []string{
				"Dependence on one major customer (35% of revenue).",
				"Management and finance skills need strengthening.",
				"The financing plan is not yet closed.",
				"Some key employees are still hesitant to invest.",
			},
		},
		NextSteps: []NextStep{
			{ID: 1, Task: "Close the financing round", Deadline: "3 weeks"},
			{ID: 2, Task: "Draft the final SCOP articles of association", Deadline: "5 weeks"},
			{ID: 3, Task: "Organise training for future members", Deadline: "6 weeks"},
			{ID: 4, Task: "Prepare the founding general meeting", Deadline: "8 weeks"},
		},
	}
}
