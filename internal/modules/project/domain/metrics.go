package domain

// KeyMetrics is the read model shown on the dashboard: the settable metrics
// plus the step counts derived from the documents.
type KeyMetrics struct {
	EmployeeEngagement int
	SecuredFinancing   float64
	TotalFinancing     float64
	StepsCompleted     int
	TotalSteps         int
}

func ComputeStepsCompleted(docs []Document) int {
	n := 0
	for _, d := range docs {
		if d.Status == StatusCompleted {
			n++
		}
	}
	return n
}

func ComputeTotalSteps(docs []Document) int {
	return len(docs)
}

func DeriveKeyMetrics(m Metrics, docs []Document) KeyMetrics {
	return KeyMetrics{
		EmployeeEngagement: m.EmployeeEngagement,
		SecuredFinancing:   m.SecuredFinancing,
		TotalFinancing:     m.TotalFinancing,
		StepsCompleted:     ComputeStepsCompleted(docs),
		TotalSteps:         ComputeTotalSteps(docs),
	}
}

// FinancingPercent is secured over total, 0 when total is 0.
func (k KeyMetrics) FinancingPercent() float64 {
	if k.TotalFinancing <= 0 {
		return 0
	}
	return k.SecuredFinancing / k.TotalFinancing * 100
}

// RemainingFinancing is never negative even when secured exceeds total.
func (k KeyMetrics) RemainingFinancing() float64 {
	if r := k.TotalFinancing - k.SecuredFinancing; r > 0 {
		return r
	}
	return 0
}
