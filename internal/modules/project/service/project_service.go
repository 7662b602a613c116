package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"scopdash/internal/modules/project/domain"
	projectout "scopdash/internal/modules/project/port/out"
	apperrors "scopdash/internal/platform/errors"
)

// ProjectService owns the dashboard records. Every mutation validates first,
// swaps the state under the write lock and then notifies the affected
// channels outside of it.
type ProjectService struct {
	mu       sync.RWMutex
	state    domain.State
	seed     domain.State
	notifier projectout.Notifier
	logger   *zap.Logger
}

func NewProjectService(seed domain.State, notifier projectout.Notifier, logger *zap.Logger) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{state: seed.Clone(), seed: seed.Clone(), notifier: notifier, logger: logger}
}

func (s *ProjectService) Snapshot(_ context.Context) domain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *ProjectService) UpdateMetrics(_ context.Context, patch domain.MetricsPatch) error {
	if err := patch.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	s.mu.Lock()
	s.state.Metrics = patch.Apply(s.state.Metrics)
	s.mu.Unlock()

	var channels []domain.Channel
	if patch.TouchesEngagement() {
		channels = append(channels, domain.ChannelEngagement)
	}
	if patch.TouchesFinancing() {
		channels = append(channels, domain.ChannelFinancing)
	}
	s.notify("metrics", channels...)
	return nil
}

func (s *ProjectService) UpdateDocuments(_ context.Context, docs []domain.Document) error {
	if err := domain.ValidateDocuments(docs); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	s.mu.Lock()
	s.state.Documents = append([]domain.Document(nil), docs...)
	s.mu.Unlock()
	s.notify("documents", domain.ChannelSteps, domain.ChannelDocuments)
	return nil
}

func (s *ProjectService) SetDocumentStatus(_ context.Context, id int, status domain.Status) error {
	if err := status.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	s.mu.Lock()
	idx := -1
	for i, d := range s.state.Documents {
		if d.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %v %d", apperrors.ErrNotFound, domain.ErrDocumentNotFound, id)
	}
	docs := append([]domain.Document(nil), s.state.Documents...)
	docs[idx].Status = status
	s.state.Documents = docs
	s.mu.Unlock()
	s.notify("documents", domain.ChannelSteps, domain.ChannelDocuments)
	return nil
}

func (s *ProjectService) UpdateProjectData(_ context.Context, patch domain.ProjectPatch) error {
	s.mu.Lock()
	s.state.Project = patch.Apply(s.state.Project)
	s.mu.Unlock()
	s.notify("project", domain.ChannelProject)
	return nil
}

func (s *ProjectService) UpdateAnalysis(_ context.Context, patch domain.AnalysisPatch) error {
	s.mu.Lock()
	s.state.Analysis = patch.Apply(s.state.Analysis)
	s.mu.Unlock()
	s.notify("analysis", domain.ChannelAnalysis)
	return nil
}

func (s *ProjectService) UpdateNextSteps(_ context.Context, steps []domain.NextStep) error {
	s.mu.Lock()
	s.state.NextSteps = domain.RenumberNextSteps(steps)
	s.mu.Unlock()
	s.notify("next steps", domain.ChannelNextSteps)
	return nil
}

func (s *ProjectService) ResetToSeed(_ context.Context) error {
	s.mu.Lock()
	s.state = s.seed.Clone()
	s.mu.Unlock()
	s.notify("reset", domain.AllChannels...)
	return nil
}

// Bundle is a set of optional sections applied together by ApplyImport.
type Bundle struct {
	Metrics   *domain.MetricsPatch
	Project   *domain.ProjectPatch
	Documents *[]domain.Document
	Analysis  *domain.AnalysisPatch
	NextSteps *[]domain.NextStep
}

// ApplyImport validates every present section before touching the state, then
// applies metrics, project, documents, analysis and next steps in that order.
func (s *ProjectService) ApplyImport(_ context.Context, b Bundle) error {
	if b.Metrics != nil {
		if err := b.Metrics.Validate(); err != nil {
			return fmt.Errorf("%w: keyMetrics: %v", apperrors.ErrInvalidInput, err)
		}
	}
	if b.Documents != nil {
		if err := domain.ValidateDocuments(*b.Documents); err != nil {
			return fmt.Errorf("%w: documents: %v", apperrors.ErrInvalidInput, err)
		}
	}

	var channels []domain.Channel
	s.mu.Lock()
	if b.Metrics != nil {
		s.state.Metrics = b.Metrics.Apply(s.state.Metrics)
		if b.Metrics.TouchesEngagement() {
			channels = append(channels, domain.ChannelEngagement)
		}
		if b.Metrics.TouchesFinancing() {
			channels = append(channels, domain.ChannelFinancing)
		}
	}
	if b.Project != nil {
		s.state.Project = b.Project.Apply(s.state.Project)
		channels = append(channels, domain.ChannelProject)
	}
	if b.Documents != nil {
		s.state.Documents = append([]domain.Document(nil), (*b.Documents)...)
		channels = append(channels, domain.ChannelSteps, domain.ChannelDocuments)
	}
	if b.Analysis != nil {
		s.state.Analysis = b.Analysis.Apply(s.state.Analysis)
		channels = append(channels, domain.ChannelAnalysis)
	}
	if b.NextSteps != nil {
		s.state.NextSteps = domain.RenumberNextSteps(*b.NextSteps)
		channels = append(channels, domain.ChannelNextSteps)
	}
	s.mu.Unlock()
	s.notify("import", channels...)
	return nil
}

func (s *ProjectService) notify(what string, channels ...domain.Channel) {
	s.logger.Debug("project state updated", zap.String("section", what), zap.Int("channels", len(channels)))
	if s.notifier == nil {
		return
	}
	for _, ch := range channels {
		s.notifier.Notify(ch)
	}
}
