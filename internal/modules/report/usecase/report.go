package usecase

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	projectin "scopdash/internal/modules/project/port/in"
	"scopdash/internal/modules/report/domain"
	"scopdash/internal/modules/report/dto"
	reportin "scopdash/internal/modules/report/port/in"
	reportout "scopdash/internal/modules/report/port/out"
	"scopdash/internal/modules/report/service"
	"scopdash/internal/platform/clock"
	apperrors "scopdash/internal/platform/errors"
	"scopdash/internal/platform/markdown"
)

// Interactor holds the print settings in memory. They are never exported
// with the dashboard data.
type Interactor struct {
	mu      sync.Mutex
	vis     domain.Visibility
	rec     domain.Recommendation
	project projectin.Usecase
	writer  reportout.ReportWriter
	clock   clock.Clock
	logger  *zap.Logger
}

// NewInteractor starts with every section visible except hidden.
func NewInteractor(project projectin.Usecase, writer reportout.ReportWriter, clk clock.Clock, logger *zap.Logger, hidden []string) (reportin.Usecase, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	vis := domain.AllVisible()
	for _, key := range hidden {
		s := domain.Section(key)
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		vis[s] = false
	}
	return &Interactor{vis: vis, project: project, writer: writer, clock: clk, logger: logger}, nil
}

func (i *Interactor) Settings(_ context.Context) dto.SettingsOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.settingsLocked()
}

func (i *Interactor) ToggleSection(_ context.Context, key string) (dto.SettingsOutput, error) {
	s := domain.Section(key)
	if err := s.Validate(); err != nil {
		return dto.SettingsOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	next := i.vis.Clone()
	next[s] = !next[s]
	i.vis = next
	return i.settingsLocked(), nil
}

func (i *Interactor) ToggleAll(_ context.Context) dto.SettingsOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.vis = i.vis.ToggleAll()
	return i.settingsLocked()
}

// SetSections shows exactly keys.
func (i *Interactor) SetSections(_ context.Context, keys []string) error {
	next, err := visibilityOf(keys)
	if err != nil {
		return err
	}
	i.mu.Lock()
	i.vis = next
	i.mu.Unlock()
	return nil
}

func (i *Interactor) HideSections(_ context.Context, keys []string) error {
	hidden, err := visibilityOf(keys)
	if err != nil {
		return err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	next := i.vis.Clone()
	for s, on := range hidden {
		if on {
			next[s] = false
		}
	}
	i.vis = next
	return nil
}

func (i *Interactor) SetRecommendation(_ context.Context, decision, conditions string) error {
	rec, err := domain.NewRecommendation(domain.Decision(decision), conditions)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	i.mu.Lock()
	i.rec = rec
	i.mu.Unlock()
	return nil
}

func (i *Interactor) Render(ctx context.Context) (dto.RenderOutput, error) {
	doc, name, err := i.render(ctx)
	if err != nil {
		return dto.RenderOutput{}, err
	}
	full, err := markdown.RenderFrontmatter(doc.Meta, doc.Body)
	if err != nil {
		return dto.RenderOutput{}, err
	}
	return dto.RenderOutput{Markdown: full, Body: doc.Body, FileName: name, Sections: sectionsOf(doc)}, nil
}

func (i *Interactor) Write(ctx context.Context, path string) (dto.WriteOutput, error) {
	doc, _, err := i.render(ctx)
	if err != nil {
		return dto.WriteOutput{}, err
	}
	if err := i.writer.Write(ctx, path, doc); err != nil {
		return dto.WriteOutput{}, err
	}
	sections := sectionsOf(doc)
	i.logger.Info("report written", zap.String("path", path), zap.Strings("sections", sections))
	return dto.WriteOutput{Path: path, Sections: sections}, nil
}

func (i *Interactor) render(ctx context.Context) (domain.Document, string, error) {
	snap, err := i.project.Snapshot(ctx)
	if err != nil {
		return domain.Document{}, "", err
	}
	i.mu.Lock()
	vis, rec := i.vis.Clone(), i.rec
	i.mu.Unlock()
	now := i.clock.Now()
	doc, err := service.Render(snap, vis, rec, now)
	if err != nil {
		return domain.Document{}, "", err
	}
	return doc, service.FileName(snap.Project.Name, now), nil
}

func (i *Interactor) settingsLocked() dto.SettingsOutput {
	out := dto.SettingsOutput{
		SelectedCount: i.vis.SelectedCount(),
		AllSelected:   i.vis.AllSelected(),
		Decision:      string(i.rec.Decision),
		DecisionLabel: i.rec.Decision.Label(),
		Conditions:    i.rec.Conditions,
	}
	for _, s := range domain.Sections {
		out.Sections = append(out.Sections, dto.SectionOutput{Key: string(s), Label: s.Label(), Visible: i.vis[s]})
	}
	for _, d := range domain.Decisions {
		out.Decisions = append(out.Decisions, dto.DecisionOption{Value: string(d), Label: d.Label()})
	}
	return out
}

func visibilityOf(keys []string) (domain.Visibility, error) {
	vis := domain.Visibility{}
	for _, key := range keys {
		s := domain.Section(key)
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		vis[s] = true
	}
	return vis, nil
}

func sectionsOf(doc domain.Document) []string {
	for _, f := range doc.Meta {
		if f.Key == "sections" {
			if keys, ok := f.Value.([]string); ok {
				return keys
			}
		}
	}
	return nil
}
