package in

import (
	"context"

	"scopdash/internal/modules/report/dto"
	reportin "scopdash/internal/modules/report/port/in"
)

type CLIHandler struct {
	usecase reportin.Usecase
}

func NewCLIHandler(usecase reportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Configure applies the print options of one command invocation. Empty
// sections keep the current selection.
func (h CLIHandler) Configure(ctx context.Context, sections, hide []string, decision, conditions string) error {
	if len(sections) > 0 {
		if err := h.usecase.SetSections(ctx, sections); err != nil {
			return err
		}
	}
	if len(hide) > 0 {
		if err := h.usecase.HideSections(ctx, hide); err != nil {
			return err
		}
	}
	if decision != "" {
		return h.usecase.SetRecommendation(ctx, decision, conditions)
	}
	return nil
}

func (h CLIHandler) Render(ctx context.Context) (dto.RenderOutput, error) {
	return h.usecase.Render(ctx)
}

func (h CLIHandler) Write(ctx context.Context, path string) (dto.WriteOutput, error) {
	return h.usecase.Write(ctx, path)
}
