package in

import (
	"context"
	"fmt"
	"strings"

	"scopdash/internal/modules/project/dto"
	projectin "scopdash/internal/modules/project/port/in"
	apperrors "scopdash/internal/platform/errors"
	"scopdash/internal/platform/form"
)

type CLIHandler struct {
	usecase projectin.Usecase
}

func NewCLIHandler(usecase projectin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Snapshot(ctx context.Context) (dto.DashboardOutput, error) {
	return h.usecase.Snapshot(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) error {
	return h.usecase.Reset(ctx)
}

// Edit runs the edit form for target headless: it opens wf with the current
// values, applies assignments given as key=value and submits.
func (h CLIHandler) Edit(ctx context.Context, wf *form.Workflow, target string, assignments []string) error {
	cfg, err := FormFor(ctx, h.usecase, target)
	if err != nil {
		return err
	}
	if err := wf.Open(cfg); err != nil {
		return err
	}
	defer wf.Cancel()
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("%w: assignment %q must be key=value", apperrors.ErrInvalidInput, a)
		}
		// Shell input cannot carry raw newlines easily.
		value = strings.ReplaceAll(value, `\n`, "\n")
		if err := wf.Set(strings.TrimSpace(key), value); err != nil {
			return err
		}
	}
	return wf.Submit(ctx)
}
