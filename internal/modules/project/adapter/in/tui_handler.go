package in

import (
	"context"

	"scopdash/internal/modules/project/dto"
	projectin "scopdash/internal/modules/project/port/in"
	"scopdash/internal/platform/form"
)

type TUIHandler struct {
	usecase projectin.Usecase
}

func NewTUIHandler(usecase projectin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Snapshot(ctx context.Context) (dto.DashboardOutput, error) {
	return h.usecase.Snapshot(ctx)
}

func (h TUIHandler) EditForm(ctx context.Context, target string) (form.Config, error) {
	return FormFor(ctx, h.usecase, target)
}

func (h TUIHandler) Reset(ctx context.Context) error {
	return h.usecase.Reset(ctx)
}
