package in

import (
	"context"

	"scopdash/internal/modules/report/dto"
	reportin "scopdash/internal/modules/report/port/in"
)

type TUIHandler struct {
	usecase reportin.Usecase
}

func NewTUIHandler(usecase reportin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Settings(ctx context.Context) dto.SettingsOutput {
	return h.usecase.Settings(ctx)
}

func (h TUIHandler) ToggleSection(ctx context.Context, key string) (dto.SettingsOutput, error) {
	return h.usecase.ToggleSection(ctx, key)
}

func (h TUIHandler) ToggleAll(ctx context.Context) dto.SettingsOutput {
	return h.usecase.ToggleAll(ctx)
}

func (h TUIHandler) SetRecommendation(ctx context.Context, decision, conditions string) error {
	return h.usecase.SetRecommendation(ctx, decision, conditions)
}

func (h TUIHandler) Render(ctx context.Context) (dto.RenderOutput, error) {
	return h.usecase.Render(ctx)
}

func (h TUIHandler) Write(ctx context.Context, path string) (dto.WriteOutput, error) {
	return h.usecase.Write(ctx, path)
}
