package in

import (
	"context"

	"scopdash/internal/modules/report/dto"
)

type Usecase interface {
	Settings(ctx context.Context) dto.SettingsOutput
	ToggleSection(ctx context.Context, key string) (dto.SettingsOutput, error)
	ToggleAll(ctx context.Context) dto.SettingsOutput
	SetSections(ctx context.Context, keys []string) error
	HideSections(ctx context.Context, keys []string) error
	SetRecommendation(ctx context.Context, decision, conditions string) error
	Render(ctx context.Context) (dto.RenderOutput, error)
	Write(ctx context.Context, path string) (dto.WriteOutput, error)
}
