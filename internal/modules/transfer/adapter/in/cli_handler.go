package in

import (
	"context"

	"scopdash/internal/modules/transfer/dto"
	transferin "scopdash/internal/modules/transfer/port/in"
)

type CLIHandler struct {
	usecase transferin.Usecase
}

func NewCLIHandler(usecase transferin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Export(ctx context.Context) ([]byte, error) {
	return h.usecase.Export(ctx)
}

func (h CLIHandler) ExportToFile(ctx context.Context, path string) (dto.ExportOutput, error) {
	return h.usecase.ExportToFile(ctx, path)
}

func (h CLIHandler) ImportFile(ctx context.Context, path string) error {
	return h.usecase.ImportFile(ctx, path)
}

func (h CLIHandler) Check(ctx context.Context, path string) (dto.CheckOutput, error) {
	return h.usecase.Check(ctx, path)
}

func (h CLIHandler) Watch(ctx context.Context, path string) error {
	return h.usecase.Watch(ctx, path)
}

func (h CLIHandler) DefaultPath(dir string) string {
	return h.usecase.DefaultPath(dir)
}
