package in

import (
	"context"

	"scopdash/internal/modules/transfer/dto"
)

type Usecase interface {
	Export(ctx context.Context) ([]byte, error)
	ExportToFile(ctx context.Context, path string) (dto.ExportOutput, error)
	Import(ctx context.Context, payload []byte) error
	ImportFile(ctx context.Context, path string) error
	Check(ctx context.Context, path string) (dto.CheckOutput, error)
	Watch(ctx context.Context, path string) error
	DefaultPath(dir string) string
}
