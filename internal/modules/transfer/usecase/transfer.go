package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	projectin "scopdash/internal/modules/project/port/in"
	"scopdash/internal/modules/transfer/domain"
	"scopdash/internal/modules/transfer/dto"
	transferin "scopdash/internal/modules/transfer/port/in"
	transferout "scopdash/internal/modules/transfer/port/out"
	"scopdash/internal/modules/transfer/service"
	"scopdash/internal/platform/clock"
)

type Interactor struct {
	project projectin.Usecase
	files   transferout.FileStore
	watcher transferout.FileWatcher
	clock   clock.Clock
	logger  *zap.Logger
}

func NewInteractor(project projectin.Usecase, files transferout.FileStore, watcher transferout.FileWatcher, clk clock.Clock, logger *zap.Logger) transferin.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{project: project, files: files, watcher: watcher, clock: clk, logger: logger}
}

func (i *Interactor) Export(ctx context.Context) ([]byte, error) {
	snap, err := i.project.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return service.Encode(snap, i.clock.Now())
}

func (i *Interactor) ExportToFile(ctx context.Context, path string) (dto.ExportOutput, error) {
	payload, err := i.Export(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	if err := i.files.Write(ctx, path, payload); err != nil {
		return dto.ExportOutput{}, err
	}
	i.logger.Info("dashboard exported", zap.String("path", path), zap.Int("bytes", len(payload)))
	return dto.ExportOutput{Path: path, Bytes: len(payload)}, nil
}

// Import applies a backup payload. Nothing is applied unless the whole
// payload decodes and every present section validates.
func (i *Interactor) Import(ctx context.Context, payload []byte) error {
	env, err := service.Decode(payload)
	if err != nil {
		return err
	}
	if env.Version != domain.FormatVersion {
		i.logger.Warn("importing backup with unexpected version", zap.String("version", env.Version))
	}
	input, err := service.ToImport(*env.Data)
	if err != nil {
		return err
	}
	if err := i.project.Import(ctx, input); err != nil {
		return err
	}
	i.logger.Info("dashboard imported", zap.Strings("sections", env.Data.Sections()))
	return nil
}

func (i *Interactor) ImportFile(ctx context.Context, path string) error {
	payload, err := i.files.Read(ctx, path)
	if err != nil {
		return err
	}
	if err := i.Import(ctx, payload); err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	return nil
}

// Check decodes a backup file without applying it.
func (i *Interactor) Check(ctx context.Context, path string) (dto.CheckOutput, error) {
	payload, err := i.files.Read(ctx, path)
	if err != nil {
		return dto.CheckOutput{}, err
	}
	env, err := service.Decode(payload)
	if err != nil {
		return dto.CheckOutput{}, err
	}
	if _, err := service.ToImport(*env.Data); err != nil {
		return dto.CheckOutput{}, err
	}
	return dto.CheckOutput{Version: env.Version, Timestamp: env.Timestamp, Sections: env.Data.Sections()}, nil
}

// Watch re-imports path every time it is written until ctx is done. Failed
// imports are logged and watching continues.
func (i *Interactor) Watch(ctx context.Context, path string) error {
	if i.watcher == nil {
		return fmt.Errorf("file watcher is not configured")
	}
	i.logger.Info("watching backup file", zap.String("path", path))
	return i.watcher.Watch(ctx, path, func() {
		if err := i.ImportFile(ctx, path); err != nil {
			i.logger.Warn("watched import failed", zap.String("path", path), zap.Error(err))
		}
	})
}

// DefaultPath is today's backup file inside dir.
func (i *Interactor) DefaultPath(dir string) string {
	return filepath.Join(dir, domain.DefaultFileName(i.clock.Now()))
}
