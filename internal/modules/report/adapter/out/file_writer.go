package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"scopdash/internal/modules/report/domain"
	reportout "scopdash/internal/modules/report/port/out"
	"scopdash/internal/platform/markdown"
)

// MarkdownFileWriter writes reports as markdown files. Rewriting an existing
// report replaces its frontmatter and generated block and keeps any notes
// written around the block.
type MarkdownFileWriter struct{}

func NewMarkdownFileWriter() reportout.ReportWriter {
	return MarkdownFileWriter{}
}

func (MarkdownFileWriter) Write(_ context.Context, path string, doc domain.Document) error {
	existing := ""
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		_, body, splitErr := markdown.SplitFrontmatter(string(raw))
		if splitErr != nil {
			return fmt.Errorf("read existing report: %w", splitErr)
		}
		existing = body
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("read existing report: %w", err)
	}

	body := markdown.UpsertBlock(existing, domain.BlockName, doc.Body)
	rendered, err := markdown.RenderFrontmatter(doc.Meta, body)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
