package out

import (
	"context"

	"scopdash/internal/modules/report/domain"
)

type ReportWriter interface {
	Write(ctx context.Context, path string, doc domain.Document) error
}
