package out

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"scopdash/internal/modules/report/domain"
	"scopdash/internal/platform/markdown"
)

func TestWriteKeepsNotesAroundGeneratedBlock(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "reports", "innov-co-report-2026-10-18.md")
	w := NewMarkdownFileWriter()
	ctx := context.Background()

	first := domain.Document{
		Meta: []markdown.Field{{Key: "title", Value: "Innov&Co"}},
		Body: "## Key metrics\n\nEngagement 78 %\n",
	}
	require.NoError(t, w.Write(ctx, path, first))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	edited := strings.Replace(string(raw), "<!-- scopdash:report:start -->",
		"Board notes: meet the bank on Friday.\n\n<!-- scopdash:report:start -->", 1)
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))

	second := domain.Document{
		Meta: []markdown.Field{{Key: "title", Value: "Innov&Co"}, {Key: "decision", Value: "go"}},
		Body: "## Key metrics\n\nEngagement 85 %\n",
	}
	require.NoError(t, w.Write(ctx, path, second))

	raw, err = os.ReadFile(path)
	require.NoError(t, err)
	meta, body, err := markdown.SplitFrontmatter(string(raw))
	require.NoError(t, err)
	require.Equal(t, "go", meta["decision"])
	require.Contains(t, body, "Board notes: meet the bank on Friday.")
	require.Contains(t, body, "Engagement 85 %")
	require.NotContains(t, body, "Engagement 78 %")
	require.Equal(t, 1, strings.Count(body, "<!-- scopdash:report:start -->"))
}
