package markdown

import (
	"strings"
	"testing"
)

func TestRenderFrontmatterKeepsFieldOrder(t *testing.T) {
	t.Parallel()
	out, err := RenderFrontmatter([]Field{{Key: "title", Value: "Report"}, {Key: "editor", Value: "A"}, {Key: "sections", Value: []string{"analysis"}}}, "# Body\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, "---\ntitle: Report\neditor: A\n") {
		t.Fatalf("unexpected field order:\n%s", out)
	}
	meta, body, err := SplitFrontmatter(out)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["editor"] != "A" || body != "\n# Body\n" {
		t.Fatalf("unexpected split: %v %q", meta, body)
	}
}

func TestSplitFrontmatterWithoutHeader(t *testing.T) {
	t.Parallel()
	meta, body, err := SplitFrontmatter("plain")
	if err != nil || len(meta) != 0 || body != "plain" {
		t.Fatalf("unexpected result: %v %q %v", meta, body, err)
	}
	if _, _, err := SplitFrontmatter("---\ntitle: x\n"); err == nil {
		t.Fatalf("expected error for unterminated frontmatter")
	}
}

func TestUpsertBlockPreservesSurroundingNotes(t *testing.T) {
	t.Parallel()
	first := UpsertBlock("My notes\n", "report", "v1")
	start, end := BlockMarkers("report")
	if first != "My notes\n\n"+start+"\nv1\n"+end+"\n" {
		t.Fatalf("unexpected append:\n%s", first)
	}
	second := UpsertBlock(first+"Footer\n", "report", "v2\n")
	if strings.Contains(second, "v1") || !strings.Contains(second, "\nv2\n") {
		t.Fatalf("block not replaced:\n%s", second)
	}
	if !strings.HasPrefix(second, "My notes\n") || !strings.HasSuffix(second, "Footer\n") {
		t.Fatalf("surrounding text lost:\n%s", second)
	}
	if UpsertBlock("  ", "report", "x") != start+"\nx\n"+end+"\n" {
		t.Fatalf("blank body must become the block alone")
	}
}
