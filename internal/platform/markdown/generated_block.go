package markdown

import (
	"fmt"
	"strings"
)

// BlockMarkers returns the HTML comments that fence a generated block.
func BlockMarkers(name string) (string, string) {
	return fmt.Sprintf("<!-- scopdash:%s:start -->", name), fmt.Sprintf("<!-- scopdash:%s:end -->", name)
}

// UpsertBlock replaces the named generated block in body, or appends it when
// body has none. Text outside the markers is kept as written.
func UpsertBlock(body, name, generated string) string {
	startMarker, endMarker := BlockMarkers(name)
	block := startMarker + "\n" + strings.TrimRight(generated, "\n") + "\n" + endMarker

	start := strings.Index(body, startMarker)
	if start >= 0 {
		if end := strings.Index(body[start:], endMarker); end >= 0 {
			end += start + len(endMarker)
			return body[:start] + block + body[end:]
		}
	}
	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}
