package domain

import "scopdash/internal/platform/markdown"

// BlockName fences the generated part of a written report so notes added
// around it survive a rewrite.
const BlockName = "report"

// Document is a rendered report before it is written.
type Document struct {
	Meta []markdown.Field
	Body string
}
