package dto

type SectionOutput struct {
	Key     string
	Label   string
	Visible bool
}

type DecisionOption struct {
	Value string
	Label string
}

type SettingsOutput struct {
	Sections      []SectionOutput
	SelectedCount int
	AllSelected   bool
	Decision      string
	DecisionLabel string
	Conditions    string
	Decisions     []DecisionOption
}

type RenderOutput struct {
	// Markdown is the full document, frontmatter included.
	Markdown string
	// Body is the report without frontmatter, for previews.
	Body     string
	FileName string
	Sections []string
}

type WriteOutput struct {
	Path     string
	Sections []string
}
