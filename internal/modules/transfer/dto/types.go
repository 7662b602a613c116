package dto

import "time"

type ExportOutput struct {
	Path  string
	Bytes int
}

type CheckOutput struct {
	Version   string
	Timestamp time.Time
	Sections  []string
}
