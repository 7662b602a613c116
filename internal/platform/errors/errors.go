package apperrors

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrInvalidFormat  = errors.New("invalid file format")
	ErrWorkflowClosed = errors.New("edit workflow is not open")
	ErrWorkflowBusy   = errors.New("edit workflow is saving")
	ErrSaveCancelled  = errors.New("save cancelled")
)
