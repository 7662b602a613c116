package out

import "context"

type FileStore interface {
	Read(ctx context.Context, path string) ([]byte, error)
	Write(ctx context.Context, path string, payload []byte) error
}

// FileWatcher calls onChange after path is written. Watch blocks until ctx is
// done.
type FileWatcher interface {
	Watch(ctx context.Context, path string, onChange func()) error
}
