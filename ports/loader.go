package ports

import (
	"context"

	"logscope/domain/logs"
)

// DatasetLoader reads one dataset kind into a typed table. Every call
// re-reads the source file; nothing is cached between sessions.
type DatasetLoader interface {
	Load(ctx context.Context, kind logs.Kind) (*logs.Table, error)
}
