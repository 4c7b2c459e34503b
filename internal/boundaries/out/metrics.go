package out

import (
	"context"
	"time"

	"github.com/bnema/keyflush/internal/domain"
)

// RunMetrics records the outcome of task runs.
type RunMetrics interface {
	RecordRun(ctx context.Context, task string, status domain.RunStatus, duration time.Duration, keyspaces int)
}
