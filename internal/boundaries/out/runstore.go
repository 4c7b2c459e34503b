package out

import (
	"context"

	"github.com/bnema/keyflush/internal/domain"
)

// RunStore persists task run outcomes.
type RunStore interface {
	Save(ctx context.Context, record domain.RunRecord) error
	// List returns up to limit records, newest first. A limit <= 0 returns all records.
	List(ctx context.Context, limit int) ([]domain.RunRecord, error)
	// Prune keeps the newest keep records and returns how many were deleted.
	Prune(ctx context.Context, keep int) (int, error)
}
