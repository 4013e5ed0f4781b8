package cause

import "context"

type Repository interface {
	// Active causes ordered by title
	ListActive(ctx context.Context) ([]Cause, error)

	// IsActive reports whether id names an existing, active cause
	IsActive(ctx context.Context, id uint64) (bool, error)
}
