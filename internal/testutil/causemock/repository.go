package causemock

import (
	"context"

	domain "kindnesscup/internal/domain/cause"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	ListActiveFn func(ctx context.Context) ([]domain.Cause, error)
	IsActiveFn   func(ctx context.Context, id uint64) (bool, error)
}

func (m *Repo) ListActive(ctx context.Context) ([]domain.Cause, error) {
	if m.ListActiveFn != nil {
		return m.ListActiveFn(ctx)
	}
	return nil, nil
}

func (m *Repo) IsActive(ctx context.Context, id uint64) (bool, error) {
	if m.IsActiveFn != nil {
		return m.IsActiveFn(ctx, id)
	}
	return false, nil
}
