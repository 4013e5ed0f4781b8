package reportmock

import (
	"context"

	domain "kindnesscup/internal/domain/report"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	LegacyRowsFn  func(ctx context.Context, f domain.Filter) ([]domain.Row, error)
	CurrentRowsFn func(ctx context.Context, f domain.Filter, withCauses bool) ([]domain.Row, error)
}

func (m *Repo) LegacyRows(ctx context.Context, f domain.Filter) ([]domain.Row, error) {
	if m.LegacyRowsFn != nil {
		return m.LegacyRowsFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) CurrentRows(ctx context.Context, f domain.Filter, withCauses bool) ([]domain.Row, error) {
	if m.CurrentRowsFn != nil {
		return m.CurrentRowsFn(ctx, f, withCauses)
	}
	return nil, nil
}
