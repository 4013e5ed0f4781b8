package donationmock

import (
	"context"

	domain "kindnesscup/internal/domain/donation"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Created keeps every donation passed to Create when CreateFn is nil.
type Repo struct {
	CreateFn         func(ctx context.Context, d *domain.Donation) error
	CountFn          func(ctx context.Context) (int64, error)
	CopyFromLegacyFn func(ctx context.Context) (int64, error)

	Created []*domain.Donation
}

func (m *Repo) Create(ctx context.Context, d *domain.Donation) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	d.ID = uint64(len(m.Created) + 1)
	m.Created = append(m.Created, d)
	return nil
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return int64(len(m.Created)), nil
}

func (m *Repo) CopyFromLegacy(ctx context.Context) (int64, error) {
	if m.CopyFromLegacyFn != nil {
		return m.CopyFromLegacyFn(ctx)
	}
	return 0, context.Canceled
}
