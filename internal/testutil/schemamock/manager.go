package schemamock

import (
	"context"

	"kindnesscup/internal/domain/schema"
)

var _ schema.Manager = (*Manager)(nil)

// Manager is a function-backed mock that satisfies schema.Manager. Tables
// answers HasTable when HasTableFn is nil.
type Manager struct {
	PingFn                   func(ctx context.Context) error
	HasTableFn               func(ctx context.Context, table string) bool
	EnsureDonationsFn        func(ctx context.Context, withCauseFK bool) error
	EnsureMigrationMarkersFn func(ctx context.Context) error
	ClaimMigrationFn         func(ctx context.Context, name string) (bool, error)

	Tables map[string]bool
}

func WithTables(tables ...string) *Manager {
	m := &Manager{Tables: map[string]bool{}}
	for _, t := range tables {
		m.Tables[t] = true
	}
	return m
}

func (m *Manager) Ping(ctx context.Context) error {
	if m.PingFn != nil {
		return m.PingFn(ctx)
	}
	return nil
}

func (m *Manager) HasTable(ctx context.Context, table string) bool {
	if m.HasTableFn != nil {
		return m.HasTableFn(ctx, table)
	}
	return m.Tables[table]
}

func (m *Manager) EnsureDonations(ctx context.Context, withCauseFK bool) error {
	if m.EnsureDonationsFn != nil {
		return m.EnsureDonationsFn(ctx, withCauseFK)
	}
	return nil
}

func (m *Manager) EnsureMigrationMarkers(ctx context.Context) error {
	if m.EnsureMigrationMarkersFn != nil {
		return m.EnsureMigrationMarkersFn(ctx)
	}
	return nil
}

func (m *Manager) ClaimMigration(ctx context.Context, name string) (bool, error) {
	if m.ClaimMigrationFn != nil {
		return m.ClaimMigrationFn(ctx, name)
	}
	return false, nil
}
