package uow

import (
	"context"

	"kindnesscup/internal/domain/cause"
	"kindnesscup/internal/domain/donation"
	"kindnesscup/internal/domain/schema"
)

// Repos are bound to one transaction.
type Repos struct {
	Causes    cause.Repository
	Donations donation.Repository
	Schema    schema.Manager
}

type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
