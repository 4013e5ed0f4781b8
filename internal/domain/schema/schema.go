package schema

import "context"

// Manager checks for and lazily creates the tables the service writes to.
type Manager interface {
	// Ping checks that storage is reachable at all.
	Ping(ctx context.Context) error

	// HasTable never fails: a lookup error counts as "absent".
	HasTable(ctx context.Context, table string) bool

	// EnsureDonations creates Donations if absent, with a foreign key to
	// Causes when withCauseFK is set. Safe to call concurrently.
	EnsureDonations(ctx context.Context, withCauseFK bool) error

	// EnsureMigrationMarkers creates the table that records claimed data migrations.
	EnsureMigrationMarkers(ctx context.Context) error

	// ClaimMigration records name as applied. It returns true only for the
	// first caller; later callers (or ones racing the first) get false.
	ClaimMigration(ctx context.Context, name string) (bool, error)
}
