package report

import "context"

type Repository interface {
	// Rows from DonationsWeb inside the window, newest first
	LegacyRows(ctx context.Context, f Filter) ([]Row, error)

	// Rows from Donations inside the window, newest first. withCauses joins
	// Causes for a readable title.
	CurrentRows(ctx context.Context, f Filter, withCauses bool) ([]Row, error)
}
