package donation

import "context"

type Repository interface {
	Create(ctx context.Context, d *Donation) error

	// Count rows in Donations
	Count(ctx context.Context) (int64, error)

	// CopyFromLegacy inserts every DonationsWeb row into Donations with no
	// cause and returns the number of rows copied.
	CopyFromLegacy(ctx context.Context) (int64, error)
}
