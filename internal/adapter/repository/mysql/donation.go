package mysql

import (
	"context"

	donationDomain "kindnesscup/internal/domain/donation"

	"gorm.io/gorm"
)

const copyLegacySQL = `INSERT INTO Donations (cause_id, donor_name, donor_email, amount, donation_date, payment_method, frequency, is_anonymous)
SELECT NULL, donor_name, donor_email, amount, donation_date, payment_method, frequency, is_anonymous FROM DonationsWeb`

type DonationRepository struct{ db *gorm.DB }

func NewDonationRepository(db *gorm.DB) *DonationRepository { return &DonationRepository{db: db} }

func (r *DonationRepository) Create(ctx context.Context, d *donationDomain.Donation) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DonationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&donationDomain.Donation{}).Count(&n)
	return n, res.Error
}

func (r *DonationRepository) CopyFromLegacy(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Exec(copyLegacySQL)
	return res.RowsAffected, res.Error
}
