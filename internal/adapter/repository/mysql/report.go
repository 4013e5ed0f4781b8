package mysql

import (
	"context"

	reportDomain "kindnesscup/internal/domain/report"

	"gorm.io/gorm"
)

const (
	legacyColumns  = "donation_id AS id, donor_name, donor_email, amount, donation_date, payment_method, frequency, is_anonymous"
	currentColumns = "d.donation_id AS id, d.donor_name, d.donor_email, d.amount, d.donation_date, d.payment_method, d.frequency, d.is_anonymous, d.cause_id AS cause_id"
)

type ReportRepository struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) *ReportRepository { return &ReportRepository{db: db} }

func (r *ReportRepository) LegacyRows(ctx context.Context, f reportDomain.Filter) ([]reportDomain.Row, error) {
	q := r.db.WithContext(ctx).Table("DonationsWeb").Select(legacyColumns)
	q = withinWindow(q, "donation_date", f)

	var out []reportDomain.Row
	if err := q.Order("donation_date DESC").Scan(&out).Error; err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Source = reportDomain.SourceLegacy
	}
	return out, nil
}

func (r *ReportRepository) CurrentRows(ctx context.Context, f reportDomain.Filter, withCauses bool) ([]reportDomain.Row, error) {
	q := r.db.WithContext(ctx).Table("Donations AS d")
	if withCauses {
		q = q.Select(currentColumns + ", COALESCE(c.title, '') AS cause_title").
			Joins("LEFT JOIN Causes c ON d.cause_id = c.cause_id")
	} else {
		q = q.Select(currentColumns + ", '' AS cause_title")
	}
	q = withinWindow(q, "d.donation_date", f)

	var out []reportDomain.Row
	if err := q.Order("d.donation_date DESC").Scan(&out).Error; err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Source = reportDomain.SourceCurrent
	}
	return out, nil
}

func withinWindow(q *gorm.DB, column string, f reportDomain.Filter) *gorm.DB {
	if lo, ok := f.Lower(); ok {
		q = q.Where(column+" >= ?", lo)
	}
	if hi, ok := f.Before(); ok {
		q = q.Where(column+" < ?", hi)
	}
	return q
}
