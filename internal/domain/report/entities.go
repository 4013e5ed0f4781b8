package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	SourceLegacy  = "DonationsWeb"
	SourceCurrent = "Donations"

	DateLayout = "2006-01-02"
)

// Row is the normalized, read-only shape of a donation regardless of which
// table it came from.
type Row struct {
	ID            uint64          `gorm:"column:id"`
	DonorName     string          `gorm:"column:donor_name"`
	DonorEmail    *string         `gorm:"column:donor_email"`
	Amount        decimal.Decimal `gorm:"column:amount"`
	DonationDate  time.Time       `gorm:"column:donation_date"`
	PaymentMethod string          `gorm:"column:payment_method"`
	Frequency     *string         `gorm:"column:frequency"`
	IsAnonymous   bool            `gorm:"column:is_anonymous"`
	CauseID       *uint64         `gorm:"column:cause_id"`
	CauseTitle    *string         `gorm:"column:cause_title"`
	Source        string          `gorm:"-"`
}

// Filter is an optional inclusive window of calendar days (YYYY-MM-DD). Days
// are compared as written, in the storage's own clock.
type Filter struct {
	StartDate string
	EndDate   string
}

// Validate reports a bound that is not a calendar day.
func (f Filter) Validate() error {
	for _, d := range []string{f.StartDate, f.EndDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(DateLayout, d); err != nil {
			return fmt.Errorf("invalid report date %q: %w", d, err)
		}
	}
	return nil
}

// Lower returns the inclusive "start 00:00:00" bound, if any.
func (f Filter) Lower() (string, bool) {
	if f.StartDate == "" {
		return "", false
	}
	return f.StartDate + " 00:00:00", true
}

// Before returns the exclusive bound: midnight of the day after EndDate.
// Anything stamped during the end day, fractional seconds included, sorts
// strictly below it.
func (f Filter) Before() (string, bool) {
	if f.EndDate == "" {
		return "", false
	}
	end, err := time.Parse(DateLayout, f.EndDate)
	if err != nil {
		return "", false
	}
	return end.AddDate(0, 0, 1).Format(DateLayout) + " 00:00:00", true
}

type Report struct {
	Rows   []Row
	Count  int
	Total  decimal.Decimal
	Filter Filter
}
