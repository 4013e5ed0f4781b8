package donation

import (
	"time"

	"github.com/shopspring/decimal"

	"kindnesscup/internal/domain/cause"
)

const (
	TableName       = "Donations"
	LegacyTableName = "DonationsWeb"

	// AnonymousName replaces the donor name when the donor asks for anonymity.
	AnonymousName = "Anonim"

	FrequencyOneTime = "one_time"
	FrequencyMonthly = "monthly"

	// LegacyMigration names the one-time copy of DonationsWeb into Donations.
	LegacyMigration = "donationsweb_to_donations"
)

// Table: Donations
type Donation struct {
	ID            uint64          `gorm:"column:donation_id;primaryKey;autoIncrement"`
	CauseID       *uint64         `gorm:"column:cause_id;index"`
	DonorName     string          `gorm:"column:donor_name;size:100;default:Anonim"`
	DonorEmail    *string         `gorm:"column:donor_email;size:100"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(10,2);not null"`
	DonationDate  time.Time       `gorm:"column:donation_date;type:datetime;not null;default:CURRENT_TIMESTAMP"`
	PaymentMethod string          `gorm:"column:payment_method;size:50;not null"`
	Frequency     string          `gorm:"column:frequency;size:50"`
	IsAnonymous   bool            `gorm:"column:is_anonymous;not null"`
}

func (Donation) TableName() string { return TableName }

// DonationWithCause is the schema variant used when Causes exists: same
// columns plus a cause_id foreign key.
type DonationWithCause struct {
	Donation
	Cause *cause.Cause `gorm:"foreignKey:CauseID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (DonationWithCause) TableName() string { return TableName }

// Table: DonationsWeb (older layout without cause linkage)
type LegacyDonation struct {
	ID            uint64          `gorm:"column:donation_id;primaryKey;autoIncrement"`
	DonorName     string          `gorm:"column:donor_name;size:100"`
	DonorEmail    *string         `gorm:"column:donor_email;size:100"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(10,2);not null"`
	DonationDate  time.Time       `gorm:"column:donation_date;type:datetime;not null"`
	PaymentMethod string          `gorm:"column:payment_method;size:50;not null"`
	Frequency     string          `gorm:"column:frequency;size:50"`
	IsAnonymous   bool            `gorm:"column:is_anonymous;not null"`
}

func (LegacyDonation) TableName() string { return LegacyTableName }
