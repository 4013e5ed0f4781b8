package mysql

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	causeDomain "kindnesscup/internal/domain/cause"
	donationDomain "kindnesscup/internal/domain/donation"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB creates a named in-memory sqlite DB private to the test. One
// connection keeps the database alive and serializes access like a single
// MySQL session would.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// openFileDB opens a file-backed sqlite DB that allows concurrent
// connections. Writers queue on the busy timeout and transactions take the
// write lock up front, like InnoDB row locks on the marker insert.
func openFileDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kindnesscup.db")
	dsn := fmt.Sprintf("file:%s?_busy_timeout=10000&_journal_mode=WAL&_txlock=immediate", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(8)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func migrateCauses(t *testing.T, db *gorm.DB, causes ...causeDomain.Cause) []causeDomain.Cause {
	t.Helper()
	if err := db.AutoMigrate(&causeDomain.Cause{}); err != nil {
		t.Fatalf("migrate causes: %v", err)
	}
	for i := range causes {
		if err := db.Create(&causes[i]).Error; err != nil {
			t.Fatalf("seed cause: %v", err)
		}
	}
	return causes
}

func migrateLegacy(t *testing.T, db *gorm.DB, rows ...donationDomain.LegacyDonation) {
	t.Helper()
	if err := db.AutoMigrate(&donationDomain.LegacyDonation{}); err != nil {
		t.Fatalf("migrate legacy: %v", err)
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed legacy: %v", err)
		}
	}
}

func legacyRow(name string, amount string, at time.Time) donationDomain.LegacyDonation {
	email := strings.ToLower(name) + "@example.com"
	return donationDomain.LegacyDonation{
		DonorName:     name,
		DonorEmail:    &email,
		Amount:        decimal.RequireFromString(amount),
		DonationDate:  at,
		PaymentMethod: "card",
		Frequency:     donationDomain.FrequencyOneTime,
	}
}

func currentRow(name string, amount string, at time.Time, causeID *uint64) *donationDomain.Donation {
	email := strings.ToLower(name) + "@example.com"
	return &donationDomain.Donation{
		CauseID:       causeID,
		DonorName:     name,
		DonorEmail:    &email,
		Amount:        decimal.RequireFromString(amount),
		DonationDate:  at,
		PaymentMethod: "paypal",
		Frequency:     donationDomain.FrequencyMonthly,
	}
}

func day(y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }
