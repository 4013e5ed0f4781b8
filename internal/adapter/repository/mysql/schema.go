package mysql

import (
	"context"
	"time"

	donationDomain "kindnesscup/internal/domain/donation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Table: DataMigrations, one row per claimed data migration
type dataMigration struct {
	Name      string    `gorm:"column:name;primaryKey;size:100"`
	AppliedAt time.Time `gorm:"column:applied_at;not null"`
}

func (dataMigration) TableName() string { return "DataMigrations" }

type SchemaManager struct{ db *gorm.DB }

func NewSchemaManager(db *gorm.DB) *SchemaManager { return &SchemaManager{db: db} }

func (m *SchemaManager) Ping(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (m *SchemaManager) HasTable(ctx context.Context, table string) bool {
	return m.db.WithContext(ctx).Migrator().HasTable(table)
}

func (m *SchemaManager) EnsureDonations(ctx context.Context, withCauseFK bool) error {
	if withCauseFK {
		return m.ensureTable(ctx, &donationDomain.DonationWithCause{}, donationDomain.TableName)
	}
	return m.ensureTable(ctx, &donationDomain.Donation{}, donationDomain.TableName)
}

func (m *SchemaManager) EnsureMigrationMarkers(ctx context.Context) error {
	return m.ensureTable(ctx, &dataMigration{}, dataMigration{}.TableName())
}

func (m *SchemaManager) ensureTable(ctx context.Context, model any, name string) error {
	mg := m.db.WithContext(ctx).Migrator()
	if mg.HasTable(name) {
		return nil
	}
	if err := mg.CreateTable(model); err != nil {
		// a concurrent request may have created it between check and create
		if mg.HasTable(name) {
			return nil
		}
		return err
	}
	return nil
}

func (m *SchemaManager) ClaimMigration(ctx context.Context, name string) (bool, error) {
	res := m.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dataMigration{Name: name, AppliedAt: time.Now()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
