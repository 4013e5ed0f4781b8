package mysql

import (
	"context"
	"errors"
	"testing"

	donationDomain "kindnesscup/internal/domain/donation"
	"kindnesscup/internal/domain/uow"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	schema := NewSchemaManager(db)
	if err := schema.EnsureDonations(ctx, false); err != nil {
		t.Fatalf("EnsureDonations: %v", err)
	}
	if err := schema.EnsureMigrationMarkers(ctx); err != nil {
		t.Fatalf("EnsureMigrationMarkers: %v", err)
	}

	err := NewGormUoW(db).WithinTx(ctx, func(r uow.Repos) error {
		claimed, err := r.Schema.ClaimMigration(ctx, donationDomain.LegacyMigration)
		if err != nil {
			return err
		}
		if !claimed {
			t.Fatalf("first claim inside tx should succeed")
		}
		return r.Donations.Create(ctx, currentRow("Tx", "10", day(2024, 1, 2, 3, 4, 5), nil))
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	// Verify post-commit visibility
	if n, _ := NewDonationRepository(db).Count(ctx); n != 1 {
		t.Fatalf("donation not visible after commit, count=%d", n)
	}
	if again, _ := schema.ClaimMigration(ctx, donationDomain.LegacyMigration); again {
		t.Fatalf("claim should persist after commit")
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	schema := NewSchemaManager(db)
	if err := schema.EnsureDonations(ctx, false); err != nil {
		t.Fatalf("EnsureDonations: %v", err)
	}
	if err := schema.EnsureMigrationMarkers(ctx); err != nil {
		t.Fatalf("EnsureMigrationMarkers: %v", err)
	}

	boom := errors.New("boom")
	err := NewGormUoW(db).WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Schema.ClaimMigration(ctx, donationDomain.LegacyMigration); err != nil {
			return err
		}
		if err := r.Donations.Create(ctx, currentRow("Tx", "10", day(2024, 1, 2, 3, 4, 5), nil)); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}

	if n, _ := NewDonationRepository(db).Count(ctx); n != 0 {
		t.Fatalf("insert should be rolled back, count=%d", n)
	}
	claimed, err := schema.ClaimMigration(ctx, donationDomain.LegacyMigration)
	if err != nil || !claimed {
		t.Fatalf("claim should be rolled back too: claimed=%v err=%v", claimed, err)
	}
}
