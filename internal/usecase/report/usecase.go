package report

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/shopspring/decimal"

	domainCause "kindnesscup/internal/domain/cause"
	domainDonation "kindnesscup/internal/domain/donation"
	domainReport "kindnesscup/internal/domain/report"
	"kindnesscup/internal/domain/schema"
)

type Usecase struct {
	repo   domainReport.Repository
	schema schema.Manager
	log    *slog.Logger
}

func NewUsecase(r domainReport.Repository, sm schema.Manager, log *slog.Logger) *Usecase {
	if log == nil {
		log = slog.Default()
	}
	return &Usecase{repo: r, schema: sm, log: log}
}

// Build reads every present donation table inside the filter window and
// merges the rows newest first. Any read failure aborts the whole report.
func (u *Usecase) Build(ctx context.Context, f domainReport.Filter) (*domainReport.Report, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if err := u.schema.Ping(ctx); err != nil {
		return nil, fmt.Errorf("storage unavailable: %w", err)
	}

	var rows []domainReport.Row
	if u.schema.HasTable(ctx, domainDonation.LegacyTableName) {
		legacy, err := u.repo.LegacyRows(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", domainDonation.LegacyTableName, err)
		}
		rows = append(rows, legacy...)
	}
	if u.schema.HasTable(ctx, domainDonation.TableName) {
		withCauses := u.schema.HasTable(ctx, domainCause.TableName)
		current, err := u.repo.CurrentRows(ctx, f, withCauses)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", domainDonation.TableName, err)
		}
		rows = append(rows, current...)
	}

	slices.SortFunc(rows, compareRows)

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Amount)
	}
	u.log.Debug("report built", "rows", len(rows), "start", f.StartDate, "end", f.EndDate)

	return &domainReport.Report{Rows: rows, Count: len(rows), Total: total, Filter: f}, nil
}

// newest first, then source name, then id descending
func compareRows(a, b domainReport.Row) int {
	if c := b.DonationDate.Compare(a.DonationDate); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Source, b.Source); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}
