package donation

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	domainCause "kindnesscup/internal/domain/cause"
	domainDonation "kindnesscup/internal/domain/donation"
	"kindnesscup/internal/domain/schema"
	"kindnesscup/internal/domain/uow"
	"kindnesscup/pkg/money"
)

type Usecase struct {
	causes    domainCause.Repository
	donations domainDonation.Repository
	schema    schema.Manager
	uow       uow.UnitOfWork
	log       *slog.Logger
	validate  *validator.Validate
	now       func() time.Time
}

func NewUsecase(causes domainCause.Repository, donations domainDonation.Repository, sm schema.Manager, tx uow.UnitOfWork, log *slog.Logger) *Usecase {
	if log == nil {
		log = slog.Default()
	}
	return &Usecase{
		causes:    causes,
		donations: donations,
		schema:    sm,
		uow:       tx,
		log:       log,
		validate:  validator.New(),
		now:       time.Now,
	}
}

// SuccessMessage is shown after a donation is stored.
func SuccessMessage(amount decimal.Decimal) string {
	return "Thank you — your donation was recorded successfully. Amount: $" + money.Format(amount)
}

// Form lists active causes. Storage problems only shrink the list.
func (u *Usecase) Form(ctx context.Context) FormData {
	if !u.schema.HasTable(ctx, domainCause.TableName) {
		return FormData{}
	}
	causes, err := u.causes.ListActive(ctx)
	if err != nil {
		u.log.Warn("list causes", "error", err)
		return FormData{}
	}
	return FormData{Causes: causes}
}

func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*DonationDTO, error) {
	in.DonorName = strings.TrimSpace(in.DonorName)
	in.DonorEmail = strings.TrimSpace(in.DonorEmail)
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	in.Frequency = strings.TrimSpace(in.Frequency)
	if in.Frequency == "" {
		in.Frequency = domainDonation.FrequencyOneTime
	}

	amount := ResolveAmount(in.PresetAmount, in.CustomAmount)
	if msgs := u.check(in, amount); len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	hasCauses := u.schema.HasTable(ctx, domainCause.TableName)
	causeID := u.resolveCause(ctx, in.CauseID, hasCauses)

	if err := u.schema.EnsureDonations(ctx, hasCauses); err != nil {
		return nil, &StorageError{Err: err}
	}
	u.migrateLegacy(ctx)

	d := &domainDonation.Donation{
		CauseID:       causeID,
		DonorName:     in.DonorName,
		Amount:        amount,
		DonationDate:  u.now().Truncate(time.Second),
		PaymentMethod: in.PaymentMethod,
		Frequency:     in.Frequency,
		IsAnonymous:   in.IsAnonymous,
	}
	if in.IsAnonymous {
		d.DonorName = domainDonation.AnonymousName
	} else {
		email := in.DonorEmail
		d.DonorEmail = &email
	}
	if err := u.donations.Create(ctx, d); err != nil {
		return nil, &StorageError{Err: err}
	}
	u.log.Info("donation recorded", "donation_id", d.ID, "amount", amount.StringFixed(2), "anonymous", d.IsAnonymous)

	return &DonationDTO{
		DonationID: d.ID,
		CauseID:    d.CauseID,
		Amount:     amount,
		Frequency:  d.Frequency,
		Anonymous:  d.IsAnonymous,
		Message:    SuccessMessage(amount),
	}, nil
}

func (u *Usecase) check(in SubmitInput, amount decimal.Decimal) []string {
	var msgs []string
	if !amount.IsPositive() {
		msgs = append(msgs, MsgInvalidAmount)
	}
	if !in.IsAnonymous {
		if in.DonorName == "" {
			msgs = append(msgs, MsgMissingName)
		}
		if u.validate.Var(in.DonorEmail, "required,email") != nil {
			msgs = append(msgs, MsgInvalidEmail)
		}
	}
	if in.PaymentMethod == "" {
		msgs = append(msgs, MsgMissingMethod)
	}
	return msgs
}

// resolveCause returns nil for anything that is not an active cause.
func (u *Usecase) resolveCause(ctx context.Context, raw string, hasCauses bool) *uint64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || !hasCauses {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil
	}
	ok, err := u.causes.IsActive(ctx, id)
	if err != nil {
		u.log.Warn("check cause", "cause_id", id, "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	return &id
}

// migrateLegacy copies DonationsWeb into an empty Donations once. Failures
// are logged and leave the marker unclaimed so a later submission retries.
func (u *Usecase) migrateLegacy(ctx context.Context) {
	if !u.schema.HasTable(ctx, domainDonation.LegacyTableName) {
		return
	}
	if err := u.schema.EnsureMigrationMarkers(ctx); err != nil {
		u.log.Warn("ensure migration markers", "error", err)
		return
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		claimed, err := r.Schema.ClaimMigration(ctx, domainDonation.LegacyMigration)
		if err != nil || !claimed {
			return err
		}
		n, err := r.Donations.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		copied, err := r.Donations.CopyFromLegacy(ctx)
		if err != nil {
			return err
		}
		u.log.Info("legacy donations migrated", "rows", copied)
		return nil
	})
	if err != nil {
		u.log.Warn("legacy migration", "error", err)
	}
}
