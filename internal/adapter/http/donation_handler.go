package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	domainCause "kindnesscup/internal/domain/cause"
	domainDonation "kindnesscup/internal/domain/donation"
	"kindnesscup/internal/usecase/donation"
	"kindnesscup/pkg/id"
)

// MsgDatabaseError replaces raw driver text unless EXPOSE_DB_ERRORS is set.
const MsgDatabaseError = "Database error: please try again later."

type DonationHandler struct {
	uc             *donation.Usecase
	exposeDBErrors bool
	log            *slog.Logger
}

func NewDonationHandler(uc *donation.Usecase, exposeDBErrors bool, log *slog.Logger) *DonationHandler {
	if log == nil {
		log = slog.Default()
	}
	return &DonationHandler{uc: uc, exposeDBErrors: exposeDBErrors, log: log}
}

type donateReq struct {
	Frequency       string `form:"frequency"`
	PresetAmount    string `form:"preset_amount"`
	CustomAmount    string `form:"custom_amount"`
	DonorName       string `form:"donor_name"`
	DonorEmail      string `form:"donor_email"`
	PaymentMethod   string `form:"payment_method"`
	CauseID         string `form:"cause_id"`
	SubmissionToken string `form:"submission_token" validate:"omitempty,hex32"`
}

// input converts the bound form. The anonymous checkbox counts when the field
// is present at all, whatever its value.
func (r donateReq) input(anonymous bool) donation.SubmitInput {
	return donation.SubmitInput{
		Frequency:     r.Frequency,
		PresetAmount:  r.PresetAmount,
		CustomAmount:  r.CustomAmount,
		DonorName:     r.DonorName,
		DonorEmail:    r.DonorEmail,
		PaymentMethod: r.PaymentMethod,
		CauseID:       r.CauseID,
		IsAnonymous:   anonymous,
	}
}

// donatePage is the view model of donate.html.
type donatePage struct {
	Causes         []domainCause.Cause
	Frequencies    []string
	Presets        []string
	PaymentMethods []string
	Token          string
	Form           donation.SubmitInput
	Success        bool
	Message        string
	Errors         []string
}

func (h *DonationHandler) page(c echo.Context, form donation.SubmitInput) donatePage {
	if form.Frequency == "" {
		form.Frequency = domainDonation.FrequencyOneTime
	}
	return donatePage{
		Causes:         h.uc.Form(c.Request().Context()).Causes,
		Frequencies:    []string{domainDonation.FrequencyOneTime, domainDonation.FrequencyMonthly},
		Presets:        donation.PresetAmounts,
		PaymentMethods: donation.PaymentMethods,
		Token:          id.NewID32(),
		Form:           form,
	}
}

func (h *DonationHandler) ShowForm(c echo.Context) error {
	return c.Render(http.StatusOK, "donate.html", h.page(c, donation.SubmitInput{}))
}

func (h *DonationHandler) Submit(c echo.Context) error {
	var req donateReq
	if err := c.Bind(&req); err != nil {
		p := h.page(c, donation.SubmitInput{})
		p.Errors = []string{"Invalid form submission."}
		return c.Render(http.StatusBadRequest, "donate.html", p)
	}
	in := req.input(c.Request().PostForm.Has("is_anonymous"))
	if err := c.Validate(&req); err != nil {
		p := h.page(c, in)
		p.Errors = Messages(ToFieldErrors(err))
		return c.Render(http.StatusBadRequest, "donate.html", p)
	}

	dto, err := h.uc.Submit(c.Request().Context(), in)
	if err != nil {
		code, msgs := h.describe(err)
		p := h.page(c, in)
		p.Errors = msgs
		return c.Render(code, "donate.html", p)
	}

	p := h.page(c, donation.SubmitInput{})
	p.Success = true
	p.Message = dto.Message
	return c.Render(http.StatusOK, "donate.html", p)
}

func (h *DonationHandler) describe(err error) (int, []string) {
	var ve *donation.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, ve.Messages
	}
	h.log.Error("record donation", "error", err)
	var se *donation.StorageError
	if h.exposeDBErrors && errors.As(err, &se) {
		return http.StatusInternalServerError, []string{se.Error()}
	}
	return http.StatusInternalServerError, []string{MsgDatabaseError}
}
