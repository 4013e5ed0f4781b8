package http

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domainReport "kindnesscup/internal/domain/report"
	"kindnesscup/internal/usecase/report"
)

type ReportHandler struct {
	uc             *report.Usecase
	exposeDBErrors bool
	log            *slog.Logger
}

func NewReportHandler(uc *report.Usecase, exposeDBErrors bool, log *slog.Logger) *ReportHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ReportHandler{uc: uc, exposeDBErrors: exposeDBErrors, log: log}
}

type reportQuery struct {
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Export    string `query:"export"` // csv or xlsx; anything else renders HTML
}

type reportPage struct {
	Filter  domainReport.Filter
	Rows    []domainReport.Row
	Count   int
	Total   decimal.Decimal
	CSVURL  string
	XLSXURL string
}

type errorPage struct {
	Title    string
	Messages []string
	Back     string
}

func (h *ReportHandler) Show(c echo.Context) error {
	var q reportQuery
	if err := c.Bind(&q); err != nil {
		return c.Render(http.StatusBadRequest, "error.html", errorPage{
			Title: "Invalid report filter", Messages: []string{"Malformed query string."}, Back: "/report",
		})
	}
	if err := c.Validate(&q); err != nil {
		return c.Render(http.StatusBadRequest, "error.html", errorPage{
			Title: "Invalid report filter", Messages: Messages(ToFieldErrors(err)), Back: "/report",
		})
	}

	f := domainReport.Filter{StartDate: q.StartDate, EndDate: q.EndDate}
	rep, err := h.uc.Build(c.Request().Context(), f)
	if err != nil {
		h.log.Error("build report", "error", err, "start", f.StartDate, "end", f.EndDate)
		msg := MsgDatabaseError
		if h.exposeDBErrors {
			msg = "Database error: " + err.Error()
		}
		return c.Render(http.StatusInternalServerError, "error.html", errorPage{
			Title: "Report unavailable", Messages: []string{msg}, Back: "/report",
		})
	}

	switch q.Export {
	case "csv":
		body, err := encodeCSV(rep.Rows)
		if err != nil {
			return err
		}
		return attachment(c, csvFilename, mimeCSV, body)
	case "xlsx":
		body, err := encodeXLSX(rep.Rows)
		if err != nil {
			return err
		}
		return attachment(c, xlsxFilename, mimeXLSX, body)
	}

	return c.Render(http.StatusOK, "report.html", reportPage{
		Filter:  rep.Filter,
		Rows:    rep.Rows,
		Count:   rep.Count,
		Total:   rep.Total,
		CSVURL:  exportURL(f, "csv"),
		XLSXURL: exportURL(f, "xlsx"),
	})
}

func attachment(c echo.Context, filename, mime string, body []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+filename)
	return c.Blob(http.StatusOK, mime, body)
}

// exportURL keeps the active filter on the export link.
func exportURL(f domainReport.Filter, format string) string {
	v := url.Values{}
	if f.StartDate != "" {
		v.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		v.Set("end_date", f.EndDate)
	}
	v.Set("export", format)
	return "/report?" + v.Encode()
}
