package http

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/xuri/excelize/v2"

	domainReport "kindnesscup/internal/domain/report"
)

const (
	csvFilename  = "donations_report.csv"
	xlsxFilename = "donations_report.xlsx"
	xlsxSheet    = "Donations"

	mimeCSV  = "text/csv; charset=utf-8"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var exportHeader = []string{
	"id", "donor_name", "donor_email", "amount", "donation_date", "payment_method",
	"frequency", "is_anonymous", "cause_id", "cause_title", "source",
}

func exportRecord(r domainReport.Row) []string {
	cause := ""
	if r.CauseID != nil {
		cause = strconv.FormatUint(*r.CauseID, 10)
	}
	anon := "0"
	if r.IsAnonymous {
		anon = "1"
	}
	return []string{
		strconv.FormatUint(r.ID, 10),
		r.DonorName,
		deref(r.DonorEmail),
		r.Amount.StringFixed(2),
		r.DonationDate.Format(timestampLayout),
		r.PaymentMethod,
		deref(r.Frequency),
		anon,
		cause,
		deref(r.CauseTitle),
		r.Source,
	}
}

// encodeCSV writes the header and one record per row, no totals line.
func encodeCSV(rows []domainReport.Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write(exportRecord(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// encodeXLSX mirrors encodeCSV on a single sheet; id and amount are numeric cells.
func encodeXLSX(rows []domainReport.Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, err
	}
	header := make([]any, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, r := range rows {
		rec := exportRecord(r)
		cells := make([]any, len(rec))
		for j, v := range rec {
			cells[j] = v
		}
		cells[0] = r.ID
		cells[3] = r.Amount.InexactFloat64()

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &cells); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
