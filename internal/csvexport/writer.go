package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"lekha/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// trialBalanceColumns defines the trial balance CSV header row.
var trialBalanceColumns = []string{
	"Account Code",
	"Account Name",
	"Nature",
	"Debit",
	"Credit",
}

// returnColumns defines the statutory return CSV header row.
var returnColumns = []string{
	"Period",
	"Return Type",
	"Taxable Value",
	"CGST",
	"SGST",
	"IGST",
	"Total Tax",
	"Voucher Count",
	"Generated At",
}

// Writer wraps csv.Writer for exporting ledger reports as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteTrialBalance writes the trial balance header, one row per account,
// and a totals row.
func (w *Writer) WriteTrialBalance(tb *domain.TrialBalance) error {
	if err := w.csv.Write(trialBalanceColumns); err != nil {
		return err
	}
	for i := range tb.Rows {
		row := &tb.Rows[i]
		record := []string{
			row.AccountCode,
			row.AccountName,
			string(row.Nature),
			row.Debit.StringFixed(2),
			row.Credit.StringFixed(2),
		}
		if err := w.csv.Write(record); err != nil {
			return err
		}
	}
	totals := []string{"", "Total", "", tb.TotalDebit.StringFixed(2), tb.TotalCredit.StringFixed(2)}
	return w.csv.Write(totals)
}

// WriteReturns writes the return header followed by one row per return.
func (w *Writer) WriteReturns(returns []domain.TaxReturn) error {
	if err := w.csv.Write(returnColumns); err != nil {
		return err
	}
	for i := range returns {
		ret := &returns[i]
		record := []string{
			ret.Period,
			string(ret.ReturnType),
			ret.TaxableValue.StringFixed(2),
			ret.CGST.StringFixed(2),
			ret.SGST.StringFixed(2),
			ret.IGST.StringFixed(2),
			ret.TotalTax.StringFixed(2),
			strconv.Itoa(ret.VoucherCount),
			ret.GeneratedAt.Format(time.RFC3339),
		}
		if err := w.csv.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a report name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.csv
func BuildFilename(name string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
