package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"auditdesk/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row for the balance comparison export.
var columns = []string{
	"Account",
	"Label",
	"Balance N",
	"Balance N-1",
	"Delta",
}

// Writer wraps csv.Writer for exporting trial balances as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteBalanceSet writes one comparison row per account appearing in either
// period. Accounts present in only one period get a zero in the other; when
// an account repeats within a period its balances are summed.
func (w *Writer) WriteBalanceSet(set *domain.BalanceSet) error {
	type pair struct {
		label string
		n     float64
		n1    float64
	}
	merged := make(map[string]*pair)
	order := make([]string, 0, len(set.BalanceN)+len(set.BalanceN1))

	add := func(row domain.BalanceRow, current bool) {
		p, ok := merged[row.Account]
		if !ok {
			p = &pair{label: row.Label}
			merged[row.Account] = p
			order = append(order, row.Account)
		}
		if p.label == "" {
			p.label = row.Label
		}
		if current {
			p.n += row.Balance
		} else {
			p.n1 += row.Balance
		}
	}
	for _, row := range set.BalanceN {
		add(row, true)
	}
	for _, row := range set.BalanceN1 {
		add(row, false)
	}
	sort.Strings(order)

	for _, account := range order {
		p := merged[account]
		row := []string{
			account,
			p.label,
			formatMoney(p.n),
			formatMoney(p.n1),
			formatMoney(p.n - p.n1),
		}
		if err := w.csv.Write(row); err != nil {
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

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans an engagement name for use in Content-Disposition.
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
// Format: {sanitized_engagement_name}_balances_{YYYY-MM-DD}.csv
func BuildFilename(engagementName string) string {
	sanitized := SanitizeFilename(engagementName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_balances_%s.csv", sanitized, date)
}
