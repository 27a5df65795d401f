// Package balance parses trial-balance workbooks into structured rows. It is
// the single source of truth for the parsing contract; the HTTP preview
// endpoint, the ingest worker, and the offline CLI all call Parse with
// host-specific options.
package balance

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"auditdesk/internal/domain"
)

// Expected sheet names for the current (N) and prior (N-1) periods.
const (
	SheetNameN  = "Inserer BG N"
	SheetNameN1 = "Inserer BG N-1"
)

// dataStartRow is the 0-indexed first data row; rows above are a fixed
// header the parser ignores unconditionally.
const dataStartRow = 5

// Positional fallbacks used when neither exact nor normalized sheet-name
// matching resolves a renamed tab.
const (
	fallbackIndexN  = 1
	fallbackIndexN1 = 2
)

// ParseError marks a permanent workbook problem. Retrying the same bytes
// cannot succeed, so queue hosts fail the import instead of requeueing.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return e.Reason
}

// Options controls host-specific parsing behavior.
type Options struct {
	// PositionalFallback resolves a missing sheet name by position (index 1
	// for N, index 2 for N-1). The ingest worker and the CLI tolerate renamed
	// tabs this way; the preview endpoint does not.
	PositionalFallback bool
}

// Result holds the two parsed balance collections.
type Result struct {
	N  domain.BalanceRows `json:"balanceN"`
	N1 domain.BalanceRows `json:"balanceN1"`
}

// Parse reads a workbook and extracts the N and N-1 balance sheets. The two
// sheets are parsed independently with identical row logic; there is no
// cross-sheet validation. Sheet-resolution failure is fatal; per-cell numeric
// failures degrade to 0 and never abort the scan.
func Parse(data []byte, opts Options) (*Result, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("opening workbook: %v", err)}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()

	nameN, okN := resolveSheet(sheets, SheetNameN, fallbackIndexN, opts.PositionalFallback)
	nameN1, okN1 := resolveSheet(sheets, SheetNameN1, fallbackIndexN1, opts.PositionalFallback)
	if !okN || !okN1 {
		var missing []string
		if !okN {
			missing = append(missing, SheetNameN)
		}
		if !okN1 {
			missing = append(missing, SheetNameN1)
		}
		return nil, &ParseError{Reason: fmt.Sprintf("missing sheets %q; workbook contains %q", missing, sheets)}
	}

	rowsN, err := f.GetRows(nameN)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", nameN, err)
	}
	rowsN1, err := f.GetRows(nameN1)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", nameN1, err)
	}

	return &Result{
		N:  parseRows(rowsN),
		N1: parseRows(rowsN1),
	}, nil
}

// resolveSheet matches the target name exactly, then case/whitespace
// insensitively, then falls back positionally when allowed.
func resolveSheet(sheets []string, target string, fallbackIdx int, positional bool) (string, bool) {
	for _, s := range sheets {
		if s == target {
			return s, true
		}
	}
	want := normalizeSheetName(target)
	for _, s := range sheets {
		if normalizeSheetName(s) == want {
			return s, true
		}
	}
	if positional && fallbackIdx < len(sheets) {
		return sheets[fallbackIdx], true
	}
	return "", false
}

func normalizeSheetName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// parseRows scans a sheet's cell grid starting at dataStartRow. Columns A, B,
// C hold account, label, and raw balance. The scan stops, not skips, at the
// first row where all three are empty: that row marks end-of-table, and
// anything after it is ignored regardless of content. Rows with only an
// empty account are skipped and the scan continues.
func parseRows(rows [][]string) domain.BalanceRows {
	out := domain.BalanceRows{}
	for i := dataStartRow; i < len(rows); i++ {
		account := strings.TrimSpace(cellValue(rows[i], 0))
		label := strings.TrimSpace(cellValue(rows[i], 1))
		raw := strings.TrimSpace(cellValue(rows[i], 2))

		if account == "" && label == "" && raw == "" {
			break
		}
		if account == "" {
			continue
		}

		out = append(out, domain.BalanceRow{
			Account: account,
			Label:   label,
			Balance: ParseAmount(raw),
		})
	}
	return out
}

func cellValue(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

// ParseAmount normalizes a raw balance cell into a float64. It tolerates the
// European decimal comma, thousands separators including non-breaking spaces,
// and parenthesized negatives ("(1 234,56)" is -1234.56). Anything that still
// fails to parse coerces to 0 rather than aborting the row.
func ParseAmount(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\u00a0', '\u202f':
			return -1
		}
		return r
	}, s)

	// Both separators present: the rightmost one is the decimal point and the
	// other is a thousands separator ("2,500.00" and "2.500,00" both work).
	// A lone comma is the European decimal convention.
	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0 && dot > comma:
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0 && dot >= 0:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0:
		s = strings.ReplaceAll(s, ",", ".")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	if negative {
		v = -v
	}
	return v
}
