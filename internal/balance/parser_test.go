package balance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"auditdesk/internal/balance"
	"auditdesk/internal/domain"
)

// buildWorkbook creates an in-memory workbook with the given sheets, in
// order. Each sheet's rows are written starting at row 6, below the fixed
// five-row header the parser skips.
func buildWorkbook(t *testing.T, sheets []string, data map[string][][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	require.NotEmpty(t, sheets)
	require.NoError(t, f.SetSheetName("Sheet1", sheets[0]))
	for _, name := range sheets[1:] {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
	}

	for name, rows := range data {
		for i, row := range rows {
			for j, val := range row {
				cell, err := excelize.CoordinatesToCellName(j+1, i+6)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(name, cell, val))
			}
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParse_ConcreteScenario(t *testing.T) {
	// Two data rows, a fully blank row, then a row that must never be seen.
	data := buildWorkbook(t,
		[]string{balance.SheetNameN, balance.SheetNameN1},
		map[string][][]interface{}{
			balance.SheetNameN: {
				{"101", "Cash", 1000},
				{"102", "AR", "2,500.00"},
				{"", "", ""},
				{"999", "ignored", 1},
			},
		})

	res, err := balance.Parse(data, balance.Options{})
	require.NoError(t, err)

	require.Len(t, res.N, 2)
	assert.Equal(t, domain.BalanceRow{Account: "101", Label: "Cash", Balance: 1000}, res.N[0])
	assert.Equal(t, domain.BalanceRow{Account: "102", Label: "AR", Balance: 2500}, res.N[1])
	assert.Empty(t, res.N1)
}

func TestParse_TerminationAtFirstAllEmptyRow(t *testing.T) {
	data := buildWorkbook(t,
		[]string{balance.SheetNameN, balance.SheetNameN1},
		map[string][][]interface{}{
			balance.SheetNameN1: {
				{"201", "Opening", "10"},
				{"", "", ""},
				{"202", "after the sentinel", "20"},
				{"203", "also after", "30"},
			},
		})

	res, err := balance.Parse(data, balance.Options{})
	require.NoError(t, err)

	require.Len(t, res.N1, 1)
	assert.Equal(t, "201", res.N1[0].Account)
}

func TestParse_EmptyAccountRowIsSkippedNotTerminal(t *testing.T) {
	data := buildWorkbook(t,
		[]string{balance.SheetNameN, balance.SheetNameN1},
		map[string][][]interface{}{
			balance.SheetNameN: {
				{"101", "Cash", "100"},
				{"", "subtotal heading", ""},
				{"102", "AR", "200"},
			},
		})

	res, err := balance.Parse(data, balance.Options{})
	require.NoError(t, err)

	require.Len(t, res.N, 2)
	assert.Equal(t, "101", res.N[0].Account)
	assert.Equal(t, "102", res.N[1].Account)
}

func TestParse_SheetNameNormalization(t *testing.T) {
	// Case-different and whitespace-padded names resolve like exact names.
	data := buildWorkbook(t,
		[]string{"INSERER BG N", " Inserer BG N-1 "},
		map[string][][]interface{}{
			"INSERER BG N": {{"101", "Cash", "1"}},
		})

	res, err := balance.Parse(data, balance.Options{})
	require.NoError(t, err)
	require.Len(t, res.N, 1)
	assert.Equal(t, "101", res.N[0].Account)
}

func TestParse_PositionalFallback(t *testing.T) {
	// Renamed tabs: sheet index 1 serves N, index 2 serves N-1.
	data := buildWorkbook(t,
		[]string{"Cover", "Donnees N", "Donnees N-1"},
		map[string][][]interface{}{
			"Donnees N":   {{"101", "Cash", "1"}},
			"Donnees N-1": {{"201", "Prior", "2"}},
		})

	res, err := balance.Parse(data, balance.Options{PositionalFallback: true})
	require.NoError(t, err)
	require.Len(t, res.N, 1)
	assert.Equal(t, "101", res.N[0].Account)
	require.Len(t, res.N1, 1)
	assert.Equal(t, "201", res.N1[0].Account)
}

func TestParse_StrictModeReportsMissingSheets(t *testing.T) {
	data := buildWorkbook(t,
		[]string{"Cover", "Donnees N", "Donnees N-1"},
		map[string][][]interface{}{})

	_, err := balance.Parse(data, balance.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), balance.SheetNameN)
	assert.Contains(t, err.Error(), balance.SheetNameN1)
	assert.Contains(t, err.Error(), "Cover")
}

func TestParse_MissingSheetsWithoutFallbackTargets(t *testing.T) {
	// Fallback enabled but the workbook has a single sheet: index 1 and 2 do
	// not exist, so resolution fails outright.
	data := buildWorkbook(t, []string{"Only"}, map[string][][]interface{}{})

	_, err := balance.Parse(data, balance.Options{PositionalFallback: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing sheets")
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1 234,56", 1234.56},
		{"(500,00)", -500},
		{"(1 234,56)", -1234.56},
		{"2,500.00", 2500},
		{"2.500,00", 2500},
		{"1000", 1000},
		{"-42,5", -42.5},
		{"1\u00a0234,56", 1234.56},
		{"1\u202f234,56", 1234.56},
		{"n/a", 0},
		{"", 0},
		{"  12.75  ", 12.75},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, balance.ParseAmount(tc.in), "input %q", tc.in)
	}
}
