package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auditdesk/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 5)
	assert.Equal(t, "Account", row[0])
	assert.Equal(t, "Delta", row[4])
}

func TestWriteBalanceSet(t *testing.T) {
	set := &domain.BalanceSet{
		BalanceN: domain.BalanceRows{
			{Account: "101", Label: "Cash", Balance: 1500},
			{Account: "411", Label: "Clients", Balance: 800.5},
		},
		BalanceN1: domain.BalanceRows{
			{Account: "101", Label: "Cash", Balance: 1000},
			{Account: "512", Label: "Bank", Balance: 300},
		},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteBalanceSet(set))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"101", "Cash", "1500.00", "1000.00", "500.00"}, rows[0])
	assert.Equal(t, []string{"411", "Clients", "800.50", "0.00", "800.50"}, rows[1])
	assert.Equal(t, []string{"512", "Bank", "0.00", "300.00", "-300.00"}, rows[2])
}

func TestWriteBalanceSet_RepeatedAccountsAreSummed(t *testing.T) {
	set := &domain.BalanceSet{
		BalanceN: domain.BalanceRows{
			{Account: "601", Label: "Achats", Balance: 100},
			{Account: "601", Label: "Achats", Balance: 50},
		},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteBalanceSet(set))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"601", "Achats", "150.00", "0.00", "150.00"}, rows[0])
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Acme Audit 2025", "Acme_Audit_2025"},
		{"client/éxö audit!!", "client_x_audit"},
		{"__already__clean__", "already_clean"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeFilename(tc.in), "input %q", tc.in)
	}
}

func TestBuildFilename(t *testing.T) {
	name := BuildFilename("Acme Audit")
	assert.Contains(t, name, "Acme_Audit_balances_")
	assert.Contains(t, name, ".csv")
}
