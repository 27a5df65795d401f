package coa_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auditdesk/internal/coa"
	"auditdesk/internal/domain"
)

const samplePCM = `
Plan comptable

Classe 1 : Comptes de capitaux
10 - Capital et reserves
101 Capital
1013 Capital souscrit, appele, verse
106 Reserves

Classe 6 : Comptes de charges
60 - Achats
601 Achats stockes - Matieres premieres
6010 Achats generiques
`

func TestParseText(t *testing.T) {
	entries, err := coa.ParseText(strings.NewReader(samplePCM))
	require.NoError(t, err)
	require.Len(t, entries, 5)

	first := entries[0]
	assert.Equal(t, 1, first.Classe)
	assert.Equal(t, "10", first.SectionCode)
	assert.Equal(t, "Capital et reserves", first.SectionLabel)
	assert.Equal(t, "101", first.Account)
	assert.Equal(t, "Capital", first.Label)
	assert.False(t, first.ZeroPrefix)

	last := entries[4]
	assert.Equal(t, 6, last.Classe)
	assert.Equal(t, "60", last.SectionCode)
	assert.Equal(t, "6010", last.Account)
	assert.True(t, last.ZeroPrefix)
}

func TestParseText_IgnoresProse(t *testing.T) {
	entries, err := coa.ParseText(strings.NewReader("random heading\n\nno codes here\n"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBuildTree_ParentIsLongestProperPrefix(t *testing.T) {
	entries := []coa.Entry{
		{Classe: 1, Account: "101", Label: "Capital"},
		{Classe: 1, Account: "1013", Label: "Souscrit"},
		{Classe: 1, Account: "10131", Label: "Detail"},
		{Classe: 1, Account: "106", Label: "Reserves"},
		{Classe: 6, Account: "601", Label: "Achats"},
	}

	accounts := coa.BuildTree(uuid.New(), uuid.New(), "pcm-2024", entries)
	require.Len(t, accounts, 5)

	byCode := make(map[string]domain.ChartOfAccount)
	for _, a := range accounts {
		byCode[a.Code] = a
	}

	assert.Nil(t, byCode["101"].ParentCode)
	require.NotNil(t, byCode["1013"].ParentCode)
	assert.Equal(t, "101", *byCode["1013"].ParentCode)
	require.NotNil(t, byCode["10131"].ParentCode)
	assert.Equal(t, "1013", *byCode["10131"].ParentCode)
	assert.Nil(t, byCode["106"].ParentCode, "10 is not in the set, 101 is not a prefix of 106")
	assert.Nil(t, byCode["601"].ParentCode)

	assert.Equal(t, domain.AccountTypeBalanceSheet, byCode["101"].Type)
	assert.Equal(t, domain.AccountTypeIncomeStatement, byCode["601"].Type)
}

func TestBuildTree_SkipsGaps(t *testing.T) {
	// 1013 parents to 101 even though 10 and 1013's immediate prefix 101 are
	// at different depths; the longest existing prefix wins.
	entries := []coa.Entry{
		{Classe: 1, Account: "10", Label: "Section"},
		{Classe: 1, Account: "1013", Label: "Souscrit"},
	}
	accounts := coa.BuildTree(uuid.New(), uuid.New(), "kb", entries)

	byCode := make(map[string]domain.ChartOfAccount)
	for _, a := range accounts {
		byCode[a.Code] = a
	}
	require.NotNil(t, byCode["1013"].ParentCode)
	assert.Equal(t, "10", *byCode["1013"].ParentCode)
}
