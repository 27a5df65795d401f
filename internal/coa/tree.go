package coa

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"auditdesk/internal/domain"
)

// BuildTree converts parsed entries into chart-of-accounts nodes. ParentCode
// is the longest proper numeric prefix of the code that exists in the same
// entry set, so the result forms a forest. Classes 1-5 are balance-sheet
// accounts, 6-7 income-statement.
func BuildTree(tenantID, engagementID uuid.UUID, knowledgeBaseID string, entries []Entry) []domain.ChartOfAccount {
	codes := make(map[string]bool, len(entries))
	for _, e := range entries {
		codes[e.Account] = true
	}

	now := time.Now().UTC()
	accounts := make([]domain.ChartOfAccount, 0, len(entries))
	for _, e := range entries {
		acc := domain.ChartOfAccount{
			ID:              uuid.New(),
			TenantID:        tenantID,
			EngagementID:    engagementID,
			KnowledgeBaseID: knowledgeBaseID,
			Code:            e.Account,
			Label:           e.Label,
			Class:           e.Classe,
			Type:            TypeForClass(e.Classe),
			ParentCode:      parentCode(e.Account, codes),
			CreatedAt:       now,
		}
		accounts = append(accounts, acc)
	}

	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	return accounts
}

// TypeForClass maps an account class to its statement type.
func TypeForClass(classe int) domain.AccountType {
	if classe >= 6 {
		return domain.AccountTypeIncomeStatement
	}
	return domain.AccountTypeBalanceSheet
}

// parentCode returns the longest proper prefix of code present in the set,
// or nil when the code is a root.
func parentCode(code string, codes map[string]bool) *string {
	for i := len(code) - 1; i > 0; i-- {
		prefix := code[:i]
		if codes[prefix] {
			return &prefix
		}
	}
	return nil
}
