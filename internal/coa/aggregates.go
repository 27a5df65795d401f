package coa

import (
	"sort"

	"github.com/google/uuid"

	"auditdesk/internal/domain"
)

// BuildTemplate aggregates parsed entries into the section template payload:
// classes in ascending order, each holding its sections with their accounts
// in file order.
func BuildTemplate(knowledgeBaseID string, entries []Entry) domain.JSONDoc {
	type section struct {
		code     string
		label    string
		accounts []map[string]interface{}
	}

	var classes []int
	byClasse := map[int][]*section{}
	current := map[int]*section{}

	for _, e := range entries {
		sec := current[e.Classe]
		if sec == nil || sec.code != e.SectionCode {
			if byClasse[e.Classe] == nil {
				classes = append(classes, e.Classe)
			}
			sec = &section{code: e.SectionCode, label: e.SectionLabel}
			byClasse[e.Classe] = append(byClasse[e.Classe], sec)
			current[e.Classe] = sec
		}
		sec.accounts = append(sec.accounts, map[string]interface{}{
			"code":  e.Account,
			"label": e.Label,
		})
	}
	sort.Ints(classes)

	out := make([]map[string]interface{}, 0, len(classes))
	for _, c := range classes {
		secs := make([]map[string]interface{}, 0, len(byClasse[c]))
		for _, s := range byClasse[c] {
			secs = append(secs, map[string]interface{}{
				"code":     s.code,
				"label":    s.label,
				"accounts": s.accounts,
			})
		}
		out = append(out, map[string]interface{}{
			"classe":   c,
			"sections": secs,
		})
	}

	return domain.JSONDoc{
		"knowledge_base_id": knowledgeBaseID,
		"classes":           out,
	}
}

// BuildRules derives the classification rule payload: one rule per account
// class present in the entries, mapping the class to its statement type and
// the section codes it covers.
func BuildRules(knowledgeBaseID string, entries []Entry) domain.JSONDoc {
	var classes []int
	sections := map[int]map[string]bool{}

	for _, e := range entries {
		if sections[e.Classe] == nil {
			sections[e.Classe] = map[string]bool{}
			classes = append(classes, e.Classe)
		}
		if e.SectionCode != "" {
			sections[e.Classe][e.SectionCode] = true
		}
	}
	sort.Ints(classes)

	rules := make([]map[string]interface{}, 0, len(classes))
	for _, c := range classes {
		codes := make([]string, 0, len(sections[c]))
		for code := range sections[c] {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		rules = append(rules, map[string]interface{}{
			"classe":   c,
			"type":     string(TypeForClass(c)),
			"sections": codes,
		})
	}

	return domain.JSONDoc{
		"knowledge_base_id": knowledgeBaseID,
		"rules":             rules,
	}
}

// BuildDocuments assembles the two aggregate documents persisted alongside an
// account import: the template first, then the rules.
func BuildDocuments(tenantID, engagementID uuid.UUID, knowledgeBaseID string, entries []Entry) []domain.COADocument {
	return []domain.COADocument{
		{
			TenantID:        tenantID,
			EngagementID:    engagementID,
			KnowledgeBaseID: knowledgeBaseID,
			Kind:            domain.COADocTemplate,
			Payload:         BuildTemplate(knowledgeBaseID, entries),
		},
		{
			TenantID:        tenantID,
			EngagementID:    engagementID,
			KnowledgeBaseID: knowledgeBaseID,
			Kind:            domain.COADocRules,
			Payload:         BuildRules(knowledgeBaseID, entries),
		},
	}
}
