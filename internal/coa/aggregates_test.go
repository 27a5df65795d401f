package coa_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auditdesk/internal/coa"
	"auditdesk/internal/domain"
)

func sampleEntries() []coa.Entry {
	return []coa.Entry{
		{Classe: 1, SectionCode: "10", SectionLabel: "Capital et reserves", Account: "101", Label: "Capital"},
		{Classe: 1, SectionCode: "10", SectionLabel: "Capital et reserves", Account: "106", Label: "Reserves"},
		{Classe: 6, SectionCode: "60", SectionLabel: "Achats", Account: "601", Label: "Matieres premieres"},
		{Classe: 6, SectionCode: "61", SectionLabel: "Services exterieurs", Account: "611", Label: "Sous-traitance"},
	}
}

func TestBuildTemplate_GroupsByClasseAndSection(t *testing.T) {
	doc := coa.BuildTemplate("pcm-2024", sampleEntries())

	assert.Equal(t, "pcm-2024", doc["knowledge_base_id"])

	classes, ok := doc["classes"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, classes, 2)

	assert.Equal(t, 1, classes[0]["classe"])
	sections := classes[0]["sections"].([]map[string]interface{})
	require.Len(t, sections, 1)
	assert.Equal(t, "10", sections[0]["code"])
	assert.Equal(t, "Capital et reserves", sections[0]["label"])
	accounts := sections[0]["accounts"].([]map[string]interface{})
	require.Len(t, accounts, 2)
	assert.Equal(t, "101", accounts[0]["code"])
	assert.Equal(t, "106", accounts[1]["code"])

	assert.Equal(t, 6, classes[1]["classe"])
	assert.Len(t, classes[1]["sections"].([]map[string]interface{}), 2)
}

func TestBuildRules_OneRulePerClasse(t *testing.T) {
	doc := coa.BuildRules("pcm-2024", sampleEntries())

	rules, ok := doc["rules"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, rules, 2)

	assert.Equal(t, 1, rules[0]["classe"])
	assert.Equal(t, "BS", rules[0]["type"])
	assert.Equal(t, []string{"10"}, rules[0]["sections"])

	assert.Equal(t, 6, rules[1]["classe"])
	assert.Equal(t, "IS", rules[1]["type"])
	assert.Equal(t, []string{"60", "61"}, rules[1]["sections"])
}

func TestBuildDocuments_TemplateAndRules(t *testing.T) {
	tenantID := uuid.New()
	engagementID := uuid.New()

	docs := coa.BuildDocuments(tenantID, engagementID, "pcm-2024", sampleEntries())
	require.Len(t, docs, 2)

	assert.Equal(t, domain.COADocTemplate, docs[0].Kind)
	assert.Equal(t, domain.COADocRules, docs[1].Kind)
	for _, d := range docs {
		assert.Equal(t, tenantID, d.TenantID)
		assert.Equal(t, engagementID, d.EngagementID)
		assert.Equal(t, "pcm-2024", d.KnowledgeBaseID)
		assert.NotEmpty(t, d.Payload)
	}
}
