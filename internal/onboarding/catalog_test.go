package onboarding

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Lookups(t *testing.T) {
	c := DefaultCatalog()

	assert.Len(t, c.ManagersFor(""), 6)
	eng := c.ManagersFor("Engineering")
	require.Len(t, eng, 2)
	assert.Equal(t, "m1", eng[0].ID)
	assert.Equal(t, "m6", eng[1].ID)
	assert.Empty(t, c.ManagersFor("Legal"))

	assert.Contains(t, c.SkillsFor("Marketing"), "SEO")
	assert.Nil(t, c.SkillsFor("Legal"))

	assert.Equal(t, "Emily Davis (HR)", c.ManagerLabel("m4"))
	assert.Equal(t, "m42", c.ManagerLabel("m42"))

	assert.True(t, c.HasRelationship("Guardian"))
	assert.False(t, c.HasRelationship("guardian"))
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.yaml")
	data := `
managers:
  - id: q1
    name: Quinn Lee
    department: Sales
skills_by_department:
  Sales: [CRM, Negotiation, Forecasting]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	c, err := LoadCatalog(path)
	require.NoError(t, err)

	require.Len(t, c.Managers, 1)
	assert.Equal(t, "Quinn Lee (Sales)", c.ManagerLabel("q1"))
	assert.Equal(t, []string{"CRM", "Negotiation", "Forecasting"}, c.SkillsFor("Sales"))
	assert.Equal(t, DefaultCatalog().Relationships, c.Relationships)
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestParseSection(t *testing.T) {
	tests := []struct {
		name string
		want Section
		ok   bool
	}{
		{"personal", SectionPersonal, true},
		{"personalInfo", SectionPersonal, true},
		{"job", SectionJob, true},
		{"skills", SectionSkills, true},
		{"emergency", SectionEmergency, true},
		{"review", SectionReview, true},
		{"billing", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseSection(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	assert.Equal(t, SectionSkills, StepSkills.Section())
	assert.False(t, Step(0).Valid())
	assert.False(t, Step(6).Valid())
}
