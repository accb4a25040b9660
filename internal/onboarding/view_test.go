package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizard_View(t *testing.T) {
	w := newTestWizard()

	v := w.View(today)
	assert.Equal(t, StepPersonal, v.Step)
	assert.Equal(t, 5, v.TotalSteps)
	assert.Equal(t, "Personal Information", v.Title)
	assert.False(t, v.GuardianRequired)
	assert.False(t, v.ApprovalRequired)
	assert.Len(t, v.ManagerOptions, 6)
	assert.Empty(t, v.SkillOptions)
	assert.NotNil(t, v.SkillOptions)
	assert.Nil(t, v.Summary)
	assert.False(t, v.Dirty)
}

func TestWizard_ViewFollowsRecord(t *testing.T) {
	w := newTestWizard()
	form := validForm()
	form.PersonalInfo.DateOfBirth = "2006-01-01"
	form.Skills.RemoteWorkPreference = 75
	form.Skills.ManagerApproval = boolPtr(true)
	form.EmergencyContact.GuardianName = "Olga Ivanova"
	form.EmergencyContact.GuardianPhone = "+1-555-123-4567"
	fill(t, w, form)

	v := w.View(today)
	assert.True(t, v.GuardianRequired)
	assert.True(t, v.ApprovalRequired)
	assert.True(t, v.Dirty)
	assert.Equal(t, []ManagerOption{
		{Value: "m1", Label: "John Smith (Engineering)"},
		{Value: "m6", Label: "Lisa Anderson (Engineering)"},
	}, v.ManagerOptions)
	assert.Contains(t, v.SkillOptions, "Kubernetes")
	assert.NotContains(t, v.SkillOptions, "SEO")
}

func TestWizard_ViewCarriesFailuresAndSummary(t *testing.T) {
	w := newTestWizard()
	form := validForm()
	fill(t, w, form)

	p := form.PersonalInfo
	p.FullName = ""
	require.NoError(t, w.SetPersonalInfo(p))
	require.NotEmpty(t, w.Next(today))

	v := w.View(today)
	require.Len(t, v.Failures, 1)
	assert.Equal(t, "Full name is required", v.Failures[0].Message)

	require.NoError(t, w.SetPersonalInfo(form.PersonalInfo))
	walkToReview(t, w)

	v = w.View(today)
	assert.Equal(t, "Review & Submit", v.Title)
	assert.Empty(t, v.Failures)
	require.NotNil(t, v.Summary)
	assert.Equal(t, "Anna Ivanova", v.Summary.FullName)
}

func TestWizard_ViewDoesNotShareCatalog(t *testing.T) {
	w := newTestWizard()
	w.form.JobDetails.Department = "Engineering"

	v := w.View(today)
	require.NotEmpty(t, v.Relationships)
	require.NotEmpty(t, v.SkillOptions)
	v.Relationships[0] = "Neighbor"
	v.SkillOptions[0] = "Cobol"

	again := w.View(today)
	assert.NotEqual(t, "Neighbor", again.Relationships[0])
	assert.NotEqual(t, "Cobol", again.SkillOptions[0])
}
