package onboarding

import (
	"slices"
	"time"
)

type ManagerOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// View — состояние текущего шага для клиента
type View struct {
	Step             Step            `json:"step"`
	TotalSteps       int             `json:"totalSteps"`
	Title            string          `json:"title"`
	GuardianRequired bool            `json:"guardianRequired"`
	ApprovalRequired bool            `json:"approvalRequired"`
	ManagerOptions   []ManagerOption `json:"managerOptions"`
	SkillOptions     []string        `json:"skillOptions"`
	Relationships    []string        `json:"relationships"`
	Dirty            bool            `json:"dirty"`
	Failures         Failures        `json:"errors"`
	Summary          *Summary        `json:"summary,omitempty"`
}

func (w *Wizard) View(today time.Time) View {
	c := w.rules.catalog
	dept := w.form.JobDetails.Department

	managers := c.ManagersFor(dept)
	options := make([]ManagerOption, 0, len(managers))
	for _, m := range managers {
		options = append(options, ManagerOption{Value: m.ID, Label: c.ManagerLabel(m.ID)})
	}

	v := View{
		Step:             w.step,
		TotalSteps:       int(LastStep),
		Title:            w.step.Title(),
		GuardianRequired: GuardianRequired(w.form.PersonalInfo.DateOfBirth, today),
		ApprovalRequired: w.form.Skills.RemoteWorkPreference > RemoteApprovalAbove,
		ManagerOptions:   options,
		SkillOptions:     c.SkillsFor(dept),
		Relationships:    slices.Clone(c.Relationships),
		Dirty:            w.dirty,
		Failures:         w.Failures(),
	}
	if v.SkillOptions == nil {
		v.SkillOptions = []string{}
	}

	if w.step == StepReview {
		s := Summarize(w.form, c)
		v.Summary = &s
	}
	return v
}
