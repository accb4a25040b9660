package onboarding

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/Artexxx/hr-onboarding/internal/dto"
	"github.com/google/uuid"
)

var (
	ErrNotOnReviewStep  = errors.New("submission is only possible from the review step")
	ErrAlreadySubmitted = errors.New("onboarding already submitted")
)

// Sink — получатель подтверждённой анкеты
type Sink interface {
	Submit(ctx context.Context, id uuid.UUID, form dto.OnboardingForm) error
}

// Wizard — мастер одной сессии, вызовы сериализует вызывающий.
// Раздел проверяется только при переходе вперёд, правка назад не сбрасывает пройденные шаги.
type Wizard struct {
	id        uuid.UUID
	rules     *Validator
	step      Step
	form      dto.OnboardingForm
	failures  Failures
	dirty     bool
	submitted bool
}

func NewWizard(id uuid.UUID, rules *Validator) *Wizard {
	return &Wizard{
		id:    id,
		rules: rules,
		step:  FirstStep,
		form:  dto.NewOnboardingForm(),
	}
}

func (w *Wizard) ID() uuid.UUID {
	return w.id
}

func (w *Wizard) Step() Step {
	return w.step
}

func (w *Wizard) Failures() Failures {
	return slices.Clone(w.failures)
}

func (w *Wizard) Dirty() bool {
	return w.dirty
}

func (w *Wizard) Submitted() bool {
	return w.submitted
}

// Form — копия анкеты
func (w *Wizard) Form() dto.OnboardingForm {
	return cloneForm(w.form)
}

func (w *Wizard) Next(today time.Time) Failures {
	f := w.rules.ForStep(w.step, &w.form, today)
	w.failures = f
	if !f.Empty() {
		return f
	}

	if w.step < LastStep {
		w.step++
	}
	return nil
}

func (w *Wizard) Prev() {
	if w.step > FirstStep {
		w.step--
	}
	w.failures = nil
}

// Submit — только с шага Review. Ошибки полей в Failures, ошибки sink в error.
func (w *Wizard) Submit(ctx context.Context, sink Sink, today time.Time) (Failures, error) {
	if w.submitted {
		return nil, ErrAlreadySubmitted
	}
	if w.step != LastStep {
		return nil, ErrNotOnReviewStep
	}

	if f := w.rules.ForStep(StepReview, &w.form, today); !f.Empty() {
		w.failures = f
		return f, nil
	}

	if err := sink.Submit(ctx, w.id, w.Form()); err != nil {
		return nil, fmt.Errorf("sink.Submit: %w", err)
	}

	w.submitted = true
	w.dirty = false
	w.failures = nil
	return nil, nil
}

func (w *Wizard) SetPersonalInfo(p dto.PersonalInfo) error {
	if w.submitted {
		return ErrAlreadySubmitted
	}
	w.form.PersonalInfo = p
	w.dirty = true
	return nil
}

// При смене отдела сбрасываются чужой руководитель и навыки не из каталога отдела.
func (w *Wizard) SetJobDetails(j dto.JobDetails) error {
	if w.submitted {
		return ErrAlreadySubmitted
	}

	prev := w.form.JobDetails.Department
	w.form.JobDetails = j
	w.dirty = true

	if prev != "" && prev != j.Department {
		w.dropHiddenManager()
		w.pruneSkills()
	}
	return nil
}

func (w *Wizard) SetSkills(s dto.Skills) error {
	if w.submitted {
		return ErrAlreadySubmitted
	}

	if s.PrimarySkills == nil {
		s.PrimarySkills = []string{}
	}
	if s.Experience == nil {
		s.Experience = map[string]float64{}
	}
	if s.RemoteWorkPreference <= RemoteApprovalAbove {
		s.ManagerApproval = nil
	}

	w.form.Skills = s
	w.dirty = true
	return nil
}

func (w *Wizard) SetEmergencyContact(ec dto.EmergencyContact) error {
	if w.submitted {
		return ErrAlreadySubmitted
	}
	w.form.EmergencyContact = ec
	w.dirty = true
	return nil
}

func (w *Wizard) SetReview(r dto.Review) error {
	if w.submitted {
		return ErrAlreadySubmitted
	}
	w.form.Review = r
	w.dirty = true
	return nil
}

func (w *Wizard) dropHiddenManager() {
	j := &w.form.JobDetails
	if j.Manager == "" {
		return
	}
	if m, ok := w.rules.catalog.Manager(j.Manager); ok && m.Department != j.Department {
		j.Manager = ""
	}
}

func (w *Wizard) pruneSkills() {
	s := &w.form.Skills
	if len(s.PrimarySkills) == 0 {
		return
	}

	offered := w.rules.catalog.SkillsByDepartment[w.form.JobDetails.Department]
	kept := make([]string, 0, len(s.PrimarySkills))
	for _, skill := range s.PrimarySkills {
		if slices.Contains(offered, skill) {
			kept = append(kept, skill)
		}
	}
	if len(kept) == len(s.PrimarySkills) {
		return
	}

	s.PrimarySkills = kept
	maps.DeleteFunc(s.Experience, func(skill string, _ float64) bool {
		return !slices.Contains(kept, skill)
	})
}

func cloneForm(f dto.OnboardingForm) dto.OnboardingForm {
	out := f
	if f.PersonalInfo.ProfilePicture != nil {
		pic := *f.PersonalInfo.ProfilePicture
		out.PersonalInfo.ProfilePicture = &pic
	}
	out.Skills.PrimarySkills = slices.Clone(f.Skills.PrimarySkills)
	out.Skills.Experience = maps.Clone(f.Skills.Experience)
	if f.Skills.ManagerApproval != nil {
		approval := *f.Skills.ManagerApproval
		out.Skills.ManagerApproval = &approval
	}
	return out
}
