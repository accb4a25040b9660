package onboarding

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/Artexxx/hr-onboarding/internal/dto"
)

const (
	StartDateHorizonDays = 90
	RemoteApprovalAbove  = 50
	MaxExperienceYears   = 50

	ContractRateMin = 50
	ContractRateMax = 150
	SalaryMin       = 30000
	SalaryMax       = 200000
)

// MinimumAge — не моложе 18 лет
func MinimumAge(p dto.PersonalInfo, today time.Time) Failures {
	dob, ok := ParseDate(p.DateOfBirth)
	if !ok {
		return nil
	}

	if AgeOn(dob, today) < MinimumAgeYears {
		return Failures{{
			Path:    SectionPersonal.path("dateOfBirth"),
			Message: "Must be at least 18 years old",
			Kind:    KindFormat,
		}}
	}
	return nil
}

// StartDateWindow — от сегодня до +90 дней включительно
func StartDateWindow(j dto.JobDetails, today time.Time) Failures {
	start, ok := ParseDate(j.StartDate)
	if !ok {
		return nil
	}

	var out Failures
	day := Day(today)
	path := SectionJob.path("startDate")

	if start.Before(day) {
		out.add(path, "Start date cannot be in the past", KindFormat)
	}
	if start.After(day.AddDate(0, 0, StartDateHorizonDays)) {
		out.add(path, "Start date cannot be more than 90 days in the future", KindFormat)
	}
	return out
}

// WeekendExclusion — HR и Finance не выходят в пятницу и субботу
func WeekendExclusion(j dto.JobDetails) Failures {
	if j.Department != "HR" && j.Department != "Finance" {
		return nil
	}

	start, ok := ParseDate(j.StartDate)
	if !ok {
		return nil
	}

	if wd := start.Weekday(); wd == time.Friday || wd == time.Saturday {
		return Failures{{
			Path:    SectionJob.path("startDate"),
			Message: "Start date cannot be on a weekend for HR and Finance departments",
			Kind:    KindCrossField,
		}}
	}
	return nil
}

// SalaryBand — почасовая ставка для Contract, годовая зарплата для остальных
func SalaryBand(j dto.JobDetails) Failures {
	if j.Salary <= 0 {
		return nil
	}

	var (
		lo, hi float64
		msg    string
	)
	switch j.JobType {
	case dto.JobTypeContract:
		lo, hi = ContractRateMin, ContractRateMax
		msg = "Contract hourly rate must be between $50 and $150"
	case dto.JobTypeFullTime, dto.JobTypePartTime:
		lo, hi = SalaryMin, SalaryMax
		msg = j.JobType + " salary must be between $30,000 and $200,000"
	default:
		return nil
	}

	if j.Salary < lo || j.Salary > hi {
		return Failures{{Path: SectionJob.path("salary"), Message: msg, Kind: KindCrossField}}
	}
	return nil
}

func ManagerInDirectory(j dto.JobDetails, c *Catalog) Failures {
	if strings.TrimSpace(j.Manager) == "" || len(c.Managers) == 0 {
		return nil
	}

	path := SectionJob.path("manager")
	m, ok := c.Manager(j.Manager)
	if !ok {
		return Failures{{Path: path, Message: "Unknown manager", Kind: KindFormat}}
	}
	if j.Department != "" && m.Department != j.Department {
		return Failures{{
			Path:    path,
			Message: fmt.Sprintf("Manager must belong to the %s department", j.Department),
			Kind:    KindCrossField,
		}}
	}
	return nil
}

func ExperienceRange(s dto.Skills) Failures {
	var out Failures
	for _, skill := range sortedKeys(s.Experience) {
		if years := s.Experience[skill]; years < 0 || years > MaxExperienceYears {
			out.add(SectionSkills.path("experience."+skill), "Experience must be between 0 and 50 years", KindFormat)
		}
	}
	return out
}

func ExperienceKeys(s dto.Skills) Failures {
	var out Failures
	for _, skill := range sortedKeys(s.Experience) {
		if !slices.Contains(s.PrimarySkills, skill) {
			out.add(SectionSkills.path("experience."+skill), "Experience can only be recorded for selected primary skills", KindCrossField)
		}
	}
	return out
}

// HoursOrder — конец строго позже начала
func HoursOrder(s dto.Skills) Failures {
	if s.PreferredHours.Start == "" || s.PreferredHours.End == "" {
		return nil
	}

	var out Failures
	start, okStart := minutesOfDay(s.PreferredHours.Start)
	if !okStart {
		out.add(SectionSkills.path("preferredHours.start"), "Time must be in HH:MM format", KindFormat)
	}
	end, okEnd := minutesOfDay(s.PreferredHours.End)
	if !okEnd {
		out.add(SectionSkills.path("preferredHours.end"), "Time must be in HH:MM format", KindFormat)
	}
	if !okStart || !okEnd {
		return out
	}

	if end <= start {
		out.add(SectionSkills.path("preferredHours.end"), "End time must be after start time", KindCrossField)
	}
	return out
}

func RemoteApproval(s dto.Skills) Failures {
	if s.RemoteWorkPreference <= RemoteApprovalAbove {
		return nil
	}
	if s.ManagerApproval != nil && *s.ManagerApproval {
		return nil
	}
	return Failures{{
		Path:    SectionSkills.path("managerApproval"),
		Message: "Manager approval is required for remote work preference above 50%",
		Kind:    KindCrossField,
	}}
}

func SkillCatalog(s dto.Skills, department string, c *Catalog) Failures {
	offered := c.SkillsByDepartment[department]
	if len(offered) == 0 {
		return nil
	}

	var out Failures
	for _, skill := range s.PrimarySkills {
		if !slices.Contains(offered, skill) {
			out.add(SectionSkills.path("primarySkills"),
				fmt.Sprintf("Skill %q is not offered for the %s department", skill, department), KindCrossSection)
		}
	}
	return out
}

func RelationshipKnown(ec dto.EmergencyContact, c *Catalog) Failures {
	if strings.TrimSpace(ec.Relationship) == "" || len(c.Relationships) == 0 {
		return nil
	}
	if !c.HasRelationship(ec.Relationship) {
		return Failures{{Path: SectionEmergency.path("relationship"), Message: "Invalid relationship", Kind: KindFormat}}
	}
	return nil
}

func Confirmation(r dto.Review) Failures {
	if r.Confirmation {
		return nil
	}
	return Failures{{
		Path:    SectionReview.path("confirmation"),
		Message: "You must confirm that all information is correct",
		Kind:    KindTerminal,
	}}
}

func minutesOfDay(s string) (int, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
