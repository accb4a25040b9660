package onboarding

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Artexxx/hr-onboarding/internal/dto"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const notProvided = "Not provided"

// Summary — сводка анкеты на шаге Review
type Summary struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phoneNumber"`
	DateOfBirth    string `json:"dateOfBirth"`
	ProfilePicture string `json:"profilePicture,omitempty"`

	Department    string `json:"department"`
	PositionTitle string `json:"positionTitle"`
	StartDate     string `json:"startDate"`
	JobType       string `json:"jobType"`
	Compensation  string `json:"compensation"`
	Manager       string `json:"manager"`

	PrimarySkills   string   `json:"primarySkills"`
	Experience      []string `json:"experience"`
	PreferredHours  string   `json:"preferredHours"`
	RemoteWork      string   `json:"remoteWork"`
	ManagerApproval string   `json:"managerApproval,omitempty"`
	ExtraNotes      string   `json:"extraNotes,omitempty"`

	ContactName   string `json:"contactName"`
	Relationship  string `json:"relationship"`
	ContactPhone  string `json:"contactPhone"`
	GuardianName  string `json:"guardianName,omitempty"`
	GuardianPhone string `json:"guardianPhone,omitempty"`
}

var printer = message.NewPrinter(language.English)

func Summarize(f dto.OnboardingForm, c *Catalog) Summary {
	s := Summary{
		FullName:      orNotProvided(f.PersonalInfo.FullName),
		Email:         orNotProvided(f.PersonalInfo.Email),
		PhoneNumber:   orNotProvided(f.PersonalInfo.PhoneNumber),
		DateOfBirth:   humanDate(f.PersonalInfo.DateOfBirth),
		Department:    orNotProvided(f.JobDetails.Department),
		PositionTitle: orNotProvided(f.JobDetails.PositionTitle),
		StartDate:     humanDate(f.JobDetails.StartDate),
		JobType:       orNotProvided(f.JobDetails.JobType),
		Compensation:  FormatSalary(f.JobDetails.JobType, f.JobDetails.Salary),
		Manager:       orNotProvided(c.ManagerLabel(f.JobDetails.Manager)),
		PrimarySkills: orNotProvided(strings.Join(f.Skills.PrimarySkills, ", ")),
		RemoteWork:    strconv.Itoa(f.Skills.RemoteWorkPreference) + "%",
		ExtraNotes:    f.Skills.ExtraNotes,
		ContactName:   orNotProvided(f.EmergencyContact.ContactName),
		Relationship:  orNotProvided(f.EmergencyContact.Relationship),
		ContactPhone:  orNotProvided(f.EmergencyContact.PhoneNumber),
		GuardianName:  f.EmergencyContact.GuardianName,
		GuardianPhone: f.EmergencyContact.GuardianPhone,
	}

	if p := f.PersonalInfo.ProfilePicture; p != nil {
		s.ProfilePicture = p.Name
	}

	skills := make([]string, 0, len(f.Skills.Experience))
	for k := range f.Skills.Experience {
		skills = append(skills, k)
	}
	sort.Strings(skills)
	s.Experience = make([]string, 0, len(skills))
	for _, k := range skills {
		s.Experience = append(s.Experience, fmt.Sprintf("%s: %s years", k, strconv.FormatFloat(f.Skills.Experience[k], 'f', -1, 64)))
	}

	if h := f.Skills.PreferredHours; h.Start != "" || h.End != "" {
		s.PreferredHours = h.Start + " - " + h.End
	} else {
		s.PreferredHours = notProvided
	}

	if f.Skills.RemoteWorkPreference > RemoteApprovalAbove {
		s.ManagerApproval = "No"
		if f.Skills.ManagerApproval != nil && *f.Skills.ManagerApproval {
			s.ManagerApproval = "Yes"
		}
	}

	return s
}

// FormatSalary renders "$75/hour" for contracts and "$120,000/year" otherwise.
func FormatSalary(jobType string, amount float64) string {
	if amount <= 0 {
		return notProvided
	}
	if jobType == dto.JobTypeContract {
		return "$" + strconv.FormatFloat(amount, 'f', -1, 64) + "/hour"
	}
	return printer.Sprintf("$%d/year", int64(math.Round(amount)))
}

func humanDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return orNotProvided(s)
	}
	return t.Format("January 2, 2006")
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return notProvided
	}
	return s
}
