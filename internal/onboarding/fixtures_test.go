package onboarding

import (
	"time"

	"github.com/Artexxx/hr-onboarding/internal/dto"
)

// today is a Sunday.
var today = time.Date(2026, time.October, 18, 14, 30, 0, 0, time.UTC)

func boolPtr(b bool) *bool { return &b }

func validForm() dto.OnboardingForm {
	return dto.OnboardingForm{
		PersonalInfo: dto.PersonalInfo{
			FullName:    "Anna Ivanova",
			Email:       "anna@company.com",
			PhoneNumber: "+1-123-456-7890",
			DateOfBirth: "1994-06-12",
		},
		JobDetails: dto.JobDetails{
			Department:    "Engineering",
			PositionTitle: "Software Engineer",
			StartDate:     "2026-11-02",
			JobType:       dto.JobTypeFullTime,
			Salary:        120000,
			Manager:       "m1",
		},
		Skills: dto.Skills{
			PrimarySkills:        []string{"Go", "SQL", "Docker"},
			Experience:           map[string]float64{"Go": 5, "SQL": 3},
			PreferredHours:       dto.Hours{Start: "09:00", End: "17:00"},
			RemoteWorkPreference: 40,
		},
		EmergencyContact: dto.EmergencyContact{
			ContactName:  "Ivan Ivanov",
			Relationship: "Parent",
			PhoneNumber:  "+7-916-123-4567",
		},
		Review: dto.Review{Confirmation: true},
	}
}
