package onboarding

import (
	"strings"
	"time"

	"github.com/Artexxx/hr-onboarding/internal/dto"
)

// GuardianForMinor — до 21 года обязательны имя и телефон опекуна.
// Без даты рождения правило не срабатывает.
func GuardianForMinor(dateOfBirth string, ec dto.EmergencyContact, today time.Time) Failures {
	if strings.TrimSpace(dateOfBirth) == "" {
		return nil
	}
	dob, ok := ParseDate(dateOfBirth)
	if !ok {
		return nil
	}
	if AgeOn(dob, today) >= GuardianAgeYears {
		return nil
	}

	var out Failures
	if strings.TrimSpace(ec.GuardianName) == "" {
		out.add(SectionEmergency.path("guardianName"), "Guardian name is required for users under 21", KindCrossSection)
	}

	switch {
	case ec.GuardianPhone == "":
		out.add(SectionEmergency.path("guardianPhone"), "Guardian phone is required for users under 21", KindCrossSection)
	case !PhonePattern.MatchString(ec.GuardianPhone):
		out.add(SectionEmergency.path("guardianPhone"), "Guardian phone must be in format +1-123-456-7890", KindCrossSection)
	}

	return out
}

func GuardianRequired(dateOfBirth string, today time.Time) bool {
	dob, ok := ParseDate(dateOfBirth)
	if !ok {
		return false
	}
	return AgeOn(dob, today) < GuardianAgeYears
}
