package onboarding

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

const (
	MinimumAgeYears  = 18
	GuardianAgeYears = 21
)

// ParseDate — дата YYYY-MM-DD на полночь UTC
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Day — календарная дата t в UTC
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AgeOn — полных лет на дату today. Пороги 18 и 21 считаются только через неё.
func AgeOn(dob, today time.Time) int {
	today = Day(today)

	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}

	return age
}
