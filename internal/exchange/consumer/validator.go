package consumer

import (
	"fmt"

	"github.com/Artexxx/hr-onboarding/internal/dto"
	"github.com/Artexxx/hr-onboarding/internal/onboarding"
	"github.com/google/uuid"
)

func checkEnvelope(env dto.Envelope[dto.OnboardingForm]) string {
	if env.Kind != dto.KindOnboarding {
		return fmt.Sprintf("invalid enum value: kind %q, want %q", env.Kind, dto.KindOnboarding)
	}

	if env.MessageID == uuid.Nil {
		return "missing required field message_id"
	}

	if env.SubmissionID == uuid.Nil {
		return "missing required field submission_id"
	}

	if env.Timestamp.IsZero() {
		return "missing required field timestamp"
	}

	return ""
}

// formatFailures renders rule failures as a single DLQ reason:
// "validation failed: personalInfo.email: Invalid email address; ...".
func formatFailures(f onboarding.Failures) string {
	return "validation failed: " + f.String()
}
