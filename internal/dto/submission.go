package dto

import (
	"time"

	"github.com/google/uuid"
)

// Submission — принятая и сохранённая анкета онбординга.
type Submission struct {
	SubmissionID uuid.UUID      `json:"submission_id" example:"6b6f9c38-3e2a-4b3d-9a9a-9f1c0f8b2a10"` // Идентификатор сессии мастера
	FullName     string         `json:"full_name" example:"Anna Ivanova"`
	Email        string         `json:"email" example:"anna@company.com"`
	Department   string         `json:"department" example:"Engineering"`
	StartDate    string         `json:"start_date" example:"2025-11-03"` // YYYY-MM-DD
	Form         OnboardingForm `json:"form"`
	SubmittedAt  time.Time      `json:"submitted_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
