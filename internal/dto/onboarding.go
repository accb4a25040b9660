package dto

// OnboardingForm — накопленные ответы мастера онбординга по всем пяти разделам.
type OnboardingForm struct {
	PersonalInfo     PersonalInfo     `json:"personalInfo"`
	JobDetails       JobDetails       `json:"jobDetails"`
	Skills           Skills           `json:"skills"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
	Review           Review           `json:"review"`
}

// PersonalInfo — шаг 1.
type PersonalInfo struct {
	FullName       string   `json:"fullName" validate:"required,fullname" example:"Anna Ivanova"`
	Email          string   `json:"email" validate:"required,email" example:"anna@company.com"`
	PhoneNumber    string   `json:"phoneNumber" validate:"required,phone" example:"+1-123-456-7890"`
	DateOfBirth    string   `json:"dateOfBirth" validate:"required,datetime=2006-01-02" example:"1994-06-12"` // YYYY-MM-DD
	ProfilePicture *Picture `json:"profilePicture,omitempty" validate:"omitempty"`
}

// Picture — метаданные загруженного фото профиля, сам файл хранится вне формы.
type Picture struct {
	Name        string `json:"name" example:"me.png"`
	Size        int64  `json:"size" validate:"lte=2097152" example:"48213"`
	ContentType string `json:"type" validate:"oneof=image/jpeg image/png" example:"image/png"`
}

// JobDetails — шаг 2.
type JobDetails struct {
	Department    string  `json:"department" validate:"required,oneof=Engineering Marketing Sales HR Finance" example:"Engineering"`
	PositionTitle string  `json:"positionTitle" validate:"required,min=3" example:"Software Engineer"`
	StartDate     string  `json:"startDate" validate:"required,datetime=2006-01-02" example:"2025-11-03"` // YYYY-MM-DD
	JobType       string  `json:"jobType" validate:"required,oneof=Full-time Part-time Contract" example:"Full-time"`
	Salary        float64 `json:"salary" validate:"gt=0" example:"120000"` // годовая зарплата или почасовая ставка для Contract
	Manager       string  `json:"manager" validate:"notblank" example:"m1"`
}

// Skills — шаг 3.
type Skills struct {
	PrimarySkills        []string           `json:"primarySkills" validate:"min=3" example:"Go,SQL,Docker"`
	Experience           map[string]float64 `json:"experience"` // навык -> лет опыта
	PreferredHours       Hours              `json:"preferredHours"`
	RemoteWorkPreference int                `json:"remoteWorkPreference" validate:"gte=0,lte=100" example:"40"`
	ManagerApproval      *bool              `json:"managerApproval,omitempty"`
	ExtraNotes           string             `json:"extraNotes,omitempty" validate:"max=500"`
}

// Hours — предпочитаемое рабочее время, HH:MM.
type Hours struct {
	Start string `json:"start" validate:"required" example:"09:00"`
	End   string `json:"end" validate:"required" example:"17:00"`
}

// EmergencyContact — шаг 4. Поля опекуна обязательны только для сотрудников младше 21 года,
// это проверяется отдельным правилом.
type EmergencyContact struct {
	ContactName   string `json:"contactName" validate:"notblank" example:"Ivan Ivanov"`
	Relationship  string `json:"relationship" validate:"notblank" example:"Parent"`
	PhoneNumber   string `json:"phoneNumber" validate:"required,phone" example:"+7-916-123-4567"`
	GuardianName  string `json:"guardianName,omitempty"`
	GuardianPhone string `json:"guardianPhone,omitempty"`
}

// Review — шаг 5.
type Review struct {
	Confirmation bool `json:"confirmation"`
}

// Manager — запись справочника руководителей.
type Manager struct {
	ID         string `json:"id" yaml:"id" example:"m1"`
	Name       string `json:"name" yaml:"name" example:"John Smith"`
	Department string `json:"department" yaml:"department" example:"Engineering"`
}

const (
	JobTypeFullTime = "Full-time"
	JobTypePartTime = "Part-time"
	JobTypeContract = "Contract"
)

// NewOnboardingForm возвращает пустую форму со значениями по умолчанию для новой сессии.
func NewOnboardingForm() OnboardingForm {
	return OnboardingForm{
		JobDetails: JobDetails{
			JobType: JobTypeFullTime,
		},
		Skills: Skills{
			PrimarySkills:        []string{},
			Experience:           map[string]float64{},
			RemoteWorkPreference: 0,
		},
	}
}
