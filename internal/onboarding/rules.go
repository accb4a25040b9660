package onboarding

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/Artexxx/hr-onboarding/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var PhonePattern = regexp.MustCompile(`^\+\d{1,3}-\d{3}-\d{3}-\d{4}$`)

const phoneFormatMessage = "Phone number must be in format +1-123-456-7890"

// path -> tag -> текст ошибки, "*" для любого тега
var messages = map[string]map[string]string{
	"personalInfo.fullName": {
		"required": "Full name is required",
		"fullname": "Full name must contain at least 2 words",
	},
	"personalInfo.email": {
		"required": "Email is required",
		"email":    "Invalid email address",
	},
	"personalInfo.phoneNumber": {"*": phoneFormatMessage},
	"personalInfo.dateOfBirth": {
		"required": "Date of birth is required",
		"datetime": "Date of birth must be a valid date (YYYY-MM-DD)",
	},
	"personalInfo.profilePicture.size": {"*": "File size must be less than 2MB"},
	"personalInfo.profilePicture.type": {"*": "Only JPG and PNG files are allowed"},

	"jobDetails.department":    {"*": "Invalid department"},
	"jobDetails.positionTitle": {"*": "Position title must be at least 3 characters"},
	"jobDetails.startDate": {
		"required": "Start date is required",
		"datetime": "Start date must be a valid date (YYYY-MM-DD)",
	},
	"jobDetails.jobType": {"*": "Invalid job type"},
	"jobDetails.salary":  {"*": "Salary is required"},
	"jobDetails.manager": {"*": "Manager is required"},

	"skills.primarySkills":        {"*": "Select at least 3 primary skills"},
	"skills.preferredHours.start": {"*": "Start time is required"},
	"skills.preferredHours.end":   {"*": "End time is required"},
	"skills.remoteWorkPreference": {"*": "Remote work preference must be between 0 and 100"},
	"skills.extraNotes":           {"*": "Notes cannot exceed 500 characters"},

	"emergencyContact.contactName":  {"*": "Contact name is required"},
	"emergencyContact.relationship": {"*": "Relationship is required"},
	"emergencyContact.phoneNumber":  {"*": phoneFormatMessage},
}

// Validator — правила разделов, общий для всех сессий
type Validator struct {
	validate *validator.Validate
	catalog  *Catalog
}

func NewValidator(catalog *Catalog) *Validator {
	if catalog == nil {
		catalog = DefaultCatalog()
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// RegisterValidation only fails on an empty tag name or a nil func.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return PhonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("fullname", func(fl validator.FieldLevel) bool {
		return len(strings.Fields(fl.Field().String())) >= 2
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)

	return &Validator{validate: v, catalog: catalog}
}

func (v *Validator) Catalog() *Catalog {
	return v.catalog
}

func (v *Validator) Section(s Section, form *dto.OnboardingForm, today time.Time) Failures {
	var out Failures

	switch s {
	case SectionPersonal:
		out = append(out, v.tags(s, &form.PersonalInfo)...)
		out = append(out, MinimumAge(form.PersonalInfo, today)...)
	case SectionJob:
		out = append(out, v.tags(s, &form.JobDetails)...)
		out = append(out, StartDateWindow(form.JobDetails, today)...)
		out = append(out, WeekendExclusion(form.JobDetails)...)
		out = append(out, SalaryBand(form.JobDetails)...)
		out = append(out, ManagerInDirectory(form.JobDetails, v.catalog)...)
	case SectionSkills:
		out = append(out, v.tags(s, &form.Skills)...)
		out = append(out, ExperienceRange(form.Skills)...)
		out = append(out, ExperienceKeys(form.Skills)...)
		out = append(out, HoursOrder(form.Skills)...)
		out = append(out, RemoteApproval(form.Skills)...)
	case SectionEmergency:
		out = append(out, v.tags(s, &form.EmergencyContact)...)
		out = append(out, RelationshipKnown(form.EmergencyContact, v.catalog)...)
	case SectionReview:
		out = append(out, Confirmation(form.Review)...)
	}

	return out
}

// ForStep — правила раздела плюс правила, читающие предыдущие разделы
func (v *Validator) ForStep(step Step, form *dto.OnboardingForm, today time.Time) Failures {
	out := v.Section(step.Section(), form, today)

	switch step {
	case StepSkills:
		out = append(out, SkillCatalog(form.Skills, form.JobDetails.Department, v.catalog)...)
	case StepEmergency:
		out = append(out, GuardianForMinor(form.PersonalInfo.DateOfBirth, form.EmergencyContact, today)...)
	}

	return out
}

func (v *Validator) All(form *dto.OnboardingForm, today time.Time) Failures {
	var out Failures
	for step := FirstStep; step <= LastStep; step++ {
		out = append(out, v.ForStep(step, form, today)...)
	}
	return out
}

func (v *Validator) tags(s Section, value any) Failures {
	err := v.validate.Struct(value)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Failures{{Path: string(s), Message: err.Error(), Kind: KindFormat}}
	}

	out := make(Failures, 0, len(verrs))
	for _, fe := range verrs {
		path := fieldPath(s, fe.Namespace())
		out.add(path, messageFor(path, fe.Tag()), KindFormat)
	}
	return out
}

// fieldPath turns "PersonalInfo.profilePicture.size" into "personalInfo.profilePicture.size".
func fieldPath(s Section, namespace string) string {
	i := strings.IndexByte(namespace, '.')
	if i < 0 {
		return string(s)
	}
	return string(s) + namespace[i:]
}

func messageFor(path, tag string) string {
	if byTag, ok := messages[path]; ok {
		if msg, ok := byTag[tag]; ok {
			return msg
		}
		if msg, ok := byTag["*"]; ok {
			return msg
		}
	}
	return "invalid value in field '" + path + "'"
}
