package onboarding

// Section — JSON-ключ раздела и префикс путей его полей
type Section string

const (
	SectionPersonal  Section = "personalInfo"
	SectionJob       Section = "jobDetails"
	SectionSkills    Section = "skills"
	SectionEmergency Section = "emergencyContact"
	SectionReview    Section = "review"
)

func (s Section) path(field string) string {
	return string(s) + "." + field
}

type Step int

const (
	StepPersonal Step = iota + 1
	StepJob
	StepSkills
	StepEmergency
	StepReview
)

const (
	FirstStep = StepPersonal
	LastStep  = StepReview
)

var stepSections = map[Step]Section{
	StepPersonal:  SectionPersonal,
	StepJob:       SectionJob,
	StepSkills:    SectionSkills,
	StepEmergency: SectionEmergency,
	StepReview:    SectionReview,
}

var stepTitles = map[Step]string{
	StepPersonal:  "Personal Information",
	StepJob:       "Job Details",
	StepSkills:    "Skills & Preferences",
	StepEmergency: "Emergency Contact",
	StepReview:    "Review & Submit",
}

func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

func (s Step) Section() Section {
	return stepSections[s]
}

func (s Step) Title() string {
	return stepTitles[s]
}

func ParseSection(name string) (Section, bool) {
	switch name {
	case "personal", string(SectionPersonal):
		return SectionPersonal, true
	case "job", string(SectionJob):
		return SectionJob, true
	case "skills":
		return SectionSkills, true
	case "emergency", string(SectionEmergency):
		return SectionEmergency, true
	case "review":
		return SectionReview, true
	}
	return "", false
}
