package onboarding

import (
	"fmt"
	"slices"

	"github.com/Artexxx/hr-onboarding/internal/dto"
	"github.com/Artexxx/hr-onboarding/library/yamlreader"
)

var (
	Departments = []string{"Engineering", "Marketing", "Sales", "HR", "Finance"}
	JobTypes    = []string{dto.JobTypeFullTime, dto.JobTypePartTime, dto.JobTypeContract}
)

// Catalog — справочники мастера
type Catalog struct {
	Relationships      []string            `json:"relationships" yaml:"relationships"`
	SkillsByDepartment map[string][]string `json:"skillsByDepartment" yaml:"skills_by_department"`
	Managers           []dto.Manager       `json:"managers" yaml:"managers"`
}

// LoadCatalog — справочники из YAML, пустые списки берутся из DefaultCatalog
func LoadCatalog(path string) (*Catalog, error) {
	c, err := yamlreader.NewConfig[Catalog](path)
	if err != nil {
		return nil, fmt.Errorf("yamlreader.NewConfig: %w", err)
	}

	def := DefaultCatalog()
	if len(c.Relationships) == 0 {
		c.Relationships = def.Relationships
	}
	if len(c.SkillsByDepartment) == 0 {
		c.SkillsByDepartment = def.SkillsByDepartment
	}
	if len(c.Managers) == 0 {
		c.Managers = def.Managers
	}

	return c, nil
}

func DefaultCatalog() *Catalog {
	return &Catalog{
		Relationships: []string{"Spouse", "Parent", "Sibling", "Child", "Friend", "Guardian", "Other"},
		SkillsByDepartment: map[string][]string{
			"Engineering": {"JavaScript", "TypeScript", "Go", "Python", "React", "SQL", "Docker", "Kubernetes", "AWS"},
			"Marketing":   {"SEO", "Content Writing", "Social Media", "Google Analytics", "Copywriting", "Email Marketing"},
			"Sales":       {"Negotiation", "CRM", "Lead Generation", "Cold Calling", "Account Management", "Presentation"},
			"HR":          {"Recruiting", "Employee Relations", "Payroll", "Onboarding", "Compliance", "Training"},
			"Finance":     {"Accounting", "Financial Analysis", "Budgeting", "Excel", "Forecasting", "Auditing"},
		},
		Managers: []dto.Manager{
			{ID: "m1", Name: "John Smith", Department: "Engineering"},
			{ID: "m2", Name: "Sarah Johnson", Department: "Marketing"},
			{ID: "m3", Name: "Michael Brown", Department: "Sales"},
			{ID: "m4", Name: "Emily Davis", Department: "HR"},
			{ID: "m5", Name: "David Wilson", Department: "Finance"},
			{ID: "m6", Name: "Lisa Anderson", Department: "Engineering"},
		},
	}
}

func (c *Catalog) ManagersFor(department string) []dto.Manager {
	if department == "" {
		return slices.Clone(c.Managers)
	}

	out := make([]dto.Manager, 0, len(c.Managers))
	for _, m := range c.Managers {
		if m.Department == department {
			out = append(out, m)
		}
	}
	return out
}

func (c *Catalog) SkillsFor(department string) []string {
	return slices.Clone(c.SkillsByDepartment[department])
}

func (c *Catalog) Manager(id string) (dto.Manager, bool) {
	for _, m := range c.Managers {
		if m.ID == id {
			return m, true
		}
	}
	return dto.Manager{}, false
}

func (c *Catalog) ManagerLabel(id string) string {
	m, ok := c.Manager(id)
	if !ok {
		return id
	}
	return fmt.Sprintf("%s (%s)", m.Name, m.Department)
}

func (c *Catalog) HasRelationship(r string) bool {
	return slices.Contains(c.Relationships, r)
}
