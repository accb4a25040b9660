package onboarding

import (
	"fmt"
	"strings"
)

// Kind — тип ошибки поля
type Kind string

const (
	KindFormat       Kind = "format"        // формат, диапазон, перечисление
	KindCrossField   Kind = "cross_field"   // расходится с полем того же раздела
	KindCrossSection Kind = "cross_section" // расходится с полем другого раздела
	KindTerminal     Kind = "terminal"      // не подтверждена анкета
)

// FieldError — ошибка поля, path вида "emergencyContact.guardianName"
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Failures — результат проверки, пустой значит шаг пройден
type Failures []FieldError

func (f Failures) Empty() bool {
	return len(f) == 0
}

func (f Failures) Has(path string) bool {
	for _, e := range f {
		if e.Path == path {
			return true
		}
	}
	return false
}

func (f Failures) First(path string) (FieldError, bool) {
	for _, e := range f {
		if e.Path == path {
			return e, true
		}
	}
	return FieldError{}, false
}

func (f Failures) Paths() []string {
	seen := make(map[string]struct{}, len(f))
	out := make([]string, 0, len(f))
	for _, e := range f {
		if _, ok := seen[e.Path]; ok {
			continue
		}
		seen[e.Path] = struct{}{}
		out = append(out, e.Path)
	}
	return out
}

func (f Failures) String() string {
	parts := make([]string, 0, len(f))
	for _, e := range f {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, "; ")
}

func (f *Failures) add(path, msg string, kind Kind) {
	*f = append(*f, FieldError{Path: path, Message: msg, Kind: kind})
}
