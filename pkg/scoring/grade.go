package scoring

import (
	"encoding/json"
	"fmt"
)

// Grade is the letter grade assigned to a quote. Grades are ordered:
// A+ > A > B > C > D > F.
type Grade int

const (
	GradeF Grade = iota
	GradeD
	GradeC
	GradeB
	GradeA
	GradeAPlus
)

var gradeNames = map[Grade]string{
	GradeAPlus: "A+",
	GradeA:     "A",
	GradeB:     "B",
	GradeC:     "C",
	GradeD:     "D",
	GradeF:     "F",
}

func (g Grade) String() string {
	if s, ok := gradeNames[g]; ok {
		return s
	}
	return "F"
}

// Better reports whether g ranks strictly above other.
func (g Grade) Better(other Grade) bool {
	return g > other
}

// Downgrade returns the grade one band lower, flooring at F.
func (g Grade) Downgrade() Grade {
	if g <= GradeF {
		return GradeF
	}
	return g - 1
}

// MinGrade returns the more restrictive of two grades.
func MinGrade(a, b Grade) Grade {
	if a < b {
		return a
	}
	return b
}

// ParseGrade converts a letter grade string to a Grade.
func ParseGrade(s string) (Grade, error) {
	for g, name := range gradeNames {
		if name == s {
			return g, nil
		}
	}
	return GradeF, fmt.Errorf("unknown grade: %q", s)
}

func (g Grade) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

func (g *Grade) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseGrade(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

func (g Grade) MarshalYAML() (any, error) {
	return g.String(), nil
}

func (g *Grade) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseGrade(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
