// Package settings holds the user profile: who is revising, for which exam,
// and when it is.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ExamType identifies the target examination.
type ExamType string

const (
	FRCAPrimary ExamType = "FRCA_PRIMARY"
	FRCAFinal   ExamType = "FRCA_FINAL"
	EDAICPart1  ExamType = "EDAIC_PART1"
)

// AllExamTypes returns the supported exams in display order.
func AllExamTypes() []ExamType {
	return []ExamType{FRCAPrimary, FRCAFinal, EDAICPart1}
}

// Label returns the human-readable exam name.
func (e ExamType) Label() string {
	switch e {
	case FRCAPrimary:
		return "Primary FRCA"
	case FRCAFinal:
		return "Final FRCA"
	case EDAICPart1:
		return "EDAIC Part 1"
	default:
		return string(e)
	}
}

// IsEDAIC reports whether the exam follows the European basic-science heavy format.
func (e ExamType) IsEDAIC() bool {
	return e == EDAICPart1
}

// Focus is the one-line revision emphasis shown next to the exam picker.
func (e ExamType) Focus() string {
	if e.IsEDAIC() {
		return "Curriculum will prioritize Basic Sciences and Physiology."
	}
	return "Curriculum will balance Clinical and Basic Sciences."
}

// Valid reports whether e is one of the supported exams.
func (e ExamType) Valid() bool {
	for _, t := range AllExamTypes() {
		if e == t {
			return true
		}
	}
	return false
}

// ParseExamType accepts either the constant name or the label, case-insensitively.
func ParseExamType(s string) (ExamType, error) {
	s = strings.TrimSpace(s)
	for _, t := range AllExamTypes() {
		if strings.EqualFold(s, string(t)) || strings.EqualFold(s, t.Label()) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown exam type %q", s)
}

// DateLayout is the wire and input format for exam dates.
const DateLayout = "2006-01-02"

// Date is a calendar day. It serializes as YYYY-MM-DD and is anchored at
// midnight UTC.
type Date struct {
	time.Time
}

// NewDate truncates t to its UTC calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	// Older saves may hold a full timestamp.
	if len(s) > len(DateLayout) {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid date %q", s)
		}
		*d = NewDate(t)
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UserSettings is the profile singleton. It is always replaced wholesale.
type UserSettings struct {
	Name     string   `json:"name"`
	ExamType ExamType `json:"examType"`
	ExamDate Date     `json:"examDate"`
}

// DefaultName is used until the user sets their own.
const DefaultName = "Candidate"

// DefaultLeadTime is how far away a fresh profile's exam is.
const DefaultLeadTime = 90 * 24 * time.Hour

// Default returns the first-run profile: a Primary FRCA candidate sitting
// the exam 90 days from now.
func Default(now time.Time) UserSettings {
	return UserSettings{
		Name:     DefaultName,
		ExamType: FRCAPrimary,
		ExamDate: NewDate(now.Add(DefaultLeadTime)),
	}
}

// DaysRemaining returns ceil((examDate - now) / 1 day), never negative.
func (s UserSettings) DaysRemaining(now time.Time) int {
	diff := s.ExamDate.Sub(now)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(float64(diff) / float64(24*time.Hour)))
}

// Validate checks that every field is usable.
func (s UserSettings) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if !s.ExamType.Valid() {
		errs = append(errs, fmt.Errorf("unknown exam type %q", s.ExamType))
	}
	if s.ExamDate.IsZero() {
		errs = append(errs, errors.New("exam date is required"))
	}
	return errors.Join(errs...)
}
