package settings

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	s := Default(now)

	assert.Equal(t, "Candidate", s.Name)
	assert.Equal(t, FRCAPrimary, s.ExamType)
	assert.Equal(t, "2026-06-08", s.ExamDate.String())
	assert.Equal(t, 90, s.DaysRemaining(now))
}

func TestDaysRemaining(t *testing.T) {
	exam := UserSettings{ExamDate: mustDate(t, "2026-05-01")}
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"exact midnight one day before", time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC), 1},
		{"partial day rounds up", time.Date(2026, 4, 29, 23, 0, 0, 0, time.UTC), 2},
		{"one second before", time.Date(2026, 4, 30, 23, 59, 59, 0, time.UTC), 1},
		{"exam instant", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), 0},
		{"past exam clamps", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exam.DaysRemaining(tt.now))
		})
	}
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Primary FRCA", FRCAPrimary.Label())
	assert.Equal(t, "Final FRCA", FRCAFinal.Label())
	assert.Equal(t, "EDAIC Part 1", EDAICPart1.Label())
	assert.Contains(t, EDAICPart1.Focus(), "Basic Sciences and Physiology")
	assert.Contains(t, FRCAFinal.Focus(), "balance Clinical")
}

func TestParseExamType(t *testing.T) {
	for _, in := range []string{"EDAIC_PART1", "edaic part 1", " EDAIC Part 1 "} {
		got, err := ParseExamType(in)
		require.NoError(t, err, in)
		assert.Equal(t, EDAICPart1, got)
	}
	_, err := ParseExamType("USMLE")
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	s := UserSettings{Name: "Dr Lee", ExamType: FRCAFinal, ExamDate: mustDate(t, "2026-09-15")}
	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Dr Lee","examType":"FRCA_FINAL","examDate":"2026-09-15"}`, string(b))

	var back UserSettings
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, s, back)
}

func TestDateUnmarshal_Timestamp(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2026-09-15T10:00:00Z"`), &d))
	assert.Equal(t, "2026-09-15", d.String())

	assert.Error(t, json.Unmarshal([]byte(`"15/09/2026"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`42`), &d))
}

func TestValidate(t *testing.T) {
	ok := Default(time.Now())
	assert.NoError(t, ok.Validate())

	bad := UserSettings{Name: "  ", ExamType: "NOPE"}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "unknown exam type")
	assert.Contains(t, err.Error(), "exam date is required")
}

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}
