package job

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	j := New(CreateJobInput{
		Title:       "Backend Engineer",
		Company:     "Acme",
		Description: "Build things",
	})

	assert.Equal(t, TypeFullTime, j.Type)
	assert.Equal(t, StatusActive, j.Status)
	assert.Equal(t, "USD", j.Salary.Currency)
	assert.Equal(t, "entry-level", j.Requirements.Experience)
	assert.NotNil(t, j.Requirements.Skills)
	assert.NotNil(t, j.Benefits)
	assert.NotNil(t, j.Applicants)
	assert.WithinDuration(t, j.CreatedAt.Add(30*24*time.Hour), j.ExpiresAt, time.Second)
}

func TestNewKeepsSuppliedValues(t *testing.T) {
	expires := time.Now().Add(time.Hour).UTC()
	j := New(CreateJobInput{
		Title:       "Contractor",
		Company:     "Acme",
		Description: "Short gig",
		Type:        TypeContract,
		Salary:      &Salary{Min: 100, Max: 200},
		Status:      StatusDraft,
		ExpiresAt:   &expires,
	})

	assert.Equal(t, TypeContract, j.Type)
	assert.Equal(t, StatusDraft, j.Status)
	assert.Equal(t, expires, j.ExpiresAt)
	assert.Equal(t, "USD", j.Salary.Currency, "currency default fills in even on a supplied salary")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Job)
		wantErrs []string
	}{
		{
			name:   "valid job",
			mutate: func(j *Job) {},
		},
		{
			name:     "blank title",
			mutate:   func(j *Job) { j.Title = "   " },
			wantErrs: []string{"Job title is required"},
		},
		{
			name:     "negative minimum salary",
			mutate:   func(j *Job) { j.Salary.Min = -1; j.Salary.Max = 10 },
			wantErrs: []string{"Minimum salary cannot be negative"},
		},
		{
			name:     "max below min",
			mutate:   func(j *Job) { j.Salary.Min = 100; j.Salary.Max = 50 },
			wantErrs: []string{"Maximum salary cannot be less than minimum"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			j := New(CreateJobInput{
				Title:       "Backend Engineer",
				Company:     "Acme",
				Description: "Build things",
			})
			tc.mutate(&j)

			res := j.Validate()
			if len(tc.wantErrs) == 0 {
				assert.True(t, res.IsValid)
				return
			}
			assert.False(t, res.IsValid)
			assert.Equal(t, tc.wantErrs, res.Errors)
		})
	}
}

func TestAddApplicant(t *testing.T) {
	j := New(CreateJobInput{Title: "T", Company: "C", Description: "D"})

	j2, added := AddApplicant(j, "user-1")
	require.True(t, added)
	assert.Equal(t, []string{"user-1"}, j2.Applicants)
	assert.Empty(t, j.Applicants, "input value must stay untouched")

	before := j2.UpdatedAt
	j3, added := AddApplicant(j2, "user-1")
	assert.False(t, added)
	assert.Equal(t, []string{"user-1"}, j3.Applicants)
	assert.Equal(t, before, j3.UpdatedAt, "duplicate application must not bump UpdatedAt")
}

func TestRemoveApplicant(t *testing.T) {
	j := New(CreateJobInput{Title: "T", Company: "C", Description: "D"})
	j, _ = AddApplicant(j, "a")
	j, _ = AddApplicant(j, "b")
	j, _ = AddApplicant(j, "c")

	j2, removed := RemoveApplicant(j, "b")
	require.True(t, removed)
	assert.Equal(t, []string{"a", "c"}, j2.Applicants)

	_, removed = RemoveApplicant(j2, "nobody")
	assert.False(t, removed)
}

func TestIsExpired(t *testing.T) {
	past := time.Now().Add(-time.Minute).UTC()
	j := New(CreateJobInput{Title: "T", Company: "C", Description: "D", ExpiresAt: &past})
	assert.True(t, j.IsExpired())

	fresh := New(CreateJobInput{Title: "T", Company: "C", Description: "D"})
	assert.False(t, fresh.IsExpired())
}

func TestSummarize(t *testing.T) {
	j := New(CreateJobInput{
		Title:       "T",
		Company:     "C",
		Description: "D",
		Salary:      &Salary{Min: 1, Max: 2},
	})
	j.ID = "j-1"
	j, _ = AddApplicant(j, "a")

	s := j.Summarize()
	assert.Equal(t, "j-1", s.ID)
	assert.Equal(t, 1, s.ApplicantsCount)
	assert.Equal(t, StatusActive, s.Status)
}
