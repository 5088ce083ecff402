package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobsplus/jobsplus/internal/domain/job"
)

func validJob(title string) job.CreateJobInput {
	return job.CreateJobInput{
		Title:       title,
		Company:     "Acme",
		Description: "desc",
		EmployerID:  "employer-1",
	}
}

func TestJobsCreateAndGet(t *testing.T) {
	repo := NewJobsRepo()

	created, err := repo.Create(validJob("Backend Engineer"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = repo.GetByID("missing")
	assert.ErrorIs(t, err, job.ErrNotFound)
}

func TestJobsCreateRejectsInvalid(t *testing.T) {
	repo := NewJobsRepo()

	_, err := repo.Create(job.CreateJobInput{
		Title:       "",
		Company:     "Acme",
		Description: "desc",
		Salary:      &job.Salary{Min: 100, Max: 50},
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{
		"Job title is required",
		"Maximum salary cannot be less than minimum",
	}, vErr.Errors)
	assert.Equal(t, 0, repo.Count())
}

func TestJobsFilter(t *testing.T) {
	repo := NewJobsRepo()

	mk := func(in job.CreateJobInput) job.Job {
		j, err := repo.Create(in)
		require.NoError(t, err)
		return j
	}

	frontend := mk(job.CreateJobInput{
		Title: "Senior Frontend Developer", Company: "TechCorp", Description: "React work",
		Skills: []string{"React", "JavaScript"}, IsRemote: true,
		Salary: &job.Salary{Min: 120000, Max: 150000},
		EmployerID: "employer-1",
	})
	web3 := mk(job.CreateJobInput{
		Title: "Smart Contract Developer", Company: "BlockchainCorp", Description: "Solidity work",
		Skills: []string{"Solidity", "Web3"}, IsRemote: true, IsWeb3: true,
		Salary: &job.Salary{Min: 80000, Max: 120000},
		EmployerID: "employer-1",
	})
	mk(job.CreateJobInput{
		Title: "Office Manager", Company: "Acme", Description: "On site",
		EmployerID: "employer-1",
	})
	closed := mk(validJob("Closed Role"))
	_, err := repo.Update(closed.ID, job.Patch{Status: strPtr(job.StatusClosed)})
	require.NoError(t, err)

	t.Run("empty filter keeps active jobs only", func(t *testing.T) {
		got := repo.Filter(job.Filter{})
		require.Len(t, got, 3)
		for _, j := range got {
			assert.Equal(t, job.StatusActive, j.Status)
		}
	})

	t.Run("remote flag", func(t *testing.T) {
		remote := true
		got := repo.Filter(job.Filter{IsRemote: &remote})
		require.Len(t, got, 2)
	})

	t.Run("remote and web3 combine", func(t *testing.T) {
		remote, w3 := true, true
		got := repo.Filter(job.Filter{IsRemote: &remote, IsWeb3: &w3})
		require.Len(t, got, 1)
		assert.Equal(t, web3.ID, got[0].ID)
	})

	t.Run("skills overlap", func(t *testing.T) {
		got := repo.Filter(job.Filter{Skills: []string{"react"}})
		require.Len(t, got, 1)
		assert.Equal(t, frontend.ID, got[0].ID)
	})

	t.Run("salary bounds", func(t *testing.T) {
		floor := 100000
		got := repo.Filter(job.Filter{SalaryMin: &floor})
		require.Len(t, got, 1)
		assert.Equal(t, frontend.ID, got[0].ID)
	})
}

func TestJobsFilterNewestFirst(t *testing.T) {
	repo := NewJobsRepo()

	first, err := repo.Create(validJob("first"))
	require.NoError(t, err)
	second, err := repo.Create(validJob("second"))
	require.NoError(t, err)

	// force distinct timestamps; creation happens within the same tick
	later := first.CreatedAt.Add(time.Minute)
	_, _, err = repo.Modify(second.ID, func(j job.Job) (job.Job, bool) {
		j.CreatedAt = later
		return j, true
	})
	require.NoError(t, err)

	got := repo.Filter(job.Filter{})
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
}

func TestJobsFilterVersusActiveJobsExpiry(t *testing.T) {
	repo := NewJobsRepo()

	past := time.Now().Add(-time.Hour).UTC()
	expired, err := repo.Create(job.CreateJobInput{
		Title: "Expired Role", Company: "Acme", Description: "d",
		EmployerID: "employer-1", ExpiresAt: &past,
	})
	require.NoError(t, err)
	fresh, err := repo.Create(validJob("Fresh Role"))
	require.NoError(t, err)

	// search keeps expired listings as long as their status is active
	filtered := repo.Filter(job.Filter{})
	require.Len(t, filtered, 2)

	// the stricter eligibility set drops them
	active := repo.ActiveJobs()
	require.Len(t, active, 1)
	assert.Equal(t, fresh.ID, active[0].ID)

	_ = expired
}

func TestJobsDeleteOwned(t *testing.T) {
	repo := NewJobsRepo()

	created, err := repo.Create(validJob("Backend Engineer"))
	require.NoError(t, err)

	err = repo.DeleteOwned(created.ID, "someone-else")
	assert.ErrorIs(t, err, job.ErrNotOwner)

	// a rejected delete leaves the listing in place
	_, err = repo.GetByID(created.ID)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteOwned(created.ID, "employer-1"))
	_, err = repo.GetByID(created.ID)
	assert.ErrorIs(t, err, job.ErrNotFound)

	assert.ErrorIs(t, repo.DeleteOwned(created.ID, "employer-1"), job.ErrNotFound)
}

func TestJobsModifyApplicants(t *testing.T) {
	repo := NewJobsRepo()

	created, err := repo.Create(validJob("Backend Engineer"))
	require.NoError(t, err)

	apply := func(userID string) (job.Job, bool) {
		j, added, err := repo.Modify(created.ID, func(cur job.Job) (job.Job, bool) {
			return job.AddApplicant(cur, userID)
		})
		require.NoError(t, err)
		return j, added
	}

	_, added := apply("user-1")
	assert.True(t, added)
	_, added = apply("user-1")
	assert.False(t, added)
	j, added := apply("user-2")
	assert.True(t, added)
	assert.Equal(t, []string{"user-1", "user-2"}, j.Applicants)
}

func strPtr(s string) *string { return &s }
