package memory

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jobsplus/jobsplus/internal/domain/job"
)

// JobsRepo keeps listings in a process-local map plus an insertion-order
// slice, mirroring UsersRepo.
type JobsRepo struct {
	mu    sync.RWMutex
	items map[string]job.Job
	order []string
}

func NewJobsRepo() *JobsRepo {
	return &JobsRepo{
		items: make(map[string]job.Job),
	}
}

func (r *JobsRepo) Create(in job.CreateJobInput) (job.Job, error) {
	j := job.New(in)

	if res := j.Validate(); !res.IsValid {
		return job.Job{}, &ValidationError{Errors: res.Errors}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	j.ID = uuid.NewString()
	r.items[j.ID] = j
	r.order = append(r.order, j.ID)

	return j, nil
}

func (r *JobsRepo) GetByID(id string) (job.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.items[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

// Update merges the patch and re-validates; the stored job keeps its
// pre-patch state when the merged result is invalid.
func (r *JobsRepo) Update(id string, p job.Patch) (job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}

	updated := job.Apply(current, p)

	if res := updated.Validate(); !res.IsValid {
		return job.Job{}, &ValidationError{Errors: res.Errors}
	}

	r.items[id] = updated
	return updated, nil
}

// Modify runs a pure entity transform under the write lock; see
// UsersRepo.Modify.
func (r *JobsRepo) Modify(id string, fn func(job.Job) (job.Job, bool)) (job.Job, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[id]
	if !ok {
		return job.Job{}, false, job.ErrNotFound
	}

	updated, changed := fn(current)
	if changed {
		r.items[id] = updated
	}
	return updated, changed, nil
}

func (r *JobsRepo) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false
	}
	delete(r.items, id)
	r.order = removeID(r.order, id)
	return true
}

// DeleteOwned removes a job only when the requester owns it, with the
// ownership check and the delete in one critical section.
func (r *JobsRepo) DeleteOwned(id, requesterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.items[id]
	if !ok {
		return job.ErrNotFound
	}
	if j.EmployerID != requesterID {
		return job.ErrNotOwner
	}

	delete(r.items, id)
	r.order = removeID(r.order, id)
	return nil
}

func (r *JobsRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// List returns every job in insertion order, whatever its status.
func (r *JobsRepo) List() []job.Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]job.Job, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}

// Filter returns active-status jobs passing every predicate, newest first.
// Expired listings are NOT excluded here; that stricter eligibility belongs
// to ActiveJobs only.
func (r *JobsRepo) Filter(f job.Filter) []job.Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]job.Job, 0)
	for _, id := range r.order {
		j := r.items[id]
		if j.Status != job.StatusActive {
			continue
		}
		if f.Matches(j) {
			out = append(out, j)
		}
	}

	// stable: insertion order breaks createdAt ties
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].CreatedAt.After(out[b].CreatedAt)
	})

	return out
}

// ActiveJobs returns jobs that are both active and unexpired, in insertion
// order.
func (r *JobsRepo) ActiveJobs() []job.Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]job.Job, 0)
	for _, id := range r.order {
		j := r.items[id]
		if j.Status == job.StatusActive && !j.IsExpired() {
			out = append(out, j)
		}
	}
	return out
}
