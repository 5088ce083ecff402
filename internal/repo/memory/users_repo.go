package memory

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jobsplus/jobsplus/internal/domain/user"
)

// UsersRepo keeps users in a process-local map. The order slice remembers
// insertion order, since map iteration order is randomized.
type UsersRepo struct {
	mu    sync.RWMutex
	items map[string]user.User
	order []string
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items: make(map[string]user.User),
	}
}

// Create validates the assembled user and inserts it. The email-uniqueness
// check and the insert share one critical section.
func (r *UsersRepo) Create(in user.CreateUserInput) (user.User, error) {
	u := user.New(in)

	if res := u.Validate(); !res.IsValid {
		return user.User{}, &ValidationError{Errors: res.Errors}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Email == u.Email {
			return user.User{}, ErrEmailTaken
		}
	}

	u.ID = uuid.NewString()
	r.items[u.ID] = u
	r.order = append(r.order, u.ID)

	return u, nil
}

func (r *UsersRepo) GetByID(id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *UsersRepo) GetByEmail(email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if u := r.items[id]; u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

// Update merges the patch, re-validates, and commits only a valid result;
// on failure the stored user keeps its pre-patch state.
func (r *UsersRepo) Update(id string, p user.Patch) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	updated := user.Apply(current, p)

	if res := updated.Validate(); !res.IsValid {
		return user.User{}, &ValidationError{Errors: res.Errors}
	}

	if updated.Email != current.Email {
		for otherID, other := range r.items {
			if otherID != id && other.Email == updated.Email {
				return user.User{}, ErrEmailTaken
			}
		}
	}

	r.items[id] = updated
	return updated, nil
}

// UpdateProfile applies a profile-only patch; profile fields carry no
// validation rules, so the merge always commits.
func (r *UsersRepo) UpdateProfile(id string, p user.ProfilePatch) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	updated := user.ApplyProfile(current, p)
	r.items[id] = updated
	return updated, nil
}

// Modify runs a pure entity transform under the write lock and commits the
// result only when the transform reports a change. Used for the idempotent
// skill/connection appends.
func (r *UsersRepo) Modify(id string, fn func(user.User) (user.User, bool)) (user.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[id]
	if !ok {
		return user.User{}, false, user.ErrNotFound
	}

	updated, changed := fn(current)
	if changed {
		r.items[id] = updated
	}
	return updated, changed, nil
}

// Delete removes a user and reports whether one was actually there.
func (r *UsersRepo) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false
	}
	delete(r.items, id)
	r.order = removeID(r.order, id)
	return true
}

func (r *UsersRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// List returns every user in insertion order.
func (r *UsersRepo) List() []user.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
