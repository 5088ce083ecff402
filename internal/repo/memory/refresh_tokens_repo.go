package memory

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenInvalid  = errors.New("refresh token revoked, expired, or mismatched")
)

type RefreshTokenRow struct {
	ID         string // jti
	UserID     string
	TokenHash  string
	ExpiresAt  time.Time
	RevokedAt  *time.Time
	ReplacedBy *string
	CreatedAt  time.Time
}

// RefreshTokensRepo is the session side of the store. Rotation happens under
// one mutex, which replaces the row-lock transaction a SQL-backed
// implementation would need.
type RefreshTokensRepo struct {
	mu    sync.Mutex
	items map[string]RefreshTokenRow
}

func NewRefreshTokensRepo() *RefreshTokensRepo {
	return &RefreshTokensRepo{
		items: make(map[string]RefreshTokenRow),
	}
}

func (r *RefreshTokensRepo) Create(row RefreshTokenRow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[row.ID] = row
}

func (r *RefreshTokensRepo) Get(id string) (RefreshTokenRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.items[id]
	if !ok {
		return RefreshTokenRow{}, ErrRefreshTokenNotFound
	}
	return row, nil
}

// Rotate atomically checks the presented token against the stored row
// (revocation, expiry, hash) and, when it passes, revokes the old row and
// inserts the replacement.
func (r *RefreshTokensRepo) Rotate(oldID, presentedHash string, next RefreshTokenRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.items[oldID]
	if !ok {
		return ErrRefreshTokenNotFound
	}

	if row.RevokedAt != nil || time.Now().UTC().After(row.ExpiresAt) || row.TokenHash != presentedHash {
		return ErrRefreshTokenInvalid
	}

	now := time.Now().UTC()
	row.RevokedAt = &now
	row.ReplacedBy = &next.ID
	r.items[oldID] = row

	r.items[next.ID] = next
	return nil
}

// Revoke marks one token revoked; calling it again is a no-op.
func (r *RefreshTokensRepo) Revoke(id string, replacedBy *string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.items[id]
	if !ok || row.RevokedAt != nil {
		return
	}

	now := time.Now().UTC()
	row.RevokedAt = &now
	row.ReplacedBy = replacedBy
	r.items[id] = row
}

func (r *RefreshTokensRepo) RevokeAllForUser(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for id, row := range r.items {
		if row.UserID == userID && row.RevokedAt == nil {
			row.RevokedAt = &now
			r.items[id] = row
		}
	}
}
