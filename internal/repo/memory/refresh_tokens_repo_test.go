package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenRow(id, userID, hash string, ttl time.Duration) RefreshTokenRow {
	now := time.Now().UTC()
	return RefreshTokenRow{
		ID:        id,
		UserID:    userID,
		TokenHash: hash,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

func TestRefreshRotate(t *testing.T) {
	repo := NewRefreshTokensRepo()
	repo.Create(tokenRow("old", "u1", "hash-old", time.Hour))

	next := tokenRow("new", "u1", "hash-new", time.Hour)
	require.NoError(t, repo.Rotate("old", "hash-old", next))

	old, err := repo.Get("old")
	require.NoError(t, err)
	require.NotNil(t, old.RevokedAt)
	require.NotNil(t, old.ReplacedBy)
	assert.Equal(t, "new", *old.ReplacedBy)

	stored, err := repo.Get("new")
	require.NoError(t, err)
	assert.Nil(t, stored.RevokedAt)
}

func TestRefreshRotateRejectsReuse(t *testing.T) {
	repo := NewRefreshTokensRepo()
	repo.Create(tokenRow("old", "u1", "hash-old", time.Hour))

	require.NoError(t, repo.Rotate("old", "hash-old", tokenRow("new", "u1", "h", time.Hour)))

	// replaying the already-rotated token must fail
	err := repo.Rotate("old", "hash-old", tokenRow("new2", "u1", "h2", time.Hour))
	assert.ErrorIs(t, err, ErrRefreshTokenInvalid)
}

func TestRefreshRotateChecks(t *testing.T) {
	repo := NewRefreshTokensRepo()
	repo.Create(tokenRow("live", "u1", "hash", time.Hour))
	repo.Create(tokenRow("expired", "u1", "hash", -time.Minute))

	assert.ErrorIs(t,
		repo.Rotate("missing", "hash", tokenRow("x", "u1", "h", time.Hour)),
		ErrRefreshTokenNotFound)

	assert.ErrorIs(t,
		repo.Rotate("live", "wrong-hash", tokenRow("x", "u1", "h", time.Hour)),
		ErrRefreshTokenInvalid)

	assert.ErrorIs(t,
		repo.Rotate("expired", "hash", tokenRow("x", "u1", "h", time.Hour)),
		ErrRefreshTokenInvalid)
}

func TestRefreshRevokeIdempotent(t *testing.T) {
	repo := NewRefreshTokensRepo()
	repo.Create(tokenRow("a", "u1", "h", time.Hour))

	repo.Revoke("a", nil)
	row, err := repo.Get("a")
	require.NoError(t, err)
	require.NotNil(t, row.RevokedAt)
	first := *row.RevokedAt

	repo.Revoke("a", nil)
	row, err = repo.Get("a")
	require.NoError(t, err)
	assert.Equal(t, first, *row.RevokedAt)

	// revoking an unknown id is a no-op
	repo.Revoke("missing", nil)
}

func TestRevokeAllForUser(t *testing.T) {
	repo := NewRefreshTokensRepo()
	repo.Create(tokenRow("a", "u1", "h", time.Hour))
	repo.Create(tokenRow("b", "u1", "h", time.Hour))
	repo.Create(tokenRow("c", "u2", "h", time.Hour))

	repo.RevokeAllForUser("u1")

	for _, id := range []string{"a", "b"} {
		row, err := repo.Get(id)
		require.NoError(t, err)
		assert.NotNil(t, row.RevokedAt)
	}

	other, err := repo.Get("c")
	require.NoError(t, err)
	assert.Nil(t, other.RevokedAt)
}
