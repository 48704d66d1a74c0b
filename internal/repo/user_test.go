package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsandin/tripplanner/backend/internal/domain"
	"github.com/jsandin/tripplanner/backend/internal/repo"
)

func TestUserRepo_Create(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	got, err := r.users.Create(ctx, domain.User{
		Email:        "ana@example.com",
		Name:         "Ana",
		PasswordHash: "$2a$10$somethinghashed",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "$2a$10$somethinghashed", got.PasswordHash)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	createUser(t, r, "dupe@example.com")

	_, err := r.users.Create(ctx, domain.User{
		Email:        "dupe@example.com",
		Name:         "Second",
		PasswordHash: "$2a$10$otherhash",
	})

	assert.ErrorIs(t, err, repo.ErrDuplicateEmail)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	created := createUser(t, r, "bo@example.com")

	got, err := r.users.GetByEmail(ctx, "bo@example.com")

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.PasswordHash, got.PasswordHash)
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	_, err := r.users.GetByEmail(ctx, "nobody@example.com")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_GetByID(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	created := createUser(t, r, "cy@example.com")

	got, err := r.users.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)
}

func TestUserRepo_GetByID_NotFound(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	_, err := r.users.GetByID(ctx, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
