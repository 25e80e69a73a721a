package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/devon/hotel-listing-api/internal/domain"
	"github.com/devon/hotel-listing-api/internal/repository/postgres"
	"github.com/devon/hotel-listing-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithEmail("lookup@example.com").
		Build(t, testDB.DB)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)

	byEmail, err := repo.GetByEmail(ctx, "lookup@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepository_UniqueEmail(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	first, _ := testutil.NewUserBuilder().WithEmail("dup@example.com").Build(t, testDB.DB)
	_ = first

	err := repo.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Email:        "dup@example.com",
		PasswordHash: "hash",
		FirstName:    "Second",
		LastName:     "User",
	})
	assert.Error(t, err)
}

func TestUserRepository_RotateRefreshToken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	expiry := time.Now().Add(24 * time.Hour)

	t.Run("initial issue overwrites unconditionally", func(t *testing.T) {
		require.NoError(t, repo.RotateRefreshToken(ctx, user.ID, nil, "token-a", expiry))

		stored, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.RefreshToken)
		assert.Equal(t, "token-a", *stored.RefreshToken)
	})

	t.Run("swap only applies against the current value", func(t *testing.T) {
		current := "token-a"
		require.NoError(t, repo.RotateRefreshToken(ctx, user.ID, &current, "token-b", expiry))

		// The stale value lost the race: it matches nothing anymore.
		err := repo.RotateRefreshToken(ctx, user.ID, &current, "token-c", expiry)
		assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)

		stored, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "token-b", *stored.RefreshToken)
	})

	t.Run("unknown user on initial issue", func(t *testing.T) {
		err := repo.RotateRefreshToken(ctx, uuid.New(), nil, "token-x", expiry)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUserRepository_RotateRefreshToken_ConcurrentDoubleSpend(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	expiry := time.Now().Add(24 * time.Hour)
	require.NoError(t, repo.RotateRefreshToken(ctx, user.ID, nil, "stale", expiry))

	current := "stale"
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		next := "winner-" + string(rune('a'+i))
		go func(next string) {
			results <- repo.RotateRefreshToken(ctx, user.ID, &current, next, expiry)
		}(next)
	}

	var succeeded, rejected int
	for i := 0; i < 2; i++ {
		if err := <-results; err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)
			rejected++
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one concurrent rotation may win")
	assert.Equal(t, 1, rejected)
}
