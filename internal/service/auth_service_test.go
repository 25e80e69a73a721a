package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/devon/hotel-listing-api/internal/domain"
	"github.com/devon/hotel-listing-api/internal/repository/postgres"
	"github.com/devon/hotel-listing-api/internal/service"
	"github.com/devon/hotel-listing-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, cfg.JWT)
	ctx := context.Background()

	tests := []struct {
		name       string
		input      service.RegisterInput
		setup      func()
		wantFields []string
	}{
		{
			name: "successful registration",
			input: service.RegisterInput{
				Email:     "a@x.com",
				Password:  "Pass1Pass1",
				FirstName: "Ada",
				LastName:  "Lovelace",
			},
		},
		{
			name: "duplicate email",
			input: service.RegisterInput{
				Email:     "taken@example.com",
				Password:  "Pass1Pass1",
				FirstName: "Ada",
				LastName:  "Lovelace",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("taken@example.com").
					Build(t, testDB.DB)
			},
			wantFields: []string{"email"},
		},
		{
			name: "malformed email",
			input: service.RegisterInput{
				Email:     "not-an-email",
				Password:  "Pass1Pass1",
				FirstName: "Ada",
				LastName:  "Lovelace",
			},
			wantFields: []string{"email"},
		},
		{
			name: "weak password",
			input: service.RegisterInput{
				Email:     "b@x.com",
				Password:  "short",
				FirstName: "Ada",
				LastName:  "Lovelace",
			},
			wantFields: []string{"password"},
		},
		{
			name:       "all fields missing",
			input:      service.RegisterInput{},
			wantFields: []string{"email", "password", "firstName", "lastName"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB.Truncate(t)
			if tt.setup != nil {
				tt.setup()
			}

			failures, err := authService.Register(ctx, tt.input)
			require.NoError(t, err)

			if len(tt.wantFields) == 0 {
				assert.Empty(t, failures)

				user, err := repos.User.GetByEmail(ctx, tt.input.Email)
				require.NoError(t, err)
				assert.Equal(t, []string{domain.DefaultRole}, []string(user.Roles))
				assert.NotEqual(t, tt.input.Password, user.PasswordHash)
				return
			}

			gotFields := make([]string, 0, len(failures))
			for _, fe := range failures {
				assert.NotEmpty(t, fe.Reason)
				gotFields = append(gotFields, fe.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, gotFields)
		})
	}
}

func TestAuthService_Register_DuplicateNeverCreatesSecondUser(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, cfg.JWT)
	ctx := context.Background()

	input := service.RegisterInput{
		Email:     "once@example.com",
		Password:  "Pass1Pass1",
		FirstName: "Only",
		LastName:  "Once",
	}

	failures, err := authService.Register(ctx, input)
	require.NoError(t, err)
	require.Empty(t, failures)

	failures, err = authService.Register(ctx, input)
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, "email", failures[0].Field)

	var count int64
	require.NoError(t, testDB.DB.Model(&domain.User{}).Where("email = ?", input.Email).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, cfg.JWT)
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("login@example.com").
		WithPassword("correctpassword").
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		input   service.LoginInput
		wantErr error
	}{
		{
			name:  "successful login",
			input: service.LoginInput{Email: user.Email, Password: rawPassword},
		},
		{
			name:    "wrong password",
			input:   service.LoginInput{Email: user.Email, Password: "wrongpassword"},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "non-existent user",
			input:   service.LoginInput{Email: "ghost@example.com", Password: "anypassword"},
			wantErr: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.Login(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, result.AccessToken)
			assert.NotEmpty(t, result.RefreshToken)
			assert.Equal(t, user.ID.String(), result.UserID)
			assert.True(t, result.ExpiresAt.After(time.Now()))

			// The refresh token is persisted against the user
			stored, err := repos.User.GetByID(ctx, user.ID)
			require.NoError(t, err)
			require.NotNil(t, stored.RefreshToken)
			assert.Equal(t, result.RefreshToken, *stored.RefreshToken)
		})
	}
}

func TestAuthService_CreateRefreshToken(t *testing.T) {
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(nil, cfg.JWT)

	token, err := authService.CreateRefreshToken()
	require.NoError(t, err)
	assert.Len(t, token, 64)
}

func TestAuthService_VerifyRefreshToken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, cfg.JWT)
	ctx := context.Background()

	user, password := testutil.NewUserBuilder().
		WithEmail("refresh@example.com").
		Build(t, testDB.DB)

	login := func(t *testing.T) *service.AuthResult {
		t.Helper()
		result, err := authService.Login(ctx, service.LoginInput{Email: user.Email, Password: password})
		require.NoError(t, err)
		return result
	}

	t.Run("rotation succeeds exactly once per token", func(t *testing.T) {
		pair := login(t)

		renewed, err := authService.VerifyRefreshToken(ctx, *pair)
		require.NoError(t, err)
		assert.NotEmpty(t, renewed.AccessToken)
		assert.NotEqual(t, pair.RefreshToken, renewed.RefreshToken)
		assert.Equal(t, pair.UserID, renewed.UserID)

		// Replaying the original pair must fail: the stored token rotated.
		_, err = authService.VerifyRefreshToken(ctx, *pair)
		assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)

		// The renewed pair still works.
		_, err = authService.VerifyRefreshToken(ctx, *renewed)
		require.NoError(t, err)
	})

	t.Run("accepts expired access token with live refresh token", func(t *testing.T) {
		pair := login(t)

		expiredCfg := cfg.JWT
		expiredCfg.AccessTokenTTL = -time.Minute
		expiredIssuer := service.NewTokenIssuer(expiredCfg)
		expiredToken, _, err := expiredIssuer.Issue(user)
		require.NoError(t, err)

		renewed, err := authService.VerifyRefreshToken(ctx, service.AuthResult{
			AccessToken:  expiredToken,
			RefreshToken: pair.RefreshToken,
		})
		require.NoError(t, err)
		assert.NotEqual(t, pair.RefreshToken, renewed.RefreshToken)
	})

	t.Run("unparsable access token", func(t *testing.T) {
		pair := login(t)

		_, err := authService.VerifyRefreshToken(ctx, service.AuthResult{
			AccessToken:  "garbage",
			RefreshToken: pair.RefreshToken,
		})
		assert.ErrorIs(t, err, domain.ErrMalformedToken)
	})

	t.Run("unknown user", func(t *testing.T) {
		pair := login(t)

		stranger := &domain.User{ID: uuid.New(), Email: "stranger@example.com"}
		issuer := service.NewTokenIssuer(cfg.JWT)
		strangerToken, _, err := issuer.Issue(stranger)
		require.NoError(t, err)

		_, err = authService.VerifyRefreshToken(ctx, service.AuthResult{
			AccessToken:  strangerToken,
			RefreshToken: pair.RefreshToken,
		})
		assert.ErrorIs(t, err, domain.ErrUnknownUser)
	})

	t.Run("refresh token not bound to user", func(t *testing.T) {
		pair := login(t)

		_, err := authService.VerifyRefreshToken(ctx, service.AuthResult{
			AccessToken:  pair.AccessToken,
			RefreshToken: "0000000000000000000000000000000000000000000000000000000000000000",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)
	})

	t.Run("stored refresh token past its expiry", func(t *testing.T) {
		pair := login(t)

		expired := time.Now().Add(-time.Hour)
		require.NoError(t, testDB.DB.Model(&domain.User{}).
			Where("id = ?", user.ID).
			Update("refresh_token_expires_at", expired).Error)

		_, err := authService.VerifyRefreshToken(ctx, *pair)
		assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)
	})
}
