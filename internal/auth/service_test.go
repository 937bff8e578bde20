package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/angelmondragon/aestheticmarket-backend/internal/sellers"
	pkgAuth "github.com/angelmondragon/aestheticmarket-backend/pkg/auth"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/config"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/db/dbtest"
	pkgerrors "github.com/angelmondragon/aestheticmarket-backend/pkg/errors"
)

var (
	testJWT = config.JWTConfig{Secret: "test-secret", Issuer: "aestheticmarket", ExpirationMinutes: 60}
	// Cheap argon2id parameters keep the suite fast.
	testPassword = config.PasswordConfig{ArgonMemoryKB: 64, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32}
)

func newTestService(t *testing.T) (Service, *sellers.Repository) {
	t.Helper()
	repo := sellers.NewRepository(dbtest.Open(t, dbtest.AllColumns))
	svc, err := NewService(ServiceParams{
		Sellers:        repo,
		JWTConfig:      testJWT,
		PasswordConfig: testPassword,
		Now:            func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	return svc, repo
}

func validRegistration() RegisterRequest {
	return RegisterRequest{
		FullName:        "Ada Noir",
		Email:           "ada@example.com",
		Phone:           "555-0100",
		Password:        "correct-horse",
		ConfirmPassword: "correct-horse",
	}
}

func TestNewServiceValidatesParams(t *testing.T) {
	_, err := NewService(ServiceParams{JWTConfig: testJWT})
	require.Error(t, err)

	_, err = NewService(ServiceParams{Sellers: &sellers.Repository{}})
	require.Error(t, err)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)

	cases := []struct {
		name    string
		mutate  func(*RegisterRequest)
		message string
	}{
		{"missingPhone", func(r *RegisterRequest) { r.Phone = "" }, "All fields are required"},
		{"missingConfirm", func(r *RegisterRequest) { r.ConfirmPassword = "" }, "All fields are required"},
		{"badEmail", func(r *RegisterRequest) { r.Email = "ada@example" }, "Please provide a valid email address"},
		{"shortPassword", func(r *RegisterRequest) { r.Password, r.ConfirmPassword = "short", "short" }, "Password must be at least 8 characters long"},
		{"mismatch", func(r *RegisterRequest) { r.ConfirmPassword = "correct-horsf" }, "Passwords do not match"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRegistration()
			tc.mutate(&req)

			_, err := svc.Register(context.Background(), req)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
			assert.Equal(t, tc.message, typed.Message())
		})
	}
}

func TestRegisterHashesPasswordAndIssuesToken(t *testing.T) {
	svc, repo := newTestService(t)

	session, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	require.NotNil(t, session.Seller)
	assert.Equal(t, "ada@example.com", session.Seller.Email)

	stored, err := repo.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", stored.Password)
	assert.True(t, strings.HasPrefix(stored.Password, "$argon2id$"))

	claims, err := pkgAuth.ParseAccessToken(testJWT, session.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.SellerID)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegistration())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	assert.Equal(t, "Email already in use", typed.Message())
}

func TestLoginConflatesUnknownEmailAndWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, unknown := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
	_, wrong := svc.Login(ctx, LoginRequest{Email: "ada@example.com", Password: "wrong-horse"})

	require.Error(t, unknown)
	require.Error(t, wrong)
	assert.Equal(t, unknown.Error(), wrong.Error())
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.CodeOf(wrong))
}

func TestLoginDoesNotNormalizeEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "ADA@example.com", Password: "correct-horse"})
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.CodeOf(err))
}

func TestLoginMissingFields(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ada@example.com"})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	registered, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	session, err := svc.Login(ctx, LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, registered.Seller.ID, session.Seller.ID)
	assert.NotEmpty(t, session.Token)
}

func TestLoginUpgradesLegacyBcryptHash(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	legacy, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	seller, err := repo.Create(ctx, sellers.CreateSellerDTO{
		FullName:     "Legacy Seller",
		Email:        "legacy@example.com",
		Phone:        "555-0111",
		PasswordHash: string(legacy),
	})
	require.NoError(t, err)

	session, err := svc.Login(ctx, LoginRequest{Email: "legacy@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, seller.ID, session.Seller.ID)

	stored, err := repo.FindByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.Password, "$argon2id$"))

	_, err = svc.Login(ctx, LoginRequest{Email: "legacy@example.com", Password: "correct-horse"})
	require.NoError(t, err)
}
