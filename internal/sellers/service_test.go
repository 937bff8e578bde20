package sellers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/aestheticmarket-backend/pkg/errors"
)

func strPtr(v string) *string { return &v }

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	r := newTestRepo(t)
	svc, err := NewService(r)
	require.NoError(t, err)
	return svc, r
}

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil)
	require.Error(t, err)
}

func TestServiceProfile(t *testing.T) {
	svc, r := newTestService(t)
	id := seedSeller(t, r, "ada@example.com")

	dto, err := svc.Profile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, dto.ID)
	assert.Equal(t, "Ada Noir", dto.FullName)

	_, err = svc.Get(context.Background(), id+1)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestSellerDTOOmitsCredentials(t *testing.T) {
	svc, r := newTestService(t)
	id := seedSeller(t, r, "ada@example.com")

	dto, err := svc.Profile(context.Background(), id)
	require.NoError(t, err)

	raw, err := json.Marshal(dto)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Contains(t, fields, "fullName")
	assert.Contains(t, fields, "createdAt")
	assert.NotContains(t, fields, "password")
	assert.NotContains(t, fields, "resetToken")
}

func TestPublicProfileUsesColumnNames(t *testing.T) {
	svc, r := newTestService(t)
	id := seedSeller(t, r, "ada@example.com")

	dto, err := svc.PublicProfile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Ada Noir", dto.FullName)

	raw, err := json.Marshal(dto)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{"id", "full_name", "email", "phone", "created_at", "updated_at"} {
		assert.Contains(t, fields, key)
	}
	for _, key := range []string{"fullName", "createdAt", "password", "reset_token", "reset_token_expiry"} {
		assert.NotContains(t, fields, key)
	}

	_, err = svc.PublicProfile(context.Background(), id+1)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestServiceUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("appliesProvidedFields", func(t *testing.T) {
		svc, r := newTestService(t)
		id := seedSeller(t, r, "ada@example.com")

		dto, err := svc.UpdateProfile(ctx, id, UpdateProfileInput{FullName: strPtr("  Ada Floral ")})
		require.NoError(t, err)
		assert.Equal(t, "Ada Floral", dto.FullName)
		assert.Equal(t, "555-0100", dto.Phone)
	})

	t.Run("emptyPatchRejected", func(t *testing.T) {
		svc, r := newTestService(t)
		id := seedSeller(t, r, "ada@example.com")

		_, err := svc.UpdateProfile(ctx, id, UpdateProfileInput{Phone: strPtr("  ")})
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
	})

	t.Run("duplicateEmailConflicts", func(t *testing.T) {
		svc, r := newTestService(t)
		id := seedSeller(t, r, "ada@example.com")
		seedSeller(t, r, "taken@example.com")

		_, err := svc.UpdateProfile(ctx, id, UpdateProfileInput{Email: strPtr("taken@example.com")})
		require.Error(t, err)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
		assert.Equal(t, "Email already in use", typed.Message())
	})

	t.Run("missingSeller", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.UpdateProfile(ctx, 42, UpdateProfileInput{Phone: strPtr("1")})
		assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
	})
}
