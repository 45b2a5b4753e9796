package userstore_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluidauth/fluidauth/pkg/userstore"
)

func TestStore_Register(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("creates user with hashed password", func(t *testing.T) {
		t.Parallel()

		s := userstore.New()
		u, err := s.Register(ctx, "Jane@Example.com ", "Jane", "s3cret")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, u.ID)
		assert.Equal(t, "jane@example.com", u.Email, "email is normalized")
		assert.NotEmpty(t, u.PasswordHash)
		assert.NotContains(t, string(u.PasswordHash), "s3cret")
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		t.Parallel()

		s := userstore.New()
		_, err := s.Register(ctx, "jane@example.com", "Jane", "s3cret")
		require.NoError(t, err)

		_, err = s.Register(ctx, "JANE@example.com", "Impostor", "other")
		require.ErrorIs(t, err, userstore.ErrEmailTaken)
	})

	t.Run("rejects empty email", func(t *testing.T) {
		t.Parallel()

		s := userstore.New()
		_, err := s.Register(ctx, "  ", "Jane", "s3cret")
		require.ErrorIs(t, err, userstore.ErrEmailRequired)
	})
}

func TestStore_Authenticate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	s := userstore.New()
	registered, err := s.Register(ctx, "jane@example.com", "Jane", "s3cret")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		u, err := s.Authenticate(ctx, "jane@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()

		_, err := s.Authenticate(ctx, "jane@example.com", "nope")
		require.ErrorIs(t, err, userstore.ErrInvalidCredentials)
	})

	t.Run("unknown email yields the same error", func(t *testing.T) {
		t.Parallel()

		_, err := s.Authenticate(ctx, "nobody@example.com", "s3cret")
		require.ErrorIs(t, err, userstore.ErrInvalidCredentials)
	})

	t.Run("passwordless account never authenticates", func(t *testing.T) {
		t.Parallel()

		oauthOnly := userstore.New()
		_, err := oauthOnly.Upsert(ctx, "sso@example.com", "SSO User")
		require.NoError(t, err)

		_, err = oauthOnly.Authenticate(ctx, "sso@example.com", "")
		require.ErrorIs(t, err, userstore.ErrInvalidCredentials)
	})
}

func TestStore_Upsert(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := userstore.New()

	first, err := s.Upsert(ctx, "jane@example.com", "Jane")
	require.NoError(t, err)

	again, err := s.Upsert(ctx, "JANE@example.com", "Different Name")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID, "upsert resolves to the existing account")
}

func TestStore_SessionHooks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := userstore.New()

	u, err := s.Register(ctx, "jane@example.com", "Jane", "s3cret")
	require.NoError(t, err)

	serialize := s.SerializeUser()
	deserialize := s.DeserializeUser()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		id, err := serialize(ctx, u)
		require.NoError(t, err)
		assert.Equal(t, u.ID.String(), id)

		identity, err := deserialize(ctx, id)
		require.NoError(t, err)
		require.IsType(t, &userstore.User{}, identity)
		assert.Equal(t, u.ID, identity.(*userstore.User).ID)
	})

	t.Run("foreign identity type is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := serialize(ctx, "not a user")
		require.ErrorIs(t, err, userstore.ErrUnexpectedIdentity)
	})

	t.Run("stale ID degrades to anonymous", func(t *testing.T) {
		t.Parallel()

		identity, err := deserialize(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, identity)

		identity, err = deserialize(ctx, "not-a-uuid")
		require.NoError(t, err)
		assert.Nil(t, identity)
	})
}

func TestStore_ValidateCredentials(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := userstore.New()

	_, err := s.Register(ctx, "jane@example.com", "Jane", "s3cret")
	require.NoError(t, err)

	validate := s.ValidateCredentials()

	result, err := validate(ctx, "jane@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotNil(t, result.User)
	assert.Nil(t, result.Info)

	result, err = validate(ctx, "jane@example.com", "wrong")
	require.NoError(t, err, "wrong credentials are a soft failure")
	assert.Nil(t, result.User)
	require.NotNil(t, result.Info)
	assert.Equal(t, "invalid email or password", result.Info.Message)
}
