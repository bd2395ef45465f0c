package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/dreamcatcher/internal"
	"github.com/yourname/dreamcatcher/internal/auth"
)

func TestRegister(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	user, err := Register(ctx, repos.Users, &RegisterRequest{Email: " Ada@Example.com ", Password: "correct horse", Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "correct horse", user.PasswordHash)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "correct horse"))

	_, err = Register(ctx, repos.Users, &RegisterRequest{Email: "ada@example.com", Password: "another pass"})
	assert.ErrorIs(t, err, internal.ErrConflict)

	_, err = Register(ctx, repos.Users, &RegisterRequest{Email: "bob@example.com", Password: "short"})
	assert.True(t, internal.IsValidation(err))
	_, err = Register(ctx, repos.Users, &RegisterRequest{Email: "not-an-email", Password: "long enough"})
	assert.True(t, internal.IsValidation(err))
}

func TestLogin(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	user, err := Register(ctx, repos.Users, &RegisterRequest{Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)

	token, err := Login(ctx, repos.Users, issuer, &LoginRequest{Email: "ADA@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, int64(3600), token.ExpiresIn)
	sub, err := issuer.Parse(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sub)

	_, wrongPass := Login(ctx, repos.Users, issuer, &LoginRequest{Email: "ada@example.com", Password: "wrong"})
	_, unknown := Login(ctx, repos.Users, issuer, &LoginRequest{Email: "nobody@example.com", Password: "correct horse"})
	assert.ErrorIs(t, wrongPass, internal.ErrUnauthorized)
	assert.ErrorIs(t, unknown, internal.ErrUnauthorized)
	assert.Equal(t, wrongPass.Error(), unknown.Error())
}
