package auth

import (
	"context"
	"errors"

	"github.com/yourname/dreamcatcher/internal"
	"github.com/yourname/dreamcatcher/internal/storage"
)

// LocalAuthProvider verifies tokens this server issued and loads the user
// from the local store.
type LocalAuthProvider struct {
	issuer *TokenIssuer
	users  storage.UserRepository
	logger internal.Logger
}

func NewLocalAuthProvider(issuer *TokenIssuer, users storage.UserRepository, logger internal.Logger) *LocalAuthProvider {
	return &LocalAuthProvider{issuer: issuer, users: users, logger: logger}
}

func (a *LocalAuthProvider) Authenticate(ctx context.Context, token string) (*internal.User, error) {
	userID, err := a.issuer.Parse(token)
	if err != nil {
		a.logger.Debugf("rejected token: %v", err)
		return nil, err
	}
	user, err := a.users.GetUserByID(ctx, userID)
	if errors.Is(err, internal.ErrNotFound) {
		a.logger.Warnf("token subject %s has no user", userID)
		return nil, internal.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
