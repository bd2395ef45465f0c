package auth

import (
	"context"
	"fmt"

	"github.com/yourname/dreamcatcher/internal"
	"github.com/yourname/dreamcatcher/internal/config"
	"github.com/yourname/dreamcatcher/internal/storage"
)

// Provider resolves a bearer token to a user. Any failure is reported as
// internal.ErrUnauthorized (possibly wrapped).
type Provider interface {
	Authenticate(ctx context.Context, token string) (*internal.User, error)
}

var (
	_ Provider = (*LocalAuthProvider)(nil)
	_ Provider = (*RemoteAuthProvider)(nil)
)

func NewProvider(cfg *config.Config, issuer *TokenIssuer, users storage.UserRepository, logger internal.Logger) (Provider, error) {
	switch cfg.AuthMode {
	case "", "jwt":
		return NewLocalAuthProvider(issuer, users, logger), nil
	case "remote":
		return NewRemoteAuthProvider(cfg.AuthServiceURL, logger), nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.AuthMode)
	}
}
