package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/yourname/dreamcatcher/internal"
	"github.com/yourname/dreamcatcher/internal/auth"
	"github.com/yourname/dreamcatcher/internal/storage"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func Register(ctx context.Context, users storage.UserRepository, req *RegisterRequest) (*internal.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &internal.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		CreatedAt:    now(),
	}
	if err := users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login never says which of email or password was wrong.
func Login(ctx context.Context, users storage.UserRepository, issuer *auth.TokenIssuer, req *LoginRequest) (*Token, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	user, err := users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, internal.ErrNotFound) {
		return nil, internal.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, internal.ErrUnauthorized
	}
	signed, err := issuer.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &Token{AccessToken: signed, TokenType: "bearer", ExpiresIn: int64(issuer.TTL().Seconds())}, nil
}
