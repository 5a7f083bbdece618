// Package services contains the application services of the chat backend.
// The account service orchestrates the credential store, the password hasher
// and the token issuer.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/essabriabdelghani/chatbot-gemini/internal/common"
	"github.com/essabriabdelghani/chatbot-gemini/internal/server/auth"
	"github.com/essabriabdelghani/chatbot-gemini/internal/server/config"
	"github.com/essabriabdelghani/chatbot-gemini/internal/server/models"
	"github.com/essabriabdelghani/chatbot-gemini/internal/server/repositories/accounts"
)

type AccountService struct {
	repo                  accounts.Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewAccountService(repo accounts.Repository, cfg *config.Config) *AccountService {
	return &AccountService{
		repo:                  repo,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates an account for the given credentials and issues a bearer
// token bound to it. All three fields are required (common.ErrorValidation);
// a taken email fails with common.ErrorEmailExists. The returned account
// still carries the hash; callers must expose account.Public() only.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*models.Account, string, error) {

	if name == "" || email == "" || password == "" {
		return nil, "", common.ErrorValidation
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Avatar:       common.DefaultAvatar,
	}

	account, err = s.repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrorEmailExists) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("error creating account: %w", err)
	}

	token, err := auth.GenerateToken(account.ID, account.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, "", fmt.Errorf("error generating token: %w", err)
	}

	return account, token, nil
}

// Login verifies the credentials and issues a fresh token. An unknown email
// and a wrong password both fail with common.ErrorInvalidCredentials so the
// caller cannot probe which emails are registered.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.Account, string, error) {

	if email == "" || password == "" {
		return nil, "", common.ErrorValidation
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorInvalidCredentials
		}
		return nil, "", fmt.Errorf("error finding account: %w", err)
	}

	if !auth.VerifyPassword(password, account.PasswordHash) {
		return nil, "", common.ErrorInvalidCredentials
	}

	token, err := auth.GenerateToken(account.ID, account.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, "", fmt.Errorf("error generating token: %w", err)
	}

	return account, token, nil
}

// VerifyToken checks a bearer token's signature and expiry and returns its
// claims without touching storage. Used by the HTTP middleware.
func (s *AccountService) VerifyToken(token string) (*auth.Claims, error) {
	return auth.ParseToken(token, s.jwtSecret)
}

// Authenticate resolves a bearer token to its account. A structurally valid
// token whose account no longer exists fails with common.ErrorUnauthorized.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*models.Account, error) {

	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	account, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error finding account: %w", err)
	}

	return account, nil
}

// GetProfile returns the public view of an account.
func (s *AccountService) GetProfile(ctx context.Context, accountID string) (*models.PublicAccount, error) {

	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error finding account: %w", err)
	}

	return account.Public(), nil
}
