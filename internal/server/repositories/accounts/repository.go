// Package accounts implements the credential store: one durable record per
// registered account, with the email uniqueness guarantee enforced by the
// storage layer itself.
package accounts

import (
	"context"
	"strings"

	"github.com/essabriabdelghani/chatbot-gemini/internal/server/models"
)

type Repository interface {
	// Create inserts a new account. When another account already holds the
	// same normalized email, it fails with common.ErrorEmailExists. The
	// check-and-insert is atomic: of two concurrent registrations for the
	// same email at most one succeeds.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)

	// FindByEmail looks an account up by normalized email.
	// Returns common.ErrorNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*models.Account, error)

	// FindByID returns common.ErrorNotFound when absent.
	FindByID(ctx context.Context, id string) (*models.Account, error)
}

// NormalizeEmail applies the canonical form used for storage and lookup:
// surrounding whitespace trimmed, lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
