// Package models defines the server-side data shapes for the chat backend.
package models

import "time"

// Account is the stored identity record. PasswordHash must never leave the
// server; use Public() before returning an account to a client.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Avatar       string
	CreatedAt    time.Time
}

// PublicAccount is the subset of Account safe to expose over the API.
type PublicAccount struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// Public strips the password hash from an account.
func (a *Account) Public() *PublicAccount {
	return &PublicAccount{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Avatar:    a.Avatar,
		CreatedAt: a.CreatedAt,
	}
}
