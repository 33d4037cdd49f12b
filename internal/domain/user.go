package domain

import "time"

// User represents a registered account. PasswordHash never leaves the
// service layer; responses are built through AuthResult instead.
type User struct {
	ID           string
	Username     string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterRequest is the raw registration payload before validation.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the raw login payload before validation.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is returned by both register and login. It carries the
// issued tokens and the public account fields, never the password hash.
type AuthResult struct {
	Name         string
	Username     string
	AccessToken  string
	RefreshToken string
}
