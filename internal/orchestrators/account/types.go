package account

import (
	"github.com/questforge/questforge/internal/entities"
)

// SignUpInput holds the credentials for a new account. ConfirmPassword
// is checked against Password when set; callers without a confirmation
// step leave it empty.
type SignUpInput struct {
	Username        string
	Password        string
	ConfirmPassword string
}

// SignUpOutput returns the created user, already logged in
type SignUpOutput struct {
	User *entities.User
}

// LogInInput holds the credentials to check
type LogInInput struct {
	Username string
	Password string
}

// LogInOutput returns the authenticated user
type LogInOutput struct {
	User *entities.User
}

// LogOutInput is empty; logout acts on the current session
type LogOutInput struct{}

// LogOutOutput reports who was logged out
type LogOutOutput struct {
	Username string
}

// GetCurrentUserInput is empty
type GetCurrentUserInput struct{}

// GetCurrentUserOutput returns a copy of the logged-in user
type GetCurrentUserOutput struct {
	User *entities.User
}
