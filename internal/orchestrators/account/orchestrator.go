// Package account implements the account orchestrator for sign up,
// login, and the session singleton
package account

import (
	"context"
	"log/slog"

	"github.com/questforge/questforge/internal/entities"
	"github.com/questforge/questforge/internal/errors"
	"github.com/questforge/questforge/internal/notify"
	"github.com/questforge/questforge/internal/repositories/world"
)

// Service defines the interface for account operations
type Service interface {
	SignUp(ctx context.Context, input *SignUpInput) (*SignUpOutput, error)
	LogIn(ctx context.Context, input *LogInInput) (*LogInOutput, error)
	LogOut(ctx context.Context, input *LogOutInput) (*LogOutOutput, error)
	GetCurrentUser(ctx context.Context, input *GetCurrentUserInput) (*GetCurrentUserOutput, error)
}

// Config holds the dependencies for the account orchestrator
type Config struct {
	Repo     *world.Repository
	Notifier notify.Sink
	Logger   *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repo == nil {
		vb.RequiredField("Repo")
	}
	if c.Notifier == nil {
		vb.RequiredField("Notifier")
	}

	return vb.Build()
}

type orchestrator struct {
	repo     *world.Repository
	notifier notify.Sink
	log      *slog.Logger
}

// NewOrchestrator creates a new account orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &orchestrator{
		repo:     cfg.Repo,
		notifier: cfg.Notifier,
		log:      log,
	}, nil
}

// SignUp creates an account and logs it in. Usernames are unique.
func (o *orchestrator) SignUp(ctx context.Context, input *SignUpInput) (*SignUpOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	if input.Username == "" {
		vb.RequiredField("Username")
	}
	if input.Password == "" {
		vb.RequiredField("Password")
	}
	if input.ConfirmPassword != "" && input.ConfirmPassword != input.Password {
		vb.InvalidField("ConfirmPassword", "passwords do not match")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var created *entities.User
	err := o.repo.Update(func(s *world.State) error {
		if s.User(input.Username) != nil {
			return errors.AlreadyExistsf("username %q is taken", input.Username)
		}
		u := entities.NewUser(input.Username, input.Password)
		s.Users[u.Username] = u
		s.CurrentUser = u.Username
		created = u.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.log.InfoContext(ctx, "account created", "username", input.Username)
	o.notifier.Push(notify.Successf("Welcome, %s! Your adventure begins.", input.Username))
	return &SignUpOutput{User: created}, nil
}

// LogIn checks the credentials and makes the user the session user.
// Wrong username and wrong password report the same error.
func (o *orchestrator) LogIn(ctx context.Context, input *LogInInput) (*LogInOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	if input.Username == "" {
		vb.RequiredField("Username")
	}
	if input.Password == "" {
		vb.RequiredField("Password")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var logged *entities.User
	err := o.repo.Update(func(s *world.State) error {
		u := s.User(input.Username)
		if u == nil || u.Password != input.Password {
			return errors.Unauthenticated("invalid username or password")
		}
		s.CurrentUser = u.Username
		logged = u.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.log.InfoContext(ctx, "logged in", "username", input.Username)
	o.notifier.Push(notify.Successf("Welcome back, %s!", input.Username))
	return &LogInOutput{User: logged}, nil
}

// LogOut clears the session. Logging out while logged out is an error.
func (o *orchestrator) LogOut(ctx context.Context, _ *LogOutInput) (*LogOutOutput, error) {
	var username string
	err := o.repo.Update(func(s *world.State) error {
		if s.CurrentUser == "" {
			return errors.Unauthenticated("nobody is logged in")
		}
		username = s.CurrentUser
		s.CurrentUser = ""
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.log.InfoContext(ctx, "logged out", "username", username)
	return &LogOutOutput{Username: username}, nil
}

// GetCurrentUser returns a copy of the session user
func (o *orchestrator) GetCurrentUser(_ context.Context, _ *GetCurrentUserInput) (*GetCurrentUserOutput, error) {
	var u *entities.User
	o.repo.View(func(s *world.State) {
		if cur := s.Current(); cur != nil {
			u = cur.Clone()
		}
	})
	if u == nil {
		return nil, errors.Unauthenticated("nobody is logged in")
	}
	return &GetCurrentUserOutput{User: u}, nil
}
