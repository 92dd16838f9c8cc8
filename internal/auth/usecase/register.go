package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/kodefy/authstep/internal/auth/entity"
	"github.com/kodefy/authstep/internal/pkg/goerror"
)

type RegisterInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
}

type RegisterOutput struct {
	UserID int64
	Email  string
}

// Register creates a new account with the second factor disabled. The
// response never carries the password hash.
func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := strings.TrimSpace(in.Email)

	_, err := s.repoDB.GetUserByEmail(ctx, email)
	if err == nil {
		slog.WarnContext(ctx, "email is already registered", "email", email)
		return nil, goerror.NewBusiness("email already registered", goerror.CodeConflict)
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	passwordHash, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	user := entity.NewUser{
		ID:       s.uid.Generate(),
		Email:    email,
		Password: string(passwordHash),
	}
	if err := s.repoDB.CreateUser(ctx, user); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			slog.WarnContext(ctx, "email is already registered", "email", email)
			return nil, goerror.NewBusiness("email already registered", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create user", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	// Registration already succeeded, a publish failure only loses the event.
	if err := s.repoMessaging.PublishUserRegistered(ctx, UserRegisteredEvent{
		UserID: user.ID,
		Email:  user.Email,
	}); err != nil {
		slog.WarnContext(ctx, "failed to publish user registered event", "user_id", user.ID, "error", err)
	}

	return &RegisterOutput{UserID: user.ID, Email: user.Email}, nil
}
