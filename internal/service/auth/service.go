package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/audit"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/auth"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/email"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
	audit.Logger
	email.EmailService
}

func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service, auditLogger audit.Logger, emailService email.EmailService) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
		Logger:         auditLogger,
		EmailService:   emailService,
	}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	userData, err := a.UserRepository.GetActiveByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !checkPassword(userData.PasswordHash, req.Password) {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	return a.issue(ctx, userData, "User logged in")
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, emailAddress string) (auth.LoginResponse, error) {
	userData, err := a.UserRepository.GetActiveByEmail(ctx, emailAddress)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return a.issue(ctx, userData, "User logged in with Google")
}

func (a *AuthServiceImpl) issue(ctx context.Context, userData user.User, description string) (auth.LoginResponse, error) {
	if userData.Status != user.StatusActive {
		return auth.LoginResponse{}, auth.ErrAccountInactive
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(userData.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	a.Logger.Log(ctx, audit.Entry{
		Action:      audit.ActionUserLogin,
		PerformedBy: userData.ID,
		Description: description + ": " + userData.Email,
		TargetModel: audit.TargetUser,
		TargetID:    userData.ID,
	})

	return auth.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      auth.NewSessionUser(userData),
	}, nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (user.UserResponse, error) {
	actor, ok := user.ActorFromContext(ctx)
	if !ok {
		return user.UserResponse{}, user.ErrUnauthenticated
	}
	return user.NewUserResponse(actor), nil
}

// ChangePassword implements auth.AuthService.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	actor, ok := user.ActorFromContext(ctx)
	if !ok {
		return user.ErrUnauthenticated
	}
	if err := req.Validate(); err != nil {
		return err
	}

	current, err := a.UserRepository.GetByID(ctx, actor.ID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if !checkPassword(current.PasswordHash, req.CurrentPassword) {
		return auth.ErrCurrentPasswordIncorrect
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := a.UserRepository.UpdatePassword(ctx, actor.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	a.Logger.Log(ctx, audit.Entry{
		Action:      audit.ActionUserChangePassword,
		PerformedBy: actor.ID,
		Description: "User changed password",
		TargetModel: audit.TargetUser,
		TargetID:    actor.ID,
	})
	return nil
}

// ResetPassword implements auth.AuthService.
func (a *AuthServiceImpl) ResetPassword(ctx context.Context, userID string, req auth.ResetPasswordRequest) error {
	actor, ok := user.ActorFromContext(ctx)
	if !ok {
		return user.ErrUnauthenticated
	}
	if err := req.Validate(); err != nil {
		return err
	}

	target, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	if target.IsDeleted {
		return user.ErrUserNotFound
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := a.UserRepository.UpdatePassword(ctx, target.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	a.Logger.Log(ctx, audit.Entry{
		Action:      audit.ActionUserResetPassword,
		PerformedBy: actor.ID,
		Description: "Password reset for " + target.Email,
		TargetModel: audit.TargetUser,
		TargetID:    target.ID,
	})

	email.Notify(ctx, "password_reset", func(ctx context.Context) error {
		return a.EmailService.SendPasswordResetNotice(ctx, target.Email, target.Name, actor.Name)
	})
	return nil
}
