package auth

import (
	"context"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	// LoginWithGoogle signs in the existing account owning a verified Google e-mail.
	LoginWithGoogle(ctx context.Context, email string) (LoginResponse, error)
	Me(ctx context.Context) (user.UserResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	ResetPassword(ctx context.Context, userID string, req ResetPasswordRequest) error
}
