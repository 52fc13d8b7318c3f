package handlers

import (
	"context"

	"github.com/sitebrief/auth-service/config"
	"github.com/sitebrief/auth-service/internal/model"
	"github.com/sitebrief/auth-service/internal/store"
	"go.uber.org/zap"
)

// AuthService is what the handlers need from the auth layer; injected as
// an interface so handler tests can run against a double.
type AuthService interface {
	Authenticate(ctx context.Context, args *model.CredentialsArgs) (*model.User, error)
	IssueRememberToken(ctx context.Context, userID uint) (string, error)
	ValidateRememberToken(ctx context.Context, userID uint, token string) (*model.User, string, error)
	RevokeRememberToken(ctx context.Context, userID uint) error
	RequestPasswordReset(ctx context.Context, args *model.ForgotPasswordArgs) error
	ValidateResetToken(ctx context.Context, token string) (*model.PasswordResetToken, error)
	ResetPasswordSubmit(ctx context.Context, args *model.ResetPasswordArgs) error
	SelectProject(ctx context.Context, projectID string) (*model.Project, error)
	ListProjects(ctx context.Context) ([]*model.Project, error)
}

// Service struct holds all variables common to all handlers.
// That is why members have to be safe for concurrent use and do not cause race conditions!
type Service struct {
	ServiceName string
	Config      *config.Config
	AuthService AuthService
	Logger      *zap.Logger
	Db          *store.PostgresStore
}
