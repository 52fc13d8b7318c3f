package auth

import (
	"context"
	"time"

	"github.com/sitebrief/auth-service/internal/model"
)

type AggregateStoreTx interface {
	AggregateRepository
	Transactional
}

// AggregateRepository aggregates repos.
type AggregateRepository interface {
	AuthStore
}

// Transactional defines transaction methods.
type Transactional interface {
	InTx(context.Context, TxF) error
}
type TxF func(ctx context.Context, repo AggregateStoreTx) error

// AuthStore defines methods for auth entities.
type AuthStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
	UpdateLastLogin(ctx context.Context, userID uint, lastLoginAt time.Time) error
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
	CreateLoginAttempt(ctx context.Context, attempt *model.LoginAttempt) error
	CountRecentLoginFailures(ctx context.Context, username string) (int64, error)
	CreateRememberToken(ctx context.Context, token *model.RememberToken) error
	DeleteRememberTokensByUserID(ctx context.Context, userID uint) error
	GetRememberTokenByUserID(ctx context.Context, userID uint) (*model.RememberToken, error)
	CreatePasswordResetToken(ctx context.Context, token *model.PasswordResetToken) error
	DeletePasswordResetTokensByUserID(ctx context.Context, userID uint) error
	GetPasswordResetToken(ctx context.Context, token string) (*model.PasswordResetToken, error)
	MarkPasswordResetTokenUsed(ctx context.Context, token string) error
	GetProject(ctx context.Context, documentID string) (*model.Project, error)
	ListActiveProjects(ctx context.Context) ([]*model.Project, error)
}
