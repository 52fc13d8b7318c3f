package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/user_agent"
	"github.com/sitebrief/auth-service/internal/errorsx"
	"github.com/sitebrief/auth-service/internal/model"

	"go.uber.org/zap"
)

const (
	ErrResetPasswordLinkExpired = "The link has expired. Request a new password reset link."

	lockoutThreshold = 5
	lockoutWindow    = 15 * time.Minute
	rememberTokenTTL = 30 * 24 * time.Hour
	resetTokenTTL    = time.Hour
)

var (
	// ErrInvalidCredentials covers unknown usernames and wrong passwords
	// alike; the message never says which.
	ErrInvalidCredentials = errorsx.NewUnauthorizedError(errors.New("invalid username or password"))
	ErrAccountLocked      = errorsx.NewLockedError(errors.New("account temporarily locked, please try again later"))
)

type EmailSender interface {
	SendPasswordResetEmail(ctx context.Context, emailType model.EmailType, email string, link string) error
	SendAccountLockEmail(ctx context.Context, email string, attempt *model.LoginAttempt) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

type AuthClient struct {
	store       AggregateStoreTx
	logger      *zap.Logger
	hasher      PasswordHasher
	emailSender EmailSender
	webAppURL   string
}

func NewAuthService(
	store AggregateStoreTx,
	logger *zap.Logger,
	hasher PasswordHasher,
	emailSender EmailSender,
	webAppURL string,
) *AuthClient {
	return &AuthClient{
		store:       store,
		logger:      logger,
		hasher:      hasher,
		emailSender: emailSender,
		webAppURL:   webAppURL,
	}
}

// IsLocked reports whether the username crossed the failure threshold
// within the trailing lockout window.
func (a *AuthClient) IsLocked(ctx context.Context, username string) (bool, error) {
	count, err := a.store.CountRecentLoginFailures(ctx, username)
	if err != nil {
		a.logger.Error("failed to count recent login failures: ", zap.Error(err))
		return false, err
	}

	return count >= lockoutThreshold, nil
}

// Authenticate verifies credentials. The lockout check runs first; a
// locked account is rejected without touching the password at all.
func (a *AuthClient) Authenticate(ctx context.Context, args *model.CredentialsArgs) (*model.User, error) {
	locked, err := a.IsLocked(ctx, args.Username)
	if err != nil {
		return nil, err
	}
	if locked {
		a.recordAttempt(ctx, args, model.AttemptFailure)
		return nil, ErrAccountLocked
	}

	user, err := a.store.GetUserByUsername(ctx, args.Username)
	if err != nil {
		a.logger.Error("failed to get user: ", zap.Error(err))
		return nil, err
	}

	if user == nil || !a.hasher.Check(args.Password, user.PasswordHash) {
		attempt := a.recordAttempt(ctx, args, model.AttemptFailure)
		a.notifyIfLockedOut(ctx, user, args.Username, attempt)
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	err = a.store.UpdateLastLogin(ctx, user.ID, now)
	if err != nil {
		a.logger.Error("failed to update last login: ", zap.Error(err))
		return nil, err
	}
	user.LastLoginAt = &now

	a.recordAttempt(ctx, args, model.AttemptSuccess)

	return user, nil
}

// recordAttempt appends one audit row. Failures to write it are logged
// and swallowed so the audit trail never blocks the auth flow.
func (a *AuthClient) recordAttempt(ctx context.Context, args *model.CredentialsArgs, status model.AttemptStatus) *model.LoginAttempt {
	userAgentInfo := parseUserAgentInfo(args.UserAgent)
	device := userAgentInfo.Browser
	if userAgentInfo.OS != "" {
		device = fmt.Sprintf("%s, %s", userAgentInfo.Browser, userAgentInfo.OS)
	}

	attempt := &model.LoginAttempt{
		DocumentID: uuid.NewString(),
		Username:   args.Username,
		IPAddress:  args.IPAddress,
		UserAgent:  args.UserAgent,
		Device:     device,
		Status:     status,
	}
	attempt.CreatedAt = time.Now()

	err := a.store.CreateLoginAttempt(ctx, attempt)
	if err != nil {
		a.logger.Error("failed to record login attempt: ", zap.Error(err))
	}

	return attempt
}

// notifyIfLockedOut emails the account owner when this failure is the
// one that crossed the threshold. Best effort only.
func (a *AuthClient) notifyIfLockedOut(ctx context.Context, user *model.User, username string, attempt *model.LoginAttempt) {
	if user == nil {
		return
	}

	count, err := a.store.CountRecentLoginFailures(ctx, username)
	if err != nil {
		a.logger.Error("failed to count recent login failures: ", zap.Error(err))
		return
	}
	if count != lockoutThreshold {
		return
	}

	err = a.emailSender.SendAccountLockEmail(ctx, user.Email, attempt)
	if err != nil {
		a.logger.Error("failed to send account lock email: ", zap.Error(err))
	}
}

// IssueRememberToken replaces the user's remember token. Delete and
// insert run in one transaction so at most one live row survives.
func (a *AuthClient) IssueRememberToken(ctx context.Context, userID uint) (string, error) {
	token, err := generateOpaqueToken()
	if err != nil {
		a.logger.Error("failed to generate remember token: ", zap.Error(err))
		return "", err
	}

	err = a.store.InTx(ctx, func(ctx context.Context, repo AggregateStoreTx) error {
		err := repo.DeleteRememberTokensByUserID(ctx, userID)
		if err != nil {
			return err
		}
		return repo.CreateRememberToken(ctx, &model.RememberToken{
			UserID:    userID,
			Token:     token,
			ExpiresAt: time.Now().Add(rememberTokenTTL),
		})
	})
	if err != nil {
		a.logger.Error("failed to store remember token: ", zap.Error(err))
		return "", err
	}

	return token, nil
}

// ValidateRememberToken redeems a remember cookie. A valid token is
// rotated on every use, so each redemption invalidates the old cookie.
func (a *AuthClient) ValidateRememberToken(ctx context.Context, userID uint, token string) (*model.User, string, error) {
	stored, err := a.store.GetRememberTokenByUserID(ctx, userID)
	if err != nil {
		a.logger.Error("failed to get remember token: ", zap.Error(err))
		return nil, "", err
	}

	if stored == nil ||
		time.Now().After(stored.ExpiresAt) ||
		subtle.ConstantTimeCompare([]byte(stored.Token), []byte(token)) != 1 {
		return nil, "", ErrInvalidCredentials
	}

	user, err := a.store.GetUserByID(ctx, userID)
	if err != nil {
		a.logger.Error("failed to get user: ", zap.Error(err))
		return nil, "", err
	}

	rotated, err := a.IssueRememberToken(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	return user, rotated, nil
}

func (a *AuthClient) RevokeRememberToken(ctx context.Context, userID uint) error {
	err := a.store.DeleteRememberTokensByUserID(ctx, userID)
	if err != nil {
		a.logger.Error("failed to revoke remember token: ", zap.Error(err))
		return err
	}

	return nil
}

// RequestPasswordReset returns nil for unknown emails too, so the
// response shape never reveals whether an account exists.
func (a *AuthClient) RequestPasswordReset(ctx context.Context, args *model.ForgotPasswordArgs) error {
	user, err := a.store.GetUserByEmail(ctx, args.Email)
	if err != nil {
		a.logger.Error("failed to get user by email: ", zap.Error(err))
		return err
	}
	if user == nil {
		a.logger.Info("password reset requested for unknown email")
		return nil
	}

	token, err := generateOpaqueToken()
	if err != nil {
		a.logger.Error("failed to generate reset token: ", zap.Error(err))
		return err
	}

	err = a.store.InTx(ctx, func(ctx context.Context, repo AggregateStoreTx) error {
		err := repo.DeletePasswordResetTokensByUserID(ctx, user.ID)
		if err != nil {
			return err
		}
		return repo.CreatePasswordResetToken(ctx, &model.PasswordResetToken{
			UserID:    user.ID,
			Token:     token,
			ExpiresAt: time.Now().Add(resetTokenTTL),
		})
	})
	if err != nil {
		a.logger.Error("failed to store reset token: ", zap.Error(err))
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", a.webAppURL, token)
	err = a.emailSender.SendPasswordResetEmail(ctx, model.ResetPasswordEmailType, args.Email, link)
	if err != nil {
		a.logger.Error("failed to dispatch reset email: ", zap.Error(err))
		return fmt.Errorf("failed to dispatch reset email: %w", err)
	}

	return nil
}

func (a *AuthClient) ValidateResetToken(ctx context.Context, token string) (*model.PasswordResetToken, error) {
	resetToken, err := a.store.GetPasswordResetToken(ctx, token)
	if err != nil ||
		resetToken == nil ||
		resetToken.Used ||
		time.Now().After(resetToken.ExpiresAt) {
		a.logger.Error("failed to validate reset token: ", zap.Error(err))
		return nil, errorsx.NewBadRequestError(errors.New(ErrResetPasswordLinkExpired))
	}

	return resetToken, nil
}

// ResetPasswordSubmit consumes a reset token and installs the new
// password. Remember tokens for the user are dropped alongside.
func (a *AuthClient) ResetPasswordSubmit(ctx context.Context, args *model.ResetPasswordArgs) error {
	resetToken, err := a.ValidateResetToken(ctx, args.Token)
	if err != nil {
		return err
	}

	passwordHash, err := a.hasher.Hash(args.NewPassword)
	if err != nil {
		a.logger.Error("failed to hash new password: ", zap.Error(err))
		return err
	}

	err = a.store.InTx(ctx, func(ctx context.Context, repo AggregateStoreTx) error {
		err := repo.MarkPasswordResetTokenUsed(ctx, args.Token)
		if err != nil {
			return err
		}
		err = repo.UpdatePassword(ctx, resetToken.UserID, passwordHash)
		if err != nil {
			return err
		}
		return repo.DeleteRememberTokensByUserID(ctx, resetToken.UserID)
	})
	if err != nil {
		a.logger.Error("failed to reset password: ", zap.Error(err))
		return err
	}

	return nil
}

// SelectProject resolves the project a session binds to.
func (a *AuthClient) SelectProject(ctx context.Context, projectID string) (*model.Project, error) {
	project, err := a.store.GetProject(ctx, projectID)
	if err != nil {
		a.logger.Error("failed to get project: ", zap.Error(err))
		return nil, err
	}
	if project == nil || !project.Active {
		return nil, errorsx.NewBadRequestError(errors.New("project not found"))
	}

	return project, nil
}

func (a *AuthClient) ListProjects(ctx context.Context) ([]*model.Project, error) {
	projects, err := a.store.ListActiveProjects(ctx)
	if err != nil {
		a.logger.Error("failed to list projects: ", zap.Error(err))
		return nil, err
	}

	return projects, nil
}

type UserAgentInfo struct {
	DeviceType string // "mobile", "tablet", "desktop", etc.
	Browser    string
	BrowserVer string
	OS         string
}

func parseUserAgentInfo(userAgent string) UserAgentInfo {
	ua := user_agent.New(userAgent)

	browserName, browserVersion := ua.Browser()

	deviceType := "desktop"
	if ua.Mobile() {
		deviceType = "mobile"
	}

	return UserAgentInfo{
		DeviceType: deviceType,
		Browser:    browserName,
		BrowserVer: browserVersion,
		OS:         ua.OS(),
	}
}
