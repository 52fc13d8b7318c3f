package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sitebrief/auth-service/config"
	"github.com/sitebrief/auth-service/internal/auth"
	"github.com/sitebrief/auth-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- Mock Auth Service ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Authenticate(ctx context.Context, args *model.CredentialsArgs) (*model.User, error) {
	called := m.Called(ctx, args)
	user, _ := called.Get(0).(*model.User)
	return user, called.Error(1)
}

func (m *MockAuthService) IssueRememberToken(ctx context.Context, userID uint) (string, error) {
	called := m.Called(ctx, userID)
	return called.String(0), called.Error(1)
}

func (m *MockAuthService) ValidateRememberToken(ctx context.Context, userID uint, token string) (*model.User, string, error) {
	called := m.Called(ctx, userID, token)
	user, _ := called.Get(0).(*model.User)
	return user, called.String(1), called.Error(2)
}

func (m *MockAuthService) RevokeRememberToken(ctx context.Context, userID uint) error {
	called := m.Called(ctx, userID)
	return called.Error(0)
}

func (m *MockAuthService) RequestPasswordReset(ctx context.Context, args *model.ForgotPasswordArgs) error {
	called := m.Called(ctx, args)
	return called.Error(0)
}

func (m *MockAuthService) ValidateResetToken(ctx context.Context, token string) (*model.PasswordResetToken, error) {
	called := m.Called(ctx, token)
	resetToken, _ := called.Get(0).(*model.PasswordResetToken)
	return resetToken, called.Error(1)
}

func (m *MockAuthService) ResetPasswordSubmit(ctx context.Context, args *model.ResetPasswordArgs) error {
	called := m.Called(ctx, args)
	return called.Error(0)
}

func (m *MockAuthService) SelectProject(ctx context.Context, projectID string) (*model.Project, error) {
	called := m.Called(ctx, projectID)
	project, _ := called.Get(0).(*model.Project)
	return project, called.Error(1)
}

func (m *MockAuthService) ListProjects(ctx context.Context) ([]*model.Project, error) {
	called := m.Called(ctx)
	projects, _ := called.Get(0).([]*model.Project)
	return projects, called.Error(1)
}

func newTestRouter(t *testing.T, mockAuth *MockAuthService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router, err := SetupRouter(&Service{
		ServiceName: "auth-service",
		Config:      &config.Config{SessionSecret: "test-session-secret"},
		AuthService: mockAuth,
		Logger:      zap.NewNop(),
	})
	require.NoError(t, err)
	return router
}

func postJSON(router *gin.Engine, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func testUser() *model.User {
	return &model.User{
		Model:      gorm.Model{ID: 7},
		DocumentID: "user-doc-7",
		Username:   "foreman",
		Name:       "Site Foreman",
		Role:       model.RoleManager,
	}
}

func TestLogin_Success(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockAuth.On("Authenticate", mock.Anything, mock.MatchedBy(func(args *model.CredentialsArgs) bool {
		return args.Username == "foreman" && args.Password == "correct-password"
	})).Return(testUser(), nil)

	router := newTestRouter(t, mockAuth)

	w := postJSON(router, "/service/api/auth/v1/login", LoginRequest{Username: "foreman", Password: "correct-password"}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Login successful.")
	assert.Contains(t, w.Body.String(), "Site Foreman")
	assert.Contains(t, w.Header().Get("Set-Cookie"), sessionCookieName)
	mockAuth.AssertExpectations(t)
}

func TestLogin_MissingFields(t *testing.T) {
	mockAuth := new(MockAuthService)
	router := newTestRouter(t, mockAuth)

	w := postJSON(router, "/service/api/auth/v1/login", LoginRequest{Username: "foreman"}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "username and password are required")
	mockAuth.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockAuth.On("Authenticate", mock.Anything, mock.Anything).Return(nil, auth.ErrInvalidCredentials)

	router := newTestRouter(t, mockAuth)

	w := postJSON(router, "/service/api/auth/v1/login", LoginRequest{Username: "foreman", Password: "wrong"}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid username or password")
}

func TestLogin_LockedAccount(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockAuth.On("Authenticate", mock.Anything, mock.Anything).Return(nil, auth.ErrAccountLocked)

	router := newTestRouter(t, mockAuth)

	w := postJSON(router, "/service/api/auth/v1/login", LoginRequest{Username: "admin", Password: "correct-password"}, nil)

	assert.Equal(t, http.StatusLocked, w.Code)
	assert.Contains(t, w.Body.String(), "account temporarily locked")
}

func TestLogin_RememberSetsCookie(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockAuth.On("Authenticate", mock.Anything, mock.Anything).Return(testUser(), nil)
	mockAuth.On("IssueRememberToken", mock.Anything, uint(7)).Return("opaque-remember-token", nil)

	router := newTestRouter(t, mockAuth)

	w := postJSON(router, "/service/api/auth/v1/login", LoginRequest{Username: "foreman", Password: "correct-password", Remember: true}, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var rememberCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == rememberCookieName {
			rememberCookie = c
		}
	}
	require.NotNil(t, rememberCookie)
	assert.Equal(t, "7:opaque-remember-token", rememberCookie.Value)
	assert.True(t, rememberCookie.HttpOnly)
	assert.True(t, rememberCookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, rememberCookie.SameSite)
	mockAuth.AssertExpectations(t)
}

func TestLogin_RememberIssueFailureStillLogsIn(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockAuth.On("Authenticate", mock.Anything, mock.Anything).Return(testUser(), nil)
	mockAuth.On("IssueRememberToken", mock.Anything, uint(7)).Return("", assert.AnError)

	router := newTestRouter(t, mockAuth)

	w := postJSON(router, "/service/api/auth/v1/login", LoginRequest{Username: "foreman", Password: "correct-password", Remember: true}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		assert.NotEqual(t, rememberCookieName, c.Name)
	}
}

func TestLogin_WithProjectBindsSession(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockAuth.On("Authenticate", mock.Anything, mock.Anything).Return(testUser(), nil)
	mockAuth.On("SelectProject", mock.Anything, "proj-1").Return(&model.Project{DocumentID: "proj-1", Name: "Riverside Tower", Active: true}, nil)

	router := newTestRouter(t, mockAuth)

	w := postJSON(router, "/service/api/auth/v1/login", LoginRequest{Username: "foreman", Password: "correct-password", ProjectID: "proj-1"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// The session snapshot from a follow-up request carries the project.
	req := httptest.NewRequest(http.MethodGet, "/service/api/auth/v1/session", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)

	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "proj-1")
	assert.Contains(t, w2.Body.String(), "user-doc-7")
}

func TestCurrentSession_RequiresAuthentication(t *testing.T) {
	router := newTestRouter(t, new(MockAuthService))

	req := httptest.NewRequest(http.MethodGet, "/service/api/auth/v1/session", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication required")
}

func TestRememberedSession_Restored(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockAuth.On("ValidateRememberToken", mock.Anything, uint(7), "opaque-remember-token").Return(testUser(), "rotated-token", nil)

	router := newTestRouter(t, mockAuth)

	req := httptest.NewRequest(http.MethodGet, "/service/api/auth/v1/session", nil)
	req.AddCookie(&http.Cookie{Name: rememberCookieName, Value: "7:opaque-remember-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-doc-7")

	var refreshed *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == rememberCookieName {
			refreshed = c
		}
	}
	require.NotNil(t, refreshed)
	assert.Equal(t, "7:rotated-token", refreshed.Value)
	mockAuth.AssertExpectations(t)
}

func TestRememberedSession_StaleCookieCleared(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockAuth.On("ValidateRememberToken", mock.Anything, uint(7), "stale-token").Return(nil, "", auth.ErrInvalidCredentials)

	router := newTestRouter(t, mockAuth)

	req := httptest.NewRequest(http.MethodGet, "/service/api/auth/v1/session", nil)
	req.AddCookie(&http.Cookie{Name: rememberCookieName, Value: "7:stale-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var cleared *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == rememberCookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)
}

func TestForgotPassword_SameBodyForKnownAndUnknownEmail(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockAuth.On("RequestPasswordReset", mock.Anything, mock.Anything).Return(nil)

	router := newTestRouter(t, mockAuth)

	known := postJSON(router, "/service/api/auth/v1/forgot-password", ForgotPasswordRequest{Email: "worker@example.com"}, nil)
	unknown := postJSON(router, "/service/api/auth/v1/forgot-password", ForgotPasswordRequest{Email: "nobody@example.com"}, nil)

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
}

func TestForgotPassword_InvalidEmail(t *testing.T) {
	mockAuth := new(MockAuthService)
	router := newTestRouter(t, mockAuth)

	w := postJSON(router, "/service/api/auth/v1/forgot-password", ForgotPasswordRequest{Email: "not-an-email"}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuth.AssertNotCalled(t, "RequestPasswordReset", mock.Anything, mock.Anything)
}

func TestValidateResetToken_MissingToken(t *testing.T) {
	router := newTestRouter(t, new(MockAuthService))

	req := httptest.NewRequest(http.MethodGet, "/service/api/auth/v1/reset-password/validate", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "token is required")
}

func TestResetPasswordSubmit_ShortPassword(t *testing.T) {
	mockAuth := new(MockAuthService)
	router := newTestRouter(t, mockAuth)

	w := postJSON(router, "/service/api/auth/v1/reset-password", ResetPasswordRequest{Token: "tok", NewPassword: "short"}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuth.AssertNotCalled(t, "ResetPasswordSubmit", mock.Anything, mock.Anything)
}

func TestLogout_ClearsSessionAndRememberToken(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockAuth.On("Authenticate", mock.Anything, mock.Anything).Return(testUser(), nil)
	mockAuth.On("RevokeRememberToken", mock.Anything, uint(7)).Return(nil)

	router := newTestRouter(t, mockAuth)

	login := postJSON(router, "/service/api/auth/v1/login", LoginRequest{Username: "foreman", Password: "correct-password"}, nil)
	require.Equal(t, http.StatusOK, login.Code)

	logout := postJSON(router, "/service/api/auth/v1/logout", nil, login.Result().Cookies())
	assert.Equal(t, http.StatusOK, logout.Code)
	assert.True(t, strings.Contains(logout.Body.String(), "Logged out."))
	mockAuth.AssertExpectations(t)
}
