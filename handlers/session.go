package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sitebrief/auth-service/internal/model"
	"go.uber.org/zap"
)

const (
	sessionKeyAuthenticated = "authenticated"
	sessionKeyUserID        = "user_id"
	sessionKeyUserDocID     = "user_doc_id"
	sessionKeyName          = "name"
	sessionKeyRole          = "role"
	sessionKeyProjectID     = "project_id"

	rememberCookieName   = "sitebrief_remember"
	rememberCookieMaxAge = 30 * 24 * 60 * 60
)

func setSessionUser(sess sessions.Session, user *model.User) {
	sess.Set(sessionKeyAuthenticated, true)
	sess.Set(sessionKeyUserID, user.ID)
	sess.Set(sessionKeyUserDocID, user.DocumentID)
	sess.Set(sessionKeyName, user.Name)
	sess.Set(sessionKeyRole, string(user.Role))
}

func sessionSnapshot(sess sessions.Session) *SessionResponse {
	resp := &SessionResponse{}
	if v, ok := sess.Get(sessionKeyUserDocID).(string); ok {
		resp.UserID = v
	}
	if v, ok := sess.Get(sessionKeyName).(string); ok {
		resp.Name = v
	}
	if v, ok := sess.Get(sessionKeyRole).(string); ok {
		resp.Role = v
	}
	if v, ok := sess.Get(sessionKeyProjectID).(string); ok {
		resp.ProjectID = v
	}
	return resp
}

func sessionUserID(sess sessions.Session) (uint, bool) {
	id, ok := sess.Get(sessionKeyUserID).(uint)
	return id, ok
}

func isAuthenticated(sess sessions.Session) bool {
	authed, ok := sess.Get(sessionKeyAuthenticated).(bool)
	return ok && authed
}

// requireSession guards endpoints that need an authenticated session.
func (s *Service) requireSession(c *gin.Context) {
	if !isAuthenticated(sessions.Default(c)) {
		JSONError(c, http.StatusUnauthorized, nil, "authentication required")
		return
	}
	c.Next()
}

// restoreRememberedSession re-establishes a session from a valid
// remember cookie. The token is rotated on every redemption and the
// cookie refreshed; a stale cookie is cleared.
func (s *Service) restoreRememberedSession(c *gin.Context) {
	sess := sessions.Default(c)
	if isAuthenticated(sess) {
		c.Next()
		return
	}

	cookie, err := c.Cookie(rememberCookieName)
	if err != nil {
		c.Next()
		return
	}

	userID, token, ok := parseRememberCookie(cookie)
	if !ok {
		clearRememberCookie(c)
		c.Next()
		return
	}

	user, rotated, err := s.AuthService.ValidateRememberToken(c.Request.Context(), userID, token)
	if err != nil {
		clearRememberCookie(c)
		c.Next()
		return
	}

	setSessionUser(sess, user)
	err = sess.Save()
	if err != nil {
		s.Logger.Error("failed to save remembered session", zap.Error(err))
		c.Next()
		return
	}
	setRememberCookie(c, userID, rotated)

	c.Next()
}

func setRememberCookie(c *gin.Context, userID uint, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(rememberCookieName, fmt.Sprintf("%d:%s", userID, token), rememberCookieMaxAge, "/", "", true, true)
}

func clearRememberCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(rememberCookieName, "", -1, "/", "", true, true)
}

func parseRememberCookie(value string) (uint, string, bool) {
	idPart, token, found := strings.Cut(value, ":")
	if !found || token == "" {
		return 0, "", false
	}
	id, err := strconv.ParseUint(idPart, 10, 32)
	if err != nil {
		return 0, "", false
	}
	return uint(id), token, true
}
