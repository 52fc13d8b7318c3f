package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/sitebrief/auth-service/internal/errorsx"
	"github.com/sitebrief/auth-service/internal/model"
	"go.uber.org/zap"
)

func (s *Service) Health(c *gin.Context) {
	if s.Db != nil {
		err := s.Db.Ping(c.Request.Context())
		if err != nil {
			errMsg := "database unreachable"
			s.Logger.Error(errMsg, zap.Error(err))
			JSONError(c, http.StatusServiceUnavailable, nil, "%s", errMsg)
			return
		}
	}
	JSON(c, nil, "Success")
}

func (s *Service) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req LoginRequest
	err := c.BindJSON(&req)
	if err != nil {
		errMsg := "failed to decode login request"
		s.Logger.Error(errMsg, zap.Error(err))
		JSONError(c, http.StatusBadRequest, nil, errMsg+": %v", err)
		return
	}

	// One generic message for any missing field.
	if req.Username == "" || req.Password == "" {
		JSONError(c, http.StatusBadRequest, nil, "username and password are required")
		return
	}

	user, err := s.AuthService.Authenticate(ctx, &model.CredentialsArgs{
		Username:  req.Username,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		errMsg := "failed to authenticate"
		s.Logger.Error(errMsg, zap.Error(err))
		errorsx.HandleError(c, err)
		return
	}

	sess := sessions.Default(c)
	setSessionUser(sess, user)

	if req.ProjectID != "" {
		project, err := s.AuthService.SelectProject(ctx, req.ProjectID)
		if err != nil {
			errMsg := "failed to select project"
			s.Logger.Error(errMsg, zap.Error(err))
			errorsx.HandleError(c, err)
			return
		}
		sess.Set(sessionKeyProjectID, project.DocumentID)
	}

	err = sess.Save()
	if err != nil {
		errMsg := "failed to save session"
		s.Logger.Error(errMsg, zap.Error(err))
		JSONError(c, http.StatusInternalServerError, nil, "%s", errMsg)
		return
	}

	if req.Remember {
		token, err := s.AuthService.IssueRememberToken(ctx, user.ID)
		if err != nil {
			// Login already succeeded; skip the cookie rather than fail.
			s.Logger.Error("failed to issue remember token", zap.Error(err))
		} else {
			setRememberCookie(c, user.ID, token)
		}
	}

	JSON(c, sessionSnapshot(sess), "Login successful.")
}

func (s *Service) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	sess := sessions.Default(c)
	if userID, ok := sessionUserID(sess); ok {
		err := s.AuthService.RevokeRememberToken(ctx, userID)
		if err != nil {
			s.Logger.Error("failed to revoke remember token", zap.Error(err))
		}
	}

	sess.Clear()
	err := sess.Save()
	if err != nil {
		errMsg := "failed to clear session"
		s.Logger.Error(errMsg, zap.Error(err))
		JSONError(c, http.StatusInternalServerError, nil, "%s", errMsg)
		return
	}
	clearRememberCookie(c)

	JSON(c, nil, "Logged out.")
}

func (s *Service) CurrentSession(c *gin.Context) {
	JSON(c, sessionSnapshot(sessions.Default(c)), "Success")
}

func (s *Service) SelectProject(c *gin.Context) {
	ctx := c.Request.Context()

	var req SelectProjectRequest
	err := c.BindJSON(&req)
	if err != nil {
		errMsg := "failed to decode select project request"
		s.Logger.Error(errMsg, zap.Error(err))
		JSONError(c, http.StatusBadRequest, nil, errMsg+": %v", err)
		return
	}

	if req.ProjectID == "" {
		JSONError(c, http.StatusBadRequest, nil, "project is required")
		return
	}

	project, err := s.AuthService.SelectProject(ctx, req.ProjectID)
	if err != nil {
		errMsg := "failed to select project"
		s.Logger.Error(errMsg, zap.Error(err))
		errorsx.HandleError(c, err)
		return
	}

	sess := sessions.Default(c)
	sess.Set(sessionKeyProjectID, project.DocumentID)
	err = sess.Save()
	if err != nil {
		errMsg := "failed to save session"
		s.Logger.Error(errMsg, zap.Error(err))
		JSONError(c, http.StatusInternalServerError, nil, "%s", errMsg)
		return
	}

	JSON(c, &ProjectResponse{ID: project.DocumentID, Name: project.Name}, "Success")
}

func (s *Service) ListProjects(c *gin.Context) {
	ctx := c.Request.Context()

	projects, err := s.AuthService.ListProjects(ctx)
	if err != nil {
		errMsg := "failed to list projects"
		s.Logger.Error(errMsg, zap.Error(err))
		errorsx.HandleError(c, err)
		return
	}

	resp := make([]*ProjectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, &ProjectResponse{ID: p.DocumentID, Name: p.Name})
	}

	JSON(c, resp, "Success")
}

func (s *Service) ForgotPassword(c *gin.Context) {
	ctx := c.Request.Context()

	var req ForgotPasswordRequest
	err := c.BindJSON(&req)
	if err != nil {
		errMsg := "failed to decode forgot-password request"
		s.Logger.Error(errMsg, zap.Error(err))
		JSONError(c, http.StatusBadRequest, nil, errMsg+": %v", err)
		return
	}

	err = validateEmail(req.Email)
	if err != nil {
		JSONError(c, http.StatusBadRequest, nil, "%v", err.Error())
		return
	}

	err = s.AuthService.RequestPasswordReset(ctx, &model.ForgotPasswordArgs{
		Email: req.Email,
	})
	if err != nil {
		errMsg := "failed to do forgot-password"
		s.Logger.Error(errMsg, zap.Error(err))
		errorsx.HandleError(c, err)
		return
	}

	// Same body whether or not the address exists.
	JSON(c, nil, "If an account exists for that address, a password reset link has been sent.")
}

func validateEmail(email string) error {
	return validation.Validate(
		email,
		validation.Required.Error("email is required"),
		is.Email.Error("valid email is required"))
}

func (s *Service) ValidateResetToken(c *gin.Context) {
	ctx := c.Request.Context()

	token := c.Query("token")
	if token == "" {
		JSONError(c, http.StatusBadRequest, nil, "token is required")
		return
	}

	_, err := s.AuthService.ValidateResetToken(ctx, token)
	if err != nil {
		errMsg := "failed to validate password reset token"
		s.Logger.Error(errMsg, zap.Error(err))
		errorsx.HandleError(c, err)
		return
	}

	JSON(c, nil, "Token is valid.")
}

func (s *Service) ResetPasswordSubmit(c *gin.Context) {
	ctx := c.Request.Context()

	var req ResetPasswordRequest
	err := c.BindJSON(&req)
	if err != nil {
		errMsg := "failed to decode reset-password request"
		s.Logger.Error(errMsg, zap.Error(err))
		JSONError(c, http.StatusBadRequest, nil, errMsg+": %v", err)
		return
	}

	if req.Token == "" {
		JSONError(c, http.StatusBadRequest, nil, "token is required")
		return
	}
	err = validation.Validate(req.NewPassword,
		validation.Required.Error("password is required"),
		validation.Length(8, 0).Error("password must be at least 8 characters"))
	if err != nil {
		JSONError(c, http.StatusBadRequest, nil, "%v", err.Error())
		return
	}

	err = s.AuthService.ResetPasswordSubmit(ctx, &model.ResetPasswordArgs{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		errMsg := "failed to reset password"
		s.Logger.Error(errMsg, zap.Error(err))
		errorsx.HandleError(c, err)
		return
	}

	JSON(c, nil, "Password has been successfully reset.")
}
