package handlers

import (
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/requestid"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	cors "github.com/itsjamie/gin-cors"
)

const sessionCookieName = "sitebrief_session"

func SetupRouter(svr *Service) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	router.Use(requestid.New())
	router.Use(cors.Middleware(cors.Config{
		Origins:         "*", // TODO
		Methods:         "GET, PUT, POST, DELETE, HEAD, PATCH",
		RequestHeaders:  "Origin, Authorization, Content-Type, Content-Length",
		ExposedHeaders:  "Correlation-Id",
		MaxAge:          12 * time.Hour,
		Credentials:     true,
		ValidateHeaders: false,
	}))

	sessionStore := cookie.NewStore([]byte(svr.Config.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	router.Use(sessions.Sessions(sessionCookieName, sessionStore))
	router.Use(svr.restoreRememberedSession)

	v1 := router.Group("/service/api/auth/v1")
	v1.GET("/health", svr.Health)
	v1.POST("/login", svr.Login)
	v1.POST("/forgot-password", svr.ForgotPassword)
	v1.GET("/reset-password/validate", svr.ValidateResetToken)
	v1.POST("/reset-password", svr.ResetPasswordSubmit)

	authed := v1.Group("", svr.requireSession)
	authed.POST("/logout", svr.Logout)
	authed.GET("/session", svr.CurrentSession)
	authed.POST("/session/project", svr.SelectProject)
	authed.GET("/projects", svr.ListProjects)

	return router, nil
}
