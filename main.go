package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/kelseyhightower/envconfig"
	"github.com/sitebrief/auth-service/config"
	"github.com/sitebrief/auth-service/handlers"
	"github.com/sitebrief/auth-service/internal/auth"
	"github.com/sitebrief/auth-service/internal/email"
	"github.com/sitebrief/auth-service/internal/password"
	"github.com/sitebrief/auth-service/internal/store"

	"go.uber.org/zap"
)

const serviceName = "auth-service"

func main() {
	// Default environment variable ENV has to be set via Makefile with values: dev, stg, prod.
	environ := os.Getenv("ENV")
	if environ == "" {
		panic("Failed to get environment variable ENV. Make sure it is set.")
	}

	var conf config.Config
	if err := envconfig.Process("", &conf); err != nil {
		panic("Failed to load environment variables:" + err.Error())
	}
	conf.DatabaseURI = strings.Trim(conf.DatabaseURI, "'")
	if !strings.HasPrefix(conf.ServerPort, ":") {
		conf.ServerPort = ":" + conf.ServerPort
	}

	logger, err := newLogger(environ)
	if err != nil {
		panic("Failed to build logger:" + err.Error())
	}
	defer logger.Sync()

	if conf.SentryDSN != "" {
		err = sentry.Init(sentry.ClientOptions{
			Dsn:         conf.SentryDSN,
			Environment: environ,
			ServerName:  serviceName,
		})
		if err != nil {
			logger.Fatal("Failed to init sentry", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	startService(environ, &conf, logger)
}

func newLogger(environ string) (*zap.Logger, error) {
	if environ == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func startService(environ string, conf *config.Config, logger *zap.Logger) {
	logger.Info("Starting", zap.String("service", serviceName), zap.String("env", environ))

	psqlConn, err := connectPostgres(environ, conf.DatabaseURI)
	if err != nil {
		logger.Fatal("Failed to connect to postgres", zap.String("databaseuri", conf.DatabaseURI), zap.Error(err))
	}
	postgresStore := store.NewPostgresStore(psqlConn)

	sender := email.NewSender(conf.SMTP.Host, conf.SMTP.Port, conf.SMTP.Username, conf.SMTP.Password, conf.SMTP.From)

	authService := auth.NewAuthService(postgresStore, logger, password.NewHasher(), sender, conf.WebAppURL)

	srv := &handlers.Service{
		ServiceName: serviceName,
		Config:      conf,
		Logger:      logger,
		Db:          postgresStore,
		AuthService: authService,
	}

	router, err := handlers.SetupRouter(srv)
	if err != nil {
		logger.Panic("Failed to setup router", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)

	go func() {
		errCh <- listenAndServe(ctx, router, conf.ServerPort, logger)
	}()

	err = <-errCh
	if err != nil {
		logger.Error("Server exited with error", zap.Error(err))
	} else {
		logger.Info("Server exited gracefully")
	}
}

func listenAndServe(ctx context.Context, router *gin.Engine, serverPort string, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:    serverPort,
		Handler: router,
	}

	serverErrCh := make(chan error, 1)

	go func() {
		logger.Info("Listening on address", zap.String("port", serverPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down gracefully")

		ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutDown); err != nil {
			return err
		}

		return nil
	case err := <-serverErrCh:
		return err
	}
}
