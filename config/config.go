package config

type Config struct {
	DatabaseURI   string `envconfig:"DATABASE_URI" required:"true"`
	SentryDSN     string `envconfig:"SENTRY_DSN"`
	ServerPort    string `envconfig:"AUTH_SERVICE_SERVER_PORT" required:"true"`
	SessionSecret string `envconfig:"SESSION_SECRET" required:"true"`
	SMTP          SMTP   `envconfig:"SMTP" required:"true"`
	WebAppURL     string `envconfig:"WEB_APP_URL" required:"true"`
}

type SMTP struct {
	Host     string `envconfig:"HOST" required:"true"`
	Port     int    `envconfig:"PORT" default:"587"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	From     string `envconfig:"FROM" required:"true"`
}
