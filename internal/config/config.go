package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration problems
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to an
// environment variable. Provider credentials (Stripe, SMTP, Redis, RabbitMQ)
// are optional: when a key is absent the corresponding feature is disabled
// with a logged warning instead of aborting startup, so the core catalog and
// booking API keeps working in degraded mode.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	JWTSecret    string // secret used to sign admin JWTs
	AccessTTLMin int    // admin access token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for admin password hashing

	StripeSecretKey      string // payment processor secret key (optional)
	StripePublishableKey string // payment processor publishable key (optional)

	SMTPHost     string // SMTP server host (optional)
	SMTPPort     string // SMTP server port
	SMTPUsername string // SMTP username
	SMTPPassword string // SMTP password
	FromEmail    string // sender address for outgoing mail
	FromName     string // sender display name
	AdminEmail   string // where admin notifications are delivered

	AMQPURL string // RabbitMQ URL for the notification queue (optional)

	BaseLang    string // site default language, ultimate fallback for i18n
	CurrencyDef string // default checkout currency
}

// Load reads configuration values from the environment. Database settings are
// required and missing values cause the program to exit with a fatal log
// message; everything provider-specific is a presence switch.
func Load() Config {
	cfg := Config{
		Env:          getenv("APP_ENV", "dev"),
		Port:         getenv("APP_PORT", "8080"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"), // empty allowed
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: intDefault("ACCESS_TOKEN_TTL_MIN", 60),
		BcryptCost:   intDefault("BCRYPT_COST", 12),

		StripeSecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
		StripePublishableKey: os.Getenv("STRIPE_PUBLISHABLE_KEY"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getenv("SMTP_PORT", "587"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		FromEmail:    os.Getenv("FROM_EMAIL"),
		FromName:     getenv("FROM_NAME", "Azul Route Tours"),
		AdminEmail:   os.Getenv("ADMIN_EMAIL"),

		AMQPURL: os.Getenv("RABBITMQ_URL"),

		BaseLang:    getenv("BASE_LANG", "en"),
		CurrencyDef: getenv("CURRENCY", "eur"),
	}
	if cfg.StripeSecretKey == "" {
		log.Println("warning: STRIPE_SECRET_KEY not set, checkout is disabled")
	}
	if cfg.SMTPHost == "" || cfg.SMTPUsername == "" || cfg.SMTPPassword == "" {
		log.Println("warning: SMTP credentials not set, email notifications are disabled")
	}
	if cfg.AMQPURL == "" {
		log.Println("warning: RABBITMQ_URL not set, notification events are dispatched in-process")
	}
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// intDefault reads an integer variable, falling back to def when unset or
// unparseable.
func intDefault(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("invalid int for %s: %q, using %d", key, s, def)
		return def
	}
	return n
}
