// Package config gathers server settings from command line flags, falling
// back to environment variables (optionally loaded from a .env file).
package config

import (
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

type Config struct {
	Addr        string
	TLSCert     string
	TLSKey      string
	DatabaseURL string
	TokenKey    string
	StaticDir   string
	RateLimit   float64
	RateBurst   int
	LogLevel    logrus.Level
}

// TLS reports whether both certificate and key are configured.
func (c *Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

// Load reads .env if present and parses args. Flags win over env vars.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug(".env not loaded")
	}
	return Parse(args)
}

func Parse(args []string) (*Config, error) {
	c := &Config{}
	var level string

	app := kingpin.New("flexure", "Beam deflection calculator service.")
	app.Flag("addr", "Listen address").Envar("FLEXURE_ADDR").Default(":443").StringVar(&c.Addr)
	app.Flag("tls-cert", "TLS certificate file; empty serves plain HTTP").Envar("FLEXURE_TLS_CERT").Default("server.crt").StringVar(&c.TLSCert)
	app.Flag("tls-key", "TLS key file; empty serves plain HTTP").Envar("FLEXURE_TLS_KEY").Default("server.key").StringVar(&c.TLSKey)
	app.Flag("database-url", "Postgres connection string").Envar("DATABASE_URL").StringVar(&c.DatabaseURL)
	app.Flag("token-key", "HMAC key for session tokens").Envar("TOKEN_KEY").StringVar(&c.TokenKey)
	app.Flag("static-dir", "Directory served at /").Envar("FLEXURE_STATIC_DIR").Default("./static").StringVar(&c.StaticDir)
	app.Flag("rate-limit", "Requests per second allowed per IP on /api").Envar("FLEXURE_RATE_LIMIT").Default("1").Float64Var(&c.RateLimit)
	app.Flag("rate-burst", "Burst size per IP on /api").Envar("FLEXURE_RATE_BURST").Default("3").IntVar(&c.RateBurst)
	app.Flag("log-level", "Log level: debug, info, warn, error").Envar("FLEXURE_LOG_LEVEL").Default("info").StringVar(&level)

	if _, err := app.Parse(args); err != nil {
		return nil, errors.Wrap(err, "could not parse command line flags")
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}
	c.LogLevel = lvl

	if c.TokenKey == "" {
		return nil, errors.New("TOKEN_KEY environment variable is not set")
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return nil, errors.New("rate limit and burst must be positive")
	}
	return c, nil
}
