// Package config loads and holds all application configuration from the
// environment.
package config

import (
	"time"
)

type DB struct {
	Url string `envconfig:"URL"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Razorpay configures the payment gateway client. KeySecret signs checkout
// redirect payloads; WebhookSecret is configured independently in the gateway
// dashboard and signs webhook bodies.
type Razorpay struct {
	KeyID         string        `envconfig:"KEY_ID"`
	KeySecret     string        `envconfig:"KEY_SECRET"`
	WebhookSecret string        `envconfig:"WEBHOOK_SECRET"`
	Currency      string        `envconfig:"CURRENCY" default:"INR"`
	OrderTimeout  time.Duration `envconfig:"ORDER_TIMEOUT" default:"10s"`
}

type Log struct {
	Level  int    `envconfig:"LEVEL" default:"0"`
	Format string `envconfig:"FORMAT" default:"json"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"5000"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Auth      *Auth      `envconfig:"AUTH"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Razorpay  *Razorpay  `envconfig:"RAZORPAY"`
}
