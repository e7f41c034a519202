package campusalert

import (
	"time"
)

// Config carries the engine's tunables. Fields are populated from the
// environment via pkg/config.
type Config struct {
	// Workers is the dispatch worker pool size.
	Workers int `env:"ENGINE_WORKERS" envDefault:"2"`

	// Default retry policy applied to every notifier until reconfigured.
	RetryAttempts int           `env:"RETRY_ATTEMPTS" envDefault:"3"`
	RetryDelay    time.Duration `env:"RETRY_DELAY" envDefault:"1s"`
	RetryBackoff  float64       `env:"RETRY_BACKOFF" envDefault:"2"`

	// Default circuit breaker policy applied to every notifier.
	BreakerThreshold int           `env:"CIRCUIT_BREAKER_THRESHOLD" envDefault:"3"`
	BreakerCooldown  time.Duration `env:"CIRCUIT_BREAKER_COOLDOWN" envDefault:"5s"`

	// MailDir is where the development email sender writes messages when
	// no real transport is configured.
	MailDir string `env:"MAIL_OUTPUT_DIR" envDefault:".mail"`

	// DeliveryLogBackend selects where delivery history lives: "memory"
	// or "redis".
	DeliveryLogBackend string `env:"DELIVERY_LOG_BACKEND" envDefault:"memory"`

	// CatalogPath points at an optional JSON or YAML translation catalog
	// file loaded at startup.
	CatalogPath string `env:"TRANSLATION_CATALOG"`
}

// DefaultConfig returns the engine defaults used when no environment is
// loaded.
func DefaultConfig() Config {
	return Config{
		Workers:            2,
		RetryAttempts:      3,
		RetryDelay:         time.Second,
		RetryBackoff:       2,
		BreakerThreshold:   3,
		BreakerCooldown:    5 * time.Second,
		MailDir:            ".mail",
		DeliveryLogBackend: "memory",
	}
}

// normalized fills zero values so a partially populated config still yields
// a working engine.
func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.Workers <= 0 {
		c.Workers = def.Workers
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = def.RetryAttempts
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = def.RetryDelay
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = def.RetryBackoff
	}
	if c.BreakerThreshold <= 0 {
		c.BreakerThreshold = def.BreakerThreshold
	}
	if c.BreakerCooldown <= 0 {
		c.BreakerCooldown = def.BreakerCooldown
	}
	if c.MailDir == "" {
		c.MailDir = def.MailDir
	}
	if c.DeliveryLogBackend == "" {
		c.DeliveryLogBackend = def.DeliveryLogBackend
	}
	return c
}
