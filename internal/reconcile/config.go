package reconcile

import "time"

// Config controls a reconciliation pass.
type Config struct {
	// RequestTimeout bounds the cart fetch inside one pass.
	RequestTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		RequestTimeout: 5 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaults.RequestTimeout
	}
	return c
}
