package dfu

import (
	"time"

	"github.com/lumenwear/blelink/logging"
)

// Config holds the updater configuration.
type Config struct {
	// ControlTimeout bounds the wait for each control command response
	ControlTimeout time.Duration

	// SettleDelay is the pause between the init and image transfers
	SettleDelay time.Duration

	// ProgressCallback is called after each committed chunk (optional)
	ProgressCallback ProgressCallback

	// Logger is used for transfer logging (optional)
	Logger logging.Logger
}

func defaultConfig() Config {
	return Config{
		ControlTimeout: time.Second,
		SettleDelay:    time.Second,
		Logger:         logging.Nop(),
	}
}

// Option is a functional option for configuring the Updater.
type Option func(*Config)

// WithControlTimeout sets the control response timeout.
func WithControlTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.ControlTimeout = timeout
		}
	}
}

// WithSettleDelay sets the pause between the init and image transfers.
func WithSettleDelay(delay time.Duration) Option {
	return func(c *Config) {
		if delay >= 0 {
			c.SettleDelay = delay
		}
	}
}

// WithProgressCallback sets a callback invoked after each committed chunk.
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for transfer operations.
func WithLogger(logger logging.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
