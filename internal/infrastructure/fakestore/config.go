package fakestore

import (
	"errors"
	"time"
)

// Client defaults
const (
	DefaultBaseURL          = "https://fakestoreapi.com"
	DefaultTimeout          = 10 * time.Second
	DefaultMaxResponseBytes = 10 * 1024 * 1024 // 10MB
)

// ErrMissingBaseURL is returned when a client is configured without a base URL
var ErrMissingBaseURL = errors.New("fakestore: base URL is required")

// Config holds the upstream API settings
type Config struct {
	// BaseURL is the API root, without trailing slash
	BaseURL string
	// Timeout bounds a single request; zero disables it
	Timeout time.Duration
	// MaxResponseBytes caps the response body that is read
	MaxResponseBytes int64
}

// DefaultConfig returns the public fakestore API configuration
func DefaultConfig() Config {
	return Config{
		BaseURL:          DefaultBaseURL,
		Timeout:          DefaultTimeout,
		MaxResponseBytes: DefaultMaxResponseBytes,
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}
	return nil
}
