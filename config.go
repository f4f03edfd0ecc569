package mfa

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	// DefaultCacheTTLSeconds is how long a resolved account may be served
	// from cache before the next resolve re-queries the provider.
	DefaultCacheTTLSeconds = 5
	// DefaultCacheSize bounds the number of live cache entries.
	DefaultCacheSize = 100_000_000
	// DefaultTransportTimeout bounds a single provider round trip.
	DefaultTransportTimeout = 10 * time.Second
)

// ProviderConfig is a concrete Config for a provider integration. Values are
// read-only shared configuration, never mutated after construction.
type ProviderConfig struct {
	// APIHost is the provider admin API host, with or without scheme; a bare
	// host is normalized to https.
	APIHost string `json:"api_host"`

	// IntegrationKey identifies the integration with the provider.
	IntegrationKey string `json:"integration_key"`

	// SecretKey is the HMAC signing secret paired with IntegrationKey.
	SecretKey string `json:"secret_key"`

	// CacheSize bounds live cache entries. Zero uses DefaultCacheSize.
	CacheSize int `json:"cache_size"`

	// CacheTTLSeconds is the cache entry lifetime. Zero uses
	// DefaultCacheTTLSeconds.
	CacheTTLSeconds int `json:"cache_ttl_seconds"`
}

var _ Config = (*ProviderConfig)(nil)

// Validate will run validation rules
func (c ProviderConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.APIHost, validation.Required, validation.Length(1, 255)),
		validation.Field(&c.IntegrationKey, validation.Required, validation.Length(1, 128)),
		validation.Field(&c.SecretKey, validation.Required, validation.Length(1, 128)),
		validation.Field(&c.CacheSize, validation.Min(0)),
		validation.Field(&c.CacheTTLSeconds, validation.Min(0)),
	)
}

func (c ProviderConfig) GetAPIHost() string        { return c.APIHost }
func (c ProviderConfig) GetIntegrationKey() string { return c.IntegrationKey }
func (c ProviderConfig) GetSecretKey() string      { return c.SecretKey }

func (c ProviderConfig) GetCacheSize() int {
	if c.CacheSize <= 0 {
		return DefaultCacheSize
	}
	return c.CacheSize
}

func (c ProviderConfig) GetCacheTTLSeconds() int {
	if c.CacheTTLSeconds <= 0 {
		return DefaultCacheTTLSeconds
	}
	return c.CacheTTLSeconds
}
