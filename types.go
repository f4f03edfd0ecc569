package mfa

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// AccountResolver resolves MFA eligibility for a username.
type AccountResolver interface {
	Ping(ctx context.Context) bool
	Resolve(ctx context.Context, username string) *UserAccount
}

// Transport executes a provider request and returns the raw response body.
// Implementations may enforce their own timeouts; callers get a single
// attempt per invocation.
type Transport interface {
	RoundTrip(ctx context.Context, req *ProviderRequest) (string, error)
}

// RequestSigner attaches provider authentication to an outbound request.
// Signing must be deterministic for identical inputs within the same
// timestamp granularity; malformed key material surfaces as an error, never
// as an unsigned request.
type RequestSigner interface {
	Sign(req *ProviderRequest, integrationKey, secretKey string) error
}

// Config holds provider options
type Config interface {
	GetAPIHost() string
	GetIntegrationKey() string
	GetSecretKey() string
	GetCacheSize() int
	GetCacheTTLSeconds() int
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] MFA "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] MFA "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] MFA "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] MFA "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
