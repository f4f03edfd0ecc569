// Package mfaware gates routes on a user's resolved MFA eligibility. It
// sits above the resolver: the resolver never errors, so the fail-open vs
// fail-closed decision for an unavailable provider lives here, as host
// policy.
package mfaware

import (
	"context"
	"errors"

	"github.com/goliatone/go-router"

	mfa "github.com/goliatone/go-mfa"
)

var (
	// ErrMissingUsername means no authenticated username could be found on
	// the request context.
	ErrMissingUsername = errors.New("missing authenticated username")
	// ErrAccessDenied means the provider denied the account.
	ErrAccessDenied = errors.New("mfa access denied")
	// ErrProviderUnavailable means the provider could not be reached and the
	// configured policy is fail-closed.
	ErrProviderUnavailable = errors.New("mfa provider unavailable")
)

const defaultContextKey = "mfa_account"

// AccountResolver mirrors the resolver surface the middleware needs without
// import cycles.
type AccountResolver interface {
	Resolve(ctx context.Context, username string) *mfa.UserAccount
}

type Config struct {
	// Filter skips the middleware when it returns true.
	Filter func(router.Context) bool
	// SuccessHandler runs after the account passed policy. Defaults to Next.
	SuccessHandler router.HandlerFunc
	// ErrorHandler converts policy failures into responses.
	ErrorHandler router.ErrorHandler
	// Resolver is required.
	Resolver AccountResolver
	// UsernameLookup extracts the authenticated username from the request
	// context. Defaults to reading the "username" local.
	UsernameLookup func(router.Context) string
	// ContextKey is where the resolved account is stored for downstream
	// handlers.
	ContextKey string
	// FailOpen lets requests through when the provider is unavailable.
	// Default is fail-closed.
	FailOpen bool
	// EnrollRedirect sends ENROLL accounts to their enrollment portal URL
	// instead of rejecting the request.
	EnrollRedirect bool
}

// New returns a middleware enforcing MFA eligibility policy.
func New(config ...Config) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		cfg := GetDefaultConfig(config...)
		return func(ctx router.Context) error {
			if cfg.Filter != nil && cfg.Filter(ctx) {
				return ctx.Next()
			}

			username := cfg.UsernameLookup(ctx)
			if username == "" {
				return cfg.ErrorHandler(ctx, ErrMissingUsername)
			}

			account := cfg.Resolver.Resolve(ctx.Context(), username)

			switch account.Status {
			case mfa.StatusDeny:
				return cfg.ErrorHandler(ctx, ErrAccessDenied)
			case mfa.StatusEnroll:
				if cfg.EnrollRedirect && account.EnrollPortalURL != "" {
					return ctx.Redirect(account.EnrollPortalURL, router.StatusSeeOther)
				}
				return cfg.ErrorHandler(ctx, ErrAccessDenied)
			case mfa.StatusUnavailable:
				if !cfg.FailOpen {
					return cfg.ErrorHandler(ctx, ErrProviderUnavailable)
				}
			}

			ctx.Locals(cfg.ContextKey, account)

			return cfg.SuccessHandler(ctx)
		}
	}
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Resolver == nil {
		panic("MFA: middleware configuration: Resolver is required.")
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(ctx router.Context) error {
			return ctx.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c router.Context, err error) error {
			switch {
			case errors.Is(err, ErrMissingUsername):
				return c.Status(router.StatusUnauthorized).SendString(err.Error())
			case errors.Is(err, ErrProviderUnavailable):
				return c.Status(router.StatusServiceUnavailable).SendString(err.Error())
			default:
				return c.Status(router.StatusForbidden).SendString(ErrAccessDenied.Error())
			}
		}
	}

	if cfg.UsernameLookup == nil {
		cfg.UsernameLookup = func(c router.Context) string {
			if username, ok := c.Locals("username").(string); ok {
				return username
			}
			return ""
		}
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = defaultContextKey
	}

	return cfg
}
