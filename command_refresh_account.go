package mfa

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// RefreshAccountMessage asks for a username's cached status to be dropped
// and re-resolved against the provider. Dispatchable on any command bus that
// follows the Type() message convention.
type RefreshAccountMessage struct {
	Username string `json:"username"`
}

func (e RefreshAccountMessage) Type() string { return "mfa.account.refresh" }

// RefreshAccountHandler executes RefreshAccountMessage.
type RefreshAccountHandler struct {
	resolver *StatusResolver
}

// NewRefreshAccountHandler creates the handler.
func NewRefreshAccountHandler(resolver *StatusResolver) *RefreshAccountHandler {
	return &RefreshAccountHandler{resolver: resolver}
}

func (h *RefreshAccountHandler) Execute(ctx context.Context, event RefreshAccountMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during account refresh",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RefreshAccountHandler) execute(ctx context.Context, event RefreshAccountMessage) error {
	username := strings.TrimSpace(event.Username)
	if username == "" {
		return goerrors.New("username is required", goerrors.CategoryBadInput)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	h.resolver.Invalidate(username)

	account := h.resolver.Resolve(ctx, username)
	if account.Status == StatusUnavailable {
		return goerrors.New("provider unavailable while refreshing account", goerrors.CategoryOperation).
			WithTextCode(ErrTransportFailure.TextCode)
	}

	return nil
}
