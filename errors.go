package mfa

import (
	goerrors "github.com/goliatone/go-errors"
)

// ErrTransportFailure covers network/IO failures reaching the provider.
// Recovered at the resolution boundary; the account is forced UNAVAILABLE.
var ErrTransportFailure = goerrors.New("provider transport failure", goerrors.CategoryOperation).
	WithTextCode("MFA_TRANSPORT_FAILURE")

// ErrMalformedResponse is raised when a response lacks required structure.
var ErrMalformedResponse = goerrors.New("invalid response format received from provider", goerrors.CategoryBadInput).
	WithTextCode("MFA_MALFORMED_RESPONSE")

// ErrProviderServer is raised when the provider reports a failure code above
// the server-error threshold; logged as a provider-health signal.
var ErrProviderServer = goerrors.New("provider returned a server error code", goerrors.CategoryOperation).
	WithTextCode("MFA_PROVIDER_SERVER_ERROR")

// ErrUnknownAccountStatus is returned when the provider reports a result
// value outside the published vocabulary. A contract error, never silently
// defaulted.
var ErrUnknownAccountStatus = goerrors.New("unknown account status value", goerrors.CategoryBadInput).
	WithTextCode("MFA_UNKNOWN_STATUS")

// ErrMissingSigningMaterial is returned when signing keys are absent or
// malformed; requests are never sent unsigned.
var ErrMissingSigningMaterial = goerrors.New("integration or secret key is missing", goerrors.CategoryValidation).
	WithTextCode("MFA_MISSING_SIGNING_MATERIAL")

// FailureKind is the classifier's explicit error-severity value. The
// resolution service branches on kind rather than on error types, since
// "never throw across the boundary" is a hard contract.
type FailureKind string

const (
	// FailureNone marks a successfully classified response.
	FailureNone FailureKind = ""
	// FailureTransport marks a network/IO failure reaching the provider.
	FailureTransport FailureKind = "transport"
	// FailureMalformed marks a response without the required structure.
	FailureMalformed FailureKind = "malformed"
	// FailureServer marks a provider failure code above the server-error
	// threshold: the provider itself is failing.
	FailureServer FailureKind = "server"
	// FailureConfig marks a non-fatal configuration/request issue on an
	// otherwise reachable provider; the account keeps its default status.
	FailureConfig FailureKind = "config"
)
