// Package mfa resolves a user's multi-factor-authentication eligibility
// against a remote identity-assurance provider and shields the calling
// authentication pipeline from provider latency and transient failures.
//
// Resolution flow:
//   - StatusResolver is the entry point. Resolve consults a bounded,
//     TTL-expiring account cache first; on a miss it builds a signed
//     pre-authentication request, executes it through an injected Transport,
//     classifies the response onto the AccountStatus state machine, caches
//     the result (failures included, to bound provider load during outages)
//     and returns it. Resolve and Ping never return errors and never panic
//     across the boundary; every failure mode terminates in a value.
//   - Client owns the two outbound request shapes (ping, pre-auth) and the
//     HMAC request signing contract. Single attempt per call, no internal
//     retry; backoff is the caller's policy.
//
// Activity sinks:
//   - ActivitySink receives resolution and ping events best-effort (errors
//     are logged, never block resolution). NewRecorderSink adapts the Bun
//     backed Resolutions repository into a sink for a persistent audit trail.
//
// Tokens:
//   - TokenService mints a short-lived JWT attesting that a resolution
//     produced an ALLOW decision, so downstream services can honor the MFA
//     check without re-querying the provider.
package mfa
