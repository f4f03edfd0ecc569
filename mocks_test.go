package mfa_test

import (
	"context"
	"sync"
	"sync/atomic"

	mfa "github.com/goliatone/go-mfa"
	"github.com/stretchr/testify/mock"
)

// MockTransport implements mfa.Transport
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) RoundTrip(ctx context.Context, req *mfa.ProviderRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockSigner implements mfa.RequestSigner
type MockSigner struct {
	mock.Mock
}

func (m *MockSigner) Sign(req *mfa.ProviderRequest, integrationKey, secretKey string) error {
	args := m.Called(req, integrationKey, secretKey)
	return args.Error(0)
}

// countingTransport returns a fixed body and counts invocations. Safe for
// concurrent use.
type countingTransport struct {
	body  string
	err   error
	calls atomic.Int64
}

func (t *countingTransport) RoundTrip(ctx context.Context, req *mfa.ProviderRequest) (string, error) {
	t.calls.Add(1)
	return t.body, t.err
}

// recordingSink collects activity events.
type recordingSink struct {
	mu     sync.Mutex
	events []mfa.ActivityEvent
}

func (s *recordingSink) Record(ctx context.Context, event mfa.ActivityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) Events() []mfa.ActivityEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]mfa.ActivityEvent, len(s.events))
	copy(out, s.events)
	return out
}

func testConfig() mfa.ProviderConfig {
	return mfa.ProviderConfig{
		APIHost:        "api-test.example.com",
		IntegrationKey: "DITESTINTEGRATION",
		SecretKey:      "super-secret-signing-key",
	}
}
