package mfa

import (
	"context"
	"time"
)

// StatusResolver orchestrates cache lookup, provider dispatch, response
// classification and cache population. Resolve and Ping always return a
// value; no error or panic crosses the service boundary.
//
// Concurrent misses for the same username are not deduplicated: each may
// issue its own provider call and the cache keeps whichever write lands
// last within the TTL window.
type StatusResolver struct {
	client       *Client
	classifier   *ResponseClassifier
	cache        AccountCache
	logger       Logger
	activitySink ActivitySink
	now          func() time.Time
}

var _ AccountResolver = (*StatusResolver)(nil)

// NewStatusResolver returns a resolver for the given provider configuration.
func NewStatusResolver(cfg Config) *StatusResolver {
	logger := defLogger{}

	return &StatusResolver{
		client:       NewClient(cfg),
		classifier:   NewResponseClassifier(logger),
		cache:        NewAccountCache(cfg.GetCacheSize(), time.Duration(cfg.GetCacheTTLSeconds())*time.Second),
		logger:       logger,
		activitySink: noopActivitySink{},
		now:          time.Now,
	}
}

func (s *StatusResolver) WithLogger(logger Logger) *StatusResolver {
	if logger != nil {
		s.logger = logger
		s.classifier = NewResponseClassifier(logger)
		s.client.WithLogger(logger)
	}
	return s
}

// WithTransport swaps the transport capability on the underlying client.
func (s *StatusResolver) WithTransport(transport Transport) *StatusResolver {
	s.client.WithTransport(transport)
	return s
}

// WithSigner swaps the request signing capability on the underlying client.
func (s *StatusResolver) WithSigner(signer RequestSigner) *StatusResolver {
	s.client.WithSigner(signer)
	return s
}

// WithCache swaps the account cache.
func (s *StatusResolver) WithCache(cache AccountCache) *StatusResolver {
	if cache != nil {
		s.cache = cache
	}
	return s
}

// WithActivitySink configures an ActivitySink for emitting resolution events.
func (s *StatusResolver) WithActivitySink(sink ActivitySink) *StatusResolver {
	s.activitySink = normalizeActivitySink(sink)
	return s
}

// WithClock injects a custom clock (useful for tests).
func (s *StatusResolver) WithClock(clock func() time.Time) *StatusResolver {
	if clock != nil {
		s.now = clock
	}
	return s
}

// APIHost returns the configured provider host.
func (s *StatusResolver) APIHost() string {
	return s.client.APIHost()
}

// Ping probes provider liveness. It always returns and never throws: any
// transport or parse failure reports false.
func (s *StatusResolver) Ping(ctx context.Context) (alive bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("pinging provider panicked", "recovered", r)
			alive = false
		}
	}()

	start := s.now()

	raw, err := s.client.Ping(ctx)
	if err != nil {
		s.logger.Warn("pinging provider has failed", "error", err)
		s.emit(ctx, ActivityEvent{
			EventType: ActivityEventPingFailure,
			Failure:   FailureTransport,
			Latency:   s.now().Sub(start),
		})
		return false
	}

	alive = s.classifier.ClassifyPing(raw)

	event := ActivityEvent{EventType: ActivityEventPingSuccess, Latency: s.now().Sub(start)}
	if !alive {
		event.EventType = ActivityEventPingFailure
		event.Failure = FailureMalformed
	}
	s.emit(ctx, event)

	return alive
}

// Resolve returns the MFA eligibility for username: from cache when a live
// entry exists, otherwise via a single signed provider call whose outcome,
// success or failure alike, is cached for the TTL window. It always returns
// an account; all failure modes terminate in StatusUnavailable rather than
// an error.
func (s *StatusResolver) Resolve(ctx context.Context, username string) (account *UserAccount) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("account resolution panicked", "username", username, "recovered", r)
			account = NewUnavailableAccount(username)
			s.cache.Put(username, account)
		}
	}()

	if cached, ok := s.cache.Get(username); ok {
		s.logger.Debug("found cached user account", "username", username, "status", cached.Status)
		s.emit(ctx, ActivityEvent{
			EventType: ActivityEventResolveHit,
			Username:  username,
			Status:    cached.Status,
			CacheHit:  true,
		})
		return cached
	}

	start := s.now()

	var kind FailureKind
	raw, err := s.client.PreAuth(ctx, username)
	if err != nil {
		s.logger.Warn("reaching provider has failed", "username", username, "error", err)
		account = NewUnavailableAccount(username)
		kind = FailureTransport
	} else {
		account, kind = s.classifier.ClassifyPreAuth(username, raw)
	}

	s.cache.Put(username, account)
	s.logger.Debug("fetched and cached user account", "username", username, "status", account.Status)

	eventType := ActivityEventResolveMiss
	if account.Status == StatusUnavailable {
		eventType = ActivityEventProviderUnavailable
	}
	s.emit(ctx, ActivityEvent{
		EventType: eventType,
		Username:  username,
		Status:    account.Status,
		Failure:   kind,
		Message:   account.Message,
		Latency:   s.now().Sub(start),
	})

	return account
}

// Invalidate drops the cached entry for username, forcing the next Resolve
// to query the provider.
func (s *StatusResolver) Invalidate(username string) bool {
	return s.cache.Remove(username)
}

func (s *StatusResolver) emit(ctx context.Context, event ActivityEvent) {
	event.OccurredAt = s.now()
	if err := s.activitySink.Record(ctx, event); err != nil {
		s.logger.Error("activity sink record failed", "event", string(event.EventType), "error", err)
	}
}
