package mfa

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

const (
	// PingPath is the unauthenticated liveness endpoint.
	PingPath = "/rest/v1/ping"
	// PreAuthPath is the signed pre-authentication endpoint.
	PreAuthPath = "/auth/v2/preauth"
)

// ProviderRequest is an outbound admin API request before transmission.
type ProviderRequest struct {
	Method string
	Host   string
	Path   string
	Params url.Values
	Header http.Header
}

// URL returns the absolute request URL, normalizing a bare host to https.
func (r *ProviderRequest) URL() string {
	host := r.Host
	if !strings.HasPrefix(host, "http") {
		host = "https://" + host
	}
	return host + r.Path
}

// Client builds and executes the two admin API request shapes. It applies no
// retry or backoff: one attempt per call, the caller owns retry policy.
type Client struct {
	apiHost        string
	integrationKey string
	secretKey      string
	pingPath       string
	transport      Transport
	signer         RequestSigner
	logger         Logger
}

// NewClient returns a provider client for the given configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		apiHost:        cfg.GetAPIHost(),
		integrationKey: cfg.GetIntegrationKey(),
		secretKey:      cfg.GetSecretKey(),
		pingPath:       PingPath,
		transport:      NewHTTPTransport(DefaultTransportTimeout),
		signer:         NewHMACSigner(),
		logger:         defLogger{},
	}
}

func (c *Client) WithLogger(logger Logger) *Client {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// WithTransport swaps the transport capability.
func (c *Client) WithTransport(transport Transport) *Client {
	if transport != nil {
		c.transport = transport
	}
	return c
}

// WithSigner swaps the request signing capability.
func (c *Client) WithSigner(signer RequestSigner) *Client {
	if signer != nil {
		c.signer = signer
	}
	return c
}

// WithPingPath overrides the liveness endpoint path. Newer provider API
// revisions expose ping under /auth/v2/ping.
func (c *Client) WithPingPath(path string) *Client {
	if path != "" {
		c.pingPath = path
	}
	return c
}

// APIHost returns the configured provider host.
func (c *Client) APIHost() string {
	return c.apiHost
}

// BuildPingRequest shapes the unauthenticated liveness request.
func (c *Client) BuildPingRequest() *ProviderRequest {
	return &ProviderRequest{
		Method: http.MethodGet,
		Host:   c.apiHost,
		Path:   c.pingPath,
		Params: url.Values{},
		Header: http.Header{},
	}
}

// BuildPreAuthRequest shapes the signed pre-authentication request.
func (c *Client) BuildPreAuthRequest(username string) *ProviderRequest {
	params := url.Values{}
	params.Set("username", username)

	return &ProviderRequest{
		Method: http.MethodPost,
		Host:   c.apiHost,
		Path:   PreAuthPath,
		Params: params,
		Header: http.Header{},
	}
}

// Ping issues the liveness request and returns the decoded raw body.
func (c *Client) Ping(ctx context.Context) (string, error) {
	req := c.BuildPingRequest()
	c.logger.Debug("contacting provider", "url", req.URL())

	return c.execute(ctx, req)
}

// PreAuth signs and issues the pre-authentication request for username and
// returns the decoded raw body.
func (c *Client) PreAuth(ctx context.Context, username string) (string, error) {
	req := c.BuildPreAuthRequest(username)
	if err := c.signer.Sign(req, c.integrationKey, c.secretKey); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryValidation, "failed to sign pre-auth request")
	}

	c.logger.Debug("contacting provider to inquire about username", "username", username, "url", req.URL())

	return c.execute(ctx, req)
}

func (c *Client) execute(ctx context.Context, req *ProviderRequest) (string, error) {
	body, err := c.transport.RoundTrip(ctx, req)
	if err != nil {
		return "", goerrors.Wrap(err, ErrTransportFailure.Category, ErrTransportFailure.Message).
			WithTextCode(ErrTransportFailure.TextCode)
	}

	decoded, err := url.QueryUnescape(body)
	if err != nil {
		return "", goerrors.Wrap(err, ErrMalformedResponse.Category, "response body is not URL-decodable").
			WithTextCode(ErrMalformedResponse.TextCode)
	}

	return decoded, nil
}

// HTTPTransport is the default Transport on net/http. Provider failure
// responses carry their own status payload, so any response with a body is
// handed to the classifier regardless of HTTP status code.
type HTTPTransport struct {
	client *http.Client
}

var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport creates a transport with a bounded per-request timeout.
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		client: &http.Client{Timeout: timeout},
	}
}

// RoundTrip implements Transport.
func (t *HTTPTransport) RoundTrip(ctx context.Context, req *ProviderRequest) (string, error) {
	var httpReq *http.Request
	var err error

	switch req.Method {
	case http.MethodGet:
		target := req.URL()
		if len(req.Params) > 0 {
			target += "?" + req.Params.Encode()
		}
		httpReq, err = http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	default:
		httpReq, err = http.NewRequestWithContext(ctx, req.Method, req.URL(), strings.NewReader(req.Params.Encode()))
		if httpReq != nil {
			httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return "", err
	}

	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	res, err := t.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}
