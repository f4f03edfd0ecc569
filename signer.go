package mfa

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"time"
)

// HMACSigner signs provider requests with the HMAC canon the admin API
// expects: an RFC-2822 date, the method, lowercased host, path, and the
// sorted encoded parameters, joined by newlines and signed with the secret
// key. The signature rides as HTTP basic auth (integration key as user,
// hex digest as password) alongside a Date header.
type HMACSigner struct {
	now func() time.Time
}

var _ RequestSigner = (*HMACSigner)(nil)

// NewHMACSigner creates a signer using the wall clock.
func NewHMACSigner() *HMACSigner {
	return &HMACSigner{now: time.Now}
}

// WithClock injects a custom clock (useful for tests).
func (s *HMACSigner) WithClock(clock func() time.Time) *HMACSigner {
	if clock != nil {
		s.now = clock
	}
	return s
}

// Sign implements RequestSigner. The output is deterministic for identical
// inputs within the same timestamp second.
func (s *HMACSigner) Sign(req *ProviderRequest, integrationKey, secretKey string) error {
	if strings.TrimSpace(integrationKey) == "" || strings.TrimSpace(secretKey) == "" {
		return ErrMissingSigningMaterial
	}

	date := s.now().UTC().Format(time.RFC1123Z)
	canon := strings.Join([]string{
		date,
		strings.ToUpper(req.Method),
		strings.ToLower(req.Host),
		req.Path,
		canonParams(req.Params),
	}, "\n")

	mac := hmac.New(sha512.New, []byte(secretKey))
	mac.Write([]byte(canon))
	signature := hex.EncodeToString(mac.Sum(nil))

	basic := base64.StdEncoding.EncodeToString([]byte(integrationKey + ":" + signature))
	req.Header.Set("Date", date)
	req.Header.Set("Authorization", "Basic "+basic)

	return nil
}

// canonParams encodes parameters with sorted keys so the canon is stable
// regardless of map iteration order.
func canonParams(params url.Values) string {
	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, v := range params[k] {
			pairs = append(pairs, url.QueryEscape(k)+"="+url.QueryEscape(v))
		}
	}

	return strings.Join(pairs, "&")
}
