package mfa_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	mfa "github.com/goliatone/go-mfa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	at := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func signerRequest() *mfa.ProviderRequest {
	params := url.Values{}
	params.Set("username", "alice")

	return &mfa.ProviderRequest{
		Method: http.MethodPost,
		Host:   "api-test.example.com",
		Path:   "/auth/v2/preauth",
		Params: params,
		Header: http.Header{},
	}
}

func TestHMACSigner(t *testing.T) {
	t.Run("attaches date and authorization", func(t *testing.T) {
		signer := mfa.NewHMACSigner().WithClock(fixedClock())
		req := signerRequest()

		require.NoError(t, signer.Sign(req, "ikey", "skey"))
		assert.NotEmpty(t, req.Header.Get("Date"))
		assert.Contains(t, req.Header.Get("Authorization"), "Basic ")
	})

	t.Run("deterministic for identical inputs and timestamp", func(t *testing.T) {
		signer := mfa.NewHMACSigner().WithClock(fixedClock())

		first := signerRequest()
		second := signerRequest()

		require.NoError(t, signer.Sign(first, "ikey", "skey"))
		require.NoError(t, signer.Sign(second, "ikey", "skey"))

		assert.Equal(t, first.Header.Get("Authorization"), second.Header.Get("Authorization"))
		assert.Equal(t, first.Header.Get("Date"), second.Header.Get("Date"))
	})

	t.Run("parameter insertion order does not matter", func(t *testing.T) {
		signer := mfa.NewHMACSigner().WithClock(fixedClock())

		first := signerRequest()
		first.Params.Set("factor", "auto")
		first.Params.Set("device", "auto")

		second := signerRequest()
		second.Params.Set("device", "auto")
		second.Params.Set("factor", "auto")

		require.NoError(t, signer.Sign(first, "ikey", "skey"))
		require.NoError(t, signer.Sign(second, "ikey", "skey"))

		assert.Equal(t, first.Header.Get("Authorization"), second.Header.Get("Authorization"))
	})

	t.Run("secret changes the signature", func(t *testing.T) {
		signer := mfa.NewHMACSigner().WithClock(fixedClock())

		first := signerRequest()
		second := signerRequest()

		require.NoError(t, signer.Sign(first, "ikey", "skey-one"))
		require.NoError(t, signer.Sign(second, "ikey", "skey-two"))

		assert.NotEqual(t, first.Header.Get("Authorization"), second.Header.Get("Authorization"))
	})

	t.Run("missing key material is an error", func(t *testing.T) {
		signer := mfa.NewHMACSigner()
		req := signerRequest()

		assert.Error(t, signer.Sign(req, "", "skey"))
		assert.Error(t, signer.Sign(req, "ikey", " "))
		assert.Empty(t, req.Header.Get("Authorization"))
	})
}
