package mfa_test

import (
	"testing"

	mfa "github.com/goliatone/go-mfa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPing(t *testing.T) {
	classifier := mfa.NewResponseClassifier(nil)

	t.Run("stat OK and pong", func(t *testing.T) {
		assert.True(t, classifier.ClassifyPing(`{"stat":"OK","response":"pong"}`))
	})

	t.Run("case-insensitive match", func(t *testing.T) {
		assert.True(t, classifier.ClassifyPing(`{"stat":"ok","response":"PONG"}`))
	})

	t.Run("wrong response value", func(t *testing.T) {
		assert.False(t, classifier.ClassifyPing(`{"stat":"OK","response":"ping"}`))
	})

	t.Run("missing stat", func(t *testing.T) {
		assert.False(t, classifier.ClassifyPing(`{"response":"pong"}`))
	})

	t.Run("missing response", func(t *testing.T) {
		assert.False(t, classifier.ClassifyPing(`{"stat":"OK"}`))
	})

	t.Run("garbage input", func(t *testing.T) {
		assert.False(t, classifier.ClassifyPing("not even json"))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.False(t, classifier.ClassifyPing(""))
	})
}

func TestClassifyPreAuth(t *testing.T) {
	classifier := mfa.NewResponseClassifier(nil)

	t.Run("allow result", func(t *testing.T) {
		account, kind := classifier.ClassifyPreAuth("alice",
			`{"stat":"OK","response":{"result":"allow","status_msg":"ok"}}`)

		require.NotNil(t, account)
		assert.Equal(t, mfa.FailureNone, kind)
		assert.Equal(t, "alice", account.Username)
		assert.Equal(t, mfa.StatusAllow, account.Status)
		assert.Equal(t, "ok", account.Message)
		assert.Empty(t, account.EnrollPortalURL)
	})

	t.Run("missing status message keeps the decision", func(t *testing.T) {
		account, kind := classifier.ClassifyPreAuth("alice",
			`{"stat":"OK","response":{"result":"allow"}}`)

		assert.Equal(t, mfa.FailureNone, kind)
		assert.Equal(t, mfa.StatusAllow, account.Status)
		assert.Empty(t, account.Message)
	})

	t.Run("enroll result carries portal url", func(t *testing.T) {
		account, kind := classifier.ClassifyPreAuth("bob",
			`{"stat":"OK","response":{"result":"enroll","status_msg":"need enroll","enroll_portal_url":"https://x/enroll"}}`)

		assert.Equal(t, mfa.FailureNone, kind)
		assert.Equal(t, mfa.StatusEnroll, account.Status)
		assert.Equal(t, "need enroll", account.Message)
		assert.Equal(t, "https://x/enroll", account.EnrollPortalURL)
	})

	t.Run("deny result", func(t *testing.T) {
		account, kind := classifier.ClassifyPreAuth("mallory",
			`{"stat":"OK","response":{"result":"deny","status_msg":"blocked"}}`)

		assert.Equal(t, mfa.FailureNone, kind)
		assert.Equal(t, mfa.StatusDeny, account.Status)
	})

	t.Run("auth result keeps default", func(t *testing.T) {
		account, kind := classifier.ClassifyPreAuth("carol",
			`{"stat":"OK","response":{"result":"auth","status_msg":"challenge"}}`)

		assert.Equal(t, mfa.FailureNone, kind)
		assert.Equal(t, mfa.StatusAuth, account.Status)
	})

	t.Run("server error code forces unavailable", func(t *testing.T) {
		account, kind := classifier.ClassifyPreAuth("alice",
			`{"stat":"FAIL","code":50000,"message":"boom"}`)

		assert.Equal(t, mfa.FailureServer, kind)
		assert.Equal(t, mfa.StatusUnavailable, account.Status)
	})

	t.Run("config error keeps default status", func(t *testing.T) {
		account, kind := classifier.ClassifyPreAuth("alice",
			`{"stat":"FAIL","code":1000,"message":"bad field"}`)

		assert.Equal(t, mfa.FailureConfig, kind)
		assert.Equal(t, mfa.StatusAuth, account.Status)
	})

	t.Run("config error with missing message fields", func(t *testing.T) {
		account, kind := classifier.ClassifyPreAuth("alice", `{"stat":"FAIL","code":1000}`)

		assert.Equal(t, mfa.FailureConfig, kind)
		assert.Equal(t, mfa.StatusAuth, account.Status)
	})

	t.Run("failure without code is malformed", func(t *testing.T) {
		account, kind := classifier.ClassifyPreAuth("alice", `{"stat":"FAIL","message":"boom"}`)

		assert.Equal(t, mfa.FailureMalformed, kind)
		assert.Equal(t, mfa.StatusUnavailable, account.Status)
	})

	t.Run("missing stat is malformed", func(t *testing.T) {
		account, kind := classifier.ClassifyPreAuth("alice", `{"response":{"result":"allow"}}`)

		assert.Equal(t, mfa.FailureMalformed, kind)
		assert.Equal(t, mfa.StatusUnavailable, account.Status)
	})

	t.Run("unrecognized result value is malformed", func(t *testing.T) {
		account, kind := classifier.ClassifyPreAuth("alice",
			`{"stat":"OK","response":{"result":"wat","status_msg":"?"}}`)

		assert.Equal(t, mfa.FailureMalformed, kind)
		assert.Equal(t, mfa.StatusUnavailable, account.Status)
	})

	t.Run("garbage input is malformed", func(t *testing.T) {
		account, kind := classifier.ClassifyPreAuth("alice", "<!doctype html>")

		assert.Equal(t, mfa.FailureMalformed, kind)
		assert.Equal(t, mfa.StatusUnavailable, account.Status)
	})

	t.Run("devices are parsed and numbers normalized", func(t *testing.T) {
		account, kind := classifier.ClassifyPreAuth("dave",
			`{"stat":"OK","response":{"result":"auth","status_msg":"","devices":[`+
				`{"device":"DPFZRS9FB0D46QFTM891","type":"phone","display_name":"iOS","number":"5555550100","capabilities":["push","sms"]},`+
				`{"device":"DHEKH0JJIYC1LX3AZWO4","type":"token"}]}}`)

		assert.Equal(t, mfa.FailureNone, kind)
		require.Len(t, account.Devices, 2)
		assert.Equal(t, "DPFZRS9FB0D46QFTM891", account.Devices[0].ID)
		assert.Equal(t, "+15555550100", account.Devices[0].Number)
		assert.Equal(t, []string{"push", "sms"}, account.Devices[0].Capabilities)
		assert.Equal(t, "token", account.Devices[1].Type)
		assert.Empty(t, account.Devices[1].Number)
	})
}
