package mfa

import (
	"strings"

	"github.com/tidwall/gjson"
)

// serverErrorThreshold splits provider failure codes: anything above it means
// the provider itself is failing, anything at or below it is a
// configuration/request issue on an otherwise reachable provider.
const serverErrorThreshold = 49999

const (
	resultKeyStat            = "stat"
	resultKeyResponse        = "response"
	resultKeyResult          = "response.result"
	resultKeyStatusMessage   = "response.status_msg"
	resultKeyEnrollPortalURL = "response.enroll_portal_url"
	resultKeyDevices         = "response.devices"
	resultKeyCode            = "code"
	resultKeyMessage         = "message"
	resultKeyMessageDetail   = "message_detail"

	statOK = "OK"
)

// ResponseClassifier maps raw admin API response text onto the account
// status state machine. It never panics and never lets a parse failure
// escape; every input terminates in a classification.
type ResponseClassifier struct {
	logger Logger
}

// NewResponseClassifier creates a classifier.
func NewResponseClassifier(logger Logger) *ResponseClassifier {
	if logger == nil {
		logger = defLogger{}
	}
	return &ResponseClassifier{logger: logger}
}

// ClassifyPing reports provider liveness: true iff the response carries both
// stat "OK" and response "pong", case-insensitive. Any other shape,
// including non-JSON input, is false.
func (rc *ResponseClassifier) ClassifyPing(raw string) bool {
	result := gjson.Parse(raw)

	stat := result.Get(resultKeyStat)
	pong := result.Get(resultKeyResponse)

	if stat.Exists() && pong.Exists() &&
		strings.EqualFold(stat.String(), statOK) &&
		strings.EqualFold(pong.String(), "pong") {
		return true
	}

	rc.logger.Warn("could not reach/ping provider", "response", raw)

	return false
}

// ClassifyPreAuth maps a pre-authentication response onto a UserAccount,
// starting from the default status AUTH. The returned FailureKind reports
// the error-severity policy outcome; the account is always non-nil.
func (rc *ResponseClassifier) ClassifyPreAuth(username, raw string) (*UserAccount, FailureKind) {
	account := NewUserAccount(username)
	result := gjson.Parse(raw)

	stat := result.Get(resultKeyStat)
	if !stat.Exists() {
		rc.logger.Warn("provider response was received in unknown format", "response", raw)
		account.Status = StatusUnavailable
		return account, FailureMalformed
	}

	if !strings.EqualFold(stat.String(), statOK) {
		return rc.classifyFailure(account, result)
	}

	status, err := ParseAccountStatus(result.Get(resultKeyResult).String())
	if err != nil {
		rc.logger.Warn("provider reported an unrecognized result value",
			"username", username, "result", result.Get(resultKeyResult).String())
		account.Status = StatusUnavailable
		return account, FailureMalformed
	}

	account.Status = status
	account.Message = result.Get(resultKeyStatusMessage).String()

	if status == StatusEnroll {
		account.EnrollPortalURL = result.Get(resultKeyEnrollPortalURL).String()
	}

	account.Devices = rc.parseDevices(result.Get(resultKeyDevices))

	return account, FailureNone
}

// classifyFailure applies the error-severity policy to a stat!=OK response.
// A failure response without a code field cannot be graded against the
// threshold and is treated as malformed, not as a config warning.
func (rc *ResponseClassifier) classifyFailure(account *UserAccount, result gjson.Result) (*UserAccount, FailureKind) {
	codeField := result.Get(resultKeyCode)
	message := result.Get(resultKeyMessage).String()

	if !codeField.Exists() {
		rc.logger.Warn("provider failure response carried no error code", "message", message)
		account.Status = StatusUnavailable
		return account, FailureMalformed
	}

	code := codeField.Int()

	if code > serverErrorThreshold {
		rc.logger.Warn("provider returned a failure code indicating a server error, provider will be considered unavailable",
			"code", code, "message", message)
		account.Status = StatusUnavailable
		return account, FailureServer
	}

	rc.logger.Warn("provider returned an invalid response when determining user account, this may be a configuration error in the admin request and the provider is still considered available",
		"message", message,
		"message_detail", result.Get(resultKeyMessageDetail).String())

	return account, FailureConfig
}

func (rc *ResponseClassifier) parseDevices(devices gjson.Result) []Device {
	if !devices.IsArray() {
		return nil
	}

	var parsed []Device
	devices.ForEach(func(_, item gjson.Result) bool {
		device := Device{
			ID:     item.Get("device").String(),
			Type:   item.Get("type").String(),
			Name:   item.Get("display_name").String(),
			Number: normalizeDeviceNumber(item.Get("number").String()),
		}
		item.Get("capabilities").ForEach(func(_, capability gjson.Result) bool {
			device.Capabilities = append(device.Capabilities, capability.String())
			return true
		})
		parsed = append(parsed, device)
		return true
	})

	return parsed
}
