package mfa

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// AccountStatus is the provider's MFA eligibility decision for an account.
type AccountStatus string

const (
	// StatusAuth means no MFA decision was made yet; the user is known and
	// must complete a factor challenge.
	StatusAuth AccountStatus = "AUTH"
	// StatusAllow means the user may bypass the factor challenge.
	StatusAllow AccountStatus = "ALLOW"
	// StatusDeny means the user is not permitted to authenticate.
	StatusDeny AccountStatus = "DENY"
	// StatusEnroll means the user is unknown to the provider and should be
	// sent to the enrollment portal.
	StatusEnroll AccountStatus = "ENROLL"
	// StatusUnavailable means the provider could not be reached or returned
	// an unrecoverable error.
	StatusUnavailable AccountStatus = "UNAVAILABLE"
)

// ParseAccountStatus maps a provider result value onto AccountStatus by
// exact, case-insensitive name match over the pre-auth vocabulary.
// StatusUnavailable is a local classification and is not accepted here.
func ParseAccountStatus(value string) (AccountStatus, error) {
	switch AccountStatus(strings.ToUpper(value)) {
	case StatusAuth:
		return StatusAuth, nil
	case StatusAllow:
		return StatusAllow, nil
	case StatusDeny:
		return StatusDeny, nil
	case StatusEnroll:
		return StatusEnroll, nil
	}
	return "", ErrUnknownAccountStatus
}

// Device is a factor device the provider reported for an account.
type Device struct {
	ID           string   `json:"device,omitempty"`
	Type         string   `json:"type,omitempty"`
	Name         string   `json:"display_name,omitempty"`
	Number       string   `json:"number,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// UserAccount is the resolved MFA eligibility for a username. Instances are
// immutable once constructed; a later resolution produces a new instance and
// never mutates a cached one in place.
type UserAccount struct {
	Username        string        `json:"username"`
	Status          AccountStatus `json:"status"`
	Message         string        `json:"message,omitempty"`
	EnrollPortalURL string        `json:"enroll_portal_url,omitempty"`
	Devices         []Device      `json:"devices,omitempty"`
}

// NewUserAccount returns an account with the pre-resolution default status.
func NewUserAccount(username string) *UserAccount {
	return &UserAccount{
		Username: username,
		Status:   StatusAuth,
	}
}

// NewUnavailableAccount returns an account marking the provider unreachable.
func NewUnavailableAccount(username string) *UserAccount {
	return &UserAccount{
		Username: username,
		Status:   StatusUnavailable,
	}
}

// normalizeDeviceNumber formats a device phone number as E.164 when it
// parses; otherwise the provider value passes through untouched.
func normalizeDeviceNumber(number string) string {
	if number == "" {
		return ""
	}
	parsed, err := phonenumbers.Parse(number, "US")
	if err != nil {
		return number
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}
