package mfa

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MFAClaims are the claims carried by a minted MFA context token. The token
// attests that a resolution produced an ALLOW decision for the subject at
// issuance time.
type MFAClaims struct {
	jwt.RegisteredClaims
	Username string        `json:"username,omitempty"`
	Status   AccountStatus `json:"mfa_status,omitempty"`
}

// Subject returns the subject claim
func (c *MFAClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Expires returns the expiration time or zero value when absent
func (c *MFAClaims) Expires() time.Time {
	if c.ExpiresAt != nil {
		return c.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedTime returns the issued-at time or zero value when absent
func (c *MFAClaims) IssuedTime() time.Time {
	if c.IssuedAt != nil {
		return c.IssuedAt.Time
	}
	return time.Time{}
}
