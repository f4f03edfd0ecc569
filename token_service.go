package mfa

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// DefaultTokenTTL bounds how long an MFA context token stays valid. Kept
// short: it only needs to outlive the authentication pipeline hop.
const DefaultTokenTTL = 5 * time.Minute

// ErrTokenExpired is returned when validating an expired context token.
var ErrTokenExpired = goerrors.New("mfa context token is expired", goerrors.CategoryAuth).
	WithTextCode("MFA_TOKEN_EXPIRED")

// ErrTokenMalformed is returned when a context token cannot be parsed.
var ErrTokenMalformed = goerrors.New("mfa context token is malformed", goerrors.CategoryAuth).
	WithTextCode("MFA_TOKEN_MALFORMED")

// ErrMFANotSatisfied is returned when minting is requested for an account
// whose resolution did not produce an ALLOW decision.
var ErrMFANotSatisfied = goerrors.New("account status does not satisfy MFA", goerrors.CategoryAuth).
	WithTextCode("MFA_NOT_SATISFIED")

// TokenService mints and validates MFA context tokens.
type TokenService interface {
	Generate(account *UserAccount, ttl time.Duration) (string, error)
	Validate(tokenString string) (*MFAClaims, error)
}

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey []byte
	issuer     string
	audience   jwt.ClaimStrings
	defaultTTL time.Duration
	logger     Logger
}

// NewTokenService creates a new TokenService instance
func NewTokenService(signingKey []byte, issuer string, audience []string, logger Logger) TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenServiceImpl{
		signingKey: signingKey,
		issuer:     issuer,
		audience:   jwt.ClaimStrings(audience),
		defaultTTL: DefaultTokenTTL,
		logger:     logger,
	}
}

// Generate mints a short-lived token for an account with an ALLOW decision.
// Zero ttl uses the service default.
func (ts *TokenServiceImpl) Generate(account *UserAccount, ttl time.Duration) (string, error) {
	if account == nil {
		return "", goerrors.New("account is required", goerrors.CategoryBadInput)
	}

	if account.Status != StatusAllow {
		return "", goerrors.New(
			fmt.Sprintf("account status %s does not satisfy MFA", account.Status),
			ErrMFANotSatisfied.Category,
		).WithTextCode(ErrMFANotSatisfied.TextCode)
	}

	if ttl < 0 {
		return "", goerrors.New("token TTL must be non-negative", goerrors.CategoryBadInput)
	}
	if ttl == 0 {
		ttl = ts.defaultTTL
	}

	now := time.Now()
	claims := &MFAClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    ts.issuer,
			Subject:   account.Username,
			Audience:  ts.audience,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username: account.Username,
		Status:   account.Status,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign MFA context token")
	}

	return signedString, nil
}

// Validate parses and validates a token string, returning structured claims
func (ts *TokenServiceImpl) Validate(tokenString string) (*MFAClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 2)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}
	if len(ts.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(ts.audience...))
	}

	token, err := jwt.ParseWithClaims(tokenString, &MFAClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if goerrors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, goerrors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	if claims, ok := token.Claims.(*MFAClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode or validate claims")
	return nil, ErrTokenMalformed
}
