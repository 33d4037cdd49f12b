// Package token issues and verifies signed JWTs under a process-wide
// symmetric secret.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL applies when Issue receives an empty ttl string.
const DefaultTTL = "15m"

var (
	// ErrInvalidToken indicates the token failed signature or claim checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired indicates the token's exp claim is in the past.
	ErrTokenExpired = errors.New("token expired")
)

// Issuer signs expiring HS256 tokens. The secret is loaded once at startup
// and never logged or exposed.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

func NewIssuer(secret []byte) *Issuer {
	return &Issuer{secret: secret, now: time.Now}
}

// Issue signs the given claims with an issued-at of now (second precision)
// and an expiry of now plus the parsed ttl. The ttl is a duration string
// such as "15m", "1h" or "30d"; empty means DefaultTTL.
func (i *Issuer) Issue(claims map[string]any, ttl string) (string, error) {
	d, err := ParseTTL(ttl)
	if err != nil {
		return "", err
	}

	iat := i.now().Unix()
	payload := jwt.MapClaims{}
	for k, v := range claims {
		payload[k] = v
	}
	payload["iat"] = iat
	payload["exp"] = iat + int64(d.Seconds())

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify re-derives the signature and returns the claims. Expired tokens
// and tokens signed under another method or key are rejected.
func (i *Issuer) Verify(tokenString string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseTTL parses a duration string with s/m/h/d units. Days are not a
// stdlib unit, so "30d" is converted before delegating to ParseDuration.
func ParseTTL(ttl string) (time.Duration, error) {
	ttl = strings.TrimSpace(ttl)
	if ttl == "" {
		ttl = DefaultTTL
	}

	if strings.HasSuffix(ttl, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(ttl, "d"))
		if err != nil || days < 0 {
			return 0, fmt.Errorf("invalid ttl %q", ttl)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(ttl)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid ttl %q", ttl)
	}
	return d, nil
}
