package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that parse but carry no usable claims.
var ErrInvalidToken = errors.New("invalid token claims")

// Validator checks display tokens against the auth provider's JWKS.
// The key set is fetched once and refreshed in the background by keyfunc.
type Validator struct {
	keyfunc jwt.Keyfunc
	issuer  string
	methods []string
}

// NewValidator builds a Validator for the auth provider at baseURL.
// The JWKS is read from baseURL + "/.well-known/jwks.json" and tokens must be issued by its origin.
func NewValidator(ctx context.Context, baseURL string) (*Validator, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("AUTH_BASE_URL is not set")
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid auth base URL %q", baseURL)
	}

	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{strings.TrimRight(baseURL, "/") + "/.well-known/jwks.json"})
	if err != nil {
		return nil, fmt.Errorf("loading JWKS: %w", err)
	}
	return &Validator{
		keyfunc: jwks.Keyfunc,
		issuer:  u.Scheme + "://" + u.Host,
		methods: []string{"EdDSA", "RS256", "ES256"},
	}, nil
}

// Validate parses tokenString and returns its claims.
func (v *Validator) Validate(tokenString string) (jwt.MapClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods(v.methods)}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	token, err := jwt.Parse(tokenString, v.keyfunc, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// DisplayNameFromClaims returns the first word of the "name" claim, or a fallback.
func DisplayNameFromClaims(claims jwt.MapClaims) string {
	name, _ := claims["name"].(string)
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "Display"
	}
	return parts[0]
}

// SubjectFromClaims returns the user id from claims ("sub" or "id").
func SubjectFromClaims(claims jwt.MapClaims) string {
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub
	}
	if id, ok := claims["id"].(string); ok && id != "" {
		return id
	}
	return ""
}
