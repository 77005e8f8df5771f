package utils

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

// AuthenticatedUser holds the validated claims of a bearer token
type AuthenticatedUser struct {
	Sub      string   `json:"sub"`
	Iss      string   `json:"iss"`
	ClientId string   `json:"client_id"`
	Exp      int64    `json:"exp"`
	Iat      int64    `json:"iat"`
	Aud      []string `json:"aud"`
	Roles    []string `json:"roles"`
	Scopes   []string `json:"scopes"`
}

// JwtAuthenticator validates RS256 bearer tokens against a remote JWKS
// endpoint. Fetched key sets are cached for cacheTTL to keep validation off
// the network hot path.
type JwtAuthenticator struct {
	JwksUri string

	cacheTTL    time.Duration
	mu          sync.Mutex
	cachedSet   jwk.Set
	cacheExpiry time.Time
}

// NewJwtAuthenticator creates a new JwtAuthenticator for the given JWKS URI
func NewJwtAuthenticator(jwksUri string) *JwtAuthenticator {
	return &JwtAuthenticator{
		JwksUri:  jwksUri,
		cacheTTL: 5 * time.Minute,
	}
}

// ValidateToken verifies the token's signature against the JWKS keys and
// returns the mapped claims. Standard claims (exp, nbf) are enforced by the
// parser.
func (a *JwtAuthenticator) ValidateToken(tokenString string) (*AuthenticatedUser, error) {
	if a.JwksUri == "" {
		return nil, errors.New("JWKS URI not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		kid, _ := token.Header["kid"].(string)
		key, err := a.fetchKey(ctx, kid)
		if err != nil {
			return nil, err
		}

		var rawKey interface{}
		if err := key.Raw(&rawKey); err != nil {
			return nil, fmt.Errorf("failed to extract public key: %w", err)
		}
		return rawKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return a.mapClaimsToUser(claims)
}

// fetchKey returns the JWKS key with the given kid, fetching and caching the
// key set as needed. An empty kid matches the first key in the set.
func (a *JwtAuthenticator) fetchKey(ctx context.Context, kid string) (jwk.Key, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cachedSet == nil || time.Now().After(a.cacheExpiry) {
		set, err := jwk.Fetch(ctx, a.JwksUri)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
		}
		a.cachedSet = set
		a.cacheExpiry = time.Now().Add(a.cacheTTL)
	}

	if kid == "" {
		key, ok := a.cachedSet.Key(0)
		if !ok {
			return nil, errors.New("JWKS contains no keys")
		}
		return key, nil
	}

	key, ok := a.cachedSet.LookupKeyID(kid)
	if !ok {
		return nil, fmt.Errorf("key %q not found in JWKS", kid)
	}
	return key, nil
}

// mapClaimsToUser converts raw JWT claims into an AuthenticatedUser
func (a *JwtAuthenticator) mapClaimsToUser(claims map[string]interface{}) (*AuthenticatedUser, error) {
	user := &AuthenticatedUser{}

	if sub, ok := claims["sub"].(string); ok {
		user.Sub = sub
	}
	if iss, ok := claims["iss"].(string); ok {
		user.Iss = iss
	}
	if clientId, ok := claims["client_id"].(string); ok {
		user.ClientId = clientId
	}
	if exp, ok := claims["exp"].(float64); ok {
		user.Exp = int64(exp)
	}
	if iat, ok := claims["iat"].(float64); ok {
		user.Iat = int64(iat)
	}

	user.Aud = toStringSlice(claims["aud"])
	user.Roles = toStringSlice(claims["roles"])
	user.Scopes = toStringSlice(claims["scopes"])

	return user, nil
}

// toStringSlice normalizes a claim that may be a string, []string or
// []interface{} into a string slice.
func toStringSlice(value interface{}) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
