package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v3/jwk"
)

var ErrInvalidToken = errors.New("invalid token")

// VerifiedToken is what the identity provider vouches for.
type VerifiedToken struct {
	Subject  string
	Email    string
	Name     string
	Picture  string
	Provider string
}

type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*VerifiedToken, error)
}

type providerClaims struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
	Firebase struct {
		SignInProvider string `json:"sign_in_provider"`
	} `json:"firebase"`
	jwt.RegisteredClaims
}

func (c *providerClaims) toVerified() (*VerifiedToken, error) {
	if c.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return &VerifiedToken{
		Subject:  c.Subject,
		Email:    c.Email,
		Name:     c.Name,
		Picture:  c.Picture,
		Provider: c.Firebase.SignInProvider,
	}, nil
}

const jwksRefreshInterval = time.Hour

// FirebaseVerifier checks Firebase ID tokens against the provider's
// published signing keys.
type FirebaseVerifier struct {
	projectID string
	jwksURL   string

	mu        sync.Mutex
	keys      jwk.Set
	fetchedAt time.Time
}

func NewFirebaseVerifier(projectID, jwksURL string) *FirebaseVerifier {
	return &FirebaseVerifier{
		projectID: projectID,
		jwksURL:   jwksURL,
	}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*VerifiedToken, error) {
	claims := &providerClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("%w: missing kid", ErrInvalidToken)
		}
		return v.publicKey(ctx, kid)
	},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer("https://securetoken.google.com/"+v.projectID),
		jwt.WithAudience(v.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims.toVerified()
}

func (v *FirebaseVerifier) publicKey(ctx context.Context, kid string) (interface{}, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	stale := v.keys == nil || time.Since(v.fetchedAt) > jwksRefreshInterval
	if !stale {
		if _, ok := v.keys.LookupKeyID(kid); !ok {
			// Keys rotate; an unknown kid forces a refetch.
			stale = true
		}
	}
	if stale {
		set, err := jwk.Fetch(ctx, v.jwksURL)
		if err != nil {
			return nil, fmt.Errorf("fetch signing keys: %w", err)
		}
		v.keys = set
		v.fetchedAt = time.Now()
	}

	key, ok := v.keys.LookupKeyID(kid)
	if !ok {
		return nil, fmt.Errorf("%w: unknown kid %q", ErrInvalidToken, kid)
	}

	var raw interface{}
	if err := jwk.Export(key, &raw); err != nil {
		return nil, fmt.Errorf("export signing key: %w", err)
	}
	return raw, nil
}

// LocalVerifier accepts HS256 tokens signed with a shared secret. It stands
// in for the external provider in development and tests.
type LocalVerifier struct {
	secret []byte
	issuer string
}

func NewLocalVerifier(secret, issuer string) *LocalVerifier {
	return &LocalVerifier{secret: []byte(secret), issuer: issuer}
}

func (v *LocalVerifier) Verify(_ context.Context, token string) (*VerifiedToken, error) {
	claims := &providerClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims.toVerified()
}

// Issue mints a token the verifier will accept.
func (v *LocalVerifier) Issue(identity VerifiedToken, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &providerClaims{
		Email:   identity.Email,
		Name:    identity.Name,
		Picture: identity.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Subject,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	claims.Firebase.SignInProvider = identity.Provider

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
