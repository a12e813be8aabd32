package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shubh1628/Dabba-delight/internal/domain"
)

// TokenManager issues and validates the signed scope cookie. The token only
// names the scope; the session record itself is stored unsigned.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60 * 24 * 365
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute, now: time.Now}
}

// Claims describes JWT payload.
type Claims struct {
	ScopeID string `json:"sid"`
	jwt.RegisteredClaims
}

// TTL is the lifetime of issued scope tokens.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// NewScope allocates a fresh scope and signs a token for it.
func (tm *TokenManager) NewScope() (domain.ScopeToken, error) {
	return tm.GenerateToken(domain.Scope(uuid.NewString()))
}

// GenerateToken builds and signs a JWT for the scope.
func (tm *TokenManager) GenerateToken(scope domain.Scope) (domain.ScopeToken, error) {
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(tm.ttl)
	claims := &Claims{
		ScopeID: string(scope),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return domain.ScopeToken{}, err
	}
	return domain.ScopeToken{
		Scope:     scope,
		Value:     tokenString,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// ParseToken validates a scope token and returns the scope it names.
func (tm *TokenManager) ParseToken(tokenStr string) (domain.Scope, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now))
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.ScopeID == "" {
		return "", errors.New("invalid token claims")
	}
	return domain.Scope(claims.ScopeID), nil
}
