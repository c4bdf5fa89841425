package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
)

// tokenClaims is the wire shape of both token kinds. The typ claim prevents a
// refresh token from being accepted where an access token is expected and
// vice versa; the two kinds additionally use independent signing secrets.
type tokenClaims struct {
	Username  string `json:"username,omitempty"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// jwtCodec implements TokenCodec with HMAC-SHA256 signatures.
type jwtCodec struct {
	accessSecret  []byte
	refreshSecret []byte
}

// NewTokenCodec creates a TokenCodec signing with the given secrets. Both
// secrets must be non-empty; length is validated by the configuration layer.
func NewTokenCodec(accessSecret string, refreshSecret string) (TokenCodec, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, authDomain.ErrSigningSecretMissing
	}
	return &jwtCodec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}, nil
}

// IssueAccess signs an access token carrying the principal's identity and role.
func (c *jwtCodec) IssueAccess(principal authDomain.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Username:  principal.Username,
		Role:      string(principal.Role),
		TokenType: string(authDomain.TokenKindAccess),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.accessSecret)
}

// IssueRefresh signs a refresh token. The jti claim carries the ID of the
// refresh record so a verified token can be tied back to exactly one row.
func (c *jwtCodec) IssueRefresh(userID uuid.UUID, tokenID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		TokenType: string(authDomain.TokenKindRefresh),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        tokenID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.refreshSecret)
}

// Verify parses and validates a token of the expected kind.
func (c *jwtCodec) Verify(token string, kind authDomain.TokenKind) (*authDomain.AccessClaims, error) {
	secret := c.accessSecret
	if kind == authDomain.TokenKindRefresh {
		secret = c.refreshSecret
	}

	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, authDomain.ErrTokenExpired
		}
		return nil, authDomain.ErrInvalidToken
	}

	if claims.TokenType != string(kind) {
		return nil, authDomain.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, authDomain.ErrInvalidToken
	}

	out := &authDomain.AccessClaims{
		UserID:    userID,
		Username:  claims.Username,
		Role:      authDomain.Role(claims.Role),
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.ID != "" {
		tokenID, err := uuid.Parse(claims.ID)
		if err != nil {
			return nil, authDomain.ErrInvalidToken
		}
		out.TokenID = tokenID
	}
	return out, nil
}

// HashToken hashes a token with SHA-256 for storage and lookup. Only hashes
// touch the database; a leaked refresh_tokens table yields no usable tokens.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
