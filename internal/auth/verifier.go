package auth

import (
	"crypto"
	"fmt"
	"os"

	"textile-backend/internal/apperr"
	"textile-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the caller resolved from a bearer token.
type Identity struct {
	UserID string
	Name   string
	Role   models.UserRole
	// Source is SourceLocal or SourceIdentity.
	Source string
}

const (
	SourceLocal    = "local"
	SourceIdentity = "identity"
)

type Verifier interface {
	Verify(token string) (*Identity, error)
}

// LocalVerifier accepts HS256 tokens issued by GenerateToken.
type LocalVerifier struct {
	secret []byte
}

func NewLocalVerifier(secret string) *LocalVerifier {
	return &LocalVerifier{secret: []byte(secret)}
}

func (v *LocalVerifier) Verify(tokenStr string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, apperr.New(apperr.KindUnauthorized, "Invalid or expired token", err)
	}
	return identityFrom(claims.UserID, claims.Name, claims.Role, SourceLocal)
}

type identityClaims struct {
	Name string          `json:"name"`
	Role models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// IdentityVerifier accepts RS256/ES256 tokens minted by an external identity
// provider. The user id is the subject; the role is a custom claim.
type IdentityVerifier struct {
	key      crypto.PublicKey
	issuer   string
	audience string
}

// LoadIdentityVerifier reads a PEM encoded RSA or EC public key.
func LoadIdentityVerifier(path, issuer, audience string) (*IdentityVerifier, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read identity key: %w", err)
	}
	return NewIdentityVerifier(pem, issuer, audience)
}

func NewIdentityVerifier(pem []byte, issuer, audience string) (*IdentityVerifier, error) {
	var key crypto.PublicKey
	if rsaKey, err := jwt.ParseRSAPublicKeyFromPEM(pem); err == nil {
		key = rsaKey
	} else if ecKey, ecErr := jwt.ParseECPublicKeyFromPEM(pem); ecErr == nil {
		key = ecKey
	} else {
		return nil, fmt.Errorf("identity key is neither RSA nor EC: %w", err)
	}
	return &IdentityVerifier{key: key, issuer: issuer, audience: audience}, nil
}

func (v *IdentityVerifier) Verify(tokenStr string) (*Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256", "ES256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return v.key, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, apperr.New(apperr.KindUnauthorized, "Invalid or expired token", err)
	}
	return identityFrom(claims.Subject, claims.Name, claims.Role, SourceIdentity)
}

// identityFrom rejects tokens without a user id or a known role.
func identityFrom(userID, name string, role models.UserRole, source string) (*Identity, error) {
	if userID == "" {
		return nil, apperr.Unauthorized("Token has no subject")
	}
	if !role.Valid() {
		return nil, apperr.Unauthorized("Token carries no valid role")
	}
	return &Identity{UserID: userID, Name: name, Role: role, Source: source}, nil
}

// Chain tries each verifier in order and returns the first success.
type Chain []Verifier

func (c Chain) Verify(tokenStr string) (*Identity, error) {
	var lastErr error = apperr.Unauthorized("Invalid or expired token")
	for _, v := range c {
		if v == nil {
			continue
		}
		id, err := v.Verify(tokenStr)
		if err == nil {
			return id, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
