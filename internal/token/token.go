// Package token mints and validates the two download token flavors: the
// purchase-entitlement token embedded in a customer's download URL, and the
// file-access token used by internal redirect fallback URLs. Both are HS256
// signed JWTs; the payload stays inspectable but cannot be forged. A scope
// claim keeps the flavors namespace-separated so one cannot be replayed as
// the other.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalid = errors.New("token invalid")
	ErrExpired = errors.New("token expired")
)

const (
	scopeEntitlement = "entitlement"
	scopeFile        = "file"
)

// Entitlement is the decoded purchase-entitlement token. It proves the token
// was well formed and unexpired; the purchase store remains the durable
// truth about the underlying grant.
type Entitlement struct {
	SessionID string
	Email     string
	GameID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// FileGrant is the decoded file-access token carried by fallback URLs.
type FileGrant struct {
	GameID    string
	FileName  string
	ExpiresAt time.Time
}

type claims struct {
	jwt.RegisteredClaims
	Scope     string `json:"scope"`
	SessionID string `json:"sid,omitempty"`
	Email     string `json:"eml,omitempty"`
	GameID    string `json:"gid"`
	FileName  string `json:"fn,omitempty"`
}

type Codec struct {
	secret []byte
	now    func() time.Time
}

func NewCodec(secret string) *Codec {
	return &Codec{
		secret: []byte(secret),
		now:    time.Now,
	}
}

func (c *Codec) Encode(sessionID, email, gameID string, ttl time.Duration) (string, error) {
	now := c.now()
	cl := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Scope:     scopeEntitlement,
		SessionID: sessionID,
		Email:     strings.ToLower(email),
		GameID:    gameID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign entitlement token: %w", err)
	}
	return signed, nil
}

func (c *Codec) Decode(tok string) (*Entitlement, error) {
	cl, err := c.parse(tok, scopeEntitlement)
	if err != nil {
		return nil, err
	}
	if cl.SessionID == "" || cl.Email == "" || cl.GameID == "" {
		return nil, ErrInvalid
	}

	return &Entitlement{
		SessionID: cl.SessionID,
		Email:     cl.Email,
		GameID:    cl.GameID,
		IssuedAt:  cl.IssuedAt.Time,
		ExpiresAt: cl.ExpiresAt.Time,
	}, nil
}

func (c *Codec) EncodeFile(gameID, fileName string, ttl time.Duration) (string, error) {
	now := c.now()
	cl := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Scope:    scopeFile,
		GameID:   gameID,
		FileName: fileName,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign file token: %w", err)
	}
	return signed, nil
}

func (c *Codec) DecodeFile(tok string) (*FileGrant, error) {
	cl, err := c.parse(tok, scopeFile)
	if err != nil {
		return nil, err
	}
	if cl.GameID == "" || cl.FileName == "" {
		return nil, ErrInvalid
	}

	return &FileGrant{
		GameID:    cl.GameID,
		FileName:  cl.FileName,
		ExpiresAt: cl.ExpiresAt.Time,
	}, nil
}

// parse verifies signature and scope, and applies the expiry rule itself:
// strictly after exp is expired, exactly at exp is still valid.
func (c *Codec) parse(tok, scope string) (*claims, error) {
	var cl claims
	_, err := jwt.ParseWithClaims(tok, &cl, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, err)
	}

	if cl.Scope != scope {
		return nil, ErrInvalid
	}
	if cl.ExpiresAt == nil || cl.IssuedAt == nil {
		return nil, ErrInvalid
	}
	if c.now().After(cl.ExpiresAt.Time) {
		return nil, ErrExpired
	}

	return &cl, nil
}
