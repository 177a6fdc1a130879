// Package identity implements the identity provider on Redis: accounts and
// custom claims live in hashes, sessions are HS256 JWTs.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/identity"
)

const (
	accountPrefix = "identity:account:"
	emailPrefix   = "identity:email:"
)

type Provider struct {
	rdb      *redis.Client
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewProvider(rdb *redis.Client, secret string, tokenTTL time.Duration) *Provider {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Provider{
		rdb:      rdb,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

func accountKey(uid string) string { return accountPrefix + uid }

func emailKey(email string) string { return emailPrefix + normalizeEmail(email) }

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// --------------------------------------------------
// Accounts
// --------------------------------------------------

// Register creates an account with no role claims and returns its uid.
func (p *Provider) Register(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || len(password) < 6 {
		return "", httperr.ErrValidation("invalid_credentials_format")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("identity: hash password: %w", err)
	}

	uid := uuid.NewString()

	ok, err := p.rdb.SetNX(ctx, emailKey(email), uid, 0).Result()
	if err != nil {
		return "", fmt.Errorf("identity: reserve email: %w", err)
	}
	if !ok {
		return "", httperr.ErrConflict("email_already_registered")
	}

	claims, _ := json.Marshal(identity.Claims{})
	if err := p.rdb.HSet(ctx, accountKey(uid),
		"email", email,
		"password_hash", string(hashed),
		"claims", string(claims),
		"created_at", p.now().UTC().Format(time.RFC3339),
	).Err(); err != nil {
		p.rdb.Del(ctx, emailKey(email))
		return "", fmt.Errorf("identity: create account: %w", err)
	}

	return uid, nil
}

// Login checks the password and issues a session token.
func (p *Provider) Login(ctx context.Context, email, password string) (string, error) {
	uid, err := p.rdb.Get(ctx, emailKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", httperr.ErrAuth("invalid_credentials")
	}
	if err != nil {
		return "", fmt.Errorf("identity: lookup email: %w", err)
	}

	hash, err := p.rdb.HGet(ctx, accountKey(uid), "password_hash").Result()
	if errors.Is(err, redis.Nil) {
		return "", httperr.ErrAuth("invalid_credentials")
	}
	if err != nil {
		return "", fmt.Errorf("identity: load account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", httperr.ErrAuth("invalid_credentials")
	}

	return p.IssueToken(uid, normalizeEmail(email))
}

func (p *Provider) IssueToken(uid, email string) (string, error) {
	now := p.now()
	claims := jwt.MapClaims{
		"sub":   uid,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(p.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// --------------------------------------------------
// identity.Provider
// --------------------------------------------------

func (p *Provider) VerifyToken(ctx context.Context, tokenString string) (*identity.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil || !token.Valid {
		return nil, httperr.ErrAuth("invalid_token")
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, httperr.ErrAuth("invalid_token_claims")
	}

	uid, err := mc.GetSubject()
	if err != nil || uid == "" {
		return nil, httperr.ErrAuth("invalid_token_payload")
	}

	fields, err := p.rdb.HGetAll(ctx, accountKey(uid)).Result()
	if err != nil {
		return nil, fmt.Errorf("identity: load account: %w", err)
	}
	if len(fields) == 0 {
		return nil, httperr.ErrAuth("account_not_found")
	}

	var claims identity.Claims
	if raw := fields["claims"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &claims); err != nil {
			return nil, fmt.Errorf("identity: decode claims: %w", err)
		}
	}

	return &identity.Token{
		UID:    uid,
		Email:  fields["email"],
		Claims: claims,
	}, nil
}

func (p *Provider) SetClaims(ctx context.Context, uid string, claims identity.Claims) error {
	n, err := p.rdb.Exists(ctx, accountKey(uid)).Result()
	if err != nil {
		return fmt.Errorf("identity: lookup account: %w", err)
	}
	if n == 0 {
		return httperr.ErrNotFound("identity_account_not_found")
	}

	raw, err := json.Marshal(claims)
	if err != nil {
		return err
	}

	if err := p.rdb.HSet(ctx, accountKey(uid), "claims", string(raw)).Err(); err != nil {
		return fmt.Errorf("identity: set claims: %w", err)
	}
	return nil
}

func (p *Provider) DeleteAccount(ctx context.Context, uid string) error {
	email, err := p.rdb.HGet(ctx, accountKey(uid), "email").Result()
	if errors.Is(err, redis.Nil) {
		return httperr.ErrNotFound("identity_account_not_found")
	}
	if err != nil {
		return fmt.Errorf("identity: lookup account: %w", err)
	}

	if _, err := p.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, accountKey(uid))
		pipe.Del(ctx, emailKey(email))
		return nil
	}); err != nil {
		return fmt.Errorf("identity: delete account: %w", err)
	}
	return nil
}

var _ identity.Provider = (*Provider)(nil)
