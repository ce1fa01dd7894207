package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"prusa_thermal/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTTL       = time.Hour
	tokenIssuer    = "prusa-thermal"
	minPasswordLen = 8
)

var (
	ErrInvalidUsername    = errors.New("username must not be empty")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", minPasswordLen)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNoSigningKey       = errors.New("auth signing key is not configured")

	ErrOperatorExists = repository.ErrOperatorExists
)

// operatorClaims identify the operator a bridge token was issued to.
type operatorClaims struct {
	jwt.RegisteredClaims
	OperatorID int `json:"operator_id"`
}

// OperatorAuth signs operators up and issues the bearer tokens the API checks.
type OperatorAuth struct {
	operators  repository.OperatorRepo
	signingKey []byte
	now        func() time.Time
}

func NewOperatorAuth(operators repository.OperatorRepo, signingKey string) *OperatorAuth {
	return &OperatorAuth{
		operators:  operators,
		signingKey: []byte(signingKey),
		now:        time.Now,
	}
}

// SignUp registers an operator and returns its id.
func (a *OperatorAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, ErrInvalidUsername
	}
	if len(password) < minPasswordLen {
		return 0, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	return a.operators.CreateOperator(ctx, username, string(hash))
}

// GenerateToken checks the credentials and returns a signed token.
// Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (a *OperatorAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	op, err := a.operators.OperatorByName(ctx, strings.TrimSpace(username))
	if errors.Is(err, repository.ErrOperatorNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return a.issueToken(op.ID, op.Username)
}

// ParseToken validates a bearer token and returns the operator id.
func (a *OperatorAuth) ParseToken(accessToken string) (int, error) {
	if len(a.signingKey) == 0 {
		return 0, ErrNoSigningKey
	}
	claims := &operatorClaims{}
	_, err := jwt.ParseWithClaims(accessToken, claims,
		func(*jwt.Token) (interface{}, error) { return a.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.OperatorID <= 0 {
		return 0, fmt.Errorf("%w: missing operator id", ErrInvalidToken)
	}
	return claims.OperatorID, nil
}

func (a *OperatorAuth) issueToken(operatorID int, username string) (string, error) {
	if len(a.signingKey) == 0 {
		return "", ErrNoSigningKey
	}
	now := a.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &operatorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		OperatorID: operatorID,
	})
	return token.SignedString(a.signingKey)
}
