package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"prusa_thermal/internal/models"
	"prusa_thermal/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const testSigningKey = "bridge-test-key"

// operatorRepoStub keeps operators in a map keyed by username.
type operatorRepoStub struct {
	byName  map[string]models.Operator
	loadErr error
}

func newOperatorRepoStub() *operatorRepoStub {
	return &operatorRepoStub{byName: map[string]models.Operator{}}
}

func (r *operatorRepoStub) CreateOperator(ctx context.Context, username, hash string) (int, error) {
	if _, ok := r.byName[username]; ok {
		return 0, fmt.Errorf("%w: %q", repository.ErrOperatorExists, username)
	}
	op := models.Operator{ID: len(r.byName) + 1, Username: username, PasswordHash: hash}
	r.byName[username] = op
	return op.ID, nil
}

func (r *operatorRepoStub) OperatorByName(ctx context.Context, username string) (models.Operator, error) {
	if r.loadErr != nil {
		return models.Operator{}, r.loadErr
	}
	op, ok := r.byName[username]
	if !ok {
		return models.Operator{}, repository.ErrOperatorNotFound
	}
	return op, nil
}

func TestOperatorAuth_SignUpThenSignIn(t *testing.T) {
	repo := newOperatorRepoStub()
	auth := NewOperatorAuth(repo, testSigningKey)
	ctx := context.Background()

	id, err := auth.SignUp(ctx, "  farm-admin ", "correct horse")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	stored := repo.byName["farm-admin"]
	if stored.ID != id {
		t.Fatalf("username not trimmed or not stored: %+v", repo.byName)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse")) != nil {
		t.Fatalf("stored hash does not match the password")
	}

	token, err := auth.GenerateToken(ctx, "farm-admin", "correct horse")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	got, err := auth.ParseToken(token)
	if err != nil || got != id {
		t.Fatalf("ParseToken: got (%d, %v), want (%d, nil)", got, err, id)
	}
}

func TestOperatorAuth_SignUpRejects(t *testing.T) {
	repo := newOperatorRepoStub()
	auth := NewOperatorAuth(repo, testSigningKey)
	ctx := context.Background()
	if _, err := auth.SignUp(ctx, "farm-admin", "correct horse"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cases := []struct {
		name, user, pass string
		want             error
	}{
		{"blank username", "   ", "correct horse", ErrInvalidUsername},
		{"short password", "other", "short", ErrWeakPassword},
		{"duplicate", "farm-admin", "another password", ErrOperatorExists},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := auth.SignUp(ctx, tc.user, tc.pass); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestOperatorAuth_GenerateTokenFailures(t *testing.T) {
	repo := newOperatorRepoStub()
	auth := NewOperatorAuth(repo, testSigningKey)
	ctx := context.Background()
	if _, err := auth.SignUp(ctx, "farm-admin", "correct horse"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := auth.GenerateToken(ctx, "farm-admin", "wrong password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", err)
	}
	if _, err := auth.GenerateToken(ctx, "ghost", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown operator: got %v", err)
	}

	repo.loadErr = errors.New("database is locked")
	_, err := auth.GenerateToken(ctx, "farm-admin", "correct horse")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("storage error should pass through, got %v", err)
	}
}

func signTestToken(t *testing.T, method jwt.SigningMethod, key any, claims operatorClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, &claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestOperatorAuth_ParseTokenRejects(t *testing.T) {
	auth := NewOperatorAuth(newOperatorRepoStub(), testSigningKey)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	auth.now = func() time.Time { return now }

	valid := func() operatorClaims {
		return operatorClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    tokenIssuer,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			},
			OperatorID: 4,
		}
	}
	expired := valid()
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))
	foreign := valid()
	foreign.Issuer = "someone-else"
	noExpiry := valid()
	noExpiry.ExpiresAt = nil
	noOperator := valid()
	noOperator.OperatorID = 0

	cases := []struct {
		name  string
		token string
	}{
		{"malformed", "not-a-jwt"},
		{"wrong key", signTestToken(t, jwt.SigningMethodHS256, []byte("other-key"), valid())},
		{"wrong algorithm", signTestToken(t, jwt.SigningMethodHS512, []byte(testSigningKey), valid())},
		{"expired", signTestToken(t, jwt.SigningMethodHS256, []byte(testSigningKey), expired)},
		{"foreign issuer", signTestToken(t, jwt.SigningMethodHS256, []byte(testSigningKey), foreign)},
		{"no expiry", signTestToken(t, jwt.SigningMethodHS256, []byte(testSigningKey), noExpiry)},
		{"no operator", signTestToken(t, jwt.SigningMethodHS256, []byte(testSigningKey), noOperator)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := auth.ParseToken(tc.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("got %v, want ErrInvalidToken", err)
			}
		})
	}

	if id, err := auth.ParseToken(signTestToken(t, jwt.SigningMethodHS256, []byte(testSigningKey), valid())); err != nil || id != 4 {
		t.Fatalf("valid token: got (%d, %v)", id, err)
	}
}

func TestOperatorAuth_MissingSigningKey(t *testing.T) {
	repo := newOperatorRepoStub()
	auth := NewOperatorAuth(repo, "")
	ctx := context.Background()
	if _, err := auth.SignUp(ctx, "farm-admin", "correct horse"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if _, err := auth.GenerateToken(ctx, "farm-admin", "correct horse"); !errors.Is(err, ErrNoSigningKey) {
		t.Fatalf("GenerateToken: got %v", err)
	}
	if _, err := auth.ParseToken("anything"); !errors.Is(err, ErrNoSigningKey) {
		t.Fatalf("ParseToken: got %v", err)
	}
}
