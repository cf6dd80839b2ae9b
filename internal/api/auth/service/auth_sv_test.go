package authService

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"AdvisoryAssistant/internal/api/auth"
	"AdvisoryAssistant/pkg/bcrypt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	gobcrypt "golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newTestService(t *testing.T, admin AdminAccount) AuthService {
	t.Helper()
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", testSecret)

	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewAuthService(log, bcrypt.NewWithCost(gobcrypt.MinCost), admin)
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.NewWithCost(gobcrypt.MinCost).HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return h
}

func TestLogin(t *testing.T) {
	svc := newTestService(t, AdminAccount{ID: "admin", Email: "ops@example.com", PasswordHash: hash(t, "correct horse")})

	res, err := svc.Login(context.Background(), auth.LoginRequest{Email: "OPS@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res.TokenType != "Bearer" {
		t.Errorf("unexpected token type %q", res.TokenType)
	}
	if ttl := time.Until(time.Unix(res.ExpiresAt, 0)); ttl < 23*time.Hour || ttl > 25*time.Hour {
		t.Errorf("expected a 24h token, expires in %s", ttl)
	}

	token, err := jwt.Parse(res.AccessToken, func(*jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
	if err != nil || !token.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	got := map[string]interface{}{"id": claims["id"], "email": claims["email"], "role": claims["role"]}
	want := map[string]interface{}{"id": "admin", "email": "ops@example.com", "role": "admin"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("claims mismatch (-want +got):\n%s", diff)
	}
}

func TestLoginFailures(t *testing.T) {
	account := AdminAccount{ID: "admin", Email: "ops@example.com", PasswordHash: hash(t, "correct horse")}

	tests := []struct {
		name    string
		account AdminAccount
		req     auth.LoginRequest
		want    error
	}{
		{
			name:    "wrong password",
			account: account,
			req:     auth.LoginRequest{Email: "ops@example.com", Password: "battery staple"},
			want:    auth.ErrInvalidEmailOrPassword,
		},
		{
			name:    "wrong email",
			account: account,
			req:     auth.LoginRequest{Email: "intruder@example.com", Password: "correct horse"},
			want:    auth.ErrInvalidEmailOrPassword,
		},
		{
			name:    "not configured",
			account: AdminAccount{ID: "admin"},
			req:     auth.LoginRequest{Email: "ops@example.com", Password: "correct horse"},
			want:    auth.ErrAdminNotConfigured,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, tt.account)
			if _, err := svc.Login(context.Background(), tt.req); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoginWithMalformedHash(t *testing.T) {
	svc := newTestService(t, AdminAccount{ID: "admin", Email: "ops@example.com", PasswordHash: "plaintext"})

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ops@example.com", Password: "plaintext"})
	if err == nil || errors.Is(err, auth.ErrInvalidEmailOrPassword) {
		t.Errorf("expected an internal error for a malformed hash, got %v", err)
	}
}

func TestAdminAccountFromEnv(t *testing.T) {
	t.Setenv("ADMIN_ID", "")
	t.Setenv("ADMIN_EMAIL", "  Ops@Example.com ")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$04$hash")

	want := AdminAccount{ID: "admin", Email: "ops@example.com", PasswordHash: "$2a$04$hash"}
	if diff := cmp.Diff(want, AdminAccountFromEnv()); diff != "" {
		t.Errorf("account mismatch (-want +got):\n%s", diff)
	}
}
