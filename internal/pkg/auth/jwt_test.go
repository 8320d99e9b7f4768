package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/pkg/apperrors"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 24*time.Hour, "acodelab-test")

	pair, err := svc.GenerateTokenPair(42, models.KindUser, "gopher", true)
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}
	if pair.RefreshToken == "" || pair.RefreshToken == pair.AccessToken {
		t.Error("refresh token should be a distinct opaque value")
	}
	if !pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt) {
		t.Error("refresh token should outlive the access token")
	}

	claims, err := svc.ValidateToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.AccountID != 42 {
		t.Errorf("accountID = %d, want 42", claims.AccountID)
	}
	if claims.Kind != models.KindUser {
		t.Errorf("kind = %s, want %s", claims.Kind, models.KindUser)
	}
	if claims.Username != "gopher" || !claims.IsAdmin {
		t.Errorf("claims = %+v, want admin gopher", claims)
	}
	if claims.Issuer != "acodelab-test" {
		t.Errorf("issuer = %q, want acodelab-test", claims.Issuer)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, 24*time.Hour, "acodelab-test")

	pair, err := svc.GenerateTokenPair(1, models.KindUser, "gopher", false)
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}
	if _, err := svc.ValidateToken(pair.AccessToken); !errors.Is(err, apperrors.ErrTokenExpired) {
		t.Errorf("ValidateToken() error = %v, want %v", err, apperrors.ErrTokenExpired)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", 15*time.Minute, 24*time.Hour, "acodelab-test")
	verifier := NewJWTService("secret-b", 15*time.Minute, 24*time.Hour, "acodelab-test")

	pair, err := issuer.GenerateTokenPair(1, models.KindCompany, "Acme", false)
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}
	if _, err := verifier.ValidateToken(pair.AccessToken); !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Errorf("ValidateToken() error = %v, want %v", err, apperrors.ErrTokenInvalid)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 24*time.Hour, "acodelab-test")

	if _, err := svc.ValidateToken("not.a.token"); !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Errorf("ValidateToken() error = %v, want %v", err, apperrors.ErrTokenInvalid)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "valid", header: "Bearer abc123", want: "abc123"},
		{name: "case insensitive scheme", header: "bearer abc123", want: "abc123"},
		{name: "empty header", header: "", wantErr: apperrors.ErrTokenNotFound},
		{name: "wrong scheme", header: "Basic abc123", wantErr: apperrors.ErrTokenInvalid},
		{name: "missing token", header: "Bearer", wantErr: apperrors.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ExtractBearerToken() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractBearerToken() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
		})
	}
}
