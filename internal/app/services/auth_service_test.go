package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/app/services"
	"github.com/acodelab/backend/internal/pkg/apperrors"
	"github.com/acodelab/backend/internal/pkg/auth"
)

func newAuthFixture() (*services.AuthService, *fakeAccounts, *fakeTokenStore) {
	accounts := newFakeAccounts()
	tokens := newFakeTokenStore()
	jwtService := auth.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour, "acodelab-test")
	return services.NewAuthService(accounts, tokens, jwtService, 100), accounts, tokens
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	return hashed
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()
	svc, _, tokens := newAuthFixture()

	user, pair, err := svc.RegisterUser(ctx, &dto.RegisterUserRequest{
		Username: "gopher",
		Email:    "gopher@acodelab.dev",
		Password: "s3cretpass",
	})
	if err != nil {
		t.Fatalf("RegisterUser() error = %v", err)
	}
	if user.PConPoints != 100 {
		t.Errorf("welcome PCon = %d, want 100", user.PConPoints)
	}
	if user.Rank != models.RankIniciante {
		t.Errorf("rank = %q, want %q", user.Rank, models.RankIniciante)
	}
	if len(user.Achievements) != 1 || user.Achievements[0] != services.AchievementFirstJoin {
		t.Errorf("achievements = %v, want [%s]", user.Achievements, services.AchievementFirstJoin)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected a token pair")
	}

	accountID, kind, err := tokens.GetTokenByValue(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh token not persisted: %v", err)
	}
	if accountID != user.ID || kind != models.KindUser {
		t.Errorf("stored token claims = %d/%s, want %d/%s", accountID, kind, user.ID, models.KindUser)
	}
}

func TestRegisterUserDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthFixture()

	req := &dto.RegisterUserRequest{Username: "gopher", Email: "gopher@acodelab.dev", Password: "s3cretpass"}
	if _, _, err := svc.RegisterUser(ctx, req); err != nil {
		t.Fatalf("first RegisterUser() error = %v", err)
	}
	if _, _, err := svc.RegisterUser(ctx, req); !errors.Is(err, apperrors.ErrDuplicateIdentity) {
		t.Errorf("second RegisterUser() error = %v, want %v", err, apperrors.ErrDuplicateIdentity)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, accounts, _ := newAuthFixture()

	accounts.addUser(&models.User{
		Username: "gopher",
		Email:    "gopher@acodelab.dev",
		Password: mustHash(t, "s3cretpass"),
	})
	if err := accounts.CreateCompany(ctx, &models.Company{
		Name:     "Acme",
		Email:    "jobs@acme.dev",
		Password: mustHash(t, "c0mpanypass"),
		Plan:     models.PlanBasic,
	}); err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantKind models.AccountKind
		wantErr  error
	}{
		{name: "user login", email: "gopher@acodelab.dev", password: "s3cretpass", wantKind: models.KindUser},
		{name: "company login", email: "jobs@acme.dev", password: "c0mpanypass", wantKind: models.KindCompany},
		{name: "wrong password", email: "gopher@acodelab.dev", password: "nope", wantErr: apperrors.ErrInvalidCredentials},
		{name: "unknown email", email: "ghost@acodelab.dev", password: "s3cretpass", wantErr: apperrors.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor, pair, err := svc.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Login() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if actor.Kind != tt.wantKind {
				t.Errorf("actor kind = %s, want %s", actor.Kind, tt.wantKind)
			}
			if pair.RefreshToken == "" {
				t.Error("expected a refresh token")
			}
		})
	}
}

func TestLoginBanned(t *testing.T) {
	ctx := context.Background()
	svc, accounts, _ := newAuthFixture()

	reason := "spam"
	lapsed := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	accounts.addUser(&models.User{
		Username: "permanent", Email: "permanent@acodelab.dev",
		Password: mustHash(t, "s3cretpass"),
		IsBanned: true, BanReason: &reason,
	})
	accounts.addUser(&models.User{
		Username: "temporary", Email: "temporary@acodelab.dev",
		Password: mustHash(t, "s3cretpass"),
		IsBanned: true, BanReason: &reason, BanExpires: &future,
	})
	accounts.addUser(&models.User{
		Username: "released", Email: "released@acodelab.dev",
		Password: mustHash(t, "s3cretpass"),
		IsBanned: true, BanReason: &reason, BanExpires: &lapsed,
	})

	if _, _, err := svc.Login(ctx, "permanent@acodelab.dev", "s3cretpass"); !errors.Is(err, apperrors.ErrAccountBanned) {
		t.Errorf("permanent ban: error = %v, want %v", err, apperrors.ErrAccountBanned)
	}
	if _, _, err := svc.Login(ctx, "temporary@acodelab.dev", "s3cretpass"); !errors.Is(err, apperrors.ErrAccountBanned) {
		t.Errorf("live temporary ban: error = %v, want %v", err, apperrors.ErrAccountBanned)
	}
	if _, _, err := svc.Login(ctx, "released@acodelab.dev", "s3cretpass"); err != nil {
		t.Errorf("lapsed ban: error = %v, want nil", err)
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	ctx := context.Background()
	svc, _, tokens := newAuthFixture()

	user, pair, err := svc.RegisterUser(ctx, &dto.RegisterUserRequest{
		Username: "gopher",
		Email:    "gopher@acodelab.dev",
		Password: "s3cretpass",
	})
	if err != nil {
		t.Fatalf("RegisterUser() error = %v", err)
	}

	actor, fresh, err := svc.RefreshToken(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}
	if actor.ID != user.ID {
		t.Errorf("actor ID = %d, want %d", actor.ID, user.ID)
	}
	if fresh.RefreshToken == pair.RefreshToken {
		t.Error("refresh token was not rotated")
	}

	// The presented token is revoked; reusing it must fail.
	if _, _, err := svc.RefreshToken(ctx, pair.RefreshToken); !errors.Is(err, apperrors.ErrTokenRevoked) {
		t.Errorf("reused token error = %v, want %v", err, apperrors.ErrTokenRevoked)
	}

	// The fresh token stays valid.
	if _, _, err := tokens.GetTokenByValue(ctx, fresh.RefreshToken); err != nil {
		t.Errorf("fresh token error = %v, want nil", err)
	}
}

func TestLogoutAll(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthFixture()

	user, first, err := svc.RegisterUser(ctx, &dto.RegisterUserRequest{
		Username: "gopher",
		Email:    "gopher@acodelab.dev",
		Password: "s3cretpass",
	})
	if err != nil {
		t.Fatalf("RegisterUser() error = %v", err)
	}
	_, second, err := svc.Login(ctx, "gopher@acodelab.dev", "s3cretpass")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := svc.LogoutAll(ctx, user.ID, models.KindUser); err != nil {
		t.Fatalf("LogoutAll() error = %v", err)
	}

	for _, token := range []string{first.RefreshToken, second.RefreshToken} {
		if _, _, err := svc.RefreshToken(ctx, token); !errors.Is(err, apperrors.ErrTokenRevoked) {
			t.Errorf("token after LogoutAll: error = %v, want %v", err, apperrors.ErrTokenRevoked)
		}
	}
}
