package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/app/services"
	"github.com/acodelab/backend/internal/pkg/apperrors"
)

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	accounts := newFakeAccounts()
	svc := services.NewUserService(accounts)
	accounts.addUser(&models.User{Username: "gopher", Bio: "Go since r60"})

	user, err := svc.GetProfile(ctx, "gopher")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if user.Bio != "Go since r60" {
		t.Errorf("bio = %q", user.Bio)
	}

	if _, err := svc.GetProfile(ctx, "ghost"); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("GetProfile(ghost) error = %v, want %v", err, apperrors.ErrUserNotFound)
	}
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	accounts := newFakeAccounts()
	svc := services.NewUserService(accounts)
	user := accounts.addUser(&models.User{Username: "gopher", Location: "Porto"})

	bio := "Backend developer"
	github := "gopher"
	updated, err := svc.UpdateProfile(ctx, userActor(user), &dto.UpdateProfileRequest{
		Bio:    &bio,
		Github: &github,
		Skills: []string{"go", "postgres"},
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.Bio != bio || updated.Github != github {
		t.Errorf("profile = %+v", updated)
	}
	if updated.Location != "Porto" {
		t.Errorf("untouched location = %q, want Porto", updated.Location)
	}
	if len(updated.Skills) != 2 {
		t.Errorf("skills = %v", updated.Skills)
	}

	company := companyActor(&models.Company{ID: 99, Name: "Acme"})
	if _, err := svc.UpdateProfile(ctx, company, &dto.UpdateProfileRequest{Bio: &bio}); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("UpdateProfile() by company error = %v, want %v", err, apperrors.ErrPermissionDenied)
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	ctx := context.Background()
	accounts := newFakeAccounts()
	svc := services.NewUserService(accounts)

	accounts.addUser(&models.User{Username: "bronze", PCPoints: 10})
	accounts.addUser(&models.User{Username: "gold", PCPoints: 900})
	accounts.addUser(&models.User{Username: "silver", PCPoints: 300})

	users, total, err := svc.Leaderboard(ctx, "", 0, 20)
	if err != nil {
		t.Fatalf("Leaderboard() error = %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	want := []string{"gold", "silver", "bronze"}
	for i, username := range want {
		if users[i].Username != username {
			t.Errorf("position %d = %q, want %q", i, users[i].Username, username)
		}
	}
}

func TestFollowCounts(t *testing.T) {
	ctx := context.Background()
	accounts := newFakeAccounts()
	svc := services.NewUserService(accounts)

	alice := accounts.addUser(&models.User{Username: "alice"})
	bob := accounts.addUser(&models.User{Username: "bob"})
	carol := accounts.addUser(&models.User{Username: "carol"})

	if err := accounts.Follow(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	if err := accounts.Follow(ctx, carol.ID, alice.ID); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	if err := accounts.Follow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	followers, following, err := svc.FollowCounts(ctx, alice.ID)
	if err != nil {
		t.Fatalf("FollowCounts() error = %v", err)
	}
	if followers != 2 || following != 1 {
		t.Errorf("counts = %d/%d, want 2/1", followers, following)
	}
}
