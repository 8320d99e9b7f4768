package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/app/repositories"
	"github.com/acodelab/backend/internal/config"
	"github.com/acodelab/backend/internal/db"
	"github.com/acodelab/backend/internal/pkg/apperrors"
	"github.com/acodelab/backend/internal/pkg/auth"
)

// CreateDefaultData seeds the default admin account and the starter store
// catalog if they don't exist.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, cfg *config.Config, lgr zerolog.Logger) error {
	accountRepo := repositories.NewAccountRepository(database)
	storeRepo := repositories.NewStoreRepository(database, accountRepo)

	var finalErr error

	// --- Default admin account --- //
	if _, err := accountRepo.GetUserByEmail(ctx, "admin@acodelab.dev"); err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			lgr.Error().Err(err).Msg("Error checking for admin account")
			finalErr = errors.Join(finalErr, err)
		} else {
			lgr.Info().Msg("Creating default admin account...")

			hashed, err := auth.HashPassword("Admin123!")
			if err != nil {
				lgr.Error().Err(err).Msg("Error hashing admin password")
				finalErr = errors.Join(finalErr, err)
			} else {
				admin := &models.User{
					Username:     "admin",
					Email:        "admin@acodelab.dev",
					Password:     hashed,
					PConPoints:   cfg.Points.WelcomePCon,
					Rank:         models.RankFor(0),
					Skills:       []string{},
					Achievements: []string{},
				}
				if err := accountRepo.CreateUser(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrDuplicateIdentity) {
					lgr.Error().Err(err).Msg("Error creating admin account")
					finalErr = errors.Join(finalErr, err)
				} else if err == nil {
					if err := accountRepo.PromoteToAdmin(ctx, admin.ID); err != nil {
						lgr.Error().Err(err).Msg("Error promoting admin account")
						finalErr = errors.Join(finalErr, err)
					}
				}
			}
		}
	}

	// --- Starter store catalog --- //
	_, total, err := storeRepo.ListItems(ctx, true, 0, 1)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking store catalog")
		return errors.Join(finalErr, err)
	}
	if total > 0 {
		return finalErr
	}

	lgr.Info().Msg("Seeding starter store catalog...")
	contribuidor := models.RankContribuidor
	especialista := models.RankEspecialista
	catalog := []models.StoreItem{
		{Name: "Early Adopter Badge", Description: "A badge for the first wave of members", Price: 50, ItemType: "badge", Rarity: "rare", Unique: true},
		{Name: "Dark Pro Theme", Description: "A high contrast editor theme for the profile page", Price: 120, ItemType: "theme", Rarity: "common"},
		{Name: "Profile Spotlight", Description: "Pins your profile on the community page for a week", Price: 300, ItemType: "feature", Rarity: "epic", MinRank: &contribuidor},
		{Name: "Custom Profile Banner", Description: "Upload a custom banner image", Price: 200, ItemType: "customization", Rarity: "rare"},
		{Name: "Guru Aura", Description: "An animated frame around your avatar", Price: 1000, ItemType: "customization", Rarity: "legendary", MinRank: &especialista, Unique: true},
	}
	for i := range catalog {
		if err := storeRepo.CreateItem(ctx, &catalog[i]); err != nil {
			lgr.Error().Err(err).Str("item", catalog[i].Name).Msg("Error seeding store item")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
