package repositories

import (
	"context"
	"fmt"

	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/db"
)

// StatsRepository aggregates platform-wide counters for the admin dashboard
type StatsRepository struct {
	db *db.PostgresDB
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(database *db.PostgresDB) *StatsRepository {
	return &StatsRepository{db: database}
}

// PlatformStats collects all dashboard aggregates in a single round trip
func (r *StatsRepository) PlatformStats(ctx context.Context) (*dto.PlatformStatsResponse, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM companies),
			(SELECT COUNT(*) FROM questions),
			(SELECT COUNT(*) FROM answers),
			(SELECT COUNT(*) FROM answers WHERE is_validated),
			(SELECT COUNT(*) FROM answers WHERE NOT is_validated),
			(SELECT COUNT(*) FROM articles),
			(SELECT COUNT(*) FROM articles WHERE is_published),
			(SELECT COUNT(*) FROM jobs),
			(SELECT COUNT(*) FROM jobs WHERE is_active),
			(SELECT COUNT(*) FROM posts),
			(SELECT COUNT(*) FROM purchases),
			(SELECT COUNT(*) FROM users WHERE is_banned)`

	var stats dto.PlatformStatsResponse
	err := r.db.Pool.QueryRow(ctx, query).Scan(
		&stats.TotalUsers, &stats.TotalCompanies,
		&stats.TotalQuestions, &stats.TotalAnswers,
		&stats.ValidatedAnswers, &stats.PendingAnswers,
		&stats.TotalArticles, &stats.PublishedArticles,
		&stats.TotalJobs, &stats.ActiveJobs,
		&stats.TotalPosts, &stats.TotalPurchases,
		&stats.BannedUsers,
	)
	if err != nil {
		return nil, fmt.Errorf("error collecting platform stats: %w", err)
	}
	return &stats, nil
}
