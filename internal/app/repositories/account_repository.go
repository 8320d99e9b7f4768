package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/db"
	"github.com/acodelab/backend/internal/pkg/apperrors"
	"github.com/acodelab/backend/internal/pkg/dberrors"
)

const userColumns = `id, username, email, password, pc_points, pcon_points, rank,
	is_admin, is_bot, is_banned, is_muted, is_silenced, ban_reason, ban_expires,
	bio, location, website, github, linkedin, skills, achievements, created_at, last_active`

const companyColumns = `id, name, email, password, description, website, location,
	size, plan, plan_expires, is_banned, ban_reason, created_at, last_active`

// AccountRepository handles database operations for users, companies, and the
// follow graph
type AccountRepository struct {
	db *db.PostgresDB
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(database *db.PostgresDB) *AccountRepository {
	return &AccountRepository{db: database}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Password, &u.PCPoints, &u.PConPoints, &u.Rank,
		&u.IsAdmin, &u.IsBot, &u.IsBanned, &u.IsMuted, &u.IsSilenced, &u.BanReason, &u.BanExpires,
		&u.Bio, &u.Location, &u.Website, &u.Github, &u.Linkedin, &u.Skills, &u.Achievements,
		&u.CreatedAt, &u.LastActive,
	)
	if err != nil {
		if dberrors.IsNotFoundError(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return &u, nil
}

func scanCompany(row pgx.Row) (*models.Company, error) {
	var c models.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Password, &c.Description, &c.Website, &c.Location,
		&c.Size, &c.Plan, &c.PlanExpires, &c.IsBanned, &c.BanReason, &c.CreatedAt, &c.LastActive,
	)
	if err != nil {
		if dberrors.IsNotFoundError(err) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("error scanning company: %w", err)
	}
	return &c, nil
}

// CreateUser inserts a new user with the welcome balance already applied
func (r *AccountRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password, pc_points, pcon_points, rank, skills, achievements)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, last_active`

	err := r.db.Pool.QueryRow(ctx, query,
		user.Username, user.Email, user.Password,
		user.PCPoints, user.PConPoints, user.Rank,
		user.Skills, user.Achievements,
	).Scan(&user.ID, &user.CreatedAt, &user.LastActive)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err) {
			return apperrors.ErrDuplicateIdentity
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// CreateCompany inserts a new company account
func (r *AccountRepository) CreateCompany(ctx context.Context, company *models.Company) error {
	query := `
		INSERT INTO companies (name, email, password, description, website, plan)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, last_active`

	err := r.db.Pool.QueryRow(ctx, query,
		company.Name, company.Email, company.Password,
		company.Description, company.Website, company.Plan,
	).Scan(&company.ID, &company.CreatedAt, &company.LastActive)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err) {
			return apperrors.ErrDuplicateIdentity
		}
		return fmt.Errorf("error creating company: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by primary key
func (r *AccountRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)
	return scanUser(r.db.Pool.QueryRow(ctx, query, id))
}

// GetUserByEmail retrieves a user by email
func (r *AccountRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = $1", userColumns)
	return scanUser(r.db.Pool.QueryRow(ctx, query, email))
}

// GetUserByUsername retrieves a user by username
func (r *AccountRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE username = $1", userColumns)
	return scanUser(r.db.Pool.QueryRow(ctx, query, username))
}

// GetCompanyByID retrieves a company by primary key
func (r *AccountRepository) GetCompanyByID(ctx context.Context, id int64) (*models.Company, error) {
	query := fmt.Sprintf("SELECT %s FROM companies WHERE id = $1", companyColumns)
	return scanCompany(r.db.Pool.QueryRow(ctx, query, id))
}

// GetCompanyByEmail retrieves a company by email
func (r *AccountRepository) GetCompanyByEmail(ctx context.Context, email string) (*models.Company, error) {
	query := fmt.Sprintf("SELECT %s FROM companies WHERE email = $1", companyColumns)
	return scanCompany(r.db.Pool.QueryRow(ctx, query, email))
}

// UpdateUserProfile updates the mutable profile fields of a user
func (r *AccountRepository) UpdateUserProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET bio = $1, location = $2, website = $3, github = $4, linkedin = $5,
		    skills = $6, last_active = NOW()
		WHERE id = $7`

	tag, err := r.db.Pool.Exec(ctx, query,
		user.Bio, user.Location, user.Website, user.Github, user.Linkedin,
		user.Skills, user.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating user profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// TouchLastActive bumps the user's last activity timestamp
func (r *AccountRepository) TouchLastActive(ctx context.Context, userID int64) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE users SET last_active = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error updating last active: %w", err)
	}
	return nil
}

// AdjustPoints applies PC and PCon deltas to a user inside a transaction.
// The row is locked, balances clamp at zero, and the rank is recomputed from
// the resulting PC balance before the lock is released.
func (r *AccountRepository) AdjustPoints(ctx context.Context, userID int64, pcDelta, pconDelta int) (*models.User, error) {
	var updated *models.User
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		updated, err = adjustPointsTx(ctx, tx, userID, pcDelta, pconDelta)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// adjustPointsTx is the shared in-transaction award primitive. Every code
// path that moves points funnels through here so clamping and rank
// recomputation cannot diverge.
func adjustPointsTx(ctx context.Context, tx pgx.Tx, userID int64, pcDelta, pconDelta int) (*models.User, error) {
	var pc, pcon int
	err := tx.QueryRow(ctx,
		`SELECT pc_points, pcon_points FROM users WHERE id = $1 FOR UPDATE`,
		userID,
	).Scan(&pc, &pcon)
	if err != nil {
		if dberrors.IsNotFoundError(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error locking user row: %w", err)
	}

	pc += pcDelta
	if pc < 0 {
		pc = 0
	}
	pcon += pconDelta
	if pcon < 0 {
		pcon = 0
	}
	rank := models.RankFor(pc)

	query := fmt.Sprintf(`
		UPDATE users SET pc_points = $1, pcon_points = $2, rank = $3
		WHERE id = $4
		RETURNING %s`, userColumns)
	return scanUser(tx.QueryRow(ctx, query, pc, pcon, rank, userID))
}

// SpendPCon debits PCon from a user only when the balance covers the cost.
// The conditional UPDATE makes two concurrent purchases race safely; the
// loser observes zero affected rows.
func (r *AccountRepository) SpendPCon(ctx context.Context, tx pgx.Tx, userID int64, cost int) (int, error) {
	if cost <= 0 {
		return 0, apperrors.ErrInvalidAmount
	}

	var remaining int
	err := tx.QueryRow(ctx, `
		UPDATE users SET pcon_points = pcon_points - $1
		WHERE id = $2 AND pcon_points >= $1
		RETURNING pcon_points`, cost, userID,
	).Scan(&remaining)
	if err != nil {
		if dberrors.IsNotFoundError(err) {
			return 0, apperrors.ErrInsufficientFunds
		}
		return 0, fmt.Errorf("error spending pcon: %w", err)
	}
	return remaining, nil
}

// AddAchievement appends an achievement key if the user does not already have it
func (r *AccountRepository) AddAchievement(ctx context.Context, userID int64, achievement string) error {
	query := `
		UPDATE users SET achievements = array_append(achievements, $1)
		WHERE id = $2 AND NOT ($1 = ANY(achievements))`

	if _, err := r.db.Pool.Exec(ctx, query, achievement, userID); err != nil {
		return fmt.Errorf("error adding achievement: %w", err)
	}
	return nil
}

// PromoteToAdmin grants a user the admin flag
func (r *AccountRepository) PromoteToAdmin(ctx context.Context, userID int64) error {
	tag, err := r.db.Pool.Exec(ctx, `UPDATE users SET is_admin = TRUE WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error promoting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// BanUser marks a user banned with a reason and optional expiry
func (r *AccountRepository) BanUser(ctx context.Context, userID int64, reason string, expires *time.Time) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE users SET is_banned = TRUE, ban_reason = $1, ban_expires = $2
		WHERE id = $3`, reason, expires, userID)
	if err != nil {
		return fmt.Errorf("error banning user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UnbanUser clears a user's ban state
func (r *AccountRepository) UnbanUser(ctx context.Context, userID int64) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE users SET is_banned = FALSE, ban_reason = NULL, ban_expires = NULL
		WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error unbanning user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// ListUsers retrieves a page of users ordered by PC points, optionally
// filtered by a username search term
func (r *AccountRepository) ListUsers(ctx context.Context, search string, offset uint64, limit int) ([]models.User, int64, error) {
	builder := squirrel.Select(
		"id", "username", "email", "password", "pc_points", "pcon_points", "rank",
		"is_admin", "is_bot", "is_banned", "is_muted", "is_silenced", "ban_reason", "ban_expires",
		"bio", "location", "website", "github", "linkedin", "skills", "achievements",
		"created_at", "last_active",
		"COUNT(*) OVER() AS total_count",
	).
		From("users").
		OrderBy("pc_points DESC").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	if search != "" {
		builder = builder.Where("username ILIKE ?", "%"+search+"%")
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var users []models.User
	var total int64
	for rows.Next() {
		var u models.User
		err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.Password, &u.PCPoints, &u.PConPoints, &u.Rank,
			&u.IsAdmin, &u.IsBot, &u.IsBanned, &u.IsMuted, &u.IsSilenced, &u.BanReason, &u.BanExpires,
			&u.Bio, &u.Location, &u.Website, &u.Github, &u.Linkedin, &u.Skills, &u.Achievements,
			&u.CreatedAt, &u.LastActive, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		users = append(users, u)
	}

	return users, total, nil
}

// Follow adds a directed follow edge; following an already followed user is a
// no-op
func (r *AccountRepository) Follow(ctx context.Context, followerID, followeeID int64) error {
	query := `
		INSERT INTO follows (follower_id, followee_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followee_id) DO NOTHING`

	if _, err := r.db.Pool.Exec(ctx, query, followerID, followeeID); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error creating follow: %w", err)
	}
	return nil
}

// Unfollow removes a follow edge
func (r *AccountRepository) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`,
		followerID, followeeID)
	if err != nil {
		return fmt.Errorf("error removing follow: %w", err)
	}
	return nil
}

// IsFollowing reports whether a follow edge exists
func (r *AccountRepository) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`,
		followerID, followeeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking follow: %w", err)
	}
	return exists, nil
}

// FollowerIDs returns the ids of users following the given user
func (r *AccountRepository) FollowerIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT follower_id FROM follows WHERE followee_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing followers: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// FolloweeIDs returns the ids of users the given user follows
func (r *AccountRepository) FolloweeIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT followee_id FROM follows WHERE follower_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing followees: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
