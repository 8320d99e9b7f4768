package services

import (
	"context"
	"errors"
	"time"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/pkg/apperrors"
	"github.com/acodelab/backend/internal/pkg/auth"
	"github.com/acodelab/backend/internal/pkg/logger"
)

// AccountStore is the slice of the account repository the auth flow needs.
type AccountStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	CreateCompany(ctx context.Context, company *models.Company) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetCompanyByID(ctx context.Context, id int64) (*models.Company, error)
	GetCompanyByEmail(ctx context.Context, email string) (*models.Company, error)
	TouchLastActive(ctx context.Context, userID int64) error
}

// TokenStore persists refresh tokens.
type TokenStore interface {
	CreateToken(ctx context.Context, token string, accountID int64, kind models.AccountKind, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, models.AccountKind, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllAccountTokens(ctx context.Context, accountID int64, kind models.AccountKind) error
}

// AuthService handles registration, login, and token lifecycle for both
// account kinds
type AuthService struct {
	accounts    AccountStore
	tokens      TokenStore
	jwtService  *auth.JWTService
	welcomePCon int
}

// NewAuthService creates a new AuthService
func NewAuthService(accounts AccountStore, tokens TokenStore, jwtService *auth.JWTService, welcomePCon int) *AuthService {
	return &AuthService{
		accounts:    accounts,
		tokens:      tokens,
		jwtService:  jwtService,
		welcomePCon: welcomePCon,
	}
}

// RegisterUser creates a developer account with the welcome balance and the
// joining achievement already applied
func (s *AuthService) RegisterUser(ctx context.Context, req *dto.RegisterUserRequest) (*models.User, *auth.TokenPair, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		Password:     hashed,
		PCPoints:     0,
		PConPoints:   s.welcomePCon,
		Rank:         models.RankFor(0),
		Skills:       []string{},
		Achievements: []string{AchievementFirstJoin},
	}
	if err := s.accounts.CreateUser(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, user.ID, models.KindUser, user.Username, user.IsAdmin)
	if err != nil {
		return nil, nil, err
	}

	logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("User registered")
	return user, pair, nil
}

// RegisterCompany creates a company account on the basic plan
func (s *AuthService) RegisterCompany(ctx context.Context, req *dto.RegisterCompanyRequest) (*models.Company, *auth.TokenPair, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	company := &models.Company{
		Name:        req.Name,
		Email:       req.Email,
		Password:    hashed,
		Description: req.Description,
		Website:     req.Website,
		Plan:        models.PlanBasic,
	}
	if err := s.accounts.CreateCompany(ctx, company); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, company.ID, models.KindCompany, company.Name, false)
	if err != nil {
		return nil, nil, err
	}

	logger.Info().Int64("companyID", company.ID).Str("name", company.Name).Msg("Company registered")
	return company, pair, nil
}

// Login authenticates an email and password against users first, then
// companies, and returns the resolved actor with fresh tokens
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Actor, *auth.TokenPair, error) {
	user, err := s.accounts.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if !auth.CheckPassword(password, user.Password) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		if user.IsBanned && !banExpired(user.BanExpires) {
			return nil, nil, apperrors.ErrAccountBanned
		}
		pair, err := s.issueTokens(ctx, user.ID, models.KindUser, user.Username, user.IsAdmin)
		if err != nil {
			return nil, nil, err
		}
		if err := s.accounts.TouchLastActive(ctx, user.ID); err != nil {
			logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last active")
		}
		return &models.Actor{ID: user.ID, Kind: models.KindUser, User: user}, pair, nil

	case errors.Is(err, apperrors.ErrUserNotFound):
		company, cErr := s.accounts.GetCompanyByEmail(ctx, email)
		if cErr != nil {
			if errors.Is(cErr, apperrors.ErrCompanyNotFound) {
				return nil, nil, apperrors.ErrInvalidCredentials
			}
			return nil, nil, cErr
		}
		if !auth.CheckPassword(password, company.Password) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		if company.IsBanned {
			return nil, nil, apperrors.ErrAccountBanned
		}
		pair, err := s.issueTokens(ctx, company.ID, models.KindCompany, company.Name, false)
		if err != nil {
			return nil, nil, err
		}
		return &models.Actor{ID: company.ID, Kind: models.KindCompany, Company: company}, pair, nil

	default:
		return nil, nil, err
	}
}

// RefreshToken rotates a refresh token: the presented token is revoked and a
// new pair is issued to the same account
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*models.Actor, *auth.TokenPair, error) {
	accountID, kind, err := s.tokens.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, nil, err
	}

	actor, err := s.ResolveActor(ctx, accountID, kind)
	if err != nil {
		return nil, nil, err
	}

	if err := s.tokens.RevokeToken(ctx, refreshToken); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, actor.ID, actor.Kind, actor.Username(), actor.IsAdmin())
	if err != nil {
		return nil, nil, err
	}
	return actor, pair, nil
}

// Logout revokes a single refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.RevokeToken(ctx, refreshToken)
}

// LogoutAll revokes every refresh token of an account
func (s *AuthService) LogoutAll(ctx context.Context, accountID int64, kind models.AccountKind) error {
	return s.tokens.RevokeAllAccountTokens(ctx, accountID, kind)
}

// ResolveActor loads the live account behind a token claim, rejecting banned
// accounts
func (s *AuthService) ResolveActor(ctx context.Context, accountID int64, kind models.AccountKind) (*models.Actor, error) {
	switch kind {
	case models.KindUser:
		user, err := s.accounts.GetUserByID(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if user.IsBanned && !banExpired(user.BanExpires) {
			return nil, apperrors.ErrAccountBanned
		}
		return &models.Actor{ID: user.ID, Kind: models.KindUser, User: user}, nil
	case models.KindCompany:
		company, err := s.accounts.GetCompanyByID(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if company.IsBanned {
			return nil, apperrors.ErrAccountBanned
		}
		return &models.Actor{ID: company.ID, Kind: models.KindCompany, Company: company}, nil
	}
	return nil, apperrors.ErrAccountNotFound
}

func (s *AuthService) issueTokens(ctx context.Context, accountID int64, kind models.AccountKind, username string, isAdmin bool) (*auth.TokenPair, error) {
	pair, err := s.jwtService.GenerateTokenPair(accountID, kind, username, isAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.CreateToken(ctx, pair.RefreshToken, accountID, kind, pair.RefreshTokenExpiresAt); err != nil {
		return nil, err
	}
	return pair, nil
}

// banExpired reports whether a temporary ban has already lapsed. A nil
// expiry means the ban is permanent.
func banExpired(expires *time.Time) bool {
	return expires != nil && expires.Before(time.Now())
}
