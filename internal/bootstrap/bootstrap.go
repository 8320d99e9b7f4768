// Package bootstrap wires configuration, database, services, and routes into
// a runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/acodelab/backend/internal/app/controllers"
	"github.com/acodelab/backend/internal/app/migrations"
	"github.com/acodelab/backend/internal/app/repositories"
	"github.com/acodelab/backend/internal/app/routes"
	"github.com/acodelab/backend/internal/app/services"
	"github.com/acodelab/backend/internal/config"
	"github.com/acodelab/backend/internal/db"
	"github.com/acodelab/backend/internal/middleware"
	"github.com/acodelab/backend/internal/pkg/auth"
	"github.com/acodelab/backend/internal/pkg/helpers"
	"github.com/acodelab/backend/internal/pkg/logger"
	"github.com/acodelab/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       *services.AuthService
	ReputationService *services.ReputationService
	QuestionService   *services.QuestionService
	VoteService       *services.VoteService
	ArticleService    *services.ArticleService
	JobService        *services.JobService
	StoreService      *services.StoreService
	ConnectService    *services.ConnectService
	UserService       *services.UserService
	ModerationService *services.ModerationService

	AuthController     *controllers.AuthController
	UserController     *controllers.UserController
	QuestionController *controllers.QuestionController
	VoteController     *controllers.VoteController
	ArticleController  *controllers.ArticleController
	JobController      *controllers.JobController
	StoreController    *controllers.StoreController
	ConnectController  *controllers.ConnectController
	AdminController    *controllers.AdminController

	AuthMiddleware *middleware.AuthMiddleware
	JWTService     *auth.JWTService
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations, and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := migrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database, cfg, lgr); err != nil {
		// Startup continues with whatever seed data made it in
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	accountRepo := repositories.NewAccountRepository(database)
	tokenRepo := repositories.NewTokenRepository(database)
	questionRepo := repositories.NewQuestionRepository(database)
	answerRepo := repositories.NewAnswerRepository(database)
	voteRepo := repositories.NewVoteRepository(database)
	articleRepo := repositories.NewArticleRepository(database)
	jobRepo := repositories.NewJobRepository(database)
	storeRepo := repositories.NewStoreRepository(database, accountRepo)
	postRepo := repositories.NewPostRepository(database)
	portfolioRepo := repositories.NewPortfolioRepository(database)
	statsRepo := repositories.NewStatsRepository(database)

	deps.JWTService = auth.NewJWTService(
		cfg.JWT.Secret,
		helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 30*time.Minute),
		helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		cfg.JWT.Issuer,
	)

	deps.ReputationService = services.NewReputationService(accountRepo, cfg.Points)
	deps.AuthService = services.NewAuthService(accountRepo, tokenRepo, deps.JWTService, cfg.Points.WelcomePCon)
	deps.QuestionService = services.NewQuestionService(questionRepo, answerRepo, deps.ReputationService)
	deps.VoteService = services.NewVoteService(voteRepo, deps.ReputationService)
	deps.ArticleService = services.NewArticleService(articleRepo, deps.ReputationService, cfg.PublishMinRank())
	deps.JobService = services.NewJobService(jobRepo)
	deps.StoreService = services.NewStoreService(storeRepo)
	deps.ConnectService = services.NewConnectService(postRepo, portfolioRepo, accountRepo, deps.ReputationService)
	deps.UserService = services.NewUserService(accountRepo)
	deps.ModerationService = services.NewModerationService(answerRepo, questionRepo, accountRepo, statsRepo, deps.ReputationService)

	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.JWTService, deps.AuthService)

	deps.AuthController = controllers.NewAuthController(deps.AuthService, lgr)
	deps.UserController = controllers.NewUserController(deps.UserService, deps.ConnectService, lgr)
	deps.QuestionController = controllers.NewQuestionController(deps.QuestionService, lgr)
	deps.VoteController = controllers.NewVoteController(deps.VoteService, lgr)
	deps.ArticleController = controllers.NewArticleController(deps.ArticleService, lgr)
	deps.JobController = controllers.NewJobController(deps.JobService, lgr)
	deps.StoreController = controllers.NewStoreController(deps.StoreService, lgr)
	deps.ConnectController = controllers.NewConnectController(deps.ConnectService, lgr)
	deps.AdminController = controllers.NewAdminController(deps.ModerationService, deps.ConnectService, deps.StoreService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())

	routes.SetupSwagger(router)

	routes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.QuestionController,
		deps.VoteController,
		deps.ArticleController,
		deps.JobController,
		deps.StoreController,
		deps.ConnectController,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
