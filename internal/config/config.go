package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/acodelab/backend/internal/app/models"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                 string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration  string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		RefreshTokenExpiration string `yaml:"refresh_token_expiration" env:"JWT_REFRESH_TOKEN_EXPIRATION"`
		Issuer                 string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Points Points `yaml:"points"`

	Gating struct {
		// PublishMinRank gates publishing articles and featuring questions.
		PublishMinRank string `yaml:"publish_min_rank" env:"GATING_PUBLISH_MIN_RANK"`
	} `yaml:"gating"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// Points is the single canonical table of reputation deltas per content event.
// The source system kept several disagreeing copies of these values; here one
// table drives every award.
type Points struct {
	WelcomePCon         int `yaml:"welcome_pcon" env:"POINTS_WELCOME_PCON"`
	QuestionPC          int `yaml:"question_pc" env:"POINTS_QUESTION_PC"`
	QuestionPCon        int `yaml:"question_pcon" env:"POINTS_QUESTION_PCON"`
	AnswerValidatedPC   int `yaml:"answer_validated_pc" env:"POINTS_ANSWER_VALIDATED_PC"`
	AnswerValidatedPCon int `yaml:"answer_validated_pcon" env:"POINTS_ANSWER_VALIDATED_PCON"`
	AnswerAcceptedPC    int `yaml:"answer_accepted_pc" env:"POINTS_ANSWER_ACCEPTED_PC"`
	AnswerAcceptedPCon  int `yaml:"answer_accepted_pcon" env:"POINTS_ANSWER_ACCEPTED_PCON"`
	UpvotePC            int `yaml:"upvote_pc" env:"POINTS_UPVOTE_PC"`
	DownvotePC          int `yaml:"downvote_pc" env:"POINTS_DOWNVOTE_PC"` // negative
	ArticlePublishPC    int `yaml:"article_publish_pc" env:"POINTS_ARTICLE_PUBLISH_PC"`
	PostPC              int `yaml:"post_pc" env:"POINTS_POST_PC"`
	LikeReceivedPC      int `yaml:"like_received_pc" env:"POINTS_LIKE_RECEIVED_PC"`
	PortfolioSubmitPC   int `yaml:"portfolio_submit_pc" env:"POINTS_PORTFOLIO_SUBMIT_PC"`
	PortfolioVotePC     int `yaml:"portfolio_vote_pc" env:"POINTS_PORTFOLIO_VOTE_PC"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "acodelab"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	// JWT defaults
	config.JWT.AccessTokenExpiration = "30m"
	config.JWT.RefreshTokenExpiration = "720h"
	config.JWT.Issuer = "acodelab.dev"

	// Reputation defaults
	config.Points = DefaultPoints()
	config.Gating.PublishMinRank = string(models.RankContribuidor)

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// DefaultPoints returns the canonical point-award table.
func DefaultPoints() Points {
	return Points{
		WelcomePCon:         100,
		QuestionPC:          2,
		QuestionPCon:        5,
		AnswerValidatedPC:   10,
		AnswerValidatedPCon: 10,
		AnswerAcceptedPC:    15,
		AnswerAcceptedPCon:  10,
		UpvotePC:            5,
		DownvotePC:          -2,
		ArticlePublishPC:    5,
		PostPC:              1,
		LikeReceivedPC:      1,
		PortfolioSubmitPC:   3,
		PortfolioVotePC:     2,
	}
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if _, err := time.ParseDuration(config.JWT.RefreshTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT refresh token expiration format: %w", err)
	}

	if models.RankIndex(models.Rank(config.Gating.PublishMinRank)) < 0 {
		return fmt.Errorf("unknown publish min rank %q", config.Gating.PublishMinRank)
	}

	if config.Points.DownvotePC > 0 {
		return fmt.Errorf("downvote delta must not be positive")
	}

	return nil
}

// PublishMinRank returns the configured minimum rank for publishing.
func (c *Config) PublishMinRank() models.Rank {
	return models.Rank(c.Gating.PublishMinRank)
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
