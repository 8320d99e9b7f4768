package dto

import (
	"time"

	"github.com/acodelab/backend/internal/app/models"
)

// PendingAnswersResponse is a page of the moderation queue
type PendingAnswersResponse struct {
	Answers    []models.Answer `json:"answers"`
	Pagination PaginationInfo  `json:"pagination"`
}

// RejectAnswerRequest carries the moderation note for a rejected answer
type RejectAnswerRequest struct {
	Reason string `json:"reason" binding:"required,min=10"`
}

// BanUserRequest bans a user, optionally until a given time
type BanUserRequest struct {
	Reason  string     `json:"reason" binding:"required,min=10"`
	Expires *time.Time `json:"expires"`
}

// AdjustPointsRequest manually adjusts a user's balances (admin only)
type AdjustPointsRequest struct {
	PCDelta   int    `json:"pcDelta"`
	PConDelta int    `json:"pconDelta"`
	Reason    string `json:"reason" binding:"required,min=5"`
}

// PlatformStatsResponse is the admin dashboard aggregate
type PlatformStatsResponse struct {
	TotalUsers          int64 `json:"totalUsers"`
	TotalCompanies      int64 `json:"totalCompanies"`
	TotalQuestions      int64 `json:"totalQuestions"`
	TotalAnswers        int64 `json:"totalAnswers"`
	ValidatedAnswers    int64 `json:"validatedAnswers"`
	PendingAnswers      int64 `json:"pendingAnswers"`
	TotalArticles       int64 `json:"totalArticles"`
	PublishedArticles   int64 `json:"publishedArticles"`
	TotalJobs           int64 `json:"totalJobs"`
	ActiveJobs          int64 `json:"activeJobs"`
	TotalPosts          int64 `json:"totalPosts"`
	TotalPurchases      int64 `json:"totalPurchases"`
	BannedUsers         int64 `json:"bannedUsers"`
}
