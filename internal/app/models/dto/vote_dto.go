package dto

import "github.com/acodelab/backend/internal/app/models"

// VoteRequest casts, switches, or clears a vote on a piece of content.
// Sending the same direction a second time clears the vote.
type VoteRequest struct {
	TargetID   int64                `json:"targetId" binding:"required,min=1"`
	TargetType models.TargetType    `json:"targetType" binding:"required,oneof=question answer article portfolio"`
	Direction  models.VoteDirection `json:"direction" binding:"required,oneof=up down"`
}

// VoteResponse reports the state after a vote operation
type VoteResponse struct {
	TargetID   int64             `json:"targetId"`
	TargetType models.TargetType `json:"targetType"`
	// Direction is empty when the operation removed the vote.
	Direction models.VoteDirection `json:"direction,omitempty"`
	Upvotes   int                  `json:"upvotes"`
	Downvotes int                  `json:"downvotes"`
}
