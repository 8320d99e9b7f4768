package models

import "time"

// Vote is one account's live vote on one piece of content. The storage layer
// enforces at most one row per (user, target type, target id).
type Vote struct {
	ID         int64         `json:"id" db:"id"`
	UserID     int64         `json:"userId" db:"user_id"`
	TargetID   int64         `json:"targetId" db:"target_id"`
	TargetType TargetType    `json:"targetType" db:"target_type"`
	Direction  VoteDirection `json:"direction" db:"direction"`
	CreatedAt  time.Time     `json:"createdAt" db:"created_at"`
}
