package models

// AccountKind identifies which collection an authenticated actor came from.
type AccountKind string

const (
	KindUser    AccountKind = "USER"
	KindCompany AccountKind = "COMPANY"
)

// VoteDirection is the direction of a vote.
type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// TargetType enumerates the content types that accept votes.
type TargetType string

const (
	TargetQuestion  TargetType = "question"
	TargetAnswer    TargetType = "answer"
	TargetArticle   TargetType = "article"
	TargetPortfolio TargetType = "portfolio"
)

// ValidVoteTarget reports whether t is a known votable target type.
func ValidVoteTarget(t TargetType) bool {
	switch t {
	case TargetQuestion, TargetAnswer, TargetArticle, TargetPortfolio:
		return true
	}
	return false
}

// SubscriptionPlan is a company's billing tier.
type SubscriptionPlan string

const (
	PlanBasic      SubscriptionPlan = "basic"
	PlanPremium    SubscriptionPlan = "premium"
	PlanEnterprise SubscriptionPlan = "enterprise"
)

// PostType categorizes Connect feed posts.
type PostType string

const (
	PostText        PostType = "text"
	PostProject     PostType = "project"
	PostAchievement PostType = "achievement"
)

// ApplicationStatus is the lifecycle state of a job application.
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationReviewing ApplicationStatus = "reviewing"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"
)
