package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64      `json:"id" db:"id" example:"1"`
	Username     string     `json:"username" db:"username" example:"gopher"`
	Email        string     `json:"email" db:"email" example:"gopher@acodelab.dev"`
	Password     string     `json:"-" db:"password"` // hashed, excluded from JSON
	PCPoints     int        `json:"pcPoints" db:"pc_points" example:"120"`
	PConPoints   int        `json:"pconPoints" db:"pcon_points" example:"85"`
	Rank         Rank       `json:"rank" db:"rank" example:"Aprendiz"`
	IsAdmin      bool       `json:"isAdmin" db:"is_admin"`
	IsBot        bool       `json:"isBot" db:"is_bot"`
	IsBanned     bool       `json:"isBanned" db:"is_banned"`
	IsMuted      bool       `json:"isMuted" db:"is_muted"`
	IsSilenced   bool       `json:"isSilenced" db:"is_silenced"`
	BanReason    *string    `json:"banReason,omitempty" db:"ban_reason"`
	BanExpires   *time.Time `json:"banExpires,omitempty" db:"ban_expires"`
	Bio          string     `json:"bio" db:"bio"`
	Location     string     `json:"location" db:"location"`
	Website      string     `json:"website" db:"website"`
	Github       string     `json:"github" db:"github"`
	Linkedin     string     `json:"linkedin" db:"linkedin"`
	Skills       []string   `json:"skills" db:"skills"`
	Achievements []string   `json:"achievements" db:"achievements"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	LastActive   time.Time  `json:"lastActive" db:"last_active"`
}

// Company defines the company model based on the 'companies' table
type Company struct {
	ID          int64            `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Email       string           `json:"email" db:"email"`
	Password    string           `json:"-" db:"password"`
	Description string           `json:"description" db:"description"`
	Website     string           `json:"website" db:"website"`
	Location    string           `json:"location" db:"location"`
	Size        string           `json:"size" db:"size"`
	Plan        SubscriptionPlan `json:"plan" db:"plan"`
	PlanExpires *time.Time       `json:"planExpires,omitempty" db:"plan_expires"`
	IsBanned    bool             `json:"isBanned" db:"is_banned"`
	BanReason   *string          `json:"banReason,omitempty" db:"ban_reason"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	LastActive  time.Time        `json:"lastActive" db:"last_active"`
}

// Actor is the authenticated principal carried through a request. The role is
// discovered once during authentication (user first, then company) and carried
// as a tagged value so handlers never re-probe both tables.
type Actor struct {
	ID      int64
	Kind    AccountKind
	User    *User    // set when Kind == KindUser
	Company *Company // set when Kind == KindCompany
}

// IsAdmin reports whether the actor is an administrator. Companies can never
// be admins.
func (a *Actor) IsAdmin() bool {
	return a.Kind == KindUser && a.User != nil && a.User.IsAdmin
}

// Username returns the display name of the actor.
func (a *Actor) Username() string {
	switch a.Kind {
	case KindUser:
		if a.User != nil {
			return a.User.Username
		}
	case KindCompany:
		if a.Company != nil {
			return a.Company.Name
		}
	}
	return ""
}

// Follow is a directed edge in the social graph.
type Follow struct {
	FollowerID int64     `json:"followerId" db:"follower_id"`
	FolloweeID int64     `json:"followeeId" db:"followee_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
