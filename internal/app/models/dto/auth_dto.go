package dto

import "github.com/acodelab/backend/internal/app/models"

// RegisterUserRequest represents a developer account registration
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// RegisterCompanyRequest represents a company account registration
type RegisterCompanyRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=64"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Description string `json:"description"`
	Website     string `json:"website"`
}

// LoginRequest represents login credentials. A single endpoint serves both
// users and companies.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents a refresh token exchange
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Token   TokenResponse `json:"token"`
	Account interface{}   `json:"account"`
}

// UserResponse represents public user information
type UserResponse struct {
	ID           int64       `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email,omitempty"`
	PCPoints     int         `json:"pcPoints"`
	PConPoints   int         `json:"pconPoints"`
	Rank         models.Rank `json:"rank"`
	IsAdmin      bool        `json:"isAdmin"`
	Bio          string      `json:"bio,omitempty"`
	Location     string      `json:"location,omitempty"`
	Website      string      `json:"website,omitempty"`
	Github       string      `json:"github,omitempty"`
	Linkedin     string      `json:"linkedin,omitempty"`
	Skills       []string    `json:"skills"`
	Achievements []string    `json:"achievements"`
	Followers    int         `json:"followers,omitempty"`
	Following    int         `json:"following,omitempty"`
	CreatedAt    string      `json:"createdAt"`
}

// LeaderboardResponse represents a paginated ranking of users by PC points
type LeaderboardResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}

// CompanyResponse represents public company information
type CompanyResponse struct {
	ID          int64                   `json:"id"`
	Name        string                  `json:"name"`
	Email       string                  `json:"email,omitempty"`
	Description string                  `json:"description,omitempty"`
	Website     string                  `json:"website,omitempty"`
	Plan        models.SubscriptionPlan `json:"plan"`
	CreatedAt   string                  `json:"createdAt"`
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	Bio      *string  `json:"bio"`
	Location *string  `json:"location"`
	Website  *string  `json:"website"`
	Github   *string  `json:"github"`
	Linkedin *string  `json:"linkedin"`
	Skills   []string `json:"skills"`
}

// FromUser converts a user model to its public response form
func FromUser(user *models.User, includeEmail bool) UserResponse {
	resp := UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		PCPoints:     user.PCPoints,
		PConPoints:   user.PConPoints,
		Rank:         user.Rank,
		IsAdmin:      user.IsAdmin,
		Bio:          user.Bio,
		Location:     user.Location,
		Website:      user.Website,
		Github:       user.Github,
		Linkedin:     user.Linkedin,
		Skills:       user.Skills,
		Achievements: user.Achievements,
		CreatedAt:    user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if includeEmail {
		resp.Email = user.Email
	}
	if resp.Skills == nil {
		resp.Skills = []string{}
	}
	if resp.Achievements == nil {
		resp.Achievements = []string{}
	}
	return resp
}

// FromCompany converts a company model to its public response form
func FromCompany(company *models.Company, includeEmail bool) CompanyResponse {
	resp := CompanyResponse{
		ID:          company.ID,
		Name:        company.Name,
		Description: company.Description,
		Website:     company.Website,
		Plan:        company.Plan,
		CreatedAt:   company.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if includeEmail {
		resp.Email = company.Email
	}
	return resp
}
