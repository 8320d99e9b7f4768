package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/app/services"
	"github.com/acodelab/backend/internal/pkg/apperrors"
	"github.com/acodelab/backend/internal/pkg/auth"
)

// ActorKey is the gin context key holding the authenticated actor.
const ActorKey = "actor"

// AuthMiddleware resolves tokens to live actors
type AuthMiddleware struct {
	jwtService  *auth.JWTService
	authService *services.AuthService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, authService *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService, authService: authService}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// JWTAuth validates the access token and loads the account behind it into
// the request context
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeTokenNotFound, "Authentication required")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, apperrors.ErrTokenExpired) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		actor, err := m.authService.ResolveActor(c.Request.Context(), claims.AccountID, claims.Kind)
		if err != nil {
			if errors.Is(err, apperrors.ErrAccountBanned) {
				c.AbortWithStatusJSON(http.StatusForbidden,
					dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeAccountBanned, "Account is banned")))
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Account no longer exists")
			return
		}

		c.Set(ActorKey, actor)
		c.Next()
	}
}

// OptionalAuth loads the actor when a valid token is present but lets
// anonymous requests through
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.Next()
			return
		}
		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			c.Next()
			return
		}
		if actor, err := m.authService.ResolveActor(c.Request.Context(), claims.AccountID, claims.Kind); err == nil {
			c.Set(ActorKey, actor)
		}
		c.Next()
	}
}

// AdminRequired rejects non-admin actors. Must run after JWTAuth.
func (m *AuthMiddleware) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := GetActor(c)
		if actor == nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}
		if !actor.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Administrator access required")))
			return
		}
		c.Next()
	}
}

// GetActor returns the authenticated actor from the context, or nil
func GetActor(c *gin.Context) *models.Actor {
	value, exists := c.Get(ActorKey)
	if !exists {
		return nil
	}
	actor, ok := value.(*models.Actor)
	if !ok {
		return nil
	}
	return actor
}
