package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/pkg/apperrors"
	"github.com/acodelab/backend/internal/pkg/logger"
)

// HandleAPIError maps application errors onto HTTP responses. Controllers
// funnel every service error through here so the status and code mapping
// lives in one place.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound, apperrors.ErrCompanyNotFound, apperrors.ErrAccountNotFound,
		apperrors.ErrQuestionNotFound, apperrors.ErrAnswerNotFound, apperrors.ErrArticleNotFound,
		apperrors.ErrPostNotFound, apperrors.ErrPortfolioNotFound,
		apperrors.ErrJobNotFound, apperrors.ErrApplicationNotFound, apperrors.ErrItemNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err.Error())

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")

	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")

	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrTokenNotFound, apperrors.ErrTokenRevoked):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")

	case errors.Is(err, apperrors.ErrAccountBanned):
		respond(c, http.StatusForbidden, dto.ErrorCodeAccountBanned, "Account is banned")

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeUnauthorized, "Permission denied")

	case errors.Is(err, apperrors.ErrNotAuthor):
		respond(c, http.StatusForbidden, dto.ErrorCodeNotAuthor, err.Error())

	case errors.Is(err, apperrors.ErrInsufficientRank):
		respond(c, http.StatusForbidden, dto.ErrorCodeInsufficientRank, err.Error())

	case errors.Is(err, apperrors.ErrInsufficientFunds):
		respond(c, http.StatusPaymentRequired, dto.ErrorCodeInsufficientFunds, err.Error())

	case errors.Is(err, apperrors.ErrSelfVoteForbidden):
		respond(c, http.StatusForbidden, dto.ErrorCodeSelfVote, err.Error())

	case errors.Is(err, apperrors.ErrInvalidVoteTarget):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidVoteTarget, err.Error())

	case errors.Is(err, apperrors.ErrDuplicateIdentity):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, err.Error())

	case apperrors.Is(err, apperrors.ErrConflict, apperrors.ErrAlreadyValidated, apperrors.ErrUniqueItem):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, err.Error())

	case errors.Is(err, apperrors.ErrAlreadyApplied):
		respond(c, http.StatusConflict, dto.ErrorCodeAlreadyApplied, err.Error())

	case errors.Is(err, apperrors.ErrDeadlinePassed):
		respond(c, http.StatusGone, dto.ErrorCodeDeadlinePassed, err.Error())

	case errors.Is(err, apperrors.ErrItemInactive):
		respond(c, http.StatusConflict, dto.ErrorCodeItemInactive, err.Error())

	case apperrors.Is(err, apperrors.ErrNotValidated, apperrors.ErrInvalidAmount, apperrors.ErrBadRequest, apperrors.ErrValidationFailed):
		respond(c, http.StatusBadRequest, dto.ErrorCodeResourceInvalid, err.Error())

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
