package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Vacation rule violations carry their kind and eligibility details
	var ruleErr *vacation.RuleError
	if errors.As(err, &ruleErr) {
		RuleViolation(w, strings.ToUpper(string(ruleErr.Kind)), ruleErr.Reason, ruleDetails(ruleErr))
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid registration number or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrMissingSession):
		Unauthorized(w, "Authentication required")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrRegistrationNumberExists):
		Conflict(w, "Registration number already registered")
	case errors.Is(err, user.ErrInvalidRegistrationNumber):
		BadRequest(w, "Invalid registration number", nil)
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Vacation domain errors
	case errors.Is(err, vacation.ErrRequestNotFound):
		NotFound(w, "Vacation request not found")
	case errors.Is(err, vacation.ErrRequestAlreadyReviewed):
		Conflict(w, "Vacation request already reviewed")
	case errors.Is(err, vacation.ErrInvalidStatusTransition):
		BadRequest(w, "Invalid status transition", nil)
	case errors.Is(err, vacation.ErrUnauthorizedAccess):
		Forbidden(w, "You do not have access to this vacation request")
	case errors.Is(err, vacation.ErrSelfReview):
		Forbidden(w, "You cannot review your own vacation request")
	case errors.Is(err, vacation.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, vacation.ErrHolidayExists):
		Conflict(w, "Holiday already registered for this date")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

func ruleDetails(ruleErr *vacation.RuleError) map[string]string {
	details := map[string]string{"kind": string(ruleErr.Kind)}
	if ruleErr.NextEligibleDate != nil {
		details["next_eligible_date"] = ruleErr.NextEligibleDate.Format(validator.DateLayout)
		details["days_until_eligible"] = strconv.Itoa(ruleErr.DaysUntilEligible)
	}
	return details
}
