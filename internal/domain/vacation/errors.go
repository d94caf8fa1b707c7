package vacation

import (
	"errors"
	"time"
)

var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrPastOrPresentDate = errors.New("cannot request vacation in the past or today")
	ErrForbiddenStartDay = errors.New("cannot start vacation on Friday, Saturday, or Sunday")
	ErrHolidayStartDay   = errors.New("cannot start vacation on a public holiday")
	ErrIneligibleWindow  = errors.New("cooldown not elapsed")
	ErrPendingExists     = errors.New("a pending request already exists")

	ErrRequestNotFound         = errors.New("vacation request not found")
	ErrRequestAlreadyReviewed  = errors.New("vacation request already reviewed")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrUnauthorizedAccess      = errors.New("unauthorized access to vacation request")
	ErrSelfReview              = errors.New("cannot review your own vacation request")

	ErrHolidayNotFound = errors.New("holiday not found")
	ErrHolidayExists   = errors.New("holiday already registered for this date")
)

// RuleKind names the engine rule that rejected a request.
type RuleKind string

const (
	KindNone              RuleKind = ""
	KindInvalidDate       RuleKind = "invalid_date"
	KindPastOrPresentDate RuleKind = "past_or_present_date"
	KindForbiddenStartDay RuleKind = "forbidden_start_day"
	KindHolidayStartDay   RuleKind = "holiday_start_day"
	KindIneligibleWindow  RuleKind = "ineligible_window"
	KindPendingExists     RuleKind = "pending_exists"
)

var kindSentinels = map[RuleKind]error{
	KindInvalidDate:       ErrInvalidDate,
	KindPastOrPresentDate: ErrPastOrPresentDate,
	KindForbiddenStartDay: ErrForbiddenStartDay,
	KindHolidayStartDay:   ErrHolidayStartDay,
	KindIneligibleWindow:  ErrIneligibleWindow,
	KindPendingExists:     ErrPendingExists,
}

// RuleError is a rule violation reported by the engine. It unwraps to the
// sentinel of its Kind, so callers match it with errors.Is.
type RuleError struct {
	Kind              RuleKind
	Reason            string
	NextEligibleDate  *time.Time
	DaysUntilEligible int
}

func (e *RuleError) Error() string {
	return e.Reason
}

func (e *RuleError) Unwrap() error {
	return kindSentinels[e.Kind]
}

// ValidationResult is the outcome of start date validation.
type ValidationResult struct {
	Valid  bool
	Kind   RuleKind
	Reason string
}

// Err converts a failed result into a *RuleError; nil when valid.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return &RuleError{Kind: r.Kind, Reason: r.Reason}
}

// EligibilityResult is the outcome of the cooldown and pending checks.
type EligibilityResult struct {
	Eligible          bool
	Kind              RuleKind
	Reason            string
	NextEligibleDate  *time.Time
	DaysUntilEligible int
}

func (r EligibilityResult) Err() error {
	if r.Eligible {
		return nil
	}
	return &RuleError{
		Kind:              r.Kind,
		Reason:            r.Reason,
		NextEligibleDate:  r.NextEligibleDate,
		DaysUntilEligible: r.DaysUntilEligible,
	}
}
