package vacation

import (
	"context"
	"time"
)

// VacationRequestRepository - interface for vacation_requests table
type VacationRequestRepository interface {
	Create(ctx context.Context, request VacationRequest) (VacationRequest, error)
	GetByID(ctx context.Context, id string) (VacationRequest, error)
	GetByRequesterID(ctx context.Context, requesterID string) ([]VacationRequest, error)
	List(ctx context.Context, filter VacationRequestFilter) ([]VacationRequest, int64, error)
	// ListOverlapping returns non-rejected requests overlapping [start, end].
	ListOverlapping(ctx context.Context, start, end time.Time) ([]VacationRequest, error)
	// ListApprovedBetween returns approved requests overlapping [start, end].
	ListApprovedBetween(ctx context.Context, start, end time.Time) ([]VacationRequest, error)
	// Review moves a pending request to a terminal status. Returns
	// ErrRequestAlreadyReviewed when the request is no longer pending.
	Review(ctx context.Context, request VacationRequest) (VacationRequest, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
}

// HolidayRepository - interface for holidays table
type HolidayRepository interface {
	Create(ctx context.Context, holiday Holiday) (Holiday, error)
	GetByID(ctx context.Context, id string) (Holiday, error)
	ListByYear(ctx context.Context, year int) ([]Holiday, error)
	Delete(ctx context.Context, id string) error
}
