package vacation

import (
	"time"

	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/validator"
)

const maxNoteLength = 500

type CreateVacationRequestRequest struct {
	StartDate string  `json:"start_date"`
	Note      *string `json:"note,omitempty"`
}

// Validate checks presence only; date semantics belong to the engine so that
// malformed dates surface as an invalid_date rule result.
func (r *CreateVacationRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	// Start date
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	}

	// Note
	if r.Note != nil && validator.RuneLen(*r.Note) > maxNoteLength {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PreviewVacationRequest struct {
	StartDate string `json:"start_date"`
}

func (r *PreviewVacationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewVacationRequestRequest struct {
	ID     string  `json:"-"`
	Status string  `json:"status"`
	Note   *string `json:"note,omitempty"`
}

func (r *ReviewVacationRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	// ID
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	} else if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	// Status
	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	} else if !validator.IsInSlice(r.Status, []string{string(StatusApproved), string(StatusRejected)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: approved, rejected",
		})
	}

	// Note
	if r.Note != nil && validator.RuneLen(*r.Note) > maxNoteLength {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type VacationRequestFilter struct {
	// Search & Filter
	Search      *string `json:"search,omitempty"` // requester name or registration number
	RequesterID *string `json:"requester_id,omitempty"`
	Status      *string `json:"status,omitempty"`
	StartDate   *string `json:"start_date,omitempty"` // YYYY-MM-DD, requests ending on or after
	EndDate     *string `json:"end_date,omitempty"`   // YYYY-MM-DD, requests starting on or before

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // requested_at, start_date, status, requester_name
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *VacationRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	// Page validation
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	// Limit validation
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	// Status
	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: pending, approved, rejected",
		})
	}

	// Search
	if f.Search != nil && validator.RuneLen(*f.Search) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "search",
			Message: "search must not exceed 100 characters",
		})
	}

	// Requester
	if f.RequesterID != nil && validator.IsEmpty(*f.RequesterID) {
		errs = append(errs, validator.ValidationError{
			Field:   "requester_id",
			Message: "requester_id must not be empty",
		})
	}

	// Date range
	var start, end time.Time
	var startOK, endOK bool
	if f.StartDate != nil {
		if start, startOK = validator.IsValidDate(*f.StartDate); !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil {
		if end, endOK = validator.IsValidDate(*f.EndDate); !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	// Sorting
	if f.SortBy == "" {
		f.SortBy = "requested_at"
	}
	validSortFields := []string{"requested_at", "start_date", "status", "requester_name"}
	if !validator.IsInSlice(f.SortBy, validSortFields) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_by",
			Message: "sort_by must be one of: requested_at, start_date, status, requester_name",
		})
	}
	if f.SortOrder == "" {
		f.SortOrder = "desc"
	}
	if f.SortOrder != "asc" && f.SortOrder != "desc" {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_order",
			Message: "sort_order must be either asc or desc",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ConflictCheckRequest struct {
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	ExcludeRequestID *string `json:"exclude_request_id,omitempty"`
}

func (r *ConflictCheckRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CalendarRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 1-12
}

func (r *CalendarRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 1 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 1 and 9999",
		})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateHolidayRequest struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if validator.RuneLen(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Responses

type VacationRequestResponse struct {
	ID                    string     `json:"id"`
	RequesterID           string     `json:"requester_id"`
	RequesterName         *string    `json:"requester_name,omitempty"`
	RequesterRegistration *string    `json:"requester_registration,omitempty"`
	StartDate             string     `json:"start_date"`
	EndDate               string     `json:"end_date"`
	Status                string     `json:"status"`
	RequestedAt           string     `json:"requested_at"`
	RequesterNote         *string    `json:"requester_note,omitempty"`
	ReviewerID            *string    `json:"reviewer_id,omitempty"`
	ReviewerName          *string    `json:"reviewer_name,omitempty"`
	ReviewedAt            *time.Time `json:"reviewed_at,omitempty"`
	ReviewerNote          *string    `json:"reviewer_note,omitempty"`
}

type ListVacationRequestResponse struct {
	Requests   []VacationRequestResponse `json:"requests"`
	TotalCount int64                     `json:"total_count"`
	Page       int                       `json:"page"`
	Limit      int                       `json:"limit"`
	TotalPages int                       `json:"total_pages"`
}

type RuleResultResponse struct {
	Valid  bool   `json:"valid"`
	Kind   string `json:"kind,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type EligibilityResponse struct {
	Eligible          bool    `json:"eligible"`
	Kind              string  `json:"kind,omitempty"`
	Reason            string  `json:"reason,omitempty"`
	NextEligibleDate  *string `json:"next_eligible_date,omitempty"`
	DaysUntilEligible int     `json:"days_until_eligible,omitempty"`
}

type PreviewResponse struct {
	StartDate     string              `json:"start_date"`
	EndDate       string              `json:"end_date,omitempty"`
	ReferenceDate string              `json:"reference_date"`
	CanSubmit     bool                `json:"can_submit"`
	Validation    RuleResultResponse  `json:"validation"`
	Eligibility   EligibilityResponse `json:"eligibility"`
}

type StatsResponse struct {
	RequesterID      string  `json:"requester_id"`
	TotalDays        int     `json:"total_days"`
	UsedDays         int     `json:"used_days"`
	RemainingDays    int     `json:"remaining_days"`
	NextEligibleDate *string `json:"next_eligible_date,omitempty"`
	CanRequest       bool    `json:"can_request"`
	Reason           string  `json:"reason,omitempty"`
}

// SummaryResponse backs the manager dashboard. TotalEmployees counts every
// registered user.
type SummaryResponse struct {
	TotalEmployees int64 `json:"total_employees"`
	Pending        int64 `json:"pending"`
	Approved       int64 `json:"approved"`
	Rejected       int64 `json:"rejected"`
}

type ConflictCheckResponse struct {
	HasConflict bool                      `json:"has_conflict"`
	Conflicts   []VacationRequestResponse `json:"conflicts"`
}

type CalendarResponse struct {
	Year      int                       `json:"year"`
	Month     int                       `json:"month"`
	Vacations []VacationRequestResponse `json:"vacations"`
}

type HolidayResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}
