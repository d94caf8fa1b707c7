package vacation

import "time"

const (
	// VacationLengthDays is the inclusive length of every vacation period.
	VacationLengthDays = 30
	// CooldownDays is the wait after the end of an approved vacation before a new request.
	CooldownDays = 365
	// DefaultAnnualDays is the yearly entitlement used by stats.
	DefaultAnnualDays = 30
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// VacationRequest entity. StartDate, EndDate and RequestedAt are calendar dates
// stored as UTC midnight.
type VacationRequest struct {
	ID          string
	RequesterID string

	StartDate time.Time
	EndDate   time.Time

	Status        Status // 'pending', 'approved', 'rejected'
	RequestedAt   time.Time
	RequesterNote *string

	ReviewerID   *string
	ReviewedAt   *time.Time
	ReviewerNote *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	RequesterName         *string
	RequesterRegistration *string
	ReviewerName          *string
}

// Holiday is an organization-wide public holiday.
type Holiday struct {
	ID        string
	Date      time.Time
	Name      string
	CreatedAt time.Time
}

// Stats summarizes a requester's entitlement for the current reference year.
type Stats struct {
	TotalDays        int
	UsedDays         int
	RemainingDays    int
	NextEligibleDate *time.Time
	CanRequest       bool
	Reason           string
}
