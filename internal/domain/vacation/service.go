package vacation

import (
	"context"

	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/sse"
)

const (
	EventSubmitted       = "vacation.submitted"
	EventReviewed        = "vacation.reviewed"
	EventPendingReminder = "vacation.pending_reminder"

	// ManagersTopic receives events addressed to every reviewer.
	ManagersTopic = "role:manager"
)

type VacationService interface {
	PreviewRequest(ctx context.Context, session auth.Session, req PreviewVacationRequest) (PreviewResponse, error)
	SubmitRequest(ctx context.Context, session auth.Session, req CreateVacationRequestRequest) (VacationRequestResponse, error)
	ReviewRequest(ctx context.Context, session auth.Session, req ReviewVacationRequestRequest) (VacationRequestResponse, error)
	GetRequest(ctx context.Context, session auth.Session, id string) (VacationRequestResponse, error)
	ListMyRequests(ctx context.Context, session auth.Session, filter VacationRequestFilter) (ListVacationRequestResponse, error)
	ListRequests(ctx context.Context, filter VacationRequestFilter) (ListVacationRequestResponse, error)
	GetMyStats(ctx context.Context, session auth.Session) (StatsResponse, error)
	GetStats(ctx context.Context, requesterID string) (StatsResponse, error)
	CheckConflict(ctx context.Context, req ConflictCheckRequest) (ConflictCheckResponse, error)
	GetCalendar(ctx context.Context, req CalendarRequest) (CalendarResponse, error)
	CountPending(ctx context.Context) (int64, error)
	GetSummary(ctx context.Context) (SummaryResponse, error)
}

type HolidayService interface {
	ListHolidays(ctx context.Context, year int) ([]HolidayResponse, error)
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
}

// Publisher delivers realtime events to a topic (a user ID or ManagersTopic).
type Publisher interface {
	Publish(topic string, event sse.Event)
}
