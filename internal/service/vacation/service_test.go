package vacation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	svc       *VacationServiceImpl
	tx        *passThroughTx
	requests  *mockRequestRepo
	holidays  *mockHolidayRepo
	users     *mockUserRepo
	publisher *mockPublisher
}

// newFixture pins the clock to 2025-06-11 10:00 in São Paulo, a Wednesday.
func newFixture(t *testing.T) *serviceFixture {
	t.Helper()
	loc := saoPaulo(t)
	instant := time.Date(2025, 6, 11, 10, 0, 0, 0, loc)
	engine := NewEngine(loc, WithClock(func() time.Time { return instant }))

	f := &serviceFixture{
		tx:        &passThroughTx{},
		requests:  &mockRequestRepo{},
		holidays:  &mockHolidayRepo{},
		users:     &mockUserRepo{},
		publisher: &mockPublisher{},
	}
	f.svc = NewVacationService(f.tx, engine, f.requests, f.holidays, f.users, f.publisher)

	t.Cleanup(func() {
		f.requests.AssertExpectations(t)
		f.holidays.AssertExpectations(t)
		f.users.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})
	return f
}

var (
	employeeSession = auth.Session{UserID: "emp-1", RegistrationNumber: "12345", Name: "João Silva", Role: user.RoleEmployee}
	managerSession  = auth.Session{UserID: "mgr-1", RegistrationNumber: "99999", Name: "Maria Santos", Role: user.RoleManager}
)

// reqID is a UUIDv7, the shape of every stored request ID.
const reqID = "0190a1b2-c3d4-7e5f-8a6b-1c2d3e4f5a6b"

func strPtr(s string) *string { return &s }

func returnArg[T any](v T) T { return v }

func eventNamed(name string) interface{} {
	return mock.MatchedBy(func(e sse.Event) bool { return e.Event == name })
}

func TestSubmitRequest_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.users.On("LockForUpdate", mock.Anything, "emp-1").Return(nil)
	f.holidays.On("ListByYear", mock.Anything, 2025).Return([]vacation.Holiday{}, nil)
	f.requests.On("GetByRequesterID", mock.Anything, "emp-1").Return([]vacation.VacationRequest{}, nil)
	f.requests.On("Create", mock.Anything, mock.MatchedBy(func(r vacation.VacationRequest) bool {
		return r.RequesterID == "emp-1" &&
			r.Status == vacation.StatusPending &&
			FormatDate(r.StartDate) == "2025-06-16" &&
			FormatDate(r.EndDate) == "2025-07-15" &&
			FormatDate(r.RequestedAt) == "2025-06-11" &&
			r.RequesterNote != nil && *r.RequesterNote == "family trip" &&
			validator.IsValidUUID(r.ID)
	})).Return(returnArg[vacation.VacationRequest], nil)
	f.publisher.On("Publish", vacation.ManagersTopic, eventNamed(vacation.EventSubmitted)).Return()

	resp, err := f.svc.SubmitRequest(ctx, employeeSession, vacation.CreateVacationRequestRequest{
		StartDate: "2025-06-16",
		Note:      strPtr("  family trip  "),
	})

	require.NoError(t, err)
	assert.Equal(t, "2025-07-15", resp.EndDate)
	assert.Equal(t, "pending", resp.Status)
	require.NotNil(t, resp.RequesterName)
	assert.Equal(t, "João Silva", *resp.RequesterName)
	assert.Equal(t, 1, f.tx.calls)
}

func TestSubmitRequest_RuleViolations(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		holidays []vacation.Holiday
		history  []vacation.VacationRequest
		wantErr  error
	}{
		{
			name:    "friday start",
			start:   "2025-06-13",
			wantErr: vacation.ErrForbiddenStartDay,
		},
		{
			name:    "today",
			start:   "2025-06-11",
			wantErr: vacation.ErrPastOrPresentDate,
		},
		{
			name:     "holiday",
			start:    "2025-06-19",
			holidays: []vacation.Holiday{{ID: "h1", Date: time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC), Name: "Corpus Christi"}},
			wantErr:  vacation.ErrHolidayStartDay,
		},
		{
			name:  "pending exists",
			start: "2025-06-16",
			history: []vacation.VacationRequest{
				{ID: "p", RequesterID: "emp-1", Status: vacation.StatusPending},
			},
			wantErr: vacation.ErrPendingExists,
		},
		{
			name:  "cooldown",
			start: "2025-06-16",
			history: []vacation.VacationRequest{
				{
					ID: "a", RequesterID: "emp-1", Status: vacation.StatusApproved,
					StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
					EndDate:   time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC),
				},
			},
			wantErr: vacation.ErrIneligibleWindow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.users.On("LockForUpdate", mock.Anything, "emp-1").Return(nil)
			f.holidays.On("ListByYear", mock.Anything, 2025).Return(tt.holidays, nil)
			f.requests.On("GetByRequesterID", mock.Anything, "emp-1").Return(tt.history, nil).Maybe()

			_, err := f.svc.SubmitRequest(context.Background(), employeeSession, vacation.CreateVacationRequestRequest{StartDate: tt.start})

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			var ruleErr *vacation.RuleError
			assert.ErrorAs(t, err, &ruleErr)
			f.requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitRequest_CooldownCarriesNextEligibleDate(t *testing.T) {
	f := newFixture(t)

	f.users.On("LockForUpdate", mock.Anything, "emp-1").Return(nil)
	f.holidays.On("ListByYear", mock.Anything, 2025).Return(nil, nil)
	f.requests.On("GetByRequesterID", mock.Anything, "emp-1").Return([]vacation.VacationRequest{{
		ID: "a", RequesterID: "emp-1", Status: vacation.StatusApproved,
		StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC),
	}}, nil)

	_, err := f.svc.SubmitRequest(context.Background(), employeeSession, vacation.CreateVacationRequestRequest{StartDate: "2025-06-16"})

	var ruleErr *vacation.RuleError
	require.ErrorAs(t, err, &ruleErr)
	require.NotNil(t, ruleErr.NextEligibleDate)
	assert.Equal(t, "2026-02-04", FormatDate(*ruleErr.NextEligibleDate))
	assert.Equal(t, 238, ruleErr.DaysUntilEligible)
}

func TestSubmitRequest_InvalidDate(t *testing.T) {
	f := newFixture(t)
	f.users.On("LockForUpdate", mock.Anything, "emp-1").Return(nil)

	_, err := f.svc.SubmitRequest(context.Background(), employeeSession, vacation.CreateVacationRequestRequest{StartDate: "16/06/2025"})

	assert.ErrorIs(t, err, vacation.ErrInvalidDate)
	f.holidays.AssertNotCalled(t, "ListByYear", mock.Anything, mock.Anything)
}

func TestSubmitRequest_ValidationError(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SubmitRequest(context.Background(), employeeSession, vacation.CreateVacationRequestRequest{})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "start_date")
	assert.Equal(t, 0, f.tx.calls)
}

func TestSubmitRequest_LockFailure(t *testing.T) {
	f := newFixture(t)
	f.users.On("LockForUpdate", mock.Anything, "emp-1").Return(user.ErrUserNotFound)

	_, err := f.svc.SubmitRequest(context.Background(), employeeSession, vacation.CreateVacationRequestRequest{StartDate: "2025-06-16"})

	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func pendingRequest() vacation.VacationRequest {
	return vacation.VacationRequest{
		ID:          reqID,
		RequesterID: "emp-1",
		StartDate:   time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		Status:      vacation.StatusPending,
		RequestedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestReviewRequest_Approve(t *testing.T) {
	f := newFixture(t)

	f.requests.On("GetByID", mock.Anything, reqID).Return(pendingRequest(), nil)
	f.requests.On("Review", mock.Anything, mock.MatchedBy(func(r vacation.VacationRequest) bool {
		return r.Status == vacation.StatusApproved &&
			r.ReviewerID != nil && *r.ReviewerID == "mgr-1" &&
			r.ReviewedAt != nil &&
			r.ReviewerNote != nil && *r.ReviewerNote == "enjoy"
	})).Return(returnArg[vacation.VacationRequest], nil)
	f.publisher.On("Publish", "emp-1", eventNamed(vacation.EventReviewed)).Return()

	resp, err := f.svc.ReviewRequest(context.Background(), managerSession, vacation.ReviewVacationRequestRequest{
		ID:     reqID,
		Status: "approved",
		Note:   strPtr("enjoy"),
	})

	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	require.NotNil(t, resp.ReviewerName)
	assert.Equal(t, "Maria Santos", *resp.ReviewerName)
}

func TestReviewRequest_AlreadyReviewed(t *testing.T) {
	f := newFixture(t)

	done := pendingRequest()
	done.Status = vacation.StatusRejected
	f.requests.On("GetByID", mock.Anything, reqID).Return(done, nil)

	_, err := f.svc.ReviewRequest(context.Background(), managerSession, vacation.ReviewVacationRequestRequest{ID: reqID, Status: "approved"})

	assert.ErrorIs(t, err, vacation.ErrRequestAlreadyReviewed)
	f.requests.AssertNotCalled(t, "Review", mock.Anything, mock.Anything)
}

func TestReviewRequest_ConcurrentReviewLoses(t *testing.T) {
	f := newFixture(t)

	f.requests.On("GetByID", mock.Anything, reqID).Return(pendingRequest(), nil)
	f.requests.On("Review", mock.Anything, mock.Anything).Return(vacation.VacationRequest{}, vacation.ErrRequestAlreadyReviewed)

	_, err := f.svc.ReviewRequest(context.Background(), managerSession, vacation.ReviewVacationRequestRequest{ID: reqID, Status: "rejected"})

	assert.ErrorIs(t, err, vacation.ErrRequestAlreadyReviewed)
}

func TestReviewRequest_Forbidden(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ReviewRequest(context.Background(), employeeSession, vacation.ReviewVacationRequestRequest{ID: reqID, Status: "approved"})
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)

	own := pendingRequest()
	own.RequesterID = "mgr-1"
	f.requests.On("GetByID", mock.Anything, reqID).Return(own, nil)

	_, err = f.svc.ReviewRequest(context.Background(), managerSession, vacation.ReviewVacationRequestRequest{ID: reqID, Status: "approved"})
	assert.ErrorIs(t, err, vacation.ErrSelfReview)
}

func TestReviewRequest_InvalidStatus(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ReviewRequest(context.Background(), managerSession, vacation.ReviewVacationRequestRequest{ID: reqID, Status: "pending"})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "status")
}

func TestReviewRequest_MalformedID(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ReviewRequest(context.Background(), managerSession, vacation.ReviewVacationRequestRequest{ID: "req-1", Status: "approved"})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Equal(t, "id must be a valid UUID", validationErrs.ToMap()["id"])
	f.requests.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetRequest_Access(t *testing.T) {
	f := newFixture(t)
	f.requests.On("GetByID", mock.Anything, reqID).Return(pendingRequest(), nil)

	_, err := f.svc.GetRequest(context.Background(), employeeSession, reqID)
	assert.NoError(t, err)

	other := auth.Session{UserID: "emp-2", Role: user.RoleEmployee}
	_, err = f.svc.GetRequest(context.Background(), other, reqID)
	assert.ErrorIs(t, err, vacation.ErrUnauthorizedAccess)

	resp, err := f.svc.GetRequest(context.Background(), managerSession, reqID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-16", resp.StartDate)
}

func TestListMyRequests_ScopesToSession(t *testing.T) {
	f := newFixture(t)

	f.requests.On("List", mock.Anything, mock.MatchedBy(func(filter vacation.VacationRequestFilter) bool {
		return filter.RequesterID != nil && *filter.RequesterID == "emp-1" &&
			filter.Page == 1 && filter.Limit == 20 &&
			filter.SortBy == "requested_at" && filter.SortOrder == "desc"
	})).Return([]vacation.VacationRequest{pendingRequest()}, int64(41), nil)

	other := "emp-2"
	resp, err := f.svc.ListMyRequests(context.Background(), employeeSession, vacation.VacationRequestFilter{RequesterID: &other})

	require.NoError(t, err)
	assert.Len(t, resp.Requests, 1)
	assert.Equal(t, int64(41), resp.TotalCount)
	assert.Equal(t, 3, resp.TotalPages)
}

func TestListRequests_InvalidFilter(t *testing.T) {
	f := newFixture(t)
	status := "cancelled"

	_, err := f.svc.ListRequests(context.Background(), vacation.VacationRequestFilter{Status: &status, SortBy: "salary"})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "status")
	assert.Contains(t, validationErrs.ToMap(), "sort_by")
}

func TestGetStats(t *testing.T) {
	f := newFixture(t)

	f.users.On("GetByID", mock.Anything, "emp-1").Return(user.User{ID: "emp-1"}, nil)
	f.requests.On("GetByRequesterID", mock.Anything, "emp-1").Return([]vacation.VacationRequest{{
		ID: "a", RequesterID: "emp-1", Status: vacation.StatusApproved,
		StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC),
	}}, nil)

	stats, err := f.svc.GetStats(context.Background(), "emp-1")

	require.NoError(t, err)
	assert.Equal(t, 30, stats.TotalDays)
	assert.Equal(t, 30, stats.UsedDays)
	assert.Equal(t, 0, stats.RemainingDays)
	assert.False(t, stats.CanRequest)
	require.NotNil(t, stats.NextEligibleDate)
	assert.Equal(t, "2026-02-04", *stats.NextEligibleDate)
}

func TestGetStats_UnknownRequester(t *testing.T) {
	f := newFixture(t)

	f.users.On("GetByID", mock.Anything, "ghost").Return(user.User{}, user.ErrUserNotFound)
	f.requests.On("GetByRequesterID", mock.Anything, "ghost").Return(nil, nil).Maybe()

	_, err := f.svc.GetStats(context.Background(), "ghost")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestGetMyStats(t *testing.T) {
	f := newFixture(t)
	f.requests.On("GetByRequesterID", mock.Anything, "emp-1").Return(nil, nil)

	stats, err := f.svc.GetMyStats(context.Background(), employeeSession)

	require.NoError(t, err)
	assert.Equal(t, 30, stats.RemainingDays)
	assert.True(t, stats.CanRequest)
	assert.Nil(t, stats.NextEligibleDate)
}

func TestCheckConflict(t *testing.T) {
	f := newFixture(t)

	start := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 8, 13, 0, 0, 0, 0, time.UTC)
	f.requests.On("ListOverlapping", mock.Anything, start, end).Return([]vacation.VacationRequest{{
		ID: "first", RequesterID: "emp-2", Status: vacation.StatusApproved,
		StartDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 7, 30, 0, 0, 0, 0, time.UTC),
	}}, nil)

	resp, err := f.svc.CheckConflict(context.Background(), vacation.ConflictCheckRequest{StartDate: "2024-07-15", EndDate: "2024-08-13"})
	require.NoError(t, err)
	assert.True(t, resp.HasConflict)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "first", resp.Conflicts[0].ID)

	resp, err = f.svc.CheckConflict(context.Background(), vacation.ConflictCheckRequest{StartDate: "2024-07-15", EndDate: "2024-08-13", ExcludeRequestID: strPtr("first")})
	require.NoError(t, err)
	assert.False(t, resp.HasConflict)
	assert.Empty(t, resp.Conflicts)
}

func TestGetCalendar(t *testing.T) {
	f := newFixture(t)

	first := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	f.requests.On("ListApprovedBetween", mock.Anything, first, last).Return([]vacation.VacationRequest{{
		ID: "a", Status: vacation.StatusApproved,
		StartDate: time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
	}}, nil)

	resp, err := f.svc.GetCalendar(context.Background(), vacation.CalendarRequest{Year: 2024, Month: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Vacations, 1)

	_, err = f.svc.GetCalendar(context.Background(), vacation.CalendarRequest{Year: 2024, Month: 13})
	var validationErrs validator.ValidationErrors
	assert.ErrorAs(t, err, &validationErrs)
}

func TestPreviewRequest(t *testing.T) {
	f := newFixture(t)

	f.holidays.On("ListByYear", mock.Anything, 2025).Return(nil, nil)
	f.requests.On("GetByRequesterID", mock.Anything, "emp-1").Return([]vacation.VacationRequest{
		{ID: "p", RequesterID: "emp-1", Status: vacation.StatusPending},
	}, nil)

	resp, err := f.svc.PreviewRequest(context.Background(), employeeSession, vacation.PreviewVacationRequest{StartDate: "2025-06-16"})

	require.NoError(t, err)
	assert.Equal(t, "2025-07-15", resp.EndDate)
	assert.Equal(t, "2025-06-11", resp.ReferenceDate)
	assert.True(t, resp.Validation.Valid)
	assert.False(t, resp.Eligibility.Eligible)
	assert.Equal(t, string(vacation.KindPendingExists), resp.Eligibility.Kind)
	assert.False(t, resp.CanSubmit)
}

func TestPreviewRequest_InvalidDateSkipsHolidays(t *testing.T) {
	f := newFixture(t)
	f.requests.On("GetByRequesterID", mock.Anything, "emp-1").Return(nil, nil)

	resp, err := f.svc.PreviewRequest(context.Background(), employeeSession, vacation.PreviewVacationRequest{StartDate: "nope"})

	require.NoError(t, err)
	assert.Empty(t, resp.EndDate)
	assert.Equal(t, string(vacation.KindInvalidDate), resp.Validation.Kind)
	assert.True(t, resp.Eligibility.Eligible)
	assert.False(t, resp.CanSubmit)
}

func TestCountPending(t *testing.T) {
	f := newFixture(t)
	f.requests.On("CountByStatus", mock.Anything, vacation.StatusPending).Return(int64(4), nil)

	count, err := f.svc.CountPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestGetSummary(t *testing.T) {
	f := newFixture(t)
	f.users.On("Count", mock.Anything).Return(int64(12), nil)
	f.requests.On("CountByStatus", mock.Anything, vacation.StatusPending).Return(int64(3), nil)
	f.requests.On("CountByStatus", mock.Anything, vacation.StatusApproved).Return(int64(7), nil)
	f.requests.On("CountByStatus", mock.Anything, vacation.StatusRejected).Return(int64(2), nil)

	summary, err := f.svc.GetSummary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, vacation.SummaryResponse{TotalEmployees: 12, Pending: 3, Approved: 7, Rejected: 2}, summary)
}

func TestGetSummary_CountFailure(t *testing.T) {
	f := newFixture(t)
	dbErr := errors.New("connection reset")
	f.users.On("Count", mock.Anything).Return(int64(12), nil).Maybe()
	f.requests.On("CountByStatus", mock.Anything, vacation.StatusPending).Return(int64(3), nil).Maybe()
	f.requests.On("CountByStatus", mock.Anything, vacation.StatusApproved).Return(int64(0), dbErr)
	f.requests.On("CountByStatus", mock.Anything, vacation.StatusRejected).Return(int64(2), nil).Maybe()

	summary, err := f.svc.GetSummary(context.Background())

	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, vacation.SummaryResponse{}, summary)
}

func TestListRequests_SearchTooLong(t *testing.T) {
	f := newFixture(t)
	search := strings.Repeat("a", 101)

	_, err := f.svc.ListRequests(context.Background(), vacation.VacationRequestFilter{Search: &search})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Equal(t, "search must not exceed 100 characters", validationErrs.ToMap()["search"])
}

func TestHolidays(t *testing.T) {
	f := newFixture(t)

	f.holidays.On("Create", mock.Anything, mock.MatchedBy(func(h vacation.Holiday) bool {
		return h.Name == "Tiradentes" && FormatDate(h.Date) == "2025-04-21"
	})).Return(returnArg[vacation.Holiday], nil).Once()

	created, err := f.svc.CreateHoliday(context.Background(), vacation.CreateHolidayRequest{Date: "2025-04-21", Name: " Tiradentes "})
	require.NoError(t, err)
	assert.Equal(t, "2025-04-21", created.Date)
	assert.NotEmpty(t, created.ID)

	f.holidays.On("Create", mock.Anything, mock.Anything).Return(vacation.Holiday{}, vacation.ErrHolidayExists).Once()
	_, err = f.svc.CreateHoliday(context.Background(), vacation.CreateHolidayRequest{Date: "2025-04-21", Name: "Tiradentes"})
	assert.ErrorIs(t, err, vacation.ErrHolidayExists)

	// Year 0 means the current reference year.
	f.holidays.On("ListByYear", mock.Anything, 2025).Return([]vacation.Holiday{{ID: "h", Date: time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC), Name: "Tiradentes"}}, nil)
	list, err := f.svc.ListHolidays(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	f.holidays.On("Delete", mock.Anything, "missing").Return(vacation.ErrHolidayNotFound)
	assert.ErrorIs(t, f.svc.DeleteHoliday(context.Background(), "missing"), vacation.ErrHolidayNotFound)
}

func TestSubmitRequest_RepositoryErrorIsWrapped(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("connection reset")

	f.users.On("LockForUpdate", mock.Anything, "emp-1").Return(nil)
	f.holidays.On("ListByYear", mock.Anything, 2025).Return(nil, boom)

	_, err := f.svc.SubmitRequest(context.Background(), employeeSession, vacation.CreateVacationRequestRequest{StartDate: "2025-06-16"})

	assert.ErrorIs(t, err, boom)
	var ruleErr *vacation.RuleError
	assert.False(t, errors.As(err, &ruleErr))
}
