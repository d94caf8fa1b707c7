package http

import (
	"context"

	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/vacation"
	"github.com/stretchr/testify/mock"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Register(ctx context.Context, req auth.RegisterRequest, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	args := m.Called(ctx, req, sessionReq)
	return args.Get(0).(auth.TokenResponse), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req auth.LoginRequest, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	args := m.Called(ctx, req, sessionReq)
	return args.Get(0).(auth.TokenResponse), args.Error(1)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(auth.AccessTokenResponse), args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, session auth.Session, refreshToken string) error {
	return m.Called(ctx, session, refreshToken).Error(0)
}

func (m *mockAuthService) Me(ctx context.Context, session auth.Session) (user.UserResponse, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(user.UserResponse), args.Error(1)
}

func (m *mockAuthService) IssueSSEToken(ctx context.Context, session auth.Session) (auth.SSETokenResponse, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(auth.SSETokenResponse), args.Error(1)
}

type mockVacationService struct{ mock.Mock }

func (m *mockVacationService) PreviewRequest(ctx context.Context, session auth.Session, req vacation.PreviewVacationRequest) (vacation.PreviewResponse, error) {
	args := m.Called(ctx, session, req)
	return args.Get(0).(vacation.PreviewResponse), args.Error(1)
}

func (m *mockVacationService) SubmitRequest(ctx context.Context, session auth.Session, req vacation.CreateVacationRequestRequest) (vacation.VacationRequestResponse, error) {
	args := m.Called(ctx, session, req)
	return args.Get(0).(vacation.VacationRequestResponse), args.Error(1)
}

func (m *mockVacationService) ReviewRequest(ctx context.Context, session auth.Session, req vacation.ReviewVacationRequestRequest) (vacation.VacationRequestResponse, error) {
	args := m.Called(ctx, session, req)
	return args.Get(0).(vacation.VacationRequestResponse), args.Error(1)
}

func (m *mockVacationService) GetRequest(ctx context.Context, session auth.Session, id string) (vacation.VacationRequestResponse, error) {
	args := m.Called(ctx, session, id)
	return args.Get(0).(vacation.VacationRequestResponse), args.Error(1)
}

func (m *mockVacationService) ListMyRequests(ctx context.Context, session auth.Session, filter vacation.VacationRequestFilter) (vacation.ListVacationRequestResponse, error) {
	args := m.Called(ctx, session, filter)
	return args.Get(0).(vacation.ListVacationRequestResponse), args.Error(1)
}

func (m *mockVacationService) ListRequests(ctx context.Context, filter vacation.VacationRequestFilter) (vacation.ListVacationRequestResponse, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(vacation.ListVacationRequestResponse), args.Error(1)
}

func (m *mockVacationService) GetMyStats(ctx context.Context, session auth.Session) (vacation.StatsResponse, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(vacation.StatsResponse), args.Error(1)
}

func (m *mockVacationService) GetStats(ctx context.Context, requesterID string) (vacation.StatsResponse, error) {
	args := m.Called(ctx, requesterID)
	return args.Get(0).(vacation.StatsResponse), args.Error(1)
}

func (m *mockVacationService) CheckConflict(ctx context.Context, req vacation.ConflictCheckRequest) (vacation.ConflictCheckResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(vacation.ConflictCheckResponse), args.Error(1)
}

func (m *mockVacationService) GetCalendar(ctx context.Context, req vacation.CalendarRequest) (vacation.CalendarResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(vacation.CalendarResponse), args.Error(1)
}

func (m *mockVacationService) CountPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockVacationService) GetSummary(ctx context.Context) (vacation.SummaryResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(vacation.SummaryResponse), args.Error(1)
}

type mockHolidayService struct{ mock.Mock }

func (m *mockHolidayService) ListHolidays(ctx context.Context, year int) ([]vacation.HolidayResponse, error) {
	args := m.Called(ctx, year)
	holidays, _ := args.Get(0).([]vacation.HolidayResponse)
	return holidays, args.Error(1)
}

func (m *mockHolidayService) CreateHoliday(ctx context.Context, req vacation.CreateHolidayRequest) (vacation.HolidayResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(vacation.HolidayResponse), args.Error(1)
}

func (m *mockHolidayService) DeleteHoliday(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
