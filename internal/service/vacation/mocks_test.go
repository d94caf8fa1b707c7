package vacation

import (
	"context"
	"time"

	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/mock"
)

type mockRequestRepo struct{ mock.Mock }

func (m *mockRequestRepo) Create(ctx context.Context, request vacation.VacationRequest) (vacation.VacationRequest, error) {
	args := m.Called(ctx, request)
	if fn, ok := args.Get(0).(func(vacation.VacationRequest) vacation.VacationRequest); ok {
		return fn(request), args.Error(1)
	}
	return args.Get(0).(vacation.VacationRequest), args.Error(1)
}

func (m *mockRequestRepo) GetByID(ctx context.Context, id string) (vacation.VacationRequest, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(vacation.VacationRequest), args.Error(1)
}

func (m *mockRequestRepo) GetByRequesterID(ctx context.Context, requesterID string) ([]vacation.VacationRequest, error) {
	args := m.Called(ctx, requesterID)
	requests, _ := args.Get(0).([]vacation.VacationRequest)
	return requests, args.Error(1)
}

func (m *mockRequestRepo) List(ctx context.Context, filter vacation.VacationRequestFilter) ([]vacation.VacationRequest, int64, error) {
	args := m.Called(ctx, filter)
	requests, _ := args.Get(0).([]vacation.VacationRequest)
	return requests, args.Get(1).(int64), args.Error(2)
}

func (m *mockRequestRepo) ListOverlapping(ctx context.Context, start, end time.Time) ([]vacation.VacationRequest, error) {
	args := m.Called(ctx, start, end)
	requests, _ := args.Get(0).([]vacation.VacationRequest)
	return requests, args.Error(1)
}

func (m *mockRequestRepo) ListApprovedBetween(ctx context.Context, start, end time.Time) ([]vacation.VacationRequest, error) {
	args := m.Called(ctx, start, end)
	requests, _ := args.Get(0).([]vacation.VacationRequest)
	return requests, args.Error(1)
}

func (m *mockRequestRepo) Review(ctx context.Context, request vacation.VacationRequest) (vacation.VacationRequest, error) {
	args := m.Called(ctx, request)
	if fn, ok := args.Get(0).(func(vacation.VacationRequest) vacation.VacationRequest); ok {
		return fn(request), args.Error(1)
	}
	return args.Get(0).(vacation.VacationRequest), args.Error(1)
}

func (m *mockRequestRepo) CountByStatus(ctx context.Context, status vacation.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

type mockHolidayRepo struct{ mock.Mock }

func (m *mockHolidayRepo) Create(ctx context.Context, holiday vacation.Holiday) (vacation.Holiday, error) {
	args := m.Called(ctx, holiday)
	if fn, ok := args.Get(0).(func(vacation.Holiday) vacation.Holiday); ok {
		return fn(holiday), args.Error(1)
	}
	return args.Get(0).(vacation.Holiday), args.Error(1)
}

func (m *mockHolidayRepo) GetByID(ctx context.Context, id string) (vacation.Holiday, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(vacation.Holiday), args.Error(1)
}

func (m *mockHolidayRepo) ListByYear(ctx context.Context, year int) ([]vacation.Holiday, error) {
	args := m.Called(ctx, year)
	holidays, _ := args.Get(0).([]vacation.Holiday)
	return holidays, args.Error(1)
}

func (m *mockHolidayRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	args := m.Called(ctx, newUser)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockUserRepo) GetByRegistrationNumber(ctx context.Context, registrationNumber string) (user.User, error) {
	args := m.Called(ctx, registrationNumber)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByRegistrationNumber(ctx context.Context, registrationNumber string) (bool, error) {
	args := m.Called(ctx, registrationNumber)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) LockForUpdate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(topic string, event sse.Event) {
	m.Called(topic, event)
}

// passThroughTx runs fn without a database.
type passThroughTx struct {
	calls int
}

func (p *passThroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}
