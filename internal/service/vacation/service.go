package vacation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/sse"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type VacationServiceImpl struct {
	tx        database.Transactor
	engine    *Engine
	publisher vacation.Publisher
	vacation.VacationRequestRepository
	vacation.HolidayRepository
	user.UserRepository
}

var (
	_ vacation.VacationService = (*VacationServiceImpl)(nil)
	_ vacation.HolidayService  = (*VacationServiceImpl)(nil)
)

// NewVacationService wires the workflow around the engine. publisher may be nil.
func NewVacationService(
	tx database.Transactor,
	engine *Engine,
	requestRepository vacation.VacationRequestRepository,
	holidayRepository vacation.HolidayRepository,
	userRepository user.UserRepository,
	publisher vacation.Publisher,
) *VacationServiceImpl {
	return &VacationServiceImpl{
		tx:                        tx,
		engine:                    engine,
		publisher:                 publisher,
		VacationRequestRepository: requestRepository,
		HolidayRepository:         holidayRepository,
		UserRepository:            userRepository,
	}
}

// PreviewRequest implements vacation.VacationService.
func (s *VacationServiceImpl) PreviewRequest(ctx context.Context, session auth.Session, req vacation.PreviewVacationRequest) (vacation.PreviewResponse, error) {
	if err := req.Validate(); err != nil {
		return vacation.PreviewResponse{}, err
	}

	rules := s.engine.Now()

	var (
		holidays []vacation.Holiday
		history  []vacation.VacationRequest
	)
	g, gctx := errgroup.WithContext(ctx)
	if start, ok := ParseDate(req.StartDate); ok {
		g.Go(func() error {
			var err error
			holidays, err = s.HolidayRepository.ListByYear(gctx, start.Year())
			if err != nil {
				return fmt.Errorf("failed to list holidays: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		var err error
		history, err = s.VacationRequestRepository.GetByRequesterID(gctx, session.UserID)
		if err != nil {
			return fmt.Errorf("failed to get vacation history: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return vacation.PreviewResponse{}, err
	}

	validation := rules.WithHolidays(holidays).ValidateStartDate(req.StartDate)
	eligibility := rules.CheckEligibility(session.UserID, history)

	response := vacation.PreviewResponse{
		StartDate:     req.StartDate,
		EndDate:       ComputeEndDate(req.StartDate),
		ReferenceDate: FormatDate(rules.Today()),
		CanSubmit:     validation.Valid && eligibility.Eligible,
		Validation: vacation.RuleResultResponse{
			Valid:  validation.Valid,
			Kind:   string(validation.Kind),
			Reason: validation.Reason,
		},
		Eligibility: vacation.EligibilityResponse{
			Eligible:          eligibility.Eligible,
			Kind:              string(eligibility.Kind),
			Reason:            eligibility.Reason,
			NextEligibleDate:  formatDatePtr(eligibility.NextEligibleDate),
			DaysUntilEligible: eligibility.DaysUntilEligible,
		},
	}

	return response, nil
}

// SubmitRequest implements vacation.VacationService.
func (s *VacationServiceImpl) SubmitRequest(ctx context.Context, session auth.Session, req vacation.CreateVacationRequestRequest) (vacation.VacationRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return vacation.VacationRequestResponse{}, err
	}
	if !session.Can(user.PermissionVacationCreate) {
		return vacation.VacationRequestResponse{}, user.ErrInsufficientPermissions
	}

	var created vacation.VacationRequest
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		// Serializes submissions of the same requester.
		if err := s.UserRepository.LockForUpdate(txCtx, session.UserID); err != nil {
			return fmt.Errorf("failed to lock requester: %w", err)
		}

		rules := s.engine.Now()

		start, ok := ParseDate(req.StartDate)
		if !ok {
			return rules.ValidateStartDate(req.StartDate).Err()
		}

		holidays, err := s.HolidayRepository.ListByYear(txCtx, start.Year())
		if err != nil {
			return fmt.Errorf("failed to list holidays: %w", err)
		}
		if err := rules.WithHolidays(holidays).ValidateStartDate(req.StartDate).Err(); err != nil {
			return err
		}

		history, err := s.VacationRequestRepository.GetByRequesterID(txCtx, session.UserID)
		if err != nil {
			return fmt.Errorf("failed to get vacation history: %w", err)
		}
		if err := rules.CheckEligibility(session.UserID, history).Err(); err != nil {
			return err
		}

		created, err = s.VacationRequestRepository.Create(txCtx, vacation.VacationRequest{
			ID:            uuid.Must(uuid.NewV7()).String(),
			RequesterID:   session.UserID,
			StartDate:     start,
			EndDate:       EndDate(start),
			Status:        vacation.StatusPending,
			RequestedAt:   rules.Today(),
			RequesterNote: trimNote(req.Note),
		})
		if err != nil {
			return fmt.Errorf("failed to create vacation request: %w", err)
		}
		return nil
	})
	if err != nil {
		return vacation.VacationRequestResponse{}, err
	}

	if created.RequesterName == nil {
		created.RequesterName = &session.Name
		created.RequesterRegistration = &session.RegistrationNumber
	}
	response := mapRequestToResponse(created)

	s.publish(vacation.ManagersTopic, vacation.EventSubmitted, response)
	slog.Info("vacation request submitted", "request_id", created.ID, "requester_id", created.RequesterID, "start_date", response.StartDate)

	return response, nil
}

// ReviewRequest implements vacation.VacationService.
func (s *VacationServiceImpl) ReviewRequest(ctx context.Context, session auth.Session, req vacation.ReviewVacationRequestRequest) (vacation.VacationRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return vacation.VacationRequestResponse{}, err
	}
	if !session.Can(user.PermissionVacationReview) {
		return vacation.VacationRequestResponse{}, user.ErrManagerAccessRequired
	}

	request, err := s.VacationRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return vacation.VacationRequestResponse{}, err
	}

	if request.RequesterID == session.UserID {
		return vacation.VacationRequestResponse{}, vacation.ErrSelfReview
	}

	target := vacation.Status(req.Status)
	if !CanTransition(request.Status, target) {
		if request.Status.IsTerminal() {
			return vacation.VacationRequestResponse{}, vacation.ErrRequestAlreadyReviewed
		}
		return vacation.VacationRequestResponse{}, vacation.ErrInvalidStatusTransition
	}

	reviewedAt := s.engine.now().UTC()
	request.Status = target
	request.ReviewerID = &session.UserID
	request.ReviewedAt = &reviewedAt
	request.ReviewerNote = trimNote(req.Note)

	reviewed, err := s.VacationRequestRepository.Review(ctx, request)
	if err != nil {
		if errors.Is(err, vacation.ErrRequestAlreadyReviewed) {
			return vacation.VacationRequestResponse{}, err
		}
		return vacation.VacationRequestResponse{}, fmt.Errorf("failed to review vacation request: %w", err)
	}
	if reviewed.ReviewerName == nil {
		reviewed.ReviewerName = &session.Name
	}

	response := mapRequestToResponse(reviewed)

	s.publish(reviewed.RequesterID, vacation.EventReviewed, response)
	slog.Info("vacation request reviewed", "request_id", reviewed.ID, "status", reviewed.Status, "reviewer_id", session.UserID)

	return response, nil
}

// GetRequest implements vacation.VacationService.
func (s *VacationServiceImpl) GetRequest(ctx context.Context, session auth.Session, id string) (vacation.VacationRequestResponse, error) {
	request, err := s.VacationRequestRepository.GetByID(ctx, id)
	if err != nil {
		return vacation.VacationRequestResponse{}, err
	}

	// Requesters only see their own requests
	if request.RequesterID != session.UserID && !session.Can(user.PermissionVacationViewAll) {
		return vacation.VacationRequestResponse{}, vacation.ErrUnauthorizedAccess
	}

	return mapRequestToResponse(request), nil
}

// ListMyRequests implements vacation.VacationService.
func (s *VacationServiceImpl) ListMyRequests(ctx context.Context, session auth.Session, filter vacation.VacationRequestFilter) (vacation.ListVacationRequestResponse, error) {
	filter.RequesterID = &session.UserID
	return s.list(ctx, filter)
}

// ListRequests implements vacation.VacationService.
func (s *VacationServiceImpl) ListRequests(ctx context.Context, filter vacation.VacationRequestFilter) (vacation.ListVacationRequestResponse, error) {
	return s.list(ctx, filter)
}

func (s *VacationServiceImpl) list(ctx context.Context, filter vacation.VacationRequestFilter) (vacation.ListVacationRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return vacation.ListVacationRequestResponse{}, err
	}

	requests, total, err := s.VacationRequestRepository.List(ctx, filter)
	if err != nil {
		return vacation.ListVacationRequestResponse{}, fmt.Errorf("failed to list vacation requests: %w", err)
	}

	return vacation.ListVacationRequestResponse{
		Requests:   mapRequestsToResponse(requests),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// GetMyStats implements vacation.VacationService.
func (s *VacationServiceImpl) GetMyStats(ctx context.Context, session auth.Session) (vacation.StatsResponse, error) {
	history, err := s.VacationRequestRepository.GetByRequesterID(ctx, session.UserID)
	if err != nil {
		return vacation.StatsResponse{}, fmt.Errorf("failed to get vacation history: %w", err)
	}
	return mapStatsToResponse(session.UserID, s.engine.ComputeStats(session.UserID, history)), nil
}

// GetStats implements vacation.VacationService.
func (s *VacationServiceImpl) GetStats(ctx context.Context, requesterID string) (vacation.StatsResponse, error) {
	var history []vacation.VacationRequest

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if _, err := s.UserRepository.GetByID(gctx, requesterID); err != nil {
			return err
		}
		return nil
	})
	g.Go(func() error {
		var err error
		history, err = s.VacationRequestRepository.GetByRequesterID(gctx, requesterID)
		if err != nil {
			return fmt.Errorf("failed to get vacation history: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return vacation.StatsResponse{}, err
	}

	return mapStatsToResponse(requesterID, s.engine.ComputeStats(requesterID, history)), nil
}

// CheckConflict implements vacation.VacationService.
func (s *VacationServiceImpl) CheckConflict(ctx context.Context, req vacation.ConflictCheckRequest) (vacation.ConflictCheckResponse, error) {
	if err := req.Validate(); err != nil {
		return vacation.ConflictCheckResponse{}, err
	}

	start, _ := ParseDate(req.StartDate)
	end, _ := ParseDate(req.EndDate)

	candidates, err := s.VacationRequestRepository.ListOverlapping(ctx, start, end)
	if err != nil {
		return vacation.ConflictCheckResponse{}, fmt.Errorf("failed to list overlapping requests: %w", err)
	}

	exclude := ""
	if req.ExcludeRequestID != nil {
		exclude = *req.ExcludeRequestID
	}
	conflicts := Conflicts(start, end, candidates, exclude)

	return vacation.ConflictCheckResponse{
		HasConflict: len(conflicts) > 0,
		Conflicts:   mapRequestsToResponse(conflicts),
	}, nil
}

// GetCalendar implements vacation.VacationService.
func (s *VacationServiceImpl) GetCalendar(ctx context.Context, req vacation.CalendarRequest) (vacation.CalendarResponse, error) {
	if err := req.Validate(); err != nil {
		return vacation.CalendarResponse{}, err
	}

	first := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	approved, err := s.VacationRequestRepository.ListApprovedBetween(ctx, first, last)
	if err != nil {
		return vacation.CalendarResponse{}, fmt.Errorf("failed to list approved requests: %w", err)
	}

	return vacation.CalendarResponse{
		Year:      req.Year,
		Month:     req.Month,
		Vacations: mapRequestsToResponse(ApprovedInMonth(req.Year, time.Month(req.Month), approved)),
	}, nil
}

// CountPending implements vacation.VacationService.
func (s *VacationServiceImpl) CountPending(ctx context.Context) (int64, error) {
	count, err := s.VacationRequestRepository.CountByStatus(ctx, vacation.StatusPending)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending requests: %w", err)
	}
	return count, nil
}

// GetSummary implements vacation.VacationService.
func (s *VacationServiceImpl) GetSummary(ctx context.Context) (vacation.SummaryResponse, error) {
	var summary vacation.SummaryResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.UserRepository.Count(gctx)
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		summary.TotalEmployees = count
		return nil
	})

	byStatus := map[vacation.Status]*int64{
		vacation.StatusPending:  &summary.Pending,
		vacation.StatusApproved: &summary.Approved,
		vacation.StatusRejected: &summary.Rejected,
	}
	for status, dst := range byStatus {
		g.Go(func() error {
			count, err := s.VacationRequestRepository.CountByStatus(gctx, status)
			if err != nil {
				return fmt.Errorf("failed to count %s requests: %w", status, err)
			}
			*dst = count
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return vacation.SummaryResponse{}, err
	}
	return summary, nil
}

// ListHolidays implements vacation.HolidayService.
func (s *VacationServiceImpl) ListHolidays(ctx context.Context, year int) ([]vacation.HolidayResponse, error) {
	if year == 0 {
		year = s.engine.CurrentReferenceDate().Year()
	}

	holidays, err := s.HolidayRepository.ListByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]vacation.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, mapHolidayToResponse(h))
	}
	return responses, nil
}

// CreateHoliday implements vacation.HolidayService.
func (s *VacationServiceImpl) CreateHoliday(ctx context.Context, req vacation.CreateHolidayRequest) (vacation.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return vacation.HolidayResponse{}, err
	}

	date, _ := ParseDate(req.Date)
	created, err := s.HolidayRepository.Create(ctx, vacation.Holiday{
		ID:   uuid.Must(uuid.NewV7()).String(),
		Date: date,
		Name: strings.TrimSpace(req.Name),
	})
	if err != nil {
		if errors.Is(err, vacation.ErrHolidayExists) {
			return vacation.HolidayResponse{}, err
		}
		return vacation.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return mapHolidayToResponse(created), nil
}

// DeleteHoliday implements vacation.HolidayService.
func (s *VacationServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	return s.HolidayRepository.Delete(ctx, id)
}

func (s *VacationServiceImpl) publish(topic, event string, data interface{}) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(topic, sse.Event{Event: event, Data: data})
}

func trimNote(note *string) *string {
	if note == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*note)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}

func mapRequestToResponse(r vacation.VacationRequest) vacation.VacationRequestResponse {
	return vacation.VacationRequestResponse{
		ID:                    r.ID,
		RequesterID:           r.RequesterID,
		RequesterName:         r.RequesterName,
		RequesterRegistration: r.RequesterRegistration,
		StartDate:             FormatDate(r.StartDate),
		EndDate:               FormatDate(r.EndDate),
		Status:                string(r.Status),
		RequestedAt:           FormatDate(r.RequestedAt),
		RequesterNote:         r.RequesterNote,
		ReviewerID:            r.ReviewerID,
		ReviewerName:          r.ReviewerName,
		ReviewedAt:            r.ReviewedAt,
		ReviewerNote:          r.ReviewerNote,
	}
}

func mapRequestsToResponse(requests []vacation.VacationRequest) []vacation.VacationRequestResponse {
	responses := make([]vacation.VacationRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, mapRequestToResponse(r))
	}
	return responses
}

func mapStatsToResponse(requesterID string, stats vacation.Stats) vacation.StatsResponse {
	return vacation.StatsResponse{
		RequesterID:      requesterID,
		TotalDays:        stats.TotalDays,
		UsedDays:         stats.UsedDays,
		RemainingDays:    stats.RemainingDays,
		NextEligibleDate: formatDatePtr(stats.NextEligibleDate),
		CanRequest:       stats.CanRequest,
		Reason:           stats.Reason,
	}
}

func mapHolidayToResponse(h vacation.Holiday) vacation.HolidayResponse {
	return vacation.HolidayResponse{
		ID:   h.ID,
		Date: FormatDate(h.Date),
		Name: h.Name,
	}
}
