package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type VacationHandler interface {
	Preview(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	MyStats(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)

	List(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	CheckConflicts(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type VacationHandlerImpl struct {
	vacationService vacation.VacationService
}

func NewVacationHandler(vacationService vacation.VacationService) VacationHandler {
	return &VacationHandlerImpl{vacationService: vacationService}
}

// Preview implements VacationHandler.
func (h *VacationHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req vacation.PreviewVacationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("PreviewVacation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	preview, err := h.vacationService.PreviewRequest(r.Context(), session, req)
	if err != nil {
		slog.Error("PreviewVacation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, preview)
}

// Create implements VacationHandler.
func (h *VacationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req vacation.CreateVacationRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateVacation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.vacationService.SubmitRequest(r.Context(), session, req)
	if err != nil {
		slog.Error("CreateVacation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Vacation request submitted successfully", created)
}

// ListMy implements VacationHandler.
func (h *VacationHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	result, err := h.vacationService.ListMyRequests(r.Context(), session, parseFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Requests, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

// MyStats implements VacationHandler.
func (h *VacationHandlerImpl) MyStats(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	stats, err := h.vacationService.GetMyStats(r.Context(), session)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// Get implements VacationHandler.
func (h *VacationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid vacation request ID", nil)
		return
	}

	request, err := h.vacationService.GetRequest(r.Context(), session, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, request)
}

// List implements VacationHandler.
func (h *VacationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r)
	filter.RequesterID = optionalQueryParam(r, "requester_id")

	result, err := h.vacationService.ListRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Requests, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

// Review implements VacationHandler.
func (h *VacationHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req vacation.ReviewVacationRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ReviewVacation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	reviewed, err := h.vacationService.ReviewRequest(r.Context(), session, req)
	if err != nil {
		slog.Error("ReviewVacation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vacation request "+reviewed.Status, reviewed)
}

// Stats implements VacationHandler.
func (h *VacationHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	requesterID := chi.URLParam(r, "requesterID")
	if requesterID == "" {
		response.BadRequest(w, "Requester ID is required", nil)
		return
	}

	stats, err := h.vacationService.GetStats(r.Context(), requesterID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// CheckConflicts implements VacationHandler.
func (h *VacationHandlerImpl) CheckConflicts(w http.ResponseWriter, r *http.Request) {
	var req vacation.ConflictCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckConflicts decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.vacationService.CheckConflict(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Calendar implements VacationHandler.
func (h *VacationHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	req := vacation.CalendarRequest{
		Year:  getIntQueryParam(r, "year", 0),
		Month: getIntQueryParam(r, "month", 0),
	}

	calendar, err := h.vacationService.GetCalendar(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, calendar)
}

// Summary implements VacationHandler.
func (h *VacationHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.vacationService.GetSummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

func parseFilter(r *http.Request) vacation.VacationRequestFilter {
	return vacation.VacationRequestFilter{
		Search:    optionalQueryParam(r, "search"),
		Status:    optionalQueryParam(r, "status"),
		StartDate: optionalQueryParam(r, "start_date"),
		EndDate:   optionalQueryParam(r, "end_date"),
		Page:      getIntQueryParam(r, "page", 1),
		Limit:     getIntQueryParam(r, "limit", 20),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}
}
