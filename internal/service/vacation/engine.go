package vacation

import (
	"slices"
	"time"

	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/validator"
)

const (
	reasonNotNextDay = "vacation must start at least the next day"
	day              = 24 * time.Hour
)

// Engine evaluates the vacation rules against the organization's calendar.
// It holds configuration only; request history is always passed in.
type Engine struct {
	loc        *time.Location
	now        func() time.Time
	annualDays int
}

type EngineOption func(*Engine)

// WithClock replaces time.Now as the source of the current instant.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

func WithAnnualDays(days int) EngineOption {
	return func(e *Engine) {
		if days > 0 {
			e.annualDays = days
		}
	}
}

func NewEngine(loc *time.Location, opts ...EngineOption) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	e := &Engine{
		loc:        loc,
		now:        time.Now,
		annualDays: vacation.DefaultAnnualDays,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CurrentReferenceDate returns today in the reference timezone, as a calendar
// date at UTC midnight.
func (e *Engine) CurrentReferenceDate() time.Time {
	return CivilDate(e.now().In(e.loc))
}

// At pins the rules to a given today. One logical operation should evaluate
// every check on the same Rules value.
func (e *Engine) At(today time.Time) Rules {
	return Rules{today: CivilDate(today), annualDays: e.annualDays}
}

// Now is At(CurrentReferenceDate()).
func (e *Engine) Now() Rules {
	return e.At(e.CurrentReferenceDate())
}

func (e *Engine) ValidateStartDate(startDate string) vacation.ValidationResult {
	return e.Now().ValidateStartDate(startDate)
}

func (e *Engine) CheckEligibility(requesterID string, history []vacation.VacationRequest) vacation.EligibilityResult {
	return e.Now().CheckEligibility(requesterID, history)
}

func (e *Engine) ComputeStats(requesterID string, history []vacation.VacationRequest) vacation.Stats {
	return e.Now().ComputeStats(requesterID, history)
}

// Rules is the rule set evaluated against a fixed today.
type Rules struct {
	today      time.Time
	annualDays int
	holidays   map[string]string
}

func (r Rules) Today() time.Time {
	return r.today
}

// WithHolidays returns a copy of r that also rejects start dates falling on
// one of the given holidays.
func (r Rules) WithHolidays(holidays []vacation.Holiday) Rules {
	set := make(map[string]string, len(r.holidays)+len(holidays))
	for k, v := range r.holidays {
		set[k] = v
	}
	for _, h := range holidays {
		set[FormatDate(h.Date)] = h.Name
	}
	r.holidays = set
	return r
}

// ValidateStartDate applies the start date rules in order; the first failure wins.
func (r Rules) ValidateStartDate(startDate string) vacation.ValidationResult {
	start, ok := ParseDate(startDate)
	if !ok {
		return invalid(vacation.KindInvalidDate, vacation.ErrInvalidDate.Error())
	}

	if !start.After(r.today) {
		return invalid(vacation.KindPastOrPresentDate, vacation.ErrPastOrPresentDate.Error())
	}

	if IsForbiddenStartDay(start) {
		return invalid(vacation.KindForbiddenStartDay, vacation.ErrForbiddenStartDay.Error())
	}

	if _, holiday := r.holidays[FormatDate(start)]; holiday {
		return invalid(vacation.KindHolidayStartDay, vacation.ErrHolidayStartDay.Error())
	}

	// Kept separate from the strict-after check above.
	if start.Before(r.today.AddDate(0, 0, 1)) {
		return invalid(vacation.KindPastOrPresentDate, reasonNotNextDay)
	}

	return vacation.ValidationResult{Valid: true}
}

// CheckEligibility applies the cooldown after the latest approved vacation,
// then the single open request rule.
func (r Rules) CheckEligibility(requesterID string, history []vacation.VacationRequest) vacation.EligibilityResult {
	if last, ok := LatestApproved(requesterID, history); ok {
		end := CivilDate(last.EndDate)
		since := DaysBetween(end, r.today)
		if since < vacation.CooldownDays {
			next := NextEligibleDate(end)
			return vacation.EligibilityResult{
				Eligible:          false,
				Kind:              vacation.KindIneligibleWindow,
				Reason:            vacation.ErrIneligibleWindow.Error(),
				NextEligibleDate:  &next,
				DaysUntilEligible: vacation.CooldownDays - since,
			}
		}
	}

	for _, req := range history {
		if req.RequesterID == requesterID && req.Status == vacation.StatusPending {
			return vacation.EligibilityResult{
				Eligible: false,
				Kind:     vacation.KindPendingExists,
				Reason:   vacation.ErrPendingExists.Error(),
			}
		}
	}

	return vacation.EligibilityResult{Eligible: true}
}

// ComputeStats aggregates the requester's entitlement for the reference year.
func (r Rules) ComputeStats(requesterID string, history []vacation.VacationRequest) vacation.Stats {
	used := 0
	for _, req := range history {
		if req.RequesterID != requesterID || req.Status != vacation.StatusApproved {
			continue
		}
		if req.StartDate.Year() == r.today.Year() {
			used += vacation.VacationLengthDays
		}
	}

	stats := vacation.Stats{
		TotalDays:     r.annualDays,
		UsedDays:      used,
		RemainingDays: max(0, r.annualDays-used),
	}

	if last, ok := LatestApproved(requesterID, history); ok {
		next := NextEligibleDate(last.EndDate)
		stats.NextEligibleDate = &next
	}

	eligibility := r.CheckEligibility(requesterID, history)
	stats.CanRequest = eligibility.Eligible
	stats.Reason = eligibility.Reason

	return stats
}

// ComputeEndDate returns the last day of a vacation starting on startDate, or
// "" when startDate is not a valid YYYY-MM-DD date.
func ComputeEndDate(startDate string) string {
	start, ok := ParseDate(startDate)
	if !ok {
		return ""
	}
	return FormatDate(EndDate(start))
}

func EndDate(start time.Time) time.Time {
	return CivilDate(start).AddDate(0, 0, vacation.VacationLengthDays-1)
}

func NextEligibleDate(lastEnd time.Time) time.Time {
	return CivilDate(lastEnd).AddDate(0, 0, vacation.CooldownDays)
}

// HasConflict reports whether [startDate, endDate] overlaps any non-rejected
// request other than excludeRequestID. Unparseable bounds never conflict.
func HasConflict(startDate, endDate string, history []vacation.VacationRequest, excludeRequestID string) bool {
	start, ok := ParseDate(startDate)
	if !ok {
		return false
	}
	end, ok := ParseDate(endDate)
	if !ok {
		return false
	}
	return len(Conflicts(start, end, history, excludeRequestID)) > 0
}

// Conflicts returns the requests HasConflict would match.
func Conflicts(start, end time.Time, history []vacation.VacationRequest, excludeRequestID string) []vacation.VacationRequest {
	start, end = CivilDate(start), CivilDate(end)

	var conflicts []vacation.VacationRequest
	for _, req := range history {
		if req.Status == vacation.StatusRejected {
			continue
		}
		if excludeRequestID != "" && req.ID == excludeRequestID {
			continue
		}
		if overlaps(start, end, CivilDate(req.StartDate), CivilDate(req.EndDate)) {
			conflicts = append(conflicts, req)
		}
	}
	return conflicts
}

// ApprovedInMonth returns approved requests overlapping the calendar month,
// ordered by start date.
func ApprovedInMonth(year int, month time.Month, history []vacation.VacationRequest) []vacation.VacationRequest {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	var inMonth []vacation.VacationRequest
	for _, req := range history {
		if req.Status != vacation.StatusApproved {
			continue
		}
		if overlaps(first, last, CivilDate(req.StartDate), CivilDate(req.EndDate)) {
			inMonth = append(inMonth, req)
		}
	}
	slices.SortStableFunc(inMonth, func(a, b vacation.VacationRequest) int {
		return a.StartDate.Compare(b.StartDate)
	})
	return inMonth
}

// CanTransition encodes pending -> approved | rejected; both are terminal.
func CanTransition(from, to vacation.Status) bool {
	return from == vacation.StatusPending && (to == vacation.StatusApproved || to == vacation.StatusRejected)
}

// LatestApproved picks the requester's approved request with the latest end
// date, preferring the most recently requested on ties.
func LatestApproved(requesterID string, history []vacation.VacationRequest) (vacation.VacationRequest, bool) {
	var latest vacation.VacationRequest
	found := false
	for _, req := range history {
		if req.RequesterID != requesterID || req.Status != vacation.StatusApproved {
			continue
		}
		if !found {
			latest, found = req, true
			continue
		}
		switch CivilDate(req.EndDate).Compare(CivilDate(latest.EndDate)) {
		case 1:
			latest = req
		case 0:
			if req.RequestedAt.After(latest.RequestedAt) {
				latest = req
			}
		}
	}
	return latest, found
}

func IsForbiddenStartDay(date time.Time) bool {
	switch date.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	}
	return false
}

// CivilDate drops the time of day, keeping the calendar date as seen in t's
// location, and returns it at UTC midnight so day arithmetic ignores DST.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole days from a to b; negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(CivilDate(b).Sub(CivilDate(a)) / day)
}

func ParseDate(s string) (time.Time, bool) {
	return validator.IsValidDate(s)
}

func FormatDate(t time.Time) string {
	return t.Format(validator.DateLayout)
}

func overlaps(start, end, otherStart, otherEnd time.Time) bool {
	return !start.After(otherEnd) && !end.Before(otherStart)
}

func invalid(kind vacation.RuleKind, reason string) vacation.ValidationResult {
	return vacation.ValidationResult{Valid: false, Kind: kind, Reason: reason}
}
