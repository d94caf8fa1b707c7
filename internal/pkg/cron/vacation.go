package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/sse"
)

// PendingReminder is the payload of a vacation.pending_reminder event.
type PendingReminder struct {
	PendingCount int64     `json:"pending_count"`
	CheckedAt    time.Time `json:"checked_at"`
}

// VacationJobs contains vacation-related cron jobs
type VacationJobs struct {
	vacationService vacation.VacationService
	publisher       vacation.Publisher
	now             func() time.Time
}

func NewVacationJobs(vacationService vacation.VacationService, publisher vacation.Publisher) *VacationJobs {
	return &VacationJobs{
		vacationService: vacationService,
		publisher:       publisher,
		now:             time.Now,
	}
}

// RegisterJobs registers all vacation-related cron jobs
func (j *VacationJobs) RegisterJobs(scheduler *Scheduler, reminderInterval time.Duration) {
	scheduler.AddJob("remind_pending_vacation_reviews", reminderInterval, j.RemindPendingReviews)
}

// RemindPendingReviews tells connected managers how many requests await review.
func (j *VacationJobs) RemindPendingReviews(ctx context.Context) error {
	count, err := j.vacationService.CountPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to count pending requests: %w", err)
	}

	if count == 0 {
		slog.Debug("Cron: No pending vacation requests")
		return nil
	}

	j.publisher.Publish(vacation.ManagersTopic, sse.Event{
		Event: vacation.EventPendingReminder,
		Data: PendingReminder{
			PendingCount: count,
			CheckedAt:    j.now().UTC(),
		},
	})
	slog.Info("Cron: Reminded managers of pending vacation requests", "count", count)
	return nil
}
