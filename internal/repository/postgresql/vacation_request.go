package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

const vacationRequestColumns = `
	vr.id, vr.requester_id, vr.start_date, vr.end_date, vr.status, vr.requested_at,
	vr.requester_note, vr.reviewer_id, vr.reviewed_at, vr.reviewer_note,
	vr.created_at, vr.updated_at,
	u.name AS requester_name, u.registration_number AS requester_registration,
	rv.name AS reviewer_name
`

const vacationRequestFrom = `
	FROM vacation_requests vr
	JOIN users u ON vr.requester_id = u.id
	LEFT JOIN users rv ON vr.reviewer_id = rv.id
`

// sortColumns whitelists the ORDER BY targets accepted from the filter.
var sortColumns = map[string]string{
	"requested_at":   "vr.requested_at",
	"start_date":     "vr.start_date",
	"status":         "vr.status",
	"requester_name": "u.name",
}

type vacationRequestRepositoryImpl struct {
	db *database.DB
}

func NewVacationRequestRepository(db *database.DB) vacation.VacationRequestRepository {
	return &vacationRequestRepositoryImpl{db: db}
}

func scanVacationRequest(row pgx.Row) (vacation.VacationRequest, error) {
	var req vacation.VacationRequest
	err := row.Scan(
		&req.ID, &req.RequesterID, &req.StartDate, &req.EndDate, &req.Status, &req.RequestedAt,
		&req.RequesterNote, &req.ReviewerID, &req.ReviewedAt, &req.ReviewerNote,
		&req.CreatedAt, &req.UpdatedAt,
		&req.RequesterName, &req.RequesterRegistration,
		&req.ReviewerName,
	)
	return req, err
}

func (r *vacationRequestRepositoryImpl) queryList(ctx context.Context, query string, args ...interface{}) ([]vacation.VacationRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]vacation.VacationRequest, 0)
	for rows.Next() {
		req, err := scanVacationRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

// Create implements vacation.VacationRequestRepository.
func (r *vacationRequestRepositoryImpl) Create(ctx context.Context, request vacation.VacationRequest) (vacation.VacationRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO vacation_requests (
			id, requester_id, start_date, end_date, status, requested_at, requester_note,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID, request.RequesterID, request.StartDate, request.EndDate,
		request.Status, request.RequestedAt, request.RequesterNote,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return vacation.VacationRequest{}, &vacation.RuleError{
				Kind:   vacation.KindPendingExists,
				Reason: vacation.ErrPendingExists.Error(),
			}
		}
		return vacation.VacationRequest{}, err
	}

	return request, nil
}

// GetByID implements vacation.VacationRequestRepository.
func (r *vacationRequestRepositoryImpl) GetByID(ctx context.Context, id string) (vacation.VacationRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + vacationRequestColumns + vacationRequestFrom + " WHERE vr.id = $1"

	req, err := scanVacationRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return vacation.VacationRequest{}, vacation.ErrRequestNotFound
		}
		return vacation.VacationRequest{}, err
	}
	return req, nil
}

// GetByRequesterID implements vacation.VacationRequestRepository.
func (r *vacationRequestRepositoryImpl) GetByRequesterID(ctx context.Context, requesterID string) ([]vacation.VacationRequest, error) {
	query := "SELECT " + vacationRequestColumns + vacationRequestFrom + `
		WHERE vr.requester_id = $1
		ORDER BY vr.requested_at DESC, vr.created_at DESC
	`
	return r.queryList(ctx, query, requesterID)
}

// List implements vacation.VacationRequestRepository.
func (r *vacationRequestRepositoryImpl) List(ctx context.Context, filter vacation.VacationRequestFilter) ([]vacation.VacationRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if filter.Search != nil {
		if search := strings.TrimSpace(*filter.Search); search != "" {
			conditions = append(conditions, fmt.Sprintf("(u.name ILIKE $%d OR u.registration_number ILIKE $%d)", argIndex, argIndex))
			args = append(args, "%"+search+"%")
			argIndex++
		}
	}

	if filter.RequesterID != nil {
		conditions = append(conditions, fmt.Sprintf("vr.requester_id = $%d", argIndex))
		args = append(args, *filter.RequesterID)
		argIndex++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("vr.status = $%d", argIndex))
		args = append(args, *filter.Status)
		argIndex++
	}

	if filter.StartDate != nil {
		if start, ok := validator.IsValidDate(*filter.StartDate); ok {
			conditions = append(conditions, fmt.Sprintf("vr.end_date >= $%d", argIndex))
			args = append(args, start)
			argIndex++
		}
	}

	if filter.EndDate != nil {
		if end, ok := validator.IsValidDate(*filter.EndDate); ok {
			conditions = append(conditions, fmt.Sprintf("vr.start_date <= $%d", argIndex))
			args = append(args, end)
			argIndex++
		}
	}

	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	// Count total
	countQuery := "SELECT COUNT(*)" + vacationRequestFrom + whereClause

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	// Sorting
	sortColumn, ok := sortColumns[filter.SortBy]
	if !ok {
		sortColumn = sortColumns["requested_at"]
	}
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	// Pagination
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`SELECT %s %s %s
		ORDER BY %s %s, vr.id %s
		LIMIT $%d OFFSET $%d
	`, vacationRequestColumns, vacationRequestFrom, whereClause,
		sortColumn, sortOrder, sortOrder,
		argIndex, argIndex+1)
	args = append(args, filter.Limit, offset)

	requests, err := r.queryList(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// ListOverlapping implements vacation.VacationRequestRepository.
func (r *vacationRequestRepositoryImpl) ListOverlapping(ctx context.Context, start, end time.Time) ([]vacation.VacationRequest, error) {
	query := "SELECT " + vacationRequestColumns + vacationRequestFrom + `
		WHERE vr.start_date <= $2 AND vr.end_date >= $1 AND vr.status <> 'rejected'
		ORDER BY vr.start_date ASC
	`
	return r.queryList(ctx, query, start, end)
}

// ListApprovedBetween implements vacation.VacationRequestRepository.
func (r *vacationRequestRepositoryImpl) ListApprovedBetween(ctx context.Context, start, end time.Time) ([]vacation.VacationRequest, error) {
	query := "SELECT " + vacationRequestColumns + vacationRequestFrom + `
		WHERE vr.start_date <= $2 AND vr.end_date >= $1 AND vr.status = 'approved'
		ORDER BY vr.start_date ASC
	`
	return r.queryList(ctx, query, start, end)
}

// Review implements vacation.VacationRequestRepository. Only a pending row is
// updated.
func (r *vacationRequestRepositoryImpl) Review(ctx context.Context, request vacation.VacationRequest) (vacation.VacationRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE vacation_requests
		SET status = $1, reviewer_id = $2, reviewed_at = $3, reviewer_note = $4, updated_at = NOW()
		WHERE id = $5 AND status = 'pending'
	`

	commandTag, err := q.Exec(ctx, query,
		request.Status, request.ReviewerID, request.ReviewedAt, request.ReviewerNote, request.ID,
	)
	if err != nil {
		return vacation.VacationRequest{}, err
	}
	if commandTag.RowsAffected() != 1 {
		if _, err := r.GetByID(ctx, request.ID); err != nil {
			return vacation.VacationRequest{}, err
		}
		return vacation.VacationRequest{}, vacation.ErrRequestAlreadyReviewed
	}

	return r.GetByID(ctx, request.ID)
}

// CountByStatus implements vacation.VacationRequestRepository.
func (r *vacationRequestRepositoryImpl) CountByStatus(ctx context.Context, status vacation.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM vacation_requests WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
