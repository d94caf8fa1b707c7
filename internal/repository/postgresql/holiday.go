package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) vacation.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// Create implements vacation.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, holiday vacation.Holiday) (vacation.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (id, date, name, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`
	err := q.QueryRow(ctx, query, holiday.ID, holiday.Date, holiday.Name).Scan(&holiday.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return vacation.Holiday{}, vacation.ErrHolidayExists
		}
		return vacation.Holiday{}, err
	}
	return holiday, nil
}

// GetByID implements vacation.HolidayRepository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id string) (vacation.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	var h vacation.Holiday
	err := q.QueryRow(ctx, `SELECT id, date, name, created_at FROM holidays WHERE id = $1`, id).
		Scan(&h.ID, &h.Date, &h.Name, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return vacation.Holiday{}, vacation.ErrHolidayNotFound
		}
		return vacation.Holiday{}, err
	}
	return h, nil
}

// ListByYear implements vacation.HolidayRepository.
func (r *holidayRepositoryImpl) ListByYear(ctx context.Context, year int) ([]vacation.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	rows, err := q.Query(ctx, `
		SELECT id, date, name, created_at
		FROM holidays
		WHERE date >= $1 AND date < $2
		ORDER BY date ASC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays := make([]vacation.Holiday, 0)
	for rows.Next() {
		var h vacation.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.CreatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// Delete implements vacation.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return vacation.ErrHolidayNotFound
	}
	return nil
}
