package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lockerhub/locker-system/internal/core/domain"
)

// LockerRepository implements ports.LockerRepository over SQLite.
type LockerRepository struct {
	db *sql.DB
}

func NewLockerRepository(db *sql.DB) *LockerRepository {
	return &LockerRepository{db: db}
}

const lockerColumns = `id, number, location, status, created_at, updated_at`

func (r *LockerRepository) Create(ctx context.Context, locker *domain.Locker) (*domain.Locker, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO lockers (number, location, status, created_at, updated_at) VALUES (?,?,?,?,?)`,
		locker.Number, locker.Location, string(locker.Status), locker.CreatedAt, locker.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrLockerExists
		}
		return nil, fmt.Errorf("insert locker: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *LockerRepository) FindByID(ctx context.Context, id int64) (*domain.Locker, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var (
		l      domain.Locker
		status string
	)
	err := r.db.QueryRowContext(ctx, `SELECT `+lockerColumns+` FROM lockers WHERE id = ?`, id).
		Scan(&l.ID, &l.Number, &l.Location, &status, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLockerNotFound
		}
		return nil, fmt.Errorf("find locker: %w", err)
	}
	l.Status = domain.LockerStatus(status)
	return &l, nil
}

func (r *LockerRepository) List(ctx context.Context) ([]*domain.Locker, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+lockerColumns+` FROM lockers ORDER BY number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lockers []*domain.Locker
	for rows.Next() {
		var (
			l      domain.Locker
			status string
		)
		if err := rows.Scan(&l.ID, &l.Number, &l.Location, &status, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		l.Status = domain.LockerStatus(status)
		lockers = append(lockers, &l)
	}
	return lockers, rows.Err()
}

func (r *LockerRepository) Update(ctx context.Context, locker *domain.Locker) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE lockers SET number = ?, location = ?, status = ?, updated_at = ? WHERE id = ?`,
		locker.Number, locker.Location, string(locker.Status), locker.UpdatedAt, locker.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrLockerExists
		}
		return fmt.Errorf("update locker: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrLockerNotFound
	}
	return nil
}

// SetStatus flips the status only when the current value matches from. The
// conditional update makes open/close race-safe without row locks.
func (r *LockerRepository) SetStatus(ctx context.Context, id int64, from, to domain.LockerStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE lockers SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = ?`,
		string(to), id, string(from))
	if err != nil {
		return fmt.Errorf("set locker status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int64
		if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM lockers WHERE id = ?`, id).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return domain.ErrLockerNotFound
		}
		return domain.ErrLockerUnavailable
	}
	return nil
}

func (r *LockerRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var refs int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM borrows WHERE locker_id = ?`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrRecordInUse
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM lockers WHERE id = ?`, id)
	if err != nil {
		if isFKViolation(err) {
			return domain.ErrRecordInUse
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrLockerNotFound
	}
	return nil
}

func (r *LockerRepository) CountByStatus(ctx context.Context) (map[domain.LockerStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM lockers GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[domain.LockerStatus]int64{}
	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[domain.LockerStatus(status)] = n
	}
	return out, rows.Err()
}
