package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lockerhub/locker-system/internal/core/domain"
)

// ReservationRepository implements ports.ReservationRepository over SQLite.
type ReservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationColumns = `id, user_id, item_id, locker_id, status, reserved_at, created_at, updated_at`

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO reservations (user_id, item_id, locker_id, status, reserved_at, created_at, updated_at) VALUES (?,?,?,?,?,?,?)`,
		res.UserID, res.ItemID, nullInt64(res.LockerID), string(res.Status), res.ReservedAt, res.CreatedAt, res.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert reservation: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *ReservationRepository) FindByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id)
	res, err := scanReservation(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	return res, nil
}

func (r *ReservationRepository) List(ctx context.Context, userID int64) ([]*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `SELECT ` + reservationColumns + ` FROM reservations`
	args := []any{}
	if userID != 0 {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY reserved_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *ReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET locker_id = ?, status = ?, updated_at = ? WHERE id = ?`,
		nullInt64(res.LockerID), string(res.Status), res.UpdatedAt, res.ID)
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func scanReservation(scan func(...any) error) (*domain.Reservation, error) {
	var (
		res    domain.Reservation
		locker sql.NullInt64
		status string
	)
	if err := scan(&res.ID, &res.UserID, &res.ItemID, &locker, &status, &res.ReservedAt, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return nil, err
	}
	if locker.Valid {
		v := locker.Int64
		res.LockerID = &v
	}
	res.Status = domain.ReservationStatus(status)
	return &res, nil
}

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}
