package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lockerhub/locker-system/internal/core/domain"
	"github.com/lockerhub/locker-system/internal/core/ports"
)

// BorrowRepository implements ports.BorrowRepository over SQLite.
//
// Borrow and Return each run inside one transaction built from conditional
// updates (quantity > 0, status = 'available'). RowsAffected tells the two
// racing callers apart: exactly one commit wins for a quantity-1 item, the
// other rolls back with a conflict error.
type BorrowRepository struct {
	db *sql.DB
}

func NewBorrowRepository(db *sql.DB) *BorrowRepository {
	return &BorrowRepository{db: db}
}

func (r *BorrowRepository) Borrow(ctx context.Context, userID, itemID, lockerID int64, at time.Time) (*domain.Borrow, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var userCount int64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE id = ?`, userID).Scan(&userCount); err != nil {
		return nil, err
	}
	if userCount == 0 {
		return nil, domain.ErrUserNotFound
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE items SET quantity = quantity - 1, updated_at = ? WHERE id = ? AND quantity > 0`, at, itemID)
	if err != nil {
		return nil, fmt.Errorf("decrement item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int64
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM items WHERE id = ?`, itemID).Scan(&exists); err != nil {
			return nil, err
		}
		if exists == 0 {
			return nil, domain.ErrItemNotFound
		}
		return nil, domain.ErrItemUnavailable
	}

	res, err = tx.ExecContext(ctx,
		`UPDATE lockers SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		string(domain.LockerOccupied), at, lockerID, string(domain.LockerAvailable))
	if err != nil {
		return nil, fmt.Errorf("occupy locker: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int64
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM lockers WHERE id = ?`, lockerID).Scan(&exists); err != nil {
			return nil, err
		}
		if exists == 0 {
			return nil, domain.ErrLockerNotFound
		}
		return nil, domain.ErrLockerUnavailable
	}

	res, err = tx.ExecContext(ctx,
		`INSERT INTO borrows (user_id, item_id, locker_id, borrowed_at) VALUES (?,?,?,?)`,
		userID, itemID, lockerID, at)
	if err != nil {
		return nil, fmt.Errorf("insert borrow: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &domain.Borrow{
		ID:         id,
		UserID:     userID,
		ItemID:     itemID,
		LockerID:   lockerID,
		BorrowedAt: at,
	}, nil
}

func (r *BorrowRepository) Return(ctx context.Context, borrowID int64, at time.Time) (*domain.Borrow, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var (
		b        domain.Borrow
		returned sql.NullTime
	)
	err = tx.QueryRowContext(ctx,
		`SELECT id, user_id, item_id, locker_id, borrowed_at, returned_at FROM borrows WHERE id = ?`, borrowID).
		Scan(&b.ID, &b.UserID, &b.ItemID, &b.LockerID, &b.BorrowedAt, &returned)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBorrowNotFound
		}
		return nil, err
	}
	if returned.Valid {
		return nil, domain.ErrAlreadyReturned
	}

	// Conditional on returned_at IS NULL so a racing double-return loses.
	res, err := tx.ExecContext(ctx,
		`UPDATE borrows SET returned_at = ? WHERE id = ? AND returned_at IS NULL`, at, borrowID)
	if err != nil {
		return nil, fmt.Errorf("stamp return: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrAlreadyReturned
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE items SET quantity = quantity + 1, updated_at = ? WHERE id = ?`, at, b.ItemID); err != nil {
		return nil, fmt.Errorf("restore item quantity: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE lockers SET status = ?, updated_at = ? WHERE id = ?`,
		string(domain.LockerAvailable), at, b.LockerID); err != nil {
		return nil, fmt.Errorf("free locker: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	b.ReturnedAt = &at
	return &b, nil
}

func (r *BorrowRepository) FindByID(ctx context.Context, id int64) (*domain.Borrow, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var (
		b        domain.Borrow
		returned sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, item_id, locker_id, borrowed_at, returned_at FROM borrows WHERE id = ?`, id).
		Scan(&b.ID, &b.UserID, &b.ItemID, &b.LockerID, &b.BorrowedAt, &returned)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBorrowNotFound
		}
		return nil, err
	}
	if returned.Valid {
		t := returned.Time
		b.ReturnedAt = &t
	}
	return &b, nil
}

func (r *BorrowRepository) List(ctx context.Context, filter ports.ListBorrowsFilter) ([]*domain.Borrow, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	where := ` WHERE 1=1`
	args := []any{}
	if filter.UserID != 0 {
		where += ` AND user_id = ?`
		args = append(args, filter.UserID)
	}
	if filter.ActiveOnly {
		where += ` AND returned_at IS NULL`
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM borrows`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 100
	}
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, item_id, locker_id, borrowed_at, returned_at FROM borrows`+where+
			` ORDER BY borrowed_at DESC, id DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var borrows []*domain.Borrow
	for rows.Next() {
		var (
			b        domain.Borrow
			returned sql.NullTime
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.ItemID, &b.LockerID, &b.BorrowedAt, &returned); err != nil {
			return nil, 0, err
		}
		if returned.Valid {
			t := returned.Time
			b.ReturnedAt = &t
		}
		borrows = append(borrows, &b)
	}
	return borrows, total, rows.Err()
}

func (r *BorrowRepository) ListActive(ctx context.Context) ([]*ports.ActiveBorrowRow, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
        SELECT b.id, u.username, i.name, l.number, b.borrowed_at
        FROM borrows b
        JOIN users u ON u.id = b.user_id
        JOIN items i ON i.id = b.item_id
        JOIN lockers l ON l.id = b.locker_id
        WHERE b.returned_at IS NULL
        ORDER BY b.borrowed_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*ports.ActiveBorrowRow
	for rows.Next() {
		var row ports.ActiveBorrowRow
		if err := rows.Scan(&row.BorrowID, &row.Username, &row.ItemName, &row.LockerNum, &row.BorrowedAt); err != nil {
			return nil, err
		}
		out = append(out, &row)
	}
	return out, rows.Err()
}

func (r *BorrowRepository) CountActive(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM borrows WHERE returned_at IS NULL`).Scan(&n)
	return n, err
}
