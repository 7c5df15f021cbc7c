package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lockerhub/locker-system/internal/core/domain"
)

// PaymentRepository implements ports.PaymentRepository over SQLite.
type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `id, user_id, borrow_id, amount, currency, status, created_at, updated_at`

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (user_id, borrow_id, amount, currency, status, created_at, updated_at) VALUES (?,?,?,?,?,?,?)`,
		p.UserID, nullInt64(p.BorrowID), p.Amount, p.Currency, string(p.Status), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *PaymentRepository) FindByID(ctx context.Context, id int64) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = ?`, id)
	p, err := scanPayment(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return p, nil
}

func (r *PaymentRepository) List(ctx context.Context, userID int64) ([]*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `SELECT ` + paymentColumns + ` FROM payments`
	args := []any{}
	if userID != 0 {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PaymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE payments SET amount = ?, status = ?, updated_at = ? WHERE id = ?`,
		p.Amount, string(p.Status), p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

func scanPayment(scan func(...any) error) (*domain.Payment, error) {
	var (
		p      domain.Payment
		borrow sql.NullInt64
		status string
	)
	if err := scan(&p.ID, &p.UserID, &borrow, &p.Amount, &p.Currency, &status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if borrow.Valid {
		v := borrow.Int64
		p.BorrowID = &v
	}
	p.Status = domain.PaymentStatus(status)
	return &p, nil
}
