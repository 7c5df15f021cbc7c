package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/lockerhub/locker-system/internal/core/domain"
	"github.com/lockerhub/locker-system/internal/core/ports"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedBorrowFixture(t *testing.T, db *sql.DB, quantity, lockers int) {
	t.Helper()
	now := time.Now().UTC()
	if _, err := db.Exec(
		`INSERT INTO users (id, username, password_hash, role, created_at, updated_at) VALUES (1, 'alice', 'x', 'user', ?, ?)`,
		now, now); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if _, err := db.Exec(
		`INSERT INTO items (id, name, quantity, created_at, updated_at) VALUES (1, 'Charger', ?, ?, ?)`,
		quantity, now, now); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	for i := 1; i <= lockers; i++ {
		if _, err := db.Exec(
			`INSERT INTO lockers (id, number, status, created_at, updated_at) VALUES (?, ?, 'available', ?, ?)`,
			i, "A-0"+string(rune('0'+i)), now, now); err != nil {
			t.Fatalf("seed locker %d: %v", i, err)
		}
	}
}

func itemQuantity(t *testing.T, db *sql.DB, id int64) int {
	t.Helper()
	var q int
	if err := db.QueryRow(`SELECT quantity FROM items WHERE id = ?`, id).Scan(&q); err != nil {
		t.Fatalf("read quantity: %v", err)
	}
	return q
}

func lockerStatus(t *testing.T, db *sql.DB, id int64) string {
	t.Helper()
	var s string
	if err := db.QueryRow(`SELECT status FROM lockers WHERE id = ?`, id).Scan(&s); err != nil {
		t.Fatalf("read status: %v", err)
	}
	return s
}

// A quantity-2 item supports exactly two borrows; the third is a conflict,
// and a return makes room again.
func TestBorrowRepository_QuantityExhaustion(t *testing.T) {
	db := openTestDB(t)
	seedBorrowFixture(t, db, 2, 3)
	repo := NewBorrowRepository(db)
	ctx := context.Background()

	b1, err := repo.Borrow(ctx, 1, 1, 1, time.Now().UTC())
	if err != nil {
		t.Fatalf("first borrow: %v", err)
	}
	if _, err := repo.Borrow(ctx, 1, 1, 2, time.Now().UTC()); err != nil {
		t.Fatalf("second borrow: %v", err)
	}
	if _, err := repo.Borrow(ctx, 1, 1, 3, time.Now().UTC()); !errors.Is(err, domain.ErrItemUnavailable) {
		t.Fatalf("expected ErrItemUnavailable, got %v", err)
	}
	if q := itemQuantity(t, db, 1); q != 0 {
		t.Fatalf("expected quantity 0, got %d", q)
	}

	if _, err := repo.Return(ctx, b1.ID, time.Now().UTC()); err != nil {
		t.Fatalf("return: %v", err)
	}
	if q := itemQuantity(t, db, 1); q != 1 {
		t.Fatalf("expected quantity restored to 1, got %d", q)
	}
	if s := lockerStatus(t, db, 1); s != "available" {
		t.Fatalf("expected locker 1 available after return, got %s", s)
	}

	if _, err := repo.Borrow(ctx, 1, 1, 3, time.Now().UTC()); err != nil {
		t.Fatalf("borrow after return: %v", err)
	}
}

// Borrowing into an occupied locker must fail and leave the item quantity
// untouched: the whole transaction rolls back.
func TestBorrowRepository_LockerConflictRollsBack(t *testing.T) {
	db := openTestDB(t)
	seedBorrowFixture(t, db, 5, 1)
	repo := NewBorrowRepository(db)
	ctx := context.Background()

	if _, err := repo.Borrow(ctx, 1, 1, 1, time.Now().UTC()); err != nil {
		t.Fatalf("first borrow: %v", err)
	}
	if s := lockerStatus(t, db, 1); s != "occupied" {
		t.Fatalf("expected occupied, got %s", s)
	}

	if _, err := repo.Borrow(ctx, 1, 1, 1, time.Now().UTC()); !errors.Is(err, domain.ErrLockerUnavailable) {
		t.Fatalf("expected ErrLockerUnavailable, got %v", err)
	}
	if q := itemQuantity(t, db, 1); q != 4 {
		t.Fatalf("conflict must not consume quantity: got %d", q)
	}
}

// Two borrows racing for the last unit of an item: exactly one wins and the
// loser gets a conflict, never a double decrement. The borrowers target
// different lockers so the item quantity is the only contended row.
func TestBorrowRepository_ConcurrentBorrowLastUnit(t *testing.T) {
	db := openTestDB(t)
	seedBorrowFixture(t, db, 1, 2)
	repo := NewBorrowRepository(db)
	ctx := context.Background()

	type result struct {
		borrow *domain.Borrow
		err    error
	}

	for i := 0; i < 20; i++ {
		start := make(chan struct{})
		results := make(chan result, 2)
		for lockerID := int64(1); lockerID <= 2; lockerID++ {
			go func(lockerID int64) {
				<-start
				b, err := repo.Borrow(ctx, 1, 1, lockerID, time.Now().UTC())
				results <- result{borrow: b, err: err}
			}(lockerID)
		}
		close(start)

		var won *domain.Borrow
		var conflicts int
		for j := 0; j < 2; j++ {
			r := <-results
			switch {
			case r.err == nil:
				if won != nil {
					t.Fatalf("iteration %d: both borrows succeeded", i)
				}
				won = r.borrow
			case errors.Is(r.err, domain.ErrItemUnavailable):
				conflicts++
			default:
				t.Fatalf("iteration %d: unexpected error: %v", i, r.err)
			}
		}
		if won == nil || conflicts != 1 {
			t.Fatalf("iteration %d: expected one winner and one conflict, got conflicts=%d", i, conflicts)
		}
		if q := itemQuantity(t, db, 1); q != 0 {
			t.Fatalf("iteration %d: expected quantity 0, got %d", i, q)
		}

		// Reset for the next round.
		if _, err := repo.Return(ctx, won.ID, time.Now().UTC()); err != nil {
			t.Fatalf("iteration %d: return: %v", i, err)
		}
	}

	if q := itemQuantity(t, db, 1); q != 1 {
		t.Fatalf("expected quantity restored to 1, got %d", q)
	}
}

func TestBorrowRepository_NotFoundErrors(t *testing.T) {
	db := openTestDB(t)
	seedBorrowFixture(t, db, 1, 1)
	repo := NewBorrowRepository(db)
	ctx := context.Background()

	if _, err := repo.Borrow(ctx, 99, 1, 1, time.Now().UTC()); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.Borrow(ctx, 1, 99, 1, time.Now().UTC()); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	if _, err := repo.Borrow(ctx, 1, 1, 99, time.Now().UTC()); !errors.Is(err, domain.ErrLockerNotFound) {
		t.Fatalf("expected ErrLockerNotFound, got %v", err)
	}
	if _, err := repo.Return(ctx, 99, time.Now().UTC()); !errors.Is(err, domain.ErrBorrowNotFound) {
		t.Fatalf("expected ErrBorrowNotFound, got %v", err)
	}
}

func TestBorrowRepository_ReturnTwice(t *testing.T) {
	db := openTestDB(t)
	seedBorrowFixture(t, db, 1, 1)
	repo := NewBorrowRepository(db)
	ctx := context.Background()

	b, err := repo.Borrow(ctx, 1, 1, 1, time.Now().UTC())
	if err != nil {
		t.Fatalf("borrow: %v", err)
	}
	if _, err := repo.Return(ctx, b.ID, time.Now().UTC()); err != nil {
		t.Fatalf("first return: %v", err)
	}
	if _, err := repo.Return(ctx, b.ID, time.Now().UTC()); !errors.Is(err, domain.ErrAlreadyReturned) {
		t.Fatalf("expected ErrAlreadyReturned, got %v", err)
	}
	if q := itemQuantity(t, db, 1); q != 1 {
		t.Fatalf("double return must not inflate quantity: got %d", q)
	}
}

func TestBorrowRepository_ListAndActive(t *testing.T) {
	db := openTestDB(t)
	seedBorrowFixture(t, db, 3, 3)
	repo := NewBorrowRepository(db)
	ctx := context.Background()

	b1, _ := repo.Borrow(ctx, 1, 1, 1, time.Now().UTC().Add(-2*time.Minute))
	_, _ = repo.Borrow(ctx, 1, 1, 2, time.Now().UTC().Add(-time.Minute))
	if _, err := repo.Return(ctx, b1.ID, time.Now().UTC()); err != nil {
		t.Fatalf("return: %v", err)
	}

	all, total, err := repo.List(ctx, ports.ListBorrowsFilter{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Fatalf("expected 2 borrows, got total=%d len=%d", total, len(all))
	}

	active, total, err := repo.List(ctx, ports.ListBorrowsFilter{ActiveOnly: true, Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if total != 1 || len(active) != 1 {
		t.Fatalf("expected 1 active borrow, got total=%d len=%d", total, len(active))
	}

	rows, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("list active rows: %v", err)
	}
	if len(rows) != 1 || rows[0].Username != "alice" || rows[0].ItemName != "Charger" {
		t.Fatalf("unexpected active rows: %+v", rows)
	}

	n, err := repo.CountActive(ctx)
	if err != nil || n != 1 {
		t.Fatalf("count active = %d, %v", n, err)
	}
}
