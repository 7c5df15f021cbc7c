package main

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/lockerhub/locker-system/internal/core/domain"
)

// seedDemoData inserts a known admin account plus a small inventory so a
// fresh install is immediately usable. Existing rows are left alone.
func seedDemoData(ctx context.Context, db *sql.DB) error {
	users := []struct {
		username, password, role, rfid string
	}{
		{"admin", "admin12345", domain.RoleAdmin, ""},
		{"alice", "alice12345", domain.RoleUser, "RFID-0001"},
		{"bob", "bob1234567", domain.RoleUser, "RFID-0002"},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		var tag any
		if u.rfid != "" {
			tag = u.rfid
		}
		_, err = db.ExecContext(ctx, `
            INSERT INTO users (username, password_hash, role, rfid_tag, created_at, updated_at)
            VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
            ON CONFLICT(username) DO NOTHING`,
			u.username, string(hash), u.role, tag)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.username, err)
		}
	}

	items := []struct {
		name, description, category string
		quantity                    int
	}{
		{"USB-C Charger", "65W laptop charger", "electronics", 5},
		{"HDMI Cable", "2m HDMI 2.1 cable", "electronics", 10},
		{"Lab Key Set", "Keys for lab rooms 101-105", "keys", 2},
	}
	for _, it := range items {
		_, err := db.ExecContext(ctx, `
            INSERT INTO items (name, description, quantity, category, created_at, updated_at)
            SELECT ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP
            WHERE NOT EXISTS (SELECT 1 FROM items WHERE name = ?)`,
			it.name, it.description, it.quantity, it.category, it.name)
		if err != nil {
			return fmt.Errorf("seed item %s: %w", it.name, err)
		}
	}

	for i := 1; i <= 8; i++ {
		number := fmt.Sprintf("A-%02d", i)
		_, err := db.ExecContext(ctx, `
            INSERT INTO lockers (number, location, status, created_at, updated_at)
            VALUES (?, 'Main hall', 'available', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
            ON CONFLICT(number) DO NOTHING`,
			number)
		if err != nil {
			return fmt.Errorf("seed locker %s: %w", number, err)
		}
	}

	return nil
}
