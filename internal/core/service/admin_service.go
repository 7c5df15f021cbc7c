package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/lockerhub/locker-system/internal/core/domain"
	"github.com/lockerhub/locker-system/internal/core/ports"
)

const defaultActivityLimit = 50

// AdminService aggregates the dashboard and export endpoints.
type AdminService struct {
	users    ports.UserRepository
	items    ports.ItemRepository
	lockers  ports.LockerRepository
	borrows  ports.BorrowRepository
	activity ports.ActivityRepository
	log      zerolog.Logger
}

func NewAdminService(
	users ports.UserRepository,
	items ports.ItemRepository,
	lockers ports.LockerRepository,
	borrows ports.BorrowRepository,
	activity ports.ActivityRepository,
	log zerolog.Logger,
) *AdminService {
	return &AdminService{
		users:    users,
		items:    items,
		lockers:  lockers,
		borrows:  borrows,
		activity: activity,
		log:      log,
	}
}

func (s *AdminService) Stats(ctx context.Context) (*ports.StatsResult, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: count users: %w", err)
	}
	items, err := s.items.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: count items: %w", err)
	}
	byStatus, err := s.lockers.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: count lockers: %w", err)
	}
	active, err := s.borrows.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: count active borrows: %w", err)
	}

	var lockers int64
	for _, n := range byStatus {
		lockers += n
	}

	return &ports.StatsResult{
		Users:           users,
		Items:           items,
		Lockers:         lockers,
		LockersByStatus: byStatus,
		ActiveBorrows:   active,
	}, nil
}

func (s *AdminService) ActiveBorrows(ctx context.Context) ([]*ports.ActiveBorrowRow, error) {
	return s.borrows.ListActive(ctx)
}

func (s *AdminService) RecentActivity(ctx context.Context, limit int) ([]*domain.ActivityEntry, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	return s.activity.Recent(ctx, limit)
}

// ExportCSV writes the named dataset as CSV. The audit store failing mid-way
// leaves a truncated file; callers stream directly to the response so there
// is nothing to roll back.
func (s *AdminService) ExportCSV(ctx context.Context, kind string, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	switch kind {
	case ports.ExportLogs:
		return s.exportLogs(ctx, cw)
	case ports.ExportUsers:
		return s.exportUsers(ctx, cw)
	case ports.ExportBorrows:
		return s.exportBorrows(ctx, cw)
	}
	return fmt.Errorf("export: unknown kind %q", kind)
}

func (s *AdminService) exportLogs(ctx context.Context, cw *csv.Writer) error {
	entries, err := s.activity.All(ctx)
	if err != nil {
		return err
	}
	if err := cw.Write([]string{"timestamp", "actor", "actor_id", "action", "subject", "subject_id", "details"}); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			e.Timestamp.UTC().Format(time.RFC3339),
			e.Actor,
			strconv.FormatInt(e.ActorID, 10),
			e.Action,
			e.Subject,
			strconv.FormatInt(e.SubjectID, 10),
			e.Details,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *AdminService) exportUsers(ctx context.Context, cw *csv.Writer) error {
	users, err := s.users.List(ctx)
	if err != nil {
		return err
	}
	if err := cw.Write([]string{"id", "username", "role", "rfid_tag", "created_at"}); err != nil {
		return err
	}
	for _, u := range users {
		row := []string{
			strconv.FormatInt(u.ID, 10),
			u.Username,
			u.Role,
			u.RFIDTag,
			u.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *AdminService) exportBorrows(ctx context.Context, cw *csv.Writer) error {
	if err := cw.Write([]string{"id", "user_id", "item_id", "locker_id", "borrowed_at", "returned_at"}); err != nil {
		return err
	}
	// Page through the full history; the export is a stream, not a snapshot.
	var borrows []*domain.Borrow
	for page := 1; ; page++ {
		chunk, _, err := s.borrows.List(ctx, ports.ListBorrowsFilter{Page: page, Limit: maxListLimit})
		if err != nil {
			return err
		}
		borrows = append(borrows, chunk...)
		if len(chunk) < maxListLimit {
			break
		}
	}
	for _, b := range borrows {
		returned := ""
		if b.ReturnedAt != nil {
			returned = b.ReturnedAt.UTC().Format(time.RFC3339)
		}
		row := []string{
			strconv.FormatInt(b.ID, 10),
			strconv.FormatInt(b.UserID, 10),
			strconv.FormatInt(b.ItemID, 10),
			strconv.FormatInt(b.LockerID, 10),
			b.BorrowedAt.UTC().Format(time.RFC3339),
			returned,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}
