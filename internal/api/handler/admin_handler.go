package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lockerhub/locker-system/internal/core/domain"
	"github.com/lockerhub/locker-system/internal/core/ports"
)

// AdminHandler serves the dashboard aggregates, activity feed, and CSV
// exports.
type AdminHandler struct {
	service  ports.AdminService
	activity ports.ActivityRepository
}

func NewAdminHandler(service ports.AdminService, activity ports.ActivityRepository) *AdminHandler {
	return &AdminHandler{service: service, activity: activity}
}

type statsResponse struct {
	Users           int64            `json:"users"`
	Items           int64            `json:"items"`
	Lockers         int64            `json:"lockers"`
	LockersByStatus map[string]int64 `json:"lockers_by_status"`
	ActiveBorrows   int64            `json:"active_borrows"`
}

type activeBorrowResponse struct {
	BorrowID   int64     `json:"borrow_id"`
	Username   string    `json:"username"`
	ItemName   string    `json:"item_name"`
	LockerNum  string    `json:"locker_number"`
	BorrowedAt time.Time `json:"borrowed_at"`
}

// Stats returns the dashboard summary counts.
//
// @Summary      Dashboard statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}

	byStatus := make(map[string]int64, len(stats.LockersByStatus))
	for status, n := range stats.LockersByStatus {
		byStatus[string(status)] = n
	}

	return c.JSON(http.StatusOK, statsResponse{
		Users:           stats.Users,
		Items:           stats.Items,
		Lockers:         stats.Lockers,
		LockersByStatus: byStatus,
		ActiveBorrows:   stats.ActiveBorrows,
	})
}

// ActiveBorrows returns the joined view of borrows still out.
//
// @Summary      Active borrows with user, item, and locker details
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   activeBorrowResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/active-borrows [get]
func (h *AdminHandler) ActiveBorrows(c echo.Context) error {
	rows, err := h.service.ActiveBorrows(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]activeBorrowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, activeBorrowResponse{
			BorrowID:   r.BorrowID,
			Username:   r.Username,
			ItemName:   r.ItemName,
			LockerNum:  r.LockerNum,
			BorrowedAt: r.BorrowedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// RecentActivity returns the newest audit entries.
//
// @Summary      Recent activity feed
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max entries, default 50"
// @Success      200    {array}   domain.ActivityEntry
// @Failure      403    {object}  errorResponse
// @Router       /api/admin/recent-activity [get]
func (h *AdminHandler) RecentActivity(c echo.Context) error {
	entries, err := h.service.RecentActivity(c.Request().Context(), queryInt(c, "limit", 0))
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []*domain.ActivityEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

// Logs returns the full audit trail, oldest first.
//
// @Summary      List activity log entries
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ActivityEntry
// @Failure      403  {object}  errorResponse
// @Router       /api/logs [get]
func (h *AdminHandler) Logs(c echo.Context) error {
	entries, err := h.activity.All(c.Request().Context())
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []*domain.ActivityEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

// Export streams one of the exportable datasets as a CSV attachment.
//
// @Summary      Export a dataset as CSV
// @Tags         admin
// @Produce      text/csv
// @Security     BearerAuth
// @Param        kind  path  string  true  "Dataset"  Enums(logs, users, borrows)
// @Success      200
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/export/{kind} [get]
func (h *AdminHandler) Export(c echo.Context) error {
	kind := c.Param("kind")
	switch kind {
	case ports.ExportLogs, ports.ExportUsers, ports.ExportBorrows:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown export kind")
	}

	filename := fmt.Sprintf("%s-%s.csv", kind, time.Now().UTC().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Response().WriteHeader(http.StatusOK)

	return h.service.ExportCSV(c.Request().Context(), kind, c.Response())
}
