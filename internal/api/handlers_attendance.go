package api

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lunover/attendly/internal/db"
	"github.com/lunover/attendly/internal/harvest"
	"github.com/lunover/attendly/internal/services"
)

// DayCell is one user-date cell of the attendance table.
type DayCell struct {
	Date          string             `json:"date"`
	Status        services.DayStatus `json:"status"`
	TotalHours    float64            `json:"total_hours"`
	TotalOvertime float64            `json:"total_overtime"`
	Entries       []services.Entry   `json:"entries,omitempty"`
}

// AttendanceRow is one visible user's month: a cell per calendar day plus
// the summary columns.
type AttendanceRow struct {
	UserID  int64                   `json:"user_id"`
	Name    string                  `json:"name"`
	Email   string                  `json:"email"`
	Cells   []DayCell               `json:"cells"`
	Summary services.MonthlySummary `json:"summary"`
}

// DirectoryUser feeds the visibility editor: every active user, hidden ones
// included.
type DirectoryUser struct {
	UserID  int64  `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Visible bool   `json:"visible"`
}

type cacheInfoView struct {
	Exists     bool    `json:"exists"`
	EntryCount int64   `json:"entry_count"`
	CachedAt   *string `json:"cached_at"`
}

type monthReport struct {
	Year         int
	Month        time.Month
	DaysInMonth  []time.Time
	RangeStart   string
	RangeEnd     string
	HolidayDates []string
	Rows         []AttendanceRow
	Directory    []DirectoryUser
	Info         db.RangeInfo
}

// Attendance builds the dashboard payload for one month: resolved time
// entries (cache or remote), grouped per user and day, classified and
// summarized, with hidden users filtered out.
func (handler *Handler) Attendance(c *fiber.Ctx) error {
	year, month := handler.requestedMonth(c)
	forceRefresh := c.Query("refetch") == "true"

	report, status, message := handler.buildMonthReport(c.Context(), year, month, forceRefresh)
	if status != 0 {
		return apiError(c, status, message)
	}

	return c.JSON(fiber.Map{
		"year":        report.Year,
		"month":       int(report.Month),
		"range_start": report.RangeStart,
		"range_end":   report.RangeEnd,
		"holidays":    report.HolidayDates,
		"cache":       buildCacheInfoView(report.Info),
		"users":       report.Rows,
		"directory":   report.Directory,
	})
}

// buildMonthReport runs the full monthly pipeline. On failure it returns a
// non-zero HTTP status with a message; remote-source failures pass the
// upstream error text through untouched.
func (handler *Handler) buildMonthReport(ctx context.Context, year int, month time.Month, forceRefresh bool) (monthReport, int, string) {
	report := monthReport{
		Year:        year,
		Month:       month,
		DaysInMonth: services.DaysInMonth(year, month, handler.location),
	}
	report.RangeStart, report.RangeEnd = services.MonthRange(year, month, handler.location)

	holidayDates, err := handler.repositories.Holidays.ListRangeDates(report.RangeStart, report.RangeEnd)
	if err != nil {
		return monthReport{}, fiber.StatusInternalServerError, "failed to load holidays"
	}
	report.HolidayDates = holidayDates
	holidays := make(map[string]bool, len(holidayDates))
	for _, date := range holidayDates {
		holidays[date] = true
	}

	directory, err := handler.remote.ListUsers(ctx)
	if err != nil {
		return monthReport{}, fiber.StatusBadGateway, err.Error()
	}

	entries, err := handler.entryCache.Resolve(ctx, report.RangeStart, report.RangeEnd, forceRefresh)
	if err != nil {
		return monthReport{}, fiber.StatusBadGateway, err.Error()
	}

	grouped := services.GroupByUserAndDate(entries)
	for _, user := range directory {
		if attendance, ok := grouped[user.ID]; ok {
			attendance.Email = user.Email
		}
	}

	report.Info, err = handler.entryCache.Info(report.RangeStart, report.RangeEnd)
	if err != nil {
		return monthReport{}, fiber.StatusInternalServerError, "failed to load cache info"
	}

	visibility, err := handler.repositories.Visibility.ListAll()
	if err != nil {
		return monthReport{}, fiber.StatusInternalServerError, "failed to load visibility settings"
	}

	report.Rows = make([]AttendanceRow, 0, len(directory))
	report.Directory = make([]DirectoryUser, 0, len(directory))
	for _, user := range directory {
		if !user.IsActive {
			continue
		}

		visible := userVisible(visibility, user.Email)
		report.Directory = append(report.Directory, DirectoryUser{
			UserID:  user.ID,
			Name:    user.FullName(),
			Email:   user.Email,
			Visible: visible,
		})
		if !visible {
			continue
		}

		report.Rows = append(report.Rows, buildAttendanceRow(user, grouped[user.ID], report.DaysInMonth, holidays))
	}

	return report, 0, ""
}

// requestedMonth reads year/month query params, falling back to the current
// month for anything missing or out of range.
func (handler *Handler) requestedMonth(c *fiber.Ctx) (int, time.Month) {
	now := time.Now().In(handler.location)
	year := now.Year()
	month := now.Month()

	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed >= 2000 && parsed <= 2100 {
			year = parsed
		}
	}
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed >= 1 && parsed <= 12 {
			month = time.Month(parsed)
		}
	}
	return year, month
}

func userVisible(visibility map[string]bool, email string) bool {
	visible, found := visibility[db.NormalizeEmail(email)]
	if !found {
		return true
	}
	return visible
}

func buildAttendanceRow(user harvest.User, attendance *services.UserAttendance, daysInMonth []time.Time, holidays map[string]bool) AttendanceRow {
	cells := make([]DayCell, 0, len(daysInMonth))
	for _, day := range daysInMonth {
		date := services.FormatDate(day)

		var group *services.DayGroup
		if attendance != nil {
			group = attendance.Days[date]
		}

		cell := DayCell{
			Date:   date,
			Status: services.ClassifyDay(day, group, holidays),
		}
		if group != nil {
			cell.TotalHours = group.TotalHours
			cell.TotalOvertime = group.TotalOvertime
			cell.Entries = group.Entries
		}
		cells = append(cells, cell)
	}

	return AttendanceRow{
		UserID:  user.ID,
		Name:    user.FullName(),
		Email:   user.Email,
		Cells:   cells,
		Summary: services.BuildMonthlySummary(attendance, daysInMonth, holidays),
	}
}

func buildCacheInfoView(info db.RangeInfo) cacheInfoView {
	view := cacheInfoView{
		Exists:     info.Exists,
		EntryCount: info.EntryCount,
	}
	if info.CachedAt != nil {
		formatted := info.CachedAt.Format(time.RFC3339)
		view.CachedAt = &formatted
	}
	return view
}
