package services

import (
	"sort"
	"time"
)

// DayGroup is one user's entries for one calendar date.
type DayGroup struct {
	Date          string  `json:"date"`
	Entries       []Entry `json:"entries"`
	TotalHours    float64 `json:"total_hours"`
	TotalOvertime float64 `json:"total_overtime"`
}

// UserAttendance is the per-user view the dashboard renders: a day-group per
// date with logged entries. Rebuilt from scratch on every request.
type UserAttendance struct {
	UserID   int64                `json:"user_id"`
	UserName string               `json:"user_name"`
	Email    string               `json:"email"`
	Days     map[string]*DayGroup `json:"days"`
}

// SortedDates lists the attendance's dates in ascending ISO order.
func (attendance *UserAttendance) SortedDates() []string {
	dates := make([]string, 0, len(attendance.Days))
	for date := range attendance.Days {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// GroupByUserAndDate folds a flat entry list into per-user, per-date
// buckets, accumulating hours and overtime. Entries keep their incoming
// order within each day-group. Emails are filled in later from the user
// directory.
func GroupByUserAndDate(entries []Entry) map[int64]*UserAttendance {
	users := make(map[int64]*UserAttendance)

	for _, entry := range entries {
		attendance, ok := users[entry.User.ID]
		if !ok {
			attendance = &UserAttendance{
				UserID:   entry.User.ID,
				UserName: entry.User.Name,
				Days:     make(map[string]*DayGroup),
			}
			users[entry.User.ID] = attendance
		}

		group, ok := attendance.Days[entry.SpentDate]
		if !ok {
			group = &DayGroup{Date: entry.SpentDate, Entries: make([]Entry, 0, 4)}
			attendance.Days[entry.SpentDate] = group
		}

		group.Entries = append(group.Entries, entry)
		group.TotalHours += entry.Hours
		group.TotalOvertime += entry.Overtime
	}

	return users
}

// MonthlySummary is one user's derived statistics over a displayed month.
type MonthlySummary struct {
	TotalHours        float64 `json:"total_hours"`
	TotalOvertime     float64 `json:"total_overtime"`
	RegularHours      float64 `json:"regular_hours"`
	WorkingDays       int     `json:"working_days"`
	TotalWorkingHours float64 `json:"total_working_hours"`
	WorkedDays        float64 `json:"worked_days"`
	PresentPercentage float64 `json:"present_percentage"`
}

const hoursPerWorkingDay = 8.0

// BuildMonthlySummary computes the summary columns for one user over all
// days of the month, holidays excluded from the working-day count. A month
// with zero working days yields a 0 percentage rather than dividing by
// zero. Percentages above 100 are possible and left as-is.
func BuildMonthlySummary(attendance *UserAttendance, daysInMonth []time.Time, holidays map[string]bool) MonthlySummary {
	summary := MonthlySummary{}
	if attendance != nil {
		for _, group := range attendance.Days {
			summary.TotalHours += group.TotalHours
			summary.TotalOvertime += group.TotalOvertime
		}
	}

	summary.RegularHours = summary.TotalHours - summary.TotalOvertime
	summary.WorkingDays = CountWorkingDays(daysInMonth, holidays)
	summary.TotalWorkingHours = float64(summary.WorkingDays) * hoursPerWorkingDay
	summary.WorkedDays = summary.TotalHours / hoursPerWorkingDay

	if summary.TotalWorkingHours > 0 {
		summary.PresentPercentage = summary.RegularHours / summary.TotalWorkingHours * 100
	}
	return summary
}

// DayStatus classifies one user-date cell. The flags are not mutually
// exclusive; Background carries the single tint the table shows, resolved
// with a fixed precedence: holiday, then weekend, then overtime overlay,
// then worked or absent.
type DayStatus struct {
	IsHoliday         bool    `json:"is_holiday"`
	IsWeekend         bool    `json:"is_weekend"`
	Worked            bool    `json:"worked"`
	Absent            bool    `json:"absent"`
	HasOvertime       bool    `json:"has_overtime"`
	WorkedIntensity   float64 `json:"worked_intensity"`
	OvertimeIntensity float64 `json:"overtime_intensity"`
	Background        string  `json:"background"`
}

const (
	BackgroundHoliday  = "holiday"
	BackgroundWeekend  = "weekend"
	BackgroundOvertime = "overtime"
	BackgroundWorked   = "worked"
	BackgroundAbsent   = "absent"
)

// ClassifyDay evaluates the five cell conditions for one user and date.
// group may be nil for days without entries.
func ClassifyDay(day time.Time, group *DayGroup, holidays map[string]bool) DayStatus {
	status := DayStatus{}

	hours := 0.0
	overtime := 0.0
	if group != nil {
		hours = group.TotalHours
		overtime = group.TotalOvertime
	}

	status.IsHoliday = holidays[FormatDate(day)]
	status.IsWeekend = !status.IsHoliday && IsWeekend(day)
	ordinaryDay := !status.IsHoliday && !status.IsWeekend
	status.Worked = ordinaryDay && hours > 0
	status.Absent = ordinaryDay && hours == 0
	status.HasOvertime = overtime > 0

	if status.Worked {
		status.WorkedIntensity = clampIntensity(hours / hoursPerWorkingDay)
	}
	if status.HasOvertime {
		status.OvertimeIntensity = clampIntensity(overtime / hoursPerWorkingDay)
	}

	switch {
	case status.IsHoliday:
		status.Background = BackgroundHoliday
	case status.IsWeekend:
		status.Background = BackgroundWeekend
	case status.HasOvertime:
		status.Background = BackgroundOvertime
	case status.Worked:
		status.Background = BackgroundWorked
	default:
		status.Background = BackgroundAbsent
	}
	return status
}

func clampIntensity(value float64) float64 {
	if value > 1 {
		return 1
	}
	return value
}
