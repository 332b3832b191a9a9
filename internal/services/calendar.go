package services

import (
	"fmt"
	"time"
)

const isoDateLayout = "2006-01-02"

// FormatDate renders a date as YYYY-MM-DD in its own location.
func FormatDate(day time.Time) string {
	return day.Format(isoDateLayout)
}

// ParseDate reads a YYYY-MM-DD string as a local date.
func ParseDate(value string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.Local
	}
	day, err := time.ParseInLocation(isoDateLayout, value, location)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return day, nil
}

// DaysInMonth lists every calendar day of the given month in order.
func DaysInMonth(year int, month time.Month, location *time.Location) []time.Time {
	if location == nil {
		location = time.Local
	}

	days := make([]time.Time, 0, 31)
	for day := time.Date(year, month, 1, 0, 0, 0, 0, location); day.Month() == month; day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

// MonthRange returns the first and last day of a month as ISO date strings.
func MonthRange(year int, month time.Month, location *time.Location) (string, string) {
	days := DaysInMonth(year, month, location)
	return FormatDate(days[0]), FormatDate(days[len(days)-1])
}

func IsWeekend(day time.Time) bool {
	weekday := day.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// CountWorkingDays counts days that are neither weekend nor holiday.
func CountWorkingDays(days []time.Time, holidays map[string]bool) int {
	workingDays := 0
	for _, day := range days {
		if IsWeekend(day) || holidays[FormatDate(day)] {
			continue
		}
		workingDays++
	}
	return workingDays
}
