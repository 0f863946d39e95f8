// utils/deadline.go
package utils

import (
	"errors"
	"fmt"
	"time"
)

// IST is the fixed display/deadline zone (UTC+5:30)
var IST = time.FixedZone("IST", 5*3600+30*60)

const (
	// DeadlineDateLayout is the calendar date format vendors submit
	DeadlineDateLayout = "2006-01-02"

	// MaxDeadlineDays bounds how far ahead a custom deadline may be set
	MaxDeadlineDays = 365

	// Net30Days is the default payment term applied when no custom
	// deadline is requested
	Net30Days = 30
)

// EndOfDayIST returns 23:59:59 IST on the calendar date of t
func EndOfDayIST(t time.Time) time.Time {
	t = t.In(IST)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, IST)
}

// Net30Deadline returns the default deadline: end of day IST, 30 days out
func Net30Deadline(now time.Time) time.Time {
	return EndOfDayIST(now.In(IST).AddDate(0, 0, Net30Days))
}

// ParseDeadlineDate parses a vendor-submitted calendar date and validates
// it against the allowed window [tomorrow, +365 days], both ends in IST.
// Returns the end-of-day IST timestamp for the chosen date.
func ParseDeadlineDate(dateStr string, now time.Time) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, errors.New("deadline date is required")
	}

	date, err := time.ParseInLocation(DeadlineDateLayout, dateStr, IST)
	if err != nil {
		return time.Time{}, errors.New("invalid deadline date format, expected YYYY-MM-DD")
	}

	nowIST := now.In(IST)
	today := time.Date(nowIST.Year(), nowIST.Month(), nowIST.Day(), 0, 0, 0, 0, IST)
	tomorrow := today.AddDate(0, 0, 1)
	latest := today.AddDate(0, 0, MaxDeadlineDays)

	if date.Before(tomorrow) {
		return time.Time{}, errors.New("deadline must be a future date")
	}
	if date.After(latest) {
		return time.Time{}, fmt.Errorf("deadline cannot be more than %d days ahead", MaxDeadlineDays)
	}

	return EndOfDayIST(date), nil
}

// FormatTimeLeft renders the remaining time until deadline as whole days,
// hours (0-23) and minutes (0-59), truncating. A passed deadline renders
// as "Deadline passed".
func FormatTimeLeft(deadline, now time.Time) string {
	diff := deadline.Sub(now)
	if diff <= 0 {
		return "Deadline passed"
	}

	totalMinutes := int64(diff / time.Minute)
	days := totalMinutes / (24 * 60)
	hours := (totalMinutes % (24 * 60)) / 60
	minutes := totalMinutes % 60

	return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
}
