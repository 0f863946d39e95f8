package utils

import (
	"testing"
	"time"
)

func TestFormatTimeLeft(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline time.Time
		want     string
	}{
		{"ninety minutes ahead", now.Add(90 * time.Minute), "0d 1h 30m"},
		{"one second past", now.Add(-time.Second), "Deadline passed"},
		{"exactly now", now, "Deadline passed"},
		{"days hours minutes", now.Add(49*time.Hour + 5*time.Minute), "2d 1h 5m"},
		{"seconds truncate", now.Add(90*time.Minute + 59*time.Second), "0d 1h 30m"},
		{"just under a day", now.Add(24*time.Hour - time.Minute), "0d 23h 59m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatTimeLeft(tt.deadline, now)
			if got != tt.want {
				t.Errorf("FormatTimeLeft() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEndOfDayIST(t *testing.T) {
	// 20:00 UTC on March 10 is already March 11 in IST
	input := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	got := EndOfDayIST(input)

	if got.Year() != 2026 || got.Month() != time.March || got.Day() != 11 {
		t.Errorf("EndOfDayIST() date = %v, want 2026-03-11 in IST", got)
	}
	if got.Hour() != 23 || got.Minute() != 59 || got.Second() != 59 {
		t.Errorf("EndOfDayIST() time = %02d:%02d:%02d, want 23:59:59", got.Hour(), got.Minute(), got.Second())
	}
	if got.Location() != IST {
		t.Errorf("EndOfDayIST() location = %v, want IST", got.Location())
	}
}

func TestNet30Deadline(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, IST)
	got := Net30Deadline(now)

	want := time.Date(2026, 4, 9, 23, 59, 59, 0, IST)
	if !got.Equal(want) {
		t.Errorf("Net30Deadline() = %v, want %v", got, want)
	}
}

func TestParseDeadlineDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, IST)

	t.Run("tomorrow is accepted", func(t *testing.T) {
		got, err := ParseDeadlineDate("2026-03-11", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2026, 3, 11, 23, 59, 59, 0, IST)
		if !got.Equal(want) {
			t.Errorf("ParseDeadlineDate() = %v, want %v", got, want)
		}
	})

	t.Run("today is rejected", func(t *testing.T) {
		if _, err := ParseDeadlineDate("2026-03-10", now); err == nil {
			t.Error("expected error for a same-day deadline")
		}
	})

	t.Run("past date is rejected", func(t *testing.T) {
		if _, err := ParseDeadlineDate("2026-03-01", now); err == nil {
			t.Error("expected error for a past deadline")
		}
	})

	t.Run("365 days ahead is accepted", func(t *testing.T) {
		got, err := ParseDeadlineDate("2027-03-10", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2027, 3, 10, 23, 59, 59, 0, IST)
		if !got.Equal(want) {
			t.Errorf("ParseDeadlineDate() = %v, want %v", got, want)
		}
	})

	t.Run("366 days ahead is rejected", func(t *testing.T) {
		if _, err := ParseDeadlineDate("2027-03-11", now); err == nil {
			t.Error("expected error for a deadline past the 365 day window")
		}
	})

	t.Run("empty date is rejected", func(t *testing.T) {
		if _, err := ParseDeadlineDate("", now); err == nil {
			t.Error("expected error for an empty date")
		}
	})

	t.Run("bad format is rejected", func(t *testing.T) {
		if _, err := ParseDeadlineDate("11/03/2026", now); err == nil {
			t.Error("expected error for a non YYYY-MM-DD date")
		}
	})
}
