package main

import (
	"testing"
	"time"
)

/* ─── weekMonday tests ───────────────────────────────────────────────── */

// TestWeekMonday_ReturnsMonday verifies that the returned time's weekday is Monday
// for every day of a week.
func TestWeekMonday_ReturnsMonday(t *testing.T) {
	base := time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC) // a Monday
	for i := 0; i < 7; i++ {
		got := weekMonday(base.AddDate(0, 0, i))
		if got.Weekday() != time.Monday {
			t.Errorf("weekMonday(+%d days) returned %s, want Monday", i, got.Weekday())
		}
		if !got.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("weekMonday(+%d days) = %v, want 2026-03-02", i, got)
		}
	}
}

// TestWeekMonday_MidnightUTC verifies that the returned time is at midnight
// UTC with no hour, minute, second, or nanosecond component.
func TestWeekMonday_MidnightUTC(t *testing.T) {
	monday := weekMonday(time.Now())
	if monday.Hour() != 0 || monday.Minute() != 0 || monday.Second() != 0 || monday.Nanosecond() != 0 {
		t.Errorf("weekMonday() returned non-midnight time: %v", monday)
	}
	if monday.Location() != time.UTC {
		t.Errorf("weekMonday() returned non-UTC location: %v", monday.Location())
	}
}

// TestWeekMonday_CrossesYear verifies that a Sunday early in January walks
// back into the previous year.
func TestWeekMonday_CrossesYear(t *testing.T) {
	sunday := time.Date(2023, 1, 1, 8, 0, 0, 0, time.UTC)
	got := weekMonday(sunday)
	want := time.Date(2022, 12, 26, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("weekMonday(%v) = %v, want %v", sunday, got, want)
	}
}
