package main

import "time"

// weekMonday returns the Monday of the week containing now, at midnight UTC.
// Uses AddDate to safely handle month/year boundaries.
func weekMonday(now time.Time) time.Time {
	now = now.UTC()
	weekday := int(now.Weekday()) // 0=Sun
	if weekday == 0 {
		weekday = 7 // treat Sunday as day 7 so Mon=1..Sun=7
	}
	y, m, d := now.AddDate(0, 0, -(weekday - 1)).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
