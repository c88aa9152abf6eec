// Package schedule decides whether the restaurant is currently open from the
// administered per-weekday working hours.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"sufra/models"
)

// ClosedLabel is shown to customers when no opening window applies.
const ClosedLabel = "مغلق"

// ResolveToday finds the working-day record that applies to now's weekday.
// The Arabic label is tried first, then the English one; within each pass the
// first match in input order wins and later duplicates are ignored. Returns
// nil when no record carries either label.
func ResolveToday(table *WeekdayTable, days []models.WorkingDay, now time.Time) *models.WorkingDay {
	arabic, english := table.Labels(now.Weekday())
	for _, label := range []string{arabic, english} {
		for i := range days {
			if strings.EqualFold(strings.TrimSpace(days[i].Name), label) {
				return &days[i]
			}
		}
	}
	return nil
}

// ParseClock parses "HH:MM" or "HH:MM:SS" into minutes since midnight.
// Comparing raw time strings is only safe while every producer zero-pads,
// so bounds are normalized to numbers instead.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM or HH:MM:SS", s)
	}
	fields := make([]int, len(parts))
	for i, p := range parts {
		if len(p) < 1 || len(p) > 2 {
			return 0, fmt.Errorf("invalid time %q", s)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("invalid time %q: %w", s, err)
		}
		fields[i] = n
	}
	h, m := fields[0], fields[1]
	sec := 0
	if len(fields) == 3 {
		sec = fields[2]
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return h*60 + m, nil
}

// IsOpenNow reports whether now falls inside the record's opening window,
// inclusive on both bounds. A nil record, an inactive day or a malformed
// bound all resolve to closed: under-reporting availability is the safer
// failure mode.
func IsOpenNow(day *models.WorkingDay, now time.Time) bool {
	if day == nil || !day.IsActive {
		return false
	}
	start, err := ParseClock(day.StartHour)
	if err != nil {
		return false
	}
	end, err := ParseClock(day.EndHour)
	if err != nil {
		return false
	}
	current := now.Hour()*60 + now.Minute()
	return start <= current && current <= end
}

// FormatWindow renders an opening window as "HH:MM - HH:MM", truncating any
// seconds component. Returns ClosedLabel when either bound is absent.
func FormatWindow(start, end string) string {
	if start == "" || end == "" {
		return ClosedLabel
	}
	return truncateSeconds(start) + " - " + truncateSeconds(end)
}

func truncateSeconds(s string) string {
	parts := strings.Split(s, ":")
	if len(parts) == 3 {
		return parts[0] + ":" + parts[1]
	}
	return s
}

// Status derives the ephemeral open/closed status for now from the full
// working-day collection.
func Status(table *WeekdayTable, days []models.WorkingDay, now time.Time) models.ScheduleStatus {
	day := ResolveToday(table, days, now)
	if day == nil {
		return models.ScheduleStatus{Window: ClosedLabel}
	}
	return models.ScheduleStatus{
		Start:  &day.StartHour,
		End:    &day.EndHour,
		IsOpen: IsOpenNow(day, now),
		Window: FormatWindow(day.StartHour, day.EndHour),
	}
}
