package schedule

import (
	"testing"
	"time"

	"sufra/models"
)

var table = DefaultWeekdayTable()

// clock builds a time on a fixed Monday with the given wall-clock time.
func clock(hour, min int) time.Time {
	return time.Date(2026, time.August, 31, hour, min, 0, 0, time.UTC)
}

func day(name, start, end string, active bool) models.WorkingDay {
	return models.WorkingDay{ID: name, Name: name, StartHour: start, EndHour: end, IsActive: active}
}

func TestResolveTodayFindsEitherLabel(t *testing.T) {
	// A full week under each label set must resolve for every weekday index.
	for i := 0; i < 7; i++ {
		now := time.Date(2026, time.August, 30+i, 12, 0, 0, 0, time.UTC) // Aug 30 2026 is a Sunday
		arabic, english := table.Labels(now.Weekday())

		for _, label := range []string{arabic, english} {
			days := []models.WorkingDay{day(label, "09:00", "17:00", true)}
			got := ResolveToday(table, days, now)
			if got == nil {
				t.Fatalf("weekday %d: no record resolved for label %q", i, label)
			}
			if got.Name != label {
				t.Fatalf("weekday %d: resolved %q, want %q", i, got.Name, label)
			}
		}
	}
}

func TestResolveTodayPrefersArabicLabel(t *testing.T) {
	now := clock(12, 0) // Monday
	days := []models.WorkingDay{
		{ID: "en", Name: "Monday", StartHour: "09:00", EndHour: "17:00", IsActive: true},
		{ID: "ar", Name: "الاثنين", StartHour: "10:00", EndHour: "18:00", IsActive: true},
	}
	got := ResolveToday(table, days, now)
	if got == nil || got.ID != "ar" {
		t.Fatalf("expected the Arabic-labelled record to win, got %+v", got)
	}
}

func TestResolveTodayFirstMatchWins(t *testing.T) {
	now := clock(12, 0)
	days := []models.WorkingDay{
		{ID: "first", Name: "monday", IsActive: true},
		{ID: "second", Name: "MONDAY", IsActive: true},
	}
	got := ResolveToday(table, days, now)
	if got == nil || got.ID != "first" {
		t.Fatalf("expected first duplicate to win, got %+v", got)
	}
}

func TestResolveTodayNoMatch(t *testing.T) {
	now := clock(12, 0)
	days := []models.WorkingDay{day("Friday", "09:00", "17:00", true)}
	if got := ResolveToday(table, days, now); got != nil {
		t.Fatalf("expected nil for non-matching collection, got %+v", got)
	}
	if got := ResolveToday(table, nil, now); got != nil {
		t.Fatalf("expected nil for empty collection, got %+v", got)
	}
}

func TestIsOpenNow(t *testing.T) {
	open := day("Monday", "11:00", "23:00", true)

	cases := []struct {
		name string
		day  *models.WorkingDay
		now  time.Time
		want bool
	}{
		{"nil record", nil, clock(12, 0), false},
		{"inactive day", ptr(day("Monday", "11:00", "23:00", false)), clock(12, 0), false},
		{"minute before opening", &open, clock(10, 59), false},
		{"opening bound inclusive", &open, clock(11, 0), true},
		{"midday", &open, clock(15, 30), true},
		{"closing bound inclusive", &open, clock(23, 0), true},
		{"minute after closing", &open, clock(23, 1), false},
		{"seconds in bounds", ptr(day("Monday", "11:00:00", "23:00:30", true)), clock(23, 0), true},
		{"malformed start", ptr(day("Monday", "eleven", "23:00", true)), clock(12, 0), false},
		{"malformed end", ptr(day("Monday", "11:00", "25:99", true)), clock(12, 0), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsOpenNow(c.day, c.now); got != c.want {
				t.Fatalf("IsOpenNow = %v, want %v", got, c.want)
			}
		})
	}
}

func TestIsOpenNowIdempotent(t *testing.T) {
	d := day("Monday", "11:00", "23:00", true)
	now := clock(12, 0)
	first := IsOpenNow(&d, now)
	for i := 0; i < 10; i++ {
		if IsOpenNow(&d, now) != first {
			t.Fatal("repeated calls with identical inputs diverged")
		}
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"11:30", 690, false},
		{"23:59", 1439, false},
		{"11:00:45", 660, false},
		{"9:05", 545, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12:30:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
		{"11:00x", 0, true},
		{"111:00", 0, true},
	}

	for _, c := range cases {
		got, err := ParseClock(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("ParseClock(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseClock(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFormatWindow(t *testing.T) {
	if got := FormatWindow("11:00:00", "23:00:00"); got != "11:00 - 23:00" {
		t.Fatalf("FormatWindow = %q", got)
	}
	if got := FormatWindow("11:00", "23:00"); got != "11:00 - 23:00" {
		t.Fatalf("FormatWindow = %q", got)
	}
	// Unpadded hours pass ingestion, so seconds must be dropped by field,
	// not by byte position.
	if got := FormatWindow("9:00:30", "23:00:00"); got != "9:00 - 23:00" {
		t.Fatalf("FormatWindow with unpadded hour = %q, want %q", got, "9:00 - 23:00")
	}
	if got := FormatWindow("", "23:00"); got != ClosedLabel {
		t.Fatalf("FormatWindow with absent start = %q, want %q", got, ClosedLabel)
	}
	if got := FormatWindow("11:00", ""); got != ClosedLabel {
		t.Fatalf("FormatWindow with absent end = %q, want %q", got, ClosedLabel)
	}
}

func TestStatus(t *testing.T) {
	now := clock(12, 0)

	open := Status(table, []models.WorkingDay{day("Monday", "11:00", "23:00", true)}, now)
	if !open.IsOpen || open.Start == nil || *open.Start != "11:00" || open.Window != "11:00 - 23:00" {
		t.Fatalf("unexpected open status: %+v", open)
	}

	empty := Status(table, nil, now)
	if empty.IsOpen || empty.Start != nil || empty.End != nil || empty.Window != ClosedLabel {
		t.Fatalf("unexpected empty status: %+v", empty)
	}

	inactive := Status(table, []models.WorkingDay{day("Monday", "11:00", "23:00", false)}, now)
	if inactive.IsOpen {
		t.Fatalf("inactive day reported open: %+v", inactive)
	}
}

func ptr(d models.WorkingDay) *models.WorkingDay { return &d }
