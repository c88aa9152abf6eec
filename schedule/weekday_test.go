package schedule

import (
	"testing"
	"time"
)

func TestDefaultWeekdayTableRoundTrip(t *testing.T) {
	tbl := DefaultWeekdayTable()
	for i := 0; i < 7; i++ {
		arabic, english := tbl.Labels(time.Weekday(i))
		if arabic == "" || english == "" {
			t.Fatalf("missing label for weekday %d", i)
		}
		for _, label := range []string{arabic, english} {
			got, ok := tbl.Weekday(label)
			if !ok || got != time.Weekday(i) {
				t.Fatalf("Weekday(%q) = (%v, %v), want (%v, true)", label, got, ok, time.Weekday(i))
			}
		}
	}
}

func TestWeekdayLookupIsCaseInsensitive(t *testing.T) {
	tbl := DefaultWeekdayTable()
	for _, label := range []string{"sunday", "SUNDAY", "  Sunday  "} {
		got, ok := tbl.Weekday(label)
		if !ok || got != time.Sunday {
			t.Fatalf("Weekday(%q) = (%v, %v)", label, got, ok)
		}
	}
}

func TestNewWeekdayTableRejectsBadLabelSets(t *testing.T) {
	arabic := arabicLabels
	english := englishLabels

	english[2] = ""
	if _, err := NewWeekdayTable(arabic, english); err == nil {
		t.Fatal("expected error for empty label")
	}

	english = englishLabels
	english[3] = "Monday" // duplicates index 1
	if _, err := NewWeekdayTable(arabic, english); err == nil {
		t.Fatal("expected error for duplicate label")
	}
}
