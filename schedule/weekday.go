package schedule

import (
	"fmt"
	"strings"
	"time"
)

// The storefront historically stored working-day names in either Arabic or
// English, so lookups have to accept both label sets for the same weekday.
var (
	arabicLabels  = [7]string{"الأحد", "الاثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت"}
	englishLabels = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
)

// WeekdayTable is a bidirectional mapping between weekday indices (0=Sunday)
// and the two label sets. Built once at startup and never mutated.
type WeekdayTable struct {
	arabic  [7]string
	english [7]string
	index   map[string]time.Weekday
}

// NewWeekdayTable validates that all fourteen labels are present and distinct
// (case-insensitively) and builds the reverse lookup index.
func NewWeekdayTable(arabic, english [7]string) (*WeekdayTable, error) {
	index := make(map[string]time.Weekday, 14)
	for i := 0; i < 7; i++ {
		for _, label := range []string{arabic[i], english[i]} {
			key := strings.ToLower(strings.TrimSpace(label))
			if key == "" {
				return nil, fmt.Errorf("empty weekday label at index %d", i)
			}
			if _, dup := index[key]; dup {
				return nil, fmt.Errorf("duplicate weekday label %q", label)
			}
			index[key] = time.Weekday(i)
		}
	}
	return &WeekdayTable{arabic: arabic, english: english, index: index}, nil
}

// DefaultWeekdayTable returns the table built from the standard Arabic and
// English label sets. The inputs are compile-time constants, so a failure
// here is a programming error.
func DefaultWeekdayTable() *WeekdayTable {
	t, err := NewWeekdayTable(arabicLabels, englishLabels)
	if err != nil {
		panic(err)
	}
	return t
}

// Labels returns the Arabic and English labels for a weekday.
func (t *WeekdayTable) Labels(d time.Weekday) (arabic, english string) {
	return t.arabic[d], t.english[d]
}

// Weekday resolves a label (either language, any casing) to its weekday index.
func (t *WeekdayTable) Weekday(label string) (time.Weekday, bool) {
	d, ok := t.index[strings.ToLower(strings.TrimSpace(label))]
	return d, ok
}
