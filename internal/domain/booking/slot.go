package booking

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

const (
	DateLayout = "2006-01-02"
	// TimeLayout is how a requested time is stored and echoed back.
	TimeLayout = "03:04 PM"
)

// clock layouts accepted from clients, 12-hour first
var clockInputs = []string{"3:04 PM", "3:04PM", "15:04"}

// ParseSlot validates a requested date and clock time and returns the
// instant in loc together with the clock time in TimeLayout.
func ParseSlot(date, clock string, loc *time.Location) (time.Time, string, error) {
	if loc == nil {
		loc = time.UTC
	}

	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, "", httperr.Validation("invalid_date", "Date must be in YYYY-MM-DD format.")
	}

	raw := strings.ToUpper(strings.TrimSpace(clock))
	for _, layout := range clockInputs {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		at := time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, loc)
		return at, t.Format(TimeLayout), nil
	}
	return time.Time{}, "", httperr.Validation("invalid_time", "Time must look like 10:30 AM.")
}
