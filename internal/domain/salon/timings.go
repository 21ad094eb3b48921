package salon

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

const (
	TimingLayout = "03:04 PM"
	timingInput  = "3:04 PM"
)

// NormalizeTimings parses "09:00 AM" style opening hours and requires the
// salon to close after it opens on the same day.
func NormalizeTimings(open, closing string) (string, string, error) {
	o, err := time.Parse(timingInput, strings.ToUpper(strings.TrimSpace(open)))
	if err != nil {
		return "", "", httperr.Validation("invalid_timings", "Timings must look like 09:00 AM.")
	}
	c, err := time.Parse(timingInput, strings.ToUpper(strings.TrimSpace(closing)))
	if err != nil {
		return "", "", httperr.Validation("invalid_timings", "Timings must look like 09:00 AM.")
	}
	if !c.After(o) {
		return "", "", httperr.Validation("invalid_timings", "Closing time must be after opening time.")
	}
	return o.Format(TimingLayout), c.Format(TimingLayout), nil
}
