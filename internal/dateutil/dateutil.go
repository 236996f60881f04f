package dateutil

import (
	"time"
)

const layout = "2006-01-02"

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

// NewDateOnly truncates t to its calendar day in t's own location.
func NewDateOnly(t time.Time) DateOnly {
	y, m, d := t.Date()
	return DateOnly{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d DateOnly) String() string {
	return d.Time.Format(layout)
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(layout) + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM-DD" and, for histories written by older
// clients, a full RFC 3339 timestamp (only its date part is kept).
func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"`+layout+`"`, string(b))
	if err == nil {
		d.Time = t
		return nil
	}
	ts, tsErr := time.Parse(`"`+time.RFC3339Nano+`"`, string(b))
	if tsErr != nil {
		return err
	}
	*d = NewDateOnly(ts.UTC())
	return nil
}

// WeekStart returns the Sunday that opens t's week, evaluated in loc.
// Uses AddDate so month/year boundaries normalize cleanly.
func WeekStart(t time.Time, loc *time.Location) DateOnly {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return NewDateOnly(local.AddDate(0, 0, -int(local.Weekday())))
}
