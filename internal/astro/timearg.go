package astro

import (
	"fmt"
	"time"
)

// CivilTimer is implemented by external astronomical-time representations
// that can report their instant as a plain civil date-time. It is the only
// boundary where the core touches a third-party time type.
type CivilTimer interface {
	CivilTime() time.Time
}

// Accepted string layouts for observation times.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeTime converts an observation-time argument to a plain civil
// date-time. It accepts time.Time, *time.Time, a CivilTimer wrapper, or a
// string in one of the common layouts. Zoned values are converted to UTC so
// the wall clock denotes the instant they represent. Anything else is a
// ValidationError naming obs_time.
func NormalizeTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return civil(t)
	case *time.Time:
		if t == nil {
			return time.Time{}, &ValidationError{Arg: "obs_time", Reason: "nil time"}
		}
		return civil(*t)
	case CivilTimer:
		return civil(t.CivilTime())
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return civil(parsed)
			}
		}
		return time.Time{}, &ValidationError{Arg: "obs_time", Reason: fmt.Sprintf("unparseable time %q", t)}
	default:
		return time.Time{}, &ValidationError{Arg: "obs_time", Reason: fmt.Sprintf("unsupported type %T", v)}
	}
}

func civil(t time.Time) (time.Time, error) {
	if t.IsZero() {
		return time.Time{}, &ValidationError{Arg: "obs_time", Reason: "zero time"}
	}
	return t.UTC(), nil
}
