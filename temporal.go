package validrb

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Date is a calendar day with no time-of-day component. Keeping it a
// distinct type from time.Time keeps dates and datetimes disjoint: a
// datetime never satisfies the date type's Valid even though it is an
// accepted coercion source.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time widens the date to midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool { return d == Date{} }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// DateType returns the calendar-date scalar type. Coerced values are Date.
func DateType() Type { return dateType{} }

// DateTimeType returns the datetime scalar type. Coerced values are
// time.Time.
func DateTimeType() Type { return dateTimeType{} }

// TimeType returns the timestamp scalar type. Coerced values are time.Time.
func TimeType() Type { return timeType{} }

// dateOnlyLayouts are tried before the datetime layouts when coercing a
// date from a string.
var dateOnlyLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// dateTimeLayouts: calendar-standard RFC 3339 first, then a small fixed
// fallback list, then the permissive layouts at the tail.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.ANSIC,
	time.UnixDate,
}

func parseTemporalString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// epochSeconds interprets integer/float input as Unix-epoch seconds.
func epochSeconds(v any) (time.Time, bool) {
	if i, ok := asInt64(v); ok {
		return time.Unix(i, 0).UTC(), true
	}
	switch t := v.(type) {
	case float32, float64:
		f, _ := asFloat64(t)
		if _, ok := finiteFloat(f); !ok {
			return time.Time{}, false
		}
		sec := int64(f)
		nsec := int64((f - float64(sec)) * float64(time.Second))
		return time.Unix(sec, nsec).UTC(), true
	case json.Number:
		if i, ok := integerFromString(t.String()); ok {
			return time.Unix(i.(int64), 0).UTC(), true
		}
		if f, ok := floatFromString(t.String()); ok {
			return epochSeconds(f)
		}
	}
	return time.Time{}, false
}

type dateType struct{}

func (dateType) Kind() Kind   { return KindDate }
func (dateType) Name() string { return "date" }

func (dateType) Coerce(v any) (any, bool) {
	switch t := v.(type) {
	case Date:
		return t, true
	case time.Time:
		// datetime narrows to its calendar day
		return DateOf(t), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil, false
		}
		for _, layout := range dateOnlyLayouts {
			if tm, err := time.Parse(layout, s); err == nil {
				return DateOf(tm), true
			}
		}
		if tm, ok := parseTemporalString(s); ok {
			return DateOf(tm), true
		}
		return nil, false
	}
	if tm, ok := epochSeconds(v); ok {
		return DateOf(tm), true
	}
	return nil, false
}

// Valid excludes time.Time on purpose: a datetime is not a bare date.
func (dateType) Valid(v any) bool {
	_, ok := v.(Date)
	return ok
}

func (t dateType) Evaluate(v any, path Path) (any, ErrorList) {
	return evaluateScalar(t, v, path)
}

type dateTimeType struct{}

func (dateTimeType) Kind() Kind   { return KindDateTime }
func (dateTimeType) Name() string { return "datetime" }

func (dateTimeType) Coerce(v any) (any, bool) { return coerceTimestamp(v) }

func (dateTimeType) Valid(v any) bool {
	_, ok := v.(time.Time)
	return ok
}

func (t dateTimeType) Evaluate(v any, path Path) (any, ErrorList) {
	return evaluateScalar(t, v, path)
}

type timeType struct{}

func (timeType) Kind() Kind   { return KindTime }
func (timeType) Name() string { return "time" }

func (timeType) Coerce(v any) (any, bool) { return coerceTimestamp(v) }

func (timeType) Valid(v any) bool {
	_, ok := v.(time.Time)
	return ok
}

func (t timeType) Evaluate(v any, path Path) (any, ErrorList) {
	return evaluateScalar(t, v, path)
}

func coerceTimestamp(v any) (any, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case Date:
		// date widens to midnight UTC
		return t.Time(), true
	case string:
		if tm, ok := parseTemporalString(t); ok {
			return tm, true
		}
		return nil, false
	}
	if tm, ok := epochSeconds(v); ok {
		return tm, true
	}
	return nil, false
}
