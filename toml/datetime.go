package toml

import (
	"fmt"
	"strconv"
	"strings"
)

// Date is a calendar date (the "full-date" ABNF production).
type Date struct {
	Year, Month, Day int
}

// Time is a time of day with optional sub-second precision (the
// "partial-time" ABNF production).
type Time struct {
	Hour, Minute, Second, Nanosecond int
}

// Offset is a UTC offset (the "time-numoffset" ABNF production).
// Negative distinguishes -00:00-style offsets from "Z"/+00:00, which
// Hour/Minute alone cannot since 0 has no sign.
type Offset struct {
	Negative     bool
	Hour, Minute int
}

// DateTime covers the four RFC 3339 shapes TOML allows by making every
// component optional: offset-date-time has all three set, local-date-time
// has Date and Time, local-date has only Date, local-time has only Time.
type DateTime struct {
	Date   *Date
	Time   *Time
	Offset *Offset
}

// String renders dt back to its RFC 3339 text form, the representation
// [4.10 JSON <-> TOML conversion] uses for the TOML datetime -> JSON
// string direction.
func (dt DateTime) String() string {
	var sb strings.Builder

	if dt.Date != nil {
		fmt.Fprintf(&sb, "%04d-%02d-%02d", dt.Date.Year, dt.Date.Month, dt.Date.Day)
	}

	if dt.Time != nil {
		if dt.Date != nil {
			sb.WriteByte('T')
		}

		fmt.Fprintf(&sb, "%02d:%02d:%02d", dt.Time.Hour, dt.Time.Minute, dt.Time.Second)

		if dt.Time.Nanosecond > 0 {
			fmt.Fprintf(&sb, ".%09d", dt.Time.Nanosecond)
		}
	}

	if dt.Offset != nil {
		switch {
		case !dt.Offset.Negative && dt.Offset.Hour == 0 && dt.Offset.Minute == 0:
			sb.WriteByte('Z')
		case dt.Offset.Negative:
			fmt.Fprintf(&sb, "-%02d:%02d", dt.Offset.Hour, dt.Offset.Minute)
		default:
			fmt.Fprintf(&sb, "+%02d:%02d", dt.Offset.Hour, dt.Offset.Minute)
		}
	}

	return sb.String()
}

// looksLikeDatetime reports whether tok's shape matches either the
// leading "YYYY-MM-DD" or leading "HH:MM" path described in spec.md
// 4.9's datetime-parsing paragraph, as opposed to a bare number.
func looksLikeDatetime(tok string) bool {
	if len(tok) >= 8 && tok[2] == ':' && tok[5] == ':' && isAllDigits(tok[:2]) {
		return true
	}

	if len(tok) >= 10 && tok[4] == '-' && tok[7] == '-' && isAllDigits(tok[:4]) {
		return true
	}

	return false
}

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// parseDateTime implements the dispatch spec.md 4.9 describes: a
// leading "HH:MM..." path is local-time only, a leading "YYYY-MM-DD"
// path is a date optionally followed by a time and an offset.
func parseDateTime(tok string) (DateTime, error) {
	var dt DateTime

	if len(tok) >= 2 && tok[2] == ':' {
		t, err := parseTime(tok)
		if err != nil {
			return dt, err
		}

		dt.Time = t

		return dt, nil
	}

	if len(tok) < 10 || tok[4] != '-' || tok[7] != '-' {
		return dt, fmt.Errorf("malformed datetime %q", tok)
	}

	d, err := parseDate(tok[:10])
	if err != nil {
		return dt, err
	}

	dt.Date = d
	rest := tok[10:]

	if rest == "" {
		return dt, nil
	}

	sep := rest[0]
	if sep != 'T' && sep != 't' && sep != ' ' {
		return dt, fmt.Errorf("malformed date-time separator in %q", tok)
	}

	rest = rest[1:]

	timePart, offsetPart := splitOffset(rest)

	t, err := parseTime(timePart)
	if err != nil {
		return dt, err
	}

	dt.Time = t

	if offsetPart != "" {
		off, err := parseOffset(offsetPart)
		if err != nil {
			return dt, err
		}

		dt.Offset = off
	}

	return dt, nil
}

func splitOffset(s string) (timePart, offsetPart string) {
	if len(s) > 0 && (s[len(s)-1] == 'Z' || s[len(s)-1] == 'z') {
		return s[:len(s)-1], "Z"
	}

	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '+' || s[i] == '-' {
			return s[:i], s[i:]
		}
	}

	return s, ""
}

func parseDate(s string) (*Date, error) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return nil, fmt.Errorf("malformed date %q", s)
	}

	year, err := strconv.Atoi(s[0:4])
	if err != nil {
		return nil, fmt.Errorf("malformed date year %q", s)
	}

	month, err := strconv.Atoi(s[5:7])
	if err != nil || month < 1 || month > 12 {
		return nil, fmt.Errorf("malformed date month %q", s)
	}

	day, err := strconv.Atoi(s[8:10])
	if err != nil || day < 1 || day > 31 {
		return nil, fmt.Errorf("malformed date day %q", s)
	}

	return &Date{Year: year, Month: month, Day: day}, nil
}

func parseTime(s string) (*Time, error) {
	if len(s) < 8 || s[2] != ':' || s[5] != ':' {
		return nil, fmt.Errorf("malformed time %q", s)
	}

	hour, err := strconv.Atoi(s[0:2])
	if err != nil || hour > 23 {
		return nil, fmt.Errorf("malformed time hour %q", s)
	}

	minute, err := strconv.Atoi(s[3:5])
	if err != nil || minute > 59 {
		return nil, fmt.Errorf("malformed time minute %q", s)
	}

	second, err := strconv.Atoi(s[6:8])
	if err != nil || second > 60 {
		return nil, fmt.Errorf("malformed time second %q", s)
	}

	t := &Time{Hour: hour, Minute: minute, Second: second}

	if len(s) > 8 {
		if s[8] != '.' {
			return nil, fmt.Errorf("malformed fractional seconds %q", s)
		}

		frac := s[9:]
		if !isAllDigits(frac) || frac == "" {
			return nil, fmt.Errorf("malformed fractional seconds %q", s)
		}

		for len(frac) < 9 {
			frac += "0"
		}

		frac = frac[:9]

		nanos, err := strconv.Atoi(frac)
		if err != nil {
			return nil, fmt.Errorf("malformed fractional seconds %q", s)
		}

		t.Nanosecond = nanos
	}

	return t, nil
}

func parseOffset(s string) (*Offset, error) {
	if s == "Z" || s == "z" {
		return &Offset{}, nil
	}

	if len(s) != 6 || (s[0] != '+' && s[0] != '-') || s[3] != ':' {
		return nil, fmt.Errorf("malformed offset %q", s)
	}

	hour, err := strconv.Atoi(s[1:3])
	if err != nil || hour > 23 {
		return nil, fmt.Errorf("malformed offset hour %q", s)
	}

	minute, err := strconv.Atoi(s[4:6])
	if err != nil || minute > 59 {
		return nil, fmt.Errorf("malformed offset minute %q", s)
	}

	return &Offset{Negative: s[0] == '-', Hour: hour, Minute: minute}, nil
}
