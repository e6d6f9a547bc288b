package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/duration"
)

// Duration is a time.Duration that serializes as an ISO 8601 duration
// string, the representation OpenADR3 uses on the wire (PT1H, P3DT4H, ...).
type Duration time.Duration

// ParseDuration parses an ISO 8601 duration string. Plain Go duration
// syntax ("90m", "3d") is accepted as well.
func ParseDuration(s string) (Duration, error) {
	if d, err := parseISO(s); err == nil {
		return d, nil
	}
	if plain, err := duration.Parse(s); err == nil {
		return Duration(plain), nil
	}
	return 0, fmt.Errorf("parse duration: %q is not an ISO 8601 or Go duration", s)
}

// parseISO parses the ISO 8601 duration designators OpenADR3 uses:
// weeks, days, hours, minutes, and fractional seconds. Years and months
// have no fixed length and are rejected.
func parseISO(s string) (Duration, error) {
	orig := s
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if len(s) < 2 || s[0] != 'P' {
		return 0, fmt.Errorf("%q is not an ISO 8601 duration", orig)
	}
	s = s[1:]

	var total time.Duration
	inTime := false
	seen := false
	for len(s) > 0 {
		if s[0] == 'T' {
			if inTime {
				return 0, fmt.Errorf("%q has a repeated time designator", orig)
			}
			inTime = true
			s = s[1:]
			continue
		}
		i := 0
		for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
			i++
		}
		if i == 0 || i == len(s) {
			return 0, fmt.Errorf("%q is not an ISO 8601 duration", orig)
		}
		value, err := strconv.ParseFloat(s[:i], 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not an ISO 8601 duration", orig)
		}

		var scale time.Duration
		switch {
		case !inTime && s[i] == 'W':
			scale = 7 * 24 * time.Hour
		case !inTime && s[i] == 'D':
			scale = 24 * time.Hour
		case inTime && s[i] == 'H':
			scale = time.Hour
		case inTime && s[i] == 'M':
			scale = time.Minute
		case inTime && s[i] == 'S':
			scale = time.Second
		default:
			return 0, fmt.Errorf("%q has unsupported designator %q", orig, string(s[i]))
		}
		total += time.Duration(value * float64(scale))
		seen = true
		s = s[i+1:]
	}
	if !seen {
		return 0, fmt.Errorf("%q carries no duration components", orig)
	}
	if neg {
		total = -total
	}
	return Duration(total), nil
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String formats the duration in ISO 8601 form.
func (d Duration) String() string {
	v := time.Duration(d)
	if v == 0 {
		return "PT0S"
	}

	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
		v = -v
	}
	b.WriteByte('P')

	if days := v / (24 * time.Hour); days > 0 {
		fmt.Fprintf(&b, "%dD", days)
		v -= days * 24 * time.Hour
	}
	if v == 0 {
		return b.String()
	}

	b.WriteByte('T')
	if h := v / time.Hour; h > 0 {
		fmt.Fprintf(&b, "%dH", h)
		v -= h * time.Hour
	}
	if m := v / time.Minute; m > 0 {
		fmt.Fprintf(&b, "%dM", m)
		v -= m * time.Minute
	}
	if v > 0 {
		secs := v.Seconds()
		if secs == float64(int64(secs)) {
			fmt.Fprintf(&b, "%dS", int64(secs))
		} else {
			fmt.Fprintf(&b, "%gS", secs)
		}
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
