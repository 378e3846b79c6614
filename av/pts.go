// Package av holds the audio/video timing helpers of the runtime. The
// rendering core only consumes presentation timestamps; decoding lives
// elsewhere.
package av

import (
	"fmt"
	"math"
	"strings"
)

// EndOfStream is the sentinel PTS marking the end of a stream.
const EndOfStream int32 = math.MinInt32

// ParseMillis parses a time string of the form [HH:]MM:SS[.fff] into
// milliseconds. Hours are optional, the fractional part carries up to
// nine digits (sub-millisecond digits are truncated), and results
// beyond the int32 range saturate.
func ParseMillis(s string) (int32, error) {
	if s == "" {
		return 0, fmt.Errorf("av: empty time string")
	}
	var frac string
	if i := strings.IndexByte(s, '.'); i >= 0 {
		frac = s[i+1:]
		s = s[:i]
		if frac == "" || len(frac) > 9 {
			return 0, fmt.Errorf("av: bad fractional seconds %q", frac)
		}
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("av: bad time string %q", s)
	}
	var hours, minutes, seconds int64
	var err error
	idx := 0
	if len(parts) == 3 {
		if hours, err = parseField(parts[0]); err != nil {
			return 0, err
		}
		idx = 1
	}
	if minutes, err = parseField(parts[idx]); err != nil {
		return 0, err
	}
	if seconds, err = parseField(parts[idx+1]); err != nil {
		return 0, err
	}

	millis := ((hours*60+minutes)*60 + seconds) * 1000
	if frac != "" {
		ms, err := parseField(frac)
		if err != nil {
			return 0, err
		}
		// Scale the fraction to milliseconds.
		for d := len(frac); d < 3; d++ {
			ms *= 10
		}
		for d := len(frac); d > 3; d-- {
			ms /= 10
		}
		millis += ms
	}
	if millis > math.MaxInt32 {
		return math.MaxInt32, nil
	}
	return int32(millis), nil
}

func parseField(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("av: empty time field")
	}
	var v int64
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("av: bad time field %q", s)
		}
		v = v*10 + int64(c-'0')
		if v > math.MaxInt32 {
			return math.MaxInt32, nil
		}
	}
	return v, nil
}

// FormatMillis renders a PTS as [HH:]MM:SS.fff, omitting the hour field
// when zero.
func FormatMillis(ms int32) string {
	neg := ""
	v := int64(ms)
	if v < 0 {
		neg = "-"
		v = -v
	}
	frac := v % 1000
	sec := v / 1000 % 60
	min := v / 60000 % 60
	hrs := v / 3600000
	if hrs > 0 {
		return fmt.Sprintf("%s%02d:%02d:%02d.%03d", neg, hrs, min, sec, frac)
	}
	return fmt.Sprintf("%s%02d:%02d.%03d", neg, min, sec, frac)
}
