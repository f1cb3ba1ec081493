package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Minutes is a wall-clock time expressed as minutes since 00:00.
// Values at or beyond 1440 are legal and format with hour components >= 24,
// which is how late-night workshop slots past midnight are displayed.
type Minutes int

// GridStep is the slot resolution of the shift grid, in minutes.
const GridStep = 5

var clockPattern = regexp.MustCompile(`^([0-9]{1,2}):([0-9]{2})$`)

// ParseClock parses a "H:MM" or "HH:MM" string into Minutes.
// Unlike the permissive split-and-hope approach, malformed input is an error.
func ParseClock(s string) (Minutes, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("invalid clock time %q (expected HH:MM)", s)
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	if min > 59 {
		return 0, fmt.Errorf("invalid clock time %q: minute component out of range", s)
	}
	return Minutes(h*60 + min), nil
}

// MustClock parses s and panics on failure. For literals in tests and fixtures.
func MustClock(s string) Minutes {
	m, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return m
}

// LooksLikeClock reports whether s is shaped like a clock time. Used by the
// CSV scanner to classify rows without committing to a parse.
func LooksLikeClock(s string) bool {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return false
	}
	min, _ := strconv.Atoi(m[2])
	return min <= 59
}

// Clock formats m as zero-padded "HH:MM". No modulo is applied, so values
// past midnight keep counting (25:30 and so on).
func (m Minutes) Clock() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// SnapDown rounds m down to the nearest multiple of step.
func (m Minutes) SnapDown(step int) Minutes {
	if step <= 0 {
		return m
	}
	return m - m%Minutes(step)
}

// Slots returns the half-open sequence [start, start+step, ..., < end].
// Empty when start >= end or step is non-positive.
func Slots(start, end Minutes, step int) []Minutes {
	if step <= 0 || start >= end {
		return nil
	}
	out := make([]Minutes, 0, (int(end-start)+step-1)/step)
	for t := start; t < end; t += Minutes(step) {
		out = append(out, t)
	}
	return out
}
