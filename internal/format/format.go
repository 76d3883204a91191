// Package format converts times and durations into strings for humans.
package format

import (
	"fmt"
	"strings"
	"time"
)

// HumanDuration returns an approximation of d in a single unit.
func HumanDuration(d time.Duration) string {
	if seconds := int(d.Seconds()); seconds < 1 {
		return "Less than a second"
	} else if seconds == 1 {
		return "1 second"
	} else if seconds < 60 {
		return fmt.Sprintf("%d seconds", seconds)
	} else if minutes := int(d.Minutes()); minutes == 1 {
		return "About a minute"
	} else if minutes < 60 {
		return fmt.Sprintf("%d minutes", minutes)
	} else if hours := int(d.Hours() + 0.5); hours == 1 {
		return "About an hour"
	} else if hours < 48 {
		return fmt.Sprintf("%d hours", hours)
	} else if hours < 24*7*2 {
		return fmt.Sprintf("%d days", hours/24)
	} else if hours < 24*30*2 {
		return fmt.Sprintf("%d weeks", hours/24/7)
	} else if hours < 24*365*2 {
		return fmt.Sprintf("%d months", hours/24/30)
	}

	return fmt.Sprintf("%d years", int(d.Hours())/24/365)
}

// HumanTime returns the approximate distance between t and now, or zeroValue
// when t is the zero value.
func HumanTime(t time.Time, zeroValue string) string {
	return humanTimeWithCase(t, zeroValue, false)
}

// HumanTimeLower is HumanTime with the first word in lower case, for use in
// the middle of a sentence.
func HumanTimeLower(t time.Time, zeroValue string) string {
	return humanTimeWithCase(t, zeroValue, true)
}

func humanTimeWithCase(t time.Time, zeroValue string, lower bool) string {
	if t.IsZero() {
		return zeroValue
	}

	var s string
	if t.After(time.Now()) {
		s = HumanDuration(time.Until(t)) + " from now"
	} else {
		s = HumanDuration(time.Since(t)) + " ago"
	}
	if lower {
		return strings.ToLower(s[:1]) + s[1:]
	}
	return s
}

// ExactDuration renders every non-zero unit of d, hours first.
func ExactDuration(d time.Duration) string {
	var parts []string

	part := func(n int, unit string) {
		switch {
		case n == 1:
			parts = append(parts, fmt.Sprintf("1 %s", unit))
		case n > 1:
			parts = append(parts, fmt.Sprintf("%d %ss", n, unit))
		}
	}

	part(int(d.Hours()), "hour")
	part(int(d.Minutes())%60, "minute")
	part(int(d.Seconds())%60, "second")
	if d < time.Second {
		part(int(d.Milliseconds()), "millisecond")
	}

	if len(parts) == 0 {
		return "0 seconds"
	}
	return strings.Join(parts, " ")
}
