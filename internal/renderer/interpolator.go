package renderer

import (
	"time"
	"unicode/utf8"
)

// TypedPrefix returns the part of text typed after elapsed time at one
// rune per interval.
func TypedPrefix(text string, elapsed, interval time.Duration) string {
	if elapsed <= 0 || interval <= 0 {
		return ""
	}
	return PrefixRunes(text, int(elapsed/interval))
}

// PrefixRunes returns the first n runes of s.
func PrefixRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if n >= utf8.RuneCountInString(s) {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Progress returns how far t is through [start, end], clamped to 0..1
func Progress(t, start, end time.Duration) float64 {
	if t <= start {
		return 0
	}
	if t >= end || end <= start {
		return 1
	}
	return float64(t-start) / float64(end-start)
}

// Revealed counts the items of a staggered reveal: the first appears at
// start and one more every interval, up to total.
func Revealed(t, start, interval time.Duration, total int) int {
	if t < start || total <= 0 {
		return 0
	}
	if interval <= 0 {
		return total
	}
	n := int((t-start)/interval) + 1
	if n > total {
		return total
	}
	return n
}

// CursorVisible toggles every half period, starting visible.
func CursorVisible(t, half time.Duration) bool {
	if half <= 0 {
		return true
	}
	if t < 0 {
		t = -t
	}
	return (t/half)%2 == 0
}

// Lerp performs linear interpolation between a and b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// EaseInOutCubic applies smooth easing function
func EaseInOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if t < 0.5 {
		return 4 * t * t * t
	}
	p := 2*t - 2
	return 1 + p*p*p/2
}
