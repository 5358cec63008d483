package sla

type Color string

const (
	Green  Color = "GREEN"
	Yellow Color = "YELLOW"
	Red    Color = "RED"
	// Unset is produced when elapsed falls in a gap between the yellow and
	// red limits; callers leave the stored color untouched.
	Unset Color = ""
)

type Thresholds struct {
	Green  int
	Yellow int
	Red    int
}

// Evaluate maps elapsed business days to a color. The comparisons run in a
// fixed order, so overlapping or inverted thresholds resolve to the first
// match.
func Evaluate(elapsed int, t Thresholds) Color {
	if elapsed <= t.Green {
		return Green
	} else if elapsed <= t.Yellow {
		return Yellow
	} else if elapsed >= t.Red {
		return Red
	}
	return Unset
}

// Notifies reports whether c should produce a notification.
func (c Color) Notifies() bool {
	return c == Yellow || c == Red
}
