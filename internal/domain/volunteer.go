package domain

import (
	"fmt"
	"strings"
	"time"
)

// AvailabilityWindow is a recurring weekly time slot during which a volunteer
// accepts rides. Start and End are minutes since midnight; End is exclusive.
type AvailabilityWindow struct {
	Day   time.Weekday
	Start int
	End   int
}

// Contains reports whether t falls inside the window.
func (w AvailabilityWindow) Contains(t time.Time) bool {
	if t.Weekday() != w.Day {
		return false
	}
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= w.Start && minutes < w.End
}

// String renders the window in the "Monday 09:00-12:00" form used on the wire
// and in storage.
func (w AvailabilityWindow) String() string {
	return fmt.Sprintf("%s %02d:%02d-%02d:%02d",
		w.Day, w.Start/60, w.Start%60, w.End/60, w.End%60)
}

// ParseWindow parses a single "Monday 09:00-12:00" token.
func ParseWindow(s string) (AvailabilityWindow, error) {
	var w AvailabilityWindow

	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 2 {
		return w, fmt.Errorf("invalid availability window %q", s)
	}

	day, ok := weekdayByName(parts[0])
	if !ok {
		return w, fmt.Errorf("invalid weekday %q", parts[0])
	}

	times := strings.SplitN(parts[1], "-", 2)
	if len(times) != 2 {
		return w, fmt.Errorf("invalid time range %q", parts[1])
	}

	start, err := parseMinutes(times[0])
	if err != nil {
		return w, err
	}
	end, err := parseMinutes(times[1])
	if err != nil {
		return w, err
	}
	if end <= start {
		return w, fmt.Errorf("window %q ends before it starts", s)
	}

	w.Day = day
	w.Start = start
	w.End = end
	return w, nil
}

// ParseAvailability parses a comma-separated list of window tokens. An empty
// string yields no windows.
func ParseAvailability(s string) ([]AvailabilityWindow, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var windows []AvailabilityWindow
	for _, token := range strings.Split(s, ",") {
		w, err := ParseWindow(token)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, nil
}

// FormatAvailability renders windows as the comma-separated storage encoding.
func FormatAvailability(windows []AvailabilityWindow) string {
	tokens := make([]string, len(windows))
	for i, w := range windows {
		tokens[i] = w.String()
	}
	return strings.Join(tokens, ",")
}

func weekdayByName(name string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, true
		}
	}
	return 0, false
}

func parseMinutes(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return h*60 + m, nil
}

// Volunteer represents a volunteer driver.
type Volunteer struct {
	ID           string
	Name         string
	Phone        string
	CarModel     string
	LicensePlate string
	Availability []AvailabilityWindow
	// CurrentLocation is the volunteer's last reported address. Optional;
	// volunteers without one rank last during matching.
	CurrentLocation string
	CreatedAt       time.Time
}

// AvailableAt reports whether any availability window contains t.
func (v *Volunteer) AvailableAt(t time.Time) bool {
	for _, w := range v.Availability {
		if w.Contains(t) {
			return true
		}
	}
	return false
}
