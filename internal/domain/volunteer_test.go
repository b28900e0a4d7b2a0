package domain

import (
	"testing"
	"time"
)

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("Monday 09:00-12:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Day != time.Monday {
		t.Errorf("expected Monday, got %s", w.Day)
	}
	if w.Start != 9*60 || w.End != 12*60 {
		t.Errorf("expected 540-720, got %d-%d", w.Start, w.End)
	}
}

func TestParseWindow_Invalid(t *testing.T) {
	cases := []string{
		"",
		"Monday",
		"Funday 09:00-12:00",
		"Monday 12:00-09:00",
		"Monday 09:00-09:00",
		"Monday 25:00-26:00",
		"Monday 09:00",
	}
	for _, s := range cases {
		if _, err := ParseWindow(s); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
}

func TestWindowRoundTrip(t *testing.T) {
	windows, err := ParseAvailability("Monday 09:00-12:00,Wednesday 13:00-16:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}

	encoded := FormatAvailability(windows)
	if encoded != "Monday 09:00-12:00,Wednesday 13:00-16:00" {
		t.Errorf("unexpected encoding %q", encoded)
	}
}

func TestParseAvailability_Empty(t *testing.T) {
	windows, err := ParseAvailability("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 0 {
		t.Errorf("expected no windows, got %d", len(windows))
	}
}

func TestWindowContains(t *testing.T) {
	w := AvailabilityWindow{Day: time.Saturday, Start: 9 * 60, End: 12 * 60}

	// 2025-07-26 is a Saturday.
	inside := time.Date(2025, 7, 26, 10, 0, 0, 0, time.UTC)
	atStart := time.Date(2025, 7, 26, 9, 0, 0, 0, time.UTC)
	atEnd := time.Date(2025, 7, 26, 12, 0, 0, 0, time.UTC)
	wrongDay := time.Date(2025, 7, 27, 10, 0, 0, 0, time.UTC)

	if !w.Contains(inside) {
		t.Error("expected window to contain 10:00")
	}
	if !w.Contains(atStart) {
		t.Error("window start is inclusive")
	}
	if w.Contains(atEnd) {
		t.Error("window end is exclusive")
	}
	if w.Contains(wrongDay) {
		t.Error("expected day mismatch to exclude")
	}
}

func TestVolunteerAvailableAt(t *testing.T) {
	v := &Volunteer{
		ID: "vol-1",
		Availability: []AvailabilityWindow{
			{Day: time.Monday, Start: 9 * 60, End: 12 * 60},
			{Day: time.Saturday, Start: 8 * 60, End: 18 * 60},
		},
	}

	saturdayMorning := time.Date(2025, 7, 26, 10, 0, 0, 0, time.UTC)
	mondayNight := time.Date(2025, 7, 28, 22, 0, 0, 0, time.UTC)

	if !v.AvailableAt(saturdayMorning) {
		t.Error("expected volunteer available on Saturday morning")
	}
	if v.AvailableAt(mondayNight) {
		t.Error("expected volunteer unavailable on Monday night")
	}

	none := &Volunteer{ID: "vol-2"}
	if none.AvailableAt(saturdayMorning) {
		t.Error("volunteer with no windows is never available")
	}
}
