package validation

import (
	"testing"
	"time"
)

func fixedExtractor(t *testing.T) *Extractor {
	t.Helper()
	e := NewExtractor(20)
	// Wednesday 2026-03-04 12:00 local.
	e.Now = func() time.Time {
		return time.Date(2026, 3, 4, 12, 0, 0, 0, time.Local)
	}
	return e
}

func TestExtractSoloTomorrowEvening(t *testing.T) {
	e := fixedExtractor(t)
	got := e.Extract("just me tomorrow at 7pm")
	if got.PartySize != 1 {
		t.Fatalf("PartySize = %d, want 1", got.PartySize)
	}
	if got.Date != "2026-03-05" {
		t.Fatalf("Date = %q, want 2026-03-05", got.Date)
	}
	if got.Time != "19:00" {
		t.Fatalf("Time = %q, want 19:00", got.Time)
	}
}

func TestExtractPartySize(t *testing.T) {
	e := fixedExtractor(t)
	tests := []struct {
		message string
		want    int
	}{
		{"table for my brother and me", 2},
		{"family of five", 3},
		{"dinner for 4 people", 4},
		{"a table for 6 please", 6},
		{"I'll come alone", 1},
		{"me and my brother and his brother", 3},
		{"both of us want a haircut", 2},
		{"book me a massage", 0},
		{"reservation for 100 people", 0}, // above max, left for the agent to ask
	}
	for _, tt := range tests {
		got := e.Extract(tt.message)
		if got.PartySize != tt.want {
			t.Errorf("Extract(%q).PartySize = %d, want %d", tt.message, got.PartySize, tt.want)
		}
	}
}

func TestExtractSoloOverridesNumbers(t *testing.T) {
	e := fixedExtractor(t)
	got := e.Extract("just me, party of 3 was a mistake")
	if got.PartySize != 1 {
		t.Fatalf("PartySize = %d, want 1 (solo wins)", got.PartySize)
	}
}

func TestExtractDates(t *testing.T) {
	e := fixedExtractor(t)
	tests := []struct {
		message string
		want    string
	}{
		{"book for tonight", "2026-03-04"},
		{"tomorrow works", "2026-03-05"},
		{"sometime next week", "2026-03-11"},
		{"this weekend please", "2026-03-07"}, // next Saturday
		{"on 12/03/2026", "2026-03-12"},
		{"on 15 March 2026", "2026-03-15"},
		{"on 15 Mar 2026", "2026-03-15"},
		{"no date here", ""},
	}
	for _, tt := range tests {
		got := e.Extract(tt.message)
		if got.Date != tt.want {
			t.Errorf("Extract(%q).Date = %q, want %q", tt.message, got.Date, tt.want)
		}
	}
}

func TestExtractWeekendOnSaturdayRollsForward(t *testing.T) {
	e := NewExtractor(20)
	e.Now = func() time.Time {
		// A Saturday.
		return time.Date(2026, 3, 7, 9, 0, 0, 0, time.Local)
	}
	got := e.Extract("the weekend would be great")
	if got.Date != "2026-03-14" {
		t.Fatalf("Date = %q, want next Saturday 2026-03-14", got.Date)
	}
}

func TestExtractTimes(t *testing.T) {
	e := fixedExtractor(t)
	tests := []struct {
		message string
		want    string
	}{
		{"at 7pm", "19:00"},
		{"at 7:30 PM", "19:30"},
		{"at 12 pm", "12:00"},
		{"at 12 am", "00:00"},
		{"at 9 o'clock", "09:00"},
		{"around 14:45", "14:45"},
		{"tonight", "18:00"}, // evening default
		{"no time mentioned", ""},
	}
	for _, tt := range tests {
		got := e.Extract(tt.message)
		if got.Time != tt.want {
			t.Errorf("Extract(%q).Time = %q, want %q", tt.message, got.Time, tt.want)
		}
	}
}

func TestExtractServiceType(t *testing.T) {
	e := fixedExtractor(t)
	tests := []struct {
		message string
		want    string
	}{
		{"I need a haircut", "Haircut"},
		{"beard trim please", "Beard Trim & Shape"},
		{"dinner for two", "Dinner Reservation"},
		{"I'd like to make a booking", "General Service"},
		{"hello there", ""},
	}
	for _, tt := range tests {
		got := e.Extract(tt.message)
		if got.ServiceType != tt.want {
			t.Errorf("Extract(%q).ServiceType = %q, want %q", tt.message, got.ServiceType, tt.want)
		}
	}
}

func TestExtractIdentifiers(t *testing.T) {
	if got := ExtractReservationID("cancel res17095551234 please"); got != "RES17095551234" {
		t.Errorf("ExtractReservationID = %q", got)
	}
	if got := ExtractPhone("my number is (555) 123-4567"); got != "5551234567" {
		t.Errorf("ExtractPhone = %q", got)
	}
	if got := ExtractPhone("no number here"); got != "" {
		t.Errorf("ExtractPhone = %q, want empty", got)
	}
	if got := ExtractEmail("reach me at Sam.Jones@Example.COM thanks"); got != "Sam.Jones@Example.COM" {
		t.Errorf("ExtractEmail = %q", got)
	}
}
