package validation

import "testing"

func TestValidateName(t *testing.T) {
	tests := []struct {
		in     string
		ok     bool
		result string
	}{
		{"  sam jones ", true, "Sam Jones"},
		{"o'brien", true, "O'Brien"},
		{"anne-marie", true, "Anne-Marie"},
		{"J", false, ""},
		{"", false, ""},
		{"x--y", false, ""},
		{"1234", false, ""},
		{"sam@jones", false, ""},
	}
	for _, tt := range tests {
		ok, got := ValidateName(tt.in)
		if ok != tt.ok {
			t.Errorf("ValidateName(%q) ok = %v, want %v (%s)", tt.in, ok, tt.ok, got)
			continue
		}
		if ok && got != tt.result {
			t.Errorf("ValidateName(%q) = %q, want %q", tt.in, got, tt.result)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		in     string
		ok     bool
		result string
	}{
		{"5551234567", true, "+1 (555) 123-4567"},
		{"(555) 123-4567", true, "+1 (555) 123-4567"},
		{"15551234567", true, "+1 (555) 123-4567"},
		{"445551234567", true, "+44 (555) 123-4567"},
		{"12345", false, ""},
		{"", false, ""},
		{"12345678901234", false, ""},
	}
	for _, tt := range tests {
		ok, got := ValidatePhone(tt.in)
		if ok != tt.ok {
			t.Errorf("ValidatePhone(%q) ok = %v (%s), want %v", tt.in, ok, got, tt.ok)
			continue
		}
		if ok && got != tt.result {
			t.Errorf("ValidatePhone(%q) = %q, want %q", tt.in, got, tt.result)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	if ok, got := ValidateEmail(" Sam.Jones@Example.COM "); !ok || got != "sam.jones@example.com" {
		t.Fatalf("ValidateEmail = %v, %q", ok, got)
	}
	if ok, _ := ValidateEmail("not-an-email"); ok {
		t.Fatalf("ValidateEmail accepted junk")
	}
}

func TestValidatePartySize(t *testing.T) {
	if ok, _ := ValidatePartySize(1, 8); !ok {
		t.Fatalf("party of 1 should be valid")
	}
	if ok, reason := ValidatePartySize(9, 8); ok || reason != "Maximum party size is 8" {
		t.Fatalf("party of 9 = %v, %q", ok, reason)
	}
	if ok, _ := ValidatePartySize(0, 8); ok {
		t.Fatalf("party of 0 should be invalid")
	}
}
