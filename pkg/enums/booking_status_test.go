package enums

import "testing"

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusCompleted, false},
		{BookingStatusConfirmed, BookingStatusCompleted, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusPending, false},
		{BookingStatusCompleted, BookingStatusCancelled, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Fatalf("%s -> %s: expected allowed=%v got %v", tt.from, tt.to, tt.allowed, got)
		}
	}
}

func TestParseBookingStatus(t *testing.T) {
	if _, err := ParseBookingStatus("pending"); err != nil {
		t.Fatalf("pending should parse: %v", err)
	}
	if _, err := ParseBookingStatus("refunded"); err == nil {
		t.Fatal("unknown status should not parse")
	}
}

func TestParseAddonKind(t *testing.T) {
	for _, kind := range AllAddonKinds() {
		parsed, err := ParseAddonKind(string(kind))
		if err != nil {
			t.Fatalf("%s should parse: %v", kind, err)
		}
		if parsed != kind {
			t.Fatalf("expected %s got %s", kind, parsed)
		}
	}
	if _, err := ParseAddonKind("jetpack"); err == nil {
		t.Fatal("unknown addon should not parse")
	}
}
