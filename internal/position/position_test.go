package position_test

import (
	"errors"
	"testing"

	"github.com/pokertools/ohh2stars/internal/position"
)

func TestResolveHeadsUp(t *testing.T) {
	t.Parallel()

	m, err := position.Resolve(3, []int{3, 7})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if m[3] != position.SmallBlind {
		t.Errorf("button seat should be small blind heads-up, got %v", m[3])
	}
	if m[7] != position.BigBlind {
		t.Errorf("other seat should be big blind, got %v", m[7])
	}
}

func TestResolveSixHanded(t *testing.T) {
	t.Parallel()

	seats := []int{1, 2, 3, 4, 5, 6}
	m, err := position.Resolve(3, seats)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	want := position.Map{
		3: position.Button,
		4: position.SmallBlind,
		5: position.BigBlind,
		6: position.UnderTheGun,
		1: position.MiddlePosition,
		2: position.Cutoff,
	}
	for seat, label := range want {
		if m[seat] != label {
			t.Errorf("seat %d = %v, want %v", seat, m[seat], label)
		}
	}
}

func TestResolveWithSeatGaps(t *testing.T) {
	t.Parallel()

	// Button on seat 8 with seats 1, 4, 6 occupied: rotation anchors on
	// the nearest occupied seat counter-clockwise from the button.
	m, err := position.Resolve(8, []int{1, 4, 6})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if m[6] != position.Button {
		t.Errorf("seat 6 = %v, want button", m[6])
	}
	if m[1] != position.SmallBlind {
		t.Errorf("seat 1 = %v, want small blind", m[1])
	}
	if m[4] != position.BigBlind {
		t.Errorf("seat 4 = %v, want big blind", m[4])
	}
}

func TestResolveButtonBeforeAllSeats(t *testing.T) {
	t.Parallel()

	// No occupied seat at or before the button: wrap to the highest seat.
	m, err := position.Resolve(1, []int{2, 5})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if m[5] != position.SmallBlind || m[2] != position.BigBlind {
		t.Errorf("got %v, want seat 5 small blind, seat 2 big blind", m)
	}
}

func TestResolveTooFewSeats(t *testing.T) {
	t.Parallel()

	_, err := position.Resolve(1, []int{1})
	var isc *position.InvalidSeatCountError
	if !errors.As(err, &isc) {
		t.Fatalf("want InvalidSeatCountError, got %v", err)
	}
	if isc.Count != 1 {
		t.Errorf("Count = %d, want 1", isc.Count)
	}
}
