// Package position assigns dialect position labels to seats relative
// to the dealer button. Labels are strategic designations only; the
// renderer decides which of them get display text.
package position

import (
	"fmt"
	"sort"
)

// Label is a seat's position relative to the button.
type Label int

const (
	SmallBlind Label = iota
	BigBlind
	UnderTheGun
	UnderTheGunPlus1
	UnderTheGunPlus2
	MiddlePosition
	Hijack
	Cutoff
	Button
)

func (l Label) String() string {
	switch l {
	case SmallBlind:
		return "small blind"
	case BigBlind:
		return "big blind"
	case UnderTheGun:
		return "under the gun"
	case UnderTheGunPlus1:
		return "under the gun +1"
	case UnderTheGunPlus2:
		return "under the gun +2"
	case MiddlePosition:
		return "middle position"
	case Hijack:
		return "hijack"
	case Cutoff:
		return "cutoff"
	case Button:
		return "button"
	default:
		return "unknown"
	}
}

// Map assigns one label per occupied seat.
type Map map[int]Label

// InvalidSeatCountError reports a table too small to label.
type InvalidSeatCountError struct {
	Count int
}

func (e *InvalidSeatCountError) Error() string {
	return fmt.Sprintf("cannot resolve positions for %d active seats", e.Count)
}

// middleLabels lists the labels between the big blind and the button,
// in acting order, keyed by table size. Fixed by the dialect for 2 to
// 9 handed play.
var middleLabels = map[int][]Label{
	4: {UnderTheGun},
	5: {UnderTheGun, Cutoff},
	6: {UnderTheGun, MiddlePosition, Cutoff},
	7: {UnderTheGun, UnderTheGunPlus1, MiddlePosition, Cutoff},
	8: {UnderTheGun, UnderTheGunPlus1, MiddlePosition, Hijack, Cutoff},
	9: {UnderTheGun, UnderTheGunPlus1, UnderTheGunPlus2, MiddlePosition, Hijack, Cutoff},
}

// Resolve builds the seat to label assignment for the given button
// seat and set of active seats. Heads-up the button is the small
// blind; with three or more seats the blinds sit clockwise from the
// button and the button is always labeled last.
func Resolve(buttonSeat int, activeSeats []int) (Map, error) {
	if len(activeSeats) < 2 {
		return nil, &InvalidSeatCountError{Count: len(activeSeats)}
	}
	if len(activeSeats) > 9 {
		return nil, &InvalidSeatCountError{Count: len(activeSeats)}
	}

	seats := append([]int(nil), activeSeats...)
	sort.Ints(seats)

	// Order seats clockwise starting at the button. A button seat that
	// is not itself active (the player busted or sat out) anchors the
	// rotation at the nearest active seat counter-clockwise.
	order := clockwiseFrom(seats, buttonSeat)

	m := make(Map, len(seats))
	if len(seats) == 2 {
		m[order[0]] = SmallBlind
		m[order[1]] = BigBlind
		return m, nil
	}

	m[order[0]] = Button
	m[order[1]] = SmallBlind
	m[order[2]] = BigBlind
	for i, label := range middleLabels[len(seats)] {
		m[order[3+i]] = label
	}
	return m, nil
}

// clockwiseFrom returns the active seats ordered clockwise beginning
// with the button's seat (or the nearest active seat before it).
func clockwiseFrom(sorted []int, buttonSeat int) []int {
	start := len(sorted) - 1 // wrap to the highest seat when none precede the button
	for i, s := range sorted {
		if s <= buttonSeat {
			start = i
		}
	}
	out := make([]int, 0, len(sorted))
	for i := 0; i < len(sorted); i++ {
		out = append(out, sorted[(start+i)%len(sorted)])
	}
	return out
}
