// Package ohh parses Open Hand History records into a typed, validated
// in-memory representation. All monetary amounts are converted to int64
// minor units (cents) on the way in; nothing downstream touches floats.
package ohh

import "time"

// Variant is the poker variant recorded in the hand.
type Variant int

const (
	Holdem Variant = iota
	Omaha
	OmahaHiLo
)

// Label returns the dialect's display name for the variant.
func (v Variant) Label() string {
	switch v {
	case Holdem:
		return "Hold'em"
	case Omaha:
		return "Omaha"
	case OmahaHiLo:
		return "Omaha Hi/Lo"
	default:
		return "Hold'em"
	}
}

// Limit is the betting structure of the hand.
type Limit int

const (
	NoLimit Limit = iota
	PotLimit
	FixedLimit
)

// Label returns the dialect's display name for the betting structure.
func (l Limit) Label() string {
	switch l {
	case NoLimit:
		return "No Limit"
	case PotLimit:
		return "Pot Limit"
	case FixedLimit:
		return "Limit"
	default:
		return "No Limit"
	}
}

// Street identifies a betting round. The order of the constants is the
// canonical chronological order; rounds appearing out of this order are
// rejected by the timeline reconstructor.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	switch s {
	case Preflop:
		return "Preflop"
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	case Showdown:
		return "Showdown"
	default:
		return "Unknown"
	}
}

// ActionKind enumerates every action the converter understands. Records
// may carry kinds outside this set (seat changes, chat); those parse to
// KindUnknown and are carried through untouched so the renderer can
// skip them explicitly.
type ActionKind int

const (
	KindUnknown ActionKind = iota
	KindPostAnte
	KindPostSmallBlind
	KindPostBigBlind
	KindFold
	KindCheck
	KindCall
	KindBet
	KindRaise
	KindDealtCards
	KindShowsCards
	KindMucksCards
	KindUncalledReturn
	KindCollectPot
)

// IsBetting reports whether the kind moves chips or closes the
// player's participation; all-in players may not act with these again.
func (k ActionKind) IsBetting() bool {
	switch k {
	case KindPostAnte, KindPostSmallBlind, KindPostBigBlind,
		KindFold, KindCheck, KindCall, KindBet, KindRaise:
		return true
	default:
		return false
	}
}

// Hand is one parsed OHH record. Immutable once returned by Parse;
// a conversion call owns it for its whole lifetime.
type Hand struct {
	HandID      string
	SiteName    string
	NetworkName string
	Variant     Variant
	Limit       Limit
	Currency    string
	Exponent    int // decimal places for Currency
	SmallBlind  int64
	BigBlind    int64
	Ante        int64
	StartTime   time.Time
	TableName   string
	TableSize   int
	ButtonSeat  int
	HeroID      string // empty when the record has no hero
	Seats       []Seat // sorted by seat number
	Rounds      []Round
	Pots        []Pot
}

// Seat is one occupied seat at hand start.
type Seat struct {
	Number        int
	PlayerID      string
	Name          string
	StartingStack int64
}

// Round is one street's dealt cards and actions, in recorded order.
type Round struct {
	Street  Street
	Cards   []string // normalized notation
	Actions []Action
}

// Action is a single recorded action. Amount semantics follow OHH:
// Bet/Raise carry the street total ("raise to"), Call carries the
// increment, posts carry the posted amount.
type Action struct {
	Number   int
	PlayerID string
	Kind     ActionKind
	RawKind  string // original string, kept for diagnostics
	Amount   int64
	AllIn    bool
	Cards    []string
}

// Pot is a recorded pot award set (main pot is number 0).
type Pot struct {
	Number int
	Amount int64
	Rake   int64
	Wins   []PlayerWin
}

// PlayerWin is one player's share of a pot.
type PlayerWin struct {
	PlayerID string
	Amount   int64
}

// SeatByID returns the seat for a player id, or nil.
func (h *Hand) SeatByID(playerID string) *Seat {
	for i := range h.Seats {
		if h.Seats[i].PlayerID == playerID {
			return &h.Seats[i]
		}
	}
	return nil
}

// NameByID returns the display name for a player id, or "Unknown".
func (h *Hand) NameByID(playerID string) string {
	if s := h.SeatByID(playerID); s != nil {
		return s.Name
	}
	return "Unknown"
}

// SeatNumbers returns the occupied seat numbers in ascending order.
func (h *Hand) SeatNumbers() []int {
	nums := make([]int, len(h.Seats))
	for i, s := range h.Seats {
		nums[i] = s.Number
	}
	return nums
}

// ActionCount returns the number of actions across all rounds.
func (h *Hand) ActionCount() int {
	n := 0
	for _, r := range h.Rounds {
		n += len(r.Actions)
	}
	return n
}
