// Package timeline replays a parsed OHH record into an annotated,
// street-partitioned action timeline, deriving the facts the target
// dialect prints but OHH does not store: amounts to call, all-in
// flags, uncalled-bet returns, pot totals and side-pot shares.
//
// The result is immutable once built; the renderer only reads it.
package timeline

import (
	"fmt"

	"github.com/pokertools/ohh2stars/internal/ohh"
)

// Entry is one action in the reconstructed timeline, annotated with
// the betting context at the moment it happened.
type Entry struct {
	Kind     ohh.ActionKind
	PlayerID string
	// Amount is the chips the action moved: the increment for calls
	// and posts, the returned excess for uncalled returns.
	Amount int64
	// RaiseTo/RaiseFrom carry the street bet level a bet or raise
	// moved to and from ("raises $0.12 to $0.22").
	RaiseTo   int64
	RaiseFrom int64
	ToCall    int64
	PotAfter  int64
	AllIn     bool
	Cards     []string
	// Synthesized marks entries the reconstructor added itself
	// (uncalled-bet returns not present in the record).
	Synthesized bool
}

// StreetSection is one street's cards and annotated actions.
type StreetSection struct {
	Street ohh.Street
	Cards  []string // cards revealed on this street
	Board  []string // cumulative board after the reveal
	Entries []Entry
}

// PlayerFacts are the per-player derived facts the summary needs.
type PlayerFacts struct {
	Seat        int
	PlayerID    string
	Name        string
	Contributed int64 // total across streets, net of uncalled returns
	FinalStack  int64
	AllIn       bool
	Folded      bool
	FoldedOn    ohh.Street
	PutChipsIn  bool // contributed anything at all (blinds included)
	Showed      bool
	ShownCards  []string
	Mucked      bool
	Won         int64
}

// PotResult is one pot's award set, either supplied by the record or
// computed from contribution tiers.
type PotResult struct {
	Number int
	Amount int64
	Rake   int64
	Wins   []ohh.PlayerWin
}

// Timeline is the reconstructed hand.
type Timeline struct {
	Streets  []StreetSection
	Players  []PlayerFacts // in seat order
	TotalPot int64         // contributions net of uncalled returns (rake included)
	Rake     int64
	Pots     []PotResult
	Warnings []string

	index map[string]int // player id -> Players index
}

// Player returns the facts for a player id, or nil.
func (t *Timeline) Player(playerID string) *PlayerFacts {
	if i, ok := t.index[playerID]; ok {
		return &t.Players[i]
	}
	return nil
}

// WonByPlayer returns the total amount a player collected.
func (t *Timeline) WonByPlayer(playerID string) int64 {
	if p := t.Player(playerID); p != nil {
		return p.Won
	}
	return 0
}

// reconstructor carries the mutable replay state.
type reconstructor struct {
	hand    *ohh.Hand
	epsilon int64
	tl      *Timeline

	stacks       map[string]int64
	streetContrib map[string]int64
	currentBet   int64
	pot          int64
	hadReturn    bool // explicit uncalled return seen on the current street
}

// Reconstruct replays the hand's rounds in order and returns the
// annotated timeline. epsilon is the rounding tolerance in minor
// units for stack and pot consistency checks.
func Reconstruct(h *ohh.Hand, epsilon int64) (*Timeline, error) {
	r := &reconstructor{
		hand:    h,
		epsilon: epsilon,
		tl: &Timeline{
			index: make(map[string]int, len(h.Seats)),
		},
		stacks:        make(map[string]int64, len(h.Seats)),
		streetContrib: make(map[string]int64, len(h.Seats)),
	}

	for i, s := range h.Seats {
		r.tl.Players = append(r.tl.Players, PlayerFacts{
			Seat:       s.Number,
			PlayerID:   s.PlayerID,
			Name:       s.Name,
			FinalStack: s.StartingStack,
		})
		r.tl.index[s.PlayerID] = i
		r.stacks[s.PlayerID] = s.StartingStack
	}

	prev := ohh.Street(-1)
	var board []string
	for _, round := range h.Rounds {
		if round.Street < prev {
			return nil, inconsistent(0, "", "street %s after %s", round.Street, prev)
		}

		if round.Street != prev {
			// Close out the betting street we are leaving.
			if err := r.endStreet(prev); err != nil {
				return nil, err
			}
			board = append(board, round.Cards...)
			r.tl.Streets = append(r.tl.Streets, StreetSection{
				Street: round.Street,
				Cards:  round.Cards,
				Board:  append([]string(nil), board...),
			})
		} else if len(round.Cards) > 0 {
			// Same street split across rounds; extend the board.
			board = append(board, round.Cards...)
			sec := &r.tl.Streets[len(r.tl.Streets)-1]
			sec.Cards = append(sec.Cards, round.Cards...)
			sec.Board = append([]string(nil), board...)
		}
		prev = round.Street

		for _, a := range round.Actions {
			if err := r.apply(a); err != nil {
				return nil, err
			}
		}
	}
	if err := r.endStreet(prev); err != nil {
		return nil, err
	}

	r.tl.TotalPot = r.pot
	for i := range r.tl.Players {
		r.tl.Players[i].FinalStack = r.stacks[r.tl.Players[i].PlayerID]
	}

	if err := r.resolvePots(); err != nil {
		return nil, err
	}
	return r.tl, nil
}

func (r *reconstructor) apply(a ohh.Action) error {
	if a.Amount < 0 {
		return inconsistent(a.Number, a.PlayerID, "negative amount %d", a.Amount)
	}

	var facts *PlayerFacts
	if a.PlayerID != "" {
		facts = r.tl.Player(a.PlayerID)
	}
	if facts == nil && a.Kind != ohh.KindUnknown {
		return inconsistent(a.Number, a.PlayerID, "action references unknown player")
	}

	if a.Kind.IsBetting() {
		if facts.Folded {
			return inconsistent(a.Number, a.PlayerID, "action from folded player")
		}
		if facts.AllIn {
			return inconsistent(a.Number, a.PlayerID, "action from all-in player")
		}
	}

	entry := Entry{
		Kind:     a.Kind,
		PlayerID: a.PlayerID,
		Amount:   a.Amount,
		Cards:    a.Cards,
	}

	switch a.Kind {
	case ohh.KindPostAnte:
		// Antes feed the pot but not the street bet level.
		if err := r.contribute(facts, a.Number, a.Amount, false); err != nil {
			return err
		}

	case ohh.KindPostSmallBlind, ohh.KindPostBigBlind:
		if err := r.contribute(facts, a.Number, a.Amount, true); err != nil {
			return err
		}
		if level := r.streetContrib[a.PlayerID]; level > r.currentBet {
			r.currentBet = level
		}

	case ohh.KindFold:
		facts.Folded = true
		facts.FoldedOn = r.currentStreet()

	case ohh.KindCheck:
		// No chips move.

	case ohh.KindCall:
		entry.ToCall = r.toCall(a.PlayerID)
		if err := r.contribute(facts, a.Number, a.Amount, true); err != nil {
			return err
		}

	case ohh.KindBet, ohh.KindRaise:
		// OHH bets and raises carry the street total.
		already := r.streetContrib[a.PlayerID]
		delta := a.Amount - already
		if delta < 0 {
			return inconsistent(a.Number, a.PlayerID, "street total %d below prior contribution %d", a.Amount, already)
		}
		entry.RaiseFrom = r.currentBet
		entry.RaiseTo = a.Amount
		entry.ToCall = r.toCall(a.PlayerID)
		if err := r.contribute(facts, a.Number, delta, true); err != nil {
			return err
		}
		if a.Amount > r.currentBet {
			r.currentBet = a.Amount
		}

	case ohh.KindDealtCards:
		// Card deal, not a betting action; recorded for the renderer.

	case ohh.KindShowsCards:
		facts.Showed = true
		if len(a.Cards) > 0 {
			facts.ShownCards = a.Cards
		}

	case ohh.KindMucksCards:
		facts.Mucked = true

	case ohh.KindUncalledReturn:
		r.applyReturn(facts, a.Amount)
		r.hadReturn = true

	case ohh.KindCollectPot:
		// Awards are taken from the record's pots (or computed);
		// explicit collect actions are informational only.

	case ohh.KindUnknown:
		// Tolerated and carried through; the renderer skips it.
	}

	if facts != nil && (a.AllIn || (a.Kind.IsBetting() && r.stacks[a.PlayerID] == 0 && facts.PutChipsIn)) {
		facts.AllIn = true
		entry.AllIn = true
	}

	entry.PotAfter = r.pot
	sec := &r.tl.Streets[len(r.tl.Streets)-1]
	sec.Entries = append(sec.Entries, entry)
	return nil
}

// contribute moves amount from the player's stack into the pot.
func (r *reconstructor) contribute(facts *PlayerFacts, actionNumber int, amount int64, street bool) error {
	if amount == 0 {
		return nil
	}
	stack := r.stacks[facts.PlayerID]
	if amount > stack+r.epsilon {
		return inconsistent(actionNumber, facts.PlayerID,
			"contribution %d exceeds remaining stack %d", amount, stack)
	}
	if amount > stack {
		amount = stack // inside epsilon, absorb the rounding slop
	}
	r.stacks[facts.PlayerID] = stack - amount
	facts.Contributed += amount
	facts.PutChipsIn = true
	if street {
		r.streetContrib[facts.PlayerID] += amount
	}
	r.pot += amount
	return nil
}

func (r *reconstructor) applyReturn(facts *PlayerFacts, amount int64) {
	r.stacks[facts.PlayerID] += amount
	facts.Contributed -= amount
	r.streetContrib[facts.PlayerID] -= amount
	r.pot -= amount
}

func (r *reconstructor) toCall(playerID string) int64 {
	diff := r.currentBet - r.streetContrib[playerID]
	if diff < 0 {
		return 0
	}
	return diff
}

func (r *reconstructor) currentStreet() ohh.Street {
	if len(r.tl.Streets) == 0 {
		return ohh.Preflop
	}
	return r.tl.Streets[len(r.tl.Streets)-1].Street
}

// endStreet synthesizes the uncalled-bet return for a finished betting
// street: whatever excess the top contributor put in beyond the next
// highest contribution was never matched and goes back.
func (r *reconstructor) endStreet(street ohh.Street) error {
	defer func() {
		r.streetContrib = make(map[string]int64, len(r.tl.Players))
		r.currentBet = 0
		r.hadReturn = false
	}()

	if street < ohh.Preflop || street > ohh.River || r.hadReturn {
		return nil
	}

	var topID string
	var top, second int64
	tied := false
	for id, c := range r.streetContrib {
		switch {
		case c > top:
			second = top
			top = c
			topID = id
			tied = false
		case c == top && c > 0:
			tied = true
		case c > second:
			second = c
		}
	}
	if tied || topID == "" || top <= second {
		return nil
	}

	facts := r.tl.Player(topID)
	excess := top - second
	r.applyReturn(facts, excess)
	sec := &r.tl.Streets[len(r.tl.Streets)-1]
	sec.Entries = append(sec.Entries, Entry{
		Kind:        ohh.KindUncalledReturn,
		PlayerID:    topID,
		Amount:      excess,
		PotAfter:    r.pot,
		Synthesized: true,
	})
	return nil
}

// resolvePots fills Pots, Rake and per-player winnings. Supplied pot
// awards are authoritative; the computed distribution only cross-checks
// them, and a mismatch beyond epsilon becomes a warning, not an error.
func (r *reconstructor) resolvePots() error {
	if len(r.hand.Pots) > 0 {
		var suppliedWins int64
		for _, p := range r.hand.Pots {
			r.tl.Rake += p.Rake
			pr := PotResult{Number: p.Number, Amount: p.Amount, Rake: p.Rake}
			for _, w := range p.Wins {
				facts := r.tl.Player(w.PlayerID)
				if facts == nil {
					return inconsistent(0, w.PlayerID, "pot award references unknown player")
				}
				facts.Won += w.Amount
				suppliedWins += w.Amount
				pr.Wins = append(pr.Wins, w)
			}
			r.tl.Pots = append(r.tl.Pots, pr)
		}

		computed := r.tl.TotalPot - r.tl.Rake
		if diff := suppliedWins - computed; diff > r.epsilon || diff < -r.epsilon {
			r.tl.Warnings = append(r.tl.Warnings, fmt.Sprintf(
				"pot award mismatch: supplied awards total %d, contributions minus rake total %d",
				suppliedWins, computed))
		}
		return nil
	}

	for _, pr := range r.computePots() {
		r.tl.Pots = append(r.tl.Pots, pr)
		for _, w := range pr.Wins {
			r.tl.Player(w.PlayerID).Won += w.Amount
		}
	}
	return nil
}
