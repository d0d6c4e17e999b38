// Package render projects a reconstructed hand onto the target
// dialect's exact line grammar. Rendering is a pure function of the
// parsed hand, the derived timeline and the position map; the only
// failure mode is an amount the dialect cannot represent.
package render

import (
	"fmt"
	"strings"

	"github.com/pokertools/ohh2stars/internal/cards"
	"github.com/pokertools/ohh2stars/internal/money"
	"github.com/pokertools/ohh2stars/internal/ohh"
	"github.com/pokertools/ohh2stars/internal/position"
	"github.com/pokertools/ohh2stars/internal/timeline"
)

// Options tweak dialect details that vary between consumers.
type Options struct {
	// TimezoneLabel is appended to the header timestamp. The instant
	// itself is never shifted; OHH timestamps are UTC.
	TimezoneLabel string
}

// UnrenderableAmountError reports a monetary value that cannot be
// expressed in the dialect's fixed-decimal convention.
type UnrenderableAmountError struct {
	Field  string
	Amount int64
}

func (e *UnrenderableAmountError) Error() string {
	return fmt.Sprintf("amount %d for %s is not renderable", e.Amount, e.Field)
}

// Render produces the complete text block for one hand.
func Render(h *ohh.Hand, tl *timeline.Timeline, positions position.Map, opts Options) (string, error) {
	if opts.TimezoneLabel == "" {
		opts.TimezoneLabel = "UTC"
	}
	if err := checkAmounts(h, tl); err != nil {
		return "", err
	}

	r := &renderer{hand: h, tl: tl, positions: positions, opts: opts}
	return r.render(), nil
}

type renderer struct {
	hand      *ohh.Hand
	tl        *timeline.Timeline
	positions position.Map
	opts      Options
	lines     []string
}

func (r *renderer) render() string {
	h := r.hand

	r.addf("PokerStars Hand #%s: %s %s (%s/%s %s) - %s %s",
		h.HandID, h.Variant.Label(), h.Limit.Label(),
		r.dollar(h.SmallBlind), r.dollar(h.BigBlind), h.Currency,
		h.StartTime.Format("2006-01-02 15:04:05"), r.opts.TimezoneLabel)
	r.addf("Table '%s' %d-max Seat #%d is the button", h.TableName, h.TableSize, h.ButtonSeat)
	for _, s := range h.Seats {
		r.addf("Seat %d: %s (%s in chips)", s.Number, s.Name, r.dollar(s.StartingStack))
	}

	for _, sec := range r.tl.Streets {
		r.renderStreet(sec)
	}
	r.renderCollected()
	r.renderSummary()

	return strings.Join(r.lines, "\n")
}

// renderStreet emits one street. Preflop keeps the dialect's ordering:
// forced bets first, then the hole-cards header, then deals, then the
// betting.
func (r *renderer) renderStreet(sec timeline.StreetSection) {
	var posts, deals, rest []string
	for _, e := range sec.Entries {
		line, ok := r.actionLine(e)
		if !ok {
			continue
		}
		switch e.Kind {
		case ohh.KindPostAnte, ohh.KindPostSmallBlind, ohh.KindPostBigBlind:
			posts = append(posts, line)
		case ohh.KindDealtCards:
			deals = append(deals, line)
		default:
			rest = append(rest, line)
		}
	}

	if sec.Street == ohh.Preflop {
		r.lines = append(r.lines, posts...)
		r.lines = append(r.lines, r.streetHeader(sec))
		r.lines = append(r.lines, deals...)
		r.lines = append(r.lines, rest...)
		return
	}

	r.lines = append(r.lines, r.streetHeader(sec))
	r.lines = append(r.lines, posts...)
	r.lines = append(r.lines, deals...)
	r.lines = append(r.lines, rest...)
}

func (r *renderer) streetHeader(sec timeline.StreetSection) string {
	switch sec.Street {
	case ohh.Preflop:
		return "*** HOLE CARDS ***"
	case ohh.Flop:
		return fmt.Sprintf("*** FLOP *** [%s]", cards.Join(sec.Cards))
	case ohh.Turn:
		if len(sec.Board) >= 4 {
			return fmt.Sprintf("*** TURN *** [%s] [%s]",
				cards.Join(sec.Board[:3]), sec.Board[3])
		}
		return fmt.Sprintf("*** TURN *** [%s]", cards.Join(sec.Cards))
	case ohh.River:
		if len(sec.Board) >= 5 {
			return fmt.Sprintf("*** RIVER *** [%s] [%s]",
				cards.Join(sec.Board[:4]), sec.Board[4])
		}
		return fmt.Sprintf("*** RIVER *** [%s]", cards.Join(sec.Cards))
	case ohh.Showdown:
		return "*** SHOW DOWN ***"
	default:
		return ""
	}
}

// actionLine renders one timeline entry. The switch is exhaustive over
// the action kinds so a new kind is a visible gap here.
func (r *renderer) actionLine(e timeline.Entry) (string, bool) {
	name := r.hand.NameByID(e.PlayerID)
	allin := ""
	if e.AllIn {
		allin = " and is all-in"
	}

	switch e.Kind {
	case ohh.KindPostSmallBlind:
		return fmt.Sprintf("%s: posts small blind %s", name, r.dollar(e.Amount)), true
	case ohh.KindPostBigBlind:
		return fmt.Sprintf("%s: posts big blind %s", name, r.dollar(e.Amount)), true
	case ohh.KindPostAnte:
		return fmt.Sprintf("%s: posts the ante %s", name, r.dollar(e.Amount)), true
	case ohh.KindFold:
		return fmt.Sprintf("%s: folds", name), true
	case ohh.KindCheck:
		return fmt.Sprintf("%s: checks", name), true
	case ohh.KindCall:
		return fmt.Sprintf("%s: calls %s%s", name, r.dollar(e.Amount), allin), true
	case ohh.KindBet, ohh.KindRaise:
		if e.RaiseFrom > 0 {
			return fmt.Sprintf("%s: raises %s to %s%s",
				name, r.dollar(e.RaiseTo-e.RaiseFrom), r.dollar(e.RaiseTo), allin), true
		}
		return fmt.Sprintf("%s: bets %s%s", name, r.dollar(e.RaiseTo), allin), true
	case ohh.KindDealtCards:
		if r.hand.HeroID != "" && e.PlayerID != r.hand.HeroID {
			return "", false
		}
		if len(e.Cards) < 2 {
			return "", false
		}
		return fmt.Sprintf("Dealt to %s [%s]", name, cards.Join(e.Cards)), true
	case ohh.KindShowsCards:
		if len(e.Cards) > 0 {
			return fmt.Sprintf("%s: shows [%s]", name, cards.Join(e.Cards)), true
		}
		return fmt.Sprintf("%s: shows", name), true
	case ohh.KindMucksCards:
		return fmt.Sprintf("%s: mucks hand", name), true
	case ohh.KindUncalledReturn:
		return fmt.Sprintf("Uncalled bet (%s) returned to %s", r.dollar(e.Amount), name), true
	case ohh.KindCollectPot:
		// Collected lines come from the pot results below.
		return "", false
	case ohh.KindUnknown:
		return "", false
	default:
		return "", false
	}
}

func (r *renderer) renderCollected() {
	multi := len(r.tl.Pots) > 1
	for _, pot := range r.tl.Pots {
		from := "from pot"
		if multi {
			if pot.Number == 0 {
				from = "from main pot"
			} else {
				from = "from side pot"
			}
		}
		for _, w := range pot.Wins {
			r.addf("%s collected %s %s", r.hand.NameByID(w.PlayerID), r.dollar(w.Amount), from)
		}
	}
}

func (r *renderer) renderSummary() {
	r.addf("*** SUMMARY ***")

	total := int64(0)
	for _, p := range r.tl.Pots {
		total += p.Amount
	}
	if total == 0 {
		total = r.tl.TotalPot
	}

	if len(r.tl.Pots) > 1 {
		detail := fmt.Sprintf("Main pot %s.", r.dollar(r.tl.Pots[0].Amount))
		for i, p := range r.tl.Pots[1:] {
			if len(r.tl.Pots) > 2 {
				detail += fmt.Sprintf(" Side pot-%d %s.", i+1, r.dollar(p.Amount))
			} else {
				detail += fmt.Sprintf(" Side pot %s.", r.dollar(p.Amount))
			}
		}
		r.addf("Total pot %s %s | Rake %s", r.dollar(total), detail, r.dollar(r.tl.Rake))
	} else {
		r.addf("Total pot %s | Rake %s", r.dollar(total), r.dollar(r.tl.Rake))
	}

	if board := r.finalBoard(); len(board) > 0 {
		r.addf("Board [%s]", cards.Join(board))
	}

	for _, seat := range r.hand.Seats {
		r.addf("%s", r.seatSummary(seat))
	}
}

func (r *renderer) seatSummary(seat ohh.Seat) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Seat %d: %s", seat.Number, seat.Name)

	if seat.Number == r.hand.ButtonSeat {
		b.WriteString(" (button)")
	}
	switch r.positions[seat.Number] {
	case position.SmallBlind:
		b.WriteString(" (small blind)")
	case position.BigBlind:
		b.WriteString(" (big blind)")
	}

	facts := r.tl.Player(seat.PlayerID)
	b.WriteByte(' ')
	switch {
	case facts == nil:
		b.WriteString("mucked")
	case facts.Showed && facts.Won > 0 && len(facts.ShownCards) > 0:
		fmt.Fprintf(&b, "showed [%s] and won (%s)", cards.Join(facts.ShownCards), r.dollar(facts.Won))
	case facts.Showed && len(facts.ShownCards) > 0:
		fmt.Fprintf(&b, "showed [%s] and lost", cards.Join(facts.ShownCards))
	case facts.Won > 0:
		fmt.Fprintf(&b, "collected (%s)", r.dollar(facts.Won))
	case facts.Folded && facts.FoldedOn == ohh.Preflop && !facts.PutChipsIn:
		b.WriteString("folded before Flop (didn't bet)")
	case facts.Folded && facts.FoldedOn == ohh.Preflop:
		b.WriteString("folded before Flop")
	case facts.Folded:
		fmt.Fprintf(&b, "folded on the %s", facts.FoldedOn)
	default:
		b.WriteString("mucked")
	}
	return b.String()
}

func (r *renderer) finalBoard() []string {
	var board []string
	for _, sec := range r.tl.Streets {
		if len(sec.Board) > len(board) {
			board = sec.Board
		}
	}
	return board
}

func (r *renderer) dollar(minor int64) string {
	return money.FormatDollar(minor, r.hand.Exponent)
}

func (r *renderer) addf(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

// checkAmounts rejects values the dialect's fixed-decimal convention
// cannot carry: pots, rake, stacks and awards are never negative.
func checkAmounts(h *ohh.Hand, tl *timeline.Timeline) error {
	if h.SmallBlind < 0 {
		return &UnrenderableAmountError{Field: "small blind", Amount: h.SmallBlind}
	}
	if h.BigBlind < 0 {
		return &UnrenderableAmountError{Field: "big blind", Amount: h.BigBlind}
	}
	for _, s := range h.Seats {
		if s.StartingStack < 0 {
			return &UnrenderableAmountError{Field: "starting stack of " + s.Name, Amount: s.StartingStack}
		}
	}
	if tl.Rake < 0 {
		return &UnrenderableAmountError{Field: "rake", Amount: tl.Rake}
	}
	if tl.TotalPot < 0 {
		return &UnrenderableAmountError{Field: "total pot", Amount: tl.TotalPot}
	}
	for _, p := range tl.Pots {
		for _, w := range p.Wins {
			if w.Amount < 0 {
				return &UnrenderableAmountError{Field: "pot award", Amount: w.Amount}
			}
		}
	}
	return nil
}
