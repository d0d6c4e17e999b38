package timeline

import (
	"sort"

	"github.com/pokertools/ohh2stars/internal/ohh"
)

// computePots derives pot awards from contributions when the record
// supplies none. Pots are layered by ascending all-in contribution
// tiers; each tier is shared evenly among the players who contributed
// at least that much and are still in the hand, with odd chips going
// to the first such player clockwise from the button.
func (r *reconstructor) computePots() []PotResult {
	type contributor struct {
		facts  *PlayerFacts
		amount int64
	}

	var contributors []contributor
	hasAllIn := false
	for i := range r.tl.Players {
		p := &r.tl.Players[i]
		if p.Contributed > 0 {
			contributors = append(contributors, contributor{facts: p, amount: p.Contributed})
			if p.AllIn && !p.Folded {
				hasAllIn = true
			}
		}
	}
	if len(contributors) == 0 {
		return nil
	}

	// Tier boundaries: each distinct all-in contribution level, then
	// the overall maximum. Without an all-in there is a single tier.
	var levels []int64
	if hasAllIn {
		seen := make(map[int64]bool)
		for _, c := range contributors {
			if c.facts.AllIn && !c.facts.Folded && !seen[c.amount] {
				seen[c.amount] = true
				levels = append(levels, c.amount)
			}
		}
	}
	var maxContrib int64
	for _, c := range contributors {
		if c.amount > maxContrib {
			maxContrib = c.amount
		}
	}
	if len(levels) == 0 || levels[len(levels)-1] < maxContrib {
		levels = append(levels, maxContrib)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })

	order := r.clockwiseSeatOrder()

	var pots []PotResult
	var prev int64
	for _, level := range levels {
		var amount int64
		for _, c := range contributors {
			slice := minInt64(c.amount, level) - minInt64(c.amount, prev)
			amount += slice
		}
		if amount <= 0 {
			prev = level
			continue
		}

		var eligible []*PlayerFacts
		for _, seat := range order {
			for _, c := range contributors {
				if c.facts.Seat == seat && !c.facts.Folded && c.amount >= level {
					eligible = append(eligible, c.facts)
				}
			}
		}
		if len(eligible) == 0 {
			// Everyone at this tier folded; fold the chips into the
			// previous pot's winners, or skip if there is none.
			if len(pots) > 0 {
				last := &pots[len(pots)-1]
				last.Amount += amount
				redistribute(last, amount)
			}
			prev = level
			continue
		}

		pot := PotResult{Number: len(pots), Amount: amount}
		share := amount / int64(len(eligible))
		remainder := amount % int64(len(eligible))
		for i, p := range eligible {
			win := share
			if int64(i) < remainder {
				win++
			}
			if win > 0 {
				pot.Wins = append(pot.Wins, ohh.PlayerWin{PlayerID: p.PlayerID, Amount: win})
			}
		}
		pots = append(pots, pot)
		prev = level
	}
	return pots
}

// redistribute spreads extra chips across an existing pot's winners in
// recorded order.
func redistribute(pot *PotResult, extra int64) {
	if len(pot.Wins) == 0 {
		return
	}
	share := extra / int64(len(pot.Wins))
	remainder := extra % int64(len(pot.Wins))
	for i := range pot.Wins {
		pot.Wins[i].Amount += share
		if int64(i) < remainder {
			pot.Wins[i].Amount++
		}
	}
}

// clockwiseSeatOrder lists occupied seats clockwise starting with the
// first seat after the button.
func (r *reconstructor) clockwiseSeatOrder() []int {
	seats := r.hand.SeatNumbers()
	start := 0
	for i, s := range seats {
		if s > r.hand.ButtonSeat {
			start = i
			break
		}
	}
	out := make([]int, 0, len(seats))
	for i := 0; i < len(seats); i++ {
		out = append(out, seats[(start+i)%len(seats)])
	}
	return out
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
