package ohh

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pokertools/ohh2stars/internal/cards"
	"github.com/pokertools/ohh2stars/internal/money"
)

// flexID accepts JSON strings and integers; OHH emitters disagree on
// the type of player ids and game numbers.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("player id is neither string nor number: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

// Wire-level shapes. Amounts stay float64 here and are converted to
// minor units during validation.
type rawFile struct {
	Ohh *rawHand `json:"ohh"`
}

type rawHand struct {
	SpecVersion string      `json:"spec_version"`
	GameNumber  flexID      `json:"game_number"`
	GameType    string      `json:"game_type"`
	BetLimit    *rawLimit   `json:"bet_limit"`
	SmallBlind  float64     `json:"small_blind_amount"`
	BigBlind    float64     `json:"big_blind_amount"`
	Ante        float64     `json:"ante_amount"`
	Currency    string      `json:"currency"`
	StartDate   string      `json:"start_date_utc"`
	TableName   string      `json:"table_name"`
	TableSize   int         `json:"table_size"`
	DealerSeat  int         `json:"dealer_seat"`
	HeroID      flexID      `json:"hero_player_id"`
	SiteName    string      `json:"site_name"`
	NetworkName string      `json:"network_name"`
	Players     []rawPlayer `json:"players"`
	Rounds      []rawRound  `json:"rounds"`
	Pots        []rawPot    `json:"pots"`
}

type rawLimit struct {
	BetType string `json:"bet_type"`
}

type rawPlayer struct {
	ID            flexID  `json:"id"`
	Seat          int     `json:"seat"`
	Name          string  `json:"name"`
	Display       string  `json:"display"`
	StartingStack float64 `json:"starting_stack"`
}

type rawRound struct {
	ID      int         `json:"id"`
	Street  string      `json:"street"`
	Cards   []string    `json:"cards"`
	Actions []rawAction `json:"actions"`
}

type rawAction struct {
	ActionNumber int      `json:"action_number"`
	PlayerID     flexID   `json:"player_id"`
	Action       string   `json:"action"`
	Amount       float64  `json:"amount"`
	IsAllIn      bool     `json:"is_allin"`
	Cards        []string `json:"cards"`
}

type rawPot struct {
	Number     int          `json:"number"`
	Amount     float64      `json:"amount"`
	Rake       float64      `json:"rake"`
	PlayerWins []rawWinning `json:"player_wins"`
}

type rawWinning struct {
	PlayerID  flexID  `json:"player_id"`
	WinAmount float64 `json:"win_amount"`
}

// Parse deserializes and validates one OHH record. It accepts both the
// `{"ohh": {...}}` wrapper and a bare hand object. Optional fields that
// are absent default to zero values; missing required fields fail with
// a MalformedRecordError.
func Parse(raw []byte) (*Hand, error) {
	var file rawFile
	var rh *rawHand
	if err := json.Unmarshal(raw, &file); err == nil && file.Ohh != nil {
		rh = file.Ohh
	} else {
		var bare rawHand
		if err := json.Unmarshal(raw, &bare); err != nil {
			return nil, &MalformedRecordError{Reason: "invalid JSON", Err: err}
		}
		rh = &bare
	}
	return buildHand(rh)
}

func buildHand(rh *rawHand) (*Hand, error) {
	if rh.GameNumber == "" {
		return nil, malformed("missing game_number")
	}
	if rh.Currency == "" {
		return nil, malformed("missing currency")
	}
	if rh.DealerSeat <= 0 {
		return nil, malformed("missing dealer_seat")
	}
	if len(rh.Players) < 2 {
		return nil, malformedf("need at least 2 players, have %d", len(rh.Players))
	}

	variant, limit, err := parseVariant(rh.GameType, rh.BetLimit)
	if err != nil {
		return nil, err
	}

	start, err := parseTimestamp(rh.StartDate)
	if err != nil {
		return nil, &MalformedRecordError{Reason: "unparseable start_date_utc " + rh.StartDate, Err: err}
	}

	exp := money.Exponent(rh.Currency)
	h := &Hand{
		HandID:      string(rh.GameNumber),
		SiteName:    rh.SiteName,
		NetworkName: rh.NetworkName,
		Variant:     variant,
		Limit:       limit,
		Currency:    rh.Currency,
		Exponent:    exp,
		SmallBlind:  money.ToMinor(rh.SmallBlind, exp),
		BigBlind:    money.ToMinor(rh.BigBlind, exp),
		Ante:        money.ToMinor(rh.Ante, exp),
		StartTime:   start,
		TableName:   rh.TableName,
		TableSize:   rh.TableSize,
		ButtonSeat:  rh.DealerSeat,
		HeroID:      string(rh.HeroID),
	}
	if h.TableSize <= 0 {
		h.TableSize = len(rh.Players)
	}

	seenSeats := make(map[int]bool, len(rh.Players))
	seenIDs := make(map[string]bool, len(rh.Players))
	for _, p := range rh.Players {
		if p.Seat <= 0 {
			return nil, malformedf("player %q has no seat", p.Name)
		}
		if p.ID == "" {
			return nil, malformedf("player in seat %d has no id", p.Seat)
		}
		if seenSeats[p.Seat] {
			return nil, malformedf("duplicate seat %d", p.Seat)
		}
		if seenIDs[string(p.ID)] {
			return nil, malformedf("duplicate player id %q", string(p.ID))
		}
		seenSeats[p.Seat] = true
		seenIDs[string(p.ID)] = true

		name := p.Name
		if name == "" {
			name = p.Display
		}
		h.Seats = append(h.Seats, Seat{
			Number:        p.Seat,
			PlayerID:      string(p.ID),
			Name:          name,
			StartingStack: money.ToMinor(p.StartingStack, exp),
		})
	}
	sort.Slice(h.Seats, func(i, j int) bool { return h.Seats[i].Number < h.Seats[j].Number })

	for _, rr := range rh.Rounds {
		street, ok := parseStreet(rr.Street)
		if !ok {
			return nil, malformedf("unknown street %q", rr.Street)
		}
		round := Round{
			Street: street,
			Cards:  cards.NormalizeAll(rr.Cards),
		}
		for _, ra := range rr.Actions {
			round.Actions = append(round.Actions, Action{
				Number:   ra.ActionNumber,
				PlayerID: string(ra.PlayerID),
				Kind:     parseActionKind(ra.Action),
				RawKind:  ra.Action,
				Amount:   money.ToMinor(ra.Amount, exp),
				AllIn:    ra.IsAllIn,
				Cards:    cards.NormalizeAll(ra.Cards),
			})
		}
		h.Rounds = append(h.Rounds, round)
	}

	if h.ActionCount() == 0 {
		return nil, malformed("record has no actions")
	}

	for _, rp := range rh.Pots {
		pot := Pot{
			Number: rp.Number,
			Amount: money.ToMinor(rp.Amount, exp),
			Rake:   money.ToMinor(rp.Rake, exp),
		}
		for _, w := range rp.PlayerWins {
			pot.Wins = append(pot.Wins, PlayerWin{
				PlayerID: string(w.PlayerID),
				Amount:   money.ToMinor(w.WinAmount, exp),
			})
		}
		h.Pots = append(h.Pots, pot)
	}

	return h, nil
}

func parseVariant(gameType string, bl *rawLimit) (Variant, Limit, error) {
	var variant Variant
	switch strings.ToLower(strings.ReplaceAll(gameType, "'", "")) {
	case "", "holdem", "hold em", "texas holdem":
		variant = Holdem
	case "omaha":
		variant = Omaha
	case "omahahilo", "omahahilo8", "omaha hi/lo":
		variant = OmahaHiLo
	default:
		return 0, 0, &UnsupportedVariantError{GameType: gameType}
	}

	limit := NoLimit
	if bl != nil && bl.BetType != "" {
		switch strings.ToUpper(bl.BetType) {
		case "NL":
			limit = NoLimit
		case "PL":
			limit = PotLimit
		case "FL", "L":
			limit = FixedLimit
		default:
			return 0, 0, &UnsupportedVariantError{GameType: gameType, BetType: bl.BetType}
		}
	}
	return variant, limit, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parseStreet(s string) (Street, bool) {
	switch strings.ToLower(strings.ReplaceAll(s, " ", "")) {
	case "preflop":
		return Preflop, true
	case "flop":
		return Flop, true
	case "turn":
		return Turn, true
	case "river":
		return River, true
	case "showdown":
		return Showdown, true
	default:
		return 0, false
	}
}

func parseActionKind(s string) ActionKind {
	switch strings.ToLower(s) {
	case "post ante":
		return KindPostAnte
	case "post sb":
		return KindPostSmallBlind
	case "post bb":
		return KindPostBigBlind
	case "fold":
		return KindFold
	case "check":
		return KindCheck
	case "call":
		return KindCall
	case "bet":
		return KindBet
	case "raise":
		return KindRaise
	case "dealt cards":
		return KindDealtCards
	case "shows cards", "show cards":
		return KindShowsCards
	case "muck", "mucks cards":
		return KindMucksCards
	case "uncalled bet", "uncalled bet return":
		return KindUncalledReturn
	case "collect pot", "collected":
		return KindCollectPot
	default:
		return KindUnknown
	}
}
