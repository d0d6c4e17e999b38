// Package cards normalizes card notation to the two-character form the
// target dialect uses: uppercase rank (T for ten), lowercase suit.
package cards

import "strings"

var rankMap = map[string]string{
	"a":  "A",
	"k":  "K",
	"q":  "Q",
	"j":  "J",
	"10": "T",
	"t":  "T",
	"9":  "9",
	"8":  "8",
	"7":  "7",
	"6":  "6",
	"5":  "5",
	"4":  "4",
	"3":  "3",
	"2":  "2",
}

// Normalize converts a card string (e.g. "10h", "AS") to dialect
// notation ("Th", "As"). Unknown input is passed through best-effort.
func Normalize(card string) string {
	card = strings.TrimSpace(card)
	if card == "" {
		return ""
	}
	lowered := strings.ToLower(card)
	if len(lowered) < 2 {
		return strings.ToUpper(lowered)
	}

	suit := lowered[len(lowered)-1:]
	rankPart := lowered[:len(lowered)-1]
	rank, ok := rankMap[rankPart]
	if !ok {
		rank = strings.ToUpper(rankPart[:1])
	}

	return rank + suit
}

// NormalizeAll normalizes a slice of card strings.
func NormalizeAll(cards []string) []string {
	if len(cards) == 0 {
		return nil
	}
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = Normalize(c)
	}
	return out
}

// Join renders cards space-separated for board and hole-card brackets.
func Join(cards []string) string {
	return strings.Join(cards, " ")
}
