package cards_test

import (
	"testing"

	"github.com/pokertools/ohh2stars/internal/cards"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ah", "Ah"},
		{"td", "Td"},
		{"10h", "Th"},
		{"10H", "Th"},
		{"2c", "2c"},
		{"KS", "Ks"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := cards.Normalize(tt.in); got != tt.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJoin(t *testing.T) {
	board := []string{"Ah", "Kd", "Qc"}
	if got := cards.Join(cards.NormalizeAll(board)); got != "Ah Kd Qc" {
		t.Fatalf("Join = %q, want %q", got, "Ah Kd Qc")
	}
}
