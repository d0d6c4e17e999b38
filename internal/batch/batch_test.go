package batch_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokertools/ohh2stars/internal/batch"
	"github.com/pokertools/ohh2stars/internal/config"
)

// hand returns a minimal valid heads-up record with a distinct game
// number so tests can tell outputs apart.
func hand(id string) string {
	return `{"game_number":"` + id + `","currency":"USD","dealer_seat":2,"start_date_utc":"2024-01-01T00:00:00Z","table_name":"t","table_size":2,"small_blind_amount":1,"big_blind_amount":2,"players":[{"id":"a","seat":1,"name":"A","starting_stack":100},{"id":"b","seat":2,"name":"B","starting_stack":100}],"rounds":[{"id":0,"street":"Preflop","actions":[{"action_number":1,"player_id":"b","action":"Post SB","amount":1},{"action_number":2,"player_id":"a","action":"Post BB","amount":2},{"action_number":3,"player_id":"b","action":"Raise","amount":6},{"action_number":4,"player_id":"a","action":"Fold"}]}]}`
}

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"empty", "", 0},
		{"single", hand("1"), 1},
		{"two", hand("1") + "\n\n" + hand("2"), 2},
		{"extra blank lines", hand("1") + "\n\n\n\n" + hand("2") + "\n\n", 2},
		{"crlf", hand("1") + "\r\n\r\n" + hand("2"), 2},
		{"whitespace only", "  \n\n\t\n", 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Len(t, batch.Split([]byte(tt.raw)), tt.want)
		})
	}
}

func TestConvertFilePreservesInputOrder(t *testing.T) {
	t.Parallel()

	var chunks []string
	for _, id := range []string{"101", "102", "103", "104"} {
		chunks = append(chunks, hand(id))
	}
	raw := strings.Join(chunks, "\n\n")

	c := batch.New(config.Default(), nil)
	res := c.ConvertFile([]byte(raw))

	require.Equal(t, 4, res.Converted)
	require.Empty(t, res.Failures)

	last := -1
	for _, id := range []string{"101", "102", "103", "104"} {
		idx := strings.Index(res.Output, "PokerStars Hand #"+id+":")
		require.GreaterOrEqual(t, idx, 0, "hand %s missing from output", id)
		assert.Greater(t, idx, last, "hand %s out of order", id)
		last = idx
	}
}

func TestConvertFileSkipsBadHands(t *testing.T) {
	t.Parallel()

	raw := hand("201") + "\n\n" + `{"not":"a hand"}` + "\n\n" + hand("203")

	c := batch.New(config.Default(), nil)
	res := c.ConvertFile([]byte(raw))

	assert.Equal(t, 2, res.Converted)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, 1, res.Failures[0].Index)
	assert.Contains(t, res.Output, "PokerStars Hand #201:")
	assert.Contains(t, res.Output, "PokerStars Hand #203:")
}

func TestConvertFileSeparator(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.SeparatorBlankLines = 2
	c := batch.New(cfg, nil)

	res := c.ConvertFile([]byte(hand("301") + "\n\n" + hand("302")))
	require.Equal(t, 2, res.Converted)
	assert.Contains(t, res.Output, "\n\n\n")
	assert.NotContains(t, res.Output, "\n\n\n\n")
}

func TestConvertHand(t *testing.T) {
	t.Parallel()

	c := batch.New(nil, nil)
	out, warnings, err := c.ConvertHand([]byte(hand("401")))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.True(t, strings.HasPrefix(out, "PokerStars Hand #401:"))

	_, _, err = c.ConvertHand([]byte("{}"))
	require.Error(t, err)
}
