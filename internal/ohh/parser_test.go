package ohh_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokertools/ohh2stars/internal/ohh"
)

const sampleHand = `{"ohh":{"spec_version":"1.4.3","site_name":"iPoker","network_name":"iPoker Network","game_number":"lv0irhede81k","start_date_utc":"2023-12-05T02:50:49.886Z","table_name":"pglCX2WsUJbPBjsNSE1siiDJy","game_type":"Holdem","bet_limit":{"bet_type":"NL"},"table_size":10,"currency":"PPC","dealer_seat":8,"small_blind_amount":0.05,"big_blind_amount":0.1,"ante_amount":0,"players":[{"id":1,"seat":1,"name":"Agapito","starting_stack":19.9},{"id":4,"seat":4,"name":"DubNation","starting_stack":9.8},{"id":6,"seat":6,"name":"bdawg","starting_stack":10}],"rounds":[{"id":0,"street":"Preflop","cards":[],"actions":[{"action_number":0,"player_id":4,"action":"Dealt Cards","cards":["Ks","2c"]},{"action_number":1,"player_id":1,"action":"Post SB","amount":0.05},{"action_number":2,"player_id":4,"action":"Post BB","amount":0.1},{"action_number":3,"player_id":6,"action":"Raise","amount":0.22},{"action_number":4,"player_id":1,"action":"Fold"},{"action_number":5,"player_id":4,"action":"Call","amount":0.12}]},{"id":1,"cards":["4d","3c","Kd"],"street":"Flop","actions":[{"action_number":0,"player_id":4,"action":"Check"},{"action_number":1,"player_id":6,"action":"Check"}]}],"pots":[{"number":0,"amount":0.49,"rake":0,"player_wins":[{"player_id":4,"win_amount":0.49}]}]}}`

func TestParseSampleHand(t *testing.T) {
	t.Parallel()

	h, err := ohh.Parse([]byte(sampleHand))
	require.NoError(t, err)

	assert.Equal(t, "lv0irhede81k", h.HandID)
	assert.Equal(t, ohh.Holdem, h.Variant)
	assert.Equal(t, ohh.NoLimit, h.Limit)
	assert.Equal(t, "PPC", h.Currency)
	assert.Equal(t, int64(5), h.SmallBlind)
	assert.Equal(t, int64(10), h.BigBlind)
	assert.Equal(t, 10, h.TableSize)
	assert.Equal(t, 8, h.ButtonSeat)
	assert.Equal(t, time.Date(2023, 12, 5, 2, 50, 49, 886000000, time.UTC), h.StartTime)

	require.Len(t, h.Seats, 3)
	assert.Equal(t, []int{1, 4, 6}, h.SeatNumbers())
	// integer player ids normalize to strings
	assert.Equal(t, "4", h.Seats[1].PlayerID)
	assert.Equal(t, int64(980), h.Seats[1].StartingStack)
	assert.Equal(t, "DubNation", h.NameByID("4"))

	require.Len(t, h.Rounds, 2)
	assert.Equal(t, ohh.Preflop, h.Rounds[0].Street)
	assert.Equal(t, ohh.Flop, h.Rounds[1].Street)
	assert.Equal(t, []string{"4d", "3c", "Kd"}, h.Rounds[1].Cards)
	assert.Equal(t, ohh.KindDealtCards, h.Rounds[0].Actions[0].Kind)
	assert.Equal(t, []string{"Ks", "2c"}, h.Rounds[0].Actions[0].Cards)
	assert.Equal(t, ohh.KindRaise, h.Rounds[0].Actions[3].Kind)
	assert.Equal(t, int64(22), h.Rounds[0].Actions[3].Amount)

	require.Len(t, h.Pots, 1)
	assert.Equal(t, int64(49), h.Pots[0].Amount)
	require.Len(t, h.Pots[0].Wins, 1)
	assert.Equal(t, "4", h.Pots[0].Wins[0].PlayerID)
}

func TestParseBareHandObject(t *testing.T) {
	t.Parallel()

	// Same record without the {"ohh": ...} wrapper.
	bare := sampleHand[len(`{"ohh":`) : len(sampleHand)-1]
	h, err := ohh.Parse([]byte(bare))
	require.NoError(t, err)
	assert.Equal(t, "lv0irhede81k", h.HandID)
}

func TestParseStringPlayerIDs(t *testing.T) {
	t.Parallel()

	raw := `{"game_number":"h1","currency":"USD","dealer_seat":1,"start_date_utc":"2024-01-01T00:00:00Z","table_name":"t","table_size":2,"small_blind_amount":1,"big_blind_amount":2,"players":[{"id":"alice","seat":1,"name":"Alice","starting_stack":100},{"id":"bob","seat":2,"name":"Bob","starting_stack":100}],"rounds":[{"id":0,"street":"Preflop","actions":[{"action_number":1,"player_id":"alice","action":"Post SB","amount":1}]}]}`
	h, err := ohh.Parse([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "alice", h.Seats[0].PlayerID)
	assert.Equal(t, int64(100), h.SmallBlind)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	base := func(mutate func(m map[string]any)) []byte {
		m := map[string]any{
			"game_number":        "h1",
			"currency":           "USD",
			"dealer_seat":        1,
			"start_date_utc":     "2024-01-01T00:00:00Z",
			"table_name":         "t",
			"table_size":         2,
			"small_blind_amount": 1,
			"big_blind_amount":   2,
			"players": []any{
				map[string]any{"id": "a", "seat": 1, "name": "A", "starting_stack": 100},
				map[string]any{"id": "b", "seat": 2, "name": "B", "starting_stack": 100},
			},
			"rounds": []any{
				map[string]any{"id": 0, "street": "Preflop", "actions": []any{
					map[string]any{"action_number": 1, "player_id": "a", "action": "Post SB", "amount": 1},
				}},
			},
		}
		mutate(m)
		return mustJSON(t, m)
	}

	tests := []struct {
		name   string
		raw    []byte
		reason string
	}{
		{"invalid json", []byte("{not json"), "invalid JSON"},
		{"missing game number", base(func(m map[string]any) { delete(m, "game_number") }), "game_number"},
		{"missing currency", base(func(m map[string]any) { delete(m, "currency") }), "currency"},
		{"missing button", base(func(m map[string]any) { delete(m, "dealer_seat") }), "dealer_seat"},
		{"one player", base(func(m map[string]any) { m["players"] = m["players"].([]any)[:1] }), "players"},
		{"no actions", base(func(m map[string]any) { m["rounds"] = []any{} }), "actions"},
		{"bad timestamp", base(func(m map[string]any) { m["start_date_utc"] = "yesterday" }), "start_date_utc"},
		{"duplicate seat", base(func(m map[string]any) {
			players := m["players"].([]any)
			players[1].(map[string]any)["seat"] = 1
		}), "duplicate seat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ohh.Parse(tt.raw)
			require.Error(t, err)
			var mr *ohh.MalformedRecordError
			require.True(t, errors.As(err, &mr), "want MalformedRecordError, got %T", err)
			assert.Contains(t, mr.Error(), tt.reason)
		})
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestParseUnsupportedVariant(t *testing.T) {
	t.Parallel()

	raw := `{"game_number":"h1","currency":"USD","dealer_seat":1,"start_date_utc":"2024-01-01T00:00:00Z","game_type":"Badugi","table_name":"t","small_blind_amount":1,"big_blind_amount":2,"players":[{"id":"a","seat":1,"name":"A","starting_stack":100},{"id":"b","seat":2,"name":"B","starting_stack":100}],"rounds":[{"id":0,"street":"Preflop","actions":[{"action_number":1,"player_id":"a","action":"Post SB","amount":1}]}]}`
	_, err := ohh.Parse([]byte(raw))
	var uv *ohh.UnsupportedVariantError
	require.True(t, errors.As(err, &uv))
	assert.Equal(t, "Badugi", uv.GameType)
}
