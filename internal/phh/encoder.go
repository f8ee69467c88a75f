package phh

import (
	"bytes"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/lox/holdem-engine/internal/game"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Variant returns the PHH variant code for a betting structure.
func Variant(s game.Structure) string {
	switch s {
	case game.FixedLimit:
		return "FT"
	case game.PotLimit:
		return "PT"
	}
	return "NT"
}

// FormatAction converts an action to PHH notation. streetTotal is the
// player's street commitment after the action, which PHH uses for bets and
// raises. Postings return false; they are carried in the blinds and antes.
func FormatAction(player int, a game.Action, streetTotal int) (string, bool) {
	p := fmt.Sprintf("p%d", player+1)
	switch a.Kind {
	case game.Fold:
		return p + " f", true
	case game.Check, game.Call:
		return p + " cc", true
	case game.Bet, game.Raise:
		if streetTotal <= 0 {
			return "", false
		}
		return fmt.Sprintf("%s cbr %d", p, streetTotal), true
	}
	return "", false
}

// FromHistory converts a hand. Finishing stacks and winnings are only
// filled in for completed hands.
func FromHistory(h *game.HandHistory, table string) *HandHistory {
	n := len(h.Seats)
	// PHH numbers players from the first seat after the button.
	order := make([]int, n)
	player := make(map[string]int, n)
	for i := range order {
		order[i] = (h.Button + 1 + i) % n
		player[h.Seats[order[i]].Name] = i
	}

	out := &HandHistory{
		Variant:           Variant(h.Structure),
		Table:             table,
		SeatCount:         n,
		Seats:             make([]int, n),
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            max(h.Blinds.Big, 1),
		StartingStacks:    make([]int, n),
		Players:           make([]string, n),
		HandID:            h.ID,
	}
	if h.Rake > 0 {
		out.Metadata = map[string]any{"rake": h.Rake}
	}
	if !h.StartedAt.IsZero() {
		ts := h.StartedAt.UTC()
		out.Time = ts.Format("15:04:05")
		out.TimeZone = "UTC"
		out.Day, out.Month, out.Year = ts.Day(), int(ts.Month()), ts.Year()
	}
	for p, seat := range order {
		out.Seats[p] = h.Seats[seat].Position
		out.StartingStacks[p] = h.Seats[seat].Stack
		out.Players[p] = h.Seats[seat].Name
		if h.HoleCards[seat] != 0 {
			out.Actions = append(out.Actions, fmt.Sprintf("d dh p%d %s", p+1, h.HoleCards[seat]))
		}
	}

	street := make([]int, n)
	for _, a := range h.Actions[game.Predeal] {
		p := player[a.Player]
		switch a.Kind {
		case game.PostAnte:
			out.Antes[p] += a.Amount
		default:
			out.BlindsOrStraddles[p] += a.Amount
			street[p] += a.Amount
		}
	}

	boards := map[game.Street]string{}
	if h.Flop != 0 {
		boards[game.Flop] = h.Flop.String()
	}
	if h.Turn != 0 {
		boards[game.Turn] = h.Turn.String()
	}
	if h.River != 0 {
		boards[game.River] = h.River.String()
	}
	for st := game.Preflop; st <= game.River; st++ {
		if st > game.Preflop {
			b, ok := boards[st]
			if !ok {
				break
			}
			out.Actions = append(out.Actions, "d db "+b)
			clear(street)
		}
		for _, a := range h.Actions[st] {
			p := player[a.Player]
			street[p] += a.Amount
			if s, ok := FormatAction(p, a, street[p]); ok {
				out.Actions = append(out.Actions, s)
			}
		}
	}

	if h.Complete() {
		out.FinishingStacks = make([]int, n)
		out.Winnings = make([]int, n)
		for p, seat := range order {
			out.FinishingStacks[p] = h.Stacks[seat]
		}
		for _, w := range h.Winners {
			out.Winnings[player[w.Player]] += w.Amount
		}
	}
	return out
}
