package game

// maxValidationHops bounds the rewrite cascade in Validate. The longest
// legitimate chain is small blind -> big blind -> fold -> check.
const maxValidationHops = 8

// fixedLimitCap is the number of bets and raises allowed per street in
// fixed-limit, the big blind counting as the first preflop.
const fixedLimitCap = 4

// seatLedger is the per-seat commitment record.
type seatLedger struct {
	name      string
	start     int
	committed int
	street    int
	folded    bool
	allIn     bool
}

func (s *seatLedger) remaining() int {
	return s.start - s.committed
}

// BettingRound validates and commits actions for one hand and decides
// when each street's betting is complete. It owns the commitment ledger.
type BettingRound struct {
	structure Structure
	blinds    Blinds
	ante      int

	seats []seatLedger
	index map[string]int

	mostCommitted int
	minRaise      int
	betLevel      int
	calls         int
	allIns        int
	canStillBet   int
	in            int
	blindsPosted  int
	antesPosted   int
	completed     int
	// opened is set by the first voluntary action; forced bets are over.
	opened bool
}

// NewBettingRound creates the ledger for a hand. Stacks are the stacks at
// the start of the hand.
func NewBettingRound(seats []Seat, structure Structure, blinds Blinds, ante int) *BettingRound {
	br := &BettingRound{
		structure:   structure,
		blinds:      blinds,
		ante:        ante,
		seats:       make([]seatLedger, len(seats)),
		index:       make(map[string]int, len(seats)),
		canStillBet: len(seats),
		in:          len(seats),
	}
	for i, s := range seats {
		br.seats[i] = seatLedger{name: s.Name, start: s.Stack}
		br.index[s.Name] = i
	}
	br.minRaise = br.streetMinimum()
	return br
}

// streetMinimum is the minimum bet for the next street to be played.
// Fixed-limit doubles it once the flop betting is done.
func (br *BettingRound) streetMinimum() int {
	m := max(br.blinds.Big, 1)
	if br.structure == FixedLimit && br.completed >= 2 {
		m *= 2
	}
	return m
}

// Validate rewrites a proposed action into the nearest legal one. It does
// not modify the ledger. An unknown player, or a cascade that does not
// settle, yields an ActionNone action.
func (br *BettingRound) Validate(a Action) Action {
	idx, ok := br.index[a.Player]
	if !ok {
		return Action{Player: a.Player, Kind: ActionNone}
	}
	s := &br.seats[idx]
	a.AllIn = false

	for range maxValidationHops {
		switch a.Kind {
		case PostAnte:
			if br.ante <= 0 || br.opened || br.blindsPosted > 0 || br.antesPosted >= len(br.seats) {
				a.Kind = Fold
				continue
			}
			return post(s, a, br.ante)

		case PostSmallBlind:
			if br.opened || br.blindsPosted > 0 {
				a.Kind = Fold
				continue
			}
			if br.blinds.Small <= 0 {
				a.Kind = PostBigBlind
				continue
			}
			return post(s, a, br.blinds.Small)

		case PostBigBlind:
			want := 0
			if br.blinds.Small > 0 {
				want = 1
			}
			if br.opened || br.blinds.Big <= 0 || br.blindsPosted != want {
				a.Kind = Fold
				continue
			}
			return post(s, a, br.blinds.Big)

		case Fold:
			if s.committed >= br.mostCommitted {
				a.Kind = Check
				continue
			}
			a.Amount = 0
			return a

		case Check:
			if s.committed < br.mostCommitted {
				a.Kind = Fold
				continue
			}
			a.Amount = 0
			return a

		case Call:
			if s.committed >= br.mostCommitted {
				a.Kind = Check
				continue
			}
			owed := br.mostCommitted - s.committed
			if owed >= s.remaining() {
				return allIn(s, a)
			}
			a.Amount = owed
			return a

		case Bet:
			if br.betLevel > 0 {
				a.Kind = Raise
				continue
			}
			amt := max(a.Amount, br.minRaise)
			switch br.structure {
			case FixedLimit:
				amt = br.minRaise
			case PotLimit:
				amt = max(min(amt, br.potLimit(s)), br.minRaise)
			}
			if amt >= s.remaining() {
				return allIn(s, a)
			}
			a.Amount = amt
			return a

		case Raise:
			if br.betLevel == 0 {
				a.Kind = Bet
				continue
			}
			if br.structure == FixedLimit && br.betLevel >= fixedLimitCap {
				a.Kind = Call
				continue
			}
			required := br.mostCommitted - s.committed + br.minRaise
			amt := max(a.Amount, required)
			switch br.structure {
			case FixedLimit:
				amt = required
			case PotLimit:
				amt = max(min(amt, br.potLimit(s)), required)
			}
			if amt >= s.remaining() {
				return allIn(s, a)
			}
			a.Amount = amt
			return a

		default:
			a.Kind = Fold
		}
	}
	return Action{Player: a.Player, Kind: ActionNone}
}

// potLimit is the largest pot-limit bet or raise for s: the call plus a
// raise the size of the pot after calling.
func (br *BettingRound) potLimit(s *seatLedger) int {
	owed := br.mostCommitted - s.committed
	pot := 0
	for i := range br.seats {
		pot += br.seats[i].committed
	}
	return owed + pot + owed
}

func post(s *seatLedger, a Action, size int) Action {
	a.Amount = min(size, s.remaining())
	a.AllIn = a.Amount == s.remaining()
	return a
}

func allIn(s *seatLedger, a Action) Action {
	a.Amount = s.remaining()
	a.AllIn = true
	return a
}

// Commit applies a validated action to the ledger.
func (br *BettingRound) Commit(a Action) {
	idx, ok := br.index[a.Player]
	if !ok {
		return
	}
	s := &br.seats[idx]

	if a.Kind.IsPost() {
		br.add(s, a.Amount)
		switch a.Kind {
		case PostAnte:
			br.antesPosted++
		case PostSmallBlind:
			br.blindsPosted++
		case PostBigBlind:
			br.blindsPosted++
			br.betLevel++
		}
		br.mostCommitted = max(br.mostCommitted, s.committed)
		if a.AllIn {
			br.markAllIn(s)
		}
		return
	}
	br.opened = true

	if a.AllIn {
		prev := br.mostCommitted
		br.add(s, a.Amount)
		if s.committed > prev {
			br.mostCommitted = s.committed
			br.betLevel++
			br.minRaise = max(s.committed-prev, br.minRaise)
			br.calls = 0
		}
		br.markAllIn(s)
		return
	}

	switch a.Kind {
	case Fold:
		s.folded = true
		br.in--
		br.canStillBet--
	case Check:
		br.calls++
	case Call:
		br.add(s, a.Amount)
		br.calls++
	case Bet:
		br.add(s, a.Amount)
		br.mostCommitted = s.committed
		br.betLevel++
		br.minRaise = a.Amount
		br.calls = 1
	case Raise:
		br.add(s, a.Amount)
		br.minRaise = s.committed - br.mostCommitted
		br.mostCommitted = s.committed
		br.betLevel++
		br.calls = 1
	}
}

func (br *BettingRound) add(s *seatLedger, amount int) {
	s.committed += amount
	s.street += amount
}

func (br *BettingRound) markAllIn(s *seatLedger) {
	s.allIn = true
	br.allIns++
	br.canStillBet--
}

// settled reports whether nobody has a decision left on this street.
func (br *BettingRound) settled() bool {
	switch {
	case br.canStillBet <= 0:
		return true
	case br.canStillBet == 1:
		for i := range br.seats {
			s := &br.seats[i]
			if !s.folded && !s.allIn {
				return s.committed >= br.mostCommitted
			}
		}
		return true
	}
	return br.calls == br.canStillBet && (br.calls > 0 || br.allIns > 0)
}

// RoundOver reports whether betting on the current street is complete.
// A true result resets the street counters, so it must be read exactly
// once per committed action.
func (br *BettingRound) RoundOver() bool {
	if !br.settled() {
		return false
	}
	br.calls = 0
	br.allIns = 0
	br.completed++
	br.minRaise = br.streetMinimum()
	br.betLevel = 0
	for i := range br.seats {
		br.seats[i].street = 0
	}
	return true
}

// ActionPending reports whether any seat still has a decision to make on
// the current street. It has no side effects.
func (br *BettingRound) ActionPending() bool {
	return !br.settled()
}

func (br *BettingRound) MostCommitted() int { return br.mostCommitted }
func (br *BettingRound) MinimumRaise() int  { return br.minRaise }
func (br *BettingRound) BetLevel() int      { return br.betLevel }
func (br *BettingRound) CanStillBet() int   { return br.canStillBet }
func (br *BettingRound) In() int            { return br.in }
func (br *BettingRound) Structure() Structure {
	return br.structure
}

// Committed returns the chips the player has put in this hand.
func (br *BettingRound) Committed(player string) int {
	if i, ok := br.index[player]; ok {
		return br.seats[i].committed
	}
	return 0
}

// CommittedThisStreet returns the chips the player has put in on the
// current street.
func (br *BettingRound) CommittedThisStreet(player string) int {
	if i, ok := br.index[player]; ok {
		return br.seats[i].street
	}
	return 0
}

// Remaining returns the player's uncommitted stack.
func (br *BettingRound) Remaining(player string) int {
	if i, ok := br.index[player]; ok {
		return br.seats[i].remaining()
	}
	return 0
}

// Owed returns what the player must add to match the current bet.
func (br *BettingRound) Owed(player string) int {
	return max(br.mostCommitted-br.Committed(player), 0)
}
