package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(player string, kind ActionKind, amount int) Action {
	return Action{Player: player, Kind: kind, Amount: amount}
}

func fixedLimitTable() HandConfig {
	return HandConfig{
		ID: "fl-sample",
		Seats: []Seat{
			{Name: "TeeJay5", Position: 1, Stack: 526},
			{Name: "TAP_OR_SNAP", Position: 2, Stack: 301},
			{Name: "OsoWhisper", Position: 3, Stack: 177},
			{Name: "Sevillano720", Position: 4, Stack: 742},
			{Name: "LC1492", Position: 5, Stack: 641},
			{Name: "Dodenburg", Position: 6, Stack: 458},
		},
		Button:    1,
		Blinds:    Blinds{Small: 5, Big: 10},
		Structure: FixedLimit,
	}
}

func fixedLimitRecord() ActionLog {
	var log ActionLog
	log[Predeal] = []Action{
		rec("TAP_OR_SNAP", PostSmallBlind, 5),
		rec("OsoWhisper", PostBigBlind, 10),
	}
	log[Preflop] = []Action{
		rec("Sevillano720", Fold, 0),
		rec("LC1492", Call, 10),
		rec("Dodenburg", Fold, 0),
		rec("TeeJay5", Raise, 20),
		rec("TAP_OR_SNAP", Call, 15),
		rec("OsoWhisper", Call, 10),
		rec("LC1492", Call, 10),
	}
	log[Flop] = []Action{
		rec("TAP_OR_SNAP", Bet, 10),
		rec("OsoWhisper", Raise, 20),
		rec("LC1492", Fold, 0),
		rec("TeeJay5", Call, 20),
		rec("TAP_OR_SNAP", Raise, 20),
		rec("OsoWhisper", Raise, 20),
		rec("TeeJay5", Fold, 0),
		rec("TAP_OR_SNAP", Call, 10),
	}
	log[Turn] = []Action{
		rec("TAP_OR_SNAP", Check, 0),
		rec("OsoWhisper", Bet, 20),
		rec("TAP_OR_SNAP", Call, 20),
	}
	log[River] = []Action{
		rec("TAP_OR_SNAP", Check, 0),
		rec("OsoWhisper", Bet, 20),
	}
	return log
}

func TestResumeFixedLimitRiver(t *testing.T) {
	t.Parallel()

	actions := fixedLimitRecord()
	res, err := NewResumer(ResumeInput{Config: fixedLimitTable(), Actions: actions}).Resume()
	require.NoError(t, err)

	assert.False(t, res.Complete)
	assert.Equal(t, "TAP_OR_SNAP", res.NextActor)
	assert.Equal(t, []Action{
		rec("TAP_OR_SNAP", Fold, 0),
		rec("TAP_OR_SNAP", Call, 20),
		rec("TAP_OR_SNAP", Raise, 40),
	}, res.ValidActions)

	// Every recorded action was legal as written.
	for st := Predeal; st <= River; st++ {
		assert.Equal(t, actions[st], res.History.Actions[st], "street %s", st)
	}
	assert.Equal(t, River, res.History.Street)
	assert.NotZero(t, res.History.River)
	assert.Equal(t, 100, res.History.Seats[2].Stack-res.History.Stacks[2])
}

func TestResumeNoLimitOffersAllIn(t *testing.T) {
	t.Parallel()

	cfg := fixedLimitTable()
	cfg.Structure = NoLimit
	var actions ActionLog
	actions[Predeal] = []Action{rec("TAP_OR_SNAP", PostSmallBlind, 5), rec("OsoWhisper", PostBigBlind, 10)}

	res, err := NewResumer(ResumeInput{Config: cfg, Actions: actions}).Resume()
	require.NoError(t, err)
	assert.Equal(t, "Sevillano720", res.NextActor)
	assert.Equal(t, []Action{
		rec("Sevillano720", Fold, 0),
		rec("Sevillano720", Call, 10),
		rec("Sevillano720", Raise, 20),
		{Player: "Sevillano720", Kind: Raise, Amount: 742, AllIn: true},
	}, res.ValidActions)
}

func TestResumeCheckedAroundOffersCheckAndBet(t *testing.T) {
	t.Parallel()

	var actions ActionLog
	actions[Predeal] = []Action{rec("TAP_OR_SNAP", PostSmallBlind, 5), rec("OsoWhisper", PostBigBlind, 10)}
	actions[Preflop] = []Action{
		rec("Sevillano720", Fold, 0),
		rec("LC1492", Fold, 0),
		rec("Dodenburg", Fold, 0),
		rec("TeeJay5", Fold, 0),
		rec("TAP_OR_SNAP", Call, 5),
		rec("OsoWhisper", Check, 0),
	}

	res, err := NewResumer(ResumeInput{Config: fixedLimitTable(), Actions: actions}).Resume()
	require.NoError(t, err)
	assert.Equal(t, "TAP_OR_SNAP", res.NextActor)
	assert.Equal(t, Flop, res.History.Street)
	assert.Equal(t, []Action{
		rec("TAP_OR_SNAP", Check, 0),
		rec("TAP_OR_SNAP", Bet, 10),
	}, res.ValidActions)
}

func TestResumeComplete(t *testing.T) {
	t.Parallel()

	var actions ActionLog
	actions[Predeal] = []Action{rec("TAP_OR_SNAP", PostSmallBlind, 5), rec("OsoWhisper", PostBigBlind, 10)}
	actions[Preflop] = []Action{
		rec("Sevillano720", Fold, 0),
		rec("LC1492", Fold, 0),
		rec("Dodenburg", Fold, 0),
		rec("TeeJay5", Fold, 0),
		rec("TAP_OR_SNAP", Fold, 0),
	}

	res, err := NewResumer(ResumeInput{Config: fixedLimitTable(), Actions: actions}).Resume()
	require.NoError(t, err)
	assert.True(t, res.Complete)
	assert.Empty(t, res.NextActor)
	assert.Empty(t, res.ValidActions)
	assert.Equal(t, []Winner{{Player: "OsoWhisper", Pot: "Main pot", Amount: 15}}, res.History.Winners)
	assert.Equal(t, 182, res.History.Stacks[2])
	assert.Equal(t, Over, res.History.Street)
}

func TestResumePendingBlind(t *testing.T) {
	t.Parallel()

	var actions ActionLog
	actions[Predeal] = []Action{rec("TAP_OR_SNAP", PostSmallBlind, 5)}

	res, err := NewResumer(ResumeInput{Config: fixedLimitTable(), Actions: actions}).Resume()
	require.NoError(t, err)
	assert.False(t, res.Complete)
	assert.Equal(t, "OsoWhisper", res.NextActor)
	assert.Equal(t, []Action{rec("OsoWhisper", PostBigBlind, 10)}, res.ValidActions)
}

func TestResumeEmptyRecord(t *testing.T) {
	t.Parallel()

	res, err := NewResumer(ResumeInput{Config: fixedLimitTable()}).Resume()
	require.NoError(t, err)
	assert.Equal(t, "TAP_OR_SNAP", res.NextActor)
	assert.Equal(t, []Action{rec("TAP_OR_SNAP", PostSmallBlind, 5)}, res.ValidActions)
}

func TestResumeFatalErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(log *ActionLog)
		check  func(t *testing.T, err error)
	}{
		{
			name: "wrong actor",
			modify: func(log *ActionLog) {
				log[Flop][1].Player = "LC1492"
			},
			check: func(t *testing.T, err error) {
				var mismatch *ActorMismatchError
				require.True(t, errors.As(err, &mismatch), "got %v", err)
				assert.Equal(t, Flop, mismatch.Street)
				assert.Equal(t, 1, mismatch.Index)
				assert.Equal(t, "OsoWhisper", mismatch.Expected)
				assert.Equal(t, "LC1492", mismatch.Got)
				assert.Contains(t, err.Error(), "action list not aligned")
			},
		},
		{
			name: "wrong blind",
			modify: func(log *ActionLog) {
				log[Predeal][0].Player = "TeeJay5"
			},
			check: func(t *testing.T, err error) {
				var mismatch *ActorMismatchError
				require.True(t, errors.As(err, &mismatch), "got %v", err)
				assert.Equal(t, Predeal, mismatch.Street)
			},
		},
		{
			name: "blinds swapped",
			modify: func(log *ActionLog) {
				log[Predeal][0].Kind, log[Predeal][1].Kind = PostBigBlind, PostSmallBlind
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrPostingMismatch)
				assert.Contains(t, err.Error(), "expected small_blind")
			},
		},
		{
			name: "ante in place of a blind",
			modify: func(log *ActionLog) {
				log[Predeal][1].Kind = PostAnte
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrPostingMismatch)
			},
		},
		{
			name: "extra action after the round closed",
			modify: func(log *ActionLog) {
				log[Turn] = append(log[Turn], rec("OsoWhisper", Bet, 20))
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrExtraActions)
			},
		},
		{
			name: "unused posting",
			modify: func(log *ActionLog) {
				log[Predeal] = append(log[Predeal], rec("LC1492", PostBigBlind, 10))
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrExtraActions)
			},
		},
		{
			name: "missing blind with later actions",
			modify: func(log *ActionLog) {
				log[Predeal] = log[Predeal][:1]
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMissingBlind)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			log := fixedLimitRecord()
			tt.modify(&log)
			_, err := NewResumer(ResumeInput{Config: fixedLimitTable(), Actions: log}).Resume()
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestResumeActionsAfterHandEnded(t *testing.T) {
	t.Parallel()

	var actions ActionLog
	actions[Predeal] = []Action{rec("TAP_OR_SNAP", PostSmallBlind, 5), rec("OsoWhisper", PostBigBlind, 10)}
	actions[Preflop] = []Action{
		rec("Sevillano720", Fold, 0),
		rec("LC1492", Fold, 0),
		rec("Dodenburg", Fold, 0),
		rec("TeeJay5", Fold, 0),
		rec("TAP_OR_SNAP", Fold, 0),
	}
	actions[Flop] = []Action{rec("OsoWhisper", Check, 0)}

	_, err := NewResumer(ResumeInput{Config: fixedLimitTable(), Actions: actions}).Resume()
	assert.ErrorIs(t, err, ErrExtraActions)
}
