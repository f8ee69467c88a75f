// Package game implements a single hand of Texas Hold'em.
//
// The main entry points are Engine, which plays a hand to completion by
// asking a DecisionSource for every action, and Resumer, which replays a
// recorded action list and reports who acts next and what they may do.
//
// # Basic Usage
//
// Play a hand with bots:
//
//	cfg := game.HandConfig{
//	    Seats: []game.Seat{
//	        {Name: "Alice", Position: 1, Stack: 200, Brain: alice},
//	        {Name: "Bob", Position: 2, Stack: 200, Brain: bob},
//	    },
//	    Button:    1,
//	    Blinds:    game.Blinds{Small: 1, Big: 2},
//	    Structure: game.NoLimit,
//	}
//	e, err := game.NewEngine(cfg, game.WithRNG(rand.New(rand.NewSource(42))))
//	if err != nil {
//	    return err
//	}
//	history, err := e.Play(ctx)
//
// Resume a recorded hand:
//
//	res, err := game.NewResumer(game.ResumeInput{Config: cfg, Actions: actions}).Resume()
//	if err == nil && !res.Complete {
//	    fmt.Println(res.NextActor, res.ValidActions)
//	}
//
// # Architecture
//
// A hand delegates to two components:
//   - BettingRound: validates and commits actions for every street
//   - PotManager: layers committed chips into main and side pots and
//     splits them between winners
//
// Cards come from a deck.Source and showdowns are scored by a
// StrengthEvaluator, so both can be replaced for deterministic tests.
package game
