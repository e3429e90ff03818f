package fortune

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playwheel/fortune-backend/internal/apperror"
	"github.com/playwheel/fortune-backend/internal/entity"
	"github.com/playwheel/fortune-backend/internal/wheel"
)

// scriptedWheel replays a fixed list of sector values.
type scriptedWheel struct {
	values []int
	next   int
}

func (that *scriptedWheel) Spin() int {
	value := that.values[that.next%len(that.values)]
	that.next++
	return value
}

func newRound() *entity.Game {
	return entity.NewGame("42", entity.Puzzle{Answer: "WHEEL OF FORTUNE", Category: "TV Show"},
		[entity.SeatCount]string{entity.SeatHuman, entity.SeatSmart, entity.SeatConservative})
}

func TestSpin(t *testing.T) {
	t.Run("Positive value is held for the consonant guess", func(t *testing.T) {
		// Given: an ongoing round and a wheel that lands on 500
		game := newRound()

		// When: the seat spins
		outcome, err := Spin(game, &scriptedWheel{values: []int{500}})

		// Then: the payout is pending, the turn is retained
		require.NoError(t, err)
		require.Equal(t, 500, outcome.Value)
		require.Equal(t, 500, game.PendingSpin)
		require.Equal(t, 0, game.CurrentSeat())
	})

	t.Run("Bankrupt zeroes winnings and forfeits the turn", func(t *testing.T) {
		// Given: a seat holding winnings
		game := newRound()
		game.Winnings[0] = 1200

		// When: the wheel lands on bankrupt
		outcome, err := Spin(game, &scriptedWheel{values: []int{wheel.Bankrupt}})

		// Then: winnings reset, the next seat acts
		require.NoError(t, err)
		require.True(t, outcome.Bankrupt)
		require.Zero(t, game.Winnings[0])
		require.Equal(t, 1, game.CurrentSeat())
		require.Zero(t, game.PendingSpin)
	})

	t.Run("Lose a turn forfeits with no penalty", func(t *testing.T) {
		game := newRound()
		game.Winnings[0] = 700

		outcome, err := Spin(game, &scriptedWheel{values: []int{wheel.LoseTurn}})

		require.NoError(t, err)
		require.True(t, outcome.LostTurn)
		require.Equal(t, 700, game.Winnings[0])
		require.Equal(t, 1, game.CurrentSeat())
	})

	t.Run("Second spin is refused while a payout is pending", func(t *testing.T) {
		game := newRound()
		game.PendingSpin = 600

		_, err := Spin(game, &scriptedWheel{values: []int{500}})

		require.ErrorIs(t, err, apperror.ErrSpinPending)
	})

	t.Run("Finished round refuses to spin", func(t *testing.T) {
		game := newRound()
		game.FinishSolved()

		_, err := Spin(game, &scriptedWheel{values: []int{500}})

		require.ErrorIs(t, err, apperror.ErrRoundFinished)
	})
}

func TestGuessConsonant(t *testing.T) {
	t.Run("Hit credits payout per match and retains the turn", func(t *testing.T) {
		// Given: seat 0 spun 500 on WHEEL OF FORTUNE
		game := newRound()
		_, err := Spin(game, &scriptedWheel{values: []int{500}})
		require.NoError(t, err)

		// When: guessing F, present in OF and FORTUNE
		result, err := GuessConsonant(game, "F")

		// Then: two matches pay 1000 and seat 0 keeps the turn
		require.NoError(t, err)
		require.Equal(t, 2, result.Matches)
		require.Equal(t, 1000, result.Earned)
		require.True(t, result.TurnKept)
		require.Equal(t, 0, game.CurrentSeat())
		require.Equal(t, 1000, game.Winnings[0])
		require.Equal(t, "_____ _F F______", game.Showing)
		require.Zero(t, game.PendingSpin)
	})

	t.Run("Miss advances the turn and pays nothing", func(t *testing.T) {
		game := newRound()
		game.PendingSpin = 800

		result, err := GuessConsonant(game, "Z")

		require.NoError(t, err)
		require.Zero(t, result.Matches)
		require.Zero(t, result.Earned)
		require.False(t, result.TurnKept)
		require.Equal(t, 1, game.CurrentSeat())
		require.Zero(t, game.Winnings[0])
	})

	t.Run("Refused without a pending spin", func(t *testing.T) {
		game := newRound()

		_, err := GuessConsonant(game, "T")

		require.ErrorIs(t, err, apperror.ErrSpinRequired)
	})

	t.Run("Vowel is refused", func(t *testing.T) {
		game := newRound()
		game.PendingSpin = 500

		_, err := GuessConsonant(game, "E")

		require.ErrorIs(t, err, apperror.ErrNotAConsonant)
		// The refusal keeps the payout pending and the turn in place
		require.Equal(t, 500, game.PendingSpin)
		require.Equal(t, 0, game.CurrentSeat())
	})

	t.Run("Repeated letter is refused", func(t *testing.T) {
		game := newRound()
		game.PendingSpin = 500
		_, err := GuessConsonant(game, "T")
		require.NoError(t, err)

		game.PendingSpin = 500
		_, err = GuessConsonant(game, "T")

		require.ErrorIs(t, err, apperror.ErrAlreadyGuessed)
	})

	t.Run("Revealing the last letter ends the round", func(t *testing.T) {
		// Given: a one-consonant board
		game := entity.NewGame("7", entity.Puzzle{Answer: "TNT", Category: "Thing"},
			[entity.SeatCount]string{entity.SeatHuman, entity.SeatSmart, entity.SeatConservative})
		game.RevealLetter("N")
		game.PendingSpin = 900

		// When: the final consonant is guessed
		result, err := GuessConsonant(game, "T")

		// Then: the round is solved with the payout credited
		require.NoError(t, err)
		require.True(t, result.Solved)
		require.Equal(t, 1800, game.Winnings[0])
		require.True(t, game.IsFinished())
		require.Equal(t, entity.ReasonSolved, game.Reason)
	})
}

func TestBuyVowel(t *testing.T) {
	t.Run("Hit deducts the price and retains the turn", func(t *testing.T) {
		// Given: seat 0 can afford a vowel
		game := newRound()
		game.Winnings[0] = 500

		// When: buying O, present twice
		result, err := BuyVowel(game, "O")

		// Then: 250 is deducted up front, matches revealed, turn kept
		require.NoError(t, err)
		require.Equal(t, 2, result.Matches)
		require.True(t, result.TurnKept)
		require.Equal(t, 250, game.Winnings[0])
		require.Equal(t, "_____ O_ _O_____", game.Showing)
		require.Equal(t, 0, game.CurrentSeat())
	})

	t.Run("Miss still costs and advances the turn", func(t *testing.T) {
		game := entity.NewGame("7", entity.Puzzle{Answer: "TNT", Category: "Thing"},
			[entity.SeatCount]string{entity.SeatHuman, entity.SeatSmart, entity.SeatConservative})
		game.Winnings[0] = 300

		result, err := BuyVowel(game, "A")

		require.NoError(t, err)
		require.Zero(t, result.Matches)
		require.Equal(t, 50, game.Winnings[0])
		require.Equal(t, 1, game.CurrentSeat())
	})

	t.Run("Insufficient funds is a refusal, not a turn", func(t *testing.T) {
		// Given: seat 0 holds only 200
		game := newRound()
		game.Winnings[0] = 200

		// When: trying to buy a vowel
		_, err := BuyVowel(game, "E")

		// Then: the action is rejected with winnings and turn untouched
		require.ErrorIs(t, err, apperror.ErrInsufficientFunds)
		require.Equal(t, 200, game.Winnings[0])
		require.Equal(t, 0, game.CurrentSeat())
		require.False(t, game.HasGuessed("E"))
	})

	t.Run("Consonant is refused", func(t *testing.T) {
		game := newRound()
		game.Winnings[0] = 500

		_, err := BuyVowel(game, "T")

		require.ErrorIs(t, err, apperror.ErrNotAVowel)
	})

	t.Run("Repeated vowel is refused", func(t *testing.T) {
		game := newRound()
		game.Winnings[0] = 1000
		_, err := BuyVowel(game, "O")
		require.NoError(t, err)

		_, err = BuyVowel(game, "O")

		require.ErrorIs(t, err, apperror.ErrAlreadyGuessed)
		require.Equal(t, 750, game.Winnings[0])
	})
}

func TestAttemptSolve(t *testing.T) {
	t.Run("Exact match ends the round with winnings frozen", func(t *testing.T) {
		// Given: seats holding winnings
		game := newRound()
		game.Winnings = [entity.SeatCount]int{500, 750, 0}
		game.TurnCursor = 2

		// When: seat 2 solves with sloppy casing and whitespace
		solved, err := AttemptSolve(game, "  wheel of fortune ")

		// Then: the round is over, winnings unchanged
		require.NoError(t, err)
		require.True(t, solved)
		require.True(t, game.IsFinished())
		require.Equal(t, entity.ReasonSolved, game.Reason)
		require.Equal(t, [entity.SeatCount]int{500, 750, 0}, game.Winnings)
		require.Equal(t, game.Answer, game.Showing)
	})

	t.Run("Mismatch advances the turn with no penalty", func(t *testing.T) {
		game := newRound()
		game.Winnings[0] = 600

		solved, err := AttemptSolve(game, "WHEEL OF TORTURE")

		require.NoError(t, err)
		require.False(t, solved)
		require.Equal(t, 1, game.CurrentSeat())
		require.Equal(t, 600, game.Winnings[0])
		require.True(t, game.IsOngoing())
	})
}

func TestPass(t *testing.T) {
	// Given: an ongoing round
	game := newRound()

	// When: the seat passes
	err := Pass(game)

	// Then: play moves to the next seat
	require.NoError(t, err)
	require.Equal(t, 1, game.CurrentSeat())
}

func TestAbandon(t *testing.T) {
	t.Run("Aborts an ongoing round", func(t *testing.T) {
		game := newRound()

		err := Abandon(game)

		require.NoError(t, err)
		require.True(t, game.IsFinished())
		require.Equal(t, entity.ReasonAbandoned, game.Reason)
	})

	t.Run("Refused once finished", func(t *testing.T) {
		game := newRound()
		game.FinishSolved()

		err := Abandon(game)

		require.ErrorIs(t, err, apperror.ErrRoundFinished)
	})
}

// The retention law: correct guesses keep the seat, everything else
// advances it by exactly one.
func TestTurnRetentionLaw(t *testing.T) {
	type step struct {
		name    string
		apply   func(t *testing.T, game *entity.Game)
		retains bool
	}

	steps := []step{
		{
			name: "correct consonant",
			apply: func(t *testing.T, game *entity.Game) {
				t.Helper()
				game.PendingSpin = 500
				_, err := GuessConsonant(game, "F")
				require.NoError(t, err)
			},
			retains: true,
		},
		{
			name: "correct vowel",
			apply: func(t *testing.T, game *entity.Game) {
				t.Helper()
				game.Winnings[game.CurrentSeat()] = 300
				_, err := BuyVowel(game, "O")
				require.NoError(t, err)
			},
			retains: true,
		},
		{
			name: "wrong consonant",
			apply: func(t *testing.T, game *entity.Game) {
				t.Helper()
				game.PendingSpin = 500
				_, err := GuessConsonant(game, "Z")
				require.NoError(t, err)
			},
			retains: false,
		},
		{
			name: "bankrupt",
			apply: func(t *testing.T, game *entity.Game) {
				t.Helper()
				_, err := Spin(game, &scriptedWheel{values: []int{wheel.Bankrupt}})
				require.NoError(t, err)
			},
			retains: false,
		},
		{
			name: "lose a turn",
			apply: func(t *testing.T, game *entity.Game) {
				t.Helper()
				_, err := Spin(game, &scriptedWheel{values: []int{wheel.LoseTurn}})
				require.NoError(t, err)
			},
			retains: false,
		},
		{
			name: "wrong solve",
			apply: func(t *testing.T, game *entity.Game) {
				t.Helper()
				_, err := AttemptSolve(game, "NOT THE ANSWER")
				require.NoError(t, err)
			},
			retains: false,
		},
	}

	for _, tc := range steps {
		t.Run(tc.name, func(t *testing.T) {
			game := newRound()
			before := game.CurrentSeat()

			tc.apply(t, game)

			if tc.retains {
				assert.Equal(t, before, game.CurrentSeat())
			} else {
				assert.Equal(t, (before+1)%entity.SeatCount, game.CurrentSeat())
			}
		})
	}
}
