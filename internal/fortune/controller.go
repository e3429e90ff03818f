package fortune

import (
	"github.com/playwheel/fortune-backend/internal/apperror"
	"github.com/playwheel/fortune-backend/internal/entity"
	"github.com/playwheel/fortune-backend/internal/wheel"
)

// Spinner draws one outcome value from the wheel.
type Spinner interface {
	Spin() int
}

// GuessResult describes what a consonant guess or vowel purchase did to
// the round.
type GuessResult struct {
	Letter   string
	Matches  int
	Earned   int
	TurnKept bool
	Solved   bool
}

// SpinOutcome describes one wheel draw and the effect it had.
type SpinOutcome struct {
	Value    int
	Bankrupt bool
	LostTurn bool
}

// Spin draws from the wheel for the acting seat. Bankrupt zeroes the
// seat's winnings and forfeits the turn; lose-a-turn forfeits it with no
// penalty; a positive value is held on the round until the seat names a
// consonant.
func Spin(game *entity.Game, w Spinner) (*SpinOutcome, error) {
	if err := game.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	if game.PendingSpin != 0 {
		return nil, apperror.ErrSpinPending
	}

	value := w.Spin()
	outcome := &SpinOutcome{Value: value}

	switch value {
	case wheel.Bankrupt:
		game.Winnings[game.CurrentSeat()] = 0
		game.AdvanceTurn()
		outcome.Bankrupt = true
	case wheel.LoseTurn:
		game.AdvanceTurn()
		outcome.LostTurn = true
	default:
		game.PendingSpin = value
	}

	return outcome, nil
}

// GuessConsonant resolves the consonant named after a paying spin. A hit
// credits payout times match count and retains the turn; a miss advances
// it. Either way the pending payout is consumed.
func GuessConsonant(game *entity.Game, letter string) (*GuessResult, error) {
	if err := game.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	if game.PendingSpin == 0 {
		return nil, apperror.ErrSpinRequired
	}

	if !entity.IsConsonant(letter) {
		return nil, apperror.ErrNotAConsonant
	}

	if game.HasGuessed(letter) {
		return nil, apperror.ErrAlreadyGuessed
	}

	payout := game.PendingSpin
	game.PendingSpin = 0

	return resolveGuess(game, letter, payout), nil
}

// BuyVowel deducts the vowel price up front and reveals the vowel. A hit
// retains the turn; a miss advances it. Refusals leave winnings and the
// turn untouched.
func BuyVowel(game *entity.Game, letter string) (*GuessResult, error) {
	if err := game.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	if game.PendingSpin != 0 {
		return nil, apperror.ErrSpinPending
	}

	if !entity.IsVowel(letter) {
		return nil, apperror.ErrNotAVowel
	}

	if game.HasGuessed(letter) {
		return nil, apperror.ErrAlreadyGuessed
	}

	seat := game.CurrentSeat()
	if game.Winnings[seat] < entity.VowelPrice {
		return nil, apperror.ErrInsufficientFunds
	}

	game.Winnings[seat] -= entity.VowelPrice

	return resolveGuess(game, letter, 0), nil
}

// AttemptSolve checks a direct solve. An exact match freezes winnings and
// ends the round; a miss advances the turn with no other penalty.
func AttemptSolve(game *entity.Game, text string) (bool, error) {
	if err := game.ConfirmOngoingState(); err != nil {
		return false, err
	}

	if game.PendingSpin != 0 {
		return false, apperror.ErrSpinPending
	}

	if game.MatchesSolution(text) {
		game.FinishSolved()
		return true, nil
	}

	game.AdvanceTurn()
	return false, nil
}

// Pass forfeits the acting seat's turn. It is the terminal decision for a
// policy with no legal move left, not an error.
func Pass(game *entity.Game) error {
	if err := game.ConfirmOngoingState(); err != nil {
		return err
	}

	game.PendingSpin = 0
	game.AdvanceTurn()
	return nil
}

// Abandon aborts the round explicitly.
func Abandon(game *entity.Game) error {
	if err := game.ConfirmOngoingState(); err != nil {
		return err
	}

	game.FinishAbandoned()
	return nil
}

func resolveGuess(game *entity.Game, letter string, payout int) *GuessResult {
	seat := game.CurrentSeat()
	matches := game.RevealLetter(letter)

	result := &GuessResult{Letter: letter, Matches: matches}

	if matches > 0 {
		result.Earned = payout * matches
		game.Winnings[seat] += result.Earned
		result.TurnKept = true
	} else {
		game.AdvanceTurn()
	}

	if game.IsComplete() {
		game.FinishSolved()
		result.Solved = true
	}

	return result
}
