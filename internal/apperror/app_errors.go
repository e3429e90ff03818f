package apperror

import "errors"

// Rejected actions are reported with these sentinels. They are structured
// refusals, not failures: the round state is unchanged and the turn is not
// consumed.
var (
	ErrRoundFinished   = errors.New("round is already finished")
	ErrRoundNotStarted = errors.New("round is not started")
	ErrNoActiveRound   = errors.New("no active round")
	ErrNotYourTurn     = errors.New("it's not your turn")

	ErrAlreadyGuessed    = errors.New("letter is already guessed")
	ErrNotAConsonant     = errors.New("letter is not a consonant")
	ErrNotAVowel         = errors.New("letter is not a vowel")
	ErrInsufficientFunds = errors.New("not enough winnings to buy a vowel")

	ErrSpinRequired = errors.New("spin the wheel before guessing a consonant")
	ErrSpinPending  = errors.New("a spin result is pending a consonant guess")
)
