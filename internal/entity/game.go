package entity

import (
	"fmt"
	"strings"

	"github.com/playwheel/fortune-backend/internal/apperror"
)

const (
	StatusWaiting  = "waiting"
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"

	ReasonSolved    = "solved"
	ReasonAbandoned = "abandoned"

	SeatCount  = 3
	VowelPrice = 250
)

// Seat player types. A seat is either driven by the human client or by one
// of the named decision policies.
const (
	SeatHuman        = "human"
	SeatSmart        = "smart"
	SeatConservative = "conservative"
	SeatAggressive   = "aggressive"
)

// Game is one round of the word-guessing game. Showing mirrors Answer with
// Blank for every letter not yet guessed; TurnCursor only ever grows, the
// acting seat is TurnCursor mod SeatCount.
type Game struct {
	ID          string            `json:"id"`
	Answer      string            `json:"answer"`
	Category    string            `json:"category"`
	Showing     string            `json:"showing"`
	Guessed     []string          `json:"guessed"`
	TurnCursor  int               `json:"turn_cursor"`
	Winnings    [SeatCount]int    `json:"winnings"`
	SeatTypes   [SeatCount]string `json:"seat_types"`
	PendingSpin int               `json:"pending_spin,omitempty"`
	HintsUsed   int               `json:"hints_used"`
	Status      string            `json:"status"`
	Reason      string            `json:"reason,omitempty"`
}

// NewGame starts a fresh round over the given puzzle. Winnings, guesses,
// the hint budget and the turn cursor all reset here.
func NewGame(id string, puzzle Puzzle, seatTypes [SeatCount]string) *Game {
	return &Game{
		ID:        id,
		Answer:    puzzle.Answer,
		Category:  puzzle.Category,
		Showing:   NewShowing(puzzle.Answer),
		Guessed:   []string{},
		SeatTypes: seatTypes,
		Status:    StatusOngoing,
	}
}

// CurrentSeat is the seat whose action is awaited.
func (that *Game) CurrentSeat() int {
	return that.TurnCursor % SeatCount
}

// AdvanceTurn passes play to the next seat. The cursor is monotonic and
// never reset within a round.
func (that *Game) AdvanceTurn() {
	that.TurnCursor++
}

// HasGuessed reports whether the letter was already proposed this round.
func (that *Game) HasGuessed(letter string) bool {
	for _, guessed := range that.Guessed {
		if guessed == letter {
			return true
		}
	}
	return false
}

// RevealLetter records the guess and uncovers every position of the answer
// holding the letter. Returns the number of newly revealed positions.
func (that *Game) RevealLetter(letter string) int {
	if len(that.Showing) != len(that.Answer) {
		panic(fmt.Sprintf("showing length %d does not match answer length %d", len(that.Showing), len(that.Answer)))
	}

	that.Guessed = append(that.Guessed, letter)

	showing := []byte(that.Showing)
	count := 0
	for i := 0; i < len(that.Answer); i++ {
		if string(that.Answer[i]) == letter && showing[i] == Blank {
			showing[i] = that.Answer[i]
			count++
		}
	}
	that.Showing = string(showing)

	return count
}

// IsComplete reports whether every letter of the answer is uncovered.
func (that *Game) IsComplete() bool {
	return that.Showing == that.Answer
}

// MatchesSolution checks a direct solve attempt against the answer. No
// partial credit.
func (that *Game) MatchesSolution(text string) bool {
	return NormalizeSolution(text) == that.Answer
}

// FinishSolved uncovers the full board and terminates the round.
func (that *Game) FinishSolved() {
	that.Showing = that.Answer
	that.Status = StatusFinished
	that.Reason = ReasonSolved
	that.PendingSpin = 0
}

// FinishAbandoned terminates the round without a winner.
func (that *Game) FinishAbandoned() {
	that.Status = StatusFinished
	that.Reason = ReasonAbandoned
	that.PendingSpin = 0
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

// ConfirmOngoingState guards every player action.
func (that *Game) ConfirmOngoingState() error {
	switch that.Status {
	case StatusWaiting:
		return apperror.ErrRoundNotStarted
	case StatusFinished:
		return apperror.ErrRoundFinished
	default:
		return nil
	}
}

// GuessedVowels returns how many distinct vowels were proposed so far.
func (that *Game) GuessedVowels() int {
	count := 0
	for _, letter := range that.Guessed {
		if IsVowel(letter) {
			count++
		}
	}
	return count
}

// GuessedSet exposes the guessed letters as a lookup set for the decision
// policies.
func (that *Game) GuessedSet() map[string]bool {
	set := make(map[string]bool, len(that.Guessed))
	for _, letter := range that.Guessed {
		set[letter] = true
	}
	return set
}

// GuessedDisplay joins guessed letters in insertion order for the client.
func (that *Game) GuessedDisplay() string {
	return strings.Join(that.Guessed, " ")
}

// IsValidSeatType reports whether the given player type is known.
func IsValidSeatType(seatType string) bool {
	switch seatType {
	case SeatHuman, SeatSmart, SeatConservative, SeatAggressive:
		return true
	default:
		return false
	}
}
