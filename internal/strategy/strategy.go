// Package strategy holds the decision policies driving the automated
// seats. A policy is a pure function over the visible round state: it
// keeps no memory of its own between turns.
package strategy

import (
	"errors"
	"fmt"
)

// English letters in descending frequency order. Policies walk this order,
// so choices are deterministic and testable.
const frequencyOrder = "ETAINOSHRDLUCMFWYGPBVKQJXZ"

const vowelPrice = 250

var ErrUnknownPolicy = errors.New("unknown policy")

// Kind of action a policy decided on.
type Kind int

const (
	// SpinConsonant spins the wheel and guesses Letter on a paying value.
	SpinConsonant Kind = iota
	// BuyVowel purchases Letter.
	BuyVowel
	// Pass forfeits the turn; the terminal decision when no unguessed
	// letter of a usable class remains.
	Pass
)

// Action is one turn decision.
type Action struct {
	Kind   Kind
	Letter string
}

func (that Action) String() string {
	switch that.Kind {
	case SpinConsonant:
		return "spin for " + that.Letter
	case BuyVowel:
		return "buy vowel " + that.Letter
	default:
		return "pass"
	}
}

// Policy decides a seat's turn from the visible state: the partially
// revealed board, the seat's winnings, the letters guessed so far and the
// turn index.
type Policy interface {
	Name() string
	Decide(showing string, winnings int, guessed map[string]bool, turn int) Action
}

// New returns the policy registered under the given name.
func New(name string) (Policy, error) {
	switch name {
	case "smart":
		return smartPolicy{}, nil
	case "conservative":
		return conservativePolicy{}, nil
	case "aggressive":
		return aggressivePolicy{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPolicy, name)
	}
}

func isVowel(letter byte) bool {
	switch letter {
	case 'A', 'E', 'I', 'O', 'U':
		return true
	default:
		return false
	}
}

// nextConsonant picks the highest-frequency unguessed consonant, or ""
// when none remain.
func nextConsonant(guessed map[string]bool) string {
	for i := 0; i < len(frequencyOrder); i++ {
		letter := string(frequencyOrder[i])
		if isVowel(frequencyOrder[i]) || guessed[letter] {
			continue
		}
		return letter
	}
	return ""
}

// nextVowel picks the highest-frequency unguessed vowel, or "" when none
// remain.
func nextVowel(guessed map[string]bool) string {
	for i := 0; i < len(frequencyOrder); i++ {
		letter := string(frequencyOrder[i])
		if !isVowel(frequencyOrder[i]) || guessed[letter] {
			continue
		}
		return letter
	}
	return ""
}

// revealedFraction is the share of letter positions already uncovered.
func revealedFraction(showing string) float64 {
	letters, revealed := 0, 0
	for i := 0; i < len(showing); i++ {
		if showing[i] == ' ' {
			continue
		}
		letters++
		if showing[i] != '_' {
			revealed++
		}
	}
	if letters == 0 {
		return 1
	}
	return float64(revealed) / float64(letters)
}
