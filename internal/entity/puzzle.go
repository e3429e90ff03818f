package entity

import "strings"

const (
	// Blank marks an unrevealed letter position on the board.
	Blank = '_'

	vowels = "AEIOU"
)

// Puzzle is an answer drawn from the corpus. Immutable once a round starts.
type Puzzle struct {
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// IsValid reports whether the answer consists of uppercase letters and
// spaces only and contains at least one letter.
func (that Puzzle) IsValid() bool {
	hasLetter := false
	for i := 0; i < len(that.Answer); i++ {
		c := that.Answer[i]
		switch {
		case c >= 'A' && c <= 'Z':
			hasLetter = true
		case c == ' ':
		default:
			return false
		}
	}
	return hasLetter
}

// NewShowing masks every letter of the answer with Blank; spaces pass
// through unchanged.
func NewShowing(answer string) string {
	showing := []byte(answer)
	for i, c := range showing {
		if c >= 'A' && c <= 'Z' {
			showing[i] = Blank
		}
	}
	return string(showing)
}

// IsVowel reports whether the letter is one of A, E, I, O, U.
func IsVowel(letter string) bool {
	return len(letter) == 1 && strings.Contains(vowels, letter)
}

// IsConsonant reports whether the letter is an uppercase letter that is
// not a vowel.
func IsConsonant(letter string) bool {
	if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
		return false
	}
	return !IsVowel(letter)
}

// NormalizeSolution uppercases and trims a solve attempt and collapses
// runs of inner whitespace, so "wheel  of fortune " matches the answer.
func NormalizeSolution(text string) string {
	return strings.Join(strings.Fields(strings.ToUpper(text)), " ")
}
