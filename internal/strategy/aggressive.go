package strategy

// aggressivePolicy always spins while a consonant remains, accepting the
// bankrupt risk for the higher expected payout. Vowels are a last resort.
type aggressivePolicy struct{}

func (aggressivePolicy) Name() string { return "aggressive" }

func (aggressivePolicy) Decide(_ string, winnings int, guessed map[string]bool, _ int) Action {
	if consonant := nextConsonant(guessed); consonant != "" {
		return Action{Kind: SpinConsonant, Letter: consonant}
	}

	if vowel := nextVowel(guessed); vowel != "" && winnings >= vowelPrice {
		return Action{Kind: BuyVowel, Letter: vowel}
	}

	return Action{Kind: Pass}
}
