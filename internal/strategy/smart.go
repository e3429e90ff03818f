package strategy

// smartPolicy spins for the top-ranked consonant but buys a vowel
// opportunistically while the board is still mostly covered, when funds
// allow and an unguessed vowel remains.
type smartPolicy struct{}

// Below this revealed share a vowel purchase beats another spin.
const smartVowelThreshold = 0.4

func (smartPolicy) Name() string { return "smart" }

func (smartPolicy) Decide(showing string, winnings int, guessed map[string]bool, _ int) Action {
	vowel := nextVowel(guessed)
	consonant := nextConsonant(guessed)

	if vowel != "" && winnings >= vowelPrice && revealedFraction(showing) < smartVowelThreshold {
		return Action{Kind: BuyVowel, Letter: vowel}
	}

	if consonant != "" {
		return Action{Kind: SpinConsonant, Letter: consonant}
	}

	if vowel != "" && winnings >= vowelPrice {
		return Action{Kind: BuyVowel, Letter: vowel}
	}

	return Action{Kind: Pass}
}
