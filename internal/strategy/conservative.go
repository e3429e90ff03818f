package strategy

// conservativePolicy buys vowels whenever it can afford them, trading
// expected payout for immunity to the wheel. Consonants are only guessed
// when vowels are exhausted or funds are short.
type conservativePolicy struct{}

func (conservativePolicy) Name() string { return "conservative" }

func (conservativePolicy) Decide(_ string, winnings int, guessed map[string]bool, _ int) Action {
	if vowel := nextVowel(guessed); vowel != "" && winnings >= vowelPrice {
		return Action{Kind: BuyVowel, Letter: vowel}
	}

	if consonant := nextConsonant(guessed); consonant != "" {
		return Action{Kind: SpinConsonant, Letter: consonant}
	}

	return Action{Kind: Pass}
}
