// Package hint grants rate-limited puzzle hints. When a remote
// text-generation provider is configured it is tried first with a strict
// timeout; any failure falls back to deterministic rule-based hints, so a
// request inside the budget always succeeds.
package hint

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	// DefaultMaxHints is the per-round budget.
	DefaultMaxHints = 3

	// DefaultTimeout bounds one remote provider call.
	DefaultTimeout = 15 * time.Second
)

// Provider is the opaque remote text-generation capability. A nil
// Provider means the capability is unavailable, which is a normal
// configuration, not an error.
type Provider interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Result is the outcome of one hint request. An exhausted budget yields
// Granted=false; it is a terminal state, not an error.
type Result struct {
	Granted      bool   `json:"granted"`
	Text         string `json:"text,omitempty"`
	Remaining    int    `json:"remaining"`
	UsedFallback bool   `json:"used_fallback,omitempty"`
	Difficulty   string `json:"difficulty,omitempty"`
}

type Service struct {
	logger   *slog.Logger
	provider Provider
	timeout  time.Duration
	maxHints int
}

func NewService(logger *slog.Logger, provider Provider, timeout time.Duration, maxHints int) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxHints <= 0 {
		maxHints = DefaultMaxHints
	}

	return &Service{
		logger:   logger.With("component", "hint"),
		provider: provider,
		timeout:  timeout,
		maxHints: maxHints,
	}
}

// MaxHints is the per-round budget this service enforces.
func (that *Service) MaxHints() int {
	return that.maxHints
}

// Request produces one hint for the puzzle, given how many hints the round
// already used. Provider failures are absorbed here and resolve to the
// fallback path; the caller records the grant against the round's budget.
func (that *Service) Request(ctx context.Context, answer, category, difficulty, showing string, used int) Result {
	difficulty = normalizeDifficulty(difficulty)

	if used >= that.maxHints {
		return Result{Granted: false, Remaining: 0, Text: "No more hints available for this round!"}
	}

	remaining := that.maxHints - used - 1

	if that.provider != nil {
		text, err := that.generate(ctx, answer, category, difficulty, showing)
		if err == nil {
			return Result{Granted: true, Text: text, Remaining: remaining, Difficulty: difficulty}
		}
		that.logger.Warn("hint provider failed, using fallback", "difficulty", difficulty, "error", err)
	}

	return Result{
		Granted:      true,
		Text:         fallbackHint(answer, category, difficulty),
		Remaining:    remaining,
		UsedFallback: true,
		Difficulty:   difficulty,
	}
}

func (that *Service) generate(ctx context.Context, answer, category, difficulty, showing string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, that.timeout)
	defer cancel()

	text, err := that.provider.GenerateText(ctx, buildPrompt(answer, category, difficulty, showing))
	if err != nil {
		return "", fmt.Errorf("generate text: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("provider returned an empty hint")
	}

	return text, nil
}

func normalizeDifficulty(difficulty string) string {
	switch strings.ToLower(strings.TrimSpace(difficulty)) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// The instruction text is the only part of the prompt that differs by
// difficulty.
var difficultyInstructions = map[string]string{
	DifficultyEasy:   "Create a straightforward, helpful hint that gives clear direction about the answer. You may reference specific words or parts of the phrase directly.",
	DifficultyMedium: "Create a crossword-style clue that is clever but fair. Use wordplay, synonyms, or indirect references.",
	DifficultyHard:   "Create a cryptic, challenging hint that requires creative thinking. Use metaphors or very indirect references.",
}

func buildPrompt(answer, category, difficulty, showing string) string {
	var b strings.Builder

	b.WriteString("You are a professional crossword puzzle writer creating hints for a wheel-of-fortune style game.\n\n")
	fmt.Fprintf(&b, "Puzzle answer: %q\nCategory: %s\nCurrent board: %s\n\n", answer, category, showing)
	fmt.Fprintf(&b, "Instructions for %s difficulty: %s\n\n", difficulty, difficultyInstructions[difficulty])
	b.WriteString("Rules:\n")
	b.WriteString("1. Never reveal the exact answer or any of its letters.\n")
	b.WriteString("2. Keep the hint to one or two sentences.\n")
	b.WriteString("3. Keep it appropriate for a family game show.\n")
	b.WriteString("4. Consider the category when crafting the hint.\n\n")
	b.WriteString("Reply with the hint text only.")

	return b.String()
}

// fallbackHint builds a deterministic, category-aware hint without any
// external call. It reports shape information only and never references
// the answer's letters.
func fallbackHint(answer, category, difficulty string) string {
	words := len(strings.Fields(answer))
	letters := 0
	for i := 0; i < len(answer); i++ {
		if answer[i] >= 'A' && answer[i] <= 'Z' {
			letters++
		}
	}

	switch difficulty {
	case DifficultyEasy:
		switch strings.ToLower(category) {
		case "phrase":
			return fmt.Sprintf("This common saying has %d words and %d letters total.", words, letters)
		case "thing":
			return fmt.Sprintf("This object or item has %d letters in its name.", letters)
		case "title":
			return fmt.Sprintf("This title or name consists of %d words.", words)
		default:
			return fmt.Sprintf("This %s has %d words and %d letters.", strings.ToLower(category), words, letters)
		}
	case DifficultyHard:
		return fmt.Sprintf("Think about what belongs in the '%s' category...", category)
	default:
		switch {
		case strings.Contains(answer, "AND"):
			return "This answer connects two related concepts."
		case words == 1:
			return fmt.Sprintf("A single word in the %s category.", category)
		default:
			return fmt.Sprintf("Multiple words that fit the %s theme.", category)
		}
	}
}
