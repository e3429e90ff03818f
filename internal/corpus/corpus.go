// Package corpus supplies puzzles from a CSV file, one record per line:
// puzzle,clue,date,game_type. A missing or empty corpus degrades to a
// single fallback puzzle so a round can always start.
package corpus

import (
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/playwheel/fortune-backend/internal/entity"
)

// FallbackPuzzle is returned whenever the corpus is unreachable or empty.
var FallbackPuzzle = entity.Puzzle{Answer: "WHEEL OF FORTUNE", Category: "TV Show"}

type Corpus struct {
	logger  *slog.Logger
	rng     *rand.Rand
	puzzles []entity.Puzzle
}

// New loads the corpus at path. Load failures are logged, not fatal. The
// random source is injectable for tests; nil uses the process-global one.
func New(logger *slog.Logger, rng *rand.Rand, path string) *Corpus {
	log := logger.With("component", "corpus")

	that := &Corpus{logger: log, rng: rng}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("could not read puzzle corpus, using fallback puzzle", "path", path, "error", err)
		return that
	}

	for _, line := range strings.Split(string(data), "\n") {
		puzzle, ok := parseLine(line)
		if !ok {
			continue
		}
		that.puzzles = append(that.puzzles, puzzle)
	}

	if len(that.puzzles) == 0 {
		log.Warn("puzzle corpus is empty, using fallback puzzle", "path", path)
	} else {
		log.Info("puzzle corpus loaded", "path", path, "puzzles", len(that.puzzles))
	}

	return that
}

// RandomPuzzle draws a puzzle, or the fallback when none are loaded.
func (that *Corpus) RandomPuzzle() entity.Puzzle {
	if len(that.puzzles) == 0 {
		return FallbackPuzzle
	}

	if that.rng != nil {
		return that.puzzles[that.rng.Intn(len(that.puzzles))]
	}
	return that.puzzles[rand.Intn(len(that.puzzles))] //nolint:gosec // puzzle choice is not security sensitive
}

// Size reports how many puzzles were loaded.
func (that *Corpus) Size() int {
	return len(that.puzzles)
}

func parseLine(line string) (entity.Puzzle, bool) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) < 2 {
		return entity.Puzzle{}, false
	}

	puzzle := entity.Puzzle{
		Answer:   strings.ToUpper(unescape(parts[0])),
		Category: unescape(parts[1]),
	}

	if !puzzle.IsValid() || puzzle.Category == "" {
		return entity.Puzzle{}, false
	}

	return puzzle, true
}

// The source export HTML-escapes ampersands.
func unescape(field string) string {
	return strings.TrimSpace(strings.ReplaceAll(field, "&amp;", "&"))
}
