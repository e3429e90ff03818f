package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/playwheel/fortune-backend/internal/apperror"
	"github.com/playwheel/fortune-backend/internal/entity"
	"github.com/playwheel/fortune-backend/internal/fortune"
	"github.com/playwheel/fortune-backend/internal/hint"
	"github.com/playwheel/fortune-backend/internal/pkg"
	"github.com/playwheel/fortune-backend/internal/repository"
	"github.com/playwheel/fortune-backend/internal/strategy"
)

var ErrInvalidSeatTypes = errors.New("seat types must name exactly one human and known policies")

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.RoundResult) error
	Recent(ctx context.Context, limit int) ([]entity.RoundResult, error)
}

type puzzleSource interface {
	RandomPuzzle() entity.Puzzle
}

type hintService interface {
	Request(ctx context.Context, answer, category, difficulty, showing string, used int) hint.Result
	MaxHints() int
}

// GameManager drives rounds turn by turn: it interprets human commands and
// policy decisions, applies them through the fortune controller and keeps
// the stored round state current. One action is fully applied before the
// next is solicited.
type GameManager struct {
	logger *slog.Logger

	playerRepo playerRepo
	gameRepo   gameRepo
	resultRepo resultRepo
	puzzles    puzzleSource
	hints      hintService
	wheel      fortune.Spinner
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, resultRepo resultRepo, puzzles puzzleSource, hints hintService, gameWheel fortune.Spinner) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game-manager"),

		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		resultRepo: resultRepo,
		puzzles:    puzzles,
		hints:      hints,
		wheel:      gameWheel,
	}
}

// AITurnReport summarizes what an automated seat did on its turn.
type AITurnReport struct {
	Seat     int
	SeatType string
	Action   string
	Spin     *fortune.SpinOutcome
	Guess    *fortune.GuessResult
	Passed   bool
}

// GetOrCreatePlayer resolves a session to its player, registering a new
// one for an empty ID.
func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player := &entity.Player{ID: pkg.GenerateNewSessionID()}
		if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
			return nil, fmt.Errorf("failed to create player: %w", err)
		}
		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		player = &entity.Player{ID: id}
		if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
			return nil, fmt.Errorf("failed to create player: %w", err)
		}
		return player, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

// StartRound draws a puzzle and opens a fresh round for the player. Seat
// types are fixed configuration for the round: exactly one human seat,
// the rest named policies.
func (that *GameManager) StartRound(ctx context.Context, playerID string, seatTypes [entity.SeatCount]string) (*entity.Game, error) {
	if seatTypes == ([entity.SeatCount]string{}) {
		seatTypes = [entity.SeatCount]string{entity.SeatHuman, entity.SeatSmart, entity.SeatConservative}
	}

	if err := validateSeatTypes(seatTypes); err != nil {
		return nil, err
	}

	player, err := that.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create player: %w", err)
	}

	puzzle := that.puzzles.RandomPuzzle()
	game := entity.NewGame(pkg.GenerateGameID(), puzzle, seatTypes)

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	// A superseded round is abandoned implicitly; its stored state is
	// simply dropped.
	if player.GameID != "" && player.GameID != game.ID {
		if err = that.gameRepo.DeleteByID(ctx, player.GameID); err != nil {
			that.logger.Warn("failed to delete superseded round", "gameID", player.GameID, "error", err)
		}
	}

	player.GameID = game.ID
	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	that.logger.Info("round started", "gameID", game.ID, "category", game.Category)

	return game, nil
}

// Spin draws from the wheel for the human seat.
func (that *GameManager) Spin(ctx context.Context, playerID string) (*entity.Game, *fortune.SpinOutcome, error) {
	game, err := that.loadHumanTurn(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}

	outcome, err := fortune.Spin(game, that.wheel)
	if err != nil {
		return game, nil, err
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, outcome, nil
}

// GuessLetter resolves the human seat's consonant guess after a paying spin.
func (that *GameManager) GuessLetter(ctx context.Context, playerID, letter string) (*entity.Game, *fortune.GuessResult, error) {
	game, err := that.loadHumanTurn(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}

	result, err := fortune.GuessConsonant(game, normalizeLetter(letter))
	if err != nil {
		return game, nil, err
	}

	if err = that.persistAfterAction(ctx, game); err != nil {
		return nil, nil, err
	}

	return game, result, nil
}

// BuyVowel purchases a vowel for the human seat.
func (that *GameManager) BuyVowel(ctx context.Context, playerID, letter string) (*entity.Game, *fortune.GuessResult, error) {
	game, err := that.loadHumanTurn(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}

	result, err := fortune.BuyVowel(game, normalizeLetter(letter))
	if err != nil {
		return game, nil, err
	}

	if err = that.persistAfterAction(ctx, game); err != nil {
		return nil, nil, err
	}

	return game, result, nil
}

// Solve checks the human seat's direct solve attempt.
func (that *GameManager) Solve(ctx context.Context, playerID, text string) (*entity.Game, bool, error) {
	game, err := that.loadHumanTurn(ctx, playerID)
	if err != nil {
		return nil, false, err
	}

	solved, err := fortune.AttemptSolve(game, text)
	if err != nil {
		return game, false, err
	}

	if err = that.persistAfterAction(ctx, game); err != nil {
		return nil, false, err
	}

	return game, solved, nil
}

// Abandon aborts the player's round explicitly.
func (that *GameManager) Abandon(ctx context.Context, playerID string) (*entity.Game, error) {
	_, game, err := that.loadRound(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if err = fortune.Abandon(game); err != nil {
		return game, err
	}

	if err = that.persistAfterAction(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// AITurn plays one full turn for the automated seat whose action is
// awaited.
func (that *GameManager) AITurn(ctx context.Context, playerID string) (*entity.Game, *AITurnReport, error) {
	_, game, err := that.loadRound(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return game, nil, err
	}

	seat := game.CurrentSeat()
	seatType := game.SeatTypes[seat]
	if seatType == entity.SeatHuman {
		return game, nil, apperror.ErrNotYourTurn
	}

	policy, err := strategy.New(seatType)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve policy: %w", err)
	}

	action := policy.Decide(game.Showing, game.Winnings[seat], game.GuessedSet(), game.TurnCursor)

	report := &AITurnReport{Seat: seat, SeatType: seatType, Action: action.String()}

	if err = that.applyPolicyAction(game, action, report); err != nil {
		return nil, nil, err
	}

	if err = that.persistAfterAction(ctx, game); err != nil {
		return nil, nil, err
	}

	return game, report, nil
}

// RequestHint grants a hint against the round's budget. It never consumes
// a turn and never touches the board; the budget is only charged if the
// round is still live once the (possibly slow) provider call resolves.
func (that *GameManager) RequestHint(ctx context.Context, playerID, difficulty string) (*entity.Game, hint.Result, error) {
	_, game, err := that.loadRound(ctx, playerID)
	if err != nil {
		return nil, hint.Result{}, err
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return game, hint.Result{}, err
	}

	result := that.hints.Request(ctx, game.Answer, game.Category, difficulty, game.Showing, game.HintsUsed)
	if !result.Granted {
		return game, result, nil
	}

	// The provider call may have outlived the round; re-read before
	// charging the budget so a stale round is never mutated.
	current, err := that.gameRepo.GetByID(ctx, game.ID)
	if err != nil || !current.IsOngoing() {
		return game, result, nil
	}

	current.HintsUsed++
	if err = that.gameRepo.CreateOrUpdate(ctx, current); err != nil {
		return nil, hint.Result{}, fmt.Errorf("failed to update game: %w", err)
	}

	return current, result, nil
}

// State returns the player's current round.
func (that *GameManager) State(ctx context.Context, playerID string) (*entity.Game, error) {
	_, game, err := that.loadRound(ctx, playerID)
	if err != nil {
		return nil, err
	}

	return game, nil
}

// RecentResults lists the latest finished rounds.
func (that *GameManager) RecentResults(ctx context.Context, limit int) ([]entity.RoundResult, error) {
	results, err := that.resultRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list round results: %w", err)
	}

	return results, nil
}

// MaxHints exposes the per-round hint budget for state snapshots.
func (that *GameManager) MaxHints() int {
	return that.hints.MaxHints()
}

func (that *GameManager) applyPolicyAction(game *entity.Game, action strategy.Action, report *AITurnReport) error {
	switch action.Kind {
	case strategy.BuyVowel:
		result, err := fortune.BuyVowel(game, action.Letter)
		if err != nil {
			// A refused decision leaves no legal move for this turn.
			report.Passed = true
			return fortune.Pass(game)
		}
		report.Guess = result
		return nil

	case strategy.SpinConsonant:
		outcome, err := fortune.Spin(game, that.wheel)
		if err != nil {
			return fmt.Errorf("failed to spin: %w", err)
		}
		report.Spin = outcome

		if outcome.Bankrupt || outcome.LostTurn {
			return nil
		}

		result, err := fortune.GuessConsonant(game, action.Letter)
		if err != nil {
			report.Passed = true
			return fortune.Pass(game)
		}
		report.Guess = result
		return nil

	default:
		report.Passed = true
		return fortune.Pass(game)
	}
}

func (that *GameManager) persistAfterAction(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		that.recordResult(ctx, game)
	}

	return nil
}

func (that *GameManager) recordResult(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "recordResult", "gameID", game.ID)

	result := &entity.RoundResult{
		Answer:     game.Answer,
		Category:   game.Category,
		Reason:     game.Reason,
		WinnerSeat: winnerSeat(game),
		Winnings:   game.Winnings,
	}

	if err := that.resultRepo.Save(ctx, result); err != nil {
		log.Error("failed to record round result", "error", err)
		return
	}

	log.Info("round finished", "reason", game.Reason, "winnerSeat", result.WinnerSeat)
}

// winnerSeat is the seat that ended a solved round, or the richest seat
// when the round was abandoned.
func winnerSeat(game *entity.Game) int {
	if game.Reason == entity.ReasonSolved {
		return game.CurrentSeat()
	}

	winner := 0
	for seat := 1; seat < entity.SeatCount; seat++ {
		if game.Winnings[seat] > game.Winnings[winner] {
			winner = seat
		}
	}
	return winner
}

func (that *GameManager) loadRound(ctx context.Context, playerID string) (*entity.Player, *entity.Game, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		return nil, nil, apperror.ErrNoActiveRound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == "" {
		return nil, nil, apperror.ErrNoActiveRound
	}

	game, err := that.gameRepo.GetByID(ctx, player.GameID)
	if errors.Is(err, repository.ErrGameNotFound) {
		return nil, nil, apperror.ErrNoActiveRound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return player, game, nil
}

func (that *GameManager) loadHumanTurn(ctx context.Context, playerID string) (*entity.Game, error) {
	_, game, err := that.loadRound(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return game, err
	}

	if game.SeatTypes[game.CurrentSeat()] != entity.SeatHuman {
		return game, apperror.ErrNotYourTurn
	}

	return game, nil
}

func validateSeatTypes(seatTypes [entity.SeatCount]string) error {
	humans := 0
	for _, seatType := range seatTypes {
		if !entity.IsValidSeatType(seatType) {
			return fmt.Errorf("%w: %q", ErrInvalidSeatTypes, seatType)
		}
		if seatType == entity.SeatHuman {
			humans++
		}
	}

	if humans != 1 {
		return fmt.Errorf("%w: %d human seats", ErrInvalidSeatTypes, humans)
	}

	return nil
}

func normalizeLetter(letter string) string {
	if len(letter) == 1 && letter[0] >= 'a' && letter[0] <= 'z' {
		return string(letter[0] - 'a' + 'A')
	}
	return letter
}
