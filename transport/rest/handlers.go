package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/playwheel/fortune-backend/internal/apperror"
	"github.com/playwheel/fortune-backend/internal/entity"
	"github.com/playwheel/fortune-backend/internal/fortune"
	"github.com/playwheel/fortune-backend/internal/hint"
	"github.com/playwheel/fortune-backend/internal/usecase"
	"github.com/playwheel/fortune-backend/internal/wheel"
)

const sessionCookie = "user_session"

const defaultResultsLimit = 10

type gameManager interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
	StartRound(ctx context.Context, playerID string, seatTypes [entity.SeatCount]string) (*entity.Game, error)
	Spin(ctx context.Context, playerID string) (*entity.Game, *fortune.SpinOutcome, error)
	GuessLetter(ctx context.Context, playerID, letter string) (*entity.Game, *fortune.GuessResult, error)
	BuyVowel(ctx context.Context, playerID, letter string) (*entity.Game, *fortune.GuessResult, error)
	Solve(ctx context.Context, playerID, text string) (*entity.Game, bool, error)
	Abandon(ctx context.Context, playerID string) (*entity.Game, error)
	AITurn(ctx context.Context, playerID string) (*entity.Game, *usecase.AITurnReport, error)
	RequestHint(ctx context.Context, playerID, difficulty string) (*entity.Game, hint.Result, error)
	State(ctx context.Context, playerID string) (*entity.Game, error)
	RecentResults(ctx context.Context, limit int) ([]entity.RoundResult, error)
	MaxHints() int
}

type Handlers struct {
	logger  *slog.Logger
	manager gameManager
}

func NewHandlers(logger *slog.Logger, manager gameManager) *Handlers {
	return &Handlers{
		logger:  logger.With("component", "rest"),
		manager: manager,
	}
}

// gameView is the client-facing round snapshot. The answer is only
// included once the round is over.
type gameView struct {
	Category       string                   `json:"category"`
	Showing        string                   `json:"showing"`
	Guessed        []string                 `json:"guessed"`
	CurrentSeat    int                      `json:"current_seat"`
	SeatTypes      [entity.SeatCount]string `json:"seat_types"`
	Winnings       [entity.SeatCount]int    `json:"winnings"`
	PendingSpin    int                      `json:"pending_spin,omitempty"`
	HintsRemaining int                      `json:"hints_remaining"`
	Status         string                   `json:"status"`
	Reason         string                   `json:"reason,omitempty"`
	Answer         string                   `json:"answer,omitempty"`
}

type spinView struct {
	Value    int    `json:"value"`
	Label    string `json:"label"`
	Bankrupt bool   `json:"bankrupt"`
	LostTurn bool   `json:"lost_turn"`
}

type guessView struct {
	Letter   string `json:"letter"`
	Matches  int    `json:"matches"`
	Earned   int    `json:"earned"`
	TurnKept bool   `json:"turn_kept"`
	Solved   bool   `json:"solved"`
}

type aiTurnView struct {
	Seat     int        `json:"seat"`
	SeatType string     `json:"seat_type"`
	Action   string     `json:"action"`
	Spin     *spinView  `json:"spin,omitempty"`
	Guess    *guessView `json:"guess,omitempty"`
	Passed   bool       `json:"passed,omitempty"`
	Message  string     `json:"message"`
}

type response struct {
	Success bool                 `json:"success"`
	Message string               `json:"message,omitempty"`
	Game    *gameView            `json:"game,omitempty"`
	Spin    *spinView            `json:"spin,omitempty"`
	Guess   *guessView           `json:"guess,omitempty"`
	Solved  *bool                `json:"solved,omitempty"`
	Hint    *hint.Result         `json:"hint,omitempty"`
	Turn    *aiTurnView          `json:"turn,omitempty"`
	Results []entity.RoundResult `json:"results,omitempty"`
}

func (that *Handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *Handlers) NewGame(w http.ResponseWriter, r *http.Request) {
	playerID, ok := that.session(w, r)
	if !ok {
		return
	}

	var req struct {
		SeatTypes []string `json:"seat_types"`
	}
	if !that.decode(w, r, &req) {
		return
	}

	var seatTypes [entity.SeatCount]string
	if len(req.SeatTypes) > 0 {
		if len(req.SeatTypes) != entity.SeatCount {
			that.writeRefusal(w, fmt.Errorf("%w: want %d seats", usecase.ErrInvalidSeatTypes, entity.SeatCount))
			return
		}
		copy(seatTypes[:], req.SeatTypes)
	}

	game, err := that.manager.StartRound(r.Context(), playerID, seatTypes)
	if err != nil {
		that.writeError(w, "NewGame", err)
		return
	}

	that.writeJSON(w, response{Success: true, Game: that.viewOf(game)})
}

func (that *Handlers) Spin(w http.ResponseWriter, r *http.Request) {
	playerID, ok := that.session(w, r)
	if !ok {
		return
	}

	game, outcome, err := that.manager.Spin(r.Context(), playerID)
	if err != nil {
		that.writeError(w, "Spin", err)
		return
	}

	that.writeJSON(w, response{
		Success: true,
		Message: wheel.Label(outcome.Value),
		Spin:    spinViewOf(outcome),
		Game:    that.viewOf(game),
	})
}

func (that *Handlers) GuessLetter(w http.ResponseWriter, r *http.Request) {
	playerID, ok := that.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Letter string `json:"letter"`
	}
	if !that.decode(w, r, &req) {
		return
	}

	game, result, err := that.manager.GuessLetter(r.Context(), playerID, req.Letter)
	if err != nil {
		that.writeError(w, "GuessLetter", err)
		return
	}

	that.writeJSON(w, response{
		Success: true,
		Message: guessMessage(result),
		Guess:   guessViewOf(result),
		Game:    that.viewOf(game),
	})
}

func (that *Handlers) BuyVowel(w http.ResponseWriter, r *http.Request) {
	playerID, ok := that.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Letter string `json:"letter"`
	}
	if !that.decode(w, r, &req) {
		return
	}

	game, result, err := that.manager.BuyVowel(r.Context(), playerID, req.Letter)
	if err != nil {
		that.writeError(w, "BuyVowel", err)
		return
	}

	that.writeJSON(w, response{
		Success: true,
		Message: vowelMessage(result),
		Guess:   guessViewOf(result),
		Game:    that.viewOf(game),
	})
}

func (that *Handlers) Solve(w http.ResponseWriter, r *http.Request) {
	playerID, ok := that.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if !that.decode(w, r, &req) {
		return
	}

	game, solved, err := that.manager.Solve(r.Context(), playerID, req.Text)
	if err != nil {
		that.writeError(w, "Solve", err)
		return
	}

	message := "Incorrect solution. Next player's turn."
	if solved {
		message = "Correct! You solved the puzzle!"
	}

	that.writeJSON(w, response{
		Success: true,
		Message: message,
		Solved:  &solved,
		Game:    that.viewOf(game),
	})
}

func (that *Handlers) Hint(w http.ResponseWriter, r *http.Request) {
	playerID, ok := that.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Difficulty string `json:"difficulty"`
	}
	if !that.decode(w, r, &req) {
		return
	}

	game, result, err := that.manager.RequestHint(r.Context(), playerID, req.Difficulty)
	if err != nil {
		that.writeError(w, "Hint", err)
		return
	}

	that.writeJSON(w, response{
		Success: true,
		Hint:    &result,
		Game:    that.viewOf(game),
	})
}

func (that *Handlers) AITurn(w http.ResponseWriter, r *http.Request) {
	playerID, ok := that.session(w, r)
	if !ok {
		return
	}

	game, report, err := that.manager.AITurn(r.Context(), playerID)
	if err != nil {
		that.writeError(w, "AITurn", err)
		return
	}

	view := aiTurnViewOf(report)

	that.writeJSON(w, response{
		Success: true,
		Message: view.Message,
		Turn:    view,
		Game:    that.viewOf(game),
	})
}

func (that *Handlers) Abandon(w http.ResponseWriter, r *http.Request) {
	playerID, ok := that.session(w, r)
	if !ok {
		return
	}

	game, err := that.manager.Abandon(r.Context(), playerID)
	if err != nil {
		that.writeError(w, "Abandon", err)
		return
	}

	that.writeJSON(w, response{Success: true, Message: "Round abandoned.", Game: that.viewOf(game)})
}

func (that *Handlers) State(w http.ResponseWriter, r *http.Request) {
	playerID, ok := that.session(w, r)
	if !ok {
		return
	}

	game, err := that.manager.State(r.Context(), playerID)
	if err != nil {
		that.writeError(w, "State", err)
		return
	}

	that.writeJSON(w, response{Success: true, Game: that.viewOf(game)})
}

func (that *Handlers) Results(w http.ResponseWriter, r *http.Request) {
	results, err := that.manager.RecentResults(r.Context(), defaultResultsLimit)
	if err != nil {
		that.writeError(w, "Results", err)
		return
	}

	that.writeJSON(w, response{Success: true, Results: results})
}

// session resolves the request to a player, registering one and setting
// the cookie when the client has no session yet.
func (that *Handlers) session(w http.ResponseWriter, r *http.Request) (string, bool) {
	log := that.logger.With("method", "session")

	var cookieID string
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		cookieID = cookie.Value
	}

	player, err := that.manager.GetOrCreatePlayer(r.Context(), cookieID)
	if err != nil {
		log.Error("failed to resolve session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return "", false
	}

	if player.ID != cookieID {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    player.ID,
			Expires:  time.Now().Add(24 * time.Hour),
			Path:     "/",
			HttpOnly: true,
		})
		log.Info("registered new session", "playerID", player.ID)
	}

	return player.ID, true
}

func (that *Handlers) decode(w http.ResponseWriter, r *http.Request, into any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}

	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		that.writeRefusal(w, fmt.Errorf("invalid request body: %w", err))
		return false
	}

	return true
}

// writeError maps refusal sentinels to a normal unsuccessful response;
// anything else is a server fault.
func (that *Handlers) writeError(w http.ResponseWriter, method string, err error) {
	if isRefusal(err) {
		that.writeRefusal(w, err)
		return
	}

	that.logger.Error("request failed", "method", method, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func (that *Handlers) writeRefusal(w http.ResponseWriter, err error) {
	that.writeJSON(w, response{Success: false, Message: err.Error()})
}

func (that *Handlers) writeJSON(w http.ResponseWriter, payload response) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

func (that *Handlers) viewOf(game *entity.Game) *gameView {
	if game == nil {
		return nil
	}

	view := &gameView{
		Category:       game.Category,
		Showing:        game.Showing,
		Guessed:        game.Guessed,
		CurrentSeat:    game.CurrentSeat(),
		SeatTypes:      game.SeatTypes,
		Winnings:       game.Winnings,
		PendingSpin:    game.PendingSpin,
		HintsRemaining: max(that.manager.MaxHints()-game.HintsUsed, 0),
		Status:         game.Status,
		Reason:         game.Reason,
	}

	if game.IsFinished() {
		view.Answer = game.Answer
	}

	return view
}

func isRefusal(err error) bool {
	for _, sentinel := range []error{
		apperror.ErrRoundFinished,
		apperror.ErrRoundNotStarted,
		apperror.ErrNoActiveRound,
		apperror.ErrNotYourTurn,
		apperror.ErrAlreadyGuessed,
		apperror.ErrNotAConsonant,
		apperror.ErrNotAVowel,
		apperror.ErrInsufficientFunds,
		apperror.ErrSpinRequired,
		apperror.ErrSpinPending,
		usecase.ErrInvalidSeatTypes,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func spinViewOf(outcome *fortune.SpinOutcome) *spinView {
	return &spinView{
		Value:    outcome.Value,
		Label:    wheel.Label(outcome.Value),
		Bankrupt: outcome.Bankrupt,
		LostTurn: outcome.LostTurn,
	}
}

func guessViewOf(result *fortune.GuessResult) *guessView {
	return &guessView{
		Letter:   result.Letter,
		Matches:  result.Matches,
		Earned:   result.Earned,
		TurnKept: result.TurnKept,
		Solved:   result.Solved,
	}
}

func guessMessage(result *fortune.GuessResult) string {
	if result.Matches > 0 {
		return fmt.Sprintf("Correct! Found %d letter(s). Earned $%d!", result.Matches, result.Earned)
	}
	return "Not in the puzzle. Next player's turn."
}

func vowelMessage(result *fortune.GuessResult) string {
	if result.Matches > 0 {
		return fmt.Sprintf("Bought vowel %s. Found %d letter(s)!", result.Letter, result.Matches)
	}
	return fmt.Sprintf("Bought vowel %s. Not in puzzle.", result.Letter)
}

func aiTurnViewOf(report *usecase.AITurnReport) *aiTurnView {
	view := &aiTurnView{
		Seat:     report.Seat,
		SeatType: report.SeatType,
		Action:   report.Action,
		Passed:   report.Passed,
	}

	if report.Spin != nil {
		view.Spin = spinViewOf(report.Spin)
	}
	if report.Guess != nil {
		view.Guess = guessViewOf(report.Guess)
	}

	view.Message = aiTurnMessage(report)

	return view
}

func aiTurnMessage(report *usecase.AITurnReport) string {
	name := fmt.Sprintf("Seat %d (%s)", report.Seat+1, report.SeatType)

	switch {
	case report.Spin != nil && report.Spin.Bankrupt:
		return name + " went BANKRUPT!"
	case report.Spin != nil && report.Spin.LostTurn:
		return name + " lost a turn."
	case report.Passed:
		return name + " passed."
	case report.Guess != nil && report.Guess.Matches > 0:
		return fmt.Sprintf("%s guessed %s - correct! Found %d letter(s). Earned $%d!",
			name, report.Guess.Letter, report.Guess.Matches, report.Guess.Earned)
	case report.Guess != nil:
		return fmt.Sprintf("%s guessed %s - not in the puzzle. Next turn.", name, report.Guess.Letter)
	default:
		return name + " took a turn."
	}
}
