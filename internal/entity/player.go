package entity

// Player is the human client's session identity. Seat assignment and AI
// opponents live on the Game itself.
type Player struct {
	ID     string `json:"id"`
	GameID string `json:"game_id,omitempty"`
}

// RoundResult is the durable record of a finished round.
type RoundResult struct {
	Answer     string         `json:"answer"`
	Category   string         `json:"category"`
	Reason     string         `json:"reason"`
	WinnerSeat int            `json:"winner_seat"`
	Winnings   [SeatCount]int `json:"winnings"`
}
