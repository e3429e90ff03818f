package rest

import (
	"fmt"
	"net/http"
	"time"
)

// Start - starts the HTTP API server.
func Start(port string, handlers *Handlers) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/ping", handlers.Ping)

	mux.HandleFunc("/game/new", handlers.NewGame)
	mux.HandleFunc("/game/spin", handlers.Spin)
	mux.HandleFunc("/game/guess", handlers.GuessLetter)
	mux.HandleFunc("/game/vowel", handlers.BuyVowel)
	mux.HandleFunc("/game/solve", handlers.Solve)
	mux.HandleFunc("/game/hint", handlers.Hint)
	mux.HandleFunc("/game/ai-turn", handlers.AITurn)
	mux.HandleFunc("/game/abandon", handlers.Abandon)
	mux.HandleFunc("/game/state", handlers.State)
	mux.HandleFunc("/results", handlers.Results)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
