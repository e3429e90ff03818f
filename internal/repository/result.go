package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/playwheel/fortune-backend/internal/entity"
)

type ResultRepository interface {
	Save(ctx context.Context, result *entity.RoundResult) error
	Recent(ctx context.Context, limit int) ([]entity.RoundResult, error)
}

type dbResult struct {
	conn *sql.DB
}

func NewResultRepository(conn *sql.DB) ResultRepository {
	return &dbResult{
		conn: conn,
	}
}

func (that *dbResult) Save(ctx context.Context, result *entity.RoundResult) error {
	query := `INSERT INTO round_results (answer, category, reason, winner_seat, winnings_0, winnings_1, winnings_2)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		result.Answer, result.Category, result.Reason, result.WinnerSeat,
		result.Winnings[0], result.Winnings[1], result.Winnings[2])
	if err != nil {
		return fmt.Errorf("can't save round result: %w", err)
	}

	return nil
}

func (that *dbResult) Recent(ctx context.Context, limit int) ([]entity.RoundResult, error) {
	query := `SELECT answer, category, reason, winner_seat, winnings_0, winnings_1, winnings_2
		FROM round_results ORDER BY id DESC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("can't query round results: %w", err)
	}
	defer rows.Close()

	var results []entity.RoundResult
	for rows.Next() {
		var result entity.RoundResult
		if err = rows.Scan(&result.Answer, &result.Category, &result.Reason, &result.WinnerSeat,
			&result.Winnings[0], &result.Winnings[1], &result.Winnings[2]); err != nil {
			return nil, fmt.Errorf("can't scan round result: %w", err)
		}
		results = append(results, result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read round results: %w", err)
	}

	return results, nil
}
