package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/cbodonnell/pong/pkg/log"
	"github.com/cbodonnell/pong/pkg/repositories/migrations"
	"github.com/cbodonnell/pong/pkg/repositories/models"
	"github.com/jackc/pgx/v5"
)

type PostgresRepository struct {
	conn *pgx.Conn
}

// NewPostgresRepository connects to the database and applies the migrations.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (Repository, error) {
	conn, err := connectDb(ctx, connStr)
	if err != nil {
		return nil, err
	}

	exec := func(ctx context.Context, q string) error {
		_, err := conn.Exec(ctx, q)
		return err
	}
	if err := applyMigrations(ctx, migrations.Postgres, "postgres", exec); err != nil {
		conn.Close(ctx)
		return nil, err
	}

	return &PostgresRepository{
		conn: conn,
	}, nil
}

func connectDb(ctx context.Context, connStr string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	err = conn.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("unable to query database: %v", err)
	}

	log.Info("Connected to %s as %s", database, username)

	return conn, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) SaveMatchResult(ctx context.Context, result *models.MatchResult) error {
	q := `
	INSERT INTO match_results (id, winner_slot, left_score, right_score, left_session_id, right_session_id, started_at, ended_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE SET winner_slot = $2, left_score = $3, right_score = $4, ended_at = $8;
	`
	_, err := r.conn.Exec(ctx, q,
		result.ID,
		result.WinnerSlot,
		result.LeftScore,
		result.RightScore,
		result.LeftSessionID,
		result.RightSessionID,
		result.StartedAt,
		result.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert match result: %v", err)
	}

	return nil
}

func (r *PostgresRepository) ListMatchResults(ctx context.Context, limit int) ([]*models.MatchResult, error) {
	q := `
	SELECT id::text, winner_slot, left_score, right_score, left_session_id, right_session_id, started_at, ended_at
	FROM match_results
	ORDER BY ended_at DESC
	LIMIT $1;
	`
	rows, err := r.conn.Query(ctx, q, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query match results: %v", err)
	}
	defer rows.Close()

	results := make([]*models.MatchResult, 0)
	for rows.Next() {
		result, err := scanPostgresMatchResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate match results: %v", err)
	}

	return results, nil
}

func (r *PostgresRepository) GetMatchResult(ctx context.Context, id string) (*models.MatchResult, error) {
	q := `
	SELECT id::text, winner_slot, left_score, right_score, left_session_id, right_session_id, started_at, ended_at
	FROM match_results
	WHERE id::text = $1;
	`
	result, err := scanPostgresMatchResult(r.conn.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{}
		}
		return nil, err
	}

	return result, nil
}

func scanPostgresMatchResult(row pgx.Row) (*models.MatchResult, error) {
	result := &models.MatchResult{}
	var winnerSlot int16
	err := row.Scan(
		&result.ID,
		&winnerSlot,
		&result.LeftScore,
		&result.RightScore,
		&result.LeftSessionID,
		&result.RightSessionID,
		&result.StartedAt,
		&result.EndedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan match result: %v", err)
	}
	result.WinnerSlot = int(winnerSlot)

	return result, nil
}
