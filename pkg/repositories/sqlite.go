package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cbodonnell/pong/pkg/repositories/migrations"
	"github.com/cbodonnell/pong/pkg/repositories/models"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(ctx context.Context, path string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	exec := func(ctx context.Context, q string) error {
		_, err := db.ExecContext(ctx, q)
		return err
	}
	if err := applyMigrations(ctx, migrations.SQLite, "sqlite", exec); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveMatchResult(ctx context.Context, result *models.MatchResult) error {
	q := `
	INSERT OR REPLACE INTO match_results (id, winner_slot, left_score, right_score, left_session_id, right_session_id, started_at, ended_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, q,
		result.ID,
		result.WinnerSlot,
		result.LeftScore,
		result.RightScore,
		result.LeftSessionID,
		result.RightSessionID,
		result.StartedAt.UnixMilli(),
		result.EndedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert match result: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) ListMatchResults(ctx context.Context, limit int) ([]*models.MatchResult, error) {
	q := `
	SELECT id, winner_slot, left_score, right_score, left_session_id, right_session_id, started_at, ended_at
	FROM match_results
	ORDER BY ended_at DESC
	LIMIT ?;
	`
	rows, err := r.db.QueryContext(ctx, q, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query match results: %v", err)
	}
	defer rows.Close()

	results := make([]*models.MatchResult, 0)
	for rows.Next() {
		result, err := scanSQLiteMatchResult(rows)
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

func (r *SQLiteRepository) GetMatchResult(ctx context.Context, id string) (*models.MatchResult, error) {
	q := `
	SELECT id, winner_slot, left_score, right_score, left_session_id, right_session_id, started_at, ended_at
	FROM match_results
	WHERE id = ?;
	`
	result, err := scanSQLiteMatchResult(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, err
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteMatchResult(row rowScanner) (*models.MatchResult, error) {
	result := &models.MatchResult{}
	var startedAt, endedAt int64
	err := row.Scan(
		&result.ID,
		&result.WinnerSlot,
		&result.LeftScore,
		&result.RightScore,
		&result.LeftSessionID,
		&result.RightSessionID,
		&startedAt,
		&endedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan match result: %v", err)
	}
	result.StartedAt = time.UnixMilli(startedAt).UTC()
	result.EndedAt = time.UnixMilli(endedAt).UTC()

	return result, nil
}
