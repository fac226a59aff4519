package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/sung0916/my-english-edu-sub001/pkg/engine/logging"
)

// PostgresStore handles maze and score persistence using PostgreSQL
type PostgresStore struct {
	db     *sql.DB
	logger logging.Logger
}

// NewPostgresStore connects to the database and makes sure the schema exists
func NewPostgresStore(ctx context.Context, connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db, logger: logging.NewLogger("content-postgres")}

	if err := store.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS maze_levels (
		game_id INTEGER NOT NULL,
		level TEXT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		start_row INTEGER NOT NULL,
		start_col INTEGER NOT NULL,
		grid JSONB NOT NULL,
		items JSONB NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		PRIMARY KEY (game_id, level)
	);

	CREATE TABLE IF NOT EXISTS maze_scores (
		id SERIAL PRIMARY KEY,
		game_id INTEGER NOT NULL,
		player_id INTEGER NOT NULL,
		score INTEGER NOT NULL,
		submitted_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS maze_scores_game_idx ON maze_scores (game_id);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// SaveMaze upserts a maze for a game level
func (s *PostgresStore) SaveMaze(ctx context.Context, gameID int, level string, maze *Maze) error {
	if err := maze.Validate(); err != nil {
		return err
	}
	gridJSON, err := json.Marshal(maze.Grid)
	if err != nil {
		return fmt.Errorf("failed to marshal grid: %w", err)
	}
	itemsJSON, err := json.Marshal(maze.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}

	query := `
	INSERT INTO maze_levels (game_id, level, width, height, start_row, start_col, grid, items)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (game_id, level)
	DO UPDATE SET
		width = $3, height = $4, start_row = $5, start_col = $6,
		grid = $7, items = $8, updated_at = NOW()
	`

	_, err = s.db.ExecContext(ctx, query,
		gameID, NormalizeLevel(level), maze.Width, maze.Height,
		maze.StartPosition.Row, maze.StartPosition.Col,
		string(gridJSON), string(itemsJSON))
	if err != nil {
		return fmt.Errorf("failed to save maze: %w", err)
	}
	return nil
}

// LoadMaze loads the maze for a game level
func (s *PostgresStore) LoadMaze(ctx context.Context, gameID int, level string) (*Maze, error) {
	query := `SELECT width, height, start_row, start_col, grid, items FROM maze_levels WHERE game_id = $1 AND level = $2`

	var maze Maze
	var gridJSON, itemsJSON string

	err := s.db.QueryRowContext(ctx, query, gameID, NormalizeLevel(level)).Scan(
		&maze.Width, &maze.Height,
		&maze.StartPosition.Row, &maze.StartPosition.Col,
		&gridJSON, &itemsJSON,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("game %d level %s: %w", gameID, level, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load maze: %w", err)
	}

	if err := json.Unmarshal([]byte(gridJSON), &maze.Grid); err != nil {
		return nil, fmt.Errorf("%w: grid: %v", ErrMalformed, err)
	}
	if err := json.Unmarshal([]byte(itemsJSON), &maze.Items); err != nil {
		return nil, fmt.Errorf("%w: items: %v", ErrMalformed, err)
	}
	return &maze, nil
}

// SaveScore appends a score record
func (s *PostgresStore) SaveScore(ctx context.Context, record ScoreRecord) error {
	query := `INSERT INTO maze_scores (game_id, player_id, score, submitted_at) VALUES ($1, $2, $3, $4)`
	_, err := s.db.ExecContext(ctx, query, record.GameID, record.PlayerID, record.Score, record.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to save score: %w", err)
	}
	return nil
}

// Scores lists a game's scores, best first
func (s *PostgresStore) Scores(ctx context.Context, gameID int) ([]ScoreRecord, error) {
	query := `SELECT game_id, player_id, score, submitted_at FROM maze_scores WHERE game_id = $1 ORDER BY score DESC, submitted_at ASC`
	rows, err := s.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	out := make([]ScoreRecord, 0)
	for rows.Next() {
		var rec ScoreRecord
		if err := rows.Scan(&rec.GameID, &rec.PlayerID, &rec.Score, &rec.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	s.logger.Infof("closing database connection")
	return s.db.Close()
}
