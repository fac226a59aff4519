package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	json "github.com/goccy/go-json"
)

// JSONStore handles maze and score persistence using a local JSON file
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *JSONData
}

// JSONData represents the structure of the JSON database
type JSONData struct {
	Mazes  map[string]*Maze `json:"mazes"`
	Scores []ScoreRecord    `json:"scores"`
}

// NewJSONStore opens the store at filePath, creating the file if needed
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data: &JSONData{
			Mazes:  make(map[string]*Maze),
			Scores: make([]ScoreRecord, 0),
		},
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %w", err)
		}
	} else {
		if err := store.saveToFile(); err != nil {
			return nil, fmt.Errorf("failed to create JSON store file: %w", err)
		}
	}

	return store, nil
}

func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(file, js.data); err != nil {
		return err
	}
	if js.data.Mazes == nil {
		js.data.Mazes = make(map[string]*Maze)
	}
	return nil
}

func (js *JSONStore) saveToFile() error {
	js.mutex.RLock()
	data, err := json.MarshalIndent(js.data, "", "  ")
	js.mutex.RUnlock()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(js.filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(js.filePath, data, 0644)
}

// SaveMaze stores a maze for a game level, replacing any previous one
func (js *JSONStore) SaveMaze(_ context.Context, gameID int, level string, maze *Maze) error {
	if err := maze.Validate(); err != nil {
		return err
	}
	js.mutex.Lock()
	js.data.Mazes[mazeKey(gameID, level)] = maze
	js.mutex.Unlock()

	return js.saveToFile()
}

// LoadMaze loads the maze for a game level
func (js *JSONStore) LoadMaze(_ context.Context, gameID int, level string) (*Maze, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	maze, exists := js.data.Mazes[mazeKey(gameID, level)]
	if !exists {
		return nil, fmt.Errorf("game %d level %s: %w", gameID, level, ErrNotFound)
	}
	clone := *maze
	return &clone, nil
}

// SaveScore appends a score record
func (js *JSONStore) SaveScore(_ context.Context, record ScoreRecord) error {
	js.mutex.Lock()
	js.data.Scores = append(js.data.Scores, record)
	js.mutex.Unlock()

	return js.saveToFile()
}

// Scores lists a game's scores, best first
func (js *JSONStore) Scores(_ context.Context, gameID int) ([]ScoreRecord, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	out := make([]ScoreRecord, 0)
	for _, rec := range js.data.Scores {
		if rec.GameID == gameID {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].SubmittedAt.Before(out[j].SubmittedAt)
	})
	return out, nil
}

// Close closes the store (no-op for JSON store)
func (js *JSONStore) Close() error {
	return nil
}
