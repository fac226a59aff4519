package content

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

const seedJSON = `[
  {"gameId": 1, "level": "first", "maze": {
    "width": 3, "height": 1, "startPosition": {"row": 0, "col": 0},
    "grid": [[0, 0, 3]], "items": []}},
  {"gameId": 1, "level": "SECOND", "maze": {
    "width": 2, "height": 1, "startPosition": {"row": 0, "col": 0},
    "grid": [[0, 3]], "items": [{"row": 0, "col": 0, "type": "KEY"}]}}
]`

func TestParseSeed(t *testing.T) {
	entries, err := ParseSeed([]byte(seedJSON))
	if err != nil {
		t.Fatalf("ParseSeed: %v", err)
	}
	if len(entries) != 2 || entries[1].Maze.Items[0].Type != "KEY" {
		t.Errorf("entries = %+v", entries)
	}

	if _, err := ParseSeed([]byte(`{`)); !errors.Is(err, ErrMalformed) {
		t.Errorf("bad json: err = %v", err)
	}
	bad := `[{"gameId": 1, "level": "FIRST", "maze": {"width": 2, "height": 1, "grid": [[0]]}}]`
	if _, err := ParseSeed([]byte(bad)); !errors.Is(err, ErrMalformed) {
		t.Errorf("invalid maze: err = %v", err)
	}
}

func TestSeed_KeepsExistingUnlessOverwriting(t *testing.T) {
	ctx := context.Background()
	store, err := NewJSONStore(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatal(err)
	}
	entries, err := ParseSeed([]byte(seedJSON))
	if err != nil {
		t.Fatal(err)
	}

	custom := validMaze()
	if err := store.SaveMaze(ctx, 1, "FIRST", &custom); err != nil {
		t.Fatal(err)
	}

	n, err := Seed(ctx, store, entries, false)
	if err != nil || n != 1 {
		t.Fatalf("Seed = %d, %v; want 1 written", n, err)
	}
	got, _ := store.LoadMaze(ctx, 1, "FIRST")
	if got.Width != custom.Width {
		t.Errorf("existing maze replaced: %+v", got)
	}

	n, err = Seed(ctx, store, entries, true)
	if err != nil || n != 2 {
		t.Fatalf("overwrite Seed = %d, %v; want 2", n, err)
	}
	got, _ = store.LoadMaze(ctx, 1, "first")
	if got.Height != 1 || len(got.Grid[0]) != 3 {
		t.Errorf("maze not overwritten: %+v", got)
	}
}
