package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileProvider loads the dataset from a JSON file on disk. Used by the
// binaries so the engine can run against an exported dataset without the
// upstream feed.
type FileProvider struct {
	Path string
}

type fileDataset struct {
	Players  []Player  `json:"players"`
	Teams    []Team    `json:"teams"`
	Fixtures []Fixture `json:"fixtures"`
}

// Fetch reads and decodes the dataset file.
func (p *FileProvider) Fetch(ctx context.Context) ([]Player, []Team, []Fixture, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, nil, err
	}

	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("read dataset file: %w", err)
	}

	var ds fileDataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, nil, nil, fmt.Errorf("parse dataset file: %w", err)
	}

	if len(ds.Players) == 0 {
		return nil, nil, nil, fmt.Errorf("dataset file %s contains no players", p.Path)
	}

	return ds.Players, ds.Teams, ds.Fixtures, nil
}

// StaticProvider serves fixed slices. Test helper and fallback.
type StaticProvider struct {
	Players  []Player
	Teams    []Team
	Fixtures []Fixture
	Err      error
}

// Fetch returns the configured slices or error.
func (p *StaticProvider) Fetch(ctx context.Context) ([]Player, []Team, []Fixture, error) {
	if p.Err != nil {
		return nil, nil, nil, p.Err
	}
	return p.Players, p.Teams, p.Fixtures, nil
}
