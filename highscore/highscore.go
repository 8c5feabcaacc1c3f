// Package highscore persists the best score across sessions.
package highscore

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/BurntSushi/toml"
)

// Store loads and saves the best score.
type Store interface {
	Load() (int, error)
	Save(score int) error
}

// FileStore keeps the score in a small TOML file.
type FileStore struct {
	Path string
}

type record struct {
	HighScore int `toml:"high_score"`
}

// Load returns 0 when the file does not exist yet.
func (s FileStore) Load() (int, error) {
	var rec record
	_, err := toml.DecodeFile(s.Path, &rec)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("highscore: read %s: %w", s.Path, err)
	}
	return rec.HighScore, nil
}

func (s FileStore) Save(score int) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(record{HighScore: score}); err != nil {
		return fmt.Errorf("highscore: encode: %w", err)
	}
	if err := os.WriteFile(s.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("highscore: write %s: %w", s.Path, err)
	}
	return nil
}

// MemoryStore keeps the score for the lifetime of the process.
type MemoryStore struct {
	mu    sync.Mutex
	score int
}

func (m *MemoryStore) Load() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score, nil
}

func (m *MemoryStore) Save(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score = score
	return nil
}
