package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when the board, the piece set or the settings cannot run a game.
var ErrInvalidConfig = errors.New("engine: invalid configuration")

// PieceDef describes one piece of the catalogue.
type PieceDef struct {
	Name string
	// Columns lists the matrix column by column, each top to bottom.
	Columns [][]uint8
	// Weight is the relative selection weight. Zero counts as one.
	Weight int
	// Material is the piece colour index.
	Material int
}

// Config holds the static board geometry and piece catalogue.
type Config struct {
	Width     int
	Height    int
	PieceSize int
	Pieces    []PieceDef
}

// Settings supplies the user-adjustable values read at reset and on every spawn.
type Settings interface {
	// Difficulty is a percentage; 100 is the baseline and larger is easier.
	Difficulty() int
	// BrickSetSize caps how many catalogue entries take part in random selection.
	BrickSetSize() int
}

// FixedSettings is a Settings with constant values.
type FixedSettings struct {
	DifficultyPercent int
	BrickSet          int
}

func (s FixedSettings) Difficulty() int   { return s.DifficultyPercent }
func (s FixedSettings) BrickSetSize() int { return s.BrickSet }

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: board %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.PieceSize <= 0 {
		return fmt.Errorf("%w: piece size %d", ErrInvalidConfig, c.PieceSize)
	}
	if len(c.Pieces) == 0 {
		return fmt.Errorf("%w: empty piece set", ErrInvalidConfig)
	}
	for i, def := range c.Pieces {
		if err := def.validate(c); err != nil {
			return fmt.Errorf("piece %d (%s): %w", i, def.Name, err)
		}
	}
	return nil
}

func (d PieceDef) validate(c Config) error {
	if len(d.Columns) != c.PieceSize {
		return fmt.Errorf("%w: %d columns, want %d", ErrInvalidConfig, len(d.Columns), c.PieceSize)
	}
	for x, col := range d.Columns {
		if len(col) != c.PieceSize {
			return fmt.Errorf("%w: column %d has %d cells, want %d", ErrInvalidConfig, x, len(col), c.PieceSize)
		}
		for y, v := range col {
			if v > 1 {
				return fmt.Errorf("%w: cell (%d,%d) is %d", ErrInvalidConfig, x, y, v)
			}
		}
	}
	if d.Weight < 0 {
		return fmt.Errorf("%w: negative weight", ErrInvalidConfig)
	}
	if d.Material < 0 {
		return fmt.Errorf("%w: negative material", ErrInvalidConfig)
	}

	p := NewPiece(d.Columns)
	if p.Empty() {
		return fmt.Errorf("%w: no filled cells", ErrInvalidConfig)
	}
	// every orientation must fit between the walls
	for turn := range 4 {
		b := p.Rotate(turn).Bounds()
		if b.W()+1 > c.Width {
			return fmt.Errorf("%w: wider than the board", ErrInvalidConfig)
		}
	}
	return nil
}

func (d PieceDef) weight() int {
	if d.Weight == 0 {
		return 1
	}
	return d.Weight
}

func validateSettings(s Settings) error {
	if s == nil {
		return fmt.Errorf("%w: no settings", ErrInvalidConfig)
	}
	if d := s.Difficulty(); d <= 0 {
		return fmt.Errorf("%w: difficulty %d", ErrInvalidConfig, d)
	}
	if n := s.BrickSetSize(); n <= 0 {
		return fmt.Errorf("%w: brick set size %d", ErrInvalidConfig, n)
	}
	return nil
}
