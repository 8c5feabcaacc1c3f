// Package settings holds the player's choices. Changes are staged first and only take effect,
// and reach the store, on Save.
package settings

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	ErrUnknownSetting = errors.New("settings: unknown setting")
	ErrUnknownItem    = errors.New("settings: unknown item")
	ErrInvalidCatalog = errors.New("settings: invalid catalog")
)

const (
	NameBrickSet   = "Brick Set"
	NameDifficulty = "Difficulty"
	NameMusic      = "Music"
	NameSound      = "Sound"
)

// Item is one selectable value of a setting.
type Item struct {
	Name  string
	Value int
}

// Setting is a named choice between items.
type Setting struct {
	Name    string
	Items   []Item
	Default string
}

func (s Setting) item(name string) (Item, bool) {
	i := slices.IndexFunc(s.Items, func(it Item) bool { return it.Name == name })
	if i < 0 {
		return Item{}, false
	}
	return s.Items[i], true
}

// DefaultCatalog returns the game's settings in display order. On/off settings use 1 and 0.
func DefaultCatalog() []Setting {
	return []Setting{
		{Name: NameBrickSet, Items: []Item{{"Standard", 7}, {"Extended", 99}}, Default: "Standard"},
		{Name: NameDifficulty, Items: []Item{{"Easy", 150}, {"Normal", 100}, {"Hard", 50}}, Default: "Normal"},
		{Name: NameMusic, Items: []Item{{"On", 1}, {"Off", 0}}, Default: "Off"},
		{Name: NameSound, Items: []Item{{"On", 1}, {"Off", 0}}, Default: "Off"},
	}
}

// Option configures a Set.
type Option func(*Set)

// WithStore loads the initial selection from store and writes saved changes back to it.
func WithStore(store Store) Option {
	return func(s *Set) {
		s.store = store
	}
}

// OnChange registers fn to be called after a Save that changed at least one selection.
func OnChange(fn func()) Option {
	return func(s *Set) {
		s.onChange = fn
	}
}

// Set is the live selection for a catalog.
type Set struct {
	mu       sync.RWMutex
	catalog  []Setting
	selected map[string]string
	staged   map[string]string
	store    Store
	onChange func()
}

// New returns the selection for catalog. Stored choices override defaults; stored names that
// are no longer valid items are ignored.
func New(catalog []Setting, opts ...Option) (*Set, error) {
	s := &Set{
		catalog:  slices.Clone(catalog),
		selected: make(map[string]string, len(catalog)),
		staged:   make(map[string]string, len(catalog)),
	}
	for _, opt := range opts {
		opt(s)
	}

	for i, setting := range s.catalog {
		if setting.Name == "" || len(setting.Items) == 0 {
			return nil, fmt.Errorf("%w: setting %d has no name or items", ErrInvalidCatalog, i)
		}
		if _, dup := s.selected[setting.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate setting %q", ErrInvalidCatalog, setting.Name)
		}
		if _, ok := setting.item(setting.Default); !ok {
			return nil, fmt.Errorf("%w: default %q of %q", ErrInvalidCatalog, setting.Default, setting.Name)
		}

		choice := setting.Default
		if s.store != nil {
			if stored, ok := s.store.Get(setting.Name); ok {
				if _, valid := setting.item(stored); valid {
					choice = stored
				}
			}
		}
		s.selected[setting.Name] = choice
		s.staged[setting.Name] = choice
	}
	return s, nil
}

func (s *Set) setting(name string) (Setting, error) {
	i := slices.IndexFunc(s.catalog, func(st Setting) bool { return st.Name == name })
	if i < 0 {
		return Setting{}, fmt.Errorf("%w: %q", ErrUnknownSetting, name)
	}
	return s.catalog[i], nil
}

// Catalog returns the settings in display order.
func (s *Set) Catalog() []Setting {
	return slices.Clone(s.catalog)
}

// Get returns the value of the saved selection.
func (s *Set) Get(name string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	setting, err := s.setting(name)
	if err != nil {
		return 0, err
	}
	item, _ := setting.item(s.selected[name])
	return item.Value, nil
}

// Selected returns the item name of the saved selection.
func (s *Set) Selected(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.setting(name); err != nil {
		return "", err
	}
	return s.selected[name], nil
}

// Staged returns the item name that Save would apply.
func (s *Set) Staged(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.setting(name); err != nil {
		return "", err
	}
	return s.staged[name], nil
}

// Stage picks item for the next Save.
func (s *Set) Stage(name, item string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	setting, err := s.setting(name)
	if err != nil {
		return err
	}
	if _, ok := setting.item(item); !ok {
		return fmt.Errorf("%w: %q for %q", ErrUnknownItem, item, name)
	}
	s.staged[name] = item
	return nil
}

// Save applies the staged choices and reports whether any selection changed. Changed choices
// are written to the store; the first store error is returned after every choice has been
// applied. The change function runs once, after the lock is released.
func (s *Set) Save() (bool, error) {
	return s.commit(true)
}

// Apply is Save without the store: the staged choices last until the process exits.
func (s *Set) Apply() bool {
	changed, _ := s.commit(false)
	return changed
}

func (s *Set) commit(persist bool) (bool, error) {
	s.mu.Lock()
	var (
		changed bool
		errs    error
	)
	for _, setting := range s.catalog {
		name := setting.Name
		if s.selected[name] == s.staged[name] {
			continue
		}
		s.selected[name] = s.staged[name]
		changed = true
		if persist && s.store != nil {
			if err := s.store.Set(name, s.selected[name]); err != nil && errs == nil {
				errs = err
			}
		}
	}
	onChange := s.onChange
	s.mu.Unlock()

	if changed && onChange != nil {
		onChange()
	}
	return changed, errs
}

// Cancel drops the staged choices.
func (s *Set) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, item := range s.selected {
		s.staged[name] = item
	}
}

// Enabled reports whether an on/off setting is on. Unknown settings are off.
func (s *Set) Enabled(name string) bool {
	v, err := s.Get(name)
	return err == nil && v != 0
}

// Difficulty returns the difficulty percentage, 100 when the catalog has none.
func (s *Set) Difficulty() int {
	if v, err := s.Get(NameDifficulty); err == nil {
		return v
	}
	return 100
}

// BrickSetSize returns how many catalog pieces may spawn, 7 when the catalog has no brick
// set.
func (s *Set) BrickSetSize() int {
	if v, err := s.Get(NameBrickSet); err == nil {
		return v
	}
	return 7
}
