package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/wricardo/sokoban/game/engine"
)

// extensions lists the file extensions tried, in order, when resolving a set name
var extensions = []string{".json", ".yaml", ".yml"}

// SetInfo describes a level set available in the manager's directory
type SetInfo struct {
	ID          string `json:"id"` // Name to pass to Load
	Filename    string `json:"filename"`
	Levels      int    `json:"levels"`
	MaxGridSize int    `json:"max_grid_size"`
}

// Manager handles level set loading and caching
type Manager struct {
	dir  string
	sets map[string][]engine.Level
	mu   sync.RWMutex
}

// NewManager creates a new level set manager over dir
func NewManager(dir string) (*Manager, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("level directory does not exist: %s", dir)
		}
		return nil, fmt.Errorf("failed to stat level directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("level directory is not a directory: %s", dir)
	}

	return &Manager{
		dir:  dir,
		sets: make(map[string][]engine.Level),
	}, nil
}

// Dir returns the directory the manager reads from
func (m *Manager) Dir() string {
	return m.dir
}

// Load loads a level set by name. The name may carry its extension; without
// one, .json is tried first, then .yaml and .yml.
func (m *Manager) Load(name string) ([]engine.Level, error) {
	if setID(name) == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("%w: %q", ErrLevelSetNotFound, name)
	}

	path, err := m.resolve(name)
	if err != nil {
		return nil, err
	}
	// Keyed by file name so sets sharing an ID across extensions stay apart
	key := filepath.Base(path)

	m.mu.RLock()
	// Check cache first
	if levelSet, exists := m.sets[key]; exists {
		m.mu.RUnlock()
		return cloneLevels(levelSet), nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if levelSet, exists := m.sets[key]; exists {
		return cloneLevels(levelSet), nil
	}

	levelSet, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	log.Debug("level set loaded", "file", key, "path", path, "count", len(levelSet))
	m.sets[key] = levelSet
	return cloneLevels(levelSet), nil
}

// List returns information about every valid level set in the directory,
// sorted by ID. Invalid files are skipped.
func (m *Manager) List() ([]SetInfo, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read level directory: %w", err)
	}

	seen := make(map[string]bool)
	var sets []SetInfo

	for _, entry := range entries {
		if entry.IsDir() || !hasLevelExtension(entry.Name()) {
			continue
		}

		id := setID(entry.Name())
		if seen[id] {
			continue
		}

		levelSet, err := m.Load(entry.Name())
		if err != nil {
			log.Debug("skipping level set", "file", entry.Name(), "err", err)
			continue
		}
		seen[id] = true

		info := SetInfo{ID: id, Filename: entry.Name(), Levels: len(levelSet)}
		for _, level := range levelSet {
			if level.GridSize > info.MaxGridSize {
				info.MaxGridSize = level.GridSize
			}
		}
		sets = append(sets, info)
	}

	sort.Slice(sets, func(i, j int) bool { return sets[i].ID < sets[j].ID })
	return sets, nil
}

// RefreshCache drops every cached level set so the next Load rereads disk
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sets = make(map[string][]engine.Level)
}

// resolve finds the file backing a set name
func (m *Manager) resolve(name string) (string, error) {
	if hasLevelExtension(name) {
		path := filepath.Join(m.dir, name)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", ErrLevelSetNotFound, name)
		}
		return path, nil
	}

	for _, ext := range extensions {
		path := filepath.Join(m.dir, name+ext)
		_, err := os.Stat(path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat level set: %w", err)
		}
	}
	return "", fmt.Errorf("%w: %s", ErrLevelSetNotFound, name)
}

// setID strips a known level extension from name
func setID(name string) string {
	for _, ext := range extensions {
		if strings.HasSuffix(strings.ToLower(name), ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

func hasLevelExtension(name string) bool {
	return setID(name) != name
}

// cloneLevels hands out a copy so callers can never alter the cached set
func cloneLevels(levelSet []engine.Level) []engine.Level {
	out := make([]engine.Level, len(levelSet))
	copy(out, levelSet)
	return out
}
