package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	ErrPackNotFound = errors.New("level pack not found")
	ErrInvalidPack  = errors.New("invalid level pack")
)

// Manager loads and caches level packs from a directory of .txt files.
type Manager struct {
	levelsDir   string
	defaultPack *Pack
	packs       map[string]*Pack
	mu          sync.RWMutex
}

// NewManager creates a level pack manager over the given directory. The
// directory may be missing; the built-in pack then serves as the only one.
func NewManager(levelsDir string) *Manager {
	m := &Manager{
		levelsDir: levelsDir,
		packs:     make(map[string]*Pack),
	}
	m.defaultPack = m.loadDefaultPack()
	return m
}

// LoadPack loads a pack by name (the filename without extension).
func (m *Manager) LoadPack(name string) (*Pack, error) {
	if name == "" || name == DefaultPackName {
		return m.GetDefault(), nil
	}

	m.mu.RLock()
	if pack, ok := m.packs[name]; ok {
		m.mu.RUnlock()
		return pack, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if pack, ok := m.packs[name]; ok {
		return pack, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".txt") {
		filename += ".txt"
	}

	f, err := os.Open(filepath.Join(m.levelsDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPackNotFound
		}
		return nil, fmt.Errorf("failed to read level pack: %w", err)
	}
	defer f.Close()

	pack, err := Parse(name, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}

	m.packs[name] = pack
	return pack, nil
}

// PackInfo describes one available level pack.
type PackInfo struct {
	Filename   string `json:"filename"`
	PackID     string `json:"pack_id"`
	LevelCount int    `json:"level_count"`
}

// ListPacks returns information about all loadable packs, always
// including the built-in default.
func (m *Manager) ListPacks() ([]*PackInfo, error) {
	packs := []*PackInfo{{
		Filename:   DefaultPackName,
		PackID:     DefaultPackName,
		LevelCount: len(m.GetDefault().Levels),
	}}

	entries, err := os.ReadDir(m.levelsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return packs, nil
		}
		return nil, fmt.Errorf("failed to read levels directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".txt")
		pack, err := m.LoadPack(name)
		if err != nil {
			// Skip unparseable packs rather than failing the listing.
			continue
		}
		packs = append(packs, &PackInfo{
			Filename:   entry.Name(),
			PackID:     name,
			LevelCount: len(pack.Levels),
		})
	}
	return packs, nil
}

// GetDefault returns the built-in level pack.
func (m *Manager) GetDefault() *Pack {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultPack
}

// loadDefaultPack parses the embedded default levels. The source is a
// compile-time constant, so a parse failure is a programming error.
func (m *Manager) loadDefaultPack() *Pack {
	pack, err := Parse(DefaultPackName, strings.NewReader(defaultLevels))
	if err != nil {
		panic(fmt.Sprintf("levels: built-in pack is invalid: %v", err))
	}
	return pack
}
