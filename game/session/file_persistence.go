package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/starpusher/starpusher/game/engine"
	"github.com/starpusher/starpusher/game/service"
)

// FilePersistence implements GamePersistence using JSON files, one per
// session, under a sessions directory.
type FilePersistence struct {
	sessionsDir string
	packs       service.PackManager
}

// NewFilePersistence creates a file-based persistence layer, creating the
// sessions directory if needed.
func NewFilePersistence(sessionsDir string, packs service.PackManager) (*FilePersistence, error) {
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}
	return &FilePersistence{sessionsDir: sessionsDir, packs: packs}, nil
}

// Save persists a session to a JSON file. Every level the player has
// touched is written with its full state, history stacks included.
func (fp *FilePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	data := PersistedGameData{
		ID:             session.ID,
		PackName:       session.Pack.Name,
		LevelIndex:     session.LevelIndex,
		Avatar:         session.Avatar,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Levels:         make(map[int]*engine.GameState, len(session.Engines)),
	}
	for index, eng := range session.Engines {
		data.Levels[index] = eng.State()
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := os.WriteFile(fp.getFilePath(session.ID), jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load retrieves a session from a JSON file and rebuilds its engines with
// the persisted per-level states.
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	filePath := fp.getFilePath(id)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, ErrSessionNotFound
	}

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data PersistedGameData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}

	pack, err := fp.packs.LoadPack(data.PackName)
	if err != nil {
		return nil, fmt.Errorf("%w: level pack %q: %v", ErrCorruptSession, data.PackName, err)
	}

	session := service.NewSession(data.ID, pack)
	session.LevelIndex = data.LevelIndex
	session.Avatar = data.Avatar
	session.CreatedAt = data.CreatedAt
	session.LastAccessedAt = data.LastAccessedAt

	if session.LevelIndex < 0 || session.LevelIndex >= session.LevelCount() {
		return nil, fmt.Errorf("%w: level index %d out of range", ErrCorruptSession, data.LevelIndex)
	}

	for index, state := range data.Levels {
		eng, err := session.EngineFor(index)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
		}
		if err := eng.SetState(state); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
		}
	}

	return session, nil
}

// Delete removes a session file.
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrSessionNotFound
	}
	if err := os.Remove(fp.getFilePath(id)); err != nil {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// ListAll returns all persisted session IDs.
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var sessionIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name := entry.Name(); strings.HasSuffix(name, ".json") {
			sessionIDs = append(sessionIDs, strings.TrimSuffix(name, ".json"))
		}
	}
	return sessionIDs, nil
}

// Exists checks if a session file exists.
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

// getFilePath returns the full file path for a session ID.
func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.sessionsDir, fmt.Sprintf("%s.json", id))
}
