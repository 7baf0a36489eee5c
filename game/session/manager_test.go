package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/starpusher/starpusher/game/engine"
	"github.com/starpusher/starpusher/game/service"
)

func TestManagerCreate(t *testing.T) {
	packs, pack := newTestPacks(t)
	m := NewManager(packs)

	sess, err := m.Create("Alpha", pack)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sess.ID != "Alpha" {
		t.Errorf("ID = %q, want the requested one", sess.ID)
	}
	if m.Count() != 1 {
		t.Errorf("Count = %d, want 1", m.Count())
	}

	// IDs are case-insensitive, so the same name can't be reused.
	if _, err := m.Create("ALPHA", pack); !errors.Is(err, ErrSessionAlreadyExists) {
		t.Errorf("duplicate Create error = %v, want ErrSessionAlreadyExists", err)
	}
}

func TestManagerCreateGeneratedID(t *testing.T) {
	packs, pack := newTestPacks(t)
	m := NewManager(packs)

	sess, err := m.Create("", pack)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(sess.ID) != 4 {
		t.Errorf("generated ID %q, want 4 hex characters", sess.ID)
	}
}

func TestManagerCreateRejectsPathCharacters(t *testing.T) {
	packs, pack := newTestPacks(t)
	m := NewManager(packs)

	for _, id := range []string{"a/b", `a\b`, "a.b"} {
		if _, err := m.Create(id, pack); !errors.Is(err, ErrInvalidSessionID) {
			t.Errorf("Create(%q) error = %v, want ErrInvalidSessionID", id, err)
		}
	}
}

func TestManagerGetCaseInsensitive(t *testing.T) {
	packs, pack := newTestPacks(t)
	m := NewManager(packs)

	created, err := m.Create("Mixed", pack)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := m.Get("mIxEd")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != created {
		t.Error("Get returned a different session")
	}

	if _, err := m.Get("absent"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get(absent) error = %v, want ErrSessionNotFound", err)
	}
}

func TestManagerGetOrCreate(t *testing.T) {
	packs, pack := newTestPacks(t)
	m := NewManager(packs)

	first, err := m.GetOrCreate("again", pack)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	second, err := m.GetOrCreate("again", pack)
	if err != nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}
	if first != second {
		t.Error("GetOrCreate created a second session for the same ID")
	}
}

func TestManagerGetLoadsPersisted(t *testing.T) {
	packs, pack := newTestPacks(t)
	fp, _ := newTestPersistence(t, packs)

	seed := NewManagerWithPersistence(packs, fp)
	created, err := seed.Create("disk", pack)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	eng, err := created.Engine()
	if err != nil {
		t.Fatalf("Engine: %v", err)
	}
	eng.Move(engine.Right)
	if err := seed.Save("disk"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A second manager over the same directory finds it on demand.
	m := NewManagerWithPersistence(packs, fp)
	loaded, err := m.Get("disk")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	le, err := loaded.Engine()
	if err != nil {
		t.Fatalf("Engine: %v", err)
	}
	if le.Steps() != 1 {
		t.Errorf("restored StepCounter = %d, want 1", le.Steps())
	}
}

func TestManagerGetRebuildsCorrupt(t *testing.T) {
	packs, _ := newTestPacks(t)
	fp, dir := newTestPersistence(t, packs)
	m := NewManagerWithPersistence(packs, fp)

	tests := []struct {
		name    string
		id      string
		content string
	}{
		{"not json", "wreck", "not json at all"},
		{"pack no longer exists", "gone", `{"id":"gone","pack_name":"vanished","level_index":0,"levels":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(filepath.Join(dir, tt.id+".json"), []byte(tt.content), 0644); err != nil {
				t.Fatalf("writing file: %v", err)
			}

			sess, err := m.Get(tt.id)
			if err != nil {
				t.Fatalf("Get on a corrupt file: %v", err)
			}
			if sess.ID != tt.id {
				t.Errorf("rebuilt session ID = %q, want %q", sess.ID, tt.id)
			}
			if sess.LevelIndex != 0 {
				t.Errorf("rebuilt session LevelIndex = %d, want 0", sess.LevelIndex)
			}
			if sess.Pack != packs.GetDefault() {
				t.Error("rebuilt session is not on the default pack")
			}

			// The rebuilt session was re-saved, so a later load is clean.
			if _, err := fp.Load(tt.id); err != nil {
				t.Errorf("reload after rebuild: %v", err)
			}
		})
	}
}

func TestManagerDelete(t *testing.T) {
	packs, pack := newTestPacks(t)
	fp, _ := newTestPersistence(t, packs)
	m := NewManagerWithPersistence(packs, fp)

	if _, err := m.Create("gone", pack); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := m.Delete("gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if m.Count() != 0 {
		t.Error("session still in memory after delete")
	}
	if fp.Exists("gone") {
		t.Error("session file still on disk after delete")
	}
	if err := m.Delete("gone"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second Delete error = %v, want ErrSessionNotFound", err)
	}
}

func TestManagerCleanupExpiredSessions(t *testing.T) {
	packs, pack := newTestPacks(t)
	fp, _ := newTestPersistence(t, packs)
	m := NewManagerWithPersistence(packs, fp)

	stale, err := m.Create("stale", pack)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := m.Create("fresh", pack); err != nil {
		t.Fatalf("Create: %v", err)
	}
	stale.LastAccessedAt = time.Now().Add(-48 * time.Hour)

	removed := m.CleanupExpiredSessions(24 * time.Hour)
	if removed != 1 {
		t.Fatalf("removed %d sessions, want 1", removed)
	}
	if m.Count() != 1 {
		t.Errorf("Count = %d, want 1", m.Count())
	}

	// Eviction only frees memory; the file stays for a returning player.
	if !fp.Exists("stale") {
		t.Error("cleanup deleted the persisted file")
	}
	if _, err := m.Get("stale"); err != nil {
		t.Errorf("evicted session not loadable from disk: %v", err)
	}
}

func TestManagerLoadPersistedSessions(t *testing.T) {
	packs, pack := newTestPacks(t)
	fp, dir := newTestPersistence(t, packs)

	for _, id := range []string{"p1", "p2"} {
		if err := fp.Save(service.NewSession(id, pack)); err != nil {
			t.Fatalf("Save(%s): %v", id, err)
		}
	}
	// A corrupt file is skipped, not fatal.
	if err := os.WriteFile(filepath.Join(dir, "junk.json"), []byte("junk"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	m := NewManagerWithPersistence(packs, fp)
	if err := m.LoadPersistedSessions(); err != nil {
		t.Fatalf("LoadPersistedSessions: %v", err)
	}
	if m.Count() != 2 {
		t.Errorf("Count = %d, want 2", m.Count())
	}
}

func TestManagerDeleteFromMemory(t *testing.T) {
	packs, pack := newTestPacks(t)
	fp, _ := newTestPersistence(t, packs)
	m := NewManagerWithPersistence(packs, fp)

	if _, err := m.Create("keep", pack); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := m.DeleteFromMemory("keep"); err != nil {
		t.Fatalf("DeleteFromMemory: %v", err)
	}
	if m.Count() != 0 {
		t.Error("session still counted after memory delete")
	}
	if !fp.Exists("keep") {
		t.Error("memory delete removed the persisted file")
	}
}
