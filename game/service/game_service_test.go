package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/starpusher/starpusher/game/engine"
	"github.com/starpusher/starpusher/game/levels"
	"github.com/starpusher/starpusher/game/service"
)

const testPackText = `
#######
#@$  .#
#######

########
#@$  . #
#  $ . #
#   $  #
########
`

func testPack(t *testing.T) *levels.Pack {
	t.Helper()
	pack, err := levels.Parse("trial", strings.NewReader(testPackText))
	if err != nil {
		t.Fatalf("parsing test pack: %v", err)
	}
	return pack
}

// MockSessionManager implements service.SessionManager in memory.
type MockSessionManager struct {
	sessions map[string]*service.Session
	saves    int
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{sessions: make(map[string]*service.Session)}
}

func (m *MockSessionManager) Create(id string, pack *levels.Pack) (*service.Session, error) {
	if id == "" {
		id = fmt.Sprintf("s%03d", len(m.sessions)+1)
	}
	if _, exists := m.sessions[id]; exists {
		return nil, fmt.Errorf("session already exists")
	}
	sess := service.NewSession(id, pack)
	m.sessions[id] = sess
	return sess, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	sess, exists := m.sessions[id]
	if !exists {
		return nil, fmt.Errorf("session not found")
	}
	return sess, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, sess)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return fmt.Errorf("session not found")
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error { return nil }

func (m *MockSessionManager) Save(id string) error {
	m.saves++
	return nil
}

// MockPackManager implements service.PackManager over a fixed pack set.
type MockPackManager struct {
	packs       map[string]*levels.Pack
	defaultPack *levels.Pack
}

func NewMockPackManager(defaultPack *levels.Pack) *MockPackManager {
	return &MockPackManager{
		packs:       map[string]*levels.Pack{defaultPack.Name: defaultPack},
		defaultPack: defaultPack,
	}
}

func (m *MockPackManager) LoadPack(name string) (*levels.Pack, error) {
	if name == "" {
		return m.defaultPack, nil
	}
	pack, exists := m.packs[name]
	if !exists {
		return nil, fmt.Errorf("level pack not found")
	}
	return pack, nil
}

func (m *MockPackManager) ListPacks() ([]*levels.PackInfo, error) {
	var infos []*levels.PackInfo
	for name, pack := range m.packs {
		infos = append(infos, &levels.PackInfo{
			Filename:   name + ".txt",
			PackID:     name,
			LevelCount: len(pack.Levels),
		})
	}
	return infos, nil
}

func (m *MockPackManager) GetDefault() *levels.Pack { return m.defaultPack }

func newTestService(t *testing.T) (service.GameService, *MockSessionManager) {
	t.Helper()
	sessions := NewMockSessionManager()
	packs := NewMockPackManager(testPack(t))
	return service.NewGameService(sessions, packs), sessions
}

func createTestSession(t *testing.T, svc service.GameService) string {
	t.Helper()
	info, err := svc.CreateSession(context.Background(), "")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	return info.ID
}

func TestCreateSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if info.PackName != "trial" {
		t.Errorf("PackName = %q, want trial", info.PackName)
	}
	if info.LevelIndex != 0 || info.LevelCount != 2 {
		t.Errorf("level = %d/%d, want 0/2", info.LevelIndex, info.LevelCount)
	}
	if info.Snapshot == nil || info.Snapshot.Grid == nil {
		t.Fatal("session info has no snapshot")
	}
	if info.Snapshot.Solved {
		t.Error("fresh session reports solved")
	}
}

func TestCreateSessionUnknownPack(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateSession(context.Background(), "mystery")
	if err == nil {
		t.Fatal("expected an error for an unknown pack")
	}
	if !strings.Contains(err.Error(), "Available packs") {
		t.Errorf("error %q does not list the available packs", err)
	}
	if !strings.Contains(err.Error(), "trial") {
		t.Errorf("error %q does not name the known pack", err)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.GetSession(context.Background(), "nope"); err == nil {
		t.Error("expected an error for a missing session")
	}
	if _, err := svc.Move(context.Background(), "nope", "up"); err == nil {
		t.Error("expected a move on a missing session to fail")
	}
}

func TestMove(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := createTestSession(t, svc)

	res, err := svc.Move(ctx, id, "right")
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if !res.Success {
		t.Fatal("push right failed")
	}
	if res.Snapshot.Steps != 1 || res.Snapshot.Pushes != 1 {
		t.Errorf("counters = (%d,%d), want (1,1)", res.Snapshot.Steps, res.Snapshot.Pushes)
	}

	types := eventTypes(res.Events)
	if !types["move"] || !types["push"] {
		t.Errorf("events = %v, want move and push", types)
	}
	for _, ev := range res.Events {
		if ev.ID == "" {
			t.Error("event without an ID")
		}
	}
}

func TestMoveBlocked(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := createTestSession(t, svc)

	res, err := svc.Move(ctx, id, "up")
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if res.Success {
		t.Error("moved into a wall")
	}
	if len(res.Events) != 0 {
		t.Errorf("blocked move emitted events: %v", res.Events)
	}
	if res.Snapshot.Steps != 0 {
		t.Error("blocked move advanced the step counter")
	}
}

func TestMoveBadDirection(t *testing.T) {
	svc, _ := newTestService(t)
	id := createTestSession(t, svc)

	_, err := svc.Move(context.Background(), id, "sideways")
	if err == nil {
		t.Fatal("expected an error for a bad direction")
	}
	if !strings.Contains(err.Error(), "sideways") {
		t.Errorf("error %q does not echo the input", err)
	}
}

func TestMoveSolvesLevel(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := createTestSession(t, svc)

	// Level 1 is a corridor: three pushes land the star on the goal.
	var res *service.MoveResult
	var err error
	for i := 0; i < 3; i++ {
		res, err = svc.Move(ctx, id, "right")
		if err != nil || !res.Success {
			t.Fatalf("push %d failed: %v", i+1, err)
		}
	}
	if !res.Solved {
		t.Fatal("level not solved after the final push")
	}
	if !eventTypes(res.Events)["solved"] {
		t.Errorf("events = %v, want a solved event", res.Events)
	}

	// Further movement is refused until the player undoes.
	res, err = svc.Move(ctx, id, "left")
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if res.Success {
		t.Error("moved on a solved level")
	}
}

func TestUndoRedo(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := createTestSession(t, svc)

	if _, err := svc.Move(ctx, id, "right"); err != nil {
		t.Fatalf("Move: %v", err)
	}

	undo, err := svc.Undo(ctx, id)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if !undo.Success || undo.Snapshot.Steps != 0 || undo.Snapshot.Pushes != 0 {
		t.Errorf("undo result = %v", undo.Snapshot)
	}
	if !eventTypes(undo.Events)["undo"] {
		t.Errorf("events = %v, want an undo event", undo.Events)
	}

	redo, err := svc.Redo(ctx, id)
	if err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if !redo.Success || redo.Snapshot.Steps != 1 {
		t.Errorf("redo result = %v", redo.Snapshot)
	}

	// Nothing left to redo.
	again, err := svc.Redo(ctx, id)
	if err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if again.Success {
		t.Error("redo succeeded with nothing queued")
	}
	if len(again.Events) != 0 {
		t.Error("empty redo emitted events")
	}
}

func TestReset(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := createTestSession(t, svc)

	svc.Move(ctx, id, "right")
	svc.Move(ctx, id, "right")

	snap, err := svc.Reset(ctx, id)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if snap.Steps != 0 || snap.Pushes != 0 {
		t.Error("reset kept the counters")
	}
	if len(snap.State.UndoStack) != 0 {
		t.Error("reset kept the move history")
	}
	if snap.State.Player != (engine.Position{X: 1, Y: 1}) {
		t.Errorf("player at %+v after reset, want the start tile", snap.State.Player)
	}
}

func TestLevelSwitchingWrapsAndKeepsState(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := createTestSession(t, svc)

	// Make progress on level 1, then leave and come back.
	if _, err := svc.Move(ctx, id, "right"); err != nil {
		t.Fatalf("Move: %v", err)
	}

	snap, err := svc.NextLevel(ctx, id)
	if err != nil {
		t.Fatalf("NextLevel: %v", err)
	}
	if snap.LevelIndex != 1 {
		t.Fatalf("LevelIndex = %d, want 1", snap.LevelIndex)
	}
	if snap.Steps != 0 {
		t.Error("fresh level inherited the previous level's counters")
	}

	// Advancing past the last level wraps to the first, which still has
	// its in-progress state.
	snap, err = svc.NextLevel(ctx, id)
	if err != nil {
		t.Fatalf("NextLevel: %v", err)
	}
	if snap.LevelIndex != 0 {
		t.Fatalf("LevelIndex = %d, want wraparound to 0", snap.LevelIndex)
	}
	if snap.Steps != 1 {
		t.Errorf("Steps = %d after returning, want the retained 1", snap.Steps)
	}

	// Going back from the first level wraps to the last.
	snap, err = svc.PreviousLevel(ctx, id)
	if err != nil {
		t.Fatalf("PreviousLevel: %v", err)
	}
	if snap.LevelIndex != 1 {
		t.Errorf("LevelIndex = %d, want wraparound to 1", snap.LevelIndex)
	}
}

func TestCycleAvatar(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := createTestSession(t, svc)

	for i := 1; i <= engine.AvatarCount; i++ {
		snap, err := svc.CycleAvatar(ctx, id)
		if err != nil {
			t.Fatalf("CycleAvatar: %v", err)
		}
		want := i % engine.AvatarCount
		if snap.Avatar != want {
			t.Errorf("after %d cycles Avatar = %d, want %d", i, snap.Avatar, want)
		}
	}
}

func TestClickAtAndTickPath(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := createTestSession(t, svc)

	// Clicking the star tile finds no route.
	res, err := svc.ClickAt(ctx, id, engine.Position{X: 2, Y: 1})
	if err != nil {
		t.Fatalf("ClickAt: %v", err)
	}
	if res.Found {
		t.Error("found a route onto a star")
	}
	if res.Snapshot.Following {
		t.Error("path following started without a route")
	}

	// The goal tile two steps past the star cannot be walked to either;
	// the star plugs the corridor.
	res, err = svc.ClickAt(ctx, id, engine.Position{X: 5, Y: 1})
	if err != nil {
		t.Fatalf("ClickAt: %v", err)
	}
	if res.Found {
		t.Error("found a route through a star")
	}

	// Switch to the roomier level 2 and walk a real route.
	if _, err := svc.NextLevel(ctx, id); err != nil {
		t.Fatalf("NextLevel: %v", err)
	}
	res, err = svc.ClickAt(ctx, id, engine.Position{X: 1, Y: 3})
	if err != nil {
		t.Fatalf("ClickAt: %v", err)
	}
	if !res.Found {
		t.Fatal("no route to an open tile")
	}
	if !res.Snapshot.Following {
		t.Fatal("click did not start path following")
	}

	steps := 0
	for {
		tick, err := svc.TickPath(ctx, id)
		if err != nil {
			t.Fatalf("TickPath: %v", err)
		}
		if !tick.Moved {
			break
		}
		steps++
		if !tick.Active {
			break
		}
	}
	if steps != 2 {
		t.Errorf("path took %d steps, want 2", steps)
	}

	snap, err := svc.Snapshot(ctx, id)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.State.Player != (engine.Position{X: 1, Y: 3}) {
		t.Errorf("player at %+v, want the clicked tile (1,3)", snap.State.Player)
	}
}

func TestClickAtSolvedLevel(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := createTestSession(t, svc)

	// Push the star onto the goal; three pushes solve the corridor.
	for i := 0; i < 3; i++ {
		if _, err := svc.Move(ctx, id, "right"); err != nil {
			t.Fatalf("Move %d: %v", i+1, err)
		}
	}

	// A click on a solved level plans nothing, even to an open tile.
	res, err := svc.ClickAt(ctx, id, engine.Position{X: 1, Y: 1})
	if err != nil {
		t.Fatalf("ClickAt: %v", err)
	}
	if res.Found || res.Path != nil {
		t.Errorf("click on a solved level = (%v, %v), want no route", res.Found, res.Path)
	}
	if res.Snapshot.Following {
		t.Error("click on a solved level started path following")
	}
}

func TestHoverAt(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := createTestSession(t, svc)

	res, err := svc.HoverAt(ctx, id, engine.Position{X: 1, Y: 1})
	if err != nil {
		t.Fatalf("HoverAt: %v", err)
	}
	if res.Found {
		t.Error("hover found a route to the player's own tile")
	}

	if _, err := svc.NextLevel(ctx, id); err != nil {
		t.Fatalf("NextLevel: %v", err)
	}
	res, err = svc.HoverAt(ctx, id, engine.Position{X: 1, Y: 3})
	if err != nil {
		t.Fatalf("HoverAt: %v", err)
	}
	if !res.Found {
		t.Fatal("hover found no route to an open tile")
	}
	if res.Snapshot.Following {
		t.Error("hover started path movement")
	}
	if len(res.Snapshot.PreviewPath) != len(res.Path) {
		t.Error("snapshot preview does not match the hover result")
	}

	// Hovering never moves the player.
	snap, err := svc.Snapshot(ctx, id)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Steps != 0 {
		t.Error("hover advanced the step counter")
	}
}

func TestDeleteSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := createTestSession(t, svc)

	if err := svc.DeleteSession(ctx, id); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := svc.GetSession(ctx, id); err == nil {
		t.Error("session still retrievable after delete")
	}
	if err := svc.DeleteSession(ctx, id); err == nil {
		t.Error("second delete did not fail")
	}
}

func TestListSessions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	infos, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(infos) != 0 {
		t.Fatalf("fresh service lists %d sessions", len(infos))
	}

	createTestSession(t, svc)
	createTestSession(t, svc)

	infos, err = svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(infos) != 2 {
		t.Errorf("listed %d sessions, want 2", len(infos))
	}
}

func TestListPacks(t *testing.T) {
	svc, _ := newTestService(t)

	infos, err := svc.ListPacks(context.Background())
	if err != nil {
		t.Fatalf("ListPacks: %v", err)
	}
	if len(infos) != 1 || infos[0].PackID != "trial" {
		t.Errorf("ListPacks = %v, want just the trial pack", infos)
	}
}

func TestAutoSaveAfterMutations(t *testing.T) {
	svc, sessions := newTestService(t)
	ctx := context.Background()
	id := createTestSession(t, svc)

	before := sessions.saves
	svc.Move(ctx, id, "right")
	svc.Undo(ctx, id)
	svc.Reset(ctx, id)
	if sessions.saves-before != 3 {
		t.Errorf("mutations triggered %d saves, want 3", sessions.saves-before)
	}
}

func eventTypes(events []service.GameEvent) map[string]bool {
	types := make(map[string]bool)
	for _, ev := range events {
		types[ev.Type] = true
	}
	return types
}
