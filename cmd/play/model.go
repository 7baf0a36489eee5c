package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/starpusher/starpusher/game/engine"
	"github.com/starpusher/starpusher/game/service"
)

// tickMsg drives path following while the model walks a planned route.
type tickMsg struct{}

const tickInterval = 120 * time.Millisecond

// boardTop is the screen row where the board starts; cells render two
// characters wide. Mouse coordinates map through both.
const boardTop = 3

// model is the Bubbletea model for the terminal client.
type model struct {
	svc       service.GameService
	sessionID string
	snap      *service.Snapshot
	status    string
	err       error
	quitting  bool
}

func newModel(svc service.GameService, sessionID, packName string) (model, error) {
	ctx := context.Background()

	var info *service.SessionInfo
	var err error
	if sessionID != "" {
		info, err = svc.GetSession(ctx, sessionID)
	} else {
		info, err = svc.CreateSession(ctx, packName)
	}
	if err != nil {
		return model{}, err
	}

	return model{
		svc:       svc,
		sessionID: info.ID,
		snap:      info.Snapshot,
	}, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		return m.move(ctx, "up"), nil
	case "down", "j":
		return m.move(ctx, "down"), nil
	case "left", "h":
		return m.move(ctx, "left"), nil
	case "right", "l":
		return m.move(ctx, "right"), nil

	case "u":
		result, err := m.svc.Undo(ctx, m.sessionID)
		return m.applyMoveResult(result, err, "Nothing to undo"), nil
	case "r":
		result, err := m.svc.Redo(ctx, m.sessionID)
		return m.applyMoveResult(result, err, "Nothing to redo"), nil

	case "backspace":
		snap, err := m.svc.Reset(ctx, m.sessionID)
		return m.applySnapshot(snap, err, "Level reset"), nil
	case "n":
		snap, err := m.svc.NextLevel(ctx, m.sessionID)
		return m.applySnapshot(snap, err, ""), nil
	case "b":
		snap, err := m.svc.PreviousLevel(ctx, m.sessionID)
		return m.applySnapshot(snap, err, ""), nil
	case "p":
		snap, err := m.svc.CycleAvatar(ctx, m.sessionID)
		return m.applySnapshot(snap, err, ""), nil
	}

	return m, nil
}

// handleMouse plans routes: click to walk somewhere, motion to preview.
func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	dest, onBoard := m.boardPosition(msg.X, msg.Y)
	if !onBoard {
		return m, nil
	}
	ctx := context.Background()

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		result, err := m.svc.ClickAt(ctx, m.sessionID, dest)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.snap = result.Snapshot
		if !result.Found {
			m.status = "No route to that tile"
			return m, nil
		}
		m.status = ""
		return m, tick()

	case msg.Action == tea.MouseActionMotion:
		result, err := m.svc.HoverAt(ctx, m.sessionID, dest)
		if err == nil {
			m.snap = result.Snapshot
		}
	}

	return m, nil
}

// handleTick advances route following by one step.
func (m model) handleTick() (tea.Model, tea.Cmd) {
	result, err := m.svc.TickPath(context.Background(), m.sessionID)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.snap = result.Snapshot
	if result.Active {
		return m, tick()
	}
	return m, nil
}

func (m model) move(ctx context.Context, direction string) model {
	result, err := m.svc.Move(ctx, m.sessionID, direction)
	return m.applyMoveResult(result, err, "")
}

func (m model) applyMoveResult(result *service.MoveResult, err error, failNote string) model {
	if err != nil {
		m.err = err
		return m
	}
	m.snap = result.Snapshot
	m.status = ""
	if !result.Success && failNote != "" {
		m.status = failNote
	}
	return m
}

func (m model) applySnapshot(snap *service.Snapshot, err error, note string) model {
	if err != nil {
		m.err = err
		return m
	}
	m.snap = snap
	m.status = note
	return m
}

// boardPosition maps terminal coordinates to a board tile.
func (m model) boardPosition(screenX, screenY int) (engine.Position, bool) {
	if m.snap == nil || m.snap.Grid == nil {
		return engine.Position{}, false
	}
	x := screenX / 2
	y := screenY - boardTop
	if x < 0 || x >= m.snap.Grid.Width || y < 0 || y >= m.snap.Grid.Height {
		return engine.Position{}, false
	}
	return engine.Position{X: x, Y: y}, true
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// View renders the board, HUD, and help line.
func (m model) View() string {
	if m.quitting {
		return "Thanks for playing!\n"
	}
	return renderView(m)
}
