// Command play runs the Star Pusher terminal client.
//
// It drives the game service in-process: no server needed. Arrow keys or
// hjkl move the pusher, the mouse plans walking routes, and the usual
// single-key commands handle undo, redo, reset, and level switching.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/starpusher/starpusher/game/levels"
	"github.com/starpusher/starpusher/game/service"
	"github.com/starpusher/starpusher/game/session"
	"github.com/starpusher/starpusher/pkg/logger"
)

var (
	levelsDir   = flag.String("levels-dir", "levels", "Directory containing level pack files")
	sessionsDir = flag.String("sessions-dir", "sessions", "Directory for persisted sessions")
	packName    = flag.String("pack", "", "Level pack to play (defaults to the built-in pack)")
	sessionID   = flag.String("session", "", "Resume an existing session by ID")
	noSave      = flag.Bool("no-save", false, "Play without persisting progress")
)

func main() {
	flag.Parse()

	// The TUI owns the terminal, keep log noise out of it.
	logger.Log.SetOutput(os.Stderr)

	gameService, err := buildService()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}

	model, err := newModel(gameService, *sessionID, *packName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildService() (service.GameService, error) {
	packs := levels.NewManager(*levelsDir)

	if *noSave {
		return service.NewGameService(session.NewManager(packs), packs), nil
	}

	persistence, err := session.NewFilePersistence(*sessionsDir, packs)
	if err != nil {
		return nil, err
	}
	manager := session.NewManagerWithPersistence(packs, persistence)
	if err := manager.LoadPersistedSessions(); err != nil {
		logger.Log.Warnf("Failed to load persisted sessions: %v", err)
	}
	return service.NewGameService(manager, packs), nil
}
