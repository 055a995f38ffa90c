// Package session owns the full runtime state of one visualized board: the
// layout and style documents, the press tracker, mouse dynamics, the edit
// mode editor and an optional event recorder. All input flows in through
// one consumer; all rendering flows out through Frame.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/justDeeevin/NuhxBoard/db"
	"github.com/justDeeevin/NuhxBoard/editor"
	"github.com/justDeeevin/NuhxBoard/frame"
	"github.com/justDeeevin/NuhxBoard/geometry"
	"github.com/justDeeevin/NuhxBoard/input"
	"github.com/justDeeevin/NuhxBoard/layout"
	"github.com/justDeeevin/NuhxBoard/logging"
	"github.com/justDeeevin/NuhxBoard/mouse"
	"github.com/justDeeevin/NuhxBoard/settings"
	"github.com/justDeeevin/NuhxBoard/style"
	"github.com/justDeeevin/NuhxBoard/tracker"
)

var logCtx = logging.ComponentCtx("session")

type Session struct {
	mu sync.Mutex

	layout   *layout.Layout
	style    *style.Style
	settings *settings.Settings

	tracker  *tracker.Tracker
	dynamics *mouse.Dynamics
	edit     *editor.Editor

	recorder db.Storage
	clock    func() time.Time
}

// New builds a session over the given documents. A nil style or settings
// falls back to the built-in defaults.
func New(lay *layout.Layout, sty *style.Style, cfg *settings.Settings) *Session {
	if sty == nil {
		sty = style.Default()
	}

	if cfg == nil {
		cfg = settings.Default()
	}

	s := &Session{
		layout:   lay,
		style:    sty,
		settings: cfg,
		tracker:  tracker.New(lay, cfg),
		dynamics: mouse.NewDynamics(),
		clock:    time.Now,
	}

	s.applyMouseMode()

	return s
}

// SetClock replaces the wall clock, for tests and replay.
func (s *Session) SetClock(clock func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

// SetRecorder attaches an event recorder; every handled event is persisted.
func (s *Session) SetRecorder(storage db.Storage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorder = storage
}

// applyMouseMode points the dynamics at the layout center when the settings
// ask for offset-from-center velocity. Caller holds no lock during New;
// other callers must.
func (s *Session) applyMouseMode() {
	if s.settings.MouseFromCenter {
		s.dynamics.UseCenter(geometry.Point{X: s.layout.Width / 2, Y: s.layout.Height / 2})
	} else {
		s.dynamics.UseDeltas()
	}
}

// Handle applies one event at the given time.
func (s *Session) Handle(ev *input.Event, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handleLocked(ev, now)
}

func (s *Session) handleLocked(ev *input.Event, now time.Time) {
	switch ev.Kind {
	case input.KindKey:
		s.tracker.HandleKey(ev.Code, ev.Pressed, now)
	case input.KindButton:
		s.tracker.HandleButton(ev.Code, ev.Pressed, now)
	case input.KindWheel:
		s.tracker.HandleWheel(ev.DX, ev.DY, now)
	case input.KindMove:
		s.dynamics.Sample(ev.X, ev.Y, now)
	}

	if s.recorder != nil {
		if err := s.recorder.Store(ev, now); err != nil {
			slog.WarnContext(logCtx, "could not record event", "error", err)
		}
	}
}

// Frame advances timed state to now and projects the board into draw
// instructions.
func (s *Session) Frame(now time.Time) []frame.Instruction {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tracker.Tick(now)

	return frame.Project(s.layout, s.style, s.tracker.Snapshot(), s.dynamics.Velocity(), s.settings)
}

// ClearPressed force-releases every element and held code.
func (s *Session) ClearPressed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tracker.ClearPressed()
	s.dynamics.Reset()
}

// ReplaceLayout swaps in a new layout document. Press state and mouse
// samples do not survive the swap; edit history is discarded.
func (s *Session) ReplaceLayout(lay *layout.Layout) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.layout = lay
	s.tracker = tracker.New(lay, s.settings)
	s.dynamics.Reset()
	s.edit = nil
	s.applyMouseMode()
}

// Editor returns the edit-mode editor over the live layout, creating it on
// first use. Geometry changes made through it are visible to the projector
// immediately.
func (s *Session) Editor() *editor.Editor {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.edit == nil {
		s.edit = editor.New(s.layout, s.settings.UpdateTextPosition)
	}

	return s.edit
}

// Layout returns the live layout document. The session keeps ownership;
// mutate it only through the editor.
func (s *Session) Layout() *layout.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.layout
}

// Settings returns the active settings document.
func (s *Session) Settings() *settings.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.settings
}

// Loop consumes protocol lines until the done channel fires, stamping each
// event with the session clock. Malformed lines are logged and skipped.
func (s *Session) Loop(ch <-chan string, done <-chan bool) {
out:
	for {
		select {
		case line := <-ch:
			parsed, err := input.ParseLine(line)
			if err != nil {
				slog.WarnContext(logCtx, "could not parse event line", "line", line, "error", err)
			}

			if parsed != nil {
				s.mu.Lock()
				s.handleLocked(parsed, s.clock())
				s.mu.Unlock()
			}
		case <-done:
			slog.InfoContext(logCtx, "event feed closed, stopping consumer")
			break out
		}
	}
}
