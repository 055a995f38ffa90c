// Package tracker maps the raw input event stream onto per-element press
// state: chord (AND) matching, debounced release timing, scroll pulses and
// caps/shift text resolution.
package tracker

import (
	"log/slog"
	"sync"
	"time"

	"github.com/justDeeevin/NuhxBoard/layout"
	"github.com/justDeeevin/NuhxBoard/settings"
)

// inputClass separates the three keycode namespaces. A keyboard key with
// code 0 must never light up the left-mouse-button element.
type inputClass int

const (
	classKeyboard inputClass = iota
	classButton
	classScroll
)

type elementState struct {
	id      uint32
	class   inputClass
	codes   []uint32
	pressed bool
	// deadline is the earliest instant the element may flip back to loose.
	// Zero while the element is loose or its chord is still satisfied.
	deadline time.Time
}

// Tracker owns the runtime press state for one loaded layout. All methods
// are safe for concurrent use; event handlers and the render-tick path may
// run on different goroutines.
type Tracker struct {
	mu       sync.Mutex
	cfg      *settings.Settings
	elements []*elementState

	heldKeys    map[uint32]time.Time
	heldButtons map[uint32]time.Time
	trueCaps    bool
}

// Snapshot is the tracker's state projected for one frame.
type Snapshot struct {
	// Pressed maps element id to its current display state.
	Pressed map[uint32]bool
	// ShiftHeld reports whether either shift keycode is down.
	ShiftHeld bool
	// LogicalCaps is the effective caps state after applying the
	// capitalization policy; it may diverge from the hardware toggle.
	LogicalCaps bool
}

// New builds press state for every element of lay. The tracker keeps only
// element ids and keycode sets; it never owns layout geometry.
func New(lay *layout.Layout, cfg *settings.Settings) *Tracker {
	t := &Tracker{
		cfg:         cfg,
		heldKeys:    make(map[uint32]time.Time),
		heldButtons: make(map[uint32]time.Time),
	}

	for _, element := range lay.Elements {
		switch el := element.(type) {
		case *layout.KeyboardKey:
			t.elements = append(t.elements, &elementState{id: el.Id, class: classKeyboard, codes: el.KeyCodes})
		case *layout.MouseKey:
			t.elements = append(t.elements, &elementState{id: el.Id, class: classButton, codes: el.KeyCodes})
		case *layout.MouseScroll:
			t.elements = append(t.elements, &elementState{id: el.Id, class: classScroll, codes: el.KeyCodes})
		}
	}

	return t
}

// HandleKey applies a keyboard press or release. Repeated presses of a held
// code are no-ops; releases of codes that were never recorded are ignored.
func (t *Tracker) HandleKey(code uint32, pressed bool, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if pressed {
		if _, held := t.heldKeys[code]; held {
			// Key repeat.
			return
		}

		if code == KeyCapsLock {
			t.trueCaps = !t.trueCaps
		}

		t.heldKeys[code] = now
		t.press(classKeyboard, code)
	} else {
		if _, held := t.heldKeys[code]; !held {
			slog.Debug("Release for key that was never pressed", "code", code)

			return
		}

		delete(t.heldKeys, code)
		t.release(classKeyboard, code, now)
	}

	t.expire(now)
}

// HandleButton applies a mouse button press or release.
func (t *Tracker) HandleButton(code uint32, pressed bool, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if pressed {
		if _, held := t.heldButtons[code]; held {
			return
		}

		t.heldButtons[code] = now
		t.press(classButton, code)
	} else {
		if _, held := t.heldButtons[code]; !held {
			slog.Debug("Release for button that was never pressed", "code", code)

			return
		}

		delete(t.heldButtons, code)
		t.release(classButton, code, now)
	}

	t.expire(now)
}

// HandleWheel applies a scroll pulse: every matching scroll element is
// asserted pressed until the scroll hold time elapses. Repeat pulses extend
// the hold.
func (t *Tracker) HandleWheel(dx, dy int, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	axis := WheelAxis(dx, dy)
	deadline := now.Add(t.cfg.ScrollHoldTime())

	for _, el := range t.elements {
		if el.class != classScroll {
			continue
		}

		// An empty keycode list reacts to every scroll direction.
		if len(el.codes) > 0 && !contains(el.codes, axis) {
			continue
		}

		el.pressed = true

		if deadline.After(el.deadline) {
			el.deadline = deadline
		}
	}

	t.expire(now)
}

// Tick flips elements whose release deadline has passed. Deadlines are
// polled; nothing in the tracker sleeps or schedules timers.
func (t *Tracker) Tick(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.expire(now)
}

// ClearPressed drops all held state, for when the host loses input focus or
// swaps layouts.
func (t *Tracker) ClearPressed() {
	t.mu.Lock()
	defer t.mu.Unlock()

	clear(t.heldKeys)
	clear(t.heldButtons)

	for _, el := range t.elements {
		el.pressed = false
		el.deadline = time.Time{}
	}
}

// Snapshot captures the current display state for one projection pass.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	pressed := make(map[uint32]bool, len(t.elements))
	for _, el := range t.elements {
		pressed[el.id] = el.pressed
	}

	return Snapshot{
		Pressed:     pressed,
		ShiftHeld:   t.shiftHeld(),
		LogicalCaps: t.logicalCaps(),
	}
}

func (t *Tracker) press(class inputClass, code uint32) {
	for _, el := range t.elements {
		if el.class != class || !contains(el.codes, code) {
			continue
		}

		if t.chordSatisfied(el) {
			el.pressed = true
			el.deadline = time.Time{}
		}
	}
}

func (t *Tracker) release(class inputClass, code uint32, now time.Time) {
	for _, el := range t.elements {
		if el.class != class || !contains(el.codes, code) {
			continue
		}

		if el.pressed && el.deadline.IsZero() && !t.chordSatisfied(el) {
			// The chord just broke; keep the element visible for the
			// minimum display time from this moment.
			el.deadline = now.Add(t.cfg.MinPressTime())
		}
	}
}

func (t *Tracker) expire(now time.Time) {
	for _, el := range t.elements {
		if !el.pressed || el.deadline.IsZero() || now.Before(el.deadline) {
			continue
		}

		el.pressed = false
		el.deadline = time.Time{}
	}
}

// chordSatisfied reports whether every keycode of el is currently down in
// its class. Scroll elements have no held state; they are only asserted by
// pulses.
func (t *Tracker) chordSatisfied(el *elementState) bool {
	var held map[uint32]time.Time

	switch el.class {
	case classKeyboard:
		held = t.heldKeys
	case classButton:
		held = t.heldButtons
	default:
		return false
	}

	for _, code := range el.codes {
		if _, ok := held[code]; !ok {
			return false
		}
	}

	return true
}

func (t *Tracker) shiftHeld() bool {
	_, left := t.heldKeys[KeyShiftLeft]
	_, right := t.heldKeys[KeyShiftRight]

	return left || right
}

func (t *Tracker) logicalCaps() bool {
	switch t.cfg.Capitalization {
	case settings.CapitalizationUpper:
		return true
	case settings.CapitalizationLower:
		return false
	default:
		return t.trueCaps
	}
}

// UseShiftText decides whether a keyboard key shows its ShiftText instead
// of Text, given the key's caps sensitivity and the capitalization policy.
func UseShiftText(changeOnCaps, logicalCaps, shiftHeld bool, cfg *settings.Settings) bool {
	followsShift := cfg.Capitalization == settings.CapitalizationFollow

	if changeOnCaps {
		return logicalCaps != (shiftHeld && (followsShift || cfg.FollowForCapsSensitive))
	}

	return shiftHeld && (followsShift || cfg.FollowForCapsInsensitive)
}

func contains(codes []uint32, code uint32) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}

	return false
}
