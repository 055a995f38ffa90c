// Package editor implements edit-mode geometry manipulation: hit-testing,
// drag gestures over whole elements, single vertices and edges, and a
// linear undo/redo log of committed mutations.
package editor

import (
	"github.com/justDeeevin/NuhxBoard/geometry"
	"github.com/justDeeevin/NuhxBoard/layout"
)

// grabRadius is how close, in layout pixels, the cursor must be to a vertex
// or edge to grab it instead of the whole element.
const grabRadius = 5.0

type grabMode int

const (
	grabNone grabMode = iota
	grabElement
	grabVertex
	grabEdge
)

// Editor mutates one layout document through pointer gestures. It is owned
// by a single edit session; no cross-goroutine access.
type Editor struct {
	layout *layout.Layout
	// moveText mirrors the update-text-position setting: whole-element
	// drags carry the text anchor along.
	moveText bool

	undoStack []Change
	redoStack []Change

	mode   grabMode
	target int
	vertex int
	prev   geometry.Point
	before layout.Element
	moved  bool
}

func New(l *layout.Layout, moveText bool) *Editor {
	return &Editor{layout: l, moveText: moveText, target: -1}
}

// HitTest returns the index of the topmost element under p. Later elements
// sit on top, so the scan runs back to front. Speed indicators use circular
// containment; degenerate boundaries never match.
func (e *Editor) HitTest(p geometry.Point) (int, bool) {
	for i := len(e.layout.Elements) - 1; i >= 0; i-- {
		if e.hits(p, e.layout.Elements[i]) {
			return i, true
		}
	}

	return -1, false
}

func (e *Editor) hits(p geometry.Point, element layout.Element) bool {
	if indicator, ok := element.(*layout.MouseSpeedIndicator); ok {
		return geometry.Distance(p, indicator.Location) <= indicator.Radius
	}

	return geometry.PointInPolygon(p, element.Bounds())
}

// PointerDown begins a drag gesture. Grab priority: a vertex within
// grabRadius, then an edge within grabRadius, then the element body.
// Returns false when nothing is under the cursor.
func (e *Editor) PointerDown(p geometry.Point) bool {
	index, vertex, mode := e.findTarget(p)
	if mode == grabNone {
		return false
	}

	e.mode = mode
	e.target = index
	e.vertex = vertex
	e.prev = p
	e.before = e.layout.Elements[index].Clone()
	e.moved = false

	return true
}

func (e *Editor) findTarget(p geometry.Point) (index, vertex int, mode grabMode) {
	for i := len(e.layout.Elements) - 1; i >= 0; i-- {
		element := e.layout.Elements[i]
		bounds := element.Bounds()

		for v := range bounds {
			if geometry.Distance(p, bounds[v]) <= grabRadius {
				return i, v, grabVertex
			}
		}

		for v := range bounds {
			next := (v + 1) % len(bounds)
			if geometry.DistanceToSegment(p, bounds[v], bounds[next]) <= grabRadius {
				return i, v, grabEdge
			}
		}

		if e.hits(p, element) {
			return i, -1, grabElement
		}
	}

	return -1, -1, grabNone
}

// PointerMove applies the drag delta live, giving immediate visual
// feedback. No undo entry is written until the gesture completes.
func (e *Editor) PointerMove(p geometry.Point) {
	if e.mode == grabNone {
		return
	}

	delta := p.Sub(e.prev)
	e.prev = p

	if delta == (geometry.Point{}) {
		return
	}

	element := e.layout.Elements[e.target]

	switch e.mode {
	case grabElement:
		element.Translate(delta, e.moveText)
	case grabVertex:
		bounds := element.Bounds()
		bounds[e.vertex] = bounds[e.vertex].Add(delta)
	case grabEdge:
		// Moving an edge shifts its two endpoints, resizing the polygon.
		bounds := element.Bounds()
		next := (e.vertex + 1) % len(bounds)
		bounds[e.vertex] = bounds[e.vertex].Add(delta)
		bounds[next] = bounds[next].Add(delta)
	}

	e.moved = true
}

// PointerUp completes the gesture, committing one undo entry capturing the
// pre-gesture geometry. A click without movement commits nothing.
func (e *Editor) PointerUp() {
	if e.mode != grabNone && e.moved {
		e.push(&replaceElement{
			index:  e.target,
			before: e.before,
			after:  e.layout.Elements[e.target].Clone(),
		})
	}

	e.mode = grabNone
	e.target = -1
	e.vertex = -1
	e.before = nil
	e.moved = false
}

// AddElement appends el to the layout as an undoable action.
func (e *Editor) AddElement(el layout.Element) {
	change := &insertElement{index: len(e.layout.Elements), element: el.Clone()}
	change.Redo(e.layout)
	e.push(change)
}

// RemoveElement removes the element at index as an undoable action,
// capturing the full element for restoration.
func (e *Editor) RemoveElement(index int) bool {
	if index < 0 || index >= len(e.layout.Elements) {
		return false
	}

	change := &removeElement{index: index, element: e.layout.Elements[index].Clone()}
	change.Redo(e.layout)
	e.push(change)

	return true
}

// Undo reverts the most recent committed mutation. Returns false when the
// history is empty.
func (e *Editor) Undo() bool {
	if len(e.undoStack) == 0 {
		return false
	}

	change := e.undoStack[len(e.undoStack)-1]
	e.undoStack = e.undoStack[:len(e.undoStack)-1]
	change.Undo(e.layout)
	e.redoStack = append(e.redoStack, change)

	return true
}

// Redo re-applies the most recently undone mutation.
func (e *Editor) Redo() bool {
	if len(e.redoStack) == 0 {
		return false
	}

	change := e.redoStack[len(e.redoStack)-1]
	e.redoStack = e.redoStack[:len(e.redoStack)-1]
	change.Redo(e.layout)
	e.undoStack = append(e.undoStack, change)

	return true
}

// CanUndo and CanRedo report history availability, for menu state.
func (e *Editor) CanUndo() bool { return len(e.undoStack) > 0 }
func (e *Editor) CanRedo() bool { return len(e.redoStack) > 0 }

// push records a fresh mutation. Linear history: anything undone but not
// redone is discarded.
func (e *Editor) push(change Change) {
	e.undoStack = append(e.undoStack, change)
	e.redoStack = nil
}
