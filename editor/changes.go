package editor

import "github.com/justDeeevin/NuhxBoard/layout"

// Change is one committed, invertible mutation of the layout. Geometry
// changes are snapshot pairs rather than deltas so that undo followed by
// redo restores state exactly.
type Change interface {
	Undo(l *layout.Layout)
	Redo(l *layout.Layout)
}

// replaceElement swaps an element's full definition, used for every drag
// gesture (move, vertex, edge).
type replaceElement struct {
	index  int
	before layout.Element
	after  layout.Element
}

func (c *replaceElement) Undo(l *layout.Layout) {
	l.Elements[c.index] = c.before.Clone()
}

func (c *replaceElement) Redo(l *layout.Layout) {
	l.Elements[c.index] = c.after.Clone()
}

type insertElement struct {
	index   int
	element layout.Element
}

func (c *insertElement) Undo(l *layout.Layout) {
	l.Elements = append(l.Elements[:c.index], l.Elements[c.index+1:]...)
}

func (c *insertElement) Redo(l *layout.Layout) {
	elements := append(l.Elements[:c.index:c.index], c.element.Clone())
	l.Elements = append(elements, l.Elements[c.index:]...)
}

type removeElement struct {
	index   int
	element layout.Element
}

func (c *removeElement) Undo(l *layout.Layout) {
	elements := append(l.Elements[:c.index:c.index], c.element.Clone())
	l.Elements = append(elements, l.Elements[c.index:]...)
}

func (c *removeElement) Redo(l *layout.Layout) {
	l.Elements = append(l.Elements[:c.index], l.Elements[c.index+1:]...)
}
