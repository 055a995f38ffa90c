package layout

import "github.com/justDeeevin/NuhxBoard/geometry"

// Element is one visual unit of a layout: a keyboard key, a mouse button,
// a scroll zone or a mouse-speed indicator.
//
// Elements are stored behind pointers so that the editor can mutate their
// geometry in place.
type Element interface {
	// ID is the element's unique identifier within a layout. Style files
	// reference elements by this id.
	ID() uint32
	// Bounds returns the element's boundary vertices, or nil for elements
	// without a polygon (mouse-speed indicators). The returned slice is the
	// element's own backing array; mutating it mutates the element.
	Bounds() []geometry.Point
	// Translate moves the whole element. When moveText is set the text
	// anchor moves along with the boundary.
	Translate(delta geometry.Point, moveText bool)
	// Clone returns a deep copy, used for undo snapshots.
	Clone() Element

	typeTag() string
}

// Union tags as they appear in the `__type` field of layout files. The tag
// is load-bearing for downstream consumers, so MouseKey and MouseScroll stay
// distinct types even though their field shape is identical.
const (
	TagKeyboardKey         = "KeyboardKey"
	TagMouseKey            = "MouseKey"
	TagMouseScroll         = "MouseScroll"
	TagMouseSpeedIndicator = "MouseSpeedIndicator"
)

// KeyboardKey is a key highlighted while all of its keycodes are held, with
// shift- and caps-dependent label text.
type KeyboardKey struct {
	Id           uint32           `json:"Id"`
	Boundaries   []geometry.Point `json:"Boundaries"`
	TextPosition geometry.Point   `json:"TextPosition"`
	KeyCodes     []uint32         `json:"KeyCodes"`
	Text         string           `json:"Text"`
	ShiftText    string           `json:"ShiftText"`
	ChangeOnCaps bool             `json:"ChangeOnCaps"`
}

func (k *KeyboardKey) ID() uint32               { return k.Id }
func (k *KeyboardKey) Bounds() []geometry.Point { return k.Boundaries }
func (k *KeyboardKey) typeTag() string          { return TagKeyboardKey }

func (k *KeyboardKey) Translate(delta geometry.Point, moveText bool) {
	translateBoundaries(k.Boundaries, delta)

	if moveText {
		k.TextPosition = k.TextPosition.Add(delta)
	}
}

func (k *KeyboardKey) Clone() Element {
	clone := *k
	clone.Boundaries = clonePoints(k.Boundaries)
	clone.KeyCodes = cloneCodes(k.KeyCodes)

	return &clone
}

// MouseKey is a mouse button zone highlighted while its button codes are
// held.
type MouseKey struct {
	Id           uint32           `json:"Id"`
	Boundaries   []geometry.Point `json:"Boundaries"`
	TextPosition geometry.Point   `json:"TextPosition"`
	KeyCodes     []uint32         `json:"KeyCodes"`
	Text         string           `json:"Text"`
}

func (k *MouseKey) ID() uint32               { return k.Id }
func (k *MouseKey) Bounds() []geometry.Point { return k.Boundaries }
func (k *MouseKey) typeTag() string          { return TagMouseKey }

func (k *MouseKey) Translate(delta geometry.Point, moveText bool) {
	translateBoundaries(k.Boundaries, delta)

	if moveText {
		k.TextPosition = k.TextPosition.Add(delta)
	}
}

func (k *MouseKey) Clone() Element {
	clone := *k
	clone.Boundaries = clonePoints(k.Boundaries)
	clone.KeyCodes = cloneCodes(k.KeyCodes)

	return &clone
}

// MouseScroll is a scroll zone pulsed by wheel events. An empty KeyCodes
// list reacts to every scroll direction.
type MouseScroll struct {
	Id           uint32           `json:"Id"`
	Boundaries   []geometry.Point `json:"Boundaries"`
	TextPosition geometry.Point   `json:"TextPosition"`
	KeyCodes     []uint32         `json:"KeyCodes"`
	Text         string           `json:"Text"`
}

func (k *MouseScroll) ID() uint32               { return k.Id }
func (k *MouseScroll) Bounds() []geometry.Point { return k.Boundaries }
func (k *MouseScroll) typeTag() string          { return TagMouseScroll }

func (k *MouseScroll) Translate(delta geometry.Point, moveText bool) {
	translateBoundaries(k.Boundaries, delta)

	if moveText {
		k.TextPosition = k.TextPosition.Add(delta)
	}
}

func (k *MouseScroll) Clone() Element {
	clone := *k
	clone.Boundaries = clonePoints(k.Boundaries)
	clone.KeyCodes = cloneCodes(k.KeyCodes)

	return &clone
}

// MouseSpeedIndicator is the cursor-velocity dial: an outer ring with a
// pointer whose length tracks mouse speed.
type MouseSpeedIndicator struct {
	Id       uint32         `json:"Id"`
	Location geometry.Point `json:"Location"`
	Radius   float64        `json:"Radius"`
}

func (m *MouseSpeedIndicator) ID() uint32               { return m.Id }
func (m *MouseSpeedIndicator) Bounds() []geometry.Point { return nil }
func (m *MouseSpeedIndicator) typeTag() string          { return TagMouseSpeedIndicator }

func (m *MouseSpeedIndicator) Translate(delta geometry.Point, _ bool) {
	m.Location = m.Location.Add(delta)
}

func (m *MouseSpeedIndicator) Clone() Element {
	clone := *m

	return &clone
}

func translateBoundaries(boundaries []geometry.Point, delta geometry.Point) {
	for i := range boundaries {
		boundaries[i] = boundaries[i].Add(delta)
	}
}

func clonePoints(points []geometry.Point) []geometry.Point {
	if points == nil {
		return nil
	}

	out := make([]geometry.Point, len(points))
	copy(out, points)

	return out
}

func cloneCodes(codes []uint32) []uint32 {
	if codes == nil {
		return nil
	}

	out := make([]uint32, len(codes))
	copy(out, codes)

	return out
}
