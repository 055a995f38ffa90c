// Package layout models keyboard layout documents and their JSON
// interchange format.
//
// The on-disk shape is the NohBoard keyboard file: PascalCase keys, a
// `__type` tag discriminating the element union, and every element's fields
// flattened next to the tag rather than nested under a variant wrapper.
package layout

import (
	"encoding/json"
	"fmt"
	"io"
)

// Layout is a keyboard layout document. Element order defines z-order for
// edit-mode hit testing: later elements sit on top.
type Layout struct {
	// Version has no meaning of its own; it is preserved verbatim for
	// parity with NohBoard layout files.
	Version  *int
	Width    float64
	Height   float64
	Elements []Element
}

// SchemaError describes a malformed layout or style document, pointing at
// the offending field.
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func schemaErrorf(path, format string, args ...any) *SchemaError {
	return &SchemaError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the invariants a loadable layout must satisfy. It is
// called by Load; documents built in memory should call it before use.
func (l *Layout) Validate() error {
	// The legacy format stores Version as an unsigned byte.
	if l.Version != nil && (*l.Version < 0 || *l.Version > 255) {
		return schemaErrorf("Version", "must be in 0..255, got %d", *l.Version)
	}

	if l.Width <= 0 {
		return schemaErrorf("Width", "must be positive, got %v", l.Width)
	}

	if l.Height <= 0 {
		return schemaErrorf("Height", "must be positive, got %v", l.Height)
	}

	seen := make(map[uint32]int, len(l.Elements))

	for i, element := range l.Elements {
		path := fmt.Sprintf("Elements[%d]", i)

		if prev, ok := seen[element.ID()]; ok {
			return schemaErrorf(path+".Id", "duplicate id %d, already used by Elements[%d]", element.ID(), prev)
		}

		seen[element.ID()] = i

		switch el := element.(type) {
		case *KeyboardKey:
			if len(el.KeyCodes) == 0 {
				return schemaErrorf(path+".KeyCodes", "keyboard key requires at least one keycode")
			}
		case *MouseKey:
			if len(el.KeyCodes) == 0 {
				return schemaErrorf(path+".KeyCodes", "mouse key requires at least one keycode")
			}
		case *MouseSpeedIndicator:
			if el.Radius <= 0 {
				return schemaErrorf(path+".Radius", "must be positive, got %v", el.Radius)
			}
		}
	}

	return nil
}

// ElementByID returns the element carrying id, or nil.
func (l *Layout) ElementByID(id uint32) Element {
	for _, element := range l.Elements {
		if element.ID() == id {
			return element
		}
	}

	return nil
}

// Load decodes and validates a layout document. The document is rejected as
// a whole on any schema violation; no partially-loaded layout is returned.
func Load(r io.Reader) (*Layout, error) {
	var l Layout

	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("could not decode layout: %w", err)
	}

	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}

	return &l, nil
}

// Save re-encodes the document the way the reference tool writes it:
// indented, with Version emitted only when it was present on load.
func Save(w io.Writer, l *Layout) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(l); err != nil {
		return fmt.Errorf("could not encode layout: %w", err)
	}

	return nil
}
