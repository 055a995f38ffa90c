// Package style models keyboard style documents: the default key and
// indicator looks plus optional per-element overrides, interchangeable with
// NohBoard .style files.
package style

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/justDeeevin/NuhxBoard/layout"
)

// RGB is a float-valued color with channels conventionally in 0..255, as
// the legacy format stores them.
type RGB struct {
	Red   float64 `json:"Red"`
	Green float64 `json:"Green"`
	Blue  float64 `json:"Blue"`
}

var (
	Black       = RGB{0, 0, 0}
	White       = RGB{255, 255, 255}
	DefaultGray = RGB{100, 100, 100}
)

// Blend linearly interpolates between a and b. t is clamped to [0, 1].
func Blend(a, b RGB, t float64) RGB {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return RGB{
		Red:   a.Red + (b.Red-a.Red)*t,
		Green: a.Green + (b.Green-a.Green)*t,
		Blue:  a.Blue + (b.Blue-a.Blue)*t,
	}
}

// FontStyle is a bitfield: bold, italic, underline, strikethrough.
type FontStyle uint8

const (
	FontBold FontStyle = 1 << iota
	FontItalic
	FontUnderline
	FontStrikethrough

	fontStyleAll = FontBold | FontItalic | FontUnderline | FontStrikethrough
)

func (s FontStyle) Bold() bool          { return s&FontBold != 0 }
func (s FontStyle) Italic() bool        { return s&FontItalic != 0 }
func (s FontStyle) Underline() bool     { return s&FontUnderline != 0 }
func (s FontStyle) Strikethrough() bool { return s&FontStrikethrough != 0 }

func (s *FontStyle) UnmarshalJSON(data []byte) error {
	var bits uint8

	if err := json.Unmarshal(data, &bits); err != nil {
		return fmt.Errorf("font style must be an integer bitfield: %w", err)
	}

	if FontStyle(bits)&^fontStyleAll != 0 {
		return fmt.Errorf("font style has extraneous bits set: %#x", bits)
	}

	*s = FontStyle(bits)

	return nil
}

type Font struct {
	FontFamily string    `json:"FontFamily"`
	Size       float64   `json:"Size"`
	Style      FontStyle `json:"Style"`
}

// KeySubStyle is the full look of a key in one of its two states.
type KeySubStyle struct {
	Background              RGB     `json:"Background"`
	Text                    RGB     `json:"Text"`
	Outline                 RGB     `json:"Outline"`
	ShowOutline             bool    `json:"ShowOutline"`
	OutlineWidth            uint32  `json:"OutlineWidth"`
	Font                    Font    `json:"Font"`
	BackgroundImageFileName *string `json:"BackgroundImageFileName"`
}

// DefaultKeyStyle is the style-wide fallback; both states are required.
type DefaultKeyStyle struct {
	Loose   KeySubStyle `json:"Loose"`
	Pressed KeySubStyle `json:"Pressed"`
}

// KeyStyle is a per-element override. A nil state inherits the default;
// per-field inheritance is intentionally a two-level lookup, not a merge.
type KeyStyle struct {
	Loose   *KeySubStyle `json:"Loose"`
	Pressed *KeySubStyle `json:"Pressed"`
}

type MouseSpeedIndicatorStyle struct {
	InnerColor   RGB    `json:"InnerColor"`
	OuterColor   RGB    `json:"OuterColor"`
	OutlineWidth uint32 `json:"OutlineWidth"`
}

// Style is a keyboard style document.
type Style struct {
	BackgroundColor                 RGB                      `json:"BackgroundColor"`
	BackgroundImageFileName         *string                  `json:"BackgroundImageFileName"`
	DefaultKeyStyle                 DefaultKeyStyle          `json:"DefaultKeyStyle"`
	DefaultMouseSpeedIndicatorStyle MouseSpeedIndicatorStyle `json:"DefaultMouseSpeedIndicatorStyle"`
	ElementStyles                   ElementStyles            `json:"ElementStyles"`
}

// KeyStyleFor returns the override for element id, or nil. When the legacy
// list carries duplicate keys the last occurrence wins, matching map
// semantics of the reference tool.
func (s *Style) KeyStyleFor(id uint32) *KeyStyle {
	var found *KeyStyle

	for _, entry := range s.ElementStyles {
		if entry.Key != id {
			continue
		}

		if ks, ok := entry.Value.(*KeyStyle); ok {
			found = ks
		}
	}

	return found
}

// IndicatorStyleFor resolves the style for a mouse-speed indicator element,
// falling back to the document default.
func (s *Style) IndicatorStyleFor(id uint32) *MouseSpeedIndicatorStyle {
	var found *MouseSpeedIndicatorStyle

	for _, entry := range s.ElementStyles {
		if entry.Key != id {
			continue
		}

		if is, ok := entry.Value.(*MouseSpeedIndicatorStyle); ok {
			found = is
		}
	}

	if found == nil {
		return &s.DefaultMouseSpeedIndicatorStyle
	}

	return found
}

// SubStyle resolves the effective look of a key element: the override's
// matching state when present, else the document default for that state.
func (s *Style) SubStyle(id uint32, pressed bool) *KeySubStyle {
	if override := s.KeyStyleFor(id); override != nil {
		if pressed && override.Pressed != nil {
			return override.Pressed
		}

		if !pressed && override.Loose != nil {
			return override.Loose
		}
	}

	if pressed {
		return &s.DefaultKeyStyle.Pressed
	}

	return &s.DefaultKeyStyle.Loose
}

// Default mirrors the reference tool's built-in style: gray loose keys,
// white pressed keys, dark blue background.
func Default() *Style {
	defaultFont := Font{FontFamily: "Courier New", Size: 10}
	outlineGreen := RGB{0, 255, 0}

	return &Style{
		BackgroundColor: RGB{0, 0, 100},
		DefaultKeyStyle: DefaultKeyStyle{
			Loose: KeySubStyle{
				Background:   DefaultGray,
				Text:         Black,
				Outline:      outlineGreen,
				OutlineWidth: 1,
				Font:         defaultFont,
			},
			Pressed: KeySubStyle{
				Background:   White,
				Text:         Black,
				Outline:      outlineGreen,
				OutlineWidth: 1,
				Font:         defaultFont,
			},
		},
		DefaultMouseSpeedIndicatorStyle: MouseSpeedIndicatorStyle{
			InnerColor:   DefaultGray,
			OuterColor:   White,
			OutlineWidth: 1,
		},
	}
}

// styleDocument shadows Style with pointer fields so Load can tell a
// missing required field from a zero value.
type styleDocument struct {
	BackgroundColor                 *RGB                      `json:"BackgroundColor"`
	BackgroundImageFileName         *string                   `json:"BackgroundImageFileName"`
	DefaultKeyStyle                 *defaultKeyStyleDocument  `json:"DefaultKeyStyle"`
	DefaultMouseSpeedIndicatorStyle *MouseSpeedIndicatorStyle `json:"DefaultMouseSpeedIndicatorStyle"`
	ElementStyles                   ElementStyles             `json:"ElementStyles"`
}

type defaultKeyStyleDocument struct {
	Loose   *KeySubStyle `json:"Loose"`
	Pressed *KeySubStyle `json:"Pressed"`
}

// validate enforces the required fields of a style document. Per-element
// overrides may omit either substate; the document default may not.
func (d *styleDocument) validate() error {
	switch {
	case d.BackgroundColor == nil:
		return missingField("BackgroundColor")
	case d.DefaultKeyStyle == nil:
		return missingField("DefaultKeyStyle")
	case d.DefaultKeyStyle.Loose == nil:
		return missingField("DefaultKeyStyle.Loose")
	case d.DefaultKeyStyle.Pressed == nil:
		return missingField("DefaultKeyStyle.Pressed")
	case d.DefaultMouseSpeedIndicatorStyle == nil:
		return missingField("DefaultMouseSpeedIndicatorStyle")
	}

	return nil
}

func missingField(path string) error {
	return &layout.SchemaError{Path: path, Reason: "missing required field"}
}

// Load decodes and validates a style document. A document missing any of
// the required defaults is rejected whole; Load never returns a partially
// usable style.
func Load(r io.Reader) (*Style, error) {
	var doc styleDocument

	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not decode style: %w", err)
	}

	if err := doc.validate(); err != nil {
		return nil, err
	}

	return &Style{
		BackgroundColor:         *doc.BackgroundColor,
		BackgroundImageFileName: doc.BackgroundImageFileName,
		DefaultKeyStyle: DefaultKeyStyle{
			Loose:   *doc.DefaultKeyStyle.Loose,
			Pressed: *doc.DefaultKeyStyle.Pressed,
		},
		DefaultMouseSpeedIndicatorStyle: *doc.DefaultMouseSpeedIndicatorStyle,
		ElementStyles:                   doc.ElementStyles,
	}, nil
}

// Save re-encodes a style document, indented like the reference tool.
func Save(w io.Writer, s *Style) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("could not encode style: %w", err)
	}

	return nil
}

// ElementStyle is the override union: a KeyStyle for key-like elements or a
// MouseSpeedIndicatorStyle for indicators, discriminated by `__type`.
type ElementStyle interface {
	styleTag() string
}

func (*KeyStyle) styleTag() string                 { return "KeyStyle" }
func (*MouseSpeedIndicatorStyle) styleTag() string { return "MouseSpeedIndicatorStyle" }

// ElementStyles is the per-element override table. The legacy format
// serializes it as an ordered list of {Key, Value} pairs rather than a
// native map; order and duplicates are preserved round-trip.
type ElementStyles []ElementStyleEntry

type ElementStyleEntry struct {
	Key   uint32
	Value ElementStyle
}

func (e *ElementStyleEntry) UnmarshalJSON(data []byte) error {
	var entry struct {
		Key   uint32          `json:"Key"`
		Value json.RawMessage `json:"Value"`
	}

	if err := json.Unmarshal(data, &entry); err != nil {
		return fmt.Errorf("could not parse element style entry: %w", err)
	}

	var probe struct {
		Type *string `json:"__type"`
	}

	if err := json.Unmarshal(entry.Value, &probe); err != nil {
		return fmt.Errorf("element style %d: not an object: %w", entry.Key, err)
	}

	if probe.Type == nil {
		return &layout.SchemaError{
			Path:   fmt.Sprintf("ElementStyles[%d].Value.__type", entry.Key),
			Reason: "missing style type tag",
		}
	}

	var (
		value ElementStyle
		err   error
	)

	switch *probe.Type {
	case "KeyStyle":
		var ks KeyStyle
		err = json.Unmarshal(entry.Value, &ks)
		value = &ks
	case "MouseSpeedIndicatorStyle":
		var is MouseSpeedIndicatorStyle
		err = json.Unmarshal(entry.Value, &is)
		value = &is
	default:
		return &layout.SchemaError{
			Path:   fmt.Sprintf("ElementStyles[%d].Value.__type", entry.Key),
			Reason: fmt.Sprintf("unrecognized style type %q", *probe.Type),
		}
	}

	if err != nil {
		return fmt.Errorf("element style %d: bad %s: %w", entry.Key, *probe.Type, err)
	}

	e.Key = entry.Key
	e.Value = value

	return nil
}

func (e ElementStyleEntry) MarshalJSON() ([]byte, error) {
	var raw json.RawMessage

	var err error

	switch v := e.Value.(type) {
	case *KeyStyle:
		raw, err = json.Marshal(struct {
			Type string `json:"__type"`
			*KeyStyle
		}{v.styleTag(), v})
	case *MouseSpeedIndicatorStyle:
		raw, err = json.Marshal(struct {
			Type string `json:"__type"`
			*MouseSpeedIndicatorStyle
		}{v.styleTag(), v})
	default:
		return nil, fmt.Errorf("unsupported element style type %T", e.Value)
	}

	if err != nil {
		return nil, err
	}

	return json.Marshal(struct {
		Key   uint32          `json:"Key"`
		Value json.RawMessage `json:"Value"`
	}{e.Key, raw})
}
