// Package frame projects the current state of a board onto an ordered list
// of draw instructions. The projection is a pure function: the same layout,
// style, tracker snapshot and mouse velocity always produce the same
// instructions, in the same order, so any renderer (or a test) can consume
// them without touching the session.
package frame

import (
	"math"

	"github.com/justDeeevin/NuhxBoard/geometry"
	"github.com/justDeeevin/NuhxBoard/layout"
	"github.com/justDeeevin/NuhxBoard/mouse"
	"github.com/justDeeevin/NuhxBoard/settings"
	"github.com/justDeeevin/NuhxBoard/style"
	"github.com/justDeeevin/NuhxBoard/tracker"
)

// Instruction is one drawing primitive. Instructions are emitted back to
// front: a renderer executes them in slice order.
type Instruction interface {
	instruction()
}

// FillPolygon fills the area enclosed by Vertices.
type FillPolygon struct {
	Vertices []geometry.Point
	Color    style.RGB
}

// StrokePolygon outlines the closed polygon through Vertices.
type StrokePolygon struct {
	Vertices []geometry.Point
	Color    style.RGB
	Width    float64
}

// Text draws Content centered on Position.
type Text struct {
	Position geometry.Point
	Content  string
	Color    style.RGB
	Font     style.Font
}

type FillCircle struct {
	Center geometry.Point
	Radius float64
	Color  style.RGB
}

type StrokeCircle struct {
	Center geometry.Point
	Radius float64
	Color  style.RGB
	Width  float64
}

// FillTriangle is the speed-indicator needle.
type FillTriangle struct {
	A, B, C geometry.Point
	Color   style.RGB
}

func (FillPolygon) instruction()   {}
func (StrokePolygon) instruction() {}
func (Text) instruction()         {}
func (FillCircle) instruction()   {}
func (StrokeCircle) instruction() {}
func (FillTriangle) instruction() {}

// Project renders one frame of state into instructions. Elements are drawn
// in layout order, so later elements overlap earlier ones, matching the
// editor's topmost-wins hit-testing. The first instruction is always the
// board background.
func Project(lay *layout.Layout, sty *style.Style, snap tracker.Snapshot, velocity geometry.Point, cfg *settings.Settings) []Instruction {
	out := make([]Instruction, 0, 1+3*len(lay.Elements))

	out = append(out, FillPolygon{
		Vertices: []geometry.Point{
			{X: 0, Y: 0},
			{X: lay.Width, Y: 0},
			{X: lay.Width, Y: lay.Height},
			{X: 0, Y: lay.Height},
		},
		Color: sty.BackgroundColor,
	})

	for _, element := range lay.Elements {
		switch el := element.(type) {
		case *layout.KeyboardKey:
			text := el.Text
			if tracker.UseShiftText(el.ChangeOnCaps, snap.LogicalCaps, snap.ShiftHeld, cfg) {
				text = el.ShiftText
			}

			out = projectKey(out, sty, el.Id, el.Boundaries, el.TextPosition, text, snap.Pressed[el.Id])
		case *layout.MouseKey:
			out = projectKey(out, sty, el.Id, el.Boundaries, el.TextPosition, el.Text, snap.Pressed[el.Id])
		case *layout.MouseScroll:
			out = projectKey(out, sty, el.Id, el.Boundaries, el.TextPosition, el.Text, snap.Pressed[el.Id])
		case *layout.MouseSpeedIndicator:
			out = projectIndicator(out, sty, el, velocity, cfg.MouseSensitivity)
		}
	}

	return out
}

func projectKey(out []Instruction, sty *style.Style, id uint32, boundaries []geometry.Point, textPosition geometry.Point, text string, pressed bool) []Instruction {
	sub := sty.SubStyle(id, pressed)

	out = append(out, FillPolygon{Vertices: boundaries, Color: sub.Background})

	if sub.ShowOutline {
		out = append(out, StrokePolygon{
			Vertices: boundaries,
			Color:    sub.Outline,
			Width:    float64(sub.OutlineWidth),
		})
	}

	if text != "" {
		out = append(out, Text{
			Position: textPosition,
			Content:  text,
			Color:    sub.Text,
			Font:     sub.Font,
		})
	}

	return out
}

func projectIndicator(out []Instruction, sty *style.Style, el *layout.MouseSpeedIndicator, velocity geometry.Point, sensitivity float64) []Instruction {
	is := sty.IndicatorStyleFor(el.Id)

	out = append(out,
		FillCircle{
			Center: el.Location,
			Radius: el.Radius * mouse.InnerRingRatio,
			Color:  is.InnerColor,
		},
		StrokeCircle{
			Center: el.Location,
			Radius: el.Radius,
			Color:  is.OuterColor,
			Width:  float64(is.OutlineWidth),
		},
	)

	pointer := mouse.PointerFor(velocity, el.Radius, sensitivity)
	if pointer.Magnitude == 0 {
		return out
	}

	t := pointer.Magnitude / el.Radius
	b, c := needleBase(el.Radius, pointer.Angle, t, el.Location)
	blend := style.Blend(is.InnerColor, is.OuterColor, t)

	out = append(out,
		FillTriangle{A: el.Location, B: b, C: c, Color: blend},
		FillCircle{
			Center: geometry.Point{
				X: el.Location.X + el.Radius*math.Cos(pointer.Angle),
				Y: el.Location.Y + el.Radius*math.Sin(pointer.Angle),
			},
			Radius: el.Radius * mouse.InnerRingRatio,
			Color:  blend,
		},
	)

	return out
}

// needleBase returns the two base corners of the needle triangle: the tip of
// the needle offset sideways along the direction perpendicular to the
// velocity, with the whole shape scaled by the squashed magnitude t in
// [0, 1]. The perpendicular comes out of atan(-cot(angle)), which stays
// finite in IEEE arithmetic even when the angle sits on an axis.
func needleBase(radius, angle, t float64, center geometry.Point) (geometry.Point, geometry.Point) {
	perpendicular := math.Atan(-1 / math.Tan(angle))

	tipX := radius * math.Cos(angle)
	tipY := radius * math.Sin(angle)
	sideX := mouse.InnerRingRatio * radius * math.Cos(perpendicular)
	sideY := mouse.InnerRingRatio * radius * math.Sin(perpendicular)

	b := geometry.Point{
		X: center.X + t*(tipX-sideX),
		Y: center.Y + t*(tipY-sideY),
	}
	c := geometry.Point{
		X: center.X + t*(tipX+sideX),
		Y: center.Y + t*(tipY+sideY),
	}

	return b, c
}
