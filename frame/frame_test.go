package frame_test

import (
	"math"
	"testing"

	"github.com/justDeeevin/NuhxBoard/frame"
	"github.com/justDeeevin/NuhxBoard/geometry"
	"github.com/justDeeevin/NuhxBoard/layout"
	"github.com/justDeeevin/NuhxBoard/settings"
	"github.com/justDeeevin/NuhxBoard/style"
	"github.com/justDeeevin/NuhxBoard/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frameLayout() *layout.Layout {
	return &layout.Layout{
		Width:  300,
		Height: 200,
		Elements: []layout.Element{
			&layout.KeyboardKey{
				Id: 1,
				Boundaries: []geometry.Point{
					{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 50, Y: 50}, {X: 10, Y: 50},
				},
				TextPosition: geometry.Point{X: 30, Y: 30},
				KeyCodes:     []uint32{65},
				Text:         "a",
				ShiftText:    "A",
				ChangeOnCaps: true,
			},
			&layout.MouseSpeedIndicator{
				Id:       2,
				Location: geometry.Point{X: 200, Y: 100},
				Radius:   50,
			},
		},
	}
}

func TestProjectBackgroundFirst(t *testing.T) {
	got := frame.Project(frameLayout(), style.Default(), tracker.Snapshot{}, geometry.Point{}, settings.Default())

	require.NotEmpty(t, got)

	bg, ok := got[0].(frame.FillPolygon)
	require.True(t, ok)
	assert.Equal(t, style.RGB{Red: 0, Green: 0, Blue: 100}, bg.Color)
	assert.Equal(t, geometry.Point{X: 300, Y: 200}, bg.Vertices[2])
}

func TestProjectKeyStates(t *testing.T) {
	lay := frameLayout()
	sty := style.Default()
	cfg := settings.Default()

	loose := frame.Project(lay, sty, tracker.Snapshot{}, geometry.Point{}, cfg)
	pressed := frame.Project(lay, sty, tracker.Snapshot{Pressed: map[uint32]bool{1: true}}, geometry.Point{}, cfg)

	looseFill := loose[1].(frame.FillPolygon)
	pressedFill := pressed[1].(frame.FillPolygon)

	assert.Equal(t, style.DefaultGray, looseFill.Color)
	assert.Equal(t, style.White, pressedFill.Color)
}

func TestProjectShiftText(t *testing.T) {
	lay := frameLayout()
	sty := style.Default()
	cfg := settings.Default()

	findText := func(instructions []frame.Instruction) frame.Text {
		t.Helper()
		for _, in := range instructions {
			if text, ok := in.(frame.Text); ok {
				return text
			}
		}
		t.Fatal("no text instruction emitted")
		return frame.Text{}
	}

	plain := frame.Project(lay, sty, tracker.Snapshot{}, geometry.Point{}, cfg)
	assert.Equal(t, "a", findText(plain).Content)

	shifted := frame.Project(lay, sty, tracker.Snapshot{ShiftHeld: true}, geometry.Point{}, cfg)
	assert.Equal(t, "A", findText(shifted).Content)

	caps := frame.Project(lay, sty, tracker.Snapshot{LogicalCaps: true}, geometry.Point{}, cfg)
	assert.Equal(t, "A", findText(caps).Content)

	both := frame.Project(lay, sty, tracker.Snapshot{LogicalCaps: true, ShiftHeld: true}, geometry.Point{}, cfg)
	assert.Equal(t, "a", findText(both).Content, "caps and shift cancel out")
}

func TestProjectOutlineRespectsShowOutline(t *testing.T) {
	lay := frameLayout()
	sty := style.Default()
	sty.DefaultKeyStyle.Loose.ShowOutline = true
	sty.DefaultKeyStyle.Loose.OutlineWidth = 2

	got := frame.Project(lay, sty, tracker.Snapshot{}, geometry.Point{}, settings.Default())

	stroke, ok := got[2].(frame.StrokePolygon)
	require.True(t, ok, "outline follows the key fill")
	assert.Equal(t, 2.0, stroke.Width)

	sty.DefaultKeyStyle.Loose.ShowOutline = false
	got = frame.Project(lay, sty, tracker.Snapshot{}, geometry.Point{}, settings.Default())
	_, ok = got[2].(frame.StrokePolygon)
	assert.False(t, ok)
}

func TestProjectStyleOverride(t *testing.T) {
	lay := frameLayout()
	sty := style.Default()
	red := style.RGB{Red: 200, Green: 10, Blue: 10}
	sty.ElementStyles = append(sty.ElementStyles, style.ElementStyleEntry{
		Key: 1,
		Value: &style.KeyStyle{
			Loose: &style.KeySubStyle{Background: red},
		},
	})

	got := frame.Project(lay, sty, tracker.Snapshot{}, geometry.Point{}, settings.Default())
	assert.Equal(t, red, got[1].(frame.FillPolygon).Color)

	// The override has no Pressed state, so that one inherits the default.
	got = frame.Project(lay, sty, tracker.Snapshot{Pressed: map[uint32]bool{1: true}}, geometry.Point{}, settings.Default())
	assert.Equal(t, style.White, got[1].(frame.FillPolygon).Color)
}

func TestProjectIndicatorAtRest(t *testing.T) {
	got := frame.Project(frameLayout(), style.Default(), tracker.Snapshot{}, geometry.Point{}, settings.Default())

	var circles []frame.Instruction
	for _, in := range got {
		switch in.(type) {
		case frame.FillCircle, frame.StrokeCircle, frame.FillTriangle:
			circles = append(circles, in)
		}
	}

	require.Len(t, circles, 2, "no needle without velocity")

	inner := circles[0].(frame.FillCircle)
	assert.Equal(t, 10.0, inner.Radius, "inner circle is a fifth of the ring")
	assert.Equal(t, style.DefaultGray, inner.Color)

	ring := circles[1].(frame.StrokeCircle)
	assert.Equal(t, 50.0, ring.Radius)
	assert.Equal(t, style.White, ring.Color)
}

func TestProjectIndicatorNeedle(t *testing.T) {
	velocity := geometry.Point{X: 4000, Y: 0}
	got := frame.Project(frameLayout(), style.Default(), tracker.Snapshot{}, velocity, settings.Default())

	var triangle frame.FillTriangle
	var ball frame.FillCircle
	found := false
	for i, in := range got {
		if tri, ok := in.(frame.FillTriangle); ok {
			triangle = tri
			ball = got[i+1].(frame.FillCircle)
			found = true
		}
	}
	require.True(t, found, "moving mouse emits a needle")

	center := geometry.Point{X: 200, Y: 100}
	assert.Equal(t, center, triangle.A, "needle is anchored at the hub")

	// Rightward motion: base corners sit right of center, mirrored about the
	// horizontal axis.
	assert.Greater(t, triangle.B.X, center.X)
	assert.InDelta(t, triangle.B.X, triangle.C.X, 1e-9)
	assert.InDelta(t, center.Y-triangle.B.Y, triangle.C.Y-center.Y, 1e-9)

	// Needle length tracks the squashed magnitude.
	expected := 50 * math.Tanh(50*0.000005*4000)
	assert.InDelta(t, center.X+expected, (triangle.B.X+triangle.C.X)/2, 1e-6)

	// The ball rides the ring in the velocity direction.
	assert.InDelta(t, 250, ball.Center.X, 1e-9)
	assert.InDelta(t, 100, ball.Center.Y, 1e-9)
	assert.Equal(t, 10.0, ball.Radius)
}

func TestProjectDeterministic(t *testing.T) {
	lay := frameLayout()
	sty := style.Default()
	snap := tracker.Snapshot{Pressed: map[uint32]bool{1: true}, ShiftHeld: true}
	velocity := geometry.Point{X: 300, Y: -120}
	cfg := settings.Default()

	first := frame.Project(lay, sty, snap, velocity, cfg)
	second := frame.Project(lay, sty, snap, velocity, cfg)

	assert.Equal(t, first, second)
}
