package export_test

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/justDeeevin/NuhxBoard/export"
	"github.com/justDeeevin/NuhxBoard/frame"
	"github.com/justDeeevin/NuhxBoard/geometry"
	"github.com/justDeeevin/NuhxBoard/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "board.png")

	instructions := []frame.Instruction{
		frame.FillPolygon{
			Vertices: []geometry.Point{{X: 0, Y: 0}, {X: 120, Y: 0}, {X: 120, Y: 80}, {X: 0, Y: 80}},
			Color:    style.RGB{Red: 0, Green: 0, Blue: 100},
		},
		frame.StrokePolygon{
			Vertices: []geometry.Point{{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 50, Y: 50}, {X: 10, Y: 50}},
			Color:    style.RGB{Red: 0, Green: 255, Blue: 0},
			Width:    1,
		},
		frame.Text{
			Position: geometry.Point{X: 30, Y: 30},
			Content:  "a",
			Color:    style.Black,
			Font:     style.Font{Size: 10},
		},
		frame.FillCircle{Center: geometry.Point{X: 90, Y: 40}, Radius: 6, Color: style.DefaultGray},
		frame.StrokeCircle{Center: geometry.Point{X: 90, Y: 40}, Radius: 30, Color: style.White, Width: 1},
		frame.FillTriangle{
			A:     geometry.Point{X: 90, Y: 40},
			B:     geometry.Point{X: 110, Y: 35},
			C:     geometry.Point{X: 110, Y: 45},
			Color: style.White,
		},
	}

	require.NoError(t, export.RenderPNG(instructions, 120, 80, out))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())

	// Background pixel keeps the fill color.
	r, g, b, _ := img.At(2, 2).RGBA()
	assert.Equal(t, uint32(0), r>>8)
	assert.Equal(t, uint32(0), g>>8)
	assert.Equal(t, uint32(100), b>>8)
}

func TestRenderPNGRejectsEmptyCanvas(t *testing.T) {
	err := export.RenderPNG(nil, 0, 10, "unused.png")
	assert.Error(t, err)
}
