// Package export rasterizes one projected frame to a PNG file. It is the
// reference consumer of the frame instruction stream; interactive renderers
// follow the same shape.
package export

import (
	"fmt"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/justDeeevin/NuhxBoard/frame"
	"github.com/justDeeevin/NuhxBoard/geometry"
	"github.com/justDeeevin/NuhxBoard/style"
)

// RenderPNG draws the instructions onto a width-by-height canvas and writes
// it to filename. Coordinates in the instructions are already in pixel
// space; instructions execute in order, later ones on top.
func RenderPNG(instructions []frame.Instruction, width, height int, filename string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("could not parse font: %w", err)
	}

	for _, instruction := range instructions {
		switch in := instruction.(type) {
		case frame.FillPolygon:
			tracePolygon(dc, in.Vertices)
			setColor(dc, in.Color)
			dc.Fill()
		case frame.StrokePolygon:
			tracePolygon(dc, in.Vertices)
			setColor(dc, in.Color)
			dc.SetLineWidth(in.Width)
			dc.Stroke()
		case frame.Text:
			size := in.Font.Size
			if size <= 0 {
				size = 10
			}

			// Every text run can carry its own size. The face cache inside
			// gg only keys on the context, so set a fresh face per run.
			face := truetype.NewFace(ttfFont, &truetype.Options{
				Size:    size,
				DPI:     72,
				Hinting: font.HintingFull,
			})
			dc.SetFontFace(face)
			setColor(dc, in.Color)
			dc.DrawStringAnchored(in.Content, in.Position.X, in.Position.Y, 0.5, 0.5)
		case frame.FillCircle:
			dc.DrawCircle(in.Center.X, in.Center.Y, in.Radius)
			setColor(dc, in.Color)
			dc.Fill()
		case frame.StrokeCircle:
			dc.DrawCircle(in.Center.X, in.Center.Y, in.Radius)
			setColor(dc, in.Color)
			dc.SetLineWidth(in.Width)
			dc.Stroke()
		case frame.FillTriangle:
			dc.MoveTo(in.A.X, in.A.Y)
			dc.LineTo(in.B.X, in.B.Y)
			dc.LineTo(in.C.X, in.C.Y)
			dc.ClosePath()
			setColor(dc, in.Color)
			dc.Fill()
		}
	}

	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("could not save png: %w", err)
	}

	return nil
}

func tracePolygon(dc *gg.Context, vertices []geometry.Point) {
	if len(vertices) == 0 {
		return
	}

	dc.MoveTo(vertices[0].X, vertices[0].Y)
	for _, v := range vertices[1:] {
		dc.LineTo(v.X, v.Y)
	}
	dc.ClosePath()
}

func setColor(dc *gg.Context, c style.RGB) {
	dc.SetRGB(c.Red/255, c.Green/255, c.Blue/255)
}
