package render

import (
	"io"
	"math"

	"github.com/fogleman/gg"
)

// Raster draws f into a new gg context, one stroked polyline per curve.
func Raster(f *Frame) *gg.Context {
	dc := gg.NewContext(int(math.Ceil(f.Width)), int(math.Ceil(f.Height)))
	dc.SetColor(f.Background)
	dc.Clear()
	dc.SetLineWidth(f.Thickness)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	for _, p := range f.Paths {
		if len(p.Points) < 2 {
			continue
		}
		dc.MoveTo(p.Points[0].X, p.Points[0].Y)
		for _, pt := range p.Points[1:] {
			dc.LineTo(pt.X, pt.Y)
		}
		dc.SetColor(p.Stroke)
		dc.Stroke()
	}
	return dc
}

// WritePNG rasterizes f and encodes it as PNG.
func WritePNG(w io.Writer, f *Frame) error {
	return Raster(f).EncodePNG(w)
}
