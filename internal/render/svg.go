package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// WriteSVG encodes f as an SVG document with one path per curve.
func WriteSVG(w io.Writer, f *Frame) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	width, height := int(math.Ceil(f.Width)), int(math.Ceil(f.Height))
	canvas.Start(width, height)
	canvas.Title("reflow")
	canvas.Rect(0, 0, width, height, "fill:"+Hex(f.Background))
	canvas.Gstyle(fmt.Sprintf("fill:none;stroke-width:%s;stroke-linecap:round;stroke-linejoin:round",
		strconv.FormatFloat(f.Thickness, 'f', -1, 64)))
	for _, p := range f.Paths {
		if len(p.Points) < 2 {
			continue
		}
		canvas.Path(pathData(p), "stroke:"+Hex(p.Stroke))
	}
	canvas.Gend()
	canvas.End()

	return ew.err
}

func pathData(p Path) string {
	var sb strings.Builder
	for i, pt := range p.Points {
		if i == 0 {
			sb.WriteString("M")
		} else {
			sb.WriteString(" L")
		}
		sb.WriteString(strconv.FormatFloat(pt.X, 'f', 2, 64))
		sb.WriteString(",")
		sb.WriteString(strconv.FormatFloat(pt.Y, 'f', 2, 64))
	}
	return sb.String()
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
