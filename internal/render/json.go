package render

import (
	"encoding/json"
	"io"
)

type exportPath struct {
	Stroke string       `json:"stroke"`
	Active bool         `json:"active"`
	Points [][2]float64 `json:"points"`
}

type exportFrame struct {
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	Background string       `json:"background"`
	Thickness  float64      `json:"thickness"`
	Paths      []exportPath `json:"paths"`
}

// WriteJSON encodes f as indented JSON: canvas metadata plus each curve's
// stroke color and point list.
func WriteJSON(w io.Writer, f *Frame) error {
	data := exportFrame{
		Width:      f.Width,
		Height:     f.Height,
		Background: Hex(f.Background),
		Thickness:  f.Thickness,
		Paths:      make([]exportPath, len(f.Paths)),
	}
	for i, p := range f.Paths {
		pts := make([][2]float64, len(p.Points))
		for j, pt := range p.Points {
			pts[j] = [2]float64{pt.X, pt.Y}
		}
		data.Paths[i] = exportPath{Stroke: Hex(p.Stroke), Active: p.Active, Points: pts}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
