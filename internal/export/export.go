// Package export renders recorded runs to portable formats: CSV and JSON
// for downstream tooling, SVG for a static picture of the trajectories.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/orbitlab/internal/engine"
	"github.com/san-kum/orbitlab/internal/storage"
)

// JSONRun is the on-the-wire shape of an exported run.
type JSONRun struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	G         float64            `json:"g"`
	NumBodies int                `json:"num_bodies"`
	Adaptive  bool               `json:"adaptive"`
	Masses    []float64          `json:"masses"`
	Metrics   map[string]float64 `json:"metrics"`
	Times     []float64          `json:"times"`
	Frames    [][]float64        `json:"frames"` // per frame: x,y,vx,vy per body
}

func WriteJSON(w io.Writer, meta *storage.RunMeta, frames []storage.Frame) error {
	out := JSONRun{
		ID:        meta.ID,
		Name:      meta.Name,
		Seed:      meta.Seed,
		Dt:        meta.Dt,
		G:         meta.G,
		NumBodies: meta.NumBodies,
		Adaptive:  meta.Adaptive,
		Masses:    meta.Masses,
		Metrics:   meta.Metrics,
		Times:     make([]float64, len(frames)),
		Frames:    make([][]float64, len(frames)),
	}
	for i, fr := range frames {
		out.Times[i] = fr.T
		row := make([]float64, 0, 4*len(fr.Bodies))
		for _, b := range fr.Bodies {
			row = append(row, b.X, b.Y, b.VX, b.VY)
		}
		out.Frames[i] = row
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func WriteCSV(w io.Writer, frames []storage.Frame) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if len(frames) == 0 {
		return nil
	}

	header := []string{"time", "dt"}
	for i := range frames[0].Bodies {
		header = append(header,
			fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i),
			fmt.Sprintf("vx%d", i), fmt.Sprintf("vy%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, fr := range frames {
		row := make([]string, 0, len(header))
		row = append(row, ff(fr.T), ff(fr.Dt))
		for _, b := range fr.Bodies {
			row = append(row, ff(b.X), ff(b.Y), ff(b.VX), ff(b.VY))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ff(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// TrajectorySVG draws every body's recorded path as a colored polyline,
// auto-scaled to the frame bounds with padding. Colors cycle the engine
// palette in body order, matching the live view.
func TrajectorySVG(frames []storage.Frame, width, height int) string {
	if len(frames) < 2 || len(frames[0].Bodies) == 0 {
		return ""
	}

	minX, maxX := frames[0].Bodies[0].X, frames[0].Bodies[0].X
	minY, maxY := frames[0].Bodies[0].Y, frames[0].Bodies[0].Y
	for _, fr := range frames {
		for _, b := range fr.Bodies {
			minX, maxX = minFl(minX, b.X), maxFl(maxX, b.X)
			minY, maxY = minFl(minY, b.Y), maxFl(maxY, b.Y)
		}
	}
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	numBodies := len(frames[0].Bodies)
	for bi := 0; bi < numBodies; bi++ {
		color := engine.Palette[bi%len(engine.Palette)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for i, fr := range frames {
			b := fr.Bodies[bi]
			x := (b.X - minX) / rangeX * float64(width)
			y := (b.Y - minY) / rangeY * float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")

		last := frames[len(frames)-1].Bodies[bi]
		x := (last.X - minX) / rangeX * float64(width)
		y := (last.Y - minY) / rangeY * float64(height)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`+"\n", x, y, color))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func minFl(a, b float64) float64 {
	if b < a {
		return b
	}
	return a
}

func maxFl(a, b float64) float64 {
	if b > a {
		return b
	}
	return a
}
