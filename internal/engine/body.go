package engine

import "math"

// Palette is cycled over body index at initialization. The color is an
// opaque tag for renderers; the engine never reads it back.
var Palette = [5]string{
	"#ff6b6b",
	"#4ecdc4",
	"#45b7d1",
	"#f9ca24",
	"#a29bfe",
}

// Body is a simulated point mass. Mass is fixed after initialization;
// position and velocity are rewritten every step. Radius and Color exist
// for renderers only and play no part in the force computation.
type Body struct {
	Mass   float64
	Pos    Vec2
	Vel    Vec2
	Radius float64
	Color  string
	Trail  Trail
}

func newBody(mass float64, pos, vel Vec2, colorIdx int) *Body {
	return &Body{
		Mass:   mass,
		Pos:    pos,
		Vel:    vel,
		Radius: 5 + math.Sqrt(mass)*2,
		Color:  Palette[colorIdx%len(Palette)],
	}
}

// Trail is a bounded FIFO of past positions, oldest first. The bound is
// supplied on each push so a live change to the configured trail length
// takes effect immediately.
type Trail struct {
	points []Vec2
}

func (t *Trail) Push(p Vec2, max int) {
	if max <= 0 {
		t.points = t.points[:0]
		return
	}
	t.points = append(t.points, p)
	if n := len(t.points) - max; n > 0 {
		t.points = t.points[n:]
	}
}

func (t *Trail) Len() int { return len(t.points) }

// Points returns the retained positions oldest-first. The slice aliases
// internal storage and is only valid until the next Push.
func (t *Trail) Points() []Vec2 { return t.points }

func (t *Trail) Clear() { t.points = t.points[:0] }
