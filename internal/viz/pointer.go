package viz

import (
	"github.com/charmbracelet/harmonica"

	"github.com/san-kum/airhockey/internal/arena"
	"github.com/san-kum/airhockey/internal/geom"
	"github.com/san-kum/airhockey/internal/handle"
)

const (
	cursorStep      = 30.0
	springFrequency = 8.0
	springDamping   = 1.0
)

// keyPointer is a keyboard-driven pointer. Keys move target in fixed
// steps; pos chases target through a spring and is what the simulation
// sees.
type keyPointer struct {
	id     handle.PointerID
	spring harmonica.Spring
	target geom.Vec2
	pos    geom.Vec2
	vel    geom.Vec2
	down   bool
}

func newKeyPointer(id handle.PointerID, at geom.Vec2, fps int) *keyPointer {
	return &keyPointer{
		id:     id,
		spring: harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping),
		target: at,
		pos:    at,
	}
}

// nudge moves the target by one step in direction d, kept inside the table.
func (p *keyPointer) nudge(d geom.Vec2, g *arena.Geometry) {
	p.target = p.target.Add(d.Scale(cursorStep)).
		RectangleClamp(g.InnerBounds.Min(), g.InnerBounds.Max())
}

// advance moves pos one frame toward target.
func (p *keyPointer) advance() geom.Vec2 {
	x, vx := p.spring.Update(p.pos.X, p.vel.X, p.target.X)
	y, vy := p.spring.Update(p.pos.Y, p.vel.Y, p.target.Y)
	p.pos, p.vel = geom.V(x, y), geom.V(vx, vy)
	return p.pos
}

func (p *keyPointer) place(at geom.Vec2) {
	p.target, p.pos, p.vel = at, at, geom.Zero
	p.down = false
}
