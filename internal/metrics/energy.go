package metrics

import (
	"github.com/san-kum/airhockey/internal/geom"
	"github.com/san-kum/airhockey/internal/handle"
	"github.com/san-kum/airhockey/internal/sim"
)

// KineticEnergy averages the total kinetic energy of both handles over a
// run. Every handle counts with its free mass so held handles stay finite.
type KineticEnergy struct {
	name        string
	mass        float64
	samples     int
	totalEnergy float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{
		name: "kinetic_energy",
		mass: handle.FreeMass,
	}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(f sim.Frame, r sim.StepReport, t float64) {
	ke := 0.0
	for _, h := range f.Handles {
		ke += 0.5 * e.mass * h.Velocity.LenSq()
	}
	e.totalEnergy += ke
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// Momentum averages the magnitude of the summed momentum of the free
// handles. Held handles are driven from outside and are left out.
type Momentum struct {
	name    string
	mass    float64
	samples int
	total   float64
}

func NewMomentum() *Momentum {
	return &Momentum{
		name: "momentum",
		mass: handle.FreeMass,
	}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(f sim.Frame, r sim.StepReport, t float64) {
	p := geom.Zero
	for _, h := range f.Handles {
		if h.Held {
			continue
		}
		p = p.Add(h.Velocity.Scale(m.mass))
	}
	m.total += p.Len()
	m.samples++
}

func (m *Momentum) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *Momentum) Reset() {
	m.total = 0
	m.samples = 0
}
