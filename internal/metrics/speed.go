package metrics

import (
	"math"

	"github.com/san-kum/airhockey/internal/sim"
)

// PeakSpeed is the fastest either handle moved during a run.
type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string {
	return p.name
}

func (p *PeakSpeed) Observe(f sim.Frame, r sim.StepReport, t float64) {
	for _, h := range f.Handles {
		p.peak = math.Max(p.peak, h.Velocity.Len())
	}
}

func (p *PeakSpeed) Value() float64 {
	return p.peak
}

func (p *PeakSpeed) Reset() {
	p.peak = 0
}
