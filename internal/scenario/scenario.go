// Package scenario scripts pointer input and initial velocities so a run
// can be replayed without a human at the controls.
package scenario

import (
	"math/rand"
	"sort"

	"github.com/san-kum/airhockey/internal/geom"
	"github.com/san-kum/airhockey/internal/handle"
	"github.com/san-kum/airhockey/internal/sim"
)

type Kind int

const (
	Down Kind = iota
	Move
	Up
)

func (k Kind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	default:
		return "unknown"
	}
}

// Event is one pointer event delivered at time At (ms). Handle is only
// read for Down events.
type Event struct {
	At       float64
	Kind     Kind
	Handle   handle.ID
	Pointer  handle.PointerID
	Position geom.Vec2
}

type Scenario struct {
	Name        string
	Description string

	// Launch is applied to each free handle before the first tick.
	Launch [2]geom.Vec2

	Events []Event

	// Jitter perturbs each non-zero launch component by up to ±Jitter,
	// drawn from the run seed.
	Jitter float64
}

// Driver returns a sim.Driver that replays the scenario. Each call gets its
// own cursor, so one Scenario can drive many runs.
func (sc Scenario) Driver(seed int64) sim.Driver {
	events := make([]Event, len(sc.Events))
	copy(events, sc.Events)
	sort.SliceStable(events, func(i, j int) bool { return events[i].At < events[j].At })

	return &driver{
		launch: sc.Launch,
		jitter: sc.Jitter,
		events: events,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Duration is the time of the last scripted event.
func (sc Scenario) Duration() float64 {
	end := 0.0
	for _, e := range sc.Events {
		if e.At > end {
			end = e.At
		}
	}
	return end
}

type driver struct {
	launch [2]geom.Vec2
	jitter float64
	events []Event
	next   int
	rng    *rand.Rand
}

func (d *driver) Start(s *sim.Simulation) {
	d.next = 0
	for i, v := range d.launch {
		if v == geom.Zero {
			continue
		}
		if d.jitter > 0 {
			v = v.Add(geom.V(d.perturb(v.X), d.perturb(v.Y)))
		}
		s.Handle(handle.ID(i)).Launch(v)
	}
}

func (d *driver) perturb(c float64) float64 {
	if c == 0 {
		return 0
	}
	return (d.rng.Float64()*2 - 1) * d.jitter
}

// Drive delivers every event due at or before t.
func (d *driver) Drive(s *sim.Simulation, t float64) {
	for d.next < len(d.events) && d.events[d.next].At <= t {
		apply(s, d.events[d.next])
		d.next++
	}
}

func apply(s *sim.Simulation, e Event) {
	switch e.Kind {
	case Down:
		s.OnPointerDown(e.Handle, e.Pointer, e.Position)
	case Move:
		s.OnPointerMove(e.Pointer, e.Position)
	case Up:
		s.OnPointerUp(e.Pointer)
	}
}

// Drag grabs id with pointer at from, moves it to to in equal steps between
// start and start+duration, and releases it there.
func Drag(id handle.ID, pointer handle.PointerID, from, to geom.Vec2, start, duration float64, steps int) []Event {
	if steps < 1 {
		steps = 1
	}
	events := make([]Event, 0, steps+2)
	events = append(events, Event{At: start, Kind: Down, Handle: id, Pointer: pointer, Position: from})

	delta := to.Sub(from)
	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps)
		events = append(events, Event{
			At:       start + duration*f,
			Kind:     Move,
			Pointer:  pointer,
			Position: from.Add(delta.Scale(f)),
		})
	}

	events = append(events, Event{At: start + duration, Kind: Up, Pointer: pointer, Position: to})
	return events
}

// Hold grabs id with pointer at its position and keeps it still until end.
func Hold(id handle.ID, pointer handle.PointerID, at geom.Vec2, start, end float64) []Event {
	return []Event{
		{At: start, Kind: Down, Handle: id, Pointer: pointer, Position: at},
		{At: end, Kind: Up, Pointer: pointer, Position: at},
	}
}
