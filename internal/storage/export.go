package storage

import (
	"encoding/json"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/san-kum/airhockey/internal/geom"
	"github.com/san-kum/airhockey/internal/sim"
)

// Trace is a self-contained copy of a run for other tools.
type Trace struct {
	Scenario string             `json:"scenario" msgpack:"scenario"`
	Seed     int64              `json:"seed" msgpack:"seed"`
	Dt       float64            `json:"dt" msgpack:"dt"`
	Duration float64            `json:"duration" msgpack:"duration"`
	Steps    int                `json:"steps" msgpack:"steps"`
	Times    []float64          `json:"times" msgpack:"times"`
	Frames   []FrameRecord      `json:"frames" msgpack:"frames"`
	Metrics  map[string]float64 `json:"metrics" msgpack:"metrics"`
}

type FrameRecord struct {
	Handles [2]HandleRecord `json:"handles" msgpack:"handles"`
}

type HandleRecord struct {
	X    float64 `json:"x" msgpack:"x"`
	Y    float64 `json:"y" msgpack:"y"`
	VX   float64 `json:"vx" msgpack:"vx"`
	VY   float64 `json:"vy" msgpack:"vy"`
	Held bool    `json:"held" msgpack:"held"`
}

func NewTrace(meta *RunMetadata, frames []sim.Frame, times []float64) *Trace {
	tr := &Trace{
		Scenario: meta.Scenario,
		Seed:     meta.Seed,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Steps:    meta.Steps,
		Times:    times,
		Frames:   make([]FrameRecord, len(frames)),
		Metrics:  meta.Metrics,
	}

	for i, f := range frames {
		for j, h := range f.Handles {
			tr.Frames[i].Handles[j] = HandleRecord{
				X:    h.Position.X,
				Y:    h.Position.Y,
				VX:   h.Velocity.X,
				VY:   h.Velocity.Y,
				Held: h.Held,
			}
		}
	}
	return tr
}

// SimFrames converts the records back into frames.
func (tr *Trace) SimFrames() []sim.Frame {
	frames := make([]sim.Frame, len(tr.Frames))
	for i, f := range tr.Frames {
		for j, h := range f.Handles {
			frames[i].Handles[j] = sim.HandleState{
				Position: geom.V(h.X, h.Y),
				Velocity: geom.V(h.VX, h.VY),
				Held:     h.Held,
			}
		}
	}
	return frames
}

// Export loads a stored run as a Trace.
func (s *Store) Export(runID string) (*Trace, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	frames, times, err := s.LoadFrames(runID)
	if err != nil {
		return nil, err
	}
	return NewTrace(meta, frames, times), nil
}

func ExportJSON(w io.Writer, tr *Trace) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tr)
}

func ExportMsgpack(w io.Writer, tr *Trace) error {
	return msgpack.NewEncoder(w).Encode(tr)
}

func ReadMsgpack(r io.Reader) (*Trace, error) {
	var tr Trace
	if err := msgpack.NewDecoder(r).Decode(&tr); err != nil {
		return nil, err
	}
	return &tr, nil
}

// ExportCSV writes the trace in the frames.csv layout.
func ExportCSV(w io.Writer, tr *Trace) error {
	return WriteCSV(w, tr.Times, tr.SimFrames())
}
