package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/airhockey/internal/geom"
	"github.com/san-kum/airhockey/internal/sim"
)

var ErrUnknownRun = errors.New("storage: unknown run")

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var frameHeader = []string{
	"time",
	"x1", "y1", "vx1", "vy1", "held1",
	"x2", "y2", "vx2", "vy2", "held2",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
	Errors    []string           `json:"errors,omitempty"`
}

// Save writes <scenario>_<unix>/metadata.json and frames.csv and returns the
// run id.
func (s *Store) Save(scenario string, cfg sim.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", scenario, now.Unix())
	for n := 2; s.exists(runID); n++ {
		runID = fmt.Sprintf("%s_%d_%d", scenario, now.Unix(), n)
	}
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Timestamp: now,
		Seed:      cfg.Seed,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Steps:     result.StepsTaken,
		Metrics:   result.Metrics,
	}
	for _, err := range result.Errors {
		meta.Errors = append(meta.Errors, err.Error())
	}

	err := writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return "", err
	}

	err = writeFile(filepath.Join(runDir, framesFile), func(w io.Writer) error {
		return WriteCSV(w, result.Times, result.Frames)
	})
	if err != nil {
		return "", err
	}

	return runID, nil
}

// writeFile creates path, runs write against it and closes it. A failed
// close is reported like a failed write.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *Store) exists(runID string) bool {
	_, err := os.Stat(filepath.Join(s.baseDir, runID))
	return err == nil
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRun, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]sim.Frame, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnknownRun, runID)
		}
		return nil, nil, err
	}
	defer file.Close()

	return ReadCSV(file)
}

// WriteCSV writes one row per frame under frameHeader.
func WriteCSV(w io.Writer, times []float64, frames []sim.Frame) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(frameHeader); err != nil {
		return err
	}

	for i, f := range frames {
		t := 0.0
		if i < len(times) {
			t = times[i]
		}
		row := []string{formatFloat(t)}
		for _, h := range f.Handles {
			row = append(row,
				formatFloat(h.Position.X), formatFloat(h.Position.Y),
				formatFloat(h.Velocity.X), formatFloat(h.Velocity.Y),
				strconv.FormatBool(h.Held),
			)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses what WriteCSV wrote. Malformed rows are skipped.
func ReadCSV(r io.Reader) ([]sim.Frame, []float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []sim.Frame{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	frames := make([]sim.Frame, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) != len(frameHeader) {
			continue
		}

		vals := make([]float64, 0, 9)
		var held [2]bool
		ok := true
		for j, field := range record {
			switch j {
			case 5, 10:
				b, err := strconv.ParseBool(field)
				if err != nil {
					ok = false
				}
				held[j/10] = b
			default:
				v, err := strconv.ParseFloat(field, 64)
				if err != nil {
					ok = false
				}
				vals = append(vals, v)
			}
		}
		if !ok {
			continue
		}

		times = append(times, vals[0])
		frames = append(frames, sim.Frame{Handles: [2]sim.HandleState{
			{Position: geom.V(vals[1], vals[2]), Velocity: geom.V(vals[3], vals[4]), Held: held[0]},
			{Position: geom.V(vals[5], vals[6]), Velocity: geom.V(vals[7], vals[8]), Held: held[1]},
		}})
	}

	return frames, times, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
