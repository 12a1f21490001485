package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/airhockey/internal/geom"
	"github.com/san-kum/airhockey/internal/handle"
)

var ErrInvalidScript = errors.New("scenario: invalid script")

// script is the YAML form of a Scenario. Handles are numbered 1 and 2.
type script struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Jitter      float64        `yaml:"jitter"`
	Launch      []scriptVector `yaml:"launch"`
	Events      []scriptEvent  `yaml:"events"`
	Drags       []scriptDrag   `yaml:"drags"`
}

type scriptVector struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type scriptEvent struct {
	At      float64 `yaml:"at"`
	Kind    string  `yaml:"kind"`
	Handle  int     `yaml:"handle"`
	Pointer int     `yaml:"pointer"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
}

type scriptDrag struct {
	Handle   int          `yaml:"handle"`
	Pointer  int          `yaml:"pointer"`
	From     scriptVector `yaml:"from"`
	To       scriptVector `yaml:"to"`
	Start    float64      `yaml:"start"`
	Duration float64      `yaml:"duration"`
	Steps    int          `yaml:"steps"`
}

// IsFile reports whether name refers to a script file rather than a preset.
func IsFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Resolve loads name as a script file when it looks like one, otherwise as
// a preset.
func Resolve(name string) (Scenario, error) {
	if IsFile(name) {
		return LoadFile(name)
	}
	return Get(name)
}

// LoadFile loads a scenario from a YAML script.
func LoadFile(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, err
	}
	return Parse(data, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
}

// Parse decodes a YAML script. name is used when the script has none.
func Parse(data []byte, name string) (Scenario, error) {
	var sc script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}

	out := Scenario{
		Name:        sc.Name,
		Description: sc.Description,
		Jitter:      sc.Jitter,
	}
	if out.Name == "" {
		out.Name = name
	}

	if len(sc.Launch) > 2 {
		return Scenario{}, fmt.Errorf("%w: %d launch velocities for 2 handles", ErrInvalidScript, len(sc.Launch))
	}
	for i, v := range sc.Launch {
		out.Launch[i] = geom.V(v.X, v.Y)
	}

	for i, e := range sc.Events {
		ev, err := e.event()
		if err != nil {
			return Scenario{}, fmt.Errorf("%w: event %d: %v", ErrInvalidScript, i+1, err)
		}
		out.Events = append(out.Events, ev)
	}

	for i, d := range sc.Drags {
		id, err := handleID(d.Handle)
		if err != nil {
			return Scenario{}, fmt.Errorf("%w: drag %d: %v", ErrInvalidScript, i+1, err)
		}
		out.Events = append(out.Events, Drag(id, handle.PointerID(d.Pointer),
			geom.V(d.From.X, d.From.Y), geom.V(d.To.X, d.To.Y), d.Start, d.Duration, d.Steps)...)
	}

	return out, nil
}

func (e scriptEvent) event() (Event, error) {
	ev := Event{
		At:       e.At,
		Pointer:  handle.PointerID(e.Pointer),
		Position: geom.V(e.X, e.Y),
	}
	switch strings.ToLower(e.Kind) {
	case "down":
		id, err := handleID(e.Handle)
		if err != nil {
			return Event{}, err
		}
		ev.Kind, ev.Handle = Down, id
	case "move":
		ev.Kind = Move
	case "up":
		ev.Kind = Up
	default:
		return Event{}, fmt.Errorf("unknown kind %q", e.Kind)
	}
	return ev, nil
}

func handleID(n int) (handle.ID, error) {
	switch n {
	case 1:
		return handle.One, nil
	case 2:
		return handle.Two, nil
	default:
		return 0, fmt.Errorf("handle must be 1 or 2, got %d", n)
	}
}
