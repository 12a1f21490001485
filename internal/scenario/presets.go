package scenario

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/airhockey/internal/arena"
	"github.com/san-kum/airhockey/internal/geom"
	"github.com/san-kum/airhockey/internal/handle"
)

var ErrUnknownScenario = errors.New("scenario: unknown scenario")

// Pointer ids used by the presets. Keyboard and mouse pointers in the live
// view use their own ids.
const (
	pointerA handle.PointerID = 1
	pointerB handle.PointerID = 2
)

// Presets are built for the default arena; start positions come from it.
var Presets = map[string]func() Scenario{
	"idle": func() Scenario {
		return Scenario{
			Name:        "idle",
			Description: "Both handles stay at rest",
		}
	},
	"wall": func() Scenario {
		return Scenario{
			Name:        "wall",
			Description: "Handle 1 launched at full speed into the right wall",
			Launch:      [2]geom.Vec2{geom.V(5, 0), geom.Zero},
		}
	},
	"rally": func() Scenario {
		return Scenario{
			Name:        "rally",
			Description: "Both handles launched at each other slightly off axis",
			Launch:      [2]geom.Vec2{geom.V(0.4, -3), geom.V(-0.4, 3)},
			Jitter:      0.2,
		}
	},
	"flick": func() Scenario {
		start := arena.Default().StartingPositions()[handle.One]
		return Scenario{
			Name:        "flick",
			Description: "Pointer drags handle 1 toward handle 2 and lets go",
			Events:      Drag(handle.One, pointerA, start, start.Add(geom.V(30, -200)), 100, 150, 6),
		}
	},
	"pin": func() Scenario {
		start := arena.Default().StartingPositions()[handle.Two]
		return Scenario{
			Name:        "pin",
			Description: "Handle 2 held still while handle 1 is launched into it",
			Launch:      [2]geom.Vec2{geom.V(0, -4), geom.Zero},
			Events:      Hold(handle.Two, pointerB, start, 0, 3000),
		}
	},
}

func Get(name string) (Scenario, error) {
	fn, ok := Presets[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %s", ErrUnknownScenario, name)
	}
	return fn(), nil
}

func List() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
