package experiment

import (
	"context"
	"testing"

	"github.com/san-kum/airhockey/internal/config"
)

func TestSweepFriction(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scenario = "wall"
	cfg.Duration = 1000

	results, err := Sweep{Param: "friction", Min: 0, Max: 0.1, Steps: 3}.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Value != 0 || results[2].Value != 0.1 {
		t.Errorf("values = %v, %v", results[0].Value, results[2].Value)
	}

	low, high := results[0].Metrics["kinetic_energy"], results[2].Metrics["kinetic_energy"]
	if low <= high {
		t.Errorf("more friction should lower mean energy: %f <= %f", low, high)
	}
	if cfg.Tuning.Friction != 0.01 {
		t.Error("sweep modified the base config")
	}
}

func TestSweepErrors(t *testing.T) {
	cfg := config.DefaultConfig()

	if _, err := (Sweep{Param: "gravity", Steps: 2}).Run(context.Background(), cfg); err == nil {
		t.Error("expected unknown parameter error")
	}
	if _, err := (Sweep{Param: "friction", Steps: 0}).Run(context.Background(), cfg); err == nil {
		t.Error("expected step count error")
	}
	if _, err := (Sweep{Param: "friction", Min: 2, Max: 3, Steps: 2}).Run(context.Background(), cfg); err == nil {
		t.Error("expected invalid friction error")
	}
}
