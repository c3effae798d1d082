package cmd

import (
	"testing"

	sim "github.com/desim/desim/sim"
)

func TestRunScenario_ProducesServedCustomers(t *testing.T) {
	cfg := sim.DefaultScenarioConfig()
	cfg.Horizon = 200
	report := RunScenario(cfg)

	if report.Count == 0 {
		t.Fatal("scenario served no customers")
	}
	if report.MeanWait < 0 {
		t.Errorf("negative mean wait: %f", report.MeanWait)
	}
	if report.MeanLength < 0 {
		t.Errorf("negative mean length: %f", report.MeanLength)
	}
}

func TestRunScenario_SameSeedIsReproducible(t *testing.T) {
	cfg := sim.DefaultScenarioConfig()
	cfg.Horizon = 200
	cfg.Discipline = string(sim.Random)

	r1 := RunScenario(cfg)
	r2 := RunScenario(cfg)

	if r1.Count != r2.Count || r1.MeanWait != r2.MeanWait {
		t.Errorf("same seed diverged: (%d, %f) vs (%d, %f)",
			r1.Count, r1.MeanWait, r2.Count, r2.MeanWait)
	}
}

func TestRunScenario_MultipleReplicationsPoolObservations(t *testing.T) {
	cfg := sim.DefaultScenarioConfig()
	cfg.Horizon = 100

	single := RunScenario(cfg)
	cfg.Replications = 3
	pooled := RunScenario(cfg)

	if pooled.Count <= single.Count {
		t.Errorf("3 replications served %d, single served %d; want more", pooled.Count, single.Count)
	}
}
