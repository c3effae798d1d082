package cmd

import (
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/desim/desim/sim"
)

var (
	// CLI flags for the demo scenario
	logLevel     string  // Log verbosity level
	scenarioPath string  // Optional YAML scenario file
	discipline   string  // Queue discipline: fifo, lifo, ranked, random
	arrivalRate  float64 // Mean arrivals per unit time
	serviceRate  float64 // Mean service completions per unit time
	horizon      float64 // Simulated time per replication
	replications int     // Number of independent replications
	seed         int64   // Master seed for all random streams
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "desim",
	Short: "Discrete-event queueing simulation library and demo runner",
}

// runCmd executes the single-server queueing demo using parameters from CLI
// flags, optionally seeded from a YAML scenario file (flags win).
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the single-server queueing scenario",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := sim.DefaultScenarioConfig()
		if scenarioPath != "" {
			loaded, err := sim.LoadScenarioConfig(scenarioPath)
			if err != nil {
				logrus.Fatalf("Unable to read scenario config: %v", err)
			}
			cfg = *loaded
		}
		applyFlagOverrides(cmd, &cfg)
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}

		logrus.Infof("Starting scenario: discipline=%s arrival_rate=%.3f service_rate=%.3f horizon=%.1f replications=%d seed=%d",
			cfg.Discipline, cfg.ArrivalRate, cfg.ServiceRate, cfg.Horizon, cfg.Replications, cfg.Seed)

		report := RunScenario(cfg)
		report.Print()

		logrus.Info("Scenario complete.")
	},
}

// applyFlagOverrides copies explicitly-set flags over the file-loaded config.
func applyFlagOverrides(cmd *cobra.Command, cfg *sim.ScenarioConfig) {
	if cmd.Flags().Changed("discipline") {
		cfg.Discipline = discipline
	}
	if cmd.Flags().Changed("arrival-rate") {
		cfg.ArrivalRate = arrivalRate
	}
	if cmd.Flags().Changed("service-rate") {
		cfg.ServiceRate = serviceRate
	}
	if cmd.Flags().Changed("horizon") {
		cfg.Horizon = horizon
	}
	if cmd.Flags().Changed("replications") {
		cfg.Replications = replications
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
}

// RunScenario simulates a single-server queue with exponential interarrival
// and service times for the configured number of replications, pooling the
// wait-time observations across replications, and returns the final report.
func RunScenario(cfg sim.ScenarioConfig) sim.QueueReport {
	model := sim.NewModel("single-server", cfg.Seed)
	queue := sim.NewQueue[*sim.QObject](model, "wait-line", sim.DisciplineKind(cfg.Discipline))
	model.Register(queue)

	// Injected accumulators survive the per-replication queue clears and are
	// what the report is built from.
	waitStats := sim.NewStatistic()
	lengthStats := sim.NewTimeWeighted(0)
	queue.SetWaitStats(waitStats)
	queue.SetLengthStats(lengthStats)
	queue.SetRandomStream(model.RNG().ForSubsystem("queue-selection"))

	arrivals := model.RNG().ForSubsystem("arrivals")
	services := model.RNG().ForSubsystem("services")

	var endTime float64
	model.RunReplications(cfg.Replications, func(rep int) {
		// Independent replications draw from fresh substreams.
		if rep > 1 {
			arrivals.AdvanceSubstream()
			services.AdvanceSubstream()
		}

		nextArrival := expDraw(arrivals, cfg.ArrivalRate)
		nextDeparture := math.Inf(1)
		serverBusy := false

		for {
			t := math.Min(nextArrival, nextDeparture)
			if t > cfg.Horizon {
				break
			}
			model.AdvanceTo(t)

			if t == nextArrival {
				customer := sim.NewQObject(model.Time(), "")
				queue.Enqueue(customer)
				nextArrival = t + expDraw(arrivals, cfg.ArrivalRate)
			} else {
				serverBusy = false
				nextDeparture = math.Inf(1)
			}

			if !serverBusy {
				if _, ok := queue.RemoveNext(); ok {
					serverBusy = true
					nextDeparture = model.Time() + expDraw(services, cfg.ServiceRate)
				}
			}
		}
		model.AdvanceTo(cfg.Horizon)
		endTime += cfg.Horizon
	})

	return sim.BuildQueueReport(queue.Name(), waitStats, lengthStats, endTime)
}

// expDraw inverts the exponential CDF on a stream draw; mean is 1/rate.
func expDraw(s *sim.Stream, rate float64) float64 {
	return -math.Log(1-s.Uniform()) / rate
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a YAML scenario file")
	runCmd.Flags().StringVar(&discipline, "discipline", string(sim.FIFO), "Queue discipline: fifo, lifo, ranked, random")
	runCmd.Flags().Float64Var(&arrivalRate, "arrival-rate", 0.8, "Mean arrivals per unit time")
	runCmd.Flags().Float64Var(&serviceRate, "service-rate", 1.0, "Mean service completions per unit time")
	runCmd.Flags().Float64Var(&horizon, "horizon", 10000, "Simulated time per replication")
	runCmd.Flags().IntVar(&replications, "replications", 1, "Number of independent replications")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Master seed for all random streams")
	rootCmd.AddCommand(runCmd)
}
