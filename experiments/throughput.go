package experiments

import (
	"time"

	"pursuit/experiments/metrics"
)

// RunParallelismThroughput measures how search throughput scales with the
// worker count. Each move record carries its node count and elapsed time;
// nodes per second is computed offline from the CSV.
func RunParallelismThroughput() {
	const games = 5 // Per configuration
	const budget = 250 * time.Millisecond

	configs := []metrics.RunConfig{
		{ID: 1, Strategy: "search", Goroutines: 1, Depth: 3, Budget: budget},
		{ID: 2, Strategy: "search", Goroutines: 2, Depth: 3, Budget: budget},
		{ID: 3, Strategy: "search", Goroutines: 4, Depth: 3, Budget: budget},
		{ID: 4, Strategy: "search", Goroutines: 8, Depth: 3, Budget: budget},
		{ID: 5, Strategy: "search", Goroutines: 16, Depth: 3, Budget: budget},
		{ID: 6, Strategy: "search", Goroutines: 32, Depth: 3, Budget: budget},
	}

	runExperiment("throughput", configs, games)
}
