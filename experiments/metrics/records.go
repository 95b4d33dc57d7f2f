// Package metrics defines the experiment record rows and their CSV writer.
package metrics

import "time"

// RunConfig describes one engine configuration under test.
type RunConfig struct {
	ID         int
	Strategy   string // "search" or "greedy"
	Goroutines int
	Depth      int
	Budget     time.Duration
}

// GameRecord summarizes one self-play game.
type GameRecord struct {
	ID       int
	Config   int // RunConfig.ID
	Seed     uint64
	Captured bool
	Turns    int
	Duration time.Duration
}

// MoveRecord captures the search behind one joint move.
type MoveRecord struct {
	Game     int // GameRecord.ID
	Turn     int
	Move     string
	Score    float64
	Depth    int
	Nodes    int64
	Prunes   int64
	Fallback bool
	Elapsed  time.Duration
}
