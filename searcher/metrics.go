package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarizes one FindMove call.
type SearchMetric struct {
	StartTime  time.Time
	Duration   time.Duration
	Goroutines int
	Depth      int // deepest fully completed depth, 0 when only the baseline finished
	Nodes      int64
	Prunes     int64
	Fallback   bool
}

// Collector receives search progress. AddNodes and AddPrunes are called by
// the branch workers, so implementations must be safe for concurrent use.
type Collector interface {
	Start(goroutines int)
	AddNodes(n int64)
	AddPrunes(n int64)
	SetDepth(depth int)
	SetFallback()
	Complete() SearchMetric
}

type collector struct {
	startTime  time.Time
	goroutines int
	depth      atomic.Int32
	nodes      atomic.Int64
	prunes     atomic.Int64
	fallback   atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters so one collector can serve every turn of a game.
func (m *collector) Start(goroutines int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.depth.Store(0)
	m.nodes.Store(0)
	m.prunes.Store(0)
	m.fallback.Store(false)
}

func (m *collector) AddNodes(n int64) {
	m.nodes.Add(n)
}

func (m *collector) AddPrunes(n int64) {
	m.prunes.Add(n)
}

func (m *collector) SetDepth(depth int) {
	m.depth.Store(int32(depth))
}

func (m *collector) SetFallback() {
	m.fallback.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		StartTime:  m.startTime,
		Duration:   time.Since(m.startTime),
		Goroutines: m.goroutines,
		Depth:      int(m.depth.Load()),
		Nodes:      m.nodes.Load(),
		Prunes:     m.prunes.Load(),
		Fallback:   m.fallback.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines int)   {}
func (m *dummyCollector) AddNodes(n int64)       {}
func (m *dummyCollector) AddPrunes(n int64)      {}
func (m *dummyCollector) SetDepth(depth int)     {}
func (m *dummyCollector) SetFallback()           {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
