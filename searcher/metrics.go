package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarizes one planning call.
type SearchMetric struct {
	Depth    int
	Duration time.Duration
	Nodes    int64
	Branches int64
	Pruned   int64
}

// Collector gathers planner counters. Counters are atomic so sibling
// branches may one day be searched from multiple goroutines without
// touching this code.
type Collector interface {
	Start(depth int)
	AddNode()
	AddBranch()
	AddPruned()
	Complete() SearchMetric
}

type collector struct {
	depth     int
	startTime time.Time
	nodes     atomic.Int64
	branches  atomic.Int64
	pruned    atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(depth int) {
	c.startTime = time.Now()
	c.depth = depth
	c.nodes.Store(0)
	c.branches.Store(0)
	c.pruned.Store(0)
}

func (c *collector) AddNode() {
	c.nodes.Add(1)
}

func (c *collector) AddBranch() {
	c.branches.Add(1)
}

func (c *collector) AddPruned() {
	c.pruned.Add(1)
}

func (c *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:    c.depth,
		Duration: time.Since(c.startTime),
		Nodes:    c.nodes.Load(),
		Branches: c.branches.Load(),
		Pruned:   c.pruned.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (dummyCollector) Start(int)              {}
func (dummyCollector) AddNode()               {}
func (dummyCollector) AddBranch()             {}
func (dummyCollector) AddPruned()             {}
func (dummyCollector) Complete() SearchMetric { return SearchMetric{} }
