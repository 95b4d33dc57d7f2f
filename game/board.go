package game

import (
	"fmt"
	"sort"
)

// MalformedGraphError reports board input that cannot produce a usable
// graph: bad identifiers, edges naming undefined nodes, or a disconnected
// node set. It is fatal at setup; no Board is returned alongside it.
type MalformedGraphError struct {
	Reason string
}

func (e *MalformedGraphError) Error() string {
	return "malformed graph: " + e.Reason
}

// Board is the static transport graph. It owns the node and edge sets and a
// precomputed all-pairs hop-distance table (mode-agnostic). A Board never
// changes after construction, so every component shares one instance
// without synchronization.
type Board struct {
	nodes  []NodeID
	index  map[NodeID]int
	byMode map[Mode]map[NodeID][]NodeID
	union  map[NodeID][]NodeID
	dist   [][]int
}

// NewBoard validates the node and edge sets and precomputes adjacency and
// distances. Edges repeated with the same endpoints and mode are collapsed;
// rejecting them outright is the loader's job.
func NewBoard(nodes []NodeID, edges []Edge) (*Board, error) {
	if len(nodes) == 0 {
		return nil, &MalformedGraphError{Reason: "empty node set"}
	}

	b := &Board{
		nodes:  make([]NodeID, len(nodes)),
		index:  make(map[NodeID]int, len(nodes)),
		byMode: make(map[Mode]map[NodeID][]NodeID, len(AllModes)),
		union:  make(map[NodeID][]NodeID, len(nodes)),
	}
	copy(b.nodes, nodes)
	sort.Slice(b.nodes, func(i, j int) bool { return b.nodes[i] < b.nodes[j] })

	for i, n := range b.nodes {
		if n <= 0 {
			return nil, &MalformedGraphError{Reason: fmt.Sprintf("node identifier %d is not positive", n)}
		}
		if _, ok := b.index[n]; ok {
			return nil, &MalformedGraphError{Reason: fmt.Sprintf("duplicate node identifier %d", n)}
		}
		b.index[n] = i
	}
	for _, m := range AllModes {
		b.byMode[m] = make(map[NodeID][]NodeID)
	}

	for _, e := range edges {
		if _, ok := b.index[e.A]; !ok {
			return nil, &MalformedGraphError{Reason: fmt.Sprintf("edge %d-%d references undefined node %d", e.A, e.B, e.A)}
		}
		if _, ok := b.index[e.B]; !ok {
			return nil, &MalformedGraphError{Reason: fmt.Sprintf("edge %d-%d references undefined node %d", e.A, e.B, e.B)}
		}
		if e.A == e.B {
			return nil, &MalformedGraphError{Reason: fmt.Sprintf("self-loop on node %d", e.A)}
		}
		if _, ok := b.byMode[e.Mode]; !ok {
			return nil, &MalformedGraphError{Reason: fmt.Sprintf("edge %d-%d carries no concrete transport mode", e.A, e.B)}
		}
		b.addEdge(e)
	}

	if reached := b.reachableFrom(b.nodes[0]); reached != len(b.nodes) {
		return nil, &MalformedGraphError{
			Reason: fmt.Sprintf("graph is disconnected: %d of %d nodes reachable from node %d", reached, len(b.nodes), b.nodes[0]),
		}
	}

	b.computeDistances()
	return b, nil
}

func (b *Board) addEdge(e Edge) {
	adj := b.byMode[e.Mode]
	if !containsNode(adj[e.A], e.B) {
		adj[e.A] = insertSorted(adj[e.A], e.B)
	}
	if !containsNode(adj[e.B], e.A) {
		adj[e.B] = insertSorted(adj[e.B], e.A)
	}
	if !containsNode(b.union[e.A], e.B) {
		b.union[e.A] = insertSorted(b.union[e.A], e.B)
	}
	if !containsNode(b.union[e.B], e.A) {
		b.union[e.B] = insertSorted(b.union[e.B], e.A)
	}
}

// Neighbors returns the nodes one hop from n via the given mode, ascending.
// ModeAny yields the union across all modes. Callers treat the result as
// read-only.
func (b *Board) Neighbors(n NodeID, mode Mode) []NodeID {
	if mode == ModeAny {
		return b.union[n]
	}
	return b.byMode[mode][n]
}

// Distance returns the minimum hop count between a and b ignoring modes, or
// -1 when either node is not on the board.
func (b *Board) Distance(from, to NodeID) int {
	i, ok := b.index[from]
	if !ok {
		return -1
	}
	j, ok := b.index[to]
	if !ok {
		return -1
	}
	return b.dist[i][j]
}

// Degree counts the distinct neighbors of n across all modes.
func (b *Board) Degree(n NodeID) int {
	return len(b.union[n])
}

// Nodes returns every node identifier in ascending order. Callers treat the
// result as read-only.
func (b *Board) Nodes() []NodeID {
	return b.nodes
}

func (b *Board) NumNodes() int {
	return len(b.nodes)
}

func (b *Board) Has(n NodeID) bool {
	_, ok := b.index[n]
	return ok
}

// reachableFrom counts nodes reachable from start over the mode union.
func (b *Board) reachableFrom(start NodeID) int {
	visited := map[NodeID]bool{start: true}
	queue := []NodeID{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range b.union[current] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return len(visited)
}

// computeDistances runs a breadth-first search from every node. The board
// is validated as connected before this runs, so every entry is filled.
func (b *Board) computeDistances() {
	size := len(b.nodes)
	b.dist = make([][]int, size)
	for i, start := range b.nodes {
		row := make([]int, size)
		for j := range row {
			row[j] = -1
		}
		row[i] = 0
		queue := []NodeID{start}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			ci := b.index[current]
			for _, next := range b.union[current] {
				ni := b.index[next]
				if row[ni] == -1 {
					row[ni] = row[ci] + 1
					queue = append(queue, next)
				}
			}
		}
		b.dist[i] = row
	}
}

func containsNode(slice []NodeID, n NodeID) bool {
	for _, v := range slice {
		if v == n {
			return true
		}
	}
	return false
}

func insertSorted(slice []NodeID, n NodeID) []NodeID {
	i := sort.Search(len(slice), func(i int) bool { return slice[i] >= n })
	slice = append(slice, 0)
	copy(slice[i+1:], slice[i:])
	slice[i] = n
	return slice
}
