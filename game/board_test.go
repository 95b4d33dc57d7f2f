package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testBoard builds a six-node ring of taxi edges with a bus chord (1-4) and
// an underground chord (2-5).
func testBoard(t *testing.T) *Board {
	t.Helper()
	b, err := NewBoard(
		[]NodeID{1, 2, 3, 4, 5, 6},
		[]Edge{
			{A: 1, B: 2, Mode: ModeTaxi},
			{A: 2, B: 3, Mode: ModeTaxi},
			{A: 3, B: 4, Mode: ModeTaxi},
			{A: 4, B: 5, Mode: ModeTaxi},
			{A: 5, B: 6, Mode: ModeTaxi},
			{A: 6, B: 1, Mode: ModeTaxi},
			{A: 1, B: 4, Mode: ModeBus},
			{A: 2, B: 5, Mode: ModeUnderground},
		},
	)
	require.NoError(t, err)
	return b
}

func TestNewBoard(t *testing.T) {
	t.Run("builds a connected multi-mode board", func(t *testing.T) {
		b := testBoard(t)

		require.Equal(t, 6, b.NumNodes())
		require.Equal(t, []NodeID{1, 2, 3, 4, 5, 6}, b.Nodes(), "Nodes should be ascending")
		require.True(t, b.Has(3))
		require.False(t, b.Has(7))
	})

	t.Run("collapses a repeated identical edge instead of double-counting it", func(t *testing.T) {
		b, err := NewBoard(
			[]NodeID{1, 2},
			[]Edge{
				{A: 1, B: 2, Mode: ModeTaxi},
				{A: 2, B: 1, Mode: ModeTaxi},
			},
		)

		require.NoError(t, err)
		require.Equal(t, []NodeID{2}, b.Neighbors(1, ModeTaxi))
		require.Equal(t, 1, b.Degree(1))
	})

	t.Run("rejects an empty node set", func(t *testing.T) {
		_, err := NewBoard(nil, nil)

		var malformed *MalformedGraphError
		require.ErrorAs(t, err, &malformed)
	})

	t.Run("rejects an edge referencing an undefined node", func(t *testing.T) {
		_, err := NewBoard(
			[]NodeID{1, 2},
			[]Edge{
				{A: 1, B: 2, Mode: ModeTaxi},
				{A: 2, B: 9, Mode: ModeTaxi},
			},
		)

		var malformed *MalformedGraphError
		require.ErrorAs(t, err, &malformed)
		require.Contains(t, malformed.Reason, "undefined node 9")
	})

	t.Run("rejects a disconnected graph", func(t *testing.T) {
		_, err := NewBoard(
			[]NodeID{1, 2, 3, 4},
			[]Edge{
				{A: 1, B: 2, Mode: ModeTaxi},
				{A: 3, B: 4, Mode: ModeTaxi},
			},
		)

		var malformed *MalformedGraphError
		require.ErrorAs(t, err, &malformed)
		require.Contains(t, malformed.Reason, "disconnected")
	})

	t.Run("rejects duplicate node identifiers", func(t *testing.T) {
		_, err := NewBoard(
			[]NodeID{1, 2, 2},
			[]Edge{{A: 1, B: 2, Mode: ModeTaxi}},
		)

		var malformed *MalformedGraphError
		require.ErrorAs(t, err, &malformed)
	})

	t.Run("rejects a non-positive node identifier", func(t *testing.T) {
		_, err := NewBoard(
			[]NodeID{0, 1},
			[]Edge{{A: 0, B: 1, Mode: ModeTaxi}},
		)

		var malformed *MalformedGraphError
		require.ErrorAs(t, err, &malformed)
	})

	t.Run("rejects a self-loop", func(t *testing.T) {
		_, err := NewBoard(
			[]NodeID{1, 2},
			[]Edge{
				{A: 1, B: 2, Mode: ModeTaxi},
				{A: 1, B: 1, Mode: ModeTaxi},
			},
		)

		var malformed *MalformedGraphError
		require.ErrorAs(t, err, &malformed)
	})

	t.Run("rejects an edge without a concrete mode", func(t *testing.T) {
		_, err := NewBoard(
			[]NodeID{1, 2},
			[]Edge{{A: 1, B: 2, Mode: ModeAny}},
		)

		var malformed *MalformedGraphError
		require.ErrorAs(t, err, &malformed)
	})
}

func TestNeighbors(t *testing.T) {
	b := testBoard(t)

	t.Run("filters by transport mode", func(t *testing.T) {
		require.Equal(t, []NodeID{2, 6}, b.Neighbors(1, ModeTaxi))
		require.Equal(t, []NodeID{4}, b.Neighbors(1, ModeBus))
		require.Empty(t, b.Neighbors(1, ModeUnderground))
	})

	t.Run("unions all modes ascending for ModeAny", func(t *testing.T) {
		require.Equal(t, []NodeID{2, 4, 6}, b.Neighbors(1, ModeAny))
		require.Equal(t, []NodeID{1, 3, 5}, b.Neighbors(2, ModeAny))
	})
}

func TestDegree(t *testing.T) {
	b := testBoard(t)

	require.Equal(t, 3, b.Degree(1), "ring neighbors plus the bus chord")
	require.Equal(t, 2, b.Degree(3), "ring neighbors only")
}

func TestDistance(t *testing.T) {
	b := testBoard(t)

	t.Run("uses the shortest hop count across modes", func(t *testing.T) {
		require.Equal(t, 1, b.Distance(1, 4), "bus chord beats three taxi hops")
		require.Equal(t, 2, b.Distance(1, 3))
		require.Equal(t, 3, b.Distance(3, 6))
	})

	t.Run("is zero on the diagonal and symmetric for every pair", func(t *testing.T) {
		for _, a := range b.Nodes() {
			require.Equal(t, 0, b.Distance(a, a))
			for _, c := range b.Nodes() {
				require.Equal(t, b.Distance(a, c), b.Distance(c, a))
			}
		}
	})

	t.Run("satisfies the triangle inequality for every triple", func(t *testing.T) {
		nodes := b.Nodes()
		for _, a := range nodes {
			for _, m := range nodes {
				for _, c := range nodes {
					require.LessOrEqual(t, b.Distance(a, c), b.Distance(a, m)+b.Distance(m, c))
				}
			}
		}
	})

	t.Run("returns -1 for a node that is not on the board", func(t *testing.T) {
		require.Equal(t, -1, b.Distance(1, 42))
		require.Equal(t, -1, b.Distance(42, 1))
	})
}
