package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLegalMoves(t *testing.T) {
	b := testBoard(t)

	t.Run("lists every unoccupied neighbor ascending under ModeAny", func(t *testing.T) {
		moves := LegalMoves(b, 1, ModeAny, nil)

		require.Equal(t, []NodeID{2, 4, 6}, moves)
	})

	t.Run("excludes destinations occupied by other detectives", func(t *testing.T) {
		moves := LegalMoves(b, 1, ModeAny, []NodeID{2, 6})

		require.Equal(t, []NodeID{4}, moves)
	})

	t.Run("restricts to the disclosed transport mode", func(t *testing.T) {
		moves := LegalMoves(b, 5, ModeUnderground, nil)

		require.Equal(t, []NodeID{2}, moves)
	})

	t.Run("returns an empty set when every neighbor is occupied", func(t *testing.T) {
		moves := LegalMoves(b, 1, ModeAny, []NodeID{2, 4, 6})

		require.Empty(t, moves)
	})

	t.Run("does not treat the mover's own node as occupied", func(t *testing.T) {
		moves := LegalMoves(b, 3, ModeTaxi, []NodeID{3, 4})

		require.Equal(t, []NodeID{2}, moves)
	})
}

func TestJointMoveOrdering(t *testing.T) {
	t.Run("orders lexicographically", func(t *testing.T) {
		require.True(t, JointMove{1, 5}.Less(JointMove{2, 3}))
		require.True(t, JointMove{2, 3}.Less(JointMove{2, 4}))
		require.False(t, JointMove{2, 4}.Less(JointMove{2, 4}))
		require.False(t, JointMove{3, 1}.Less(JointMove{2, 9}))
	})

	t.Run("clones without aliasing", func(t *testing.T) {
		original := JointMove{1, 2, 3}
		clone := original.Clone()
		clone[0] = 9

		require.Equal(t, JointMove{1, 2, 3}, original)
		require.True(t, original.Equal(JointMove{1, 2, 3}))
		require.False(t, original.Equal(clone))
	})
}
