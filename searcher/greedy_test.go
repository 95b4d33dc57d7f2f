package searcher

import (
	"testing"

	"pursuit/belief"
	"pursuit/game"

	"github.com/stretchr/testify/require"
)

func TestGreedy(t *testing.T) {
	w := DefaultWeights()

	t.Run("takes an adjacent capture", func(t *testing.T) {
		b := pathBoard(t)

		move, score, err := Greedy(b, belief.NewCertain(3), []game.NodeID{2}, w)

		require.NoError(t, err)
		require.Equal(t, game.JointMove{3}, move)
		require.Equal(t, CaptureScore, score)
	})

	t.Run("blocked detective holds position", func(t *testing.T) {
		b := pathBoard(t)

		move, score, err := Greedy(b, belief.NewCertain(5), []game.NodeID{1, 2}, w)

		require.NoError(t, err)
		require.Equal(t, game.JointMove{1, 3}, move)
		require.InDelta(t, -2, score, 1e-12)
	})

	t.Run("assigns detectives in index order", func(t *testing.T) {
		b := pathBoard(t)

		move, score, err := Greedy(b, belief.NewCertain(3), []game.NodeID{2, 4}, w)

		require.NoError(t, err)
		require.Equal(t, game.JointMove{3, 5}, move)
		require.Equal(t, CaptureScore, score)
	})

	t.Run("returns an error when every detective is blocked", func(t *testing.T) {
		b := triangleBoard(t)

		_, _, err := Greedy(b, belief.NewCertain(1), []game.NodeID{1, 2, 3}, w)

		require.ErrorIs(t, err, game.ErrNoLegalMoves)
	})
}
