package experiments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pursuit/boarddata"
	"pursuit/engine"
	"pursuit/experiments/metrics"
)

func TestRunGame(t *testing.T) {
	scenario := boarddata.Demo()
	board, err := scenario.Board()
	require.NoError(t, err)

	greedy := metrics.RunConfig{ID: 1, Strategy: "greedy", Goroutines: 1}

	t.Run("plays a full game on the demo board", func(t *testing.T) {
		record, moves := runGame(board, scenario, greedy, 42, 7)

		require.Equal(t, 7, record.ID)
		require.Equal(t, greedy.ID, record.Config)
		require.Equal(t, uint64(42), record.Seed)
		require.GreaterOrEqual(t, record.Turns, 1)
		require.LessOrEqual(t, record.Turns, engine.DefaultMaxTurns)
		require.Positive(t, record.Duration)

		// The final turn carries no detective move when the adversary was
		// trapped before the detectives acted.
		require.NotEmpty(t, moves)
		require.GreaterOrEqual(t, len(moves), record.Turns-1)
		require.LessOrEqual(t, len(moves), record.Turns)
		for i, m := range moves {
			require.Equal(t, record.ID, m.Game)
			require.Equal(t, i+1, m.Turn)
			require.Zero(t, m.Depth, "the greedy strategy searches no plies")
			require.NotEmpty(t, m.Move)
		}
	})

	t.Run("the same seed replays the same game", func(t *testing.T) {
		first, firstMoves := runGame(board, scenario, greedy, BaseSeed, 1)
		second, secondMoves := runGame(board, scenario, greedy, BaseSeed, 1)

		require.Equal(t, first.Captured, second.Captured)
		require.Equal(t, first.Turns, second.Turns)
		require.Equal(t, len(firstMoves), len(secondMoves))
		for i := range firstMoves {
			require.Equal(t, firstMoves[i].Move, secondMoves[i].Move)
		}
	})

	t.Run("a searched configuration reports its effort", func(t *testing.T) {
		search := metrics.RunConfig{ID: 2, Strategy: "search", Goroutines: 2, Depth: 1, Budget: time.Second}

		record, moves := runGame(board, scenario, search, 42, 8)

		require.GreaterOrEqual(t, record.Turns, 1)
		require.NotEmpty(t, moves)
		for _, m := range moves {
			if m.Fallback {
				require.Zero(t, m.Depth)
				continue
			}
			require.Equal(t, 1, m.Depth)
			require.Positive(t, m.Nodes)
		}
	})
}
