package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into a scratch directory so the writer's
// relative results tree lands there.
func chdirTemp(t *testing.T) {
	t.Helper()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(cwd))
	})
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	t.Run("creates a timestamped directory per run", func(t *testing.T) {
		chdirTemp(t)

		w, err := NewWriter("depth")
		require.NoError(t, err)

		info, err := os.Stat(w.Dir())
		require.NoError(t, err)
		require.True(t, info.IsDir())
		require.Equal(t, "depth", filepath.Base(filepath.Dir(w.Dir())))
	})

	t.Run("round-trips run configs", func(t *testing.T) {
		chdirTemp(t)

		w, err := NewWriter("strategies")
		require.NoError(t, err)
		require.NoError(t, w.WriteRunConfigs([]RunConfig{
			{ID: 1, Strategy: "greedy", Goroutines: 1},
			{ID: 2, Strategy: "search", Goroutines: 8, Depth: 2, Budget: 2 * time.Second},
		}))

		rows := readCSV(t, filepath.Join(w.Dir(), "run_configs.csv"))
		require.Equal(t, [][]string{
			{"id", "strategy", "goroutines", "depth", "budget"},
			{"1", "greedy", "1", "0", "0s"},
			{"2", "search", "8", "2", "2s"},
		}, rows)
	})

	t.Run("round-trips game records", func(t *testing.T) {
		chdirTemp(t)

		w, err := NewWriter("strategies")
		require.NoError(t, err)
		require.NoError(t, w.WriteGameRecords([]GameRecord{
			{ID: 1, Config: 2, Seed: 1000, Captured: true, Turns: 7, Duration: 1500 * time.Millisecond},
		}))

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Equal(t, [][]string{
			{"id", "config", "seed", "captured", "turns", "duration"},
			{"1", "2", "1000", "true", "7", "1.5s"},
		}, rows)
	})

	t.Run("round-trips move records", func(t *testing.T) {
		chdirTemp(t)

		w, err := NewWriter("strategies")
		require.NoError(t, err)
		require.NoError(t, w.WriteMoveRecords([]MoveRecord{
			{
				Game:    1,
				Turn:    3,
				Move:    "[2 7 19]",
				Score:   -4.25,
				Depth:   2,
				Nodes:   1234,
				Prunes:  56,
				Elapsed: 20 * time.Millisecond,
			},
		}))

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Equal(t, [][]string{
			{"game", "turn", "move", "score", "depth", "nodes", "prunes", "fallback", "elapsed"},
			{"1", "3", "[2 7 19]", "-4.25", "2", "1234", "56", "false", "20ms"},
		}, rows)
	})
}
