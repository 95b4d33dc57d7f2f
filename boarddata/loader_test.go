package boarddata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"pursuit/game"
)

const validScenario = `
name: test-square
nodes:
  - {id: 1, x: 0, y: 0}
  - {id: 2, x: 100, y: 0}
  - {id: 3, x: 100, y: 100}
  - {id: 4, x: 0, y: 100}
edges:
  - {a: 1, b: 2, mode: taxi}
  - {a: 2, b: 3, mode: taxi}
  - {a: 3, b: 4, mode: taxi}
  - {a: 4, b: 1, mode: taxi}
  - {a: 1, b: 3, mode: underground}
detectives: [1]
adversary: 3
reveal_turns: [2, 4]
`

func TestParse(t *testing.T) {
	t.Run("accepts a valid scenario", func(t *testing.T) {
		s, err := Parse([]byte(validScenario))

		require.NoError(t, err)
		require.Equal(t, "test-square", s.Name)
		require.Len(t, s.Nodes, 4)
		require.Len(t, s.Edges, 5)
		require.Equal(t, []game.NodeID{1}, s.Detectives)
		require.Equal(t, game.NodeID(3), s.Adversary)
		require.Equal(t, []int{2, 4}, s.RevealTurns)
	})

	t.Run("rejects invalid scenarios", func(t *testing.T) {
		cases := map[string]string{
			"malformed yaml": "nodes: [",
			"no nodes": `
nodes: []
detectives: [1]
adversary: 2
`,
			"non-positive node id": `
nodes: [{id: 0, x: 0, y: 0}, {id: 2, x: 1, y: 0}]
edges: [{a: 0, b: 2, mode: taxi}]
detectives: [0]
adversary: 2
`,
			"duplicate node id": `
nodes: [{id: 1, x: 0, y: 0}, {id: 1, x: 1, y: 0}]
detectives: [1]
adversary: 1
`,
			"unknown transport mode": `
nodes: [{id: 1, x: 0, y: 0}, {id: 2, x: 1, y: 0}]
edges: [{a: 1, b: 2, mode: tram}]
detectives: [1]
adversary: 2
`,
			"edge references an unlisted node": `
nodes: [{id: 1, x: 0, y: 0}, {id: 2, x: 1, y: 0}]
edges: [{a: 1, b: 3, mode: taxi}]
detectives: [1]
adversary: 2
`,
			"self-loop": `
nodes: [{id: 1, x: 0, y: 0}, {id: 2, x: 1, y: 0}]
edges: [{a: 1, b: 1, mode: taxi}]
detectives: [1]
adversary: 2
`,
			"duplicate edge": `
nodes: [{id: 1, x: 0, y: 0}, {id: 2, x: 1, y: 0}]
edges: [{a: 1, b: 2, mode: taxi}, {a: 1, b: 2, mode: taxi}]
detectives: [1]
adversary: 2
`,
			"duplicate edge reversed": `
nodes: [{id: 1, x: 0, y: 0}, {id: 2, x: 1, y: 0}]
edges: [{a: 1, b: 2, mode: taxi}, {a: 2, b: 1, mode: taxi}]
detectives: [1]
adversary: 2
`,
			"no detectives": `
nodes: [{id: 1, x: 0, y: 0}, {id: 2, x: 1, y: 0}]
edges: [{a: 1, b: 2, mode: taxi}]
detectives: []
adversary: 2
`,
			"detectives share a node": `
nodes: [{id: 1, x: 0, y: 0}, {id: 2, x: 1, y: 0}]
edges: [{a: 1, b: 2, mode: taxi}]
detectives: [1, 1]
adversary: 2
`,
			"detective on an unlisted node": `
nodes: [{id: 1, x: 0, y: 0}, {id: 2, x: 1, y: 0}]
edges: [{a: 1, b: 2, mode: taxi}]
detectives: [9]
adversary: 2
`,
			"missing adversary": `
nodes: [{id: 1, x: 0, y: 0}, {id: 2, x: 1, y: 0}]
edges: [{a: 1, b: 2, mode: taxi}]
detectives: [1]
`,
			"adversary on an unlisted node": `
nodes: [{id: 1, x: 0, y: 0}, {id: 2, x: 1, y: 0}]
edges: [{a: 1, b: 2, mode: taxi}]
detectives: [1]
adversary: 9
`,
			"adversary on a detective": `
nodes: [{id: 1, x: 0, y: 0}, {id: 2, x: 1, y: 0}]
edges: [{a: 1, b: 2, mode: taxi}]
detectives: [1]
adversary: 1
`,
			"non-positive reveal turn": `
nodes: [{id: 1, x: 0, y: 0}, {id: 2, x: 1, y: 0}]
edges: [{a: 1, b: 2, mode: taxi}]
detectives: [1]
adversary: 2
reveal_turns: [0]
`,
			"duplicate reveal turn": `
nodes: [{id: 1, x: 0, y: 0}, {id: 2, x: 1, y: 0}]
edges: [{a: 1, b: 2, mode: taxi}]
detectives: [1]
adversary: 2
reveal_turns: [3, 3]
`,
		}
		for name, data := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := Parse([]byte(data))

				require.Error(t, err)
			})
		}
	})

	t.Run("accepts an empty reveal schedule", func(t *testing.T) {
		s, err := Parse([]byte(`
nodes: [{id: 1, x: 0, y: 0}, {id: 2, x: 1, y: 0}]
edges: [{a: 1, b: 2, mode: taxi}]
detectives: [1]
adversary: 2
`))

		require.NoError(t, err)
		require.Empty(t, s.RevealTurns)
	})

	t.Run("accepts the same pair under two modes", func(t *testing.T) {
		_, err := Parse([]byte(`
nodes: [{id: 1, x: 0, y: 0}, {id: 2, x: 1, y: 0}]
edges: [{a: 1, b: 2, mode: taxi}, {a: 1, b: 2, mode: bus}]
detectives: [1]
adversary: 2
`))

		require.NoError(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Run("reads a scenario file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scenario.yaml")
		require.NoError(t, os.WriteFile(path, []byte(validScenario), 0o644))

		s, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, "test-square", s.Name)
	})

	t.Run("reports a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

		require.Error(t, err)
	})
}

func TestScenarioBoard(t *testing.T) {
	t.Run("builds the transport graph", func(t *testing.T) {
		s, err := Parse([]byte(validScenario))
		require.NoError(t, err)

		b, err := s.Board()

		require.NoError(t, err)
		require.Equal(t, 4, b.NumNodes())
		require.Equal(t, 1, b.Distance(1, 3)) // underground chord
		require.Equal(t, []game.NodeID{3}, b.Neighbors(1, game.ModeUnderground))
	})

	t.Run("reports a disconnected graph", func(t *testing.T) {
		s, err := Parse([]byte(`
nodes: [{id: 1, x: 0, y: 0}, {id: 2, x: 1, y: 0}, {id: 3, x: 2, y: 0}]
edges: [{a: 1, b: 2, mode: taxi}]
detectives: [1]
adversary: 2
`))
		require.NoError(t, err)

		_, err = s.Board()

		var malformed *game.MalformedGraphError
		require.ErrorAs(t, err, &malformed)
	})
}

func TestLayout(t *testing.T) {
	t.Run("finds the nearest node", func(t *testing.T) {
		s, err := Parse([]byte(validScenario))
		require.NoError(t, err)

		l := s.Layout()

		node, ok := l.NearestNode(90, 10)
		require.True(t, ok)
		require.Equal(t, game.NodeID(2), node)

		node, ok = l.NearestNode(-5, -5)
		require.True(t, ok)
		require.Equal(t, game.NodeID(1), node)
	})

	t.Run("returns node positions", func(t *testing.T) {
		s, err := Parse([]byte(validScenario))
		require.NoError(t, err)

		l := s.Layout()

		p, ok := l.Point(2)
		require.True(t, ok)
		require.Equal(t, orb.Point{100, 0}, p)
		_, ok = l.Point(99)
		require.False(t, ok)
	})

	t.Run("empty layout has no nearest node", func(t *testing.T) {
		l := NewLayout(nil)

		_, ok := l.NearestNode(0, 0)

		require.False(t, ok)
		require.Zero(t, l.NumNodes())
	})
}
