package boarddata

import (
	_ "embed"
	"fmt"
)

//go:embed demo.yaml
var demoYAML []byte

// Demo returns the embedded demo scenario: a 4x6 grid district with three
// detectives and the canonical reveal schedule. Each call parses a fresh
// copy so callers may modify the result.
func Demo() *Scenario {
	s, err := Parse(demoYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded demo scenario is invalid: %v", err))
	}
	return s
}
