package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/depgraphs/pkg/deps"
)

type outEntry struct {
	Requires []string `json:"requires,omitempty"`
}

// WriteJSON encodes an index as a JSON object and writes it to w.
//
// Packages are written in index order, one per line, each with only its
// "requires" field (omitted when empty). The output can be read back with
// [ReadPackages].
func WriteJSON(idx *deps.Index, w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("{")

	first := true
	for p := range idx.All() {
		key, err := json.Marshal(p.Name)
		if err != nil {
			return fmt.Errorf("encode %s: %w", p.Name, err)
		}
		val, err := json.Marshal(outEntry{Requires: p.Requires})
		if err != nil {
			return fmt.Errorf("encode %s: %w", p.Name, err)
		}
		if !first {
			bw.WriteString(",")
		}
		first = false
		bw.WriteString("\n  ")
		bw.Write(key)
		bw.WriteString(": ")
		bw.Write(val)
	}

	if !first {
		bw.WriteString("\n")
	}
	bw.WriteString("}\n")
	return bw.Flush()
}
