// Package source reads listening-history exports: json documents with
// a top-level "users" mapping of username to track-play records.
package source

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vvmm/scrobbledb/data"
)

func Load(filename string) (*data.Source, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening source file '%s': %w", filename, err)
	}
	defer f.Close()

	var src data.Source
	dec := json.NewDecoder(f)
	if err := dec.Decode(&src); err != nil {
		return nil, fmt.Errorf("error decoding source file '%s': %w", filename, err)
	}

	if src.Users == nil {
		return nil, fmt.Errorf("source file '%s' has no 'users' mapping", filename)
	}

	return &src, nil
}
