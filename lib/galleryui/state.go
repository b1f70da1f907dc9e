// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package galleryui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
)

// FilterState is the view state persisted across runs: the filter
// query and the name of the selected item. It stands in for a
// shareable URL fragment; restoring it reopens the gallery where the
// user left it.
type FilterState struct {
	Query        string `cbor:"query"`
	SelectedName string `cbor:"selected_name"`
}

// stateFileName is the persisted state file under the user cache
// directory.
const stateFileName = "state.cbor"

// DefaultStatePath returns the state file location under the user
// cache directory.
func DefaultStatePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "lumen", stateFileName), nil
}

// LoadState reads a persisted filter state. A missing file returns
// the zero state without error.
func LoadState(path string) (FilterState, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return FilterState{}, nil
	}
	if err != nil {
		return FilterState{}, fmt.Errorf("reading state: %w", err)
	}

	var state FilterState
	if err := cbor.Unmarshal(data, &state); err != nil {
		return FilterState{}, fmt.Errorf("decoding state: %w", err)
	}
	return state, nil
}

// SaveState writes the filter state, creating parent directories as
// needed. The write is atomic so an interrupted save never leaves a
// truncated file.
func SaveState(path string, state FilterState) error {
	data, err := cbor.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	temp := path + ".tmp"
	if err := os.WriteFile(temp, data, 0o644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	if err := os.Rename(temp, path); err != nil {
		os.Remove(temp)
		return fmt.Errorf("committing state: %w", err)
	}
	return nil
}
