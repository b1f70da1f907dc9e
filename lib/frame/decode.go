// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package frame

import (
	"fmt"
	"image"
	"os"

	// Registered decoders for the gallery's supported formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Decode reads and decodes an image file. The format is detected from
// the file contents, not the extension.
func Decode(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer file.Close()

	decoded, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", path, err)
	}
	return decoded, nil
}
