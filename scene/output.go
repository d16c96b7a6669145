// seehuhn.de/go/treescene - a procedural tree scene generator
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package scene

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
)

var (
	// ErrCreateDir indicates that the output directory could not be created.
	ErrCreateDir = errors.New("cannot create output directory")

	// ErrWriteImage indicates that the image could not be encoded or
	// written.
	ErrWriteImage = errors.New("cannot write image")
)

// EnsureDir creates the parent directory of path, including missing
// ancestors. It is not an error if the directory already exists.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w %q: %w", ErrCreateDir, dir, err)
	}
	return nil
}

// Encode writes img to w as a JPEG image of the given quality.
func Encode(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

// WriteImage encodes img as JPEG into the file at path, replacing any
// existing file. The parent directory must exist. A partially written
// file is left in place if encoding fails.
func WriteImage(path string, img image.Image, quality int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteImage, err)
	}
	encodeErr := Encode(f, img, quality)
	closeErr := f.Close()
	if encodeErr != nil {
		return fmt.Errorf("%w %q: %w", ErrWriteImage, path, encodeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("%w %q: %w", ErrWriteImage, path, closeErr)
	}
	return nil
}
