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
	"bytes"
	"errors"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// smallConfig returns the default scene scaled down, writing into dir.
func smallConfig(dir string) Config {
	cfg := DefaultConfig()
	cfg.Width = 300
	cfg.Height = 200
	cfg.OutputPath = filepath.Join(dir, "tree.jpg")
	return cfg
}

func TestNewRandIsReproducible(t *testing.T) {
	a := NewRand(7)
	b := NewRand(7)
	for i := range 100 {
		if x, y := a.Uint64(), b.Uint64(); x != y {
			t.Fatalf("value %d differs: %d != %d", i, x, y)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	cfg := smallConfig(t.TempDir())

	img1 := Render(&cfg, NewRand(42), nil).Image()
	img2 := Render(&cfg, NewRand(42), nil).Image()
	if !bytes.Equal(img1.Pix, img2.Pix) {
		t.Error("same seed gave different images")
	}

	img3 := Render(&cfg, NewRand(43), nil).Image()
	if bytes.Equal(img1.Pix, img3.Pix) {
		t.Error("different seeds gave identical images")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	dir := t.TempDir()
	cfg1 := smallConfig(filepath.Join(dir, "a"))
	cfg2 := smallConfig(filepath.Join(dir, "b"))

	if err := Generate(&cfg1, NewRand(1), nil); err != nil {
		t.Fatal(err)
	}
	if err := Generate(&cfg2, NewRand(1), nil); err != nil {
		t.Fatal(err)
	}

	data1, err := os.ReadFile(cfg1.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	data2, err := os.ReadFile(cfg2.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data1, data2) {
		t.Error("same seed gave different files")
	}
}

func TestGenerateCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deeper")
	cfg := smallConfig(dir)

	if err := Generate(&cfg, NewRand(1), nil); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", dir)
	}
}

func TestGenerateOverwrites(t *testing.T) {
	cfg := smallConfig(t.TempDir())

	if err := Generate(&cfg, NewRand(1), nil); err != nil {
		t.Fatal(err)
	}
	if err := Generate(&cfg, NewRand(2), nil); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(cfg.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	var want bytes.Buffer
	err = Encode(&want, Render(&cfg, NewRand(2), nil).Image(), cfg.Quality)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want.Bytes()) {
		t.Error("file does not hold the second image")
	}
}

func TestGenerateDefaultSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputPath = filepath.Join(t.TempDir(), "tree.jpg")

	if err := Generate(&cfg, nil, nil); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(cfg.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	imgCfg, err := jpeg.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if imgCfg.Width != 1200 || imgCfg.Height != 800 {
		t.Errorf("image size %dx%d, want 1200x800", imgCfg.Width, imgCfg.Height)
	}
}

func TestGenerateInvalidConfig(t *testing.T) {
	cfg := smallConfig(t.TempDir())
	cfg.Quality = 0

	err := Generate(&cfg, NewRand(1), nil)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Generate() = %v, want %v", err, ErrInvalidConfig)
	}
	if _, err := os.Stat(cfg.OutputPath); !os.IsNotExist(err) {
		t.Errorf("output file exists after failed run: %v", err)
	}
}

func TestGenerateBadDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := smallConfig(filepath.Join(blocker, "sub"))
	err := Generate(&cfg, NewRand(1), nil)
	if !errors.Is(err, ErrCreateDir) {
		t.Errorf("Generate() = %v, want %v", err, ErrCreateDir)
	}
}

func TestGenerateLogs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	cfg := smallConfig(t.TempDir())

	if err := Generate(&cfg, NewRand(1), zap.New(core)); err != nil {
		t.Fatal(err)
	}

	written := logs.FilterMessage("image written").All()
	if len(written) != 1 {
		t.Fatalf("got %d \"image written\" entries, want 1", len(written))
	}
	if path := written[0].ContextMap()["path"]; path != cfg.OutputPath {
		t.Errorf("logged path %v, want %q", path, cfg.OutputPath)
	}
	if n := logs.FilterMessage("canopy layer painted").Len(); n != len(cfg.Layout.CanopyLayers) {
		t.Errorf("got %d canopy log entries, want %d", n, len(cfg.Layout.CanopyLayers))
	}
}
