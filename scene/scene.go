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

// Package scene paints a stylized tree: a sky gradient, grassy ground, a
// trunk, a canopy built from layers of randomly scattered leaves, and a
// few sunlit highlights.
//
// The drawing passes run in a fixed order on a single canvas, each one
// painting over the previous ones. All randomness comes from the
// *rand.Rand passed in by the caller, so a fixed seed reproduces an image
// exactly.
package scene

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"seehuhn.de/go/treescene/canvas"
)

// NewRand returns a random source which always produces the same
// sequence for the same seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewUnseededRand returns a randomly seeded random source.
func NewUnseededRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Render paints the scene described by cfg. The configuration must be
// valid. If logger is nil, nothing is logged.
func Render(cfg *Config, rng *rand.Rand, logger *zap.Logger) *canvas.Canvas {
	if logger == nil {
		logger = zap.NewNop()
	}
	pal := &cfg.Palette
	g := cfg.Geometry()

	c := canvas.New(cfg.Width, cfg.Height, pal.Background)
	logger.Debug("canvas allocated",
		zap.Int("width", cfg.Width), zap.Int("height", cfg.Height))

	DrawSky(c, cfg.Width, cfg.Height, pal.SkyTop, pal.SkyBottom)
	logger.Debug("sky painted")

	DrawGround(c, rng, cfg.Width, cfg.Height, g.GroundY, pal.Ground, pal.Grass)
	logger.Debug("ground painted", zap.Int("ground_y", g.GroundY))

	DrawTrunk(c, g.TrunkX, g.GroundY, g.TrunkWidth, g.TrunkHeight, pal.Trunk, pal.Ring)
	logger.Debug("trunk painted",
		zap.Int("x", g.TrunkX),
		zap.Int("width", g.TrunkWidth),
		zap.Int("height", g.TrunkHeight))

	for i, layer := range cfg.Layout.CanopyLayers {
		radius := int(float64(g.CanopyRadius) * layer.Scale)
		DrawCanopy(c, rng, g.CanopyX+layer.DX, g.CanopyTop+layer.DY, radius, pal.Leaves)
		logger.Debug("canopy layer painted",
			zap.Int("layer", i),
			zap.Int("radius", radius))
	}

	c.Alpha = cfg.HighlightAlpha
	DrawHighlights(c, rng, g.CanopyX, g.CanopyTop, g.CanopyRadius, pal.Highlight)
	c.Alpha = canvas.IgnoreAlpha
	logger.Debug("highlights painted", zap.Stringer("alpha", cfg.HighlightAlpha))

	return c
}

// Generate renders the scene and writes it to cfg.OutputPath.
//
// The output directory is created before any drawing is done, so that a
// bad path fails fast. If rng is nil, a randomly seeded source is used.
func Generate(cfg *Config, rng *rand.Rand, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if rng == nil {
		rng = NewUnseededRand()
	}

	if err := EnsureDir(cfg.OutputPath); err != nil {
		return err
	}

	c := Render(cfg, rng, logger)

	if err := WriteImage(cfg.OutputPath, c.Image(), cfg.Quality); err != nil {
		return err
	}
	logger.Info("image written",
		zap.String("path", cfg.OutputPath),
		zap.Int("quality", cfg.Quality))
	return nil
}
