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

// Command treegen paints a tree scene and saves it as a JPEG file.
// It takes no arguments; the image is written to the default location
// of [scene.DefaultConfig].
package main

import (
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"seehuhn.de/go/treescene/internal/logging"
	"seehuhn.de/go/treescene/scene"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := logging.New(os.Stderr, zapcore.InfoLevel)
	defer logger.Sync()

	cfg := scene.DefaultConfig()
	if err := scene.Generate(&cfg, scene.NewUnseededRand(), logger); err != nil {
		logger.Error("cannot generate tree image", zap.Error(err))
		return exitFailure
	}

	color.New(color.FgGreen).Printf("Saved tree image to %s\n", cfg.OutputPath)
	return exitSuccess
}
