// Command gbtiles dumps a running core's tile data and background tile
// maps to PNG files via PPU.DumpTiledata/DumpTileMap.
package main

import (
	"flag"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/sturdy-robot/sturdygb-sub000/internal/gameboy"
	"github.com/sturdy-robot/sturdygb-sub000/pkg/log"
)

func main() {
	romFile := flag.String("rom", "", "the ROM file to load")
	frames := flag.Int("frames", 120, "number of frames to run before dumping")
	scale := flag.Int("scale", 2, "integer upscale factor applied to the dumped PNGs")
	flag.Parse()

	logger := log.New()
	if *romFile == "" {
		logger.Errorf("no ROM file given, use -rom")
		os.Exit(1)
	}

	rom, err := os.ReadFile(*romFile)
	if err != nil {
		logger.Errorf("unable to read ROM %s: %s", *romFile, err)
		os.Exit(1)
	}

	gb, err := gameboy.Load(rom, "")
	if err != nil {
		logger.Errorf("unable to load ROM %s: %s", *romFile, err)
		os.Exit(1)
	}

	for i := 0; i < *frames; i++ {
		gb.StepFrame()
	}

	dump(gb.PPU.DumpTiledata(), "tiledata.png", *scale, logger)
	dump(gb.PPU.DumpTileMap(), "tilemap.png", *scale, logger)
}

func dump(img image.Image, path string, scale int, logger log.Logger) {
	b := img.Bounds()
	scaled := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, b, draw.Over, nil)

	f, err := os.Create(path)
	if err != nil {
		logger.Errorf("unable to create %s: %s", path, err)
		return
	}
	defer f.Close()

	if err := png.Encode(f, scaled); err != nil {
		logger.Errorf("unable to encode %s: %s", path, err)
	}
}
