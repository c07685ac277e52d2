// Command gbcore runs a ROM headlessly for a fixed number of frames,
// driving gameboy.GameBoy directly without any windowing or live audio
// output.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sturdy-robot/sturdygb-sub000/internal/gameboy"
	"github.com/sturdy-robot/sturdygb-sub000/pkg/log"
)

func main() {
	romFile := flag.String("rom", "", "the ROM file to load")
	saveFile := flag.String("save", "", "battery RAM save path (empty disables persistence)")
	frames := flag.Int("frames", 60, "number of frames to run before exiting")
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

	gb, err := gameboy.Load(rom, *saveFile)
	if err != nil {
		logger.Errorf("unable to load ROM %s: %s", *romFile, err)
		os.Exit(1)
	}
	defer func() {
		if err := gb.Close(); err != nil {
			logger.Errorf("unable to save: %s", err)
		}
	}()

	logger.Infof("loaded %s (%s)", *romFile, gb.Cart.Header.String())

	for i := 0; i < *frames; i++ {
		gb.StepFrame()
		_ = gb.DrainAudio() // keep the ring buffer from filling while headless
	}

	fmt.Printf("ran %d frames, serial log: %q\n", *frames, gb.SerialLog())
}
