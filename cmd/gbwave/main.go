// Command gbwave runs a ROM for a fixed number of frames, captures the
// drained audio ring buffer, and plots the left/right channels to a PNG
// waveform using gonum/plot — useful for eyeballing APU output without
// wiring up a live audio device.
package main

import (
	"flag"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/sturdy-robot/sturdygb-sub000/internal/gameboy"
	"github.com/sturdy-robot/sturdygb-sub000/pkg/log"
)

func main() {
	romFile := flag.String("rom", "", "the ROM file to load")
	frames := flag.Int("frames", 60, "number of frames to capture audio from")
	sampleRate := flag.Uint("rate", 44100, "sample rate to request from the APU")
	out := flag.String("out", "waveform.png", "output PNG path")
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

	gb.SetSampleRate(uint32(*sampleRate))

	var left, right plotter.XYs
	sampleIndex := 0
	for i := 0; i < *frames; i++ {
		gb.StepFrame()
		samples := gb.DrainAudio()
		for j := 0; j+1 < len(samples); j += 2 {
			left = append(left, plotter.XY{X: float64(sampleIndex), Y: float64(samples[j])})
			right = append(right, plotter.XY{X: float64(sampleIndex), Y: float64(samples[j+1])})
			sampleIndex++
		}
	}

	p := plot.New()
	p.Title.Text = "APU output"
	p.X.Label.Text = "sample"
	p.Y.Label.Text = "amplitude"

	lineL, err := plotter.NewLine(left)
	if err != nil {
		logger.Errorf("unable to plot left channel: %s", err)
		os.Exit(1)
	}
	lineL.Color = color.RGBA{B: 255, A: 255}

	lineR, err := plotter.NewLine(right)
	if err != nil {
		logger.Errorf("unable to plot right channel: %s", err)
		os.Exit(1)
	}
	lineR.Color = color.RGBA{R: 255, A: 255}

	p.Add(lineL, lineR)
	p.Legend.Add("L", lineL)
	p.Legend.Add("R", lineR)

	if err := p.Save(10*vg.Inch, 4*vg.Inch, *out); err != nil {
		logger.Errorf("unable to save %s: %s", *out, err)
		os.Exit(1)
	}
}
