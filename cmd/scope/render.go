package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/pipelined/scope/signal"
	"github.com/pipelined/scope/synth"
	"github.com/pipelined/scope/wav"
)

type renderCommand struct {
	shapeFlags
	out      string
	rate     int
	mult     int
	duration time.Duration
	bits     int
}

func (cmd *renderCommand) Name() string {
	return "render"
}

func (cmd *renderCommand) Help() string {
	return "Render a pattern to a WAV file"
}

func (cmd *renderCommand) Register(fs *flag.FlagSet) {
	cmd.shapeFlags.Register(fs)
	fs.StringVar(&cmd.out, "out", "", "output WAV file (required)")
	fs.IntVar(&cmd.rate, "rate", 1000, "base sample rate")
	fs.IntVar(&cmd.mult, "mult", 100, "playback rate multiplier")
	fs.DurationVar(&cmd.duration, "duration", 15*time.Second, "stream duration")
	fs.IntVar(&cmd.bits, "bits", 16, "bit depth, 16 or 32")
}

func (cmd *renderCommand) Run() error {
	if cmd.out == "" {
		return fmt.Errorf("missing -out required flag")
	}
	p, err := cmd.pattern()
	if err != nil {
		return err
	}
	cfg, err := cmd.config()
	if err != nil {
		return err
	}
	base, err := cfg.BaseCycle(p.Normalized())
	if err != nil {
		return err
	}
	rate := synth.Rate(cmd.rate, cmd.mult)
	buf, err := synth.Synthesize(base, rate, cmd.duration)
	if err != nil {
		return err
	}
	if err := wav.Encode(cmd.out, buf, rate, signal.BitDepth(cmd.bits)); err != nil {
		return err
	}
	fmt.Printf("Rendered %v samples at %v Hz to %v\n", buf.Size(), rate, cmd.out)
	return nil
}
