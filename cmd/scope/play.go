package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pipelined/scope"
	"github.com/pipelined/scope/portaudio"
	"github.com/pipelined/scope/synth"
)

type playCommand struct {
	shapeFlags
	rate     int
	mult     int
	duration time.Duration
}

func (cmd *playCommand) Name() string {
	return "play"
}

func (cmd *playCommand) Help() string {
	return "Play a pattern through the default audio device"
}

func (cmd *playCommand) Register(fs *flag.FlagSet) {
	cmd.shapeFlags.Register(fs)
	fs.IntVar(&cmd.rate, "rate", 1000, "base sample rate")
	fs.IntVar(&cmd.mult, "mult", 100, "playback rate multiplier")
	fs.DurationVar(&cmd.duration, "duration", 15*time.Second, "stream duration")
}

func (cmd *playCommand) Run() error {
	p, err := cmd.pattern()
	if err != nil {
		return err
	}
	cfg, err := cmd.config()
	if err != nil {
		return err
	}
	engine, err := scope.New(
		portaudio.New(),
		scope.WithConfig(cfg),
		scope.WithSampleRate(cmd.rate),
		scope.WithMultiplier(cmd.mult),
		scope.WithDuration(cmd.duration),
	)
	if err != nil {
		return err
	}
	defer engine.Close()
	if err := engine.LoadPattern(p); err != nil {
		return err
	}
	if err := engine.Play(); err != nil {
		return err
	}
	fmt.Printf("Playing at %v Hz, interrupt to stop\n", synth.Rate(cmd.rate, cmd.mult))

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt
	return nil
}
