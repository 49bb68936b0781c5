package main

import (
	"flag"
	"fmt"

	"github.com/pipelined/scope/effect"
	"github.com/pipelined/scope/matfile"
	"github.com/pipelined/scope/pattern"
)

// shapeFlags holds the source and shaping flags shared by the render and
// play commands.
type shapeFlags struct {
	name   string
	file   string
	points int

	yfade    bool
	xfade    bool
	steps    int
	mirror   bool
	rotation string
	angle    float64
	speed    float64
	repeat   int
}

func (cmd *shapeFlags) Register(fs *flag.FlagSet) {
	fs.StringVar(&cmd.name, "pattern", "circle", "built-in pattern name, see the patterns command")
	fs.StringVar(&cmd.file, "in", "", "pattern file to load instead of a built-in")
	fs.IntVar(&cmd.points, "points", 500, "points per built-in pattern")
	fs.BoolVar(&cmd.yfade, "yfade", false, "fade the y axis over repeats")
	fs.BoolVar(&cmd.xfade, "xfade", false, "fade the x axis over repeats")
	fs.IntVar(&cmd.steps, "steps", 10, "steps per fade cycle quarter")
	fs.BoolVar(&cmd.mirror, "mirror", false, "reflect the pattern into four quadrants")
	fs.StringVar(&cmd.rotation, "rotation", "off", "rotation mode: off, static, cw, ccw")
	fs.Float64Var(&cmd.angle, "angle", 0, "static rotation angle in degrees")
	fs.Float64Var(&cmd.speed, "speed", 1, "sweep rotation in degrees per repeat")
	fs.IntVar(&cmd.repeat, "repeat", 200, "repeats of the base pattern per cycle")
}

func (cmd *shapeFlags) pattern() (pattern.Pattern, error) {
	if cmd.file != "" {
		return matfile.LoadFile(cmd.file)
	}
	return pattern.Generate(cmd.name, cmd.points)
}

func (cmd *shapeFlags) config() (effect.Config, error) {
	c := effect.Config{
		YFade:  cmd.yfade,
		XFade:  cmd.xfade,
		Mirror: cmd.mirror,
		Angle:  cmd.angle,
		Speed:  cmd.speed,
		Repeat: cmd.repeat,
	}
	if cmd.yfade {
		c.YFadeSteps = cmd.steps
	}
	if cmd.xfade {
		c.XFadeSteps = cmd.steps
	}
	switch cmd.rotation {
	case "off":
		c.Rotation = effect.RotationOff
	case "static":
		c.Rotation = effect.RotationStatic
	case "cw":
		c.Rotation = effect.RotationCW
	case "ccw":
		c.Rotation = effect.RotationCCW
	default:
		return c, fmt.Errorf("unknown rotation mode %q", cmd.rotation)
	}
	return c, nil
}
