package pattern

import (
	"fmt"
	"math"
	"sort"
)

// generator is a parametric curve over t.
type generator func(t float64) (x, y float64)

// Parametric test patterns. Coordinates are raw, callers normalize.
var generators = map[string]generator{
	"circle": func(t float64) (float64, float64) {
		return math.Cos(t), math.Sin(t)
	},
	"ellipse": func(t float64) (float64, float64) {
		return 1.5 * math.Cos(t), math.Sin(t)
	},
	"lissajous32": func(t float64) (float64, float64) {
		return math.Sin(3 * t), math.Sin(2 * t)
	},
	"lissajous54": func(t float64) (float64, float64) {
		return math.Sin(5 * t), math.Sin(4 * t)
	},
	"figure8": func(t float64) (float64, float64) {
		return math.Sin(t), math.Sin(2 * t)
	},
	"infinity": func(t float64) (float64, float64) {
		return math.Cos(t), math.Sin(2 * t)
	},
	"star5": func(t float64) (float64, float64) {
		r := 1 + 0.5*math.Sin(5*t)
		return math.Cos(t) * r, math.Sin(t) * r
	},
	"rose4": func(t float64) (float64, float64) {
		return math.Cos(4*t) * math.Cos(t), math.Cos(4*t) * math.Sin(t)
	},
	"spiral": func(t float64) (float64, float64) {
		return t / 10 * math.Cos(t), t / 10 * math.Sin(t)
	},
	"cardioid": func(t float64) (float64, float64) {
		return (1 - math.Cos(t)) * math.Cos(t), (1 - math.Cos(t)) * math.Sin(t)
	},
	"deltoid": func(t float64) (float64, float64) {
		return 2*math.Cos(t) + math.Cos(2*t), 2*math.Sin(t) - math.Sin(2*t)
	},
	"butterfly": func(t float64) (float64, float64) {
		r := math.Exp(math.Cos(t)) - 2*math.Cos(4*t) - math.Pow(math.Sin(t/12), 5)
		return math.Sin(t) * r, math.Cos(t) * r
	},
}

// Names lists the built-in test patterns in stable order.
func Names() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate produces a built-in test pattern with the given number of
// points, sampled over one full turn.
func Generate(name string, points int) (Pattern, error) {
	gen, ok := generators[name]
	if !ok {
		return Pattern{}, fmt.Errorf("unknown pattern %q", name)
	}
	if points < 1 {
		return Pattern{}, ErrInvalidPattern
	}
	p := Pattern{
		X: make([]float64, points),
		Y: make([]float64, points),
	}
	for i := 0; i < points; i++ {
		t := 2 * math.Pi * float64(i) / float64(points)
		p.X[i], p.Y[i] = gen(t)
	}
	return p, nil
}

// Default returns the startup pattern: x sweeps [-1, 1] and y traces
// three full sine cycles over it.
func Default(points int) Pattern {
	if points < 2 {
		points = 2
	}
	p := Pattern{
		X: make([]float64, points),
		Y: make([]float64, points),
	}
	for i := 0; i < points; i++ {
		t := -1 + 2*float64(i)/float64(points-1)
		p.X[i] = t
		p.Y[i] = math.Sin(6 * math.Pi * t)
	}
	return p
}
