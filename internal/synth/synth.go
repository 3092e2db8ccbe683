// Package synth draws the numeric datasets behind generated questions.
//
// Values are drawn in integer ticks of the unit's value precision, so every
// datum is already rounded and inside the context bounds. Variations that
// withhold a quantity adjust the draw until the full-dataset mean is exact at
// mean precision, which makes the withheld quantity recoverable without
// rounding ambiguity.
package synth

import (
	"errors"
	"math"
	"math/rand/v2"

	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/units"
)

// sampler produces the dataset for one variation.
type sampler interface {
	sample(d *draw) (Dataset, error)
}

// Synthesizer draws datasets. It holds no mutable state and is safe for
// concurrent use.
type Synthesizer struct {
	cfg      Config
	samplers map[catalog.Variation]sampler
}

// New creates a Synthesizer.
func New(cfg Config) *Synthesizer {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	return &Synthesizer{
		cfg: cfg,
		samplers: map[catalog.Variation]sampler{
			catalog.VariationCalculate:    calculateSampler{},
			catalog.VariationMissingValue: missingValueSampler{},
			catalog.VariationCompare:      compareSampler{},
			catalog.VariationMissingCount: missingCountSampler{},
		},
	}
}

// Synthesize draws a dataset for def and variation at difficulty using rng.
// The same rng state always yields the same dataset.
func (s *Synthesizer) Synthesize(def catalog.ContextDefinition, v catalog.Variation, difficulty int, rng *rand.Rand) (Dataset, error) {
	if err := catalog.CheckRange(def.ValueMin, def.ValueMax); err != nil {
		return Dataset{}, err
	}
	points, ok := s.cfg.Points[difficulty]
	if !ok || points.Min < 2 || points.Max < points.Min {
		return Dataset{}, &ErrInvalidDifficulty{Difficulty: difficulty}
	}
	smp, ok := s.samplers[v]
	if !ok {
		return Dataset{}, errors.New("unknown variation " + string(v))
	}

	rule := units.For(def.Unit)
	p := math.Pow10(rule.Decimals)
	// The epsilon keeps bounds that are already on a tick from moving.
	lo := int64(math.Ceil(def.ValueMin*p - 1e-9))
	hi := int64(math.Floor(def.ValueMax*p + 1e-9))
	if hi-lo < 1 {
		return Dataset{}, &catalog.ErrInvalidRange{
			Min: def.ValueMin, Max: def.ValueMax,
			Reason: "range holds fewer than two values at unit precision",
		}
	}
	if !exactSums(lo, hi, points.Max, rule.MeanScale()) {
		return Dataset{}, &catalog.ErrInvalidRange{
			Min: def.ValueMin, Max: def.ValueMax,
			Reason: "range too large for exact mean arithmetic",
		}
	}

	d := &draw{
		rule:        rule,
		lo:          lo,
		hi:          hi,
		points:      points,
		rng:         rng,
		maxAttempts: s.cfg.MaxAttempts,
	}
	ds, err := smp.sample(d)
	if err != nil {
		return Dataset{}, err
	}
	ds.Variation = v
	ds.Unit = def.Unit
	return ds, nil
}

// exactSums reports whether every tick sum of up to points values in
// [lo, hi], scaled to mean precision, is an integer float64 represents
// exactly.
func exactSums(lo, hi int64, points int, meanScale int64) bool {
	if hi-lo+1 <= 0 {
		return false
	}
	largest := math.Max(math.Abs(float64(lo)), math.Abs(float64(hi)))
	return largest*float64(points)*float64(meanScale) < 1<<53
}

// draw carries the per-call sampling state.
type draw struct {
	rule        units.Rule
	lo, hi      int64
	points      PointRange
	rng         *rand.Rand
	maxAttempts int
}

func (d *draw) length() int {
	return d.points.Min + d.rng.IntN(d.points.Max-d.points.Min+1)
}

func (d *draw) ticks(n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = d.lo + d.rng.Int64N(d.hi-d.lo+1)
	}
	return out
}

func (d *draw) values(ticks []int64) []float64 {
	out := make([]float64, len(ticks))
	for i, t := range ticks {
		out[i] = d.rule.FromTicks(t)
	}
	return out
}

// makeExact nudges values, staying inside [lo, hi], until the tick sum is
// divisible by n/gcd(n, meanScale). The mean sum/n is then exact at mean
// precision.
func (d *draw) makeExact(ticks []int64) {
	n := int64(len(ticks))
	m := n / gcd(n, d.rule.MeanScale())
	r := sum(ticks) % m
	if r < 0 {
		r += m
	}
	if r == 0 {
		return
	}

	var down, up int64
	for _, t := range ticks {
		down += t - d.lo
		up += d.hi - t
	}
	// down+up >= n >= m, so one direction always has room.
	step := int64(-1)
	need := r
	if down < r {
		step, need = 1, m-r
	}

	start := d.rng.IntN(len(ticks))
	for i := 0; need > 0; i++ {
		j := (start + i) % len(ticks)
		room := ticks[j] - d.lo
		if step > 0 {
			room = d.hi - ticks[j]
		}
		move := min(room, need)
		ticks[j] += step * move
		need -= move
	}
}

// exactMean returns sum/n at mean precision; ticks must already be exact.
func (d *draw) exactMean(ticks []int64) float64 {
	scale := d.rule.MeanScale()
	meanTicks := sum(ticks) * scale / int64(len(ticks))
	return float64(meanTicks) / math.Pow10(d.rule.MeanDecimals)
}

type calculateSampler struct{}

func (calculateSampler) sample(d *draw) (Dataset, error) {
	vals := d.values(d.ticks(d.length()))
	return Dataset{
		Values: vals,
		Hidden: -1,
		Mean:   MeanOf(d.rule, vals),
	}, nil
}

type missingValueSampler struct{}

func (missingValueSampler) sample(d *draw) (Dataset, error) {
	ticks := d.ticks(d.length())
	d.makeExact(ticks)
	return Dataset{
		Values: d.values(ticks),
		Hidden: d.rng.IntN(len(ticks)),
		Mean:   d.exactMean(ticks),
	}, nil
}

type compareSampler struct{}

func (compareSampler) sample(d *draw) (Dataset, error) {
	a := d.values(d.ticks(d.length()))
	b := d.values(d.ticks(d.length()))
	return Dataset{
		Values: a,
		Second: b,
		Hidden: -1,
		Mean:   MeanOf(d.rule, a),
	}, nil
}

type missingCountSampler struct{}

func (missingCountSampler) sample(d *draw) (Dataset, error) {
	for range d.maxAttempts {
		ticks := d.ticks(d.length())
		d.makeExact(ticks)
		// A zero mean leaves the count undetermined.
		if sum(ticks) == 0 {
			continue
		}
		return Dataset{
			Values:      d.values(ticks),
			Hidden:      -1,
			CountHidden: true,
			Mean:        d.exactMean(ticks),
		}, nil
	}
	return Dataset{}, errors.New("could not draw a dataset with a non-zero mean")
}

func sum(ticks []int64) int64 {
	var s int64
	for _, t := range ticks {
		s += t
	}
	return s
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}
