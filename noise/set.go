package noise

import "github.com/gogpu/orrery/internal/cache"

// Set holds the three independent fields a body is shaded with.
type Set struct {
	// Surface drives terrain and base palettes.
	Surface Field
	// Cloud drives the cloud coverage layer.
	Cloud Field
	// Band modulates latitudinal stripes.
	Band Field
}

// NewSet derives the surface, cloud and band fields from one seed. Each
// field gets its own sub-seed so the three are uncorrelated.
func NewSet(seed int64) Set {
	return Set{
		Surface: NewFractal(seed,
			WithFrequency(1.6),
			WithOctaves(5),
		),
		Cloud: NewFractal(seed+7919,
			WithType(Billow),
			WithFrequency(2.4),
			WithOctaves(4),
			WithGain(0.55),
		),
		Band: NewFractal(seed+104729,
			WithFrequency(3.5),
			WithOctaves(2),
		),
	}
}

// sets memoizes NewSet by seed. Fields are read-only after construction,
// so one Set may be shared by bodies and scene reloads.
var sets = cache.New[int64, Set](256)

// ForSeed returns the Set for seed, building it on first use.
func ForSeed(seed int64) Set {
	return sets.GetOrCreate(seed, func() Set { return NewSet(seed) })
}
