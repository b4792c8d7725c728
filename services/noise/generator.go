package noise

import (
	"errors"
	"fmt"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

//go:generate mockgen -source=generator.go -destination=mock_generator.go -package=noise

// ErrUnknownKind is returned when a noise kind name is not recognised.
var ErrUnknownKind = errors.New("unknown noise kind")

// Kind names a coherent-noise algorithm.
type Kind string

const (
	KindPerlin      Kind = "perlin"
	KindOpenSimplex Kind = "opensimplex"
)

// Kinds lists every supported noise kind.
func Kinds() []Kind {
	return []Kind{KindPerlin, KindOpenSimplex}
}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	switch k {
	case KindPerlin, KindOpenSimplex:
		return true
	}
	return false
}

// GeneratorInterface defines the interface for noise generation operations.
// Implementations must be deterministic for a given seed and safe for
// concurrent use, since fields are sampled from several goroutines.
type GeneratorInterface interface {
	GetNoise(x, y float64) float64
	GetSeed() int64
	Kind() Kind
}

// Generator implements the GeneratorInterface using Perlin noise.
type Generator struct {
	noise *perlin.Perlin
	seed  int64
}

// NewGenerator creates a new Perlin noise generator with the given seed.
func NewGenerator(seed int64) GeneratorInterface {
	// alpha=2, beta=2, n=3 give smooth terrain-like noise
	return &Generator{
		noise: perlin.NewPerlin(2, 2, 3, seed),
		seed:  seed,
	}
}

// GetNoise returns a noise value between -1 and 1 for the given coordinates
func (g *Generator) GetNoise(x, y float64) float64 {
	return g.noise.Noise2D(x, y)
}

// GetSeed returns the current seed
func (g *Generator) GetSeed() int64 {
	return g.seed
}

func (g *Generator) Kind() Kind {
	return KindPerlin
}

// SimplexGenerator implements the GeneratorInterface using OpenSimplex noise.
type SimplexGenerator struct {
	noise opensimplex.Noise
	seed  int64
}

// NewSimplexGenerator creates a new OpenSimplex noise generator with the given seed.
func NewSimplexGenerator(seed int64) GeneratorInterface {
	return &SimplexGenerator{
		noise: opensimplex.New(seed),
		seed:  seed,
	}
}

// GetNoise returns a noise value in roughly [-1, 1] for the given coordinates
func (g *SimplexGenerator) GetNoise(x, y float64) float64 {
	return g.noise.Eval2(x, y)
}

func (g *SimplexGenerator) GetSeed() int64 {
	return g.seed
}

func (g *SimplexGenerator) Kind() Kind {
	return KindOpenSimplex
}

// New returns the generator for kind seeded with seed.
func New(kind Kind, seed int64) (GeneratorInterface, error) {
	switch kind {
	case KindPerlin:
		return NewGenerator(seed), nil
	case KindOpenSimplex:
		return NewSimplexGenerator(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
