package marley

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// rejectionSafetyFactor pads the assumed maximum of a rejection-sampled
	// PDF to absorb small errors in the maximum estimate.
	rejectionSafetyFactor = 1.01
	// maxSearchTolerance bounds the golden-section search used when a PDF
	// maximum is not known in advance.
	maxSearchTolerance = 1e-8
)

// Generator owns a single pseudorandom stream and everything configured
// around it: the projectile source, the target composition, the reactions,
// and the nuclear structure data. All sampling in an event's life draws
// from this one stream, so a given seed reproduces the same event sequence.
//
// A Generator must not be shared between goroutines; parallel workers each
// build their own.
type Generator struct {
	seed uint64
	pcg  *rand.PCG
	rng  *rand.Rand

	log       *slog.Logger
	masses    *MassTable
	structure StructureDB

	source    Source
	target    *Target
	reactions []Reaction

	// Per-reaction weights populated by the last energyPDF evaluation.
	xsValues []float64

	// Flux-averaged total cross section, the normalization of the energy
	// PDF. Recomputed lazily whenever the configuration changes.
	norm     float64
	needNorm bool

	// Running maximum of the energy PDF for rejection sampling. Reset to
	// unknown whenever the configuration changes.
	pdfMax float64
}

// pcgStreamKey decorrelates the two PCG state words derived from a single
// user-facing seed.
const pcgStreamKey = 0x9e3779b97f4a7c15

// NewGenerator returns a generator seeded with the given value, carrying
// the built-in mass table and structure data. Sources, targets and
// reactions are attached afterwards.
func NewGenerator(seed uint64) *Generator {
	g := &Generator{
		log:       slog.Default(),
		masses:    NewMassTable(),
		structure: DefaultSpinParityMap(),
		needNorm:  true,
		pdfMax:    math.Inf(1),
	}
	g.Reseed(seed)
	return g
}

// Reseed restarts the pseudorandom stream from the given seed. The
// physics configuration is untouched.
func (g *Generator) Reseed(seed uint64) {
	g.seed = seed
	g.pcg = rand.NewPCG(seed, seed^pcgStreamKey)
	g.rng = rand.New(g.pcg)
}

// Seed returns the seed most recently passed to NewGenerator or Reseed.
// It does not reflect the stream's current position.
func (g *Generator) Seed() uint64 { return g.seed }

// StateString captures the full internal state of the pseudorandom stream
// as a hex string. Restoring it with SeedUsingStateString resumes the
// stream exactly where it left off.
func (g *Generator) StateString() string {
	b, err := g.pcg.MarshalBinary()
	if err != nil {
		// rand.PCG's marshaling cannot fail.
		panic(err)
	}
	return hex.EncodeToString(b)
}

// SeedUsingStateString restores the pseudorandom stream from a string
// produced by StateString.
func (g *Generator) SeedUsingStateString(state string) error {
	b, err := hex.DecodeString(state)
	if err != nil {
		return fmt.Errorf("%w: bad generator state string: %v",
			ErrConfig, err)
	}
	pcg := rand.NewPCG(0, 0)
	if err := pcg.UnmarshalBinary(b); err != nil {
		return fmt.Errorf("%w: bad generator state string: %v",
			ErrConfig, err)
	}
	g.pcg = pcg
	g.rng = rand.New(pcg)
	return nil
}

// SetLogger replaces the logger used for numerical diagnostics.
func (g *Generator) SetLogger(l *slog.Logger) { g.log = l }

// MassTable returns the generator's mass table.
func (g *Generator) MassTable() *MassTable { return g.masses }

// StructureDB returns the generator's nuclear structure data.
func (g *Generator) StructureDB() StructureDB { return g.structure }

// SetStructureDB replaces the generator's nuclear structure data.
func (g *Generator) SetStructureDB(db StructureDB) { g.structure = db }

// Source returns the configured projectile source, or nil.
func (g *Generator) Source() Source { return g.source }

// SetSource attaches the projectile source. The source's particle species
// must have a known mass.
func (g *Generator) SetSource(s Source) error {
	if _, err := g.masses.ParticleMass(s.PDG()); err != nil {
		return err
	}
	g.source = s
	g.invalidate()
	return nil
}

// Target returns the configured target material, or nil.
func (g *Generator) Target() *Target { return g.target }

// SetTarget attaches the target material. A nil target treats every
// reaction's atom as present with unit abundance.
func (g *Generator) SetTarget(t *Target) {
	g.target = t
	g.invalidate()
}

// Reactions returns the attached reactions.
func (g *Generator) Reactions() []Reaction { return g.reactions }

// AddReaction attaches a reaction to the generator.
func (g *Generator) AddReaction(r Reaction) {
	g.reactions = append(g.reactions, r)
	g.invalidate()
}

// ClearReactions detaches all reactions.
func (g *Generator) ClearReactions() {
	g.reactions = nil
	g.invalidate()
}

func (g *Generator) invalidate() {
	g.needNorm = true
	g.pdfMax = math.Inf(1)
}

// Uniform samples a number uniformly on [min, max) or, when inclusive is
// true, on [min, max].
func (g *Generator) Uniform(min, max float64, inclusive bool) float64 {
	hi := max
	if inclusive {
		hi = math.Nextafter(max, math.Inf(1))
	}
	return min + g.rng.Float64()*(hi-min)
}

// UnknownMax asks RejectionSample to locate the PDF maximum itself.
var UnknownMax = math.Inf(1)

// RejectionSample draws from the density proportional to f on [xmin, xmax]
// by rejection. fmax must be an upper estimate of f's maximum, or
// UnknownMax to have it located with a golden-section search. The value
// used is returned alongside the sample so callers can cache it.
//
// Each iteration consumes exactly two uniform draws: the abscissa and the
// acceptance height.
func (g *Generator) RejectionSample(f func(float64) float64, xmin, xmax,
	fmax float64) (x, max float64) {

	if math.IsInf(fmax, 1) {
		_, fmax = maximize(f, xmin, xmax, maxSearchTolerance)
	}
	for {
		x = g.Uniform(xmin, xmax, false)
		y := g.Uniform(0, fmax*rejectionSafetyFactor, false)
		if y <= f(x) {
			return x, fmax
		}
	}
}

// InverseTransformSample draws from the distribution whose cumulative
// distribution is cdf on [xmin, xmax], inverting the CDF by bisection down
// to the given abscissa tolerance. The CDF need not be normalized, only
// non-decreasing.
func (g *Generator) InverseTransformSample(cdf func(float64) float64, xmin,
	xmax, tol float64) float64 {

	u := g.Uniform(0, 1, false)
	lo, hi := xmin, xmax
	target := cdf(lo) + u*(cdf(hi)-cdf(lo))
	for hi-lo > tol {
		mid := 0.5 * (lo + hi)
		if cdf(mid) < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi)
}

// InverseTransformSampleTable draws from a tabulated CDF represented by a
// fitted interpolant.
func (g *Generator) InverseTransformSampleTable(cdf interp.Predictor, xmin,
	xmax, tol float64) float64 {

	return g.InverseTransformSample(cdf.Predict, xmin, xmax, tol)
}

// pcgSource adapts the generator's stream to the source interface consumed
// by gonum's distributions.
type pcgSource struct{ rng *rand.Rand }

func (s pcgSource) Uint64() uint64 { return s.rng.Uint64() }
func (s pcgSource) Seed(uint64)    {}

// sampleIndex draws an index from the discrete distribution defined by the
// given non-negative weights. The weights need not be normalized.
func (g *Generator) sampleIndex(weights []float64) (int, error) {
	sum := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return 0, fmt.Errorf("%w: invalid weight %g at index %d",
				ErrPhysics, w, i)
		}
		sum += w
	}
	if sum <= 0 {
		return 0, fmt.Errorf("%w: discrete distribution has no weight",
			ErrKinematics)
	}
	cat := distuv.NewCategorical(weights, pcgSource{g.rng})
	return int(cat.Rand()), nil
}

// atomFraction returns the abundance weight of an atomic species in the
// configured target.
func (g *Generator) atomFraction(atom int) float64 {
	if g.target == nil {
		return 1
	}
	return g.target.AtomFraction(atom)
}

// energyPDF evaluates the unnormalized density of interacting projectile
// energies: the source spectrum weighted by the abundance-weighted total
// cross section of every attached reaction. As a side effect the
// per-reaction weights are recorded for the subsequent reaction draw.
func (g *Generator) energyPDF(e float64) float64 {
	if cap(g.xsValues) < len(g.reactions) {
		g.xsValues = make([]float64, len(g.reactions))
	}
	g.xsValues = g.xsValues[:len(g.reactions)]

	spdg := g.source.PDG()
	ma, _ := g.masses.ParticleMass(spdg)
	keA := e - ma

	sum := 0.0
	for i, r := range g.reactions {
		w := 0.0
		if keA >= 0 {
			w = g.atomFraction(r.AtomicTarget()) * r.TotalXS(spdg, keA)
		}
		g.xsValues[i] = w
		sum += w
	}
	return sum * g.source.PDF(e)
}

// normalize recomputes the flux-averaged total cross section used to
// normalize the energy PDF.
func (g *Generator) normalize() {
	emin, emax := g.source.MinEnergy(), g.source.MaxEnergy()
	if emax > emin {
		g.norm = quad.Fixed(g.energyPDF, emin, emax, quadPoints, nil, 0)
	} else {
		g.norm = g.energyPDF(emin)
	}
	g.needNorm = false
	g.pdfMax = math.Inf(1)
}

// TotalXS returns the abundance-weighted total cross section (MeV^-2)
// summed over the attached reactions for a projectile with the given PDG
// code and kinetic energy.
func (g *Generator) TotalXS(pdgA int, keA float64) float64 {
	sum := 0.0
	for _, r := range g.reactions {
		sum += g.atomFraction(r.AtomicTarget()) * r.TotalXS(pdgA, keA)
	}
	return sum
}

// FluxAveragedTotalXS returns the total cross section (MeV^-2) averaged
// over the source spectrum. A zero value means no projectile energy the
// source can emit leads to an interaction.
func (g *Generator) FluxAveragedTotalXS() (float64, error) {
	if g.source == nil || len(g.reactions) == 0 {
		return 0, fmt.Errorf("%w: generator needs a source and at least"+
			" one reaction", ErrConfig)
	}
	if g.needNorm {
		g.normalize()
	}
	return g.norm, nil
}

// CreateEvent samples one complete scattering event: a projectile energy
// from the cross-section-weighted source spectrum, a reaction, and the
// reaction's internal degrees of freedom.
func (g *Generator) CreateEvent() (*Event, error) {
	if g.source == nil || len(g.reactions) == 0 {
		return nil, fmt.Errorf("%w: generator needs a source and at"+
			" least one reaction", ErrConfig)
	}
	if g.needNorm {
		g.normalize()
	}
	if g.norm <= 0 || math.IsNaN(g.norm) {
		return nil, fmt.Errorf("%w: no reaction is accessible at any"+
			" energy the source can emit", ErrKinematics)
	}

	emin, emax := g.source.MinEnergy(), g.source.MaxEnergy()
	var e float64
	if emax > emin {
		e, g.pdfMax = g.RejectionSample(g.energyPDF, emin, emax, g.pdfMax)
	} else {
		e = emin
		if g.energyPDF(e) <= 0 {
			return nil, fmt.Errorf("%w: no reaction is accessible at"+
				" the source energy %g MeV", ErrKinematics, e)
		}
	}

	idx, err := g.sampleIndex(g.xsValues)
	if err != nil {
		return nil, err
	}
	r := g.reactions[idx]

	spdg := g.source.PDG()
	ma, err := g.masses.ParticleMass(spdg)
	if err != nil {
		return nil, err
	}
	return r.CreateEvent(spdg, e-ma, g)
}
