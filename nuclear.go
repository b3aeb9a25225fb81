package marley

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/rbbouabid/marley/nucphys"
	"github.com/rbbouabid/marley/pdg"
)

// CoulombMode selects how the distortion of the outgoing charged lepton's
// wavefunction by the residue's Coulomb field is approximated.
type CoulombMode int

const (
	// CoulombNone applies no correction.
	CoulombNone CoulombMode = iota
	// CoulombFermi always uses the Fermi function.
	CoulombFermi
	// CoulombEMA always uses the effective momentum approximation.
	CoulombEMA
	// CoulombMEMA always uses the modified effective momentum
	// approximation.
	CoulombMEMA
	// CoulombFermiEMA uses the Fermi function at low energies and the
	// EMA where the EMA is valid and closer to unity.
	CoulombFermiEMA
	// CoulombFermiMEMA uses the Fermi function at low energies and the
	// MEMA where the MEMA is valid and closer to unity. This is the
	// default mode.
	CoulombFermiMEMA
)

var coulombModeNames = map[CoulombMode]string{
	CoulombNone:      "none",
	CoulombFermi:     "Fermi",
	CoulombEMA:       "EMA",
	CoulombMEMA:      "MEMA",
	CoulombFermiEMA:  "Fermi-EMA",
	CoulombFermiMEMA: "Fermi-MEMA",
}

func (m CoulombMode) String() string {
	if s, ok := coulombModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("CoulombMode(%d)", int(m))
}

// ParseCoulombMode converts a mode name, as produced by String, back into a
// CoulombMode.
func ParseCoulombMode(s string) (CoulombMode, error) {
	for m, name := range coulombModeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown Coulomb mode %q", ErrConfig, s)
}

// NuclearReaction is a two-two neutrino-nucleus reaction in the allowed
// approximation, driven by a table of Fermi and Gamow-Teller nuclear matrix
// elements.
type NuclearReaction struct {
	reactionBase

	zi, ai int // target nucleus
	zf, af int // residue nucleus
	qD     int // residue net charge

	mdGS         float64 // residue ground-state mass
	keaThreshold float64

	coulombMode CoulombMode
	matrix      MatrixElementTable

	log *slog.Logger
}

var _ Reaction = (*NuclearReaction)(nil)

// NewNuclearReaction builds a nuclear reaction pdgA + pdgB -> pdgC + pdgD.
// qD is the net electric charge of the residue immediately after the
// two-two scatter, before any atomic de-excitation. Masses are looked up in
// mt, and the matrix element table must be sorted by level energy.
func NewNuclearReaction(pt ProcessType, pdgA, pdgB, pdgC, pdgD, qD int,
	mt *MassTable, matrix MatrixElementTable) (*NuclearReaction, error) {

	if pt == ProcessDM {
		return nil, fmt.Errorf("%w: the %v process is unvalidated and"+
			" cannot be used", ErrPhysics, pt)
	}
	if pt == ProcessNuElectronElastic {
		return nil, fmt.Errorf("%w: %v is not a nuclear process",
			ErrConfig, pt)
	}
	if !pdg.IsIon(pdgB) || !pdg.IsIon(pdgD) {
		return nil, fmt.Errorf("%w: target %d and residue %d must be"+
			" nuclei", ErrConfig, pdgB, pdgD)
	}
	if err := matrix.Validate(); err != nil {
		return nil, err
	}

	ma, err := mt.ParticleMass(pdgA)
	if err != nil {
		return nil, err
	}
	mc, err := mt.ParticleMass(pdgC)
	if err != nil {
		return nil, err
	}
	me, err := mt.ParticleMass(pdg.Electron)
	if err != nil {
		return nil, err
	}

	zi, ai := pdg.AtomicNumber(pdgB), pdg.MassNumber(pdgB)
	zf, af := pdg.AtomicNumber(pdgD), pdg.MassNumber(pdgD)

	// Atomic masses include Z electrons; strip them down to the ionic
	// states actually participating in the scatter. The target is a
	// neutral atom.
	mbAtom, err := mt.AtomicMass(pdgB)
	if err != nil {
		return nil, err
	}
	mdAtom, err := mt.AtomicMass(pdgD)
	if err != nil {
		return nil, err
	}
	mb := mbAtom
	mdGS := mdAtom - float64(qD)*me

	r := &NuclearReaction{
		reactionBase: reactionBase{
			process: pt,
			pdgA:    pdgA,
			pdgB:    pdgB,
			pdgC:    pdgC,
			pdgD:    pdgD,
			ma:      ma,
			mb:      mb,
			mc:      mc,
		},
		zi:          zi,
		ai:          ai,
		zf:          zf,
		af:          af,
		qD:          qD,
		mdGS:        mdGS,
		coulombMode: CoulombFermiMEMA,
		matrix:      matrix,
		log:         slog.Default(),
	}
	r.keaThreshold = ((mc+mdGS)*(mc+mdGS) - (ma+mb)*(ma+mb)) / (2 * mb)
	r.description = fmt.Sprintf("%s + %s --> %s + %s",
		pdg.Symbol(pdgA), pdg.Symbol(pdgB),
		pdg.Symbol(pdgC), pdg.Symbol(pdgD))
	return r, nil
}

// SetLogger replaces the logger used for numerical diagnostics.
func (r *NuclearReaction) SetLogger(l *slog.Logger) { r.log = l }

// CoulombMode returns the active Coulomb correction mode.
func (r *NuclearReaction) CoulombMode() CoulombMode { return r.coulombMode }

// SetCoulombMode selects the Coulomb correction mode.
func (r *NuclearReaction) SetCoulombMode(m CoulombMode) { r.coulombMode = m }

// AtomicTarget returns the PDG code of the neutral target atom.
func (r *NuclearReaction) AtomicTarget() int { return r.pdgB }

// MatrixElements returns the reaction's matrix element table.
func (r *NuclearReaction) MatrixElements() MatrixElementTable {
	return r.matrix
}

// ThresholdKineticEnergy returns the minimum projectile kinetic energy
// (MeV) for scattering to the residue's ground state.
func (r *NuclearReaction) ThresholdKineticEnergy() float64 {
	return r.keaThreshold
}

// MaxLevelEnergy returns the highest residue excitation energy (MeV)
// kinematically accessible for the given projectile kinetic energy.
func (r *NuclearReaction) MaxLevelEnergy(keA float64) float64 {
	// Total CM-frame energy.
	eCM := math.Sqrt((r.ma+r.mb)*(r.ma+r.mb) + 2*r.mb*keA)
	return eCM - r.mc - r.mdGS
}

// TotalXS returns the total cross section (MeV^-2) summed over accessible
// levels.
func (r *NuclearReaction) TotalXS(pdgA int, keA float64) float64 {
	return r.summedXS(pdgA, keA, 0, nil, false)
}

// DiffXS returns the differential cross section
// d(sigma)/d(cos theta_c^CM) (MeV^-2) summed over accessible levels.
func (r *NuclearReaction) DiffXS(pdgA int, keA, cosThetaCM float64) float64 {
	if cosThetaCM < -1 || cosThetaCM > 1 {
		return 0
	}
	return r.summedXS(pdgA, keA, cosThetaCM, nil, true)
}

// summedXS accumulates partial cross sections over the accessible levels of
// the matrix element table. When levelXS is non-nil it receives one weight
// per accessible level, in table order, including zeros for levels with
// vanishing strength so that indices stay aligned with the table. When
// differential is true each partial cross section is weighted by the
// angular PDF at cosThetaCM.
func (r *NuclearReaction) summedXS(pdgA int, keA, cosThetaCM float64,
	levelXS *[]float64, differential bool) float64 {

	if pdgA != r.pdgA || keA < r.keaThreshold {
		return 0
	}

	maxE := r.MaxLevelEnergy(keA)
	xsec := 0.0
	for i := range r.matrix {
		me := &r.matrix[i]
		// The table is sorted, so the first inaccessible level ends
		// the sum.
		if me.LevelEnergy > maxE {
			break
		}

		partial := 0.0
		if me.Strength != 0 {
			var betaC float64
			partial, betaC = r.partialXS(me, keA)
			if math.IsNaN(partial) {
				r.log.Warn("replacing NaN partial cross section"+
					" with zero",
					"reaction", r.description,
					"level_energy", me.LevelEnergy,
					"KEa", keA)
				partial = 0
			} else if differential {
				partial *= me.CosThetaPDF(cosThetaCM, betaC)
			}
		}

		xsec += partial
		if levelXS != nil {
			*levelXS = append(*levelXS, partial)
		}
	}
	return xsec
}

// partialXS computes the total cross section (MeV^-2) for scattering to the
// single level described by me, together with the ejectile's CM-frame
// speed. The caller has already checked that the level is accessible.
func (r *NuclearReaction) partialXS(me *MatrixElement,
	keA float64) (xsec, betaCCM float64) {

	md := r.mdGS + me.LevelEnergy
	ea := keA + r.ma
	s, ecCM, pcCM, edCM := twoTwoScatter(ea, r.ma, r.mb, r.mc, md)

	sqrtS := math.Sqrt(s)
	ebCM := (s + r.mb*r.mb - r.ma*r.ma) / (2 * sqrtS)

	xsec = (gf2 / math.Pi) * (ebCM * edCM / s) * ecCM * pcCM * me.Strength

	switch r.process {
	case ProcessNeutrinoCC, ProcessAntiNeutrinoCC:
		// Relative speed of the ejectile and residue, from the
		// invariant dot product of their four-momenta.
		pcDotPd := edCM*ecCM + pcCM*pcCM
		betaRel := realSqrt(pcDotPd*pcDotPd-r.mc*r.mc*md*md) / pcDotPd
		xsec *= vud2 * r.coulombCorrectionFactor(betaRel)
	case ProcessNC:
		// Only Fermi transitions couple to the weak nuclear charge.
		if me.Type == Fermi {
			qw := r.weakNuclearCharge()
			xsec *= 0.25 * qw * qw
		}
	}

	betaCCM = 0
	if ecCM > 0 {
		betaCCM = pcCM / ecCM
	}
	return xsec, betaCCM
}

// weakNuclearCharge returns the weak nuclear charge of the target nucleus.
func (r *NuclearReaction) weakNuclearCharge() float64 {
	n := float64(r.ai - r.zi)
	z := float64(r.zi)
	return n - (1-4*sin2ThetaW)*z
}

// coulombCorrectionFactor returns the multiplicative Coulomb correction for
// an ejectile-residue pair receding with relative speed betaRel. In the
// pure EMA and MEMA modes an invalid approximation yields NaN, which the
// caller floors to zero.
func (r *NuclearReaction) coulombCorrectionFactor(betaRel float64) float64 {
	needFermi := r.coulombMode == CoulombFermi ||
		r.coulombMode == CoulombFermiEMA ||
		r.coulombMode == CoulombFermiMEMA
	var fermi float64
	if needFermi {
		fermi = r.fermiFunction(betaRel)
	}

	switch r.coulombMode {
	case CoulombNone:
		return 1
	case CoulombFermi:
		return fermi
	}

	modified := r.coulombMode == CoulombMEMA ||
		r.coulombMode == CoulombFermiMEMA
	ema, ok := r.emaFactor(betaRel, modified)

	switch r.coulombMode {
	case CoulombEMA, CoulombMEMA:
		if !ok {
			return math.NaN()
		}
		return ema
	case CoulombFermiEMA, CoulombFermiMEMA:
		// Use whichever valid correction sits closer to unity.
		if !ok || math.Abs(fermi-1) < math.Abs(ema-1) {
			return fermi
		}
		return ema
	}
	return 1
}

// fermiFunction evaluates the relativistic Fermi function for an ejectile
// with speed betaC in the field of the residue.
func (r *NuclearReaction) fermiFunction(betaC float64) float64 {
	gammaC := math.Pow(1-betaC*betaC, -0.5)
	zf := float64(r.zf)
	s := math.Sqrt(1 - alphaFS*alphaFS*zf*zf)

	// Nuclear radius in natural units (MeV^-1).
	rho := nuclearRadius(r.af)

	eta := alphaFS * zf / betaC
	if r.pdgC < 0 {
		// Antileptons feel the opposite sign of the charge.
		eta = -eta
	}

	num := cgamma(complex(s, eta))
	norm := real(num)*real(num) + imag(num)*imag(num)
	denom := math.Gamma(1 + 2*s)

	return 2 * (1 + s) *
		math.Pow(2*betaC*gammaC*rho*r.mc, 2*s-2) *
		math.Exp(math.Pi*eta) * norm / (denom * denom)
}

// emaFactor evaluates the (modified) effective momentum approximation for
// an ejectile with relative speed betaRel. ok is false when the Coulomb
// potential pushes the ejectile's effective energy below its rest mass,
// invalidating the approximation.
func (r *NuclearReaction) emaFactor(betaRel float64,
	modified bool) (factor float64, ok bool) {

	// Coulomb potential at the residue's center.
	vc := -3 * float64(r.zf) * alphaFS / (2 * nuclearRadius(r.af))
	if r.pdgC < 0 {
		vc = -vc
	}

	// Ejectile total energy in the frame where the residue is at rest.
	gammaRel := math.Pow(1-betaRel*betaRel, -0.5)
	eC := gammaRel * r.mc
	pC := realSqrt(eC*eC - r.mc*r.mc)

	eEff := eC - vc
	if eEff < r.mc {
		return 0, false
	}
	pEff := realSqrt(eEff*eEff - r.mc*r.mc)

	if modified {
		return pEff * eEff / (pC * eC), true
	}
	return (pEff / pC) * (pEff / pC), true
}

// CreateEvent samples a complete event: the residue level, the CM-frame
// scattering angles, and, for a transition into the unbound continuum, the
// residue spin-parity.
func (r *NuclearReaction) CreateEvent(pdgA int, keA float64,
	g *Generator) (*Event, error) {

	if pdgA != r.pdgA {
		return nil, fmt.Errorf("%w: reaction %q cannot handle"+
			" projectile %d", ErrConfig, r.description, pdgA)
	}
	if keA < r.keaThreshold {
		return nil, fmt.Errorf("%w: projectile kinetic energy %g MeV is"+
			" below the %g MeV threshold of %q", ErrKinematics, keA,
			r.keaThreshold, r.description)
	}

	weights := make([]float64, 0, len(r.matrix))
	total := r.summedXS(pdgA, keA, 0, &weights, false)
	if len(weights) == 0 || total <= 0 {
		return nil, fmt.Errorf("%w: no accessible level has a nonzero"+
			" cross section for %q at KEa = %g MeV", ErrKinematics,
			r.description, keA)
	}

	idx, err := g.sampleIndex(weights)
	if err != nil {
		return nil, err
	}
	me := &r.matrix[idx]

	md := r.mdGS + me.LevelEnergy
	ea := keA + r.ma
	_, ecCM, pcCM, edCM := twoTwoScatter(ea, r.ma, r.mb, r.mc, md)

	betaC := 0.0
	if ecCM > 0 {
		betaC = pcCM / ecCM
	}
	cosTheta, err := r.sampleCosTheta(me, betaC, g)
	if err != nil {
		return nil, err
	}
	phi := g.Uniform(0, 2*math.Pi, false)

	twoJ, par, err := r.residueSpinParity(me, g)
	if err != nil {
		return nil, err
	}

	return r.makeEventObject(ea, pcCM, cosTheta, phi, ecCM, edCM, md,
		me.LevelEnergy, twoJ, par, 0, r.qD)
}

func (r *NuclearReaction) sampleCosTheta(me *MatrixElement, betaC float64,
	g *Generator) (float64, error) {

	max, err := me.MaxCosThetaPDF(betaC)
	if err != nil {
		return 0, err
	}
	pdf := func(ct float64) float64 { return me.CosThetaPDF(ct, betaC) }
	ct, _ := g.RejectionSample(pdf, -1, 1, max)
	return ct, nil
}

// residueSpinParity returns the spin-parity of the sampled residue level.
// For transitions into the unbound continuum (nil Level) the allowed
// approximation fixes the possibilities from the target's ground state: a
// Fermi transition copies its spin-parity, while a Gamow-Teller transition
// keeps the parity and couples the spins to |J_gs - 1| .. J_gs + 1, sampled
// with equal weights.
func (r *NuclearReaction) residueSpinParity(me *MatrixElement,
	g *Generator) (int, nucphys.Parity, error) {

	if me.Level != nil {
		return me.Level.TwoJ, me.Level.Parity, nil
	}

	twoJgs, pgs, err := g.StructureDB().GroundStateSpinParity(r.pdgB)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: no ground-state spin-parity for"+
			" target %d: %v", ErrConfig, r.pdgB, err)
	}

	switch me.Type {
	case Fermi:
		return twoJgs, pgs, nil
	case GamowTeller:
		if twoJgs == 0 {
			return 2, pgs, nil
		}
		lo := twoJgs - 2
		if lo < 0 {
			lo = -lo
		}
		var allowed []int
		for tj := lo; tj <= twoJgs+2; tj += 2 {
			allowed = append(allowed, tj)
		}
		weights := make([]float64, len(allowed))
		for i := range weights {
			weights[i] = 1
		}
		k, err := g.sampleIndex(weights)
		if err != nil {
			return 0, 0, err
		}
		return allowed[k], pgs, nil
	}
	return 0, 0, fmt.Errorf("%w: unknown matrix element type %v",
		ErrPhysics, me.Type)
}
