package marley

import "math"

// Physical constants (2014 PDG Review of Particle Physics).
const (
	gf         = 1.16637e-11 // Fermi coupling constant, MeV^(-2)
	gf2        = gf * gf
	vud        = 0.97427 // CKM matrix element |V_ud|
	vud2       = vud * vud
	sin2ThetaW = 0.23155         // effective sin^2 of the weak mixing angle
	alphaFS    = 7.2973525698e-3 // fine structure constant
	hbarC      = 197.3269718     // MeV*fm
	r0         = 1.2             // nuclear radius parameter, fm
	microAMU   = 0.000931494061  // MeV per micro-amu
)

// nuclearRadius returns the approximate nuclear radius r0*A^(1/3) in
// natural units (MeV^(-1)).
func nuclearRadius(a int) float64 {
	return r0 * math.Cbrt(float64(a)) / hbarC
}
