// Command marley-sim generates neutrino scattering events on an argon-40
// target and writes one packed binary record per event: the residue
// excitation energy followed by the ejectile four-momentum (E, px, py, pz),
// all little-endian float64s in MeV.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/rbbouabid/marley"
	"github.com/rbbouabid/marley/nucphys"
	"github.com/rbbouabid/marley/pdg"
	"github.com/rbbouabid/marley/sim"
)

var (
	energy  = flag.Float64("E", 20, "projectile energy (MeV) for the monoenergetic source")
	useFD   = flag.Bool("fermi-dirac", false, "use a Fermi-Dirac source spectrum instead of a monoenergetic one")
	fdTemp  = flag.Float64("T", 3.5, "Fermi-Dirac temperature (MeV)")
	fdEta   = flag.Float64("eta", 0, "Fermi-Dirac pinching parameter")
	fdEmin  = flag.Float64("Emin", 0, "minimum source energy (MeV)")
	fdEmax  = flag.Float64("Emax", 60, "maximum source energy (MeV)")
	coulomb = flag.String("coulomb", "Fermi-MEMA", "Coulomb correction mode (none, Fermi, EMA, MEMA, Fermi-EMA, Fermi-MEMA)")
	elastic = flag.Bool("elastic", true, "include elastic scattering on the atomic electrons")
)

func main() {
	sim.Main(run)
}

func run(app *sim.App) {
	nw := app.NumWorkers()
	if nw < 1 {
		nw = 1
	}
	total := app.NumEvents()
	for w := 0; w < nw; w++ {
		n := total / nw
		if w < total%nw {
			n++
		}
		go worker(app, w, n)
	}
}

func worker(app *sim.App, id, nevts int) {
	gen, err := setupGenerator(app.Seed() + uint64(id))
	if err != nil {
		for i := 0; i < nevts; i++ {
			app.Errors() <- err
		}
		return
	}

	buf := make([]byte, 5*8)
	for i := 0; i < nevts; i++ {
		ev, err := gen.CreateEvent()
		if err != nil {
			app.Errors() <- fmt.Errorf("worker %d: event %d: %v",
				id, i, err)
			continue
		}
		ej := ev.Ejectile()
		binary.LittleEndian.PutUint64(buf[0*8:1*8], math.Float64bits(ev.Ex()))
		binary.LittleEndian.PutUint64(buf[1*8:2*8], math.Float64bits(ej.E()))
		binary.LittleEndian.PutUint64(buf[2*8:3*8], math.Float64bits(ej.Px()))
		binary.LittleEndian.PutUint64(buf[3*8:4*8], math.Float64bits(ej.Py()))
		binary.LittleEndian.PutUint64(buf[4*8:5*8], math.Float64bits(ej.Pz()))
		rec := make([]byte, len(buf))
		copy(rec, buf)
		app.Results() <- sim.Result{ID: int64(id)<<32 | int64(i), Data: rec}
	}
}

func setupGenerator(seed uint64) (*marley.Generator, error) {
	gen := marley.NewGenerator(seed)

	var (
		src marley.Source
		err error
	)
	if *useFD {
		src, err = marley.NewFermiDiracSource(pdg.ElectronNeutrino,
			*fdEmin, *fdEmax, *fdTemp, *fdEta)
	} else {
		src, err = marley.NewMonoenergeticSource(pdg.ElectronNeutrino,
			*energy)
	}
	if err != nil {
		return nil, err
	}
	if err := gen.SetSource(src); err != nil {
		return nil, err
	}

	ar40 := pdg.Nucleus(18, 40)
	tgt, err := marley.NewSingleAtomTarget(ar40)
	if err != nil {
		return nil, err
	}
	gen.SetTarget(tgt)

	cc, err := marley.NewNuclearReaction(marley.ProcessNeutrinoCC,
		pdg.ElectronNeutrino, ar40, pdg.Electron, pdg.Nucleus(19, 40), 1,
		gen.MassTable(), ar40MatrixElements())
	if err != nil {
		return nil, err
	}
	mode, err := marley.ParseCoulombMode(*coulomb)
	if err != nil {
		return nil, err
	}
	cc.SetCoulombMode(mode)
	gen.AddReaction(cc)

	if *elastic {
		es, err := marley.NewElectronReaction(pdg.ElectronNeutrino,
			ar40, gen.MassTable())
		if err != nil {
			return nil, err
		}
		gen.AddReaction(es)
	}

	log.Printf("worker seed %d: %d reaction(s) on %s",
		seed, len(gen.Reactions()), pdg.Symbol(ar40))
	return gen, nil
}

// ar40MatrixElements returns the allowed transition strengths for
// 40Ar --> 40K: the Fermi strength concentrated in the isobaric analog
// state and Gamow-Teller strengths from (p,n) charge-exchange data, with a
// continuum contribution above the last discrete level.
func ar40MatrixElements() marley.MatrixElementTable {
	level := func(ex float64, twoJ int, p nucphys.Parity) *marley.Level {
		return &marley.Level{Energy: ex, TwoJ: twoJ, Parity: p}
	}
	pos := nucphys.ParityPositive
	return marley.MatrixElementTable{
		{LevelEnergy: 2.290, Strength: 0.259, Type: marley.GamowTeller,
			Level: level(2.290, 2, pos)},
		{LevelEnergy: 2.730, Strength: 0.347, Type: marley.GamowTeller,
			Level: level(2.730, 2, pos)},
		{LevelEnergy: 3.146, Strength: 0.166, Type: marley.GamowTeller,
			Level: level(3.146, 2, pos)},
		{LevelEnergy: 3.517, Strength: 0.156, Type: marley.GamowTeller,
			Level: level(3.517, 2, pos)},
		{LevelEnergy: 4.384, Strength: 4.0, Type: marley.Fermi,
			Level: level(4.384, 0, pos)},
		{LevelEnergy: 4.699, Strength: 0.106, Type: marley.GamowTeller,
			Level: level(4.699, 2, pos)},
		{LevelEnergy: 5.698, Strength: 0.214, Type: marley.GamowTeller,
			Level: level(5.698, 2, pos)},
		{LevelEnergy: 6.118, Strength: 0.350, Type: marley.GamowTeller},
		{LevelEnergy: 7.513, Strength: 0.214, Type: marley.GamowTeller},
	}
}
