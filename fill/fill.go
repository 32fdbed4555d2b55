/*
 * fill.go, part of gofill.
 *
 * Copyright 2026 The gofill Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package fill packs copies of a rigid molecule (the adsorbate) into a periodic
//host structure, such as a MOF unit cell. Molecules are placed one at a time at random
//positions and orientations, and a placement is accepted only if no atom of the new
//molecule gets closer than a tolerance to any atom already present, with distances
//taken under the minimum-image convention. A molecule that can't be placed within
//its attempt budget ends the fill, as the cell is taken to be saturated.
package fill

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	chem "github.com/rmera/gofill"
	"github.com/rmera/gofill/clash"
	"github.com/rmera/gofill/molecules"
	v3 "github.com/rmera/gofill/v3"
	"github.com/rs/zerolog"
)

//Filler keeps a host structure and an adsorbate, and fills copies of the latter into the former.
//Neither the host nor the adsorbate given are modified, and every call to Fill starts
//from the bare host. A Filler is not safe for concurrent use.
type Filler struct {
	base     *chem.Molecule
	template *chem.Molecule
	centroid []float64
	tol      float64
	formula  string
	opts     *Options
	rng      *rand.Rand
	seed     uint64
	log      zerolog.Logger
}

//New returns a Filler for the host structure host, the adsorbate ads and the minimum
//distance tol (in A) between any adsorbate atom and any other atom. Only the first
//frame of each structure is used. The host must be periodic and non-empty, the
//adsorbate non-empty and tol not negative.
func New(host, ads *chem.Molecule, tol float64, opts ...*Options) (*Filler, error) {
	var o *Options
	if len(opts) > 0 && opts[0] != nil {
		o = opts[0]
	} else {
		o = DefaultOptions()
	}
	if err := check(host, ads, tol); err != nil {
		err.Decorate("New")
		return nil, err
	}
	F := &Filler{tol: tol, opts: o, log: o.Logger()}
	F.base = firstFrame(host)
	F.template = firstFrame(ads)
	F.template.Cell = nil
	F.centroid = chem.Centroid(F.template.Coords[0])
	F.formula = chem.Formula(F.template)
	F.seed = o.Seed()
	if F.seed == 0 {
		F.seed = uint64(time.Now().UnixNano())
	}
	F.rng = rand.New(rand.NewPCG(F.seed, F.seed^0x9e3779b97f4a7c15))
	F.log.Debug().Str("adsorbate", F.formula).Int("host_atoms", F.base.Len()).Float64("tol", tol).
		Uint64("seed", F.seed).Msg("filler ready")
	return F, nil
}

//NewFromSpec is like New, but the adsorbate is given as a string, resolved by Resolve.
func NewFromSpec(host *chem.Molecule, spec string, tol float64, opts ...*Options) (*Filler, error) {
	ads, err := Resolve(spec)
	if err != nil {
		return nil, err
	}
	return New(host, ads, tol, opts...)
}

//Resolve turns an adsorbate specification into a structure. If spec names an existing file,
//it is read with chem.FileRead. Otherwise, or if reading fails, spec is taken as a formula
//and built with molecules.Build. If both fail, the error is an *UnresolvableAdsorbateError.
func Resolve(spec string) (*chem.Molecule, error) {
	var ferr error
	if st, err := os.Stat(spec); err != nil {
		ferr = err
	} else if st.IsDir() {
		ferr = fmt.Errorf("%s is a directory", spec)
	} else {
		mol, err := chem.FileRead(spec)
		if err == nil {
			return mol, nil
		}
		ferr = err
	}
	mol, merr := molecules.Build(spec)
	if merr == nil {
		return mol, nil
	}
	return nil, &UnresolvableAdsorbateError{Spec: spec, FileErr: ferr, FormulaErr: merr}
}

func check(host, ads *chem.Molecule, tol float64) chem.Error {
	switch {
	case host == nil || ads == nil:
		return &Error{"nil host or adsorbate", []string{"check"}}
	case !host.Periodic():
		return &Error{"the host structure has no periodic cell", []string{"check"}}
	case host.Len() == 0 || host.LenFrames() == 0:
		return &Error{"the host structure has no atoms", []string{"check"}}
	case ads.Len() == 0 || ads.LenFrames() == 0:
		return &Error{"the adsorbate has no atoms", []string{"check"}}
	case tol < 0:
		return &Error{fmt.Sprintf("negative tolerance %g", tol), []string{"check"}}
	}
	for _, m := range []*chem.Molecule{host, ads} {
		if err := m.Corrupted(); err != nil {
			return &Error{err.Error(), []string{"check"}}
		}
	}
	return nil
}

//firstFrame returns a deep copy of the first frame of mol.
func firstFrame(mol *chem.Molecule) *chem.Molecule {
	ret := mol.Copy()
	ret.Coords = ret.Coords[:1]
	return ret
}

//Formula returns the Hill formula of the adsorbate.
func (F *Filler) Formula() string {
	return F.formula
}

//Seed returns the seed actually used for the random number generator.
func (F *Filler) Seed() uint64 {
	return F.seed
}

//Tolerance returns the minimum distance between an adsorbate atom and any other atom.
func (F *Filler) Tolerance() float64 {
	return F.tol
}

//Fill places up to n copies of the adsorbate in a fresh copy of the host, trying
//at most maxiter random positions for each one. n <= 0 means no limit: the fill goes on until
//the cell is saturated. maxiter <= 0 means DefaultMaxIter. A result with fewer molecules than
//requested is not an error. If verbose is true, every placement is logged at info
//level, instead of debug.
func (F *Filler) Fill(n, maxiter int, verbose bool) (*Result, error) {
	if maxiter <= 0 {
		maxiter = DefaultMaxIter
	}
	if n <= 0 && F.tol == 0 {
		return nil, &Error{"an unbounded fill with zero tolerance would never end", []string{"Fill"}}
	}
	working := F.base.Copy()
	cell := working.Cell
	checker := F.opts.Checker()
	checker.Reset(working.Coords[0], cell, F.tol)
	res := &Result{Mol: working, HostAtoms: working.Len(), AdsorbateAtoms: F.template.Len(), Formula: F.formula, Requested: n, Seed: F.seed}
	cand := v3.Zeros(F.template.Len())
	failures := 0
	molid := maxMolID(working)
	for n <= 0 || res.Placed < n {
		k, ok := F.place(cand, checker, maxiter)
		if !ok {
			failures++
			res.FailedAttempts += k
			res.Failures = failures
			F.event(verbose).Int("attempts", k).Int("placed", res.Placed).Msgf("couldn't add %s", F.formula)
			if failures > F.opts.Retries() {
				res.Saturated = true
				break
			}
			continue
		}
		molid++
		top := chem.NewTopology(nil, 0, 1)
		top.CopyAtoms(F.template)
		for _, at := range top.Atoms {
			at.MolID = molid
			at.Het = true
		}
		if err := working.Append(top, cand); err != nil {
			return res, errDecorate(err, "Fill")
		}
		checker.Add(cand)
		res.Placed++
		res.Attempts = append(res.Attempts, k)
		F.event(verbose).Int("attempts", k).Msgf("added %s after %d attempts", F.formula, k)
	}
	working.ResetIDs()
	F.event(verbose).Int("placed", res.Placed).Int("requested", n).Bool("saturated", res.Saturated).
		Msgf("added %d %s molecules", res.Placed, F.formula)
	return res, nil
}

//FillMany runs Fill structures times, and returns the independent results.
//It stops at the first error.
func (F *Filler) FillMany(structures, n, maxiter int, verbose bool) ([]*Result, error) {
	ret := make([]*Result, 0, structures)
	for i := 0; i < structures; i++ {
		r, err := F.Fill(n, maxiter, verbose)
		if err != nil {
			return ret, errDecorate(err, fmt.Sprintf("FillMany, structure %d", i))
		}
		ret = append(ret, r)
	}
	return ret, nil
}

//place tries to put one copy of the template in a place where it doesn't clash.
//On success cand holds the new coordinates. It returns the number of attempts used.
func (F *Filler) place(cand *v3.Matrix, checker clash.Checker, maxiter int) (int, bool) {
	var R *v3.Matrix
	reorient := F.opts.Reorient()
	orienter := F.opts.Orienter()
	cell := F.base.Cell
	for k := 1; k <= maxiter; k++ {
		if (k-1)%reorient == 0 {
			R = orienter.Orient(F.rng)
		}
		target := cell.Point([3]float64{F.rng.Float64(), F.rng.Float64(), F.rng.Float64()})
		chem.RigidMove(cand, F.template.Coords[0], F.centroid, R, target)
		if !checker.Clash(cand) {
			return k, true
		}
	}
	return maxiter, false
}

func (F *Filler) event(verbose bool) *zerolog.Event {
	if verbose {
		return F.log.Info()
	}
	return F.log.Debug()
}

func maxMolID(mol *chem.Molecule) int {
	ret := 0
	for _, at := range mol.Atoms {
		if at.MolID > ret {
			ret = at.MolID
		}
	}
	return ret
}

//errDecorate decorates err with caller if it implements chem.Error, and
//wraps it otherwise.
func errDecorate(err error, caller string) error {
	var e chem.Error
	if errors.As(err, &e) {
		e.Decorate(caller)
		return err
	}
	return fmt.Errorf("%s: %w", caller, err)
}
