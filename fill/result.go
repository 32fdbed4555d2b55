/*
 * result.go, part of gofill.
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

package fill

import (
	"fmt"
	"math"

	chem "github.com/rmera/gofill"
	"github.com/rmera/gofill/clash"
	v3 "github.com/rmera/gofill/v3"
)

//Result is the outcome of one fill.
type Result struct {
	Mol            *chem.Molecule //the host plus the placed molecules
	HostAtoms      int            //the first HostAtoms atoms of Mol are the host
	AdsorbateAtoms int            //atoms per placed molecule
	Placed         int
	Requested      int   //0 or less for an unbounded fill
	Attempts       []int //attempts used for each placed molecule
	FailedAttempts int   //attempts spent on molecules that couldn't be placed
	Failures       int   //molecules that couldn't be placed
	Saturated      bool  //the fill stopped because molecules couldn't be placed
	Formula        string
	Seed           uint64
}

//Complete returns true if a bounded fill placed all the molecules requested.
func (R *Result) Complete() bool {
	return R.Requested > 0 && R.Placed >= R.Requested
}

//TotalAttempts returns all the attempts made, successful or not.
func (R *Result) TotalAttempts() int {
	ret := R.FailedAttempts
	for _, v := range R.Attempts {
		ret += v
	}
	return ret
}

//Molecule returns the indexes, in Mol, of the atoms of the ith placed molecule.
func (R *Result) Molecule(i int) []int {
	if i < 0 || i >= R.Placed {
		panic(fmt.Sprintf("molecule %d requested, %d were placed", i, R.Placed))
	}
	ret := make([]int, R.AdsorbateAtoms)
	for j := range ret {
		ret[j] = R.HostAtoms + i*R.AdsorbateAtoms + j
	}
	return ret
}

//MinDistance returns the smallest minimum-image distance between an atom of a placed
//molecule and any atom not in the same molecule, or +Inf if nothing was placed.
func (R *Result) MinDistance() float64 {
	coords := R.Mol.Coords[0]
	ret := math.Inf(1)
	for i := 0; i < R.Placed; i++ {
		idx := R.Molecule(i)
		mol := v3.Zeros(len(idx))
		mol.SomeVecs(coords, idx)
		//everything before this molecule: the host and the molecules placed earlier.
		before := v3.Zeros(idx[0])
		before.SomeVecs(coords, seq(idx[0]))
		d, _ := clash.LowestDist(mol, before, R.Mol.Cell)
		ret = math.Min(ret, d)
	}
	return ret
}

//String returns a one-line summary, suitable for an xyz comment.
func (R *Result) String() string {
	req := "all"
	if R.Requested > 0 {
		req = fmt.Sprint(R.Requested)
	}
	return fmt.Sprintf("adsorbate=%s placed=%d requested=%s attempts=%d saturated=%t", R.Formula, R.Placed, req, R.TotalAttempts(), R.Saturated)
}

func seq(n int) []int {
	ret := make([]int, n)
	for i := range ret {
		ret[i] = i
	}
	return ret
}
