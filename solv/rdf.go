/*
 * rdf.go, part of gofill.
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

//Package solv describes where the molecules placed by a fill ended up, through
//radial distribution functions of the placed molecules around a set of host atoms.
//Distances follow the minimum-image convention of the filled cell.
package solv

import (
	"fmt"
	"log"
	"math"
	"runtime"
	"sort"
	"strings"
	"sync"

	chem "github.com/rmera/gofill"
	"github.com/rmera/gofill/clash"
	"github.com/rmera/gofill/fill"
	v3 "github.com/rmera/gofill/v3"
)

type Options struct {
	com  bool
	cpus int
	step float64
	end  float64
}

//Returns a Options with the default options.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.com = false
	ret.cpus = runtime.NumCPU()
	ret.step = 0.1
	ret.end = 10
	return ret
}

//Returns whether to use the center of mass of each placed molecule in the calculations,
//instead of its closest atom, and sets the value to the one given, if any
func (r *Options) COM(com ...bool) bool {
	ret := r.com
	if len(com) > 0 {
		r.com = com[0]
	}
	return ret
}

//Returns the current value of the Cpus options (the number of gorutines to
//use on the concurrent calculation) and sets it, if
//a valid value is given
func (r *Options) Cpus(cpus ...int) int {
	ret := r.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		r.cpus = cpus[0]
	}
	return ret
}

//Returns the distance step to be used in the RDF calculation
//and sets if to a value, if a valid value is given
func (r *Options) Step(step ...float64) float64 {
	ret := r.step
	if len(step) > 0 && step[0] > 0 {
		r.step = step[0]
	}
	return ret
}

//Returns the maximum distance from the reference to be considered
//in the RDF calculation and sets if to a value, if given
func (r *Options) End(end ...float64) float64 {
	ret := r.end
	if len(end) > 0 && end[0] > 0 {
		r.end = end[0]
	}
	return ret
}

//RefIndexes returns the indexes of the host atoms in res with one of the given
//symbols, or of all the host atoms if no symbol is given.
func RefIndexes(res *fill.Result, symbols ...string) []int {
	ret := make([]int, 0, res.HostAtoms)
	for i := 0; i < res.HostAtoms; i++ {
		if len(symbols) == 0 || isInString(symbols, res.Mol.Atom(i).Symbol) {
			ret = append(ret, i)
		}
	}
	return ret
}

//MolRDF calculates the RDF of the placed molecules around the atoms refindexes, averaged over
//the filled structures in results, which must all share the same host. It returns the
//normalized RDF and the mean number of molecules within each distance. Structures are
//processed concurrently, depending on the Cpus option.
func MolRDF(results []*fill.Result, refindexes []int, options ...*Options) ([]float64, []float64, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if len(results) == 0 {
		return nil, nil, fmt.Errorf("solv: no structures given")
	}
	if len(refindexes) == 0 {
		return nil, nil, fmt.Errorf("solv: no reference atoms given")
	}
	for i, res := range results {
		for _, v := range refindexes {
			if v < 0 || v >= res.HostAtoms {
				return nil, nil, fmt.Errorf("solv: reference atom %d is not in the host of structure %d", v, i)
			}
		}
	}
	cdfs := make([][]float64, len(results))
	sem := make(chan struct{}, o.cpus)
	var wg sync.WaitGroup
	for i, res := range results {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, res *fill.Result) {
			defer wg.Done()
			cdfs[i] = FrameUMolCRDF(res, refindexes, o)
			<-sem
		}(i, res)
	}
	wg.Wait()
	ret := make([]float64, len(cdfs[0]))
	for _, cdf := range cdfs {
		for j, v := range cdf {
			ret[j] += v
		}
	}
	rdf, n := MDFFromCDF(ret, len(results), o.step)
	return rdf, n, nil
}

//MDFFromCDF transforms an accumulated cdf into a molecular density function, normalized
//so its last value is 1 (if not zero), averaging over frames structures. It returns the density and the
//mean number of molecules within each distance. cdf is not modified.
func MDFFromCDF(cdf []float64, frames int, step float64) ([]float64, []float64) {
	ret := make([]float64, len(cdf))
	ret2 := make([]float64, len(cdf))
	if len(cdf) == 0 || frames <= 0 {
		return ret, ret2
	}
	vp := (4.0 / 3.0) * math.Pi
	prev := 0.0
	for i, v := range cdf {
		fi := float64(i)
		vol := vp * (math.Pow((fi+1)*step, 3) - math.Pow(fi*step, 3))
		ret[i] = (v - prev) / float64(frames) / vol
		ret2[i] = v / float64(frames)
		prev = v
	}
	last := ret[len(ret)-1]
	if last != 0 {
		for i := range ret {
			ret[i] /= last
		}
	}
	return ret, ret2
}

//FrameUMolCRDF Obtains the Unnormalized "Cummulative Molecular RDF" for one filled structure, i.e.
//the number of placed molecules within each multiple of the step from the reference.
func FrameUMolCRDF(res *fill.Result, refindexes []int, options ...*Options) []float64 {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	totalsteps := int(math.Round(o.end / o.step))
	ret := make([]float64, 0, totalsteps)
	dists := DistRank(res, refindexes, o).Distances()
	sort.Float64s(dists)
	for i := 1; i <= totalsteps; i++ {
		limit := float64(i) * o.step
		n := sort.Search(len(dists), func(j int) bool { return dists[j] > limit })
		ret = append(ret, float64(n))
	}
	return ret
}

//DistRank determines the minimum distance between any reference atom and each placed
//molecule (or its center of mass, if the COM option is set). Molecules farther than the End option
//are left out. The list satisfies the sort interface.
func DistRank(res *fill.Result, refindexes []int, options ...*Options) MolDistList {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	coords := res.Mol.Coords[0]
	ref := v3.Zeros(len(refindexes))
	ref.SomeVecs(coords, refindexes)
	ranks := make([]*molDist, 0, res.Placed)
	com := o.com
	for i := 0; i < res.Placed; i++ {
		indexes := res.Molecule(i)
		test := v3.Zeros(len(indexes))
		test.SomeVecs(coords, indexes)
		if com {
			c, err := centerOfMass(res.Mol, test, indexes)
			if err != nil {
				//if it fails, we don't try again, for consistency.
				com = false
				log.Printf("gofill/solv/DistRank Couldn't obtain the COM: %s. Will work with all atoms\n", err.Error())
			} else {
				test = c
			}
		}
		distance, _ := clash.LowestDist(test, ref, res.Mol.Cell)
		if distance <= o.end {
			ranks = append(ranks, &molDist{Distance: distance, MolID: res.Mol.Atom(indexes[0]).MolID})
		}
	}
	return MolDistList(ranks)
}

func centerOfMass(mol *chem.Molecule, test *v3.Matrix, indexes []int) (*v3.Matrix, error) {
	mass := make([]float64, len(indexes))
	for i, v := range indexes {
		mass[i] = mol.Atom(v).Mass
	}
	c, err := chem.CenterOfMass(test, mass)
	if err != nil {
		return nil, err
	}
	return v3.NewMatrix(c)
}

//A structure for the distance from a molecule to the reference
type molDist struct {
	Distance float64
	MolID    int
}

func (M *molDist) str() string {
	return fmt.Sprintf("D: %4.3f ID: %d", M.Distance, M.MolID)
}

//A set of distances for different molecules to the same reference
type MolDistList []*molDist

func (M MolDistList) Swap(i, j int) {
	M[i], M[j] = M[j], M[i]
}

//Less returns true if the distance of the element i
//to the reference is smaller than that of the element j,
//or false otherwise
func (M MolDistList) Less(i, j int) bool {
	return M[i].Distance < M[j].Distance
}
func (M MolDistList) Len() int {
	return len(M)
}

//Distance returns the distance from the element i of
//the slice to the reference
func (M MolDistList) Distance(i int) float64 {
	return M[i].Distance
}

//MolID resturns the MolID of the i element of the slice
func (M MolDistList) MolID(i int) int {
	return M[i].MolID
}

//String produces a string representation of a set of distances
func (M MolDistList) String() string {
	retslice := make([]string, len(M))
	for i := range M {
		retslice[i] = M[i].str()
	}
	return strings.Join(retslice, "\n")
}

//Distances returns a slice with all the distances in the set
func (M MolDistList) Distances() []float64 {
	ret := make([]float64, len(M))
	for i := range M {
		ret[i] = M[i].Distance
	}
	return ret
}

//MolIDs returns a slice with the molIDs in the list
func (M MolDistList) MolIDs() []int {
	ret := make([]int, len(M))
	for i := range M {
		ret[i] = M[i].MolID
	}
	return ret
}

func isInString(container []string, test string) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}
