/*
 * molecules.go, part of gofill.
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

//Package molecules is a small library of molecular geometries, looked up by
//chemical formula. It covers common small adsorbates (water, carbon dioxide,
//methane, light hydrocarbons and so on) and the noble gases.
package molecules

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"

	chem "github.com/rmera/gofill"
	v3 "github.com/rmera/gofill/v3"
	"gopkg.in/yaml.v3"
)

//go:embed g2.yaml
var g2data []byte

//ErrUnknown is returned (wrapped) when there is no geometry for the requested formula.
var ErrUnknown = errors.New("molecules: unknown formula")

type entry struct {
	Description string       `yaml:"description"`
	Symbols     []string     `yaml:"symbols"`
	Positions   [][3]float64 `yaml:"positions"`
}

var (
	loadOnce sync.Once
	library  map[string]*entry
	loadErr  error
)

func load() (map[string]*entry, error) {
	loadOnce.Do(func() {
		lib := make(map[string]*entry)
		if err := yaml.Unmarshal(g2data, &lib); err != nil {
			loadErr = fmt.Errorf("molecules: can't parse embedded data: %w", err)
			return
		}
		for name, e := range lib {
			if len(e.Symbols) == 0 || len(e.Symbols) != len(e.Positions) {
				loadErr = fmt.Errorf("molecules: entry %s has %d symbols and %d positions", name, len(e.Symbols), len(e.Positions))
				return
			}
		}
		library = lib
	})
	return library, loadErr
}

//Build returns a new copy of the molecule named formula (e.g. "H2O", "CO2", "CH3OH", "Ar").
//Names are case-sensitive. The molecule is not periodic. If the formula is not in the library, the
//error wraps ErrUnknown.
func Build(formula string) (*chem.Molecule, error) {
	lib, err := load()
	if err != nil {
		return nil, err
	}
	e, ok := lib[formula]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, formula)
	}
	ats := make([]*chem.Atom, len(e.Symbols))
	coords := v3.Zeros(len(e.Symbols))
	for i, s := range e.Symbols {
		at := &chem.Atom{Symbol: s, Name: s, ID: i + 1, MolID: 1, Molname: molname(formula)}
		at.Mass, _ = chem.SymbolMass(s)
		at.Vdw, _ = chem.SymbolVdw(s)
		ats[i] = at
		coords.SetVec(i, e.Positions[i][:])
	}
	return chem.NewMolecule([]*v3.Matrix{coords}, chem.NewTopology(ats, 0, 1), nil)
}

//Known returns the names of all the molecules in the library, sorted.
func Known() []string {
	lib, err := load()
	if err != nil {
		return nil
	}
	ret := make([]string, 0, len(lib))
	for k := range lib {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

//Description returns a short human-readable name for formula, or "" if it is not known.
func Description(formula string) string {
	lib, err := load()
	if err != nil {
		return ""
	}
	if e, ok := lib[formula]; ok {
		return e.Description
	}
	return ""
}

//residue-like name, at most 3 characters.
func molname(formula string) string {
	if len(formula) > 3 {
		return formula[:3]
	}
	return formula
}
