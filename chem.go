/*
 * chem.go, part of gofill.
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

package chem

import (
	"fmt"

	"github.com/rmera/gofill/pbc"
	v3 "github.com/rmera/gofill/v3"
)

/**Note: Many functions here panic instead of returning errors. This is because they are "fundamental"
 * functions. If something goes wrong here, the program is way-most likely wrong and should
 * crash. Most panics are related to using the function on a nil object or trying to access out-of bounds
 * fields**/

//Atom contains the atoms read except for the coordinates, which will be in a matrix.
type Atom struct {
	Name    string
	ID      int
	Tag     int //Just added this for something that someone might want to keep that is not a float.
	Molname string
	MolID   int
	Mass    float64
	Vdw     float64
	Charge  float64
	Symbol  string
	Het     bool // is hetatm in the pdb file?
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	ret := *A
	return &ret
}

/*****Topology type***/

//Topology contains information about a molecule which is not expected to change in time (i.e. everything except for coordinates)
type Topology struct {
	Atoms  []*Atom
	charge int
	multi  int
}

//NewTopology returns a topology with the given atoms, charge and multiplicity.
//The atoms are not copied.
func NewTopology(ats []*Atom, charge, multi int) *Topology {
	if multi <= 0 {
		multi = 1
	}
	return &Topology{Atoms: ats, charge: charge, multi: multi}
}

//Charge gets the total charge of the topology
func (T *Topology) Charge() int {
	return T.charge
}

//Multi returns the multiplicity of the topology
func (T *Topology) Multi() int {
	return T.multi
}

//SetCharge sets the total charge of the topology to i
func (T *Topology) SetCharge(i int) {
	T.charge = i
}

//SetMulti sets the multiplicity in the topology to i
func (T *Topology) SetMulti(i int) {
	T.multi = i
}

//Atom returns the Atom corresponding to the index i
//of the Atom slice in the Topology. Panics if
//out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic("Topology: Requested Atom out of bounds")
	}
	return T.Atoms[i]
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

//CopyAtoms copies the atoms in A into the receiver.
func (T *Topology) CopyAtoms(A Atomer) {
	T.Atoms = make([]*Atom, 0, A.Len())
	for i := 0; i < A.Len(); i++ {
		T.Atoms = append(T.Atoms, A.Atom(i).Copy())
	}
}

//AppendAtom appends an atom at the end of the topology.
func (T *Topology) AppendAtom(at *Atom) {
	T.Atoms = append(T.Atoms, at)
}

//ResetIDs sets the current order of atoms as ID, starting from 1.
func (T *Topology) ResetIDs() {
	for key, val := range T.Atoms {
		val.ID = key + 1
	}
}

//Masses returns a slice with the masses of each atom. It returns an error if
//some mass is not known.
func (T *Topology) Masses() ([]float64, error) {
	mass := make([]float64, T.Len())
	for i, at := range T.Atoms {
		if at.Mass == 0 {
			return mass, &CError{fmt.Sprintf("Not all the masses have been obtained: %d %v", i, at), []string{"Masses"}, nil}
		}
		mass[i] = at.Mass
	}
	return mass, nil
}

/**Type Molecule**/

//Molecule contains the atoms and one or more sets (frames) of coordinates.
//Cell is the periodic cell, nil for non-periodic molecules.
type Molecule struct {
	*Topology
	Coords []*v3.Matrix
	Cell   *pbc.Lattice
}

//NewMolecule makes a molecule with ats atoms, coords coordinates and
//cell cell (which can be nil). It returns an error if the coordinates
//are inconsistent with the atoms.
func NewMolecule(coords []*v3.Matrix, ats Atomer, cell *pbc.Lattice) (*Molecule, error) {
	if ats == nil {
		return nil, &CError{"Supplied a nil Topology", []string{"NewMolecule"}, nil}
	}
	mol := new(Molecule)
	if top, ok := ats.(*Topology); ok {
		mol.Topology = top
	} else {
		mol.Topology = NewTopology(nil, 0, 1)
		for i := 0; i < ats.Len(); i++ {
			mol.Atoms = append(mol.Atoms, ats.Atom(i))
		}
	}
	mol.Coords = coords
	mol.Cell = cell
	if err := mol.Corrupted(); err != nil {
		return nil, errDecorate(err, "NewMolecule")
	}
	return mol, nil
}

//Copy returns a deep copy of the molecule, including coordinates.
//The cell is shared, since a Lattice is never modified.
func (M *Molecule) Copy() *Molecule {
	if err := M.Corrupted(); err != nil {
		panic(err.Error())
	}
	mol := new(Molecule)
	mol.Topology = NewTopology(nil, M.charge, M.multi)
	mol.CopyAtoms(M.Topology)
	mol.Coords = make([]*v3.Matrix, 0, len(M.Coords))
	for _, val := range M.Coords {
		c := v3.Zeros(val.NVecs())
		c.Copy(val.Dense)
		mol.Coords = append(mol.Coords, c)
	}
	mol.Cell = M.Cell
	return mol
}

//Append adds the atoms in top, with coordinates coords, at the end of the
//molecule. The atoms are copied. Only works for single-frame molecules.
func (M *Molecule) Append(top Atomer, coords *v3.Matrix) error {
	if len(M.Coords) != 1 {
		return &CError{fmt.Sprintf("Can only append to single-frame molecules, this one has %d frames", len(M.Coords)), []string{"Append"}, nil}
	}
	if top.Len() != coords.NVecs() {
		return &CError{fmt.Sprintf("Mismatched atoms (%d) and coordinates (%d)", top.Len(), coords.NVecs()), []string{"Append"}, nil}
	}
	old := M.Coords[0]
	newc := v3.Zeros(old.NVecs() + coords.NVecs())
	newc.Stack(old, coords)
	for i := 0; i < top.Len(); i++ {
		M.AppendAtom(top.Atom(i).Copy())
	}
	M.Coords[0] = newc
	return nil
}

//Coord returns a copy of the coordinates for the atom atom in the frame frame.
//panics if frame or coords are out of range.
func (M *Molecule) Coord(atom, frame int) []float64 {
	if frame >= len(M.Coords) {
		panic(fmt.Sprintf("Frame requested (%d) out of range", frame))
	}
	return M.Coords[frame].Vec(nil, atom)
}

//Corrupted checks whether the molecule is corrupted, i.e. the
//coordinates don't match the number of atoms.
func (M *Molecule) Corrupted() error {
	for i := range M.Coords {
		if M.Coords[i] == nil || M.Len() != M.Coords[i].NVecs() {
			n := 0
			if M.Coords[i] != nil {
				n = M.Coords[i].NVecs()
			}
			return &CError{fmt.Sprintf("Inconsistent coordinates/atoms in frame %d: Atoms %d, coords: %d", i, M.Len(), n), []string{"Corrupted"}, nil}
		}
	}
	return nil
}

//LenFrames returns the number of frames in the molecule
func (M *Molecule) LenFrames() int {
	return len(M.Coords)
}

//Periodic returns true if the molecule has a periodic cell.
func (M *Molecule) Periodic() bool {
	return M.Cell != nil
}
