/*
 * pdb.go, part of gofill.
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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rmera/gofill/pbc"
	v3 "github.com/rmera/gofill/v3"
)

//This tries to guess a chemical element symbol from a PDB atom name.
//It only deals with some common elements, the element columns should be preferred.
func symbolFromName(name string) (string, error) {
	name = strings.TrimLeft(strings.ToUpper(name), "0123456789")
	if name == "" {
		return "", fmt.Errorf("Couldn't guess symbol from empty PDB name")
	}
	if len(name) >= 2 {
		two := name[:1] + strings.ToLower(name[1:2])
		switch two {
		case "Cu", "Co", "Cl", "Zn", "Zr", "Na", "Mg", "Mn", "Fe", "Ni", "Al", "Cr", "Cd", "Ca", "Br", "He", "Ne", "Ar", "Kr", "Xe", "Ti", "Se":
			//CA is alpha carbon far more often than calcium, but we don't deal with proteins.
			if _, ok := symbolMass[two]; ok {
				return two, nil
			}
		}
	}
	one := name[:1]
	if _, ok := symbolMass[one]; ok {
		return one, nil
	}
	return "", fmt.Errorf("Couldn't guess symbol from PDB name %s", name)
}

//field returns the trimmed columns [from,to) of line, or "" if the line is shorter.
func field(line string, from, to int) string {
	if len(line) <= from {
		return ""
	}
	if len(line) < to {
		to = len(line)
	}
	return strings.TrimSpace(line[from:to])
}

//Parses a valid ATOM or HETATM line of a PDB file, returns an Atom
//object with the info except for the coordinates, which are returned
//separately.
func readFullPDBLine(line string, lineno int) (*Atom, []float64, error) {
	atom := new(Atom)
	atom.Het = strings.HasPrefix(line, "HETATM")
	coords, err := readOnlyCoordsPDBLine(line, lineno)
	if err != nil {
		return nil, nil, err
	}
	atom.ID, _ = strconv.Atoi(field(line, 6, 11)) //serials can be garbage in big files
	atom.Name = field(line, 12, 16)
	atom.Molname = field(line, 17, 20)
	atom.MolID, _ = strconv.Atoi(field(line, 22, 26))
	atom.Symbol = field(line, 76, 78)
	if atom.Symbol != "" {
		atom.Symbol = atom.Symbol[:1] + strings.ToLower(atom.Symbol[1:])
	} else {
		atom.Symbol, err = symbolFromName(atom.Name)
		if err != nil {
			return nil, nil, &CError{fmt.Sprintf("Line %d: %s", lineno, err.Error()), []string{"readFullPDBLine"}, err}
		}
	}
	fillAtomData(atom)
	return atom, coords, nil
}

func readOnlyCoordsPDBLine(line string, lineno int) ([]float64, error) {
	if len(line) < 54 {
		return nil, &CError{fmt.Sprintf("Line %d too short for an atom entry", lineno), []string{"readOnlyCoordsPDBLine"}, nil}
	}
	coords := make([]float64, 3)
	var err error
	for i := range coords {
		coords[i], err = strconv.ParseFloat(strings.TrimSpace(line[30+8*i:38+8*i]), 64)
		if err != nil {
			return nil, &CError{fmt.Sprintf("Line %d: bad coordinate", lineno), []string{"strconv.ParseFloat", "readOnlyCoordsPDBLine"}, err}
		}
	}
	return coords, nil
}

//readCryst1 parses a CRYST1 record into a lattice in the PDB orientation.
func readCryst1(line string) (*pbc.Lattice, error) {
	var p [6]float64
	cols := [7]int{6, 15, 24, 33, 40, 47, 54}
	for i := range p {
		var err error
		p[i], err = strconv.ParseFloat(field(line, cols[i], cols[i+1]), 64)
		if err != nil {
			return nil, &CError{"Bad CRYST1 record", []string{"strconv.ParseFloat", "readCryst1"}, err}
		}
	}
	//1x1x1 unit cells are placeholders for non-crystal structures
	if p[0] == 1 && p[1] == 1 && p[2] == 1 {
		return nil, nil
	}
	L, err := pbc.FromParameters(p[0], p[1], p[2], p[3], p[4], p[5])
	if err != nil {
		return nil, &CError{err.Error(), []string{"pbc.FromParameters", "readCryst1"}, err}
	}
	return L, nil
}

//PDBFileRead reads the atoms, the coordinates of every model and the CRYST1 cell, if
//present, from the PDB file pdbname (which can be gzip or zstd-compressed).
func PDBFileRead(pdbname string) (*Molecule, error) {
	pdbfile, err := prepSource(pdbname)
	if err != nil {
		return nil, errDecorate(err, "PDBFileRead "+pdbname)
	}
	defer pdbfile.Close()
	mol, err := PDBRead(pdbfile)
	if err != nil {
		return nil, errDecorate(err, "PDBFileRead "+pdbname)
	}
	return mol, nil
}

//PDBRead reads a PDB from r. Atom data is taken from the first model only.
func PDBRead(r io.Reader) (*Molecule, error) {
	pdb := bufio.NewScanner(r)
	var ats []*Atom
	var cell *pbc.Lattice
	coords := [][]float64{nil}
	firstModel := true
	lineno := 0
	for pdb.Scan() {
		lineno++
		line := pdb.Text()
		switch {
		case strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM"):
			var c []float64
			var err error
			if firstModel {
				var at *Atom
				at, c, err = readFullPDBLine(line, lineno)
				if err == nil {
					ats = append(ats, at)
				}
			} else {
				c, err = readOnlyCoordsPDBLine(line, lineno)
			}
			if err != nil {
				return nil, errDecorate(err, "PDBRead")
			}
			coords[len(coords)-1] = append(coords[len(coords)-1], c...)
		case strings.HasPrefix(line, "CRYST1"):
			var err error
			if cell, err = readCryst1(line); err != nil {
				return nil, errDecorate(err, "PDBRead")
			}
		case strings.HasPrefix(line, "ENDMDL"):
			firstModel = false
			coords = append(coords, nil)
		}
	}
	if err := pdb.Err(); err != nil {
		return nil, &CError{err.Error(), []string{"bufio.Scanner", "PDBRead"}, err}
	}
	if len(coords[len(coords)-1]) == 0 {
		coords = coords[:len(coords)-1]
	}
	if len(ats) == 0 {
		return nil, &CError{"No atoms in PDB", []string{"PDBRead"}, nil}
	}
	frames := make([]*v3.Matrix, 0, len(coords))
	for _, c := range coords {
		m, err := v3.NewMatrix(c)
		if err != nil {
			return nil, errDecorate(err, "PDBRead")
		}
		frames = append(frames, m)
	}
	return NewMolecule(frames, NewTopology(ats, 0, 1), cell)
}

//PDBWrite writes the frame frame of mol to out, followed by an END record. If mol is periodic, a CRYST1 record is written
//and the coordinates are expressed in the PDB orientation of the cell (a along x, b in the xy plane),
//which only rotates them if the cell wasn't already in that orientation. title, if not empty,
//goes in a TITLE record.
func PDBWrite(out io.Writer, mol *Molecule, frame int, title string) error {
	if err := pdbWriteModel(out, mol, frame, title); err != nil {
		return errDecorate(err, "PDBWrite")
	}
	if _, err := fmt.Fprint(out, "END\n"); err != nil {
		return &CError{err.Error(), []string{"PDBWrite"}, err}
	}
	return nil
}

func pdbWriteModel(out io.Writer, mol *Molecule, frame int, title string) error {
	if err := mol.Corrupted(); err != nil {
		return errDecorate(err, "pdbWriteModel")
	}
	if frame >= mol.LenFrames() {
		return &CError{fmt.Sprintf("Frame %d requested, the molecule has %d", frame, mol.LenFrames()), []string{"pdbWriteModel"}, nil}
	}
	w := bufio.NewWriter(out)
	if title != "" {
		fmt.Fprintf(w, "TITLE     %s\n", title)
	}
	var std *pbc.Lattice
	if mol.Cell != nil {
		a, b, c, alpha, beta, gamma := mol.Cell.Parameters()
		var err error
		std, err = pbc.FromParameters(a, b, c, alpha, beta, gamma)
		if err != nil {
			return &CError{err.Error(), []string{"pbc.FromParameters", "pdbWriteModel"}, err}
		}
		fmt.Fprintf(w, "CRYST1%9.3f%9.3f%9.3f%7.2f%7.2f%7.2f P 1           1\n", a, b, c, alpha, beta, gamma)
	}
	p := make([]float64, 3)
	f := make([]float64, 3)
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		mol.Coords[frame].Vec(p, i)
		if std != nil {
			mol.Cell.ToFractional(f, p)
			std.ToCartesian(p, f)
		}
		first := "ATOM"
		if at.Het {
			first = "HETATM"
		}
		molname := at.Molname
		if molname == "" {
			molname = "UNL"
		}
		name := at.Name
		if name == "" {
			name = at.Symbol
		}
		//4-letter names start at column 13, shorter ones at 14.
		if len(name) < 4 {
			name = " " + name
		} else if len(name) > 4 {
			name = name[:4]
		}
		_, err := fmt.Fprintf(w, "%-6s%5d %-4s %3s A%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n",
			first, (i+1)%100000, name, molname, at.MolID%10000, p[0], p[1], p[2], 1.0, 0.0, strings.ToUpper(at.Symbol))
		if err != nil {
			return &CError{err.Error(), []string{"pdbWriteModel"}, err}
		}
	}
	if err := w.Flush(); err != nil {
		return &CError{err.Error(), []string{"bufio.Writer.Flush", "pdbWriteModel"}, err}
	}
	return nil
}

//PDBFileWrite writes the first frame of each molecule in mols to pdbname, each as a MODEL.
//comments[i], if present, goes as the TITLE of the ith model.
func PDBFileWrite(pdbname string, mols []*Molecule, comments []string) error {
	out, err := prepTarget(pdbname)
	if err != nil {
		return errDecorate(err, "PDBFileWrite "+pdbname)
	}
	for i, mol := range mols {
		title := ""
		if i < len(comments) {
			title = comments[i]
		}
		if len(mols) > 1 {
			fmt.Fprintf(out, "MODEL     %4d\n", i+1)
		}
		if err := pdbWriteModel(out, mol, 0, title); err != nil {
			out.Close()
			return errDecorate(err, "PDBFileWrite "+pdbname)
		}
		if len(mols) > 1 {
			fmt.Fprint(out, "ENDMDL\n")
		}
	}
	fmt.Fprint(out, "END\n")
	if err := out.Close(); err != nil {
		return errDecorate(err, "PDBFileWrite "+pdbname)
	}
	return nil
}
