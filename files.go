/*
 * files.go, part of gofill.
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
	"regexp"
	"strconv"
	"strings"

	"github.com/rmera/gofill/pbc"
	v3 "github.com/rmera/gofill/v3"
)

//key=value pairs in an extended XYZ comment line. Values with spaces are quoted.
var extxyzKV = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)=("[^"]*"|\S+)`)

//xyzFrame is one frame as read from the file.
type xyzFrame struct {
	atoms   []*Atom
	coords  []float64
	cell    *pbc.Lattice
	comment string
}

//XYZFileRead reads a (possibly multi-frame) xyz or extended xyz file. All frames must
//have the same atoms as the first one. If the comment line of the first frame
//has a Lattice="ax ay az bx by bz cx cy cz" field, the cell of the molecule is set from it.
//Files ending in .gz or .zst are decompressed on the fly.
func XYZFileRead(xyzname string) (*Molecule, error) {
	xyzfile, err := prepSource(xyzname)
	if err != nil {
		return nil, errDecorate(err, "XYZFileRead "+xyzname)
	}
	defer xyzfile.Close()
	mol, err := XYZRead(xyzfile)
	if err != nil {
		return nil, errDecorate(err, "XYZFileRead "+xyzname)
	}
	return mol, nil
}

//XYZRead reads an xyz or extended xyz file from r. See XYZFileRead.
func XYZRead(r io.Reader) (*Molecule, error) {
	frames, err := readXYZFrames(r)
	if err != nil {
		return nil, errDecorate(err, "XYZRead")
	}
	first := frames[0]
	coords := make([]*v3.Matrix, 0, len(frames))
	for i, f := range frames {
		if len(f.atoms) != len(first.atoms) {
			return nil, &CError{fmt.Sprintf("Frame %d has %d atoms, the first one has %d", i, len(f.atoms), len(first.atoms)), []string{"XYZRead"}, nil}
		}
		c, err := v3.NewMatrix(f.coords)
		if err != nil {
			return nil, errDecorate(err, "XYZRead")
		}
		coords = append(coords, c)
	}
	return NewMolecule(coords, NewTopology(first.atoms, 0, 1), first.cell)
}

//XYZFileStructures reads every frame in the (extended) xyz file xyzname as an independent
//structure, with its own atoms and cell. Frames can have different numbers of atoms, so
//this is the way to read files where each frame is a different system.
func XYZFileStructures(xyzname string) ([]*Molecule, error) {
	xyzfile, err := prepSource(xyzname)
	if err != nil {
		return nil, errDecorate(err, "XYZFileStructures "+xyzname)
	}
	defer xyzfile.Close()
	frames, err := readXYZFrames(xyzfile)
	if err != nil {
		return nil, errDecorate(err, "XYZFileStructures "+xyzname)
	}
	mols := make([]*Molecule, 0, len(frames))
	for _, f := range frames {
		c, err := v3.NewMatrix(f.coords)
		if err != nil {
			return nil, errDecorate(err, "XYZFileStructures "+xyzname)
		}
		mol, err := NewMolecule([]*v3.Matrix{c}, NewTopology(f.atoms, 0, 1), f.cell)
		if err != nil {
			return nil, errDecorate(err, "XYZFileStructures "+xyzname)
		}
		mols = append(mols, mol)
	}
	return mols, nil
}

func readXYZFrames(r io.Reader) ([]*xyzFrame, error) {
	xyz := bufio.NewScanner(r)
	xyz.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineno := 0
	next := func() (string, bool) {
		ok := xyz.Scan()
		if ok {
			lineno++
		}
		return xyz.Text(), ok
	}
	var frames []*xyzFrame
	for {
		line, ok := next()
		if !ok {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue //blank lines between frames, or at the end.
		}
		natoms, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || natoms <= 0 {
			return nil, &CError{fmt.Sprintf("Ill formatted XYZ file, line %d: expected a number of atoms", lineno), []string{"readXYZFrames"}, err}
		}
		comment, ok := next()
		if !ok {
			return nil, &CError{fmt.Sprintf("Ill formatted XYZ file: frame %d has no comment line", len(frames)), []string{"readXYZFrames"}, nil}
		}
		f := &xyzFrame{atoms: make([]*Atom, natoms), coords: make([]float64, natoms*3), comment: comment}
		if f.cell, err = commentLattice(comment); err != nil {
			return nil, &CError{fmt.Sprintf("Line %d: %s", lineno, err.Error()), []string{"readXYZFrames"}, err}
		}
		for i := 0; i < natoms; i++ {
			line, ok = next()
			if !ok {
				return nil, &CError{fmt.Sprintf("Ill formatted XYZ file: frame %d ends after %d of %d atoms", len(frames), i, natoms), []string{"readXYZFrames"}, nil}
			}
			fields := strings.Fields(line)
			if len(fields) < 4 {
				return nil, &CError{fmt.Sprintf("Line number %d ill formed", lineno), []string{"readXYZFrames"}, nil}
			}
			at := &Atom{Symbol: fields[0], Name: fields[0], ID: i + 1, MolID: 1}
			fillAtomData(at)
			f.atoms[i] = at
			for j := 0; j < 3; j++ {
				f.coords[i*3+j], err = strconv.ParseFloat(fields[j+1], 64)
				if err != nil {
					return nil, &CError{fmt.Sprintf("Line number %d: can't parse coordinate %q", lineno, fields[j+1]), []string{"strconv.ParseFloat", "readXYZFrames"}, err}
				}
			}
		}
		frames = append(frames, f)
	}
	if err := xyz.Err(); err != nil {
		return nil, &CError{err.Error(), []string{"bufio.Scanner", "readXYZFrames"}, err}
	}
	if len(frames) == 0 {
		return nil, &CError{"Empty XYZ file", []string{"readXYZFrames"}, nil}
	}
	return frames, nil
}

//ParseComment returns the key=value pairs in an extended XYZ comment line. Keys
//are lowercased and quotes are removed from the values.
func ParseComment(comment string) map[string]string {
	ret := make(map[string]string)
	for _, m := range extxyzKV.FindAllStringSubmatch(comment, -1) {
		ret[strings.ToLower(m[1])] = strings.Trim(m[2], `"`)
	}
	return ret
}

//commentLattice returns the cell in the comment line, or nil if there is none.
//A pbc="F F F" field means there is no cell, even if a lattice is present.
func commentLattice(comment string) (*pbc.Lattice, error) {
	kv := ParseComment(comment)
	lat, ok := kv["lattice"]
	if !ok {
		return nil, nil
	}
	if p, ok := kv["pbc"]; ok && !strings.ContainsAny(p, "Tt1") {
		return nil, nil
	}
	return pbc.ParseLattice(lat)
}

//XYZWrite writes the frame frame of molecule mol to out in the (extended) xyz format.
//For periodic molecules the comment line carries the cell as a Lattice field, and comment
//is appended to it. comment must fit in one line.
func XYZWrite(out io.Writer, mol *Molecule, frame int, comment string) error {
	if err := mol.Corrupted(); err != nil {
		return errDecorate(err, "XYZWrite")
	}
	if frame >= mol.LenFrames() {
		return &CError{fmt.Sprintf("Frame %d requested, the molecule has %d", frame, mol.LenFrames()), []string{"XYZWrite"}, nil}
	}
	if strings.ContainsAny(comment, "\n\r") {
		return &CError{"Comment must be a single line", []string{"XYZWrite"}, nil}
	}
	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "%-4d\n", mol.Len())
	if mol.Cell != nil {
		fmt.Fprintf(w, "Lattice=\"%s\" Properties=species:S:1:pos:R:3 pbc=\"T T T\"", mol.Cell.String())
		if comment != "" {
			fmt.Fprint(w, " ")
		}
	}
	fmt.Fprintln(w, comment)
	c := make([]float64, 3)
	for i := 0; i < mol.Len(); i++ {
		mol.Coords[frame].Vec(c, i)
		if _, err := fmt.Fprintf(w, "%-2s  %14.8f %14.8f %14.8f\n", mol.Atom(i).Symbol, c[0], c[1], c[2]); err != nil {
			return &CError{err.Error(), []string{"XYZWrite"}, err}
		}
	}
	if err := w.Flush(); err != nil {
		return &CError{err.Error(), []string{"bufio.Writer.Flush", "XYZWrite"}, err}
	}
	return nil
}

//XYZFileWrite writes the first frame of each molecule in mols, one after the other, to the file xyzname,
//which is created or overwritten. comments[i], if present, goes in the comment line of
//the ith molecule. Names ending in .gz or .zst give compressed files.
func XYZFileWrite(xyzname string, mols []*Molecule, comments []string) error {
	out, err := prepTarget(xyzname)
	if err != nil {
		return errDecorate(err, "XYZFileWrite "+xyzname)
	}
	for i, mol := range mols {
		comment := ""
		if i < len(comments) {
			comment = comments[i]
		}
		if err := XYZWrite(out, mol, 0, comment); err != nil {
			out.Close()
			return errDecorate(err, "XYZFileWrite "+xyzname)
		}
	}
	if err := out.Close(); err != nil {
		return errDecorate(err, "XYZFileWrite "+xyzname)
	}
	return nil
}

//FileRead reads a structure from fname, choosing the format from the extension
//(.xyz, .extxyz or .pdb, optionally followed by .gz or .zst).
func FileRead(fname string) (*Molecule, error) {
	switch format(fname) {
	case "xyz", "extxyz":
		return XYZFileRead(fname)
	case "pdb", "ent":
		return PDBFileRead(fname)
	}
	return nil, &CError{fmt.Sprintf("Unknown format for file %s", fname), []string{"FileRead"}, nil}
}

//FileWrite writes mols to fname, choosing the format from the extension, as FileRead does.
//comments are used as the xyz comment lines or the PDB TITLE of each structure.
func FileWrite(fname string, mols []*Molecule, comments []string) error {
	switch format(fname) {
	case "xyz", "extxyz":
		return XYZFileWrite(fname, mols, comments)
	case "pdb", "ent":
		return PDBFileWrite(fname, mols, comments)
	}
	return &CError{fmt.Sprintf("Unknown format for file %s", fname), []string{"FileWrite"}, nil}
}
