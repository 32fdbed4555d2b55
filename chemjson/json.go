/*
 * json.go, part of gofill.
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

package chemjson

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	chem "github.com/rmera/gofill"
	"github.com/rmera/gofill/fill"
	"github.com/rmera/gofill/pbc"
	v3 "github.com/rmera/gofill/v3"
)

//A ready-to-serialize container for coordinates
type Coords struct {
	Coords []float64
}

//An easily JSON-serializable error type,
type Error struct {
	deco          []string
	IsError       bool //If this is false (no error) all the other fields will be at their zero-values.
	InDecoding    bool
	InPostProcess bool   //was it in preparing the output?
	Function      string //which go function gave the error
	Message       string //the error itself
}

//Error implements the error interface
func (J *Error) Error() string {
	return J.Message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

//Serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - "))
	}
	return ret
}

//Takes an error and some additional info to create a json-marshal-ble error
func NewError(where, function string, err error) *Error {
	jerr := new(Error)
	jerr.IsError = true
	switch where {
	case "decoding":
		jerr.InDecoding = true
	default:
		jerr.InPostProcess = true
	}
	jerr.Function = function
	jerr.Message = err.Error()
	jerr.deco = []string{function}
	return jerr
}

//Info is the header of each filled structure in the stream.
type Info struct {
	Run            string
	Structure      int
	Formula        string
	Placed         int
	Requested      int
	Attempts       []int
	FailedAttempts int
	Saturated      bool
	Seed           uint64
	HostAtoms      int
	AdsorbateAtoms int
	Atoms          int
	Lattice        []float64 //the 9 components, a first. Empty if not periodic.
}

//NewInfo returns the header for res, the structure-th one of the run run.
func NewInfo(res *fill.Result, run string, structure int) *Info {
	ret := &Info{
		Run:            run,
		Structure:      structure,
		Formula:        res.Formula,
		Placed:         res.Placed,
		Requested:      res.Requested,
		Attempts:       res.Attempts,
		FailedAttempts: res.FailedAttempts,
		Saturated:      res.Saturated,
		Seed:           res.Seed,
		HostAtoms:      res.HostAtoms,
		AdsorbateAtoms: res.AdsorbateAtoms,
		Atoms:          res.Mol.Len(),
	}
	if res.Mol.Cell != nil {
		for i := 0; i < 3; i++ {
			ret.Lattice = append(ret.Lattice, res.Mol.Cell.Vec(i)...)
		}
	}
	return ret
}

//SendResult encodes the filled structure res, with its header, and writes it to out.
func SendResult(res *fill.Result, run string, structure int, out io.Writer) *Error {
	const funcname = "SendResult"
	enc := json.NewEncoder(out)
	if err := enc.Encode(NewInfo(res, run, structure)); err != nil {
		return NewError("postprocess", funcname, err)
	}
	if err := EncodeAtoms(res.Mol, enc); err != nil {
		err.Decorate(funcname)
		return err
	}
	if err := EncodeCoords(res.Mol.Coords[0], enc); err != nil {
		err.Decorate(funcname)
		return err
	}
	return nil
}

//DecodeResult reads one structure, as written by SendResult, from stream. It returns io.EOF,
//not wrapped, if the stream has no more structures.
func DecodeResult(stream *bufio.Reader) (*Info, *chem.Molecule, error) {
	const funcname = "DecodeResult"
	line, err := stream.ReadBytes('\n')
	if err == io.EOF && len(strings.TrimSpace(string(line))) == 0 {
		return nil, nil, io.EOF
	}
	if err != nil && err != io.EOF {
		return nil, nil, NewError("decoding", funcname, err)
	}
	info := new(Info)
	if err := json.Unmarshal(line, info); err != nil {
		return nil, nil, NewError("decoding", funcname, err)
	}
	atoms := make([]*chem.Atom, 0, info.Atoms)
	for i := 0; i < info.Atoms; i++ {
		line, err := stream.ReadBytes('\n')
		if err != nil {
			return nil, nil, NewError("decoding", funcname, fmt.Errorf("reading atom %d: %w", i, err))
		}
		at := new(chem.Atom)
		if err := json.Unmarshal(line, at); err != nil {
			return nil, nil, NewError("decoding", funcname, err)
		}
		atoms = append(atoms, at)
	}
	coords, jerr := DecodeCoords(stream, info.Atoms)
	if jerr != nil {
		jerr.Decorate(funcname)
		return nil, nil, jerr
	}
	var L *pbc.Lattice
	if len(info.Lattice) > 0 {
		if len(info.Lattice) != 9 {
			return nil, nil, NewError("decoding", funcname, fmt.Errorf("lattice with %d components", len(info.Lattice)))
		}
		L, err = pbc.NewLattice(info.Lattice[:3], info.Lattice[3:6], info.Lattice[6:])
		if err != nil {
			return nil, nil, NewError("decoding", funcname, err)
		}
	}
	mol, err := chem.NewMolecule([]*v3.Matrix{coords}, chem.NewTopology(atoms, 0, 1), L)
	if err != nil {
		return nil, nil, NewError("decoding", funcname, err)
	}
	return info, mol, nil
}

//Decodecoords decodes streams from a bufio.Reader containing 3*atomnumber JSON floats into a v3.Matrix with atomnumber rows.
func DecodeCoords(stream *bufio.Reader, atomnumber int) (*v3.Matrix, *Error) {
	const funcname = "DecodeCoords"
	rawcoords := make([]float64, 0, 3*atomnumber)
	for i := 0; i < atomnumber; i++ {
		line, err := stream.ReadBytes('\n')
		if err != nil {
			return nil, NewError("decoding", funcname, fmt.Errorf("reading coordinates %d: %w", i, err))
		}
		ctemp := new(Coords)
		if err = json.Unmarshal(line, ctemp); err != nil {
			return nil, NewError("decoding", funcname, err)
		}
		if len(ctemp.Coords) != 3 {
			return nil, NewError("decoding", funcname, fmt.Errorf("%d coordinates for atom %d", len(ctemp.Coords), i))
		}
		rawcoords = append(rawcoords, ctemp.Coords...)
	}
	coords, err := v3.NewMatrix(rawcoords)
	if err != nil {
		return nil, NewError("decoding", funcname, err)
	}
	return coords, nil
}

//Encodes an Atomer into a JSON
func EncodeAtoms(mol chem.Atomer, enc *json.Encoder) *Error {
	const funcname = "EncodeAtoms"
	if mol == nil {
		return nil //Its assumed to be intentional.
	}
	for i := 0; i < mol.Len(); i++ {
		if err := enc.Encode(mol.Atom(i)); err != nil {
			return NewError("postprocess", funcname, err)
		}
	}
	return nil
}

//Encodes a set of coordinates into JSON
func EncodeCoords(coords *v3.Matrix, enc *json.Encoder) *Error {
	c := new(Coords)
	t := make([]float64, 3)
	for i := 0; i < coords.NVecs(); i++ {
		c.Coords = coords.Vec(t, i)
		if err := enc.Encode(c); err != nil {
			return NewError("postprocess", "EncodeCoords", err)
		}
	}
	return nil
}
