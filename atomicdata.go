/*
 * atomicdata.go, part of gofill.
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

//A map for assigning mass to elements.
//Besides the common "bio-elements", the metals usually found in
//metal-organic frameworks and the noble gases are present.
var symbolMass = map[string]float64{
	"H":  1.008,
	"He": 4.0026,
	"B":  10.81,
	"C":  12.01,
	"N":  14.01,
	"O":  16.00,
	"F":  18.998,
	"Ne": 20.180,
	"Na": 22.99,
	"Mg": 24.30,
	"Al": 26.98,
	"Si": 28.08,
	"P":  30.97,
	"S":  32.06,
	"Cl": 35.45,
	"Ar": 39.95,
	"K":  39.1,
	"Ca": 40.08,
	"Ti": 47.87,
	"V":  50.94,
	"Cr": 51.996,
	"Mn": 54.94,
	"Fe": 55.84,
	"Co": 58.93,
	"Ni": 58.69,
	"Cu": 63.55,
	"Zn": 65.38,
	"Se": 78.96,
	"Br": 79.904,
	"Kr": 83.80,
	"Zr": 91.22,
	"Mo": 95.95,
	"Cd": 112.41,
	"I":  126.90,
	"Xe": 131.29,
	"Be": 9.012,
}

//A map for assigning van der Waals radii to elements
//Values from 10.1021/j100785a001 and 10.1021/jp8111556
//metal radii from 10.1023/A:1011625728803
var symbolVdwrad = map[string]float64{
	"H":  1.10,
	"He": 1.40,
	"B":  1.92,
	"C":  1.70,
	"N":  1.55,
	"O":  1.52,
	"F":  1.47,
	"Ne": 1.54,
	"Na": 2.27,
	"Mg": 1.73,
	"Al": 1.84,
	"Si": 2.10,
	"P":  1.80,
	"S":  1.80,
	"Cl": 1.75,
	"Ar": 1.88,
	"K":  2.75,
	"Ca": 2.31,
	"Ti": 2.11,
	"V":  2.07,
	"Cr": 1.97,
	"Mn": 1.96,
	"Fe": 1.96,
	"Co": 1.95,
	"Ni": 1.63,
	"Cu": 2.00,
	"Zn": 2.02,
	"Se": 1.90,
	"Br": 1.83,
	"Kr": 2.02,
	"Zr": 2.23,
	"Mo": 2.17,
	"Cd": 2.18,
	"I":  1.98,
	"Xe": 2.16,
	"Be": 1.53,
}

//SymbolMass returns the mass of the element with the given symbol
//and whether it was found.
func SymbolMass(symbol string) (float64, bool) {
	m, ok := symbolMass[symbol]
	return m, ok
}

//SymbolVdw returns the van der Waals radius of the element with the
//given symbol and whether it was found.
func SymbolVdw(symbol string) (float64, bool) {
	r, ok := symbolVdwrad[symbol]
	return r, ok
}

//fillAtomData sets the mass and vdW radius of at from its symbol. No error
//checking, unknown elements get zeros.
func fillAtomData(at *Atom) {
	at.Mass = symbolMass[at.Symbol]
	at.Vdw = symbolVdwrad[at.Symbol]
}
