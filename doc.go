/*
 * doc.go, part of gofill.
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

/*Package chem is the main package of the gofill library. It provides atom and molecule structures,
facilities for reading and writing the structure files used for periodic systems and some functions
for geometric manipulations.

	**Capabilities**

    Reads/writes XYZ and extended XYZ files (multiple frames, cell in the Lattice field).

    Reads/writes PDB files, with the cell in the CRYST1 record.

    Transparent gzip and zstd (de)compression of any of the above.

    Rigid rotations and translations of sets of coordinates, centroids and centers of mass.

    Hill-order chemical formulas.

The cell of a periodic Molecule is a pbc.Lattice. Coordinates are kept in v3.Matrix objects, which
wrap gonum dense matrices.
*/
package chem
