/*
 * formula.go, part of gofill.
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
	"sort"
	"strconv"
	"strings"
)

//Formula returns the chemical formula of the atoms in A, in Hill order: carbon first,
//then hydrogen, then everything else alphabetically. Without carbon, all
//the elements, hydrogen included, go in alphabetical order. Counts of 1 are omitted.
//Atoms without a symbol are ignored.
func Formula(A Atomer) string {
	count := make(map[string]int)
	for i := 0; i < A.Len(); i++ {
		s := A.Atom(i).Symbol
		if s == "" {
			continue
		}
		count[s]++
	}
	symbols := make([]string, 0, len(count))
	for s := range count {
		symbols = append(symbols, s)
	}
	_, carbon := count["C"]
	sort.Slice(symbols, func(i, j int) bool {
		if carbon {
			ri, rj := hillRank(symbols[i]), hillRank(symbols[j])
			if ri != rj {
				return ri < rj
			}
		}
		return symbols[i] < symbols[j]
	})
	var b strings.Builder
	for _, s := range symbols {
		b.WriteString(s)
		if n := count[s]; n > 1 {
			b.WriteString(strconv.Itoa(n))
		}
	}
	return b.String()
}

func hillRank(symbol string) int {
	switch symbol {
	case "C":
		return 0
	case "H":
		return 1
	}
	return 2
}
