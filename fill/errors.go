/*
 * errors.go, part of gofill.
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
	"strings"
)

//Error is the error type for precondition violations in this package. It
//satisfies chem.Error.
type Error struct {
	message string
	deco    []string
}

func (err *Error) Error() string {
	return fmt.Sprintf("fill: %s", err.message)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//UnresolvableAdsorbateError is returned when an adsorbate specification is neither
//a readable structure file nor a formula in the molecule library.
type UnresolvableAdsorbateError struct {
	Spec       string
	FileErr    error //why it couldn't be read as a file
	FormulaErr error //why it couldn't be built as a molecule
}

func (err *UnresolvableAdsorbateError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "fill: can't resolve adsorbate %q", err.Spec)
	if err.FileErr != nil {
		fmt.Fprintf(&b, "; as a file: %v", err.FileErr)
	}
	if err.FormulaErr != nil {
		fmt.Fprintf(&b, "; as a formula: %v", err.FormulaErr)
	}
	return b.String()
}

//Unwrap gives access to both causes, for errors.Is and errors.As.
func (err *UnresolvableAdsorbateError) Unwrap() []error {
	ret := make([]error, 0, 2)
	for _, e := range []error{err.FileErr, err.FormulaErr} {
		if e != nil {
			ret = append(ret, e)
		}
	}
	return ret
}
