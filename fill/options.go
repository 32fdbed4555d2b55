/*
 * options.go, part of gofill.
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
	"github.com/rmera/gofill/clash"
	"github.com/rs/zerolog"
)

//DefaultMaxIter is the attempt budget per molecule used when none is given.
const DefaultMaxIter = 500

//Options contains the less commonly changed parameters of a Filler.
type Options struct {
	logger   zerolog.Logger
	seed     uint64
	reorient int
	retries  int
	orienter Orienter
	checker  clash.Checker
}

//DefaultOptions returns an Options with the default values: no logging,
//a seed taken from the clock, a new orientation every 50 rejections, stop at the first
//molecule that can't be placed, TwoNormals orientations and brute force
//distance checks.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.logger = zerolog.Nop()
	ret.reorient = 50
	ret.orienter = TwoNormals{}
	ret.checker = &clash.BruteForce{}
	return ret
}

//Logger returns the logger used and sets it, if one is given.
func (O *Options) Logger(logger ...zerolog.Logger) zerolog.Logger {
	ret := O.logger
	if len(logger) > 0 {
		O.logger = logger[0]
	}
	return ret
}

//Seed returns the seed for the random number generator and sets it, if
//given. 0 means a seed taken from the clock.
func (O *Options) Seed(seed ...uint64) uint64 {
	ret := O.seed
	if len(seed) > 0 {
		O.seed = seed[0]
	}
	return ret
}

//Reorient returns the number of consecutive rejections after which a new orientation
//is drawn for the molecule being placed, and sets it, if a valid value is given.
func (O *Options) Reorient(k ...int) int {
	ret := O.reorient
	if len(k) > 0 && k[0] > 0 {
		O.reorient = k[0]
	}
	return ret
}

//Retries returns how many molecules, beyond the first, are allowed to exhaust their
//attempt budget before a fill stops, and sets it, if a valid value is given.
//With the default, 0, a fill stops at the first molecule that can't be placed.
func (O *Options) Retries(k ...int) int {
	ret := O.retries
	if len(k) > 0 && k[0] >= 0 {
		O.retries = k[0]
	}
	return ret
}

//Orienter returns the sampler of random orientations, and sets it, if given.
func (O *Options) Orienter(o ...Orienter) Orienter {
	ret := O.orienter
	if len(o) > 0 && o[0] != nil {
		O.orienter = o[0]
	}
	return ret
}

//Checker returns the distance checker, and sets it, if given.
func (O *Options) Checker(c ...clash.Checker) clash.Checker {
	ret := O.checker
	if len(c) > 0 && c[0] != nil {
		O.checker = c[0]
	}
	return ret
}
