/*
 * interfaces.go, part of goefp.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package efp

import "strings"

// PotentialReader reads EFP potential data. ReadPotential returns the
// fragment templates contained in the source identified by name (typically
// a file path). It should return errors built with NewError or WrapError
// and the FileNotFound, SyntaxError or UnsupportedScreen codes.
type PotentialReader interface {
	ReadPotential(name string) ([]*Fragment, error)
}

// StaticReader is a PotentialReader serving templates kept in memory,
// keyed by source name.
type StaticReader map[string][]*Fragment

func (s StaticReader) ReadPotential(name string) ([]*Fragment, error) {
	frags, ok := s[name]
	if !ok {
		return nil, NewError(FileNotFound, "StaticReader.ReadPotential", "%s", name)
	}
	return frags, nil
}

// ElectronDensityFieldFunc returns the electric field produced by the ab initio
// electron density at the given points. xyz holds 3 coordinates per point, the
// returned slice must hold 3 field components per point.
type ElectronDensityFieldFunc func(xyz []float64) ([]float64, error)

// Callbacks are the functions the context uses to obtain data from an
// ab initio code. ElectronDensityField is required for ab initio
// polarization.
type Callbacks struct {
	ElectronDensityField ElectronDensityFieldFunc
}

//Decorator is the interface for errors that can be decorated with the
//names of the functions they go through. *Error implements it.
type Decorator interface {
	Error() string
	Decorate(string) []string
}

// splitList splits a newline-delimited list, dropping blank lines
// and surrounding whitespace.
func splitList(list string) []string {
	var ret []string
	for _, l := range strings.Split(list, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			ret = append(ret, l)
		}
	}
	return ret
}
