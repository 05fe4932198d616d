/*
 * library.go, part of goefp.
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

import (
	"errors"
	"strings"
)

// Library is the catalog of fragment templates of a context. It is
// filled once, when the context is created, and is read-only afterwards.
type Library struct {
	frags []*Fragment
}

// Len returns the number of templates in the library.
func (L *Library) Len() int {
	return len(L.frags)
}

// Add validates the template f and adds a copy of it to the library. Later
// changes to f do not affect the library. Names are compared without regard to case.
func (L *Library) Add(f *Fragment) error {
	if f == nil {
		return NewError(InvalidArgument, "Library.Add", "nil fragment")
	}
	if err := f.validate(); err != nil {
		return errDecorate(err, "Library.Add")
	}
	if L.Find(f.Name) != nil {
		return NewError(DuplicateParameters, "Library.Add", "%s", f.Name)
	}
	L.frags = append(L.frags, f.copyParams())
	return nil
}

// Find returns the template with the given name, or nil.
func (L *Library) Find(name string) *Fragment {
	for _, f := range L.frags {
		if strings.EqualFold(f.Name, name) {
			return f
		}
	}
	return nil
}

// Load reads every source in the newline-delimited list files with r,
// and adds the templates found to the library.
func (L *Library) Load(r PotentialReader, files string) error {
	if r == nil {
		return NewError(InvalidArgument, "Library.Load", "nil potential reader")
	}
	for _, name := range splitList(files) {
		frags, err := r.ReadPotential(name)
		if err != nil {
			var e *Error
			if !errors.As(err, &e) {
				err = WrapError(SyntaxError, name, err)
			}
			return errDecorate(err, "Library.Load")
		}
		for _, f := range frags {
			if err := L.Add(f); err != nil {
				return errDecorate(err, "Library.Load: "+name)
			}
		}
	}
	return nil
}
