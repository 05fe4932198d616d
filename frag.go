/*
 * frag.go, part of goefp.
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
	"gonum.org/v1/gonum/spatial/r3"

	v3 "github.com/rmera/goefp/v3"
)

// DispFreqs is the number of imaginary frequencies at which the
// dynamic polarizability tensors are tabulated.
const DispFreqs = 12

// Atom is an atom of an EFP fragment. Its position is kept
// in the fragment's AtomCoords matrix.
type Atom struct {
	Label string
	Znuc  float64 //nuclear charge
	Mass  float64 //amu
}

// Multipole contains the distributed multipole moments at one
// multipole point.
type Multipole struct {
	Monopole   float64
	Dipole     r3.Vec
	Quadrupole [6]float64  //xx yy zz xy xz yz
	Octupole   [10]float64 //xxx yyy zzz xxy xxz xyy yyz xzz yzz xyz
}

// Polarizable is a static polarizability tensor, row-major.
type Polarizable struct {
	Tensor [9]float64
}

// DynPolarizable contains the dynamic polarizability tensors of a point,
// one per imaginary frequency (see DispersionFrequencies), row-major.
type DynPolarizable struct {
	Tensors [DispFreqs][9]float64
}

// Shell is a contracted gaussian shell of the exchange repulsion basis set.
// Coef holds exponent/coefficient pairs, or exponent/s-coefficient/p-coefficient
// triplets for L shells.
type Shell struct {
	Type byte //'S', 'L', 'P', 'D' or 'F'
	Coef []float64
}

// Functions returns the number of cartesian basis functions in the shell, or -1
// for an unknown shell type.
func (s Shell) Functions() int {
	switch s.Type {
	case 'S':
		return 1
	case 'L':
		return 4
	case 'P':
		return 3
	case 'D':
		return 6
	case 'F':
		return 10
	}
	return -1
}

// Fragment contains the parameters of an EFP fragment. The library of a context
// keeps one Fragment per fragment type (the template), read from the potential
// data. Each fragment in the simulation is an independent deep copy of its template,
// with its own pose. Coordinates in a template are given in the template's frame,
// in an instance they are the lab-frame coordinates for the current pose.
type Fragment struct {
	Name string

	Atoms      []Atom
	AtomCoords *v3.Matrix

	Multipoles      []Multipole
	MultipoleCoords *v3.Matrix
	ScreenParams    []float64 //SCREEN2, one per multipole point
	AIScreenParams  []float64 //SCREEN, one per multipole point

	Polarizables      []Polarizable
	PolarizableCoords *v3.Matrix

	DynPolarizables      []DynPolarizable
	DynPolarizableCoords *v3.Matrix

	LMOCentroids *v3.Matrix
	Shells       []Shell
	ShellCoords  *v3.Matrix
	Fock         []float64 //packed lower triangle, nlmo*(nlmo+1)/2 elements
	WF           []float64 //nlmo x BasisSize(), row-major

	//instance state, unused in templates
	lib         *Fragment
	pos         r3.Vec
	rot         *r3.Mat
	force       r3.Vec //dE/dpos
	torque      r3.Vec //derivative of E for rotations around the lab axes
	induced     []r3.Vec
	inducedConj []r3.Vec
	//overlap integrals between the LMOs of this fragment and those of every fragment
	//with a larger index, and their derivatives with respect to the other fragment's centroids.
	overlap      []float64
	overlapDeriv []r3.Vec
	xrWFDeriv    [3][]float64
}

// NLMO returns the number of localized molecular orbitals of the fragment.
func (F *Fragment) NLMO() int {
	return F.LMOCentroids.NVecs()
}

// BasisSize returns the number of basis functions of the exchange
// repulsion basis set.
func (F *Fragment) BasisSize() int {
	n := 0
	for _, s := range F.Shells {
		n += s.Functions()
	}
	return n
}

// Mass returns the total mass of the fragment.
func (F *Fragment) Mass() float64 {
	m := 0.0
	for _, a := range F.Atoms {
		m += a.Mass
	}
	return m
}

// validate checks that the template is internally consistent.
func (F *Fragment) validate() error {
	const caller = "Fragment.validate"
	bad := func(format string, args ...interface{}) error {
		err := NewError(SyntaxError, caller, format, args...)
		err.Decorate("fragment " + F.Name)
		return err
	}
	if F.Name == "" {
		return bad("fragment without a name")
	}
	pairs := [...]struct {
		what   string
		n      int
		coords *v3.Matrix
	}{
		{"atoms", len(F.Atoms), F.AtomCoords},
		{"multipole points", len(F.Multipoles), F.MultipoleCoords},
		{"polarizable points", len(F.Polarizables), F.PolarizableCoords},
		{"dynamic polarizable points", len(F.DynPolarizables), F.DynPolarizableCoords},
		{"shells", len(F.Shells), F.ShellCoords},
	}
	for _, p := range pairs {
		if p.n != p.coords.NVecs() {
			return bad("%d %s but %d coordinates", p.n, p.what, p.coords.NVecs())
		}
	}
	if l := len(F.ScreenParams); l != 0 && l != len(F.Multipoles) {
		return bad("%d screening parameters for %d multipole points", l, len(F.Multipoles))
	}
	if l := len(F.AIScreenParams); l != 0 && l != len(F.Multipoles) {
		return bad("%d ab initio screening parameters for %d multipole points", l, len(F.Multipoles))
	}
	for i, s := range F.Shells {
		if s.Functions() < 0 {
			return bad("shell %d has unknown type %q", i, s.Type)
		}
		per := 2
		if s.Type == 'L' {
			per = 3
		}
		if len(s.Coef) == 0 || len(s.Coef)%per != 0 {
			return bad("shell %d has %d coefficients", i, len(s.Coef))
		}
	}
	nlmo := F.NLMO()
	if l := len(F.Fock); l != 0 && l != nlmo*(nlmo+1)/2 {
		return bad("Fock matrix has %d elements for %d LMOs", l, nlmo)
	}
	if l := len(F.WF); l != 0 && l != nlmo*F.BasisSize() {
		return bad("wavefunction has %d elements, expected %d", l, nlmo*F.BasisSize())
	}
	return nil
}

// copyParams returns a deep copy of the parameters of F, which shares no
// memory with F. Instance state is not copied.
func (F *Fragment) copyParams() *Fragment {
	ret := &Fragment{
		Name:                 F.Name,
		Atoms:                append([]Atom(nil), F.Atoms...),
		AtomCoords:           F.AtomCoords.Clone(),
		Multipoles:           append([]Multipole(nil), F.Multipoles...),
		MultipoleCoords:      F.MultipoleCoords.Clone(),
		ScreenParams:         append([]float64(nil), F.ScreenParams...),
		AIScreenParams:       append([]float64(nil), F.AIScreenParams...),
		Polarizables:         append([]Polarizable(nil), F.Polarizables...),
		PolarizableCoords:    F.PolarizableCoords.Clone(),
		DynPolarizables:      append([]DynPolarizable(nil), F.DynPolarizables...),
		DynPolarizableCoords: F.DynPolarizableCoords.Clone(),
		LMOCentroids:         F.LMOCentroids.Clone(),
		ShellCoords:          F.ShellCoords.Clone(),
		Fock:                 append([]float64(nil), F.Fock...),
		WF:                   append([]float64(nil), F.WF...),
	}
	if F.Shells != nil {
		ret.Shells = make([]Shell, len(F.Shells))
		for i, s := range F.Shells {
			ret.Shells[i] = Shell{Type: s.Type, Coef: append([]float64(nil), s.Coef...)}
		}
	}
	return ret
}

// clone returns an instance of the template F: a deep copy which shares
// no memory with F, at the identity pose.
func (F *Fragment) clone() *Fragment {
	ret := F.copyParams()
	ret.lib = F
	ret.rot = identity()
	ret.induced = make([]r3.Vec, len(F.Polarizables))
	ret.inducedConj = make([]r3.Vec, len(F.Polarizables))
	return ret
}

// release drops every buffer owned by the instance.
func (F *Fragment) release() {
	*F = Fragment{Name: F.Name}
}
