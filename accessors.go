/*
 * accessors.go, part of goefp.
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
)

// Energy returns the energy breakdown of the last computation.
func (e *Efp) Energy() (Energy, error) {
	if err := e.check("Efp.Energy"); err != nil {
		return Energy{}, err
	}
	return e.energy, nil
}

func (e *Efp) checkGradient(caller string) error {
	if err := e.check(caller); err != nil {
		return err
	}
	if !e.doGradient {
		return NewError(GradientNotRequested, caller, "")
	}
	return nil
}

// Gradient copies the gradient of the last computation into grad, which must
// hold 6 values per fragment: the derivatives of the energy with respect to the
// fragment position, and the torque-like derivatives for rotations of the
// fragment around the lab axes. See EulerGradient.
func (e *Efp) Gradient(grad []float64) error {
	const caller = "Efp.Gradient"
	if err := e.checkGradient(caller); err != nil {
		return err
	}
	if len(grad) != 6*len(e.frags) {
		return NewError(InvalidArraySize, caller, "%d values for %d fragments", len(grad), len(e.frags))
	}
	for i, f := range e.frags {
		copy(grad[6*i:], []float64{f.force.X, f.force.Y, f.force.Z, f.torque.X, f.torque.Y, f.torque.Z})
	}
	return nil
}

// QMGradient copies the gradient on the QM atoms of the last computation into grad,
// which must hold 3 values per QM atom.
func (e *Efp) QMGradient(grad []float64) error {
	const caller = "Efp.QMGradient"
	if err := e.checkGradient(caller); err != nil {
		return err
	}
	if len(grad) != 3*len(e.qmZnuc) {
		return NewError(InvalidArraySize, caller, "%d values for %d QM atoms", len(grad), len(e.qmZnuc))
	}
	for i, g := range e.qmGrad {
		copy(grad[3*i:], []float64{g.X, g.Y, g.Z})
	}
	return nil
}

// StressTensor copies the stress tensor (the virial, sum over pairs of R_ij dE/dR_j,
// row-major) of the last computation into out, which must hold 9 values. It is
// only accumulated under periodic boundary conditions.
func (e *Efp) StressTensor(out []float64) error {
	const caller = "Efp.StressTensor"
	if err := e.checkGradient(caller); err != nil {
		return err
	}
	if len(out) != 9 {
		return NewError(InvalidArraySize, caller, "%d values", len(out))
	}
	copy(out, e.stress[:])
	return nil
}

// SetQMAtoms sets the QM atoms: znuc holds the nuclear charges, xyz 3 coordinates
// per atom. With no atoms, the QM atoms are removed.
func (e *Efp) SetQMAtoms(znuc, xyz []float64) error {
	const caller = "Efp.SetQMAtoms"
	if err := e.check(caller); err != nil {
		return err
	}
	if len(xyz) != 3*len(znuc) {
		return NewError(InvalidArraySize, caller, "%d coordinates for %d atoms", len(xyz), len(znuc))
	}
	if len(znuc) == 0 {
		e.qmZnuc, e.qmPos, e.qmGrad = nil, nil, nil
		return nil
	}
	e.qmZnuc = append(e.qmZnuc[:0], znuc...)
	e.qmPos = make([]r3.Vec, len(znuc))
	e.qmGrad = make([]r3.Vec, len(znuc))
	for i := range e.qmPos {
		e.qmPos[i] = r3.Vec{X: xyz[3*i], Y: xyz[3*i+1], Z: xyz[3*i+2]}
	}
	return nil
}

// QMAtomCount returns the number of QM atoms.
func (e *Efp) QMAtomCount() (int, error) {
	if err := e.check("Efp.QMAtomCount"); err != nil {
		return 0, err
	}
	return len(e.qmZnuc), nil
}

// QMAtoms copies the nuclear charges and coordinates of the QM atoms into znuc and xyz.
func (e *Efp) QMAtoms(znuc, xyz []float64) error {
	const caller = "Efp.QMAtoms"
	if err := e.check(caller); err != nil {
		return err
	}
	if len(znuc) != len(e.qmZnuc) || len(xyz) != 3*len(e.qmZnuc) {
		return NewError(InvalidArraySize, caller, "room for %d charges and %d coordinates, %d atoms", len(znuc), len(xyz), len(e.qmZnuc))
	}
	copy(znuc, e.qmZnuc)
	for i, p := range e.qmPos {
		copy(xyz[3*i:], []float64{p.X, p.Y, p.Z})
	}
	return nil
}

// SetPeriodicBox sets the dimensions of the periodic box. Each side must be
// at least twice the switching function cutoff.
func (e *Efp) SetPeriodicBox(x, y, z float64) error {
	const caller = "Efp.SetPeriodicBox"
	if err := e.check(caller); err != nil {
		return err
	}
	min := 2 * e.opts.SwfCutoff
	if x < min || y < min || z < min {
		return NewError(BoxTooSmall, caller, "%g x %g x %g for a cutoff of %g", x, y, z, e.opts.SwfCutoff)
	}
	e.box = r3.Vec{X: x, Y: y, Z: z}
	return nil
}

// MultipoleCount returns the number of point charges, dipoles, quadrupoles and
// octupoles that Multipoles returns.
func (e *Efp) MultipoleCount() ([4]int, error) {
	var ret [4]int
	if err := e.check("Efp.MultipoleCount"); err != nil {
		return ret, err
	}
	for _, f := range e.frags {
		n := len(f.Multipoles)
		ret[0] += len(f.Atoms) + n
		ret[1] += len(f.Polarizables) + n
		ret[2] += n
		ret[3] += n
	}
	return ret, nil
}

// multipoleSizes are the number of components of charges, dipoles,
// quadrupoles and octupoles.
var multipoleSizes = [4]int{1, 3, 6, 10}

// Multipoles copies the positions (xyz) and values (z) of the point multipoles of
// all the fragments, for use by an ab initio code. Index 0 holds the charges: the
// nuclear charges of the atoms of every fragment, followed by the monopoles of
// the multipole points. Index 1 holds the dipoles: the induced dipoles of every
// fragment, followed by the dipoles of the multipole points. Indexes 2 and 3
// hold the quadrupoles and octupoles of the multipole points. Each slice must
// have the exact size given by MultipoleCount.
func (e *Efp) Multipoles(xyz, z [4][]float64) error {
	const caller = "Efp.Multipoles"
	count, err := e.MultipoleCount()
	if err != nil {
		return errDecorate(err, caller)
	}
	for k := range count {
		if len(xyz[k]) != 3*count[k] || len(z[k]) != multipoleSizes[k]*count[k] {
			return NewError(InvalidArraySize, caller, "rank %d: %d coordinates and %d values for %d points", k, len(xyz[k]), len(z[k]), count[k])
		}
	}
	var n [4]int //points written
	put := func(k int, pos r3.Vec, vals ...float64) {
		copy(xyz[k][3*n[k]:], []float64{pos.X, pos.Y, pos.Z})
		copy(z[k][multipoleSizes[k]*n[k]:], vals)
		n[k]++
	}
	for _, f := range e.frags {
		for i, a := range f.Atoms {
			put(0, f.AtomCoords.Vec(i), a.Znuc)
		}
		for i := range f.Polarizables {
			mu := r3.Scale(0.5, r3.Add(f.induced[i], f.inducedConj[i]))
			put(1, f.PolarizableCoords.Vec(i), mu.X, mu.Y, mu.Z)
		}
	}
	for _, f := range e.frags {
		for i, m := range f.Multipoles {
			pos := f.MultipoleCoords.Vec(i)
			put(0, pos, m.Monopole)
			put(1, pos, m.Dipole.X, m.Dipole.Y, m.Dipole.Z)
			put(2, pos, m.Quadrupole[:]...)
			put(3, pos, m.Octupole[:]...)
		}
	}
	return nil
}

// FragCount returns the number of fragments.
func (e *Efp) FragCount() (int, error) {
	if err := e.check("Efp.FragCount"); err != nil {
		return 0, err
	}
	return len(e.frags), nil
}

func (e *Efp) frag(i int, caller string) (*Fragment, error) {
	if err := e.check(caller); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(e.frags) {
		return nil, NewError(IndexOutOfRange, caller, "fragment %d of %d", i, len(e.frags))
	}
	return e.frags[i], nil
}

// FragName returns the name of the type of the fragment i.
func (e *Efp) FragName(i int) (string, error) {
	f, err := e.frag(i, "Efp.FragName")
	if err != nil {
		return "", err
	}
	return f.Name, nil
}

// FragMass returns the mass of the fragment i.
func (e *Efp) FragMass(i int) (float64, error) {
	f, err := e.frag(i, "Efp.FragMass")
	if err != nil {
		return 0, err
	}
	return f.Mass(), nil
}

// FragInertia returns the diagonal of the inertia tensor of fragment i,
// computed from its template coordinates. The template frame is expected
// to be the principal axes frame.
func (e *Efp) FragInertia(i int) (r3.Vec, error) {
	f, err := e.frag(i, "Efp.FragInertia")
	if err != nil {
		return r3.Vec{}, err
	}
	var ret r3.Vec
	for k, a := range f.lib.Atoms {
		p := f.lib.AtomCoords.Vec(k)
		ret.X += a.Mass * (p.Y*p.Y + p.Z*p.Z)
		ret.Y += a.Mass * (p.X*p.X + p.Z*p.Z)
		ret.Z += a.Mass * (p.X*p.X + p.Y*p.Y)
	}
	return ret, nil
}

// FragAtomCount returns the number of atoms in fragment i.
func (e *Efp) FragAtomCount(i int) (int, error) {
	f, err := e.frag(i, "Efp.FragAtomCount")
	if err != nil {
		return 0, err
	}
	return len(f.Atoms), nil
}

// FragAtoms copies the atoms of fragment i into atoms, and their lab coordinates into
// xyz. atoms must have room for FragAtomCount(i) atoms, xyz for 3 coordinates per atom.
func (e *Efp) FragAtoms(i int, atoms []Atom, xyz []float64) error {
	const caller = "Efp.FragAtoms"
	f, err := e.frag(i, caller)
	if err != nil {
		return err
	}
	if len(atoms) < len(f.Atoms) || len(xyz) < 3*len(f.Atoms) {
		return NewError(InvalidArraySize, caller, "room for %d atoms and %d coordinates, %d atoms", len(atoms), len(xyz), len(f.Atoms))
	}
	copy(atoms, f.Atoms)
	f.AtomCoords.Flat(xyz)
	return nil
}
