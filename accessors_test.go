/*
 * accessors_test.go, part of goefp.
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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestQMAtoms(Te *testing.T) {
	e := newTestEfp(Te, testOpts(), nil, names("H2O"), threeFrags[:6])
	defer e.Shutdown()
	if n, err := e.QMAtomCount(); err != nil || n != 0 {
		Te.Errorf("expected no QM atoms, got %d %v", n, err)
	}
	if err := e.SetQMAtoms(qmAtoms.znuc, qmAtoms.xyz[:5]); Code(err) != InvalidArraySize {
		Te.Errorf("expected InvalidArraySize, got %v", err)
	}
	if err := e.SetQMAtoms(qmAtoms.znuc, qmAtoms.xyz); err != nil {
		Te.Fatal(err)
	}
	znuc := make([]float64, 2)
	xyz := make([]float64, 6)
	if err := e.QMAtoms(znuc, xyz); err != nil {
		Te.Fatal(err)
	}
	if diff := cmp.Diff(qmAtoms.znuc, znuc); diff != "" {
		Te.Errorf("charges mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(qmAtoms.xyz, xyz); diff != "" {
		Te.Errorf("coordinates mismatch (-want +got):\n%s", diff)
	}
	if err := e.Compute(true); err != nil {
		Te.Fatal(err)
	}
	en, _ := e.Energy()
	if en.AIElectrostatic == 0 {
		Te.Error("no interaction with the QM atoms")
	}
	if err := e.QMGradient(make([]float64, 3)); Code(err) != InvalidArraySize {
		Te.Errorf("expected InvalidArraySize, got %v", err)
	}
	//no atoms removes the QM region
	if err := e.SetQMAtoms(nil, nil); err != nil {
		Te.Fatal(err)
	}
	if n, _ := e.QMAtomCount(); n != 0 {
		Te.Errorf("QM atoms were not cleared, %d left", n)
	}
	if err := e.Compute(true); err != nil {
		Te.Fatal(err)
	}
	en, _ = e.Energy()
	if en.AIElectrostatic != 0 {
		Te.Errorf("cleared QM atoms still interact: %v", en.AIElectrostatic)
	}
	if err := e.QMGradient(nil); err != nil {
		Te.Errorf("an empty QM gradient should be fine: %v", err)
	}
}

func TestMultipoles(Te *testing.T) {
	e := newTestEfp(Te, testOpts(), nil, names("H2O", "OTHER"), threeFrags[:12])
	defer e.Shutdown()
	if err := e.Compute(false); err != nil {
		Te.Fatal(err)
	}
	count, err := e.MultipoleCount()
	if err != nil {
		Te.Fatal(err)
	}
	//3 atoms and 3 multipole points, 2 polarizable points, per fragment
	if want := [4]int{12, 10, 6, 6}; count != want {
		Te.Fatalf("counts %v, want %v", count, want)
	}
	var xyz, z [4][]float64
	for k := range count {
		xyz[k] = make([]float64, 3*count[k])
		z[k] = make([]float64, multipoleSizes[k]*count[k])
	}
	if err := e.Multipoles(xyz, z); err != nil {
		Te.Fatal(err)
	}
	//nuclear charges of both fragments first
	wantCharges := []float64{8, 1, 1, 8, 1, 1, -0.8, 0.4, 0.4, -0.8 * 1.1, 0.4, 0.4 * 1.1}
	if diff := cmp.Diff(wantCharges, z[0], cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		Te.Errorf("charges mismatch (-want +got):\n%s", diff)
	}
	atoms := make([]float64, 9)
	e.frags[1].AtomCoords.Flat(atoms)
	if diff := cmp.Diff(atoms, xyz[0][9:18]); diff != "" {
		Te.Errorf("nuclear positions mismatch (-want +got):\n%s", diff)
	}
	//then the induced dipoles, then the permanent dipoles
	f := e.frags[0]
	mu := r3.Scale(0.5, r3.Add(f.induced[1], f.inducedConj[1]))
	if diff := cmp.Diff([]float64{mu.X, mu.Y, mu.Z}, z[1][3:6]); diff != "" {
		Te.Errorf("induced dipole mismatch (-want +got):\n%s", diff)
	}
	if r3.Norm(mu) == 0 {
		Te.Error("induced dipoles were not computed")
	}
	d := e.frags[1].Multipoles[2].Dipole
	if diff := cmp.Diff([]float64{d.X, d.Y, d.Z}, z[1][27:30]); diff != "" {
		Te.Errorf("permanent dipole mismatch (-want +got):\n%s", diff)
	}
	//dipoles rotate with the fragment
	if math.Abs(r3.Norm(d)-r3.Norm(e.frags[1].lib.Multipoles[2].Dipole)) > 1e-12 {
		Te.Errorf("rotated dipole changed its length: %v", d)
	}
	q := e.frags[0].Multipoles[0].Quadrupole
	if diff := cmp.Diff(q[:], z[2][:6]); diff != "" {
		Te.Errorf("quadrupole mismatch (-want +got):\n%s", diff)
	}
	xyz[3] = xyz[3][:3]
	if err := e.Multipoles(xyz, z); Code(err) != InvalidArraySize {
		Te.Errorf("expected InvalidArraySize, got %v", err)
	}
}

func TestFragAccessors(Te *testing.T) {
	e := newTestEfp(Te, testOpts(), nil, names("H2O", "OTHER"), threeFrags[:12])
	defer e.Shutdown()
	m, err := e.FragMass(0)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(m-(15.994915+2*1.007825)) > 1e-9 {
		Te.Errorf("wrong mass %v", m)
	}
	inertia, err := e.FragInertia(0)
	if err != nil {
		Te.Fatal(err)
	}
	//template: O at (0, 0, -0.12), H at (0, +-1.43, 0.98)
	h := 1.007825
	want := r3.Vec{
		X: 15.994915*0.12*0.12 + 2*h*(1.43*1.43+0.98*0.98),
		Y: 15.994915*0.12*0.12 + 2*h*0.98*0.98,
		Z: 2 * h * 1.43 * 1.43,
	}
	if r3.Norm(r3.Sub(inertia, want)) > 1e-9 {
		Te.Errorf("inertia %v, want %v", inertia, want)
	}
	n, err := e.FragAtomCount(1)
	if err != nil || n != 3 {
		Te.Fatalf("expected 3 atoms, got %d %v", n, err)
	}
	atoms := make([]Atom, n)
	xyz := make([]float64, 3*n)
	if err := e.FragAtoms(1, atoms, xyz); err != nil {
		Te.Fatal(err)
	}
	if atoms[0].Label != "A01O1" || atoms[0].Znuc != 8 {
		Te.Errorf("unexpected atom %+v", atoms[0])
	}
	//atoms keep their distances
	d01 := math.Sqrt(sq(xyz[0]-xyz[3]) + sq(xyz[1]-xyz[4]) + sq(xyz[2]-xyz[5]))
	t := e.frags[1].lib.AtomCoords
	if math.Abs(d01-r3.Norm(r3.Sub(t.Vec(0), t.Vec(1)))) > 1e-12 {
		Te.Errorf("wrong lab coordinates %v", xyz)
	}
	if err := e.FragAtoms(1, atoms[:2], xyz); Code(err) != InvalidArraySize {
		Te.Errorf("expected InvalidArraySize, got %v", err)
	}
	for _, i := range []int{-1, 2} {
		if _, err := e.FragMass(i); Code(err) != IndexOutOfRange {
			Te.Errorf("fragment %d: expected IndexOutOfRange, got %v", i, err)
		}
	}
}

func sq(x float64) float64 { return x * x }
