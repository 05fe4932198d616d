/*
 * fixtures_test.go, part of goefp.
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
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	v3 "github.com/rmera/goefp/v3"
)

func mustMatrix(data ...float64) *v3.Matrix {
	m, err := v3.NewMatrix(data)
	if err != nil {
		panic(err)
	}
	return m
}

// dynTensors returns a London-like dynamic polarizability at the
// quadrature frequencies, slightly anisotropic.
func dynTensors(alpha0, scale float64) [DispFreqs][9]float64 {
	var ret [DispFreqs][9]float64
	for k, w := range DispersionFrequencies() {
		a := alpha0 / (1 + (w/0.5)*(w/0.5))
		ret[k] = [9]float64{a * 1.1, 0.05 * a, 0, 0.05 * a, a, 0, 0, 0, a * scale}
	}
	return ret
}

// waterLike returns a template with every kind of parameter. s changes the
// parameters a bit, so different fragment types can be built.
func waterLike(name string, s float64) *Fragment {
	return &Fragment{
		Name: name,
		Atoms: []Atom{
			{Label: "A01O1", Znuc: 8, Mass: 15.994915},
			{Label: "A02H2", Znuc: 1, Mass: 1.007825},
			{Label: "A03H3", Znuc: 1, Mass: 1.007825},
		},
		AtomCoords: mustMatrix(
			0, 0, -0.12*s,
			0, 1.43, 0.98,
			0, -1.43*s, 0.98,
		),
		Multipoles: []Multipole{
			{Monopole: -0.8 * s, Dipole: r3.Vec{X: 0.02, Y: 0, Z: 0.15}, Quadrupole: [6]float64{0.1, -0.2, 0.1, 0.01, 0, 0.02}, Octupole: [10]float64{0.01, 0.02, 0.03, 0, 0.01, 0, 0, 0.02, 0.01, 0.005}},
			{Monopole: 0.4, Dipole: r3.Vec{X: 0, Y: 0.05, Z: -0.03}},
			{Monopole: 0.4 * s, Dipole: r3.Vec{X: 0.01, Y: -0.05, Z: -0.03}},
		},
		MultipoleCoords: mustMatrix(
			0, 0, -0.12*s,
			0, 1.43, 0.98,
			0, -1.43*s, 0.98,
		),
		ScreenParams:   []float64{1.5, 2.0, 2.0 * s},
		AIScreenParams: []float64{10, 10, 10},
		Polarizables: []Polarizable{
			{Tensor: [9]float64{2.0, 0.3, 0, 0.3, 1.5, 0.1, 0, 0.1, 1.0}},
			{Tensor: [9]float64{1.2 * s, 0, 0.2, 0, 1.0, 0, 0.2, 0, 1.4}},
		},
		PolarizableCoords: mustMatrix(
			0, 0.7, 0.4,
			0.1, -0.7, 0.4,
		),
		DynPolarizables: []DynPolarizable{
			{Tensors: dynTensors(3.0, 0.9)},
			{Tensors: dynTensors(2.5*s, 1.2)},
		},
		DynPolarizableCoords: mustMatrix(
			0.5, 0.2, -0.5,
			-0.5, -0.1, -0.5,
		),
		LMOCentroids: mustMatrix(
			0.5, 0.2, -0.5,
			-0.5, -0.1, -0.5,
		),
		Shells: []Shell{
			{Type: 'S', Coef: []float64{1.0, 0.5}},
			{Type: 'P', Coef: []float64{0.8, 0.3, 0.2, 0.7}},
		},
		ShellCoords: mustMatrix(
			0, 0, -0.12*s,
			0, 0, -0.12*s,
		),
		Fock: []float64{-0.5 * s, 0.01, -0.6},
		WF:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8},
	}
}

func testReader() StaticReader {
	return StaticReader{
		"water.json": {waterLike("H2O", 1)},
		"other.json": {waterLike("OTHER", 1.1)},
	}
}

// asymmetricReader is testReader with a non-symmetric polarizability
// tensor in every template.
func asymmetricReader() StaticReader {
	r := testReader()
	for _, frags := range r {
		frags[0].Polarizables[0].Tensor = [9]float64{2.0, 0.6, 0.1, 0.1, 1.5, -0.3, 0.2, 0.4, 1.0}
	}
	return r
}

const testFiles = "water.json\nother.json\n"

// testOpts returns options with every term which does not need a callback.
func testOpts() *Opts {
	opts := DefaultOpts()
	opts.Terms = TermElec | TermPol | TermDisp | TermXR | TermAIElec
	return opts
}

// threeFrags are the xyzabc coordinates of three fragments, a few bohr apart.
var threeFrags = []float64{
	0, 0, 0, 0.3, 1.1, -0.4,
	5.5, 0.5, 0.4, 1.7, 0.6, 2.1,
	0.4, 5.8, -1.0, -0.9, 2.0, 0.3,
}

func newTestEfp(Te *testing.T, opts *Opts, cb *Callbacks, names string, coord []float64) *Efp {
	Te.Helper()
	e, err := New(opts, cb, testReader(), testFiles, names)
	if err != nil {
		Te.Fatal(err)
	}
	if coord != nil {
		if err := e.SetCoordinates(CoordXYZABC, coord); err != nil {
			Te.Fatal(err)
		}
	}
	return e
}

func names(n ...string) string {
	return strings.Join(n, "\n")
}

func totalEnergy(Te *testing.T, e *Efp, coord []float64) float64 {
	Te.Helper()
	if err := e.SetCoordinates(CoordXYZABC, coord); err != nil {
		Te.Fatal(err)
	}
	if err := e.Compute(false); err != nil {
		Te.Fatal(err)
	}
	en, err := e.Energy()
	if err != nil {
		Te.Fatal(err)
	}
	return en.Total()
}

// checkNumericalGradient compares the analytic gradient with respect to the xyzabc
// coordinates with a central finite difference.
func checkNumericalGradient(Te *testing.T, e *Efp, coord []float64) {
	Te.Helper()
	const delta = 1e-4
	const tol = 5e-6
	if err := e.SetCoordinates(CoordXYZABC, coord); err != nil {
		Te.Fatal(err)
	}
	if err := e.Compute(true); err != nil {
		Te.Fatal(err)
	}
	grad := make([]float64, len(coord))
	if err := e.Gradient(grad); err != nil {
		Te.Fatal(err)
	}
	if err := EulerGradient(coord, grad); err != nil {
		Te.Fatal(err)
	}
	c := append([]float64(nil), coord...)
	for i := range c {
		c[i] = coord[i] + delta
		ep := totalEnergy(Te, e, c)
		c[i] = coord[i] - delta
		em := totalEnergy(Te, e, c)
		c[i] = coord[i]
		num := (ep - em) / (2 * delta)
		if math.Abs(num-grad[i]) > tol {
			Te.Errorf("coordinate %d: analytic %.10f numerical %.10f", i, grad[i], num)
		}
	}
}
