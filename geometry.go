/*
 * geometry.go, part of goefp.
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

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	v3 "github.com/rmera/goefp/v3"
)

// CoordType is the representation used to give or read fragment poses.
type CoordType int

const (
	//x, y, z and the Euler angles a, b, c (z-x-z convention): 6 numbers per fragment.
	CoordXYZABC CoordType = iota
	//the lab coordinates of three points which match the first three atoms of the fragment: 9 numbers.
	CoordPoints
	//x, y, z and a row-major rotation matrix: 12 numbers.
	CoordRotmat
)

// Stride returns the number of values per fragment for the representation, or 0 for an
// invalid CoordType.
func (c CoordType) Stride() int {
	switch c {
	case CoordXYZABC:
		return 6
	case CoordPoints:
		return 9
	case CoordRotmat:
		return 12
	}
	return 0
}

func (c CoordType) String() string {
	return enumString(int(c), []string{"xyzabc", "points", "rotmat"})
}

func (c CoordType) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *CoordType) UnmarshalText(text []byte) error {
	v, err := enumParse(text, []string{"xyzabc", "points", "rotmat"}, "CoordType.UnmarshalText")
	*c = CoordType(v)
	return err
}

// rotationTolerance is the largest deviation from orthonormality accepted
// for rotation matrices.
const rotationTolerance = 1e-6

func identity() *r3.Mat {
	return r3.NewMat([]float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
}

func rotData(m *r3.Mat) [9]float64 {
	var d [9]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d[3*i+j] = m.At(i, j)
		}
	}
	return d
}

//This is a temporal function. It returns the determinant of a 3x3 matrix. Panics if the matrix is not 3x3.
func det(A mat.Matrix) float64 {
	r, c := A.Dims()
	if r != 3 || c != 3 {
		panic(v3.ErrShape)
	}
	return (A.At(0, 0)*(A.At(1, 1)*A.At(2, 2)-A.At(2, 1)*A.At(1, 2)) - A.At(1, 0)*(A.At(0, 1)*A.At(2, 2)-A.At(2, 1)*A.At(0, 2)) + A.At(2, 0)*(A.At(0, 1)*A.At(1, 2)-A.At(1, 1)*A.At(0, 2)))
}

// isRotation returns true if the row-major 3x3 matrix m is orthonormal
// with determinant 1.
func isRotation(m []float64) bool {
	rot := mat.NewDense(3, 3, m)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			//(R R^T)_ij
			d := mat.Dot(rot.RowView(i), rot.RowView(j))
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(d-want) > rotationTolerance {
				return false
			}
		}
	}
	return math.Abs(det(rot)-1) <= rotationTolerance
}

// EulerToMatrix returns the rotation matrix Rz(a)*Rx(b)*Rz(c).
func EulerToMatrix(a, b, c float64) *r3.Mat {
	sina, cosa := math.Sincos(a)
	sinb, cosb := math.Sincos(b)
	sinc, cosc := math.Sincos(c)
	return r3.NewMat([]float64{
		cosa*cosc - sina*cosb*sinc, -cosa*sinc - sina*cosb*cosc, sina * sinb,
		sina*cosc + cosa*cosb*sinc, -sina*sinc + cosa*cosb*cosc, -cosa * sinb,
		sinb * sinc, sinb * cosc, cosb,
	})
}

// MatrixToEuler returns the Euler angles of the rotation m, with
// b in [0, pi]. When b is 0 or pi, c is set to 0.
func MatrixToEuler(m *r3.Mat) (a, b, c float64) {
	zz := math.Max(-1, math.Min(1, m.At(2, 2)))
	b = math.Acos(zz)
	if math.Sin(b) < 1.0e-7 {
		if zz > 0 {
			a = math.Atan2(-m.At(0, 1), m.At(0, 0))
		} else {
			a = math.Atan2(m.At(0, 1), m.At(0, 0))
		}
		return a, b, 0
	}
	a = math.Atan2(m.At(0, 2), -m.At(1, 2))
	c = math.Atan2(m.At(2, 0), m.At(2, 1))
	return a, b, c
}

// kabsch returns the rotation which best superimposes the points in ref
// onto those in test, in the least squares sense, once both sets are centered.
func kabsch(test, ref *v3.Matrix) *r3.Mat {
	n := ref.NVecs()
	var ctest, cref r3.Vec
	for i := 0; i < n; i++ {
		ctest = r3.Add(ctest, test.Vec(i))
		cref = r3.Add(cref, ref.Vec(i))
	}
	ctest = r3.Scale(1/float64(n), ctest)
	cref = r3.Scale(1/float64(n), cref)
	//covariance H = sum (ref_i-cref)(test_i-ctest)^T
	H := mat.NewDense(3, 3, nil)
	for i := 0; i < n; i++ {
		p := r3.Sub(ref.Vec(i), cref)
		q := r3.Sub(test.Vec(i), ctest)
		pv := [3]float64{p.X, p.Y, p.Z}
		qv := [3]float64{q.X, q.Y, q.Z}
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				H.Set(j, k, H.At(j, k)+pv[j]*qv[k])
			}
		}
	}
	var svd mat.SVD
	if ok := svd.Factorize(H, mat.SVDFull); !ok {
		return identity()
	}
	var U, V mat.Dense
	svd.UTo(&U)
	svd.VTo(&V)
	//R = V diag(1,1,d) U^T, d corrects reflections.
	var R mat.Dense
	R.Mul(&V, U.T())
	if det(&R) < 0 {
		for i := 0; i < 3; i++ {
			V.Set(i, 2, -V.At(i, 2))
		}
		R.Mul(&V, U.T())
	}
	return r3.NewMat(append([]float64(nil), R.RawMatrix().Data...))
}

// poseFromPoints returns the rotation and translation which place the first
// three atoms of the template f as close as possible to the three points in pts.
// Template atom 0 lands exactly on the first point.
func poseFromPoints(f *Fragment, pts []float64) (*r3.Mat, r3.Vec) {
	ref := v3.Zeros(3)
	ref.SomeVecs(f.AtomCoords, []int{0, 1, 2})
	test, _ := v3.NewMatrix(append([]float64(nil), pts[:9]...))
	rot := kabsch(test, ref)
	p0 := test.Vec(0)
	return rot, r3.Sub(p0, rot.MulVec(ref.Vec(0)))
}

// SetCoordinates sets the poses of all the fragments, and updates every
// coordinate-dependent quantity. coord holds ctype.Stride() values per fragment.
// If the pose of any fragment is invalid, no fragment is modified.
func (e *Efp) SetCoordinates(ctype CoordType, coord []float64) error {
	const caller = "Efp.SetCoordinates"
	if err := e.check(caller); err != nil {
		return err
	}
	stride := ctype.Stride()
	if stride == 0 {
		return NewError(IncorrectEnumValue, caller, "coordinate type %d", int(ctype))
	}
	if len(coord) != stride*len(e.frags) {
		return NewError(InvalidArraySize, caller, "%d values for %d fragments of stride %d", len(coord), len(e.frags), stride)
	}
	rots := make([]*r3.Mat, len(e.frags))
	pos := make([]r3.Vec, len(e.frags))
	for i, f := range e.frags {
		c := coord[i*stride : (i+1)*stride]
		switch ctype {
		case CoordXYZABC:
			pos[i] = r3.Vec{X: c[0], Y: c[1], Z: c[2]}
			rots[i] = EulerToMatrix(c[3], c[4], c[5])
		case CoordPoints:
			if f.lib.AtomCoords.NVecs() < 3 {
				return NewError(NeedThreeAtoms, caller, "fragment %d (%s)", i, f.Name)
			}
			rots[i], pos[i] = poseFromPoints(f.lib, c)
		case CoordRotmat:
			if !isRotation(append([]float64(nil), c[3:]...)) {
				return NewError(InvalidRotationMatrix, caller, "fragment %d", i)
			}
			pos[i] = r3.Vec{X: c[0], Y: c[1], Z: c[2]}
			rots[i] = r3.NewMat(append([]float64(nil), c[3:]...)) //NewMat may keep the slice.
		}
	}
	for i, f := range e.frags {
		f.pos = pos[i]
		f.rot = rots[i]
		f.update()
	}
	return nil
}

// Coordinates copies the current poses of all the fragments into out, which
// must hold ctype.Stride() values per fragment.
func (e *Efp) Coordinates(ctype CoordType, out []float64) error {
	const caller = "Efp.Coordinates"
	if err := e.check(caller); err != nil {
		return err
	}
	stride := ctype.Stride()
	if stride == 0 {
		return NewError(IncorrectEnumValue, caller, "coordinate type %d", int(ctype))
	}
	if len(out) != stride*len(e.frags) {
		return NewError(InvalidArraySize, caller, "%d values for %d fragments of stride %d", len(out), len(e.frags), stride)
	}
	if ctype == CoordPoints {
		for i, f := range e.frags {
			if f.AtomCoords.NVecs() < 3 {
				return NewError(NeedThreeAtoms, caller, "fragment %d (%s)", i, f.Name)
			}
		}
	}
	for i, f := range e.frags {
		c := out[i*stride : (i+1)*stride]
		switch ctype {
		case CoordXYZABC:
			a, b, g := MatrixToEuler(f.rot)
			copy(c, []float64{f.pos.X, f.pos.Y, f.pos.Z, a, b, g})
		case CoordPoints:
			pts := v3.Zeros(3)
			pts.SomeVecs(f.AtomCoords, []int{0, 1, 2})
			pts.Flat(c)
		case CoordRotmat:
			copy(c, []float64{f.pos.X, f.pos.Y, f.pos.Z})
			r := rotData(f.rot)
			copy(c[3:], r[:])
		}
	}
	return nil
}

// EulerGradient converts a gradient given as force and torque (6 values per
// fragment, as returned by Efp.Gradient) into derivatives of the energy with
// respect to the xyzabc coordinates in xyzabc. The conversion is done in place.
func EulerGradient(xyzabc, grad []float64) error {
	if len(xyzabc) != len(grad) || len(grad)%6 != 0 {
		return NewError(InvalidArraySize, "EulerGradient", "%d coordinates and %d gradient values", len(xyzabc), len(grad))
	}
	for i := 0; i < len(grad); i += 6 {
		sina, cosa := math.Sincos(xyzabc[i+3])
		sinb, cosb := math.Sincos(xyzabc[i+4])
		tx, ty, tz := grad[i+3], grad[i+4], grad[i+5]
		grad[i+3] = tz
		grad[i+4] = cosa*tx + sina*ty
		grad[i+5] = sina*sinb*tx - cosa*sinb*ty + cosb*tz
	}
	return nil
}

// update recomputes every lab-frame quantity of the instance from its template
// and its current pose.
func (F *Fragment) update() {
	lib := F.lib
	F.AtomCoords.Move(lib.AtomCoords, F.rot, F.pos)
	F.updateElec()
	F.updatePol()
	F.updateDisp()
	F.updateXR()
}

func (F *Fragment) updateElec() {
	F.MultipoleCoords.Move(F.lib.MultipoleCoords, F.rot, F.pos)
	R := rotData(F.rot)
	for i, m := range F.lib.Multipoles {
		F.Multipoles[i] = Multipole{
			Monopole:   m.Monopole,
			Dipole:     F.rot.MulVec(m.Dipole),
			Quadrupole: rotateQuadrupole(&R, &m.Quadrupole),
			Octupole:   rotateOctupole(&R, &m.Octupole),
		}
	}
}

func (F *Fragment) updatePol() {
	F.PolarizableCoords.Move(F.lib.PolarizableCoords, F.rot, F.pos)
	R := rotData(F.rot)
	for i, p := range F.lib.Polarizables {
		F.Polarizables[i].Tensor = rotateTensor(&R, &p.Tensor)
	}
}

func (F *Fragment) updateDisp() {
	F.DynPolarizableCoords.Move(F.lib.DynPolarizableCoords, F.rot, F.pos)
	R := rotData(F.rot)
	for i, p := range F.lib.DynPolarizables {
		for k := range p.Tensors {
			F.DynPolarizables[i].Tensors[k] = rotateTensor(&R, &p.Tensors[k])
		}
	}
}

func (F *Fragment) updateXR() {
	F.LMOCentroids.Move(F.lib.LMOCentroids, F.rot, F.pos)
	F.ShellCoords.Move(F.lib.ShellCoords, F.rot, F.pos)
}

// rotateTensor returns R*T*R^T for the row-major 3x3 matrices R and T.
func rotateTensor(R, T *[9]float64) [9]float64 {
	var ret [9]float64
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			s := 0.0
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					s += R[3*a+i] * R[3*b+j] * T[3*i+j]
				}
			}
			ret[3*a+b] = s
		}
	}
	return ret
}

var quadIndex = [3][3]int{
	{0, 3, 4},
	{3, 1, 5},
	{4, 5, 2},
}

func rotateQuadrupole(R *[9]float64, q *[6]float64) [6]float64 {
	var full [9]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			full[3*i+j] = q[quadIndex[i][j]]
		}
	}
	full = rotateTensor(R, &full)
	return [6]float64{full[0], full[4], full[8], full[1], full[2], full[5]}
}

// octIndex returns the position of the component ijk in the packed
// octupole xxx yyy zzz xxy xxz xyy yyz xzz yzz xyz.
func octIndex(i, j, k int) int {
	var n [3]int
	n[i]++
	n[j]++
	n[k]++
	switch n {
	case [3]int{3, 0, 0}:
		return 0
	case [3]int{0, 3, 0}:
		return 1
	case [3]int{0, 0, 3}:
		return 2
	case [3]int{2, 1, 0}:
		return 3
	case [3]int{2, 0, 1}:
		return 4
	case [3]int{1, 2, 0}:
		return 5
	case [3]int{0, 2, 1}:
		return 6
	case [3]int{1, 0, 2}:
		return 7
	case [3]int{0, 1, 2}:
		return 8
	}
	return 9
}

func rotateOctupole(R *[9]float64, o *[10]float64) [10]float64 {
	var ret [10]float64
	done := [10]bool{}
	for a := 0; a < 3; a++ {
		for b := a; b < 3; b++ {
			for c := b; c < 3; c++ {
				idx := octIndex(a, b, c)
				if done[idx] {
					continue
				}
				s := 0.0
				for i := 0; i < 3; i++ {
					for j := 0; j < 3; j++ {
						for k := 0; k < 3; k++ {
							s += R[3*a+i] * R[3*b+j] * R[3*c+k] * o[octIndex(i, j, k)]
						}
					}
				}
				ret[idx] = s
				done[idx] = true
			}
		}
	}
	return ret
}
