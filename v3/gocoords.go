/*
 * gocoords.go, part of goefp.
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

package v3

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

//Returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
//Zero vectors give a nil Matrix.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	if vecs == 0 {
		return nil
	}
	return &Matrix{mat.NewDense(vecs, cols, nil)}
}

//METHODS

//return the number of vecs in F. A nil Matrix has no vecs.
func (F *Matrix) NVecs() int {
	if F == nil || F.Dense == nil {
		return 0
	}
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//Vec returns a copy of the ith vector of F.
func (F *Matrix) Vec(i int) r3.Vec {
	if i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	return r3.Vec{X: F.At(i, 0), Y: F.At(i, 1), Z: F.At(i, 2)}
}

//SetVec sets the ith vector of F to v.
func (F *Matrix) SetVec(i int, v r3.Vec) {
	if i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	F.Set(i, 0, v.X)
	F.Set(i, 1, v.Y)
	F.Set(i, 2, v.Z)
}

//Clone returns a deep copy of F. The copy shares no memory with F.
func (F *Matrix) Clone() *Matrix {
	if F.NVecs() == 0 {
		return nil
	}
	return &Matrix{mat.DenseCopyOf(F.Dense)}
}

//Flat copies the coordinates of F, vector after vector, into dst, which
//must have room for 3*F.NVecs() elements. It returns the number of
//elements written.
func (F *Matrix) Flat(dst []float64) int {
	n := F.NVecs()
	if len(dst) < 3*n {
		panic(ErrShape)
	}
	for i := 0; i < n; i++ {
		mat.Row(dst[3*i:3*i+3], i, F.Dense)
	}
	return 3 * n
}

//Adds a vector to each vector of the matrix A, putting the result on the receiver.
func (F *Matrix) AddVec(A *Matrix, vec r3.Vec) {
	ar := A.NVecs()
	if ar != F.NVecs() {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		F.SetVec(i, r3.Add(A.Vec(i), vec))
	}
}

//Move puts in the receiver the vectors of A, rotated by rot and then translated by vec:
//F_i = rot*A_i + vec. rot is the rotation acting on column vectors. F and A can be the same.
func (F *Matrix) Move(A *Matrix, rot *r3.Mat, vec r3.Vec) {
	ar := A.NVecs()
	if ar != F.NVecs() {
		panic(ErrShape)
	}
	if ar == 0 {
		return
	}
	if F.Dense == A.Dense {
		A = A.Clone() //gonum does not allow the receiver to overlap the arguments.
	}
	//Row vectors, so we need A*rot^T.
	F.Mul(A, rot.T())
	F.AddVec(F, vec)
}

//Returns a matrix contaning all the ith rows of matrix A,
//where i are the numbers in clist. The rows are in the same order
//than the clist.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar, ac := A.Dims()
	fr, fc := F.Dims()
	if ac != fc || fr != len(clist) || ar < len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		for j := 0; j < ac; j++ {
			F.Set(key, j, A.At(val, j))
		}
	}
}
