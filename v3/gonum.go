/*
 * gonum.go, part of goefp.
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

//gonum.go contains most of what is needed for handling the gonum/mat types and facilities.

package v3

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//The main container, must be able to implement any
//gonum interface.
//Matrix is a set of vectors in 3D space.
//Within the package it is understood that a "vector" is a row vector, i.e. the
//cartesian coordinates of a point in 3D space. The name of some funcitions in
//the library reflect this.
type Matrix struct {
	*mat.Dense
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
//The data slice is used as backing storage, it is not copied.
//An empty slice gives a nil Matrix.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice lenght %d not divisible by %d: %d", l, cols, l%cols), "NewMatrix"}
	}
	if rows == 0 {
		return nil, nil
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//Mul Wrapps mat.Dense.Mul to take care of the case when one of the
//arguments is also the received. Since the received is a Matrix,
//the mat function could check A (mat.Dense) vs F (Matrix) and
//it would not know that internally F.Dense==A, hence the need for this function.
func (F *Matrix) Mul(A, B mat.Matrix) {
	if C, ok := A.(*Matrix); ok {
		A = C.Dense
	}
	if D, ok := B.(*Matrix); ok {
		B = D.Dense
	}
	F.Dense.Mul(A, B)
}

//Error is returned by the functions of the package that do not panic.
type Error struct {
	message string
	caller  string
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.caller + ": " + err.message
}

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("goEFP/v3: A VecMatrix should have 3 columns")
	ErrShape           = PanicMsg("goEFP/v3: Dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("goEFP/v3: index out of range")
)
