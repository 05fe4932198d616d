/*
 * result.go, part of goefp.
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
	"fmt"
	"strings"
)

// Result is the outcome code of an operation on an EFP context.
// Every error returned by this package carries one, see Code.
type Result int

const (
	Success Result = iota
	NoMemory
	InvalidArgument
	NotInitialized
	FileNotFound
	SyntaxError
	UnknownFragment
	DuplicateParameters
	CallbackNotSet
	CallbackFailed
	GradientNotRequested
	PBCNotSupported
	PBCRequiresCutoff
	SwfCutoffTooSmall
	BoxTooSmall
	NeedThreeAtoms
	PolNotConverged
	ParametersMissing
	IncorrectEnumValue
	InvalidRotationMatrix
	IndexOutOfRange
	InvalidArraySize
	UnsupportedScreen
	InconsistentTerms
)

var resultStrings = [...]string{
	Success:               "no error",
	NoMemory:              "out of memory",
	InvalidArgument:       "invalid argument to function was specified",
	NotInitialized:        "structure was not properly initialized",
	FileNotFound:          "EFP potential data file not found",
	SyntaxError:           "syntax error in potential data",
	UnknownFragment:       "unknown EFP fragment type",
	DuplicateParameters:   "fragment parameters contain fragments with the same name",
	CallbackNotSet:        "required callback function is not set",
	CallbackFailed:        "callback function failed",
	GradientNotRequested:  "gradient computation was not requested",
	PBCNotSupported:       "periodic simulation is not supported for selected energy terms",
	PBCRequiresCutoff:     "interaction cutoff must be enabled for periodic simulation",
	SwfCutoffTooSmall:     "switching function cutoff is too small",
	BoxTooSmall:           "periodic simulation box is too small",
	NeedThreeAtoms:        "fragment must contain at least three atoms",
	PolNotConverged:       "polarization SCF did not converge",
	ParametersMissing:     "required EFP fragment parameters are missing",
	IncorrectEnumValue:    "incorrect enumeration value",
	InvalidRotationMatrix: "invalid rotation matrix specified",
	IndexOutOfRange:       "index is out of range",
	InvalidArraySize:      "invalid array size",
	UnsupportedScreen:     "unsupported SCREEN group found in EFP data",
	InconsistentTerms:     "inconsistent EFP energy terms selected",
}

// String returns the stable, human readable description of the result code.
func (r Result) String() string {
	if r < 0 || int(r) >= len(resultStrings) {
		return "unknown result"
	}
	return resultStrings[r]
}

// Error makes a Result usable as an error target, so
// errors.Is(err, efp.UnknownFragment) works.
func (r Result) Error() string {
	return r.String()
}

// Error is the error type returned by the operations of this package.
// It carries the Result code, a message, and the list of functions
// it went through (see Decorate). An underlying cause, if any, is
// reachable with errors.Unwrap.
type Error struct {
	code    Result
	message string
	deco    []string
	err     error
}

//Error returns a string with an error message.
func (err *Error) Error() string {
	msg := err.code.String()
	if err.message != "" {
		msg = msg + ": " + err.message
	}
	if err.err != nil {
		msg = msg + ": " + err.err.Error()
	}
	if len(err.deco) > 0 {
		msg = msg + " (" + strings.Join(err.deco, " <- ") + ")"
	}
	return msg
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice. An empty string just returns the current slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Code returns the result code carried by the error.
func (err *Error) Code() Result { return err.code }

func (err *Error) Unwrap() error { return err.err }

// Is reports whether target is the Result code of err.
func (err *Error) Is(target error) bool {
	r, ok := target.(Result)
	return ok && r == err.code
}

// Code extracts the Result code of an error returned by this package.
// A nil error is Success. Errors not produced by this package map to
// InvalidArgument.
func Code(err error) Result {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	var r Result
	if errors.As(err, &r) {
		return r
	}
	return InvalidArgument
}

// NewError builds an *Error with the given code. The message is formatted as
// with fmt.Sprintf. It is exported so parameter readers can report
// FileNotFound, SyntaxError and UnsupportedScreen.
func NewError(code Result, caller string, format string, args ...interface{}) *Error {
	return &Error{code: code, message: fmt.Sprintf(format, args...), deco: []string{caller}}
}

// WrapError builds an *Error with the given code around cause.
func WrapError(code Result, caller string, cause error) *Error {
	return &Error{code: code, deco: []string{caller}, err: cause}
}

// errDecorate adds caller to the decoration of err, if err is an *Error,
// and returns it.
func errDecorate(err error, caller string) error {
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}
