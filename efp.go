/*
 * efp.go, part of goefp.
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
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// magicNumber marks a fully initialized context.
const magicNumber = 0xEF9A6

// maxAlloc is the largest number of elements allowed for a single buffer.
const maxAlloc = 1 << 30

// Efp is an EFP simulation context. It owns the fragment library, the fragment
// instances and every result of the last computation. A context must not be
// used concurrently, but independent contexts share no state.
type Efp struct {
	magic      uint32
	opts       Opts
	cb         Callbacks
	lib        Library
	frags      []*Fragment
	qmZnuc     []float64
	qmPos      []r3.Vec
	qmGrad     []r3.Vec
	energy     Energy
	box        r3.Vec
	stress     [9]float64
	doGradient bool
	terms      []term
	log        *zap.Logger
}

// New creates a context. The newline-delimited list files names the potential data
// sources read with reader, and the newline-delimited list names gives, in order,
// the type of each fragment in the simulation. Blank lines are ignored in both.
// Fragment types are matched without regard to case. cb can be nil if no callback
// is needed by the selected terms.
// If initialization fails, the partially built context is returned together with
// the error. Such a context is not usable, but Shutdown can be called on it.
func New(opts *Opts, cb *Callbacks, reader PotentialReader, files, names string) (*Efp, error) {
	const caller = "New"
	if opts == nil {
		return nil, NewError(InvalidArgument, caller, "nil options")
	}
	e := &Efp{opts: *opts, terms: defaultTerms(), log: zap.NewNop()}
	if cb != nil {
		e.cb = *cb
	}
	if err := e.opts.check(); err != nil {
		return e, errDecorate(err, caller)
	}
	if e.opts.Terms.Has(TermAIPol) && e.cb.ElectronDensityField == nil {
		return e, NewError(CallbackNotSet, caller, "ab initio polarization needs the electron density field callback")
	}
	if err := e.lib.Load(reader, files); err != nil {
		return e, errDecorate(err, caller)
	}
	for _, name := range splitList(names) {
		t := e.lib.Find(name)
		if t == nil {
			return e, NewError(UnknownFragment, caller, "%s", name)
		}
		e.frags = append(e.frags, t.clone())
	}
	if err := e.setupBuffers(); err != nil {
		return e, errDecorate(err, caller)
	}
	for i, f := range e.frags {
		if err := e.opts.checkFrag(f, i); err != nil {
			return e, errDecorate(err, caller)
		}
	}
	e.magic = magicNumber
	return e, nil
}

// SetLogger sets the logger used by the context. A nil logger disables logging.
// The logger is given a summary of the context when it is set.
func (e *Efp) SetLogger(l *zap.Logger) {
	if e == nil {
		return
	}
	if l == nil {
		l = zap.NewNop()
	}
	e.log = l
	if e.magic != magicNumber {
		return
	}
	e.log.Info("EFP context",
		zap.Int("fragments", len(e.frags)),
		zap.Int("templates", e.lib.Len()),
		zap.Stringer("terms", e.opts.Terms),
		zap.Stringer("elec_damp", e.opts.ElecDamp),
		zap.Stringer("disp_damp", e.opts.DispDamp),
		zap.Stringer("pol_damp", e.opts.PolDamp),
		zap.Bool("pbc", e.opts.EnablePBC),
		zap.Bool("cutoff", e.opts.EnableCutoff))
}

// Shutdown releases every resource owned by the context. The context can't be
// used afterwards. Shutdown can be called on nil, on a context whose
// initialization failed, and more than once.
func (e *Efp) Shutdown() {
	if e == nil {
		return
	}
	for _, f := range e.frags {
		f.release()
	}
	*e = Efp{log: zap.NewNop()}
}

func (e *Efp) check(caller string) error {
	if e == nil || e.magic != magicNumber {
		return NewError(NotInitialized, caller, "")
	}
	return nil
}

// Opts returns a copy of the options of the context.
func (e *Efp) Opts() (Opts, error) {
	if err := e.check("Efp.Opts"); err != nil {
		return Opts{}, err
	}
	return e.opts, nil
}

func allocFloats(n int) ([]float64, error) {
	if n < 0 || n > maxAlloc {
		return nil, NewError(NoMemory, "allocFloats", "%d elements", n)
	}
	return make([]float64, n), nil
}

// setupBuffers allocates the per-fragment buffers whose size depends on
// the other fragments or on the basis set.
func (e *Efp) setupBuffers() error {
	overlap := e.opts.Terms.Has(TermXR) || (e.opts.Terms.Has(TermDisp) && e.opts.DispDamp == DispDampOverlap)
	var err error
	for i, f := range e.frags {
		if overlap {
			n := 0
			for _, g := range e.frags[i+1:] {
				n += f.NLMO() * g.NLMO()
			}
			if f.overlap, err = allocFloats(n); err != nil {
				return errDecorate(err, "Efp.setupBuffers")
			}
			f.overlapDeriv = make([]r3.Vec, n)
		}
		if e.opts.Terms.Has(TermXR) {
			for k := range f.xrWFDeriv {
				if f.xrWFDeriv[k], err = allocFloats(f.NLMO() * f.BasisSize()); err != nil {
					return errDecorate(err, "Efp.setupBuffers")
				}
			}
		}
	}
	return nil
}

// overlapOffset returns the position, in the overlap buffers of fragment i, of
// the block for fragment j > i.
func (e *Efp) overlapOffset(i, j int) int {
	off := 0
	ni := e.frags[i].NLMO()
	for k := i + 1; k < j; k++ {
		off += ni * e.frags[k].NLMO()
	}
	return off
}
