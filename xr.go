/*
 * xr.go, part of goefp.
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

	"gonum.org/v1/gonum/spatial/r3"
)

// lmoOverlapExponent is the exponent of the gaussian model for the overlap
// between two LMOs, in bohr^-2.
const lmoOverlapExponent = 0.5

// computeXR computes the overlap integrals between the LMOs of every pair of fragments
// and, if exchange repulsion is enabled, the exchange repulsion energy
//  E = sum_ij (|F_ii| + |F_jj|)/2 S_ij^2
// The overlap integrals are also needed for the overlap dispersion damping.
func computeXR(e *Efp) error {
	xr := e.opts.Terms.Has(TermXR)
	damp := e.opts.Terms.Has(TermDisp) && e.opts.DispDamp == DispDampOverlap
	if !xr && !damp {
		return nil
	}
	for _, f := range e.frags {
		for k := range f.overlap {
			f.overlap[k] = 0
			f.overlapDeriv[k] = r3.Vec{}
		}
		for _, d := range f.xrWFDeriv {
			for k := range d {
				d[k] = 0
			}
		}
	}
	for _, p := range e.pairList() {
		en := e.xrPair(&p, xr)
		e.energy.ExchangeRepulsion += en
	}
	return nil
}

// fockDiag returns the diagonal element i of the packed Fock matrix.
func fockDiag(fock []float64, i int) float64 {
	return fock[i*(i+1)/2+i]
}

// xrPair fills the overlap buffers for the pair, and returns the exchange repulsion
// energy if energy is true.
func (e *Efp) xrPair(p *pair, energy bool) float64 {
	fa, fb := e.frags[p.i], e.frags[p.j]
	off := e.overlapOffset(p.i, p.j)
	na, nb := fa.NLMO(), fb.NLMO()
	g := newPairGrad(e, p)
	en := 0.0
	for a := 0; a < na; a++ {
		ra := fa.LMOCentroids.Vec(a)
		for b := 0; b < nb; b++ {
			rb := r3.Add(fb.LMOCentroids.Vec(b), p.shift)
			r := r3.Sub(rb, ra)
			s := math.Exp(-lmoOverlapExponent * r3.Norm2(r))
			ds := r3.Scale(-2*lmoOverlapExponent*s, r)
			idx := off + a*nb + b
			fa.overlap[idx] = s
			fa.overlapDeriv[idx] = ds
			if !energy {
				continue
			}
			lambda := 0.5 * (math.Abs(fockDiag(fa.Fock, a)) + math.Abs(fockDiag(fb.Fock, b)))
			en += lambda * s * s
			gr := r3.Scale(2*lambda*s, ds)
			g.site(1, rb, gr)
			g.site(0, ra, r3.Scale(-1, gr))
		}
	}
	if !energy {
		return 0
	}
	e.addPair(p, en, g)
	return p.swf * en
}
