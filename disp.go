/*
 * disp.go, part of goefp.
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

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/spatial/r3"
)

// dispOmega0 sets the scale of the frequency quadrature, in Hartree.
const dispOmega0 = 0.3

// dispFreqs are the imaginary frequencies of the Casimir-Polder quadrature,
// dispWeights their weights, including the 3/pi prefactor.
var dispFreqs, dispWeights = dispQuadrature()

// dispQuadrature maps a Gauss-Legendre quadrature on [-1, 1] to [0, inf)
// with w = w0 (1+t)/(1-t).
func dispQuadrature() ([]float64, []float64) {
	t := make([]float64, DispFreqs)
	w := make([]float64, DispFreqs)
	quad.Legendre{}.FixedLocations(t, w, -1, 1)
	freqs := make([]float64, DispFreqs)
	weights := make([]float64, DispFreqs)
	for k := range t {
		freqs[k] = dispOmega0 * (1 + t[k]) / (1 - t[k])
		weights[k] = 3 / math.Pi * w[k] * 2 * dispOmega0 / ((1 - t[k]) * (1 - t[k]))
	}
	return freqs, weights
}

// DispersionFrequencies returns the imaginary frequencies at which the dynamic
// polarizability tensors of the fragments must be given, in order.
func DispersionFrequencies() []float64 {
	return append([]float64(nil), dispFreqs...)
}

// c6 returns the dispersion coefficient between two dynamic polarizable points.
func c6(a, b *DynPolarizable) float64 {
	s := 0.0
	for k := 0; k < DispFreqs; k++ {
		ta, tb := &a.Tensors[k], &b.Tensors[k]
		ia := (ta[0] + ta[4] + ta[8]) / 3
		ib := (tb[0] + tb[4] + tb[8]) / 3
		s += dispWeights[k] * ia * ib
	}
	return s
}

// computeDisp computes the -C6/r^6 dispersion energy between the dynamic
// polarizable points of every pair of fragments.
func computeDisp(e *Efp) error {
	if !e.opts.Terms.Has(TermDisp) {
		return nil
	}
	for _, p := range e.pairList() {
		e.energy.Dispersion += e.dispPair(&p)
	}
	return nil
}

func (e *Efp) dispPair(p *pair) float64 {
	fa, fb := e.frags[p.i], e.frags[p.j]
	g := newPairGrad(e, p)
	overlap := e.opts.DispDamp == DispDampOverlap
	var off int
	if overlap {
		off = e.overlapOffset(p.i, p.j)
	}
	nb := fb.NLMO()
	en := 0.0
	for a := range fa.DynPolarizables {
		ra := fa.DynPolarizableCoords.Vec(a)
		for b := range fb.DynPolarizables {
			rb := r3.Add(fb.DynPolarizableCoords.Vec(b), p.shift)
			r := r3.Sub(rb, ra)
			d := r3.Norm(r)
			d6 := d * d * d * d * d * d
			cc := c6(&fa.DynPolarizables[a], &fb.DynPolarizables[b])
			f, df := 1.0, 0.0
			switch e.opts.DispDamp {
			case DispDampTT:
				f, df = ttDamp(d)
			case DispDampOverlap:
				idx := off + a*nb + b
				s := fa.overlap[idx]
				if s > 1e-16 {
					l := math.Log(s)
					f = 1 - s*s*(1-2*l+2*l*l)
					dfds := -4 * s * l * l
					//the overlap depends on the LMO centroids
					gs := r3.Scale(-cc/d6*dfds, fa.overlapDeriv[idx])
					g.site(1, r3.Add(fb.LMOCentroids.Vec(b), p.shift), gs)
					g.site(0, fa.LMOCentroids.Vec(a), r3.Scale(-1, gs))
				}
			}
			en -= cc * f / d6
			dEdr := 6*cc*f/(d6*d) - cc*df/d6
			gr := r3.Scale(dEdr/d, r)
			g.site(1, rb, gr)
			g.site(0, ra, r3.Scale(-1, gr))
		}
	}
	e.addPair(p, en, g)
	return p.swf * en
}
