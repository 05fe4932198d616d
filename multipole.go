/*
 * multipole.go, part of goefp.
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

//Interaction energies between point multipoles, in atomic units. In every
//function r = rb - ra, where a is the first multipole and b the second.
//g is the derivative of the energy with respect to rb (the derivative with
//respect to ra is -g), h the derivative with respect to the dipoles.

func chargeCharge(qa, qb float64, r r3.Vec) (en float64, g r3.Vec) {
	d := r3.Norm(r)
	en = qa * qb / d
	g = r3.Scale(-en/(d*d), r)
	return en, g
}

// chargeDipole is the interaction of a charge at ra with a dipole at rb.
func chargeDipole(q float64, mu, r r3.Vec) (en float64, g, h r3.Vec) {
	d := r3.Norm(r)
	d3 := d * d * d
	d5 := d3 * d * d
	mr := r3.Dot(mu, r)
	en = -q * mr / d3
	g = r3.Add(r3.Scale(-q/d3, mu), r3.Scale(3*q*mr/d5, r))
	h = r3.Scale(-q/d3, r)
	return en, g, h
}

func dipoleDipole(ma, mb, r r3.Vec) (en float64, g, ha, hb r3.Vec) {
	d := r3.Norm(r)
	d2 := d * d
	d3 := d2 * d
	d5 := d3 * d2
	d7 := d5 * d2
	ab := r3.Dot(ma, mb)
	ar := r3.Dot(ma, r)
	br := r3.Dot(mb, r)
	en = ab/d3 - 3*ar*br/d5
	g = r3.Scale(-3*ab/d5+15*ar*br/d7, r)
	g = r3.Sub(g, r3.Scale(3*br/d5, ma))
	g = r3.Sub(g, r3.Scale(3*ar/d5, mb))
	ha = r3.Sub(r3.Scale(1/d3, mb), r3.Scale(3*br/d5, r))
	hb = r3.Sub(r3.Scale(1/d3, ma), r3.Scale(3*ar/d5, r))
	return en, g, ha, hb
}

// chargeField returns the electric field at r from a charge q at the origin.
func chargeField(q float64, r r3.Vec) r3.Vec {
	d := r3.Norm(r)
	return r3.Scale(q/(d*d*d), r)
}

// dipoleField returns the electric field at r from a dipole mu at the origin.
func dipoleField(mu, r r3.Vec) r3.Vec {
	d := r3.Norm(r)
	d3 := d * d * d
	d5 := d3 * d * d
	return r3.Sub(r3.Scale(3*r3.Dot(mu, r)/d5, r), r3.Scale(1/d3, mu))
}

// screen returns the SCREEN2 damping factor for the charge-charge
// interaction between points with screening parameters a and b at distance r,
// and its derivative with respect to r.
func screen(a, b, r float64) (float64, float64) {
	if a <= 0 || b <= 0 {
		return 1, 0
	}
	if math.Abs(a-b) < 1e-6 {
		ea := math.Exp(-a * r)
		return 1 - (1+0.5*a*r)*ea, ea * (0.5*a + 0.5*a*a*r)
	}
	a2, b2 := a*a, b*b
	ea, eb := math.Exp(-a*r), math.Exp(-b*r)
	f := 1 - b2/(b2-a2)*ea - a2/(a2-b2)*eb
	df := b2/(b2-a2)*a*ea + a2/(a2-b2)*b*eb
	return f, df
}

// polDampTT returns the Tang-Toennies-like damping of the field of a charge at distance r
// on a polarizable point, and its derivative.
func polDampTT(r float64) (float64, float64) {
	const p = 0.6
	pr2 := p * r * r
	ex := math.Exp(-pr2)
	return 1 - ex*(1+pr2), 2 * p * p * r * r * r * ex
}

// ttDamp returns the Tang-Toennies damping function of 6th order for the
// dispersion between points at distance r, and its derivative.
func ttDamp(r float64) (float64, float64) {
	const b = 1.5
	x := b * r
	ex := math.Exp(-x)
	sum, term := 1.0, 1.0
	for k := 1; k <= 6; k++ {
		term *= x / float64(k)
		sum += term
	}
	//term is now x^6/6!
	return 1 - ex*sum, b * ex * term
}
