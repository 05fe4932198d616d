/*
 * elec.go, part of goefp.
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
	"gonum.org/v1/gonum/spatial/r3"
)

// computeElec computes the electrostatic interaction between the multipole points
// of every pair of fragments. Only monopoles and dipoles are included.
// With screen damping, the difference between the damped and undamped charge-charge
// energy is reported as charge penetration energy.
func computeElec(e *Efp) error {
	if !e.opts.Terms.Has(TermElec) {
		return nil
	}
	for _, p := range e.pairList() {
		el, cp := e.elecPair(&p)
		e.energy.Electrostatic += el
		e.energy.ChargePenetration += cp
	}
	return nil
}

func (e *Efp) elecPair(p *pair) (float64, float64) {
	fa, fb := e.frags[p.i], e.frags[p.j]
	g := newPairGrad(e, p)
	screened := e.opts.ElecDamp == ElecDampScreen
	var eel, ecp float64
	for a, ma := range fa.Multipoles {
		ra := fa.MultipoleCoords.Vec(a)
		for b, mb := range fb.Multipoles {
			rb := r3.Add(fb.MultipoleCoords.Vec(b), p.shift)
			r := r3.Sub(rb, ra)

			en, gr := chargeCharge(ma.Monopole, mb.Monopole, r)
			eel += en
			if screened {
				d := r3.Norm(r)
				f, df := screen(fa.ScreenParams[a], fb.ScreenParams[b], d)
				ecp += en * (f - 1)
				gr = r3.Add(r3.Scale(f, gr), r3.Scale(en*df/d, r))
			}
			g.site(1, rb, gr)
			g.site(0, ra, r3.Scale(-1, gr))

			en, gr, h := chargeDipole(ma.Monopole, mb.Dipole, r)
			eel += en
			g.site(1, rb, gr)
			g.site(0, ra, r3.Scale(-1, gr))
			g.dipole(1, mb.Dipole, h)

			//charge at b, dipole at a, so the gradient is with respect to ra.
			en, gr, h = chargeDipole(mb.Monopole, ma.Dipole, r3.Scale(-1, r))
			eel += en
			g.site(0, ra, gr)
			g.site(1, rb, r3.Scale(-1, gr))
			g.dipole(0, ma.Dipole, h)

			en, gr, ha, hb := dipoleDipole(ma.Dipole, mb.Dipole, r)
			eel += en
			g.site(1, rb, gr)
			g.site(0, ra, r3.Scale(-1, gr))
			g.dipole(0, ma.Dipole, ha)
			g.dipole(1, mb.Dipole, hb)
		}
	}
	e.addPair(p, eel+ecp, g)
	return p.swf * eel, p.swf * ecp
}
