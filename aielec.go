/*
 * aielec.go, part of goefp.
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

// computeAIElec computes the electrostatic interaction between the QM nuclei
// and the multipoles of the fragments. The interaction with the ab initio
// electrons is the business of the ab initio code, which can obtain the
// multipoles with Efp.Multipoles.
func computeAIElec(e *Efp) error {
	if !e.opts.Terms.Has(TermAIElec) {
		return nil
	}
	for i, f := range e.frags {
		g := &pairGrad{c: [2]r3.Vec{f.pos}}
		for b, m := range f.Multipoles {
			rb := f.MultipoleCoords.Vec(b)
			for q, z := range e.qmZnuc {
				r := r3.Sub(rb, e.qmPos[q])
				en, gr := chargeCharge(z, m.Monopole, r)
				en2, gr2, h := chargeDipole(z, m.Dipole, r)
				e.energy.AIElectrostatic += en + en2
				gr = r3.Add(gr, gr2)
				g.site(0, rb, gr)
				g.dipole(0, m.Dipole, h)
				if e.doGradient {
					e.qmGrad[q] = r3.Sub(e.qmGrad[q], gr)
				}
			}
		}
		e.addFragGrad(i, g)
	}
	return nil
}
