/*
 * pol.go, part of goefp.
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

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	polMaxIter   = 100
	polThreshold = 1.0e-10
)

// computePol computes the polarization energy: the induced dipoles at the
// polarizable points are obtained self-consistently, in the field of the
// multipoles of the other fragments, the QM nuclei and the ab initio electron
// density (the last two only with ab initio polarization), and of the other
// induced dipoles.
func computePol(e *Efp) error {
	if !e.opts.Terms.Has(TermPol) {
		return nil
	}
	en, etot, etotc, err := e.polSCF()
	if err != nil {
		return errDecorate(err, "computePol")
	}
	e.energy.Polarization += en
	if e.doGradient {
		e.polGradient(e.pairList(), etot, etotc)
	}
	return nil
}

func (e *Efp) newFields() [][]r3.Vec {
	ret := make([][]r3.Vec, len(e.frags))
	for i, f := range e.frags {
		ret[i] = make([]r3.Vec, len(f.Polarizables))
	}
	return ret
}

func mulTensor(t *[9]float64, v r3.Vec) r3.Vec {
	return r3.Vec{
		X: t[0]*v.X + t[1]*v.Y + t[2]*v.Z,
		Y: t[3]*v.X + t[4]*v.Y + t[5]*v.Z,
		Z: t[6]*v.X + t[7]*v.Y + t[8]*v.Z,
	}
}

func mulTensorTrans(t *[9]float64, v r3.Vec) r3.Vec {
	return r3.Vec{
		X: t[0]*v.X + t[3]*v.Y + t[6]*v.Z,
		Y: t[1]*v.X + t[4]*v.Y + t[7]*v.Z,
		Z: t[2]*v.X + t[5]*v.Y + t[8]*v.Z,
	}
}

// polSCF obtains the induced and conjugate induced dipoles, and returns the
// polarization energy and the total fields at each polarizable point, for the
// induced dipoles and for the conjugate ones. The conjugate dipoles solve the
// same equations with the transposed polarizability tensors, the two sets are
// equal for symmetric tensors.
func (e *Efp) polSCF() (float64, [][]r3.Vec, [][]r3.Vec, error) {
	pairs := e.pairList()
	e0, err := e.staticField(pairs)
	if err != nil {
		return 0, nil, nil, errDecorate(err, "Efp.polSCF")
	}
	converged := false
	iter := 0
	for ; iter < polMaxIter; iter++ {
		etot := e.totalField(e0, pairs, false)
		etotc := e.totalField(e0, pairs, true)
		change := 0.0
		n := 0
		for i, f := range e.frags {
			for k := range f.Polarizables {
				t := &f.Polarizables[k].Tensor
				mu := mulTensor(t, etot[i][k])
				muc := mulTensorTrans(t, etotc[i][k])
				change += r3.Norm2(r3.Sub(mu, f.induced[k])) + r3.Norm2(r3.Sub(muc, f.inducedConj[k]))
				f.induced[k] = mu
				f.inducedConj[k] = muc
				n++
			}
		}
		if n == 0 || math.Sqrt(change/float64(2*n)) < polThreshold {
			converged = true
			break
		}
	}
	if !converged {
		return 0, nil, nil, NewError(PolNotConverged, "Efp.polSCF", "%d iterations", polMaxIter)
	}
	e.log.Debug("polarization converged", zap.Int("iterations", iter+1))
	//Stationary value of
	// L = -1/2 mubar.E0 - 1/2 mu.E0 + 1/2 mubar.(alpha^-1 - T) mu
	//which is -1/2 mu.E0 = -1/2 mubar.E0 at convergence.
	en := 0.0
	for i, f := range e.frags {
		for k, mu := range f.induced {
			en -= 0.5 * r3.Dot(mu, e0[i][k])
		}
	}
	return en, e.totalField(e0, pairs, false), e.totalField(e0, pairs, true), nil
}

// staticField returns the field at every polarizable point that does not depend
// on the induced dipoles.
func (e *Efp) staticField(pairs []pair) ([][]r3.Vec, error) {
	field := e.newFields()
	damp := e.opts.PolDamp == PolDampTT
	for _, p := range pairs {
		e.multipoleField(field, p.i, p.j, p.shift, p.swf, damp)
		e.multipoleField(field, p.j, p.i, r3.Scale(-1, p.shift), p.swf, damp)
	}
	if !e.opts.Terms.Has(TermAIPol) {
		return field, nil
	}
	for i, f := range e.frags {
		for k := range f.Polarizables {
			rk := f.PolarizableCoords.Vec(k)
			for q, z := range e.qmZnuc {
				field[i][k] = r3.Add(field[i][k], chargeField(z, r3.Sub(rk, e.qmPos[q])))
			}
		}
	}
	var xyz []float64
	for _, f := range e.frags {
		n := f.PolarizableCoords.NVecs()
		if n == 0 {
			continue
		}
		buf := make([]float64, 3*n)
		f.PolarizableCoords.Flat(buf)
		xyz = append(xyz, buf...)
	}
	if len(xyz) == 0 {
		return field, nil
	}
	ef, err := e.cb.ElectronDensityField(xyz)
	if err != nil {
		return nil, WrapError(CallbackFailed, "Efp.staticField", err)
	}
	if len(ef) != len(xyz) {
		return nil, NewError(CallbackFailed, "Efp.staticField", "%d field components for %d points", len(ef), len(xyz)/3)
	}
	n := 0
	for i := range field {
		for k := range field[i] {
			field[i][k] = r3.Add(field[i][k], r3.Vec{X: ef[n], Y: ef[n+1], Z: ef[n+2]})
			n += 3
		}
	}
	return field, nil
}

// multipoleField adds to the field at the polarizable points of fragment to
// the field of the multipoles of fragment from, displaced by shift, scaled by scale.
func (e *Efp) multipoleField(field [][]r3.Vec, to, from int, shift r3.Vec, scale float64, damp bool) {
	ft, ff := e.frags[to], e.frags[from]
	for k := range ft.Polarizables {
		rk := ft.PolarizableCoords.Vec(k)
		var E r3.Vec
		for b, m := range ff.Multipoles {
			r := r3.Sub(rk, r3.Add(ff.MultipoleCoords.Vec(b), shift))
			ef := chargeField(m.Monopole, r)
			if damp {
				f, _ := polDampTT(r3.Norm(r))
				ef = r3.Scale(f, ef)
			}
			E = r3.Add(E, r3.Add(ef, dipoleField(m.Dipole, r)))
		}
		field[to][k] = r3.Add(field[to][k], r3.Scale(scale, E))
	}
}

// totalField returns the static field e0 plus the field of the induced dipoles
// (or of the conjugate induced dipoles).
func (e *Efp) totalField(e0 [][]r3.Vec, pairs []pair, conj bool) [][]r3.Vec {
	field := e.newFields()
	for i := range e0 {
		copy(field[i], e0[i])
	}
	dipoles := func(f *Fragment) []r3.Vec {
		if conj {
			return f.inducedConj
		}
		return f.induced
	}
	add := func(to, from int, shift r3.Vec, scale float64) {
		ft, ff := e.frags[to], e.frags[from]
		mus := dipoles(ff)
		for k := range ft.Polarizables {
			rk := ft.PolarizableCoords.Vec(k)
			var E r3.Vec
			for l, mu := range mus {
				E = r3.Add(E, dipoleField(mu, r3.Sub(rk, r3.Add(ff.PolarizableCoords.Vec(l), shift))))
			}
			field[to][k] = r3.Add(field[to][k], r3.Scale(scale, E))
		}
	}
	for _, p := range pairs {
		add(p.i, p.j, p.shift, p.swf)
		add(p.j, p.i, r3.Scale(-1, p.shift), p.swf)
	}
	return field
}

// meanInduced returns the mean of the induced and conjugate induced dipole k of f.
func meanInduced(f *Fragment, k int) r3.Vec {
	return r3.Scale(0.5, r3.Add(f.induced[k], f.inducedConj[k]))
}

// polGradient adds the polarization gradient for the converged induced dipoles,
// the explicit derivative of the stationary functional (see polSCF).
// etot and etotc are the total fields at each polarizable point for the induced
// and the conjugate induced dipoles.
func (e *Efp) polGradient(pairs []pair, etot, etotc [][]r3.Vec) {
	damp := e.opts.PolDamp == PolDampTT
	for _, p := range pairs {
		g := newPairGrad(e, &p)
		en := e.polInducedPermanent(&p, g, 0, damp)
		en += e.polInducedPermanent(&p, g, 1, damp)
		fi, fj := e.frags[p.i], e.frags[p.j]
		for k, mk := range fi.induced {
			mck := fi.inducedConj[k]
			rk := fi.PolarizableCoords.Vec(k)
			for l, ml := range fj.induced {
				mcl := fj.inducedConj[l]
				rl := r3.Add(fj.PolarizableCoords.Vec(l), p.shift)
				r := r3.Sub(rl, rk)
				e1, g1, _, _ := dipoleDipole(mck, ml, r)
				e2, g2, _, _ := dipoleDipole(mk, mcl, r)
				en += 0.5 * (e1 + e2)
				gr := r3.Scale(0.5, r3.Add(g1, g2))
				g.site(1, rl, gr)
				g.site(0, rk, r3.Scale(-1, gr))
			}
		}
		e.addPair(&p, en, g)
	}
	ai := e.opts.Terms.Has(TermAIPol)
	for i, f := range e.frags {
		g := &pairGrad{c: [2]r3.Vec{f.pos}}
		for k, mu := range f.induced {
			//rotation of the polarizability tensor
			t := r3.Add(r3.Cross(etot[i][k], f.inducedConj[k]), r3.Cross(etotc[i][k], mu))
			g.t[0] = r3.Add(g.t[0], r3.Scale(0.5, t))
			if !ai {
				continue
			}
			rk := f.PolarizableCoords.Vec(k)
			avg := meanInduced(f, k)
			for q, z := range e.qmZnuc {
				_, gr, _ := chargeDipole(z, avg, r3.Sub(rk, e.qmPos[q]))
				g.site(0, rk, gr)
				e.qmGrad[q] = r3.Sub(e.qmGrad[q], gr)
			}
		}
		e.addFragGrad(i, g)
	}
}

// polInducedPermanent adds to g the gradient of the interaction between the
// mean induced dipoles of the fragment at the given side of the pair and the
// multipoles of the other fragment, and returns the interaction energy.
func (e *Efp) polInducedPermanent(p *pair, g *pairGrad, side int, damp bool) float64 {
	idx := [2]int{p.i, p.j}
	shift := [2]r3.Vec{{}, p.shift}
	other := 1 - side
	fp, fm := e.frags[idx[side]], e.frags[idx[other]]
	en := 0.0
	for k := range fp.induced {
		mu := meanInduced(fp, k)
		rk := r3.Add(fp.PolarizableCoords.Vec(k), shift[side])
		for b, m := range fm.Multipoles {
			rb := r3.Add(fm.MultipoleCoords.Vec(b), shift[other])
			r := r3.Sub(rk, rb)
			e1, gr, _ := chargeDipole(m.Monopole, mu, r)
			if damp {
				d := r3.Norm(r)
				f, df := polDampTT(d)
				gr = r3.Add(r3.Scale(f, gr), r3.Scale(e1*df/d, r))
				e1 *= f
			}
			en += e1
			g.site(side, rk, gr)
			g.site(other, rb, r3.Scale(-1, gr))

			e2, gr2, _, hb := dipoleDipole(mu, m.Dipole, r3.Sub(rb, rk))
			en += e2
			g.site(other, rb, gr2)
			g.site(side, rk, r3.Scale(-1, gr2))
			g.dipole(other, m.Dipole, hb)
		}
	}
	return en
}
