/*
 * pairs.go, part of goefp.
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

// swfOnFraction is the fraction of the cutoff at which the switching
// function starts to decrease.
const swfOnFraction = 0.7

// pair is an interacting pair of fragments i < j.
type pair struct {
	i, j  int
	shift r3.Vec //added to every coordinate of fragment j (minimum image)
	dr    r3.Vec //center of j (shifted) minus center of i
	swf   float64
	dswf  float64 //derivative of the switching function with respect to |dr|
}

// swf returns the switching function for the distance r and the cutoff, and its derivative.
func swf(r, cutoff float64) (float64, float64) {
	on := swfOnFraction * cutoff
	if r <= on {
		return 1, 0
	}
	if r >= cutoff {
		return 0, 0
	}
	w := cutoff - on
	x := (r - on) / w
	x2 := x * x
	x3 := x2 * x
	s := 1 - 10*x3 + 15*x3*x - 6*x3*x2
	ds := (-30*x2 + 60*x3 - 30*x3*x) / w
	return s, ds
}

// fragPair returns the pair i,j and whether it interacts at all.
func (e *Efp) fragPair(i, j int) (pair, bool) {
	p := pair{i: i, j: j, swf: 1}
	p.dr = r3.Sub(e.frags[j].pos, e.frags[i].pos)
	if e.opts.EnablePBC {
		p.shift = r3.Vec{
			X: -e.box.X * math.Round(p.dr.X/e.box.X),
			Y: -e.box.Y * math.Round(p.dr.Y/e.box.Y),
			Z: -e.box.Z * math.Round(p.dr.Z/e.box.Z),
		}
		p.dr = r3.Add(p.dr, p.shift)
	}
	if e.opts.EnableCutoff {
		r := r3.Norm(p.dr)
		if r > e.opts.SwfCutoff {
			return p, false
		}
		p.swf, p.dswf = swf(r, e.opts.SwfCutoff)
	}
	return p, true
}

// pairList returns every interacting pair of fragments.
func (e *Efp) pairList() []pair {
	var ret []pair
	for i := range e.frags {
		for j := i + 1; j < len(e.frags); j++ {
			if p, ok := e.fragPair(i, j); ok {
				ret = append(ret, p)
			}
		}
	}
	return ret
}

// pairGrad accumulates the gradient of an interaction energy with respect
// to the position and orientation of the two fragments involved (sides 0 and 1).
type pairGrad struct {
	c [2]r3.Vec //rotation centers
	f [2]r3.Vec
	t [2]r3.Vec
}

func newPairGrad(e *Efp, p *pair) *pairGrad {
	return &pairGrad{c: [2]r3.Vec{e.frags[p.i].pos, r3.Add(e.frags[p.j].pos, p.shift)}}
}

// site adds grad, the derivative of the energy with respect to the lab
// position pos of a point that moves rigidly with the fragment.
func (g *pairGrad) site(side int, pos, grad r3.Vec) {
	g.f[side] = r3.Add(g.f[side], grad)
	g.t[side] = r3.Add(g.t[side], r3.Cross(r3.Sub(pos, g.c[side]), grad))
}

// dipole adds the contribution of a dipole mu that rotates with the fragment,
// h being the derivative of the energy with respect to mu.
func (g *pairGrad) dipole(side int, mu, h r3.Vec) {
	g.t[side] = r3.Add(g.t[side], r3.Cross(mu, h))
}

// addPair adds the gradient g of the pair energy en to both fragments, scaled by
// the switching function, together with the derivative of the switching function.
// Under periodic boundary conditions, the pair virial is added to the stress tensor.
func (e *Efp) addPair(p *pair, en float64, g *pairGrad) {
	if !e.doGradient {
		return
	}
	fi := r3.Scale(p.swf, g.f[0])
	fj := r3.Scale(p.swf, g.f[1])
	if p.dswf != 0 {
		gs := r3.Scale(en*p.dswf/r3.Norm(p.dr), p.dr)
		fi = r3.Sub(fi, gs)
		fj = r3.Add(fj, gs)
	}
	a, b := e.frags[p.i], e.frags[p.j]
	a.force = r3.Add(a.force, fi)
	a.torque = r3.Add(a.torque, r3.Scale(p.swf, g.t[0]))
	b.force = r3.Add(b.force, fj)
	b.torque = r3.Add(b.torque, r3.Scale(p.swf, g.t[1]))
	if e.opts.EnablePBC {
		d := [3]float64{p.dr.X, p.dr.Y, p.dr.Z}
		f := [3]float64{fj.X, fj.Y, fj.Z}
		for k := 0; k < 3; k++ {
			for l := 0; l < 3; l++ {
				e.stress[3*k+l] += d[k] * f[l]
			}
		}
	}
}

// addFragGrad adds side 0 of g to fragment i, for interactions which
// involve a single fragment.
func (e *Efp) addFragGrad(i int, g *pairGrad) {
	if !e.doGradient {
		return
	}
	f := e.frags[i]
	f.force = r3.Add(f.force, g.f[0])
	f.torque = r3.Add(f.torque, g.t[0])
}
