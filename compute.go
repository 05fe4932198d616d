/*
 * compute.go, part of goefp.
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

// Energy is the breakdown of the interaction energy in its terms, in Hartree.
// The ab initio polarization energy is part of Polarization.
type Energy struct {
	Electrostatic       float64
	ChargePenetration   float64
	Polarization        float64
	Dispersion          float64
	ExchangeRepulsion   float64
	ChargeTransfer      float64
	AIElectrostatic     float64
	AIDispersion        float64
	AIExchangeRepulsion float64
	AIChargeTransfer    float64
}

// Total returns the sum of all the terms.
func (E Energy) Total() float64 {
	return E.Electrostatic + E.ChargePenetration + E.Polarization + E.Dispersion +
		E.ExchangeRepulsion + E.ChargeTransfer + E.AIElectrostatic + E.AIDispersion +
		E.AIExchangeRepulsion + E.AIChargeTransfer
}

// term is one energy term. compute adds the contribution of the term
// to the energy breakdown and, if requested, to the gradients. A term which is
// not enabled in the options does nothing.
type term interface {
	id() Terms
	compute(e *Efp) error
}

type termFunc struct {
	t Terms
	f func(*Efp) error
}

func (t termFunc) id() Terms            { return t.t }
func (t termFunc) compute(e *Efp) error { return t.f(e) }

// defaultTerms returns the terms in the order they are computed. Exchange
// repulsion comes first because it computes the overlap integrals used by the
// dispersion damping.
func defaultTerms() []term {
	return []term{
		termFunc{TermXR, computeXR},
		termFunc{TermElec, computeElec},
		termFunc{TermPol, computePol},
		termFunc{TermDisp, computeDisp},
		termFunc{TermAIElec, computeAIElec},
	}
}

// Compute computes the energy and, if doGradient is true, the gradient for
// the current geometry. The first term that fails stops the computation, and
// its error is returned. Results are undefined after a failure.
func (e *Efp) Compute(doGradient bool) error {
	const caller = "Efp.Compute"
	if err := e.check(caller); err != nil {
		return err
	}
	if e.opts.EnablePBC && (e.box.X <= 0 || e.box.Y <= 0 || e.box.Z <= 0) {
		return NewError(BoxTooSmall, caller, "periodic box not set")
	}
	e.doGradient = doGradient
	e.energy = Energy{}
	e.stress = [9]float64{}
	for _, f := range e.frags {
		f.force = r3.Vec{}
		f.torque = r3.Vec{}
	}
	for i := range e.qmGrad {
		e.qmGrad[i] = r3.Vec{}
	}
	for _, t := range e.terms {
		if err := t.compute(e); err != nil {
			e.log.Debug("term failed", zap.Stringer("term", t.id()), zap.Error(err))
			return errDecorate(err, caller)
		}
	}
	e.log.Debug("energy computed",
		zap.Bool("gradient", doGradient),
		zap.Float64("elec", e.energy.Electrostatic),
		zap.Float64("pol", e.energy.Polarization),
		zap.Float64("disp", e.energy.Dispersion),
		zap.Float64("xr", e.energy.ExchangeRepulsion),
		zap.Float64("total", e.energy.Total()))
	return nil
}

// ScfUpdate solves the polarization equations for the current geometry, QM atoms
// and electron density field, and returns the polarization energy. It is meant
// to be called in each iteration of an ab initio SCF procedure. The energy
// breakdown is not modified.
func (e *Efp) ScfUpdate() (float64, error) {
	const caller = "Efp.ScfUpdate"
	if err := e.check(caller); err != nil {
		return 0, err
	}
	if !e.opts.Terms.Has(TermPol) {
		return 0, nil
	}
	en, _, _, err := e.polSCF()
	if err != nil {
		return 0, errDecorate(err, caller)
	}
	return en, nil
}
