/*
 * compute_test.go, part of goefp.
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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// closeFrags are three fragments close enough for the overlap-based terms to matter.
var closeFrags = []float64{
	0, 0, 0, 0.3, 1.1, -0.4,
	3.2, 0.4, 0.3, 1.7, 0.6, 2.1,
	0.2, 3.4, -0.6, -0.9, 2.0, 0.3,
}

func optsWith(terms Terms, mod ...func(*Opts)) *Opts {
	o := DefaultOpts()
	o.Terms = terms
	for _, m := range mod {
		m(o)
	}
	return o
}

// uniformField is an electron density field callback which returns the same
// field at every point.
func uniformField(f r3.Vec) *Callbacks {
	return &Callbacks{ElectronDensityField: func(xyz []float64) ([]float64, error) {
		ret := make([]float64, len(xyz))
		for i := 0; i < len(ret); i += 3 {
			ret[i], ret[i+1], ret[i+2] = f.X, f.Y, f.Z
		}
		return ret, nil
	}}
}

func TestEnergyTerms(Te *testing.T) {
	e := newTestEfp(Te, testOpts(), nil, names("H2O", "OTHER", "H2O"), threeFrags)
	defer e.Shutdown()
	e.SetLogger(zaptest.NewLogger(Te))
	if err := e.Compute(false); err != nil {
		Te.Fatal(err)
	}
	en, err := e.Energy()
	if err != nil {
		Te.Fatal(err)
	}
	Te.Logf("%+v", en)
	for name, v := range map[string]float64{
		"electrostatic":      en.Electrostatic,
		"charge penetration": en.ChargePenetration,
		"polarization":       en.Polarization,
		"dispersion":         en.Dispersion,
		"exchange repulsion": en.ExchangeRepulsion,
	} {
		if v == 0 || math.IsNaN(v) {
			Te.Errorf("%s energy is %v", name, v)
		}
	}
	if en.Polarization >= 0 || en.Dispersion >= 0 || en.ExchangeRepulsion <= 0 {
		Te.Errorf("wrong signs in %+v", en)
	}
	if en.ChargeTransfer != 0 || en.AIDispersion != 0 || en.AIExchangeRepulsion != 0 || en.AIChargeTransfer != 0 {
		Te.Errorf("terms without a model should contribute nothing: %+v", en)
	}
	sum := en.Electrostatic + en.ChargePenetration + en.Polarization + en.Dispersion + en.ExchangeRepulsion +
		en.ChargeTransfer + en.AIElectrostatic + en.AIDispersion + en.AIExchangeRepulsion + en.AIChargeTransfer
	if en.Total() != sum {
		Te.Errorf("total %v is not the sum of the terms %v", en.Total(), sum)
	}
	//the polarization energy from the SCF update agrees and the breakdown stays the same
	pol, err := e.ScfUpdate()
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(pol-en.Polarization) > 1e-9 {
		Te.Errorf("ScfUpdate gave %v, Compute %v", pol, en.Polarization)
	}
	en2, _ := e.Energy()
	if en2 != en {
		Te.Errorf("ScfUpdate changed the energy breakdown: %+v", en2)
	}
}

func TestRigidMotionInvariance(Te *testing.T) {
	opts := optsWith(TermElec|TermPol|TermDisp|TermXR, func(o *Opts) { o.DispDamp = DispDampTT })
	e := newTestEfp(Te, opts, nil, names("H2O", "OTHER", "H2O"), threeFrags)
	defer e.Shutdown()
	e0 := totalEnergy(Te, e, threeFrags)
	rotmat := make([]float64, 36)
	if err := e.Coordinates(CoordRotmat, rotmat); err != nil {
		Te.Fatal(err)
	}
	Q := EulerToMatrix(-1.3, 0.8, 2.2)
	t := r3.Vec{X: 3, Y: -7, Z: 1.5}
	for i := 0; i < 3; i++ {
		c := rotmat[12*i : 12*(i+1)]
		pos := r3.Add(Q.MulVec(r3.Vec{X: c[0], Y: c[1], Z: c[2]}), t)
		var R r3.Mat
		R.Mul(Q, r3.NewMat(append([]float64(nil), c[3:]...)))
		copy(c, []float64{pos.X, pos.Y, pos.Z})
		r := rotData(&R)
		copy(c[3:], r[:])
	}
	if err := e.SetCoordinates(CoordRotmat, rotmat); err != nil {
		Te.Fatal(err)
	}
	if err := e.Compute(false); err != nil {
		Te.Fatal(err)
	}
	en, _ := e.Energy()
	if math.Abs(en.Total()-e0) > 1e-10 {
		Te.Errorf("energy changed under a rigid motion: %v %v", e0, en.Total())
	}
}

func TestPermutationInvariance(Te *testing.T) {
	e1 := newTestEfp(Te, testOpts(), nil, names("H2O", "OTHER", "H2O"), threeFrags)
	defer e1.Shutdown()
	perm := append(append(append([]float64(nil), threeFrags[12:]...), threeFrags[6:12]...), threeFrags[:6]...)
	e2 := newTestEfp(Te, testOpts(), nil, names("H2O", "OTHER", "H2O"), perm)
	defer e2.Shutdown()
	a := totalEnergy(Te, e1, threeFrags)
	b := totalEnergy(Te, e2, perm)
	if math.Abs(a-b) > 1e-10 {
		Te.Errorf("energy depends on the order of the fragments: %v %v", a, b)
	}
}

func TestNumericalGradients(Te *testing.T) {
	cases := []struct {
		name  string
		opts  *Opts
		coord []float64
	}{
		{"elec screen", optsWith(TermElec), threeFrags},
		{"elec undamped", optsWith(TermElec, func(o *Opts) { o.ElecDamp = ElecDampOff }), threeFrags},
		{"pol tt", optsWith(TermElec | TermPol), threeFrags},
		{"pol undamped", optsWith(TermElec|TermPol, func(o *Opts) { o.PolDamp = PolDampOff }), threeFrags},
		{"disp tt", optsWith(TermDisp, func(o *Opts) { o.DispDamp = DispDampTT }), closeFrags},
		{"disp overlap", optsWith(TermDisp), closeFrags},
		{"disp undamped", optsWith(TermDisp, func(o *Opts) { o.DispDamp = DispDampOff }), threeFrags},
		{"xr", optsWith(TermXR), closeFrags},
		{"xr and disp", optsWith(TermXR | TermDisp), closeFrags},
		{"all with cutoff", optsWith(TermElec|TermPol|TermDisp|TermXR, func(o *Opts) {
			o.EnableCutoff = true
			o.SwfCutoff = 8
		}), threeFrags},
	}
	for _, c := range cases {
		Te.Run(c.name, func(Te *testing.T) {
			e := newTestEfp(Te, c.opts, nil, names("H2O", "OTHER", "H2O"), nil)
			defer e.Shutdown()
			checkNumericalGradient(Te, e, c.coord)
		})
	}
	//non-symmetric polarizabilities: the conjugate dipoles differ from the induced ones
	for _, damp := range []PolDamp{PolDampTT, PolDampOff} {
		Te.Run("pol asymmetric "+damp.String(), func(Te *testing.T) {
			opts := optsWith(TermElec|TermPol, func(o *Opts) { o.PolDamp = damp })
			e, err := New(opts, nil, asymmetricReader(), testFiles, names("H2O", "OTHER", "H2O"))
			if err != nil {
				Te.Fatal(err)
			}
			defer e.Shutdown()
			checkNumericalGradient(Te, e, threeFrags)
			f := e.frags[0]
			if r3.Norm(r3.Sub(f.induced[0], f.inducedConj[0])) < 1e-6 {
				Te.Errorf("induced %v and conjugate %v dipoles should differ", f.induced[0], f.inducedConj[0])
			}
		})
	}
}

func TestSwitchingFunction(Te *testing.T) {
	const cutoff = 10.0
	for _, r := range []float64{6.5, 7.2, 8.5, 9.9} {
		_, ds := swf(r, cutoff)
		sp, _ := swf(r+1e-6, cutoff)
		sm, _ := swf(r-1e-6, cutoff)
		if math.Abs((sp-sm)/2e-6-ds) > 1e-6 {
			Te.Errorf("wrong derivative at %v: %v vs %v", r, ds, (sp-sm)/2e-6)
		}
	}
	if s, ds := swf(5, cutoff); s != 1 || ds != 0 {
		Te.Errorf("the switching function should be 1 inside, got %v %v", s, ds)
	}
	if s, ds := swf(cutoff, cutoff); s != 0 || ds != 0 {
		Te.Errorf("the switching function should be 0 at the cutoff, got %v %v", s, ds)
	}
	//pairs beyond the cutoff do not interact
	opts := optsWith(TermElec, func(o *Opts) { o.EnableCutoff, o.SwfCutoff = true, 5 })
	e := newTestEfp(Te, opts, nil, names("H2O", "OTHER"), []float64{0, 0, 0, 0, 0, 0, 6, 0, 0, 0, 0, 0})
	defer e.Shutdown()
	if err := e.Compute(true); err != nil {
		Te.Fatal(err)
	}
	en, _ := e.Energy()
	if en.Electrostatic != 0 || en.ChargePenetration != 0 {
		Te.Errorf("pair beyond the cutoff interacts: %+v", en)
	}
}

var pbcFrags = []float64{
	1, 1, 1, 0.3, 1.1, -0.4,
	15.5, 1.5, 0.4, 1.7, 0.6, 2.1,
	1.4, 16.0, 19.5, -0.9, 2.0, 0.3,
}

func pbcOpts() *Opts {
	return optsWith(TermElec|TermPol|TermDisp|TermXR, func(o *Opts) {
		o.EnablePBC = true
		o.EnableCutoff = true
		o.SwfCutoff = 8
	})
}

func TestPeriodic(Te *testing.T) {
	e := newTestEfp(Te, pbcOpts(), nil, names("H2O", "OTHER", "H2O"), pbcFrags)
	defer e.Shutdown()
	if err := e.Compute(false); Code(err) != BoxTooSmall {
		Te.Errorf("expected BoxTooSmall without a box, got %v", err)
	}
	if err := e.SetPeriodicBox(20, 20, 15); Code(err) != BoxTooSmall {
		Te.Errorf("expected BoxTooSmall for a small box, got %v", err)
	}
	if err := e.SetPeriodicBox(20, 20, 20); err != nil {
		Te.Fatal(err)
	}
	if err := e.Compute(false); err != nil {
		Te.Fatal(err)
	}
	en, _ := e.Energy()
	if en.Electrostatic == 0 {
		Te.Error("the periodic images should interact")
	}
	checkNumericalGradient(Te, e, pbcFrags)

	//the trace of the stress tensor is the derivative of the energy for a
	//uniform scaling of the positions and the box
	if err := e.SetCoordinates(CoordXYZABC, pbcFrags); err != nil {
		Te.Fatal(err)
	}
	if err := e.Compute(true); err != nil {
		Te.Fatal(err)
	}
	stress := make([]float64, 9)
	if err := e.StressTensor(stress); err != nil {
		Te.Fatal(err)
	}
	scaled := func(l float64) float64 {
		c := append([]float64(nil), pbcFrags...)
		for i := 0; i < len(c); i += 6 {
			c[i] *= 1 + l
			c[i+1] *= 1 + l
			c[i+2] *= 1 + l
		}
		if err := e.SetPeriodicBox(20*(1+l), 20*(1+l), 20*(1+l)); err != nil {
			Te.Fatal(err)
		}
		return totalEnergy(Te, e, c)
	}
	const h = 1e-5
	num := (scaled(h) - scaled(-h)) / (2 * h)
	trace := stress[0] + stress[4] + stress[8]
	if math.Abs(num-trace) > 1e-6 {
		Te.Errorf("stress trace %v, numerical %v", trace, num)
	}
}

func TestNoStressWithoutPBC(Te *testing.T) {
	e := newTestEfp(Te, testOpts(), nil, names("H2O", "OTHER", "H2O"), threeFrags)
	defer e.Shutdown()
	if err := e.Compute(true); err != nil {
		Te.Fatal(err)
	}
	stress := make([]float64, 9)
	if err := e.StressTensor(stress); err != nil {
		Te.Fatal(err)
	}
	if diff := cmp.Diff(make([]float64, 9), stress); diff != "" {
		Te.Errorf("stress accumulated without PBC:\n%s", diff)
	}
}

var qmAtoms = struct {
	znuc []float64
	xyz  []float64
}{
	znuc: []float64{8, 1},
	xyz:  []float64{3, 3, 3, -3, -2, 2.5},
}

func TestQMGradient(Te *testing.T) {
	opts := optsWith(TermElec | TermPol | TermAIElec | TermAIPol)
	e := newTestEfp(Te, opts, uniformField(r3.Vec{X: 0.01, Y: -0.02, Z: 0.005}), names("H2O", "OTHER", "H2O"), nil)
	defer e.Shutdown()
	if err := e.SetQMAtoms(qmAtoms.znuc, qmAtoms.xyz); err != nil {
		Te.Fatal(err)
	}
	checkNumericalGradient(Te, e, threeFrags)

	if err := e.SetCoordinates(CoordXYZABC, threeFrags); err != nil {
		Te.Fatal(err)
	}
	if err := e.Compute(true); err != nil {
		Te.Fatal(err)
	}
	en, _ := e.Energy()
	if en.AIElectrostatic == 0 {
		Te.Error("no ab initio electrostatic energy")
	}
	grad := make([]float64, 6)
	if err := e.QMGradient(grad); err != nil {
		Te.Fatal(err)
	}
	const delta = 1e-4
	xyz := append([]float64(nil), qmAtoms.xyz...)
	num := make([]float64, 6)
	for i := range xyz {
		var ens [2]float64
		for k, d := range []float64{delta, -delta} {
			xyz[i] = qmAtoms.xyz[i] + d
			if err := e.SetQMAtoms(qmAtoms.znuc, xyz); err != nil {
				Te.Fatal(err)
			}
			ens[k] = totalEnergy(Te, e, threeFrags)
		}
		xyz[i] = qmAtoms.xyz[i]
		num[i] = (ens[0] - ens[1]) / (2 * delta)
	}
	if !floats.EqualApprox(grad, num, 5e-6) {
		Te.Errorf("QM gradient %v, numerical %v", grad, num)
	}
}

func TestGradientNotRequested(Te *testing.T) {
	e := newTestEfp(Te, testOpts(), nil, names("H2O", "OTHER", "H2O"), threeFrags)
	defer e.Shutdown()
	if err := e.Compute(false); err != nil {
		Te.Fatal(err)
	}
	if err := e.Gradient(make([]float64, 18)); Code(err) != GradientNotRequested {
		Te.Errorf("expected GradientNotRequested, got %v", err)
	}
	if err := e.QMGradient(nil); Code(err) != GradientNotRequested {
		Te.Errorf("expected GradientNotRequested, got %v", err)
	}
	if err := e.StressTensor(make([]float64, 9)); Code(err) != GradientNotRequested {
		Te.Errorf("expected GradientNotRequested, got %v", err)
	}
	if err := e.Compute(true); err != nil {
		Te.Fatal(err)
	}
	if err := e.Gradient(make([]float64, 12)); Code(err) != InvalidArraySize {
		Te.Errorf("expected InvalidArraySize, got %v", err)
	}
	grad := make([]float64, 18)
	if err := e.Gradient(grad); err != nil {
		Te.Fatal(err)
	}
	//no external field, so the net force and torque about the origin vanish
	var f, t r3.Vec
	for i := 0; i < 3; i++ {
		fi := r3.Vec{X: grad[6*i], Y: grad[6*i+1], Z: grad[6*i+2]}
		pos := r3.Vec{X: threeFrags[6*i], Y: threeFrags[6*i+1], Z: threeFrags[6*i+2]}
		f = r3.Add(f, fi)
		t = r3.Add(t, r3.Add(r3.Vec{X: grad[6*i+3], Y: grad[6*i+4], Z: grad[6*i+5]}, r3.Cross(pos, fi)))
	}
	if r3.Norm(f) > 1e-8 || r3.Norm(t) > 1e-8 {
		Te.Errorf("net force %v and torque %v should vanish", f, t)
	}
}

func TestCallbacks(Te *testing.T) {
	opts := optsWith(TermElec | TermPol | TermAIElec | TermAIPol)
	failing := &Callbacks{ElectronDensityField: func([]float64) ([]float64, error) {
		return nil, errors.New("no density")
	}}
	e := newTestEfp(Te, opts, failing, names("H2O", "OTHER"), threeFrags[:12])
	defer e.Shutdown()
	if err := e.Compute(false); Code(err) != CallbackFailed {
		Te.Errorf("expected CallbackFailed, got %v", err)
	}
	short := &Callbacks{ElectronDensityField: func([]float64) ([]float64, error) {
		return []float64{0, 0, 0}, nil
	}}
	e2 := newTestEfp(Te, opts, short, names("H2O", "OTHER"), threeFrags[:12])
	defer e2.Shutdown()
	if err := e2.Compute(false); Code(err) != CallbackFailed {
		Te.Errorf("expected CallbackFailed for a short field, got %v", err)
	}
	//the callback is given the polarizable points of every fragment
	var got []float64
	spy := &Callbacks{ElectronDensityField: func(xyz []float64) ([]float64, error) {
		got = append([]float64(nil), xyz...)
		return make([]float64, len(xyz)), nil
	}}
	e3 := newTestEfp(Te, opts, spy, names("H2O", "OTHER"), threeFrags[:12])
	defer e3.Shutdown()
	if _, err := e3.ScfUpdate(); err != nil {
		Te.Fatal(err)
	}
	want := make([]float64, 12)
	e3.frags[0].PolarizableCoords.Flat(want)
	e3.frags[1].PolarizableCoords.Flat(want[6:])
	if diff := cmp.Diff(want, got); diff != "" {
		Te.Errorf("wrong points given to the callback (-want +got):\n%s", diff)
	}
}

func TestPolNotConverged(Te *testing.T) {
	huge := waterLike("HUGE", 1)
	for i := range huge.Polarizables {
		for k := range huge.Polarizables[i].Tensor {
			huge.Polarizables[i].Tensor[k] *= 1000
		}
	}
	e, err := New(optsWith(TermElec|TermPol), nil, StaticReader{"a": {huge}}, "a", "HUGE\nHUGE")
	if err != nil {
		Te.Fatal(err)
	}
	defer e.Shutdown()
	if err := e.SetCoordinates(CoordXYZABC, threeFrags[:12]); err != nil {
		Te.Fatal(err)
	}
	if err := e.Compute(false); Code(err) != PolNotConverged {
		Te.Errorf("expected PolNotConverged, got %v", err)
	}
}

// recordingTerm logs the terms it runs, and can be made to fail.
type recordingTerm struct {
	term
	log  *[]Terms
	fail bool
}

func (r recordingTerm) compute(e *Efp) error {
	*r.log = append(*r.log, r.id())
	if r.fail {
		return NewError(CallbackFailed, "recordingTerm", "failed on purpose")
	}
	return r.term.compute(e)
}

func TestTermOrder(Te *testing.T) {
	e := newTestEfp(Te, testOpts(), nil, names("H2O", "OTHER"), threeFrags[:12])
	defer e.Shutdown()
	var log []Terms
	for i, t := range e.terms {
		e.terms[i] = recordingTerm{term: t, log: &log}
	}
	if err := e.Compute(false); err != nil {
		Te.Fatal(err)
	}
	want := []Terms{TermXR, TermElec, TermPol, TermDisp, TermAIElec}
	if diff := cmp.Diff(want, log); diff != "" {
		Te.Errorf("wrong term order (-want +got):\n%s", diff)
	}
	log = nil
	for i, t := range e.terms {
		r := t.(recordingTerm)
		r.fail = r.id() == TermPol
		e.terms[i] = r
	}
	err := e.Compute(false)
	if Code(err) != CallbackFailed {
		Te.Errorf("the error of the failing term should be returned, got %v", err)
	}
	if diff := cmp.Diff(want[:3], log); diff != "" {
		Te.Errorf("the terms after a failure should not run (-want +got):\n%s", diff)
	}
}

func TestDispersionQuadrature(Te *testing.T) {
	freqs := DispersionFrequencies()
	if len(freqs) != DispFreqs {
		Te.Fatalf("%d frequencies", len(freqs))
	}
	for _, w := range freqs {
		if w <= 0 || math.IsNaN(w) {
			Te.Errorf("frequencies should be positive: %v", freqs)
		}
	}
	//C6 of two London oscillators, alpha(iw) = a/(1+(w/w0)^2), is 3/4 a^2 w0
	a, w0 := 2.0, 0.5
	var p DynPolarizable
	for k, w := range freqs {
		v := a / (1 + (w/w0)*(w/w0))
		p.Tensors[k] = [9]float64{v, 0, 0, 0, v, 0, 0, 0, v}
	}
	want := 0.75 * a * a * w0
	if got := c6(&p, &p); math.Abs(got-want)/want > 1e-3 {
		Te.Errorf("C6 %v, want %v", got, want)
	}
	freqs[0] = -1
	if DispersionFrequencies()[0] == -1 {
		Te.Error("DispersionFrequencies returns internal state")
	}
}
