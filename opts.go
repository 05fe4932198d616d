/*
 * opts.go, part of goefp.
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
	"fmt"
	"strings"
)

// Terms is a set of energy terms, combined with |.
type Terms uint

const (
	TermElec   Terms = 1 << iota //electrostatics
	TermPol                      //polarization
	TermDisp                     //dispersion
	TermXR                       //exchange repulsion
	TermChTr                     //charge transfer
	TermAIElec                   //ab initio/EFP electrostatics
	TermAIPol                    //ab initio/EFP polarization
	TermAIDisp                   //ab initio/EFP dispersion
	TermAIXR                     //ab initio/EFP exchange repulsion
	TermAIChTr                   //ab initio/EFP charge transfer
)

const allTerms = TermElec | TermPol | TermDisp | TermXR | TermChTr |
	TermAIElec | TermAIPol | TermAIDisp | TermAIXR | TermAIChTr

var termNames = [...]struct {
	term Terms
	name string
}{
	{TermElec, "elec"},
	{TermPol, "pol"},
	{TermDisp, "disp"},
	{TermXR, "xr"},
	{TermChTr, "chtr"},
	{TermAIElec, "ai_elec"},
	{TermAIPol, "ai_pol"},
	{TermAIDisp, "ai_disp"},
	{TermAIXR, "ai_xr"},
	{TermAIChTr, "ai_chtr"},
}

// Has returns true if every term in u is in t.
func (t Terms) Has(u Terms) bool {
	return t&u == u
}

// String returns the space separated names of the terms in t.
func (t Terms) String() string {
	names := make([]string, 0, len(termNames))
	for _, v := range termNames {
		if t.Has(v.term) {
			names = append(names, v.name)
		}
	}
	return strings.Join(names, " ")
}

func (t Terms) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText reads a list of term names separated by spaces or commas,
// i.e. "elec pol disp xr".
func (t *Terms) UnmarshalText(text []byte) error {
	fields := strings.FieldsFunc(string(text), func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	var ret Terms
	for _, f := range fields {
		found := false
		for _, v := range termNames {
			if strings.EqualFold(f, v.name) {
				ret |= v.term
				found = true
				break
			}
		}
		if !found {
			return NewError(IncorrectEnumValue, "Terms.UnmarshalText", "unknown energy term %q", f)
		}
	}
	*t = ret
	return nil
}

// ElecDamp selects the electrostatic damping.
type ElecDamp int

const (
	ElecDampScreen ElecDamp = iota
	ElecDampOverlap
	ElecDampOff
)

// DispDamp selects the dispersion damping.
type DispDamp int

const (
	DispDampOverlap DispDamp = iota
	DispDampTT
	DispDampOff
)

// PolDamp selects the polarization damping.
type PolDamp int

const (
	PolDampTT PolDamp = iota
	PolDampOff
)

var (
	elecDampNames = []string{"screen", "overlap", "off"}
	dispDampNames = []string{"overlap", "tt", "off"}
	polDampNames  = []string{"tt", "off"}
)

func enumString(v int, names []string) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("invalid(%d)", v)
	}
	return names[v]
}

func enumParse(text []byte, names []string, caller string) (int, error) {
	for i, n := range names {
		if strings.EqualFold(strings.TrimSpace(string(text)), n) {
			return i, nil
		}
	}
	return 0, NewError(IncorrectEnumValue, caller, "%q is not one of %s", text, strings.Join(names, ", "))
}

func (d ElecDamp) String() string { return enumString(int(d), elecDampNames) }
func (d DispDamp) String() string { return enumString(int(d), dispDampNames) }
func (d PolDamp) String() string  { return enumString(int(d), polDampNames) }

func (d ElecDamp) valid() bool { return d >= ElecDampScreen && d <= ElecDampOff }
func (d DispDamp) valid() bool { return d >= DispDampOverlap && d <= DispDampOff }
func (d PolDamp) valid() bool  { return d >= PolDampTT && d <= PolDampOff }

func (d ElecDamp) MarshalText() ([]byte, error) { return []byte(d.String()), nil }
func (d DispDamp) MarshalText() ([]byte, error) { return []byte(d.String()), nil }
func (d PolDamp) MarshalText() ([]byte, error)  { return []byte(d.String()), nil }

func (d *ElecDamp) UnmarshalText(text []byte) error {
	v, err := enumParse(text, elecDampNames, "ElecDamp.UnmarshalText")
	*d = ElecDamp(v)
	return err
}

func (d *DispDamp) UnmarshalText(text []byte) error {
	v, err := enumParse(text, dispDampNames, "DispDamp.UnmarshalText")
	*d = DispDamp(v)
	return err
}

func (d *PolDamp) UnmarshalText(text []byte) error {
	v, err := enumParse(text, polDampNames, "PolDamp.UnmarshalText")
	*d = PolDamp(v)
	return err
}

// minSwfCutoff is the smallest switching function cutoff accepted, in bohr.
const minSwfCutoff = 1.0

// Opts are the simulation options. They can't be changed once an Efp
// context is created.
type Opts struct {
	Terms        Terms    `yaml:"terms"`
	ElecDamp     ElecDamp `yaml:"elec_damp"`
	DispDamp     DispDamp `yaml:"disp_damp"`
	PolDamp      PolDamp  `yaml:"pol_damp"`
	EnablePBC    bool     `yaml:"enable_pbc"`
	EnableCutoff bool     `yaml:"enable_cutoff"`
	SwfCutoff    float64  `yaml:"swf_cutoff"` //bohr
}

// DefaultOpts returns options with electrostatics, polarization, dispersion,
// exchange repulsion and the ab initio electrostatics and polarization terms
// enabled, screen electrostatic damping, overlap dispersion damping and
// Tang-Toennies polarization damping.
func DefaultOpts() *Opts {
	return &Opts{
		Terms:    TermElec | TermPol | TermDisp | TermXR | TermAIElec | TermAIPol,
		ElecDamp: ElecDampScreen,
		DispDamp: DispDampOverlap,
		PolDamp:  PolDampTT,
	}
}

// check validates the options. The first violated rule is reported.
func (o *Opts) check() error {
	const caller = "Opts.check"
	prereqs := [...]struct {
		term, needs Terms
	}{
		{TermAIElec, TermElec},
		{TermAIPol, TermPol},
		{TermPol, TermElec},
		{TermAIDisp, TermDisp},
		{TermAIXR, TermXR},
		{TermAIChTr, TermChTr},
	}
	for _, p := range prereqs {
		if o.Terms.Has(p.term) && !o.Terms.Has(p.needs) {
			return NewError(InconsistentTerms, caller, "%s requires %s", p.term, p.needs)
		}
	}
	if o.Terms&^allTerms != 0 {
		return NewError(IncorrectEnumValue, caller, "unknown energy terms %#x", uint(o.Terms&^allTerms))
	}
	if !o.ElecDamp.valid() {
		return NewError(IncorrectEnumValue, caller, "electrostatic damping %d", int(o.ElecDamp))
	}
	if !o.DispDamp.valid() {
		return NewError(IncorrectEnumValue, caller, "dispersion damping %d", int(o.DispDamp))
	}
	if !o.PolDamp.valid() {
		return NewError(IncorrectEnumValue, caller, "polarization damping %d", int(o.PolDamp))
	}
	if o.EnablePBC {
		ai := TermAIElec | TermAIPol | TermAIDisp | TermAIXR | TermAIChTr
		if o.Terms&ai != 0 {
			return NewError(PBCNotSupported, caller, "%s", o.Terms&ai)
		}
		if !o.EnableCutoff {
			return NewError(PBCRequiresCutoff, caller, "")
		}
	}
	if o.EnableCutoff && o.SwfCutoff < minSwfCutoff {
		return NewError(SwfCutoffTooSmall, caller, "%g < %g", o.SwfCutoff, minSwfCutoff)
	}
	return nil
}

// checkFrag verifies that the fragment carries the parameters the enabled
// terms need.
func (o *Opts) checkFrag(f *Fragment, index int) error {
	const caller = "Opts.checkFrag"
	missing := func(term, what string) error {
		return NewError(ParametersMissing, caller, "fragment %d (%s): %s needs %s", index, f.Name, term, what)
	}
	if o.Terms.Has(TermElec) {
		if len(f.Multipoles) == 0 {
			return missing("electrostatics", "multipole points")
		}
		if o.ElecDamp == ElecDampScreen && len(f.ScreenParams) == 0 {
			return missing("electrostatics", "screening parameters")
		}
	}
	if o.Terms.Has(TermPol) && len(f.Polarizables) == 0 {
		return missing("polarization", "polarizable points")
	}
	if o.Terms.Has(TermDisp) {
		if len(f.DynPolarizables) == 0 {
			return missing("dispersion", "dynamic polarizable points")
		}
		if o.DispDamp == DispDampOverlap && f.LMOCentroids.NVecs() != len(f.DynPolarizables) {
			return missing("dispersion", "one LMO centroid per dynamic polarizable point")
		}
	}
	if o.Terms.Has(TermXR) {
		if len(f.Shells) == 0 {
			return missing("exchange repulsion", "basis shells")
		}
		if len(f.Fock) == 0 {
			return missing("exchange repulsion", "the Fock matrix")
		}
		if len(f.WF) == 0 {
			return missing("exchange repulsion", "the wavefunction")
		}
		if f.LMOCentroids.NVecs() == 0 {
			return missing("exchange repulsion", "LMO centroids")
		}
	}
	return nil
}
