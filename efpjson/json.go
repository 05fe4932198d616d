/*
 * json.go, part of goefp.
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

package efpjson

import (
	"encoding/json"
	"fmt"
	"io"

	efp "github.com/rmera/goefp"
	v3 "github.com/rmera/goefp/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

//A ready-to-serialize container for a set of potentials.
type Potential struct {
	Fragments []Fragment `json:"fragments"`
}

//A ready-to-serialize container for the parameters of a fragment.
//Coordinates are in bohr.
type Fragment struct {
	Name            string           `json:"name"`
	Atoms           []Atom           `json:"atoms"`
	Multipoles      []Multipole      `json:"multipoles,omitempty"`
	Screen          *Screen          `json:"screen,omitempty"`
	AIScreen        *Screen          `json:"ai_screen,omitempty"`
	Polarizables    []Polarizable    `json:"polarizable_pts,omitempty"`
	DynPolarizables []DynPolarizable `json:"dynamic_polarizable_pts,omitempty"`
	LMOCentroids    [][3]float64     `json:"lmo_centroids,omitempty"`
	Basis           []Shell          `json:"basis,omitempty"`
	Fock            []float64        `json:"fock,omitempty"`
	WF              []float64        `json:"wavefunction,omitempty"`
}

//If Mass or Znuc are zero, they are assigned from the element in the label.
type Atom struct {
	Label string     `json:"label"`
	XYZ   [3]float64 `json:"xyz"`
	Znuc  float64    `json:"znuc,omitempty"`
	Mass  float64    `json:"mass,omitempty"`
}

type Multipole struct {
	XYZ        [3]float64  `json:"xyz"`
	Monopole   float64     `json:"monopole"`
	Dipole     [3]float64  `json:"dipole"`
	Quadrupole [6]float64  `json:"quadrupole"`
	Octupole   [10]float64 `json:"octupole"`
}

//Screening parameters, one per multipole point. Group is SCREEN2 for
//the electrostatic screening and SCREEN for the ab initio one.
type Screen struct {
	Group  string    `json:"group"`
	Params []float64 `json:"params"`
}

type Polarizable struct {
	XYZ    [3]float64 `json:"xyz"`
	Tensor [9]float64 `json:"tensor"`
}

//One tensor per frequency, see efp.DispersionFrequencies.
type DynPolarizable struct {
	XYZ     [3]float64   `json:"xyz"`
	Tensors [][9]float64 `json:"tensors"`
}

type Shell struct {
	XYZ  [3]float64 `json:"xyz"`
	Type string     `json:"type"`
	Coef []float64  `json:"coef"`
}

func vec(v [3]float64) r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

func coords(n int, get func(i int) [3]float64) *v3.Matrix {
	ret := v3.Zeros(n)
	for i := 0; i < n; i++ {
		ret.SetVec(i, vec(get(i)))
	}
	return ret
}

//Template builds an EFP fragment template from the serialized parameters.
func (J *Fragment) Template() (*efp.Fragment, error) {
	const funcname = "efpjson.Fragment.Template"
	f := &efp.Fragment{Name: J.Name}
	f.Atoms = make([]efp.Atom, len(J.Atoms))
	for i, a := range J.Atoms {
		sym := symbolFromLabel(a.Label)
		at := efp.Atom{Label: a.Label, Znuc: a.Znuc, Mass: a.Mass}
		if at.Mass == 0 {
			at.Mass = symbolMass[sym]
		}
		if at.Znuc == 0 {
			at.Znuc = symbolZnuc[sym]
		}
		f.Atoms[i] = at
	}
	f.AtomCoords = coords(len(J.Atoms), func(i int) [3]float64 { return J.Atoms[i].XYZ })

	if len(J.Multipoles) > 0 {
		f.Multipoles = make([]efp.Multipole, len(J.Multipoles))
	}
	for i, m := range J.Multipoles {
		f.Multipoles[i] = efp.Multipole{Monopole: m.Monopole, Dipole: vec(m.Dipole), Quadrupole: m.Quadrupole, Octupole: m.Octupole}
	}
	f.MultipoleCoords = coords(len(J.Multipoles), func(i int) [3]float64 { return J.Multipoles[i].XYZ })

	if J.Screen != nil {
		if J.Screen.Group != "SCREEN2" {
			return nil, efp.NewError(efp.UnsupportedScreen, funcname, "%s: %q in screen", J.Name, J.Screen.Group)
		}
		f.ScreenParams = append([]float64(nil), J.Screen.Params...)
	}
	if J.AIScreen != nil {
		if J.AIScreen.Group != "SCREEN" {
			return nil, efp.NewError(efp.UnsupportedScreen, funcname, "%s: %q in ai_screen", J.Name, J.AIScreen.Group)
		}
		f.AIScreenParams = append([]float64(nil), J.AIScreen.Params...)
	}

	if len(J.Polarizables) > 0 {
		f.Polarizables = make([]efp.Polarizable, len(J.Polarizables))
	}
	for i, p := range J.Polarizables {
		f.Polarizables[i].Tensor = p.Tensor
	}
	f.PolarizableCoords = coords(len(J.Polarizables), func(i int) [3]float64 { return J.Polarizables[i].XYZ })

	if len(J.DynPolarizables) > 0 {
		f.DynPolarizables = make([]efp.DynPolarizable, len(J.DynPolarizables))
	}
	for i, p := range J.DynPolarizables {
		if len(p.Tensors) != efp.DispFreqs {
			return nil, efp.NewError(efp.SyntaxError, funcname, "%s: dynamic polarizable point %d has %d tensors, %d expected", J.Name, i, len(p.Tensors), efp.DispFreqs)
		}
		copy(f.DynPolarizables[i].Tensors[:], p.Tensors)
	}
	f.DynPolarizableCoords = coords(len(J.DynPolarizables), func(i int) [3]float64 { return J.DynPolarizables[i].XYZ })

	f.LMOCentroids = coords(len(J.LMOCentroids), func(i int) [3]float64 { return J.LMOCentroids[i] })
	if len(J.Basis) > 0 {
		f.Shells = make([]efp.Shell, len(J.Basis))
	}
	for i, s := range J.Basis {
		if len(s.Type) != 1 {
			return nil, efp.NewError(efp.SyntaxError, funcname, "%s: shell %d has type %q", J.Name, i, s.Type)
		}
		f.Shells[i] = efp.Shell{Type: s.Type[0], Coef: append([]float64(nil), s.Coef...)}
	}
	f.ShellCoords = coords(len(J.Basis), func(i int) [3]float64 { return J.Basis[i].XYZ })
	f.Fock = append([]float64(nil), J.Fock...)
	f.WF = append([]float64(nil), J.WF...)
	return f, nil
}

func flat3(m *v3.Matrix, i int) [3]float64 {
	v := m.Vec(i)
	return [3]float64{v.X, v.Y, v.Z}
}

//FromTemplate puts in a ready-to-serialize container the parameters of an EFP fragment.
func FromTemplate(f *efp.Fragment) *Fragment {
	J := &Fragment{Name: f.Name, Fock: f.Fock, WF: f.WF}
	for i, a := range f.Atoms {
		J.Atoms = append(J.Atoms, Atom{Label: a.Label, XYZ: flat3(f.AtomCoords, i), Znuc: a.Znuc, Mass: a.Mass})
	}
	for i, m := range f.Multipoles {
		J.Multipoles = append(J.Multipoles, Multipole{
			XYZ:        flat3(f.MultipoleCoords, i),
			Monopole:   m.Monopole,
			Dipole:     [3]float64{m.Dipole.X, m.Dipole.Y, m.Dipole.Z},
			Quadrupole: m.Quadrupole,
			Octupole:   m.Octupole,
		})
	}
	if len(f.ScreenParams) > 0 {
		J.Screen = &Screen{Group: "SCREEN2", Params: f.ScreenParams}
	}
	if len(f.AIScreenParams) > 0 {
		J.AIScreen = &Screen{Group: "SCREEN", Params: f.AIScreenParams}
	}
	for i, p := range f.Polarizables {
		J.Polarizables = append(J.Polarizables, Polarizable{XYZ: flat3(f.PolarizableCoords, i), Tensor: p.Tensor})
	}
	for i, p := range f.DynPolarizables {
		J.DynPolarizables = append(J.DynPolarizables, DynPolarizable{XYZ: flat3(f.DynPolarizableCoords, i), Tensors: append([][9]float64(nil), p.Tensors[:]...)})
	}
	for i := 0; i < f.LMOCentroids.NVecs(); i++ {
		J.LMOCentroids = append(J.LMOCentroids, flat3(f.LMOCentroids, i))
	}
	for i, s := range f.Shells {
		J.Basis = append(J.Basis, Shell{XYZ: flat3(f.ShellCoords, i), Type: string(s.Type), Coef: s.Coef})
	}
	return J
}

//Decode reads a JSON potential from in and returns the fragment templates in it.
func Decode(in io.Reader) ([]*efp.Fragment, error) {
	const funcname = "efpjson.Decode"
	pot := new(Potential)
	dec := json.NewDecoder(in)
	dec.DisallowUnknownFields()
	if err := dec.Decode(pot); err != nil {
		return nil, efp.WrapError(efp.SyntaxError, funcname, err)
	}
	ret := make([]*efp.Fragment, 0, len(pot.Fragments))
	for i := range pot.Fragments {
		f, err := pot.Fragments[i].Template()
		if err != nil {
			return nil, err
		}
		ret = append(ret, f)
	}
	return ret, nil
}

//Encode writes the templates in frags as a JSON potential to out.
func Encode(out io.Writer, frags []*efp.Fragment) error {
	pot := Potential{Fragments: make([]Fragment, 0, len(frags))}
	for _, f := range frags {
		pot.Fragments = append(pot.Fragments, *FromTemplate(f))
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", " ")
	if err := enc.Encode(pot); err != nil {
		return fmt.Errorf("efpjson.Encode: %w", err)
	}
	return nil
}
