/*
 * run.go, part of goefp.
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

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	efp "github.com/rmera/goefp"
	"github.com/rmera/goefp/cfg"
	"github.com/rmera/goefp/efpjson"
)

// bohrToAngstrom converts lengths from bohr to angstrom.
const bohrToAngstrom = 0.52917721092

// run performs the computation given in the configuration file. A non-empty
// runType overrides the one in the file.
func run(cmd *cobra.Command, runType string) error {
	c, err := cfg.Load(configPath)
	if err != nil {
		return err
	}
	if runType != "" {
		c.RunType = runType
	}
	if !verbose {
		if err := logLevel.UnmarshalText([]byte(c.LogLevel)); err != nil {
			return fmt.Errorf("log level %q: %w", c.LogLevel, err)
		}
	}
	out := cmd.OutOrStdout()
	printBanner(out)
	logger.Debug("configuration", zap.String("path", configPath), zap.String("run_type", c.RunType),
		zap.Int("fragments", len(c.Fragments)))

	e, err := efp.New(&c.Opts, nil, efpjson.NewReader(), c.PotentialFiles(), c.Names())
	defer e.Shutdown()
	if err != nil {
		return err
	}
	e.SetLogger(logger.Named("efp"))
	if err := e.SetCoordinates(c.CoordType, c.Coordinates()); err != nil {
		return err
	}
	if c.Opts.EnablePBC {
		if err := e.SetPeriodicBox(c.PeriodicBox[0], c.PeriodicBox[1], c.PeriodicBox[2]); err != nil {
			return err
		}
	}
	if err := printGeometry(out, e); err != nil {
		return err
	}
	grad := c.RunType == cfg.RunGradient
	start := time.Now()
	if err := e.Compute(grad); err != nil {
		return err
	}
	logger.Info("computation finished", zap.String("run_type", c.RunType), zap.Duration("elapsed", time.Since(start)))
	en, err := e.Energy()
	if err != nil {
		return err
	}
	printEnergy(out, en)
	if grad {
		return printGradient(out, e, c.Opts.EnablePBC)
	}
	return nil
}

func printBanner(out io.Writer) {
	fmt.Fprintf(out, "EFPMD ver. %s\n\n", version)
}

func printGeometry(out io.Writer, e *efp.Efp) error {
	n, err := e.FragCount()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "    GEOMETRY (ANGSTROMS)\n\n")
	for i := 0; i < n; i++ {
		name, err := e.FragName(i)
		if err != nil {
			return err
		}
		natoms, err := e.FragAtomCount(i)
		if err != nil {
			return err
		}
		atoms := make([]efp.Atom, natoms)
		xyz := make([]float64, 3*natoms)
		if err := e.FragAtoms(i, atoms, xyz); err != nil {
			return err
		}
		fmt.Fprintf(out, "fragment %d %s\n", i, name)
		for k, a := range atoms {
			fmt.Fprintf(out, "%-16s %12.6f %12.6f %12.6f\n", a.Label,
				xyz[3*k]*bohrToAngstrom, xyz[3*k+1]*bohrToAngstrom, xyz[3*k+2]*bohrToAngstrom)
		}
	}
	fmt.Fprintln(out)
	return nil
}

func printEnergy(out io.Writer, en efp.Energy) {
	fmt.Fprintf(out, "    ENERGY COMPONENTS (ATOMIC UNITS)\n\n")
	for _, v := range []struct {
		name string
		e    float64
	}{
		{"ELECTROSTATIC ENERGY", en.Electrostatic},
		{"CHARGE PENETRATION ENERGY", en.ChargePenetration},
		{"POLARIZATION ENERGY", en.Polarization},
		{"DISPERSION ENERGY", en.Dispersion},
		{"EXCHANGE REPULSION ENERGY", en.ExchangeRepulsion},
		{"CHARGE TRANSFER ENERGY", en.ChargeTransfer},
	} {
		fmt.Fprintf(out, "%30s %16.10f\n", v.name, v.e)
	}
	fmt.Fprintf(out, "\n%30s %16.10f\n\n", "TOTAL ENERGY", en.Total())
}

func printGradient(out io.Writer, e *efp.Efp, stress bool) error {
	n, err := e.FragCount()
	if err != nil {
		return err
	}
	grad := make([]float64, 6*n)
	if err := e.Gradient(grad); err != nil {
		return err
	}
	fmt.Fprintf(out, "    GRADIENT (FORCE AND TORQUE, ATOMIC UNITS)\n\n")
	for i := 0; i < n; i++ {
		g := grad[6*i : 6*i+6]
		fmt.Fprintf(out, "%5d %14.8f %14.8f %14.8f %14.8f %14.8f %14.8f\n", i, g[0], g[1], g[2], g[3], g[4], g[5])
	}
	fmt.Fprintln(out)
	if !stress {
		return nil
	}
	s := make([]float64, 9)
	if err := e.StressTensor(s); err != nil {
		return err
	}
	fmt.Fprintf(out, "    STRESS TENSOR (ATOMIC UNITS)\n\n")
	for i := 0; i < 3; i++ {
		fmt.Fprintf(out, "%16.10f %16.10f %16.10f\n", s[3*i], s[3*i+1], s[3*i+2])
	}
	fmt.Fprintln(out)
	return nil
}
