/*
 * cfg.go, part of goefp.
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

// Package cfg holds the configuration of the efpmd driver: the simulation
// options, the fragment library locations and the system to compute.
// It is read from YAML, and some values can be overridden from the environment.
package cfg

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	efp "github.com/rmera/goefp"
	"github.com/rmera/goefp/efpjson"
)

const (
	RunSinglePoint = "sp"
	RunGradient    = "grad"

	DefaultFraglib  = "fraglib"
	DefaultUserlib  = "."
	DefaultLogLevel = "info"
)

// Fragment is one fragment of the system: its type and its pose, in the
// representation given by Config.CoordType.
type Fragment struct {
	Name  string    `yaml:"name"`
	Coord []float64 `yaml:"coord,flow"`
}

// Config is the configuration of a run. The EFP options are given at the top level.
type Config struct {
	RunType     string        `yaml:"run_type"`
	Opts        efp.Opts      `yaml:",inline"`
	CoordType   efp.CoordType `yaml:"coord"`
	PeriodicBox [3]float64    `yaml:"periodic_box,flow"`
	FraglibPath string        `yaml:"fraglib_path" env:"EFP_FRAGLIB_PATH"`
	UserlibPath string        `yaml:"userlib_path" env:"EFP_USERLIB_PATH"`
	LogLevel    string        `yaml:"log_level" env:"EFP_LOG_LEVEL"`
	//Additional potential files, read besides the ones for the fragment names.
	Potentials []string   `yaml:"potentials,omitempty"`
	Fragments  []Fragment `yaml:"fragments"`
}

// DefaultConfig returns a single point configuration with the
// electrostatics, polarization, dispersion and exchange repulsion terms.
func DefaultConfig() *Config {
	opts := efp.DefaultOpts()
	opts.Terms = efp.TermElec | efp.TermPol | efp.TermDisp | efp.TermXR
	return &Config{
		RunType:     RunSinglePoint,
		Opts:        *opts,
		CoordType:   efp.CoordXYZABC,
		FraglibPath: DefaultFraglib,
		UserlibPath: DefaultUserlib,
		LogLevel:    DefaultLogLevel,
	}
}

// Load reads the configuration in the YAML file path, on top of the defaults,
// applies the environment overrides and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cfg.Load: %s: %w", path, err)
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("cfg.Load: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cfg.Load: %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the parts of the configuration which are not checked by
// efp.New.
func (c *Config) Validate() error {
	const caller = "Config.Validate"
	if c.RunType != RunSinglePoint && c.RunType != RunGradient {
		return efp.NewError(efp.IncorrectEnumValue, caller, "run type %q, expected %s or %s", c.RunType, RunSinglePoint, RunGradient)
	}
	stride := c.CoordType.Stride()
	if stride == 0 {
		return efp.NewError(efp.IncorrectEnumValue, caller, "coordinate type %d", int(c.CoordType))
	}
	for i, f := range c.Fragments {
		if f.Name == "" {
			return efp.NewError(efp.InvalidArgument, caller, "fragment %d has no name", i)
		}
		if len(f.Coord) != stride {
			return efp.NewError(efp.InvalidArraySize, caller, "fragment %d (%s) has %d coordinates, %s needs %d", i, f.Name, len(f.Coord), c.CoordType, stride)
		}
	}
	if c.Opts.EnablePBC {
		for _, l := range c.PeriodicBox {
			if l <= 0 {
				return efp.NewError(efp.BoxTooSmall, caller, "periodic box %v", c.PeriodicBox)
			}
		}
	}
	return nil
}

// Names returns the newline-delimited fragment names, as efp.New takes them.
func (c *Config) Names() string {
	ret := ""
	for _, f := range c.Fragments {
		ret += f.Name + "\n"
	}
	return ret
}

// Coordinates returns the poses of all the fragments in a single slice.
func (c *Config) Coordinates() []float64 {
	ret := make([]float64, 0, len(c.Fragments)*c.CoordType.Stride())
	for _, f := range c.Fragments {
		ret = append(ret, f.Coord...)
	}
	return ret
}

// PotentialFiles returns the newline-delimited list of potential files: one per
// fragment type, from the library paths, followed by the extra Potentials.
func (c *Config) PotentialFiles() string {
	seen := make(map[string]bool)
	var names []string
	for _, f := range c.Fragments {
		if !seen[f.Name] {
			seen[f.Name] = true
			names = append(names, f.Name)
		}
	}
	ret := efpjson.FileList(names, c.FraglibPath, c.UserlibPath)
	for _, p := range c.Potentials {
		ret += "\n" + p
	}
	return ret
}
