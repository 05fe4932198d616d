/*
 * main.go, part of goefp.
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

// Command efpmd computes effective fragment potential energies and gradients
// for a system of fragments described in a YAML configuration file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rmera/goefp/cfg"
)

const version = "0.1.0"

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger, its level can be changed after the configuration is read.
	logLevel = zap.NewAtomicLevel()
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "efpmd",
	Short: "EFP energies and gradients",
	Long: `efpmd computes the interaction energy of a system of rigid fragments
described by effective fragment potentials and, for gradient runs, its
derivatives with respect to the fragment positions and orientations.

The system and the options are read from a YAML file (see --config).
Without a subcommand, the run type of the configuration file is used.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			logLevel.SetLevel(zapcore.DebugLevel)
		}
		config.Level = logLevel
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, "")
	},
}

var spCmd = &cobra.Command{
	Use:   "sp",
	Short: "Compute the energy of the system",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, cfg.RunSinglePoint)
	},
}

var gradCmd = &cobra.Command{
	Use:   "grad",
	Short: "Compute the energy and gradient of the system",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, cfg.RunGradient)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "efpmd.yaml", "Configuration file")
	rootCmd.AddCommand(spCmd)
	rootCmd.AddCommand(gradCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
