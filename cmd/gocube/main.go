/*
 * main.go, part of gocube.
 *
 * Copyright 2024 Raul Mera <raul_dot_mera_changeforat_usach_dot_cl>
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

//gocube computes the charge transfer distance (DCT) and transferred charge
//(qCT) between two electron densities in Gaussian cube format.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cube "github.com/rmera/gocube"
	"github.com/rmera/gocube/dct"
)

var (
	outFile string
	logFile string
	cpus    int
	strict  bool
)

var root = &cobra.Command{
	Use:   "gocube ground.cube excited.cube",
	Short: "Charge-transfer descriptors (DCT/qCT) from a pair of density cubes",
	Long: `gocube reads a ground-state and an excited-state electron density in
Gaussian cube format (optionally gzip or zstd compressed), and computes the
charge transferred upon excitation (qCT) and the distance between the
barycenters of density gain and depletion (DCT), after Le Bahers et al.,
J. Chem. Theory Comput. 2011, 7, 2498.

The results are printed and appended to a report file.`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	root.Flags().StringVarP(&outFile, "out", "o", "results.txt", "report file, appended to")
	root.Flags().StringVar(&logFile, "logfile", "dct_qct_calculation.log", "calculation log file")
	root.Flags().IntVar(&cpus, "cpus", 0, "goroutines for the reduction (0 means one per logical CPU)")
	root.Flags().BoolVar(&strict, "strict", false, "fail on non-finite values in the density difference")
}

func run(cmd *cobra.Command, args []string) error {
	if f, err := os.Create(logFile); err == nil {
		defer f.Close()
		log.SetOutput(f)
	} else {
		fmt.Fprintf(os.Stderr, "can't open log file %s, logging to stderr\n", logFile)
	}
	log.WithFields(log.Fields{"ground": args[0], "excited": args[1]}).Info("Starting DCT and qCT calculation")

	ground, err := cube.ReadFile(args[0])
	if err != nil {
		log.Error(err)
		return fmt.Errorf("reading ground state cube: %v", err)
	}
	log.WithFields(log.Fields{"file": args[0], "voxels": ground.NVoxels(), "atoms": len(ground.Atoms())}).Info("Read ground state density")
	excited, err := cube.ReadFile(args[1])
	if err != nil {
		log.Error(err)
		return fmt.Errorf("reading excited state cube: %v", err)
	}
	log.WithFields(log.Fields{"file": args[1], "voxels": excited.NVoxels(), "atoms": len(excited.Atoms())}).Info("Read excited state density")

	opts := dct.DefaultOptions()
	if cpus > 0 {
		opts.Cpus(cpus)
	}
	opts.Strict(strict)
	res, err := dct.Compute(ground, excited, opts)
	if err != nil {
		log.Error(err)
		if _, ok := err.(dct.ZeroTransferError); ok {
			return fmt.Errorf("computing charge transfer: %v", err)
		}
		if _, ok := err.(cube.GeomError); ok {
			return fmt.Errorf("comparing grids: %v", err)
		}
		return fmt.Errorf("computing charge transfer: %v", err)
	}
	log.WithFields(log.Fields{"DCT": res.DCT, "qCT": res.QCT}).Info("Computed DCT and qCT")

	fmt.Printf("Charge Transfer Distance (DCT): %.2f A\n", res.DCT)
	fmt.Printf("Transferred Charge (qCT): %.2f e\n", res.QCT)
	fmt.Printf("Centroid of Positive Density Changes (R+): %.4f %.4f %.4f A\n", res.RPlus[0], res.RPlus[1], res.RPlus[2])
	fmt.Printf("Centroid of Negative Density Changes (R-): %.4f %.4f %.4f A\n", res.RMinus[0], res.RMinus[1], res.RMinus[2])

	err = report(outFile, res)
	if err != nil {
		log.Error(err)
		return fmt.Errorf("writing report: %v", err)
	}
	fmt.Printf("Results appended to %s\n", outFile)
	return nil
}

//report appends one result block to the report file, so several
//excitations of the same system can share a file.
func report(name string, res *dct.Result) error {
	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	fmt.Fprintln(f, "=============================================")
	fmt.Fprintf(f, "Results for files:\nGround State File: %s\nExcited State File: %s\n", res.Ground, res.Excited)
	fmt.Fprintf(f, "Charge Transfer Distance (DCT): %.2f A\n", res.DCT)
	fmt.Fprintf(f, "Transferred Charge (qCT): %.2f e\n", res.QCT)
	fmt.Fprintf(f, "Centroid of Positive Density Changes (R+): %.4f %.4f %.4f A\n", res.RPlus[0], res.RPlus[1], res.RPlus[2])
	fmt.Fprintf(f, "Centroid of Negative Density Changes (R-): %.4f %.4f %.4f A\n", res.RMinus[0], res.RMinus[1], res.RMinus[2])
	fmt.Fprintln(f, "=============================================")
	fmt.Fprintln(f)
	return nil
}

func main() {
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gocube: %v\n", err)
		os.Exit(1)
	}
}
