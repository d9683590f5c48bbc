// Copyright (c) 2019 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"
	"runtime"

	"github.com/decred/annratio/estimate"
	"github.com/decred/annratio/version"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		os.Exit(1)
	}
}

// run is the main startup and teardown logic performed by the main package.
func run(args []string, out io.Writer) error {
	// Load configuration and parse command line.  This function also
	// initializes logging and configures it accordingly.
	cfg, _, err := loadConfig(args)
	if err != nil {
		return err
	}
	defer func() {
		if logRotator != nil {
			logRotator.Close()
		}
	}()

	// Show version at startup.
	log.Infof("Version %s (Go version %s)", version.String(), runtime.Version())

	if cfg.Sweep {
		log.Infof("Sweeping announcement limits with a %v ms dataset",
			cfg.DatasetComputeTime)
		rs, err := estimate.Sweep(cfg.DatasetComputeTime)
		if err != nil {
			log.Errorf("Unable to sweep announcement limits: %v", err)
			return err
		}
		return estimate.WriteSweep(out, rs)
	}

	log.Infof("Estimating %d announcements from a %v ms dataset",
		cfg.AnnLimit, cfg.DatasetComputeTime)
	r, err := estimate.Estimate(cfg.params())
	if err != nil {
		log.Errorf("Unable to estimate compression: %v", err)
		return err
	}
	if err := estimate.WriteReport(out, r); err != nil {
		log.Errorf("Unable to write report: %v", err)
		return err
	}
	return nil
}
