// Copyright (c) 2019 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package estimate models how well a block of announcements compresses when
// duplicate data is removed from their merkle proofs, and what it costs to
// recompute (and so decompress) such a block.
package estimate

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrComputeTime is returned when the dataset compute time is not a
	// positive, finite number of milliseconds.
	ErrComputeTime = errors.New("invalid dataset compute time")

	// ErrAnnLimit is returned when the announcement limit is not in the
	// range [1, TreeItems].
	ErrAnnLimit = errors.New("invalid announcement limit")
)

// Params are the inputs of the model.
type Params struct {
	DatasetComputeTimeMs float64
	AnnouncementLimit    int
}

// DefaultParams returns the model parameters with DatasetComputeTimeMs and
// AnnouncementLimit.
func DefaultParams() Params {
	return Params{
		DatasetComputeTimeMs: DatasetComputeTimeMs,
		AnnouncementLimit:    AnnouncementLimit,
	}
}

// Validate checks that p is within the domain of the model.  A limit above
// TreeItems would need a proof depth below zero and is rejected.
func (p *Params) Validate() error {
	t := p.DatasetComputeTimeMs
	if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
		return fmt.Errorf("%w: %v ms is not a positive duration",
			ErrComputeTime, t)
	}
	if p.AnnouncementLimit < 1 || p.AnnouncementLimit > TreeItems {
		return fmt.Errorf("%w: %d is not in the range [1, %d]",
			ErrAnnLimit, p.AnnouncementLimit, TreeItems)
	}
	return nil
}

// Result holds the metrics derived from a set of Params along with the
// intermediate sizes they are computed from.
type Result struct {
	Params

	ProofDepth     int
	OverheadBytes  int
	HonestBytes    int
	RecomputeUnits int

	// ComputeTimePerAnn is the dataset compute time spread over the
	// announcements drawn from it, in ms.
	ComputeTimePerAnn float64

	// CompressionRatio is the best achievable ratio of honest bytes to
	// compressed bytes.
	CompressionRatio float64

	// RecomputeTimePerAnn is the time needed to validate, and thereby
	// decompress, one announcement, in ms.
	RecomputeTimePerAnn float64
}

// Estimate evaluates the model for p.  The only error it returns is the one
// from p.Validate.
func Estimate(p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := p.AnnouncementLimit
	r := &Result{
		Params:         p,
		ProofDepth:     ProofDepth(n),
		OverheadBytes:  OverheadSize(n),
		HonestBytes:    HonestSize(n),
		RecomputeUnits: RecomputeUnits(n),
	}

	lim := float64(n)
	r.ComputeTimePerAnn = p.DatasetComputeTimeMs / lim
	r.CompressionRatio = 1 / (float64(r.OverheadBytes) / float64(r.HonestBytes))
	r.RecomputeTimePerAnn = p.DatasetComputeTimeMs *
		(float64(r.RecomputeUnits) / DatasetWorkUnits) / lim

	log.Debugf("Limit %d: proof depth %d, %d overhead bytes, %d honest "+
		"bytes, %d of %d work units", n, r.ProofDepth, r.OverheadBytes,
		r.HonestBytes, r.RecomputeUnits, DatasetWorkUnits)

	return r, nil
}
