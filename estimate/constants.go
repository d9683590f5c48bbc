// Copyright (c) 2019 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package estimate

const (
	// DatasetComputeTimeMs is the default number of milliseconds needed to
	// compute one dataset, i.e. the full merkle tree of announcements from
	// which a block draws its announcements.
	DatasetComputeTimeMs = 585

	// AnnouncementLimit is the default maximum number of announcements a
	// block may draw from a single dataset.
	AnnouncementLimit = 512

	// TreeDepth is the depth of the announcement merkle tree.
	TreeDepth = 13

	// TreeItems is the number of announcements in a full dataset tree and
	// the upper bound for any announcement limit.
	TreeItems = 1 << TreeDepth

	// HashSize is the size of one merkle node hash in bytes.
	HashSize = 64

	// SeedSize is the number of bytes kept per announcement to seed its
	// recomputation.
	SeedSize = 4

	// AnnSize is the size of one uncompressed announcement in bytes.
	AnnSize = 1024

	// RecomputeItemsPerAnn is the number of tree items that must be
	// recomputed to validate one announcement, not counting the
	// announcement itself.
	RecomputeItemsPerAnn = 4

	// DatasetWorkUnits is the number of item computations in one full
	// dataset: every leaf plus the inner nodes above it.
	DatasetWorkUnits = 2 * TreeItems
)
