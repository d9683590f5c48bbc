// Copyright (c) 2019 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package estimate

import "math/bits"

// Block size estimates.  All functions here expect an announcement limit in
// the range [1, TreeItems] and are meaningless outside of it.

// ProofDepth returns floor(log2(TreeItems/annLimit)), the number of branch
// hashes each announcement must carry from its leaf up to the layer of the
// tree that is stored in full.
func ProofDepth(annLimit int) int {
	return bits.Len(uint(TreeItems/annLimit)) - 1
}

// OverheadSize returns the number of bytes a compressed block spends on
// annLimit announcements.  It is calculated as:
//
//   - annLimit hashes for the layer from which every layer above can be
//     computed
//   - annLimit proofs of ProofDepth hashes back from the leaves to that layer
//   - annLimit seeds of SeedSize bytes
func OverheadSize(annLimit int) int {
	return annLimit*HashSize +
		annLimit*ProofDepth(annLimit)*HashSize +
		annLimit*SeedSize
}

// HonestSize returns the number of bytes annLimit uncompressed announcements
// occupy.
func HonestSize(annLimit int) int {
	return annLimit * AnnSize
}

// RecomputeUnits returns the number of item computations needed to validate
// annLimit announcements: RecomputeItemsPerAnn items each, never more than
// the whole tree, plus the announcements themselves.
func RecomputeUnits(annLimit int) int {
	items := annLimit * RecomputeItemsPerAnn
	if items > TreeItems {
		items = TreeItems
	}
	return items + annLimit
}
