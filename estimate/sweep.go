// Copyright (c) 2019 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package estimate

// Sweep estimates every power of two announcement limit from 1 up to and
// including TreeItems, in ascending order.
func Sweep(datasetComputeTimeMs float64) ([]*Result, error) {
	rs := make([]*Result, 0, TreeDepth+1)
	for n := 1; n <= TreeItems; n <<= 1 {
		r, err := Estimate(Params{
			DatasetComputeTimeMs: datasetComputeTimeMs,
			AnnouncementLimit:    n,
		})
		if err != nil {
			return nil, err
		}
		rs = append(rs, r)
	}
	return rs, nil
}
