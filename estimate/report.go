// Copyright (c) 2019 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package estimate

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

const reportPreamble = `
The best known technique for compressing a block of announcements is to remove duplicate
data in the merkle proofs. The savings from this technique depends on the number of
announcements which can be generated in one block (from one dataset).

Recomputation is needed for announcement validation, but mass validation of a block of
announcements can double as decompression.

`

// formatDecimal returns the shortest decimal representation of v which
// parses back to v.  Whole numbers keep a trailing ".0".
func formatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// WriteReport writes the explanation of the compression technique followed
// by the three metrics of r.
func WriteReport(w io.Writer, r *Result) error {
	var b strings.Builder
	b.WriteString(reportPreamble)
	fmt.Fprintf(&b, "Computation time ms/ann:   %s\n",
		formatDecimal(r.ComputeTimePerAnn))
	fmt.Fprintf(&b, "Best compression ratio:    %s : 1\n",
		formatDecimal(r.CompressionRatio))
	fmt.Fprintf(&b, "Recomputation time ms/ann: %s\n",
		formatDecimal(r.RecomputeTimePerAnn))

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteSweep writes rs as a table, one row per announcement limit.
func WriteSweep(w io.Writer, rs []*Result) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "limit\tdepth\toverhead B\thonest B\tratio\t"+
		"compute ms/ann\trecompute ms/ann\t")
	for _, r := range rs {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%s\t%s\t%s\t\n",
			r.AnnouncementLimit, r.ProofDepth, r.OverheadBytes,
			r.HonestBytes, formatDecimal(r.CompressionRatio),
			formatDecimal(r.ComputeTimePerAnn),
			formatDecimal(r.RecomputeTimePerAnn))
	}
	return tw.Flush()
}
