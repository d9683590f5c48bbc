// Copyright (c) 2019 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package version

import "testing"

func TestString(t *testing.T) {
	defer func(pre, meta string) {
		PreRelease, BuildMetadata = pre, meta
	}(PreRelease, BuildMetadata)

	tests := []struct {
		pre, meta string
		want      string
	}{
		{"", "", "0.1.0"},
		{"pre", "", "0.1.0-pre"},
		{"pre", "dev", "0.1.0-pre+dev"},
		{"rc1!", "go1.17_linux", "0.1.0-rc1+go1.17linux"},
	}
	for _, test := range tests {
		PreRelease, BuildMetadata = test.pre, test.meta
		if got := String(); got != test.want {
			t.Errorf("String() with %q/%q: got %q, want %q", test.pre,
				test.meta, got, test.want)
		}
	}
}
