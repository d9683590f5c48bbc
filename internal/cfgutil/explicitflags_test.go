// Copyright (c) 2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cfgutil

import (
	"testing"

	flags "github.com/jessevdk/go-flags"
)

type testConfig struct {
	ConfigFile *ExplicitString `long:"configfile"`
	LogDir     *ExplicitString `long:"logdir"`
}

func TestExplicitString(t *testing.T) {
	cfg := testConfig{
		ConfigFile: NewExplicitString("default.conf"),
		LogDir:     NewExplicitString("logs"),
	}
	_, err := flags.NewParser(&cfg, flags.None).ParseArgs(
		[]string{"--configfile", "other.conf"})
	if err != nil {
		t.Fatal(err)
	}

	if !cfg.ConfigFile.ExplicitlySet() || cfg.ConfigFile.Value != "other.conf" {
		t.Fatalf("configfile: got %q (explicit %v)", cfg.ConfigFile.Value,
			cfg.ConfigFile.ExplicitlySet())
	}
	if cfg.LogDir.ExplicitlySet() || cfg.LogDir.Value != "logs" {
		t.Fatalf("logdir: got %q (explicit %v)", cfg.LogDir.Value,
			cfg.LogDir.ExplicitlySet())
	}
}
