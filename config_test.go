// Copyright (c) 2019 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decred/annratio/estimate"
)

// closeLogRotator releases the log file opened by loadConfig.
func closeLogRotator() {
	if logRotator != nil {
		logRotator.Close()
		logRotator = nil
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	defer closeLogRotator()

	cfg, _, err := loadConfig([]string{"-A", dir})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DatasetComputeTime != estimate.DatasetComputeTimeMs {
		t.Fatalf("dataset compute time: got %v, want %v",
			cfg.DatasetComputeTime, estimate.DatasetComputeTimeMs)
	}
	if cfg.AnnLimit != estimate.AnnouncementLimit {
		t.Fatalf("announcement limit: got %d, want %d", cfg.AnnLimit,
			estimate.AnnouncementLimit)
	}
	if want := filepath.Join(dir, defaultLogDirname); cfg.LogDir.Value != want {
		t.Fatalf("log dir: got %q, want %q", cfg.LogDir.Value, want)
	}
	if _, err := os.Stat(filepath.Join(cfg.LogDir.Value, defaultLogFilename)); err != nil {
		t.Fatalf("log file was not created: %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	defer closeLogRotator()

	conf := "[Application Options]\ndatasetcomputetime=100\nannlimit=64\n"
	err := ioutil.WriteFile(filepath.Join(dir, defaultConfigFilename),
		[]byte(conf), 0600)
	if err != nil {
		t.Fatal(err)
	}

	cfg, _, err := loadConfig([]string{"-A", dir})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DatasetComputeTime != 100 || cfg.AnnLimit != 64 {
		t.Fatalf("config file values not applied: %v ms, limit %d",
			cfg.DatasetComputeTime, cfg.AnnLimit)
	}
	closeLogRotator()

	// Command line options take precedence over the config file.
	cfg, _, err = loadConfig([]string{"-A", dir, "--annlimit", "128"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DatasetComputeTime != 100 || cfg.AnnLimit != 128 {
		t.Fatalf("command line did not override config file: %v ms, "+
			"limit %d", cfg.DatasetComputeTime, cfg.AnnLimit)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	dir := t.TempDir()
	defer closeLogRotator()

	_, _, err := loadConfig([]string{"-A", dir, "-C",
		filepath.Join(dir, "missing.conf")})
	if err == nil {
		t.Fatal("loadConfig accepted a missing explicit config file")
	}
}

func TestLoadConfigRejectsParams(t *testing.T) {
	tests := []struct {
		name string
		args []string
		err  error
	}{
		{"limit above tree", []string{"--annlimit", "9000"}, estimate.ErrAnnLimit},
		{"zero limit", []string{"-n", "0"}, estimate.ErrAnnLimit},
		{"zero time", []string{"-t", "0"}, estimate.ErrComputeTime},
		{"negative time with sweep", []string{"--sweep", "--datasetcomputetime=-1"}, estimate.ErrComputeTime},
	}

	for _, test := range tests {
		dir := t.TempDir()
		args := append([]string{"-A", dir}, test.args...)
		_, _, err := loadConfig(args)
		closeLogRotator()
		if !errors.Is(err, test.err) {
			t.Errorf("%s: got error %v, want %v", test.name, err, test.err)
		}
	}
}

func TestLoadConfigSweepIgnoresLimit(t *testing.T) {
	dir := t.TempDir()
	defer closeLogRotator()

	cfg, _, err := loadConfig([]string{"-A", dir, "--sweep", "-n", "9000"})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Sweep {
		t.Fatal("sweep flag not set")
	}
}

func TestParseAndSetDebugLevels(t *testing.T) {
	defer setLogLevels(defaultLogLevel)

	valid := []string{"info", "debug", "ANRT=trace,ESTM=warn", "ESTM=off"}
	for _, level := range valid {
		if err := parseAndSetDebugLevels(level); err != nil {
			t.Errorf("%q: %v", level, err)
		}
	}

	invalid := []string{"loud", "ANRT=loud", "NOPE=info", "ANRT=info,debug"}
	for _, level := range invalid {
		if err := parseAndSetDebugLevels(level); err == nil {
			t.Errorf("%q: accepted invalid debug level", level)
		}
	}
}

func TestCleanAndExpandPath(t *testing.T) {
	os.Setenv("ANNRATIO_TEST_DIR", "/tmp/annratio")
	defer os.Unsetenv("ANNRATIO_TEST_DIR")

	if got := cleanAndExpandPath("$ANNRATIO_TEST_DIR/./logs/"); got != "/tmp/annratio/logs" {
		t.Fatalf("got %q", got)
	}
	if got := cleanAndExpandPath("~/logs"); strings.HasPrefix(got, "~") {
		t.Fatalf("home directory not expanded: %q", got)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer
	if err := run([]string{"-A", dir}, &out); err != nil {
		t.Fatal(err)
	}
	want := "Computation time ms/ann:   1.142578125\n" +
		"Best compression ratio:    3.1604938271604937 : 1\n" +
		"Recomputation time ms/ann: 0.17852783203125\n"
	if !strings.HasSuffix(out.String(), want) {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	logRotator = nil

	out.Reset()
	if err := run([]string{"-A", dir, "--sweep"}, &out); err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(out.String(), "\n"); lines != estimate.TreeDepth+2 {
		t.Fatalf("sweep printed %d lines, want %d:\n%s", lines,
			estimate.TreeDepth+2, out.String())
	}
	logRotator = nil
}
