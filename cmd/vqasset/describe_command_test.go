package main

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"vqasset/internal/services"
)

func TestDescribeTable(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"describe", env.datasetPath}, env.configPath)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	requireContains(t, out, "== Example Set (2 assets) ==")
	requireContains(t, out, "example_set_src01_576x324_vs_src01_q1_576x324_0to47_q_576x324")
	requireContains(t, out, "576x324 all")
	requireContains(t, out, "yuv420")
	requireContains(t, out, "#2: [ERROR]")
	requireContains(t, out, "no tier resolved")
	if strings.Contains(out, "kbps") {
		t.Fatalf("expected bitrate columns to be hidden without --bitrate:\n%s", out)
	}
}

func TestDescribeBitrate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"describe", "--bitrate", env.datasetPath}, env.configPath)
	if err != nil {
		t.Fatalf("describe --bitrate: %v", err)
	}
	requireContains(t, out, "Ref kbps")
	requireContains(t, out, "53693.96")
}

func TestDescribeJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"describe", "--json", "--bitrate", env.datasetPath}, env.configPath)
	if err != nil {
		t.Fatalf("describe --json: %v", err)
	}
	var view datasetView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if view.Dataset != "example_set" || len(view.Assets) != 2 {
		t.Fatalf("unexpected view: %+v", view)
	}

	first := view.Assets[0]
	if len(first.Errors) != 0 {
		t.Fatalf("expected first asset to resolve, got errors %v", first.Errors)
	}
	if first.RefFrames != "all" || first.DisFrames != "0to47" {
		t.Fatalf("unexpected frames: ref %q dis %q", first.RefFrames, first.DisFrames)
	}
	if first.RefBitrateKbps == nil || *first.RefBitrateKbps != 53693.964287999996 {
		t.Fatalf("unexpected ref bitrate: %v", first.RefBitrateKbps)
	}
	if first.ID == "" || filepath.Dir(first.Workdir) != env.cfg.Paths.WorkdirRoot {
		t.Fatalf("unexpected identity fields: id %q workdir %q", first.ID, first.Workdir)
	}

	second := view.Assets[1]
	if second.RefSize != "" || second.QualitySize != "" {
		t.Fatalf("expected unresolved sizes, got %+v", second)
	}
	if len(second.Errors) == 0 {
		t.Fatalf("expected errors for asset without sizes")
	}
	if second.RefBitrateKbps != nil {
		t.Fatalf("expected bitrate to fail without sizes")
	}
}

func TestDescribeMissingDataset(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"describe", filepath.Join(env.baseDir, "missing.toml")}, env.configPath)
	if !errors.Is(err, services.ErrIO) {
		t.Fatalf("expected io error, got %v", err)
	}
	if code := services.ExitCode(err); code != services.ExitIO {
		t.Fatalf("unexpected exit code %d", code)
	}
}

func TestDatasetTitle(t *testing.T) {
	tests := map[string]string{
		"example_set":    "Example Set",
		"netflix-public": "Netflix Public",
		"vqeg":           "Vqeg",
		"  ":             "",
	}
	for input, want := range tests {
		if got := datasetTitle(input); got != want {
			t.Fatalf("datasetTitle(%q) = %q want %q", input, got, want)
		}
	}
}
