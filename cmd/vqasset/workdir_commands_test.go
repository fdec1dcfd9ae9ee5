package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"vqasset/internal/asset"
	"vqasset/internal/dataset"
	"vqasset/internal/logging"
	"vqasset/internal/services"
	"vqasset/internal/testsupport"
)

func TestWorkdirPrepareAndClean(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithDeterministicWorkdir())

	ds, err := dataset.Load(context.Background(), env.datasetPath, env.cfg.AssetOptions(), logging.NewNop())
	if err != nil {
		t.Fatalf("dataset.Load: %v", err)
	}
	resolved := ds.Assets[0]
	unresolved := ds.Assets[1]

	out, _, err := runCLI(t, []string{"workdir", "prepare", env.datasetPath}, env.configPath)
	if err == nil {
		t.Fatal("expected prepare to report the asset without sizes")
	}
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	requireContains(t, err.Error(), "1 of 2 assets failed")

	refWorkfile, err := resolved.RefWorkfilePath()
	if err != nil {
		t.Fatalf("RefWorkfilePath: %v", err)
	}
	requireContains(t, out, "[OK] "+resolved.Workdir())
	requireContains(t, out, "ref "+refWorkfile)
	if info, err := os.Stat(resolved.Workdir()); err != nil || !info.IsDir() {
		t.Fatalf("expected workdir %s to exist: %v", resolved.Workdir(), err)
	}
	if _, err := os.Stat(unresolved.Workdir()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no workdir for the unresolved asset, stat err %v", err)
	}

	out, _, err = runCLI(t, []string{"workdir", "clean", env.datasetPath}, env.configPath)
	if err != nil {
		t.Fatalf("workdir clean: %v", err)
	}
	requireContains(t, out, "removed "+resolved.Workdir())
	requireContains(t, out, "[WARN] no workdir at "+unresolved.Workdir())
	for _, item := range ds.Assets {
		if _, err := os.Stat(item.Workdir()); !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("expected workdir %s to be removed, stat err %v", item.Workdir(), err)
		}
	}
}

func TestWorkdirCleanRequiresDeterministicWorkdirs(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"workdir", "clean", env.datasetPath}, env.configPath)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if code := services.ExitCode(err); code != services.ExitConfiguration {
		t.Fatalf("unexpected exit code %d", code)
	}

	if _, _, err := runCLI(t, []string{"workdir", "clean", "--deterministic", env.datasetPath}, env.configPath); err != nil {
		t.Fatalf("workdir clean --deterministic: %v", err)
	}
}

const mismatchedDataset = `
dataset = "mismatch"

[[references]]
name = "src01"
path = "src01.yuv"
[references.metadata]
width = 1920
height = 1080

[[distorted]]
reference = "src01"
path = "src01_720p.yuv"
[distorted.metadata]
dis_width = 1280
dis_height = 720
`

func TestWorkdirPrepareLeavesNothingForUnresolvableAsset(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithDeterministicWorkdir())
	path := filepath.Join(env.baseDir, "mismatch", "dataset.toml")
	testsupport.WriteText(t, path, mismatchedDataset)

	out, _, err := runCLI(t, []string{"workdir", "prepare", path}, env.configPath)
	if !errors.Is(err, asset.ErrQualitySizeRequired) {
		t.Fatalf("expected quality size error, got %v", err)
	}
	requireContains(t, out, "[ERROR]")

	entries, err := os.ReadDir(env.cfg.Paths.WorkdirRoot)
	if err != nil {
		t.Fatalf("read workdir root: %v", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			t.Fatalf("expected no workdirs under %s, found %s", env.cfg.Paths.WorkdirRoot, entry.Name())
		}
	}
}
