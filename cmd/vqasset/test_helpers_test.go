package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"vqasset/internal/config"
	"vqasset/internal/testsupport"
)

// rawClipSize is 48 frames of 576x324 yuv420.
const rawClipSize = 576 * 324 * 3 / 2 * 48

const testDataset = `
dataset = "example_set"

[defaults]
fps = 23.976

[[references]]
name = "src01"
path = "ref/src01.yuv"
[references.metadata]
width = 576
height = 324

[[references]]
name = "src02"
path = "ref/src02.yuv"

[[distorted]]
reference = "src01"
path = "dis/src01_q1.yuv"
[distorted.metadata]
dis_start_frame = 0
dis_end_frame = 47

[[distorted]]
reference = "src02"
path = "dis/src02_q1.yuv"
`

type cliTestEnv struct {
	cfg         *config.Config
	configPath  string
	datasetPath string
	baseDir     string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	cfg.Logging.Level = "error"
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("VQASSET_WORKDIR_ROOT", "")

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	dataDir := filepath.Join(base, "data")
	datasetPath := filepath.Join(dataDir, "example.toml")
	testsupport.WriteText(t, datasetPath, testDataset)
	for _, name := range []string{"ref/src01.yuv", "dis/src01_q1.yuv", "ref/src02.yuv", "dis/src02_q1.yuv"} {
		testsupport.WriteSparseFile(t, filepath.Join(dataDir, name), rawClipSize)
	}

	return &cliTestEnv{
		cfg:         cfg,
		configPath:  configPath,
		datasetPath: datasetPath,
		baseDir:     base,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nworkdir_root = %q\nlog_dir = %q\n\n[asset]\ndefault_yuv_type = %q\ndeterministic_workdir = %t\n\n[logging]\nformat = %q\nlevel = %q\n",
		cfg.Paths.WorkdirRoot,
		cfg.Paths.LogDir,
		cfg.Asset.DefaultYUVType,
		cfg.Asset.DeterministicWorkdir,
		"json",
		cfg.Logging.Level,
	)
	testsupport.WriteText(t, path, content)
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
