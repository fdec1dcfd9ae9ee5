package testsupport

import (
	"path/filepath"
	"testing"

	"vqasset/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.WorkdirRoot = filepath.Join(base, "workdir")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithDeterministicWorkdir enables ID-derived workdir names on the test config.
func WithDeterministicWorkdir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Asset.DeterministicWorkdir = true
	}
}

// WithDefaultYUVType overrides the default sampling format on the test config.
func WithDefaultYUVType(yuv string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Asset.DefaultYUVType = yuv
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.WorkdirRoot)
}
