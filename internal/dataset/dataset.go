package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"vqasset/internal/asset"
	"vqasset/internal/logging"
	"vqasset/internal/services"
)

// File is the on-disk dataset layout.
type File struct {
	Dataset    string           `toml:"dataset"`
	Defaults   map[string]any   `toml:"defaults"`
	References []ReferenceEntry `toml:"references"`
	Distorted  []DistortedEntry `toml:"distorted"`
}

// ReferenceEntry is one source video.
type ReferenceEntry struct {
	Name     string         `toml:"name"`
	Path     string         `toml:"path"`
	Metadata map[string]any `toml:"metadata"`
}

// DistortedEntry is one processed rendition of a reference.
type DistortedEntry struct {
	Reference  string         `toml:"reference"`
	Path       string         `toml:"path"`
	InstanceID string         `toml:"instance_id"`
	Metadata   map[string]any `toml:"metadata"`
}

// Dataset is a loaded dataset file.
type Dataset struct {
	Name   string
	Path   string
	Assets []*asset.Asset
}

// Load reads the dataset at path and builds its assets with opts.
func Load(ctx context.Context, path string, opts asset.Options, logger *slog.Logger) (*Dataset, error) {
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "dataset"))

	absolute, err := filepath.Abs(strings.TrimSpace(path))
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "dataset", "resolve path", path, err)
	}
	file, err := os.Open(absolute)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "dataset", "open", absolute, err)
	}
	defer file.Close()

	var parsed File
	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&parsed); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "dataset", "parse", absolute, err)
	}

	assets, err := parsed.Build(filepath.Dir(absolute), opts)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "dataset loaded",
		logging.String(logging.FieldDataset, parsed.Dataset),
		logging.Int("references", len(parsed.References)),
		logging.Int("assets", len(assets)),
	)
	return &Dataset{Name: parsed.Dataset, Path: absolute, Assets: assets}, nil
}

// Build validates the file and creates one asset per distorted entry. Relative
// paths are joined onto baseDir.
func (f File) Build(baseDir string, opts asset.Options) ([]*asset.Asset, error) {
	name := strings.TrimSpace(f.Dataset)
	if name == "" {
		return nil, services.Wrap(services.ErrConfiguration, "dataset", "validate", "dataset name is empty", nil)
	}

	refs := make(map[string]ReferenceEntry, len(f.References))
	for i, ref := range f.References {
		refName := strings.TrimSpace(ref.Name)
		if refName == "" {
			return nil, services.Wrap(services.ErrConfiguration, "dataset "+name, "validate", fmt.Sprintf("references[%d] has no name", i), nil)
		}
		if strings.TrimSpace(ref.Path) == "" {
			return nil, services.Wrap(services.ErrConfiguration, "dataset "+name, "validate", fmt.Sprintf("reference %q has no path", refName), nil)
		}
		if _, dup := refs[refName]; dup {
			return nil, services.Wrap(services.ErrConfiguration, "dataset "+name, "validate", fmt.Sprintf("reference %q is defined twice", refName), nil)
		}
		refs[refName] = ref
	}

	assets := make([]*asset.Asset, 0, len(f.Distorted))
	for i, dis := range f.Distorted {
		ref, ok := refs[strings.TrimSpace(dis.Reference)]
		if !ok {
			return nil, services.Wrap(services.ErrConfiguration, "dataset "+name, "validate",
				fmt.Sprintf("distorted[%d] references unknown reference %q", i, dis.Reference), nil)
		}
		if strings.TrimSpace(dis.Path) == "" {
			return nil, services.Wrap(services.ErrConfiguration, "dataset "+name, "validate", fmt.Sprintf("distorted[%d] has no path", i), nil)
		}
		md := mergeMetadata(f.Defaults, ref.Metadata, dis.Metadata)
		assets = append(assets, asset.New(
			name,
			resolvePath(baseDir, ref.Path),
			resolvePath(baseDir, dis.Path),
			md,
			asset.WithOptions(opts),
			asset.WithInstanceID(dis.InstanceID),
		))
	}
	return assets, nil
}

// mergeMetadata layers later maps over earlier ones.
func mergeMetadata(layers ...map[string]any) asset.Metadata {
	md := asset.Metadata{}
	for _, layer := range layers {
		maps.Copy(md, layer)
	}
	return md
}

func resolvePath(baseDir, path string) string {
	path = strings.TrimSpace(path)
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
