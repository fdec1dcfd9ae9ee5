package asset

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"vqasset/internal/services"
)

// DefaultWorkdirRoot is the workdir root used when none is configured.
const DefaultWorkdirRoot = "workdir"

var idNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("vqasset.asset"))

// Options carries the construction defaults normally sourced from config.
type Options struct {
	WorkdirRoot          string
	DefaultYUVType       YUVType
	DeterministicWorkdir bool
}

// Option customizes an Asset during construction.
type Option func(*Asset)

// WithOptions applies a full Options value. Empty fields keep their defaults.
func WithOptions(opts Options) Option {
	return func(a *Asset) {
		if root := strings.TrimSpace(opts.WorkdirRoot); root != "" {
			a.workdirRoot = root
		}
		if opts.DefaultYUVType != "" {
			a.defaultYUV = opts.DefaultYUVType
		}
		if opts.DeterministicWorkdir {
			a.deterministic = true
		}
	}
}

// WithWorkdirRoot overrides the directory under which the asset workdir lives.
func WithWorkdirRoot(root string) Option {
	return func(a *Asset) {
		if root = strings.TrimSpace(root); root != "" {
			a.workdirRoot = root
		}
	}
}

// WithInstanceID sets the discriminator that separates otherwise identical assets.
func WithInstanceID(id string) Option {
	return func(a *Asset) {
		a.instanceID = strings.TrimSpace(id)
	}
}

// WithDefaultYUVType sets the sampling format used when metadata has no yuv_type.
func WithDefaultYUVType(yuv YUVType) Option {
	return func(a *Asset) {
		if yuv != "" {
			a.defaultYUV = yuv
		}
	}
}

// WithDeterministicWorkdir derives the workdir token from ID instead of a
// random UUID, so the same asset maps to the same workdir across runs.
func WithDeterministicWorkdir() Option {
	return func(a *Asset) {
		a.deterministic = true
	}
}

// Asset describes one reference-versus-distorted comparison job.
type Asset struct {
	dataset       string
	refPath       string
	disPath       string
	workdirRoot   string
	instanceID    string
	metadata      Metadata
	defaultYUV    YUVType
	deterministic bool
	token         string
}

// New builds an Asset. It never fails: metadata problems surface from the
// accessor that needs the offending keys.
func New(dataset, refPath, disPath string, metadata Metadata, opts ...Option) *Asset {
	a := &Asset{
		dataset:     dataset,
		refPath:     refPath,
		disPath:     disPath,
		workdirRoot: DefaultWorkdirRoot,
		metadata:    metadata.Clone(),
		defaultYUV:  DefaultYUVType,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	if a.deterministic {
		a.token = a.ID()
	} else {
		a.token = uuid.NewString()
	}
	return a
}

func (a *Asset) Dataset() string     { return a.dataset }
func (a *Asset) RefPath() string     { return a.refPath }
func (a *Asset) DisPath() string     { return a.disPath }
func (a *Asset) WorkdirRoot() string { return a.workdirRoot }
func (a *Asset) InstanceID() string  { return a.instanceID }

// Metadata returns a copy of the metadata overrides.
func (a *Asset) Metadata() Metadata {
	return a.metadata.Clone()
}

// ID returns a stable identifier derived from the asset identity and metadata.
// Two assets with equal dataset, paths, metadata and instance id share an ID.
func (a *Asset) ID() string {
	return uuid.NewSHA1(idNamespace, a.canonicalIdentity()).String()
}

func (a *Asset) canonicalIdentity() []byte {
	var b strings.Builder
	writeField := func(key, value string) {
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(strconv.Quote(value))
		b.WriteByte('\n')
	}
	writeField("dataset", a.dataset)
	writeField("ref_path", a.refPath)
	writeField("dis_path", a.disPath)
	keys := make([]string, 0, len(a.metadata))
	for key := range a.metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		writeField("md."+key, canonicalValue(a.metadata[key]))
	}
	writeField("instance_id", a.instanceID)
	return []byte(b.String())
}

func canonicalValue(v any) string {
	switch val := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "i:" + fmt.Sprint(val)
	case float32:
		return canonicalFloat(float64(val), 32)
	case float64:
		return canonicalFloat(val, 64)
	case string:
		return "s:" + val
	default:
		return fmt.Sprintf("%T:%v", v, v)
	}
}

// canonicalFloat encodes integral floats like ints so 24 and 24.0 hash alike,
// matching Metadata.Int which accepts both.
func canonicalFloat(v float64, bitSize int) string {
	if v == math.Trunc(v) && v >= math.MinInt64 && v < math.MaxInt64 {
		return "i:" + strconv.FormatInt(int64(v), 10)
	}
	return "f:" + strconv.FormatFloat(v, 'g', -1, bitSize)
}

// side selects the reference or distorted half of an asset.
type side string

const (
	sideRef side = "ref"
	sideDis side = "dis"
)

func (s side) key(suffix string) string {
	return string(s) + "_" + suffix
}

func (a *Asset) path(s side) string {
	if s == sideRef {
		return a.refPath
	}
	return a.disPath
}

// label identifies the asset in error messages without touching any fallible
// accessor.
func (a *Asset) label() string {
	return fmt.Sprintf("asset %s_%s_vs_%s", a.dataset, baseName(a.refPath), baseName(a.disPath))
}

func (a *Asset) configError(operation, message string, err error) error {
	return services.Wrap(services.ErrConfiguration, a.label(), operation, message, err)
}

func baseName(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// tier is one precedence level of a fallback chain. resolve reports ok=false
// when the tier does not apply, and an error when it applies but is malformed.
type tier[T any] struct {
	name    string
	resolve func(md Metadata, s side) (T, bool, error)
}

// resolveTiers walks tiers in order and returns the first match.
func resolveTiers[T any](md Metadata, s side, tiers []tier[T]) (T, string, bool, error) {
	var zero T
	for _, t := range tiers {
		value, ok, err := t.resolve(md, s)
		if err != nil {
			return zero, t.name, false, fmt.Errorf("%s tier: %w", t.name, err)
		}
		if ok {
			return value, t.name, true, nil
		}
	}
	return zero, "", false, nil
}

func tierNames[T any](tiers []tier[T]) string {
	names := make([]string, 0, len(tiers))
	for _, t := range tiers {
		names = append(names, t.name)
	}
	return strings.Join(names, ", ")
}
