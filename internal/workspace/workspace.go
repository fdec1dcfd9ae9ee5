// Package workspace creates and removes the per-asset scratch directories that
// extraction stages write decoded media into.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"golang.org/x/sys/unix"

	"vqasset/internal/asset"
	"vqasset/internal/logging"
	"vqasset/internal/services"
)

const lockFileName = ".vqasset.lock"

// Allocator owns one workdir root. Directory changes under the root are
// serialized across processes with a file lock.
type Allocator struct {
	root   string
	lock   *flock.Flock
	logger *slog.Logger
}

// New returns an allocator for root.
func New(root string, logger *slog.Logger) *Allocator {
	root = filepath.Clean(strings.TrimSpace(root))
	return &Allocator{
		root:   root,
		lock:   flock.New(filepath.Join(root, lockFileName)),
		logger: logging.NewComponentLogger(logger, "workspace"),
	}
}

// Root returns the managed directory.
func (a *Allocator) Root() string {
	return a.root
}

// CheckRoot creates the root if needed and verifies it is a readable, writable
// directory.
func (a *Allocator) CheckRoot() error {
	if err := os.MkdirAll(a.root, 0o755); err != nil {
		return services.Wrap(services.ErrIO, "workspace", "check root", a.root, err)
	}
	info, err := os.Stat(a.root)
	if err != nil {
		return services.Wrap(services.ErrIO, "workspace", "check root", a.root, err)
	}
	if !info.IsDir() {
		return services.Wrap(services.ErrConfiguration, "workspace", "check root", a.root+" is not a directory", nil)
	}
	if err := unix.Access(a.root, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return services.Wrap(services.ErrIO, "workspace", "check root", a.root+" has insufficient permissions", err)
	}
	return nil
}

// Prepare creates the asset workdir and returns its path.
func (a *Allocator) Prepare(ctx context.Context, item *asset.Asset) (string, error) {
	workdir, err := a.owned(item)
	if err != nil {
		return "", err
	}
	if err := a.CheckRoot(); err != nil {
		return "", err
	}
	err = a.withLock(ctx, func() error {
		if err := os.MkdirAll(workdir, 0o755); err != nil {
			return services.Wrap(services.ErrIO, "workspace", "prepare", workdir, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	logging.WithContext(ctx, a.logger).DebugContext(ctx, "workdir prepared", logging.String(logging.FieldWorkdir, workdir))
	return workdir, nil
}

// Release removes the asset workdir and everything in it. A missing workdir
// is not an error.
func (a *Allocator) Release(ctx context.Context, item *asset.Asset) error {
	workdir, err := a.owned(item)
	if err != nil {
		return err
	}
	if _, err := os.Stat(a.root); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	err = a.withLock(ctx, func() error {
		if err := os.RemoveAll(workdir); err != nil {
			return services.Wrap(services.ErrIO, "workspace", "release", workdir, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	logging.WithContext(ctx, a.logger).DebugContext(ctx, "workdir released", logging.String(logging.FieldWorkdir, workdir))
	return nil
}

// owned returns the asset workdir, rejecting assets built for another root.
func (a *Allocator) owned(item *asset.Asset) (string, error) {
	if item == nil {
		return "", services.Wrap(services.ErrValidation, "workspace", "resolve workdir", "asset is nil", nil)
	}
	workdir := filepath.Clean(item.Workdir())
	rel, err := filepath.Rel(a.root, workdir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", services.Wrap(services.ErrConfiguration, "workspace", "resolve workdir",
			fmt.Sprintf("%s is not inside %s", workdir, a.root), nil)
	}
	return workdir, nil
}

func (a *Allocator) withLock(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := a.lock.Lock(); err != nil {
		return services.Wrap(services.ErrIO, "workspace", "acquire lock", a.lock.Path(), err)
	}
	defer func() {
		if err := a.lock.Unlock(); err != nil {
			a.logger.Warn("failed to release workspace lock", logging.Error(err))
		}
	}()
	return fn()
}
