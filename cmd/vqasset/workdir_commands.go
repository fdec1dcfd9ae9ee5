package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"vqasset/internal/asset"
	"vqasset/internal/logging"
	"vqasset/internal/services"
	"vqasset/internal/workspace"
)

func newWorkdirCommand(ctx *commandContext) *cobra.Command {
	workdirCmd := &cobra.Command{
		Use:   "workdir",
		Short: "Manage per-asset scratch directories",
	}

	var deterministic bool
	workdirCmd.PersistentFlags().BoolVar(&deterministic, "deterministic", false, "Name workdirs after the asset ID regardless of configuration")

	workdirCmd.AddCommand(newWorkdirPrepareCommand(ctx, &deterministic))
	workdirCmd.AddCommand(newWorkdirCleanCommand(ctx, &deterministic))
	return workdirCmd
}

func newWorkdirPrepareCommand(ctx *commandContext, deterministic *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "prepare DATASET",
		Short: "Create workdirs and print working-file paths",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run := workdirRun{deterministic: *deterministic, action: prepareWorkdir}
			return run.execute(cmd, ctx, args[0])
		},
	}
}

func newWorkdirCleanCommand(ctx *commandContext, deterministic *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "clean DATASET",
		Short: "Remove the workdirs of every asset in a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run := workdirRun{deterministic: *deterministic, requireDeterministic: true, action: cleanWorkdir}
			return run.execute(cmd, ctx, args[0])
		},
	}
}

type workdirAction func(ctx context.Context, alloc *workspace.Allocator, item *asset.Asset) (statusKind, string, error)

// prepareWorkdir resolves both workfile paths before touching the disk so an
// asset with unresolvable metadata leaves nothing behind.
func prepareWorkdir(ctx context.Context, alloc *workspace.Allocator, item *asset.Asset) (statusKind, string, error) {
	refPath, err := item.RefWorkfilePath()
	if err != nil {
		return statusError, "", err
	}
	disPath, err := item.DisWorkfilePath()
	if err != nil {
		return statusError, "", err
	}
	workdir, err := alloc.Prepare(ctx, item)
	if err != nil {
		return statusError, "", err
	}
	return statusOK, fmt.Sprintf("%s\n%s  ref %s\n%s  dis %s", workdir, statusIndent, refPath, statusIndent, disPath), nil
}

func cleanWorkdir(ctx context.Context, alloc *workspace.Allocator, item *asset.Asset) (statusKind, string, error) {
	workdir := item.Workdir()
	if _, err := os.Stat(workdir); errors.Is(err, fs.ErrNotExist) {
		return statusWarn, "no workdir at " + workdir, nil
	}
	if err := alloc.Release(ctx, item); err != nil {
		return statusError, "", err
	}
	return statusOK, "removed " + workdir, nil
}

// workdirRun carries one workdir subcommand. requireDeterministic rejects
// random workdirs, which a later process cannot locate again.
type workdirRun struct {
	deterministic        bool
	requireDeterministic bool
	action               workdirAction
}

// execute applies the action to every asset of the dataset. Failures are
// reported per asset and joined into the returned error.
func (r workdirRun) execute(cmd *cobra.Command, ctx *commandContext, path string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	opts := cfg.AssetOptions()
	if r.deterministic {
		opts.DeterministicWorkdir = true
	}
	if r.requireDeterministic && !opts.DeterministicWorkdir {
		return services.Wrap(services.ErrConfiguration, "workdir", cmd.Name(),
			"workdirs are random per run; enable asset.deterministic_workdir or pass --deterministic", nil)
	}

	runCtx, ds, err := ctx.loadDataset(cmd.Context(), path, opts)
	if err != nil {
		return err
	}
	alloc := workspace.New(cfg.Paths.WorkdirRoot, ctx.loggerValue())
	logger := logging.NewComponentLogger(ctx.loggerValue(), "workdir")

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	var errs []error
	for _, item := range ds.Assets {
		assetCtx := services.WithAsset(runCtx, item.ID())
		kind, message, err := r.action(assetCtx, alloc, item)
		if err != nil {
			logging.WithContext(assetCtx, logger).WarnContext(assetCtx, "workdir action failed",
				logging.String("command", cmd.Name()),
				logging.Error(err),
			)
			fmt.Fprintln(out, renderStatusLine(item.String(), statusError, err.Error(), colorize))
			errs = append(errs, err)
			continue
		}
		fmt.Fprintln(out, renderStatusLine(item.String(), kind, message, colorize))
	}
	if len(errs) > 0 {
		return fmt.Errorf("dataset %s: %d of %d assets failed: %w", ds.Name, len(errs), len(ds.Assets), errors.Join(errs...))
	}
	return nil
}
