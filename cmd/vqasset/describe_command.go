package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"vqasset/internal/asset"
	"vqasset/internal/dataset"
	"vqasset/internal/logging"
)

// assetView is the describe output for one asset. Fields that failed to
// resolve are left empty and the failure is listed in Errors.
type assetView struct {
	Index          int      `json:"index"`
	Name           string   `json:"name"`
	ID             string   `json:"id"`
	InstanceID     string   `json:"instance_id,omitempty"`
	RefPath        string   `json:"ref_path"`
	DisPath        string   `json:"dis_path"`
	Workdir        string   `json:"workdir"`
	RefSize        string   `json:"ref_size,omitempty"`
	DisSize        string   `json:"dis_size,omitempty"`
	QualitySize    string   `json:"quality_size,omitempty"`
	RefFrames      string   `json:"ref_frames,omitempty"`
	DisFrames      string   `json:"dis_frames,omitempty"`
	YUVType        string   `json:"yuv_type,omitempty"`
	RefBitrateKbps *float64 `json:"ref_bitrate_kbps,omitempty"`
	DisBitrateKbps *float64 `json:"dis_bitrate_kbps,omitempty"`
	Errors         []string `json:"errors,omitempty"`
}

type datasetView struct {
	Dataset string      `json:"dataset"`
	Path    string      `json:"path"`
	Assets  []assetView `json:"assets"`
}

func newDescribeCommand(ctx *commandContext) *cobra.Command {
	var withBitrate bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "describe DATASET",
		Short: "Show resolved properties of every asset in a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := ctx.assetOptions()
			if err != nil {
				return err
			}
			runCtx, ds, err := ctx.loadDataset(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			view := describeDataset(ds, withBitrate)
			failed := 0
			for _, item := range view.Assets {
				if len(item.Errors) > 0 {
					failed++
				}
			}
			logging.WithContext(runCtx, ctx.loggerValue()).DebugContext(runCtx, "dataset described",
				logging.Int("assets", len(view.Assets)),
				logging.Int("unresolved", failed),
			)

			if asJSON {
				return writeJSON(cmd, view)
			}
			renderDescribe(cmd, view, withBitrate)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withBitrate, "bitrate", false, "Stat the media files and report whole-file bitrates")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func describeDataset(ds *dataset.Dataset, withBitrate bool) datasetView {
	view := datasetView{Dataset: ds.Name, Path: ds.Path, Assets: make([]assetView, 0, len(ds.Assets))}
	for i, item := range ds.Assets {
		view.Assets = append(view.Assets, describeAsset(i+1, item, withBitrate))
	}
	return view
}

func describeAsset(index int, item *asset.Asset, withBitrate bool) assetView {
	v := assetView{
		Index:      index,
		Name:       item.String(),
		ID:         item.ID(),
		InstanceID: item.InstanceID(),
		RefPath:    item.RefPath(),
		DisPath:    item.DisPath(),
		Workdir:    item.Workdir(),
	}
	record := func(err error) {
		v.Errors = append(v.Errors, err.Error())
	}

	if refSize, err := item.RefWidthHeight(); err != nil {
		record(err)
	} else {
		v.RefSize = refSize.String()
	}
	if disSize, err := item.DisWidthHeight(); err != nil {
		record(err)
	} else {
		v.DisSize = disSize.String()
	}
	// Side size errors already explain a quality failure.
	if quality, err := item.QualityWidthHeight(); err == nil {
		v.QualitySize = quality.String()
	} else if v.RefSize != "" && v.DisSize != "" {
		record(err)
	}
	if refFrames, err := item.RefStartEndFrame(); err != nil {
		record(err)
	} else {
		v.RefFrames = refFrames.String()
	}
	if disFrames, err := item.DisStartEndFrame(); err != nil {
		record(err)
	} else {
		v.DisFrames = disFrames.String()
	}
	if yuv, err := item.YUVType(); err != nil {
		record(err)
	} else {
		v.YUVType = string(yuv)
	}

	if withBitrate {
		if kbps, err := item.RefBitrateKbpsForEntireFile(); err == nil {
			v.RefBitrateKbps = &kbps
		} else {
			record(err)
		}
		if kbps, err := item.DisBitrateKbpsForEntireFile(); err == nil {
			v.DisBitrateKbps = &kbps
		} else {
			record(err)
		}
	}
	return v
}

func renderDescribe(cmd *cobra.Command, view datasetView, withBitrate bool) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	for _, line := range renderSectionHeader(fmt.Sprintf("%s (%d assets)", datasetTitle(view.Dataset), len(view.Assets)), colorize) {
		fmt.Fprintln(out, line)
	}
	if len(view.Assets) == 0 {
		fmt.Fprintln(out, "No assets defined")
		return
	}

	columns := []tableColumn{
		{header: "#", align: alignRight},
		{header: "Asset"},
		{header: "Ref"},
		{header: "Dis"},
		{header: "Quality"},
		{header: "YUV"},
	}
	if withBitrate {
		columns = append(columns,
			tableColumn{header: "Ref kbps", align: alignRight},
			tableColumn{header: "Dis kbps", align: alignRight},
		)
	}

	rows := make([][]string, 0, len(view.Assets))
	for _, item := range view.Assets {
		row := []string{
			strconv.Itoa(item.Index),
			item.Name,
			sideCell(item.RefSize, item.RefFrames),
			sideCell(item.DisSize, item.DisFrames),
			cellOrError(item.QualitySize),
			cellOrError(item.YUVType),
		}
		if withBitrate {
			row = append(row, kbpsCell(item.RefBitrateKbps), kbpsCell(item.DisBitrateKbps))
		}
		rows = append(rows, row)
	}
	fmt.Fprintln(out, renderTable(columns, rows))

	for _, item := range view.Assets {
		for _, msg := range item.Errors {
			fmt.Fprintln(out, renderStatusLine("#"+strconv.Itoa(item.Index), statusError, msg, colorize))
		}
	}
}

func sideCell(size, frames string) string {
	if size == "" {
		return "error"
	}
	if frames == "" {
		return size + " error"
	}
	return size + " " + frames
}

func cellOrError(value string) string {
	if value == "" {
		return "error"
	}
	return value
}

func kbpsCell(value *float64) string {
	if value == nil {
		return "error"
	}
	return strconv.FormatFloat(*value, 'f', 2, 64)
}
