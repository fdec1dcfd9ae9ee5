package asset

import (
	"fmt"
	"os"

	"vqasset/internal/services"
)

// TotalFrames returns the number of raw frames a file of fileSize bytes holds at
// the given resolution and sampling format. The result is not rounded.
func TotalFrames(fileSize int64, size Size, yuv YUVType) float64 {
	return float64(fileSize) / (float64(size.Pixels()) * yuv.BytesPerPixel())
}

// RefBitrateKbpsForEntireFile computes the bitrate of the whole reference file,
// ignoring any frame range.
func (a *Asset) RefBitrateKbpsForEntireFile() (float64, error) {
	return a.bitrateKbps(sideRef)
}

// DisBitrateKbpsForEntireFile computes the bitrate of the whole distorted file.
func (a *Asset) DisBitrateKbpsForEntireFile() (float64, error) {
	return a.bitrateKbps(sideDis)
}

func (a *Asset) bitrateKbps(s side) (float64, error) {
	operation := s.key("bitrate_kbps_for_entire_file")
	fps, ok, err := a.metadata.fps()
	if err != nil {
		return 0, a.configError(operation, "", err)
	}
	if !ok {
		return 0, a.configError(operation, KeyFPS+" is required", nil)
	}
	size, err := a.widthHeight(s)
	if err != nil {
		return 0, err
	}
	yuv, err := a.YUVType()
	if err != nil {
		return 0, err
	}

	path := a.path(s)
	info, err := os.Stat(path)
	if err != nil {
		return 0, services.Wrap(services.ErrIO, a.label(), operation, "stat media file", err)
	}
	if info.IsDir() {
		return 0, services.Wrap(services.ErrIO, a.label(), operation, fmt.Sprintf("%s is a directory", path), nil)
	}
	fileSize := info.Size()
	if fileSize == 0 {
		return 0, services.Wrap(services.ErrIO, a.label(), operation, fmt.Sprintf("%s is empty", path), nil)
	}

	frames := TotalFrames(fileSize, size, yuv)
	return float64(fileSize) * 8 / 1000 / (frames / fps), nil
}
