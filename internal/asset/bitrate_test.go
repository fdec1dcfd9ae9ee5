package asset_test

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"vqasset/internal/asset"
	"vqasset/internal/services"
	"vqasset/internal/testsupport"
)

// 48 frames of 576x324 yuv420.
const rawClipSize = 576 * 324 * 3 / 2 * 48

func TestBitrate(t *testing.T) {
	dir := t.TempDir()
	refPath := filepath.Join(dir, "src01_hrc00_576x324.yuv")
	disPath := filepath.Join(dir, "src01_hrc01_576x324.yuv")
	testsupport.WriteSparseFile(t, refPath, rawClipSize)
	testsupport.WriteSparseFile(t, disPath, rawClipSize)

	a := asset.New("test", refPath, disPath, asset.Metadata{
		"ref_start_frame": 0, "ref_end_frame": 47,
		"dis_start_frame": 0, "dis_end_frame": 47,
		"fps":   23.976,
		"width": 576, "height": 324,
	})

	ref, err := a.RefBitrateKbpsForEntireFile()
	if err != nil {
		t.Fatalf("RefBitrateKbpsForEntireFile returned error: %v", err)
	}
	dis, err := a.DisBitrateKbpsForEntireFile()
	if err != nil {
		t.Fatalf("DisBitrateKbpsForEntireFile returned error: %v", err)
	}
	const want = 53693.964287999996
	if ref != want {
		t.Fatalf("unexpected ref bitrate: got %v want %v", ref, want)
	}
	if dis != want {
		t.Fatalf("unexpected dis bitrate: got %v want %v", dis, want)
	}
}

func TestBitrateIgnoresFrameRange(t *testing.T) {
	dir := t.TempDir()
	refPath := filepath.Join(dir, "ref.yuv")
	testsupport.WriteSparseFile(t, refPath, rawClipSize)

	full := asset.New("test", refPath, refPath, asset.Metadata{"fps": 23.976, "width": 576, "height": 324})
	clipped := asset.New("test", refPath, refPath, asset.Metadata{"fps": 23.976, "width": 576, "height": 324, "start_frame": 10, "end_frame": 11})

	a, err := full.RefBitrateKbpsForEntireFile()
	if err != nil {
		t.Fatalf("full bitrate: %v", err)
	}
	b, err := clipped.RefBitrateKbpsForEntireFile()
	if err != nil {
		t.Fatalf("clipped bitrate: %v", err)
	}
	if a != b {
		t.Fatalf("expected frame range to be ignored, got %v and %v", a, b)
	}
}

func TestBitrateUsesSamplingFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ref.yuv")
	testsupport.WriteSparseFile(t, path, 64*64*3*10)

	a := asset.New("test", path, path, asset.Metadata{"fps": 10, "width": 64, "height": 64, "yuv_type": "yuv444"})
	got, err := a.RefBitrateKbpsForEntireFile()
	if err != nil {
		t.Fatalf("RefBitrateKbpsForEntireFile returned error: %v", err)
	}
	// 10 frames at 10 fps is one second of media.
	if want := float64(64*64*3*10) * 8 / 1000; got != want {
		t.Fatalf("unexpected bitrate: got %v want %v", got, want)
	}
}

func TestBitrateErrors(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.yuv")
	testsupport.WriteSparseFile(t, present, rawClipSize)
	empty := filepath.Join(dir, "empty.yuv")
	testsupport.WriteSparseFile(t, empty, 0)
	missing := filepath.Join(dir, "missing.yuv")

	t.Run("missing file", func(t *testing.T) {
		a := asset.New("test", missing, missing, asset.Metadata{"fps": 24, "width": 576, "height": 324})
		_, err := a.RefBitrateKbpsForEntireFile()
		if !errors.Is(err, services.ErrIO) {
			t.Fatalf("expected io error, got %v", err)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("expected wrapped not-exist error, got %v", err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		a := asset.New("test", empty, empty, asset.Metadata{"fps": 24, "width": 576, "height": 324})
		if _, err := a.DisBitrateKbpsForEntireFile(); !errors.Is(err, services.ErrIO) {
			t.Fatalf("expected io error, got %v", err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		a := asset.New("test", dir, dir, asset.Metadata{"fps": 24, "width": 576, "height": 324})
		if _, err := a.RefBitrateKbpsForEntireFile(); !errors.Is(err, services.ErrIO) {
			t.Fatalf("expected io error, got %v", err)
		}
	})

	t.Run("missing fps", func(t *testing.T) {
		a := asset.New("test", present, present, asset.Metadata{"width": 576, "height": 324})
		_, err := a.RefBitrateKbpsForEntireFile()
		if !errors.Is(err, services.ErrConfiguration) {
			t.Fatalf("expected configuration error, got %v", err)
		}
		requireContains(t, err.Error(), "fps is required")
	})

	t.Run("missing size", func(t *testing.T) {
		a := asset.New("test", present, present, asset.Metadata{"fps": 24})
		if _, err := a.RefBitrateKbpsForEntireFile(); !errors.Is(err, services.ErrConfiguration) {
			t.Fatalf("expected configuration error, got %v", err)
		}
	})
}

func TestTotalFrames(t *testing.T) {
	got := asset.TotalFrames(rawClipSize, asset.Size{Width: 576, Height: 324}, asset.YUV420)
	if got != 48 {
		t.Fatalf("expected 48 frames, got %v", got)
	}
}
