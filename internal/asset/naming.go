package asset

import (
	"path/filepath"
	"strings"
)

// Workdir returns the scratch directory for this asset. The token is fixed at
// construction, so repeated calls return the same path.
func (a *Asset) Workdir() string {
	return filepath.Join(a.workdirRoot, a.token)
}

// Name returns the canonical identity:
//
//	{dataset}_{ref}_{w}x{h}[_{s}to{e}]_vs_{dis}_{w}x{h}[_{s}to{e}]_q_{w}x{h}
//
// The frame segment is left out for a side whose range is unresolved.
func (a *Asset) Name() (string, error) {
	ref, err := a.sideSegment(sideRef)
	if err != nil {
		return "", err
	}
	dis, err := a.sideSegment(sideDis)
	if err != nil {
		return "", err
	}
	quality, err := a.QualityWidthHeight()
	if err != nil {
		return "", err
	}
	return strings.Join([]string{a.dataset, ref, "vs", dis, "q", quality.String()}, "_"), nil
}

// String implements fmt.Stringer. When the canonical name cannot be resolved
// it falls back to the size-less label used in error messages.
func (a *Asset) String() string {
	name, err := a.Name()
	if err != nil {
		return strings.TrimPrefix(a.label(), "asset ")
	}
	return name
}

// RefWorkfilePath is where the extraction stage stages decoded reference media.
func (a *Asset) RefWorkfilePath() (string, error) {
	return a.workfilePath(sideRef)
}

// DisWorkfilePath is where the extraction stage stages decoded distorted media.
func (a *Asset) DisWorkfilePath() (string, error) {
	return a.workfilePath(sideDis)
}

func (a *Asset) workfilePath(s side) (string, error) {
	segment, err := a.sideSegment(s)
	if err != nil {
		return "", err
	}
	quality, err := a.QualityWidthHeight()
	if err != nil {
		return "", err
	}
	return filepath.Join(a.Workdir(), string(s)+"_"+segment+"_"+quality.String()), nil
}

// sideSegment renders "{base}_{w}x{h}[_{s}to{e}]".
func (a *Asset) sideSegment(s side) (string, error) {
	size, err := a.widthHeight(s)
	if err != nil {
		return "", err
	}
	frames, err := a.startEndFrame(s)
	if err != nil {
		return "", err
	}
	parts := []string{baseName(a.path(s)), size.String()}
	if frames.Resolved() {
		parts = append(parts, frames.String())
	}
	return strings.Join(parts, "_"), nil
}
