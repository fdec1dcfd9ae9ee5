package asset

import (
	"errors"
	"fmt"
)

// ErrQualitySizeRequired marks assets whose reference and distorted sizes
// differ while no quality_width/quality_height was supplied.
var ErrQualitySizeRequired = errors.New("quality size required when reference and distorted sizes differ")

// Size is a frame resolution in pixels.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Pixels returns Width*Height.
func (s Size) Pixels() int {
	return s.Width * s.Height
}

var sizeTiers = []tier[Size]{
	{name: "side", resolve: func(md Metadata, s side) (Size, bool, error) {
		return sizeFromKeys(md, s.key(KeyWidth), s.key(KeyHeight))
	}},
	{name: "shared", resolve: func(md Metadata, _ side) (Size, bool, error) {
		return sizeFromKeys(md, KeyWidth, KeyHeight)
	}},
}

func sizeFromKeys(md Metadata, widthKey, heightKey string) (Size, bool, error) {
	w, h, ok, err := md.intPair(widthKey, heightKey)
	if err != nil || !ok {
		return Size{}, false, err
	}
	if w <= 0 || h <= 0 {
		return Size{}, false, fmt.Errorf("%s/%s must be positive, got %dx%d", widthKey, heightKey, w, h)
	}
	return Size{Width: w, Height: h}, true, nil
}

// RefWidthHeight resolves the reference resolution.
func (a *Asset) RefWidthHeight() (Size, error) {
	return a.widthHeight(sideRef)
}

// DisWidthHeight resolves the distorted resolution.
func (a *Asset) DisWidthHeight() (Size, error) {
	return a.widthHeight(sideDis)
}

func (a *Asset) widthHeight(s side) (Size, error) {
	operation := s.key("width_height")
	size, _, ok, err := resolveTiers(a.metadata, s, sizeTiers)
	if err != nil {
		return Size{}, a.configError(operation, "", err)
	}
	if !ok {
		return Size{}, a.configError(operation, fmt.Sprintf(
			"no tier resolved (tried %s): set %s/%s or %s/%s",
			tierNames(sizeTiers), s.key(KeyWidth), s.key(KeyHeight), KeyWidth, KeyHeight), nil)
	}
	return size, nil
}

// QualityWidthHeight resolves the resolution the quality metric is evaluated
// at. Without explicit quality keys, the reference and distorted sizes must
// match.
func (a *Asset) QualityWidthHeight() (Size, error) {
	const operation = "quality_width_height"
	size, ok, err := sizeFromKeys(a.metadata, KeyQualityWidth, KeyQualityHeight)
	if err != nil {
		return Size{}, a.configError(operation, "explicit tier", err)
	}
	if ok {
		return size, nil
	}
	ref, err := a.RefWidthHeight()
	if err != nil {
		return Size{}, err
	}
	dis, err := a.DisWidthHeight()
	if err != nil {
		return Size{}, err
	}
	if ref != dis {
		return Size{}, a.configError(operation, fmt.Sprintf("ref %s vs dis %s", ref, dis), ErrQualitySizeRequired)
	}
	return ref, nil
}
