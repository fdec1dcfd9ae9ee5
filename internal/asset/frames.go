package asset

import (
	"fmt"
	"math"
	"strconv"
)

// FrameRange is an inclusive frame interval. The zero value is unresolved and
// means the whole file.
type FrameRange struct {
	Start    int
	End      int
	resolved bool
}

// NewFrameRange returns a resolved range.
func NewFrameRange(start, end int) FrameRange {
	return FrameRange{Start: start, End: end, resolved: true}
}

// Resolved reports whether any tier produced bounds.
func (r FrameRange) Resolved() bool {
	return r.resolved
}

// Frames returns the number of frames in the range, or 0 when unresolved.
func (r FrameRange) Frames() int {
	if !r.resolved {
		return 0
	}
	return r.End - r.Start + 1
}

func (r FrameRange) String() string {
	if !r.resolved {
		return "all"
	}
	return fmt.Sprintf("%dto%d", r.Start, r.End)
}

var frameTiers = []tier[FrameRange]{
	{name: "side", resolve: func(md Metadata, s side) (FrameRange, bool, error) {
		return frameRangeFromKeys(md, s.key(KeyStartFrame), s.key(KeyEndFrame))
	}},
	{name: "shared", resolve: func(md Metadata, _ side) (FrameRange, bool, error) {
		return frameRangeFromKeys(md, KeyStartFrame, KeyEndFrame)
	}},
	{name: "fps+duration_sec", resolve: func(md Metadata, _ side) (FrameRange, bool, error) {
		duration, ok, err := md.Float(KeyDurationSec)
		if err != nil || !ok {
			return FrameRange{}, false, err
		}
		fps, err := requireFPS(md, KeyDurationSec)
		if err != nil {
			return FrameRange{}, false, err
		}
		end, err := frameIndex(fps, duration, KeyDurationSec)
		if err != nil {
			return FrameRange{}, false, err
		}
		return checkedRange(0, end-1)
	}},
	{name: "fps+start_sec/end_sec", resolve: func(md Metadata, _ side) (FrameRange, bool, error) {
		startSec, okStart, err := md.Float(KeyStartSec)
		if err != nil {
			return FrameRange{}, false, err
		}
		endSec, okEnd, err := md.Float(KeyEndSec)
		if err != nil {
			return FrameRange{}, false, err
		}
		switch {
		case !okStart && !okEnd:
			return FrameRange{}, false, nil
		case !okEnd:
			return FrameRange{}, false, fmt.Errorf("%s is set without %s", KeyStartSec, KeyEndSec)
		case !okStart:
			return FrameRange{}, false, fmt.Errorf("%s is set without %s", KeyEndSec, KeyStartSec)
		}
		fps, err := requireFPS(md, KeyStartSec+"/"+KeyEndSec)
		if err != nil {
			return FrameRange{}, false, err
		}
		start, err := frameIndex(fps, startSec, KeyStartSec)
		if err != nil {
			return FrameRange{}, false, err
		}
		end, err := frameIndex(fps, endSec, KeyEndSec)
		if err != nil {
			return FrameRange{}, false, err
		}
		return checkedRange(start, end-1)
	}},
}

func frameRangeFromKeys(md Metadata, startKey, endKey string) (FrameRange, bool, error) {
	start, end, ok, err := md.intPair(startKey, endKey)
	if err != nil || !ok {
		return FrameRange{}, false, err
	}
	return checkedRange(start, end)
}

// frameIndex returns floor(fps*seconds), rejecting products that do not fit
// in an int.
func frameIndex(fps, seconds float64, key string) (int, error) {
	product := math.Floor(fps * seconds)
	if math.IsNaN(product) || product >= math.MaxInt || product < math.MinInt {
		return 0, fmt.Errorf("%s %s at %s fps is out of frame range", key,
			strconv.FormatFloat(seconds, 'g', -1, 64), strconv.FormatFloat(fps, 'g', -1, 64))
	}
	return int(product), nil
}

func checkedRange(start, end int) (FrameRange, bool, error) {
	if start < 0 {
		return FrameRange{}, false, fmt.Errorf("start frame %d is negative", start)
	}
	if end < start {
		return FrameRange{}, false, fmt.Errorf("end frame %d precedes start frame %d", end, start)
	}
	return NewFrameRange(start, end), true, nil
}

func requireFPS(md Metadata, dependent string) (float64, error) {
	fps, ok, err := md.fps()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%s is set without %s", dependent, KeyFPS)
	}
	return fps, nil
}

// RefStartEndFrame resolves the reference frame range. An unresolved range is
// not an error.
func (a *Asset) RefStartEndFrame() (FrameRange, error) {
	return a.startEndFrame(sideRef)
}

// DisStartEndFrame resolves the distorted frame range.
func (a *Asset) DisStartEndFrame() (FrameRange, error) {
	return a.startEndFrame(sideDis)
}

func (a *Asset) startEndFrame(s side) (FrameRange, error) {
	r, _, _, err := resolveTiers(a.metadata, s, frameTiers)
	if err != nil {
		return FrameRange{}, a.configError(s.key("start_end_frame"), "", err)
	}
	return r, nil
}

// RefDurationSec returns the reference clip duration. ok is false when the
// frame range is unresolved or fps is absent.
func (a *Asset) RefDurationSec() (float64, bool, error) {
	return a.durationSec(sideRef)
}

// DisDurationSec returns the distorted clip duration.
func (a *Asset) DisDurationSec() (float64, bool, error) {
	return a.durationSec(sideDis)
}

func (a *Asset) durationSec(s side) (float64, bool, error) {
	r, err := a.startEndFrame(s)
	if err != nil || !r.Resolved() {
		return 0, false, err
	}
	fps, ok, err := a.metadata.fps()
	if err != nil {
		return 0, false, a.configError(s.key("duration_sec"), "", err)
	}
	if !ok {
		return 0, false, nil
	}
	return float64(r.Frames()) / fps, true, nil
}
