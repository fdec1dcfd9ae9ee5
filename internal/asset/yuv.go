package asset

import (
	"fmt"
	"strings"
)

// YUVType is a raw sampling format.
type YUVType string

const (
	YUV420    YUVType = "yuv420"
	YUV422    YUVType = "yuv422"
	YUV444    YUVType = "yuv444"
	YUV420P10 YUVType = "yuv420p10le"
	YUV422P10 YUVType = "yuv422p10le"
	YUV444P10 YUVType = "yuv444p10le"
)

// DefaultYUVType is used when neither metadata nor options name a format.
const DefaultYUVType = YUV420

var yuvBytesPerPixel = map[YUVType]float64{
	YUV420:    1.5,
	YUV422:    2,
	YUV444:    3,
	YUV420P10: 3,
	YUV422P10: 4,
	YUV444P10: 6,
}

// YUVTypes lists the supported formats in a stable order.
func YUVTypes() []YUVType {
	return []YUVType{YUV420, YUV422, YUV444, YUV420P10, YUV422P10, YUV444P10}
}

// ParseYUVType validates value against the supported formats. Matching is exact.
func ParseYUVType(value string) (YUVType, error) {
	yuv := YUVType(value)
	if _, ok := yuvBytesPerPixel[yuv]; !ok {
		names := make([]string, 0, len(yuvBytesPerPixel))
		for _, t := range YUVTypes() {
			names = append(names, string(t))
		}
		return "", fmt.Errorf("unsupported yuv type %q (supported: %s)", value, strings.Join(names, ", "))
	}
	return yuv, nil
}

// BytesPerPixel returns the average storage per pixel, or 0 for unknown types.
func (y YUVType) BytesPerPixel() float64 {
	return yuvBytesPerPixel[y]
}

// YUVType resolves the sampling format from metadata, falling back to the
// configured default.
func (a *Asset) YUVType() (YUVType, error) {
	const operation = "yuv_type"
	value, ok, err := a.metadata.Text(KeyYUVType)
	if err != nil {
		return "", a.configError(operation, "", err)
	}
	if !ok {
		value = string(a.defaultYUV)
	}
	yuv, err := ParseYUVType(value)
	if err != nil {
		return "", a.configError(operation, "", err)
	}
	return yuv, nil
}
