package helpers

import (
	"fmt"
	"math"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count in a human readable form, e.g. "1.5 MB".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	const k = 1024
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(k)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}

	value := float64(bytes) / math.Pow(k, float64(i))
	rounded := math.Round(value*100) / 100

	if rounded == math.Trunc(rounded) {
		return fmt.Sprintf("%d %s", int64(rounded), sizeUnits[i])
	}
	return fmt.Sprintf("%g %s", rounded, sizeUnits[i])
}
