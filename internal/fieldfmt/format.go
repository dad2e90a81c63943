package fieldfmt

import (
	"math"
	"strconv"
	"time"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatBytes renders a byte count with a binary-scaled unit. Plain bytes
// keep their integer form; larger units carry one decimal.
func FormatBytes(n float64) string {
	if n < 1024 {
		return strconv.FormatFloat(n, 'f', -1, 64) + " " + byteUnits[0]
	}
	exp := 0
	scaled := n
	for roundTo(scaled, 1) >= 1024 && exp < len(byteUnits)-1 {
		scaled /= 1024
		exp++
	}
	return strconv.FormatFloat(scaled, 'f', 1, 64) + " " + byteUnits[exp]
}

// FormatMilliseconds picks the smallest unit that keeps the value under the
// next threshold (1000 ms, 60 sec, 60 min, 24 hr). Thresholds apply to the
// rounded value, so 999.9999 ms is shown as 1.0 sec.
func FormatMilliseconds(ms float64) string {
	seconds := ms / 1000
	minutes := seconds / 60
	hours := minutes / 60
	switch {
	case roundTo(ms, 3) < 1000:
		return strconv.FormatFloat(roundTo(ms, 3), 'f', -1, 64) + " ms"
	case roundTo(seconds, 1) < 60:
		return strconv.FormatFloat(seconds, 'f', 1, 64) + " sec"
	case roundTo(minutes, 1) < 60:
		return strconv.FormatFloat(minutes, 'f', 1, 64) + " min"
	case roundTo(hours, 1) < 24:
		return strconv.FormatFloat(hours, 'f', 1, 64) + " hr"
	default:
		return strconv.FormatFloat(hours/24, 'f', 1, 64) + " days"
	}
}

func FormatSeconds(s float64) string {
	return FormatMilliseconds(s * 1000)
}

const localizedLayout = "Monday, 1/2/2006, 3:04:05.000 PM"

// FormatDateLocalized renders t in UTC with a fixed en-US style layout so
// the output does not depend on the host locale.
func FormatDateLocalized(t time.Time) string {
	return t.UTC().Format(localizedLayout)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
